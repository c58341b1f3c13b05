package mapx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClone(t *testing.T) {
	t.Parallel()

	t.Run("nil_returns_nil", func(t *testing.T) {
		t.Parallel()

		got := Clone[int, int](nil)
		assert.Nil(t, got)
	})

	t.Run("empty_returns_empty", func(t *testing.T) {
		t.Parallel()

		got := Clone(map[int]int{})
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("independent_copy", func(t *testing.T) {
		t.Parallel()

		src := map[int]int{10: 1, 30: -1}
		got := Clone(src)
		assert.Equal(t, src, got)

		got[20] = 5
		got[10] = 7

		assert.NotContains(t, src, 20)
		assert.Equal(t, 1, src[10])
	})
}

func TestAccumulate(t *testing.T) {
	t.Parallel()

	t.Run("creates_missing_entry", func(t *testing.T) {
		t.Parallel()

		m := map[int]int{}
		Accumulate(m, 10, 3)

		assert.Equal(t, map[int]int{10: 3}, m)
	})

	t.Run("adds_to_existing_entry", func(t *testing.T) {
		t.Parallel()

		m := map[int]int{10: 3}
		Accumulate(m, 10, -5)

		assert.Equal(t, map[int]int{10: -2}, m)
	})

	t.Run("cancel_leaves_zero_entry", func(t *testing.T) {
		t.Parallel()

		m := map[int]int{10: 3}
		Accumulate(m, 10, -3)

		assert.Contains(t, m, 10)
		assert.Equal(t, 0, m[10])
	})
}

func TestDropZero(t *testing.T) {
	t.Parallel()

	t.Run("nil_map_is_noop", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, 0, DropZero[int, int](nil))
	})

	t.Run("removes_only_zero_values", func(t *testing.T) {
		t.Parallel()

		m := map[int]int{1: 0, 2: 5, 3: 0, 4: -1}
		removed := DropZero(m)

		assert.Equal(t, 2, removed)
		assert.Equal(t, map[int]int{2: 5, 4: -1}, m)
	})

	t.Run("float_values", func(t *testing.T) {
		t.Parallel()

		m := map[string]float64{"a": 0, "b": 0.5}
		DropZero(m)

		assert.Equal(t, map[string]float64{"b": 0.5}, m)
	})
}

func TestDeleteBetween(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		lo, hi  int
		want    map[int]int
		removed int
	}{
		{name: "bounds_are_exclusive", lo: 10, hi: 40, want: map[int]int{10: 1, 40: -1}, removed: 2},
		{name: "nothing_inside", lo: 20, hi: 21, want: map[int]int{10: 1, 20: 1, 30: -1, 40: -1}, removed: 0},
		{name: "wide_range", lo: 0, hi: 100, want: map[int]int{}, removed: 4},
		{name: "inverted_range_removes_nothing", lo: 40, hi: 10, want: map[int]int{10: 1, 20: 1, 30: -1, 40: -1}, removed: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := map[int]int{10: 1, 20: 1, 30: -1, 40: -1}
			removed := DeleteBetween(m, tt.lo, tt.hi)

			assert.Equal(t, tt.removed, removed)
			assert.Equal(t, tt.want, m)
		})
	}
}

func TestSortedKeys(t *testing.T) {
	t.Parallel()

	t.Run("nil_returns_nil", func(t *testing.T) {
		t.Parallel()

		got := SortedKeys[int, any](nil)
		assert.Nil(t, got)
	})

	t.Run("empty_returns_empty", func(t *testing.T) {
		t.Parallel()

		got := SortedKeys(map[int]string{})
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("negative_keys_sorted_numerically", func(t *testing.T) {
		t.Parallel()

		m := map[int]int{3: 1, -10: 1, 0: 1, -2: 1}
		got := SortedKeys(m)
		assert.Equal(t, []int{-10, -2, 0, 3}, got)
	})

	t.Run("string_keys_sorted", func(t *testing.T) {
		t.Parallel()

		m := map[string]int{"banana": 2, "apple": 1, "cherry": 3}
		got := SortedKeys(m)
		assert.Equal(t, []string{"apple", "banana", "cherry"}, got)
	})
}
