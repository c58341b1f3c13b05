package intensity_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/intensity/pkg/intensity"
)

func TestSegment_JSONPairs(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(seg([2]int{10, 1}, [2]int{30, 0}))
	require.NoError(t, err)
	assert.JSONEq(t, `[[10,1],[30,0]]`, string(data))

	var back []intensity.Segment

	require.NoError(t, json.Unmarshal([]byte(`[[-5,2],[7,0]]`), &back))
	assert.Equal(t, seg([2]int{-5, 2}, [2]int{7, 0}), back)
}

func TestSegment_UnmarshalRejectsMalformed(t *testing.T) {
	t.Parallel()

	for _, input := range []string{`[1]`, `[1,2,3]`, `{"start":1}`, `["a",1]`} {
		var s intensity.Segment

		err := json.Unmarshal([]byte(input), &s)
		require.ErrorIs(t, err, intensity.ErrMalformedSegment, input)
	}
}

func TestFormatSegments(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "[]", intensity.FormatSegments(nil))
	assert.Equal(t, "[[10,1],[30,0]]", intensity.FormatSegments(seg([2]int{10, 1}, [2]int{30, 0})))
	assert.Equal(t, "[-3,-1]", intensity.Segment{Start: -3, Value: -1}.String())
}
