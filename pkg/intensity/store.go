// Package intensity maintains a piecewise-constant intensity function over the
// integer line.
//
// The function is encoded by a sparse set of change points: a mapping from
// coordinate to the signed amount by which the intensity changes at that
// coordinate, relative to the value immediately to its left. Sweeping the
// change points left to right and accumulating their deltas recovers the
// absolute intensity. The mapping never holds a zero delta once an operation
// has returned.
//
// Add and Set update a half-open range [from, to); Segments materializes the
// function as an ordered list of (start, value) pairs.
package intensity

import (
	"sort"

	"github.com/Sumatoshi-tech/intensity/pkg/alg/mapx"
)

// Store owns the change-point mapping. The zero value is an empty store.
//
// A Store is not safe for concurrent use; callers sharing one across
// goroutines must serialize every call.
type Store struct {
	deltas map[int]int
}

// New creates an empty store.
func New() *Store {
	return &Store{deltas: make(map[int]int)}
}

func (s *Store) init() {
	if s.deltas == nil {
		s.deltas = make(map[int]int)
	}
}

// Add raises the intensity over [from, to) by amount and returns the new segments.
//
// The update is recorded as +amount at from and -amount at to. Entries that end
// up at zero are dropped. Repeating the same call compounds.
func (s *Store) Add(from, to, amount int) ([]Segment, error) {
	err := Validate(from, to)
	if err != nil {
		return nil, err
	}

	s.init()

	mapx.Accumulate(s.deltas, from, amount)
	mapx.Accumulate(s.deltas, to, -amount)
	mapx.DropZero(s.deltas)

	return s.Segments(), nil
}

// Set forces the intensity over [from, to) to exactly amount, leaving every
// coordinate outside the range untouched, and returns the new segments.
//
// Both boundary intensities are read from the segments before the call: the
// value of the segment whose interval [start, next.start) holds the coordinate,
// or 0 when no such interval exists (the last segment has no right bound). The
// boundary entries are then overwritten, zero entries dropped, and every change
// point strictly inside the range removed, in that order.
//
// Because the boundary entries are overwritten rather than accumulated, the
// result is exact only when from is not already a change point. Repeating a
// call whose from became a change point gives a different result.
func (s *Store) Set(from, to, amount int) ([]Segment, error) {
	err := Validate(from, to)
	if err != nil {
		return nil, err
	}

	s.init()

	segments := s.Segments()
	fromIntensity := boundedValue(segments, from)
	toIntensity := boundedValue(segments, to)

	s.deltas[from] = amount - fromIntensity
	s.deltas[to] = -amount + toIntensity

	mapx.DropZero(s.deltas)
	mapx.DeleteBetween(s.deltas, from, to)

	return s.Segments(), nil
}

// AddValues is Add for loosely typed operands; see Operands.
func (s *Store) AddValues(from, to, amount any) ([]Segment, error) {
	r, err := Operands(from, to, amount)
	if err != nil {
		return nil, err
	}

	return s.Add(r.From, r.To, r.Amount)
}

// SetValues is Set for loosely typed operands; see Operands.
func (s *Store) SetValues(from, to, amount any) ([]Segment, error) {
	r, err := Operands(from, to, amount)
	if err != nil {
		return nil, err
	}

	return s.Set(r.From, r.To, r.Amount)
}

// Segments sweeps the change points in ascending order and returns the
// resulting segments. A point is reported when the accumulated intensity is
// nonzero, or when the preceding point carries a nonzero delta, so a run that
// drops back to zero keeps its explicit end. The first point is only reported
// when it makes the intensity nonzero.
//
// The returned slice is freshly allocated and never nil.
func (s *Store) Segments() []Segment {
	points := mapx.SortedKeys(s.deltas)
	segments := make([]Segment, 0, len(points))
	intensity := 0

	for i, point := range points {
		intensity += s.deltas[point]

		if intensity != 0 || (i > 0 && s.deltas[points[i-1]] != 0) {
			segments = append(segments, Segment{Start: point, Value: intensity})
		}
	}

	return segments
}

// Clear removes every change point.
func (s *Store) Clear() {
	clear(s.deltas)
}

// ValueAt returns the intensity at coordinate x.
func (s *Store) ValueAt(x int) int {
	return valueAt(s.Segments(), x)
}

// ChangePoints returns a copy of the coordinate → delta mapping.
func (s *Store) ChangePoints() map[int]int {
	if s.deltas == nil {
		return map[int]int{}
	}

	return mapx.Clone(s.deltas)
}

// Len returns the number of change points.
func (s *Store) Len() int {
	return len(s.deltas)
}

// valueAt returns the intensity at x: the value of the last segment starting
// at or before x, or 0 when x lies before the first segment.
func valueAt(segments []Segment, x int) int {
	idx := sort.Search(len(segments), func(i int) bool {
		return segments[i].Start > x
	})
	if idx == 0 {
		return 0
	}

	return segments[idx-1].Value
}

// boundedValue returns the value of the segment i with
// segments[i].Start <= x < segments[i+1].Start. The last segment has no right
// bound and never matches, so x before the first or at/after the last start
// yields 0.
func boundedValue(segments []Segment, x int) int {
	idx := sort.Search(len(segments), func(i int) bool {
		return segments[i].Start > x
	})
	if idx == 0 || idx == len(segments) {
		return 0
	}

	return segments[idx-1].Value
}
