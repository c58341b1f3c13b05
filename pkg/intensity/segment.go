package intensity

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMalformedSegment is returned when a segment cannot be decoded from its pair form.
var ErrMalformedSegment = errors.New("segment must be a [start, value] pair")

// segmentFields is the number of elements in the pair encoding of a Segment.
const segmentFields = 2

// Segment is a maximal run of constant intensity. The intensity equals Value on
// [Start, next.Start); the last segment of a list extends to +infinity.
//
// A Segment encodes to JSON as the pair [Start, Value].
type Segment struct {
	Start int
	Value int
}

// MarshalJSON encodes the segment as [Start, Value].
func (seg Segment) MarshalJSON() ([]byte, error) {
	return json.Marshal([segmentFields]int{seg.Start, seg.Value})
}

// UnmarshalJSON decodes a [Start, Value] pair.
func (seg *Segment) UnmarshalJSON(data []byte) error {
	var pair []int

	err := json.Unmarshal(data, &pair)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedSegment, err)
	}

	if len(pair) != segmentFields {
		return fmt.Errorf("%w: got %d elements", ErrMalformedSegment, len(pair))
	}

	seg.Start, seg.Value = pair[0], pair[1]

	return nil
}

// String returns the pair form, e.g. "[10,1]".
func (seg Segment) String() string {
	return "[" + strconv.Itoa(seg.Start) + "," + strconv.Itoa(seg.Value) + "]"
}

// FormatSegments renders a segment list as a literal array of pairs,
// e.g. "[[10,1],[30,0]]". An empty or nil list renders as "[]".
func FormatSegments(segments []Segment) string {
	var sb strings.Builder

	sb.WriteByte('[')

	for i, seg := range segments {
		if i > 0 {
			sb.WriteByte(',')
		}

		sb.WriteString(seg.String())
	}

	sb.WriteByte(']')

	return sb.String()
}
