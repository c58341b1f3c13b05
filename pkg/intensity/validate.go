package intensity

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/Sumatoshi-tech/intensity/pkg/safeconv"
)

// Validation errors. Both are returned before any mutation takes place.
var (
	ErrInvalidInput = errors.New("invalid input: from, to and amount must be integers")
	ErrInvalidRange = errors.New("invalid range: from must be less than to")
)

// Range is a validated half-open update [From, To) carrying Amount.
type Range struct {
	From   int
	To     int
	Amount int
}

// Validate checks that from < to. Amount is unrestricted.
func Validate(from, to int) error {
	if from >= to {
		return fmt.Errorf("%w: from=%d to=%d", ErrInvalidRange, from, to)
	}

	return nil
}

// Operands converts loosely typed operands, as produced by YAML or JSON decoders,
// into a validated Range. Every Go integer kind is accepted when it fits into int,
// as are json.Number and floats holding an exact integral value. Anything else
// fails with ErrInvalidInput; a well-typed but empty range fails with ErrInvalidRange.
func Operands(from, to, amount any) (Range, error) {
	names := [...]string{"from", "to", "amount"}
	values := [...]any{from, to, amount}

	var ints [len(values)]int

	for i, v := range values {
		n, ok := toInt(v)
		if !ok {
			return Range{}, fmt.Errorf("%w: %s=%v (%T)", ErrInvalidInput, names[i], v, v)
		}

		ints[i] = n
	}

	err := Validate(ints[0], ints[1])
	if err != nil {
		return Range{}, err
	}

	return Range{From: ints[0], To: ints[1], Amount: ints[2]}, nil
}

//nolint:cyclop // flat type switch over the numeric kinds.
func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int8:
		return int(n), true
	case int16:
		return int(n), true
	case int32:
		return int(n), true
	case int64:
		return safeconv.Int64ToInt(n)
	case uint:
		return safeconv.Uint64ToInt(uint64(n))
	case uint8:
		return int(n), true
	case uint16:
		return int(n), true
	case uint32:
		return safeconv.Uint64ToInt(uint64(n))
	case uint64:
		return safeconv.Uint64ToInt(n)
	case float32:
		return safeconv.FloatToInt(float64(n))
	case float64:
		return safeconv.FloatToInt(n)
	case json.Number:
		return jsonNumberToInt(n)
	default:
		return 0, false
	}
}

func jsonNumberToInt(n json.Number) (int, bool) {
	i, err := strconv.ParseInt(string(n), 10, 64)
	if err == nil {
		return safeconv.Int64ToInt(i)
	}

	f, err := n.Float64()
	if err != nil {
		return 0, false
	}

	return safeconv.FloatToInt(f)
}
