// Package render prints session reports as a history log, a table, JSON or
// an HTML step chart.
package render

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/dustin/go-humanize"

	"github.com/Sumatoshi-tech/intensity/internal/session"
	"github.com/Sumatoshi-tech/intensity/pkg/config"
)

// ErrUnknownFormat is returned for an output format no renderer handles.
var ErrUnknownFormat = errors.New("unknown output format")

// Options controls report rendering.
type Options struct {
	// Color enables ANSI colors in table output.
	Color bool
}

// Report writes report to w in the named format (table, text or json).
func Report(w io.Writer, report session.Report, format string, opts Options) error {
	switch format {
	case config.FormatTable:
		return Table(w, report, opts)
	case config.FormatText:
		return Text(w, report)
	case config.FormatJSON:
		return JSON(w, report)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// operand formats a step operand; integers get thousands separators.
func operand(v any) string {
	switch n := v.(type) {
	case nil:
		return ""
	case int:
		return humanize.Comma(int64(n))
	case int64:
		return humanize.Comma(n)
	case float64:
		if n == math.Trunc(n) && math.Abs(n) < 1e15 {
			return humanize.Comma(int64(n))
		}

		return humanize.Commaf(n)
	case string:
		return fmt.Sprintf("%q", n)
	default:
		return fmt.Sprint(n)
	}
}
