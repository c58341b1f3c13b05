package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/Sumatoshi-tech/intensity/internal/script"
	"github.com/Sumatoshi-tech/intensity/internal/session"
	"github.com/Sumatoshi-tech/intensity/pkg/intensity"
)

// Text writes the history log, one line per entry, followed by the final segments:
//
//	Add 1 from 10 to 30: [[10,1],[30,0]]
//	Final segments: [[10,1],[30,0]]
func Text(w io.Writer, report session.Report) error {
	var sb strings.Builder

	for _, entry := range report.Entries {
		sb.WriteString(Line(entry))
		sb.WriteByte('\n')
	}

	sb.WriteString("Final segments: ")
	sb.WriteString(intensity.FormatSegments(report.Final))
	sb.WriteByte('\n')

	_, err := io.WriteString(w, sb.String())
	if err != nil {
		return fmt.Errorf("write text report: %w", err)
	}

	return nil
}

// Line describes a single history entry.
func Line(entry session.Entry) string {
	var desc string

	switch entry.Op {
	case script.OpAdd:
		desc = fmt.Sprintf("Add %v from %v to %v", entry.Amount, entry.From, entry.To)
	case script.OpSet:
		desc = fmt.Sprintf("Set %v from %v to %v", entry.Amount, entry.From, entry.To)
	case script.OpClear:
		desc = "Clear"
	case script.OpSegments:
		desc = "Segments"
	default:
		desc = string(entry.Op)
	}

	if entry.Failed() {
		return desc + ": error: " + entry.Error
	}

	return desc + ": " + intensity.FormatSegments(entry.Segments)
}
