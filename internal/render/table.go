package render

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/Sumatoshi-tech/intensity/internal/session"
	"github.com/Sumatoshi-tech/intensity/pkg/intensity"
)

// Table writes the history as a table with one row per entry. Rejected steps
// show their error in place of the segments.
func Table(w io.Writer, report session.Report, opts Options) error {
	failColor := color.New(color.FgRed)
	okColor := color.New(color.FgGreen)

	if opts.Color {
		failColor.EnableColor()
		okColor.EnableColor()
	} else {
		failColor.DisableColor()
		okColor.DisableColor()
	}

	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Format.Footer = text.FormatDefault
	tbl.SetTitle(title(report))
	tbl.AppendHeader(table.Row{"#", "Op", "From", "To", "Amount", "Segments"})

	for _, entry := range report.Entries {
		result := intensity.FormatSegments(entry.Segments)
		if entry.Failed() {
			result = failColor.Sprint(entry.Error)
		}

		tbl.AppendRow(table.Row{
			entry.Seq,
			string(entry.Op),
			operand(entry.From),
			operand(entry.To),
			operand(entry.Amount),
			result,
		})
	}

	status := okColor.Sprint("ok")
	if report.Failures > 0 {
		status = failColor.Sprintf("%d failed", report.Failures)
	}

	tbl.AppendFooter(table.Row{
		"", "final", "", "", status, intensity.FormatSegments(report.Final),
	})

	_, err := fmt.Fprintln(w, tbl.Render())
	if err != nil {
		return fmt.Errorf("write table report: %w", err)
	}

	return nil
}

func title(report session.Report) string {
	name := report.Name
	if name == "" {
		name = "script"
	}

	return name + " (run " + report.RunID + ", " + strconv.Itoa(len(report.Entries)) + " steps)"
}
