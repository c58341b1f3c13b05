package render

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/Sumatoshi-tech/intensity/internal/session"
)

// JSON writes the report as indented JSON; segments encode as [start, value] pairs.
func JSON(w io.Writer, report session.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	err := enc.Encode(report)
	if err != nil {
		return fmt.Errorf("encode json report: %w", err)
	}

	return nil
}
