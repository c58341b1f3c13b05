package render_test

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/intensity/internal/render"
	"github.com/Sumatoshi-tech/intensity/internal/script"
	"github.com/Sumatoshi-tech/intensity/internal/session"
	"github.com/Sumatoshi-tech/intensity/pkg/config"
	"github.com/Sumatoshi-tech/intensity/pkg/intensity"
)

func referenceReport(t *testing.T) session.Report {
	t.Helper()

	return session.New().Run(context.Background(), script.Reference())
}

func failingReport(t *testing.T) session.Report {
	t.Helper()

	sc := &script.Script{
		Name: "failing",
		Steps: []script.Step{
			{Op: script.OpAdd, From: 1000, To: 2500, Amount: 3},
			{Op: script.OpAdd, From: 5, To: 5, Amount: 1},
			{Op: script.OpClear},
		},
	}

	return session.New().Run(context.Background(), sc)
}

func TestText_Reference(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	require.NoError(t, render.Text(&buf, referenceReport(t)))

	want := strings.Join([]string{
		"Add 1 from 10 to 30: [[10,1],[30,0]]",
		"Add 1 from 20 to 40: [[10,1],[20,2],[30,1],[40,0]]",
		"Add -2 from 10 to 40: [[10,-1],[20,0],[30,-1],[40,0]]",
		"Set 10 from 25 to 35: [[10,-1],[20,0],[25,10],[35,-1],[40,0]]",
		"Segments: [[10,-1],[20,0],[25,10],[35,-1],[40,0]]",
		"Final segments: [[10,-1],[20,0],[25,10],[35,-1],[40,0]]",
		"",
	}, "\n")
	assert.Equal(t, want, buf.String())
}

func TestText_Failures(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	require.NoError(t, render.Text(&buf, failingReport(t)))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Add 3 from 1000 to 2500: [[1000,3],[2500,0]]", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "Add 1 from 5 to 5: error: invalid range"), lines[1])
	assert.Equal(t, "Clear: []", lines[2])
	assert.Equal(t, "Final segments: []", lines[3])
}

func TestTable(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	require.NoError(t, render.Table(&buf, failingReport(t), render.Options{}))

	out := buf.String()
	assert.Contains(t, out, "failing (run ")
	assert.Contains(t, out, "3 steps")
	assert.Contains(t, out, "SEGMENTS")
	assert.Contains(t, out, "1,000")
	assert.Contains(t, out, "2,500")
	assert.Contains(t, out, "[[1000,3],[2500,0]]")
	assert.Contains(t, out, "invalid range")
	assert.Contains(t, out, "1 failed")
	assert.NotContains(t, out, "\x1b[")
}

func TestTable_Color(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	require.NoError(t, render.Table(&buf, failingReport(t), render.Options{Color: true}))
	assert.Contains(t, buf.String(), "\x1b[31m")
}

func TestJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	report := referenceReport(t)
	require.NoError(t, render.JSON(&buf, report))

	var decoded struct {
		RunID   string              `json:"run_id"`
		Name    string              `json:"name"`
		Final   []intensity.Segment `json:"final"`
		Entries []json.RawMessage   `json:"entries"`
	}

	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, report.RunID, decoded.RunID)
	assert.Equal(t, "reference", decoded.Name)
	assert.Equal(t, report.Final, decoded.Final)
	assert.Len(t, decoded.Entries, 5)
	assert.Contains(t, buf.String(), `"final": [`)
	assert.Contains(t, buf.String(), "[\n      25,\n      10\n    ]")
}

func TestReport_Dispatch(t *testing.T) {
	t.Parallel()

	report := referenceReport(t)

	for _, format := range []string{config.FormatTable, config.FormatText, config.FormatJSON} {
		var buf bytes.Buffer

		require.NoError(t, render.Report(&buf, report, format, render.Options{}), format)
		assert.NotEmpty(t, buf.String(), format)
	}

	err := render.Report(&bytes.Buffer{}, report, "xml", render.Options{})
	require.ErrorIs(t, err, render.ErrUnknownFormat)
}

func TestLine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		entry session.Entry
		want  string
	}{
		{
			name:  "segments",
			entry: session.Entry{Op: script.OpSegments, Segments: []intensity.Segment{}},
			want:  "Segments: []",
		},
		{
			name:  "set",
			entry: session.Entry{Op: script.OpSet, From: 0, To: 10, Amount: 0, Segments: []intensity.Segment{}},
			want:  "Set 0 from 0 to 10: []",
		},
		{
			name:  "unknown",
			entry: session.Entry{Op: "mul", Segments: []intensity.Segment{}},
			want:  "mul: []",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, render.Line(tt.entry))
		})
	}
}

func TestChart(t *testing.T) {
	t.Parallel()

	report := referenceReport(t)

	line := render.StepChart("reference", report.Final)
	require.Len(t, line.MultiSeries, 1)
	assert.Equal(t, "intensity", line.MultiSeries[0].Name)

	var buf bytes.Buffer

	require.NoError(t, render.Chart(&buf, "reference", report.Final))

	out := buf.String()
	assert.Contains(t, out, "<html")
	assert.Contains(t, out, "echarts")
	assert.Contains(t, out, "reference")
}
