package render

import (
	"fmt"
	"io"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/Sumatoshi-tech/intensity/pkg/intensity"
)

const (
	chartWidth  = "100%"
	chartHeight = "500px"
	lineWidth   = 2
)

// StepChart builds a step line chart of segments. Each point holds its value
// until the next start coordinate.
func StepChart(title string, segments []intensity.Segment) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: title,
			Width:     chartWidth,
			Height:    chartHeight,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: strconv.Itoa(len(segments)) + " segments",
		}),
		charts.WithTooltipOpts(opts.Tooltip{Trigger: "axis"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Coordinate"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Intensity"}),
	)

	labels := make([]string, len(segments))
	data := make([]opts.LineData, len(segments))

	for i, seg := range segments {
		labels[i] = strconv.Itoa(seg.Start)
		data[i] = opts.LineData{Value: seg.Value}
	}

	line.SetXAxis(labels)
	line.AddSeries("intensity", data,
		charts.WithLineChartOpts(opts.LineChart{Step: "end"}),
		charts.WithLineStyleOpts(opts.LineStyle{Width: lineWidth}),
	)

	return line
}

// Chart writes a standalone HTML page holding the step chart of segments.
func Chart(w io.Writer, title string, segments []intensity.Segment) error {
	err := StepChart(title, segments).Render(w)
	if err != nil {
		return fmt.Errorf("render chart: %w", err)
	}

	return nil
}
