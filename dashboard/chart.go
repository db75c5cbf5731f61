package dashboard

import (
	"bytes"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var scaleColors = map[string]color.RGBA{
	ScaleReds:  {R: 203, G: 24, B: 29, A: 255},
	ScaleOrRd:  {R: 215, G: 48, B: 31, A: 255},
	ScaleBlues: {R: 33, G: 113, B: 181, A: 255},
}

const (
	chartWidth  = 8 * vg.Inch
	chartHeight = 5 * vg.Inch
	barWidth    = 14
)

// ChartPNG - horizontal bar chart of a ranking, the first row is drawn on top
func ChartPNG(chart Chart) ([]byte, error) {
	p := plot.New()
	p.Title.Text = chart.Title
	p.X.Label.Text = chart.Label
	p.X.Min = 0

	rows := chart.List.Rows
	if len(rows) > 0 {
		values := make(plotter.Values, len(rows))
		labels := make([]string, len(rows))
		for i, r := range rows {
			j := len(rows) - 1 - i
			values[j] = r.MetricValue
			labels[j] = r.MunicipalityName
		}

		bars, err := plotter.NewBarChart(values, vg.Points(barWidth))
		if err != nil {
			return nil, err
		}
		bars.Horizontal = true
		bars.LineStyle.Width = 0
		if c, ok := scaleColors[chart.ColorScale]; ok {
			bars.Color = c
		}

		p.Add(bars)
		p.NominalY(labels...)
	}

	w, err := p.WriterTo(chartWidth, chartHeight, "png")
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if _, err := w.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
