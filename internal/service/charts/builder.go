package charts

import (
	"bytes"
	"fmt"
	"sort"

	"go.uber.org/zap"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/jean1991/creditcarbon/internal/domain/models"
)

const (
	chartWidth  = 10 * vg.Inch
	chartHeight = 6 * vg.Inch
)

var barWidth = vg.Points(18)

// Builder converts chart specifications into self-contained PNG images
// suitable for embedding in exported documents.
type Builder struct {
	logger *zap.Logger
}

// NewBuilder wires a new chart builder instance.
func NewBuilder(logger *zap.Logger) *Builder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Builder{logger: logger}
}

// Build renders every spec in order. A structurally invalid spec fails the
// whole build with ErrInvalidChartSpec; nothing is partially rendered.
func (b *Builder) Build(specs []models.ChartSpec) ([]models.RenderedChart, error) {
	rendered := make([]models.RenderedChart, 0, len(specs))
	for i, spec := range specs {
		if err := spec.Validate(); err != nil {
			return nil, fmt.Errorf("chart %d: %w", i, err)
		}

		img, err := b.render(spec)
		if err != nil {
			return nil, fmt.Errorf("chart %d (%s): %w", i, spec.Title, err)
		}

		rendered = append(rendered, models.RenderedChart{Spec: spec, ImageBytes: img})
		b.logger.Debug("chart rendered",
			zap.String("title", spec.Title),
			zap.String("kind", string(spec.Kind)),
			zap.Int("bytes", len(img)))
	}
	return rendered, nil
}

func (b *Builder) render(spec models.ChartSpec) ([]byte, error) {
	p := plot.New()
	p.Title.Text = spec.Title
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.Legend.Top = true

	var err error
	switch spec.Kind {
	case models.ChartLine:
		err = addLines(p, spec)
	case models.ChartBar:
		err = addBars(p, spec)
	case models.ChartPie:
		err = addPie(p, spec)
	}
	if err != nil {
		return nil, err
	}

	wt, err := p.WriterTo(chartWidth, chartHeight, "png")
	if err != nil {
		return nil, fmt.Errorf("encode chart: %w", err)
	}

	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("write chart image: %w", err)
	}
	return buf.Bytes(), nil
}

// sortedLabels fixes the series iteration order so identical specs always
// produce identical images.
func sortedLabels(spec models.ChartSpec) []string {
	labels := make([]string, 0, len(spec.Series))
	for label := range spec.Series {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

func addLines(p *plot.Plot, spec models.ChartSpec) error {
	p.Add(plotter.NewGrid())
	p.Y.Label.Text = "Hectares"

	for i, label := range sortedLabels(spec) {
		values := spec.Series[label]
		points := make(plotter.XYs, len(values))
		for j, v := range values {
			points[j].X = float64(j)
			points[j].Y = v
		}

		line, err := plotter.NewLine(points)
		if err != nil {
			return fmt.Errorf("line series %q: %w", label, err)
		}
		line.Color = plotutil.Color(i)
		line.Width = vg.Points(2)

		p.Add(line)
		p.Legend.Add(label, line)
	}

	p.NominalX(spec.XAxisLabels...)
	return nil
}

func addBars(p *plot.Plot, spec models.ChartSpec) error {
	p.Y.Label.Text = "Hectares"

	labels := sortedLabels(spec)
	for i, label := range labels {
		values := make(plotter.Values, len(spec.Series[label]))
		copy(values, spec.Series[label])

		bars, err := plotter.NewBarChart(values, barWidth)
		if err != nil {
			return fmt.Errorf("bar series %q: %w", label, err)
		}
		bars.Color = plotutil.Color(i)
		bars.LineStyle.Width = vg.Length(0)
		// Group the series side by side around each category tick.
		bars.Offset = barWidth * vg.Length(float64(i)-float64(len(labels)-1)/2)

		p.Add(bars)
		p.Legend.Add(label, bars)
	}

	p.NominalX(spec.XAxisLabels...)
	return nil
}

func addPie(p *plot.Plot, spec models.ChartSpec) error {
	labels := sortedLabels(spec)

	var total float64
	sums := make([]float64, len(labels))
	for i, label := range labels {
		for _, v := range spec.Series[label] {
			sums[i] += v
		}
		total += sums[i]
	}
	if total <= 0 {
		return fmt.Errorf("%w: pie chart %q has zero total", models.ErrInvalidChartSpec, spec.Title)
	}

	p.HideAxes()

	var start float64
	for i, label := range labels {
		frac := sums[i] / total
		slice := &pieSlice{
			start:    start,
			fraction: frac,
			color:    plotutil.Color(i),
		}
		p.Add(slice)
		p.Legend.Add(fmt.Sprintf("%s (%.1f%%)", label, frac*100), slice)
		start += frac
	}

	return nil
}
