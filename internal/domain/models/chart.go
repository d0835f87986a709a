package models

import "fmt"

// ChartKind enumerates supported chart renderings.
type ChartKind string

const (
	ChartLine ChartKind = "line"
	ChartBar  ChartKind = "bar"
	ChartPie  ChartKind = "pie"
)

// ChartSpec describes one chart attached to a report. Series maps a legend
// label to its ordered values; every value slice must have exactly
// len(XAxisLabels) entries. For pie charts the (single) labeled series is
// interpreted as proportions and normalized to 100%.
type ChartSpec struct {
	Kind        ChartKind            `json:"kind" bson:"kind"`
	Title       string               `json:"title" bson:"title"`
	Series      map[string][]float64 `json:"series" bson:"series"`
	XAxisLabels []string             `json:"x_axis_labels" bson:"x_axis_labels"`
}

// Validate checks the structural invariants shared by all chart kinds plus
// the kind-specific ones. Violations fail with ErrInvalidChartSpec.
func (s ChartSpec) Validate() error {
	switch s.Kind {
	case ChartLine, ChartBar, ChartPie:
	default:
		return fmt.Errorf("%w: unsupported kind %q", ErrInvalidChartSpec, s.Kind)
	}

	if len(s.Series) == 0 {
		return fmt.Errorf("%w: chart %q has no series", ErrInvalidChartSpec, s.Title)
	}

	for label, values := range s.Series {
		if len(values) != len(s.XAxisLabels) {
			return fmt.Errorf("%w: series %q has %d values for %d axis labels",
				ErrInvalidChartSpec, label, len(values), len(s.XAxisLabels))
		}
		if s.Kind == ChartPie {
			for _, v := range values {
				if v < 0 {
					return fmt.Errorf("%w: pie series %q contains negative value %v",
						ErrInvalidChartSpec, label, v)
				}
			}
		}
	}

	return nil
}

// RenderedChart pairs a spec with its rendered, self-contained PNG image.
type RenderedChart struct {
	Spec       ChartSpec
	ImageBytes []byte
}
