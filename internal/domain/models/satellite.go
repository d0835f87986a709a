package models

// YearRange is a closed interval of calendar years.
type YearRange struct {
	Start int `json:"start" bson:"start"`
	End   int `json:"end" bson:"end"`
}

// Valid reports whether the range is well-formed.
func (r YearRange) Valid() bool {
	return r.Start > 0 && r.End >= r.Start
}

// Years enumerates the range in ascending order.
func (r YearRange) Years() []int {
	if !r.Valid() {
		return nil
	}
	years := make([]int, 0, r.End-r.Start+1)
	for y := r.Start; y <= r.End; y++ {
		years = append(years, y)
	}
	return years
}

// ForestLossPoint is one year of tree-cover loss for a province.
type ForestLossPoint struct {
	Year         int     `json:"year" bson:"year"`
	HectaresLost float64 `json:"hectares_lost" bson:"hectares_lost"`
}

// ForestLossSeries is a yearly forest-loss time series for one province.
// Points are sorted by strictly increasing year with no duplicates and all
// values are non-negative; the satellite client guarantees this for both
// real and mock data. Series are immutable once attached to a report.
type ForestLossSeries struct {
	Province Province          `json:"province" bson:"province"`
	Range    YearRange         `json:"range" bson:"range"`
	Points   []ForestLossPoint `json:"points" bson:"points"`
	Source   string            `json:"source" bson:"source"`
}

// Known series sources.
const (
	SourceGFW  = "Global Forest Watch"
	SourceMock = "Simulated Tree Cover Loss"
)

// Covers reports whether the series has a point for every year of r.
func (s *ForestLossSeries) Covers(r YearRange) bool {
	if s == nil || !r.Valid() {
		return false
	}
	have := make(map[int]bool, len(s.Points))
	for _, p := range s.Points {
		have[p.Year] = true
	}
	for _, y := range r.Years() {
		if !have[y] {
			return false
		}
	}
	return true
}

// TotalLoss sums hectares lost across all points.
func (s *ForestLossSeries) TotalLoss() float64 {
	if s == nil {
		return 0
	}
	var total float64
	for _, p := range s.Points {
		total += p.HectaresLost
	}
	return total
}
