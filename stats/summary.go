package stats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/antioquia-open-data/mortality-api/schema"
)

// Summarize - six number summary, NoData is set for an empty input
func Summarize(variable string, values []float64) schema.Summary {
	s := schema.Summary{
		Variable: variable,
		Count:    len(values),
	}
	if len(values) == 0 {
		s.NoData = true
		return s
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	s.Min = floats.Min(sorted)
	s.Max = floats.Max(sorted)
	s.Mean = stat.Mean(sorted, nil)
	s.Q1 = Quantile(sorted, 0.25)
	s.Median = Quantile(sorted, 0.5)
	s.Q3 = Quantile(sorted, 0.75)
	return s
}

// Quantile - linear interpolation between the closest ranks, the same
// definition pandas uses by default. sorted must be in ascending order.
func Quantile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return math.NaN()
	}
	if n == 1 {
		return sorted[0]
	}

	h := float64(n-1) * p
	lo := int(math.Floor(h))
	if lo >= n-1 {
		return sorted[n-1]
	}
	return sorted[lo] + (h-float64(lo))*(sorted[lo+1]-sorted[lo])
}

// CaseCounts - case count column of the joined rows
func CaseCounts(rows []schema.JoinedRow) []float64 {
	values := make([]float64, len(rows))
	for i, r := range rows {
		values[i] = float64(r.CaseCount)
	}
	return values
}

// Rates - rate per thousand column of the joined rows
func Rates(rows []schema.JoinedRow) []float64 {
	values := make([]float64, len(rows))
	for i, r := range rows {
		values[i] = r.RatePerThousand
	}
	return values
}

// SummaryTable - summaries of both numeric columns over the whole table
func SummaryTable(rows []schema.JoinedRow) []schema.Summary {
	return []schema.Summary{
		Summarize(schema.MetricCaseSum.Column(), CaseCounts(rows)),
		Summarize(schema.MetricRateMean.Column(), Rates(rows)),
	}
}
