package stats

import (
	"sort"

	"github.com/paulmach/orb"

	"github.com/antioquia-open-data/mortality-api/schema"
)

type group struct {
	name  string
	sum   float64
	count int
}

// Aggregate - one value per municipality name for the selected year(s).
//
// The rate is always averaged and the case count is always summed, for a
// specific year as well as for all years. Rows are returned ordered by
// municipality name.
func Aggregate(rows []schema.JoinedRow, metric schema.Metric, year schema.YearSelector) []schema.AggregateRow {
	groups := map[string]*group{}

	for _, r := range rows {
		if !year.Match(r.Year) {
			continue
		}

		g, ok := groups[r.MunicipalityName]
		if !ok {
			g = &group{name: r.MunicipalityName}
			groups[r.MunicipalityName] = g
		}

		switch metric {
		case schema.MetricCaseSum:
			g.sum += float64(r.CaseCount)
		default:
			g.sum += r.RatePerThousand
		}
		g.count++
	}

	result := make([]schema.AggregateRow, 0, len(groups))
	for _, g := range groups {
		value := g.sum
		if metric != schema.MetricCaseSum {
			value = g.sum / float64(g.count)
		}
		result = append(result, schema.AggregateRow{
			MunicipalityName: g.name,
			MetricValue:      value,
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].MunicipalityName < result[j].MunicipalityName
	})

	return result
}

// Geometries - first geometry seen for every municipality name
func Geometries(rows []schema.JoinedRow) map[string]orb.Geometry {
	result := map[string]orb.Geometry{}
	for _, r := range rows {
		if _, ok := result[r.MunicipalityName]; !ok {
			result[r.MunicipalityName] = r.Geometry
		}
	}
	return result
}

// ValueRange - minimum and maximum metric value, ok is false for empty input
func ValueRange(rows []schema.AggregateRow) (schema.ValueRange, bool) {
	if len(rows) == 0 {
		return schema.ValueRange{}, false
	}

	r := schema.ValueRange{Min: rows[0].MetricValue, Max: rows[0].MetricValue}
	for _, row := range rows[1:] {
		if row.MetricValue < r.Min {
			r.Min = row.MetricValue
		}
		if row.MetricValue > r.Max {
			r.Max = row.MetricValue
		}
	}
	return r, true
}

// Years - distinct years in ascending order
func Years(rows []schema.JoinedRow) []int {
	seen := map[int]struct{}{}
	years := make([]int, 0)
	for _, r := range rows {
		if _, ok := seen[r.Year]; ok {
			continue
		}
		seen[r.Year] = struct{}{}
		years = append(years, r.Year)
	}
	sort.Ints(years)
	return years
}
