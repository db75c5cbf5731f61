package stats

import (
	"sort"

	"github.com/antioquia-open-data/mortality-api/schema"
)

// DefaultLimit - size of the top and bottom lists
const DefaultLimit = 10

// Rank - sort by metric value in the given direction, ties broken by
// municipality name ascending, and keep at most limit rows
func Rank(rows []schema.AggregateRow, direction schema.Direction, limit int) []schema.AggregateRow {
	sorted := make([]schema.AggregateRow, len(rows))
	copy(sorted, rows)

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.MetricValue != b.MetricValue {
			if direction == schema.Ascending {
				return a.MetricValue < b.MetricValue
			}
			return a.MetricValue > b.MetricValue
		}
		return a.MunicipalityName < b.MunicipalityName
	})

	if limit >= 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}

// Ranking - aggregate then rank, the input of the top and bottom charts
func Ranking(rows []schema.JoinedRow, metric schema.Metric, year schema.YearSelector, direction schema.Direction, limit int) schema.RankedList {
	return schema.RankedList{
		Metric:    metric,
		Direction: direction,
		Year:      year,
		Rows:      Rank(Aggregate(rows, metric, year), direction, limit),
	}
}
