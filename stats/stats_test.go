package stats

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/antioquia-open-data/mortality-api/schema"
)

func square(x float64) orb.Polygon {
	return orb.Polygon{{{x, 0}, {x + 1, 0}, {x + 1, 1}, {x, 1}, {x, 0}}}
}

func row(code, name string, year int, cases int64, rate float64) schema.JoinedRow {
	return schema.JoinedRow{
		MortalityRecord: schema.MortalityRecord{
			MunicipalityCode: code,
			MunicipalityName: name,
			RegionName:       "VALLE DE ABURRÁ",
			Year:             year,
			CaseCount:        cases,
			RatePerThousand:  rate,
		},
		Geometry: square(float64(len(code))),
	}
}

func TestJoin(t *testing.T) {
	records := []schema.MortalityRecord{
		{MunicipalityCode: "05001", MunicipalityName: "A", Year: 2020},
		{MunicipalityCode: "05999", MunicipalityName: "X", Year: 2020},
		{MunicipalityCode: "05002", MunicipalityName: "B", Year: 2020},
		{MunicipalityCode: "05001", MunicipalityName: "A", Year: 2021},
		{MunicipalityCode: "05999", MunicipalityName: "X", Year: 2021},
	}
	boundaries := map[string]schema.MunicipalBoundary{
		"05001": {MunicipalityCode: "05001", Geometry: square(1)},
		"05002": {MunicipalityCode: "05002", Geometry: square(2)},
		"05004": {MunicipalityCode: "05004", Geometry: square(4)},
	}

	rows, report := Join(records, boundaries)

	require.Len(t, rows, 3)
	assert.Equal(t, "05001", rows[0].MunicipalityCode)
	assert.Equal(t, 2020, rows[0].Year)
	assert.Equal(t, "05002", rows[1].MunicipalityCode)
	assert.Equal(t, "05001", rows[2].MunicipalityCode)
	assert.Equal(t, 2021, rows[2].Year)
	assert.Equal(t, square(1), rows[0].Geometry)

	assert.Equal(t, 5, report.Records)
	assert.Equal(t, 3, report.Matched)
	assert.Equal(t, 2, report.UnmatchedRecords)
	assert.Equal(t, []string{"05999"}, report.UnmatchedCodes)
	assert.Equal(t, []string{"05004"}, report.BoundariesWithoutRecords)
	assert.True(t, report.HasMismatch())
}

func TestJoinOneRowPerMunicipalityYear(t *testing.T) {
	var records []schema.MortalityRecord
	boundaries := map[string]schema.MunicipalBoundary{}
	for i := 0; i < 5; i++ {
		code := fmt.Sprintf("05%03d", i)
		boundaries[code] = schema.MunicipalBoundary{MunicipalityCode: code}
		for year := 2005; year <= 2007; year++ {
			records = append(records, schema.MortalityRecord{MunicipalityCode: code, Year: year})
		}
	}

	rows, report := Join(records, boundaries)
	assert.Len(t, rows, 15)
	assert.False(t, report.HasMismatch())

	seen := map[string]int{}
	for _, r := range rows {
		seen[fmt.Sprintf("%s/%d", r.MunicipalityCode, r.Year)]++
	}
	for key, count := range seen {
		assert.Equal(t, 1, count, key)
	}
}

func TestAggregateSpecificYearCaseSum(t *testing.T) {
	rows := []schema.JoinedRow{
		row("05001", "A", 2020, 120, 1.0),
		row("05002", "B", 2020, 45, 2.0),
		row("05003", "C", 2020, 300, 3.0),
		row("05003", "C", 2021, 999, 9.0),
	}

	agg := Aggregate(rows, schema.MetricCaseSum, schema.SpecificYear(2020))
	assert.Equal(t, []schema.AggregateRow{
		{MunicipalityName: "A", MetricValue: 120},
		{MunicipalityName: "B", MetricValue: 45},
		{MunicipalityName: "C", MetricValue: 300},
	}, agg)

	ranked := Rank(agg, schema.Descending, DefaultLimit)
	assert.Equal(t, []schema.AggregateRow{
		{MunicipalityName: "C", MetricValue: 300},
		{MunicipalityName: "A", MetricValue: 120},
		{MunicipalityName: "B", MetricValue: 45},
	}, ranked)
}

func TestAggregateAllYearsRateMeanTie(t *testing.T) {
	rows := []schema.JoinedRow{
		row("05002", "B", 2020, 1, 3.0),
		row("05001", "A", 2020, 1, 1.5),
		row("05002", "B", 2021, 1, 1.0),
		row("05001", "A", 2021, 1, 2.5),
	}

	agg := Aggregate(rows, schema.MetricRateMean, schema.AllYears())
	assert.Equal(t, []schema.AggregateRow{
		{MunicipalityName: "A", MetricValue: 2.0},
		{MunicipalityName: "B", MetricValue: 2.0},
	}, agg)

	for _, d := range []schema.Direction{schema.Ascending, schema.Descending} {
		ranked := Rank(agg, d, DefaultLimit)
		require.Len(t, ranked, 2)
		assert.Equal(t, "A", ranked[0].MunicipalityName, d)
		assert.Equal(t, "B", ranked[1].MunicipalityName, d)
	}
}

func TestAggregateAllYearsCaseSum(t *testing.T) {
	rows := []schema.JoinedRow{
		row("05001", "A", 2020, 10, 1.5),
		row("05001", "A", 2021, 15, 2.5),
		row("05002", "B", 2021, 7, 1.0),
	}

	agg := Aggregate(rows, schema.MetricCaseSum, schema.AllYears())
	assert.Equal(t, []schema.AggregateRow{
		{MunicipalityName: "A", MetricValue: 25},
		{MunicipalityName: "B", MetricValue: 7},
	}, agg)
}

func TestAggregateOneRowPerMunicipality(t *testing.T) {
	var rows []schema.JoinedRow
	for i := 0; i < 30; i++ {
		name := fmt.Sprintf("M%02d", i%12)
		rows = append(rows, row(fmt.Sprintf("05%03d", i%12), name, 2005+i%3, int64(i), float64(i)/10))
	}

	for _, metric := range []schema.Metric{schema.MetricRateMean, schema.MetricCaseSum} {
		for _, year := range []schema.YearSelector{schema.AllYears(), schema.SpecificYear(2006)} {
			agg := Aggregate(rows, metric, year)

			expected := map[string]struct{}{}
			for _, r := range rows {
				if year.Match(r.Year) {
					expected[r.MunicipalityName] = struct{}{}
				}
			}

			names := map[string]struct{}{}
			for _, a := range agg {
				_, dup := names[a.MunicipalityName]
				assert.False(t, dup, a.MunicipalityName)
				names[a.MunicipalityName] = struct{}{}
			}
			assert.Equal(t, expected, names)
		}
	}
}

func TestAggregateEmptySelection(t *testing.T) {
	rows := []schema.JoinedRow{row("05001", "A", 2020, 1, 1)}

	agg := Aggregate(rows, schema.MetricRateMean, schema.SpecificYear(1999))
	assert.NotNil(t, agg)
	assert.Len(t, agg, 0)

	_, ok := ValueRange(agg)
	assert.False(t, ok)

	ranked := Rank(agg, schema.Descending, DefaultLimit)
	assert.Len(t, ranked, 0)
}

func TestRankLimitAndMonotonicity(t *testing.T) {
	var agg []schema.AggregateRow
	for i := 0; i < 25; i++ {
		agg = append(agg, schema.AggregateRow{
			MunicipalityName: fmt.Sprintf("M%02d", i),
			MetricValue:      float64((i * 7) % 11),
		})
	}

	desc := Rank(agg, schema.Descending, DefaultLimit)
	assert.Len(t, desc, DefaultLimit)
	for i := 1; i < len(desc); i++ {
		assert.True(t, desc[i-1].MetricValue >= desc[i].MetricValue)
	}

	asc := Rank(agg, schema.Ascending, DefaultLimit)
	assert.Len(t, asc, DefaultLimit)
	for i := 1; i < len(asc); i++ {
		assert.True(t, asc[i-1].MetricValue <= asc[i].MetricValue)
	}

	short := Rank(agg[:4], schema.Descending, DefaultLimit)
	assert.Len(t, short, 4)

	// input must not be reordered
	assert.Equal(t, "M00", agg[0].MunicipalityName)
}

func TestRankingIsDeterministic(t *testing.T) {
	var rows []schema.JoinedRow
	for i := 0; i < 40; i++ {
		rows = append(rows, row(fmt.Sprintf("05%03d", i%15), fmt.Sprintf("M%02d", i%15), 2005+i%4, int64(i%5), float64(i%3)))
	}

	first, err := json.Marshal(Ranking(rows, schema.MetricRateMean, schema.AllYears(), schema.Descending, DefaultLimit))
	require.NoError(t, err)
	second, err := json.Marshal(Ranking(rows, schema.MetricRateMean, schema.AllYears(), schema.Descending, DefaultLimit))
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))
}

func TestValueRangeAndYears(t *testing.T) {
	r, ok := ValueRange([]schema.AggregateRow{
		{MunicipalityName: "A", MetricValue: 3},
		{MunicipalityName: "B", MetricValue: 1},
		{MunicipalityName: "C", MetricValue: 7},
	})
	assert.True(t, ok)
	assert.Equal(t, schema.ValueRange{Min: 1, Max: 7}, r)

	rows := []schema.JoinedRow{
		row("05001", "A", 2021, 1, 1),
		row("05001", "A", 2005, 1, 1),
		row("05002", "B", 2021, 1, 1),
	}
	assert.Equal(t, []int{2005, 2021}, Years(rows))
}

func TestSummarize(t *testing.T) {
	s := Summarize("NumeroCasos", []float64{4, 1, 3, 2})
	assert.False(t, s.NoData)
	assert.Equal(t, 4, s.Count)
	assert.Equal(t, 1.0, s.Min)
	assert.Equal(t, 4.0, s.Max)
	assert.Equal(t, 2.5, s.Mean)
	assert.InDelta(t, 1.75, s.Q1, 1e-9)
	assert.InDelta(t, 2.5, s.Median, 1e-9)
	assert.InDelta(t, 3.25, s.Q3, 1e-9)

	one := Summarize("TasaXMilHabitantes", []float64{5})
	assert.Equal(t, 5.0, one.Q1)
	assert.Equal(t, 5.0, one.Median)
	assert.Equal(t, 5.0, one.Q3)
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize("NumeroCasos", nil)
	assert.True(t, s.NoData)
	assert.Equal(t, 0, s.Count)
	assert.Equal(t, 0.0, s.Mean)

	table := SummaryTable(nil)
	require.Len(t, table, 2)
	assert.True(t, table[0].NoData)
	assert.True(t, table[1].NoData)
}

func TestHistory(t *testing.T) {
	rows := []schema.JoinedRow{
		row("05001", "A", 2021, 3, 1.1),
		row("05002", "B", 2020, 4, 1.2),
		row("05001", "A", 2020, 5, 1.3),
	}

	h, ok := History(rows, func(r schema.MortalityRecord) bool { return r.MunicipalityCode == "05001" })
	assert.True(t, ok)
	assert.Equal(t, "A", h.MunicipalityName)
	assert.Equal(t, []schema.YearValue{
		{Year: 2020, CaseCount: 5, RatePerThousand: 1.3},
		{Year: 2021, CaseCount: 3, RatePerThousand: 1.1},
	}, h.Years)

	_, ok = History(rows, func(r schema.MortalityRecord) bool { return false })
	assert.False(t, ok)
}
