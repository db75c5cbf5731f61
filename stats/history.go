package stats

import (
	"sort"

	"github.com/antioquia-open-data/mortality-api/schema"
)

// History - yearly values of the municipality matched by the given predicate,
// ok is false when no row matches
func History(rows []schema.JoinedRow, match func(schema.MortalityRecord) bool) (schema.MunicipalityHistory, bool) {
	var h schema.MunicipalityHistory
	found := false

	for _, r := range rows {
		if !match(r.MortalityRecord) {
			continue
		}
		if !found {
			h.MunicipalityCode = r.MunicipalityCode
			h.MunicipalityName = r.MunicipalityName
			h.RegionName = r.RegionName
			found = true
		}
		h.Years = append(h.Years, schema.YearValue{
			Year:            r.Year,
			CaseCount:       r.CaseCount,
			RatePerThousand: r.RatePerThousand,
		})
	}

	sort.SliceStable(h.Years, func(i, j int) bool {
		return h.Years[i].Year < h.Years[j].Year
	})
	return h, found
}
