package stats

import (
	"sort"

	"github.com/antioquia-open-data/mortality-api/schema"
)

// Join - attach the boundary geometry to every record whose municipality code
// has a boundary. Records without a boundary are left out and reported.
// The input order of the records is preserved.
func Join(records []schema.MortalityRecord, boundaries map[string]schema.MunicipalBoundary) ([]schema.JoinedRow, schema.JoinReport) {
	rows := make([]schema.JoinedRow, 0, len(records))
	report := schema.JoinReport{
		Records:                  len(records),
		UnmatchedCodes:           []string{},
		BoundariesWithoutRecords: []string{},
	}

	unmatched := map[string]struct{}{}
	used := make(map[string]struct{}, len(boundaries))

	for _, r := range records {
		b, ok := boundaries[r.MunicipalityCode]
		if !ok {
			report.UnmatchedRecords++
			if _, seen := unmatched[r.MunicipalityCode]; !seen {
				unmatched[r.MunicipalityCode] = struct{}{}
				report.UnmatchedCodes = append(report.UnmatchedCodes, r.MunicipalityCode)
			}
			continue
		}

		used[r.MunicipalityCode] = struct{}{}
		rows = append(rows, schema.JoinedRow{
			MortalityRecord: r,
			Geometry:        b.Geometry,
		})
	}

	for code := range boundaries {
		if _, ok := used[code]; !ok {
			report.BoundariesWithoutRecords = append(report.BoundariesWithoutRecords, code)
		}
	}

	report.Matched = len(rows)
	sort.Strings(report.UnmatchedCodes)
	sort.Strings(report.BoundariesWithoutRecords)

	return rows, report
}
