package schema

import (
	"github.com/paulmach/orb"
)

const (
	RecordCollection   = "mortality"
	BoundaryCollection = "boundary"

	// imports are written here first and renamed over the live collection
	RecordStagingCollection   = "mortality_staging"
	BoundaryStagingCollection = "boundary_staging"
)

// MortalityRecord - one row of the mortality table, one municipality in one year
type MortalityRecord struct {
	MunicipalityCode string  `json:"municipality_code" bson:"municipality_code"`
	MunicipalityName string  `json:"municipality_name" bson:"municipality_name"`
	RegionName       string  `json:"region_name" bson:"region_name"`
	Year             int     `json:"year" bson:"year"`
	CaseCount        int64   `json:"case_count" bson:"case_count"`
	RatePerThousand  float64 `json:"rate_per_thousand" bson:"rate_per_thousand"`
}

// MunicipalBoundary - polygon of a municipality in geographic coordinates
type MunicipalBoundary struct {
	MunicipalityCode string       `json:"municipality_code"`
	MunicipalityName string       `json:"municipality_name"`
	Geometry         orb.Geometry `json:"-"`
}

// JoinedRow - a mortality record with the geometry of its municipality attached
type JoinedRow struct {
	MortalityRecord
	Geometry orb.Geometry `json:"-"`
}

// AggregateRow - metric value of a single municipality
type AggregateRow struct {
	MunicipalityName string  `json:"municipality_name"`
	MetricValue      float64 `json:"metric_value"`
}

// RankedList - ordered aggregate rows, at most the requested limit
type RankedList struct {
	Metric    Metric         `json:"metric"`
	Direction Direction      `json:"direction"`
	Year      YearSelector   `json:"year"`
	Rows      []AggregateRow `json:"rows"`
}

// JoinReport - diagnostics of a record to boundary join
type JoinReport struct {
	Records                  int      `json:"records"`
	Matched                  int      `json:"matched"`
	UnmatchedRecords         int      `json:"unmatched_records"`
	UnmatchedCodes           []string `json:"unmatched_codes"`
	BoundariesWithoutRecords []string `json:"boundaries_without_records"`
}

// HasMismatch - return true when either side has a code missing on the other
func (r JoinReport) HasMismatch() bool {
	return r.UnmatchedRecords > 0 || len(r.BoundariesWithoutRecords) > 0
}
