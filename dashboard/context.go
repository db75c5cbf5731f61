package dashboard

import (
	"context"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/antioquia-open-data/mortality-api/consts"
	"github.com/antioquia-open-data/mortality-api/dataset"
	"github.com/antioquia-open-data/mortality-api/schema"
	"github.com/antioquia-open-data/mortality-api/stats"
)

const contextLogPrefix = "data-context"

// DataContext - the joined table, built once and never mutated afterwards.
// It is safe to share between requests.
type DataContext struct {
	id         string
	loadedAt   time.Time
	records    int
	boundaries int
	rows       []schema.JoinedRow
	years      []int
	report     schema.JoinReport
}

// NewDataContext - join the two tables and report codes missing on either side
func NewDataContext(records []schema.MortalityRecord, boundaries map[string]schema.MunicipalBoundary) *DataContext {
	rows, report := stats.Join(records, boundaries)

	c := &DataContext{
		id:         uuid.New().String(),
		loadedAt:   time.Now().UTC(),
		records:    len(records),
		boundaries: len(boundaries),
		rows:       rows,
		years:      stats.Years(rows),
		report:     report,
	}

	logger := log.WithField("prefix", contextLogPrefix).WithField("dataset_id", c.id)
	if report.HasMismatch() {
		logger.WithField("unmatched_records", report.UnmatchedRecords).
			WithField("unmatched_codes", report.UnmatchedCodes).
			WithField("boundaries_without_records", report.BoundariesWithoutRecords).
			Warn("municipality codes without counterpart were dropped from the join")
	}
	logger.WithField("rows", len(rows)).WithField("years", len(c.years)).Info("data context ready")

	return c
}

// Load - read both tables from the source and build the context
func Load(ctx context.Context, src dataset.Source) (*DataContext, error) {
	records, boundaries, err := src.Load(ctx)
	if err != nil {
		return nil, err
	}
	return NewDataContext(records, boundaries), nil
}

func (c *DataContext) ID() string {
	return c.id
}

func (c *DataContext) LoadedAt() time.Time {
	return c.loadedAt
}

// Rows - the joined table, callers must not modify it
func (c *DataContext) Rows() []schema.JoinedRow {
	return c.rows
}

func (c *DataContext) Years() []int {
	years := make([]int, len(c.years))
	copy(years, c.years)
	return years
}

func (c *DataContext) Report() schema.JoinReport {
	return c.report
}

// Information - dataset level facts
type Information struct {
	Department     string            `json:"department"`
	DepartmentCode string            `json:"department_code"`
	DatasetID      string            `json:"dataset_id"`
	LoadedAt       time.Time         `json:"loaded_at"`
	Records        int               `json:"records"`
	Boundaries     int               `json:"boundaries"`
	Rows           int               `json:"rows"`
	Municipalities int               `json:"municipalities"`
	Years          []int             `json:"years"`
	JoinReport     schema.JoinReport `json:"join_report"`
}

func (c *DataContext) Information() Information {
	names := map[string]struct{}{}
	for _, r := range c.rows {
		names[r.MunicipalityName] = struct{}{}
	}

	return Information{
		Department:     consts.AntioquiaName,
		DepartmentCode: consts.AntioquiaCode,
		DatasetID:      c.id,
		LoadedAt:       c.loadedAt,
		Records:        c.records,
		Boundaries:     c.boundaries,
		Rows:           len(c.rows),
		Municipalities: len(names),
		Years:          c.Years(),
		JoinReport:     c.report,
	}
}
