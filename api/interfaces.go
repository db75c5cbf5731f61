package api

import (
	"context"

	"github.com/nicksnyder/go-i18n/v2/i18n"

	"github.com/antioquia-open-data/mortality-api/dashboard"
	"github.com/antioquia-open-data/mortality-api/schema"
)

//go:generate mockgen -destination=mocks/mock_interfaces.go -package=mocks github.com/antioquia-open-data/mortality-api/api Dashboard,Pinger

// Dashboard - the read only operations served over http
type Dashboard interface {
	DatasetID() string
	Information() dashboard.Information
	Years() []int
	Render(year schema.YearSelector, metric schema.Metric, l *i18n.Localizer) dashboard.PresentationModel
	MapLayer(year schema.YearSelector, metric schema.Metric, l *i18n.Localizer) dashboard.MapLayer
	Ranking(year schema.YearSelector, metric schema.Metric, direction schema.Direction, l *i18n.Localizer) dashboard.Chart
	SummaryTable() []schema.Summary
	Table(page, size int, l *i18n.Localizer) dashboard.Page
	History(key string, l *i18n.Localizer) (schema.MunicipalityHistory, bool)
	WorkbookXLSX(year schema.YearSelector, metric schema.Metric, l *i18n.Localizer) ([]byte, error)
}

// Pinger - a backing store the health check probes
type Pinger interface {
	Ping(ctx context.Context) error
}
