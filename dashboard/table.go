package dashboard

import (
	"github.com/nicksnyder/go-i18n/v2/i18n"

	"github.com/antioquia-open-data/mortality-api/schema"
)

const (
	DefaultPageSize = 15
	MaxPageSize     = 500
)

// Page - a slice of the joined table without geometry
type Page struct {
	Page     int                      `json:"page"`
	PageSize int                      `json:"page_size"`
	Total    int                      `json:"total"`
	Pages    int                      `json:"pages"`
	Rows     []schema.MortalityRecord `json:"rows"`
}

// Table - page of the joined table in load order, pages start at 1.
// A page past the end is empty. Region names follow the localizer language.
func (d *Dashboard) Table(page, size int, l *i18n.Localizer) Page {
	if page < 1 {
		page = 1
	}
	if size <= 0 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}

	rows := d.data.Rows()
	p := Page{
		Page:     page,
		PageSize: size,
		Total:    len(rows),
		Pages:    (len(rows) + size - 1) / size,
		Rows:     make([]schema.MortalityRecord, 0, size),
	}

	start := (page - 1) * size
	if start >= len(rows) {
		return p
	}
	end := start + size
	if end > len(rows) {
		end = len(rows)
	}
	regions := regionNamer(l)
	for _, r := range rows[start:end] {
		record := r.MortalityRecord
		record.RegionName = regions(record.RegionName)
		p.Rows = append(p.Rows, record)
	}
	return p
}
