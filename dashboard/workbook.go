package dashboard

import (
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/xuri/excelize/v2"

	"github.com/antioquia-open-data/mortality-api/dataset"
	"github.com/antioquia-open-data/mortality-api/schema"
	"github.com/antioquia-open-data/mortality-api/utils"
)

const defaultSheet = "Sheet1"

// WorkbookXLSX - the selected rows, the summary table and both rankings of a
// selection as a spreadsheet
func (d *Dashboard) WorkbookXLSX(year schema.YearSelector, metric schema.Metric, l *i18n.Localizer) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	dataSheet := utils.Localize(l, "sheet_data")
	if err := f.SetSheetName(defaultSheet, dataSheet); err != nil {
		return nil, err
	}

	cols := dataset.DefaultColumns()
	if err := f.SetSheetRow(dataSheet, "A1", &[]interface{}{
		cols.Code, cols.Name, cols.Region, cols.Year, cols.Cases, cols.Rate,
	}); err != nil {
		return nil, err
	}

	line := 2
	for _, r := range d.data.Rows() {
		if !year.Match(r.Year) {
			continue
		}
		if err := setRow(f, dataSheet, line, r.MunicipalityCode, r.MunicipalityName, r.RegionName, r.Year, r.CaseCount, r.RatePerThousand); err != nil {
			return nil, err
		}
		line++
	}

	if err := d.summarySheet(f, l); err != nil {
		return nil, err
	}

	for _, direction := range []schema.Direction{schema.Descending, schema.Ascending} {
		if err := d.rankingSheet(f, year, metric, direction, l); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (d *Dashboard) summarySheet(f *excelize.File, l *i18n.Localizer) error {
	sheet := utils.Localize(l, "sheet_summary")
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	header := []interface{}{}
	for _, id := range []string{"summary_variable", "summary_count", "summary_min", "summary_q1", "summary_median", "summary_mean", "summary_q3", "summary_max"} {
		header = append(header, utils.Localize(l, id))
	}
	if err := setRow(f, sheet, 1, header...); err != nil {
		return err
	}

	noData := utils.Localize(l, "label_no_data")
	for i, s := range d.SummaryTable() {
		values := []interface{}{s.Variable, s.Count, s.Min, s.Q1, s.Median, s.Mean, s.Q3, s.Max}
		if s.NoData {
			values = []interface{}{s.Variable, s.Count, noData}
		}
		if err := setRow(f, sheet, i+2, values...); err != nil {
			return err
		}
	}
	return nil
}

func (d *Dashboard) rankingSheet(f *excelize.File, year schema.YearSelector, metric schema.Metric, direction schema.Direction, l *i18n.Localizer) error {
	id := "sheet_ranking_highest"
	if direction == schema.Ascending {
		id = "sheet_ranking_lowest"
	}
	sheet := utils.Localize(l, id)
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	chart := d.Ranking(year, metric, direction, l)
	if err := setRow(f, sheet, 1, utils.Localize(l, "label_municipality"), chart.Label); err != nil {
		return err
	}
	for i, r := range chart.List.Rows {
		if err := setRow(f, sheet, i+2, r.MunicipalityName, r.MetricValue); err != nil {
			return err
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values ...interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}
