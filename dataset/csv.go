package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/antioquia-open-data/mortality-api/schema"
)

const utf8BOM = "\ufeff"

// columnIndex - position of every required column in a header row
func columnIndex(header []string, names ...string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, utf8BOM))
		index[strings.ToLower(h)] = i
	}

	result := make(map[string]int, len(names))
	var missing []string
	for _, n := range names {
		i, ok := index[strings.ToLower(n)]
		if !ok {
			missing = append(missing, n)
			continue
		}
		result[n] = i
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}
	return result, nil
}

// ReadRecords - parse the delimited mortality table
func ReadRecords(r io.Reader, source string, cfg Config) ([]schema.MortalityRecord, error) {
	cfg = cfg.withDefaults()
	cols := cfg.Columns

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	if d, _ := utf8.DecodeRuneInString(cfg.Delimiter); d != utf8.RuneError {
		reader.Comma = d
	}

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, loadError(source, StageParse, ErrNoRecords)
		}
		return nil, loadError(source, StageParse, err)
	}

	idx, err := columnIndex(header, cols.Code, cols.Name, cols.Region, cols.Year, cols.Cases, cols.Rate)
	if err != nil {
		return nil, loadError(source, StageColumns, err)
	}

	records := make([]schema.MortalityRecord, 0)
	for line := 2; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, loadError(source, StageParse, err)
		}
		if isBlank(row) {
			continue
		}

		field := func(name string) string {
			i := idx[name]
			if i >= len(row) {
				return ""
			}
			return row[i]
		}

		record, err := parseRecord(field, cols, cfg.CodeWidth)
		if err != nil {
			return nil, loadError(source, StageValue, fmt.Errorf("line %d: %w", line, err))
		}
		records = append(records, record)
	}

	return records, nil
}

// parseRecord - build a record from a column lookup shared by the csv and
// the pre-joined geojson readers
func parseRecord(field func(string) string, cols Columns, width int) (schema.MortalityRecord, error) {
	code := NormalizeCode(field(cols.Code), width)
	if code == "" {
		return schema.MortalityRecord{}, fmt.Errorf("%w: empty %s", ErrInvalidValue, cols.Code)
	}

	year, err := parseYear(field(cols.Year))
	if err != nil {
		return schema.MortalityRecord{}, fmt.Errorf("%s: %w", cols.Year, err)
	}

	cases, err := parseCount(field(cols.Cases))
	if err != nil {
		return schema.MortalityRecord{}, fmt.Errorf("%s: %w", cols.Cases, err)
	}

	rate, err := parseRate(field(cols.Rate))
	if err != nil {
		return schema.MortalityRecord{}, fmt.Errorf("%s: %w", cols.Rate, err)
	}

	return schema.MortalityRecord{
		MunicipalityCode: code,
		MunicipalityName: strings.TrimSpace(field(cols.Name)),
		RegionName:       strings.TrimSpace(field(cols.Region)),
		Year:             year,
		CaseCount:        cases,
		RatePerThousand:  rate,
	}, nil
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
