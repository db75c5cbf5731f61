package schema

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

type Metric string

const (
	MetricRateMean Metric = "rate_mean"
	MetricCaseSum  Metric = "case_sum"
)

var (
	ErrInvalidMetric    = fmt.Errorf("invalid metric")
	ErrInvalidDirection = fmt.Errorf("invalid direction")
	ErrInvalidYear      = fmt.Errorf("invalid year")
)

// ParseMetric - accepts the metric names and the source column names
func ParseMetric(s string) (Metric, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "rate", "rate_mean", "tasaxmilhabitantes", "tasa":
		return MetricRateMean, nil
	case "cases", "case_sum", "numerocasos", "casos":
		return MetricCaseSum, nil
	}
	return "", ErrInvalidMetric
}

// Column - source column the metric is computed from
func (m Metric) Column() string {
	if m == MetricCaseSum {
		return "NumeroCasos"
	}
	return "TasaXMilHabitantes"
}

type Direction string

const (
	Ascending  Direction = "ascending"
	Descending Direction = "descending"
)

// ParseDirection - `top`/`high` means descending, `bottom`/`low` ascending
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "desc", "descending", "top", "high", "highest":
		return Descending, nil
	case "asc", "ascending", "bottom", "low", "lowest":
		return Ascending, nil
	}
	return "", ErrInvalidDirection
}

// AllYearsLabel - sentinel rendered for the all years selector
const AllYearsLabel = "all"

var allYearsAliases = map[string]struct{}{
	"":                {},
	"all":             {},
	"todos":           {},
	"todos los años":  {},
	"todos los anios": {},
}

// YearSelector - either a specific year or every year of the dataset
type YearSelector struct {
	year int
	all  bool
}

// AllYears - selector covering every year
func AllYears() YearSelector {
	return YearSelector{all: true}
}

// SpecificYear - selector of one year
func SpecificYear(year int) YearSelector {
	return YearSelector{year: year}
}

// ParseYearSelector - parse a year or one of the all years sentinels
func ParseYearSelector(s string) (YearSelector, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if _, ok := allYearsAliases[v]; ok {
		return AllYears(), nil
	}

	year, err := strconv.Atoi(v)
	if err != nil || year <= 0 {
		return YearSelector{}, ErrInvalidYear
	}
	return SpecificYear(year), nil
}

// IsAll - true when the selector covers every year
func (y YearSelector) IsAll() bool {
	return y.all
}

// Year - the selected year, ok is false for the all years selector
func (y YearSelector) Year() (int, bool) {
	return y.year, !y.all
}

// Match - return true if the given year is covered by the selector
func (y YearSelector) Match(year int) bool {
	return y.all || y.year == year
}

func (y YearSelector) String() string {
	if y.all {
		return AllYearsLabel
	}
	return strconv.Itoa(y.year)
}

func (y YearSelector) MarshalJSON() ([]byte, error) {
	if y.all {
		return json.Marshal(AllYearsLabel)
	}
	return json.Marshal(y.year)
}

func (y *YearSelector) UnmarshalJSON(data []byte) error {
	var year int
	if err := json.Unmarshal(data, &year); err == nil {
		*y = SpecificYear(year)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return ErrInvalidYear
	}
	parsed, err := ParseYearSelector(s)
	if err != nil {
		return err
	}
	*y = parsed
	return nil
}
