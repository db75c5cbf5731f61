package schema

// Summary - six number summary of a numeric column
type Summary struct {
	Variable string  `json:"variable"`
	Count    int     `json:"count"`
	NoData   bool    `json:"no_data"`
	Min      float64 `json:"min"`
	Q1       float64 `json:"q1"`
	Median   float64 `json:"median"`
	Mean     float64 `json:"mean"`
	Q3       float64 `json:"q3"`
	Max      float64 `json:"max"`
}

// ValueRange - minimum and maximum metric values, used for color scales
type ValueRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// YearValue - metric value of a municipality in one year
type YearValue struct {
	Year            int     `json:"year"`
	CaseCount       int64   `json:"case_count"`
	RatePerThousand float64 `json:"rate_per_thousand"`
}

// MunicipalityHistory - every year of one municipality
type MunicipalityHistory struct {
	MunicipalityCode string      `json:"municipality_code"`
	MunicipalityName string      `json:"municipality_name"`
	RegionName       string      `json:"region_name"`
	Years            []YearValue `json:"years"`
}
