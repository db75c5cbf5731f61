package dataset

import (
	"github.com/antioquia-open-data/mortality-api/consts"
)

// Columns - source column names of both tables
type Columns struct {
	Code   string
	Name   string
	Region string
	Year   string
	Cases  string
	Rate   string

	BoundaryRegion string
	BoundaryCode   string
	BoundaryName   string
}

// DefaultColumns - the column names of the datos.gov.co export and the DANE
// MGN municipal layer
func DefaultColumns() Columns {
	return Columns{
		Code:           "CodigoMunicipio",
		Name:           "NombreMunicipio",
		Region:         "NombreRegion",
		Year:           "Año",
		Cases:          "NumeroCasos",
		Rate:           "TasaXMilHabitantes",
		BoundaryRegion: "DPTO_CCDGO",
		BoundaryCode:   "MPIO_CDPMP",
		BoundaryName:   "MPIO_CNMBR",
	}
}

const (
	DefaultRegionCode = consts.AntioquiaCode
	DefaultCodeWidth  = 5
	regionCodeWidth   = 2
)

// Config - where the tables live and how to read them
type Config struct {
	Records    string
	Boundaries string
	Prejoined  string
	RegionCode string
	CodeWidth  int
	CRS        string
	Delimiter  string
	Columns    Columns
}

func (c Config) withDefaults() Config {
	d := DefaultColumns()
	fill := func(v *string, def string) {
		if *v == "" {
			*v = def
		}
	}

	fill(&c.Columns.Code, d.Code)
	fill(&c.Columns.Name, d.Name)
	fill(&c.Columns.Region, d.Region)
	fill(&c.Columns.Year, d.Year)
	fill(&c.Columns.Cases, d.Cases)
	fill(&c.Columns.Rate, d.Rate)
	fill(&c.Columns.BoundaryRegion, d.BoundaryRegion)
	fill(&c.Columns.BoundaryCode, d.BoundaryCode)
	fill(&c.Columns.BoundaryName, d.BoundaryName)
	fill(&c.Delimiter, ",")
	fill(&c.RegionCode, DefaultRegionCode)

	if c.CodeWidth <= 0 {
		c.CodeWidth = DefaultCodeWidth
	}
	c.RegionCode = NormalizeCode(c.RegionCode, regionCodeWidth)
	return c
}

// inRegion - a boundary is kept when its region column matches, or when the
// column is absent, when its municipality code starts with the region code
func (c Config) inRegion(region, code string) bool {
	if region != "" {
		return NormalizeCode(region, regionCodeWidth) == c.RegionCode
	}
	return len(code) == c.CodeWidth && code[:regionCodeWidth] == c.RegionCode
}
