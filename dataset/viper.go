package dataset

import (
	"github.com/spf13/viper"
)

// ConfigFrom - data configuration under the given viper key. Every value is
// read with its full key so an environment variable such as
// MORTALITY_DATA_RECORDS applies even without a config file.
func ConfigFrom(v *viper.Viper, key string) Config {
	get := func(name string) string {
		return v.GetString(key + "." + name)
	}

	return Config{
		Records:    get("records"),
		Boundaries: get("boundaries"),
		Prejoined:  get("prejoined"),
		RegionCode: get("region_code"),
		CodeWidth:  v.GetInt(key + ".code_width"),
		CRS:        get("crs"),
		Delimiter:  get("delimiter"),
		Columns: Columns{
			Code:           get("columns.code"),
			Name:           get("columns.name"),
			Region:         get("columns.region"),
			Year:           get("columns.year"),
			Cases:          get("columns.cases"),
			Rate:           get("columns.rate"),
			BoundaryRegion: get("columns.boundary_region"),
			BoundaryCode:   get("columns.boundary_code"),
			BoundaryName:   get("columns.boundary_name"),
		},
	}
}
