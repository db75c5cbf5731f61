package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/antioquia-open-data/mortality-api/schema"
)

type crsMember struct {
	CRS *struct {
		Properties struct {
			Name string `json:"name"`
		} `json:"properties"`
	} `json:"crs"`
}

func readFeatureCollection(path, override string) (*geojson.FeatureCollection, int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, loadError(path, StageOpen, err)
	}

	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, 0, loadError(path, StageParse, err)
	}

	epsg := EPSGWGS84
	if override != "" {
		epsg, err = ParseEPSG(override)
	} else {
		var m crsMember
		if json.Unmarshal(data, &m) == nil && m.CRS != nil && m.CRS.Properties.Name != "" {
			epsg, err = ParseEPSG(m.CRS.Properties.Name)
		}
	}
	if err != nil {
		return nil, 0, loadError(path, StageProjection, err)
	}
	return fc, epsg, nil
}

// property - feature property as text, numbers are formatted without
// trailing zeros so codes typed as numbers still normalize
func property(p geojson.Properties, key string) string {
	v, ok := p[key]
	if !ok {
		for k, value := range p {
			if strings.EqualFold(k, key) {
				v, ok = value, true
				break
			}
		}
	}
	if !ok || v == nil {
		return ""
	}

	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	}
	return fmt.Sprint(v)
}

func hasProperty(fc *geojson.FeatureCollection, key string) bool {
	for _, f := range fc.Features {
		for k := range f.Properties {
			if strings.EqualFold(k, key) {
				return true
			}
		}
	}
	return false
}

func featureGeometry(f *geojson.Feature, epsg int) (orb.Geometry, error) {
	switch f.Geometry.(type) {
	case orb.Polygon, orb.MultiPolygon:
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedShape, f.Geometry)
	}
	return ToWGS84(f.Geometry, epsg)
}

// ReadGeoJSONBoundaries - municipal boundaries of the configured region from
// a GeoJSON feature collection
func ReadGeoJSONBoundaries(path string, cfg Config) (map[string]schema.MunicipalBoundary, error) {
	cfg = cfg.withDefaults()
	cols := cfg.Columns

	fc, epsg, err := readFeatureCollection(path, cfg.CRS)
	if err != nil {
		return nil, err
	}
	for _, c := range []string{cols.BoundaryCode, cols.BoundaryName} {
		if len(fc.Features) > 0 && !hasProperty(fc, c) {
			return nil, loadError(path, StageColumns, fmt.Errorf("%w: %s", ErrMissingColumn, c))
		}
	}

	boundaries := map[string]schema.MunicipalBoundary{}
	for i, f := range fc.Features {
		code := NormalizeCode(property(f.Properties, cols.BoundaryCode), cfg.CodeWidth)
		if code == "" || !cfg.inRegion(property(f.Properties, cols.BoundaryRegion), code) {
			continue
		}

		geometry, err := featureGeometry(f, epsg)
		if err != nil {
			return nil, loadError(path, StageValue, fmt.Errorf("feature %d: %w", i, err))
		}

		addBoundary(boundaries, schema.MunicipalBoundary{
			MunicipalityCode: code,
			MunicipalityName: strings.TrimSpace(property(f.Properties, cols.BoundaryName)),
			Geometry:         geometry,
		})
	}
	return boundaries, nil
}

// ReadPrejoined - both tables from one feature collection holding a feature
// per municipality and year. The first geometry of every code is its boundary.
func ReadPrejoined(path string, cfg Config) ([]schema.MortalityRecord, map[string]schema.MunicipalBoundary, error) {
	cfg = cfg.withDefaults()
	cols := cfg.Columns

	fc, epsg, err := readFeatureCollection(path, cfg.CRS)
	if err != nil {
		return nil, nil, err
	}
	if len(fc.Features) == 0 {
		return nil, nil, loadError(path, StageParse, ErrNoRecords)
	}
	for _, c := range []string{cols.Code, cols.Name, cols.Region, cols.Year, cols.Cases, cols.Rate} {
		if !hasProperty(fc, c) {
			return nil, nil, loadError(path, StageColumns, fmt.Errorf("%w: %s", ErrMissingColumn, c))
		}
	}

	records := make([]schema.MortalityRecord, 0, len(fc.Features))
	boundaries := map[string]schema.MunicipalBoundary{}
	for i, f := range fc.Features {
		props := f.Properties
		record, err := parseRecord(func(name string) string { return property(props, name) }, cols, cfg.CodeWidth)
		if err != nil {
			return nil, nil, loadError(path, StageValue, fmt.Errorf("feature %d: %w", i, err))
		}
		records = append(records, record)

		if _, ok := boundaries[record.MunicipalityCode]; ok {
			continue
		}
		if !cfg.inRegion(property(props, cols.BoundaryRegion), record.MunicipalityCode) {
			continue
		}

		geometry, err := featureGeometry(f, epsg)
		if err != nil {
			return nil, nil, loadError(path, StageValue, fmt.Errorf("feature %d: %w", i, err))
		}
		boundaries[record.MunicipalityCode] = schema.MunicipalBoundary{
			MunicipalityCode: record.MunicipalityCode,
			MunicipalityName: record.MunicipalityName,
			Geometry:         geometry,
		}
	}
	return records, boundaries, nil
}
