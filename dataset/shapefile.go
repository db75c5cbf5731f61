package dataset

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonas-p/go-shp"
	"github.com/paulmach/orb"

	"github.com/antioquia-open-data/mortality-api/schema"
)

// ReadShapefile - municipal boundaries of the configured region from an
// ESRI shapefile, the .dbf must sit next to the .shp
func ReadShapefile(path string, cfg Config) (map[string]schema.MunicipalBoundary, error) {
	cfg = cfg.withDefaults()

	if _, err := os.Stat(path); err != nil {
		return nil, loadError(path, StageOpen, err)
	}

	epsg, err := shapefileCRS(path, cfg.CRS)
	if err != nil {
		return nil, loadError(path, StageProjection, err)
	}

	r, err := shp.Open(path)
	if err != nil {
		return nil, loadError(path, StageOpen, err)
	}
	defer r.Close()

	fields := map[string]int{}
	for i, f := range r.Fields() {
		fields[strings.ToLower(cleanText(f.String()))] = i
	}

	codeIdx, ok := fields[strings.ToLower(cfg.Columns.BoundaryCode)]
	if !ok {
		return nil, loadError(path, StageColumns, fmt.Errorf("%w: %s", ErrMissingColumn, cfg.Columns.BoundaryCode))
	}
	nameIdx, ok := fields[strings.ToLower(cfg.Columns.BoundaryName)]
	if !ok {
		return nil, loadError(path, StageColumns, fmt.Errorf("%w: %s", ErrMissingColumn, cfg.Columns.BoundaryName))
	}
	regionIdx, hasRegion := fields[strings.ToLower(cfg.Columns.BoundaryRegion)]

	boundaries := map[string]schema.MunicipalBoundary{}
	for r.Next() {
		n, shape := r.Shape()

		code := NormalizeCode(cleanText(r.ReadAttribute(n, codeIdx)), cfg.CodeWidth)
		region := ""
		if hasRegion {
			region = cleanText(r.ReadAttribute(n, regionIdx))
		}
		if code == "" || !cfg.inRegion(region, code) {
			continue
		}

		polygon, ok := shape.(*shp.Polygon)
		if !ok {
			return nil, loadError(path, StageValue, fmt.Errorf("%w: shape %d of %s is %T", ErrUnsupportedShape, n, code, shape))
		}

		geometry, err := ToWGS84(polygonGeometry(polygon), epsg)
		if err != nil {
			return nil, loadError(path, StageProjection, err)
		}

		addBoundary(boundaries, schema.MunicipalBoundary{
			MunicipalityCode: code,
			MunicipalityName: cleanText(r.ReadAttribute(n, nameIdx)),
			Geometry:         geometry,
		})
	}

	if err := r.Err(); err != nil {
		return nil, loadError(path, StageParse, err)
	}
	return boundaries, nil
}

func shapefileCRS(path, override string) (int, error) {
	if override != "" {
		return ParseEPSG(override)
	}

	prj := strings.TrimSuffix(path, filepath.Ext(path)) + ".prj"
	data, err := os.ReadFile(prj)
	if os.IsNotExist(err) {
		return EPSGWGS84, nil
	}
	if err != nil {
		return 0, err
	}
	return DetectPRJ(string(data))
}

// polygonGeometry - shapefile outer rings are clockwise, holes counter
// clockwise and follow the outer ring they belong to
func polygonGeometry(p *shp.Polygon) orb.Geometry {
	var polygons orb.MultiPolygon

	for i := int32(0); i < p.NumParts; i++ {
		start := p.Parts[i]
		end := p.NumPoints
		if i+1 < p.NumParts {
			end = p.Parts[i+1]
		}

		ring := make(orb.Ring, 0, end-start)
		for _, pt := range p.Points[start:end] {
			ring = append(ring, orb.Point{pt.X, pt.Y})
		}
		if len(ring) == 0 {
			continue
		}

		if ring.Orientation() == orb.CCW && len(polygons) > 0 {
			last := len(polygons) - 1
			polygons[last] = append(polygons[last], ring)
			continue
		}
		polygons = append(polygons, orb.Polygon{ring})
	}

	if len(polygons) == 1 {
		return polygons[0]
	}
	return polygons
}

// addBoundary - a municipality split over several records becomes one
// multipolygon
func addBoundary(boundaries map[string]schema.MunicipalBoundary, b schema.MunicipalBoundary) {
	existing, ok := boundaries[b.MunicipalityCode]
	if !ok {
		boundaries[b.MunicipalityCode] = b
		return
	}

	existing.Geometry = append(multiPolygon(existing.Geometry), multiPolygon(b.Geometry)...)
	boundaries[b.MunicipalityCode] = existing
}

func multiPolygon(g orb.Geometry) orb.MultiPolygon {
	switch v := g.(type) {
	case orb.Polygon:
		return orb.MultiPolygon{v}
	case orb.MultiPolygon:
		return v
	}
	return nil
}
