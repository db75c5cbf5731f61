package schema

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Boundary - mongodb document of a municipal boundary, the geometry is a
// GeoJSON sub-document so it can carry a 2dsphere index
type Boundary struct {
	MunicipalityCode string            `bson:"municipality_code"`
	MunicipalityName string            `bson:"municipality_name"`
	Geometry         *geojson.Geometry `bson:"geometry"`
}

// NewBoundary - convert a municipal boundary into its mongodb document
func NewBoundary(b MunicipalBoundary) Boundary {
	return Boundary{
		MunicipalityCode: b.MunicipalityCode,
		MunicipalityName: b.MunicipalityName,
		Geometry:         geojson.NewGeometry(b.Geometry),
	}
}

// MunicipalBoundary - convert the document back into a municipal boundary
func (b Boundary) MunicipalBoundary() (MunicipalBoundary, error) {
	if b.Geometry == nil {
		return MunicipalBoundary{}, fmt.Errorf("missing geometry of %s", b.MunicipalityCode)
	}

	g := b.Geometry.Geometry()
	switch g.(type) {
	case orb.Polygon, orb.MultiPolygon:
	default:
		return MunicipalBoundary{}, fmt.Errorf("unsupported geometry type %q of %s", b.Geometry.Type, b.MunicipalityCode)
	}

	return MunicipalBoundary{
		MunicipalityCode: b.MunicipalityCode,
		MunicipalityName: b.MunicipalityName,
		Geometry:         g,
	}, nil
}
