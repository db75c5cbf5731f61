package dataset

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/project"
)

const (
	EPSGWGS84         = 4326
	EPSGMagnaSirgas   = 4686
	EPSGWebMercator   = 3857
	epsgGoogleLegacy  = 900913
	epsgWebMercatorV1 = 3785
)

var epsgPattern = regexp.MustCompile(`(?i)EPSG[:/]*(?:[0-9.]*:)?(\d+)$`)

// ParseEPSG - accepts `4326`, `EPSG:4326`, `urn:ogc:def:crs:EPSG::4326`
// and the OGC CRS84 urn
func ParseEPSG(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty", ErrUnsupportedCRS)
	}
	if strings.HasSuffix(strings.ToUpper(s), "CRS84") {
		return EPSGWGS84, nil
	}
	if code, err := strconv.Atoi(s); err == nil {
		return code, nil
	}
	if m := epsgPattern.FindStringSubmatch(s); m != nil {
		code, _ := strconv.Atoi(m[1])
		return code, nil
	}
	return 0, fmt.Errorf("%w: %s", ErrUnsupportedCRS, s)
}

// DetectPRJ - coordinate reference system of an ESRI .prj WKT string
func DetectPRJ(wkt string) (int, error) {
	up := strings.ToUpper(strings.TrimSpace(wkt))

	switch {
	case strings.HasPrefix(up, "PROJCS"), strings.HasPrefix(up, "PROJCRS"):
		if strings.Contains(up, "WEB_MERCATOR") || strings.Contains(up, "PSEUDO") ||
			strings.Contains(up, "AUXILIARY_SPHERE") || strings.Contains(up, "3857") {
			return EPSGWebMercator, nil
		}
		name := up
		if i := strings.Index(up, ","); i > 0 {
			name = up[:i]
		}
		return 0, fmt.Errorf("%w: projected %s", ErrUnsupportedCRS, strings.TrimPrefix(name, "PROJCS["))
	case strings.HasPrefix(up, "GEOGCS"), strings.HasPrefix(up, "GEOGCRS"):
		if strings.Contains(up, "MAGNA") {
			return EPSGMagnaSirgas, nil
		}
		return EPSGWGS84, nil
	}
	return 0, fmt.Errorf("%w: unreadable prj", ErrUnsupportedCRS)
}

// ToWGS84 - reproject geometry into geographic longitude/latitude.
// MAGNA-SIRGAS differs from WGS84 by less than a meter and is kept as is.
func ToWGS84(g orb.Geometry, epsg int) (orb.Geometry, error) {
	switch epsg {
	case EPSGWGS84, EPSGMagnaSirgas:
		return g, nil
	case EPSGWebMercator, epsgGoogleLegacy, epsgWebMercatorV1:
		return project.Geometry(orb.Clone(g), project.Mercator.ToWGS84), nil
	}
	return nil, fmt.Errorf("%w: EPSG:%d", ErrUnsupportedCRS, epsg)
}
