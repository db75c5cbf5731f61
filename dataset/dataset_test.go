package dataset

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jonas-p/go-shp"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/project"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/antioquia-open-data/mortality-api/schema"
)

func TestNormalizeCode(t *testing.T) {
	assert.Equal(t, "05001", NormalizeCode("5001", 5))
	assert.Equal(t, "05001", NormalizeCode(" 5001.0 ", 5))
	assert.Equal(t, "05001", NormalizeCode("05001", 5))
	assert.Equal(t, "05", NormalizeCode("5", 2))
	assert.Equal(t, "123456", NormalizeCode("123456", 5))
	assert.Equal(t, "ABC", NormalizeCode("ABC", 5))
	assert.Equal(t, "", NormalizeCode("  ", 5))
}

func TestParseNumbers(t *testing.T) {
	c, err := parseCount("12.0")
	assert.NoError(t, err)
	assert.Equal(t, int64(12), c)

	_, err = parseCount("12.5")
	assert.ErrorIs(t, err, ErrInvalidValue)

	_, err = parseCount("-1")
	assert.ErrorIs(t, err, ErrInvalidValue)

	r, err := parseRate("6,1")
	assert.NoError(t, err)
	assert.Equal(t, 6.1, r)

	_, err = parseRate("")
	assert.ErrorIs(t, err, ErrInvalidValue)

	_, err = parseRate("NaN")
	assert.ErrorIs(t, err, ErrInvalidValue)

	y, err := parseYear("2005.0")
	assert.NoError(t, err)
	assert.Equal(t, 2005, y)
}

func TestCleanTextLatin1(t *testing.T) {
	assert.Equal(t, "MEDELLÍN", cleanText("MEDELL\xcdN\x00\x00 "))
	assert.Equal(t, "ABRIAQUÍ", cleanText(" ABRIAQUÍ "))
}

func TestParseEPSG(t *testing.T) {
	for input, expected := range map[string]int{
		"4326":                          4326,
		"EPSG:3857":                     3857,
		"epsg:4686":                     4686,
		"urn:ogc:def:crs:EPSG::3857":    3857,
		"urn:ogc:def:crs:EPSG:6.6:4326": 4326,
		"urn:ogc:def:crs:OGC:1.3:CRS84": 4326,
	} {
		code, err := ParseEPSG(input)
		assert.NoError(t, err, input)
		assert.Equal(t, expected, code, input)
	}

	_, err := ParseEPSG("MAGNA")
	assert.ErrorIs(t, err, ErrUnsupportedCRS)
}

func TestDetectPRJ(t *testing.T) {
	code, err := DetectPRJ(`GEOGCS["MAGNA-SIRGAS",DATUM["Marco_Geocentrico_Nacional_de_Referencia",SPHEROID["GRS_1980",6378137.0,298.257222101]],PRIMEM["Greenwich",0.0],UNIT["Degree",0.0174532925199433]]`)
	assert.NoError(t, err)
	assert.Equal(t, EPSGMagnaSirgas, code)

	code, err = DetectPRJ(`GEOGCS["GCS_WGS_1984",DATUM["D_WGS_1984",SPHEROID["WGS_1984",6378137,298.257223563]],PRIMEM["Greenwich",0],UNIT["Degree",0.017453292519943295]]`)
	assert.NoError(t, err)
	assert.Equal(t, EPSGWGS84, code)

	code, err = DetectPRJ(`PROJCS["WGS_1984_Web_Mercator_Auxiliary_Sphere",GEOGCS["GCS_WGS_1984"],PROJECTION["Mercator_Auxiliary_Sphere"]]`)
	assert.NoError(t, err)
	assert.Equal(t, EPSGWebMercator, code)

	_, err = DetectPRJ(`PROJCS["MAGNA-SIRGAS_Origen-Nacional",GEOGCS["GCS_MAGNA"],PROJECTION["Transverse_Mercator"]]`)
	assert.ErrorIs(t, err, ErrUnsupportedCRS)
}

func TestToWGS84(t *testing.T) {
	p := orb.Point{-75.56, 6.25}
	mercator := project.Point(p, project.WGS84.ToMercator)

	g, err := ToWGS84(mercator, EPSGWebMercator)
	require.NoError(t, err)
	back := g.(orb.Point)
	assert.InDelta(t, p[0], back[0], 1e-6)
	assert.InDelta(t, p[1], back[1], 1e-6)

	same, err := ToWGS84(p, EPSGMagnaSirgas)
	require.NoError(t, err)
	assert.Equal(t, p, same)

	_, err = ToWGS84(p, 3116)
	assert.ErrorIs(t, err, ErrUnsupportedCRS)
	_, err = ToWGS84(p, 9377)
	assert.ErrorIs(t, err, ErrUnsupportedCRS)
}

type DatasetTestSuite struct {
	suite.Suite
	cfg Config
}

func (s *DatasetTestSuite) SetupTest() {
	s.cfg = Config{
		Records:    filepath.Join("testdata", "records.csv"),
		Boundaries: filepath.Join("testdata", "boundaries.geojson"),
	}
}

func (s *DatasetTestSuite) TestReadRecordFile() {
	records, err := ReadRecordFile(s.cfg.Records, s.cfg)
	s.Require().NoError(err)
	s.Len(records, 5)

	s.Equal(schema.MortalityRecord{
		MunicipalityCode: "05001",
		MunicipalityName: "MEDELLÍN",
		RegionName:       "VALLE DE ABURRÁ",
		Year:             2020,
		CaseCount:        12000,
		RatePerThousand:  4.8,
	}, records[0])
	s.Equal("05002", records[2].MunicipalityCode)
	s.Equal(6.1, records[2].RatePerThousand)
}

func (s *DatasetTestSuite) TestReadRecordsWithBOMAndDelimiter() {
	cfg := s.cfg
	cfg.Delimiter = ";"
	data, err := os.ReadFile(filepath.Join("testdata", "records_semicolon.csv"))
	s.Require().NoError(err)

	records, err := ReadRecords(strings.NewReader("\ufeff"+string(data)), "semicolon", cfg)
	s.Require().NoError(err)
	s.Require().Len(records, 1)
	s.Equal(4.8, records[0].RatePerThousand)
}

func (s *DatasetTestSuite) TestReadRecordsMissingColumn() {
	_, err := ReadRecordFile(filepath.Join("testdata", "records_missing_column.csv"), s.cfg)

	var loadErr *DataLoadError
	s.Require().True(errors.As(err, &loadErr))
	s.Equal(StageColumns, loadErr.Stage)
	s.ErrorIs(err, ErrMissingColumn)
	s.Contains(err.Error(), "TasaXMilHabitantes")
}

func (s *DatasetTestSuite) TestReadRecordsInvalidValue() {
	input := "CodigoMunicipio,NombreMunicipio,NombreRegion,Año,NumeroCasos,TasaXMilHabitantes\n5001,MEDELLÍN,VALLE,2020,muchos,1.0\n"
	_, err := ReadRecords(strings.NewReader(input), "inline", s.cfg)

	var loadErr *DataLoadError
	s.Require().True(errors.As(err, &loadErr))
	s.Equal(StageValue, loadErr.Stage)
	s.ErrorIs(err, ErrInvalidValue)
}

func (s *DatasetTestSuite) TestReadRecordFileMissing() {
	_, err := ReadRecordFile(filepath.Join("testdata", "nope.csv"), s.cfg)

	var loadErr *DataLoadError
	s.Require().True(errors.As(err, &loadErr))
	s.Equal(StageOpen, loadErr.Stage)
	s.True(os.IsNotExist(errors.Unwrap(err)))
}

func (s *DatasetTestSuite) TestReadGeoJSONBoundaries() {
	boundaries, err := ReadBoundaryFile(s.cfg.Boundaries, s.cfg)
	s.Require().NoError(err)

	s.Len(boundaries, 4)
	s.NotContains(boundaries, "13001")
	s.Equal("ABRIAQUÍ", boundaries["05004"].MunicipalityName)
	s.IsType(orb.MultiPolygon{}, boundaries["05004"].Geometry)
	s.IsType(orb.Polygon{}, boundaries["05001"].Geometry)
}

func (s *DatasetTestSuite) TestReadGeoJSONOtherRegion() {
	cfg := s.cfg
	cfg.RegionCode = "13"

	boundaries, err := ReadGeoJSONBoundaries(cfg.Boundaries, cfg)
	s.Require().NoError(err)
	s.Len(boundaries, 1)
	s.Contains(boundaries, "13001")
}

func (s *DatasetTestSuite) TestReadGeoJSONMercator() {
	boundaries, err := ReadGeoJSONBoundaries(filepath.Join("testdata", "boundaries_mercator.geojson"), s.cfg)
	s.Require().NoError(err)

	bound := boundaries["05001"].Geometry.Bound()
	s.InDelta(0, bound.Min[0], 1e-6)
	s.InDelta(1, bound.Max[0], 1e-4)
	s.InDelta(1, bound.Max[1], 1e-4)
}

func (s *DatasetTestSuite) TestReadGeoJSONUnsupportedCRS() {
	_, err := ReadGeoJSONBoundaries(filepath.Join("testdata", "boundaries_projected.geojson"), s.cfg)

	var loadErr *DataLoadError
	s.Require().True(errors.As(err, &loadErr))
	s.Equal(StageProjection, loadErr.Stage)
	s.ErrorIs(err, ErrUnsupportedCRS)
}

func (s *DatasetTestSuite) TestReadBoundaryUnknownExtension() {
	_, err := ReadBoundaryFile("municipios.kml", s.cfg)
	s.ErrorIs(err, ErrUnsupportedFormat)
}

func (s *DatasetTestSuite) TestReadPrejoined() {
	records, boundaries, err := ReadPrejoined(filepath.Join("testdata", "prejoined.geojson"), s.cfg)
	s.Require().NoError(err)

	s.Len(records, 3)
	s.Len(boundaries, 2)
	s.Equal("05001", records[1].MunicipalityCode)
	s.Equal(2021, records[1].Year)
	s.Equal(int64(120), records[2].CaseCount)
	s.Equal("ABEJORRAL", boundaries["05002"].MunicipalityName)
}

func (s *DatasetTestSuite) TestFileSourceLoad() {
	records, boundaries, err := NewFileSource(s.cfg).Load(context.Background())
	s.Require().NoError(err)
	s.Len(records, 5)
	s.Len(boundaries, 4)

	cfg := Config{Prejoined: filepath.Join("testdata", "prejoined.geojson")}
	records, boundaries, err = NewFileSource(cfg).Load(context.Background())
	s.Require().NoError(err)
	s.Len(records, 3)
	s.Len(boundaries, 2)
}

func (s *DatasetTestSuite) TestFileSourceNotConfigured() {
	_, _, err := NewFileSource(Config{}).Load(context.Background())

	var loadErr *DataLoadError
	s.True(errors.As(err, &loadErr))
}

// writeShapefile - two municipalities of Antioquia, one with a hole, and one
// of Bolívar that must be filtered out
func writeShapefile(t *testing.T, dir, prj string) string {
	path := filepath.Join(dir, "municipios.shp")

	w, err := shp.Create(path, shp.POLYGON)
	require.NoError(t, err)

	require.NoError(t, w.SetFields([]shp.Field{
		shp.StringField("DPTO_CCDGO", 2),
		shp.StringField("MPIO_CDPMP", 5),
		shp.StringField("MPIO_CNMBR", 40),
	}))

	shapes := []struct {
		region, code, name string
		parts              [][]shp.Point
	}{
		{"05", "05001", "MEDELLIN", [][]shp.Point{
			{{X: 0, Y: 0}, {X: 0, Y: 10}, {X: 10, Y: 10}, {X: 10, Y: 0}, {X: 0, Y: 0}},
			{{X: 2, Y: 2}, {X: 4, Y: 2}, {X: 4, Y: 4}, {X: 2, Y: 4}, {X: 2, Y: 2}},
		}},
		{"05", "5002", "ABEJORRAL", [][]shp.Point{
			{{X: 20, Y: 0}, {X: 20, Y: 5}, {X: 25, Y: 5}, {X: 25, Y: 0}, {X: 20, Y: 0}},
			{{X: 30, Y: 0}, {X: 30, Y: 5}, {X: 35, Y: 5}, {X: 35, Y: 0}, {X: 30, Y: 0}},
		}},
		{"13", "13001", "CARTAGENA", [][]shp.Point{
			{{X: 40, Y: 0}, {X: 40, Y: 5}, {X: 45, Y: 5}, {X: 45, Y: 0}, {X: 40, Y: 0}},
		}},
	}

	for _, s := range shapes {
		polygon := shp.Polygon(*shp.NewPolyLine(s.parts))
		n := int(w.Write(&polygon))
		require.NoError(t, w.WriteAttribute(n, 0, s.region))
		require.NoError(t, w.WriteAttribute(n, 1, s.code))
		require.NoError(t, w.WriteAttribute(n, 2, s.name))
	}
	w.Close()

	if prj != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "municipios.prj"), []byte(prj), 0644))
	}
	return path
}

func (s *DatasetTestSuite) TestReadShapefile() {
	path := writeShapefile(s.T(), s.T().TempDir(), "")

	boundaries, err := ReadBoundaryFile(path, s.cfg)
	s.Require().NoError(err)
	s.Len(boundaries, 2)
	s.NotContains(boundaries, "13001")

	medellin, ok := boundaries["05001"].Geometry.(orb.Polygon)
	s.Require().True(ok)
	s.Len(medellin, 2, "outer ring and hole")
	s.Equal("MEDELLIN", boundaries["05001"].MunicipalityName)

	abejorral, ok := boundaries["05002"].Geometry.(orb.MultiPolygon)
	s.Require().True(ok)
	s.Len(abejorral, 2)
}

func (s *DatasetTestSuite) TestReadShapefileProjectedPRJ() {
	path := writeShapefile(s.T(), s.T().TempDir(), `PROJCS["MAGNA-SIRGAS_CMT12",GEOGCS["GCS_MAGNA"],PROJECTION["Transverse_Mercator"]]`)

	_, err := ReadShapefile(path, s.cfg)
	s.ErrorIs(err, ErrUnsupportedCRS)

	cfg := s.cfg
	cfg.CRS = "EPSG:4326"
	boundaries, err := ReadShapefile(path, cfg)
	s.NoError(err)
	s.Len(boundaries, 2)
}

func (s *DatasetTestSuite) TestReadShapefileMissingColumn() {
	path := writeShapefile(s.T(), s.T().TempDir(), "")
	cfg := s.cfg
	cfg.Columns.BoundaryCode = "COD_MPIO"

	_, err := ReadShapefile(path, cfg)
	s.ErrorIs(err, ErrMissingColumn)
}

func TestDatasetTestSuite(t *testing.T) {
	suite.Run(t, new(DatasetTestSuite))
}
