package dataset

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/antioquia-open-data/mortality-api/schema"
)

const loaderLogPrefix = "dataset"

// Source - produce the mortality table and the boundaries of the region
type Source interface {
	Load(ctx context.Context) ([]schema.MortalityRecord, map[string]schema.MunicipalBoundary, error)
}

// FileSource - tables read from local files
type FileSource struct {
	cfg Config
}

func NewFileSource(cfg Config) *FileSource {
	return &FileSource{cfg: cfg.withDefaults()}
}

func (s *FileSource) Load(ctx context.Context) ([]schema.MortalityRecord, map[string]schema.MunicipalBoundary, error) {
	if s.cfg.Prejoined != "" {
		records, boundaries, err := ReadPrejoined(s.cfg.Prejoined, s.cfg)
		if err != nil {
			return nil, nil, err
		}
		s.logLoaded(records, boundaries)
		return records, boundaries, nil
	}

	if s.cfg.Records == "" {
		return nil, nil, loadError("records", StageOpen, fmt.Errorf("no record file configured"))
	}
	if s.cfg.Boundaries == "" {
		return nil, nil, loadError("boundaries", StageOpen, fmt.Errorf("no boundary file configured"))
	}

	records, err := ReadRecordFile(s.cfg.Records, s.cfg)
	if err != nil {
		return nil, nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	boundaries, err := ReadBoundaryFile(s.cfg.Boundaries, s.cfg)
	if err != nil {
		return nil, nil, err
	}

	s.logLoaded(records, boundaries)
	return records, boundaries, nil
}

func (s *FileSource) logLoaded(records []schema.MortalityRecord, boundaries map[string]schema.MunicipalBoundary) {
	log.WithField("prefix", loaderLogPrefix).
		WithField("records", len(records)).
		WithField("boundaries", len(boundaries)).
		WithField("region", s.cfg.RegionCode).
		Info("dataset loaded")
}

// ReadRecordFile - open and parse the delimited mortality table
func ReadRecordFile(path string, cfg Config) ([]schema.MortalityRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, loadError(path, StageOpen, err)
	}
	defer f.Close()

	records, err := ReadRecords(f, path, cfg)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, loadError(path, StageParse, ErrNoRecords)
	}
	return records, nil
}

// ReadBoundaryFile - boundaries from a shapefile or a GeoJSON file, chosen by
// extension
func ReadBoundaryFile(path string, cfg Config) (map[string]schema.MunicipalBoundary, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".shp":
		return ReadShapefile(path, cfg)
	case ".geojson", ".json":
		return ReadGeoJSONBoundaries(path, cfg)
	}
	return nil, loadError(path, StageOpen, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path)))
}
