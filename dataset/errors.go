package dataset

import (
	"fmt"
)

// stages reported by DataLoadError
const (
	StageOpen       = "open"
	StageParse      = "parse"
	StageColumns    = "columns"
	StageValue      = "value"
	StageProjection = "projection"
)

var (
	ErrMissingColumn     = fmt.Errorf("missing required column")
	ErrInvalidValue      = fmt.Errorf("invalid value")
	ErrUnsupportedCRS    = fmt.Errorf("unsupported coordinate reference system")
	ErrUnsupportedFormat = fmt.Errorf("unsupported file format")
	ErrUnsupportedShape  = fmt.Errorf("unsupported geometry type")
	ErrNoRecords         = fmt.Errorf("no records")
)

// DataLoadError - a source could not be turned into the in-memory tables.
// The server refuses to start on it.
type DataLoadError struct {
	Source string
	Stage  string
	Err    error
}

func (e *DataLoadError) Error() string {
	return fmt.Sprintf("fail to load %s at %s stage: %s", e.Source, e.Stage, e.Err)
}

func (e *DataLoadError) Unwrap() error {
	return e.Err
}

func loadError(source, stage string, err error) error {
	return &DataLoadError{Source: source, Stage: stage, Err: err}
}
