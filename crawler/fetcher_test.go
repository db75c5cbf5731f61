package main

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	"github.com/antioquia-open-data/mortality-api/dataset"
	"github.com/antioquia-open-data/mortality-api/schema"
)

const validTable = `CodigoMunicipio,NombreMunicipio,NombreRegion,Año,NumeroCasos,TasaXMilHabitantes
5001,MEDELLÍN,VALLE DE ABURRÁ,2020,12000,4.8
5002,ABEJORRAL,ORIENTE,2020,120,6.1
`

const invalidTable = `CodigoMunicipio,NombreMunicipio,Año
5001,MEDELLÍN,2020
`

const previousTable = "previous"

type fakeRecordStore struct {
	imported []schema.MortalityRecord
	err      error
}

func (s *fakeRecordStore) ImportRecords(ctx context.Context, records []schema.MortalityRecord) (int, error) {
	if s.err != nil {
		return 0, s.err
	}
	s.imported = records
	return len(records), nil
}

func (s *fakeRecordStore) Records(ctx context.Context) ([]schema.MortalityRecord, error) {
	return s.imported, nil
}

type FetcherTestSuite struct {
	suite.Suite
	dir    string
	output string
	body   string
	status int
	server *httptest.Server
}

func (s *FetcherTestSuite) SetupTest() {
	s.dir = s.T().TempDir()
	s.output = filepath.Join(s.dir, "mortality.csv")
	s.Require().NoError(os.WriteFile(s.output, []byte(previousTable), 0o644))

	s.status = http.StatusOK
	s.body = validTable
	s.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(s.status)
		_, _ = w.Write([]byte(s.body))
	}))
}

func (s *FetcherTestSuite) TearDownTest() {
	s.server.Close()
}

func (s *FetcherTestSuite) fetcher(st *fakeRecordStore) *datasetFetcher {
	if st == nil {
		return newDatasetFetcher(s.server.URL, s.output, dataset.Config{}, nil, zap.NewNop(), time.Second)
	}
	return newDatasetFetcher(s.server.URL, s.output, dataset.Config{}, st, zap.NewNop(), time.Second)
}

func (s *FetcherTestSuite) outputContent() string {
	b, err := os.ReadFile(s.output)
	s.Require().NoError(err)
	return string(b)
}

func (s *FetcherTestSuite) leftovers() []string {
	matches, err := filepath.Glob(filepath.Join(s.dir, "*.tmp"))
	s.Require().NoError(err)
	return matches
}

func (s *FetcherTestSuite) TestFetchReplacesOutput() {
	records, err := s.fetcher(nil).Fetch(context.Background())
	s.NoError(err)
	s.Len(records, 2)
	s.Equal("05001", records[0].MunicipalityCode)
	s.Equal(validTable, s.outputContent())
	s.Empty(s.leftovers())
}

func (s *FetcherTestSuite) TestFetchKeepsOutputOnInvalidTable() {
	s.body = invalidTable

	_, err := s.fetcher(nil).Fetch(context.Background())
	s.Error(err)

	var loadErr *dataset.DataLoadError
	s.True(errors.As(err, &loadErr))
	s.ErrorIs(err, dataset.ErrMissingColumn)
	s.Equal(previousTable, s.outputContent())
	s.Empty(s.leftovers())
}

func (s *FetcherTestSuite) TestFetchKeepsOutputOnBadStatus() {
	s.status = http.StatusServiceUnavailable

	_, err := s.fetcher(nil).Fetch(context.Background())
	s.Error(err)
	s.Contains(err.Error(), "503")
	s.Equal(previousTable, s.outputContent())
}

func (s *FetcherTestSuite) TestRunImportsIntoStore() {
	st := &fakeRecordStore{}
	s.fetcher(st).Run()

	s.Len(st.imported, 2)
	s.Equal(validTable, s.outputContent())
}

func (s *FetcherTestSuite) TestRunSkipsImportOnFailure() {
	s.body = invalidTable
	st := &fakeRecordStore{}
	s.fetcher(st).Run()

	s.Empty(st.imported)
	s.Equal(previousTable, s.outputContent())
}

func TestFetcherTestSuite(t *testing.T) {
	suite.Run(t, new(FetcherTestSuite))
}
