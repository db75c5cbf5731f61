package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/antioquia-open-data/mortality-api/dataset"
	"github.com/antioquia-open-data/mortality-api/schema"
	"github.com/antioquia-open-data/mortality-api/store"
)

// Cron - a job run on the crawler schedule
type Cron interface {
	Run()
}

// datasetFetcher - download the mortality table, check it parses and swap it
// in place of the previous file
type datasetFetcher struct {
	url     string
	output  string
	cfg     dataset.Config
	client  *http.Client
	store   store.MortalityStore
	logger  *zap.Logger
	timeout time.Duration
}

func (f *datasetFetcher) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), f.timeout)
	defer cancel()

	records, err := f.Fetch(ctx)
	if err != nil {
		f.logger.Error("fail to refresh mortality dataset", zap.String("url", f.url), zap.Error(err))
		return
	}
	f.logger.Info("mortality dataset refreshed", zap.String("output", f.output), zap.Int("records", len(records)))

	if f.store == nil {
		return
	}
	n, err := f.store.ImportRecords(ctx, records)
	if err != nil {
		f.logger.Error("fail to import mortality records", zap.Error(err))
		return
	}
	f.logger.Info("mortality records imported", zap.Int("count", n))
}

// Fetch - download into a temporary file next to the output, parse it with
// the loader and rename it over the output only when it is valid
func (f *datasetFetcher) Fetch(ctx context.Context) ([]schema.MortalityRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.output), filepath.Base(f.output)+".*.tmp")
	if err != nil {
		return nil, err
	}
	defer os.Remove(tmp.Name())

	size, err := io.Copy(tmp, resp.Body)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return nil, err
	}
	f.logger.Debug("dataset downloaded", zap.Int64("bytes", size))

	records, err := dataset.ReadRecordFile(tmp.Name(), f.cfg)
	if err != nil {
		return nil, err
	}

	if err := os.Rename(tmp.Name(), f.output); err != nil {
		return nil, err
	}
	return records, nil
}

func newDatasetFetcher(url, output string, cfg dataset.Config, s store.MortalityStore, logger *zap.Logger, timeout time.Duration) *datasetFetcher {
	return &datasetFetcher{
		url:     url,
		output:  output,
		cfg:     cfg,
		client:  &http.Client{Timeout: timeout},
		store:   s,
		logger:  logger,
		timeout: timeout,
	}
}
