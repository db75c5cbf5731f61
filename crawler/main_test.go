package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchConfigFromEnvironment(t *testing.T) {
	t.Setenv("MORTALITY_DATA_RECORDS", "/srv/data/mortalidad.csv")
	t.Setenv("MORTALITY_DATA_DELIMITER", ";")

	loadConfig("/nonexistent/config.yaml")

	cfg, output, err := fetchConfig()
	require.NoError(t, err)
	assert.Equal(t, "/srv/data/mortalidad.csv", output)
	assert.Equal(t, ";", cfg.Delimiter)

	t.Setenv("MORTALITY_CRAWLER_OUTPUT", "/srv/data/next.csv")
	_, output, err = fetchConfig()
	require.NoError(t, err)
	assert.Equal(t, "/srv/data/next.csv", output)
}

func TestFetchConfigWithoutOutput(t *testing.T) {
	t.Setenv("MORTALITY_DATA_RECORDS", "")
	t.Setenv("MORTALITY_CRAWLER_OUTPUT", "")

	loadConfig("/nonexistent/config.yaml")

	_, _, err := fetchConfig()
	assert.Error(t, err)
}
