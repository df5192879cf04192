package parquetdir

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// manifestFileName is the optional per-directory table manifest.
const manifestFileName = "tables.yaml"

// manifest maps table names to parquet files, relative to the catalog
// directory unless absolute.
type manifest struct {
	Tables map[string]string `yaml:"tables"`
}

// loadManifest reads a manifest file. A missing file is not an error and
// yields an empty mapping.
func loadManifest(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading manifest %s: %w", path, err)
	}

	var m manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	return m.Tables, nil
}
