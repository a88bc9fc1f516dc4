// Package catalog builds the evaluation prompt battery from nutrition
// records, deriving every expected answer from the underlying data so the
// scoring rubric has a verifiable ground truth.
package catalog

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/nutritionlabs/nutrition-eval/internal/nutrition"
)

//go:embed all:testdata
var embeddedCatalogs embed.FS

// Load loads a catalog by name, searching first in the external directory
// (if provided), then in the embedded catalogs.
func Load(name string, externalDir string) (*Definition, error) {
	// Try external directory first.
	if externalDir != "" {
		p := filepath.Join(externalDir, name)
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			return loadFromFS(os.DirFS(p), name)
		}
	}

	// Fall back to embedded catalogs.
	// Use path.Join (not filepath.Join) because embed.FS always uses forward slashes.
	subFS, err := fs.Sub(embeddedCatalogs, path.Join("testdata", name))
	if err != nil {
		return nil, &nutrition.DataSourceError{Source: name, Err: fmt.Errorf("catalog not found: %w", err)}
	}
	return loadFromFS(subFS, name)
}

// List returns the names of all available catalogs.
func List(externalDir string) ([]string, error) {
	seen := make(map[string]bool)
	var names []string

	// List embedded catalogs.
	entries, err := fs.ReadDir(embeddedCatalogs, "testdata")
	if err == nil {
		for _, e := range entries {
			if e.IsDir() {
				seen[e.Name()] = true
				names = append(names, e.Name())
			}
		}
	}

	// List external catalogs.
	if externalDir != "" {
		entries, err := os.ReadDir(externalDir)
		if err == nil {
			for _, e := range entries {
				if e.IsDir() && !seen[e.Name()] {
					names = append(names, e.Name())
				}
			}
		}
	}

	return names, nil
}

func loadFromFS(fsys fs.FS, name string) (*Definition, error) {
	configData, err := fs.ReadFile(fsys, "config.yaml")
	if err != nil {
		return nil, &nutrition.DataSourceError{Source: name, Err: fmt.Errorf("failed to read config.yaml: %w", err)}
	}

	var def Definition
	if err := yaml.Unmarshal(configData, &def); err != nil {
		return nil, &nutrition.DataSourceError{Source: name, Err: fmt.Errorf("failed to parse config.yaml: %w", err)}
	}

	if def.Scoring == "" {
		def.Scoring = "structured"
	}
	if def.RecordsFile == "" {
		def.RecordsFile = "foods.csv"
	}

	records, err := nutrition.ParseRecords(fsys, def.RecordsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load records for catalog %q: %w", name, err)
	}
	def.Records = records

	return &def, nil
}
