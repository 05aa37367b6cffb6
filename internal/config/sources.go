package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// SourceEndpoint describes how to reach one external recipe API.
type SourceEndpoint struct {
	BaseURL           string        `yaml:"base_url"`
	Timeout           time.Duration `yaml:"timeout"`
	RequestsPerSecond float64       `yaml:"requests_per_second"`
	Burst             int           `yaml:"burst"`
}

// HealthSettings configures the source health probe.
type HealthSettings struct {
	Timeout time.Duration `yaml:"timeout"`
}

// Sources is the top-level source configuration loaded from YAML.
type Sources struct {
	TheMealDB     SourceEndpoint `yaml:"themealdb"`
	TheCocktailDB SourceEndpoint `yaml:"thecocktaildb"`
	RecipePuppy   SourceEndpoint `yaml:"recipepuppy"`
	Health        HealthSettings `yaml:"health"`
}

// DefaultSources returns the public endpoints used when no file overrides them.
func DefaultSources() *Sources {
	return &Sources{
		TheMealDB: SourceEndpoint{
			BaseURL:           "https://www.themealdb.com/api/json/v1/1",
			Timeout:           10 * time.Second,
			RequestsPerSecond: 5,
			Burst:             10,
		},
		TheCocktailDB: SourceEndpoint{
			BaseURL:           "https://www.thecocktaildb.com/api/json/v1/1",
			Timeout:           10 * time.Second,
			RequestsPerSecond: 5,
			Burst:             10,
		},
		RecipePuppy: SourceEndpoint{
			BaseURL:           "http://www.recipepuppy.com/api",
			Timeout:           8 * time.Second,
			RequestsPerSecond: 2,
			Burst:             2,
		},
		Health: HealthSettings{Timeout: 5 * time.Second},
	}
}

// LoadSources reads source settings from a YAML file at the given path.
// A missing file is not an error: the defaults are returned instead. Any
// field left empty in the file keeps its default.
func LoadSources(path string) (*Sources, error) {
	sources := DefaultSources()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return sources, nil
		}
		return nil, fmt.Errorf("failed to read sources file: %w", err)
	}

	var fromFile Sources
	if err := yaml.Unmarshal(data, &fromFile); err != nil {
		return nil, fmt.Errorf("failed to parse sources file: %w", err)
	}

	mergeEndpoint(&sources.TheMealDB, fromFile.TheMealDB)
	mergeEndpoint(&sources.TheCocktailDB, fromFile.TheCocktailDB)
	mergeEndpoint(&sources.RecipePuppy, fromFile.RecipePuppy)
	if fromFile.Health.Timeout > 0 {
		sources.Health.Timeout = fromFile.Health.Timeout
	}

	return sources, nil
}

func mergeEndpoint(dst *SourceEndpoint, src SourceEndpoint) {
	if src.BaseURL != "" {
		dst.BaseURL = strings.TrimRight(src.BaseURL, "/")
	}
	if src.Timeout > 0 {
		dst.Timeout = src.Timeout
	}
	if src.RequestsPerSecond > 0 {
		dst.RequestsPerSecond = src.RequestsPerSecond
	}
	if src.Burst > 0 {
		dst.Burst = src.Burst
	}
}
