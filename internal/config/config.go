package config

import (
	"fmt"
	"reflect"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the application configuration.
type Config struct {
	EnvVars EnvVars  `json:"env"`
	Sources *Sources `json:"-"`
}

// EnvVars holds environment variables required by the application.
// Fields tagged `optional:"true"` are skipped by CheckConfigEnvFields.
type EnvVars struct {
	Port                string        `env:"PORT" envDefault:"8080"`
	AdminToken          string        `env:"ADMIN_TOKEN"`
	DatabaseUrl         string        `env:"DATABASE_URL" optional:"true"`
	RedisURL            string        `env:"REDIS_URL" optional:"true"`
	SourcesFile         string        `env:"SOURCES_FILE" envDefault:"configs/sources.yaml"`
	CORSOrigins         []string      `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`
	UseTheMealDB        bool          `env:"USE_THEMEALDB" envDefault:"true" optional:"true"`
	UseTheCocktailDB    bool          `env:"USE_THE_COCKTAIL_DB" envDefault:"true" optional:"true"`
	UseRecipePuppy      bool          `env:"USE_RECIPEPUPPY" envDefault:"false" optional:"true"`
	RecipePuppyProxyURL string        `env:"RECIPEPUPPY_PROXY_URL" optional:"true"`
	SearchCacheTTL      time.Duration `env:"SEARCH_CACHE_TTL" envDefault:"3m"`
	PopularCacheTTL     time.Duration `env:"POPULAR_CACHE_TTL" envDefault:"10m"`
	AWSRegion           string        `env:"AWS_REGION" optional:"true"`
	AWSAccessKeyID      string        `env:"AWS_ACCESS_KEY_ID" optional:"true"`
	AWSSecretAccessKey  string        `env:"AWS_SECRET_ACCESS_KEY" optional:"true"`
	S3Bucket            string        `env:"S3_BUCKET" optional:"true"`
}

// LoadConfig parses environment variables into the Config struct.
func LoadConfig() (*Config, error) {
	var config Config
	if err := env.Parse(&config.EnvVars); err != nil {
		return nil, err
	}
	return &config, nil
}

// CheckConfigEnvFields validates that all required EnvVars fields are set.
func (c *Config) CheckConfigEnvFields() error {
	return checkFieldsRecursive(reflect.ValueOf(c.EnvVars))
}

// ImageUploadsEnabled reports whether admin image uploads have somewhere to go.
func (c *Config) ImageUploadsEnabled() bool {
	return c.EnvVars.S3Bucket != "" && c.EnvVars.AWSRegion != ""
}

func checkFieldsRecursive(v reflect.Value) error {
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		fieldType := v.Type().Field(i)
		if fieldType.Tag.Get("optional") == "true" {
			continue
		}
		if field.IsZero() {
			return fmt.Errorf("$%s must be set", fieldType.Tag.Get("env"))
		}
		if field.Kind() == reflect.Struct {
			if err := checkFieldsRecursive(field); err != nil {
				return err
			}
		}
	}
	return nil
}
