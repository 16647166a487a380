package store

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Drivers understood by Open.
const (
	DriverDiskv    = "diskv"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverS3       = "s3"
	DriverMemory   = "memory"
)

// Config selects and parameterizes a KV backend.
type Config struct {
	Driver string   `json:"driver"`
	Path   string   `json:"path"`
	DSN    string   `json:"dsn,omitempty"`
	S3     S3Config `json:"s3,omitempty"`
}

// BasePath is the diskv root or sqlite file.
func (c *Config) BasePath() string {
	return c.Path
}

// LoadConfig reads .riverline.yaml from ./ or $RIVERLINE_CONFIG_PATH and the
// RIVERLINE_ environment into the global viper instance, loading .env first.
// Keys outside store.* are left in viper for the command layer to read.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	viper.SetDefault("store.driver", DriverDiskv)
	viper.SetDefault("store.path", "~/.riverline")
	viper.SetDefault("store.s3.region", "us-east-1")
	viper.SetDefault("store.s3.prefix", "riverline/")
	viper.SetConfigName(".riverline") // .yaml is implicit
	viper.SetEnvPrefix("RIVERLINE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if override := os.Getenv("RIVERLINE_CONFIG_PATH"); override != "" {
		viper.AddConfigPath(override)
	}

	viper.AddConfigPath("./")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	return ConfigFromViper(viper.GetViper()), nil
}

// ConfigFromViper extracts the store section of v.
func ConfigFromViper(v *viper.Viper) *Config {
	return &Config{
		Driver: strings.ToLower(strings.TrimSpace(v.GetString("store.driver"))),
		Path:   v.GetString("store.path"),
		DSN:    v.GetString("store.dsn"),
		S3: S3Config{
			Bucket:    v.GetString("store.s3.bucket"),
			Region:    v.GetString("store.s3.region"),
			Endpoint:  v.GetString("store.s3.endpoint"),
			Prefix:    v.GetString("store.s3.prefix"),
			PathStyle: v.GetBool("store.s3.path_style"),
		},
	}
}
