package app

import (
	"os"
	"time"

	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigyaml"
	"github.com/go-faster/errors"
)

const defaultAddr = "0.0.0.0:8080"

// Config holds the application configuration, loadable from environment
// variables (CATALOG_ prefix), flags, or YAML config files.
type Config struct {
	Addr          string `default:"0.0.0.0:8080" usage:"HTTP listen address"`
	DatabaseURL   string `usage:"PostgreSQL connection URL (CATALOG_DATABASE_URL, DATABASE_URL or DB_* variables)" flag:"database-url"`
	BaseURL       string `default:"" usage:"Base URL that root-relative image paths are fetched from" flag:"base-url"`
	TemplatesFile string `default:"" usage:"Optional YAML file with extra template definitions" flag:"templates-file"`
	Export        ExportConfig
	Images        ImagesConfig
	Drive         DriveConfig
	Graceful      GracefulConfig
}

// ExportConfig controls the headless Chrome exporter.
type ExportConfig struct {
	ChromePath    string        `default:"" usage:"Chrome or Chromium executable, detected when empty" flag:"chrome-path"`
	Timeout       time.Duration `default:"60s" usage:"Maximum duration of one PDF or PNG export"`
	PNGSessionTTL time.Duration `default:"10m" usage:"How long exported PNG pages stay downloadable" flag:"png-session-ttl"`
}

// ImagesConfig controls inlining of product images into exports.
type ImagesConfig struct {
	Inline       bool `default:"true" usage:"Inline product images as data URIs before exporting"`
	FetchRemote  bool `default:"false" usage:"Also inline absolute http(s) image URLs" flag:"fetch-remote"`
	MaxDimension int  `default:"800" usage:"Longest side of inlined images in pixels" flag:"max-dimension"`
	Quality      int  `default:"75" usage:"JPEG quality of inlined images"`
	Concurrency  int  `default:"4" usage:"Parallel image downloads per export"`
}

// DriveConfig enables drive:// image references.
type DriveConfig struct {
	CredentialsFile string `default:"" usage:"Google service account JSON (GOOGLE_APPLICATION_CREDENTIALS)" flag:"drive-credentials"`
}

// GracefulConfig controls graceful shutdown timing.
type GracefulConfig struct {
	ShutdownTimeout time.Duration `default:"15s" usage:"Maximum shutdown duration" flag:"shutdown-timeout"`
}

// LoadConfig loads configuration from environment variables, YAML config
// files, and applies platform-specific defaults.
func LoadConfig() (*Config, error) {
	var cfg Config
	loader := aconfig.LoaderFor(&cfg, aconfig.Config{
		EnvPrefix: "CATALOG",
		Files:     []string{"config.yaml", "/etc/catalog-studio/config.yaml"},
		FileDecoders: map[string]aconfig.FileDecoder{
			".yaml": aconfigyaml.New(),
		},
	})
	if err := loader.Load(); err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	cfg.applyPlatformDefaults()

	if cfg.Images.Quality < 1 || cfg.Images.Quality > 100 {
		return nil, errors.Errorf("image quality must be within 1..100, got %d", cfg.Images.Quality)
	}

	return &cfg, nil
}

// applyPlatformDefaults maps standard platform variables (DATABASE_URL, PORT,
// GOOGLE_APPLICATION_CREDENTIALS) onto the CATALOG_ configuration.
func (c *Config) applyPlatformDefaults() {
	if c.DatabaseURL == "" {
		c.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if port := os.Getenv("PORT"); port != "" && c.Addr == defaultAddr {
		if port[0] == ':' {
			port = port[1:]
		}
		c.Addr = "0.0.0.0:" + port
	}
	if c.Drive.CredentialsFile == "" {
		c.Drive.CredentialsFile = os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")
	}
}
