// =============================================================================
// Polaris Sitemap Generator - Configuration Module
// =============================================================================
//
// This module loads the application configuration and resolves it into the
// immutable Settings value the pipeline consumes.
//
// CONFIGURATION SOURCES (in order of precedence):
//   1. Command-line flags (applied by the cmd package)
//   2. config.yaml (this module)
//   3. Built-in defaults
//
// Whatever the source, everything collapses into one types.Settings value
// before any document is built. A Settings value that fails validation is
// a ConfigurationError and aborts the whole run; nothing is generated past
// a bad base URL or a non-positive limit.
//
// =============================================================================

package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ericfordelon/polaris-sitemap-generator/internal/types"
)

// DefaultBaseURL is where the generated files are assumed to be served
// from when neither the config file nor the --base-url flag says otherwise.
const DefaultBaseURL = "https://www.polaris.com/sitemaps/"

// =============================================================================
// CONFIGURATION ERROR
// =============================================================================

// ConfigurationError reports an invalid setting. It is fatal to the entire
// run and is surfaced before any document generation begins.
type ConfigurationError struct {
	// Setting is the name of the offending setting.
	Setting string

	// Message explains what is wrong with it.
	Message string
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s: %s", e.Setting, e.Message)
}

// =============================================================================
// FILE CONFIGURATION STRUCTURE
// =============================================================================

// FileConfig mirrors the config.yaml layout.
type FileConfig struct {
	// InputDir is the directory scanned for URL listing files.
	// Default: "./input"
	InputDir string `yaml:"input_dir"`

	// OutputDir is the directory the XML files are written to.
	// Default: "./output"
	OutputDir string `yaml:"output_dir"`

	// ArchiveDir is where successfully processed listing files are moved.
	// Default: "./input_archive"
	ArchiveDir string `yaml:"archive_dir"`

	// ArchiveOnSuccess controls whether processed listings are archived.
	// Default: true
	ArchiveOnSuccess *bool `yaml:"archive_on_success"`

	// BaseURL is the public URL prefix for the generated sitemap files.
	// It must be an absolute http(s) URL; a missing trailing slash is
	// normalized away rather than rejected.
	BaseURL string `yaml:"base_url"`

	// MaxURLsPerSitemap is the per-document URL cap. Default: 50000.
	MaxURLsPerSitemap int `yaml:"max_urls_per_sitemap"`

	// MaxSitemapSizeMB is the per-document size cap. Default: 50.
	MaxSitemapSizeMB float64 `yaml:"max_sitemap_size_mb"`

	// MetadataFields is the ordered list of metadata columns this
	// deployment expects to see. Informational; every non-reserved
	// column is mapped regardless.
	MetadataFields []string `yaml:"metadata_fields"`

	// Verbose enables debug logging.
	Verbose bool `yaml:"verbose"`
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads a FileConfig from a YAML file. A missing file is not an
// error: the tool is usable with flags alone, so defaults are returned.
// A present but unparseable file is an error.
func Load(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := &FileConfig{}
			applyDefaults(cfg)
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg FileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func applyDefaults(cfg *FileConfig) {
	if cfg.InputDir == "" {
		cfg.InputDir = "./input"
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "./output"
	}
	if cfg.ArchiveDir == "" {
		cfg.ArchiveDir = "./input_archive"
	}
	if cfg.ArchiveOnSuccess == nil {
		t := true
		cfg.ArchiveOnSuccess = &t
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.MaxURLsPerSitemap == 0 {
		cfg.MaxURLsPerSitemap = types.DefaultMaxURLsPerSitemap
	}
	if cfg.MaxSitemapSizeMB == 0 {
		cfg.MaxSitemapSizeMB = types.DefaultMaxSitemapSizeMB
	}
}

// Settings converts the file configuration into the pipeline Settings
// value. The result still has to pass ResolveSettings before use.
func (cfg *FileConfig) Settings() types.Settings {
	return types.Settings{
		BaseURL:           cfg.BaseURL,
		MaxURLsPerSitemap: cfg.MaxURLsPerSitemap,
		MaxSitemapSizeMB:  cfg.MaxSitemapSizeMB,
		MetadataFields:    cfg.MetadataFields,
	}
}

// =============================================================================
// SETTINGS RESOLUTION
// =============================================================================

// ResolveSettings validates and normalizes a Settings value. This is the
// single gate every run passes through before any parsing or building
// happens.
//
// NORMALIZATION:
//   - BaseURL is trimmed and gets a trailing "/" appended if missing, so
//     filename concatenation cannot produce a malformed location.
//
// VALIDATION (each failure is a *ConfigurationError):
//   - BaseURL must be an absolute http(s) URL with a host.
//   - MaxURLsPerSitemap must be a positive integer.
//   - MaxSitemapSizeMB must be positive.
func ResolveSettings(s types.Settings) (types.Settings, error) {
	s.BaseURL = strings.TrimSpace(s.BaseURL)
	if s.BaseURL == "" {
		return s, &ConfigurationError{Setting: "base_url", Message: "must not be empty"}
	}

	u, err := url.Parse(s.BaseURL)
	if err != nil {
		return s, &ConfigurationError{Setting: "base_url", Message: err.Error()}
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return s, &ConfigurationError{
			Setting: "base_url",
			Message: fmt.Sprintf("must be an absolute http(s) URL, got '%s'", s.BaseURL),
		}
	}

	if !strings.HasSuffix(s.BaseURL, "/") {
		s.BaseURL += "/"
	}

	if s.MaxURLsPerSitemap <= 0 {
		return s, &ConfigurationError{
			Setting: "max_urls_per_sitemap",
			Message: fmt.Sprintf("must be a positive integer, got %d", s.MaxURLsPerSitemap),
		}
	}

	if s.MaxSitemapSizeMB <= 0 {
		return s, &ConfigurationError{
			Setting: "max_sitemap_size_mb",
			Message: fmt.Sprintf("must be positive, got %g", s.MaxSitemapSizeMB),
		}
	}

	return s, nil
}
