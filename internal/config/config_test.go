package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ericfordelon/polaris-sitemap-generator/internal/types"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.InputDir != "./input" || cfg.OutputDir != "./output" {
		t.Errorf("directory defaults not applied: %+v", cfg)
	}
	if cfg.BaseURL != DefaultBaseURL {
		t.Errorf("BaseURL = %q, want default", cfg.BaseURL)
	}
	if cfg.MaxURLsPerSitemap != types.DefaultMaxURLsPerSitemap {
		t.Errorf("MaxURLsPerSitemap = %d, want default", cfg.MaxURLsPerSitemap)
	}
	if cfg.MaxSitemapSizeMB != types.DefaultMaxSitemapSizeMB {
		t.Errorf("MaxSitemapSizeMB = %g, want default", cfg.MaxSitemapSizeMB)
	}
	if cfg.ArchiveOnSuccess == nil || !*cfg.ArchiveOnSuccess {
		t.Errorf("ArchiveOnSuccess default should be true")
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
input_dir: /srv/listings
base_url: https://cdn.example.com/maps
max_urls_per_sitemap: 1000
max_sitemap_size_mb: 10
metadata_fields:
  - type
  - manufacturer
archive_on_success: false
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.InputDir != "/srv/listings" {
		t.Errorf("InputDir = %q", cfg.InputDir)
	}
	if cfg.BaseURL != "https://cdn.example.com/maps" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.MaxURLsPerSitemap != 1000 || cfg.MaxSitemapSizeMB != 10 {
		t.Errorf("limits = %d / %g", cfg.MaxURLsPerSitemap, cfg.MaxSitemapSizeMB)
	}
	if len(cfg.MetadataFields) != 2 || cfg.MetadataFields[0] != "type" {
		t.Errorf("MetadataFields = %v", cfg.MetadataFields)
	}
	if *cfg.ArchiveOnSuccess {
		t.Errorf("archive_on_success: false was not honored")
	}
	// Unset options still get defaults.
	if cfg.OutputDir != "./output" {
		t.Errorf("OutputDir = %q, want default", cfg.OutputDir)
	}
}

func TestLoadUnparseableFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("{not yaml"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Errorf("Load() = nil error for unparseable file")
	}
}

func TestResolveSettingsNormalizesBaseURL(t *testing.T) {
	s, err := ResolveSettings(types.Settings{
		BaseURL:           "https://cdn.example.com/maps",
		MaxURLsPerSitemap: 100,
		MaxSitemapSizeMB:  1,
	})
	if err != nil {
		t.Fatalf("ResolveSettings() error = %v", err)
	}
	if s.BaseURL != "https://cdn.example.com/maps/" {
		t.Errorf("BaseURL = %q, want trailing slash appended", s.BaseURL)
	}

	// Already-normalized URLs pass through untouched.
	s2, err := ResolveSettings(s)
	if err != nil {
		t.Fatalf("ResolveSettings() error = %v", err)
	}
	if s2.BaseURL != s.BaseURL {
		t.Errorf("BaseURL changed on re-resolution: %q", s2.BaseURL)
	}
}

func TestResolveSettingsRejections(t *testing.T) {
	valid := types.Settings{
		BaseURL:           "https://cdn.example.com/",
		MaxURLsPerSitemap: 100,
		MaxSitemapSizeMB:  1,
	}

	tests := []struct {
		name   string
		mutate func(*types.Settings)
	}{
		{"empty base url", func(s *types.Settings) { s.BaseURL = "" }},
		{"relative base url", func(s *types.Settings) { s.BaseURL = "/sitemaps/" }},
		{"non-http scheme", func(s *types.Settings) { s.BaseURL = "ftp://cdn.example.com/" }},
		{"zero url limit", func(s *types.Settings) { s.MaxURLsPerSitemap = 0 }},
		{"negative url limit", func(s *types.Settings) { s.MaxURLsPerSitemap = -5 }},
		{"zero size limit", func(s *types.Settings) { s.MaxSitemapSizeMB = 0 }},
		{"negative size limit", func(s *types.Settings) { s.MaxSitemapSizeMB = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid
			tt.mutate(&s)

			_, err := ResolveSettings(s)
			var cfgErr *ConfigurationError
			if !errors.As(err, &cfgErr) {
				t.Errorf("ResolveSettings() error = %v, want *ConfigurationError", err)
			}
		})
	}
}
