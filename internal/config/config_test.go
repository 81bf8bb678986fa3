package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lexvek.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	t.Run("EmptyPathGivesDefaults", func(t *testing.T) {
		cfg, err := Load("")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Train.WindowSize != 4 || cfg.Train.Dimensions != 2 || cfg.Train.MinCount != 1 {
			t.Errorf("unexpected training defaults: %+v", cfg.Train)
		}
		if cfg.Train.Precision != "float32" {
			t.Errorf("precision default: got %q", cfg.Train.Precision)
		}
		if cfg.Serve.Port != 9191 {
			t.Errorf("port default: got %d", cfg.Serve.Port)
		}
	})

	t.Run("PartialFileKeepsDefaults", func(t *testing.T) {
		path := writeConfig(t, "train:\n  window_size: 8\n")
		cfg, err := Load(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Train.WindowSize != 8 {
			t.Errorf("window_size: got %d, want 8", cfg.Train.WindowSize)
		}
		if cfg.Train.Dimensions != 2 {
			t.Errorf("dimensions should keep its default, got %d", cfg.Train.Dimensions)
		}
	})

	t.Run("FullFile", func(t *testing.T) {
		path := writeConfig(t, strings.Join([]string{
			"train:",
			"  window_size: 5",
			"  dimensions: 50",
			"  min_count: 3",
			"  stop_words: italian",
			"  stem: true",
			"  parallel: true",
			"  precision: float16",
			"serve:",
			"  host: 127.0.0.1",
			"  port: 8080",
			"  auth_token: hunter2",
		}, "\n"))
		cfg, err := Load(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		opts := cfg.Train.Options()
		if opts.WindowSize != 5 || opts.Dimensions != 50 || opts.MinCount != 3 {
			t.Errorf("options: %+v", opts)
		}
		if opts.StopWordLanguage != "italian" || !opts.Stem || !opts.Parallel {
			t.Errorf("options: %+v", opts)
		}
		if string(cfg.Train.SnapshotPrecision()) != "float16" {
			t.Errorf("precision: got %q", cfg.Train.Precision)
		}
		if cfg.Serve.Host != "127.0.0.1" || cfg.Serve.Port != 8080 {
			t.Errorf("serve: %+v", cfg.Serve)
		}
		if cfg.Serve.AuthToken != "hunter2" {
			t.Errorf("auth_token: got %q", cfg.Serve.AuthToken)
		}
	})

	t.Run("EnvironmentExpansion", func(t *testing.T) {
		t.Setenv("LEXVEK_TEST_WINDOW", "7")
		path := writeConfig(t, "train:\n  window_size: ${LEXVEK_TEST_WINDOW}\n")
		cfg, err := Load(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Train.WindowSize != 7 {
			t.Errorf("window_size: got %d, want 7", cfg.Train.WindowSize)
		}
	})

	t.Run("UnknownFieldRejected", func(t *testing.T) {
		path := writeConfig(t, "train:\n  window_sizee: 8\n")
		if _, err := Load(path); err == nil {
			t.Error("expected error for unknown field")
		}
	})

	t.Run("MissingFile", func(t *testing.T) {
		if _, err := Load("/nonexistent/lexvek.yaml"); err == nil {
			t.Error("expected error for missing file")
		}
	})
}

func TestValidate(t *testing.T) {
	cases := map[string]func(*Config){
		"WindowTooSmall":   func(c *Config) { c.Train.WindowSize = 0 },
		"NoDimensions":     func(c *Config) { c.Train.Dimensions = 0 },
		"MinCountZero":     func(c *Config) { c.Train.MinCount = 0 },
		"BadPrecision":     func(c *Config) { c.Train.Precision = "float8" },
		"UnknownStopWords": func(c *Config) { c.Train.StopWords = "klingon" },
		"PortOutOfRange":   func(c *Config) { c.Serve.Port = 70000 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := DefaultConfig()
			mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}

	t.Run("DefaultsAreValid", func(t *testing.T) {
		cfg := DefaultConfig()
		if err := cfg.Validate(); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
}
