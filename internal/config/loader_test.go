package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// chdir changes the working directory for the duration of the test,
// mirroring testing.T.Chdir which requires Go 1.24.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(old) })
}

// TestLoadConfigFile tests YAML config file loading.
func TestLoadConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("valid file", func(t *testing.T) {
		t.Parallel()

		content := `base_url: http://fixture.test
output_dir: ./out
formats: [json, markdown]
years:
  "2024":
    brands: [trek, canyon]
    delay: 2s
`
		path := filepath.Join(t.TempDir(), DefaultConfigFile)
		if err := os.WriteFile(path, []byte(content), 0600); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		cf, err := LoadConfigFile(path)
		if err != nil {
			t.Fatalf("LoadConfigFile() error: %v", err)
		}

		if cf.BaseURL != "http://fixture.test" {
			t.Errorf("BaseURL = %q, want %q", cf.BaseURL, "http://fixture.test")
		}
		if len(cf.Formats) != 2 {
			t.Errorf("expected 2 formats, got %d", len(cf.Formats))
		}

		yc, ok := cf.Years["2024"]
		if !ok {
			t.Fatal("expected year config for 2024")
		}
		if len(yc.Brands) != 2 {
			t.Errorf("expected 2 brands, got %d", len(yc.Brands))
		}
		if yc.Delay != 2*time.Second {
			t.Errorf("Delay = %v, want 2s", yc.Delay)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfigFile(filepath.Join(t.TempDir(), "nope.yaml"))
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("expected ErrConfigNotFound, got %v", err)
		}
	})

	t.Run("malformed yaml", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), DefaultConfigFile)
		if err := os.WriteFile(path, []byte("years: [not: a: map"), 0600); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		if _, err := LoadConfigFile(path); err == nil {
			t.Error("expected error for malformed yaml")
		}
	})

	t.Run("empty file initializes years map", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), DefaultConfigFile)
		if err := os.WriteFile(path, []byte(""), 0600); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		cf, err := LoadConfigFile(path)
		if err != nil {
			t.Fatalf("LoadConfigFile() error: %v", err)
		}
		if cf.Years == nil {
			t.Error("expected Years map to be initialized")
		}
	})
}

// TestFileApply tests merging file settings into a Config.
func TestFileApply(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()
	cf := &File{
		BaseURL:   "http://fixture.test",
		OutputDir: "/tmp/out",
		Formats:   []string{"markdown"},
	}
	cf.Apply(cfg)

	if cfg.BaseURL != "http://fixture.test" {
		t.Errorf("BaseURL = %q, want file value", cfg.BaseURL)
	}
	if cfg.OutputDir != "/tmp/out" {
		t.Errorf("OutputDir = %q, want file value", cfg.OutputDir)
	}
	if len(cfg.Formats) != 1 || cfg.Formats[0] != "markdown" {
		t.Errorf("Formats = %v, want [markdown]", cfg.Formats)
	}
	if cfg.FileConfig != cf {
		t.Error("expected FileConfig to be attached")
	}
}

// TestFindConfigFile tests the config file search order.
func TestFindConfigFile(t *testing.T) {
	// Not parallel: changes the working directory.

	t.Run("explicit path exists", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "custom.yaml")
		if err := os.WriteFile(path, []byte("{}"), 0600); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		if got := FindConfigFile(path); got != path {
			t.Errorf("FindConfigFile() = %q, want %q", got, path)
		}
	})

	t.Run("explicit path missing", func(t *testing.T) {
		if got := FindConfigFile("/does/not/exist.yaml"); got != "" {
			t.Errorf("FindConfigFile() = %q, want empty", got)
		}
	})

	t.Run("current directory", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, DefaultConfigFile)
		if err := os.WriteFile(path, []byte("{}"), 0600); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		chdir(t, dir)

		got := FindConfigFile("")
		if filepath.Base(got) != DefaultConfigFile {
			t.Errorf("FindConfigFile() = %q, want %s in cwd", got, DefaultConfigFile)
		}
	})
}
