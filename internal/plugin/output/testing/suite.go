// Package testing provides shared test utilities for output plugins.
package testing

import (
	"context"
	"strings"
	"testing"

	"github.com/spf13/pflag"

	"github.com/jmylchreest/contrastgrid/internal/config"
	"github.com/jmylchreest/contrastgrid/internal/generator"
	"github.com/jmylchreest/contrastgrid/internal/plugin/output"
)

// TestBasicInterface tests the basic plugin interface methods that all plugins must implement.
func TestBasicInterface(t *testing.T, p output.Plugin, expectedName string, expectedDir string) {
	t.Run("Name", func(t *testing.T) {
		if p.Name() != expectedName {
			t.Errorf("Name() = %s, want %s", p.Name(), expectedName)
		}
	})

	t.Run("Description", func(t *testing.T) {
		if p.Description() == "" {
			t.Error("Description() should not be empty")
		}
	})

	t.Run("DefaultOutputDir", func(t *testing.T) {
		if dir := p.DefaultOutputDir(); dir != expectedDir {
			t.Errorf("DefaultOutputDir() = %s, want %s", dir, expectedDir)
		}
	})

	t.Run("Validate", func(t *testing.T) {
		if err := p.Validate(); err != nil {
			t.Errorf("Validate() error = %v, want nil", err)
		}
	})
}

// TestGeneration tests the Generate method against a small palette.
func TestGeneration(t *testing.T, p output.Plugin, expectedFiles []string) {
	t.Run("Generate", func(t *testing.T) {
		files, err := p.Generate(CreateTestSnapshot(t))
		if err != nil {
			t.Fatalf("Generate() error = %v", err)
		}

		if len(files) != len(expectedFiles) {
			t.Fatalf("Generate() returned %d files, want %d", len(files), len(expectedFiles))
		}

		for _, expectedFile := range expectedFiles {
			content, ok := files[expectedFile]
			if !ok {
				t.Errorf("Generate() did not return %s", expectedFile)
				continue
			}
			if len(content) == 0 {
				t.Errorf("Generate() returned empty %s", expectedFile)
			}
		}
	})

	t.Run("GenerateNilSnapshot", func(t *testing.T) {
		if _, err := p.Generate(nil); err == nil {
			t.Error("Generate() with nil snapshot should return error")
		}
	})
}

// TestFlags tests that every plugin flag is namespaced by the plugin name.
func TestFlags(t *testing.T, p output.Plugin, expectedFlags []string) {
	t.Run("RegisterFlags", func(t *testing.T) {
		flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
		p.RegisterFlags(flags)

		for _, name := range expectedFlags {
			if flags.Lookup(name) == nil {
				t.Errorf("RegisterFlags() did not register %s flag", name)
			}
		}

		flags.VisitAll(func(f *pflag.Flag) {
			if !strings.HasPrefix(f.Name, p.Name()+".") {
				t.Errorf("flag %s is not prefixed with %s.", f.Name, p.Name())
			}
		})
	})
}

// IsolateHome points HOME at an empty directory for the rest of the test,
// so plugins left on the default template location find no overrides.
func IsolateHome(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
}

// CreateTestConfig returns the default configuration with a palette of
// four colours and template overrides pointed at an empty directory. It
// also isolates HOME.
func CreateTestConfig(t *testing.T) config.Config {
	t.Helper()
	IsolateHome(t)
	cfg := config.Default()
	cfg.Alphabet = []string{"00", "FF"}
	cfg.Repeat = 1
	cfg.MinimumContrast = 1
	cfg.TemplateDir = t.TempDir()
	return cfg
}

// CreateTestSnapshot generates a snapshot from CreateTestConfig. The palette
// is #00FF00, #00FFFF, #FF0000 and #FF00FF.
func CreateTestSnapshot(t *testing.T) *generator.Snapshot {
	t.Helper()
	snap, err := generator.Generate(context.Background(), CreateTestConfig(t))
	if err != nil {
		t.Fatalf("failed to generate test snapshot: %v", err)
	}
	return snap
}

// RunAllTests runs all standard tests for a plugin.
func RunAllTests(t *testing.T, p output.Plugin, config TestConfig) {
	if c, ok := p.(output.Configurable); ok {
		c.Configure(CreateTestConfig(t))
	}
	TestBasicInterface(t, p, config.ExpectedName, config.ExpectedDir)
	TestGeneration(t, p, config.ExpectedFiles)
	TestFlags(t, p, config.ExpectedFlags)
}

// TestConfig holds configuration for running plugin tests.
type TestConfig struct {
	ExpectedName  string   // Plugin name
	ExpectedFiles []string // Files that Generate() should return
	ExpectedDir   string   // DefaultOutputDir() under the test configuration
	ExpectedFlags []string // Flags RegisterFlags() must register
}
