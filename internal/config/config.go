// Package config loads and validates generator configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/contrastgrid/internal/combinatorics"
	"github.com/jmylchreest/contrastgrid/internal/pairing"
	"github.com/jmylchreest/contrastgrid/internal/palette"
)

// Output names.
const (
	OutputData       = "data"
	OutputStylesheet = "stylesheet"
	OutputMarkup     = "markup"
	OutputSwatches   = "swatches"
)

// Data file formats.
const (
	FormatJSON   = "json"
	FormatModule = "module"
)

// ErrInvalid is returned when a configuration fails validation.
var ErrInvalid = errors.New("invalid configuration")

// Config controls a generation run.
type Config struct {
	Alphabet        []string `yaml:"alphabet" validate:"required,min=1,max=256,dive,len=2,hexadecimal"`
	Repeat          int      `yaml:"repeat" validate:"gte=1,lte=6"`
	MinimumContrast float64  `yaml:"minimum_contrast" validate:"gte=1,lte=21"`
	OutputDir       string   `yaml:"output_dir" validate:"required"`
	DataDir         string   `yaml:"data_dir" validate:"required"`
	Outputs         []string `yaml:"outputs" validate:"required,min=1,dive,oneof=data stylesheet markup swatches"`
	DataFormat      string   `yaml:"data_format" validate:"oneof=json module"`
	Compress        bool     `yaml:"compress"`
	MaxTuples       int      `yaml:"max_tuples" validate:"gte=1"`
	MaxPairs        int      `yaml:"max_pairs" validate:"gte=1"`
	TemplateDir     string   `yaml:"template_dir"`
}

// TemplateBase returns the directory searched for template overrides, with
// a leading ~/ expanded. Empty means the loader default.
func (c Config) TemplateBase() string {
	return expandPath(c.TemplateDir)
}

// Default returns the configuration that reproduces the web-safe palette.
func Default() Config {
	return Config{
		Alphabet:        append([]string(nil), palette.DefaultAlphabet...),
		Repeat:          palette.DefaultRepeat,
		MinimumContrast: pairing.DefaultMinimumContrast,
		OutputDir:       "public",
		DataDir:         "src",
		Outputs:         []string{OutputData, OutputStylesheet, OutputMarkup},
		DataFormat:      FormatModule,
		MaxTuples:       combinatorics.DefaultMaxTuples,
		MaxPairs:        pairing.DefaultMaxPairs,
	}
}

// Load reads a YAML file over the defaults and validates the result.
// Keys missing from the file keep their default values.
func Load(path string) (Config, error) {
	cfg, err := Read(path)
	if err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Read is like Load without the validation step. Callers that apply
// overrides validate the merged result themselves.
func Read(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(expandPath(path)) // #nosec G304 - User-specified config file, intended to be read
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse YAML config: %w", err)
	}
	return cfg, nil
}

// Validate checks every field and reports all failures at once.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	msgs := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		msgs = append(msgs, fmt.Sprintf("%s %s", e.Namespace(), formatValidationMessage(e)))
	}
	return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(msgs, "; "))
}

// HasOutput reports whether name is among the selected outputs.
func (c Config) HasOutput(name string) bool {
	for _, o := range c.Outputs {
		if o == name {
			return true
		}
	}
	return false
}

// validate is the shared validator instance.
var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	// Use YAML key names in error messages instead of struct field names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
}

// formatValidationMessage creates a human-readable message from a validator error.
func formatValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must have at least %s entries", e.Param())
	case "max":
		return fmt.Sprintf("must have at most %s entries", e.Param())
	case "len":
		return fmt.Sprintf("must be exactly %s characters", e.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", e.Param())
	case "lte":
		return fmt.Sprintf("must be less than or equal to %s", e.Param())
	case "hexadecimal":
		return "must be hexadecimal"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", e.Param())
	default:
		return fmt.Sprintf("failed validation '%s'", e.Tag())
	}
}

// expandPath expands a leading ~/ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
