// Package template loads output templates with support for user overrides.
package template

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/hashicorp/go-hclog"
)

// ErrExists is returned by Dump when an override already exists.
var ErrExists = errors.New("custom template already exists")

// Loader reads a plugin's templates, preferring a file under
// {customBase}/{pluginName}/ over the embedded default.
type Loader struct {
	pluginName string
	embedded   fs.FS
	customBase string
	logger     hclog.Logger
}

// DefaultBase returns ~/.config/contrastgrid/templates, or "" when the home
// directory is unknown.
func DefaultBase() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "contrastgrid", "templates")
}

// New creates a loader for pluginName backed by the embedded templates.
func New(pluginName string, embedded fs.FS) *Loader {
	return &Loader{
		pluginName: pluginName,
		embedded:   embedded,
		customBase: DefaultBase(),
		logger:     hclog.NewNullLogger(),
	}
}

// WithCustomBase sets the directory searched for overrides. An empty base
// disables overrides.
func (l *Loader) WithCustomBase(customBase string) *Loader {
	l.customBase = customBase
	return l
}

// WithLogger sets the logger that reports which template was used.
func (l *Loader) WithLogger(logger hclog.Logger) *Loader {
	if logger != nil {
		l.logger = logger
	}
	return l
}

// Load returns the content of filename and whether it came from an override.
func (l *Loader) Load(filename string) (content []byte, fromCustom bool, err error) {
	if l.customBase != "" {
		path := l.CustomPath(filename)
		if content, err := os.ReadFile(path); err == nil { // #nosec G304 - user template directory
			l.logger.Debug("using custom template", "plugin", l.pluginName, "path", path)
			return content, true, nil
		}
	}

	content, err = fs.ReadFile(l.embedded, filename)
	if err != nil {
		return nil, false, fmt.Errorf("failed to load template %q: %w", filename, err)
	}
	l.logger.Debug("using embedded template", "plugin", l.pluginName, "template", filename)
	return content, false, nil
}

// CustomPath returns where an override of filename would be located.
func (l *Loader) CustomPath(filename string) string {
	return filepath.Join(l.customBase, l.pluginName, filename)
}

// HasCustomTemplate reports whether an override of filename exists.
func (l *Loader) HasCustomTemplate(filename string) bool {
	if l.customBase == "" {
		return false
	}
	_, err := os.Stat(l.CustomPath(filename))
	return err == nil
}

// List returns the embedded template files, sorted.
func (l *Loader) List() ([]string, error) {
	var names []string
	err := fs.WalkDir(l.embedded, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			names = append(names, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list embedded templates: %w", err)
	}
	slices.Sort(names)
	return names, nil
}

// Dump copies an embedded template to its override location so it can be
// edited. Existing overrides are kept unless force is set.
func (l *Loader) Dump(filename string, force bool) (string, error) {
	if l.customBase == "" {
		return "", fmt.Errorf("no custom template directory configured")
	}

	content, err := fs.ReadFile(l.embedded, filename)
	if err != nil {
		return "", fmt.Errorf("failed to read embedded template %q: %w", filename, err)
	}

	path := l.CustomPath(filename)
	if !force && l.HasCustomTemplate(filename) {
		return path, fmt.Errorf("%w: %s", ErrExists, path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil { // #nosec G306 - templates are not secret
		return "", fmt.Errorf("failed to write template to %s: %w", path, err)
	}
	return path, nil
}

// DumpAll dumps every embedded template. Existing overrides are skipped and
// reported in the returned error; other failures stop the dump.
func (l *Loader) DumpAll(force bool) ([]string, error) {
	names, err := l.List()
	if err != nil {
		return nil, err
	}

	var dumped []string
	var skipped []error
	for _, name := range names {
		path, err := l.Dump(name, force)
		if errors.Is(err, ErrExists) {
			skipped = append(skipped, err)
			continue
		}
		if err != nil {
			return dumped, err
		}
		dumped = append(dumped, path)
	}
	return dumped, errors.Join(skipped...)
}
