package output

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/contrastgrid/internal/generator"
	"github.com/jmylchreest/contrastgrid/internal/security"
)

// File is a rendered asset waiting to be written.
type File struct {
	Plugin  string
	Path    string
	Content []byte
}

// Render runs every plugin against snap and collects their files, sorted by
// path. Nothing touches the disk. The first failing plugin aborts the run,
// as does a file name that would land outside the plugin's directory.
func Render(plugins []Plugin, snap *generator.Snapshot, logger hclog.Logger) ([]File, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	var files []File
	seen := make(map[string]string)
	for _, plugin := range plugins {
		if err := plugin.Validate(); err != nil {
			return nil, fmt.Errorf("%s: invalid configuration: %w", plugin.Name(), err)
		}

		generated, err := plugin.Generate(snap)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", plugin.Name(), err)
		}

		dir := expandHome(plugin.DefaultOutputDir())
		for name, content := range generated {
			if err := security.ValidateFilePath(name, dir); err != nil {
				return nil, fmt.Errorf("%s: %w", plugin.Name(), err)
			}
			path := filepath.Join(dir, name)
			if owner, ok := seen[path]; ok {
				return nil, fmt.Errorf("%s and %s both generate %s", owner, plugin.Name(), path)
			}
			seen[path] = plugin.Name()
			files = append(files, File{Plugin: plugin.Name(), Path: path, Content: content})
		}
		logger.Debug("plugin rendered", "plugin", plugin.Name(), "files", len(generated))
	}

	slices.SortFunc(files, func(a, b File) int {
		return strings.Compare(a.Path, b.Path)
	})
	return files, nil
}

// Commit writes files all-or-nothing: every file is first staged next to its
// destination and only when all of them are staged are they moved into
// place. Existing destinations are set aside while the batch is moved and
// are restored when any move fails, so a failed commit leaves the tree as it
// found it.
func Commit(files []File, logger hclog.Logger) error {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	staged := make([]string, 0, len(files))
	cleanup := func() {
		for _, tmp := range staged {
			_ = os.Remove(tmp)
		}
	}

	for _, f := range files {
		tmp, err := stage(f)
		if err != nil {
			cleanup()
			return err
		}
		staged = append(staged, tmp)
	}

	var moved []placed
	for i, f := range files {
		p, err := place(staged[i], f.Path)
		if err != nil {
			rollback(moved)
			cleanup()
			return err
		}
		moved = append(moved, p)
	}

	for i, p := range moved {
		if p.backup != "" {
			_ = os.Remove(p.backup)
		}
		logger.Info("wrote file", "path", p.path, "bytes", len(files[i].Content))
	}
	return nil
}

// placed records a staged file moved onto path and where the file it
// replaced was set aside, if there was one.
type placed struct {
	path   string
	backup string
}

// place moves tmp onto path, setting any existing file aside first.
func place(tmp, path string) (placed, error) {
	p := placed{path: path}

	info, err := os.Lstat(path)
	switch {
	case err == nil && info.IsDir():
		return p, fmt.Errorf("failed to move %s into place: destination is a directory", path)
	case err == nil:
		p.backup = tmp + ".bak"
		if err := os.Rename(path, p.backup); err != nil {
			return p, fmt.Errorf("failed to set aside %s: %w", path, err)
		}
	case !os.IsNotExist(err):
		return p, fmt.Errorf("failed to inspect %s: %w", path, err)
	}

	if err := os.Rename(tmp, path); err != nil {
		if p.backup != "" {
			_ = os.Rename(p.backup, path)
		}
		return p, fmt.Errorf("failed to move %s into place: %w", path, err)
	}
	return p, nil
}

// rollback undoes moves in reverse order, restoring replaced files.
func rollback(moved []placed) {
	for i := len(moved) - 1; i >= 0; i-- {
		p := moved[i]
		_ = os.Remove(p.path)
		if p.backup != "" {
			_ = os.Rename(p.backup, p.path)
		}
	}
}

func stage(f File) (string, error) {
	dir := filepath.Dir(f.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(f.Path)+".tmp-*")
	if err != nil {
		return "", fmt.Errorf("failed to stage %s: %w", f.Path, err)
	}

	_, writeErr := tmp.Write(f.Content)
	closeErr := tmp.Close()
	if writeErr == nil {
		writeErr = closeErr
	}
	if writeErr == nil {
		writeErr = os.Chmod(tmp.Name(), 0o644)
	}
	if writeErr != nil {
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to stage %s: %w", f.Path, writeErr)
	}
	return tmp.Name(), nil
}

// expandHome expands a leading ~/ to the user's home directory.
func expandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
