package output

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/pflag"

	"github.com/jmylchreest/contrastgrid/internal/config"
	"github.com/jmylchreest/contrastgrid/internal/generator"
)

// fakePlugin returns fixed files from Generate.
type fakePlugin struct {
	name       string
	dir        string
	files      map[string][]byte
	err        error
	invalid    error
	configured *config.Config
}

func (f *fakePlugin) Name() string                       { return f.name }
func (f *fakePlugin) Description() string                { return "fake " + f.name }
func (f *fakePlugin) RegisterFlags(flags *pflag.FlagSet) { flags.Bool(f.name+".enabled", false, "") }
func (f *fakePlugin) Validate() error                    { return f.invalid }
func (f *fakePlugin) DefaultOutputDir() string           { return f.dir }
func (f *fakePlugin) Configure(cfg config.Config)        { f.configured = &cfg }

func (f *fakePlugin) Generate(_ *generator.Snapshot) (map[string][]byte, error) {
	return f.files, f.err
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	r.Register(&fakePlugin{name: "zeta"})
	r.Register(&fakePlugin{name: "alpha"})

	if diff := cmp.Diff([]string{"alpha", "zeta"}, r.List()); diff != "" {
		t.Errorf("List() mismatch (-want +got):\n%s", diff)
	}
	if _, ok := r.Get("alpha"); !ok {
		t.Error("Get(alpha) not found")
	}
	if _, ok := r.Get("missing"); ok {
		t.Error("Get(missing) found")
	}

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	r.RegisterFlags(flags)
	for _, name := range []string{"alpha.enabled", "zeta.enabled"} {
		if flags.Lookup(name) == nil {
			t.Errorf("flag %s not registered", name)
		}
	}
}

func TestRegistrySelect(t *testing.T) {
	r := NewRegistry()
	alpha := &fakePlugin{name: "alpha"}
	r.Register(alpha)
	r.Register(&fakePlugin{name: "zeta"})

	cfg := config.Default()
	cfg.OutputDir = "site"
	selected, err := r.Select([]string{"zeta", "alpha"}, cfg, nil)
	if err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	if len(selected) != 2 || selected[0].Name() != "zeta" || selected[1].Name() != "alpha" {
		t.Errorf("Select() did not keep the requested order")
	}
	if alpha.configured == nil || alpha.configured.OutputDir != "site" {
		t.Error("Select() did not configure the plugin")
	}

	if _, err := r.Select([]string{"pdf"}, cfg, nil); err == nil {
		t.Error("Select() of an unknown plugin should fail")
	}
}

func TestRender(t *testing.T) {
	dir := t.TempDir()
	plugins := []Plugin{
		&fakePlugin{name: "b", dir: dir, files: map[string][]byte{"b.txt": []byte("b")}},
		&fakePlugin{name: "a", dir: filepath.Join(dir, "sub"), files: map[string][]byte{"a.txt": []byte("a"), "c.txt": []byte("c")}},
	}

	files, err := Render(plugins, nil, nil)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	want := []File{
		{Plugin: "b", Path: filepath.Join(dir, "b.txt"), Content: []byte("b")},
		{Plugin: "a", Path: filepath.Join(dir, "sub", "a.txt"), Content: []byte("a")},
		{Plugin: "a", Path: filepath.Join(dir, "sub", "c.txt"), Content: []byte("c")},
	}
	if diff := cmp.Diff(want, files); diff != "" {
		t.Errorf("Render() mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderErrors(t *testing.T) {
	boom := errors.New("boom")

	tests := []struct {
		name    string
		plugins []Plugin
		wantErr error
	}{
		{
			name:    "generate fails",
			plugins: []Plugin{&fakePlugin{name: "a", dir: "out", err: boom}},
			wantErr: boom,
		},
		{
			name:    "invalid configuration",
			plugins: []Plugin{&fakePlugin{name: "a", dir: "out", invalid: boom}},
			wantErr: boom,
		},
		{
			name:    "escaping path",
			plugins: []Plugin{&fakePlugin{name: "a", dir: "out", files: map[string][]byte{"../x": nil}}},
		},
		{
			name: "duplicate path",
			plugins: []Plugin{
				&fakePlugin{name: "a", dir: "out", files: map[string][]byte{"x": nil}},
				&fakePlugin{name: "b", dir: "out", files: map[string][]byte{"x": nil}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Render(tt.plugins, nil, nil)
			if err == nil {
				t.Fatal("Render() error = nil")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Render() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCommit(t *testing.T) {
	dir := t.TempDir()
	files := []File{
		{Plugin: "a", Path: filepath.Join(dir, "public", "index.html"), Content: []byte("<html>")},
		{Plugin: "b", Path: filepath.Join(dir, "src", "colors.js"), Content: []byte("module.exports = []")},
	}

	if err := Commit(files, nil); err != nil {
		t.Fatalf("Commit() error = %v", err)
	}

	for _, f := range files {
		got, err := os.ReadFile(f.Path)
		if err != nil {
			t.Fatalf("failed to read %s: %v", f.Path, err)
		}
		if string(got) != string(f.Content) {
			t.Errorf("%s = %q, want %q", f.Path, got, f.Content)
		}
	}

	// No staging files are left behind.
	for _, sub := range []string{"public", "src"} {
		entries, err := os.ReadDir(filepath.Join(dir, sub))
		if err != nil {
			t.Fatal(err)
		}
		if len(entries) != 1 {
			t.Errorf("%s holds %d entries, want 1", sub, len(entries))
		}
	}
}

func TestCommitAllOrNothing(t *testing.T) {
	dir := t.TempDir()

	// A regular file where a directory is needed makes staging the second
	// file fail.
	blocker := filepath.Join(dir, "blocked")
	if err := os.WriteFile(blocker, []byte("file"), 0o644); err != nil {
		t.Fatal(err)
	}

	first := filepath.Join(dir, "public", "index.html")
	files := []File{
		{Plugin: "a", Path: first, Content: []byte("<html>")},
		{Plugin: "b", Path: filepath.Join(blocker, "colors.js"), Content: []byte("[]")},
	}

	if err := Commit(files, nil); err == nil {
		t.Fatal("Commit() error = nil")
	}

	if _, err := os.Stat(first); !os.IsNotExist(err) {
		t.Errorf("%s was written despite the failure", first)
	}
	entries, err := os.ReadDir(filepath.Join(dir, "public"))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("staging files left behind: %v", entries)
	}
}

func TestCommitRestoresOnMoveFailure(t *testing.T) {
	dir := t.TempDir()

	existing := filepath.Join(dir, "a.html")
	if err := os.WriteFile(existing, []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}
	// Staging succeeds everywhere, but a directory cannot be replaced by a
	// file, so the third move fails after the first two have happened.
	if err := os.Mkdir(filepath.Join(dir, "c.css"), 0o755); err != nil {
		t.Fatal(err)
	}

	files := []File{
		{Plugin: "markup", Path: existing, Content: []byte("new")},
		{Plugin: "markup", Path: filepath.Join(dir, "b.js"), Content: []byte("js")},
		{Plugin: "stylesheet", Path: filepath.Join(dir, "c.css"), Content: []byte("css")},
	}

	if err := Commit(files, nil); err == nil {
		t.Fatal("Commit() error = nil")
	}

	got, err := os.ReadFile(existing)
	if err != nil {
		t.Fatalf("%s was not restored: %v", existing, err)
	}
	if string(got) != "old" {
		t.Errorf("%s = %q, want the original content", existing, got)
	}
	if _, err := os.Stat(filepath.Join(dir, "b.js")); !os.IsNotExist(err) {
		t.Error("b.js was written although Commit failed")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	if diff := cmp.Diff([]string{"a.html", "c.css"}, names); diff != "" {
		t.Errorf("directory contents mismatch (-want +got):\n%s", diff)
	}
}

func TestCommitReplacesExisting(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "colors.css")
	if err := os.WriteFile(path, []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := Commit([]File{{Plugin: "stylesheet", Path: path, Content: []byte("new")}}, nil); err != nil {
		t.Fatalf("Commit() error = %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "new" {
		t.Errorf("%s = %q, want new", path, got)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("backup or staging files left behind: %v", entries)
	}
}
