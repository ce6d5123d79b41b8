package cli_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jmylchreest/contrastgrid/internal/cli"
	"github.com/jmylchreest/contrastgrid/internal/colour"
	"github.com/jmylchreest/contrastgrid/internal/config"
	"github.com/jmylchreest/contrastgrid/internal/pairing"
	tmplloader "github.com/jmylchreest/contrastgrid/internal/plugin/output/template"
)

// run executes the root command with args and returns stdout and stderr.
// HOME points at an empty directory so template overrides of the user
// running the tests are never picked up.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	var outBuf, errBuf bytes.Buffer
	rootCmd := cli.NewRootCmd()
	rootCmd.SetOut(&outBuf)
	rootCmd.SetErr(&errBuf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return outBuf.String(), errBuf.String(), err
}

// outputArgs points every output of generate into dir.
func outputArgs(dir string) []string {
	return []string{
		"--output-dir", filepath.Join(dir, "public"),
		"--data-dir", filepath.Join(dir, "src"),
		"--template-dir", filepath.Join(dir, "templates"),
	}
}

func TestGenerateCommand(t *testing.T) {
	dir := t.TempDir()

	_, stderr, err := run(t, append([]string{"generate"}, outputArgs(dir)...)...)
	if err != nil {
		t.Fatalf("generate failed: %v\n%s", err, stderr)
	}

	for _, name := range []string{
		"public/colors.css",
		"public/index.html",
		"public/scripts.js",
		"src/colors.js",
		"src/palette.json",
	} {
		info, err := os.Stat(filepath.Join(dir, name))
		if err != nil {
			t.Errorf("%s not written: %v", name, err)
			continue
		}
		if info.Size() == 0 {
			t.Errorf("%s is empty", name)
		}
	}

	if _, err := os.Stat(filepath.Join(dir, "public", "swatches.png")); !os.IsNotExist(err) {
		t.Error("swatches.png written although swatches is not a default output")
	}
	if !strings.Contains(stderr, "palette built") {
		t.Errorf("expected progress logging, got %q", stderr)
	}
}

func TestGenerateCommand_DryRun(t *testing.T) {
	dir := t.TempDir()

	args := append([]string{"generate", "--dry-run", "-o", "stylesheet,swatches"}, outputArgs(dir)...)
	stdout, _, err := run(t, args...)
	if err != nil {
		t.Fatalf("generate --dry-run failed: %v", err)
	}

	for _, want := range []string{"colors.css", "swatches.png", "2 files would be written"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("dry run output missing %q:\n%s", want, stdout)
		}
	}
	if _, err := os.Stat(filepath.Join(dir, "public")); !os.IsNotExist(err) {
		t.Error("dry run created the output directory")
	}
}

func TestGenerateCommand_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "contrastgrid.yaml")
	content := `
alphabet: ["00", "FF"]
repeat: 1
outputs: [data, swatches]
data_format: json
output_dir: ` + filepath.Join(dir, "site") + `
data_dir: ` + filepath.Join(dir, "site") + `
`
	if err := os.WriteFile(cfgPath, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	// --data-format on the command line wins over the file.
	if _, _, err := run(t, "generate", "--config", cfgPath, "--data-format", "module", "--swatches.size", "16"); err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	for _, name := range []string{"swatches.png", "colors.js", "palette.json"} {
		if _, err := os.Stat(filepath.Join(dir, "site", name)); err != nil {
			t.Errorf("%s not written: %v", name, err)
		}
	}
	if _, err := os.Stat(filepath.Join(dir, "site", "colors.json")); !os.IsNotExist(err) {
		t.Error("colors.json written although the flag selected module format")
	}
}

func TestGenerateCommand_FlagOverridesInvalidFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "contrastgrid.yaml")
	content := "alphabet: [\"00\", \"FF\"]\nrepeat: 0\n"
	if err := os.WriteFile(cfgPath, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	args := append([]string{"generate", "--dry-run", "--config", cfgPath}, outputArgs(dir)...)
	if _, _, err := run(t, args...); !errors.Is(err, config.ErrInvalid) {
		t.Fatalf("generate error = %v, want ErrInvalid for repeat 0", err)
	}

	// The flag corrects the file before anything is validated.
	stdout, _, err := run(t, append(args, "--repeat", "1")...)
	if err != nil {
		t.Fatalf("generate with --repeat failed: %v", err)
	}
	if !strings.Contains(stdout, "files would be written") {
		t.Errorf("unexpected dry run output:\n%s", stdout)
	}
}

func TestGenerateCommand_Errors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{name: "invalid repeat", args: []string{"--repeat", "0"}, wantErr: config.ErrInvalid},
		{name: "invalid alphabet", args: []string{"--alphabet", "0G"}, wantErr: config.ErrInvalid},
		{name: "unknown output", args: []string{"-o", "pdf"}, wantErr: config.ErrInvalid},
		{name: "tuple limit", args: []string{"--max-tuples", "10"}},
		{name: "pair limit", args: []string{"--max-pairs", "100"}, wantErr: pairing.ErrTooManyPairs},
		{name: "invalid plugin flag", args: []string{"-o", "swatches", "--swatches.columns", "0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append(append([]string{"generate"}, outputArgs(dir)...), tt.args...)
			_, _, err := run(t, args...)
			if err == nil {
				t.Fatal("generate should fail")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	if _, err := os.Stat(filepath.Join(dir, "public")); !os.IsNotExist(err) {
		t.Error("failed runs wrote output")
	}
}

func TestStatsCommand(t *testing.T) {
	stdout, _, err := run(t, "stats", "--quiet")
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}

	for _, want := range []string{"216", "15034", "Pairs above 10:", "1270", "10-11", "408", "21-22"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("stats output missing %q:\n%s", want, stdout)
		}
	}
}

func TestStatsCommand_Preview(t *testing.T) {
	stdout, _, err := run(t, "stats", "--quiet", "--preview", "2")
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}

	if got := strings.Count(stdout, "21.00:1"); got != 2 {
		t.Errorf("preview shows %d black/white pairs, want 2:\n%s", got, stdout)
	}
	if strings.Contains(stdout, "\033[") {
		t.Error("preview used ANSI escapes on a non-terminal writer")
	}
}

func TestCheckCommand(t *testing.T) {
	stdout, _, err := run(t, "check", "#336699", "FFFFFF")
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}

	for _, want := range []string{
		"#FFFFFF on #336699",
		"6.00:1 (5.9978)",
		"AA         4.5:1    pass",
		"AAA        7:1      fail",
	} {
		if !strings.Contains(stdout, want) {
			t.Errorf("check output missing %q:\n%s", want, stdout)
		}
	}
}

func TestCheckCommand_Errors(t *testing.T) {
	if _, _, err := run(t, "check", "#33669", "#FFFFFF"); !errors.Is(err, colour.ErrInvalidHex) {
		t.Errorf("error = %v, want ErrInvalidHex", err)
	}
	if _, _, err := run(t, "check", "#336699"); err == nil {
		t.Error("check with one argument should fail")
	}
}

func TestTemplatesCommand(t *testing.T) {
	dir := t.TempDir()

	stdout, _, err := run(t, "templates", "dump", "-l", dir)
	if err != nil {
		t.Fatalf("templates dump failed: %v", err)
	}
	for _, name := range []string{"markup/index.html.tmpl", "markup/scripts.js", "stylesheet/colors.css.tmpl"} {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if _, err := os.Stat(path); err != nil {
			t.Errorf("%s not dumped: %v", name, err)
		}
		if !strings.Contains(stdout, path) {
			t.Errorf("dump output does not mention %s", path)
		}
	}

	if _, _, err := run(t, "templates", "dump", "-l", dir); !errors.Is(err, tmplloader.ErrExists) {
		t.Errorf("second dump error = %v, want ErrExists", err)
	}
	if _, _, err := run(t, "templates", "dump", "-l", dir, "-o", "markup", "--force"); err != nil {
		t.Errorf("forced dump failed: %v", err)
	}
	if _, _, err := run(t, "templates", "dump", "-l", dir, "-o", "swatches"); err == nil {
		t.Error("dumping a plugin without templates should fail")
	}

	stdout, _, err = run(t, "templates", "list", "-l", dir)
	if err != nil {
		t.Fatalf("templates list failed: %v", err)
	}
	if !strings.Contains(stdout, filepath.Join(dir, "stylesheet", "colors.css.tmpl")) {
		t.Errorf("list does not show the override:\n%s", stdout)
	}
}

func TestVersionCommand(t *testing.T) {
	stdout, _, err := run(t, "version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.HasPrefix(stdout, "contrastgrid version ") {
		t.Errorf("version output = %q", stdout)
	}
}
