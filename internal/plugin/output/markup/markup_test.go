package markup

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	plugintesting "github.com/jmylchreest/contrastgrid/internal/plugin/output/testing"
)

// TestMarkupPlugin runs all standard plugin tests using shared utilities.
func TestMarkupPlugin(t *testing.T) {
	plugin := New()

	config := plugintesting.TestConfig{
		ExpectedName:  "markup",
		ExpectedFiles: []string{"index.html", "scripts.js"},
		ExpectedDir:   "public",
		ExpectedFlags: []string{"markup.title", "markup.stylesheet"},
	}

	plugintesting.RunAllTests(t, plugin, config)
}

func TestMarkupPlugin_Content(t *testing.T) {
	plugin := New()
	plugin.Configure(plugintesting.CreateTestConfig(t))

	files, err := plugin.Generate(plugintesting.CreateTestSnapshot(t))
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	page := string(files["index.html"])

	required := []string{
		`<link rel="stylesheet" href="colors.css">`,
		`<script src="scripts.js"></script>`,
		`4 colours, 2 accessible pairings, 12 pairs above 1:1.`,
		`<div class="primary bg-00FFFF text-black" data-base="#00FFFF">#00FFFF</div>`,
		`<div class="primary bg-FF0000 text-black" data-base="#FF0000">#FF0000</div>`,
		`class="colorBlock bg-FF0000" data-color="#FF0000" title="#FF0000 AALarge"`,
		`class="colorBlock bg-00FFFF" data-color="#00FFFF" title="#00FFFF AALarge"`,
	}
	for _, s := range required {
		if !strings.Contains(page, s) {
			t.Errorf("index.html missing %s", s)
		}
	}

	if got := strings.Count(page, `<section class="palette">`); got != 2 {
		t.Errorf("index.html has %d sections, want 2", got)
	}
	if got := strings.Count(page, `<span class="bg-`); got != 4 {
		t.Errorf("swatch strip has %d swatches, want 4", got)
	}

	// The strip follows the sorted view, red first.
	if strings.Index(page, `<span class="bg-FF0000"`) > strings.Index(page, `<span class="bg-00FF00"`) {
		t.Error("swatch strip is not in sorted order")
	}
}

func TestMarkupPlugin_Script(t *testing.T) {
	files, err := New().Generate(plugintesting.CreateTestSnapshot(t))
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	script := string(files["scripts.js"])
	for _, s := range []string{".colorBlock", ".primary", "dataset.color"} {
		if !strings.Contains(script, s) {
			t.Errorf("scripts.js missing %s", s)
		}
	}
}

func TestMarkupPlugin_EscapesTitle(t *testing.T) {
	plugin := New()
	plugin.title = `<b>"colours"</b>`

	files, err := plugin.Generate(plugintesting.CreateTestSnapshot(t))
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if strings.Contains(string(files["index.html"]), "<b>") {
		t.Error("title was not escaped")
	}
}

func TestMarkupPlugin_CustomScript(t *testing.T) {
	cfg := plugintesting.CreateTestConfig(t)
	path := filepath.Join(cfg.TemplateDir, "markup", scriptFile)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("console.log('custom');\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	plugin := New()
	plugin.Configure(cfg)
	files, err := plugin.Generate(plugintesting.CreateTestSnapshot(t))
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if string(files["scripts.js"]) != "console.log('custom');\n" {
		t.Errorf("scripts.js = %q, want the override", files["scripts.js"])
	}
}

func TestMarkupPlugin_Validate(t *testing.T) {
	plugin := New()
	plugin.title = "  "
	if err := plugin.Validate(); err == nil {
		t.Error("Validate() should reject a blank title")
	}
}
