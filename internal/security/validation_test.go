package security

import "testing"

func TestValidateFilePath(t *testing.T) {
	tests := []struct {
		name     string
		filePath string
		baseDir  string
		wantErr  bool
	}{
		{name: "plain file", filePath: "colors.css", baseDir: "public"},
		{name: "nested file", filePath: "css/colors.css", baseDir: "public"},
		{name: "relative base", filePath: "colors.js", baseDir: "."},
		{name: "dots in name", filePath: "colors..css", baseDir: "public"},
		{name: "empty", filePath: "", baseDir: "public", wantErr: true},
		{name: "absolute", filePath: "/etc/passwd", baseDir: "public", wantErr: true},
		{name: "traversal", filePath: "../colors.css", baseDir: "public", wantErr: true},
		{name: "nested traversal", filePath: "css/../../colors.css", baseDir: "public", wantErr: true},
		{name: "base itself", filePath: ".", baseDir: "public", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFilePath(tt.filePath, tt.baseDir)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFilePath(%q, %q) error = %v, wantErr %v", tt.filePath, tt.baseDir, err, tt.wantErr)
			}
		})
	}
}
