package validation

import (
	"strings"
	"testing"
)

func TestValidateOutputFormat(t *testing.T) {
	tests := []struct {
		name      string
		format    string
		expectErr bool
	}{
		{
			name:      "Valid pretty format",
			format:    "pretty",
			expectErr: false,
		},
		{
			name:      "Valid csv format",
			format:    "csv",
			expectErr: false,
		},
		{
			name:      "JSON is served by the API, not the CLI",
			format:    "json",
			expectErr: true,
		},
		{
			name:      "Empty format",
			format:    "",
			expectErr: true,
		},
		{
			name:      "Case sensitive",
			format:    "CSV",
			expectErr: true,
		},
		{
			name:      "Leading/trailing spaces",
			format:    " pretty ",
			expectErr: true,
		},
		{
			name:      "Spreadsheet format not supported",
			format:    "xlsx",
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOutputFormat(tt.format)
			if tt.expectErr && err == nil {
				t.Errorf("ValidateOutputFormat(%q) expected error but got none", tt.format)
			}
			if !tt.expectErr && err != nil {
				t.Errorf("ValidateOutputFormat(%q) unexpected error = %v", tt.format, err)
			}
		})
	}
}

func TestValidateOutputFormatErrorMessage(t *testing.T) {
	err := ValidateOutputFormat("xlsx")
	if err == nil {
		t.Fatal("expected error")
	}
	for _, s := range []string{"pretty", "csv", "xlsx"} {
		if !strings.Contains(err.Error(), s) {
			t.Errorf("error %q does not mention %q", err, s)
		}
	}
}

func TestValidateLogging(t *testing.T) {
	tests := []struct {
		name      string
		level     string
		format    string
		expectErr bool
	}{
		{"Defaults", "", "", false},
		{"Debug json", "debug", "json", false},
		{"Warn console", "warn", "console", false},
		{"Upper case level", "ERROR", "json", false},
		{"Unknown level", "verbose", "json", true},
		{"Unknown format", "info", "logfmt", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateLogLevel(tt.level)
			if err == nil {
				err = ValidateLogFormat(tt.format)
			}
			if tt.expectErr && err == nil {
				t.Errorf("expected error for level %q format %q", tt.level, tt.format)
			}
			if !tt.expectErr && err != nil {
				t.Errorf("unexpected error = %v", err)
			}
		})
	}
}
