package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoadConfiguration(t *testing.T) {
	tests := []struct {
		name         string
		content      string
		env          map[string]string
		wantError    string
		wantLevel    string
		wantFormat   string
		wantOutput   string
		wantRateFile string
	}{
		{
			name:         "Full file",
			content:      "logging:\n  level: debug\n  format: console\noutput:\n  format: csv\nrates:\n  file: rates.yaml\n",
			wantLevel:    "debug",
			wantFormat:   "console",
			wantOutput:   "csv",
			wantRateFile: "rates.yaml",
		},
		{
			name:       "Empty file uses defaults",
			content:    "",
			wantLevel:  "info",
			wantFormat: "json",
			wantOutput: "pretty",
		},
		{
			name:       "Environment overrides file",
			content:    "output:\n  format: pretty\n",
			env:        map[string]string{"BUHCALC_OUTPUT_FORMAT": "csv", "BUHCALC_LOGGING_LEVEL": "warn"},
			wantLevel:  "warn",
			wantFormat: "json",
			wantOutput: "csv",
		},
		{
			name:      "Invalid output format",
			content:   "output:\n  format: xlsx\n",
			wantError: "expected output format",
		},
		{
			name:      "Invalid log level",
			content:   "logging:\n  level: loud\n",
			wantError: "invalid log level",
		},
		{
			name:      "Malformed YAML",
			content:   "logging: [\n",
			wantError: "error reading config file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			conf, err := LoadConfiguration(writeConfig(t, tt.content))
			if tt.wantError != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantError) {
					t.Fatalf("LoadConfiguration() error = %v, expected %q", err, tt.wantError)
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadConfiguration() error = %v", err)
			}
			if conf.Logging.Level != tt.wantLevel {
				t.Errorf("Logging.Level = %q, expected %q", conf.Logging.Level, tt.wantLevel)
			}
			if conf.Logging.Format != tt.wantFormat {
				t.Errorf("Logging.Format = %q, expected %q", conf.Logging.Format, tt.wantFormat)
			}
			if conf.Output.Format != tt.wantOutput {
				t.Errorf("Output.Format = %q, expected %q", conf.Output.Format, tt.wantOutput)
			}
			if conf.Rates.File != tt.wantRateFile {
				t.Errorf("Rates.File = %q, expected %q", conf.Rates.File, tt.wantRateFile)
			}
		})
	}
}

func TestLoadConfigurationMissingFile(t *testing.T) {
	if _, err := LoadConfiguration(filepath.Join(t.TempDir(), "nonexistent.yaml")); err == nil {
		t.Error("LoadConfiguration() expected error for missing file")
	}
}

func TestLoadConfigurationWithoutFile(t *testing.T) {
	conf, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration(\"\") error = %v", err)
	}
	if conf.Output.Format != "pretty" || conf.Logging.Level != "info" {
		t.Errorf("unexpected defaults: %+v", conf)
	}
}

func TestLoadRates(t *testing.T) {
	conf := &Configuration{}
	tables, err := conf.LoadRates()
	if err != nil {
		t.Fatalf("LoadRates() error = %v", err)
	}
	if tables.Year != 2026 {
		t.Errorf("default tables year = %d, expected 2026", tables.Year)
	}

	conf.Rates.File = filepath.Join(t.TempDir(), "missing.yaml")
	if _, err := conf.LoadRates(); err == nil {
		t.Error("LoadRates() expected error for missing rate file")
	}
}
