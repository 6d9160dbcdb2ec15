// Package validation provides common validation utilities.
package validation

import (
	"fmt"
	"slices"
	"strings"

	"github.com/iwvelando/buhcalc/pkg/constants"
	"go.uber.org/zap/zapcore"
)

// ValidateOutputFormat checks if the output format is one of the supported formats.
func ValidateOutputFormat(format string) error {
	if format != constants.OutputFormatPretty && format != constants.OutputFormatCSV {
		return fmt.Errorf("expected output format of %s or %s, got %s",
			constants.OutputFormatPretty, constants.OutputFormatCSV, format)
	}
	return nil
}

// LogFormats lists the accepted logging.format values.
var LogFormats = []string{"json", "console"}

// ValidateLogFormat checks a logging.format value. Empty selects the default.
func ValidateLogFormat(format string) error {
	if format == "" || slices.Contains(LogFormats, format) {
		return nil
	}
	return fmt.Errorf("expected log format of %s, got %s", strings.Join(LogFormats, " or "), format)
}

// ValidateLogLevel checks a logging.level value against zap's level names.
// Empty selects the default.
func ValidateLogLevel(level string) error {
	if level == "" {
		return nil
	}
	if _, err := zapcore.ParseLevel(level); err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return nil
}
