// Package output renders calculation results as human-readable reports or
// machine-readable CSV.
package output

import (
	"errors"
	"fmt"
	"io"

	"github.com/iwvelando/buhcalc/pkg/constants"
)

// ErrUnsupportedResult is returned for values that have no report layout.
var ErrUnsupportedResult = errors.New("unsupported result type")

// Options tunes report rendering.
type Options struct {
	// Schedule adds the month-by-month table to a contributions report.
	Schedule bool
}

// Write renders result in the given output format.
func Write(w io.Writer, outputFormat string, result any, opts Options) error {
	switch outputFormat {
	case constants.OutputFormatPretty:
		return PrettyFormat(w, result, opts)
	case constants.OutputFormatCSV:
		return CsvFormat(w, result)
	}
	return fmt.Errorf("expected output format of %s or %s, got %s",
		constants.OutputFormatPretty, constants.OutputFormatCSV, outputFormat)
}

// lineWriter remembers the first write error so report code can print
// line after line and check once at the end.
type lineWriter struct {
	w   io.Writer
	err error
}

func (lw *lineWriter) printf(format string, args ...any) {
	if lw.err != nil {
		return
	}
	_, lw.err = fmt.Fprintf(lw.w, format, args...)
}

func (lw *lineWriter) println(s string) {
	lw.printf("%s\n", s)
}
