package cmd

import (
	"errors"
	"strings"

	"github.com/teniciavanaalten/simlog/internal/logbook"
)

// FormatError renders err for the terminal. Validation failures list one
// field per line.
func FormatError(err error) string {
	var verr *logbook.ValidationError
	if !errors.As(err, &verr) {
		return "error: " + err.Error()
	}
	var b strings.Builder
	b.WriteString("error: invalid input")
	for _, f := range verr.Fields {
		b.WriteString("\n  ")
		b.WriteString(f.Field)
		b.WriteString(": ")
		b.WriteString(f.Message)
	}
	return b.String()
}
