package log

import (
	"io"
	"os"

	"github.com/rs/zerolog"

	mcerrors "github.com/statsim/mceval/pkg/errors"
)

// NewZerologLogger builds a zerolog logger writing JSON records to w.
// A nil writer defaults to stderr.
func NewZerologLogger(w io.Writer) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}
	return zerolog.New(w).With().Timestamp().Str("component", "mceval").Logger()
}

// UseZerologWarnings routes pkg/errors warnings through the given zerolog
// logger. Warning types that implement zerolog.LogObjectMarshaler are
// embedded as structured fields rather than flattened into the message.
func UseZerologWarnings(logger zerolog.Logger) {
	mcerrors.SetZerologWarnFunc(func(warning error) {
		ev := logger.Warn()
		if m, ok := warning.(zerolog.LogObjectMarshaler); ok {
			ev = ev.EmbedObject(m)
		}
		ev.Msg(warning.Error())
	})
}
