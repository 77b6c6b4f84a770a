// Package logger configures the global zerolog logger.
package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup sets the global level and output.  Development environments get a
// human readable console writer; everything else logs JSON to stdout.  When
// file is non-empty the JSON stream is also appended to it, and the
// returned close func must be called on shutdown.
func Setup(level string, dev bool, file string) (func() error, error) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)

	var out io.Writer = os.Stdout
	if dev {
		out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "15:04:05"}
	}

	closer := func() error { return nil }
	if file != "" {
		f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return closer, err
		}
		out = zerolog.MultiLevelWriter(out, f)
		closer = f.Close
	}

	log.Logger = zerolog.New(out).With().Timestamp().Str("service", "galaxy-cinema").Logger()
	return closer, nil
}
