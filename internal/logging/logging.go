// Package logging configures the zerolog logger shared by all commands.
package logging

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// New builds a console logger on stderr at info level, or debug level when
// verbose is set. When logFile is non-empty the same events are also
// appended there as plain JSON, the way long-lived runs keep a log.txt next
// to their output. The returned closer releases the file, if any.
func New(verbose bool, logFile string) (zerolog.Logger, func(), error) {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	console := zerolog.ConsoleWriter{Out: os.Stderr}
	writer := io.Writer(console)
	closer := func() {}

	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return zerolog.Nop(), nil, err
		}
		writer = zerolog.MultiLevelWriter(console, f)
		closer = func() { f.Close() }
	}

	logger := zerolog.New(writer).Level(level).With().Timestamp().Logger()
	return logger, closer, nil
}
