package log

import (
	"io"
	"os"
	"runtime"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	// "goroutine 123 [running]:" fits comfortably.
	stackBufSize = 32
	// len("goroutine ")
	goroutinePrefixLen = 10
	unknownGoroutine   = "unknown"
	consoleTimeFormat  = "15:04:05"
)

var (
	Logger   zerolog.Logger
	stackBuf = sync.Pool{New: func() interface{} { return make([]byte, stackBufSize) }}
)

// The logger itself passes everything; the level is the zerolog global
// level, which can change while other goroutines log.
func init() {
	Logger = New(os.Stderr, zerolog.TraceLevel)
	log.Logger = Logger
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}

// New builds a console logger that tags every event with the goroutine id.
func New(out io.Writer, level zerolog.Level) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: consoleTimeFormat,
	}

	return zerolog.New(output).
		Level(level).
		With().
		Timestamp().
		Logger().
		Hook(zerolog.HookFunc(func(e *zerolog.Event, _ zerolog.Level, _ string) {
			e.Str("goid", goroutineID())
		}))
}

// goroutineID parses the current goroutine id from the first stack line.
func goroutineID() string {
	buf, ok := stackBuf.Get().([]byte)
	if !ok {
		return unknownGoroutine
	}
	defer stackBuf.Put(buf) //nolint:staticcheck // buf is a slice, this is the correct usage

	n := runtime.Stack(buf, false)
	if n <= goroutinePrefixLen {
		return unknownGoroutine
	}

	end := goroutinePrefixLen
	for end < n && buf[end] >= '0' && buf[end] <= '9' {
		end++
	}
	if end == goroutinePrefixLen {
		return unknownGoroutine
	}

	return string(buf[goroutinePrefixLen:end])
}

// Info logs an info message with goroutine ID.
func Info() *zerolog.Event {
	return Logger.Info()
}

// Error logs an error message with goroutine ID.
func Error() *zerolog.Event {
	return Logger.Error()
}

// Warn logs a warning message with goroutine ID.
func Warn() *zerolog.Event {
	return Logger.Warn()
}

// Debug logs a debug message with goroutine ID.
func Debug() *zerolog.Event {
	return Logger.Debug()
}

// Fatal logs a fatal message with goroutine ID and exits.
func Fatal() *zerolog.Event {
	return Logger.Fatal()
}

// SetDebugMode switches logging to debug level.
func SetDebugMode() {
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
}

// SetLevel switches logging to the named level ("debug", "info", "warn", ...).
// An empty name means info.
func SetLevel(name string) error {
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(name)))
	if err != nil {
		return err
	}
	if level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	return nil
}

// Level returns the active log level.
func Level() zerolog.Level {
	return zerolog.GlobalLevel()
}
