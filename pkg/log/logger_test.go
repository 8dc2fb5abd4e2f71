package log

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/suite"
)

// LoggerTestSuite tests the log package
type LoggerTestSuite struct {
	suite.Suite
	originalLogger zerolog.Logger
	originalLevel  zerolog.Level
	testOutput     *bytes.Buffer
}

// SetupTest swaps the global logger for one writing to a buffer
func (s *LoggerTestSuite) SetupTest() {
	s.originalLogger = Logger
	s.originalLevel = Level()
	s.testOutput = &bytes.Buffer{}
	Logger = New(zerolog.SyncWriter(s.testOutput), zerolog.DebugLevel)
	SetDebugMode()
}

// TearDownTest restores the global logger
func (s *LoggerTestSuite) TearDownTest() {
	Logger = s.originalLogger
	zerolog.SetGlobalLevel(s.originalLevel)
}

// TestGoroutineID tests the goroutine ID extraction
func (s *LoggerTestSuite) TestGoroutineID() {
	id := goroutineID()
	s.NotEmpty(id)
	s.LessOrEqual(len(id), 20)

	if id != unknownGoroutine {
		for _, char := range id {
			s.True(char >= '0' && char <= '9', "Goroutine ID should be numeric or 'unknown'")
		}
	}

	s.Equal(id, goroutineID())
}

// TestGoroutineIDOtherGoroutine tests extraction from a second goroutine
func (s *LoggerTestSuite) TestGoroutineIDOtherGoroutine() {
	done := make(chan string, 1)
	go func() {
		done <- goroutineID()
	}()

	other := <-done
	s.NotEmpty(other)
	if main := goroutineID(); main != unknownGoroutine && other != unknownGoroutine {
		s.NotEqual(main, other)
	}
}

// TestLevels tests that every helper writes through the global logger
func (s *LoggerTestSuite) TestLevels() {
	Debug().Msg("debug test")
	Info().Msg("info test")
	Warn().Msg("warn test")
	Error().Msg("error test")

	output := s.testOutput.String()
	s.Contains(output, "debug test")
	s.Contains(output, "info test")
	s.Contains(output, "warn test")
	s.Contains(output, "error test")
	s.Contains(output, "goid")
}

// TestLogWithFields tests logging with additional fields
func (s *LoggerTestSuite) TestLogWithFields() {
	Info().Str("volume", "/").Uint64("total", 1000).Msg("storage snapshot")

	output := s.testOutput.String()
	s.Contains(output, "storage snapshot")
	s.Contains(output, "volume")
	s.Contains(output, "1000")
}

// TestSetLevel tests switching levels by name
func (s *LoggerTestSuite) TestSetLevel() {
	s.Require().NoError(SetLevel("warn"))
	s.Equal(zerolog.WarnLevel, Level())

	Info().Msg("hidden message")
	Warn().Msg("visible message")

	output := s.testOutput.String()
	s.NotContains(output, "hidden message")
	s.Contains(output, "visible message")

	s.Require().NoError(SetLevel(""))
	s.Equal(zerolog.InfoLevel, Level())

	s.Error(SetLevel("chatty"))
}

// TestSetDebugMode tests switching to debug level
func (s *LoggerTestSuite) TestSetDebugMode() {
	s.Require().NoError(SetLevel("error"))
	SetDebugMode()
	s.Equal(zerolog.DebugLevel, Level())
}

// TestConcurrentLogging tests that logging is safe from many goroutines
func (s *LoggerTestSuite) TestConcurrentLogging() {
	const workers = 10
	done := make(chan struct{}, workers)

	for i := 0; i < workers; i++ {
		go func(id int) {
			defer func() { done <- struct{}{} }()
			Info().Int("worker", id).Msg("concurrent message")
		}(i)
	}
	for i := 0; i < workers; i++ {
		<-done
	}

	lines := strings.Split(strings.TrimSpace(s.testOutput.String()), "\n")
	s.Len(lines, workers)
}

func TestLoggerSuite(t *testing.T) {
	suite.Run(t, new(LoggerTestSuite))
}
