package logging

import (
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"go.uber.org/atomic"
)

// ErrAlreadyInitialized is returned when Initialize is called twice on the
// same Service. Initializing a live logger is a startup programming error.
var ErrAlreadyInitialized = errors.New("logging: service already initialized")

// Service is the logging facade. Construct one with NewService or a Builder
// and pass it to whatever needs it; there is no package-level singleton.
type Service struct {
	cfg Config

	logger      atomic.Pointer[zerolog.Logger]
	rec         *recorder
	initialized atomic.Bool

	// consoleOut overrides the console destination when set before
	// Initialize. Nil means stdout. Tests use this to capture output.
	consoleOut io.Writer
}

// NewService returns an uninitialized Service for the given configuration.
// Call Initialize before logging, or use Builder.Build which does both.
func NewService(cfg Config) *Service {
	return &Service{cfg: cfg}
}

// Initialize validates the configuration and builds the rendering pipeline.
// When recording is enabled it opens the log file and starts the recorder;
// otherwise no file is touched and no goroutine is spawned. A second call
// returns ErrAlreadyInitialized.
func (s *Service) Initialize() error {
	if s.initialized.Load() {
		return ErrAlreadyInitialized
	}
	if err := validateConfig(&s.cfg); err != nil {
		return err
	}

	writers := []io.Writer{s.newConsoleWriter()}
	if s.cfg.Record {
		rec, err := newRecorder(s.cfg.FilePath, s.cfg.Roll, s.cfg.QueueSize)
		if err != nil {
			return err
		}
		s.rec = rec
		writers = append(writers, recordWriter{rec: rec})
	}

	level := zerolog.InfoLevel
	if s.cfg.Debug {
		level = zerolog.DebugLevel
	}

	logger := zerolog.New(io.MultiWriter(writers...)).
		Hook(timeHook{loc: resolveLocation(s.cfg.TimeZone)}).
		Level(level)
	s.logger.Store(&logger)

	s.initialized.Store(true)
	return nil
}

// Close stops the recorder and blocks until buffered lines have reached the
// disk. It is a no-op when persistence was never enabled and is safe to call
// more than once.
func (s *Service) Close() error {
	if !s.initialized.Load() {
		return nil
	}
	if s.rec != nil {
		s.rec.close()
	}
	return nil
}

// DroppedRecords reports how many lines the recorder could not persist
// (queue overflow or submission after shutdown). Always 0 while recording
// keeps up; console output is unaffected either way.
func (s *Service) DroppedRecords() uint64 {
	if s.rec == nil {
		return 0
	}
	return s.rec.dropped.Load()
}

// Debug logs a message at Debug level. Suppressed unless debug is enabled.
func (s *Service) Debug(msg string) {
	s.emit(zerolog.DebugLevel, msg)
}

// Debugf logs a formatted message at Debug level.
func (s *Service) Debugf(format string, args ...interface{}) {
	s.emit(zerolog.DebugLevel, fmt.Sprintf(format, args...))
}

// Info logs a message at Info level.
func (s *Service) Info(msg string) {
	s.emit(zerolog.InfoLevel, msg)
}

// Infof logs a formatted message at Info level.
func (s *Service) Infof(format string, args ...interface{}) {
	s.emit(zerolog.InfoLevel, fmt.Sprintf(format, args...))
}

// Warn logs a message at Warning level.
func (s *Service) Warn(msg string) {
	s.emit(zerolog.WarnLevel, msg)
}

// Warnf logs a formatted message at Warning level.
func (s *Service) Warnf(format string, args ...interface{}) {
	s.emit(zerolog.WarnLevel, fmt.Sprintf(format, args...))
}

// Error logs a message at Error level.
func (s *Service) Error(msg string) {
	s.emit(zerolog.ErrorLevel, msg)
}

// Errorf logs a formatted message at Error level.
func (s *Service) Errorf(format string, args ...interface{}) {
	s.emit(zerolog.ErrorLevel, fmt.Sprintf(format, args...))
}

// Dump logs a reflective view of v at Debug level. Handy while developing;
// gated like any other debug message.
func (s *Service) Dump(v interface{}) {
	logger := s.activeLogger()
	if logger == nil {
		return
	}
	if v == nil {
		logger.Debug().Msg("Dump: <nil>")
		return
	}
	logger.Debug().Msg(fmt.Sprintf("Dump: %#v", v))
}

func (s *Service) emit(level zerolog.Level, msg string) {
	logger := s.activeLogger()
	if logger == nil {
		return
	}
	logger.WithLevel(level).Msg(msg)
}

func (s *Service) activeLogger() *zerolog.Logger {
	if !s.initialized.Load() {
		return nil
	}
	return s.logger.Load()
}
