package logging

// Logger is the leveled logging surface of the Service. Components that only
// emit messages should depend on this instead of *Service.
type Logger interface {
	Debug(msg string)
	Debugf(format string, args ...interface{})
	Info(msg string)
	Infof(format string, args ...interface{})
	Warn(msg string)
	Warnf(format string, args ...interface{})
	Error(msg string)
	Errorf(format string, args ...interface{})

	// Close drains and stops the recorder. Must run before process exit
	// whenever persistence is enabled.
	Close() error
}

var _ Logger = (*Service)(nil)
