package logging

import (
	"github.com/spf13/viper"
)

// Config holds the logger configuration. It is immutable once a Service has
// been built from it; the Service keeps its own copy.
type Config struct {
	// Debug enables Debug-level messages. When false they are neither
	// rendered nor persisted.
	Debug bool

	// Record enables file persistence and the background recorder.
	Record bool

	// Roll is the maximum number of lines retained in the log file.
	// 0 disables rolling (the file grows without bound).
	Roll uint64

	// Color enables ANSI truecolor level labels on the console. Persisted
	// lines are always plain text.
	Color bool

	// TimeZone is the IANA zone name timestamps are rendered in. Invalid
	// names fall back silently to the process-local zone.
	TimeZone string `validate:"required"`

	// FilePath is the log file location, relative to the working directory
	// unless absolute.
	FilePath string `validate:"required"`

	// QueueSize is the capacity of the producer/recorder channel. Producers
	// never block: a full queue drops the line and bumps the drop counter.
	QueueSize int `validate:"gt=0"`
}

// Builder assembles a Config and builds the Service from it.
// The zero builder is not usable; obtain one from NewBuilder or FromViper.
type Builder struct {
	cfg Config
}

// NewBuilder returns a Builder preloaded with the defaults: no debug, no
// recording, no rolling, no color, Asia/Shanghai timestamps, LM.log.
func NewBuilder() *Builder {
	return &Builder{
		cfg: Config{
			TimeZone:  DefaultTimeZone,
			FilePath:  DefaultFilePath,
			QueueSize: defaultQueueSize,
		},
	}
}

// FromViper returns a Builder whose defaults are overridden by any of the
// log.* keys present in v: log.debug, log.record, log.roll, log.color,
// log.timezone, log.file, log.queuesize.
func FromViper(v *viper.Viper) *Builder {
	b := NewBuilder()
	if v == nil {
		return b
	}
	if v.IsSet("log.debug") {
		b.cfg.Debug = v.GetBool("log.debug")
	}
	if v.IsSet("log.record") {
		b.cfg.Record = v.GetBool("log.record")
	}
	if v.IsSet("log.roll") {
		b.cfg.Roll = v.GetUint64("log.roll")
	}
	if v.IsSet("log.color") {
		b.cfg.Color = v.GetBool("log.color")
	}
	if value := v.GetString("log.timezone"); value != emptyString {
		b.cfg.TimeZone = value
	}
	if value := v.GetString("log.file"); value != emptyString {
		b.cfg.FilePath = value
	}
	if value := v.GetInt("log.queuesize"); value > 0 {
		b.cfg.QueueSize = value
	}
	return b
}

// Debug toggles Debug-level output.
func (b *Builder) Debug(enabled bool) *Builder {
	b.cfg.Debug = enabled
	return b
}

// Record toggles file persistence.
func (b *Builder) Record(enabled bool) *Builder {
	b.cfg.Record = enabled
	return b
}

// Roll sets the maximum retained line count; 0 disables rolling.
func (b *Builder) Roll(limit uint64) *Builder {
	b.cfg.Roll = limit
	return b
}

// Color toggles console coloring.
func (b *Builder) Color(enabled bool) *Builder {
	b.cfg.Color = enabled
	return b
}

// TimeZone sets the IANA zone name for timestamps.
func (b *Builder) TimeZone(name string) *Builder {
	b.cfg.TimeZone = name
	return b
}

// FilePath sets the log file location.
func (b *Builder) FilePath(path string) *Builder {
	b.cfg.FilePath = path
	return b
}

// QueueSize sets the recorder queue capacity.
func (b *Builder) QueueSize(n int) *Builder {
	b.cfg.QueueSize = n
	return b
}

// Build validates the configuration and returns an initialized Service.
// When recording is enabled this opens the log file and starts the recorder
// goroutine; otherwise no file is touched and no goroutine is spawned.
func (b *Builder) Build() (*Service, error) {
	svc := &Service{cfg: b.cfg}
	if err := svc.Initialize(); err != nil {
		return nil, err
	}
	return svc, nil
}
