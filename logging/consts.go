package logging

import "time"

const (
	// DefaultFilePath is the log file the recorder appends to when the
	// builder is not given an explicit path.
	DefaultFilePath = "LM.log"

	// DefaultTimeZone is the IANA zone timestamps are rendered in unless
	// configured otherwise.
	DefaultTimeZone = "Asia/Shanghai"

	defaultQueueSize = 1024

	emptyString = ""
)

const (
	// timeLayout renders "2025年7月29日 16:30". Month is unpadded, day is
	// zero-padded, no seconds.
	timeLayout = "2006年1月02日 15:04"

	// rollCheckEvery is the write-count batch boundary at which the recorder
	// re-reads the file and truncates it to the configured line limit.
	// Between checks the file may overshoot the limit by up to
	// rollCheckEvery-1 lines.
	rollCheckEvery = 100

	// flushInterval bounds how long a buffered line can sit unflushed while
	// the queue is idle.
	flushInterval = 100 * time.Millisecond
)

// Localized level labels, as persisted and as shown on the console.
const (
	labelDebug = "调试"
	labelInfo  = "信息"
	labelWarn  = "警告"
	labelError = "错误"
)

// Default level colors for console rendering, hex RGB.
const (
	colorDebug = "#8a8a8a"
	colorInfo  = "#00afff"
	colorWarn  = "#ffaf00"
	colorError = "#ff005f"
)

const (
	errMsgNilConfig     = "logging config is nil"
	errMsgConfigInvalid = "logging configuration is invalid"
)
