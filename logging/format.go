package logging

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// timeHook stamps every event with the zone-aware display timestamp. Both the
// console writer and the record writer render this one string, so the console
// and the file always agree on the time a line carries.
type timeHook struct {
	loc *time.Location
}

func (h timeHook) Run(e *zerolog.Event, _ zerolog.Level, _ string) {
	e.Str(zerolog.TimestampFieldName, time.Now().In(h.loc).Format(timeLayout))
}

// resolveLocation resolves an IANA zone name, falling back silently to the
// process-local zone. A bad zone name must never fail a log call.
func resolveLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.Local
	}
	return loc
}

// levelLabel maps a zerolog level string to its localized display token.
func levelLabel(level string) string {
	switch level {
	case zerolog.LevelDebugValue:
		return labelDebug
	case zerolog.LevelInfoValue:
		return labelInfo
	case zerolog.LevelWarnValue:
		return labelWarn
	case zerolog.LevelErrorValue:
		return labelError
	default:
		return level
	}
}

// levelColor maps a zerolog level string to its console hex color.
func levelColor(level string) string {
	switch level {
	case zerolog.LevelDebugValue:
		return colorDebug
	case zerolog.LevelWarnValue:
		return colorWarn
	case zerolog.LevelErrorValue:
		return colorError
	default:
		return colorInfo
	}
}

// messageEscaper keeps one persisted record per line: the field delimiter and
// line breaks inside a message would otherwise corrupt record boundaries.
var messageEscaper = strings.NewReplacer(
	`\`, `\\`,
	"|", `\|`,
	"\n", `\n`,
	"\r", `\r`,
)

// persistedLine renders the file record: |<timestamp>|<level-label>|<message>.
func persistedLine(timestamp, label, message string) string {
	return "|" + timestamp + "|" + label + "|" + messageEscaper.Replace(message)
}

func asString(i interface{}) string {
	if i == nil {
		return emptyString
	}
	if s, ok := i.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", i)
}
