package logging

import (
	"encoding/json"
	"os"

	"github.com/mattn/go-colorable"
	"github.com/rs/zerolog"
)

// newConsoleWriter builds the console half of the pipeline. The writer
// receives the event JSON from zerolog and renders
// "<timestamp> [<level-label>] <message>", coloring the label from the
// level's hex color when enabled.
func (s *Service) newConsoleWriter() zerolog.ConsoleWriter {
	out := s.consoleOut
	if out == nil {
		if s.cfg.Color {
			out = colorable.NewColorableStdout()
		} else {
			out = os.Stdout
		}
	}

	color := s.cfg.Color
	return zerolog.ConsoleWriter{
		Out:     out,
		NoColor: !color,
		PartsOrder: []string{
			zerolog.TimestampFieldName,
			zerolog.LevelFieldName,
			zerolog.MessageFieldName,
		},
		FormatTimestamp: func(i interface{}) string {
			// Already formatted by the time hook.
			return asString(i)
		},
		FormatLevel: func(i interface{}) string {
			level := asString(i)
			label := "[" + levelLabel(level) + "]"
			if !color {
				return label
			}
			code := hexToANSI(levelColor(level))
			if code == emptyString {
				return label
			}
			return code + label + ansiReset
		},
		FormatMessage: func(i interface{}) string {
			return asString(i)
		},
	}
}

// recordEvent is the subset of the zerolog event the recorder persists.
type recordEvent struct {
	Level   string `json:"level"`
	Time    string `json:"time"`
	Message string `json:"message"`
}

// recordWriter is the file half of the pipeline: it turns each event into a
// pipe-delimited line and hands it to the recorder queue. It never blocks
// and never returns an error; persistence problems must not reach producers.
type recordWriter struct {
	rec *recorder
}

func (w recordWriter) Write(p []byte) (int, error) {
	var ev recordEvent
	if err := json.Unmarshal(p, &ev); err != nil {
		w.rec.dropped.Add(1)
		return len(p), nil
	}
	w.rec.enqueue(persistedLine(ev.Time, levelLabel(ev.Level), ev.Message))
	return len(p), nil
}
