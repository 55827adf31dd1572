package logging

import (
	"strconv"
	"strings"
	"sync"
)

const ansiReset = "\x1b[0m"

// ansiCache maps "#rrggbb" to its truecolor escape sequence so each hex value
// is parsed once per process. Guarded by ansiMu; this and the recorder queue
// are the only cross-goroutine mutable state in the package.
var (
	ansiMu    sync.Mutex
	ansiCache = make(map[string]string)
)

// hexToANSI converts a hex RGB color ("#ff005f" or "ff005f") to the
// corresponding ANSI truecolor foreground escape sequence. Results are
// cached; repeated lookups return the identical string. Malformed input
// yields an empty sequence so rendering degrades to plain text instead of
// failing the log call.
func hexToANSI(hex string) string {
	hex = strings.TrimPrefix(hex, "#")
	key := "#" + hex

	ansiMu.Lock()
	defer ansiMu.Unlock()
	if cached, ok := ansiCache[key]; ok {
		return cached
	}

	code := parseHexColor(hex)
	ansiCache[key] = code
	return code
}

func parseHexColor(hex string) string {
	if len(hex) != 6 {
		return emptyString
	}
	r, errR := strconv.ParseUint(hex[0:2], 16, 8)
	g, errG := strconv.ParseUint(hex[2:4], 16, 8)
	b, errB := strconv.ParseUint(hex[4:6], 16, 8)
	if errR != nil || errG != nil || errB != nil {
		return emptyString
	}
	return "\x1b[38;2;" + strconv.FormatUint(r, 10) + ";" +
		strconv.FormatUint(g, 10) + ";" + strconv.FormatUint(b, 10) + "m"
}
