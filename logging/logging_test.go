package logging

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// helper to create a ready-to-use recording logger writing into a temp dir,
// with console output discarded to keep test output readable
func newRecordingService(t testing.TB, configure func(*Builder)) (*Service, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "LM.log")
	b := NewBuilder().Record(true).FilePath(path)
	if configure != nil {
		configure(b)
	}
	svc := NewService(b.cfg)
	svc.consoleOut = io.Discard
	require.NoError(t, svc.Initialize())
	return svc, path
}

func fileLines(t testing.TB, path string) []string {
	t.Helper()
	lines, err := readLines(path)
	require.NoError(t, err)
	return lines
}

func TestShutdownFlush(t *testing.T) {
	svc, path := newRecordingService(t, nil)

	for i := 0; i < 10; i++ {
		svc.Infof("message %d", i)
	}
	require.NoError(t, svc.Close())

	lines := fileLines(t, path)
	require.Len(t, lines, 10)
	for i, line := range lines {
		assert.True(t, strings.HasSuffix(line, fmt.Sprintf("message %d", i)), "line %d: %q", i, line)
	}
	assert.Zero(t, svc.DroppedRecords())
}

func TestPersistedLineFields(t *testing.T) {
	svc, path := newRecordingService(t, nil)

	svc.Info("hello world")
	require.NoError(t, svc.Close())

	lines := fileLines(t, path)
	require.Len(t, lines, 1)

	parts := strings.Split(lines[0], "|")
	require.Len(t, parts, 4)
	assert.Empty(t, parts[0])
	assert.Contains(t, parts[1], "年")
	assert.Equal(t, labelInfo, parts[2])
	assert.Equal(t, "hello world", parts[3])
}

func TestSingleProducerOrdering(t *testing.T) {
	svc, path := newRecordingService(t, nil)

	svc.Info("A")
	svc.Info("B")
	svc.Info("C")
	require.NoError(t, svc.Close())

	lines := fileLines(t, path)
	require.Len(t, lines, 3)
	assert.True(t, strings.HasSuffix(lines[0], "|A"))
	assert.True(t, strings.HasSuffix(lines[1], "|B"))
	assert.True(t, strings.HasSuffix(lines[2], "|C"))
}

func TestDebugGating(t *testing.T) {
	// Debug disabled: the message reaches neither console nor file.
	{
		path := filepath.Join(t.TempDir(), "LM.log")
		var console bytes.Buffer
		svc := NewService(Config{
			Record:    true,
			TimeZone:  DefaultTimeZone,
			FilePath:  path,
			QueueSize: defaultQueueSize,
		})
		svc.consoleOut = &console
		require.NoError(t, svc.Initialize())

		svc.Debug("hidden")
		svc.Info("shown")
		require.NoError(t, svc.Close())

		text := console.String()
		assert.NotContains(t, text, "hidden")
		assert.Contains(t, text, "shown")

		lines := fileLines(t, path)
		require.Len(t, lines, 1)
		assert.Contains(t, lines[0], "shown")
	}

	// Debug enabled: both outputs carry the message with the debug label.
	{
		path := filepath.Join(t.TempDir(), "LM.log")
		var console bytes.Buffer
		svc := NewService(Config{
			Debug:     true,
			Record:    true,
			TimeZone:  DefaultTimeZone,
			FilePath:  path,
			QueueSize: defaultQueueSize,
		})
		svc.consoleOut = &console
		require.NoError(t, svc.Initialize())

		svc.Debug("visible")
		require.NoError(t, svc.Close())

		assert.Contains(t, console.String(), "visible")
		assert.Contains(t, console.String(), "["+labelDebug+"]")

		lines := fileLines(t, path)
		require.Len(t, lines, 1)
		assert.Contains(t, lines[0], "|"+labelDebug+"|")
	}
}

func TestConsoleColorEscape(t *testing.T) {
	var console bytes.Buffer
	svc := NewService(Config{
		Color:     true,
		TimeZone:  DefaultTimeZone,
		FilePath:  DefaultFilePath,
		QueueSize: defaultQueueSize,
	})
	svc.consoleOut = &console
	require.NoError(t, svc.Initialize())

	svc.Error("boom")
	require.NoError(t, svc.Close())

	text := console.String()
	assert.Contains(t, text, hexToANSI(colorError))
	assert.Contains(t, text, ansiReset)
	assert.Contains(t, text, "["+labelError+"]")
}

func TestConsolePlainWithoutColor(t *testing.T) {
	var console bytes.Buffer
	svc := NewService(Config{
		TimeZone:  DefaultTimeZone,
		FilePath:  DefaultFilePath,
		QueueSize: defaultQueueSize,
	})
	svc.consoleOut = &console
	require.NoError(t, svc.Initialize())

	svc.Warn("careful")
	require.NoError(t, svc.Close())

	text := console.String()
	assert.NotContains(t, text, "\x1b[")
	assert.Contains(t, text, "["+labelWarn+"]")
	assert.Contains(t, text, "careful")
}

func TestRollingBoundary(t *testing.T) {
	svc, path := newRecordingService(t, func(b *Builder) {
		b.Roll(50)
	})

	for i := 1; i <= 250; i++ {
		svc.Infof("line %03d", i)
	}
	require.NoError(t, svc.Close())

	lines := fileLines(t, path)
	// Roll checks fire at the 100th and 200th written line; the 50 lines
	// kept at the 200 mark plus the trailing 50 remain.
	require.Len(t, lines, 100)
	assert.LessOrEqual(t, len(lines), 50+rollCheckEvery-1)
	assert.True(t, strings.HasSuffix(lines[0], "line 151"), "first retained: %q", lines[0])
	assert.True(t, strings.HasSuffix(lines[len(lines)-1], "line 250"), "last retained: %q", lines[len(lines)-1])
	assert.Zero(t, svc.DroppedRecords())
}

func TestNoFileWhenRecordingDisabled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "LM.log")
	svc, err := NewBuilder().FilePath(path).Build()
	require.NoError(t, err)

	svc.Info("console only")

	start := time.Now()
	require.NoError(t, svc.Close())
	assert.Less(t, time.Since(start), time.Second)

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestDoubleInitializeFails(t *testing.T) {
	svc, _ := newRecordingService(t, nil)
	t.Cleanup(func() { _ = svc.Close() })

	err := svc.Initialize()
	require.ErrorIs(t, err, ErrAlreadyInitialized)
}

func TestCloseTwice(t *testing.T) {
	svc, _ := newRecordingService(t, nil)
	require.NoError(t, svc.Close())
	require.NoError(t, svc.Close())
}

func TestSubmitAfterCloseIsSwallowed(t *testing.T) {
	svc, path := newRecordingService(t, nil)
	require.NoError(t, svc.Close())

	// The call must not panic or error; the line is counted as dropped.
	svc.Info("too late")
	assert.Equal(t, uint64(1), svc.DroppedRecords())

	lines := fileLines(t, path)
	assert.Empty(t, lines)
}

func TestInvalidTimeZoneStillLogs(t *testing.T) {
	svc, path := newRecordingService(t, func(b *Builder) {
		b.TimeZone("Not/AZone")
	})

	svc.Info("fallback")
	require.NoError(t, svc.Close())

	lines := fileLines(t, path)
	require.Len(t, lines, 1)
	parts := strings.Split(lines[0], "|")
	require.Len(t, parts, 4)
	assert.NotEmpty(t, parts[1])
}

func TestMessageDelimiterEscaping(t *testing.T) {
	svc, path := newRecordingService(t, nil)

	svc.Info("a|b\nc")
	svc.Info("next")
	require.NoError(t, svc.Close())

	lines := fileLines(t, path)
	require.Len(t, lines, 2, "escaping must keep one record per line")
	assert.True(t, strings.HasSuffix(lines[0], `|a\|b\nc`), "got %q", lines[0])
	assert.True(t, strings.HasSuffix(lines[1], "|next"))
}

func TestTimedFlushWithoutClose(t *testing.T) {
	svc, path := newRecordingService(t, nil)
	t.Cleanup(func() { _ = svc.Close() })

	svc.Info("patience")

	require.Eventually(t, func() bool {
		lines, err := readLines(path)
		return err == nil && len(lines) == 1
	}, 2*time.Second, 10*time.Millisecond)
}

func TestConcurrentProducers(t *testing.T) {
	svc, path := newRecordingService(t, nil)

	const producers = 8
	const perProducer = 50

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				svc.Infof("p%d-%03d", p, i)
			}
		}(p)
	}
	wg.Wait()
	require.NoError(t, svc.Close())

	lines := fileLines(t, path)
	require.Len(t, lines, producers*perProducer)
	assert.Zero(t, svc.DroppedRecords())

	// Interleaving across producers is unspecified, but each producer's own
	// lines must appear in submission order.
	last := make(map[string]int, producers)
	for p := 0; p < producers; p++ {
		last[fmt.Sprintf("p%d", p)] = -1
	}
	for _, line := range lines {
		msg := line[strings.LastIndex(line, "|")+1:]
		var p, i int
		_, err := fmt.Sscanf(msg, "p%d-%d", &p, &i)
		require.NoError(t, err, "unexpected record %q", line)
		key := fmt.Sprintf("p%d", p)
		assert.Greater(t, i, last[key], "producer %d out of order at %q", p, line)
		last[key] = i
	}
}

func TestDumpAtDebugLevel(t *testing.T) {
	var console bytes.Buffer
	svc := NewService(Config{
		Debug:     true,
		TimeZone:  DefaultTimeZone,
		FilePath:  DefaultFilePath,
		QueueSize: defaultQueueSize,
	})
	svc.consoleOut = &console
	require.NoError(t, svc.Initialize())

	svc.Dump(struct{ Port int }{Port: 25})
	svc.Dump(nil)
	require.NoError(t, svc.Close())

	text := console.String()
	assert.Contains(t, text, "Port:25")
	assert.Contains(t, text, "Dump: <nil>")
}
