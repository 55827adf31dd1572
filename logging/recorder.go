package logging

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/atomic"
)

// Records are one line each; anything longer than this during a roll re-read
// is a corrupt file and surfaces as a scanner error.
const maxRecordBytes = 1 << 20

// recorder owns the log file. All file I/O happens on its single goroutine;
// producers only ever touch the queue. At most one recorder goroutine and one
// open handle to the file exist while the service runs.
type recorder struct {
	path  string
	roll  uint64
	queue chan string
	done  chan struct{}

	closed  atomic.Bool
	dropped atomic.Uint64
}

// newRecorder opens the log file in create-or-append mode and starts the
// worker goroutine bound to the consumer end of the queue.
func newRecorder(path string, roll uint64, queueSize int) (*recorder, error) {
	f, err := openAppend(path)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	r := &recorder{
		path:  path,
		roll:  roll,
		queue: make(chan string, queueSize),
		done:  make(chan struct{}),
	}
	go r.loop(f)
	return r, nil
}

func openAppend(path string) (*os.File, error) {
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
}

// enqueue hands a line to the worker without ever blocking the caller. The
// line is dropped when the queue is full or the recorder has been closed.
func (r *recorder) enqueue(line string) {
	// A send racing close ends up on a closed channel; count it as a drop.
	defer func() {
		if recover() != nil {
			r.dropped.Add(1)
		}
	}()

	if r.closed.Load() {
		r.dropped.Add(1)
		return
	}

	select {
	case r.queue <- line:
	default:
		r.dropped.Add(1)
	}
}

// close signals shutdown and waits for the worker to drain, flush and exit.
// Later calls just wait.
func (r *recorder) close() {
	if r.closed.CompareAndSwap(false, true) {
		close(r.queue)
	}
	<-r.done
}

// loop is the worker: it drains the queue into a buffered writer, flushing at
// least every flushInterval, and every rollCheckEvery written lines truncates
// the file to the last roll lines. Queue close is the only normal exit. Any
// file I/O error stops the recorder for good; producers are not told and
// their lines count as dropped once the queue fills.
func (r *recorder) loop(f *os.File) {
	defer close(r.done)

	w := bufio.NewWriter(f)
	ticker := time.NewTicker(flushInterval)
	defer ticker.Stop()

	var written uint64
	for {
		select {
		case line, ok := <-r.queue:
			if !ok {
				w.Flush()
				f.Sync()
				f.Close()
				return
			}

			if _, err := w.WriteString(line + "\n"); err != nil {
				r.fail("write", err, f)
				return
			}
			written++

			if r.roll > 0 && written%rollCheckEvery == 0 {
				nf, err := r.trim(w, f)
				if err != nil {
					// f may already be closed by trim; Close again is harmless.
					r.fail("roll", err, f)
					return
				}
				f = nf
				w.Reset(f)
			}

			if err := w.Flush(); err != nil {
				r.fail("flush", err, f)
				return
			}

		case <-ticker.C:
			if w.Buffered() > 0 {
				if err := w.Flush(); err != nil {
					r.fail("flush", err, f)
					return
				}
			}
		}
	}
}

// trim flushes and closes the current handle, re-reads the whole file, keeps
// the newest roll lines if the limit is exceeded, and reopens for append.
// The rewrite goes through a temp file and rename so a crash mid-roll never
// leaves a half-written log.
func (r *recorder) trim(w *bufio.Writer, f *os.File) (*os.File, error) {
	if err := w.Flush(); err != nil {
		return nil, err
	}
	if err := f.Close(); err != nil {
		return nil, err
	}

	lines, err := readLines(r.path)
	if err != nil {
		return nil, err
	}

	if uint64(len(lines)) > r.roll {
		keep := lines[uint64(len(lines))-r.roll:]
		if err := rewrite(r.path, keep); err != nil {
			return nil, err
		}
	}

	return openAppend(r.path)
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), maxRecordBytes)

	var lines []string
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	return lines, sc.Err()
}

func rewrite(path string, lines []string) error {
	var b strings.Builder
	for _, line := range lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}

	tmp := path + ".roll"
	if err := os.WriteFile(tmp, []byte(b.String()), 0644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// fail reports a fatal recorder error to the console as a last resort and
// releases the file handle. The loop exits right after.
func (r *recorder) fail(op string, err error, f *os.File) {
	fmt.Fprintf(os.Stderr, "logging: recorder stopped: %s: %v\n", op, err)
	if f != nil {
		f.Close()
	}
}
