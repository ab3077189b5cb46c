// Package watch follows a growing outcome log and drives a live
// terminal view of the per-suite counts.
package watch

import (
	"bufio"
	"context"
	"io"
	"os"
	"strings"
	"time"
)

// LineEvent carries one complete line from the tailed file, or a
// terminal read error.
type LineEvent struct {
	Line string
	Err  error
}

// DefaultInterval is the poll interval used when none is configured.
const DefaultInterval = 250 * time.Millisecond

// TailLines follows path and sends each appended line on the returned
// channel. By default it starts at the current end of file; fromStart
// replays the existing content first. The channel closes when ctx ends.
// A file that shrinks below the read position is treated as truncated
// and re-read from the start.
func TailLines(ctx context.Context, path string, fromStart bool, interval time.Duration) (<-chan LineEvent, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if !fromStart {
		if _, err := f.Seek(0, io.SeekEnd); err != nil {
			f.Close()
			return nil, err
		}
	}
	if interval <= 0 {
		interval = DefaultInterval
	}

	ch := make(chan LineEvent)
	go func() {
		defer close(ch)
		defer f.Close()

		reader := bufio.NewReader(f)
		var partial strings.Builder
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			for {
				chunk, err := reader.ReadString('\n')
				partial.WriteString(chunk)
				if err == io.EOF {
					break
				}
				if err != nil {
					select {
					case ch <- LineEvent{Err: err}:
					case <-ctx.Done():
					}
					return
				}
				line := strings.TrimRight(partial.String(), "\r\n")
				partial.Reset()
				select {
				case ch <- LineEvent{Line: line}:
				case <-ctx.Done():
					return
				}
			}

			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}

			// Detect truncation: the file shrank below what was read.
			if pos, perr := f.Seek(0, io.SeekCurrent); perr == nil {
				if fi, serr := f.Stat(); serr == nil && fi.Size() < pos {
					if _, err := f.Seek(0, io.SeekStart); err == nil {
						reader.Reset(f)
						partial.Reset()
					}
				}
			}
		}
	}()
	return ch, nil
}
