// Package tally turns flat outcome logs into deduplicated per-suite
// counts. One log line records one observed outcome for one method; the
// aggregator strips argument groups, collapses repeats, and counts
// distinct (signature, outcome) pairs per benchmark suite.
package tally

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/dkoosis/tally/pkg/jvm"
)

// Record is one parsed outcome log line.
type Record struct {
	Sig     string // bare method signature, argument group stripped
	Outcome string
}

// Key returns the deduplication key: bare signature and outcome, joined
// in the same form the log carries them.
func (r Record) Key() string {
	return r.Sig + " -> " + r.Outcome
}

// splitKey is Key's inverse. Signatures cannot contain the delimiter, so
// the first occurrence is always the join point.
func splitKey(key string) (sig, outcome string, ok bool) {
	sig, outcome, ok = strings.Cut(key, " -> ")
	return sig, outcome, ok
}

// ParseLine parses one outcome log line, "signatureWithArgs -> outcome".
// The split is on the first "->"; whitespace on both sides is
// insignificant and a trailing parenthesized argument group on the left
// is stripped. Returns false for malformed lines: no delimiter, or an
// empty signature or outcome after trimming.
func ParseLine(line string) (Record, bool) {
	lhs, rhs, ok := strings.Cut(line, "->")
	if !ok {
		return Record{}, false
	}
	sig := jvm.StripArgs(lhs)
	outcome := strings.TrimSpace(rhs)
	if sig == "" || outcome == "" {
		return Record{}, false
	}
	return Record{Sig: sig, Outcome: outcome}, true
}

// ParseStream reads an outcome log line by line. Blank lines are
// ignored; malformed lines are skipped and counted, never fatal.
// Records are returned in input order, duplicates included; collapsing
// them is the Aggregator's job.
func ParseStream(r io.Reader) ([]Record, int, error) {
	var records []Record
	var malformed int
	scanner := bufio.NewScanner(r)
	// Allow long lines for methods with large literal argument lists
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		rec, ok := ParseLine(line)
		if !ok {
			malformed++
			continue
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return records, malformed, fmt.Errorf("scanning outcome log: %w", err)
	}
	return records, malformed, nil
}

// ParseBytes is a convenience for parsing from a byte slice.
func ParseBytes(data []byte) ([]Record, int, error) {
	return ParseStream(strings.NewReader(string(data)))
}

// scanLine carries a scanned line or terminal error from the scanner
// goroutine.
type scanLine struct {
	text string
	err  error
}

// ProcessFunc receives each well-formed record during streaming.
type ProcessFunc func(Record)

// Stream reads outcome log lines and calls fn for each well-formed
// record. Stops on EOF or when ctx is cancelled. Returns the number of
// malformed lines skipped and any error.
//
// Cancellation: the scanner runs in a background goroutine. On context
// cancel, Stream closes r (if it implements io.Closer) to unblock the
// scanner. If r does not implement io.Closer the caller must close the
// underlying reader externally to prevent a goroutine leak.
func Stream(ctx context.Context, r io.Reader, fn ProcessFunc) (int, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lines := make(chan scanLine)
	go func() {
		defer close(lines)
		for scanner.Scan() {
			select {
			case lines <- scanLine{text: scanner.Text()}:
			case <-ctx.Done():
				return
			}
		}
		if err := scanner.Err(); err != nil {
			select {
			case lines <- scanLine{err: err}:
			case <-ctx.Done():
			}
		}
	}()

	var malformed int
	for {
		select {
		case <-ctx.Done():
			// Attempt to unblock the scanner goroutine.
			if c, ok := r.(io.Closer); ok {
				_ = c.Close()
			}
			return malformed, ctx.Err()
		case res, open := <-lines:
			if !open {
				return malformed, nil
			}
			if res.err != nil {
				return malformed, fmt.Errorf("scanning outcome log: %w", res.err)
			}
			line := strings.TrimSpace(res.text)
			if line == "" {
				continue
			}
			rec, ok := ParseLine(line)
			if !ok {
				malformed++
				continue
			}
			fn(rec)
		}
	}
}
