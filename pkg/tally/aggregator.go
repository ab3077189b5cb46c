package tally

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"

	"github.com/dkoosis/tally/pkg/jvm"
)

// maxLoggedMalformed caps per-aggregator malformed line warnings so a
// corrupt log cannot flood the output. The full count is always in the
// report.
const maxLoggedMalformed = 10

// Aggregator counts distinct (signature, outcome) pairs per suite. A
// pair seen twice counts once; the seen set is authoritative and the
// per-suite counts are derived from it.
type Aggregator struct {
	suiteFn   jvm.SuiteFunc
	log       *slog.Logger
	seen      map[string]bool
	counts    map[string]int
	total     int
	malformed int
}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithSuiteFunc overrides the rule mapping a bare signature to its
// suite name.
func WithSuiteFunc(fn jvm.SuiteFunc) Option {
	return func(a *Aggregator) {
		if fn != nil {
			a.suiteFn = fn
		}
	}
}

// WithLogger sets the logger used for malformed line warnings.
func WithLogger(log *slog.Logger) Option {
	return func(a *Aggregator) {
		if log != nil {
			a.log = log
		}
	}
}

// New returns an empty Aggregator. With no options it groups by the
// third dot-separated segment of the class path and logs to
// slog.Default.
func New(opts ...Option) *Aggregator {
	a := &Aggregator{
		suiteFn: jvm.DefaultSuite,
		log:     slog.Default(),
		seen:    make(map[string]bool),
		counts:  make(map[string]int),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// AddRecord folds one parsed record into the counts. Returns true if
// the record was new, false if its key had already been seen.
func (a *Aggregator) AddRecord(rec Record) bool {
	key := rec.Key()
	if a.seen[key] {
		return false
	}
	a.seen[key] = true
	a.counts[a.suiteFn(rec.Sig)]++
	a.total++
	return true
}

// Add parses and folds in one raw log line. Malformed lines are counted
// and reported false, same as duplicates.
func (a *Aggregator) Add(line string) bool {
	return a.addLine(line, 0)
}

func (a *Aggregator) addLine(line string, lineNo int) bool {
	rec, ok := ParseLine(line)
	if !ok {
		a.malformed++
		if a.malformed <= maxLoggedMalformed {
			attrs := []any{"text", truncate(line, 120)}
			if lineNo > 0 {
				attrs = append(attrs, "line", lineNo)
			}
			a.log.Warn("skipping malformed outcome line", attrs...)
		}
		return false
	}
	return a.AddRecord(rec)
}

// Consume reads an entire outcome log from r. Blank lines are ignored;
// malformed lines are counted, logged, and skipped. Only a read failure
// is an error.
func (a *Aggregator) Consume(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		a.addLine(line, lineNo)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scanning outcome log: %w", err)
	}
	return nil
}

// ConsumeContext is Consume with cancellation, for long or blocking
// inputs. See Stream for the io.Closer caveat.
func (a *Aggregator) ConsumeContext(ctx context.Context, r io.Reader) error {
	malformed, err := Stream(ctx, r, func(rec Record) { a.AddRecord(rec) })
	a.malformed += malformed
	return err
}

// Merge folds other's observations into a by replaying its seen keys,
// so the result counts the union of the two seen sets. Summing per-suite
// counts across shards would double-count keys both shards saw; replaying
// keys cannot. Suites are reassigned under a's rule. Malformed counts
// are additive.
func (a *Aggregator) Merge(other *Aggregator) {
	keys := make([]string, 0, len(other.seen))
	for key := range other.seen {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		sig, outcome, ok := splitKey(key)
		if !ok {
			continue
		}
		a.AddRecord(Record{Sig: sig, Outcome: outcome})
	}
	a.malformed += other.malformed
}

// Total returns the number of distinct keys seen so far.
func (a *Aggregator) Total() int { return a.total }

// Malformed returns the number of malformed lines skipped so far.
func (a *Aggregator) Malformed() int { return a.malformed }

// Seen reports whether the key of rec has already been counted.
func (a *Aggregator) Seen(rec Record) bool { return a.seen[rec.Key()] }

// Keys returns all seen keys in sorted order.
func (a *Aggregator) Keys() []string {
	keys := make([]string, 0, len(a.seen))
	for key := range a.seen {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// SuiteCount is one suite's distinct-key count.
type SuiteCount struct {
	Suite string `json:"suite"`
	Count int    `json:"count"`
}

// Report is a point-in-time summary of an Aggregator.
type Report struct {
	Suites    []SuiteCount `json:"suites"`
	Total     int          `json:"total"`
	Malformed int          `json:"malformed,omitempty"`
}

// Report summarizes the counts so far. Suites are sorted
// alphabetically; Total is the grand total of distinct keys, not a sum
// the caller must reconstruct.
func (a *Aggregator) Report() Report {
	suites := make([]SuiteCount, 0, len(a.counts))
	for suite, count := range a.counts {
		suites = append(suites, SuiteCount{Suite: suite, Count: count})
	}
	sort.Slice(suites, func(i, j int) bool { return suites[i].Suite < suites[j].Suite })
	return Report{Suites: suites, Total: a.total, Malformed: a.malformed}
}

// Lines renders the report in its plain text form: one "suite: count"
// line per suite in alphabetical order, then "Total: count". Malformed
// line counts are not part of this form.
func (r Report) Lines() []string {
	lines := make([]string, 0, len(r.Suites)+1)
	for _, sc := range r.Suites {
		lines = append(lines, fmt.Sprintf("%s: %d", sc.Suite, sc.Count))
	}
	lines = append(lines, fmt.Sprintf("Total: %d", r.Total))
	return lines
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
