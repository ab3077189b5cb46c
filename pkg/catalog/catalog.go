// Package catalog holds the benchmark's ground-truth expectation set: for
// each target method, which literal inputs produce which runtime outcome.
// An external analysis tool is judged against these declarations.
package catalog

import (
	"errors"
	"fmt"
	"iter"
	"sort"
	"strings"

	"github.com/dkoosis/tally/pkg/jvm"
)

// Outcome classifies a method's runtime behavior for given inputs.
type Outcome string

const (
	OutcomeOK             Outcome = "ok"
	OutcomeDivideByZero   Outcome = "divide by zero"
	OutcomeAssertionError Outcome = "assertion error"
	OutcomeOutOfBounds    Outcome = "out of bounds"
	OutcomeNullPointer    Outcome = "null pointer"
	// OutcomeExhausted marks runs that used up the analysis budget, a
	// possible non-termination.
	OutcomeExhausted Outcome = "*"
)

// KnownOutcomes lists the labels the benchmark itself uses. The catalog
// stores any non-empty label, so tooling treats unknown ones as likely
// typos rather than errors.
func KnownOutcomes() []Outcome {
	return []Outcome{
		OutcomeOK,
		OutcomeDivideByZero,
		OutcomeAssertionError,
		OutcomeOutOfBounds,
		OutcomeNullPointer,
		OutcomeExhausted,
	}
}

// Known reports whether the outcome is part of the benchmark vocabulary.
func (o Outcome) Known() bool {
	for _, k := range KnownOutcomes() {
		if o == k {
			return true
		}
	}
	return false
}

// Case is one declared expectation: for these literal inputs, the method
// behaves this way.
type Case struct {
	Method  jvm.MethodID
	Args    jvm.ValueList
	Outcome Outcome
}

// Key returns the case's deduplication key: bare signature and outcome,
// arguments stripped. Distinct inputs with the same outcome share a key.
func (c Case) Key() string {
	return c.Method.String() + " -> " + string(c.Outcome)
}

// String renders the case the way an outcome log line would carry it.
func (c Case) String() string {
	return c.Method.String() + " " + c.Args.String() + " -> " + string(c.Outcome)
}

// ErrInconsistent reports two declarations for the same method and inputs
// that disagree on the outcome.
var ErrInconsistent = errors.New("catalog: inconsistent case declarations")

// Registry is the ground-truth case set. It is built once at startup,
// through Declare calls or a loader, and read-only afterwards.
type Registry struct {
	cases   []Case
	byInput map[string]int
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byInput: make(map[string]int)}
}

func inputKey(m jvm.MethodID, args jvm.ValueList) string {
	return m.String() + " " + args.String()
}

// Declare registers one case. Declaring the identical triple again is a
// no-op. Declaring the same inputs with a different outcome violates the
// determinism invariant and is rejected with ErrInconsistent; it is never
// resolved by overwriting.
func (r *Registry) Declare(m jvm.MethodID, args jvm.ValueList, outcome Outcome) error {
	if m.Name == "" {
		return fmt.Errorf("catalog: declaration for %q has no method name", m.String())
	}
	if strings.TrimSpace(string(outcome)) == "" {
		return fmt.Errorf("catalog: %s %s declares an empty outcome", m, args)
	}
	k := inputKey(m, args)
	if i, ok := r.byInput[k]; ok {
		if r.cases[i].Outcome == outcome {
			return nil
		}
		return fmt.Errorf("%w: %s %s declared %q and %q",
			ErrInconsistent, m, args, r.cases[i].Outcome, outcome)
	}
	r.byInput[k] = len(r.cases)
	r.cases = append(r.cases, Case{Method: m, Args: args, Outcome: outcome})
	return nil
}

// All returns the declared cases in declaration order. The sequence is
// produced lazily and can be ranged over any number of times.
func (r *Registry) All() iter.Seq[Case] {
	return func(yield func(Case) bool) {
		for _, c := range r.cases {
			if !yield(c) {
				return
			}
		}
	}
}

// Len returns the number of declared cases.
func (r *Registry) Len() int {
	return len(r.cases)
}

// Methods returns the distinct declared methods in first-declared order.
func (r *Registry) Methods() []jvm.MethodID {
	seen := make(map[string]struct{}, len(r.cases))
	var out []jvm.MethodID
	for _, c := range r.cases {
		s := c.Method.String()
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, c.Method)
	}
	return out
}

// Validate groups cases by (method, inputs) and reports every group whose
// outcomes disagree. Declare already rejects these as they arrive;
// Validate re-derives the check from scratch for registries assembled by
// other means.
func (r *Registry) Validate() error {
	byInput := make(map[string]Case, len(r.cases))
	var errs []error
	for _, c := range r.cases {
		k := inputKey(c.Method, c.Args)
		prev, ok := byInput[k]
		if !ok {
			byInput[k] = c
			continue
		}
		if prev.Outcome != c.Outcome {
			errs = append(errs, fmt.Errorf("%w: %s %s declared %q and %q",
				ErrInconsistent, c.Method, c.Args, prev.Outcome, c.Outcome))
		}
	}
	return errors.Join(errs...)
}

// ExpectedKeys returns the distinct (bare signature, outcome) keys the
// catalog promises, grouped by suite under fn and sorted within each
// suite. A nil fn means the default rule.
func (r *Registry) ExpectedKeys(fn jvm.SuiteFunc) map[string][]string {
	if fn == nil {
		fn = jvm.DefaultSuite
	}
	seen := make(map[string]struct{}, len(r.cases))
	out := make(map[string][]string)
	for _, c := range r.cases {
		k := c.Key()
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		suite := fn(c.Method.String())
		out[suite] = append(out[suite], k)
	}
	for _, keys := range out {
		sort.Strings(keys)
	}
	return out
}
