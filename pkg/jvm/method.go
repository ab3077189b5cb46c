package jvm

import (
	"fmt"
	"strings"
)

// MethodID identifies one benchmark method: a dotted class path, the
// method name, and a JVM type descriptor. The canonical text form is
// "jpamb.cases.Simple.divideByZero:()I".
type MethodID struct {
	ClassName  string
	Name       string
	Descriptor string
}

// String renders the canonical form. The descriptor separator is omitted
// when there is no descriptor.
func (m MethodID) String() string {
	var sb strings.Builder
	if m.ClassName != "" {
		sb.WriteString(m.ClassName)
		sb.WriteByte('.')
	}
	sb.WriteString(m.Name)
	if m.Descriptor != "" {
		sb.WriteByte(':')
		sb.WriteString(m.Descriptor)
	}
	return sb.String()
}

// ParseMethodID parses the canonical form. The descriptor part is
// optional; the method name is not.
func ParseMethodID(s string) (MethodID, error) {
	s = strings.TrimSpace(s)
	path, desc, _ := strings.Cut(s, ":")
	path = strings.TrimSpace(path)
	if path == "" {
		return MethodID{}, fmt.Errorf("jvm: empty method id")
	}
	m := MethodID{Descriptor: strings.TrimSpace(desc)}
	if i := strings.LastIndex(path, "."); i >= 0 {
		m.ClassName, m.Name = path[:i], path[i+1:]
	} else {
		m.Name = path
	}
	if m.Name == "" {
		return MethodID{}, fmt.Errorf("jvm: method id %q has no method name", s)
	}
	return m, nil
}

// Suite returns the method's suite under the default rule.
func (m MethodID) Suite() string {
	return DefaultSuite(m.String())
}

// StripArgs removes a trailing parenthesized argument group from a logged
// signature, leaving the bare method signature. The group is matched by a
// balanced scan anchored at the end of the trimmed input, so descriptors
// like ":(I)V" earlier in the signature are untouched. Signatures with no
// trailing group pass through unchanged.
func StripArgs(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasSuffix(s, ")") {
		return s
	}
	depth := 0
	for i := len(s) - 1; i >= 0; i-- {
		switch s[i] {
		case ')':
			depth++
		case '(':
			depth--
			if depth == 0 {
				return strings.TrimSpace(s[:i])
			}
		}
	}
	return s
}

// UnknownSuite is the fallback group for signatures the suite rule cannot
// place.
const UnknownSuite = "UNKNOWN"

// SuiteFunc maps a bare method signature to the suite it reports under.
// Grouping conventions vary between benchmarks, so the rule is a value
// callers can replace rather than a fixed split.
type SuiteFunc func(bareSig string) string

// SegmentRule returns a SuiteFunc selecting the nth dot-segment (1-based)
// of the signature's qualifying path, with UnknownSuite when the path has
// fewer segments than that.
func SegmentRule(n int) SuiteFunc {
	return func(bareSig string) string {
		path, _, _ := strings.Cut(strings.TrimSpace(bareSig), ":")
		if path == "" {
			return UnknownSuite
		}
		segs := strings.Split(path, ".")
		if n < 1 || len(segs) < n {
			return UnknownSuite
		}
		seg := strings.TrimSpace(segs[n-1])
		if seg == "" {
			return UnknownSuite
		}
		return seg
	}
}

// DefaultSuite is the benchmark's own convention: the third segment, so
// jpamb.cases.Simple.divideByZero reports under Simple.
var DefaultSuite SuiteFunc = SegmentRule(3)
