// Package jvm models the method identifiers and literal values that appear
// in benchmark case declarations and outcome logs: dotted class paths with
// JVM type descriptors, and typed literals like 42, 'a', true, [I: 1, 2].
package jvm

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies the runtime type of a Value.
type Kind int

const (
	KindInt Kind = iota
	KindBool
	KindChar
	KindIntArray
	KindCharArray
)

// String returns the kind's type tag as used in array literals.
func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindBool:
		return "boolean"
	case KindChar:
		return "char"
	case KindIntArray:
		return "int[]"
	case KindCharArray:
		return "char[]"
	default:
		return "unknown"
	}
}

// Value is one literal input argument. Integers are fixed-width 32-bit
// signed values; literals written outside that range wrap with
// two's-complement semantics, so 0xDEADBEEF stores as -559038737.
type Value struct {
	Kind  Kind
	Int   int32
	Bool  bool
	Char  rune
	Ints  []int32
	Chars []rune
}

// Int returns an integer Value.
func Int(v int32) Value { return Value{Kind: KindInt, Int: v} }

// Bool returns a boolean Value.
func Bool(v bool) Value { return Value{Kind: KindBool, Bool: v} }

// Char returns a char Value.
func Char(r rune) Value { return Value{Kind: KindChar, Char: r} }

// IntArray returns an int-array Value. The empty array is a valid,
// distinct literal: IntArray() is not the same as no argument at all.
func IntArray(vs ...int32) Value {
	return Value{Kind: KindIntArray, Ints: append([]int32{}, vs...)}
}

// CharArray returns a char-array Value.
func CharArray(rs ...rune) Value {
	return Value{Kind: KindCharArray, Chars: append([]rune{}, rs...)}
}

// String renders the canonical literal form. Integers always render in
// decimal regardless of the base they were parsed from.
func (v Value) String() string {
	switch v.Kind {
	case KindInt:
		return strconv.FormatInt(int64(v.Int), 10)
	case KindBool:
		return strconv.FormatBool(v.Bool)
	case KindChar:
		return quoteChar(v.Char)
	case KindIntArray:
		parts := make([]string, len(v.Ints))
		for i, n := range v.Ints {
			parts[i] = strconv.FormatInt(int64(n), 10)
		}
		return "[I: " + strings.Join(parts, ", ") + "]"
	case KindCharArray:
		parts := make([]string, len(v.Chars))
		for i, r := range v.Chars {
			parts[i] = quoteChar(r)
		}
		return "[C: " + strings.Join(parts, ", ") + "]"
	default:
		return "?"
	}
}

// Equal reports whether two values have the same kind and contents.
func (v Value) Equal(o Value) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case KindInt:
		return v.Int == o.Int
	case KindBool:
		return v.Bool == o.Bool
	case KindChar:
		return v.Char == o.Char
	case KindIntArray:
		if len(v.Ints) != len(o.Ints) {
			return false
		}
		for i := range v.Ints {
			if v.Ints[i] != o.Ints[i] {
				return false
			}
		}
		return true
	case KindCharArray:
		if len(v.Chars) != len(o.Chars) {
			return false
		}
		for i := range v.Chars {
			if v.Chars[i] != o.Chars[i] {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// ValueList is an ordered argument tuple.
type ValueList []Value

// String renders the tuple form, e.g. "(1, [I: 2, 3])". The empty tuple
// renders as "()".
func (vl ValueList) String() string {
	parts := make([]string, len(vl))
	for i, v := range vl {
		parts[i] = v.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// Equal reports whether two tuples are element-wise equal.
func (vl ValueList) Equal(o ValueList) bool {
	if len(vl) != len(o) {
		return false
	}
	for i := range vl {
		if !vl[i].Equal(o[i]) {
			return false
		}
	}
	return true
}

// ParseValueList parses a parenthesized argument tuple. "()" is the empty
// tuple; "([I: ])" is a one-element tuple holding an empty int array, and
// the two never collapse into each other.
func ParseValueList(s string) (ValueList, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 || s[0] != '(' || s[len(s)-1] != ')' {
		return nil, fmt.Errorf("jvm: argument list %q is not parenthesized", s)
	}
	inner := strings.TrimSpace(s[1 : len(s)-1])
	if inner == "" {
		return ValueList{}, nil
	}
	parts, err := splitTop(inner)
	if err != nil {
		return nil, err
	}
	vals := make(ValueList, 0, len(parts))
	for _, p := range parts {
		v, err := ParseValue(p)
		if err != nil {
			return nil, err
		}
		vals = append(vals, v)
	}
	return vals, nil
}

// ParseValue parses one literal: an integer in any base strconv accepts,
// a product of integer literals, a boolean, a quoted char, or a typed
// array.
func ParseValue(s string) (Value, error) {
	s = strings.TrimSpace(s)
	switch {
	case s == "":
		return Value{}, fmt.Errorf("jvm: empty literal")
	case s == "true":
		return Bool(true), nil
	case s == "false":
		return Bool(false), nil
	case s[0] == '\'':
		r, err := parseChar(s)
		if err != nil {
			return Value{}, err
		}
		return Char(r), nil
	case s[0] == '[':
		return parseArray(s)
	default:
		n, err := parseIntExpr(s)
		if err != nil {
			return Value{}, err
		}
		return Int(n), nil
	}
}

// splitTop splits on commas outside array brackets and char quotes.
func splitTop(s string) ([]string, error) {
	var parts []string
	depth := 0
	inQuote := false
	start := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case inQuote:
			if c == '\\' {
				i++
			} else if c == '\'' {
				inQuote = false
			}
		case c == '\'':
			inQuote = true
		case c == '[':
			depth++
		case c == ']':
			depth--
			if depth < 0 {
				return nil, fmt.Errorf("jvm: unbalanced brackets in %q", s)
			}
		case c == ',' && depth == 0:
			parts = append(parts, strings.TrimSpace(s[start:i]))
			start = i + 1
		}
	}
	if depth != 0 || inQuote {
		return nil, fmt.Errorf("jvm: unterminated literal in %q", s)
	}
	parts = append(parts, strings.TrimSpace(s[start:]))
	return parts, nil
}

// parseArray parses "[I: 1, 2]" or "[C: 'a']". "[I: ]" and "[I:]" both
// parse to the empty int array.
func parseArray(s string) (Value, error) {
	if len(s) < 2 || s[len(s)-1] != ']' {
		return Value{}, fmt.Errorf("jvm: unterminated array literal %q", s)
	}
	body := s[1 : len(s)-1]
	tag, rest, ok := strings.Cut(body, ":")
	if !ok {
		return Value{}, fmt.Errorf("jvm: array literal %q has no type tag", s)
	}
	tag = strings.TrimSpace(tag)
	rest = strings.TrimSpace(rest)
	switch tag {
	case "I":
		if rest == "" {
			return IntArray(), nil
		}
		elems := strings.Split(rest, ",")
		ints := make([]int32, 0, len(elems))
		for _, e := range elems {
			n, err := parseIntExpr(strings.TrimSpace(e))
			if err != nil {
				return Value{}, err
			}
			ints = append(ints, n)
		}
		return Value{Kind: KindIntArray, Ints: ints}, nil
	case "C":
		if rest == "" {
			return CharArray(), nil
		}
		elems := strings.Split(rest, ",")
		chars := make([]rune, 0, len(elems))
		for _, e := range elems {
			r, err := parseChar(strings.TrimSpace(e))
			if err != nil {
				return Value{}, err
			}
			chars = append(chars, r)
		}
		return Value{Kind: KindCharArray, Chars: chars}, nil
	default:
		return Value{}, fmt.Errorf("jvm: unknown array type tag %q in %q", tag, s)
	}
}

// parseIntExpr parses an integer literal or a product of integer literals
// separated by '*', folded left to right with 32-bit wraparound. Catalog
// authors write products like 64 * 64 * 64 * 64 for large magic numbers.
func parseIntExpr(s string) (int32, error) {
	factors := strings.Split(s, "*")
	acc, err := parseIntLit(strings.TrimSpace(factors[0]))
	if err != nil {
		return 0, err
	}
	for _, f := range factors[1:] {
		n, err := parseIntLit(strings.TrimSpace(f))
		if err != nil {
			return 0, err
		}
		acc *= n
	}
	return acc, nil
}

// parseIntLit parses one integer literal in decimal, hex, octal, or
// binary. Values outside int32 truncate to their two's-complement low 32
// bits, matching fixed-width signed arithmetic.
func parseIntLit(s string) (int32, error) {
	v, err := strconv.ParseInt(s, 0, 64)
	if err != nil {
		// Hex literals with the high bit set, like 0xDEADBEEF, overflow
		// a signed parse only past 64 bits; retry unsigned before giving up.
		u, uerr := strconv.ParseUint(s, 0, 64)
		if uerr != nil {
			return 0, fmt.Errorf("jvm: bad integer literal %q: %w", s, err)
		}
		return int32(uint32(u)), nil
	}
	return int32(v), nil
}

// parseChar parses a single-quoted char literal with the usual escapes.
func parseChar(s string) (rune, error) {
	if len(s) < 3 || s[0] != '\'' || s[len(s)-1] != '\'' {
		return 0, fmt.Errorf("jvm: bad char literal %q", s)
	}
	body := s[1 : len(s)-1]
	if strings.HasPrefix(body, "\\") {
		switch body {
		case `\n`:
			return '\n', nil
		case `\t`:
			return '\t', nil
		case `\r`:
			return '\r', nil
		case `\\`:
			return '\\', nil
		case `\'`:
			return '\'', nil
		case `\0`:
			return 0, nil
		default:
			return 0, fmt.Errorf("jvm: unknown escape in char literal %q", s)
		}
	}
	runes := []rune(body)
	if len(runes) != 1 {
		return 0, fmt.Errorf("jvm: char literal %q must hold exactly one rune", s)
	}
	return runes[0], nil
}

// quoteChar renders a char literal, escaping what parseChar understands.
func quoteChar(r rune) string {
	switch r {
	case '\n':
		return `'\n'`
	case '\t':
		return `'\t'`
	case '\r':
		return `'\r'`
	case '\\':
		return `'\\'`
	case '\'':
		return `'\''`
	case 0:
		return `'\0'`
	default:
		return "'" + string(r) + "'"
	}
}
