package catalog

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dkoosis/tally/pkg/jvm"
)

func TestParseDecl(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		decl        string
		wantArgs    jvm.ValueList
		wantOutcome Outcome
	}{
		{"no args", "() -> divide by zero", jvm.ValueList{}, OutcomeDivideByZero},
		{"one int", "(1) -> ok", jvm.ValueList{jvm.Int(1)}, OutcomeOK},
		{"hex resolves", "(0xDEADBEEF) -> divide by zero", jvm.ValueList{jvm.Int(-559038737)}, OutcomeDivideByZero},
		{"product resolves", "(64 * 64 * 64 * 64) -> assertion error", jvm.ValueList{jvm.Int(16777216)}, OutcomeAssertionError},
		{"empty array", "([I: ]) -> out of bounds", jvm.ValueList{jvm.IntArray()}, OutcomeOutOfBounds},
		{"padded", "  ( 1 , 2 )  ->  ok  ", jvm.ValueList{jvm.Int(1), jvm.Int(2)}, OutcomeOK},
		{"star outcome", "(-1) -> *", jvm.ValueList{jvm.Int(-1)}, OutcomeExhausted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			args, outcome, err := ParseDecl(tt.decl)
			if err != nil {
				t.Fatalf("ParseDecl(%q): %v", tt.decl, err)
			}
			if diff := cmp.Diff(tt.wantArgs, args); diff != "" {
				t.Errorf("args mismatch (-want +got):\n%s", diff)
			}
			if outcome != tt.wantOutcome {
				t.Errorf("outcome = %q, want %q", outcome, tt.wantOutcome)
			}
		})
	}

	for _, decl := range []string{"", "(1) ok", "1 -> ok", "(1) -> ", "(1,) -> ok"} {
		if _, _, err := ParseDecl(decl); err == nil {
			t.Errorf("ParseDecl(%q) should fail", decl)
		}
	}
}

const sampleSuiteYAML = `
suite: Simple
class: jpamb.cases.Simple
methods:
  - name: divideByN
    descriptor: (I)I
    cases:
      - "(0) -> divide by zero"
      - "(1) -> ok"
  - name: assertFalse
    descriptor: ()V
    cases:
      - "() -> assertion error"
`

func TestLoadInto(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	if err := LoadInto(reg, []byte(sampleSuiteYAML), "simple.yaml"); err != nil {
		t.Fatalf("LoadInto: %v", err)
	}

	var got []Case
	for c := range reg.All() {
		got = append(got, c)
	}

	divideByN := jvm.MethodID{ClassName: "jpamb.cases.Simple", Name: "divideByN", Descriptor: "(I)I"}
	assertFalse := jvm.MethodID{ClassName: "jpamb.cases.Simple", Name: "assertFalse", Descriptor: "()V"}
	want := []Case{
		{Method: divideByN, Args: jvm.ValueList{jvm.Int(0)}, Outcome: OutcomeDivideByZero},
		{Method: divideByN, Args: jvm.ValueList{jvm.Int(1)}, Outcome: OutcomeOK},
		{Method: assertFalse, Args: jvm.ValueList{}, Outcome: OutcomeAssertionError},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("loaded cases mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadInto_SurfacesInconsistency(t *testing.T) {
	t.Parallel()

	const conflicting = `
suite: Simple
class: jpamb.cases.Simple
methods:
  - name: divideByN
    descriptor: (I)I
    cases:
      - "(0) -> divide by zero"
      - "(0) -> ok"
`
	reg := NewRegistry()
	err := LoadInto(reg, []byte(conflicting), "bad.yaml")
	if err == nil {
		t.Fatal("conflicting file must not load")
	}
	if got := err.Error(); !strings.Contains(got, "bad.yaml") {
		t.Errorf("error %q should name the source file", got)
	}
}

func TestLoadInto_RejectsIncompleteFiles(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"no class":    "suite: X\nmethods: []\n",
		"no name":     "class: a.b.C\nmethods:\n  - descriptor: ()V\n",
		"bad yaml":    "class: [unclosed\n",
		"bad decl":    "class: a.b.C\nmethods:\n  - name: m\n    cases: [\"nope\"]\n",
		"bad literal": "class: a.b.C\nmethods:\n  - name: m\n    cases: [\"(zzz) -> ok\"]\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			reg := NewRegistry()
			if err := LoadInto(reg, []byte(content), name); err == nil {
				t.Errorf("LoadInto should fail for %s", name)
			}
		})
	}
}

func TestBuiltin(t *testing.T) {
	t.Parallel()

	reg, err := Builtin()
	if err != nil {
		t.Fatalf("Builtin: %v", err)
	}
	if err := reg.Validate(); err != nil {
		t.Fatalf("builtin catalog must be consistent: %v", err)
	}

	if got, want := reg.Len(), 44; got != want {
		t.Errorf("builtin case count = %d, want %d", got, want)
	}
	if got, want := len(reg.Methods()), 22; got != want {
		t.Errorf("builtin method count = %d, want %d", got, want)
	}

	wantKeyCounts := map[string]int{
		"Arrays":     8,
		"Calls":      4,
		"HardFuzzer": 13,
		"Loops":      4,
		"Simple":     8,
	}
	gotKeys := reg.ExpectedKeys(nil)
	gotCounts := make(map[string]int, len(gotKeys))
	for suite, keys := range gotKeys {
		gotCounts[suite] = len(keys)
	}
	if diff := cmp.Diff(wantKeyCounts, gotCounts); diff != "" {
		t.Errorf("per-suite distinct keys mismatch (-want +got):\n%s", diff)
	}

	// The hex magic number must have resolved to its 32-bit signed value.
	found := false
	for c := range reg.All() {
		if c.Method.Name == "hexMagicNumber" && c.Outcome == OutcomeDivideByZero {
			found = true
			if diff := cmp.Diff(jvm.ValueList{jvm.Int(-559038737)}, c.Args); diff != "" {
				t.Errorf("hexMagicNumber args mismatch (-want +got):\n%s", diff)
			}
		}
	}
	if !found {
		t.Error("builtin catalog is missing the hexMagicNumber divide by zero case")
	}

	again, err := Builtin()
	if err != nil {
		t.Fatalf("Builtin second call: %v", err)
	}
	if again != reg {
		t.Error("Builtin must return the shared registry")
	}
}
