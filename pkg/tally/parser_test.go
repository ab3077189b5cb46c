package tally

import (
	"strings"
	"testing"
)

func TestParseLine_StripsArgumentGroup(t *testing.T) {
	rec, ok := ParseLine("jpamb.cases.Simple.divideByZero:()I (0) -> divide by zero")
	if !ok {
		t.Fatal("expected line to parse")
	}
	if rec.Sig != "jpamb.cases.Simple.divideByZero:()I" {
		t.Errorf("Sig = %q, want bare signature", rec.Sig)
	}
	if rec.Outcome != "divide by zero" {
		t.Errorf("Outcome = %q, want \"divide by zero\"", rec.Outcome)
	}
	if rec.Key() != "jpamb.cases.Simple.divideByZero:()I -> divide by zero" {
		t.Errorf("Key() = %q", rec.Key())
	}
}

func TestParseLine_BareSignaturePassesThrough(t *testing.T) {
	// Descriptor parens are not an argument group; they never end the line.
	rec, ok := ParseLine("jpamb.cases.Simple.assertPositive:(I)V -> assertion error")
	if !ok {
		t.Fatal("expected line to parse")
	}
	if rec.Sig != "jpamb.cases.Simple.assertPositive:(I)V" {
		t.Errorf("Sig = %q, want descriptor intact", rec.Sig)
	}
}

func TestParseLine_SplitsOnFirstArrow(t *testing.T) {
	rec, ok := ParseLine("a.b.C.m:()V -> x -> y")
	if !ok {
		t.Fatal("expected line to parse")
	}
	if rec.Sig != "a.b.C.m:()V" {
		t.Errorf("Sig = %q", rec.Sig)
	}
	if rec.Outcome != "x -> y" {
		t.Errorf("Outcome = %q, want everything after the first arrow", rec.Outcome)
	}
}

func TestParseLine_TrimsWhitespace(t *testing.T) {
	rec, ok := ParseLine("   jpamb.cases.Loops.forever:()V ()   ->   *  ")
	if !ok {
		t.Fatal("expected line to parse")
	}
	if rec.Sig != "jpamb.cases.Loops.forever:()V" {
		t.Errorf("Sig = %q", rec.Sig)
	}
	if rec.Outcome != "*" {
		t.Errorf("Outcome = %q, want \"*\"", rec.Outcome)
	}
}

func TestParseLine_ArrayArgumentGroup(t *testing.T) {
	rec, ok := ParseLine("jpamb.cases.Arrays.arrayFirst:([I)I ([I: 1, 2, 3]) -> ok")
	if !ok {
		t.Fatal("expected line to parse")
	}
	if rec.Sig != "jpamb.cases.Arrays.arrayFirst:([I)I" {
		t.Errorf("Sig = %q, want array literal stripped", rec.Sig)
	}
}

func TestParseLine_Malformed(t *testing.T) {
	for _, line := range []string{
		"no arrow here",
		"jpamb.cases.Simple.divideByZero:()I (0)",
		"-> ok",
		"jpamb.cases.Simple.divideByZero:()I ->",
		"->",
		"  ->  ",
	} {
		if _, ok := ParseLine(line); ok {
			t.Errorf("ParseLine(%q) parsed, want malformed", line)
		}
	}
}

func TestParseStream_OrderAndDuplicates(t *testing.T) {
	input := strings.Join([]string{
		"jpamb.cases.Simple.divideByZero:()I (0) -> divide by zero",
		"",
		"jpamb.cases.Simple.assertPositive:(I)V (1) -> ok",
		"jpamb.cases.Simple.divideByZero:()I (0) -> divide by zero",
	}, "\n") + "\n"

	records, malformed, err := ParseStream(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	if malformed != 0 {
		t.Errorf("got %d malformed, want 0 (blank lines are not malformed)", malformed)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records, want 3 (duplicates kept)", len(records))
	}
	if records[0].Outcome != "divide by zero" {
		t.Errorf("records[0].Outcome = %q", records[0].Outcome)
	}
	if records[1].Sig != "jpamb.cases.Simple.assertPositive:(I)V" {
		t.Errorf("records[1].Sig = %q, want input order preserved", records[1].Sig)
	}
	if records[2].Key() != records[0].Key() {
		t.Errorf("records[2].Key() = %q, want same key as records[0]", records[2].Key())
	}
}

func TestParseStream_MalformedLinesSkipped(t *testing.T) {
	input := "garbage\n" +
		"jpamb.cases.Simple.divideByZero:()I (0) -> divide by zero\n" +
		"also garbage\n"

	records, malformed, err := ParseStream(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	if malformed != 2 {
		t.Errorf("got %d malformed, want 2", malformed)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records (skipping malformed), want 1", len(records))
	}
}

func TestParseBytes(t *testing.T) {
	records, malformed, err := ParseBytes([]byte("a.b.C.m:()V () -> ok\n"))
	if err != nil {
		t.Fatal(err)
	}
	if malformed != 0 || len(records) != 1 {
		t.Fatalf("got %d records, %d malformed", len(records), malformed)
	}
}

func TestSplitKey_InvertsKey(t *testing.T) {
	rec := Record{Sig: "a.b.C.m:()V", Outcome: "divide by zero"}
	sig, outcome, ok := splitKey(rec.Key())
	if !ok {
		t.Fatal("expected key to split")
	}
	if sig != rec.Sig || outcome != rec.Outcome {
		t.Errorf("splitKey = (%q, %q), want (%q, %q)", sig, outcome, rec.Sig, rec.Outcome)
	}
}
