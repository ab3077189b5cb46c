package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// --- JTBD E2E tests ---
// These exercise the full pipeline: args + stdin → config → aggregate →
// map → render → stdout, with the exit code as the contract.

// runCLI invokes run with a neutral environment so host and CI
// variables cannot steer the assertions.
func runCLI(t *testing.T, args []string, stdin string) (code int, stdout, stderr string) {
	t.Helper()
	for _, key := range []string{"TALLY_THEME", "TALLY_NO_COLOR", "NO_COLOR", "TALLY_CI", "CI", "TALLY_DEBUG"} {
		t.Setenv(key, "")
	}
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	var out, errOut bytes.Buffer
	code = run(args, strings.NewReader(stdin), &out, &errOut)
	return code, out.String(), errOut.String()
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestJTBD_ReportDeduplicatesIntoSuiteCounts(t *testing.T) {
	input := strings.Join([]string{
		"jpamb.cases.Simple.divideByZero:()I (0) -> divide by zero",
		"jpamb.cases.Simple.divideByZero:()I (1) -> divide by zero",
		"jpamb.cases.Simple.justReturn:()I () -> ok",
		"jpamb.cases.Arrays.arrayFirst:([I)I ([I: 1]) -> ok",
	}, "\n") + "\n"

	code, stdout, stderr := runCLI(t, []string{"report", "--format", "plain"}, input)

	if code != 0 {
		t.Fatalf("exit code = %d, stderr: %s", code, stderr)
	}
	want := "Arrays: 1\nSimple: 2\nTotal: 3\n"
	if stdout != want {
		t.Errorf("report = %q, want %q", stdout, want)
	}
}

func TestJTBD_ReportSkipsMalformedLines(t *testing.T) {
	input := "jpamb.cases.Simple.justReturn:()I () -> ok\n" +
		"this line has no arrow\n" +
		" -> outcome with no signature\n"

	code, stdout, stderr := runCLI(t, []string{"report", "--format", "plain"}, input)

	if code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	if want := "Simple: 1\nTotal: 1\n"; stdout != want {
		t.Errorf("report = %q, want %q", stdout, want)
	}
	if !strings.Contains(stderr, "malformed") {
		t.Errorf("stderr should warn about malformed lines, got: %s", stderr)
	}
}

func TestJTBD_StrictMalformedExitOne(t *testing.T) {
	input := "jpamb.cases.Simple.justReturn:()I () -> ok\nnot a log line\n"

	code, stdout, stderr := runCLI(t, []string{"report", "--format", "plain", "--strict"}, input)

	if code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
	if !strings.Contains(stdout, "Total: 1") {
		t.Errorf("report should still be printed, got %q", stdout)
	}
	if !strings.Contains(stderr, "strict") {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestJTBD_ReportEmptyInput(t *testing.T) {
	code, stdout, _ := runCLI(t, []string{"report", "--format", "plain"}, "")

	if code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	if stdout != "Total: 0\n" {
		t.Errorf("report = %q, want bare zero total", stdout)
	}
}

func TestJTBD_ReportMergesFilesWithoutDoubleCounting(t *testing.T) {
	f1 := writeFile(t, "run1.log",
		"jpamb.cases.Simple.divideByZero:()I (0) -> divide by zero\n"+
			"jpamb.cases.Simple.justReturn:()I () -> ok\n")
	f2 := writeFile(t, "run2.log",
		"jpamb.cases.Simple.divideByZero:()I (1) -> divide by zero\n"+
			"jpamb.cases.Arrays.arrayFirst:([I)I ([I: ]) -> out of bounds\n")

	code, stdout, stderr := runCLI(t, []string{"report", f1, f2, "--jobs", "2", "--format", "plain"}, "")

	if code != 0 {
		t.Fatalf("exit code = %d, stderr: %s", code, stderr)
	}
	want := "Arrays: 1\nSimple: 2\nTotal: 3\n"
	if stdout != want {
		t.Errorf("shared keys must not double-count: got %q, want %q", stdout, want)
	}
}

func TestJTBD_ReportStdinAlongsideFiles(t *testing.T) {
	f := writeFile(t, "run.log", "jpamb.cases.Simple.justReturn:()I () -> ok\n")

	code, stdout, _ := runCLI(t, []string{"report", f, "-", "--format", "plain"},
		"jpamb.cases.Loops.forever:()V () -> *\n")

	if code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	if want := "Loops: 1\nSimple: 1\nTotal: 2\n"; stdout != want {
		t.Errorf("report = %q, want %q", stdout, want)
	}
}

func TestJTBD_ReportMissingFileExitTwo(t *testing.T) {
	code, _, stderr := runCLI(t, []string{"report", "does-not-exist.log"}, "")

	if code != 2 {
		t.Fatalf("exit code = %d, want 2", code)
	}
	if !strings.Contains(stderr, "opening outcome log") {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestJTBD_ReportJSONFormat(t *testing.T) {
	code, stdout, _ := runCLI(t, []string{"report", "--format", "json"},
		"jpamb.cases.Simple.justReturn:()I () -> ok\n")

	if code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.Contains(stdout, `"version": "1.0"`) {
		t.Error("missing JSON version")
	}
	if !strings.Contains(stdout, `"count-table"`) {
		t.Errorf("missing count-table pattern, got:\n%s", stdout)
	}
}

func TestJTBD_SuiteSegmentFlag(t *testing.T) {
	// Second segment of jpamb.cases.Simple.justReturn:()I is "cases".
	code, stdout, _ := runCLI(t, []string{"report", "--suite-segment", "2", "--format", "plain"},
		"jpamb.cases.Simple.justReturn:()I () -> ok\n")

	if code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	if want := "cases: 1\nTotal: 1\n"; stdout != want {
		t.Errorf("report = %q, want %q", stdout, want)
	}
}

func TestJTBD_CasesListsBuiltinCatalog(t *testing.T) {
	code, stdout, stderr := runCLI(t, []string{"cases", "--format", "plain"}, "")

	if code != 0 {
		t.Fatalf("exit code = %d, stderr: %s", code, stderr)
	}
	if !strings.Contains(stdout, "jpamb.cases.Simple.divideByZero:()I () -> divide by zero") {
		t.Errorf("missing builtin case, got:\n%s", stdout)
	}
}

func TestJTBD_CasesSuiteFilter(t *testing.T) {
	code, stdout, _ := runCLI(t, []string{"cases", "--suite", "Simple", "--format", "plain"}, "")

	if code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.Contains(stdout, "jpamb.cases.Simple.") {
		t.Error("missing Simple cases")
	}
	if strings.Contains(stdout, "jpamb.cases.Arrays.") {
		t.Errorf("filter leaked other suites:\n%s", stdout)
	}
}

func TestJTBD_CheckBuiltinCatalogOK(t *testing.T) {
	code, stdout, stderr := runCLI(t, []string{"check"}, "")

	if code != 0 {
		t.Fatalf("exit code = %d, stderr: %s", code, stderr)
	}
	if !strings.Contains(stdout, "catalog OK") {
		t.Errorf("stdout = %q", stdout)
	}
}

func TestJTBD_CheckConflictingDeclarationExitOne(t *testing.T) {
	conflict := writeFile(t, "conflict.yaml", strings.Join([]string{
		"suite: Simple",
		"class: jpamb.cases.Simple",
		"methods:",
		"  - name: divideByZero",
		"    descriptor: ()I",
		"    cases:",
		`      - "() -> ok"`,
	}, "\n")+"\n")

	code, _, stderr := runCLI(t, []string{"check", "--file", conflict}, "")

	if code != 1 {
		t.Fatalf("exit code = %d, want 1; stderr: %s", code, stderr)
	}
	if !strings.Contains(stderr, "inconsistent") {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestJTBD_CoverageAgainstBuiltinCatalog(t *testing.T) {
	code, stdout, stderr := runCLI(t, []string{"coverage", "--format", "plain"},
		"jpamb.cases.Simple.divideByZero:()I (0) -> divide by zero\n")

	if code != 0 {
		t.Fatalf("exit code = %d, stderr: %s", code, stderr)
	}
	if !strings.Contains(stdout, "Coverage:") {
		t.Errorf("missing coverage line:\n%s", stdout)
	}
	if !strings.Contains(stdout, "missing") {
		t.Errorf("expected missing keys against the full catalog:\n%s", stdout)
	}
}

func TestJTBD_CoverageMinGateExitOne(t *testing.T) {
	code, _, stderr := runCLI(t, []string{"coverage", "--min", "99.5", "--format", "plain"},
		"jpamb.cases.Simple.divideByZero:()I (0) -> divide by zero\n")

	if code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
	if !strings.Contains(stderr, "below") {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestJTBD_UnknownFormatExitTwo(t *testing.T) {
	code, _, stderr := runCLI(t, []string{"report", "--format", "yaml"}, "")

	if code != 2 {
		t.Fatalf("exit code = %d, want 2", code)
	}
	if !strings.Contains(stderr, "format") {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestJTBD_UnknownCommandExitTwo(t *testing.T) {
	code, _, _ := runCLI(t, []string{"frobnicate"}, "")

	if code != 2 {
		t.Fatalf("exit code = %d, want 2", code)
	}
}

func TestJTBD_WatchRequiresPath(t *testing.T) {
	code, _, _ := runCLI(t, []string{"watch"}, "")

	if code != 2 {
		t.Fatalf("exit code = %d, want 2", code)
	}
}

func TestJTBD_VersionPrints(t *testing.T) {
	code, stdout, _ := runCLI(t, []string{"version"}, "")

	if code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.Contains(stdout, "tally dev") {
		t.Errorf("stdout = %q", stdout)
	}
}
