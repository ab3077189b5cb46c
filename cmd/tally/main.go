// tally counts distinct method outcomes in analysis logs and checks
// them against the declared benchmark case catalog.
//
// Usage:
//
//	java -cp ... jpamb.Runner | tally report
//	tally report run1.log run2.log --jobs 4
//	tally coverage run.log --min 80
//	tally watch run.log
//
// Subcommands:
//
//	report    per-suite distinct-outcome counts from one or more logs
//	cases     list the declared benchmark cases
//	check     validate catalog consistency
//	coverage  observed keys measured against the catalog
//	watch     live view over a growing log
//	version   print the build version
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dkoosis/tally/pkg/catalog"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes the CLI against explicit streams so the whole pipeline
// stays testable in-process.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	root := newRootCmd()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.Execute(); err != nil {
		fmt.Fprintf(stderr, "tally: %v\n", err)
		var fe *failError
		if errors.As(err, &fe) || errors.Is(err, catalog.ErrInconsistent) {
			return 1
		}
		return 2
	}
	return 0
}

// failError marks a domain failure (exit 1): the pipeline ran but its
// result violates a requested guarantee. Usage and I/O errors exit 2.
type failError struct{ err error }

func (e *failError) Error() string { return e.err.Error() }
func (e *failError) Unwrap() error { return e.err }

func fail(format string, a ...any) error {
	return &failError{err: fmt.Errorf(format, a...)}
}
