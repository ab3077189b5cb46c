package config

import (
	"fmt"
	"os"
	"strconv"
)

// CliFlags holds the values of command-line flags, with companion
// booleans marking which the user set explicitly. Unset flags let
// lower-priority sources through.
type CliFlags struct {
	Format       string
	Theme        string
	SuiteSegment int
	Jobs         int
	Strict       bool
	NoColor      bool
	CI           bool
	Debug        bool

	FormatSet       bool
	ThemeSet        bool
	SuiteSegmentSet bool
	JobsSet         bool
	StrictSet       bool
	NoColorSet      bool
	CISet           bool
	DebugSet        bool
}

// Resolved holds the final configuration after applying all priority
// rules, plus the source of the user-visible settings for debugging.
type Resolved struct {
	Format       string
	Theme        string
	SuiteSegment int
	Jobs         int // 0 means one worker per CPU
	Strict       bool
	NoColor      bool
	CI           bool
	Debug        bool

	FormatSource string // "cli", "file", "default"
	ThemeSource  string // "cli", "env", "file", "default"
}

// Resolve merges CLI flags, environment, the config file, and defaults,
// in that priority order. This is the single source of truth for
// configuration.
func Resolve(flags CliFlags) (*Resolved, error) {
	file := LoadFile()

	r := &Resolved{
		Format:       DefaultFormat,
		Theme:        DefaultTheme,
		SuiteSegment: DefaultSuiteSegment,
		Strict:       file.Strict,
		NoColor:      file.NoColor,
		CI:           file.CI,
		Debug:        file.Debug,
		FormatSource: "default",
		ThemeSource:  "default",
	}

	if file.Format != "" {
		r.Format, r.FormatSource = file.Format, "file"
	}
	if flags.FormatSet {
		r.Format, r.FormatSource = flags.Format, "cli"
	}

	if file.Theme != "" {
		r.Theme, r.ThemeSource = file.Theme, "file"
	}
	if env := os.Getenv("TALLY_THEME"); env != "" && !flags.ThemeSet {
		r.Theme, r.ThemeSource = env, "env"
	}
	if flags.ThemeSet {
		r.Theme, r.ThemeSource = flags.Theme, "cli"
	}

	if file.SuiteSegment > 0 {
		r.SuiteSegment = file.SuiteSegment
	}
	if flags.SuiteSegmentSet {
		r.SuiteSegment = flags.SuiteSegment
	}

	if file.Jobs > 0 {
		r.Jobs = file.Jobs
	}
	if flags.JobsSet {
		r.Jobs = flags.Jobs
	}

	if flags.StrictSet {
		r.Strict = flags.Strict
	}

	if flags.NoColorSet {
		r.NoColor = flags.NoColor
	} else if env := envBool("TALLY_NO_COLOR", "NO_COLOR"); env != nil {
		r.NoColor = *env
	}

	if flags.CISet {
		r.CI = flags.CI
	} else if env := envBool("TALLY_CI", "CI"); env != nil {
		r.CI = *env
	}

	if flags.DebugSet {
		r.Debug = flags.Debug
	} else if os.Getenv("TALLY_DEBUG") != "" {
		r.Debug = true
	}

	// CI output goes to build logs: no color, no styled terminal.
	if r.CI {
		r.NoColor = true
	}

	if err := validate(r); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return r, nil
}

// envBool reads a boolean from environment variables, trying keys in
// order. Returns nil if none are set to a parseable value.
func envBool(keys ...string) *bool {
	for _, key := range keys {
		if val := os.Getenv(key); val != "" {
			if b, err := strconv.ParseBool(val); err == nil {
				return &b
			}
		}
	}
	return nil
}

func validate(r *Resolved) error {
	switch r.Format {
	case "auto", "terminal", "plain", "json":
	default:
		return fmt.Errorf("invalid format %q (must be: auto, terminal, plain, json)", r.Format)
	}
	if r.SuiteSegment < 1 {
		return fmt.Errorf("suite_segment must be at least 1, got %d", r.SuiteSegment)
	}
	if r.Jobs < 0 {
		return fmt.Errorf("jobs must not be negative, got %d", r.Jobs)
	}
	return nil
}
