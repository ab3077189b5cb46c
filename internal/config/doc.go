// Package config handles configuration loading and merging for tally.
//
// # Configuration Precedence
//
// Configuration values are resolved in the following order (highest to lowest priority):
//
//  1. CLI flags (--format, --theme, --suite-segment, --jobs, --strict, --no-color, --ci)
//  2. Environment variables (TALLY_THEME, TALLY_NO_COLOR, NO_COLOR, TALLY_CI, CI, TALLY_DEBUG)
//  3. YAML config file (.tally.yaml in the working directory or ~/.config/tally/.tally.yaml)
//  4. Hardcoded defaults
//
// When a higher-priority source sets a value, it overrides any lower-priority values.
//
// # CI Mode Behavior
//
// When CI mode is enabled (via --ci flag, CI=true env var, or ci: true in YAML),
// colors are disabled and the "auto" format resolves to plain output, so logs
// stay readable in build systems.
//
// # Environment Variables
//
//   - TALLY_THEME: theme name (default, orca, mono)
//   - TALLY_NO_COLOR or NO_COLOR: set to "true" or "1" to disable colors
//   - TALLY_CI or CI: set to "true" or "1" to enable CI mode
//   - TALLY_DEBUG: set to any non-empty value to enable debug logging
package config
