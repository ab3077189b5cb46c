// Package render provides output renderers for tally's report patterns.
package render

import "github.com/dkoosis/tally/pkg/pattern"

// Renderer converts patterns to formatted output.
type Renderer interface {
	Render(patterns []pattern.Pattern) string
}
