// Package diag renders per-candidate diagnostics for Engines running in
// evaluation mode. It exists so that github.com/k0kubun/pp and
// github.com/gookit/color — both dependencies of the teacher repository,
// there used only by dead placeholder functions whose sole purpose was to
// keep the import line from going unused — back a real feature here instead.
package diag

import (
	"fmt"
	"strings"

	"github.com/gookit/color"
	"github.com/k0kubun/pp"
)

// Candidate is one scored window considered by the matcher, kept for
// evaluation-mode reporting regardless of whether it was accepted.
type Candidate struct {
	Window    string
	Canonical string
	Score     float64
	Accepted  bool
	Reason    string // set when Accepted is false: "exclusion", "keyword_required", or "tolerance" (outscored by another candidate for the same window)
}

// Dump pretty-prints a slice of Candidates for a single Correct call, one
// colored line per candidate plus a structured dump of the accepted set via
// pp. Accepted candidates print green, rejected ones yellow with their
// rejection reason.
func Dump(traceID string, candidates []Candidate) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", color.Cyan.Sprintf("phonofix evaluation trace %s", traceID))

	var accepted []Candidate
	for _, c := range candidates {
		if c.Accepted {
			accepted = append(accepted, c)
			b.WriteString(color.Green.Sprintf("  accept %-20s -> %-20s score=%.3f\n", c.Window, c.Canonical, c.Score))
			continue
		}
		b.WriteString(color.Yellow.Sprintf("  reject %-20s -> %-20s score=%.3f (%s)\n", c.Window, c.Canonical, c.Score, c.Reason))
	}

	b.WriteString(pp.Sprint(accepted))
	return b.String()
}
