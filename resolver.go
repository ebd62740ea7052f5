package phonofix

import "sort"

// resolveConflicts implements spec.md §4.5 step 6: sort every candidate
// match by ascending final_score (lower score wins — it is an error ratio
// net of weight and context bonus, so smaller is a tighter match), then
// greedily accept matches whose [Start,End) span is disjoint from every
// already-accepted span. Ties break by smaller Start, then smaller End, so
// resolution is deterministic across runs with identical input.
func resolveConflicts(matches []Match) []Match {
	sort.SliceStable(matches, func(i, j int) bool {
		a, b := matches[i], matches[j]
		if a.Score != b.Score {
			return a.Score < b.Score
		}
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		return a.End < b.End
	})

	var accepted []Match
	for _, m := range matches {
		conflict := false
		for _, a := range accepted {
			if m.Start < a.End && a.Start < m.End {
				conflict = true
				break
			}
		}
		if !conflict {
			accepted = append(accepted, m)
		}
	}
	return accepted
}

// overlapsProtection reports whether [start,end) intersects any protection
// interval, so the sliding-window scan can skip it outright.
func overlapsProtection(start, end int, protection []ProtectionInterval) bool {
	for _, p := range protection {
		if start < p.End && p.Start < end {
			return true
		}
	}
	return false
}

// rewrite applies accepted matches to text right-to-left (spec.md §4.5 step
// 7), so that earlier byte offsets stay valid as later-positioned
// replacements are substituted first.
func rewrite(text string, accepted []Match) string {
	if len(accepted) == 0 {
		return text
	}
	ordered := make([]Match, len(accepted))
	copy(ordered, accepted)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Start > ordered[j].Start })

	out := text
	for _, m := range ordered {
		out = out[:m.Start] + m.Canonical + out[m.End:]
	}
	return out
}
