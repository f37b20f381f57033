package registry

import (
	"sort"

	"github.com/agnivade/levenshtein"
)

// suggestCutoff is the maximum edit distance for a suggestion to be offered.
const suggestCutoff = 3

// Suggest returns up to max canonical ids nearest to name by edit distance,
// ties broken by lexical order. Used only for diagnostic messages; it never
// silently resolves anything.
func (r *Registry) Suggest(name string, max int) []string {
	ids := make([]string, 0, len(r.defs))
	seen := make(map[string]bool, len(r.defs))
	for _, def := range r.defs {
		if !seen[def.ID] {
			seen[def.ID] = true
			ids = append(ids, def.ID)
		}
	}
	return Nearest(ids, name, max)
}

// Nearest ranks candidates by edit distance from name, closest first, ties
// broken lexically, dropping anything beyond the suggestion cutoff. Shared
// by name suggestions and parameter-name suggestions.
func Nearest(candidates []string, name string, max int) []string {
	type ranked struct {
		name string
		dist int
	}
	scored := make([]ranked, 0, len(candidates))
	for _, c := range candidates {
		d := levenshtein.ComputeDistance(name, c)
		if d <= suggestCutoff {
			scored = append(scored, ranked{name: c, dist: d})
		}
	}
	sort.Slice(scored, func(i, j int) bool {
		if scored[i].dist != scored[j].dist {
			return scored[i].dist < scored[j].dist
		}
		return scored[i].name < scored[j].name
	})
	if max > 0 && len(scored) > max {
		scored = scored[:max]
	}
	out := make([]string, 0, len(scored))
	for _, s := range scored {
		out = append(out, s.name)
	}
	return out
}
