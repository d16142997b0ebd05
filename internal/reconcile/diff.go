// Package reconcile computes the difference between a freshly parsed resume
// and a stored profile, and builds the user-approved merge patch between the
// two. The engine is a field-spec table; the job-seeker and recruiter
// variants configure which fields participate rather than duplicating logic.
package reconcile

// Diff is the set comparison between a stored list and a proposed list.
// Added, Removed, and Unchanged partition the union of the two inputs
// (after de-duplication), with first-occurrence order preserved.
type Diff struct {
	Added     []string `json:"added"`
	Removed   []string `json:"removed"`
	Unchanged []string `json:"unchanged"`
}

// Changed reports whether applying the proposal would alter the stored list.
func (d Diff) Changed() bool {
	return len(d.Added) > 0 || len(d.Removed) > 0
}

// DiffStrings computes added = proposed − current, removed = current −
// proposed, unchanged = current ∩ proposed. Comparison is exact string match.
func DiffStrings(current, proposed []string) Diff {
	currentSet := toSet(current)
	proposedSet := toSet(proposed)

	d := Diff{
		Added:     []string{},
		Removed:   []string{},
		Unchanged: []string{},
	}

	for _, v := range dedupe(proposed) {
		if _, stored := currentSet[v]; !stored {
			d.Added = append(d.Added, v)
		}
	}
	for _, v := range dedupe(current) {
		if _, kept := proposedSet[v]; kept {
			d.Unchanged = append(d.Unchanged, v)
		} else {
			d.Removed = append(d.Removed, v)
		}
	}

	return d
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

func dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func equalOrdered(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
