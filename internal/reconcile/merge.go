package reconcile

import (
	"fmt"
	"strings"
	"time"

	"github.com/jonathan/career-platform/internal/types"
)

// Defaults applied to skills that arrive without detail.
const (
	DefaultProficiency = "intermediate"
	DefaultCategory    = "Other"
)

// idGenerator hands out synthetic ids derived from the current timestamp plus
// a running offset, so ids minted within one merge never collide.
type idGenerator struct {
	base   int64
	offset int64
}

func newIDGenerator() *idGenerator {
	return &idGenerator{base: time.Now().UnixMilli()}
}

func (g *idGenerator) next(prefix string) string {
	id := fmt.Sprintf("%s-%d", prefix, g.base+g.offset)
	g.offset++
	return id
}

// MergeSkills merges proposed skills into the current list without ever
// dropping or overwriting an existing skill. Entries are keyed by lowercased
// trimmed name; current skills keep their ids and details (with defaults
// filled in), and proposed skills whose name is new are appended with a
// fresh synthetic id. The merge is idempotent.
func MergeSkills(current, proposed []types.Skill) []types.Skill {
	gen := newIDGenerator()
	merged := make([]types.Skill, 0, len(current)+len(proposed))
	index := make(map[string]struct{}, len(current))

	for _, s := range current {
		name := strings.TrimSpace(s.Name)
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if _, dup := index[key]; dup {
			continue
		}
		index[key] = struct{}{}

		kept := s
		kept.Name = name
		if kept.Proficiency == "" {
			kept.Proficiency = DefaultProficiency
		}
		if kept.Category == "" {
			kept.Category = DefaultCategory
		}
		if kept.ID == "" {
			kept.ID = gen.next("skill")
		}
		merged = append(merged, kept)
	}

	for _, s := range proposed {
		name := strings.TrimSpace(s.Name)
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if _, exists := index[key]; exists {
			continue
		}
		index[key] = struct{}{}

		added := types.Skill{
			ID:          gen.next("skill"),
			Name:        name,
			Proficiency: s.Proficiency,
			Category:    s.Category,
		}
		if added.Proficiency == "" {
			added.Proficiency = DefaultProficiency
		}
		if added.Category == "" {
			added.Category = DefaultCategory
		}
		merged = append(merged, added)
	}

	return merged
}

// MergeProjects merges proposed projects into the current list keyed by
// lowercased trimmed title. Existing projects are never dropped or
// overwritten; new titles are appended with a fresh synthetic id.
func MergeProjects(current, proposed []types.Project) []types.Project {
	gen := newIDGenerator()
	merged := make([]types.Project, 0, len(current)+len(proposed))
	index := make(map[string]struct{}, len(current))

	for _, p := range current {
		title := strings.TrimSpace(p.Title)
		if title == "" {
			continue
		}
		key := strings.ToLower(title)
		if _, dup := index[key]; dup {
			continue
		}
		index[key] = struct{}{}

		kept := p
		kept.Title = title
		if kept.ID == "" {
			kept.ID = gen.next("project")
		}
		merged = append(merged, kept)
	}

	for _, p := range proposed {
		title := strings.TrimSpace(p.Title)
		if title == "" {
			continue
		}
		key := strings.ToLower(title)
		if _, exists := index[key]; exists {
			continue
		}
		index[key] = struct{}{}

		added := p
		added.Title = title
		added.ID = gen.next("project")
		merged = append(merged, added)
	}

	return merged
}
