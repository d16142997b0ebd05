package reconcile

import (
	"strings"
	"testing"

	"github.com/jonathan/career-platform/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func skillNames(skills []types.Skill) []string {
	names := make([]string, 0, len(skills))
	for _, s := range skills {
		names = append(names, s.Name)
	}
	return names
}

func TestMergeSkills_KeepsExistingAppendsNew(t *testing.T) {
	current := []types.Skill{
		{ID: "db-1", Name: "Python", Proficiency: "advanced", Category: "Languages"},
	}
	proposed := []types.Skill{
		{Name: "python"},
		{Name: " React "},
	}

	merged := MergeSkills(current, proposed)

	require.Len(t, merged, 2)
	assert.Equal(t, []string{"Python", "React"}, skillNames(merged))

	// The existing Python entry survives untouched.
	assert.Equal(t, "db-1", merged[0].ID)
	assert.Equal(t, "advanced", merged[0].Proficiency)
	assert.Equal(t, "Languages", merged[0].Category)

	// The new entry gets defaults and a synthetic id.
	assert.NotEmpty(t, merged[1].ID)
	assert.Equal(t, DefaultProficiency, merged[1].Proficiency)
	assert.Equal(t, DefaultCategory, merged[1].Category)
}

func TestMergeSkills_Idempotent(t *testing.T) {
	current := []types.Skill{
		{ID: "db-1", Name: "Go"},
		{ID: "db-2", Name: "PostgreSQL", Proficiency: "expert"},
	}
	proposed := []types.Skill{{Name: "Go"}, {Name: "Kafka"}}

	once := MergeSkills(current, proposed)
	twice := MergeSkills(once, proposed)

	assert.Equal(t, skillNames(once), skillNames(twice), "re-applying the same proposal must not add duplicates")
	assert.Len(t, twice, 3)
}

func TestMergeSkills_NeverDropsCurrent(t *testing.T) {
	tests := []struct {
		name     string
		current  []types.Skill
		proposed []types.Skill
	}{
		{"empty proposal", []types.Skill{{Name: "Go"}, {Name: "Rust"}}, nil},
		{"overlapping proposal", []types.Skill{{Name: "Go"}}, []types.Skill{{Name: "GO"}, {Name: "Rust"}}},
		{"disjoint proposal", []types.Skill{{Name: "Go"}}, []types.Skill{{Name: "Terraform"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			merged := MergeSkills(tt.current, tt.proposed)

			kept := make(map[string]bool, len(merged))
			for _, s := range merged {
				kept[strings.ToLower(s.Name)] = true
			}
			for _, s := range tt.current {
				assert.True(t, kept[strings.ToLower(strings.TrimSpace(s.Name))],
					"current skill %q must survive the merge", s.Name)
			}
		})
	}
}

func TestMergeSkills_SyntheticIDsUnique(t *testing.T) {
	proposed := []types.Skill{{Name: "A"}, {Name: "B"}, {Name: "C"}, {Name: "D"}}

	merged := MergeSkills(nil, proposed)

	ids := make(map[string]bool)
	for _, s := range merged {
		require.NotEmpty(t, s.ID)
		assert.False(t, ids[s.ID], "synthetic ids must not collide within a merge")
		ids[s.ID] = true
	}
}

func TestMergeSkills_FillsDefaultsOnCurrent(t *testing.T) {
	current := []types.Skill{{Name: "Go"}}

	merged := MergeSkills(current, nil)

	require.Len(t, merged, 1)
	assert.Equal(t, DefaultProficiency, merged[0].Proficiency)
	assert.Equal(t, DefaultCategory, merged[0].Category)
	assert.NotEmpty(t, merged[0].ID)
}

func TestMergeProjects(t *testing.T) {
	current := []types.Project{
		{ID: "p-1", Title: "Chat Server", Description: "original description"},
	}
	proposed := []types.Project{
		{Title: "chat server", Description: "parsed duplicate, must not overwrite"},
		{Title: "Resume Parser", Description: "new project"},
	}

	merged := MergeProjects(current, proposed)

	require.Len(t, merged, 2)
	assert.Equal(t, "Chat Server", merged[0].Title)
	assert.Equal(t, "original description", merged[0].Description)
	assert.Equal(t, "p-1", merged[0].ID)

	assert.Equal(t, "Resume Parser", merged[1].Title)
	assert.NotEmpty(t, merged[1].ID)
}

func TestMergeProjects_SkipsBlankTitles(t *testing.T) {
	merged := MergeProjects(
		[]types.Project{{Title: "  "}},
		[]types.Project{{Title: ""}, {Title: "Real"}},
	)

	require.Len(t, merged, 1)
	assert.Equal(t, "Real", merged[0].Title)
}
