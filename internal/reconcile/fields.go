package reconcile

import (
	"encoding/json"
	"strings"

	"github.com/jonathan/career-platform/internal/types"
)

// Field keys mirror the profile payload names the client exchanges.
type Field string

const (
	FieldJobTitle     Field = "jobTitle"
	FieldDesiredRoles Field = "desiredRoles"
	FieldSalaryMin    Field = "salary_min"
	FieldSalaryMax    Field = "salary_max"
	FieldSkills       Field = "skills"
	FieldProjects     Field = "projects"
	FieldLocation     Field = "location"
	FieldPhone        Field = "phone"
	FieldBio          Field = "bio"
	FieldEducation    Field = "education"
	FieldExperiences  Field = "experiences"
)

// RoleMatchThreshold is the minimum match percent for a suited role to make
// the proposed shortlist. Roles without a score always qualify.
const RoleMatchThreshold = 70

// FieldSpec describes one reconcilable field: whether the parsed resume
// carries a usable value, whether that value differs from the stored one,
// the displayed set diff for list fields, and how the value lands in a
// merge patch.
type FieldSpec struct {
	Key         Field
	HasProposed func(r *types.ParsedResume, p *types.Profile) bool
	Differs     func(r *types.ParsedResume, p *types.Profile) bool
	ListDiff    func(r *types.ParsedResume, p *types.Profile) Diff
	Apply       func(patch *types.ProfilePatch, r *types.ParsedResume, p *types.Profile)
}

// stringField builds the spec for a plain string field: strict comparison,
// missing current defaults to "".
func stringField(key Field, proposed func(*types.ParsedResume) string, current func(*types.Profile) string, assign func(*types.ProfilePatch, *string)) FieldSpec {
	return FieldSpec{
		Key: key,
		HasProposed: func(r *types.ParsedResume, _ *types.Profile) bool {
			return proposed(r) != ""
		},
		Differs: func(r *types.ParsedResume, p *types.Profile) bool {
			return proposed(r) != current(p)
		},
		Apply: func(patch *types.ProfilePatch, r *types.ParsedResume, _ *types.Profile) {
			v := proposed(r)
			assign(patch, &v)
		},
	}
}

// intField builds the spec for a numeric field such as a salary bound.
func intField(key Field, proposed func(*types.ParsedResume) *int, current func(*types.Profile) *int, assign func(*types.ProfilePatch, *int)) FieldSpec {
	return FieldSpec{
		Key: key,
		HasProposed: func(r *types.ParsedResume, _ *types.Profile) bool {
			return proposed(r) != nil
		},
		Differs: func(r *types.ParsedResume, p *types.Profile) bool {
			prop, cur := proposed(r), current(p)
			if prop == nil {
				return false
			}
			return cur == nil || *cur != *prop
		},
		Apply: func(patch *types.ProfilePatch, r *types.ParsedResume, _ *types.Profile) {
			assign(patch, proposed(r))
		},
	}
}

// opaqueField builds the spec for education/experience arrays: JSON
// serialization equality, full replace on apply.
func opaqueField(key Field, proposed func(*types.ParsedResume) []map[string]any, current func(*types.Profile) []map[string]any, assign func(*types.ProfilePatch, []map[string]any)) FieldSpec {
	return FieldSpec{
		Key: key,
		HasProposed: func(r *types.ParsedResume, _ *types.Profile) bool {
			return len(proposed(r)) > 0
		},
		Differs: func(r *types.ParsedResume, p *types.Profile) bool {
			return !jsonEqual(proposed(r), current(p))
		},
		Apply: func(patch *types.ProfilePatch, r *types.ParsedResume, _ *types.Profile) {
			assign(patch, proposed(r))
		},
	}
}

// jsonEqual compares two opaque documents by canonical JSON serialization.
// Go maps marshal with sorted keys, so the comparison is deterministic.
func jsonEqual(a, b any) bool {
	aj, errA := json.Marshal(a)
	bj, errB := json.Marshal(b)
	if errA != nil || errB != nil {
		return false
	}
	return string(aj) == string(bj)
}

// proposedSuitedRoles resolves the detailed role proposal: parsed
// suited_roles when present, else the profile's own detailed list (so a
// resume without role scores still surfaces the stored recommendation).
func proposedSuitedRoles(r *types.ParsedResume, p *types.Profile) []types.SuitedRole {
	if len(r.SuitedRoles) > 0 {
		return r.SuitedRoles
	}
	return p.CurrentSuitedRolesDetailed()
}

// proposedRoleNames is the human-facing shortlist: detailed proposal filtered
// to entries without a score or scoring at least RoleMatchThreshold.
func proposedRoleNames(r *types.ParsedResume, p *types.Profile) []string {
	return types.RoleNamesAbove(proposedSuitedRoles(r, p), RoleMatchThreshold)
}

func projectTitles(projects []types.Project) []string {
	titles := make([]string, 0, len(projects))
	for _, p := range projects {
		if t := strings.TrimSpace(p.Title); t != "" {
			titles = append(titles, t)
		}
	}
	return titles
}

func trimmedNames(names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			out = append(out, n)
		}
	}
	return out
}

var rolesField = FieldSpec{
	Key: FieldDesiredRoles,
	HasProposed: func(r *types.ParsedResume, p *types.Profile) bool {
		return len(proposedRoleNames(r, p)) > 0
	},
	Differs: func(r *types.ParsedResume, p *types.Profile) bool {
		return DiffStrings(p.CurrentRoles(), proposedRoleNames(r, p)).Changed()
	},
	ListDiff: func(r *types.ParsedResume, p *types.Profile) Diff {
		return DiffStrings(p.CurrentRoles(), proposedRoleNames(r, p))
	},
	// The patch carries both the full detailed list and the filtered
	// shortlist: detail is preserved while the human-facing list stays
	// restricted to strong matches.
	Apply: func(patch *types.ProfilePatch, r *types.ParsedResume, p *types.Profile) {
		detailed := proposedSuitedRoles(r, p)
		normalized := make([]types.SuitedRole, 0, len(detailed))
		for _, sr := range detailed {
			role := strings.TrimSpace(sr.Role)
			if role == "" {
				continue
			}
			normalized = append(normalized, types.SuitedRole{Role: role, MatchPercent: sr.MatchPercent})
		}
		patch.SuitedRolesDetailed = normalized
		patch.DesiredRoles = proposedRoleNames(r, p)
	},
}

var skillsField = FieldSpec{
	Key: FieldSkills,
	HasProposed: func(r *types.ParsedResume, _ *types.Profile) bool {
		return len(r.ProposedSkills()) > 0
	},
	// The default checkbox state uses the exact-order comparison; the
	// displayed diff below uses set algebra. Both are part of the contract.
	Differs: func(r *types.ParsedResume, p *types.Profile) bool {
		return !equalOrdered(r.ProposedSkillNames(), trimmedNames(p.CurrentSkillNames()))
	},
	ListDiff: func(r *types.ParsedResume, p *types.Profile) Diff {
		return DiffStrings(trimmedNames(p.CurrentSkillNames()), r.ProposedSkillNames())
	},
	Apply: func(patch *types.ProfilePatch, r *types.ParsedResume, p *types.Profile) {
		patch.Skills = MergeSkills(p.CurrentSkills(), r.ProposedSkills())
	},
}

var projectsField = FieldSpec{
	Key: FieldProjects,
	HasProposed: func(r *types.ParsedResume, _ *types.Profile) bool {
		return len(projectTitles(r.Projects)) > 0
	},
	Differs: func(r *types.ParsedResume, p *types.Profile) bool {
		return DiffStrings(projectTitles(p.Projects), projectTitles(r.Projects)).Changed()
	},
	ListDiff: func(r *types.ParsedResume, p *types.Profile) Diff {
		return DiffStrings(projectTitles(p.Projects), projectTitles(r.Projects))
	},
	Apply: func(patch *types.ProfilePatch, r *types.ParsedResume, p *types.Profile) {
		patch.Projects = MergeProjects(p.Projects, r.Projects)
	},
}

// baseFields is the field set shared by both reconciler variants.
func baseFields() []FieldSpec {
	return []FieldSpec{
		stringField(FieldJobTitle,
			func(r *types.ParsedResume) string { return r.PrimaryJobTitle() },
			func(p *types.Profile) string { return p.JobTitle },
			func(patch *types.ProfilePatch, v *string) { patch.JobTitle = v },
		),
		rolesField,
		intField(FieldSalaryMin,
			func(r *types.ParsedResume) *int { return r.ProposedSalaryMin() },
			func(p *types.Profile) *int { return p.SalaryMin },
			func(patch *types.ProfilePatch, v *int) { patch.SalaryMin = v },
		),
		intField(FieldSalaryMax,
			func(r *types.ParsedResume) *int { return r.ProposedSalaryMax() },
			func(p *types.Profile) *int { return p.SalaryMax },
			func(patch *types.ProfilePatch, v *int) { patch.SalaryMax = v },
		),
		skillsField,
		projectsField,
		stringField(FieldLocation,
			func(r *types.ParsedResume) string { return strings.TrimSpace(r.Location) },
			func(p *types.Profile) string { return p.Location },
			func(patch *types.ProfilePatch, v *string) { patch.Location = v },
		),
		stringField(FieldPhone,
			func(r *types.ParsedResume) string { return strings.TrimSpace(r.Phone) },
			func(p *types.Profile) string { return p.Phone },
			func(patch *types.ProfilePatch, v *string) { patch.Phone = v },
		),
		stringField(FieldBio,
			func(r *types.ParsedResume) string { return strings.TrimSpace(r.Summary) },
			func(p *types.Profile) string { return p.Bio },
			func(patch *types.ProfilePatch, v *string) { patch.Bio = v },
		),
	}
}

// recruiterFields extends the base set with the opaque history arrays.
func recruiterFields() []FieldSpec {
	return append(baseFields(),
		opaqueField(FieldEducation,
			func(r *types.ParsedResume) []map[string]any { return r.Education },
			func(p *types.Profile) []map[string]any { return p.Education },
			func(patch *types.ProfilePatch, v []map[string]any) { patch.Education = v },
		),
		opaqueField(FieldExperiences,
			func(r *types.ParsedResume) []map[string]any { return r.Experiences },
			func(p *types.Profile) []map[string]any { return p.Experiences },
			func(patch *types.ProfilePatch, v []map[string]any) { patch.Experiences = v },
		),
	)
}
