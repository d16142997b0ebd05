package types

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Skill is a single profile skill. IDs are either database-assigned or
// synthetic (timestamp-derived) for skills merged in from a parsed resume.
type Skill struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name"`
	Proficiency string `json:"proficiency,omitempty"`
	Category    string `json:"category,omitempty"`
}

// Project is a portfolio project entry. Reconciliation keys projects by title.
type Project struct {
	ID           string   `json:"id,omitempty"`
	Title        string   `json:"title"`
	Description  string   `json:"description,omitempty"`
	URL          string   `json:"url,omitempty"`
	Technologies []string `json:"technologies,omitempty"`
}

// SuitedRole is a role recommendation with an optional match score. Resume
// parsers emit these either as bare strings or as {role, match_percent}
// objects, so unmarshalling accepts both shapes.
type SuitedRole struct {
	Role         string   `json:"role"`
	MatchPercent *float64 `json:"match_percent,omitempty"`
}

// UnmarshalJSON accepts either "Backend Engineer" or
// {"role": "Backend Engineer", "match_percent": 90}.
func (s *SuitedRole) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, `"`) {
		return json.Unmarshal(data, &s.Role)
	}

	type plain SuitedRole
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*s = SuitedRole(p)
	return nil
}

// ProfileDetails is the nested legacy profile object some stored profiles
// still carry. It only matters as the tail of the reconciliation fallback
// chains; new writes never populate it.
type ProfileDetails struct {
	SuitedJobRoles         []string     `json:"suited_job_roles,omitempty"`
	SuitedJobRolesDetailed []SuitedRole `json:"suited_job_roles_detailed,omitempty"`
	Skills                 []Skill      `json:"skills,omitempty"`
}

// Profile is the stored user profile. Field names mirror the API payloads the
// front-end exchanges, which mix camelCase and snake_case historically.
// Education and experience entries are opaque documents; the service compares
// and replaces them wholesale without interpreting their keys.
type Profile struct {
	UserID              uuid.UUID        `json:"user_id"`
	JobTitle            string           `json:"jobTitle,omitempty"`
	DesiredRoles        []string         `json:"desiredRoles,omitempty"`
	SuitedRoles         []string         `json:"suitedRoles,omitempty"`
	SuitedRolesDetailed []SuitedRole     `json:"suitedRolesDetailed,omitempty"`
	SalaryMin           *int             `json:"salary_min,omitempty"`
	SalaryMax           *int             `json:"salary_max,omitempty"`
	Skills              []Skill          `json:"skills,omitempty"`
	Projects            []Project        `json:"projects,omitempty"`
	Location            string           `json:"location,omitempty"`
	Phone               string           `json:"phone,omitempty"`
	Bio                 string           `json:"bio,omitempty"`
	Education           []map[string]any `json:"education,omitempty"`
	Experiences         []map[string]any `json:"experiences,omitempty"`
	ResumeURL           string           `json:"resume_url,omitempty"`
	ResumeKey           string           `json:"-"`
	Details             *ProfileDetails  `json:"profile,omitempty"`
	CreatedAt           time.Time        `json:"created_at"`
	UpdatedAt           time.Time        `json:"updated_at"`
}

// CurrentRoles resolves the stored role list through the prioritized fallback
// chain: desiredRoles, then suitedRoles, then suitedRolesDetailed, then the
// nested legacy equivalents.
func (p *Profile) CurrentRoles() []string {
	if len(p.DesiredRoles) > 0 {
		return p.DesiredRoles
	}
	if len(p.SuitedRoles) > 0 {
		return p.SuitedRoles
	}
	if len(p.SuitedRolesDetailed) > 0 {
		return roleNames(p.SuitedRolesDetailed)
	}
	if p.Details != nil {
		if len(p.Details.SuitedJobRolesDetailed) > 0 {
			return roleNames(p.Details.SuitedJobRolesDetailed)
		}
		if len(p.Details.SuitedJobRoles) > 0 {
			return p.Details.SuitedJobRoles
		}
	}
	return nil
}

// CurrentSuitedRolesDetailed resolves the stored detailed role list, falling
// back to the nested legacy object when the top-level list is absent. A
// legacy profile carrying only the plain nested name list still resolves:
// the names are lifted into unscored SuitedRole entries as the last step.
func (p *Profile) CurrentSuitedRolesDetailed() []SuitedRole {
	if len(p.SuitedRolesDetailed) > 0 {
		return p.SuitedRolesDetailed
	}
	if p.Details != nil {
		if len(p.Details.SuitedJobRolesDetailed) > 0 {
			return p.Details.SuitedJobRolesDetailed
		}
		if len(p.Details.SuitedJobRoles) > 0 {
			roles := make([]SuitedRole, 0, len(p.Details.SuitedJobRoles))
			for _, name := range p.Details.SuitedJobRoles {
				roles = append(roles, SuitedRole{Role: name})
			}
			return roles
		}
	}
	return nil
}

// CurrentSkills resolves the stored skill list, falling back to the nested
// legacy object.
func (p *Profile) CurrentSkills() []Skill {
	if len(p.Skills) > 0 {
		return p.Skills
	}
	if p.Details != nil && len(p.Details.Skills) > 0 {
		return p.Details.Skills
	}
	return nil
}

// CurrentSkillNames returns the stored skill names in stored order.
func (p *Profile) CurrentSkillNames() []string {
	skills := p.CurrentSkills()
	names := make([]string, 0, len(skills))
	for _, s := range skills {
		names = append(names, s.Name)
	}
	return names
}

func roleNames(roles []SuitedRole) []string {
	names := make([]string, 0, len(roles))
	for _, r := range roles {
		names = append(names, r.Role)
	}
	return names
}

// ProfilePatch is a merge patch over Profile: only non-nil (for scalars) and
// non-empty (for lists) fields are applied. A save operation builds one from
// user-approved differences only.
type ProfilePatch struct {
	JobTitle            *string          `json:"jobTitle,omitempty"`
	DesiredRoles        []string         `json:"desiredRoles,omitempty"`
	SuitedRolesDetailed []SuitedRole     `json:"suitedRolesDetailed,omitempty"`
	SalaryMin           *int             `json:"salary_min,omitempty"`
	SalaryMax           *int             `json:"salary_max,omitempty"`
	Skills              []Skill          `json:"skills,omitempty"`
	Projects            []Project        `json:"projects,omitempty"`
	Location            *string          `json:"location,omitempty"`
	Phone               *string          `json:"phone,omitempty"`
	Bio                 *string          `json:"bio,omitempty"`
	Education           []map[string]any `json:"education,omitempty"`
	Experiences         []map[string]any `json:"experiences,omitempty"`
}

// IsEmpty reports whether the patch would change nothing.
func (p *ProfilePatch) IsEmpty() bool {
	return p.JobTitle == nil &&
		len(p.DesiredRoles) == 0 &&
		len(p.SuitedRolesDetailed) == 0 &&
		p.SalaryMin == nil &&
		p.SalaryMax == nil &&
		len(p.Skills) == 0 &&
		len(p.Projects) == 0 &&
		p.Location == nil &&
		p.Phone == nil &&
		p.Bio == nil &&
		len(p.Education) == 0 &&
		len(p.Experiences) == 0
}

// ApplyTo overwrites the profile's fields with the patch's set fields. List
// fields in the patch are already fully merged, so application is a plain
// replace.
func (p *ProfilePatch) ApplyTo(profile *Profile) {
	if p.JobTitle != nil {
		profile.JobTitle = *p.JobTitle
	}
	if len(p.DesiredRoles) > 0 {
		profile.DesiredRoles = p.DesiredRoles
	}
	if len(p.SuitedRolesDetailed) > 0 {
		profile.SuitedRolesDetailed = p.SuitedRolesDetailed
	}
	if p.SalaryMin != nil {
		profile.SalaryMin = p.SalaryMin
	}
	if p.SalaryMax != nil {
		profile.SalaryMax = p.SalaryMax
	}
	if len(p.Skills) > 0 {
		profile.Skills = p.Skills
	}
	if len(p.Projects) > 0 {
		profile.Projects = p.Projects
	}
	if p.Location != nil {
		profile.Location = *p.Location
	}
	if p.Phone != nil {
		profile.Phone = *p.Phone
	}
	if p.Bio != nil {
		profile.Bio = *p.Bio
	}
	if len(p.Education) > 0 {
		profile.Education = p.Education
	}
	if len(p.Experiences) > 0 {
		profile.Experiences = p.Experiences
	}
}
