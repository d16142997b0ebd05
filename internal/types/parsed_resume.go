package types

import (
	"encoding/json"
	"strings"
)

// SalaryRange is the object form of an expected salary in parser output.
type SalaryRange struct {
	Min *int `json:"min,omitempty"`
	Max *int `json:"max,omitempty"`
}

// ParsedSkill is a skill entry in parser output. Parsers emit either bare
// strings or objects keyed "name" (sometimes "skill") with optional
// proficiency and category.
type ParsedSkill struct {
	Name        string `json:"name"`
	Proficiency string `json:"proficiency,omitempty"`
	Category    string `json:"category,omitempty"`
}

// UnmarshalJSON accepts "Python" or {"name": "Python", ...} or {"skill": "Python", ...}.
func (s *ParsedSkill) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, `"`) {
		return json.Unmarshal(data, &s.Name)
	}

	var obj struct {
		Name        string `json:"name"`
		Skill       string `json:"skill"`
		Proficiency string `json:"proficiency"`
		Category    string `json:"category"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	s.Name = obj.Name
	if s.Name == "" {
		s.Name = obj.Skill
	}
	s.Proficiency = obj.Proficiency
	s.Category = obj.Category
	return nil
}

// ParsedResume is the untrusted, loosely shaped output of the resume parsing
// service. Every field is optional, and several carry aliases (job_titles vs
// job_title, expected_salary_range vs salary_min/salary_max); the accessor
// methods centralize the first-non-empty resolution so callers never touch
// the raw aliases.
type ParsedResume struct {
	JobTitles           []string         `json:"job_titles,omitempty"`
	JobTitle            string           `json:"job_title,omitempty"`
	SuitedRoles         []SuitedRole     `json:"suited_roles,omitempty"`
	ExpectedSalaryRange *SalaryRange     `json:"expected_salary_range,omitempty"`
	SalaryMin           *int             `json:"salary_min,omitempty"`
	SalaryMax           *int             `json:"salary_max,omitempty"`
	Skills              []string         `json:"skills,omitempty"`
	SkillsDetailed      []ParsedSkill    `json:"skills_detailed,omitempty"`
	Projects            []Project        `json:"projects,omitempty"`
	Location            string           `json:"location,omitempty"`
	Phone               string           `json:"phone,omitempty"`
	Summary             string           `json:"summary,omitempty"`
	Education           []map[string]any `json:"education,omitempty"`
	Experiences         []map[string]any `json:"experiences,omitempty"`
}

// PrimaryJobTitle returns the first entry of job_titles, else job_title.
func (r *ParsedResume) PrimaryJobTitle() string {
	for _, t := range r.JobTitles {
		if t = strings.TrimSpace(t); t != "" {
			return t
		}
	}
	return strings.TrimSpace(r.JobTitle)
}

// ProposedSalaryMin resolves expected_salary_range.min, else salary_min.
func (r *ParsedResume) ProposedSalaryMin() *int {
	if r.ExpectedSalaryRange != nil && r.ExpectedSalaryRange.Min != nil {
		return r.ExpectedSalaryRange.Min
	}
	return r.SalaryMin
}

// ProposedSalaryMax resolves expected_salary_range.max, else salary_max.
func (r *ParsedResume) ProposedSalaryMax() *int {
	if r.ExpectedSalaryRange != nil && r.ExpectedSalaryRange.Max != nil {
		return r.ExpectedSalaryRange.Max
	}
	return r.SalaryMax
}

// ProposedSkills resolves skills_detailed, else plain skills, normalized to
// Skill values with trimmed names and empty entries dropped. IDs are left
// unset; the merge assigns synthetic ones.
func (r *ParsedResume) ProposedSkills() []Skill {
	if len(r.SkillsDetailed) > 0 {
		skills := make([]Skill, 0, len(r.SkillsDetailed))
		for _, s := range r.SkillsDetailed {
			name := strings.TrimSpace(s.Name)
			if name == "" {
				continue
			}
			skills = append(skills, Skill{
				Name:        name,
				Proficiency: s.Proficiency,
				Category:    s.Category,
			})
		}
		return skills
	}

	skills := make([]Skill, 0, len(r.Skills))
	for _, name := range r.Skills {
		if name = strings.TrimSpace(name); name != "" {
			skills = append(skills, Skill{Name: name})
		}
	}
	return skills
}

// ProposedSkillNames returns the proposed skill names in parser order.
func (r *ParsedResume) ProposedSkillNames() []string {
	skills := r.ProposedSkills()
	names := make([]string, 0, len(skills))
	for _, s := range skills {
		names = append(names, s.Name)
	}
	return names
}

// SuitedRolesAbove returns the suited roles whose match percent is absent or
// at least minMatch, as names.
func (r *ParsedResume) SuitedRolesAbove(minMatch float64) []string {
	return RoleNamesAbove(r.SuitedRoles, minMatch)
}

// RoleNamesAbove filters a detailed role list to entries without a score or
// scoring at least minMatch, returning trimmed names. Blank entries are
// dropped.
func RoleNamesAbove(roles []SuitedRole, minMatch float64) []string {
	names := make([]string, 0, len(roles))
	for _, sr := range roles {
		role := strings.TrimSpace(sr.Role)
		if role == "" {
			continue
		}
		if sr.MatchPercent == nil || *sr.MatchPercent >= minMatch {
			names = append(names, role)
		}
	}
	return names
}
