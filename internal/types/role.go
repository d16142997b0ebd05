package types

// Role identifies the platform persona a user signs in as. It governs which
// navigation menu, profile route, and reconciliation field set the user gets.
type Role string

const (
	RoleJobSeeker     Role = "job_seeker"
	RoleRecruiter     Role = "recruiter"
	RoleEmployer      Role = "employer"
	RoleCompany       Role = "company"
	RoleAdministrator Role = "administrator"
)

// NormalizeRole maps a raw role string to its canonical value. The legacy
// spelling "jobseeker" is folded into "job_seeker"; anything unrecognized is
// passed through unchanged so callers can decide how to degrade.
func NormalizeRole(raw string) Role {
	if raw == "jobseeker" {
		return RoleJobSeeker
	}
	return Role(raw)
}

// Valid reports whether the role is one of the five platform personas.
func (r Role) Valid() bool {
	switch r {
	case RoleJobSeeker, RoleRecruiter, RoleEmployer, RoleCompany, RoleAdministrator:
		return true
	}
	return false
}
