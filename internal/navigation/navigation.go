// Package navigation resolves role-based navigation menus and the access
// checks built on top of them. Resolution is pure: static tables plus the
// role argument, with unknown roles degrading to the job-seeker menu.
package navigation

import (
	"github.com/jonathan/career-platform/internal/types"
)

// Item is a single navigation entry rendered as a router link by the client.
type Item struct {
	Label       string `json:"label"`
	Path        string `json:"path"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
}

// Config is the structured menu for one role: primary destinations,
// secondary resources, and the profile dropdown.
type Config struct {
	Main      []Item `json:"main"`
	Resources []Item `json:"resources"`
	Profile   []Item `json:"profile"`
}

// Permission levels, highest first. Unknown roles have no level and fail
// every permission check.
const (
	LevelJobSeeker     = 1
	LevelRecruiter     = 2
	LevelEmployer      = 3
	LevelCompany       = 4
	LevelAdministrator = 5
)

var permissionLevels = map[types.Role]int{
	types.RoleJobSeeker:     LevelJobSeeker,
	types.RoleRecruiter:     LevelRecruiter,
	types.RoleEmployer:      LevelEmployer,
	types.RoleCompany:       LevelCompany,
	types.RoleAdministrator: LevelAdministrator,
}

// profileRoutes maps each role to the path of its profile-management page.
// The resolved config's profile list gets this path spliced into the entry
// whose icon marks it as the profile link.
var profileRoutes = map[types.Role]string{
	types.RoleJobSeeker:     "/profile-management",
	types.RoleRecruiter:     "/profile-management",
	types.RoleEmployer:      "/employer-profile-management",
	types.RoleCompany:       "/company-profile-management",
	types.RoleAdministrator: "/admin-profile-management",
}

// profileIcons marks which icons identify the profile entry in a profile list.
var profileIcons = map[string]bool{
	"User":     true,
	"Building": true,
	"Shield":   true,
}

var menus = map[types.Role]Config{
	types.RoleJobSeeker: {
		Main: []Item{
			{Label: "Dashboard", Path: "/dashboard", Icon: "LayoutDashboard", Description: "Your job search at a glance"},
			{Label: "Find Jobs", Path: "/jobs", Icon: "Search", Description: "Browse and apply to open roles"},
			{Label: "Career Coach", Path: "/career-coach", Icon: "MessageSquare", Description: "Chat with your AI career coach"},
			{Label: "Mentorship", Path: "/mentorship", Icon: "Users", Description: "Find a mentor in your field"},
		},
		Resources: []Item{
			{Label: "Resume Builder", Path: "/resume-builder", Icon: "FileText", Description: "Build and refresh your resume"},
			{Label: "Learning", Path: "/learning", Icon: "GraduationCap", Description: "Courses and skill paths"},
		},
		Profile: []Item{
			{Label: "My Profile", Path: "/profile-management", Icon: "User", Description: "View and edit your profile"},
			{Label: "Settings", Path: "/settings", Icon: "Settings", Description: "Account and notification settings"},
			{Label: "Sign Out", Path: "/signout", Icon: "LogOut", Description: "Sign out of your account"},
		},
	},
	types.RoleRecruiter: {
		Main: []Item{
			{Label: "Dashboard", Path: "/recruiter-dashboard", Icon: "LayoutDashboard", Description: "Your pipeline at a glance"},
			{Label: "Candidates", Path: "/candidates", Icon: "Users", Description: "Search and shortlist candidates"},
			{Label: "Job Postings", Path: "/job-postings", Icon: "Briefcase", Description: "Manage your open requisitions"},
			{Label: "Messages", Path: "/messages", Icon: "MessageSquare", Description: "Conversations with candidates"},
		},
		Resources: []Item{
			{Label: "Talent Insights", Path: "/talent-insights", Icon: "BarChart", Description: "Market and pipeline analytics"},
			{Label: "Templates", Path: "/templates", Icon: "FileText", Description: "Outreach and posting templates"},
		},
		Profile: []Item{
			{Label: "My Profile", Path: "/profile-management", Icon: "User", Description: "View and edit your profile"},
			{Label: "Settings", Path: "/settings", Icon: "Settings", Description: "Account and notification settings"},
			{Label: "Sign Out", Path: "/signout", Icon: "LogOut", Description: "Sign out of your account"},
		},
	},
	types.RoleEmployer: {
		Main: []Item{
			{Label: "Dashboard", Path: "/employer-dashboard", Icon: "LayoutDashboard", Description: "Hiring activity overview"},
			{Label: "Job Postings", Path: "/job-postings", Icon: "Briefcase", Description: "Create and manage postings"},
			{Label: "Applicants", Path: "/applicants", Icon: "Users", Description: "Review incoming applications"},
			{Label: "Team", Path: "/team", Icon: "UserPlus", Description: "Manage your hiring team"},
		},
		Resources: []Item{
			{Label: "Hiring Insights", Path: "/hiring-insights", Icon: "BarChart", Description: "Funnel and sourcing analytics"},
			{Label: "Interview Kits", Path: "/interview-kits", Icon: "ClipboardList", Description: "Structured interview guides"},
		},
		Profile: []Item{
			{Label: "Company Profile", Path: "/employer-profile-management", Icon: "Building", Description: "Your employer presence"},
			{Label: "Settings", Path: "/settings", Icon: "Settings", Description: "Account and notification settings"},
			{Label: "Sign Out", Path: "/signout", Icon: "LogOut", Description: "Sign out of your account"},
		},
	},
	types.RoleCompany: {
		Main: []Item{
			{Label: "Dashboard", Path: "/company-dashboard", Icon: "LayoutDashboard", Description: "Organization-wide overview"},
			{Label: "Departments", Path: "/departments", Icon: "Network", Description: "Hiring by department"},
			{Label: "Job Postings", Path: "/job-postings", Icon: "Briefcase", Description: "All company requisitions"},
			{Label: "Team", Path: "/team", Icon: "UserPlus", Description: "Recruiters and hiring managers"},
		},
		Resources: []Item{
			{Label: "Billing", Path: "/billing", Icon: "CreditCard", Description: "Plans and invoices"},
			{Label: "Brand Page", Path: "/brand", Icon: "Megaphone", Description: "Your public company page"},
		},
		Profile: []Item{
			{Label: "Company Profile", Path: "/company-profile-management", Icon: "Building", Description: "Organization details"},
			{Label: "Settings", Path: "/settings", Icon: "Settings", Description: "Account and notification settings"},
			{Label: "Sign Out", Path: "/signout", Icon: "LogOut", Description: "Sign out of your account"},
		},
	},
	types.RoleAdministrator: {
		Main: []Item{
			{Label: "Overview", Path: "/admin", Icon: "LayoutDashboard", Description: "Platform health and activity"},
			{Label: "Users", Path: "/admin/users", Icon: "Users", Description: "Manage platform users"},
			{Label: "Companies", Path: "/admin/companies", Icon: "Building", Description: "Manage registered companies"},
			{Label: "Moderation", Path: "/admin/moderation", Icon: "Flag", Description: "Reported content queue"},
		},
		Resources: []Item{
			{Label: "Audit Log", Path: "/admin/audit-log", Icon: "ScrollText", Description: "Administrative action history"},
			{Label: "System Status", Path: "/admin/status", Icon: "Activity", Description: "Service and job status"},
		},
		Profile: []Item{
			{Label: "Admin Profile", Path: "/admin-profile-management", Icon: "Shield", Description: "Your administrator account"},
			{Label: "Settings", Path: "/settings", Icon: "Settings", Description: "Account and notification settings"},
			{Label: "Sign Out", Path: "/signout", Icon: "LogOut", Description: "Sign out of your account"},
		},
	},
}

// ByRole returns the navigation menu for a role. Unknown roles get the
// job-seeker menu. The returned config is a fresh copy each call; callers may
// mutate it freely.
func ByRole(role string) Config {
	resolved := types.NormalizeRole(role)
	menu, ok := menus[resolved]
	if !ok {
		resolved = types.RoleJobSeeker
		menu = menus[resolved]
	}

	cfg := Config{
		Main:      append([]Item(nil), menu.Main...),
		Resources: append([]Item(nil), menu.Resources...),
		Profile:   append([]Item(nil), menu.Profile...),
	}

	for i, item := range cfg.Profile {
		if profileIcons[item.Icon] {
			cfg.Profile[i].Path = profileRoutes[resolved]
			break
		}
	}

	return cfg
}

// HasRouteAccess reports whether path appears anywhere in the role's resolved
// menu. It is a membership check over menu data, not a router.
func HasRouteAccess(role, path string) bool {
	cfg := ByRole(role)
	for _, list := range [][]Item{cfg.Main, cfg.Resources, cfg.Profile} {
		for _, item := range list {
			if item.Path == path {
				return true
			}
		}
	}
	return false
}

// PermissionLevel returns the numeric level for a role. ok is false for
// unknown roles.
func PermissionLevel(role string) (level int, ok bool) {
	level, ok = permissionLevels[types.NormalizeRole(role)]
	return level, ok
}

// HasPermissionLevel reports whether the role's level meets the required one.
// Unknown roles are always unauthorized.
func HasPermissionLevel(role string, required int) bool {
	level, ok := PermissionLevel(role)
	return ok && level >= required
}
