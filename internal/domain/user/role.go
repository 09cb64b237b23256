package user

type Role string

const (
	RoleOwner   Role = "owner"
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleCleaner Role = "cleaner"
)

var RoleValues = []string{
	string(RoleOwner),
	string(RoleAdmin),
	string(RoleManager),
	string(RoleCleaner),
}

// IsManagerOrAbove reports whether the role may assert manager overrides
// on clock-in validation and job-start checks.
func IsManagerOrAbove(r Role) bool {
	switch r {
	case RoleOwner, RoleAdmin, RoleManager:
		return true
	default:
		return false
	}
}
