package constants

// Role names as they appear in JWT claims.
const (
	RoleAdmin      = "admin"
	RoleRegistrar  = "registrar"
	RoleAccountant = "accountant"
	RoleWarden     = "warden"
	RoleTeacher    = "teacher"
	RoleParent     = "parent"
)
