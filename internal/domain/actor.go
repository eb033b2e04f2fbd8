package domain

// UserRole global role carried in the auth token
type UserRole string

const (
	RoleAdmin    UserRole = "admin"
	RoleHandler  UserRole = "handler"
	RoleReserver UserRole = "reserver"
)

// Actor the authenticated caller of a mutating operation
type Actor struct {
	UserID int64
	Role   UserRole
}

// IsAdmin returns true for administrators
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}
