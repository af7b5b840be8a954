package domain

// Role is the coarse permission level carried in a session.
type Role string

const (
	RoleStudent Role = "STUDENT"
	RoleAdmin   Role = "ADMIN"
	// RoleService is used by trusted collaborators such as the payment service.
	RoleService Role = "SERVICE"
)

// Session identifies the caller of a service entry point. It is built once at the
// transport edge and passed explicitly; services never look credentials up themselves.
type Session struct {
	UserID string
	Role   Role
}

// IsAdmin reports whether the session may perform administrative actions.
func (s Session) IsAdmin() bool {
	return s.Role == RoleAdmin
}
