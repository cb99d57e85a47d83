package utils

const (
	UserIDKey      contextKey = "user_id"
	UserEmailKey   contextKey = "email"
	UserRoleKey    contextKey = "role"
	AccessTokenKey contextKey = "access_token"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// IsAdmin reports whether role grants the staff views.
func IsAdmin(role string) bool {
	return role == RoleAdmin
}
