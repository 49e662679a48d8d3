package utils

// Context keys set by the access middleware.
const (
	PrincipalIDKey = "principalID"
	RoleKey        = "role"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)
