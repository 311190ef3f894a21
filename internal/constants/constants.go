package constants

// Session / context keys
const (
	ContextKeyUserID   = "user_id"
	ContextKeyUserRole = "user_role"
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// DefaultNotificationLimit bounds a notification list request when the client
// does not specify one.
const DefaultNotificationLimit = 20

// MinPasswordLength is the minimum accepted password length at signup.
const MinPasswordLength = 8
