package constants

const (
	// SessionCookieName is the cookie carrying the authenticated session.
	SessionCookieName = "careconnect_session"

	// ContextKeyUserID is the gin context / session key for the caller's user ID.
	ContextKeyUserID = "user_id"

	// ContextKeyMember and ContextKeyCaregiver hold role sub-records loaded by
	// the role-gate middleware.
	ContextKeyMember    = "member"
	ContextKeyCaregiver = "caregiver"

	// MinPasswordLength is the minimum accepted password length.
	MinPasswordLength = 8

	// Pagination bounds.
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)
