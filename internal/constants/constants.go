package constants

// Pagination bounds shared by the list endpoints and the PageInfo contract.
const (
	MinPageNumber   = 1
	MinPageSize     = 1
	MaxPageSize     = 20
	DefaultPageSize = 10
)

const MinPasswordLength = 8

// Session and context keys.
const (
	SessionCookieName  = "todo_session"
	ContextKeyUserID   = "user_id"
	ContextKeyUserRole = "user_role"
)
