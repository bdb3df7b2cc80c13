package auth

// Identity is the resolved caller extracted from a verified access token.
// Handlers thread it into services explicitly; services never reach back
// into the request context for it.
type Identity struct {
	UserID     string
	EmployeeID string
	BusinessID string
	Role       string
}

// IsAdmin reports whether the caller may access business-wide records.
func (i Identity) IsAdmin() bool {
	return i.Role == "admin" || i.Role == "owner"
}
