package models

// Account represents an entry in the account directory.
// Passwords are plaintext because the directory is an in-process mock;
// they are never serialized outward (see Public).
type Account struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"-"`
	Points   int    `json:"points"`
	JoinDate string `json:"joinDate"` // YYYY-MM-DD
	Role     string `json:"role"`
}

// ValidRoles defines allowed account roles
var ValidRoles = map[string]bool{
	"user":  true,
	"admin": true,
}

// Public returns the session projection of the account, with the
// password excluded.
func (a *Account) Public() *Session {
	return &Session{
		ID:       a.ID,
		Name:     a.Name,
		Email:    a.Email,
		Points:   a.Points,
		JoinDate: a.JoinDate,
		Role:     a.Role,
	}
}

// Session is the persisted projection of the current authenticated account.
type Session struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Points   int    `json:"points"`
	JoinDate string `json:"joinDate"`
	Role     string `json:"role"`
}

// IsAdmin reports whether the session belongs to an administrator.
func (s *Session) IsAdmin() bool {
	return s != nil && s.Role == "admin"
}

// SessionUpdate holds the fields that may be merged into the active
// session. Nil fields are left untouched.
type SessionUpdate struct {
	Name   *string `json:"name,omitempty"`
	Email  *string `json:"email,omitempty"`
	Points *int    `json:"points,omitempty"`
}
