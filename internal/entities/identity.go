package entities

const RoleAdmin = "admin"

// Identity describes the caller of a request. Zero value is an anonymous guest.
type Identity struct {
	UserID string
	Email  string
	Role   string
}

func (i Identity) Authenticated() bool {
	return i.UserID != ""
}

func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}
