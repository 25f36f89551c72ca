package domain

// Role of an authenticated caller
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// ParseRole maps an identity-provider claim to a Role; anything unknown is a plain user.
func ParseRole(s string) Role {
	if Role(s) == RoleAdmin {
		return RoleAdmin
	}
	return RoleUser
}

// Caller is the verified identity attached to a request.
type Caller struct {
	ID   string
	Role Role
}

func (c Caller) IsAdmin() bool {
	return c.Role == RoleAdmin
}

// CanView reports whether the caller may read the booking.
func (c Caller) CanView(b *Booking) bool {
	return c.IsAdmin() || b.OwnedBy(c.ID)
}
