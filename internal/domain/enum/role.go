package enum

// Role represents an operator's role in the system
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleCashier Role = "cashier"
)

// Valid reports whether the role is a known role
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleCashier:
		return true
	}
	return false
}

func (r Role) String() string {
	return string(r)
}
