package domain

// Role gates which screens a user may operate.
type Role string

const (
	RoleAdmin        Role = "ADMIN"
	RoleSupervisor   Role = "SUPERVISOR"
	RoleCashier      Role = "CASHIER"
	RoleStockManager Role = "STOCK_MANAGER"
)

// POSRoles may operate the cart and checkout.
var POSRoles = []Role{RoleAdmin, RoleSupervisor, RoleCashier}

// User is the authenticated operator of a terminal.
type User struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email,omitempty"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Role      Role   `json:"role"`
	Active    bool   `json:"active"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// HasRole reports whether the user holds one of roles.
func (u User) HasRole(roles ...Role) bool {
	for _, r := range roles {
		if u.Role == r {
			return true
		}
	}
	return false
}
