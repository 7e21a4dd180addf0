// internal/models/user.go
package models

// User is a Directory Service identity record. Password is only ever sent,
// never displayed.
type User struct {
	ID       ID               `json:"id,omitempty"`
	Name     string           `json:"name"`
	Email    string           `json:"email"`
	Roles    []RoleAssignment `json:"roles,omitempty"`
	Password string           `json:"password,omitempty"`
}

// HasRole reports whether any of the user's assignments carries role.
func (u User) HasRole(role Role) bool {
	for _, r := range u.Roles {
		if r.Role == role {
			return true
		}
	}
	return false
}

// RoleNames returns the role values in assignment order.
func (u User) RoleNames() []string {
	names := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		names = append(names, string(r.Role))
	}
	return names
}

type UserList struct {
	Users []User `json:"users"`
}

// Principal is the authenticated acting identity and the bearer token it holds.
type Principal struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// AuthResponse is returned by login and register.
type AuthResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}
