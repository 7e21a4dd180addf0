// internal/models/role.go
package models

import (
	"encoding/json"
	"errors"
	"strings"
)

// Role is the closed set of roles the pizza service hands out.
type Role string

const (
	RoleDiner      Role = "diner"
	RoleAdmin      Role = "admin"
	RoleFranchisee Role = "franchisee"
)

var ErrInvalidRole = errors.New("invalid role")

func (r Role) IsValid() bool {
	switch r {
	case RoleDiner, RoleAdmin, RoleFranchisee:
		return true
	}
	return false
}

func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

// ParseRole converts a wire value into a Role, rejecting anything outside the enumeration.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if !r.IsValid() {
		return "", ErrInvalidRole
	}
	return r, nil
}

func (r *Role) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseRole(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// RoleAssignment is one entry of a user's role list. ObjectID scopes
// franchisee roles to a franchise and is empty otherwise.
type RoleAssignment struct {
	Role     Role `json:"role"`
	ObjectID ID   `json:"objectId,omitempty"`
}
