package core

import "strings"

// Role is the operator's console role. Authentication proper lives
// outside this subsystem; the role is a client-side placeholder derived
// from the entered username.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleOperator Role = "operator"
	RoleField    Role = "field_officer"
)

// Operator is the acting console user.
type Operator struct {
	Username string
	Role     Role
}

// NewOperator derives the placeholder role from the username.
func NewOperator(username string) Operator {
	return Operator{Username: username, Role: roleFor(username)}
}

func roleFor(username string) Role {
	u := strings.ToLower(strings.TrimSpace(username))
	switch {
	case strings.Contains(u, "admin"):
		return RoleAdmin
	case strings.Contains(u, "field"):
		return RoleField
	default:
		return RoleOperator
	}
}

// Actor converts the operator into acknowledge metadata.
func (o Operator) Actor(action string) Actor {
	if action == "" {
		action = "reviewed"
	}
	return Actor{Name: o.Username, Action: action}
}
