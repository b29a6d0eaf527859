package models

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

var rolePattern = regexp.MustCompile(`ROLE_(\w+)`)

// LoginRequest holds credentials for authenticating an operator.
type LoginRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

// LoginResponse is the auth service answer to a successful login.
type LoginResponse struct {
	Token string `json:"token"`
}

// RoleClaim accepts the token's role claim either as a single string or as a list.
type RoleClaim struct {
	Values []string
	IsList bool
}

// UnmarshalJSON decodes a string, a list of strings or a list of authority objects.
func (r *RoleClaim) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}

	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		r.Values = []string{single}
		r.IsList = false
		return nil
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	r.IsList = true
	r.Values = make([]string, 0, len(raw))
	for _, item := range raw {
		var s string
		if err := json.Unmarshal(item, &s); err == nil {
			r.Values = append(r.Values, s)
			continue
		}
		r.Values = append(r.Values, string(item))
	}
	return nil
}

// MarshalJSON mirrors the decoded shape.
func (r RoleClaim) MarshalJSON() ([]byte, error) {
	if !r.IsList {
		if len(r.Values) == 0 {
			return []byte("null"), nil
		}
		return json.Marshal(r.Values[0])
	}
	return json.Marshal(r.Values)
}

// TokenClaims is the decoded payload of the auth service JWT.
type TokenClaims struct {
	Role RoleClaim `json:"role"`
	jwt.RegisteredClaims
}

// PrimaryRole returns the role used for access decisions: the ROLE_ match of the first list
// entry, or the plain string claim.
func (c TokenClaims) PrimaryRole() string {
	if len(c.Role.Values) == 0 {
		return ""
	}
	first := strings.TrimSpace(c.Role.Values[0])
	if !c.Role.IsList {
		return first
	}
	return rolePattern.FindString(first)
}
