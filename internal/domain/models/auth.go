package models

import "github.com/golang-jwt/jwt/v5"

// ActorClaims is the JWT claims structure accepted from the identity provider
type ActorClaims struct {
	jwt.RegisteredClaims        // Standard JWT claims (sub, iss, aud, exp, iat, etc.)
	Name                 string `json:"name"`
	Email                string `json:"email"`
	PreferredUsername    string `json:"preferred_username"`
}

// GetUserID returns the user ID from the JWT subject claim.
func (c *ActorClaims) GetUserID() string {
	return c.Subject
}

// DisplayName picks the most human label the token carries
func (c *ActorClaims) DisplayName() string {
	switch {
	case c.Name != "":
		return c.Name
	case c.PreferredUsername != "":
		return c.PreferredUsername
	case c.Email != "":
		return c.Email
	default:
		return c.Subject
	}
}
