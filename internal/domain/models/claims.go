package models

import "github.com/golang-jwt/jwt/v5"

// AuthClaims are the JWT claims minted by the identity provider. Subject is
// the user ID; Role distinguishes signed-in users from anonymous tokens.
type AuthClaims struct {
	jwt.RegisteredClaims
	Email    string `json:"email,omitempty"`
	Role     string `json:"role,omitempty"`
	AuthType string `json:"auth_type,omitempty"` // "magic_link" or "google"
}
