package jwt

import (
	"github.com/golang-jwt/jwt/v5"
)

// Claims represents the token claims issued by the identity provider.
// Subject carries the provider's stable user id.
type Claims struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	jwt.RegisteredClaims
}
