package models

import "github.com/golang-jwt/jwt/v5"

// AuthClaims is the payload carried by every bearer token. Field names match
// the wire format the frontend expects.
type AuthClaims struct {
	UserID  int64  `json:"userID"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
	jwt.RegisteredClaims
}
