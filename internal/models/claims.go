package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// UserClaims carries the verified principal through the request context.
type UserClaims struct {
	jwt.RegisteredClaims
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}
