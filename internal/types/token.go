package types

import "github.com/google/uuid"

// TokenClaims is the identity carried by a validated bearer token.
type TokenClaims struct {
	UserID   uuid.UUID
	Username string
	IsAdmin  bool
}
