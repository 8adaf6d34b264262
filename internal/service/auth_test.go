package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recipeshare/backend/internal/types"
)

const testJWTSecret = "test-secret"

func registerRequest(username, email string) types.RegisterRequest {
	return types.RegisterRequest{
		Username:  username,
		Email:     email,
		Password:  "password123",
		FirstName: "Test",
		LastName:  "User",
	}
}

func TestRegisterAndLogin(t *testing.T) {
	db := setupDB(t)
	svc := NewAuthService(db, testJWTSecret)
	ctx := context.Background()

	user, token, err := svc.Register(ctx, registerRequest("newcook", "newcook@example.com"))
	require.NoError(t, err)
	assert.Equal(t, "newcook", user.Username)
	assert.NotEmpty(t, user.PasswordHash)
	assert.NotEqual(t, "password123", user.PasswordHash)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "newcook", claims.Username)
	assert.False(t, claims.IsAdmin)

	loggedIn, token, err := svc.Login(ctx, "newcook@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)
	assert.NotEmpty(t, token)

	_, _, err = svc.Login(ctx, "newcook@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, "nobody@example.com", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterUniqueness(t *testing.T) {
	db := setupDB(t)
	svc := NewAuthService(db, testJWTSecret)
	ctx := context.Background()

	_, _, err := svc.Register(ctx, registerRequest("taken", "taken@example.com"))
	require.NoError(t, err)

	_, _, err = svc.Register(ctx, registerRequest("someoneelse", "taken@example.com"))
	assert.ErrorIs(t, err, ErrEmailTaken)

	_, _, err = svc.Register(ctx, registerRequest("taken", "fresh@example.com"))
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestValidateTokenRejectsForgedTokens(t *testing.T) {
	db := setupDB(t)
	svc := NewAuthService(db, testJWTSecret)
	other := NewAuthService(db, "a-different-secret")
	ctx := context.Background()

	_, token, err := other.Register(ctx, registerRequest("forger", "forger@example.com"))
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Error(t, err, "tokens signed with another secret must be rejected")

	_, err = svc.ValidateToken("not-a-token")
	assert.Error(t, err)
}
