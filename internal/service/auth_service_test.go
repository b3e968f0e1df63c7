package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gift-service/internal/core/apperr"
	"gift-service/internal/core/auth"
)

func newAuthFixture(t *testing.T) (*UserService, *AuthService) {
	t.Helper()
	st := newMemStore()
	users := NewUserService(&memUserRepo{st}, &memWishRepo{st})
	jwter := &auth.JWTer{Secret: []byte("test-secret"), Issuer: "gift-service", TTL: time.Minute}
	return users, NewAuthService(users, jwter)
}

func TestAuthLogin(t *testing.T) {
	ctx := context.Background()
	users, svc := newAuthFixture(t)

	created, err := users.Create(ctx, CreateUserInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)

	token, u, err := svc.Login(ctx, "alice", "supersecret")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, created.ID, u.ID)

	_, _, err = svc.Login(ctx, "alice", "wrong")
	require.Error(t, err)
	assert.True(t, apperr.IsUnauthorized(err))

	_, _, err = svc.Login(ctx, "nobody", "supersecret")
	require.Error(t, err)
	assert.True(t, apperr.IsUnauthorized(err))
}

func TestAuthResolveToken(t *testing.T) {
	ctx := context.Background()
	users, svc := newAuthFixture(t)

	created, err := users.Create(ctx, CreateUserInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)

	token, _, err := svc.Login(ctx, "alice", "supersecret")
	require.NoError(t, err)

	u, err := svc.ResolveToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, created.ID, u.ID)
	assert.Equal(t, "alice", u.Username)

	_, err = svc.ResolveToken(ctx, "not-a-token")
	require.Error(t, err)
	assert.True(t, apperr.IsUnauthorized(err))
}

// 用户注销后 token 即使没过期也不再有效
func TestAuthResolveTokenDeletedUser(t *testing.T) {
	ctx := context.Background()
	st := newMemStore()
	users := NewUserService(&memUserRepo{st}, &memWishRepo{st})
	jwter := &auth.JWTer{Secret: []byte("test-secret"), Issuer: "gift-service", TTL: time.Minute}
	svc := NewAuthService(users, jwter)

	token, err := jwter.Issue(9999, "ghost")
	require.NoError(t, err)

	_, err = svc.ResolveToken(ctx, token)
	require.Error(t, err)
	assert.True(t, apperr.IsUnauthorized(err))
}
