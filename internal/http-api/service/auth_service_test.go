package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"bookstore/internal/config"
	"bookstore/internal/http-api/dto"
	"bookstore/internal/http-api/models"
	"bookstore/internal/http-api/repository"
	"bookstore/internal/middleware/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAuthService(t *testing.T, db *gorm.DB, expiry time.Duration) AuthService {
	t.Helper()
	cfg := &config.Config{
		JWTSecret: strings.Repeat("s", 32),
		JWTExpiry: expiry,
	}
	return NewAuthService(repository.NewUserRepo(db), cfg)
}

func registerReq(username, email string) dto.RegisterRequest {
	return dto.RegisterRequest{
		Username: username,
		Email:    email,
		Password: "correct-horse",
	}
}

func TestRegister_CreatesCustomerWithHashedPassword(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(t, db, 30*time.Minute)

	user, err := svc.Register(context.Background(), registerReq("alice", "alice@example.com"))
	require.NoError(t, err)

	// Registration never grants elevated roles.
	assert.Equal(t, models.RoleCustomer, user.Role)
	assert.NotEqual(t, "correct-horse", user.PasswordHash)
	assert.NoError(t, auth.VerifyPassword(user.PasswordHash, "correct-horse"))
}

func TestRegister_Duplicates(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(t, db, 30*time.Minute)

	_, err := svc.Register(context.Background(), registerReq("alice", "alice@example.com"))
	require.NoError(t, err)

	t.Run("Username", func(t *testing.T) {
		_, err := svc.Register(context.Background(), registerReq("alice", "other@example.com"))
		assert.ErrorIs(t, err, ErrNameInUse)
	})

	t.Run("Email", func(t *testing.T) {
		_, err := svc.Register(context.Background(), registerReq("bob", "alice@example.com"))
		assert.ErrorIs(t, err, ErrEmailInUse)
	})
}

func TestLogin(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(t, db, 30*time.Minute)

	_, err := svc.Register(context.Background(), registerReq("alice", "alice@example.com"))
	require.NoError(t, err)

	t.Run("Success", func(t *testing.T) {
		token, user, err := svc.Login(context.Background(), "alice", "correct-horse")
		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, "alice", user.Username)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		_, _, err := svc.Login(context.Background(), "alice", "battery-staple")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("UnknownUser", func(t *testing.T) {
		_, _, err := svc.Login(context.Background(), "mallory", "correct-horse")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestValidateToken_Roundtrip(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(t, db, 30*time.Minute)

	user, err := svc.Register(context.Background(), registerReq("alice", "alice@example.com"))
	require.NoError(t, err)
	token, _, err := svc.Login(context.Background(), "alice", "correct-horse")
	require.NoError(t, err)

	identity, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, identity.UserID)
	assert.Equal(t, models.RoleCustomer, identity.Role)
}

func TestValidateToken_Expired(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(t, db, -time.Minute)

	_, err := svc.Register(context.Background(), registerReq("alice", "alice@example.com"))
	require.NoError(t, err)
	token, _, err := svc.Login(context.Background(), "alice", "correct-horse")
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestValidateToken_Garbage(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(t, db, 30*time.Minute)

	for _, token := range []string{"", "not-a-jwt", "aaa.bbb.ccc"} {
		_, err := svc.ValidateToken(token)
		assert.ErrorIs(t, err, ErrTokenInvalid)
	}
}

func TestValidateToken_WrongSecret(t *testing.T) {
	db := setupTestDB(t)
	issuer := newAuthService(t, db, 30*time.Minute)
	verifier := NewAuthService(repository.NewUserRepo(db), &config.Config{
		JWTSecret: strings.Repeat("x", 32),
		JWTExpiry: 30 * time.Minute,
	})

	_, err := issuer.Register(context.Background(), registerReq("alice", "alice@example.com"))
	require.NoError(t, err)
	token, _, err := issuer.Login(context.Background(), "alice", "correct-horse")
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestIdentity_HasRoleIsCaseInsensitive(t *testing.T) {
	id := Identity{UserID: 1, Role: "Manager"}
	assert.True(t, id.HasRole("manager"))
	assert.True(t, id.HasRole("MANAGER"))
	assert.False(t, id.HasRole("customer"))
}

func TestListUsers_Pagination(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(t, db, 30*time.Minute)

	for _, name := range []string{"alice", "bob", "carol"} {
		_, err := svc.Register(context.Background(), registerReq(name, name+"@example.com"))
		require.NoError(t, err)
	}

	users, total, err := svc.ListUsers(context.Background(), 1, 2, true)
	require.NoError(t, err)
	assert.Len(t, users, 2)
	assert.Equal(t, int64(3), total)

	users, _, err = svc.ListUsers(context.Background(), 2, 2, false)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}
