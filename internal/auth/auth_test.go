package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/bloodconnect/internal/domain"
	"github.com/spec-kit/bloodconnect/internal/repository/memory"
	apperrors "github.com/spec-kit/bloodconnect/pkg/util/errorutil"
)

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("correct horse", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", hash)

	ok, err := CheckPassword(hash, "correct horse")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = CheckPassword(hash, "wrong")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = CheckPassword("not-a-bcrypt-hash", "correct horse")
	assert.Error(t, err)
}

func TestPasswordHashingClampsCost(t *testing.T) {
	hash, err := HashPassword("pw", 0)
	require.NoError(t, err)
	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("secret", 5)
	user := &domain.User{ID: "user-1", UserType: domain.UserTypeDonor}

	session, err := tm.GenerateToken(user)
	require.NoError(t, err)
	assert.NotEmpty(t, session.TokenID)
	assert.WithinDuration(t, time.Now().Add(5*time.Minute), session.ExpiresAt, 5*time.Second)

	claims, err := tm.ParseToken(session.Token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, domain.UserTypeDonor, claims.UserType)
	assert.Equal(t, session.TokenID, claims.ID)

	_, err = NewTokenManager("other", 5).ParseToken(session.Token)
	assert.Error(t, err, "signature from another secret")
}

func TestTokenExpiry(t *testing.T) {
	tm := NewTokenManager("secret", 1)
	session, err := tm.GenerateToken(&domain.User{ID: "user-1", UserType: domain.UserTypeReceiver})
	require.NoError(t, err)

	tm.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	_, err = tm.ParseToken(session.Token)
	assert.Error(t, err)
}

func TestMemoryRevocationStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryRevocationStore()

	require.NoError(t, store.Revoke(ctx, "live", time.Now().Add(time.Minute)))
	require.NoError(t, store.Revoke(ctx, "already-expired", time.Now().Add(-time.Minute)))

	revoked, err := store.IsRevoked(ctx, "live")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = store.IsRevoked(ctx, "already-expired")
	require.NoError(t, err)
	assert.False(t, revoked)

	store.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	revoked, err = store.IsRevoked(ctx, "live")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestMiddleware(t *testing.T) {
	store := memory.NewStore()
	donor := &domain.User{Email: "d@example.com", Username: "d", UserType: domain.UserTypeDonor}
	require.NoError(t, store.Users().Create(context.Background(), donor))

	tm := NewTokenManager("secret", 5)
	revocations := NewMemoryRevocationStore()
	mw := NewAuthMiddleware(tm, store.Users(), revocations)

	app := fiber.New(fiber.Config{ErrorHandler: func(c *fiber.Ctx, err error) error {
		de := apperrors.ToDomainError(err)
		return c.Status(de.HTTPStatus).SendString(de.Code)
	}})
	app.Get("/private", mw.Handle, func(c *fiber.Ctx) error {
		return c.SendString(CurrentUser(c).ID)
	})
	app.Get("/donors-only", mw.Handle, RequireUserType("donors only", domain.UserTypeDonor), func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusNoContent)
	})
	app.Get("/receivers-only", mw.Handle, RequireUserType("receivers only", domain.UserTypeReceiver), func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusNoContent)
	})
	app.Get("/public", mw.Optional, func(c *fiber.Ctx) error {
		if CurrentUser(c) == nil {
			return c.SendString("anonymous")
		}
		return c.SendString("known")
	})

	session, err := tm.GenerateToken(donor)
	require.NoError(t, err)

	do := func(path, token string) int {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		resp, err := app.Test(req)
		require.NoError(t, err)
		return resp.StatusCode
	}

	assert.Equal(t, http.StatusUnauthorized, do("/private", ""))
	assert.Equal(t, http.StatusUnauthorized, do("/private", "garbage"))
	assert.Equal(t, http.StatusOK, do("/private", session.Token))
	assert.Equal(t, http.StatusNoContent, do("/donors-only", session.Token))
	assert.Equal(t, http.StatusForbidden, do("/receivers-only", session.Token))
	assert.Equal(t, http.StatusOK, do("/public", ""))
	assert.Equal(t, http.StatusOK, do("/public", "garbage"))

	require.NoError(t, revocations.Revoke(context.Background(), session.TokenID, session.ExpiresAt))
	assert.Equal(t, http.StatusUnauthorized, do("/private", session.Token))
}
