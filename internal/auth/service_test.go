package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgAuth "github.com/angelmondragon/storefront-backend/pkg/auth"
	"github.com/angelmondragon/storefront-backend/pkg/config"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/security"
)

func testJWT() config.JWTConfig {
	return config.JWTConfig{Secret: "test-secret", Issuer: "storefront-test", ExpirationMinutes: 60}
}

func newTestService(t *testing.T, password string) Service {
	t.Helper()
	hash, err := security.HashPassword(password, config.PasswordConfig{
		ArgonMemoryKB:    8192,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	})
	require.NoError(t, err)
	svc, err := NewService(ServiceParams{PasswordHash: hash, JWTConfig: testJWT()})
	require.NoError(t, err)
	return svc
}

func TestNewServiceRequiresCredentials(t *testing.T) {
	_, err := NewService(ServiceParams{JWTConfig: testJWT()})
	require.Error(t, err)
	_, err = NewService(ServiceParams{PasswordHash: "$argon2id$x"})
	require.Error(t, err)
}

func TestAdminLoginMintsVerifiableToken(t *testing.T) {
	svc := newTestService(t, "open-sesame")

	resp, err := svc.AdminLogin(context.Background(), LoginRequest{Password: "open-sesame"})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), resp.ExpiresAt, time.Minute)

	claims, err := pkgAuth.ParseAdminToken(testJWT(), resp.Token)
	require.NoError(t, err)
	assert.Equal(t, pkgAuth.AdminSubject, claims.Subject)
}

func TestAdminLoginRejectsWrongPassword(t *testing.T) {
	svc := newTestService(t, "open-sesame")

	_, err := svc.AdminLogin(context.Background(), LoginRequest{Password: "guess"})
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeUnauthorized))

	_, err = svc.AdminLogin(context.Background(), LoginRequest{})
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeValidation))
}
