package identity_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	identityapp "github.com/erp/procurement/internal/application/identity"
	"github.com/erp/procurement/internal/domain/identity"
	"github.com/erp/procurement/internal/domain/shared"
	"github.com/erp/procurement/internal/infrastructure/auth"
	"github.com/erp/procurement/internal/infrastructure/config"
	"github.com/erp/procurement/internal/infrastructure/persistence"
)

func newAuthFixture(t *testing.T) (*identityapp.AuthService, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(persistence.Models()...))

	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:          "test-secret-key-for-auth-tests",
		TokenExpiration: time.Hour,
		Issuer:          "procurement-test",
	})
	return identityapp.NewAuthService(persistence.NewGormUserRepository(db), jwtService, zap.NewNop()), db
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("always creates the user role", func(t *testing.T) {
		svc, db := newAuthFixture(t)

		resp, err := svc.Register(ctx, identityapp.RegisterRequest{
			Email:    "staff@example.com",
			Password: "s3cretpass",
		})
		require.NoError(t, err)
		assert.Equal(t, "user", resp.Role)

		var stored identity.User
		require.NoError(t, db.First(&stored, "email = ?", "staff@example.com").Error)
		assert.Equal(t, identity.RoleUser, stored.Role)
		assert.NotEqual(t, "s3cretpass", stored.PasswordHash)
	})

	t.Run("rejects a duplicate email", func(t *testing.T) {
		svc, _ := newAuthFixture(t)

		_, err := svc.Register(ctx, identityapp.RegisterRequest{
			Email:    "staff@example.com",
			Password: "s3cretpass",
		})
		require.NoError(t, err)

		_, err = svc.Register(ctx, identityapp.RegisterRequest{
			Email:    "staff@example.com",
			Password: "otherpass1",
		})
		var domainErr *shared.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, shared.CodeConflict, domainErr.Code)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAuthFixture(t)

	_, err := svc.Register(ctx, identityapp.RegisterRequest{
		Email:    "staff@example.com",
		Password: "s3cretpass",
	})
	require.NoError(t, err)

	t.Run("issues a bearer token for valid credentials", func(t *testing.T) {
		result, err := svc.Login(ctx, identityapp.LoginRequest{
			Email:    "staff@example.com",
			Password: "s3cretpass",
		})
		require.NoError(t, err)
		assert.Equal(t, "Bearer", result.TokenType)
		assert.NotEmpty(t, result.AccessToken)
		assert.Equal(t, "user", result.User.Role)
	})

	t.Run("rejects a wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, identityapp.LoginRequest{
			Email:    "staff@example.com",
			Password: "wrongpass1",
		})
		var domainErr *shared.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
	})
}
