//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"github.com/stewwratt/unbooked-demo/internal/pkg/config"
	"github.com/stewwratt/unbooked-demo/internal/pkg/jwt"
	"github.com/stewwratt/unbooked-demo/internal/pkg/password"
	"github.com/stewwratt/unbooked-demo/internal/usecase/commands"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin(t *testing.T) {
	cfg := config.NewTestConfig()
	hash, err := password.HashPassword("correct-horse")
	require.NoError(t, err)
	cfg.Provider.PasswordHash = hash

	jwtService := jwt.NewService("test-secret", time.Hour)
	sut := commands.NewAuthCommands(cfg, jwtService)

	t.Run("valid credentials issue a provider token", func(t *testing.T) {
		token, err := sut.Login(context.Background(), cfg.Provider.Email, "correct-horse")
		require.NoError(t, err)

		claims, err := jwtService.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, cfg.Provider.Email, claims.Email)
		assert.Equal(t, jwt.RoleProvider, claims.Role)
	})

	t.Run("wrong password is rejected", func(t *testing.T) {
		_, err := sut.Login(context.Background(), cfg.Provider.Email, "wrong")
		assert.ErrorIs(t, err, commands.ErrInvalidCredentials)
	})

	t.Run("unknown email is rejected", func(t *testing.T) {
		_, err := sut.Login(context.Background(), "other@example.com", "correct-horse")
		assert.ErrorIs(t, err, commands.ErrInvalidCredentials)
	})
}
