package commands

import (
	"context"
	"errors"

	"github.com/stewwratt/unbooked-demo/internal/pkg/config"
	"github.com/stewwratt/unbooked-demo/internal/pkg/jwt"
	"github.com/stewwratt/unbooked-demo/internal/pkg/password"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrTokenGeneration    = errors.New("token generation failed")
)

// AuthCommands authenticates the single provider account that manages slots.
type AuthCommands interface {
	Login(ctx context.Context, email, plainPassword string) (string, error)
}

type authCommandsImpl struct {
	provider   config.ProviderConfig
	jwtService *jwt.Service
}

func NewAuthCommands(cfg config.Config, jwtService *jwt.Service) AuthCommands {
	return &authCommandsImpl{
		provider:   cfg.Provider,
		jwtService: jwtService,
	}
}

func (a *authCommandsImpl) Login(_ context.Context, email, plainPassword string) (string, error) {
	if email != a.provider.Email {
		return "", ErrInvalidCredentials
	}
	if err := password.ComparePassword(a.provider.PasswordHash, plainPassword); err != nil {
		return "", ErrInvalidCredentials
	}

	token, err := a.jwtService.GenerateToken(email, jwt.RoleProvider)
	if err != nil {
		return "", ErrTokenGeneration
	}
	return token, nil
}
