package ports

import (
	"context"
	"time"

	"user-accounts-api/internal/infrastructure/jwt"
)

type (
	AuthToken struct {
		Token     string
		ExpiresIn time.Duration
	}

	Auth interface {
		Login(ctx context.Context, email, password string) (*AuthToken, error)
		Logout(ctx context.Context, claims *jwt.Claims) error
	}

	TokenService interface {
		GenerateJWT(userID uint64, roles []string, expiresIn time.Duration) (string, error)
		ValidateToken(tokenStr string) (*jwt.Claims, error)
	}

	TokenDenylist interface {
		Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
		IsRevoked(ctx context.Context, tokenID string) (bool, error)
	}
)
