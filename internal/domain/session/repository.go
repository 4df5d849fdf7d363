package session

import (
	"context"

	"user-accounts-api/internal/domain/user"
)

type Repository interface {
	CreateSession(ctx context.Context, userID user.ID) (*Session, error)
}
