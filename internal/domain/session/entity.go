package session

import (
	"time"

	"user-accounts-api/internal/domain/user"
)

type (
	ID      uint64
	Session struct {
		ID        ID
		UserID    user.ID
		CreatedAt time.Time
	}
)
