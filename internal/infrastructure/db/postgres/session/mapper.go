package session

import (
	domain "user-accounts-api/internal/domain/session"
	"user-accounts-api/internal/domain/user"
)

func fromDBModel(model *Session) *domain.Session {
	return &domain.Session{
		ID:        domain.ID(model.ID),
		UserID:    user.ID(model.UserID),
		CreatedAt: model.CreatedAt,
	}
}
