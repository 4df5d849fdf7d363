package session

import (
	"context"

	"user-accounts-api/internal/domain/session"
	"user-accounts-api/internal/domain/user"
	"user-accounts-api/internal/infrastructure/db/postgres"
)

type Repository struct {
	db postgres.DB
}

func NewRepository(db postgres.DB) session.Repository {
	return &Repository{db: db}
}

func (r *Repository) CreateSession(ctx context.Context, userID user.ID) (*session.Session, error) {
	s := new(Session)

	err := r.db.QueryRow(ctx, InsertSession, uint64(userID)).Scan(
		&s.ID,
		&s.UserID,
		&s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return fromDBModel(s), nil
}
