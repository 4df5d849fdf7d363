package user

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"user-accounts-api/internal/domain/user"
	"user-accounts-api/internal/infrastructure/db/postgres"
)

type Repository struct {
	db postgres.DB
}

func NewRepository(db postgres.DB) user.Repository {
	return &Repository{db: db}
}

func (r *Repository) FetchActiveUsers(ctx context.Context) (user.Users, error) {
	return r.fetchUsers(ctx, SelectActiveUsers)
}

func (r *Repository) FetchFilteredUsers(ctx context.Context, f user.Filter) (user.Users, error) {
	query, args := buildFilterQuery(f)
	return r.fetchUsers(ctx, query, args...)
}

func (r *Repository) fetchUsers(ctx context.Context, query string, args ...any) (user.Users, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	us := Users{}
	for rows.Next() {
		u := new(User)
		if err = rows.Scan(u.scanFields()...); err != nil {
			return nil, err
		}

		us = append(us, u)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return fromDBModels(&us), nil
}

func (r *Repository) FetchUserByID(ctx context.Context, id user.ID) (*user.User, error) {
	return r.fetchUser(ctx, SelectUserByID, uint64(id))
}

// FetchUserByEmail matches active and soft-deleted users alike.
func (r *Repository) FetchUserByEmail(ctx context.Context, email string) (*user.User, error) {
	return r.fetchUser(ctx, SelectUserByEmail, email)
}

func (r *Repository) CreateUser(ctx context.Context, req user.User) (*user.User, error) {
	u, err := r.fetchUser(
		ctx,
		InsertUser,
		req.Name, req.Email, req.PasswordHash, req.Cellphone,
	)
	if err != nil {
		if postgres.IsPgUniqueViolation(err) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, err
	}

	return u, nil
}

// UpdateUser returns nil when no active user has the id.
func (r *Repository) UpdateUser(ctx context.Context, id user.ID, upd user.Update) (*user.User, error) {
	return r.fetchUser(
		ctx,
		UpdateUserByID,
		upd.Name, upd.PasswordHash, upd.Cellphone, uint64(id),
	)
}

// DeleteUser returns nil when no active user has the id.
func (r *Repository) DeleteUser(ctx context.Context, id user.ID) (*user.User, error) {
	return r.fetchUser(ctx, SoftDeleteUserByID, uint64(id))
}

func (r *Repository) fetchUser(ctx context.Context, query string, args ...any) (*user.User, error) {
	u := new(User)
	if err := r.db.QueryRow(ctx, query, args...).Scan(u.scanFields()...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(u), nil
}
