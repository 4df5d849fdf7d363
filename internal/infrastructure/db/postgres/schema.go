package postgres

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

var schema = []string{
	`
		CREATE TABLE IF NOT EXISTS users (
		    id            BIGSERIAL PRIMARY KEY,
		    name          TEXT        NOT NULL,
		    email         TEXT        NOT NULL,
		    password_hash TEXT        NOT NULL,
		    cellphone     TEXT        NOT NULL DEFAULT '',
		    status        BOOLEAN     NOT NULL DEFAULT true,
		    roles         TEXT[]      NOT NULL DEFAULT '{user}',
		    created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
		    updated_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
		    CONSTRAINT users_email_key UNIQUE (email)
		)
	`,
	`
		CREATE TABLE IF NOT EXISTS sessions (
		    id         BIGSERIAL PRIMARY KEY,
		    id_user    BIGINT      NOT NULL REFERENCES users (id),
		    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`,
	`CREATE INDEX IF NOT EXISTS sessions_id_user_created_at_idx ON sessions (id_user, created_at)`,
}

// EnsureSchema creates the users and sessions tables when missing.
func EnsureSchema(ctx context.Context, logger *zap.Logger, db DB) error {
	for _, stmt := range schema {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}

	logger.Info("db schema ensured")

	return nil
}
