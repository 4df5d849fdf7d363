package user

import (
	"strconv"
	"strings"

	domain "user-accounts-api/internal/domain/user"
)

const userColumns = `id, name, email, password_hash, cellphone, status, roles, created_at, updated_at`

const (
	SelectActiveUsers = `
		SELECT ` + userColumns + `
		FROM users
		WHERE status = true
		ORDER BY id
	`
	SelectUserByID = `
		SELECT ` + userColumns + `
		FROM users
		WHERE id = $1 AND status = true
	`
	SelectUserByEmail = `
		SELECT ` + userColumns + `
		FROM users
		WHERE email = $1
	`
	InsertUser = `
		INSERT INTO users (name, email, password_hash, cellphone, status)
		VALUES ($1, $2, $3, $4, true)
		RETURNING ` + userColumns
	UpdateUserByID = `
		UPDATE users
		SET name = COALESCE($1, name),
		    password_hash = COALESCE($2, password_hash),
		    cellphone = COALESCE($3, cellphone),
		    updated_at = now()
		WHERE id = $4 AND status = true
		RETURNING ` + userColumns
	SoftDeleteUserByID = `
		UPDATE users
		SET status = false,
		    updated_at = now()
		WHERE id = $1 AND status = true
		RETURNING ` + userColumns
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// buildFilterQuery renders f as a single statement. The session bounds become
// an EXISTS sub-query so a user is kept only when one of its sessions matches.
func buildFilterQuery(f domain.Filter) (string, []any) {
	var (
		b     strings.Builder
		args  []any
		conds []string
	)
	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if f.Status != nil {
		conds = append(conds, "u.status = "+arg(*f.Status))
	}
	if f.Name != "" {
		conds = append(conds, "u.name ILIKE '%' || "+arg(likeEscaper.Replace(f.Name))+" || '%'")
	}
	if f.HasLoginBounds() {
		sub := "EXISTS (SELECT 1 FROM sessions s WHERE s.id_user = u.id"
		if f.LoggedInBefore != nil {
			sub += " AND s.created_at <= " + arg(*f.LoggedInBefore)
		}
		if f.LoggedInAfter != nil {
			sub += " AND s.created_at >= " + arg(*f.LoggedInAfter)
		}
		conds = append(conds, sub+")")
	}

	b.WriteString("SELECT u.id, u.name, u.email, u.password_hash, u.cellphone, u.status, u.roles, u.created_at, u.updated_at FROM users u")
	if len(conds) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(conds, " AND "))
	}
	b.WriteString(" ORDER BY u.id")

	return b.String(), args
}
