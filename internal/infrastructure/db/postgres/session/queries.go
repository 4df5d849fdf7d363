package session

const (
	InsertSession = `
		INSERT INTO sessions (id_user)
		VALUES ($1)
		RETURNING id, id_user, created_at
	`
)
