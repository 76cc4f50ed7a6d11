package auth

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// User representa una cuenta persistida. PasswordHash nunca sale en JSON.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	IsAdmin      bool      `json:"is_admin"`
	CreatedAt    time.Time `json:"created_at"`
}

// ErrorDuplicateUsername indica choque con el índice unique de username.
var ErrorDuplicateUsername = errors.New("duplicate username")

// DB es lo mínimo que el repositorio de usuarios necesita del pool.
type DB interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Repository accede a la tabla users.
type Repository struct {
	database DB
}

// NewRepository crea un repositorio de usuarios.
func NewRepository(database DB) *Repository {
	return &Repository{database: database}
}

// GetByUsername busca una cuenta por nombre.
func (repository *Repository) GetByUsername(ctx context.Context, username string) (User, error) {
	const query = `
		SELECT id, username, password_hash, is_admin, created_at
		FROM users WHERE username = $1;
	`

	var user User
	err := repository.database.QueryRow(ctx, query, username).
		Scan(&user.ID, &user.Username, &user.PasswordHash, &user.IsAdmin, &user.CreatedAt)
	if err != nil {
		return User{}, err
	}
	return user, nil
}

// Insert crea una cuenta ya hasheada.
func (repository *Repository) Insert(ctx context.Context, username, passwordHash string, isAdmin bool) (User, error) {
	const query = `
		INSERT INTO users (username, password_hash, is_admin)
		VALUES ($1, $2, $3)
		RETURNING id, username, password_hash, is_admin, created_at;
	`

	var user User
	err := repository.database.QueryRow(ctx, query, username, passwordHash, isAdmin).
		Scan(&user.ID, &user.Username, &user.PasswordHash, &user.IsAdmin, &user.CreatedAt)
	if err != nil {
		// Postgres: unique_violation = 23505
		var pgError *pgconn.PgError
		if errors.As(err, &pgError) && pgError.Code == "23505" {
			return User{}, ErrorDuplicateUsername
		}
		return User{}, err
	}
	return user, nil
}
