package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/srgjo27/launch_booking/internal/core/domain"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) LoadUsers(ctx context.Context) ([]domain.User, error) {
	query := `
	SELECT user_id, name, age, manufacturer, position, contact, email, credential, logged_in
	FROM users
	ORDER BY user_id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var u domain.User
		var credential string
		if err := rows.Scan(&u.UserID, &u.Name, &u.Age, &u.Manufacturer, &u.Position, &u.Contact, &u.Email, &credential, &u.LoggedIn); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		u.Credential = domain.CredentialFromStored(credential)
		users = append(users, u)
	}

	return users, rows.Err()
}

func (r *UserRepository) SaveUsers(ctx context.Context, users []domain.User) error {
	query := `
	INSERT INTO users (user_id, name, age, manufacturer, position, contact, email, credential, logged_in)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		if err := deleteAll(ctx, tx, "users"); err != nil {
			return err
		}
		return insertAll(ctx, tx, "users", query, len(users), func(i int) []any {
			u := users[i]
			return []any{u.UserID, u.Name, u.Age, u.Manufacturer, u.Position, u.Contact, u.Email, u.Credential.Stored(), u.LoggedIn}
		})
	})
}
