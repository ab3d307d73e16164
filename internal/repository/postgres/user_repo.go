package postgres

import (
	"context"
	"database/sql"

	"familyinvitations/internal/domain"
)

type systemUserRepository struct {
	DB *sql.DB
}

// NewSystemUserRepository returns a domain.SystemUserRepository implemented with Postgres.
func NewSystemUserRepository(db *sql.DB) domain.SystemUserRepository {
	return &systemUserRepository{DB: db}
}

func (r *systemUserRepository) Create(ctx context.Context, u *domain.SystemUser) error {
	query := `
		INSERT INTO system_users (email, password_hash, salt, first_name, last_name, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query, u.Email, u.PasswordHash, u.Salt, u.FirstName, u.LastName, u.Status).Scan(&u.ID)
}

func (r *systemUserRepository) GetByEmail(ctx context.Context, email string) (*domain.SystemUser, error) {
	query := `
		SELECT id, email, password_hash, salt, first_name, last_name, status, token
		FROM system_users
		WHERE lower(email) = lower($1)
	`
	return r.get(ctx, query, email)
}

func (r *systemUserRepository) GetByID(ctx context.Context, id string) (*domain.SystemUser, error) {
	query := `
		SELECT id, email, password_hash, salt, first_name, last_name, status, token
		FROM system_users
		WHERE id = $1
	`
	return r.get(ctx, query, id)
}

func (r *systemUserRepository) get(ctx context.Context, query string, arg any) (*domain.SystemUser, error) {
	u := &domain.SystemUser{}
	var token sql.NullString
	err := r.DB.QueryRowContext(ctx, query, arg).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.Salt, &u.FirstName, &u.LastName, &u.Status, &token,
	)
	if err == sql.ErrNoRows {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	u.Token = token.String
	return u, nil
}

func (r *systemUserRepository) UpdateToken(ctx context.Context, id, token string) error {
	result, err := r.DB.ExecContext(ctx, `UPDATE system_users SET token = $2 WHERE id = $1`, id, nullable(token))
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
