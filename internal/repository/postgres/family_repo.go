package postgres

import (
	"context"
	"database/sql"

	"familyinvitations/internal/domain"
)

type familyRepository struct {
	DB *sql.DB
}

// NewFamilyRepository returns a domain.FamilyRepository implemented with Postgres.
func NewFamilyRepository(db *sql.DB) domain.FamilyRepository {
	return &familyRepository{DB: db}
}

func (r *familyRepository) Create(ctx context.Context, f *domain.Family) error {
	query := `
		INSERT INTO families (name, created_date)
		VALUES ($1, $2)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query, f.Name, f.CreatedDate).Scan(&f.ID)
}

func (r *familyRepository) GetByID(ctx context.Context, id string) (*domain.Family, error) {
	query := `
		SELECT id, name, created_date
		FROM families
		WHERE id = $1
	`
	f := &domain.Family{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(&f.ID, &f.Name, &f.CreatedDate)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (r *familyRepository) GetByName(ctx context.Context, name string) (*domain.Family, error) {
	query := `
		SELECT id, name, created_date
		FROM families
		WHERE lower(name) = lower($1)
	`
	f := &domain.Family{}
	err := r.DB.QueryRowContext(ctx, query, name).Scan(&f.ID, &f.Name, &f.CreatedDate)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (r *familyRepository) List(ctx context.Context) ([]*domain.Family, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, name, created_date
		FROM families
		ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var families []*domain.Family
	for rows.Next() {
		var f domain.Family
		if err := rows.Scan(&f.ID, &f.Name, &f.CreatedDate); err != nil {
			return nil, err
		}
		families = append(families, &f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return families, nil
}

func (r *familyRepository) Delete(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM families WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
