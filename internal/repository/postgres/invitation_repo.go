package postgres

import (
	"context"
	"database/sql"

	"familyinvitations/internal/domain"
)

type invitationRepository struct {
	DB *sql.DB
}

// NewInvitationRepository returns a domain.InvitationRepository implemented with Postgres.
func NewInvitationRepository(db *sql.DB) domain.InvitationRepository {
	return &invitationRepository{DB: db}
}

func (r *invitationRepository) Create(ctx context.Context, inv *domain.Invitation) error {
	query := `
		INSERT INTO invitations (family_id, family_name, father_name, mother_name, first_child_name, second_child_name, canceller, accepted, created_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		inv.FamilyID,
		inv.FamilyName,
		nullable(inv.FatherName),
		nullable(inv.MotherName),
		nullable(inv.FirstChildName),
		nullable(inv.SecondChildName),
		nullable(inv.Canceller),
		inv.Accepted,
		inv.CreatedDate,
	).Scan(&inv.ID)
}

func (r *invitationRepository) GetByFamilyID(ctx context.Context, familyID string) (*domain.Invitation, error) {
	query := `
		SELECT id, family_id, family_name, father_name, mother_name, first_child_name, second_child_name, canceller, accepted, created_date
		FROM invitations
		WHERE family_id = $1
		ORDER BY created_date
		LIMIT 1
	`
	inv, err := scanInvitation(r.DB.QueryRowContext(ctx, query, familyID))
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return inv, nil
}

func (r *invitationRepository) List(ctx context.Context) ([]*domain.Invitation, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, family_id, family_name, father_name, mother_name, first_child_name, second_child_name, canceller, accepted, created_date
		FROM invitations
		ORDER BY family_name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invitations []*domain.Invitation
	for rows.Next() {
		inv, err := scanInvitation(rows)
		if err != nil {
			return nil, err
		}
		invitations = append(invitations, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return invitations, nil
}

func (r *invitationRepository) Delete(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM invitations WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanInvitation(row rowScanner) (*domain.Invitation, error) {
	inv := &domain.Invitation{}
	var father, mother, firstChild, secondChild, canceller sql.NullString
	err := row.Scan(
		&inv.ID,
		&inv.FamilyID,
		&inv.FamilyName,
		&father,
		&mother,
		&firstChild,
		&secondChild,
		&canceller,
		&inv.Accepted,
		&inv.CreatedDate,
	)
	if err != nil {
		return nil, err
	}
	inv.FatherName = father.String
	inv.MotherName = mother.String
	inv.FirstChildName = firstChild.String
	inv.SecondChildName = secondChild.String
	inv.Canceller = canceller.String
	return inv, nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
