package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"familyinvitations/internal/domain"
)

func TestFamilyRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`INSERT INTO families`).
		WithArgs("Ruiz", created).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("fam-uuid-1"))

	repo := NewFamilyRepository(db)
	f := domain.NewFamily("Ruiz", created)
	require.NoError(t, repo.Create(context.Background(), f))
	require.Equal(t, "fam-uuid-1", f.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFamilyRepository_GetByID(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		id      string
		mock    func(mock sqlmock.Sqlmock)
		want    *domain.Family
		wantErr error
	}{
		{
			name: "found",
			id:   "fam-uuid-1",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, name, created_date\s+FROM families\s+WHERE id = \$1`).
					WithArgs("fam-uuid-1").
					WillReturnRows(sqlmock.NewRows([]string{"id", "name", "created_date"}).
						AddRow("fam-uuid-1", "Ruiz", created))
			},
			want: &domain.Family{ID: "fam-uuid-1", Name: "Ruiz", CreatedDate: created},
		},
		{
			name: "missing row maps to not found",
			id:   "gone",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, name, created_date\s+FROM families\s+WHERE id = \$1`).
					WithArgs("gone").
					WillReturnError(sql.ErrNoRows)
			},
			wantErr: domain.ErrNotFound,
		},
		{
			name: "db error passes through",
			id:   "fam-uuid-1",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, name, created_date\s+FROM families\s+WHERE id = \$1`).
					WithArgs("fam-uuid-1").
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: sql.ErrConnDone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()
			tt.mock(mock)

			repo := NewFamilyRepository(db)
			got, err := repo.GetByID(ctx, tt.id)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestFamilyRepository_GetByName(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`WHERE lower\(name\) = lower\(\$1\)`).
		WithArgs("ruiz").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "created_date"}).
			AddRow("fam-uuid-1", "Ruiz", created))

	repo := NewFamilyRepository(db)
	got, err := repo.GetByName(context.Background(), "ruiz")
	require.NoError(t, err)
	require.Equal(t, "Ruiz", got.Name)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFamilyRepository_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT id, name, created_date\s+FROM families\s+ORDER BY name`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "created_date"}).
			AddRow("fam-uuid-1", "Ruiz", created).
			AddRow("fam-uuid-2", "Soto", created))

	repo := NewFamilyRepository(db)
	got, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "Ruiz", got[0].Name)
	require.Equal(t, "Soto", got[1].Name)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFamilyRepository_Delete(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "deleted",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM families WHERE id = \$1`).
					WithArgs("fam-uuid-1").
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "no rows affected maps to not found",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM families WHERE id = \$1`).
					WithArgs("fam-uuid-1").
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			wantErr: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()
			tt.mock(mock)

			repo := NewFamilyRepository(db)
			err = repo.Delete(ctx, "fam-uuid-1")
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
