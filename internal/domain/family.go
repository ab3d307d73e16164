package domain

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors shared across repositories and services.
var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput is returned when the request is invalid (e.g. a blank family name).
	ErrInvalidInput = errors.New("invalid input")
	// ErrDuplicateFamily is returned when an active family with the same
	// trimmed, case-insensitive name already exists.
	ErrDuplicateFamily = errors.New("family name already registered")
)

// Family is the unit identified by an invitation link. One family maps to
// at most one persisted response.
// swagger:model Family
type Family struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	CreatedDate time.Time `json:"created_date"`
}

// NewFamily returns a new Family with the given name. ID is set by the
// repository on create.
func NewFamily(name string, createdDate time.Time) *Family {
	return &Family{
		Name:        name,
		CreatedDate: createdDate,
	}
}

// FamilyRepository defines the interface for family storage
type FamilyRepository interface {
	Create(ctx context.Context, f *Family) error
	GetByID(ctx context.Context, id string) (*Family, error)
	// GetByName matches the trimmed name case-insensitively.
	GetByName(ctx context.Context, name string) (*Family, error)
	// List returns all families ordered by name ascending.
	List(ctx context.Context) ([]*Family, error)
	Delete(ctx context.Context, id string) error
}

// FamilyService defines the admin operations on families.
type FamilyService interface {
	Create(ctx context.Context, name string) (*Family, error)
	List(ctx context.Context) ([]*Family, error)
	Delete(ctx context.Context, id string) error
	// Watch pushes a fresh family list on every change until ctx is done.
	Watch(ctx context.Context) (<-chan []*Family, error)
	// ExportXLSX renders the full family list as a spreadsheet.
	ExportXLSX(ctx context.Context) ([]byte, error)
}
