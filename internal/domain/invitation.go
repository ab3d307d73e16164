package domain

import (
	"context"
	"errors"
	"time"
)

// Accepted flag values, mirroring the stored 0/1 column.
const (
	AcceptedNo  = 0
	AcceptedYes = 1
)

// ErrAlreadyAnswered is returned when a family already has a persisted
// response at submit time. There is at most one invitation per family,
// enforced by re-querying before insert rather than by a DB constraint.
var ErrAlreadyAnswered = errors.New("invitation already answered")

// Invitation is the persisted response record (accept or decline) for a
// family. FamilyName is a denormalized snapshot taken at submit time, so
// the record stays readable after the family row is deleted.
// swagger:model Invitation
type Invitation struct {
	ID              string    `json:"id"`
	FamilyID        string    `json:"family_id"`
	FamilyName      string    `json:"family_name"`
	FatherName      string    `json:"father_name,omitempty"`
	MotherName      string    `json:"mother_name,omitempty"`
	FirstChildName  string    `json:"first_child_name,omitempty"`
	SecondChildName string    `json:"second_child_name,omitempty"`
	Canceller       string    `json:"canceller,omitempty"`
	Accepted        int       `json:"accepted"`
	CreatedDate     time.Time `json:"created_date"`
}

// InvitationRepository defines the interface for invitation storage
type InvitationRepository interface {
	Create(ctx context.Context, inv *Invitation) error
	// GetByFamilyID returns the single invitation referencing the family,
	// or ErrNotFound when the family has not answered yet.
	GetByFamilyID(ctx context.Context, familyID string) (*Invitation, error)
	// List returns all invitations ordered by family_name ascending.
	List(ctx context.Context) ([]*Invitation, error)
	Delete(ctx context.Context, id string) error
}

// InvitationService defines the admin operations on invitations.
type InvitationService interface {
	List(ctx context.Context) ([]*Invitation, error)
	Delete(ctx context.Context, id string) error
	// Watch pushes a fresh invitation list on every change until ctx is done.
	Watch(ctx context.Context) (<-chan []*Invitation, error)
	// ExportXLSX renders the full invitation list as a spreadsheet.
	ExportXLSX(ctx context.Context) ([]byte, error)
}
