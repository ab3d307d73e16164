package domain

import "context"

// Resolution is the read-only determination of a link's current status
// before any write.
type Resolution int

const (
	// ResolutionExpired: the family does not exist (deleted or never created).
	ResolutionExpired Resolution = iota
	// ResolutionAwaiting: the family exists and has not answered yet.
	ResolutionAwaiting
	// ResolutionAlreadyAnswered: a response is already persisted.
	ResolutionAlreadyAnswered
)

// AcceptNames carries the four name fields of an accept submission.
type AcceptNames struct {
	FatherName      string
	MotherName      string
	FirstChildName  string
	SecondChildName string
}

// RSVPService drives the invitation response workflow. Accept and Decline
// repeat the resolution re-check immediately before inserting, closing the
// read-check-write window as far as a non-transactional store allows.
type RSVPService interface {
	Resolve(ctx context.Context, familyID string) (Resolution, *Invitation, error)
	// Accept persists an accepted=1 response. On a lost race it returns the
	// existing invitation together with ErrAlreadyAnswered.
	Accept(ctx context.Context, familyID string, names AcceptNames) (*Invitation, error)
	// Decline persists an accepted=0 response carrying the canceller's name.
	Decline(ctx context.Context, familyID, canceller string) (*Invitation, error)
}
