package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"familyinvitations/internal/domain"
)

type rsvpService struct {
	familyRepo     domain.FamilyRepository
	invitationRepo domain.InvitationRepository
	emailService   domain.EmailService // optional
	hostEmail      string
	logger         *slog.Logger
}

// NewRSVPService creates an RSVPService with the given repositories. The
// email service and host address are optional; when either is empty the
// host notification is skipped.
func NewRSVPService(familyRepo domain.FamilyRepository, invitationRepo domain.InvitationRepository, emailService domain.EmailService, hostEmail string, logger *slog.Logger) domain.RSVPService {
	return &rsvpService{
		familyRepo:     familyRepo,
		invitationRepo: invitationRepo,
		emailService:   emailService,
		hostEmail:      hostEmail,
		logger:         logger,
	}
}

func (s *rsvpService) Resolve(ctx context.Context, familyID string) (domain.Resolution, *domain.Invitation, error) {
	if familyID == "" {
		return domain.ResolutionExpired, nil, nil
	}
	family, err := s.familyRepo.GetByID(ctx, familyID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ResolutionExpired, nil, nil
		}
		return domain.ResolutionExpired, nil, fmt.Errorf("get family: %w", err)
	}
	inv, err := s.invitationRepo.GetByFamilyID(ctx, family.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ResolutionAwaiting, nil, nil
		}
		return domain.ResolutionExpired, nil, fmt.Errorf("get invitation: %w", err)
	}
	return domain.ResolutionAlreadyAnswered, inv, nil
}

func (s *rsvpService) Accept(ctx context.Context, familyID string, names domain.AcceptNames) (*domain.Invitation, error) {
	if names.FatherName == "" && names.MotherName == "" {
		return nil, domain.ErrInvalidInput
	}
	family, existing, err := s.recheck(ctx, familyID)
	if err != nil {
		return existing, err
	}
	inv := &domain.Invitation{
		FamilyID:        family.ID,
		FamilyName:      family.Name,
		FatherName:      names.FatherName,
		MotherName:      names.MotherName,
		FirstChildName:  names.FirstChildName,
		SecondChildName: names.SecondChildName,
		Accepted:        domain.AcceptedYes,
		CreatedDate:     time.Now(),
	}
	if err := s.invitationRepo.Create(ctx, inv); err != nil {
		return nil, fmt.Errorf("create invitation: %w", err)
	}
	s.notify(ctx, inv)
	return inv, nil
}

func (s *rsvpService) Decline(ctx context.Context, familyID, canceller string) (*domain.Invitation, error) {
	if canceller == "" {
		return nil, domain.ErrInvalidInput
	}
	family, existing, err := s.recheck(ctx, familyID)
	if err != nil {
		return existing, err
	}
	inv := &domain.Invitation{
		FamilyID:    family.ID,
		FamilyName:  family.Name,
		Canceller:   canceller,
		Accepted:    domain.AcceptedNo,
		CreatedDate: time.Now(),
	}
	if err := s.invitationRepo.Create(ctx, inv); err != nil {
		return nil, fmt.Errorf("create invitation: %w", err)
	}
	s.notify(ctx, inv)
	return inv, nil
}

// recheck repeats the resolution immediately before a write. It returns the
// family when the submit may proceed. On ErrAlreadyAnswered the existing
// invitation is returned so callers can show the prior answer.
func (s *rsvpService) recheck(ctx context.Context, familyID string) (*domain.Family, *domain.Invitation, error) {
	family, err := s.familyRepo.GetByID(ctx, familyID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, domain.ErrNotFound
		}
		return nil, nil, fmt.Errorf("get family: %w", err)
	}
	existing, err := s.invitationRepo.GetByFamilyID(ctx, family.ID)
	if err == nil {
		return nil, existing, domain.ErrAlreadyAnswered
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, nil, fmt.Errorf("get invitation: %w", err)
	}
	return family, nil, nil
}

// notify sends the host notification best-effort. A mailer failure is
// logged and never surfaced to the invitee; the response is already saved.
func (s *rsvpService) notify(ctx context.Context, inv *domain.Invitation) {
	if s.emailService == nil || s.hostEmail == "" {
		return
	}
	data := &domain.ResponseRecordedEmailData{
		HostEmail:  s.hostEmail,
		FamilyName: inv.FamilyName,
		Accepted:   inv.Accepted == domain.AcceptedYes,
		Attendees:  domain.FormatAttendees(inv.MotherName, inv.FatherName, inv.FirstChildName, inv.SecondChildName),
		Canceller:  inv.Canceller,
	}
	if err := s.emailService.SendResponseRecorded(ctx, data); err != nil {
		s.logger.WarnContext(ctx, "response notification failed", "family", inv.FamilyName, "err", err)
	}
}
