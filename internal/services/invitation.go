package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"familyinvitations/internal/domain"
)

// Export layout for the invitation list.
var (
	invitationSheetName = "invitations - data"
	invitationHeaders   = []string{
		"ID",
		"Nombre de familia",
		"Padre",
		"Madre",
		"Primer hijo/a",
		"Segundo hijo/a",
		"Cancelador",
		"Aceptación",
	}
)

type invitationService struct {
	repo    domain.InvitationRepository
	feed    domain.ChangeFeed
	builder domain.SpreadsheetBuilder
	logger  *slog.Logger
}

// NewInvitationService creates an InvitationService with the given
// repository, change feed, and spreadsheet builder.
func NewInvitationService(repo domain.InvitationRepository, feed domain.ChangeFeed, builder domain.SpreadsheetBuilder, logger *slog.Logger) domain.InvitationService {
	return &invitationService{
		repo:    repo,
		feed:    feed,
		builder: builder,
		logger:  logger,
	}
}

func (s *invitationService) List(ctx context.Context) ([]*domain.Invitation, error) {
	invitations, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list invitations: %w", err)
	}
	return invitations, nil
}

func (s *invitationService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrInvalidInput
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete invitation: %w", err)
	}
	return nil
}

// Watch emits the current invitation list immediately, then a fresh list on
// every change signal. The output channel closes when ctx is done.
func (s *invitationService) Watch(ctx context.Context) (<-chan []*domain.Invitation, error) {
	signals, err := s.feed.Subscribe(ctx, domain.ChannelInvitations)
	if err != nil {
		return nil, fmt.Errorf("subscribe invitations: %w", err)
	}
	out := make(chan []*domain.Invitation, 1)
	go func() {
		defer close(out)
		for {
			invitations, err := s.repo.List(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				s.logger.ErrorContext(ctx, "invitation watch refresh failed", "err", err)
			} else {
				select {
				case out <- invitations:
				case <-ctx.Done():
					return
				}
			}
			select {
			case _, ok := <-signals:
				if !ok {
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

func (s *invitationService) ExportXLSX(ctx context.Context) ([]byte, error) {
	invitations, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list invitations: %w", err)
	}
	rows := make([][]string, 0, len(invitations))
	for _, inv := range invitations {
		rows = append(rows, []string{
			inv.ID,
			inv.FamilyName,
			inv.FatherName,
			inv.MotherName,
			inv.FirstChildName,
			inv.SecondChildName,
			inv.Canceller,
			strconv.Itoa(inv.Accepted),
		})
	}
	data, err := s.builder.Build(invitationSheetName, invitationHeaders, rows)
	if err != nil {
		return nil, fmt.Errorf("build spreadsheet: %w", err)
	}
	return data, nil
}
