package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"familyinvitations/internal/domain"
)

// Export layout for the family list.
var (
	familySheetName = "families - data"
	familyHeaders   = []string{"ID", "Nombre"}
)

type familyService struct {
	repo    domain.FamilyRepository
	feed    domain.ChangeFeed
	builder domain.SpreadsheetBuilder
	logger  *slog.Logger
}

// NewFamilyService creates a FamilyService with the given repository,
// change feed, and spreadsheet builder.
func NewFamilyService(repo domain.FamilyRepository, feed domain.ChangeFeed, builder domain.SpreadsheetBuilder, logger *slog.Logger) domain.FamilyService {
	return &familyService{
		repo:    repo,
		feed:    feed,
		builder: builder,
		logger:  logger,
	}
}

func (s *familyService) Create(ctx context.Context, name string) (*domain.Family, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	_, err := s.repo.GetByName(ctx, name)
	if err == nil {
		return nil, domain.ErrDuplicateFamily
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("check family name: %w", err)
	}
	family := domain.NewFamily(name, time.Now())
	if err := s.repo.Create(ctx, family); err != nil {
		return nil, fmt.Errorf("create family: %w", err)
	}
	return family, nil
}

func (s *familyService) List(ctx context.Context) ([]*domain.Family, error) {
	families, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list families: %w", err)
	}
	return families, nil
}

func (s *familyService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrInvalidInput
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete family: %w", err)
	}
	return nil
}

// Watch emits the current family list immediately, then a fresh list on
// every change signal. The output channel closes when ctx is done.
func (s *familyService) Watch(ctx context.Context) (<-chan []*domain.Family, error) {
	signals, err := s.feed.Subscribe(ctx, domain.ChannelFamilies)
	if err != nil {
		return nil, fmt.Errorf("subscribe families: %w", err)
	}
	out := make(chan []*domain.Family, 1)
	go func() {
		defer close(out)
		for {
			families, err := s.repo.List(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				s.logger.ErrorContext(ctx, "family watch refresh failed", "err", err)
			} else {
				select {
				case out <- families:
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

func (s *familyService) ExportXLSX(ctx context.Context) ([]byte, error) {
	families, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list families: %w", err)
	}
	rows := make([][]string, 0, len(families))
	for _, f := range families {
		rows = append(rows, []string{f.ID, f.Name})
	}
	data, err := s.builder.Build(familySheetName, familyHeaders, rows)
	if err != nil {
		return nil, fmt.Errorf("build spreadsheet: %w", err)
	}
	return data, nil
}
