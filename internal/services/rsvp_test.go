package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"familyinvitations/internal/domain"
)

func TestRSVPService_Resolve(t *testing.T) {
	ctx := context.Background()
	family := &domain.Family{ID: "fam-1", Name: "Ruiz"}

	t.Run("missing family resolves expired", func(t *testing.T) {
		famRepo := &fakeFamilyRepo{}
		invRepo := &fakeInvitationRepo{}
		svc := NewRSVPService(famRepo, invRepo, nil, "", testLogger())

		res, inv, err := svc.Resolve(ctx, "gone")
		require.NoError(t, err)
		assert.Equal(t, domain.ResolutionExpired, res)
		assert.Nil(t, inv)
	})

	t.Run("empty id resolves expired without store calls", func(t *testing.T) {
		famRepo := &fakeFamilyRepo{}
		svc := NewRSVPService(famRepo, &fakeInvitationRepo{}, nil, "", testLogger())

		res, _, err := svc.Resolve(ctx, "")
		require.NoError(t, err)
		assert.Equal(t, domain.ResolutionExpired, res)
		assert.Zero(t, famRepo.calls)
	})

	t.Run("existing family without response resolves awaiting", func(t *testing.T) {
		famRepo := &fakeFamilyRepo{
			getByIDFn: func(ctx context.Context, id string) (*domain.Family, error) {
				return family, nil
			},
		}
		svc := NewRSVPService(famRepo, &fakeInvitationRepo{}, nil, "", testLogger())

		res, inv, err := svc.Resolve(ctx, "fam-1")
		require.NoError(t, err)
		assert.Equal(t, domain.ResolutionAwaiting, res)
		assert.Nil(t, inv)
	})

	t.Run("answered family resolves already answered with the record", func(t *testing.T) {
		existing := &domain.Invitation{ID: "inv-1", FamilyID: "fam-1", Accepted: domain.AcceptedYes}
		famRepo := &fakeFamilyRepo{
			getByIDFn: func(ctx context.Context, id string) (*domain.Family, error) {
				return family, nil
			},
		}
		invRepo := &fakeInvitationRepo{
			getByFamilyIDFn: func(ctx context.Context, familyID string) (*domain.Invitation, error) {
				return existing, nil
			},
		}
		svc := NewRSVPService(famRepo, invRepo, nil, "", testLogger())

		res, inv, err := svc.Resolve(ctx, "fam-1")
		require.NoError(t, err)
		assert.Equal(t, domain.ResolutionAlreadyAnswered, res)
		assert.Equal(t, existing, inv)
	})

	t.Run("store failure surfaces the error", func(t *testing.T) {
		famRepo := &fakeFamilyRepo{
			getByIDFn: func(ctx context.Context, id string) (*domain.Family, error) {
				return nil, errors.New("connection reset")
			},
		}
		svc := NewRSVPService(famRepo, &fakeInvitationRepo{}, nil, "", testLogger())

		_, _, err := svc.Resolve(ctx, "fam-1")
		assert.Error(t, err)
	})
}

func TestRSVPService_Accept(t *testing.T) {
	ctx := context.Background()
	family := &domain.Family{ID: "fam-1", Name: "Ruiz"}
	names := domain.AcceptNames{FatherName: "Luis Paz", MotherName: "Ana Ruiz", FirstChildName: "Tom Paz"}

	t.Run("persists an accepted response with the family snapshot", func(t *testing.T) {
		famRepo := &fakeFamilyRepo{
			getByIDFn: func(ctx context.Context, id string) (*domain.Family, error) {
				return family, nil
			},
		}
		invRepo := &fakeInvitationRepo{}
		svc := NewRSVPService(famRepo, invRepo, nil, "", testLogger())

		inv, err := svc.Accept(ctx, "fam-1", names)
		require.NoError(t, err)
		require.Len(t, invRepo.created, 1)
		assert.Equal(t, "fam-1", inv.FamilyID)
		assert.Equal(t, "Ruiz", inv.FamilyName)
		assert.Equal(t, domain.AcceptedYes, inv.Accepted)
		assert.Equal(t, "Luis Paz", inv.FatherName)
		assert.Equal(t, "Tom Paz", inv.FirstChildName)
		assert.False(t, inv.CreatedDate.IsZero())
	})

	t.Run("both parent names empty is invalid input", func(t *testing.T) {
		famRepo := &fakeFamilyRepo{}
		svc := NewRSVPService(famRepo, &fakeInvitationRepo{}, nil, "", testLogger())

		_, err := svc.Accept(ctx, "fam-1", domain.AcceptNames{FirstChildName: "Tom"})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		assert.Zero(t, famRepo.calls)
	})

	t.Run("deleted family at submit time returns not found", func(t *testing.T) {
		invRepo := &fakeInvitationRepo{}
		svc := NewRSVPService(&fakeFamilyRepo{}, invRepo, nil, "", testLogger())

		_, err := svc.Accept(ctx, "fam-1", names)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.Empty(t, invRepo.created)
	})

	t.Run("lost re-check returns the existing invitation", func(t *testing.T) {
		existing := &domain.Invitation{ID: "inv-1", FamilyID: "fam-1", Accepted: domain.AcceptedNo, Canceller: "Eva"}
		famRepo := &fakeFamilyRepo{
			getByIDFn: func(ctx context.Context, id string) (*domain.Family, error) {
				return family, nil
			},
		}
		invRepo := &fakeInvitationRepo{
			getByFamilyIDFn: func(ctx context.Context, familyID string) (*domain.Invitation, error) {
				return existing, nil
			},
		}
		svc := NewRSVPService(famRepo, invRepo, nil, "", testLogger())

		inv, err := svc.Accept(ctx, "fam-1", names)
		assert.ErrorIs(t, err, domain.ErrAlreadyAnswered)
		assert.Equal(t, existing, inv)
		assert.Empty(t, invRepo.created)
	})

	t.Run("notifies the host after the insert", func(t *testing.T) {
		famRepo := &fakeFamilyRepo{
			getByIDFn: func(ctx context.Context, id string) (*domain.Family, error) {
				return family, nil
			},
		}
		email := &fakeEmailService{}
		svc := NewRSVPService(famRepo, &fakeInvitationRepo{}, email, "host@example.com", testLogger())

		_, err := svc.Accept(ctx, "fam-1", names)
		require.NoError(t, err)
		require.Len(t, email.sent, 1)
		assert.Equal(t, "host@example.com", email.sent[0].HostEmail)
		assert.True(t, email.sent[0].Accepted)
		assert.Equal(t, "Ana, Luis y Tom", email.sent[0].Attendees)
	})

	t.Run("mailer failure does not fail the submit", func(t *testing.T) {
		famRepo := &fakeFamilyRepo{
			getByIDFn: func(ctx context.Context, id string) (*domain.Family, error) {
				return family, nil
			},
		}
		email := &fakeEmailService{
			sendFn: func(ctx context.Context, data *domain.ResponseRecordedEmailData) error {
				return errors.New("ses throttled")
			},
		}
		svc := NewRSVPService(famRepo, &fakeInvitationRepo{}, email, "host@example.com", testLogger())

		inv, err := svc.Accept(ctx, "fam-1", names)
		require.NoError(t, err)
		assert.NotNil(t, inv)
	})
}

func TestRSVPService_Decline(t *testing.T) {
	ctx := context.Background()
	family := &domain.Family{ID: "fam-1", Name: "Ruiz"}

	t.Run("persists a declined response with the canceller", func(t *testing.T) {
		famRepo := &fakeFamilyRepo{
			getByIDFn: func(ctx context.Context, id string) (*domain.Family, error) {
				return family, nil
			},
		}
		invRepo := &fakeInvitationRepo{}
		email := &fakeEmailService{}
		svc := NewRSVPService(famRepo, invRepo, email, "host@example.com", testLogger())

		inv, err := svc.Decline(ctx, "fam-1", "Eva Ruiz")
		require.NoError(t, err)
		assert.Equal(t, domain.AcceptedNo, inv.Accepted)
		assert.Equal(t, "Eva Ruiz", inv.Canceller)
		assert.Empty(t, inv.FatherName)
		require.Len(t, email.sent, 1)
		assert.False(t, email.sent[0].Accepted)
		assert.Equal(t, "Eva Ruiz", email.sent[0].Canceller)
	})

	t.Run("empty canceller is invalid input", func(t *testing.T) {
		svc := NewRSVPService(&fakeFamilyRepo{}, &fakeInvitationRepo{}, nil, "", testLogger())

		_, err := svc.Decline(ctx, "fam-1", "")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("lost re-check keeps the first answer", func(t *testing.T) {
		existing := &domain.Invitation{ID: "inv-1", Accepted: domain.AcceptedYes}
		famRepo := &fakeFamilyRepo{
			getByIDFn: func(ctx context.Context, id string) (*domain.Family, error) {
				return family, nil
			},
		}
		invRepo := &fakeInvitationRepo{
			getByFamilyIDFn: func(ctx context.Context, familyID string) (*domain.Invitation, error) {
				return existing, nil
			},
		}
		svc := NewRSVPService(famRepo, invRepo, nil, "", testLogger())

		inv, err := svc.Decline(ctx, "fam-1", "Eva")
		assert.ErrorIs(t, err, domain.ErrAlreadyAnswered)
		assert.Equal(t, existing, inv)
		assert.Empty(t, invRepo.created)
	})
}
