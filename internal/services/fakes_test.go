package services

import (
	"context"
	"log/slog"
	"time"

	"familyinvitations/internal/domain"
)

// In-memory fakes shared by the service tests. Behavior is overridden per
// test through the function fields; calls are counted for the store-call
// assertions.

type fakeFamilyRepo struct {
	createFn    func(ctx context.Context, f *domain.Family) error
	getByIDFn   func(ctx context.Context, id string) (*domain.Family, error)
	getByNameFn func(ctx context.Context, name string) (*domain.Family, error)
	listFn      func(ctx context.Context) ([]*domain.Family, error)
	deleteFn    func(ctx context.Context, id string) error
	calls       int
}

func (r *fakeFamilyRepo) Create(ctx context.Context, f *domain.Family) error {
	r.calls++
	if r.createFn != nil {
		return r.createFn(ctx, f)
	}
	return nil
}

func (r *fakeFamilyRepo) GetByID(ctx context.Context, id string) (*domain.Family, error) {
	r.calls++
	if r.getByIDFn != nil {
		return r.getByIDFn(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (r *fakeFamilyRepo) GetByName(ctx context.Context, name string) (*domain.Family, error) {
	r.calls++
	if r.getByNameFn != nil {
		return r.getByNameFn(ctx, name)
	}
	return nil, domain.ErrNotFound
}

func (r *fakeFamilyRepo) List(ctx context.Context) ([]*domain.Family, error) {
	r.calls++
	if r.listFn != nil {
		return r.listFn(ctx)
	}
	return nil, nil
}

func (r *fakeFamilyRepo) Delete(ctx context.Context, id string) error {
	r.calls++
	if r.deleteFn != nil {
		return r.deleteFn(ctx, id)
	}
	return nil
}

type fakeInvitationRepo struct {
	createFn        func(ctx context.Context, inv *domain.Invitation) error
	getByFamilyIDFn func(ctx context.Context, familyID string) (*domain.Invitation, error)
	listFn          func(ctx context.Context) ([]*domain.Invitation, error)
	deleteFn        func(ctx context.Context, id string) error
	calls           int
	created         []*domain.Invitation
}

func (r *fakeInvitationRepo) Create(ctx context.Context, inv *domain.Invitation) error {
	r.calls++
	if r.createFn != nil {
		return r.createFn(ctx, inv)
	}
	r.created = append(r.created, inv)
	return nil
}

func (r *fakeInvitationRepo) GetByFamilyID(ctx context.Context, familyID string) (*domain.Invitation, error) {
	r.calls++
	if r.getByFamilyIDFn != nil {
		return r.getByFamilyIDFn(ctx, familyID)
	}
	return nil, domain.ErrNotFound
}

func (r *fakeInvitationRepo) List(ctx context.Context) ([]*domain.Invitation, error) {
	r.calls++
	if r.listFn != nil {
		return r.listFn(ctx)
	}
	return nil, nil
}

func (r *fakeInvitationRepo) Delete(ctx context.Context, id string) error {
	r.calls++
	if r.deleteFn != nil {
		return r.deleteFn(ctx, id)
	}
	return nil
}

type fakeUserRepo struct {
	getByEmailFn  func(ctx context.Context, email string) (*domain.SystemUser, error)
	getByIDFn     func(ctx context.Context, id string) (*domain.SystemUser, error)
	updateTokenFn func(ctx context.Context, id, token string) error
}

func (r *fakeUserRepo) Create(ctx context.Context, u *domain.SystemUser) error { return nil }

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.SystemUser, error) {
	if r.getByEmailFn != nil {
		return r.getByEmailFn(ctx, email)
	}
	return nil, domain.ErrUserNotFound
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.SystemUser, error) {
	if r.getByIDFn != nil {
		return r.getByIDFn(ctx, id)
	}
	return nil, domain.ErrUserNotFound
}

func (r *fakeUserRepo) UpdateToken(ctx context.Context, id, token string) error {
	if r.updateTokenFn != nil {
		return r.updateTokenFn(ctx, id, token)
	}
	return nil
}

type fakeHasher struct {
	compareFn func(hash, salt, password string) error
}

func (h *fakeHasher) GenerateSalt() (string, error) { return "salt", nil }

func (h *fakeHasher) Hash(salt, password string) (string, error) { return salt + ":" + password, nil }

func (h *fakeHasher) Compare(hash, salt, password string) error {
	if h.compareFn != nil {
		return h.compareFn(hash, salt, password)
	}
	if hash != salt+":"+password {
		return domain.ErrInvalidCredentials
	}
	return nil
}

type fakeTokenIssuer struct {
	issueFn func(userID, email string, expiry time.Duration) (string, error)
}

func (i *fakeTokenIssuer) Issue(userID, email string, expiry time.Duration) (string, error) {
	if i.issueFn != nil {
		return i.issueFn(userID, email, expiry)
	}
	return "token-" + userID, nil
}

type fakeMailer struct {
	sendFn func(to, subject, html, text string) error
	sent   int
}

func (m *fakeMailer) Send(to, subject, html, text string) error {
	m.sent++
	if m.sendFn != nil {
		return m.sendFn(to, subject, html, text)
	}
	return nil
}

type fakeEmailService struct {
	sendFn func(ctx context.Context, data *domain.ResponseRecordedEmailData) error
	sent   []*domain.ResponseRecordedEmailData
}

func (s *fakeEmailService) SendResponseRecorded(ctx context.Context, data *domain.ResponseRecordedEmailData) error {
	s.sent = append(s.sent, data)
	if s.sendFn != nil {
		return s.sendFn(ctx, data)
	}
	return nil
}

type fakeChangeFeed struct {
	ch chan struct{}
}

func newFakeChangeFeed() *fakeChangeFeed {
	return &fakeChangeFeed{ch: make(chan struct{}, 8)}
}

func (f *fakeChangeFeed) Subscribe(ctx context.Context, channel string) (<-chan struct{}, error) {
	out := make(chan struct{})
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-f.ch:
				if !ok {
					return
				}
				select {
				case out <- struct{}{}:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}

func (f *fakeChangeFeed) fire() { f.ch <- struct{}{} }

type fakeSpreadsheetBuilder struct {
	buildFn     func(sheetName string, headers []string, rows [][]string) ([]byte, error)
	lastSheet   string
	lastHeaders []string
	lastRows    [][]string
}

func (b *fakeSpreadsheetBuilder) Build(sheetName string, headers []string, rows [][]string) ([]byte, error) {
	b.lastSheet = sheetName
	b.lastHeaders = headers
	b.lastRows = rows
	if b.buildFn != nil {
		return b.buildFn(sheetName, headers, rows)
	}
	return []byte("xlsx"), nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
