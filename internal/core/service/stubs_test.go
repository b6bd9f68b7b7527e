package service

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/devport/portfolio/internal/core/domain"
	"github.com/devport/portfolio/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Identity
// ---------------------------------------------------------------------------

type stubIdentityRepo struct {
	users     map[string]*domain.Identity
	deleted   []string
	deleteErr error
}

func newStubIdentityRepo() *stubIdentityRepo {
	return &stubIdentityRepo{users: make(map[string]*domain.Identity)}
}

func cloneIdentity(u *domain.Identity) *domain.Identity {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}

func (r *stubIdentityRepo) Create(_ context.Context, u *domain.Identity) error {
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return domain.ErrUserExists
		}
	}
	r.users[u.ID] = cloneIdentity(u)
	return nil
}

func (r *stubIdentityRepo) Upsert(_ context.Context, u *domain.Identity) error {
	if _, ok := r.users[u.ID]; !ok {
		r.users[u.ID] = cloneIdentity(u)
	}
	return nil
}

func (r *stubIdentityRepo) FindByID(_ context.Context, id string) (*domain.Identity, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneIdentity(u), nil
}

func (r *stubIdentityRepo) FindByEmail(_ context.Context, email string) (*domain.Identity, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneIdentity(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubIdentityRepo) List(context.Context) ([]domain.Identity, error) {
	out := make([]domain.Identity, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *stubIdentityRepo) UpdateRole(_ context.Context, id string, role domain.Role) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Role = role
	return nil
}

func (r *stubIdentityRepo) UpdateProfile(_ context.Context, id string, patch domain.IdentityPatch, hash string) (*domain.Identity, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	updated := patch.Apply(*u)
	if hash != "" {
		updated.PasswordHash = hash
	}
	r.users[id] = &updated
	return cloneIdentity(&updated), nil
}

func (r *stubIdentityRepo) Delete(_ context.Context, id string) error {
	r.deleted = append(r.deleted, id)
	if r.deleteErr != nil {
		return r.deleteErr
	}
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

type stubSessions struct {
	started []domain.Identity
	ended   []string
	err     error
}

func (s *stubSessions) Start(_ context.Context, identity domain.Identity) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.started = append(s.started, identity)
	return "sid-1", nil
}

func (s *stubSessions) End(_ context.Context, sid string) error {
	s.ended = append(s.ended, sid)
	return nil
}

// ---------------------------------------------------------------------------
// Inquiries
// ---------------------------------------------------------------------------

type stubInquiryRepo struct {
	byID      map[string]*domain.ServiceInquiry
	createErr error
	listedFor []string
}

func newStubInquiryRepo() *stubInquiryRepo {
	return &stubInquiryRepo{byID: make(map[string]*domain.ServiceInquiry)}
}

func (r *stubInquiryRepo) Create(_ context.Context, inq *domain.ServiceInquiry) error {
	if r.createErr != nil {
		return r.createErr
	}
	c := *inq
	r.byID[inq.ID] = &c
	return nil
}

func (r *stubInquiryRepo) FindByID(_ context.Context, id string) (*domain.ServiceInquiry, error) {
	inq, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrInquiryNotFound
	}
	c := *inq
	return &c, nil
}

func (r *stubInquiryRepo) List(_ context.Context, clientID string) ([]domain.ServiceInquiry, error) {
	r.listedFor = append(r.listedFor, clientID)
	out := []domain.ServiceInquiry{}
	for _, inq := range r.byID {
		if clientID == "" || inq.ClientID == clientID {
			out = append(out, *inq)
		}
	}
	return out, nil
}

func (r *stubInquiryRepo) UpdateStatus(_ context.Context, id string, status domain.InquiryStatus) error {
	inq, ok := r.byID[id]
	if !ok {
		return domain.ErrInquiryNotFound
	}
	inq.Status = status
	return nil
}

func (r *stubInquiryRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrInquiryNotFound
	}
	delete(r.byID, id)
	return nil
}

type stubMessageRepo struct {
	msgs      []domain.InquiryMessage
	cleared   []string
	clearErr  error
	appendErr error
}

func (r *stubMessageRepo) Append(_ context.Context, m *domain.InquiryMessage) error {
	if r.appendErr != nil {
		return r.appendErr
	}
	r.msgs = append(r.msgs, *m)
	return nil
}

func (r *stubMessageRepo) ListByInquiry(_ context.Context, id string) ([]domain.InquiryMessage, error) {
	out := []domain.InquiryMessage{}
	for _, m := range r.msgs {
		if m.InquiryID == id {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *stubMessageRepo) DeleteByInquiry(_ context.Context, id string) error {
	r.cleared = append(r.cleared, id)
	if r.clearErr != nil {
		return r.clearErr
	}
	kept := r.msgs[:0]
	for _, m := range r.msgs {
		if m.InquiryID != id {
			kept = append(kept, m)
		}
	}
	r.msgs = kept
	return nil
}

type stubGuard struct {
	claimed map[string]bool
	err     error
}

func (g *stubGuard) Claim(_ context.Context, scope, key string) (bool, error) {
	if g.err != nil {
		return false, g.err
	}
	if g.claimed == nil {
		g.claimed = map[string]bool{}
	}
	k := scope + ":" + key
	if g.claimed[k] {
		return false, nil
	}
	g.claimed[k] = true
	return true, nil
}

type stubSink struct {
	mu  sync.Mutex
	got []ports.InquiryActivity
}

func (s *stubSink) Enqueue(a ports.InquiryActivity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.got = append(s.got, a)
}

func (s *stubSink) kinds() []ports.ActivityKind {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]ports.ActivityKind, len(s.got))
	for i, a := range s.got {
		out[i] = a.Kind
	}
	return out
}

// ---------------------------------------------------------------------------
// Content
// ---------------------------------------------------------------------------

type stubServiceRepo struct {
	byID map[string]domain.Service
}

func newStubServiceRepo(services ...domain.Service) *stubServiceRepo {
	r := &stubServiceRepo{byID: map[string]domain.Service{}}
	for _, s := range services {
		r.byID[s.ID] = s
	}
	return r
}

func (r *stubServiceRepo) List(context.Context) ([]domain.Service, error) {
	out := []domain.Service{}
	for _, s := range r.byID {
		out = append(out, s)
	}
	return out, nil
}

func (r *stubServiceRepo) FindByID(_ context.Context, id string) (*domain.Service, error) {
	s, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrServiceNotFound
	}
	return &s, nil
}

func (r *stubServiceRepo) Save(_ context.Context, s *domain.Service) error {
	r.byID[s.ID] = *s
	return nil
}

func (r *stubServiceRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrServiceNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *stubServiceRepo) Count(context.Context) (int64, error) { return int64(len(r.byID)), nil }

type stubProjectRepo struct {
	byID map[string]domain.Project
}

func newStubProjectRepo() *stubProjectRepo {
	return &stubProjectRepo{byID: map[string]domain.Project{}}
}

func (r *stubProjectRepo) List(context.Context) ([]domain.Project, error) {
	out := []domain.Project{}
	for _, p := range r.byID {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *stubProjectRepo) FindByID(_ context.Context, id string) (*domain.Project, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrProjectNotFound
	}
	return &p, nil
}

func (r *stubProjectRepo) Save(_ context.Context, p *domain.Project) error {
	r.byID[p.ID] = *p
	return nil
}

func (r *stubProjectRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrProjectNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *stubProjectRepo) Count(context.Context) (int64, error) { return int64(len(r.byID)), nil }

type stubReviewRepo struct {
	reviews []domain.Review
}

func (r *stubReviewRepo) ListByProject(_ context.Context, projectID string) ([]domain.Review, error) {
	out := []domain.Review{}
	for _, rv := range r.reviews {
		if rv.ProjectID == projectID {
			out = append(out, rv)
		}
	}
	return out, nil
}

func (r *stubReviewRepo) Add(_ context.Context, rv *domain.Review) error {
	r.reviews = append(r.reviews, *rv)
	return nil
}

type stubAboutRepo struct {
	about *domain.AboutData
	saves int
}

func (r *stubAboutRepo) Get(context.Context) (*domain.AboutData, error) {
	if r.about == nil {
		return nil, domain.ErrAboutMissing
	}
	c := *r.about
	return &c, nil
}

func (r *stubAboutRepo) Save(_ context.Context, a *domain.AboutData) error {
	c := *a
	r.about = &c
	r.saves++
	return nil
}

func (r *stubAboutRepo) Exists(context.Context) (bool, error) { return r.about != nil, nil }

type stubContactRepo struct {
	msgs    []domain.ContactMessage
	saveErr error
}

func (r *stubContactRepo) Save(_ context.Context, m *domain.ContactMessage) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.msgs = append(r.msgs, *m)
	return nil
}

func (r *stubContactRepo) List(context.Context) ([]domain.ContactMessage, error) {
	return append([]domain.ContactMessage(nil), r.msgs...), nil
}

func (r *stubContactRepo) Delete(_ context.Context, id string) error {
	for i, m := range r.msgs {
		if m.ID == id {
			r.msgs = append(r.msgs[:i], r.msgs[i+1:]...)
			return nil
		}
	}
	return domain.ErrMessageNotFound
}

var errStore = errors.New("store unavailable")
