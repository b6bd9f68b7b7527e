package handler

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/devport/portfolio/internal/api/middleware"
	"github.com/devport/portfolio/internal/core/domain"
	"github.com/devport/portfolio/internal/core/ports"
	"github.com/devport/portfolio/internal/inquirysync"
	"github.com/devport/portfolio/internal/session"
)

const testSecret = "test-secret"

var (
	adminUser  = &domain.Identity{ID: "admin-001", Name: "Admin", Email: "admin@devport.dev", Role: domain.RoleAdmin}
	clientUser = &domain.Identity{ID: "u-1", Name: "Laravel Client", Email: "client@example.com", Role: domain.RoleUser}
)

// request describes one call through the Session middleware into a handler.
type request struct {
	method   string
	path     string
	body     string
	identity *domain.Identity
	params   map[string]string
	headers  map[string]string
}

// call runs h for req and returns the recorder and the handler's error. When
// req.identity is set, a real session is started and its token sent.
func call(t *testing.T, h echo.HandlerFunc, req request) (*httptest.ResponseRecorder, error) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()

	sessions := session.NewManager(session.NewMemoryBackend(), zerolog.Nop())

	httpReq := httptest.NewRequest(req.method, req.path, strings.NewReader(req.body))
	if req.body != "" {
		httpReq.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for k, v := range req.headers {
		httpReq.Header.Set(k, v)
	}
	if req.identity != nil {
		sid, err := sessions.Start(context.Background(), *req.identity)
		if err != nil {
			t.Fatalf("start session: %v", err)
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"sub": req.identity.ID,
			"sid": sid,
			"exp": time.Now().Add(time.Hour).Unix(),
		}).SignedString([]byte(testSecret))
		if err != nil {
			t.Fatalf("sign token: %v", err)
		}
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	c := e.NewContext(httpReq, rec)
	if len(req.params) > 0 {
		names := make([]string, 0, len(req.params))
		values := make([]string, 0, len(req.params))
		for name, value := range req.params {
			names = append(names, name)
			values = append(values, value)
		}
		c.SetParamNames(names...)
		c.SetParamValues(values...)
	}

	identities := middleware.IdentityLookupFunc(func(_ context.Context, id string) (*domain.Identity, error) {
		if req.identity == nil || req.identity.ID != id {
			return nil, domain.ErrUserNotFound
		}
		stored := *req.identity
		return &stored, nil
	})
	err := middleware.Session(testSecret, sessions, identities, zerolog.Nop())(h)(c)
	return rec, err
}

// --- auth ---

type stubAuthService struct {
	registerFn func(ctx context.Context, in ports.RegisterInput) (*domain.Identity, error)
	loginFn    func(ctx context.Context, email, password string) (*ports.LoginResult, error)
	loggedOut  []string
}

func (s *stubAuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.Identity, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) Logout(_ context.Context, sid string) error {
	s.loggedOut = append(s.loggedOut, sid)
	return nil
}

// --- content ---

type stubContentService struct {
	ports.ContentService
	services []domain.Service
	saved    *domain.Project
}

func (s *stubContentService) Services(context.Context) ([]domain.Service, error) {
	return s.services, nil
}

func (s *stubContentService) SaveProject(_ context.Context, p domain.Project) (*domain.Project, error) {
	if p.ID == "" {
		p.ID = "p-new"
	}
	s.saved = &p
	return &p, nil
}

type fixedLocator struct{ loc domain.LocationData }

func (l fixedLocator) Detect(context.Context, string) domain.LocationData { return l.loc }

// --- inquiries ---

type stubInquiryService struct {
	created  []ports.CreateInquiryInput
	createFn func(in ports.CreateInquiryInput) (*domain.ServiceInquiry, error)
	list     []domain.ServiceInquiry
	statuses map[string]domain.InquiryStatus
}

func (s *stubInquiryService) Create(_ context.Context, in ports.CreateInquiryInput) (*domain.ServiceInquiry, error) {
	s.created = append(s.created, in)
	if s.createFn != nil {
		return s.createFn(in)
	}
	inq := &domain.ServiceInquiry{ID: "inq-1", ServiceID: in.ServiceID, ClientName: in.ClientName, Status: domain.StatusPending}
	if in.Client != nil {
		inq.ClientID = in.Client.ID
		inq.ClientName = in.Client.Name
	}
	return inq, nil
}

func (s *stubInquiryService) List(_ context.Context, actor *domain.Identity) ([]domain.ServiceInquiry, error) {
	if actor.Role == domain.RoleAdmin {
		return s.list, nil
	}
	var own []domain.ServiceInquiry
	for _, inq := range s.list {
		if inq.ClientID == actor.ID {
			own = append(own, inq)
		}
	}
	return own, nil
}

func (s *stubInquiryService) UpdateStatus(_ context.Context, id string, status domain.InquiryStatus) error {
	if s.statuses == nil {
		s.statuses = map[string]domain.InquiryStatus{}
	}
	s.statuses[id] = status
	return nil
}

func (s *stubInquiryService) Delete(context.Context, string) error { return nil }

func (s *stubInquiryService) Messages(_ context.Context, actor *domain.Identity, id string) ([]domain.InquiryMessage, error) {
	if actor.Role != domain.RoleAdmin && id != "inq-1" {
		return nil, domain.ErrForbidden
	}
	return []domain.InquiryMessage{{ID: "m-1", InquiryID: id, Text: "hello"}}, nil
}

func (s *stubInquiryService) PostMessage(_ context.Context, actor *domain.Identity, id, text string) (*domain.InquiryMessage, error) {
	return &domain.InquiryMessage{ID: "m-2", InquiryID: id, SenderID: actor.ID, SenderRole: actor.Role, Text: text}, nil
}

// --- contact ---

type stubContactService struct {
	submitted []ports.ContactInput
	deleted   []string
	list      []domain.ContactMessage
}

func (s *stubContactService) Submit(_ context.Context, in ports.ContactInput) (*domain.ContactMessage, error) {
	s.submitted = append(s.submitted, in)
	return &domain.ContactMessage{ID: "c-1", Name: in.Name, Email: in.Email, Message: in.Message}, nil
}

func (s *stubContactService) List(context.Context) ([]domain.ContactMessage, error) {
	return s.list, nil
}

func (s *stubContactService) Delete(_ context.Context, id string) error {
	s.deleted = append(s.deleted, id)
	return nil
}

type stubInbox struct {
	note    *inquirysync.Notification
	unread  int
	deleted []string
}

func (b *stubInbox) Current() (inquirysync.Notification, bool) {
	if b.note == nil {
		return inquirysync.Notification{}, false
	}
	return *b.note, true
}

func (b *stubInbox) Unread() int { return b.unread }
func (b *stubInbox) MarkRead()   { b.unread = 0 }
func (b *stubInbox) Dismiss()    { b.note = nil }

func (b *stubInbox) DeleteMessage(_ context.Context, id string, confirm inquirysync.Confirmer) (bool, error) {
	if !confirm.Confirm("delete?") {
		return false, nil
	}
	b.deleted = append(b.deleted, id)
	return true, nil
}

// --- accounts ---

type stubUserService struct {
	updated *ports.ProfileInput
	roles   map[string]domain.Role
}

func (s *stubUserService) List(context.Context) ([]domain.Identity, error) {
	return []domain.Identity{*adminUser, *clientUser}, nil
}

func (s *stubUserService) ChangeRole(_ context.Context, _ *domain.Identity, id string, role domain.Role) error {
	if s.roles == nil {
		s.roles = map[string]domain.Role{}
	}
	s.roles[id] = role
	return nil
}

func (s *stubUserService) Delete(_ context.Context, actor *domain.Identity, id string) error {
	if actor.ID == id {
		return domain.ErrSelfDelete
	}
	return nil
}

func (s *stubUserService) UpdateProfile(_ context.Context, actor *domain.Identity, in ports.ProfileInput) (*domain.Identity, error) {
	s.updated = &in
	next := in.Patch.Apply(*actor)
	return &next, nil
}

type stubAdvisor struct{ text string }

func (a stubAdvisor) CareerAdvice(context.Context, []string, string) string { return a.text }

type stubSigner struct{ owner string }

func (s *stubSigner) PresignUpload(_ context.Context, owner, kind, contentType string, size int64) (*ports.UploadTicket, error) {
	s.owner = owner
	return &ports.UploadTicket{UploadURL: "https://minio.local/put", ObjectKey: kind + "/" + owner + "/x.png"}, nil
}
