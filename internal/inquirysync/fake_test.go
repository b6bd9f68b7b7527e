package inquirysync

import (
	"context"
	"errors"
	"sync"

	"github.com/devport/portfolio/internal/core/domain"
)

var errStoreDown = errors.New("store unavailable")

// fakeStore is a shared in-memory store standing in for the remote one.
type fakeStore struct {
	mu        sync.Mutex
	inquiries map[string]domain.ServiceInquiry
	messages  map[string][]domain.InquiryMessage
	contact   []domain.ContactMessage

	failAppend bool
	failStatus bool
	failDelete bool
	failLists  bool

	// gate, when set, blocks ListMessages until it is closed.
	gate chan struct{}

	calls map[string]int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		inquiries: make(map[string]domain.ServiceInquiry),
		messages:  make(map[string][]domain.InquiryMessage),
		calls:     make(map[string]int),
	}
}

func (s *fakeStore) count(op string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[op]
}

func (s *fakeStore) totalCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, c := range s.calls {
		n += c
	}
	return n
}

func (s *fakeStore) putInquiry(inq domain.ServiceInquiry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inquiries[inq.ID] = inq
}

func (s *fakeStore) putMessage(m domain.InquiryMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages[m.InquiryID] = append(s.messages[m.InquiryID], m)
}

func (s *fakeStore) ListInquiries(_ context.Context, clientID string) ([]domain.ServiceInquiry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls["ListInquiries"]++
	if s.failLists {
		return nil, errStoreDown
	}
	out := make([]domain.ServiceInquiry, 0, len(s.inquiries))
	for _, inq := range s.inquiries {
		if clientID == "" || inq.ClientID == clientID {
			out = append(out, inq)
		}
	}
	return out, nil
}

func (s *fakeStore) ListMessages(_ context.Context, inquiryID string) ([]domain.InquiryMessage, error) {
	s.mu.Lock()
	gate := s.gate
	s.calls["ListMessages"]++
	s.mu.Unlock()

	if gate != nil {
		<-gate
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failLists {
		return nil, errStoreDown
	}
	// Reverse order so callers must sort.
	src := s.messages[inquiryID]
	out := make([]domain.InquiryMessage, 0, len(src))
	for i := len(src) - 1; i >= 0; i-- {
		out = append(out, src[i])
	}
	return out, nil
}

func (s *fakeStore) AppendMessage(_ context.Context, msg domain.InquiryMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls["AppendMessage"]++
	if s.failAppend {
		return errStoreDown
	}
	s.messages[msg.InquiryID] = append(s.messages[msg.InquiryID], msg)
	return nil
}

func (s *fakeStore) UpdateStatus(_ context.Context, id string, status domain.InquiryStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls["UpdateStatus"]++
	if s.failStatus {
		return errStoreDown
	}
	inq, ok := s.inquiries[id]
	if !ok {
		return domain.ErrInquiryNotFound
	}
	inq.Status = status
	s.inquiries[id] = inq
	return nil
}

func (s *fakeStore) DeleteInquiry(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls["DeleteInquiry"]++
	if s.failDelete {
		return errStoreDown
	}
	delete(s.inquiries, id)
	delete(s.messages, id)
	return nil
}

func (s *fakeStore) ListContactMessages(_ context.Context) ([]domain.ContactMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls["ListContactMessages"]++
	if s.failLists {
		return nil, errStoreDown
	}
	return append([]domain.ContactMessage(nil), s.contact...), nil
}

func (s *fakeStore) DeleteContactMessage(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls["DeleteContactMessage"]++
	if s.failDelete {
		return errStoreDown
	}
	kept := s.contact[:0]
	for _, m := range s.contact {
		if m.ID != id {
			kept = append(kept, m)
		}
	}
	s.contact = kept
	return nil
}

type recordedNotices struct {
	mu      sync.Mutex
	actions []string
}

func (r *recordedNotices) Failure(action string, _ error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.actions = append(r.actions, action)
}

func (r *recordedNotices) list() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.actions...)
}

type recordingNotifier struct {
	mu    sync.Mutex
	notes []Notification
	cues  int
}

func (n *recordingNotifier) Notify(_ context.Context, note Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notes = append(n.notes, note)
}

func (n *recordingNotifier) PlayCue(context.Context) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.cues++
}

func (n *recordingNotifier) counts() (int, int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.notes), n.cues
}
