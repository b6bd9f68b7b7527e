package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/devport/portfolio/internal/inquirysync"
)

func TestContactHandler_Submit(t *testing.T) {
	contacts := &stubContactService{}

	rec, err := call(t, NewContactHandler(contacts, nil).Submit, request{
		method:  http.MethodPost,
		path:    "/api/contact",
		body:    `{"name":"Ann","email":"ann@example.com","message":"Hi there"}`,
		headers: map[string]string{"Idempotency-Key": "c-key"},
	})
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if len(contacts.submitted) != 1 || contacts.submitted[0].IdempotencyKey != "c-key" {
		t.Fatalf("unexpected submission: %+v", contacts.submitted)
	}
}

func TestContactHandler_Delete_ThroughInbox(t *testing.T) {
	contacts := &stubContactService{}
	inbox := &stubInbox{}

	rec, err := call(t, NewContactHandler(contacts, inbox).Delete, request{
		method:   http.MethodDelete,
		path:     "/api/admin/messages/c-1",
		params:   map[string]string{"id": "c-1"},
		identity: adminUser,
	})
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if len(inbox.deleted) != 1 || inbox.deleted[0] != "c-1" {
		t.Fatalf("expected inbox delete, got %v", inbox.deleted)
	}
	if len(contacts.deleted) != 0 {
		t.Fatalf("store delete must go through the inbox")
	}
}

func TestContactHandler_Delete_WithoutInbox(t *testing.T) {
	contacts := &stubContactService{}

	if _, err := call(t, NewContactHandler(contacts, nil).Delete, request{
		method:   http.MethodDelete,
		path:     "/api/admin/messages/c-1",
		params:   map[string]string{"id": "c-1"},
		identity: adminUser,
	}); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if len(contacts.deleted) != 1 {
		t.Fatalf("expected direct delete")
	}
}

func TestContactHandler_NotificationsAndMarkRead(t *testing.T) {
	inbox := &stubInbox{
		note:   &inquirysync.Notification{MessageID: "c-9", From: "Ann", Preview: "Hello"},
		unread: 2,
	}
	h := NewContactHandler(&stubContactService{}, inbox)

	rec, err := call(t, h.Notifications, request{method: http.MethodGet, path: "/api/admin/notifications", identity: adminUser})
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp notificationsResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Unread != 2 || resp.Notification == nil || resp.Notification.MessageID != "c-9" {
		t.Fatalf("unexpected notifications: %+v", resp)
	}

	if _, err := call(t, h.MarkRead, request{method: http.MethodPost, path: "/api/admin/notifications/read", identity: adminUser}); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if inbox.unread != 0 || inbox.note != nil {
		t.Fatalf("expected inbox to be read and dismissed")
	}
}

func TestContactHandler_Chime(t *testing.T) {
	rec, err := call(t, NewContactHandler(&stubContactService{}, nil).Chime, request{
		method:   http.MethodGet,
		path:     "/api/admin/notifications/chime.wav",
		identity: adminUser,
	})
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "audio/wav" {
		t.Fatalf("unexpected content type %q", ct)
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("RIFF")) {
		t.Fatalf("expected a RIFF payload")
	}
}
