package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devport/portfolio/internal/core/domain"
)

type fakeAPI struct {
	mu       sync.Mutex
	requests []string
	posted   map[string]string
	status   map[string]string
}

func newFakeAPI(t *testing.T) (*fakeAPI, *httptest.Server) {
	t.Helper()
	f := &fakeAPI{posted: map[string]string{}, status: map[string]string{}}
	created := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/admin/inquiries", func(w http.ResponseWriter, r *http.Request) {
		f.record(r)
		_ = json.NewEncoder(w).Encode([]domain.ServiceInquiry{{ID: "i1", ServiceTitle: "Laravel Solutions", Status: domain.StatusPending, CreatedAt: created}})
	})
	mux.HandleFunc("GET /api/dashboard/orders", func(w http.ResponseWriter, r *http.Request) {
		f.record(r)
		_ = json.NewEncoder(w).Encode([]domain.ServiceInquiry{{ID: "i1", ClientID: "u1", Status: domain.StatusPending}})
	})
	mux.HandleFunc("GET /api/dashboard/orders/{id}/messages", func(w http.ResponseWriter, r *http.Request) {
		f.record(r)
		if r.PathValue("id") != "i1" {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":"inquiry not found"}`))
			return
		}
		_ = json.NewEncoder(w).Encode([]domain.InquiryMessage{{ID: "m1", InquiryID: "i1", Text: "hello"}})
	})
	mux.HandleFunc("POST /api/dashboard/orders/{id}/messages", func(w http.ResponseWriter, r *http.Request) {
		f.record(r)
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		f.mu.Lock()
		f.posted[r.PathValue("id")] = body["text"]
		f.mu.Unlock()
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{}`))
	})
	mux.HandleFunc("PATCH /api/admin/inquiries/{id}/status", func(w http.ResponseWriter, r *http.Request) {
		f.record(r)
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		f.mu.Lock()
		f.status[r.PathValue("id")] = body["status"]
		f.mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("DELETE /api/admin/messages/{id}", func(w http.ResponseWriter, r *http.Request) {
		f.record(r)
		w.WriteHeader(http.StatusNotFound)
	})
	mux.HandleFunc("GET /api/admin/messages", func(w http.ResponseWriter, r *http.Request) {
		f.record(r)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"internal server error"}`))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return f, srv
}

func (f *fakeAPI) record(r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, r.Method+" "+r.URL.RequestURI()+" "+r.Header.Get("Authorization"))
}

func TestClient_AdminEndpoints(t *testing.T) {
	api, srv := newFakeAPI(t)
	c := New(srv.URL+"/", "tok", domain.RoleAdmin)
	ctx := context.Background()

	list, err := c.ListInquiries(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Laravel Solutions", list[0].ServiceTitle)

	require.NoError(t, c.UpdateStatus(ctx, "i1", domain.StatusCompleted))
	assert.Equal(t, "completed", api.status["i1"])

	assert.ErrorIs(t, c.DeleteContactMessage(ctx, "c9"), domain.ErrMessageNotFound)

	_, err = c.ListContactMessages(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "internal server error")

	assert.Contains(t, api.requests[0], "GET /api/admin/inquiries?client_id=u1 Bearer tok")
}

func TestClient_ClientEndpoints(t *testing.T) {
	api, srv := newFakeAPI(t)
	c := New(srv.URL, "tok", domain.RoleUser)
	ctx := context.Background()

	list, err := c.ListInquiries(ctx, "ignored")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "GET /api/dashboard/orders Bearer tok", api.requests[0])

	msgs, err := c.ListMessages(ctx, "i1")
	require.NoError(t, err)
	require.Len(t, msgs, 1)

	_, err = c.ListMessages(ctx, "i2")
	assert.ErrorIs(t, err, domain.ErrInquiryNotFound)

	require.NoError(t, c.AppendMessage(ctx, domain.InquiryMessage{InquiryID: "i1", Text: "When can we start?"}))
	assert.Equal(t, "When can we start?", api.posted["i1"])
}

func TestClient_ClientCannotUseAdminOperations(t *testing.T) {
	api, srv := newFakeAPI(t)
	c := New(srv.URL, "tok", domain.RoleUser)
	ctx := context.Background()

	assert.ErrorIs(t, c.UpdateStatus(ctx, "i1", domain.StatusAccepted), domain.ErrForbidden)
	assert.ErrorIs(t, c.DeleteInquiry(ctx, "i1"), domain.ErrForbidden)
	_, err := c.ListContactMessages(ctx)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Empty(t, api.requests, "forbidden operations must not reach the API")
}
