package minio

import (
	"context"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/devport/portfolio/internal/core/domain"
)

// A known region lets minio-go presign without contacting the server.
func newTestUploads(t *testing.T, publicBase string) *Uploads {
	t.Helper()
	u, err := newUploads(Config{
		Endpoint:      "http://127.0.0.1:9000",
		AccessKey:     "devport",
		SecretKey:     "devport-secret",
		Bucket:        "portfolio",
		Region:        "us-east-1",
		PublicBaseURL: publicBase,
		MaxSizeBytes:  1 << 20,
	})
	require.NoError(t, err)
	return u
}

func TestPresignUpload_OK(t *testing.T) {
	s := newTestUploads(t, "https://utfs.io/f/")

	ticket, err := s.PresignUpload(context.Background(), "admin-001", KindAvatar, "image/png", 512)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(ticket.ObjectKey, "avatars/admin-001/"))
	require.True(t, strings.HasSuffix(ticket.ObjectKey, ".png"))
	require.Equal(t, "https://utfs.io/f/"+ticket.ObjectKey, ticket.PublicURL)
	require.Equal(t, "image/png", ticket.RequiredHeader["Content-Type"])
	require.Equal(t, "512", ticket.RequiredHeader["Content-Length"])
	require.Equal(t, defaultPresignTTL, ticket.Expires)

	u, err := url.Parse(ticket.UploadURL)
	require.NoError(t, err)
	require.Equal(t, "127.0.0.1:9000", u.Host)
	require.Equal(t, "/portfolio/"+ticket.ObjectKey, u.Path)
	require.NotEmpty(t, u.Query().Get("X-Amz-Signature"))
}

func TestPresignUpload_DefaultPublicBase(t *testing.T) {
	s := newTestUploads(t, "")

	ticket, err := s.PresignUpload(context.Background(), "1", KindProject, "image/jpeg", 10)
	require.NoError(t, err)
	require.Equal(t, "http://127.0.0.1:9000/portfolio/"+ticket.ObjectKey, ticket.PublicURL)
}

func TestPresignUpload_Rejects(t *testing.T) {
	s := newTestUploads(t, "")
	ctx := context.Background()

	cases := []struct {
		name        string
		kind        string
		contentType string
		size        int64
	}{
		{"zero size", KindAvatar, "image/png", 0},
		{"too large", KindAvatar, "image/png", 2 << 20},
		{"gif", KindAvatar, "image/gif", 10},
		{"unknown kind", "documents", "image/png", 10},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.PresignUpload(ctx, "u1", tc.kind, tc.contentType, tc.size)
			require.ErrorIs(t, err, domain.ErrInvalidUpload)
		})
	}
}
