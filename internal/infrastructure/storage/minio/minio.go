// Package minio issues presigned uploads for portfolio images on an
// S3-compatible object store.
package minio

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	mclient "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/devport/portfolio/internal/core/domain"
	"github.com/devport/portfolio/internal/core/ports"
)

const (
	defaultPresignTTL = 15 * time.Minute
	defaultMaxSize    = 5 << 20
)

// Upload kinds, used as the first segment of an object key.
const (
	KindAvatar  = "avatars"
	KindProject = "projects"
	KindSite    = "site"
)

var defaultContentTypes = []string{"image/jpeg", "image/png", "image/webp"}

type Config struct {
	Endpoint            string
	AccessKey           string
	SecretKey           string
	Bucket              string
	Region              string
	PresignTTL          time.Duration
	PublicBaseURL       string
	MaxSizeBytes        int64
	AllowedContentTypes []string
}

// Uploads implements ports.UploadSigner.
type Uploads struct {
	cfg    Config
	client *mclient.Client
}

var _ ports.UploadSigner = (*Uploads)(nil)

// New builds the client and fails fast when the bucket is missing. The
// endpoint may carry an http or https scheme.
func New(ctx context.Context, cfg Config) (*Uploads, error) {
	u, err := newUploads(cfg)
	if err != nil {
		return nil, err
	}

	exists, err := u.client.BucketExists(ctx, u.cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("minio bucket check: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("minio: bucket %q does not exist", u.cfg.Bucket)
	}
	return u, nil
}

func newUploads(cfg Config) (*Uploads, error) {
	if cfg.PresignTTL <= 0 {
		cfg.PresignTTL = defaultPresignTTL
	}
	if cfg.MaxSizeBytes <= 0 {
		cfg.MaxSizeBytes = defaultMaxSize
	}
	if len(cfg.AllowedContentTypes) == 0 {
		cfg.AllowedContentTypes = defaultContentTypes
	}

	endpoint := cfg.Endpoint
	secure := strings.HasPrefix(endpoint, "https://")
	if u, err := url.Parse(endpoint); err == nil && u.Scheme != "" {
		endpoint = u.Host
		secure = u.Scheme == "https"
	}

	client, err := mclient.New(endpoint, &mclient.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: secure,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}

	if cfg.PublicBaseURL == "" {
		scheme := "http"
		if secure {
			scheme = "https"
		}
		cfg.PublicBaseURL = fmt.Sprintf("%s://%s/%s", scheme, endpoint, cfg.Bucket)
	}
	return &Uploads{cfg: cfg, client: client}, nil
}

// PresignUpload returns a PUT URL for one image. Keys look like
// "<kind>/<owner>/<uuid>.<ext>".
func (s *Uploads) PresignUpload(ctx context.Context, ownerID, kind, contentType string, size int64) (*ports.UploadTicket, error) {
	if size <= 0 || size > s.cfg.MaxSizeBytes {
		return nil, fmt.Errorf("%w: size %d", domain.ErrInvalidUpload, size)
	}
	if !allowed(s.cfg.AllowedContentTypes, contentType) {
		return nil, fmt.Errorf("%w: content type %q", domain.ErrInvalidUpload, contentType)
	}
	switch kind {
	case KindAvatar, KindProject, KindSite:
	default:
		return nil, fmt.Errorf("%w: kind %q", domain.ErrInvalidUpload, kind)
	}

	key := path.Join(kind, ownerID, uuid.NewString()+extension(contentType))

	u, err := s.client.PresignedPutObject(ctx, s.cfg.Bucket, key, s.cfg.PresignTTL)
	if err != nil {
		return nil, fmt.Errorf("presign upload: %w", err)
	}

	return &ports.UploadTicket{
		UploadURL: u.String(),
		ObjectKey: key,
		PublicURL: strings.TrimRight(s.cfg.PublicBaseURL, "/") + "/" + key,
		Expires:   s.cfg.PresignTTL,
		RequiredHeader: map[string]string{
			"Content-Type":   contentType,
			"Content-Length": fmt.Sprintf("%d", size),
		},
	}, nil
}

func extension(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	default:
		return ""
	}
}

func allowed(list []string, contentType string) bool {
	for _, a := range list {
		if a == contentType {
			return true
		}
	}
	return false
}
