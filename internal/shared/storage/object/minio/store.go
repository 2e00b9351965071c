package minio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"consultant-backend/internal/shared/storage/object"
)

// minio-go forwards x-amz-* user metadata keys as plain request headers.
const aclHeader = "x-amz-acl"

type putObjectAPI interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

// Options configures the MinIO store.
type Options struct {
	// EndpointURL is either "host:port" or a full URL; an https scheme enables TLS.
	EndpointURL string
	Region      string
	Bucket      string
	AccessKey   string
	SecretKey   string
	DocLocation string
}

// Store implements ObjectStore on MinIO or any S3-compatible server.
type Store struct {
	client      putObjectAPI
	bucket      string
	docLocation string
}

// New creates a MinIO client. The bucket is expected to exist already.
func New(opts Options) (*Store, error) {
	if opts.Bucket == "" {
		return nil, errors.New("minio bucket is required")
	}
	host, secure, err := endpointHost(opts.EndpointURL)
	if err != nil {
		return nil, err
	}

	client, err := minio.New(host, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: secure,
		Region: opts.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	return &Store{client: client, bucket: opts.Bucket, docLocation: opts.DocLocation}, nil
}

// Put uploads body under key in a single request with a public-read ACL.
func (s *Store) Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error {
	if key == "" {
		return errors.New("minio put object: empty key")
	}
	if _, err := s.client.PutObject(ctx, s.bucket, key, body, size, putOptions(contentType)); err != nil {
		return fmt.Errorf("minio put object bucket=%s key=%s: %w", s.bucket, key, err)
	}
	return nil
}

// Location returns the configured document location for key.
func (s *Store) Location(key string) string {
	return object.JoinLocation(s.docLocation, key)
}

func putOptions(contentType string) minio.PutObjectOptions {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return minio.PutObjectOptions{
		ContentType:      contentType,
		UserMetadata:     map[string]string{aclHeader: "public-read"},
		DisableMultipart: true,
	}
}

func endpointHost(raw string) (string, bool, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false, errors.New("minio endpoint is required")
	}
	if !strings.Contains(raw, "://") {
		return strings.TrimRight(raw, "/"), false, nil
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", false, fmt.Errorf("parse minio endpoint: %w", err)
	}
	switch u.Scheme {
	case "http", "https":
	default:
		return "", false, fmt.Errorf("unsupported minio endpoint scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return "", false, fmt.Errorf("minio endpoint %q has no host", raw)
	}
	if u.Path != "" && u.Path != "/" {
		return "", false, fmt.Errorf("minio endpoint %q must not contain a path", raw)
	}
	return u.Host, u.Scheme == "https", nil
}

var _ object.ObjectStore = (*Store)(nil)
