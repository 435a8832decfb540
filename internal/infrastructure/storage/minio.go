package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/hszk-dev/vidtube/internal/domain/apperr"
	"github.com/hszk-dev/vidtube/internal/domain/repository"
	"github.com/hszk-dev/vidtube/internal/infrastructure/metrics"
	"github.com/hszk-dev/vidtube/internal/probe"
)

// minioClient defines the interface for MinIO operations.
// This abstraction allows for easier unit testing with mocks.
// *minio.Client satisfies it directly.
type minioClient interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
}

// ErrUnsupportedMedia is returned when a file's detected type does not match the requested kind.
var ErrUnsupportedMedia = apperr.InvalidArgument("file type does not match the expected media kind")

// ClientConfig holds configuration for the MinIO client.
type ClientConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	// PublicBaseURL prefixes canonical asset URLs, e.g. http://localhost:9000.
	PublicBaseURL string
}

// MediaStore implements repository.MediaStore on a MinIO bucket.
// Objects are laid out as videos/{uuid}{ext} and images/{uuid}{ext}.
type MediaStore struct {
	client        minioClient
	bucket        string
	publicBaseURL string
	prober        probe.Prober
	breaker       *gobreaker.CircuitBreaker[any]
}

// NewMediaStore creates a MinIO-backed media store.
// It verifies the bucket exists during initialization to fail fast on misconfiguration.
func NewMediaStore(ctx context.Context, cfg ClientConfig, prober probe.Prober, breaker BreakerConfig) (*MediaStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	return newMediaStoreWithClient(ctx, client, cfg, prober, NewBreaker(breaker))
}

// newMediaStoreWithClient creates a MediaStore with a given minioClient implementation.
// This is used for dependency injection in tests.
func newMediaStoreWithClient(
	ctx context.Context,
	client minioClient,
	cfg ClientConfig,
	prober probe.Prober,
	breaker *gobreaker.CircuitBreaker[any],
) (*MediaStore, error) {
	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", repository.ErrBucketNotFound, cfg.Bucket)
	}

	return &MediaStore{
		client:        client,
		bucket:        cfg.Bucket,
		publicBaseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
		prober:        prober,
		breaker:       breaker,
	}, nil
}

// Upload stores the file at localPath and returns its canonical URL.
// Video durations are probed before the object is written.
func (s *MediaStore) Upload(ctx context.Context, localPath string, kind repository.MediaKind) (*repository.UploadResult, error) {
	result, err := s.upload(ctx, localPath, kind)
	status := metrics.StatusSuccess
	if err != nil {
		status = metrics.StatusError
	}
	metrics.StorageOperationsTotal.WithLabelValues(metrics.StorageOpUpload, string(kind), status).Inc()
	return result, err
}

func (s *MediaStore) upload(ctx context.Context, localPath string, kind repository.MediaKind) (*repository.UploadResult, error) {
	if !kind.IsValid() {
		return nil, fmt.Errorf("unknown media kind %q", kind)
	}

	mtype, err := mimetype.DetectFile(localPath)
	if err != nil {
		return nil, fmt.Errorf("failed to detect content type: %w", err)
	}
	if !matchesKind(mtype, kind) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedMedia, mtype.String())
	}

	var duration float64
	if kind == repository.MediaKindVideo && s.prober != nil {
		duration, err = s.prober.Duration(ctx, localPath)
		if err != nil {
			return nil, fmt.Errorf("failed to probe duration: %w", err)
		}
	}

	f, err := os.Open(localPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open upload: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat upload: %w", err)
	}

	key := objectKey(kind, mtype.Extension())

	_, err = s.breaker.Execute(func() (any, error) {
		return s.client.PutObject(ctx, s.bucket, key, f, info.Size(), minio.PutObjectOptions{
			ContentType: mtype.String(),
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload object: %w", err)
	}

	return &repository.UploadResult{
		URL:      s.urlFor(key),
		Key:      key,
		Duration: duration,
	}, nil
}

// Delete removes the asset addressed by url and returns its object key.
func (s *MediaStore) Delete(ctx context.Context, url string, kind repository.MediaKind) (string, error) {
	key, err := s.keyFor(url, kind)
	if err != nil {
		return "", err
	}

	_, err = s.breaker.Execute(func() (any, error) {
		return nil, s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{})
	})

	status := metrics.StatusSuccess
	if err != nil {
		status = metrics.StatusError
	}
	metrics.StorageOperationsTotal.WithLabelValues(metrics.StorageOpDelete, string(kind), status).Inc()

	if err != nil {
		return "", fmt.Errorf("failed to delete object: %w", err)
	}
	return key, nil
}

// Ping verifies the MinIO connection is alive by checking bucket access.
func (s *MediaStore) Ping(ctx context.Context) error {
	_, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to ping minio: %w", err)
	}
	return nil
}

// Bucket returns the configured bucket name.
func (s *MediaStore) Bucket() string {
	return s.bucket
}

func (s *MediaStore) urlFor(key string) string {
	return s.publicBaseURL + "/" + s.bucket + "/" + key
}

// keyFor recovers the object key from a canonical URL and checks it lives under kind's prefix.
func (s *MediaStore) keyFor(url string, kind repository.MediaKind) (string, error) {
	base := s.publicBaseURL + "/" + s.bucket + "/"
	key, ok := strings.CutPrefix(url, base)
	if !ok || !strings.HasPrefix(key, prefixFor(kind)) || strings.Contains(key, "..") {
		slog.Warn("refusing to delete foreign media URL", "url", url, "kind", kind)
		return "", repository.ErrInvalidMediaURL
	}
	return key, nil
}

func objectKey(kind repository.MediaKind, ext string) string {
	return prefixFor(kind) + uuid.NewString() + ext
}

func prefixFor(kind repository.MediaKind) string {
	if kind == repository.MediaKindVideo {
		return "videos/"
	}
	return "images/"
}

// matchesKind walks the detected type's ancestry so aliases like
// application/mp4 variants still resolve to their top-level family.
func matchesKind(m *mimetype.MIME, kind repository.MediaKind) bool {
	want := "image/"
	if kind == repository.MediaKindVideo {
		want = "video/"
	}
	for ; m != nil; m = m.Parent() {
		if strings.HasPrefix(m.String(), want) {
			return true
		}
	}
	return false
}

var _ repository.MediaStore = (*MediaStore)(nil)
