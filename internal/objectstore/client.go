package objectstore

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"path"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// UploadTicket holds a pre-signed PUT URL and the public URL the object will
// be served from once uploaded.
type UploadTicket struct {
	UploadURL string
	ObjectURL string
}

// Client defines the contract for issuing direct-upload tickets against an
// S3-compatible object store.
type Client interface {
	CreateUploadURL(ctx context.Context, prefix, filename string) (*UploadTicket, error)
}

// Options configures a minio-backed client.
type Options struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	Expiry    time.Duration
	Logger    *log.Logger
}

// MinioClient implements Client over an S3-compatible store.
type MinioClient struct {
	client *minio.Client
	bucket string
	useSSL bool
	expiry time.Duration
	logger *log.Logger
}

// NewMinioClient constructs a minio-backed client and ensures the bucket
// exists.
func NewMinioClient(ctx context.Context, opts Options) (*MinioClient, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	mc, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create object store client: %w", err)
	}
	exists, err := mc.BucketExists(ctx, opts.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket: %w", err)
	}
	if !exists {
		if err := mc.MakeBucket(ctx, opts.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket: %w", err)
		}
		logger.Printf("objectstore: created bucket %q", opts.Bucket)
	}
	return &MinioClient{
		client: mc,
		bucket: opts.Bucket,
		useSSL: opts.UseSSL,
		expiry: opts.Expiry,
		logger: logger,
	}, nil
}

// CreateUploadURL issues a pre-signed PUT URL for a fresh object key under
// the given prefix. The key embeds a random UUID so callers can never
// overwrite each other's objects.
func (c *MinioClient) CreateUploadURL(ctx context.Context, prefix, filename string) (*UploadTicket, error) {
	key := path.Join(prefix, uuid.NewString(), path.Base(filename))
	uploadURL, err := c.client.PresignedPutObject(ctx, c.bucket, key, c.expiry)
	if err != nil {
		return nil, fmt.Errorf("presign upload: %w", err)
	}
	scheme := "http"
	if c.useSSL {
		scheme = "https"
	}
	objectURL := &url.URL{
		Scheme: scheme,
		Host:   c.client.EndpointURL().Host,
		Path:   "/" + c.bucket + "/" + key,
	}
	return &UploadTicket{
		UploadURL: uploadURL.String(),
		ObjectURL: objectURL.String(),
	}, nil
}
