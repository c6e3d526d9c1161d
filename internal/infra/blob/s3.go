package blob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"unicode/utf8"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	smithyhttp "github.com/aws/smithy-go/transport/http"
)

// S3Config configures an S3-compatible backend (AWS S3, Cloudflare R2, MinIO).
type S3Config struct {
	Bucket          string
	Region          string
	Endpoint        string // empty for AWS; the account endpoint for R2
	AccessKeyID     string
	SecretAccessKey string
	UsePathStyle    bool
	// MaxAttempts overrides the SDK retryer when > 0.
	MaxAttempts int
	// MaxObjectBytes bounds a single body; 0 means 8 MiB.
	MaxObjectBytes int64
}

const defaultMaxObjectBytes = 8 << 20

// S3Store reads UTF-8 text objects from one bucket.
type S3Store struct {
	client   *s3.Client
	bucket   string
	maxBytes int64
}

// NewS3Store builds a client from cfg. Static credentials are used when both keys are set,
// otherwise the default AWS credential chain applies.
func NewS3Store(ctx context.Context, cfg S3Config) (*S3Store, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("bucket name is required")
	}
	if cfg.Region == "" {
		cfg.Region = "auto"
	}

	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
		if cfg.MaxAttempts > 0 {
			o.RetryMaxAttempts = cfg.MaxAttempts
		}
	})

	return NewS3StoreFromClient(client, cfg.Bucket, cfg.MaxObjectBytes), nil
}

// NewS3StoreFromClient wraps an existing client.
func NewS3StoreFromClient(client *s3.Client, bucket string, maxObjectBytes int64) *S3Store {
	if maxObjectBytes <= 0 {
		maxObjectBytes = defaultMaxObjectBytes
	}
	return &S3Store{client: client, bucket: bucket, maxBytes: maxObjectBytes}
}

// Fetch implements repository.BlobStore.
func (s *S3Store) Fetch(ctx context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, ErrInvalidKey
	}

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("GetObject %s: %w", key, err)
	}
	defer func() { _ = out.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(out.Body, s.maxBytes+1))
	if err != nil {
		return "", false, fmt.Errorf("read object %s: %w", key, err)
	}
	if int64(len(body)) > s.maxBytes {
		return "", false, fmt.Errorf("object %s exceeds %d bytes", key, s.maxBytes)
	}
	if !utf8.Valid(body) {
		return "", false, fmt.Errorf("object %s is not valid UTF-8", key)
	}
	return string(body), true, nil
}

// Ping checks that the bucket is reachable.
func (s *S3Store) Ping(ctx context.Context) error {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(s.bucket)})
	if err != nil {
		return fmt.Errorf("HeadBucket %s: %w", s.bucket, err)
	}
	return nil
}

// isNotFound recognizes a missing object across S3 implementations: the typed
// NoSuchKey, a generic API error code, or a bare 404 response.
func isNotFound(err error) bool {
	var noSuchKey *types.NoSuchKey
	if errors.As(err, &noSuchKey) {
		return true
	}
	var notFound *types.NotFound
	if errors.As(err, &notFound) {
		return true
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound":
			return true
		}
	}
	var respErr *smithyhttp.ResponseError
	if errors.As(err, &respErr) && respErr.HTTPStatusCode() == http.StatusNotFound {
		return true
	}
	return false
}
