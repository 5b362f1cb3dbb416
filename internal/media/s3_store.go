// Package media uploads listing images to an S3-compatible bucket.
package media

import (
	"bytes"
	"context"
	"fmt"
	"mime"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Kilat-Pet-Delivery/service-adoption/pkg/config"
	"github.com/Kilat-Pet-Delivery/service-adoption/pkg/domain"
)

// DefaultFolder is the key prefix for listing images.
const DefaultFolder = "pet-adoption"

// MaxImageBytes caps a single upload.
const MaxImageBytes = 10 << 20

var extensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
	"image/avif": ".avif",
}

// Uploader is the part of the S3 client the store uses.
type Uploader interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Store puts images in a bucket and returns their public URL.
type S3Store struct {
	client  Uploader
	bucket  string
	folder  string
	baseURL string
	logger  *zap.Logger
}

// NewS3Store builds an S3 client from cfg.
func NewS3Store(ctx context.Context, cfg config.S3Config, logger *zap.Logger) (*S3Store, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})

	return NewS3StoreWithClient(client, cfg, logger), nil
}

// NewS3StoreWithClient wraps an existing uploader.
func NewS3StoreWithClient(client Uploader, cfg config.S3Config, logger *zap.Logger) *S3Store {
	folder := strings.Trim(cfg.Folder, "/")
	if folder == "" {
		folder = DefaultFolder
	}
	return &S3Store{
		client:  client,
		bucket:  cfg.Bucket,
		folder:  folder,
		baseURL: publicBaseURL(cfg),
		logger:  logger,
	}
}

// Store uploads data and returns its public URL. Every failure is an UploadError.
func (s *S3Store) Store(ctx context.Context, data []byte, mimeType string) (string, error) {
	mimeType = strings.ToLower(strings.TrimSpace(mimeType))
	if len(data) == 0 {
		return "", domain.NewUploadError("image is empty", nil)
	}
	if len(data) > MaxImageBytes {
		return "", domain.NewUploadError("image is larger than 10 MB", nil)
	}
	if !strings.HasPrefix(mimeType, "image/") {
		return "", domain.NewUploadError(fmt.Sprintf("unsupported content type %q", mimeType), nil)
	}

	key := s.folder + "/" + uuid.NewString() + extensionFor(mimeType)
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(mimeType),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		s.logger.Error("failed to upload image",
			zap.String("bucket", s.bucket),
			zap.String("key", key),
			zap.Error(err),
		)
		return "", domain.NewUploadError("failed to upload image", err)
	}

	url := s.baseURL + "/" + key
	s.logger.Info("image uploaded", zap.String("key", key), zap.Int("bytes", len(data)))
	return url, nil
}

func extensionFor(mimeType string) string {
	if ext, ok := extensions[mimeType]; ok {
		return ext
	}
	if exts, err := mime.ExtensionsByType(mimeType); err == nil && len(exts) > 0 {
		return exts[0]
	}
	return ""
}

func publicBaseURL(cfg config.S3Config) string {
	switch {
	case cfg.PublicBaseURL != "":
		return strings.TrimRight(cfg.PublicBaseURL, "/")
	case cfg.Endpoint != "" && cfg.UsePathStyle:
		return strings.TrimRight(cfg.Endpoint, "/") + "/" + cfg.Bucket
	case cfg.Endpoint != "":
		ep := strings.TrimRight(cfg.Endpoint, "/")
		if i := strings.Index(ep, "://"); i >= 0 {
			return ep[:i+3] + cfg.Bucket + "." + ep[i+3:]
		}
		return "https://" + cfg.Bucket + "." + ep
	default:
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	}
}
