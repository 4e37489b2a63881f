// Package s3 provides an S3-compatible implementation of the blogcontent
// BlobStore interface, covering AWS S3 as well as MinIO and other
// path-style services.
package s3

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/Nainjain26/new-blogbackend/pkg/blogcontent"
)

// Config options for the S3 backend
type Config struct {
	Region          string // AWS region
	Bucket          string // S3 bucket name
	AccessKeyID     string // AWS access key ID
	SecretAccessKey string // AWS secret access key
	Endpoint        string // Optional custom endpoint for S3-compatible services
	UsePathStyle    bool   // Use path-style addressing (default: false)

	// MinIO/S3-compatible service options
	CreateBucketIfNotExist bool // Create bucket if it doesn't exist
}

// Backend is an S3-compatible implementation of the blogcontent.BlobStore interface
type Backend struct {
	client   *s3.Client
	uploader *manager.Uploader
	bucket   string
	config   Config
}

// New creates a new S3-compatible storage backend
func New(config Config) (*Backend, error) {
	if config.Bucket == "" {
		return nil, errors.New("bucket name is required")
	}

	if config.Region == "" {
		config.Region = "us-east-1"
	}

	var awsCfg aws.Config
	var err error

	if config.AccessKeyID != "" && config.SecretAccessKey != "" {
		awsCfg, err = awsconfig.LoadDefaultConfig(context.Background(),
			awsconfig.WithRegion(config.Region),
			awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
				config.AccessKeyID,
				config.SecretAccessKey,
				"",
			)),
		)
	} else {
		awsCfg, err = awsconfig.LoadDefaultConfig(context.Background(),
			awsconfig.WithRegion(config.Region),
		)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	var s3Options []func(*s3.Options)

	// Custom endpoint for S3-compatible services (MinIO, etc.)
	if config.Endpoint != "" {
		s3Options = append(s3Options, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(config.Endpoint)
			o.UsePathStyle = config.UsePathStyle
		})
	}

	client := s3.NewFromConfig(awsCfg, s3Options...)

	backend := &Backend{
		client:   client,
		uploader: manager.NewUploader(client),
		bucket:   config.Bucket,
		config:   config,
	}

	if config.CreateBucketIfNotExist {
		if err := backend.createBucketIfNotExists(context.Background()); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return backend, nil
}

func (b *Backend) createBucketIfNotExists(ctx context.Context) error {
	_, err := b.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(b.bucket),
	})
	if err == nil {
		return nil
	}

	var notFound *types.NotFound
	var noSuchBucket *types.NoSuchBucket
	if !errors.As(err, &notFound) && !errors.As(err, &noSuchBucket) &&
		!strings.Contains(err.Error(), "NotFound") && !strings.Contains(err.Error(), "NoSuchBucket") {
		return fmt.Errorf("failed to check bucket: %w", err)
	}

	createInput := &s3.CreateBucketInput{
		Bucket: aws.String(b.bucket),
	}
	// us-east-1 must not carry a location constraint
	if b.config.Region != "us-east-1" {
		createInput.CreateBucketConfiguration = &types.CreateBucketConfiguration{
			LocationConstraint: types.BucketLocationConstraint(b.config.Region),
		}
	}

	if _, err := b.client.CreateBucket(ctx, createInput); err != nil {
		return fmt.Errorf("failed to create bucket: %w", err)
	}
	return nil
}

// Upload uploads content directly to S3
func (b *Backend) Upload(ctx context.Context, objectKey string, reader io.Reader, params blogcontent.UploadParams) error {
	input := &s3.PutObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(objectKey),
		Body:   reader,
	}
	if params.MimeType != "" {
		input.ContentType = aws.String(params.MimeType)
	}

	if _, err := b.uploader.Upload(ctx, input); err != nil {
		return fmt.Errorf("failed to upload object: %w", err)
	}
	return nil
}

// Download downloads content directly from S3
func (b *Backend) Download(ctx context.Context, objectKey string) (io.ReadCloser, error) {
	result, err := b.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(objectKey),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return nil, blogcontent.ErrAssetNotFound
		}
		return nil, fmt.Errorf("failed to download object: %w", err)
	}
	return result.Body, nil
}

// GetPublicURL returns the durable URL for the object. With a custom
// endpoint the path-style form is used; otherwise the virtual-hosted AWS
// form.
func (b *Backend) GetPublicURL(ctx context.Context, objectKey string) (string, error) {
	if b.config.Endpoint != "" {
		return fmt.Sprintf("%s/%s/%s", strings.TrimSuffix(b.config.Endpoint, "/"), b.bucket, objectKey), nil
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", b.bucket, b.config.Region, objectKey), nil
}

// Delete deletes an object from S3
func (b *Backend) Delete(ctx context.Context, objectKey string) error {
	_, err := b.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(objectKey),
	})
	if err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}
