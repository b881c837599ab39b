package blobstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/huangsam/hangarlog/internal/contract"
	"github.com/huangsam/hangarlog/schema"
)

// objectPrefix namespaces photo objects inside the bucket.
const objectPrefix = "photos/"

// s3API is the subset of the S3 client used by S3Store.
type s3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3Store keeps photos as objects in an S3-compatible bucket.
type S3Store struct {
	client s3API
	bucket string
}

var _ contract.BlobStore = &S3Store{} // Compile-time check

// NewS3Store builds a client from the configuration. Static credentials are
// used when given; otherwise the default AWS credential chain applies.
func NewS3Store(ctx context.Context, cfg contract.S3Config) (*S3Store, error) {
	opts := []func(*config.LoadOptions) error{config.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load S3 configuration: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			// S3-compatible servers such as MinIO expect path-style addressing
			o.UsePathStyle = true
		}
	})
	return newS3Store(client, cfg.Bucket), nil
}

func newS3Store(client s3API, bucket string) *S3Store {
	return &S3Store{client: client, bucket: bucket}
}

func (s *S3Store) objectKey(key string) (*string, error) {
	if err := ValidateKey(key); err != nil {
		return nil, err
	}
	return aws.String(objectPrefix + key), nil
}

// Save uploads the data under a new key.
func (s *S3Store) Save(ctx context.Context, data []byte) (string, error) {
	key := NewKey(data)
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(objectPrefix + key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(http.DetectContentType(data)),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload photo %s: %w", key, err)
	}
	return key, nil
}

// Load downloads the data stored under key.
func (s *S3Store) Load(ctx context.Context, key string) ([]byte, error) {
	objKey, err := s.objectKey(key)
	if err != nil {
		return nil, err
	}
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    objKey,
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return nil, schema.ErrBlobNotFound
		}
		return nil, fmt.Errorf("failed to download photo %s: %w", key, err)
	}
	defer func() { _ = out.Body.Close() }()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read photo %s: %w", key, err)
	}
	return data, nil
}

// Delete removes the object stored under key.
func (s *S3Store) Delete(ctx context.Context, key string) error {
	objKey, err := s.objectKey(key)
	if err != nil {
		return err
	}
	if _, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    objKey,
	}); err != nil {
		return fmt.Errorf("failed to delete photo %s: %w", key, err)
	}
	return nil
}
