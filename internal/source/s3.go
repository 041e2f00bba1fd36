package source

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Config holds configuration for S3-compatible CSV object storage.
// Works with R2 and other S3-compatible endpoints.
type S3Config struct {
	BucketName      string
	AccessKeyID     string
	SecretAccessKey string
	Endpoint        string
}

// S3Source reads CSV rows from an object in S3-compatible storage.
type S3Source struct {
	client *s3.Client
	bucket string
	key    string
}

// NewS3Client creates an S3 client for the configured endpoint.
func NewS3Client(cfg S3Config) (*s3.Client, error) {
	if cfg.BucketName == "" {
		return nil, errors.New("bucket name is required")
	}
	if cfg.AccessKeyID == "" {
		return nil, errors.New("access key ID is required")
	}
	if cfg.SecretAccessKey == "" {
		return nil, errors.New("secret access key is required")
	}
	if cfg.Endpoint == "" {
		return nil, errors.New("endpoint is required")
	}

	client := s3.New(s3.Options{
		Region: "auto",
		Credentials: aws.NewCredentialsCache(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)),
		BaseEndpoint: aws.String(cfg.Endpoint),
		UsePathStyle: true,
	})

	return client, nil
}

// NewS3Source creates a source for one CSV object.
func NewS3Source(client *s3.Client, bucket, key string) *S3Source {
	return &S3Source{client: client, bucket: bucket, key: key}
}

// Name returns the bucket-qualified object key.
func (s *S3Source) Name() string {
	return "s3://" + s.bucket + "/" + s.key
}

// Rows fetches the object and parses it as CSV.
func (s *S3Source) Rows(ctx context.Context) ([]map[string]string, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
	})
	if err != nil {
		return nil, fmt.Errorf("get object %s: %w", s.Name(), err)
	}
	defer out.Body.Close()

	return parseCSV(out.Body)
}
