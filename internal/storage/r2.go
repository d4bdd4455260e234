package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"vyapar-backend/internal/config"
)

// MaxLogoSize caps logo uploads at 2 MB
const MaxLogoSize = 2 * 1024 * 1024

// R2Client wraps an S3-compatible client pointed at Cloudflare R2
type R2Client struct {
	client    *s3.Client
	bucket    string
	publicURL string
}

// NewR2Client builds the client from storage config. Returns nil when the
// endpoint is not configured so logo upload degrades to an error response
// instead of a crash.
func NewR2Client(cfg *config.Config) (*R2Client, error) {
	if cfg.Storage.Endpoint == "" || cfg.Storage.AccessKey == "" {
		return nil, nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.Storage.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.Storage.AccessKey, cfg.Storage.SecretKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("load storage config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.Storage.Endpoint)
		o.UsePathStyle = true
	})

	return &R2Client{
		client:    client,
		bucket:    cfg.Storage.Bucket,
		publicURL: strings.TrimRight(cfg.Storage.PublicURL, "/"),
	}, nil
}

// Upload stores an object and returns its public URL
func (r *R2Client) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	_, err := r.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(r.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}
	return r.publicURL + "/" + key, nil
}

// Delete removes an object, ignoring not-found
func (r *R2Client) Delete(ctx context.Context, key string) error {
	_, err := r.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(key),
	})
	return err
}
