package storage

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/msquare-lighting/msquare-api/pkg/logger"
	"github.com/msquare-lighting/msquare-api/pkg/metrics"
	"go.uber.org/zap"
)

const (
	defaultEndpoint = "https://s3.amazonaws.com"
	defaultRegion   = "ap-south-1"
)

// Config for an S3-compatible bucket
type Config struct {
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	Endpoint        string
	Region          string
	Prefix          string // key prefix applied to every upload
}

// Client uploads catalogue artefacts to S3-compatible object storage
type Client struct {
	s3Client   *s3.Client
	bucketName string
	endpoint   string
	prefix     string
}

// NewClient creates a storage client. Path-style addressing keeps it working
// against MinIO and other non-AWS endpoints.
func NewClient(cfg Config) (*Client, error) {
	if cfg.BucketName == "" {
		return nil, fmt.Errorf("storage bucket name is required")
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = defaultEndpoint
	}
	if cfg.Region == "" {
		cfg.Region = defaultRegion
	}

	s3Client := s3.New(s3.Options{
		Region:       cfg.Region,
		BaseEndpoint: aws.String(cfg.Endpoint),
		UsePathStyle: true,
		Credentials: credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		),
	})

	logger.Info("Object storage client initialized",
		zap.String("bucket", cfg.BucketName),
		zap.String("endpoint", cfg.Endpoint),
		zap.String("region", cfg.Region),
	)

	return &Client{
		s3Client:   s3Client,
		bucketName: cfg.BucketName,
		endpoint:   strings.TrimRight(cfg.Endpoint, "/"),
		prefix:     strings.Trim(cfg.Prefix, "/"),
	}, nil
}

// Key joins the configured prefix with name
func (c *Client) Key(name string) string {
	if c.prefix == "" {
		return name
	}
	return path.Join(c.prefix, name)
}

// PublicURL returns the path-style URL of key
func (c *Client) PublicURL(key string) string {
	return fmt.Sprintf("%s/%s/%s", c.endpoint, c.bucketName, key)
}

// Upload stores data under name (prefixed) and returns its public URL
func (c *Client) Upload(ctx context.Context, name string, data []byte, contentType string) (string, error) {
	start := time.Now()
	operation := "putObject"
	key := c.Key(name)

	_, err := c.s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})

	duration := metrics.MeasureDuration(start)

	if err != nil {
		metrics.StorageRequestDuration.WithLabelValues(operation, "error").Observe(duration)
		metrics.StorageRequestTotal.WithLabelValues(operation, "error").Inc()
		logger.LogAPICall("object_storage", operation, "error", duration,
			zap.Error(err),
			zap.String("key", key),
		)
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}

	metrics.StorageRequestDuration.WithLabelValues(operation, "success").Observe(duration)
	metrics.StorageRequestTotal.WithLabelValues(operation, "success").Inc()
	logger.LogAPICall("object_storage", operation, "success", duration,
		zap.String("key", key),
		zap.Int("size_bytes", len(data)),
	)

	return c.PublicURL(key), nil
}

// UploadFile reads the file at localPath and uploads it under name
func (c *Client) UploadFile(ctx context.Context, localPath, name string) (string, error) {
	data, err := os.ReadFile(localPath)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", localPath, err)
	}
	return c.Upload(ctx, name, data, ContentTypeFor(localPath))
}

var contentTypes = map[string]string{
	".json": "application/json",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".webp": "image/webp",
	".svg":  "image/svg+xml",
}

// ContentTypeFor picks a content type from the file extension
func ContentTypeFor(name string) string {
	if ct, ok := contentTypes[strings.ToLower(filepath.Ext(name))]; ok {
		return ct
	}
	return "application/octet-stream"
}
