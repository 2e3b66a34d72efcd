package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/pkg/errors"
	"github.com/talkincode/shopcore/config"
)

// All remote objects live under one logical folder in the bucket.
const s3KeyPrefix = "products/"

// S3Store uploads images to an S3-compatible object storage service. The
// reference is the fully qualified object URL, usable directly by clients.
type S3Store struct {
	api     *s3.S3
	bucket  string
	baseURL string
}

func NewS3Store(cfg *config.StorageConfig) (*S3Store, error) {
	awsConfig := &aws.Config{
		Credentials:      credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, ""),
		Region:           aws.String(cfg.Region),
		S3ForcePathStyle: aws.Bool(true),
	}
	if cfg.Endpoint != "" {
		awsConfig.Endpoint = aws.String(cfg.Endpoint)
	}
	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, errors.Wrap(ErrStoreFailed, err.Error())
	}

	baseURL := fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	if cfg.Endpoint != "" {
		baseURL = fmt.Sprintf("%s/%s", strings.TrimRight(cfg.Endpoint, "/"), cfg.Bucket)
	}

	return &S3Store{
		api:     s3.New(sess),
		bucket:  cfg.Bucket,
		baseURL: baseURL,
	}, nil
}

func (s *S3Store) Store(ctx context.Context, data []byte, originalName string) (string, error) {
	if !extAllowed(originalName) {
		return "", ErrUnsupportedFormat
	}

	ext := strings.ToLower(path.Ext(originalName))
	key := fmt.Sprintf("%s%d%s", s3KeyPrefix, time.Now().UnixNano(), ext)

	contentType := mime.TypeByExtension(ext)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err := s.api.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", errors.Wrap(ErrStoreFailed, err.Error())
	}

	return fmt.Sprintf("%s/%s", s.baseURL, key), nil
}

func (s *S3Store) Fetch(ctx context.Context, ref string) ([]byte, error) {
	key := s.keyFromRef(ref)
	if key == "" {
		return nil, ErrNotFound
	}
	out, err := s.api.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, errors.Wrap(ErrStoreFailed, err.Error())
	}
	defer out.Body.Close()
	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, errors.Wrap(ErrStoreFailed, err.Error())
	}
	return data, nil
}

// keyFromRef extracts the object key from a URL produced by Store.
func (s *S3Store) keyFromRef(ref string) string {
	if strings.HasPrefix(ref, s.baseURL+"/") {
		return strings.TrimPrefix(ref, s.baseURL+"/")
	}
	if idx := strings.Index(ref, s3KeyPrefix); idx >= 0 {
		return ref[idx:]
	}
	return ""
}
