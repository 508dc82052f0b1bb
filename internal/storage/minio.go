package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type Storage struct {
	client *minio.Client
	bucket string
}

type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

type UploadTarget struct {
	UploadURL      string `json:"upload_url"`
	StorageKey     string `json:"storage_key"`
	StorageBucket  string `json:"storage_bucket"`
	UniqueFilename string `json:"unique_filename"`
}

func NewStorage(ctx context.Context, config *Config) (*Storage, error) {
	client, err := minio.New(config.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(config.AccessKey, config.SecretKey, ""),
		Secure: config.UseSSL,
	})
	if err != nil {
		return nil, err
	}

	s := &Storage{
		client: client,
		bucket: config.Bucket,
	}

	exists, err := client.BucketExists(ctx, config.Bucket)
	if err != nil {
		return nil, err
	}

	if !exists {
		err = client.MakeBucket(ctx, config.Bucket, minio.MakeBucketOptions{})
		if err != nil {
			return nil, err
		}
	}

	return s, nil
}

func (s *Storage) Bucket() string {
	return s.bucket
}

// GetUploadTarget presigns a PUT URL for a fresh object key under the user's
// prefix. The original filename only contributes its extension; the stored
// object name is a UUID so collisions cannot happen.
func (s *Storage) GetUploadTarget(ctx context.Context, userID, filename string, duration time.Duration) (*UploadTarget, error) {
	uniqueFilename := uuid.New().String()
	if ext := filepath.Ext(filename); ext != "" {
		uniqueFilename += ext
	}
	objectName := fmt.Sprintf("documents/%s/%s", userID, uniqueFilename)

	presignedUrl, err := s.client.PresignedPutObject(
		ctx,
		s.bucket,
		objectName,
		duration,
	)
	if err != nil {
		return nil, err
	}

	return &UploadTarget{
		UploadURL:      presignedUrl.String(),
		StorageKey:     objectName,
		StorageBucket:  s.bucket,
		UniqueFilename: uniqueFilename,
	}, nil
}

func (s *Storage) GetDownloadUrl(ctx context.Context, storageKey string, duration time.Duration) (string, error) {
	presignedUrl, err := s.client.PresignedGetObject(
		ctx,
		s.bucket,
		storageKey,
		duration,
		url.Values{},
	)
	if err != nil {
		return "", err
	}

	return presignedUrl.String(), nil
}

// Fetch opens the stored object for reading. The pipeline uses this to pull
// the source file before text extraction; failures here are treated as
// transient by the caller.
func (s *Storage) Fetch(ctx context.Context, bucket, key string) (io.ReadCloser, error) {
	obj, err := s.client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch object %s/%s: %w", bucket, key, err)
	}

	// GetObject is lazy; stat so a missing object surfaces here instead of
	// on the first read.
	if _, err := obj.Stat(); err != nil {
		obj.Close()
		return nil, fmt.Errorf("failed to stat object %s/%s: %w", bucket, key, err)
	}

	return obj, nil
}

func (s *Storage) Delete(ctx context.Context, storageKey string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, storageKey, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete object %s: %w", storageKey, err)
	}
	return nil
}

var allowedMimeTypes = map[string]bool{
	"application/pdf": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"application/msword": true,
	"text/plain":         true,
}

var allowedExtensions = map[string]bool{
	".pdf":  true,
	".docx": true,
	".doc":  true,
	".txt":  true,
}

// ValidateFileType accepts PDF, DOCX and plain-text uploads, falling back to
// the filename extension when the declared content type is missing or odd.
func ValidateFileType(contentType, filename string) bool {
	if allowedMimeTypes[strings.ToLower(contentType)] {
		return true
	}
	return allowedExtensions[strings.ToLower(filepath.Ext(filename))]
}
