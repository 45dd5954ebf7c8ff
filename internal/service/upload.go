package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/recipespace/backend/config"
)

// MaxUploadSize caps recipe images and avatars at 5 MiB.
const MaxUploadSize = 5 << 20

var allowedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// UploadStorage persists an uploaded object and returns the reference to
// store on the user or recipe record.
type UploadStorage interface {
	Save(ctx context.Context, key string, contentType string, r io.Reader) (string, error)
}

// UploadService validates raw upload streams and hands them to a storage
// backend under a fresh uuid-based key.
type UploadService struct {
	storage UploadStorage
	logger  *zap.Logger
}

// NewUploadService creates a new UploadService instance
func NewUploadService(storage UploadStorage, logger *zap.Logger) *UploadService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UploadService{storage: storage, logger: logger}
}

// Save checks the filename extension and declared size, then stores the
// stream. The returned reference is what callers persist on the record.
func (s *UploadService) Save(ctx context.Context, filename string, size int64, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedImageExtensions[ext] {
		return "", fmt.Errorf("%w: file extension %q not allowed", ErrValidation, ext)
	}
	if size <= 0 || size > MaxUploadSize {
		return "", fmt.Errorf("%w: upload size %d out of range", ErrValidation, size)
	}

	key := uuid.New().String() + ext
	contentType := mime.TypeByExtension(ext)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	ref, err := s.storage.Save(ctx, key, contentType, io.LimitReader(r, MaxUploadSize))
	if err != nil {
		s.logger.Error("upload failed", zap.String("key", key), zap.Error(err))
		return "", err
	}
	s.logger.Info("upload stored", zap.String("key", key), zap.Int64("size", size))
	return ref, nil
}

// LocalStorage writes uploads to a directory on disk. Writes go through a
// temp file in the same directory; the temp file is removed on any failure
// so a partial upload never becomes visible.
type LocalStorage struct {
	dir string
}

// NewLocalStorage creates the directory if needed.
func NewLocalStorage(dir string) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload directory: %w", err)
	}
	return &LocalStorage{dir: dir}, nil
}

// Save implements UploadStorage.
func (l *LocalStorage) Save(ctx context.Context, key, contentType string, r io.Reader) (ref string, err error) {
	tmp, err := os.CreateTemp(l.dir, ".upload-*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if _, err = io.Copy(tmp, r); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return "", fmt.Errorf("close upload: %w", err)
	}

	dest := filepath.Join(l.dir, key)
	if err = os.Rename(tmp.Name(), dest); err != nil {
		return "", fmt.Errorf("finalize upload: %w", err)
	}
	return key, nil
}

// s3PutObjectAPI is the slice of the S3 client S3Storage depends on.
type s3PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Storage stores uploads in an S3 bucket and returns the public URL.
type S3Storage struct {
	client s3PutObjectAPI
	bucket string
}

// NewS3Storage creates a new S3Storage instance
func NewS3Storage(cfg *config.S3Config) *S3Storage {
	return &S3Storage{client: cfg.Client, bucket: cfg.BucketName}
}

// Save implements UploadStorage.
func (s *S3Storage) Save(ctx context.Context, key, contentType string, r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("upload to S3: %w", err)
	}
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.bucket, key), nil
}
