package service

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/pageza/fridge-chef/backend/config"
)

const archivePrefix = "uploads"

// objectPutter is the part of *s3.Client used by the archive
type objectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// ImageArchive stores a copy of each uploaded image in S3
type ImageArchive struct {
	client objectPutter
	bucket string
}

// NewImageArchive creates a new ImageArchive backed by the configured bucket
func NewImageArchive(s3Config *config.S3Config) *ImageArchive {
	return &ImageArchive{
		client: s3Config.Client,
		bucket: s3Config.BucketName,
	}
}

// ArchiveImage uploads the image under a fresh key and returns its s3:// location
func (a *ImageArchive) ArchiveImage(ctx context.Context, image []byte, filename, mimeType string) (string, error) {
	key := fmt.Sprintf("%s/%s%s", archivePrefix, uuid.New().String(), strings.ToLower(filepath.Ext(filename)))

	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(image),
		ContentType: aws.String(mimeType),
		Metadata: map[string]string{
			"original-filename": filename,
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	return fmt.Sprintf("s3://%s/%s", a.bucket, key), nil
}
