package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/plateful/backend/config"
)

// ImageStore persists a decoded image and returns the URL to serve it from.
type ImageStore interface {
	Store(ctx context.Context, data []byte, contentType string) (string, error)
}

// ImageService decodes base64 recipe images and stores them in S3 when a
// bucket is configured, or under a local media directory otherwise.
type ImageService struct {
	s3       *config.S3Config
	mediaDir string
}

func NewImageService(s3Config *config.S3Config, mediaDir string) *ImageService {
	return &ImageService{s3: s3Config, mediaDir: mediaDir}
}

// DecodeBase64Image accepts a raw base64 string or a data URI
// ("data:image/png;base64,....") and returns the payload and content type.
func DecodeBase64Image(payload string) ([]byte, string, error) {
	contentType := "image/png"

	if strings.HasPrefix(payload, "data:") {
		parts := strings.SplitN(payload, ",", 2)
		if len(parts) != 2 {
			return nil, "", ErrInvalidImage
		}
		meta := strings.TrimPrefix(parts[0], "data:")
		if ct := strings.TrimSuffix(meta, ";base64"); ct != "" {
			contentType = ct
		}
		payload = parts[1]
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", ErrInvalidImage
	}
	if len(data) == 0 {
		return nil, "", ErrInvalidImage
	}
	return data, contentType, nil
}

// Store writes the image and returns its public URL or media path.
func (s *ImageService) Store(ctx context.Context, data []byte, contentType string) (string, error) {
	key := fmt.Sprintf("recipes/%s%s", uuid.NewString(), extensionFor(contentType))

	if s.s3 != nil {
		_, err := s.s3.Client.PutObject(ctx, &s3.PutObjectInput{
			Bucket:      aws.String(s.s3.BucketName),
			Key:         aws.String(key),
			Body:        bytes.NewReader(data),
			ContentType: aws.String(contentType),
		})
		if err != nil {
			return "", fmt.Errorf("failed to upload to S3: %w", err)
		}
		url := s.s3.ObjectURL(key)
		log.Printf("[ImageService] uploaded image to %s", url)
		return url, nil
	}

	path := filepath.Join(s.mediaDir, key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create media directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write image: %w", err)
	}
	return "/media/" + key, nil
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ".png"
	}
}
