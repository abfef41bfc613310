package minio

import (
	"context"
	"fmt"
	"path"
	"slices"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/pribylovaa/go-resource-market/internal/storage"
)

var extByContentType = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// ImageUploadURL выдаёт presigned PUT URL для изображения ресурса.
// Тип и размер проверяются по конфигу; ключ объекта имеет вид
// "resources/<resourceID>/<uuid>.<ext>".
func (s *ImageStorage) ImageUploadURL(ctx context.Context, resourceID int64, contentType string, contentLength int64) (*storage.UploadInfo, error) {
	const op = "storage.minio.ImageUploadURL"

	if contentLength <= 0 || contentLength > s.images.MaxSizeBytes {
		return nil, fmt.Errorf("%s: content length %d: %w", op, contentLength, storage.ErrInvalidArgument)
	}

	if !slices.Contains(s.images.AllowedContentTypes, contentType) {
		return nil, fmt.Errorf("%s: content type %q: %w", op, contentType, storage.ErrInvalidArgument)
	}

	key := objectKey(resourceID, contentType)

	u, err := s.client.PresignedPutObject(ctx, s.s3.Bucket, key, s.s3.PresignTTL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &storage.UploadInfo{
		UploadURL: u.String(),
		ObjectKey: key,
		PublicURL: s.publicURL(key),
		Expires:   s.s3.PresignTTL,
		RequiredHeader: map[string]string{
			"Content-Type":   contentType,
			"Content-Length": strconv.FormatInt(contentLength, 10),
		},
	}, nil
}

func objectKey(resourceID int64, contentType string) string {
	return path.Join("resources", strconv.FormatInt(resourceID, 10), uuid.NewString()+extByContentType[contentType])
}

func (s *ImageStorage) publicURL(key string) string {
	if s.s3.PublicBaseURL == "" {
		return ""
	}

	return strings.TrimRight(s.s3.PublicBaseURL, "/") + "/" + key
}
