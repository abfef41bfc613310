// minio реализует storage.ImageStorage на базе MinIO/S3: выдаёт presigned
// PUT URL для прямой загрузки изображений ресурсов клиентом.
package minio

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	mclient "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/pribylovaa/go-resource-market/internal/config"
	"github.com/pribylovaa/go-resource-market/internal/storage"
)

// ImageStorage — адаптер MinIO для изображений ресурсов.
type ImageStorage struct {
	s3     config.S3Config
	images config.ImagesConfig
	client *mclient.Client
}

// New создаёт клиент MinIO и проверяет наличие бакета.
func New(ctx context.Context, s3 config.S3Config, images config.ImagesConfig) (*ImageStorage, error) {
	const op = "storage.minio.New"

	st, err := newStorage(s3, images)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	exists, err := st.client.BucketExists(ctx, s3.Bucket)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if !exists {
		return nil, fmt.Errorf("%s: bucket %q does not exist", op, s3.Bucket)
	}

	return st, nil
}

// newStorage собирает клиент без сетевых вызовов.
func newStorage(s3 config.S3Config, images config.ImagesConfig) (*ImageStorage, error) {
	endpoint, secure := normalizeEndpoint(s3.Endpoint)

	client, err := mclient.New(endpoint, &mclient.Options{
		Creds:  credentials.NewStaticV4(s3.RootUser, s3.RootPassword, ""),
		Secure: secure,
		Region: s3.Region,
	})
	if err != nil {
		return nil, err
	}

	return &ImageStorage{s3: s3, images: images, client: client}, nil
}

// normalizeEndpoint убирает схему из endpoint и выводит из неё Secure.
func normalizeEndpoint(raw string) (string, bool) {
	if u, err := url.Parse(raw); err == nil && u.Scheme != "" && u.Host != "" {
		return u.Host, u.Scheme == "https"
	}

	return strings.TrimSuffix(raw, "/"), false
}

var _ storage.ImageStorage = (*ImageStorage)(nil)
