package storage

import (
	"context"
	"errors"
	"time"
)

// ErrInvalidArgument — запрос на загрузку нарушает ограничения (тип, размер).
var ErrInvalidArgument = errors.New("invalid argument")

// UploadInfo — данные для прямой загрузки изображения в объектное хранилище.
//   - UploadURL: presigned URL для PUT;
//   - ObjectKey: ключ будущего объекта;
//   - PublicURL: адрес, который затем передаётся в images ресурса
//     (пустой, если публичный адрес не сконфигурирован);
//   - RequiredHeader: заголовки, которые клиент обязан передать при PUT.
type UploadInfo struct {
	UploadURL      string
	ObjectKey      string
	PublicURL      string
	Expires        time.Duration
	RequiredHeader map[string]string
}

// ImageStorage выдаёт presigned URL для загрузки изображений ресурса.
type ImageStorage interface {
	ImageUploadURL(ctx context.Context, resourceID int64, contentType string, contentLength int64) (*UploadInfo, error)
}
