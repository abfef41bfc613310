package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/pribylovaa/go-resource-market/internal/models"
	"github.com/pribylovaa/go-resource-market/internal/pkg/log"
	"github.com/pribylovaa/go-resource-market/internal/storage"
)

// Пагинация списка ресурсов.
const (
	DefaultListLimit = 50
	MaxListLimit     = 100
)

// CreateResourceInput — данные нового ресурса. OwnerID берётся из токена.
type CreateResourceInput struct {
	OwnerID     int64
	Title       string
	Description string
	CategoryID  int64
	StatusID    int64
	Price       *float64
	Images      []string
}

// UpdateResourceInput — частичное обновление. Images != nil заменяет
// набор изображений целиком.
type UpdateResourceInput struct {
	Title       *string
	Description *string
	CategoryID  *int64
	StatusID    *int64
	Price       *float64
	Images      *[]string
}

// CreateResource создаёт ресурс вместе с изображениями одной транзакцией.
func (s *Service) CreateResource(ctx context.Context, in CreateResourceInput) (*models.Resource, error) {
	const op = "service.resources.CreateResource"

	lg := log.From(ctx).With("op", op, "user_id", in.OwnerID)

	res := &models.Resource{
		OwnerID:     in.OwnerID,
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		CategoryID:  in.CategoryID,
		StatusID:    in.StatusID,
		Price:       in.Price,
		Images:      in.Images,
	}

	if res.OwnerID <= 0 || res.Title == "" || res.CategoryID <= 0 || res.StatusID <= 0 ||
		!s.validPrice(res.Price) || !s.validImages(res.Images) {
		lg.Warn("create_resource_invalid_argument")

		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	if err := s.resources.CreateResource(ctx, res); err != nil {
		return nil, fmt.Errorf("%s: %w", op, s.mapStorageErr(ctx, op, err))
	}

	lg.Info("resource_created", "resource_id", res.ID, "images", len(res.Images))

	return res, nil
}

// ListResources возвращает ресурсы по фильтру. Limit ограничен MaxListLimit.
func (s *Service) ListResources(ctx context.Context, filter storage.ResourceFilter) ([]models.Resource, error) {
	const op = "service.resources.ListResources"

	if filter.Limit < 0 || filter.Offset < 0 {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	if filter.Limit == 0 {
		filter.Limit = DefaultListLimit
	}
	if filter.Limit > MaxListLimit {
		filter.Limit = MaxListLimit
	}

	list, err := s.resources.ListResources(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, s.mapStorageErr(ctx, op, err))
	}

	return list, nil
}

// ResourceByID возвращает ресурс по id.
func (s *Service) ResourceByID(ctx context.Context, id int64) (*models.Resource, error) {
	const op = "service.resources.ResourceByID"

	if id <= 0 {
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	res, err := s.resources.ResourceByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, s.mapStorageErr(ctx, op, err))
	}

	return res, nil
}

// UpdateResource обновляет ресурс, если userID является его владельцем.
func (s *Service) UpdateResource(ctx context.Context, userID, resourceID int64, in UpdateResourceInput) (*models.Resource, error) {
	const op = "service.resources.UpdateResource"

	if err := s.AuthorizeResource(ctx, userID, resourceID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	upd := storage.ResourceUpdate{
		Description: trimPtr(in.Description),
		CategoryID:  in.CategoryID,
		StatusID:    in.StatusID,
		Price:       in.Price,
		Images:      in.Images,
	}

	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
		}
		upd.Title = &title
	}

	if (upd.CategoryID != nil && *upd.CategoryID <= 0) ||
		(upd.StatusID != nil && *upd.StatusID <= 0) ||
		!s.validPrice(upd.Price) ||
		(upd.Images != nil && !s.validImages(*upd.Images)) {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	res, err := s.resources.UpdateResource(ctx, resourceID, userID, upd)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, s.mapStorageErr(ctx, op, err))
	}

	log.From(ctx).Info("resource_updated", "op", op, "resource_id", resourceID, "user_id", userID)

	return res, nil
}

// DeleteResource удаляет ресурс, если userID является его владельцем.
func (s *Service) DeleteResource(ctx context.Context, userID, resourceID int64) error {
	const op = "service.resources.DeleteResource"

	if err := s.AuthorizeResource(ctx, userID, resourceID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.resources.DeleteResource(ctx, resourceID, userID); err != nil {
		return fmt.Errorf("%s: %w", op, s.mapStorageErr(ctx, op, err))
	}

	log.From(ctx).Info("resource_deleted", "op", op, "resource_id", resourceID, "user_id", userID)

	return nil
}

// ImageUploadURL выдаёт владельцу presigned URL для загрузки изображения.
func (s *Service) ImageUploadURL(ctx context.Context, userID, resourceID int64, contentType string, contentLength int64) (*storage.UploadInfo, error) {
	const op = "service.resources.ImageUploadURL"

	if s.images == nil {
		return nil, fmt.Errorf("%s: %w", op, ErrImagesDisabled)
	}

	if err := s.AuthorizeResource(ctx, userID, resourceID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	info, err := s.images.ImageUploadURL(ctx, resourceID, contentType, contentLength)
	if err != nil {
		if errors.Is(err, storage.ErrInvalidArgument) {
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
		}

		log.From(ctx).Error("image_presign_failed", "op", op, "resource_id", resourceID, "err", err)

		return nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	return info, nil
}

// mapStorageErr переводит ошибки хранилища в ошибки сервиса. Ошибки
// контекста сохраняются в цепочке, чтобы транспорт отличал таймаут.
func (s *Service) mapStorageErr(ctx context.Context, op string, err error) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		log.From(ctx).Warn("storage_context_done", "op", op, "err", err)

		return fmt.Errorf("%w: %w", ErrInternal, err)
	case errors.Is(err, storage.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, storage.ErrInvalidReference):
		return ErrInvalidArgument
	case errors.Is(err, storage.ErrAlreadyExists):
		return ErrInvalidArgument
	default:
		log.From(ctx).Error("storage_failed", "op", op, "err", err)

		return ErrInternal
	}
}

func (s *Service) validPrice(p *float64) bool {
	return p == nil || *p >= 0
}

func (s *Service) validImages(urls []string) bool {
	if s.cfg.MaxPerResource > 0 && len(urls) > s.cfg.MaxPerResource {
		return false
	}

	for _, u := range urls {
		if strings.TrimSpace(u) == "" {
			return false
		}
	}

	return true
}

func trimPtr(p *string) *string {
	if p == nil {
		return nil
	}

	v := strings.TrimSpace(*p)

	return &v
}
