package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/pribylovaa/go-resource-market/internal/models"
	"github.com/pribylovaa/go-resource-market/internal/pkg/log"
	"github.com/pribylovaa/go-resource-market/internal/storage"
)

// UserByID возвращает учётную запись пользователя (без проверки прав).
func (s *Service) UserByID(ctx context.Context, id int64) (*models.User, error) {
	const op = "service.users.UserByID"

	user, err := s.users.UserByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, s.mapStorageErr(ctx, op, err))
	}

	return user, nil
}

// UpdateProfile обновляет профиль targetID. Менять можно только свой профиль.
//
// Валидация: latitude в [-90, 90], longitude в [-180, 180], ссылки на
// справочники положительные; несуществующая ссылка -> ErrInvalidArgument.
func (s *Service) UpdateProfile(ctx context.Context, userID, targetID int64, upd storage.ProfileUpdate) (*models.User, error) {
	const op = "service.users.UpdateProfile"

	lg := log.From(ctx).With("op", op, "user_id", userID)

	if err := AuthorizeSelf(userID, targetID); err != nil {
		lg.Warn("profile_update_denied", "target_id", targetID)

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if upd.Address != nil {
		addr := strings.TrimSpace(*upd.Address)
		upd.Address = &addr
	}

	if !positive(upd.CourseID) || !positive(upd.UniversityID) || !positive(upd.RoleID) ||
		(upd.Latitude != nil && (*upd.Latitude < -90 || *upd.Latitude > 90)) ||
		(upd.Longitude != nil && (*upd.Longitude < -180 || *upd.Longitude > 180)) {
		lg.Warn("profile_update_invalid_argument")

		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	user, err := s.users.UpdateProfile(ctx, targetID, upd)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, s.mapStorageErr(ctx, op, err))
	}

	lg.Info("profile_updated")

	return user, nil
}

func positive(p *int64) bool {
	return p == nil || *p > 0
}
