package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/pribylovaa/go-resource-market/internal/pkg/log"
	"github.com/pribylovaa/go-resource-market/internal/storage"
)

// AuthorizeResource проверяет, что userID владеет ресурсом resourceID.
// Отсутствие ресурса проверяется раньше владения: ErrNotFound, затем
// ErrForbidden.
func (s *Service) AuthorizeResource(ctx context.Context, userID, resourceID int64) error {
	const op = "service.ownership.AuthorizeResource"

	ownerID, err := s.resources.ResourceOwner(ctx, resourceID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		log.From(ctx).Error("ownership_lookup_failed", "op", op, "resource_id", resourceID, "err", err)

		return fmt.Errorf("%s: %w", op, ErrInternal)
	}

	if ownerID != userID {
		log.From(ctx).Warn("ownership_denied", "op", op, "resource_id", resourceID, "user_id", userID)

		return fmt.Errorf("%s: %w", op, ErrForbidden)
	}

	return nil
}

// AuthorizeSelf разрешает операцию над профилем targetID только самому
// пользователю.
func AuthorizeSelf(userID, targetID int64) error {
	if userID != targetID {
		return fmt.Errorf("service.ownership.AuthorizeSelf: %w", ErrForbidden)
	}

	return nil
}
