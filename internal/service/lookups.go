package service

import (
	"context"
	"fmt"

	"github.com/pribylovaa/go-resource-market/internal/models"
)

// ListLookup возвращает строки справочника kind. universityID фильтрует
// только курсы.
func (s *Service) ListLookup(ctx context.Context, kind models.LookupKind, universityID *int64) ([]models.LookupItem, error) {
	const op = "service.lookups.ListLookup"

	if !kind.Valid() {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	items, err := s.lookups.ListLookup(ctx, kind, universityID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, s.mapStorageErr(ctx, op, err))
	}

	return items, nil
}
