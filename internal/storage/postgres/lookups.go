package postgres

import (
	"context"
	"fmt"

	"github.com/pribylovaa/go-resource-market/internal/models"
)

// ListLookup читает справочник kind. Имя таблицы берётся только из
// известных значений models.LookupKind.
func (s *Storage) ListLookup(ctx context.Context, kind models.LookupKind, universityID *int64) ([]models.LookupItem, error) {
	const op = "storage.postgres.ListLookup"

	if !kind.Valid() {
		return nil, fmt.Errorf("%s: unknown lookup %q", op, kind)
	}

	query := fmt.Sprintf(`SELECT id, name, NULL::BIGINT FROM %s ORDER BY id`, kind)
	var args []any

	if kind == models.LookupCourses {
		query = `SELECT id, name, university_id FROM courses`
		if universityID != nil {
			query += ` WHERE university_id = $1`
			args = append(args, *universityID)
		}
		query += ` ORDER BY id`
	}

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	out := make([]models.LookupItem, 0)
	for rows.Next() {
		var it models.LookupItem
		if err := rows.Scan(&it.ID, &it.Name, &it.UniversityID); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}
