package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/pribylovaa/go-resource-market/internal/models"
	"github.com/pribylovaa/go-resource-market/internal/storage"
)

const resourceColumns = `id, owner_id, title, description, category_id, status_id, price, created_at, updated_at`

func scanResource(row pgx.Row) (*models.Resource, error) {
	var r models.Resource
	err := row.Scan(
		&r.ID,
		&r.OwnerID,
		&r.Title,
		&r.Description,
		&r.CategoryID,
		&r.StatusID,
		&r.Price,
		&r.CreatedAt,
		&r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	r.Images = []string{}

	return &r, nil
}

// CreateResource вставляет ресурс и его изображения в одной транзакции.
func (s *Storage) CreateResource(ctx context.Context, res *models.Resource) error {
	const op = "storage.postgres.CreateResource"

	err := pgx.BeginFunc(ctx, s.db, func(tx pgx.Tx) error {
		query := `
			INSERT INTO resources(owner_id, title, description, category_id, status_id, price)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id, created_at, updated_at
		`

		err := tx.QueryRow(ctx, query,
			res.OwnerID,
			res.Title,
			res.Description,
			res.CategoryID,
			res.StatusID,
			res.Price,
		).Scan(&res.ID, &res.CreatedAt, &res.UpdatedAt)
		if err != nil {
			return err
		}

		return insertImages(ctx, tx, res.ID, res.Images)
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, mapError(err))
	}

	return nil
}

// ResourceByID возвращает ресурс вместе с изображениями.
func (s *Storage) ResourceByID(ctx context.Context, id int64) (*models.Resource, error) {
	const op = "storage.postgres.ResourceByID"

	res, err := resourceByID(ctx, s.db, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapError(err))
	}

	return res, nil
}

// ResourceOwner возвращает owner_id ресурса.
func (s *Storage) ResourceOwner(ctx context.Context, id int64) (int64, error) {
	const op = "storage.postgres.ResourceOwner"

	var ownerID int64
	err := s.db.QueryRow(ctx, `SELECT owner_id FROM resources WHERE id = $1`, id).Scan(&ownerID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, mapError(err))
	}

	return ownerID, nil
}

// ListResources возвращает ресурсы по фильтру, новые первыми.
func (s *Storage) ListResources(ctx context.Context, filter storage.ResourceFilter) ([]models.Resource, error) {
	const op = "storage.postgres.ListResources"

	var (
		where []string
		args  []any
	)

	if filter.OwnerID != nil {
		args = append(args, *filter.OwnerID)
		where = append(where, fmt.Sprintf("owner_id = $%d", len(args)))
	}
	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		where = append(where, fmt.Sprintf("category_id = $%d", len(args)))
	}

	query := `SELECT ` + resourceColumns + ` FROM resources`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY id DESC`

	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	out := make([]models.Resource, 0)
	index := make(map[int64]int)
	ids := make([]int64, 0)

	for rows.Next() {
		r, err := scanResource(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		index[r.ID] = len(out)
		ids = append(ids, r.ID)
		out = append(out, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if len(ids) == 0 {
		return out, nil
	}

	imgRows, err := s.db.Query(ctx, `
		SELECT resource_id, url
		FROM resource_images
		WHERE resource_id = ANY($1)
		ORDER BY resource_id, position
	`, ids)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer imgRows.Close()

	for imgRows.Next() {
		var (
			resourceID int64
			url        string
		)
		if err := imgRows.Scan(&resourceID, &url); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		i := index[resourceID]
		out[i].Images = append(out[i].Images, url)
	}
	if err := imgRows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

// UpdateResource выполняет частичный апдейт ресурса владельца ownerID.
// Images != nil заменяет набор изображений в той же транзакции.
func (s *Storage) UpdateResource(ctx context.Context, id, ownerID int64, update storage.ResourceUpdate) (*models.Resource, error) {
	const op = "storage.postgres.UpdateResource"

	sets := []string{"updated_at = now()"}
	args := make([]any, 0, 7)

	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if update.Title != nil {
		add("title", *update.Title)
	}
	if update.Description != nil {
		add("description", *update.Description)
	}
	if update.CategoryID != nil {
		add("category_id", *update.CategoryID)
	}
	if update.StatusID != nil {
		add("status_id", *update.StatusID)
	}
	if update.Price != nil {
		add("price", *update.Price)
	}

	args = append(args, id, ownerID)
	query := fmt.Sprintf(`UPDATE resources SET %s WHERE id = $%d AND owner_id = $%d RETURNING id`,
		strings.Join(sets, ", "), len(args)-1, len(args))

	var res *models.Resource
	err := pgx.BeginFunc(ctx, s.db, func(tx pgx.Tx) error {
		var updated int64
		if err := tx.QueryRow(ctx, query, args...).Scan(&updated); err != nil {
			return err
		}

		if update.Images != nil {
			if _, err := tx.Exec(ctx, `DELETE FROM resource_images WHERE resource_id = $1`, id); err != nil {
				return err
			}
			if err := insertImages(ctx, tx, id, *update.Images); err != nil {
				return err
			}
		}

		var err error
		res, err = resourceByID(ctx, tx, id)

		return err
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapError(err))
	}

	return res, nil
}

// DeleteResource удаляет ресурс владельца ownerID; изображения удаляются каскадно.
func (s *Storage) DeleteResource(ctx context.Context, id, ownerID int64) error {
	const op = "storage.postgres.DeleteResource"

	tag, err := s.db.Exec(ctx, `DELETE FROM resources WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

func resourceByID(ctx context.Context, q querier, id int64) (*models.Resource, error) {
	res, err := scanResource(q.QueryRow(ctx, `SELECT `+resourceColumns+` FROM resources WHERE id = $1`, id))
	if err != nil {
		return nil, err
	}

	rows, err := q.Query(ctx, `SELECT url FROM resource_images WHERE resource_id = $1 ORDER BY position`, id)
	if err != nil {
		return nil, err
	}

	urls, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, err
	}

	res.Images = append(res.Images, urls...)

	return res, nil
}

func insertImages(ctx context.Context, q querier, resourceID int64, urls []string) error {
	for i, url := range urls {
		_, err := q.Exec(ctx,
			`INSERT INTO resource_images(resource_id, position, url) VALUES ($1, $2, $3)`,
			resourceID, i, url,
		)
		if err != nil {
			return err
		}
	}

	return nil
}
