package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pribylovaa/go-resource-market/internal/storage"
)

// Registry — реестр refresh-токенов в таблице refresh_tokens. Хранится
// только хэш токена.
type Registry struct {
	db *pgxpool.Pool
}

// Register сохраняет хэш токена. Повторная регистрация ничего не меняет.
func (r *Registry) Register(ctx context.Context, token string, userID int64, expiresAt time.Time) error {
	const op = "storage.postgres.Registry.Register"

	var exp *time.Time
	if !expiresAt.IsZero() {
		exp = &expiresAt
	}

	query := `
		INSERT INTO refresh_tokens(token_hash, user_id, expires_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (token_hash) DO NOTHING
	`

	if _, err := r.db.Exec(ctx, query, storage.TokenKey(token), userID, exp); err != nil {
		return fmt.Errorf("%s: %w", op, mapError(err))
	}

	return nil
}

// IsValid сообщает, есть ли в реестре неистёкший токен.
func (r *Registry) IsValid(ctx context.Context, token string) (bool, error) {
	const op = "storage.postgres.Registry.IsValid"

	query := `
		SELECT EXISTS (
			SELECT 1 FROM refresh_tokens
			WHERE token_hash = $1 AND (expires_at IS NULL OR expires_at > now())
		)
	`

	var ok bool
	if err := r.db.QueryRow(ctx, query, storage.TokenKey(token)).Scan(&ok); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return ok, nil
}

// Revoke удаляет токен из реестра; отсутствие записи не ошибка.
func (r *Registry) Revoke(ctx context.Context, token string) error {
	const op = "storage.postgres.Registry.Revoke"

	if _, err := r.db.Exec(ctx, `DELETE FROM refresh_tokens WHERE token_hash = $1`, storage.TokenKey(token)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// DeleteExpiredTokens удаляет все просроченные токены и возвращает их число.
func (r *Registry) DeleteExpiredTokens(ctx context.Context, now time.Time) (int64, error) {
	const op = "storage.postgres.Registry.DeleteExpiredTokens"

	tag, err := r.db.Exec(ctx, `DELETE FROM refresh_tokens WHERE expires_at <= $1`, now)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return tag.RowsAffected(), nil
}

var _ storage.RefreshRegistry = (*Registry)(nil)
