// migrations содержит SQL-схему сервиса и применяет её через goose.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed *.sql
var FS embed.FS

// Up применяет все миграции к db.
func Up(ctx context.Context, db *sql.DB) error {
	const op = "migrations.Up"

	goose.SetBaseFS(FS)

	if err := goose.SetDialect("pgx"); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// UpDSN открывает соединение через pgx/stdlib, применяет миграции и закрывает его.
func UpDSN(ctx context.Context, dsn string) error {
	const op = "migrations.UpDSN"

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer db.Close()

	return Up(ctx, db)
}
