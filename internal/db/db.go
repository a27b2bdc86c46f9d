package db

import (
	"context"
	"fmt"

	"hn_daily/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema creates the run ledger table.
const Schema = `
CREATE TABLE IF NOT EXISTS digest_runs (
	digest_date DATE NOT NULL,
	lang        VARCHAR(64) NOT NULL,
	url         VARCHAR(2048) NOT NULL,
	output_path TEXT NOT NULL,
	bytes       INTEGER NOT NULL,
	created_at  TIMESTAMP WITH TIME ZONE NOT NULL,
	PRIMARY KEY (digest_date, lang)
)`

// Database инкапсулирует пул соединений к PostgreSQL.
type Database struct {
	Pool *pgxpool.Pool
}

// NewDB создаёт новый пул соединений по connString и возвращает Database.
func NewDB(ctx context.Context, connString string) (*Database, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %v", err)
	}
	return &Database{Pool: pool}, nil
}

// Close закрывает пул соединений.
func (db *Database) Close() {
	db.Pool.Close()
}

// Migrate создаёт таблицу digest_runs, если её нет.
func (db *Database) Migrate(ctx context.Context) error {
	_, err := db.Pool.Exec(ctx, Schema)
	return err
}

// SaveRun записывает успешный запуск. Повторный запуск за ту же дату и язык
// перезаписывает строку, как и сам файл.
func (db *Database) SaveRun(ctx context.Context, run models.Run) error {
	_, err := db.Pool.Exec(ctx, `
        INSERT INTO digest_runs (digest_date, lang, url, output_path, bytes, created_at)
        VALUES ($1, $2, $3, $4, $5, $6)
        ON CONFLICT (digest_date, lang) DO UPDATE SET
            url = EXCLUDED.url,
            output_path = EXCLUDED.output_path,
            bytes = EXCLUDED.bytes,
            created_at = EXCLUDED.created_at
    `, run.Date.String(), run.Lang, run.URL, run.OutputPath, run.Bytes, run.FinishedAt)
	return err
}
