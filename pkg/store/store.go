// pkg/store/store.go
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"vgclean/pkg/model"
)

func init() {
	// modernc's driver registers as "sqlite", which sqlx has no bindvar
	// mapping for out of the box.
	sqlx.BindDriver("sqlite", sqlx.QUESTION)
}

const tableName = "vgsales"

// Store writes the cleaned dataset into an embedded SQLite database so the
// presentation layer can query it without re-parsing CSV. The table is
// fully replaced on every export; the CSV stays the canonical artifact.
type Store struct {
	db     *sqlx.DB
	logger *zap.Logger
	path   string
}

// Open creates and validates a new store backed by the SQLite file at path
func Open(ctx context.Context, path string, logger *zap.Logger) (*Store, error) {
	if path == "" {
		return nil, errors.New("sqlite path cannot be empty")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	logger.Info("Opening SQLite export target", zap.String("path", path))

	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to sqlite database: %w", err)
	}

	return &Store{
		db:     db,
		logger: logger,
		path:   path,
	}, nil
}

// Close closes the underlying database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// Replace rewrites the vgsales table with the given records inside a
// single transaction, then rebuilds the lookup indexes.
func (s *Store) Replace(ctx context.Context, records []model.Record) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				s.logger.Error("Failed to rollback transaction",
					zap.Error(rbErr),
					zap.Error(err))
			}
		}
	}()

	if _, err = tx.ExecContext(ctx, `DROP TABLE IF EXISTS "`+tableName+`"`); err != nil {
		return fmt.Errorf("failed to drop previous table: %w", err)
	}

	createTableSQL := `
		CREATE TABLE "` + tableName + `" (
			"rank" INTEGER NOT NULL,
			"name" TEXT NOT NULL,
			"platform" TEXT NOT NULL,
			"year" INTEGER NOT NULL,
			"genre" TEXT NOT NULL,
			"publisher" TEXT NOT NULL,
			"na_sales" REAL NOT NULL,
			"eu_sales" REAL NOT NULL,
			"jp_sales" REAL NOT NULL,
			"other_sales" REAL NOT NULL,
			"global_sales" REAL NOT NULL
		)
	`
	if _, err = tx.ExecContext(ctx, createTableSQL); err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}

	insertSQL := `
		INSERT INTO "` + tableName + `"
		("rank", "name", "platform", "year", "genre", "publisher",
		 "na_sales", "eu_sales", "jp_sales", "other_sales", "global_sales")
		VALUES
		(:rank, :name, :platform, :year, :genre, :publisher,
		 :na_sales, :eu_sales, :jp_sales, :other_sales, :global_sales)
	`
	stmt, err := tx.PrepareNamedContext(ctx, insertSQL)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for i := range records {
		if _, err = stmt.ExecContext(ctx, records[i]); err != nil {
			return fmt.Errorf("failed to insert record %d: %w", i, err)
		}
	}

	indexes := []string{
		`CREATE INDEX idx_vgsales_name ON "` + tableName + `"("name")`,
		`CREATE INDEX idx_vgsales_platform ON "` + tableName + `"("platform")`,
		`CREATE INDEX idx_vgsales_genre ON "` + tableName + `"("genre")`,
		`CREATE INDEX idx_vgsales_publisher ON "` + tableName + `"("publisher")`,
		`CREATE INDEX idx_vgsales_year ON "` + tableName + `"("year")`,
	}
	for _, index := range indexes {
		if _, err = tx.ExecContext(ctx, index); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.logger.Info("Exported cleaned dataset to SQLite",
		zap.String("path", s.path),
		zap.Int("rows", len(records)))
	return nil
}

// Count returns the number of exported rows
func (s *Store) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM "`+tableName+`"`)
	if err != nil {
		return 0, fmt.Errorf("failed to count rows: %w", err)
	}
	return count, nil
}
