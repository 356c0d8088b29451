// Command migrate applies the SQL files under migrations/ in name order.
// Applied versions are recorded in schema_migrations, so running it again
// only applies new files.
package main

import (
	"database/sql"
	"embed"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// arbitrary key shared by every migrate process
const lockKey = 7_284_110

func main() {
	logger := zap.Must(zap.NewDevelopment()).Sugar()
	defer logger.Sync()

	_ = godotenv.Load()

	addr := flag.String("db", os.Getenv("DB_ADDR"), "postgres connection string")
	dryRun := flag.Bool("dry-run", false, "list pending migrations without applying them")
	flag.Parse()

	if *addr == "" {
		logger.Fatal("no database address: set DB_ADDR or pass -db")
	}

	db, err := sql.Open("postgres", *addr)
	if err != nil {
		logger.Fatalw("open database", "error", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		logger.Fatalw("ping database", "error", err)
	}

	applied, err := migrate(db, *dryRun, logger)
	if err != nil {
		logger.Fatalw("migration failed", "error", describe(err))
	}
	logger.Infow("migrations complete", "applied", applied, "dry_run", *dryRun)
}

func migrate(db *sql.DB, dryRun bool, logger *zap.SugaredLogger) (int, error) {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS schema_migrations (
		version    TEXT PRIMARY KEY,
		applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`); err != nil {
		return 0, fmt.Errorf("create schema_migrations: %w", err)
	}

	if _, err := db.Exec(`SELECT pg_advisory_lock($1)`, lockKey); err != nil {
		return 0, fmt.Errorf("acquire lock: %w", err)
	}
	defer db.Exec(`SELECT pg_advisory_unlock($1)`, lockKey)

	done, err := appliedVersions(db)
	if err != nil {
		return 0, err
	}

	files, err := fs.Glob(migrationFS, "migrations/*.sql")
	if err != nil {
		return 0, err
	}
	sort.Strings(files)

	n := 0
	for _, f := range files {
		version := strings.TrimSuffix(strings.TrimPrefix(f, "migrations/"), ".sql")
		if done[version] {
			continue
		}
		if dryRun {
			logger.Infow("pending", "version", version)
			n++
			continue
		}
		body, err := migrationFS.ReadFile(f)
		if err != nil {
			return n, err
		}
		if err := apply(db, version, string(body)); err != nil {
			return n, fmt.Errorf("%s: %w", version, err)
		}
		logger.Infow("applied", "version", version)
		n++
	}
	return n, nil
}

func appliedVersions(db *sql.DB) (map[string]bool, error) {
	rows, err := db.Query(`SELECT version FROM schema_migrations`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]bool)
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		out[v] = true
	}
	return out, rows.Err()
}

func apply(db *sql.DB, version, body string) (err error) {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.Exec(body); err != nil {
		return err
	}
	if _, err = tx.Exec(`INSERT INTO schema_migrations (version) VALUES ($1)`, version); err != nil {
		return err
	}
	return tx.Commit()
}

// describe adds the Postgres error code and detail when available.
func describe(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return fmt.Sprintf("%v (code %s %s) %s", err, pqErr.Code, pqErr.Code.Name(), pqErr.Detail)
	}
	return err.Error()
}
