package db

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

//go:embed migrations
var embeddedMigrations embed.FS

const migrationSuffix = ".up.sql"

// Migrate applies every pending embedded migration for driver on a single
// connection checked out of the pool. It returns the versions it applied.
func Migrate(ctx context.Context, gormDB *gorm.DB, driver string) ([]string, error) {
	if driver == "" {
		driver = DriverSQLite
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("access connection pool: %w", err)
	}
	conn, err := sqlDB.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	defer func() { _ = conn.Close() }()

	return runMigrations(ctx, conn, embeddedMigrations, path.Join("migrations", driver), driver)
}

func runMigrations(ctx context.Context, conn *sql.Conn, fsys fs.FS, dir, driver string) ([]string, error) {
	start := time.Now()

	versions, err := listMigrations(fsys, dir)
	if err != nil {
		return nil, err
	}
	if err := ensureSchemaMigrationsTable(ctx, conn, driver); err != nil {
		return nil, fmt.Errorf("ensure schema_migrations table: %w", err)
	}

	var applied []string
	for _, version := range versions {
		done, err := isApplied(ctx, conn, version)
		if err != nil {
			return applied, fmt.Errorf("check migration %s: %w", version, err)
		}
		if done {
			continue
		}

		file := path.Join(dir, version+migrationSuffix)
		data, err := fs.ReadFile(fsys, file)
		if err != nil {
			return applied, fmt.Errorf("read migration %s: %w", file, err)
		}
		if err := applyMigration(ctx, conn, version, string(data)); err != nil {
			return applied, err
		}
		log.WithField("version", version).Info("applied migration")
		applied = append(applied, version)
	}

	log.WithFields(log.Fields{
		"driver":   driver,
		"applied":  len(applied),
		"duration": time.Since(start),
	}).Info("migrations complete")
	return applied, nil
}

// listMigrations lists migration versions in dir in lexical order.
func listMigrations(fsys fs.FS, dir string) ([]string, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("no migrations embedded for %s", path.Base(dir))
		}
		return nil, fmt.Errorf("read embedded migrations (%s): %w", dir, err)
	}

	var versions []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), migrationSuffix) {
			continue
		}
		versions = append(versions, strings.TrimSuffix(e.Name(), migrationSuffix))
	}
	sort.Strings(versions)
	return versions, nil
}

func ensureSchemaMigrationsTable(ctx context.Context, conn *sql.Conn, driver string) error {
	// MySQL cannot index an unbounded TEXT column.
	ddl := `CREATE TABLE IF NOT EXISTS schema_migrations (version TEXT PRIMARY KEY, applied_at TIMESTAMP)`
	if driver == DriverMySQL {
		ddl = `CREATE TABLE IF NOT EXISTS schema_migrations (version VARCHAR(191) PRIMARY KEY, applied_at TIMESTAMP)`
	}
	_, err := conn.ExecContext(ctx, ddl)
	return err
}

func isApplied(ctx context.Context, conn *sql.Conn, version string) (bool, error) {
	var exists int
	err := conn.QueryRowContext(ctx, "SELECT 1 FROM schema_migrations WHERE version = ?", version).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func applyMigration(ctx context.Context, conn *sql.Conn, version, stmt string) error {
	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin migration %s: %w", version, err)
	}
	if _, err := tx.ExecContext(ctx, stmt); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("execute migration %s: %w", version, err)
	}
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO schema_migrations(version, applied_at) VALUES(?, ?)",
		version, time.Now().UTC(),
	); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("record migration %s: %w", version, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit migration %s: %w", version, err)
	}
	return nil
}
