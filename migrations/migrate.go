package migrations

import (
	"context"
	"embed"
	"sort"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

//go:embed *.sql
var migrationFiles embed.FS

const advisoryLockID int64 = 704512381

// Apply runs embedded SQL migrations in filename order.
func Apply(ctx context.Context, db *sqlx.DB) error {
	names, err := migrationNames()
	if err != nil {
		return err
	}

	conn, err := db.Connx(ctx)
	if err != nil {
		return errors.Wrap(err, "acquire conn")
	}
	defer conn.Close()

	if _, err := conn.ExecContext(ctx, `SELECT pg_advisory_lock($1)`, advisoryLockID); err != nil {
		return errors.Wrap(err, "acquire migration lock")
	}
	defer func() {
		_, _ = conn.ExecContext(context.Background(), `SELECT pg_advisory_unlock($1)`, advisoryLockID)
	}()

	if _, err := conn.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS schema_migrations (
	name TEXT PRIMARY KEY,
	applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`); err != nil {
		return errors.Wrap(err, "ensure schema_migrations")
	}

	for _, name := range names {
		if err := applyOne(ctx, conn, name); err != nil {
			return err
		}
	}
	return nil
}

// applyOne runs a single migration and records it in the same transaction,
// so a failed statement leaves neither the schema change nor the record.
func applyOne(ctx context.Context, conn *sqlx.Conn, name string) error {
	stmt, err := readMigration(name)
	if err != nil || stmt == "" {
		return err
	}

	tx, err := conn.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrapf(err, "begin migration %s", name)
	}
	defer func() { _ = tx.Rollback() }()

	var applied bool
	if err := tx.GetContext(ctx, &applied, `SELECT EXISTS (SELECT 1 FROM schema_migrations WHERE name = $1)`, name); err != nil {
		return errors.Wrapf(err, "check migration %s", name)
	}
	if applied {
		return nil
	}
	if _, err := tx.ExecContext(ctx, stmt); err != nil {
		return errors.Wrapf(err, "exec migration %s", name)
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO schema_migrations (name) VALUES ($1)`, name); err != nil {
		return errors.Wrapf(err, "record migration %s", name)
	}
	return errors.Wrapf(tx.Commit(), "commit migration %s", name)
}

func readMigration(name string) (string, error) {
	b, err := migrationFiles.ReadFile(name)
	if err != nil {
		return "", errors.Wrapf(err, "read migration %s", name)
	}
	return strings.TrimSpace(string(b)), nil
}

func migrationNames() ([]string, error) {
	entries, err := migrationFiles.ReadDir(".")
	if err != nil {
		return nil, errors.Wrap(err, "read migrations")
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}
