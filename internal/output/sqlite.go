package output

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/hupe1980/imdbsieve/internal/frame"
)

// TableName is the table SQLite exports are loaded into.
const TableName = "titles"

// SQLiteWriter loads a frame into the titles table of a SQLite database.
// The table is dropped and recreated on every write. All columns are TEXT
// and nulls are stored as NULL.
type SQLiteWriter struct {
	path string
	opts fileOptions
}

// NewSQLiteWriter creates a writer for the database at path.
func NewSQLiteWriter(path string, opts ...FileOption) *SQLiteWriter {
	return &SQLiteWriter{path: path, opts: newFileOptions(opts)}
}

// Path returns the database file path.
func (w *SQLiteWriter) Path() string {
	return w.path
}

// Write replaces the titles table with the rows of f in one transaction.
func (w *SQLiteWriter) Write(ctx context.Context, f *frame.Frame) (err error) {
	if err := w.opts.prepare(w.path); err != nil {
		return err
	}

	db, err := sql.Open("sqlite", w.path)
	if err != nil {
		return fmt.Errorf("open sqlite db: %w", err)
	}
	defer db.Close()

	pragmas := []string{
		"PRAGMA journal_mode=DELETE",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.ExecContext(ctx, pragma); execErr != nil {
			return fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	cols := f.Columns()

	if _, err = tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+quoteIdent(TableName)); err != nil {
		return fmt.Errorf("drop table: %w", err)
	}

	if _, err = tx.ExecContext(ctx, createTableSQL(cols)); err != nil {
		return fmt.Errorf("create table: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, insertSQL(cols))
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	args := make([]any, len(cols))

	for i := 0; i < f.Len(); i++ {
		r := f.Row(i)
		for j, c := range cols {
			if r.IsNull(c) {
				args[j] = nil
			} else {
				args[j] = r.Get(c)
			}
		}

		if _, err = stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("insert row %d: %w", i+1, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	if err = os.Chmod(w.path, w.opts.perm); err != nil {
		return fmt.Errorf("setting permissions on %s: %w", w.path, err)
	}

	return nil
}

func createTableSQL(cols []string) string {
	defs := make([]string, len(cols))
	for i, c := range cols {
		defs[i] = quoteIdent(c) + " TEXT"
	}

	return fmt.Sprintf("CREATE TABLE %s (%s)", quoteIdent(TableName), strings.Join(defs, ", "))
}

func insertSQL(cols []string) string {
	names := make([]string, len(cols))
	marks := make([]string, len(cols))

	for i, c := range cols {
		names[i] = quoteIdent(c)
		marks[i] = "?"
	}

	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		quoteIdent(TableName), strings.Join(names, ", "), strings.Join(marks, ", "))
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
