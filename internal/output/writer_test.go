package output

import (
	"bytes"
	"context"
	"database/sql"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/hupe1980/imdbsieve/internal/frame"
)

func sample(t *testing.T) *frame.Frame {
	t.Helper()

	f, err := frame.FromRows(
		[]string{"tconst", "primaryTitle", "startYear", "averageRating", "genres"},
		[][]string{
			{"tt0111161", "The Shawshank Redemption", "1994", "9.3", "Drama"},
			{"tt0000002", `Say "Hi", Bob`, `\N`, "7.0", `\N`},
		},
	)
	require.NoError(t, err)

	return f
}

// ---------------------------------------------------------------------------
// Delimited writers
// ---------------------------------------------------------------------------

func TestStreamWriter_CSV(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, NewStreamWriter(DialectCSV, &buf).Write(context.Background(), sample(t)))

	want := "tconst,primaryTitle,startYear,averageRating,genres\n" +
		"tt0111161,The Shawshank Redemption,1994,9.3,Drama\n" +
		"tt0000002,\"Say \"\"Hi\"\", Bob\",,7.0,\n"
	assert.Equal(t, want, buf.String())
}

func TestStreamWriter_TSVKeepsNullMarker(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, NewStreamWriter(DialectTSV, &buf).Write(context.Background(), sample(t)))

	want := "tconst\tprimaryTitle\tstartYear\taverageRating\tgenres\n" +
		"tt0111161\tThe Shawshank Redemption\t1994\t9.3\tDrama\n" +
		"tt0000002\tSay \"Hi\", Bob\t\\N\t7.0\t\\N\n"
	assert.Equal(t, want, buf.String())
}

func TestStreamWriter_NilDefault(t *testing.T) {
	// Defaults to os.Stdout; just verify it constructs.
	assert.NotNil(t, NewStreamWriter(DialectCSV, nil))
}

func TestDelimitedWriter_UnknownDialect(t *testing.T) {
	err := NewStreamWriter("xml", &bytes.Buffer{}).Write(context.Background(), sample(t))
	assert.ErrorContains(t, err, "unknown delimited dialect")
}

func TestDelimitedWriter_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deep", "nested", "out.csv")

	w := NewDelimitedWriter(DialectCSV, path)
	assert.Equal(t, path, w.Path())
	require.NoError(t, w.Write(context.Background(), sample(t)))

	got, err := os.ReadFile(path) //nolint:gosec // test
	require.NoError(t, err)
	assert.Contains(t, string(got), "tt0111161,The Shawshank Redemption")

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())
}

func TestDelimitedWriter_CustomPermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.tsv")

	require.NoError(t, NewDelimitedWriter(DialectTSV, path, WithPermissions(0o600)).Write(context.Background(), sample(t)))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestDelimitedWriter_OverwriteWarns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "existing.tsv")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o644)) //nolint:gosec // test

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	require.NoError(t, NewDelimitedWriter(DialectTSV, path, WithLogger(logger)).Write(context.Background(), sample(t)))
	assert.Contains(t, logs.String(), "overwriting existing file")

	got, err := os.ReadFile(path) //nolint:gosec // test
	require.NoError(t, err)
	assert.NotContains(t, string(got), "old")
}

func TestDelimitedWriter_InvalidPath(t *testing.T) {
	err := NewDelimitedWriter(DialectCSV, "/dev/null/impossible/out.csv").Write(context.Background(), sample(t))
	assert.Error(t, err)
}

func TestDelimitedWriter_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewStreamWriter(DialectTSV, &bytes.Buffer{}).Write(ctx, sample(t))
	assert.ErrorIs(t, err, context.Canceled)
}

// ---------------------------------------------------------------------------
// XLSX writer
// ---------------------------------------------------------------------------

func TestXLSXWriter_Write(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "titles.xlsx")

	w := NewXLSXWriter(path)
	assert.Equal(t, path, w.Path())
	require.NoError(t, w.Write(context.Background(), sample(t)))

	wb, err := excelize.OpenFile(path)
	require.NoError(t, err)

	defer wb.Close()

	assert.Equal(t, []string{SheetName}, wb.GetSheetList())

	rows, err := wb.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{"tconst", "primaryTitle", "startYear", "averageRating", "genres"}, rows[0])
	assert.Equal(t, []string{"tt0111161", "The Shawshank Redemption", "1994", "9.3", "Drama"}, rows[1])
	// Null cells are empty; trailing empties are trimmed by GetRows.
	assert.Equal(t, []string{"tt0000002", `Say "Hi", Bob`, "", "7"}, rows[2])
}

func TestXLSXWriter_EmptyFrame(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.xlsx")

	require.NoError(t, NewXLSXWriter(path).Write(context.Background(), frame.New([]string{"tconst"})))

	wb, err := excelize.OpenFile(path)
	require.NoError(t, err)

	defer wb.Close()

	rows, err := wb.GetRows(SheetName)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"tconst"}}, rows)
}

func TestCellValues_TypesNumericColumns(t *testing.T) {
	f, err := frame.FromRows(
		[]string{"primaryTitle", "startYear", "averageRating", "numVotes", "runtimeMinutes"},
		[][]string{{"1984", "1984", "7.1", "2,000", `\N`}},
	)
	require.NoError(t, err)

	vals := cellValues(f.Row(0), f.Columns())

	assert.Equal(t, "1984", vals[0], "text column stays text")
	assert.Equal(t, int64(1984), vals[1])
	assert.InDelta(t, 7.1, vals[2], 1e-9)
	assert.Equal(t, "2,000", vals[3], "unparseable number falls back to text")
	assert.Nil(t, vals[4])
}

// ---------------------------------------------------------------------------
// SQLite writer
// ---------------------------------------------------------------------------

func TestSQLiteWriter_Write(t *testing.T) {
	path := filepath.Join(t.TempDir(), "titles.db")

	w := NewSQLiteWriter(path)
	assert.Equal(t, path, w.Path())

	// Writing twice replaces the table.
	require.NoError(t, w.Write(context.Background(), sample(t)))
	require.NoError(t, w.Write(context.Background(), sample(t)))

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)

	defer db.Close()

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM titles`).Scan(&n))
	assert.Equal(t, 2, n)

	var (
		title string
		year  sql.NullString
	)

	require.NoError(t, db.QueryRow(`SELECT "primaryTitle", "startYear" FROM titles WHERE tconst = ?`, "tt0000002").Scan(&title, &year))
	assert.Equal(t, `Say "Hi", Bob`, title)
	assert.False(t, year.Valid)
}

func TestSQLiteWriter_Permissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "titles.db")

	require.NoError(t, NewSQLiteWriter(path, WithPermissions(0o600)).Write(context.Background(), sample(t)))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestSQLiteWriter_QuotesIdentifiers(t *testing.T) {
	assert.Equal(t, `"a""b"`, quoteIdent(`a"b`))
	assert.Equal(t, `CREATE TABLE "titles" ("tconst" TEXT, "x y" TEXT)`, createTableSQL([]string{"tconst", "x y"}))
	assert.Equal(t, `INSERT INTO "titles" ("tconst") VALUES (?)`, insertSQL([]string{"tconst"}))
}
