package testutil

import (
	"database/sql"
	"errors"
	"testing"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/tint/internal/preference"
)

// SeedSQLite writes raw as the stored value of the database at path,
// creating the schema first. Raw bypasses mode validation so tests can
// plant corrupt rows.
func SeedSQLite(t *testing.T, path, raw string) {
	t.Helper()

	store, err := preference.OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	db, err := sql.Open("sqlite3", "file:"+path)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	_, err = db.Exec(
		`INSERT INTO preferences (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		preference.Key, raw,
	)
	require.NoError(t, err)
}

// StoredSQLite returns the raw stored value, or false when there is no
// row.
func StoredSQLite(t *testing.T, path string) (string, bool) {
	t.Helper()

	db, err := sql.Open("sqlite3", "file:"+path)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	var value string
	err = db.QueryRow(`SELECT value FROM preferences WHERE key = ?`, preference.Key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false
	}
	require.NoError(t, err)
	return value, true
}
