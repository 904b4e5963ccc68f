package engine_test

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"db-meta/internal/database"
)

// recorder is a Reporter that keeps every message.
type recorder struct {
	mu    sync.Mutex
	infos []string
	warns []string
	errs  []string
}

func (r *recorder) Infof(format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.infos = append(r.infos, fmt.Sprintf(format, args...))
}

func (r *recorder) Warnf(format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.warns = append(r.warns, fmt.Sprintf(format, args...))
}

func (r *recorder) Errorf(format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errs = append(r.errs, fmt.Sprintf(format, args...))
}

// sqliteCreator provisions SQLite files so builds run without a server.
type sqliteCreator struct{}

func (sqliteCreator) Create(ctx context.Context, path string) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return err
	}
	defer db.Close()
	_, err = db.ExecContext(ctx, "PRAGMA user_version = 1")
	return err
}

func (sqliteCreator) Open(ctx context.Context, path string) (*sql.DB, error) {
	return database.Open(ctx, "sqlite", path)
}

var _ database.Creator = sqliteCreator{}

func openSQLite(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.Open(context.Background(), "sqlite", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

// writeTree creates root/<relative path> for every entry of files.
func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, text := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(text), 0o644))
	}
}

const triggerScript = `SET TERM ^ ;

CREATE TRIGGER P1 AFTER INSERT ON T1
BEGIN
  INSERT OR IGNORE INTO D1 (CODE) VALUES (NEW.CODE);
END
^

SET TERM ; ^
`

// scenarioScripts is one valid script per tier; the tables script references
// the domains one and the procedures one has a semicolon inside BEGIN...END.
func scenarioScripts() map[string]string {
	return map[string]string{
		"domains/D1.sql":    "CREATE TABLE D1 (CODE TEXT PRIMARY KEY);\n",
		"tables/T1.sql":     "CREATE TABLE T1 (\n  ID INTEGER NOT NULL,\n  CODE TEXT REFERENCES D1 (CODE)\n);\n",
		"procedures/P1.sql": triggerScript,
	}
}

func objectExists(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()
	var n int
	err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE name = ?", name).Scan(&n)
	require.NoError(t, err)
	return n > 0
}
