package engine

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"db-meta/internal/database"
	"db-meta/internal/dialect"
)

// DefaultDatabaseFile is the file created inside the database directory.
const DefaultDatabaseFile = "database.fdb"

// Builder creates a fresh database and fills it from a scripts tree.
type Builder struct {
	Runner *Runner
	// Creator is required; Build fails with ErrNoCreator without it.
	Creator  database.Creator
	Dialect  dialect.Dialect
	FileName string
}

// DatabasePath is where Build places the database file for dbDir.
func (b *Builder) DatabasePath(dbDir string) (string, error) {
	name := b.FileName
	if name == "" {
		name = DefaultDatabaseFile
	}
	abs, err := filepath.Abs(dbDir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve database directory: %w", err)
	}
	return filepath.Join(abs, name), nil
}

// Build creates dbDir, replaces any database file in it with an empty one and
// runs the domains, tables and procedures scripts of scriptsDir against it.
// Failing scripts do not stop the build; they make Build return
// ErrScriptsFailed together with the complete summary.
func (b *Builder) Build(ctx context.Context, dbDir, scriptsDir string) (Summary, error) {
	if b.Creator == nil {
		return Summary{}, ErrNoCreator
	}
	runner := b.runner()
	rep := runner.reporter()
	log := runner.logger()

	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return Summary{}, fmt.Errorf("failed to create database directory: %w", err)
	}
	path, err := b.DatabasePath(dbDir)
	if err != nil {
		return Summary{}, err
	}

	if _, err := os.Stat(path); err == nil {
		rep.Warnf("database file already exists and will be overwritten: %s", path)
		if err := os.Remove(path); err != nil {
			return Summary{}, fmt.Errorf("failed to remove existing database: %w", err)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return Summary{}, fmt.Errorf("failed to inspect database file: %w", err)
	}

	if err := b.Creator.Create(ctx, path); err != nil {
		return Summary{}, fmt.Errorf("failed to create database: %w", err)
	}
	rep.Infof("Created empty database: %s", path)

	db, err := b.Creator.Open(ctx, path)
	if err != nil {
		return Summary{}, err
	}
	defer db.Close()

	// Every script runs on the same connection.
	conn, err := db.Conn(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to connect to db: %w", err)
	}
	defer conn.Close()
	rep.Infof("Connected to the new database.")
	log.Debug("building schema", zap.String("database", path), zap.String("scripts", scriptsDir))

	sum := runner.runTiers(ctx, conn, scriptsDir, terminatorOf(b.Dialect), ClassifyPlain)
	if sum.Errors() > 0 {
		return sum, ErrScriptsFailed
	}
	return sum, nil
}

func (b *Builder) runner() *Runner {
	if b.Runner == nil {
		return &Runner{}
	}
	return b.Runner
}

func terminatorOf(d dialect.Dialect) string {
	if d == nil {
		return ""
	}
	return d.DefaultTerminator()
}
