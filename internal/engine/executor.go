package engine

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"db-meta/internal/script"
)

// TxBeginner is satisfied by *sql.DB and *sql.Conn.
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

// Executor applies the full text of one script. A script either applies
// completely or not at all.
type Executor func(ctx context.Context, text string) error

// PlainExecutor runs the whole script as a single statement. One trailing
// terminator is dropped since the server does not accept it.
func PlainExecutor(db TxBeginner) Executor {
	return func(ctx context.Context, text string) error {
		stmt := strings.TrimSpace(text)
		stmt = strings.TrimSpace(strings.TrimSuffix(stmt, script.DefaultTerminator))
		if stmt == "" {
			return nil
		}
		return inTx(ctx, db, func(tx *sql.Tx) error {
			_, err := tx.ExecContext(ctx, stmt)
			return err
		})
	}
}

// TerminatedExecutor splits the script on terminator, following SET TERM
// switches, and runs every statement in one shared transaction. COMMIT and
// isql client directives are skipped.
func TerminatedExecutor(db TxBeginner, terminator string, log *zap.Logger) Executor {
	if log == nil {
		log = zap.NewNop()
	}
	return func(ctx context.Context, text string) error {
		var stmts []script.Statement
		for _, st := range script.SplitWith(text, terminator) {
			if st.Kind != script.KindSQL {
				log.Debug("skipping client statement",
					zap.Stringer("kind", st.Kind),
					zap.Int("line", st.Line),
					zap.String("text", st.Text))
				continue
			}
			stmts = append(stmts, st)
		}
		if len(stmts) == 0 {
			return nil
		}
		return inTx(ctx, db, func(tx *sql.Tx) error {
			for _, st := range stmts {
				log.Debug("executing statement", zap.Int("line", st.Line))
				if _, err := tx.ExecContext(ctx, st.Text); err != nil {
					return fmt.Errorf("statement at line %d: %w", st.Line, err)
				}
			}
			return nil
		})
	}
}

// inTx commits when fn succeeds and rolls back otherwise.
func inTx(ctx context.Context, db TxBeginner, fn func(tx *sql.Tx) error) error {
	if db == nil {
		return ErrNoDatabase
	}
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if tx != nil {
			tx.Rollback()
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	tx = nil
	return nil
}
