package engine

import (
	"context"

	"go.uber.org/zap"

	"db-meta/internal/dialect"
)

// Updater applies a scripts tree to an existing database. Scripts whose
// object already exists are skipped, so the same tree can be applied again.
type Updater struct {
	Runner  *Runner
	Dialect dialect.Dialect
}

// Update runs the domains, tables and procedures scripts of scriptsDir
// against db. It returns ErrScriptsFailed with the complete summary when any
// script failed for a reason other than an existing object.
func (u *Updater) Update(ctx context.Context, db TxBeginner, scriptsDir string) (Summary, error) {
	runner := u.Runner
	if runner == nil {
		runner = &Runner{}
	}
	d := u.Dialect
	if d == nil {
		d = dialect.NewFirebirdDialect()
	}
	runner.logger().Debug("updating schema", zap.String("scripts", scriptsDir))

	sum := runner.runTiers(ctx, db, scriptsDir, d.DefaultTerminator(), ClassifyExisting(d))
	if sum.Errors() > 0 {
		return sum, ErrScriptsFailed
	}
	return sum, nil
}
