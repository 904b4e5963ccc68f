package engine

import (
	"context"
	"path/filepath"

	"db-meta/internal/script"
)

// runTiers applies the scripts under root tier by tier. Domains and tables
// are plain single-statement scripts; procedures use the terminator
// convention.
func (r *Runner) runTiers(ctx context.Context, db TxBeginner, root, terminator string, classify Classifier) Summary {
	if terminator == "" {
		terminator = script.DefaultTerminator
	}
	plain := PlainExecutor(db)
	terminated := TerminatedExecutor(db, terminator, r.Log)

	var sum Summary
	for _, tier := range Tiers {
		exec := plain
		if tier == TierProcedures {
			exec = terminated
		}
		sum.Add(r.RunDirectory(ctx, tier, filepath.Join(root, string(tier)), exec, classify))
	}
	return sum
}
