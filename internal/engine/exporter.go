package engine

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"db-meta/internal/dialect"
	"db-meta/internal/schema"
)

// ExportResult holds how many objects of each tier were written and why a
// tier could not be exported.
type ExportResult struct {
	Exported map[Tier]int
	Failures map[Tier]error
}

func (r ExportResult) Failed() bool {
	return len(r.Failures) > 0
}

// Exporter writes the schema of a database as a scripts tree that Builder and
// Updater can consume.
type Exporter struct {
	Dialect  dialect.Dialect
	Reporter Reporter
	Log      *zap.Logger
}

// Export creates outDir with one subdirectory per tier, all before any tier
// is read, and writes one script per object. Only directory creation failures
// are returned; a tier that fails
// is reported and recorded in the result while the remaining tiers are still
// exported.
func (e *Exporter) Export(ctx context.Context, db schema.Queryer, outDir string) (ExportResult, error) {
	rep := e.Reporter
	if rep == nil {
		rep = nopReporter{}
	}
	log := e.Log
	if log == nil {
		log = zap.NewNop()
	}
	d := e.Dialect
	if d == nil {
		d = dialect.NewFirebirdDialect()
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return ExportResult{}, fmt.Errorf("failed to create output directory: %w", err)
	}

	res := ExportResult{Exported: map[Tier]int{}, Failures: map[Tier]error{}}
	exports := []struct {
		tier Tier
		run  func(ctx context.Context, dir string) (int, error)
	}{
		{TierDomains, func(ctx context.Context, dir string) (int, error) { return exportDomains(ctx, db, d, dir) }},
		{TierTables, func(ctx context.Context, dir string) (int, error) { return exportTables(ctx, db, d, dir) }},
		{TierProcedures, func(ctx context.Context, dir string) (int, error) { return exportProcedures(ctx, db, d, dir) }},
	}

	for _, tier := range Tiers {
		if err := os.MkdirAll(filepath.Join(outDir, string(tier)), 0o755); err != nil {
			return res, fmt.Errorf("failed to create %s directory: %w", tier, err)
		}
	}

	for _, x := range exports {
		n, err := x.run(ctx, filepath.Join(outDir, string(x.tier)))
		res.Exported[x.tier] = n
		if err != nil {
			res.Failures[x.tier] = err
			rep.Errorf("failed to export %s: %v", x.tier, err)
			continue
		}
		log.Debug("tier exported", zap.String("tier", string(x.tier)), zap.Int("count", n))
		rep.Infof("Exported %d %s.", n, x.tier)
	}
	return res, nil
}

func exportDomains(ctx context.Context, db schema.Queryer, d dialect.Dialect, dir string) (int, error) {
	domains, err := schema.ReadDomains(ctx, db, d)
	if err != nil {
		return 0, err
	}
	for i, dom := range domains {
		if err := writeScript(dir, dom.Name, schema.RenderDomain(dom)); err != nil {
			return i, err
		}
	}
	return len(domains), nil
}

func exportTables(ctx context.Context, db schema.Queryer, d dialect.Dialect, dir string) (int, error) {
	tables, err := schema.ReadTables(ctx, db, d)
	if err != nil {
		return 0, err
	}
	for i, t := range tables {
		if err := writeScript(dir, t.Name, schema.RenderTable(t)); err != nil {
			return i, err
		}
	}
	return len(tables), nil
}

func exportProcedures(ctx context.Context, db schema.Queryer, d dialect.Dialect, dir string) (int, error) {
	procs, err := schema.ReadProcedures(ctx, db, d)
	if err != nil {
		return 0, err
	}
	for i, p := range procs {
		if err := writeScript(dir, p.Name, schema.RenderProcedure(p)); err != nil {
			return i, err
		}
	}
	return len(procs), nil
}

// writeScript writes <dir>/<name>.sql. Path separators in quoted object
// names are replaced so every object stays inside dir.
func writeScript(dir, name, text string) error {
	file := strings.NewReplacer("/", "_", `\`, "_").Replace(name) + ".sql"
	if err := os.WriteFile(filepath.Join(dir, file), []byte(text), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", file, err)
	}
	return nil
}
