package engine

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"db-meta/internal/dialect"
)

// Tier is one of the fixed script categories, which are also the
// subdirectory names of a scripts root.
type Tier string

const (
	TierDomains    Tier = "domains"
	TierTables     Tier = "tables"
	TierProcedures Tier = "procedures"
)

// Tiers lists the categories in execution order. Tables reference domains and
// procedures reference tables.
var Tiers = []Tier{TierDomains, TierTables, TierProcedures}

// Title is the capitalised tier name used in reports.
func (t Tier) Title() string {
	if t == "" {
		return ""
	}
	return strings.ToUpper(string(t[:1])) + string(t[1:])
}

// object is the singular noun for one script of the tier.
func (t Tier) object() string {
	switch t {
	case TierDomains:
		return "domain"
	case TierTables:
		return "table"
	case TierProcedures:
		return "procedure"
	default:
		return string(t)
	}
}

// Outcome is how a single script run is counted.
type Outcome int

const (
	OutcomeExecuted Outcome = iota
	OutcomeSkipped
	OutcomeError
)

// Classifier maps the result of running one script to its Outcome.
type Classifier func(err error) Outcome

// ClassifyPlain counts every failure as an error.
func ClassifyPlain(err error) Outcome {
	if err == nil {
		return OutcomeExecuted
	}
	return OutcomeError
}

// ClassifyExisting counts "object already exists" failures as skipped.
func ClassifyExisting(d dialect.Dialect) Classifier {
	return func(err error) Outcome {
		switch {
		case err == nil:
			return OutcomeExecuted
		case d.IsAlreadyExists(err):
			return OutcomeSkipped
		default:
			return OutcomeError
		}
	}
}

type TierResult struct {
	Tier     Tier
	Executed int
	Skipped  int
	Errors   int
	// Missing is set when the tier directory does not exist.
	Missing bool
}

// Summary collects the tier results of one run in execution order.
type Summary struct {
	Tiers []TierResult
}

func (s *Summary) Add(r TierResult) {
	s.Tiers = append(s.Tiers, r)
}

func (s Summary) Executed() int {
	n := 0
	for _, r := range s.Tiers {
		n += r.Executed
	}
	return n
}

func (s Summary) Skipped() int {
	n := 0
	for _, r := range s.Tiers {
		n += r.Skipped
	}
	return n
}

func (s Summary) Errors() int {
	n := 0
	for _, r := range s.Tiers {
		n += r.Errors
	}
	return n
}

// Reporter receives the human-readable progress of a run.
type Reporter interface {
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

type nopReporter struct{}

func (nopReporter) Infof(string, ...any)  {}
func (nopReporter) Warnf(string, ...any)  {}
func (nopReporter) Errorf(string, ...any) {}

// Runner executes every script of a directory and tallies the outcomes.
type Runner struct {
	Reporter Reporter
	Log      *zap.Logger
	// OnFile is called after each script, whatever its outcome.
	OnFile func()
	// Verbose announces executed and skipped scripts, not only failures.
	Verbose bool
}

func (r *Runner) reporter() Reporter {
	if r.Reporter == nil {
		return nopReporter{}
	}
	return r.Reporter
}

func (r *Runner) logger() *zap.Logger {
	if r.Log == nil {
		return zap.NewNop()
	}
	return r.Log
}

// RunDirectory runs every *.sql file in dir through exec. It never stops on a
// failing script and never returns an error: a missing or unreadable
// directory is reported and contributes nothing.
func (r *Runner) RunDirectory(ctx context.Context, tier Tier, dir string, exec Executor, classify Classifier) TierResult {
	rep := r.reporter()
	log := r.logger().With(zap.String("tier", string(tier)), zap.String("dir", dir))
	res := TierResult{Tier: tier}

	files, err := listScripts(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			rep.Warnf("%s directory does not exist: %s", tier.Title(), dir)
			res.Missing = true
			return res
		}
		rep.Errorf("failed to process %s directory: %v", tier, err)
		return res
	}
	log.Debug("scripts found", zap.Int("count", len(files)))

	for _, path := range files {
		name := filepath.Base(path)
		outcome := r.runFile(ctx, path, exec, classify)
		switch outcome.kind {
		case OutcomeExecuted:
			res.Executed++
			if r.Verbose {
				rep.Infof("Executed: %s", name)
			}
		case OutcomeSkipped:
			res.Skipped++
			if r.Verbose {
				rep.Infof("Skipped (already exists): %s", name)
			}
			log.Debug("script skipped", zap.String("file", name), zap.Error(outcome.err))
		default:
			res.Errors++
			rep.Errorf("failed to execute %s script %s: %v", tier.object(), name, outcome.err)
			log.Debug("script failed", zap.String("file", name), zap.Error(outcome.err))
		}
		if r.OnFile != nil {
			r.OnFile()
		}
	}
	return res
}

type fileOutcome struct {
	kind Outcome
	err  error
}

func (r *Runner) runFile(ctx context.Context, path string, exec Executor, classify Classifier) fileOutcome {
	text, err := os.ReadFile(path)
	if err != nil {
		return fileOutcome{kind: OutcomeError, err: err}
	}
	err = exec(ctx, string(text))
	return fileOutcome{kind: classify(err), err: err}
}

// listScripts returns the *.sql files of dir (extension matched
// case-insensitively) in directory order.
func listScripts(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".sql") {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	return files, nil
}

// CountScripts returns how many scripts a run over root will visit.
func CountScripts(root string) int {
	n := 0
	for _, tier := range Tiers {
		files, err := listScripts(filepath.Join(root, string(tier)))
		if err == nil {
			n += len(files)
		}
	}
	return n
}
