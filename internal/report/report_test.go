package report_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"db-meta/internal/engine"
	"db-meta/internal/report"
)

func init() {
	color.NoColor = true
}

func sampleSummary() engine.Summary {
	var s engine.Summary
	s.Add(engine.TierResult{Tier: engine.TierDomains, Executed: 1})
	s.Add(engine.TierResult{Tier: engine.TierTables, Executed: 1, Skipped: 2})
	s.Add(engine.TierResult{Tier: engine.TierProcedures, Executed: 1, Errors: 1})
	return s
}

func TestPrintSummary_Build(t *testing.T) {
	var buf bytes.Buffer
	report.PrintSummary(&buf, sampleSummary(), false)

	assert.Equal(t, `
Domains: 1 executed, 0 errors
Tables: 1 executed, 0 errors
Procedures: 1 executed, 1 errors
Total: 3 executed, 1 errors
`, buf.String())
}

func TestPrintSummary_Update(t *testing.T) {
	var buf bytes.Buffer
	report.PrintSummary(&buf, sampleSummary(), true)

	assert.Equal(t, `
Domains: 1 executed, 0 skipped, 0 errors
Tables: 1 executed, 2 skipped, 0 errors
Procedures: 1 executed, 0 skipped, 1 errors
Total: 3 executed, 2 skipped, 1 errors
`, buf.String())
}

func TestConsole(t *testing.T) {
	var buf bytes.Buffer
	c := report.NewConsole(&buf)

	c.Infof("Executed: %s", "T1.sql")
	c.Warnf("%s directory does not exist: %s", "Tables", "/x/tables")
	c.Errorf("failed to execute %s script %s: %v", "table", "T2.sql", errors.New("boom"))
	c.Successf("Database built successfully.")

	assert.Equal(t, `Executed: T1.sql
Warning: Tables directory does not exist: /x/tables
Error: failed to execute table script T2.sql: boom
Database built successfully.
`, buf.String())
}

func TestPrintExport(t *testing.T) {
	var buf bytes.Buffer
	report.PrintExport(&buf, engine.ExportResult{})
	assert.Empty(t, buf.String())

	report.PrintExport(&buf, engine.ExportResult{Failures: map[engine.Tier]error{
		engine.TierProcedures: errors.New("lost connection"),
	}})
	assert.Equal(t, "\nWarning: Procedures were not exported completely: lost connection\n", buf.String())
}

var _ engine.Reporter = (*report.Console)(nil)
