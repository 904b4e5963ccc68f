package schema

import (
	"fmt"
	"strings"
)

// ProcedureTerminator is the statement terminator used around exported
// procedure bodies.
const ProcedureTerminator = "^"

// RenderDomain reconstructs the CREATE DOMAIN statement of d.
func RenderDomain(d *Domain) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "CREATE DOMAIN %s AS %s\n", d.Name, MapType(d.Type))
	if d.Default.Valid {
		fmt.Fprintf(&sb, "  %s\n", d.Default.String)
	}
	if d.NotNull {
		sb.WriteString("  NOT NULL\n")
	}
	if d.Check.Valid {
		fmt.Fprintf(&sb, "  %s\n", d.Check.String)
	}
	sb.WriteString(";\n")
	return sb.String()
}

// RenderTable reconstructs the CREATE TABLE statement of t. Columns are
// rendered in slice order, which the catalog reader sorts by position.
func RenderTable(t *Table) string {
	defs := make([]string, 0, len(t.Columns))
	for _, c := range t.Columns {
		def := fmt.Sprintf("  %s %s", c.Name, MapType(c.Type))
		if c.Default.Valid {
			def += " " + c.Default.String
		}
		if c.NotNull {
			def += " NOT NULL"
		}
		defs = append(defs, def)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "CREATE TABLE %s (\n", t.Name)
	sb.WriteString(strings.Join(defs, ",\n"))
	sb.WriteString("\n);\n")
	return sb.String()
}

// RenderProcedure reconstructs p as a SET TERM wrapped script. Without stored
// source only an explanatory comment is produced.
func RenderProcedure(p *Procedure) string {
	if !p.HasSource() {
		return fmt.Sprintf("-- Procedure %s has no source code\n", p.Name)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "SET TERM %s ;\n\n", ProcedureTerminator)
	fmt.Fprintf(&sb, "CREATE PROCEDURE %s", p.Name)
	if len(p.Inputs) > 0 {
		sb.WriteString(" (\n")
		sb.WriteString(renderParameters(p.Inputs))
		sb.WriteString("\n)")
	}
	if len(p.Outputs) > 0 {
		sb.WriteString("\nRETURNS (\n")
		sb.WriteString(renderParameters(p.Outputs))
		sb.WriteString("\n)")
	}
	sb.WriteString("\nAS\n")
	sb.WriteString(p.Source.String)
	fmt.Fprintf(&sb, "\n%s\n\n", ProcedureTerminator)
	fmt.Fprintf(&sb, "SET TERM ; %s\n", ProcedureTerminator)
	return sb.String()
}

func renderParameters(params []*Parameter) string {
	defs := make([]string, len(params))
	for i, p := range params {
		defs[i] = fmt.Sprintf("  %s %s", p.Name, MapType(p.Type))
	}
	return strings.Join(defs, ",\n")
}
