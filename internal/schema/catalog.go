package schema

import (
	"context"
	"database/sql"
	"fmt"

	"db-meta/internal/dialect"
)

// Queryer is satisfied by *sql.DB, *sql.Conn and *sql.Tx.
type Queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// fieldTypeCols are the nullable RDB$FIELDS columns shared by every query.
type fieldTypeCols struct {
	typ     sql.NullInt16
	length  sql.NullInt32
	scale   sql.NullInt16
	charLen sql.NullInt32
	subType sql.NullInt16
}

func (c *fieldTypeCols) dest() []any {
	return []any{&c.typ, &c.length, &c.scale, &c.charLen, &c.subType}
}

func (c *fieldTypeCols) fieldType() FieldType {
	return FieldType{
		Type:            c.typ.Int16,
		Length:          c.length.Int32,
		Scale:           c.scale.Int16,
		CharacterLength: c.charLen,
		SubType:         c.subType,
	}
}

// ReadDomains returns every user-defined domain.
func ReadDomains(ctx context.Context, db Queryer, d dialect.Dialect) ([]*Domain, error) {
	rows, err := db.QueryContext(ctx, d.GetDomainsQuery())
	if err != nil {
		return nil, fmt.Errorf("failed to query domains: %w", err)
	}
	defer rows.Close()

	var domains []*Domain
	for rows.Next() {
		var (
			name     string
			ft       fieldTypeCols
			def      sql.NullString
			nullFlag sql.NullInt16
			check    sql.NullString
		)
		dest := append([]any{&name}, ft.dest()...)
		dest = append(dest, &def, &nullFlag, &check)
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan domain: %w", err)
		}
		domains = append(domains, &Domain{
			Name:    name,
			Type:    ft.fieldType(),
			Default: def,
			NotNull: nullFlag.Valid && nullFlag.Int16 == 1,
			Check:   check,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating domains: %w", err)
	}
	return domains, nil
}

// ReadTables returns every user table (views and system relations excluded)
// with its columns in declared order.
func ReadTables(ctx context.Context, db Queryer, d dialect.Dialect) ([]*Table, error) {
	names, err := readNames(ctx, db, d.GetTablesQuery())
	if err != nil {
		return nil, fmt.Errorf("failed to query tables: %w", err)
	}

	tables := make([]*Table, 0, len(names))
	for _, name := range names {
		cols, err := readColumns(ctx, db, d, name)
		if err != nil {
			return nil, err
		}
		tables = append(tables, &Table{Name: name, Columns: cols})
	}
	return tables, nil
}

func readColumns(ctx context.Context, db Queryer, d dialect.Dialect, table string) ([]*Column, error) {
	rows, err := db.QueryContext(ctx, d.GetColumnsQuery(), table)
	if err != nil {
		return nil, fmt.Errorf("failed to query columns (table: %s): %w", table, err)
	}
	defer rows.Close()

	var cols []*Column
	for rows.Next() {
		var (
			name     string
			position sql.NullInt32
			ft       fieldTypeCols
			nullFlag sql.NullInt16
			def      sql.NullString
		)
		dest := append([]any{&name, &position}, ft.dest()...)
		dest = append(dest, &nullFlag, &def)
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan column (table: %s): %w", table, err)
		}
		cols = append(cols, &Column{
			Name:     name,
			Position: int(position.Int32),
			Type:     ft.fieldType(),
			Default:  def,
			NotNull:  nullFlag.Valid && nullFlag.Int16 == 1,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating columns (table: %s): %w", table, err)
	}
	return cols, nil
}

// ReadProcedures returns every user procedure. Parameters are only fetched for
// procedures whose source is stored, since nothing else is rendered for them.
func ReadProcedures(ctx context.Context, db Queryer, d dialect.Dialect) ([]*Procedure, error) {
	procs, err := readProcedureSources(ctx, db, d)
	if err != nil {
		return nil, err
	}

	for _, p := range procs {
		if !p.HasSource() {
			continue
		}
		if p.Inputs, err = readParameters(ctx, db, d, p.Name, ParamInput); err != nil {
			return nil, err
		}
		if p.Outputs, err = readParameters(ctx, db, d, p.Name, ParamOutput); err != nil {
			return nil, err
		}
	}
	return procs, nil
}

// readProcedureSources drains the procedure list before any parameter query
// runs, so only one result set is open at a time.
func readProcedureSources(ctx context.Context, db Queryer, d dialect.Dialect) ([]*Procedure, error) {
	rows, err := db.QueryContext(ctx, d.GetProceduresQuery())
	if err != nil {
		return nil, fmt.Errorf("failed to query procedures: %w", err)
	}
	defer rows.Close()

	var procs []*Procedure
	for rows.Next() {
		p := &Procedure{}
		if err := rows.Scan(&p.Name, &p.Source); err != nil {
			return nil, fmt.Errorf("failed to scan procedure: %w", err)
		}
		procs = append(procs, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating procedures: %w", err)
	}
	return procs, nil
}

func readParameters(ctx context.Context, db Queryer, d dialect.Dialect, proc string, dir ParameterDirection) ([]*Parameter, error) {
	rows, err := db.QueryContext(ctx, d.GetParametersQuery(), proc, int16(dir))
	if err != nil {
		return nil, fmt.Errorf("failed to query parameters (procedure: %s): %w", proc, err)
	}
	defer rows.Close()

	var params []*Parameter
	for rows.Next() {
		var (
			name   string
			number sql.NullInt32
			ft     fieldTypeCols
		)
		dest := append([]any{&name, &number}, ft.dest()...)
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan parameter (procedure: %s): %w", proc, err)
		}
		params = append(params, &Parameter{Name: name, Number: int(number.Int32), Type: ft.fieldType()})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating parameters (procedure: %s): %w", proc, err)
	}
	return params, nil
}

func readNames(ctx context.Context, db Queryer, query string) ([]string, error) {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}
