package schema

import (
	"database/sql"
	"strings"
)

// FieldType is the catalog description of a column, domain or parameter type
// as stored in RDB$FIELDS.
type FieldType struct {
	Type            int16
	Length          int32
	Scale           int16 // negative = decimal places
	CharacterLength sql.NullInt32
	SubType         sql.NullInt16
}

type Domain struct {
	Name    string
	Type    FieldType
	Default sql.NullString // raw RDB$DEFAULT_SOURCE, e.g. "DEFAULT 0"
	NotNull bool
	Check   sql.NullString // raw RDB$VALIDATION_SOURCE, e.g. "CHECK (VALUE > 0)"
}

type Table struct {
	Name    string
	Columns []*Column
}

type Column struct {
	Name     string
	Position int
	Type     FieldType
	Default  sql.NullString
	NotNull  bool
}

// ParameterDirection mirrors RDB$PARAMETER_TYPE.
type ParameterDirection int16

const (
	ParamInput  ParameterDirection = 0
	ParamOutput ParameterDirection = 1
)

type Procedure struct {
	Name    string
	Source  sql.NullString // body after AS; NULL or blank when not stored
	Inputs  []*Parameter
	Outputs []*Parameter
}

// HasSource reports whether the procedure body is available for export.
func (p *Procedure) HasSource() bool {
	return p.Source.Valid && strings.TrimSpace(p.Source.String) != ""
}

type Parameter struct {
	Name   string
	Number int
	Type   FieldType
}
