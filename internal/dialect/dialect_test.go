package dialect_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"db-meta/internal/dialect"
)

// Messages as firebirdsql renders a server status vector: one line per GDS
// code with the arguments substituted.
const (
	duplicateDomain = "unsuccessful metadata update\n" +
		"CREATE DOMAIN D_CODE failed\n" +
		"violation of PRIMARY or UNIQUE KEY constraint \"RDB$INDEX_2\" on table \"RDB$FIELDS\"\n" +
		"Problematic key value is (\"RDB$FIELD_NAME\" = 'D_CODE')\n"
	duplicateTable = "unsuccessful metadata update\n" +
		"CREATE TABLE ORDERS failed\n" +
		"Table ORDERS already exists\n"
	duplicateProcedure = "unsuccessful metadata update\n" +
		"CREATE PROCEDURE ORDER_TOTAL failed\n" +
		"attempt to store duplicate value (visible to active transactions) in unique index \"RDB$INDEX_21\"\n" +
		"Problematic key value is (\"RDB$PROCEDURE_NAME\" = 'ORDER_TOTAL', \"RDB$PACKAGE_NAME\" = NULL)\n"
	missingTable = "unsuccessful metadata update\n" +
		"CREATE TABLE ORDER_LINES failed\n" +
		"Table ORDERS does not exist\n"
	duplicateRow = "violation of PRIMARY or UNIQUE KEY constraint \"PK_ORDERS\" on table \"ORDERS\"\n" +
		"Problematic key value is (\"ID\" = 1)\n"
)

func TestIsAlreadyExists(t *testing.T) {
	d := dialect.NewFirebirdDialect()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"duplicate domain", errors.New(duplicateDomain), true},
		{"duplicate table", errors.New(duplicateTable), true},
		{"duplicate procedure", errors.New(duplicateProcedure), true},
		{"wrapped", fmt.Errorf("statement at line 3: %w", errors.New(duplicateProcedure)), true},
		{"missing referenced table", errors.New(missingTable), false},
		{"duplicate row outside ddl", errors.New(duplicateRow), false},
		{"bare already exists", errors.New("table T1 already exists (1)"), true},
		{"case insensitive", errors.New("Domain D1 ALREADY EXISTS"), true},
		{"unrelated", errors.New("Column unknown"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, d.IsAlreadyExists(tt.err))
		})
	}
}

func TestIsAlreadyExists_ConfiguredPatterns(t *testing.T) {
	d := dialect.NewFirebirdDialect("unknown gds_code: 336068")

	assert.True(t, d.IsAlreadyExists(errors.New("unsuccessful metadata update\nCREATE PROCEDURE P1 failed\nunknown gds_code: 336068743")))
	assert.False(t, d.IsAlreadyExists(errors.New(duplicateDomain)))
	assert.True(t, d.IsAlreadyExists(errors.New(duplicateTable)), "already exists is always recognised")
}

func TestGetDialect(t *testing.T) {
	for _, name := range []string{"", "firebird", "firebirdsql"} {
		d, err := dialect.GetDialect(name)
		require.NoError(t, err, name)
		assert.Equal(t, ";", d.DefaultTerminator())
		assert.Equal(t, "?", d.Placeholder(0))
	}

	_, err := dialect.GetDialect("mysql")
	assert.ErrorContains(t, err, `unsupported driver "mysql"`)
}

func TestCatalogQueriesSkipSystemObjects(t *testing.T) {
	d := dialect.NewFirebirdDialect()

	assert.Contains(t, d.GetDomainsQuery(), "NOT STARTING WITH 'RDB$'")
	assert.Contains(t, d.GetTablesQuery(), "RDB$VIEW_BLR IS NULL")
	assert.Contains(t, d.GetColumnsQuery(), "ORDER BY rf.RDB$FIELD_POSITION")
	assert.Contains(t, d.GetProceduresQuery(), "RDB$SYSTEM_FLAG = 0")
	assert.Contains(t, d.GetParametersQuery(), "ORDER BY pp.RDB$PARAMETER_NUMBER")
}
