package dialect

// Dialect abstracts the catalog and error conventions of the target server.
type Dialect interface {
	// Metadata Queries (Schema Introspection)
	GetDomainsQuery() string
	GetTablesQuery() string
	GetProceduresQuery() string
	// GetColumnsQuery binds the table name.
	GetColumnsQuery() string
	// GetParametersQuery binds the procedure name and parameter direction.
	GetParametersQuery() string

	// Query Generation
	Placeholder(index int) string

	// Error Classification
	IsAlreadyExists(err error) bool

	// Script Conventions
	DefaultTerminator() string
}
