package dialect

import "fmt"

// GetDialect returns the Dialect implementation for a driver name.
// patterns are the messages treated as "already exists" by update runs.
func GetDialect(driver string, patterns ...string) (Dialect, error) {
	switch driver {
	case "firebird", "firebirdsql", "":
		return NewFirebirdDialect(patterns...), nil
	default:
		return nil, fmt.Errorf("unsupported driver %q", driver)
	}
}

// Ensure interface implementation
var _ Dialect = (*FirebirdDialect)(nil)
