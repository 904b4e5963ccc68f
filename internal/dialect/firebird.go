package dialect

import "strings"

// MetadataUpdateFailed opens the driver message of every failed DDL statement
// (GDS 335544351, isc_no_meta_update).
const MetadataUpdateFailed = "unsuccessful metadata update"

// DefaultExistsPatterns are the messages that, following MetadataUpdateFailed,
// mean the object was already there. Tables report "Table X already exists";
// domains and procedures hit the unique index of their system table.
var DefaultExistsPatterns = []string{
	"already exists",
	"attempt to store duplicate value",
	"violation of PRIMARY or UNIQUE KEY constraint",
}

type FirebirdDialect struct {
	// ExistsPatterns are matched case-insensitively against metadata update
	// failures.
	ExistsPatterns []string
}

// NewFirebirdDialect returns a dialect recognising the given message patterns
// as already-exists failures; with none it uses DefaultExistsPatterns.
func NewFirebirdDialect(patterns ...string) *FirebirdDialect {
	if len(patterns) == 0 {
		patterns = DefaultExistsPatterns
	}
	return &FirebirdDialect{ExistsPatterns: patterns}
}

func (d *FirebirdDialect) GetDomainsQuery() string {
	// Column domains generated by the server are named RDB$<n>.
	return `
SELECT
    TRIM(RDB$FIELD_NAME),
    RDB$FIELD_TYPE,
    RDB$FIELD_LENGTH,
    RDB$FIELD_SCALE,
    RDB$CHARACTER_LENGTH,
    RDB$FIELD_SUB_TYPE,
    TRIM(RDB$DEFAULT_SOURCE),
    RDB$NULL_FLAG,
    TRIM(RDB$VALIDATION_SOURCE)
FROM RDB$FIELDS
WHERE (RDB$SYSTEM_FLAG = 0 OR RDB$SYSTEM_FLAG IS NULL)
  AND RDB$FIELD_NAME NOT STARTING WITH 'RDB$'
ORDER BY RDB$FIELD_NAME`
}

func (d *FirebirdDialect) GetTablesQuery() string {
	return `
SELECT TRIM(RDB$RELATION_NAME)
FROM RDB$RELATIONS
WHERE RDB$VIEW_BLR IS NULL
  AND (RDB$SYSTEM_FLAG = 0 OR RDB$SYSTEM_FLAG IS NULL)
ORDER BY RDB$RELATION_NAME`
}

func (d *FirebirdDialect) GetColumnsQuery() string {
	return `
SELECT
    TRIM(rf.RDB$FIELD_NAME),
    rf.RDB$FIELD_POSITION,
    f.RDB$FIELD_TYPE,
    f.RDB$FIELD_LENGTH,
    f.RDB$FIELD_SCALE,
    f.RDB$CHARACTER_LENGTH,
    f.RDB$FIELD_SUB_TYPE,
    rf.RDB$NULL_FLAG,
    TRIM(rf.RDB$DEFAULT_SOURCE)
FROM RDB$RELATION_FIELDS rf
JOIN RDB$FIELDS f ON rf.RDB$FIELD_SOURCE = f.RDB$FIELD_NAME
WHERE rf.RDB$RELATION_NAME = ` + d.Placeholder(0) + `
ORDER BY rf.RDB$FIELD_POSITION`
}

func (d *FirebirdDialect) GetProceduresQuery() string {
	return `
SELECT
    TRIM(RDB$PROCEDURE_NAME),
    RDB$PROCEDURE_SOURCE
FROM RDB$PROCEDURES
WHERE (RDB$SYSTEM_FLAG = 0 OR RDB$SYSTEM_FLAG IS NULL)
  AND RDB$PACKAGE_NAME IS NULL
ORDER BY RDB$PROCEDURE_NAME`
}

func (d *FirebirdDialect) GetParametersQuery() string {
	return `
SELECT
    TRIM(pp.RDB$PARAMETER_NAME),
    pp.RDB$PARAMETER_NUMBER,
    f.RDB$FIELD_TYPE,
    f.RDB$FIELD_LENGTH,
    f.RDB$FIELD_SCALE,
    f.RDB$CHARACTER_LENGTH,
    f.RDB$FIELD_SUB_TYPE
FROM RDB$PROCEDURE_PARAMETERS pp
JOIN RDB$FIELDS f ON pp.RDB$FIELD_SOURCE = f.RDB$FIELD_NAME
WHERE pp.RDB$PROCEDURE_NAME = ` + d.Placeholder(0) + `
  AND pp.RDB$PARAMETER_TYPE = ` + d.Placeholder(1) + `
  AND pp.RDB$PACKAGE_NAME IS NULL
ORDER BY pp.RDB$PARAMETER_NUMBER`
}

func (d *FirebirdDialect) Placeholder(index int) string {
	return "?"
}

// IsAlreadyExists reports whether err is a failed DDL statement whose object
// already exists. The driver only hands over the rendered status vector, so
// the decision is made on its text: a metadata update failure carrying one of
// ExistsPatterns. A bare "already exists" also counts, for servers and drivers
// that do not prefix the metadata failure.
func (d *FirebirdDialect) IsAlreadyExists(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, MetadataUpdateFailed) {
		for _, p := range d.ExistsPatterns {
			if p != "" && strings.Contains(msg, strings.ToLower(p)) {
				return true
			}
		}
	}
	return MessageSaysExists(msg)
}

func (d *FirebirdDialect) DefaultTerminator() string {
	return ";"
}
