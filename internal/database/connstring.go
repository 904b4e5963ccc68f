package database

import (
	"fmt"
	"strconv"
	"strings"
)

// keyAliases maps the accepted key/value connection string keys (lower-cased,
// spaces removed) to the Settings field they fill.
var keyAliases = map[string]string{
	"user":           "user",
	"userid":         "user",
	"username":       "user",
	"password":       "password",
	"pwd":            "password",
	"database":       "database",
	"initialcatalog": "database",
	"datasource":     "host",
	"server":         "host",
	"host":           "host",
	"port":           "port",
}

// ParseConnectionString turns a connection string into a firebirdsql DSN.
//
// Two forms are accepted. A native DSN ("user:pass@host:port/path.fdb") is
// returned unchanged. The key/value form
// ("User=SYSDBA;Password=masterkey;Database=/db/x.fdb;DataSource=localhost;Port=3050")
// is converted, with keys matched case-insensitively and missing values taken
// from defaults. Unrecognised keys are passed through as driver parameters.
func ParseConnectionString(conn string, defaults Settings) (string, error) {
	conn = strings.TrimSpace(conn)
	if conn == "" {
		return "", ErrEmptyConnectionString
	}
	if !isKeyValue(conn) {
		return conn, nil
	}

	s := defaults
	s.Params = make(map[string]string, len(defaults.Params))
	for k, v := range defaults.Params {
		s.Params[k] = v
	}

	var path string
	for _, part := range strings.Split(conn, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		key, value, ok := strings.Cut(part, "=")
		if !ok {
			return "", fmt.Errorf("%w: %q has no value", ErrInvalidConnectionString, part)
		}
		value = strings.TrimSpace(value)

		switch keyAliases[normalizeKey(key)] {
		case "user":
			s.User = value
		case "password":
			s.Password = value
		case "database":
			path = value
		case "host":
			s.Host = value
		case "port":
			port, err := strconv.Atoi(value)
			if err != nil {
				return "", fmt.Errorf("%w: invalid port %q", ErrInvalidConnectionString, value)
			}
			s.Port = port
		default:
			s.Params[strings.ToLower(strings.TrimSpace(key))] = value
		}
	}

	if path == "" {
		return "", fmt.Errorf("%w: missing Database", ErrInvalidConnectionString)
	}
	return s.DSN(path), nil
}

// isKeyValue reports whether conn starts with a recognised "key=" pair.
func isKeyValue(conn string) bool {
	first, _, _ := strings.Cut(conn, ";")
	key, _, ok := strings.Cut(first, "=")
	if !ok {
		return false
	}
	_, known := keyAliases[normalizeKey(key)]
	return known
}

func normalizeKey(key string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(key), " ", ""))
}
