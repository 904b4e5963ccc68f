package database

import (
	"fmt"
	"maps"
	"net/url"
	"slices"
	"strings"
)

// Settings holds the server-side connection parameters shared by every
// database the tool talks to. The database path is supplied per call.
type Settings struct {
	User     string
	Password string
	Host     string
	Port     int
	Params   map[string]string
}

// DefaultSettings mirrors a stock local Firebird installation.
func DefaultSettings() Settings {
	return Settings{
		User:     "SYSDBA",
		Password: "masterkey",
		Host:     "localhost",
		Port:     3050,
	}
}

// DSN renders a firebirdsql data source name for the database at path.
// Absolute paths keep their leading slash, giving the driver's
// "host:port//abs/file.fdb" form.
func (s Settings) DSN(path string) string {
	var sb strings.Builder
	sb.WriteString(url.UserPassword(s.User, s.Password).String())
	sb.WriteString("@")
	sb.WriteString(s.Host)
	if s.Port > 0 {
		fmt.Fprintf(&sb, ":%d", s.Port)
	}
	sb.WriteString("/")
	sb.WriteString(filepathToDSN(path))

	if len(s.Params) > 0 {
		q := url.Values{}
		for _, k := range slices.Sorted(maps.Keys(s.Params)) {
			q.Set(k, s.Params[k])
		}
		sb.WriteString("?")
		sb.WriteString(q.Encode())
	}
	return sb.String()
}

// filepathToDSN converts Windows separators so the path survives URL parsing.
func filepathToDSN(path string) string {
	return strings.ReplaceAll(path, `\`, "/")
}
