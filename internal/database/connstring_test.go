package database_test

import (
	"net/url"
	"strings"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"db-meta/internal/database"
)

func TestParseConnectionString(t *testing.T) {
	defaults := database.DefaultSettings()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "native dsn passes through",
			in:   "SYSDBA:masterkey@db.example:3050//data/app.fdb",
			want: "SYSDBA:masterkey@db.example:3050//data/app.fdb",
		},
		{
			name: "key value form",
			in:   "User=SYSDBA;Password=secret;Database=/data/app.fdb;DataSource=db.example;Port=3051;",
			want: "SYSDBA:secret@db.example:3051//data/app.fdb",
		},
		{
			name: "aliases and case",
			in:   "user id=ADMIN; PASSWORD=pw; Initial Catalog=/x.fdb; Server=srv",
			want: "ADMIN:pw@srv:3050//x.fdb",
		},
		{
			name: "defaults fill the gaps",
			in:   "Database=/only/path.fdb",
			want: "SYSDBA:masterkey@localhost:3050//only/path.fdb",
		},
		{
			name: "unknown keys become params",
			in:   "Database=/a.fdb;Charset=UTF8;Dialect=3",
			want: "SYSDBA:masterkey@localhost:3050//a.fdb?charset=UTF8&dialect=3",
		},
		{
			name: "relative path and windows separators",
			in:   `Database=C:\db\app.fdb;Host=win`,
			want: "SYSDBA:masterkey@win:3050/C:/db/app.fdb",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := database.ParseConnectionString(tt.in, defaults)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseConnectionString_Errors(t *testing.T) {
	defaults := database.DefaultSettings()

	_, err := database.ParseConnectionString("   ", defaults)
	assert.ErrorIs(t, err, database.ErrEmptyConnectionString)

	_, err = database.ParseConnectionString("User=SYSDBA;Password=x", defaults)
	assert.ErrorIs(t, err, database.ErrInvalidConnectionString)

	_, err = database.ParseConnectionString("Database=/a.fdb;Port=abc", defaults)
	assert.ErrorIs(t, err, database.ErrInvalidConnectionString)

	_, err = database.ParseConnectionString("Database=/a.fdb;garbage", defaults)
	assert.ErrorIs(t, err, database.ErrInvalidConnectionString)
}

func TestParseConnectionString_DoesNotMutateDefaults(t *testing.T) {
	defaults := database.DefaultSettings()
	defaults.Params = map[string]string{"wire_crypt": "false"}

	got, err := database.ParseConnectionString("Database=/a.fdb;Role=RDB$ADMIN", defaults)
	require.NoError(t, err)
	assert.Contains(t, got, "wire_crypt=false")
	assert.Contains(t, got, "role=RDB%24ADMIN")
	assert.Equal(t, map[string]string{"wire_crypt": "false"}, defaults.Params)
}

func TestSettingsDSN_EscapesCredentials(t *testing.T) {
	faker := gofakeit.New(42)
	for range 20 {
		user := faker.Username()
		password := faker.Password(true, true, true, true, true, 16)

		s := database.Settings{User: user, Password: password, Host: "localhost", Port: 3050}
		dsn := s.DSN("/data/app.fdb")

		u, err := url.Parse("firebird://" + dsn)
		require.NoError(t, err, dsn)
		assert.Equal(t, user, u.User.Username())
		pw, ok := u.User.Password()
		assert.True(t, ok)
		assert.Equal(t, password, pw)
		assert.Equal(t, "localhost:3050", u.Host)
		assert.True(t, strings.HasSuffix(u.Path, "//data/app.fdb"), u.Path)
	}
}

func TestSettingsDSN_NoPort(t *testing.T) {
	s := database.Settings{User: "u", Password: "p", Host: "h"}
	assert.Equal(t, "u:p@h/db.fdb", s.DSN("db.fdb"))
}
