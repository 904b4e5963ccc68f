package cmd

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"db-meta/internal/database"
	"db-meta/internal/dialect"
	"db-meta/internal/engine"
	"db-meta/internal/report"
)

// session is what every command needs before it starts working.
type session struct {
	cmd     *cobra.Command
	cfg     *Config
	log     *zap.Logger
	out     *report.Console
	dialect dialect.Dialect
}

func newSession(cmd *cobra.Command) (*session, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	log, err := newLogger(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	d, err := dialect.GetDialect("firebird", cfg.Update.AlreadyExistsPatterns...)
	if err != nil {
		return nil, err
	}
	return &session{
		cmd:     cmd,
		cfg:     cfg,
		log:     log,
		out:     report.NewConsole(cmd.OutOrStdout()),
		dialect: d,
	}, nil
}

func (s *session) close() {
	s.log.Sync()
}

// runner returns a script runner that reports to the console and drives a
// progress bar over the scripts below scriptsDir when enabled.
func (s *session) runner(scriptsDir string, verbose bool) (*engine.Runner, func()) {
	onFile, stop := startProgress(s.cfg.Output.Progress, engine.CountScripts(scriptsDir))
	return &engine.Runner{
		Reporter: s.out,
		Log:      s.log,
		OnFile:   onFile,
		Verbose:  verbose,
	}, stop
}

// connect opens the database named by a DSN or key/value connection string
// and pins one connection for the whole command.
func (s *session) connect(ctx context.Context, connectionString string) (*sql.Conn, func(), error) {
	dsn, err := database.ParseConnectionString(connectionString, s.cfg.Firebird.Settings())
	if err != nil {
		return nil, nil, err
	}
	db, err := database.Open(ctx, database.DriverName, dsn)
	if err != nil {
		return nil, nil, err
	}
	conn, err := db.Conn(ctx)
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to connect to db: %w", err)
	}
	s.out.Infof("Connected to the database.")
	return conn, func() {
		conn.Close()
		db.Close()
	}, nil
}
