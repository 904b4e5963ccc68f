package cmd

import (
	"github.com/spf13/cobra"

	"db-meta/internal/database"
	"db-meta/internal/engine"
	"db-meta/internal/report"
)

var (
	buildDBDir      string
	buildScriptsDir string
)

var buildCmd = &cobra.Command{
	Use:   "build-db",
	Short: "Create a fresh database and run every script against it",
	Long: `Creates --db-dir, replaces the database file in it with an empty one and
runs the domains, tables and procedures scripts of --scripts-dir in that order.
Failing scripts do not stop the build, but make the command fail at the end.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return failed(runBuild(cmd, buildDBDir, buildScriptsDir))
	},
}

func init() {
	RootCmd.AddCommand(buildCmd)

	buildCmd.Flags().StringVar(&buildDBDir, "db-dir", "", "Directory of the database file to create")
	buildCmd.Flags().StringVar(&buildScriptsDir, "scripts-dir", "", "Root directory of the scripts to run")
	buildCmd.MarkFlagRequired("db-dir")
	buildCmd.MarkFlagRequired("scripts-dir")
}

func runBuild(cmd *cobra.Command, dbDir, scriptsDir string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.close()

	runner, stop := s.runner(scriptsDir, false)
	b := &engine.Builder{
		Runner:   runner,
		Creator:  database.NewFirebird(s.cfg.Firebird.Settings()),
		Dialect:  s.dialect,
		FileName: s.cfg.Firebird.DatabaseFile,
	}
	sum, err := b.Build(cmd.Context(), dbDir, scriptsDir)
	stop()

	if len(sum.Tiers) > 0 {
		report.PrintSummary(cmd.OutOrStdout(), sum, false)
	}
	if err != nil {
		return err
	}
	s.out.Successf("Database built successfully.")
	return nil
}
