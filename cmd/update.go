package cmd

import (
	"github.com/spf13/cobra"

	"db-meta/internal/engine"
	"db-meta/internal/report"
)

var (
	updateConnection string
	updateScriptsDir string
)

var updateCmd = &cobra.Command{
	Use:   "update-db",
	Short: "Apply scripts to an existing database, skipping existing objects",
	Long: `Runs the domains, tables and procedures scripts of --scripts-dir against an
existing database. Scripts failing because their object already exists are
counted as skipped, so the same scripts can be applied repeatedly.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return failed(runUpdate(cmd, updateConnection, updateScriptsDir))
	},
}

func init() {
	RootCmd.AddCommand(updateCmd)

	updateCmd.Flags().StringVar(&updateConnection, "connection-string", "", "DSN or key/value connection string of the database")
	updateCmd.Flags().StringVar(&updateScriptsDir, "scripts-dir", "", "Root directory of the scripts to apply")
	updateCmd.MarkFlagRequired("connection-string")
	updateCmd.MarkFlagRequired("scripts-dir")
}

func runUpdate(cmd *cobra.Command, connectionString, scriptsDir string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.close()

	conn, closeConn, err := s.connect(cmd.Context(), connectionString)
	if err != nil {
		return err
	}
	defer closeConn()

	runner, stop := s.runner(scriptsDir, true)
	u := &engine.Updater{Runner: runner, Dialect: s.dialect}
	sum, err := u.Update(cmd.Context(), conn, scriptsDir)
	stop()

	report.PrintSummary(cmd.OutOrStdout(), sum, true)
	if err != nil {
		return err
	}
	s.out.Successf("Database updated successfully.")
	return nil
}
