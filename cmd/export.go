package cmd

import (
	"github.com/spf13/cobra"

	"db-meta/internal/engine"
	"db-meta/internal/report"
)

var (
	exportConnection string
	exportOutputDir  string
)

var exportCmd = &cobra.Command{
	Use:   "export-scripts",
	Short: "Write the schema of a database as domains, tables and procedures scripts",
	Long: `Reads the user domains, tables and procedures of a database and writes one
CREATE script per object below --output-dir. A category that cannot be
exported is reported and the remaining categories are still written.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return failed(runExport(cmd, exportConnection, exportOutputDir))
	},
}

func init() {
	RootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVar(&exportConnection, "connection-string", "", "DSN or key/value connection string of the database")
	exportCmd.Flags().StringVar(&exportOutputDir, "output-dir", "", "Directory to write the scripts to")
	exportCmd.MarkFlagRequired("connection-string")
	exportCmd.MarkFlagRequired("output-dir")
}

func runExport(cmd *cobra.Command, connectionString, outDir string) error {
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

	e := &engine.Exporter{Dialect: s.dialect, Reporter: s.out, Log: s.log}
	res, err := e.Export(cmd.Context(), conn, outDir)
	if err != nil {
		return err
	}

	report.PrintExport(cmd.OutOrStdout(), res)
	if res.Failed() {
		s.out.Warnf("Scripts exported with errors.")
		return nil
	}
	s.out.Successf("Scripts exported successfully.")
	return nil
}
