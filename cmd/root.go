package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	exitOK      = 0
	exitUsage   = 1
	exitFailure = -1
)

var cfgFile string

var RootCmd = &cobra.Command{
	Use:   "db-meta",
	Short: "Build, export and update Firebird schemas from SQL scripts",
	Long: `db-meta manages a Firebird schema as a tree of SQL scripts:

  <scripts>/domains/*.sql
  <scripts>/tables/*.sql
  <scripts>/procedures/*.sql

Scripts are always applied in that order.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return errNoCommand
	},
}

// Execute runs the command line and returns the process exit code.
func Execute() int {
	c, err := RootCmd.ExecuteC()
	if err == nil {
		return exitOK
	}

	var runErr *runError
	if errors.As(err, &runErr) {
		fmt.Fprintln(c.OutOrStdout(), color.RedString("Error: %v", runErr.err))
		return exitFailure
	}

	if !errors.Is(err, errNoCommand) {
		fmt.Fprintln(c.OutOrStdout(), color.RedString("Error: %v", err))
	}
	fmt.Fprint(c.OutOrStdout(), c.UsageString())
	return exitUsage
}

func init() {
	cobra.EnableCaseInsensitive = true
	cobra.OnInitialize(initConfig)

	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./db-meta.yaml)")
	RootCmd.PersistentFlags().Bool("progress", false, "Show a progress bar while scripts run")
	RootCmd.PersistentFlags().String("log-level", "warn", "Diagnostic log level (debug, info, warn, error)")

	viper.BindPFlag("output.progress", RootCmd.PersistentFlags().Lookup("progress"))
	viper.BindPFlag("log.level", RootCmd.PersistentFlags().Lookup("log-level"))

	setDefaults()
}

// initConfig reads in the .env file, the config file and ENV variables.
func initConfig() {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			fmt.Fprintln(os.Stderr, color.YellowString("Warning: failed to load .env file: %v", err))
		}
	}

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// 1. Executable Directory (Priority 1)
		ex, err := os.Executable()
		if err == nil {
			viper.AddConfigPath(filepath.Dir(ex))
		}

		// 2. Current Directory (Priority 2)
		viper.AddConfigPath(".")

		viper.SetConfigName("db-meta")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("DBMETA")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	} else if cfgFile != "" {
		fmt.Fprintln(os.Stderr, color.YellowString("Warning: failed to read config file: %v", err))
	}
}
