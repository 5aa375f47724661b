package main

import (
	"fmt"
	"os"

	"fitbuilder/server/internal/config"
	"fitbuilder/server/internal/logging"

	"github.com/spf13/cobra"
)

// @title FitBuilder API
// @version 1.0
// @description Exercise catalog, routine builder and saved routines.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// app carries state shared by every subcommand once the config is loaded.
type app struct {
	configDir string
	cfg       config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "fitbuilder",
		Short: "FitBuilder routine builder server",
		Long: `FitBuilder serves the exercise catalog and routine builder over HTTP.

Run without a subcommand to start the server.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(a.configDir)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			a.cfg = cfg
			logging.Setup(logging.LoggerSetupParams{
				LogFileName:   cfg.Log.File,
				LogToStdout:   cfg.Log.Stdout,
				LogLevel:      cfg.Log.Level,
				LogFormatJSON: cfg.Log.JSON,
			})
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.serve(cmd.Context())
		},
	}
	rootCmd.PersistentFlags().StringVar(&a.configDir, "config", ".", "directory holding config.yaml")

	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Start the HTTP API (default)",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.serve(cmd.Context())
			},
		},
		a.newRoutinesCmd(),
	)
	return rootCmd
}
