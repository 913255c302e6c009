package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	trainjatri "github.com/theoremus-urban-solutions/trainjatri"
	"github.com/theoremus-urban-solutions/trainjatri/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:          "trainjatri",
		Short:        "Train tracking backend: schedules, delay estimates, crowd validation",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "config.yml", "path to configuration file")
	root.AddCommand(newServeCmd(&configPath), newStatusCmd(&configPath))
	return root
}

func newServeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			trainjatri.InitLogging()
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			app, err := trainjatri.NewApp(ctx, cfg)
			if err != nil {
				return err
			}
			defer app.Close()

			return app.Serve(ctx)
		},
	}
}

func newStatusCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "status <train-number>",
		Short: "Print one crowd-adjusted live status report as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			trainjatri.InitLogging()
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			app, err := trainjatri.NewApp(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer app.Close()

			report, err := app.Timeline.GenerateStatus(args[0])
			if err != nil {
				return fmt.Errorf("train %s: %w", args[0], err)
			}
			app.Crowd.AdjustStatus(report)

			raw, err := json.MarshalIndent(report, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(raw))
			return nil
		},
	}
}
