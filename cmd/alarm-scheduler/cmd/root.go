package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/arminghobadi/alarm-scheduler/internal/config"
	"github.com/arminghobadi/alarm-scheduler/internal/service/scheduler"
	"github.com/arminghobadi/alarm-scheduler/internal/version"
)

var (
	// configPath to the configuration YAML file.
	configPath string

	// rootCmd represents the base command for running the scheduler.
	rootCmd = &cobra.Command{
		Use:   "alarm-scheduler",
		Short: "Run the interactive alarm scheduler.",
		Long: `Starts the interactive alarm scheduler: an ordered queue of timed requests
served by a single worker.

Requests are read one per line from standard input:

  <seconds> Message(<type>, <number>) <text>   schedule a timed message
  Create_Thread: MessageType(<type>)           control request for a type group
  Cancel: Message(<number>)                    control request for a message
  Pause_Thread: MessageType(<type>)            control request for a type group
  Resume_Thread: MessageType(<type>)           control request for a type group

Event lines are written to standard output; operational logs go to standard
error. The session ends on end-of-input or SIGINT/SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			options := &scheduler.RunOptions{
				ConfigPath: configPath,
				Input:      os.Stdin,
				Output:     os.Stdout,
			}

			return scheduler.Run(ctx, options)
		},
	}
)

// Execute runs the alarm-scheduler CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
}
