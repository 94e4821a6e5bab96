package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/clive/milestones/internal/logging"
)

func main() {
	if err := logging.Configure(logging.LevelInfo); err != nil {
		_, _ = os.Stderr.WriteString("configure logger: " + err.Error() + "\n")
		os.Exit(1)
	}

	if err := rootCmd().Execute(); err != nil {
		slog.Error("command failed", "err", err)
		os.Exit(1)
	}
}

// rootFlags are the persistent flags shared by every subcommand.
type rootFlags struct {
	debug bool
	board string
}

func (f *rootFlags) level() string {
	if f.debug {
		return logging.LevelDebug
	}
	return logging.LevelInfo
}

func rootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "milestones",
		Short:         "Milestone progress tracks for terminals, images and HTTP clients",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return logging.Configure(flags.level())
		},
	}

	cmd.PersistentFlags().BoolVar(&flags.debug, "debug", false, "Enable debug logging")
	cmd.PersistentFlags().StringVar(&flags.board, "board", "", "Board file (default .milestones/board.yaml, then ~/.milestones/board.yaml)")
	cmd.AddCommand(tuiCmd(flags))
	cmd.AddCommand(serveCmd(flags))
	cmd.AddCommand(renderCmd(flags))
	return cmd
}
