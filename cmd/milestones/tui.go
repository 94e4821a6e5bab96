package main

import (
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/clive/milestones/internal/config"
	"github.com/clive/milestones/internal/logging"
	"github.com/clive/milestones/internal/tui"
)

func tuiCmd(flags *rootFlags) *cobra.Command {
	var watch bool
	var logFile string

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Show the board as an interactive progress track",
		RunE: func(cmd *cobra.Command, args []string) error {
			// bubbletea owns the terminal; logs go to a file or nowhere
			if logFile == "" {
				logFile = os.Getenv("MILESTONES_DEBUG_LOG")
			}
			if logFile != "" {
				f, err := logging.ToFile(logFile, flags.level())
				if err != nil {
					return err
				}
				defer f.Close()
			} else {
				logging.Discard()
			}

			board, path, err := config.Load(flags.board)
			if err != nil {
				return err
			}
			slog.Info("board loaded", "path", path, "milestones", len(board.Milestones))

			var watcher *tui.BoardWatcher
			if watch && path != "" {
				watcher, err = tui.NewBoardWatcher(path, 0)
				if err != nil {
					return fmt.Errorf("watch board: %w", err)
				}
				if err := watcher.Start(); err != nil {
					return fmt.Errorf("watch board: %w", err)
				}
				defer watcher.Stop()
			}

			p := tea.NewProgram(
				tui.New(tui.Options{Board: board, Watcher: watcher}),
				tea.WithAltScreen(),
				tea.WithContext(cmd.Context()),
			)
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("run tui: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&watch, "watch", true, "Reload milestones when the board file changes")
	cmd.Flags().StringVar(&logFile, "log-file", "", "Write logs to this file (or set MILESTONES_DEBUG_LOG)")
	return cmd
}
