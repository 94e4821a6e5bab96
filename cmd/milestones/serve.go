package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/clive/milestones/internal/api"
	"github.com/clive/milestones/internal/config"
	"github.com/clive/milestones/internal/logging"
	"github.com/clive/milestones/internal/measure"
	"github.com/clive/milestones/internal/view"
)

func serveCmd(flags *rootFlags) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve progress views over HTTP",
		Long: `Serve progress views over HTTP.

Settings come from the environment: PORT, LOG_LEVEL, API_KEY, BOARD_PATH,
FRAME_WIDTH, MAX_VIEWS and CORS_ORIGIN. The board is loaded into a first
view at startup.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadServer()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				cfg.Port = port
			}

			level := cfg.LogLevel
			if flags.debug {
				level = logging.LevelDebug
			}
			logger, err := logging.New(os.Stdout, logging.FormatJSON, level)
			if err != nil {
				return err
			}
			slog.SetDefault(logger)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg, flags.board, logger)
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "Listen port (overrides PORT)")
	return cmd
}

func serve(ctx context.Context, cfg *config.Server, boardFlag string, logger *slog.Logger) error {
	boardPath := boardFlag
	if boardPath == "" {
		boardPath = cfg.BoardPath
	}
	board, path, err := config.Load(boardPath)
	if err != nil {
		return err
	}

	font, err := measure.NewFont(board.FontSize)
	if err != nil {
		return fmt.Errorf("load label font: %w", err)
	}
	defer font.Close()

	reg := view.NewRegistry(cfg.MaxViews, nil)
	seed, err := reg.Create(board.Milestones, board.Progress)
	if err != nil {
		return err
	}
	logger.Info("board loaded", "path", path, "milestones", len(board.Milestones), "view", seed.ID)

	vp := board.Viewport
	vp.Width = float64(cfg.FrameWidth)

	router := api.NewRouter(reg, api.Options{
		APIKey:     cfg.APIKey,
		CORSOrigin: cfg.CORSOrigin,
		Frames: api.Frames{
			Viewport: vp,
			Theme:    board.Theme,
			FontSize: font.Size(),
			Ascent:   font.Ascent(),
			Measurer: font,
			Duration: board.Animation.Duration(),
		},
	}, logger)

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("milestones server starting", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
		return err
	}

	logger.Info("server stopped")
	return nil
}
