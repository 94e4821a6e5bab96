package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/clive/milestones/internal/config"
	"github.com/clive/milestones/internal/measure"
	"github.com/clive/milestones/internal/milestone"
	"github.com/clive/milestones/internal/render"
)

// defaultTextWidth is the terminal width used when --width is not set.
const defaultTextWidth = 80

func renderCmd(flags *rootFlags) *cobra.Command {
	var (
		format   string
		out      string
		progress float64
		width    int
		noColor  bool
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the board once as SVG, PNG or text",
		Example: `  milestones render --format svg --progress 0.6 --out progress.svg
  milestones render --format text --width 60`,
		RunE: func(cmd *cobra.Command, args []string) error {
			board, _, err := config.Load(flags.board)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("progress") {
				board.Progress = &progress
			}

			snap := board.Seed(milestone.NewStore())

			var w io.Writer = cmd.OutOrStdout()
			if out != "" && out != "-" {
				f, err := os.Create(out)
				if err != nil {
					return fmt.Errorf("create output: %w", err)
				}
				defer f.Close()
				w = f
			}

			switch format {
			case "svg", "png":
				return renderImage(w, format, board, snap, width)
			case "text":
				if width <= 0 {
					width = defaultTextWidth
				}
				if noColor {
					lipgloss.SetColorProfile(termenv.Ascii)
				} else {
					lipgloss.SetColorProfile(termenv.NewOutput(w).ColorProfile())
				}
				frame := milestone.ComputeFrame(snap, render.TextViewport(width), measure.Cells{})
				_, err := fmt.Fprintln(w, render.Text(frame, width, render.DefaultTextStyles(board.Theme)))
				return err
			default:
				return fmt.Errorf("unknown format %q (want svg, png or text)", format)
			}
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "svg", "Output format: svg, png or text")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default stdout)")
	cmd.Flags().Float64VarP(&progress, "progress", "p", 0, "Progress to render, 0 to 1 (default from the board)")
	cmd.Flags().IntVarP(&width, "width", "w", 0, "Width in pixels, or cells for text (default from the board)")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colors in text output")
	return cmd
}

func renderImage(w io.Writer, format string, board *config.Board, snap milestone.Snapshot, width int) error {
	font, err := measure.NewFont(board.FontSize)
	if err != nil {
		return fmt.Errorf("load label font: %w", err)
	}
	defer font.Close()

	vp := board.Viewport
	if width > 0 {
		vp.Width = float64(width)
	}
	frame := milestone.ComputeFrame(snap, vp, font)
	opts := render.Options{
		Viewport: vp,
		Theme:    board.Theme,
		FontSize: font.Size(),
		Ascent:   font.Ascent(),
	}

	if format == "png" {
		return render.PNG(w, frame, opts)
	}
	return render.SVG(w, frame, opts)
}
