package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/clive/milestones/internal/milestone"
	"github.com/clive/milestones/internal/render"
)

// Board is a milestone board file: the milestones, where progress starts,
// and how the view is drawn. A nil Progress leaves the milestones' completed
// flags as written in the file.
type Board struct {
	Title      string                `yaml:"title,omitempty"`
	Progress   *float64              `yaml:"progress,omitempty"`
	Milestones []milestone.Milestone `yaml:"milestones"`
	Viewport   milestone.Viewport    `yaml:"viewport"`
	Theme      render.Theme          `yaml:"theme,omitempty"`
	FontSize   float64               `yaml:"font_size"`
	Animation  Animation             `yaml:"animation"`
}

// Animation holds animation defaults.
type Animation struct {
	DurationMs int `yaml:"duration_ms"`
}

// Seed loads the board's milestones into v and applies the starting progress
// when the board sets one.
func (b *Board) Seed(v Seeder) milestone.Snapshot {
	snap := v.SetMilestones(b.Milestones)
	if b.Progress != nil {
		snap = v.SetProgress(*b.Progress)
	}
	return snap
}

// Seeder is anything that holds a milestone list and a progress value.
type Seeder interface {
	SetMilestones(list []milestone.Milestone) milestone.Snapshot
	SetProgress(v float64) milestone.Snapshot
}

// Duration returns the animation duration.
func (a Animation) Duration() time.Duration {
	return time.Duration(a.DurationMs) * time.Millisecond
}

const boardFile = "board.yaml"

// DefaultViewport is the pixel viewport used when a board leaves it out.
func DefaultViewport() milestone.Viewport {
	return milestone.Viewport{
		Width:             600,
		Height:            96,
		PaddingLeft:       16,
		PaddingRight:      16,
		MarkerRadius:      12,
		SmallMarkerRadius: 4,
		BarHeight:         4,
		Spacing:           4,
	}
}

// DefaultBoard returns the built-in board: three milestones, no progress.
func DefaultBoard() *Board {
	return &Board{
		Title: "Milestones",
		Milestones: []milestone.Milestone{
			{Position: 0, Label: "Start"},
			{Position: 0.5, Label: "Beta"},
			{Position: 1, Label: "Launch"},
		},
		Viewport:  DefaultViewport(),
		Theme:     render.DefaultTheme(),
		FontSize:  14,
		Animation: Animation{DurationMs: 1000},
	}
}

// globalBoardDir returns the global board directory path (~/.milestones)
func globalBoardDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".milestones"), nil
}

// projectBoardPath returns the project-level board path (.milestones/board.yaml in cwd)
func projectBoardPath() string {
	return filepath.Join(".milestones", boardFile)
}

// Resolve picks the board file to read: the explicit path if given, then the
// project board, then the global one. It returns "" when none exists.
func Resolve(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if _, err := os.Stat(projectBoardPath()); err == nil {
		return projectBoardPath(), nil
	}
	dir, err := globalBoardDir()
	if err != nil {
		return "", err
	}
	global := filepath.Join(dir, boardFile)
	if _, err := os.Stat(global); err == nil {
		return global, nil
	}
	return "", nil
}

// Load reads the board at explicit, or the first board found by Resolve.
// With no board file anywhere it returns DefaultBoard. The second return
// value is the path actually read.
func Load(explicit string) (*Board, string, error) {
	path, err := Resolve(explicit)
	if err != nil {
		return nil, "", err
	}
	if path == "" {
		return DefaultBoard(), "", nil
	}
	b, err := ReadFile(path)
	if err != nil {
		return nil, path, err
	}
	return b, path, nil
}

// ReadFile reads and parses one board file.
func ReadFile(path string) (*Board, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read board: %w", err)
	}
	b, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("board %s: %w", path, err)
	}
	return b, nil
}

// Parse decodes a board over the defaults. Fields the document leaves out
// keep their default values; a document without a milestones key keeps the
// default milestones.
func Parse(data []byte) (*Board, error) {
	b := DefaultBoard()
	if err := yaml.Unmarshal(data, b); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	if err := b.normalize(); err != nil {
		return nil, err
	}
	return b, nil
}

// Save writes the board as YAML, creating the parent directory.
func Save(path string, b *Board) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(b)
	if err != nil {
		return fmt.Errorf("encode board: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// normalize clamps numeric ranges and rejects what cannot be clamped.
func (b *Board) normalize() error {
	if b.Progress != nil {
		p := milestone.Clamp01(*b.Progress)
		b.Progress = &p
	}
	for i, m := range b.Milestones {
		if math.IsNaN(m.Position) || math.IsInf(m.Position, 0) {
			return fmt.Errorf("milestone %d (%q): position must be a number", i, m.Label)
		}
	}

	b.Theme = b.Theme.Merge(render.DefaultTheme())
	if err := b.Theme.Validate(); err != nil {
		return err
	}

	if b.FontSize <= 0 {
		return errors.New("font_size must be positive")
	}
	if b.Animation.DurationMs < 0 {
		b.Animation.DurationMs = 0
	}

	vp := &b.Viewport
	if vp.Width <= 0 || vp.Height <= 0 {
		return fmt.Errorf("viewport must have positive size, got %vx%v", vp.Width, vp.Height)
	}
	for _, v := range []*float64{&vp.PaddingLeft, &vp.PaddingRight, &vp.MarkerRadius, &vp.SmallMarkerRadius, &vp.BarHeight, &vp.Spacing} {
		if *v < 0 {
			*v = 0
		}
	}
	return nil
}
