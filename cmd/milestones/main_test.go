package main

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/clive/milestones/internal/render"
)

const testBoard = `title: Release
progress: 0.5
milestones:
  - {position: 0, label: Start}
  - {position: 0.5, label: Beta}
  - {position: 1, label: Launch}
viewport:
  width: 300
  height: 90
`

func writeBoard(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "board.yaml")
	if err := os.WriteFile(path, []byte(testBoard), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := rootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRenderText(t *testing.T) {
	board := writeBoard(t)
	out, err := run(t, "--board", board, "render", "--format", "text", "--width", "40")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2:\n%s", len(lines), out)
	}
	for _, glyph := range []string{render.GlyphDone, render.GlyphActive, render.GlyphPending} {
		if !strings.Contains(lines[0], glyph) {
			t.Errorf("bar %q missing %s", lines[0], glyph)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Error("text written to a buffer should carry no escape codes")
	}
}

func TestRenderProgressOverride(t *testing.T) {
	board := writeBoard(t)
	out, err := run(t, "--board", board, "render", "--format", "text", "--progress", "1")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if n := strings.Count(out, render.GlyphDone); n != 3 {
		t.Errorf("got %d done markers at full progress, want 3:\n%s", n, out)
	}
}

func TestRenderSeededCompletion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.yaml")
	doc := "milestones:\n  - {position: 0.5, label: Shipped, completed: true}\n  - {position: 0.9, label: Next}\n"
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}
	out, err := run(t, "--board", path, "render", "--format", "text", "--no-color")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if n := strings.Count(out, render.GlyphDone); n != 1 {
		t.Errorf("got %d done markers, want 1 for the seeded milestone:\n%s", n, out)
	}
}

func TestRenderSVGToFile(t *testing.T) {
	board := writeBoard(t)
	dst := filepath.Join(t.TempDir(), "out.svg")
	if _, err := run(t, "--board", board, "render", "--out", dst); err != nil {
		t.Fatalf("render: %v", err)
	}
	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `width="300"`) || !strings.Contains(string(data), ">Launch</text>") {
		t.Errorf("unexpected svg:\n%s", data)
	}
}

func TestRenderPNGWidth(t *testing.T) {
	board := writeBoard(t)
	out, err := run(t, "--board", board, "render", "-f", "png", "-w", "160")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	img, err := png.Decode(strings.NewReader(out))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 160 || b.Dy() != 90 {
		t.Errorf("size = %dx%d, want 160x90", b.Dx(), b.Dy())
	}
}

func TestRenderErrors(t *testing.T) {
	board := writeBoard(t)
	tests := []struct {
		name string
		args []string
	}{
		{"unknown format", []string{"--board", board, "render", "--format", "gif"}},
		{"missing board", []string{"--board", filepath.Join(t.TempDir(), "nope.yaml"), "render"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := run(t, tt.args...); err == nil {
				t.Error("expected error")
			}
		})
	}
}
