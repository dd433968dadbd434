package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/wricardo/escaperoom/game/analysis"
	"github.com/wricardo/escaperoom/game/engine"
)

func writeRoom(t *testing.T, dir, name string, config *engine.GameConfig) {
	t.Helper()
	data, err := json.Marshal(config)
	if err != nil {
		t.Fatalf("Failed to marshal config: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, name+".json"), data, 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
}

func TestPrintSummary_AllSolvable(t *testing.T) {
	room := engine.DefaultConfig()
	room.Walls, room.Traps = 0, 0

	var out bytes.Buffer
	printSummary(&out, room, analysis.Sample(room, 1, 10))

	text := out.String()
	for _, want := range []string{
		"Name: Classic Escape Room",
		"Grid: 8 x 5 cells",
		"Avg reachable cells: 40.0 of 40",
		"✅ The start cell was never trapped",
		"✅ All 10 layouts are solvable",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("Expected %q in output:\n%s", want, text)
		}
	}
}

func TestPrintSummary_DrawsUnsolvableLayout(t *testing.T) {
	room := engine.DefaultConfig()
	room.Name = "Crowded"
	room.Traps = 60

	var out bytes.Buffer
	printSummary(&out, room, analysis.Sample(room, 1, 20))

	text := out.String()
	if !strings.Contains(text, "First unsolvable seed: ") {
		t.Fatalf("Expected an unsolvable layout to be reported:\n%s", text)
	}
	if !strings.Contains(text, "   +----") {
		t.Errorf("Expected the layout to be drawn:\n%s", text)
	}
}

func TestCommand_Text(t *testing.T) {
	dir := t.TempDir()
	room := engine.DefaultConfig()
	writeRoom(t, dir, "classic", room)

	var out bytes.Buffer
	err := newCommand(&out).Run(context.Background(), []string{"analyze", "--config-dir", dir, "--seeds", "25"})
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}

	if !strings.Contains(out.String(), "=== Analyzing classic ===") {
		t.Errorf("Expected the room header, got:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "Layouts sampled: 25") {
		t.Errorf("Expected the layout count, got:\n%s", out.String())
	}
}

func TestCommand_JSON(t *testing.T) {
	dir := t.TempDir()
	room := engine.DefaultConfig()
	writeRoom(t, dir, "classic", room)
	room.Name = "Second"
	writeRoom(t, dir, "second", room)

	var out bytes.Buffer
	err := newCommand(&out).Run(context.Background(), []string{"analyze", "--config-dir", dir, "--room", "second", "--seeds", "5", "--json"})
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}

	var summaries []analysis.Summary
	if err := json.Unmarshal(out.Bytes(), &summaries); err != nil {
		t.Fatalf("Expected JSON output, got %v:\n%s", err, out.String())
	}
	if len(summaries) != 1 || summaries[0].Config != "Second" || summaries[0].Layouts != 5 {
		t.Errorf("Unexpected summaries: %+v", summaries)
	}
}

func TestCommand_UnknownRoom(t *testing.T) {
	dir := t.TempDir()
	writeRoom(t, dir, "classic", engine.DefaultConfig())

	err := newCommand(&bytes.Buffer{}).Run(context.Background(), []string{"analyze", "--config-dir", dir, "--room", "nowhere"})
	if err == nil {
		t.Error("Expected an error for an unknown room")
	}
}
