package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/censusplot/pkg/observability"
)

const testdata = "../../pkg/census/testdata/data.csv"

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty defaults to svg", "", []string{"svg"}},
		{"single format", "svg", []string{"svg"}},
		{"multiple formats", "svg,pdf,png", []string{"svg", "pdf", "png"}},
		{"spaces trimmed", "svg, json", []string{"svg", "json"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseFormats(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
			}
			for i, v := range got {
				if v != tt.want[i] {
					t.Errorf("parseFormats(%q)[%d] = %q, want %q", tt.input, i, v, tt.want[i])
				}
			}
		})
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		output, source, want string
	}{
		{"", "data/data.csv", "data/data"},
		{"", "https://example.com/census/states.csv", "states"},
		{"", "https://example.com/", "chart"},
		{"out/chart.svg", "data.csv", "out/chart"},
		{"out/chart", "data.csv", "out/chart"},
		{"out/chart.v2", "data.csv", "out/chart.v2"},
	}
	for _, tt := range tests {
		if got := basePath(tt.output, tt.source); got != tt.want {
			t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.source, got, tt.want)
		}
	}
}

func TestOutputPath(t *testing.T) {
	if got := outputPath("chart.svg", "data.csv", "svg", 1); got != "chart.svg" {
		t.Errorf("single format keeps output: %q", got)
	}
	if got := outputPath("chart.svg", "data.csv", "png", 2); got != "chart.png" {
		t.Errorf("multiple formats derive from base: %q", got)
	}
	if got := outputPath("", "data.csv", "json", 1); got != "data.json" {
		t.Errorf("no output derives from source: %q", got)
	}
}

func TestRunRender(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	out := filepath.Join(t.TempDir(), "charts", "states")

	c := New(io.Discard, LogInfo)
	opts := &renderOpts{
		output:      out,
		formats:     "svg,json",
		interactive: true,
		tooltips:    true,
	}
	if err := c.runRender(context.Background(), testdata, opts); err != nil {
		t.Fatalf("runRender() error: %v", err)
	}

	svg, err := os.ReadFile(out + ".svg")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(svg, []byte(`id="mark-AL"`)) || !bytes.Contains(svg, []byte("<script")) {
		t.Error("interactive svg should contain marks and its script")
	}
	if _, err := os.Stat(out + ".json"); err != nil {
		t.Errorf("json artifact missing: %v", err)
	}

	// second run is served from the artifact cache
	if err := c.runRender(context.Background(), testdata, opts); err != nil {
		t.Fatal(err)
	}
	dir, _ := cacheDir()
	entries, _ := os.ReadDir(filepath.Join(dir, "artifacts"))
	if len(entries) == 0 {
		t.Error("artifact cache should hold entries")
	}
}

func TestRunRender_InvalidField(t *testing.T) {
	c := New(io.Discard, LogInfo)
	opts := &renderOpts{chartFlags: chartFlags{x: "healthcare", noCache: true}}
	if err := c.runRender(context.Background(), testdata, opts); err == nil {
		t.Error("a y field on the x axis should fail")
	}
}

func TestRootCommand_Render(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	t.Cleanup(observability.Reset)

	cfg := writeConfig(t, "[fields]\nx = \"income\"\n")
	out := filepath.Join(t.TempDir(), "chart.json")

	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetArgs([]string{"render", testdata, "-f", "json", "-o", out, "--config", cfg, "--no-cache"})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("render command error: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(data, []byte(`"x": "income"`)) {
		t.Errorf("config field not applied:\n%.300s", data)
	}
}

func TestRootCommand_Inspect(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Cleanup(observability.Reset)

	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetArgs([]string{"inspect", testdata, "--no-cache"})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("inspect command error: %v", err)
	}
}
