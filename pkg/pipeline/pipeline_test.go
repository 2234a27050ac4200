package pipeline

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/censusplot/pkg/cache"
	"github.com/matzehuels/censusplot/pkg/census"
	"github.com/matzehuels/censusplot/pkg/errors"
	"github.com/matzehuels/censusplot/pkg/observability"
)

const testdata = "../census/testdata/data.csv"

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"json", false},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) code = %s", tt.format, errors.GetCode(err))
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "png"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}
	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}
	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestOptions_Defaults(t *testing.T) {
	opts := Options{Source: testdata}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if opts.X != "poverty" || opts.Y != "healthcare" {
		t.Errorf("fields = %s/%s, want poverty/healthcare", opts.X, opts.Y)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats = %v, want [svg]", opts.Formats)
	}
	if opts.Duration != time.Second {
		t.Errorf("Duration = %s, want 1s", opts.Duration)
	}
	if opts.Style.Mark != "darkcyan" {
		t.Errorf("Style.Mark = %q, want darkcyan", opts.Style.Mark)
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discard logger")
	}
}

func TestOptions_ExplicitZeroDuration(t *testing.T) {
	opts := Options{Source: testdata}
	opts.SetDuration(0)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if opts.Duration != 0 {
		t.Errorf("Duration = %s, want 0", opts.Duration)
	}
}

func TestOptions_Invalid(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"no source", Options{}, errors.ErrCodeInvalidInput},
		{"unknown field", Options{Source: testdata, X: "wealth"}, errors.ErrCodeInvalidField},
		{"x field on y axis", Options{Source: testdata, X: "obesity"}, errors.ErrCodeInvalidField},
		{"y field on x axis", Options{Source: testdata, Y: "age"}, errors.ErrCodeInvalidField},
		{"negative radius", Options{Source: testdata, Radius: -1}, errors.ErrCodeInvalidInput},
		{"negative duration", Options{Source: testdata, Duration: -time.Second}, errors.ErrCodeInvalidInput},
		{"tiny layout", Options{Source: testdata, Width: 50, Height: 50}, errors.ErrCodeInvalidInput},
		{"bad format", Options{Source: testdata, Formats: []string{"gif"}}, errors.ErrCodeInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("code = %s, want %s (%v)", errors.GetCode(err), tt.code, err)
			}
		})
	}
}

func TestOptions_ArtifactKeyOpts(t *testing.T) {
	opts := Options{Source: testdata, Interactive: true}
	opts.ValidateAndSetDefaults()

	svg := opts.ArtifactKeyOpts(FormatSVG)
	if !svg.Interactive || svg.DurationMS != 1000 {
		t.Errorf("svg key opts = %+v", svg)
	}
	png := opts.ArtifactKeyOpts(FormatPNG)
	if png.Interactive || png.Scale != DefaultScale {
		t.Errorf("png key opts = %+v", png)
	}

	other := opts
	other.Style.Mark = "tomato"
	if other.ArtifactKeyOpts(FormatSVG) == svg {
		t.Error("style should be part of the key")
	}
	if other.ArtifactKeyOpts(FormatPNG) == png {
		t.Error("style should be part of the png key")
	}

	if json := opts.ArtifactKeyOpts(FormatJSON); json.Source != testdata {
		t.Errorf("json key source = %q, want %q", json.Source, testdata)
	}
	if svg.Source != "" {
		t.Error("svg key should not depend on the source")
	}
}

func TestRunner_RenderCache_SourceInJSON(t *testing.T) {
	ctx := context.Background()
	raw, err := os.ReadFile(testdata)
	if err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()
	a, b := filepath.Join(dir, "a.csv"), filepath.Join(dir, "b.csv")
	for _, path := range []string{a, b} {
		if err := os.WriteFile(path, raw, 0o644); err != nil {
			t.Fatal(err)
		}
	}

	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runner := NewRunner(fc, nil, nil)
	defer runner.Close()

	if _, err := runner.Execute(ctx, Options{Source: a, Formats: []string{"json"}}); err != nil {
		t.Fatal(err)
	}
	second, err := runner.Execute(ctx, Options{Source: b, Formats: []string{"json"}})
	if err != nil {
		t.Fatal(err)
	}
	if second.CacheInfo.RenderHit {
		t.Error("json from another source should not be served from the cache")
	}
	if !bytes.Contains(second.Artifacts["json"], []byte(b)) {
		t.Errorf("json artifact does not name source %s", b)
	}
}

func TestRunner_Execute(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	result, err := runner.Execute(context.Background(), Options{
		Source:  testdata,
		Formats: []string{"svg", "png", "pdf", "json"},
	})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if result.Stats.Records != result.Dataset.Len() || result.Stats.Records == 0 {
		t.Errorf("Records = %d", result.Stats.Records)
	}
	if result.CacheInfo.RenderHit {
		t.Error("null cache should never hit")
	}

	magic := map[string][]byte{
		"svg":  []byte("<?xml"),
		"png":  []byte("\x89PNG"),
		"pdf":  []byte("%PDF"),
		"json": []byte("{"),
	}
	for format, prefix := range magic {
		data := result.Artifacts[format]
		if !bytes.HasPrefix(data, prefix) {
			t.Errorf("%s artifact starts with %q", format, data[:min(len(data), 8)])
		}
	}
	if result.Scene.Selection.X != census.Poverty || !result.Scene.Settled {
		t.Errorf("scene = %+v", result.Scene.Selection)
	}
}

func TestRunner_Execute_MissingFile(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	_, err := runner.Execute(context.Background(), Options{Source: t.TempDir() + "/missing.csv"})
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestRunner_RenderCache(t *testing.T) {
	ctx := context.Background()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runner := NewRunner(fc, nil, nil)
	defer runner.Close()

	opts := Options{Source: testdata, Formats: []string{"svg", "json"}}
	first, err := runner.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if first.CacheInfo.RenderHit {
		t.Error("first run should miss")
	}

	second, err := runner.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !second.CacheInfo.RenderHit {
		t.Error("second run should hit")
	}
	if !bytes.Equal(first.Artifacts["svg"], second.Artifacts["svg"]) {
		t.Error("cached svg differs")
	}

	opts.X = "age"
	third, err := runner.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if third.CacheInfo.RenderHit {
		t.Error("a different field pair should miss")
	}

	opts.Refresh = true
	opts.X = ""
	fourth, _ := runner.Execute(ctx, opts)
	if fourth.CacheInfo.RenderHit {
		t.Error("refresh should bypass the cache")
	}
}

type recordingHooks struct {
	observability.NoopPipelineHooks
	mu     sync.Mutex
	events []string
	loaded int
}

func (h *recordingHooks) add(e string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, e)
}

func (h *recordingHooks) OnLoadStart(context.Context, string) { h.add("load-start") }
func (h *recordingHooks) OnLoadComplete(_ context.Context, _ string, n int, _ time.Duration, _ error) {
	h.loaded = n
	h.add("load-complete")
}
func (h *recordingHooks) OnScene(_ context.Context, x, y string) { h.add("scene:" + x + "/" + y) }
func (h *recordingHooks) OnRenderStart(context.Context, []string) { h.add("render-start") }
func (h *recordingHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {
	h.add("render-complete")
}

func TestRunner_Hooks(t *testing.T) {
	hooks := &recordingHooks{}
	observability.SetPipelineHooks(hooks)
	t.Cleanup(observability.Reset)

	runner := NewRunner(nil, nil, nil)
	if _, err := runner.Execute(context.Background(), Options{Source: testdata, X: "age", Y: "smokes"}); err != nil {
		t.Fatal(err)
	}

	want := []string{"load-start", "load-complete", "render-start", "scene:age/smokes", "render-complete"}
	if len(hooks.events) != len(want) {
		t.Fatalf("events = %v, want %v", hooks.events, want)
	}
	for i := range want {
		if hooks.events[i] != want[i] {
			t.Errorf("event %d = %q, want %q", i, hooks.events[i], want[i])
		}
	}
	if hooks.loaded == 0 {
		t.Error("OnLoadComplete should report the record count")
	}
}
