package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matzehuels/censusplot/pkg/errors"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLoadConfig(t *testing.T) {
	p := writeConfig(t, `
[fields]
x = "age"
y = "smokes"

[chart]
duration = "750ms"
radius = 12

[cache]
ttl = "72h"
redis = "localhost:6379"

[style]
mark = "tomato"
`)
	cfg, err := loadConfig(p)
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}
	if cfg.Fields.X != "age" || cfg.Fields.Y != "smokes" {
		t.Errorf("Fields = %+v", cfg.Fields)
	}
	if cfg.Chart.Duration == nil || *cfg.Chart.Duration != 750*time.Millisecond {
		t.Errorf("Chart.Duration = %v", cfg.Chart.Duration)
	}
	if cfg.Chart.Radius != 12 {
		t.Errorf("Chart.Radius = %g", cfg.Chart.Radius)
	}
	if cfg.httpTTL() != 72*time.Hour {
		t.Errorf("httpTTL() = %s", cfg.httpTTL())
	}
	if cfg.Cache.Redis != "localhost:6379" {
		t.Errorf("Cache.Redis = %q", cfg.Cache.Redis)
	}
	if cfg.Style.Mark != "tomato" {
		t.Errorf("Style.Mark = %q", cfg.Style.Mark)
	}
}

func TestLoadConfig_DefaultLocationMissing(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("missing default config should not fail: %v", err)
	}
	if cfg.httpTTL() != defaultHTTPTTL {
		t.Errorf("httpTTL() = %s, want %s", cfg.httpTTL(), defaultHTTPTTL)
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name string
		path string
	}{
		{"explicit missing", filepath.Join(t.TempDir(), "nope.toml")},
		{"syntax", writeConfig(t, "[fields\n")},
		{"unknown key", writeConfig(t, "[fields]\nz = \"age\"\n")},
		{"negative duration", writeConfig(t, "[chart]\nduration = \"-1s\"\n")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadConfig(tt.path)
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("loadConfig() error = %v, want INVALID_CONFIG", err)
			}
		})
	}
}

func TestCLI_Options(t *testing.T) {
	d := 250 * time.Millisecond
	c := New(os.Stderr, LogInfo)
	c.Config = Config{
		Fields: FieldsConfig{X: "income"},
		Chart:  ChartConfig{Duration: &d, Radius: 10},
	}

	opts, err := c.options("data.csv", &chartFlags{y: "obesity"})
	if err != nil {
		t.Fatal(err)
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if opts.X != "income" || opts.Y != "obesity" {
		t.Errorf("fields = %s/%s, want income/obesity", opts.X, opts.Y)
	}
	if opts.Duration != d || opts.Radius != 10 {
		t.Errorf("Duration = %s, Radius = %g", opts.Duration, opts.Radius)
	}

	// flags win over config
	opts, err = c.options("data.csv", &chartFlags{x: "age", duration: "0", radius: 20})
	if err != nil {
		t.Fatal(err)
	}
	opts.ValidateAndSetDefaults()
	if opts.X != "age" || opts.Duration != 0 || opts.Radius != 20 {
		t.Errorf("opts = %s %s %g", opts.X, opts.Duration, opts.Radius)
	}

	if _, err := c.options("data.csv", &chartFlags{duration: "soon"}); err == nil {
		t.Error("invalid duration should fail")
	}
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{"1s", time.Second, false},
		{"750ms", 750 * time.Millisecond, false},
		{"500", 500 * time.Millisecond, false},
		{"0", 0, false},
		{"-1s", 0, true},
		{"fast", 0, true},
	}
	for _, tt := range tests {
		got, err := parseDuration(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("parseDuration(%q) = %s, %v", tt.in, got, err)
		}
	}
}
