// Package pipeline provides the load → scene → render pipeline for censusplot.
//
// The CLI's render and explore commands both go through this package so that
// option defaults, caching and observability behave the same everywhere.
//
// # Stages
//
//  1. Load: read the CSV from a file or URL and validate every row
//  2. Scene: build a [chart.Controller] for the requested field pair and
//     settle it
//  3. Render: write the scene in each requested format (SVG, PNG, PDF, JSON)
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	defer runner.Close()
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Source:  "data/data.csv",
//	    Formats: []string{"svg"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/censusplot/pkg/cache"
	"github.com/matzehuels/censusplot/pkg/census"
	"github.com/matzehuels/censusplot/pkg/chart"
	"github.com/matzehuels/censusplot/pkg/chart/sink"
	"github.com/matzehuels/censusplot/pkg/errors"
)

const (
	// DefaultScale is the pixel density multiplier for PNG output.
	DefaultScale = 2.0
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// Formats lists the supported output formats in rendering order.
var Formats = []string{FormatSVG, FormatPNG, FormatPDF, FormatJSON}

// Options contains all configuration for one pipeline run.
type Options struct {
	// Load options
	Source  string `json:"source"`
	Refresh bool   `json:"refresh,omitempty"`

	// Scene options
	X        string        `json:"x,omitempty"`
	Y        string        `json:"y,omitempty"`
	Width    float64       `json:"width,omitempty"`
	Height   float64       `json:"height,omitempty"`
	Radius   float64       `json:"radius,omitempty"`
	Duration time.Duration `json:"duration,omitempty"`

	// Render options
	Formats     []string   `json:"formats,omitempty"`
	Interactive bool       `json:"interactive,omitempty"`
	Tooltips    bool       `json:"tooltips,omitempty"`
	Scale       float64    `json:"scale,omitempty"`
	Style       sink.Style `json:"style"`

	Logger *log.Logger `json:"-"`

	// durationSet distinguishes an explicit zero duration from "unset".
	durationSet bool
	validated   bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	Dataset   *census.Dataset
	Scene     chart.Scene
	Artifacts map[string][]byte
	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Records    int
	LoadTime   time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for the render stage.
type CacheInfo struct {
	RenderHit bool // every artifact came from the cache
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	return errors.ValidateFormat(format, Formats...)
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// SetDuration sets the transition duration, including an explicit zero.
func (o *Options) SetDuration(d time.Duration) {
	o.Duration = d
	o.durationSet = true
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Source == "" {
		return errors.New(errors.ErrCodeInvalidInput, "source is required")
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForRender validates and defaults everything except the source.
func (o *Options) ValidateForRender() error {
	o.SetDefaults()
	if _, err := o.Selection(); err != nil {
		return err
	}
	if o.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "duration must not be negative: %s", o.Duration)
	}
	if o.Radius <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "radius must be positive: %g", o.Radius)
	}
	if o.Scale <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be positive: %g", o.Scale)
	}
	if err := o.Layout().Validate(); err != nil {
		return err
	}
	return ValidateFormats(o.Formats)
}

// SetDefaults fills every unset option.
func (o *Options) SetDefaults() {
	if o.X == "" {
		o.X = string(chart.DefaultSelection.X)
	}
	if o.Y == "" {
		o.Y = string(chart.DefaultSelection.Y)
	}
	if o.Width == 0 {
		o.Width = chart.DefaultWidth
	}
	if o.Height == 0 {
		o.Height = chart.DefaultHeight
	}
	if o.Radius == 0 {
		o.Radius = chart.DefaultRadius
	}
	if o.Duration == 0 && !o.durationSet {
		o.Duration = chart.DefaultDuration
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	o.Style = o.Style.Merge()
	if o.Logger == nil {
		o.Logger = discard
	}
}

var discard = log.NewWithOptions(io.Discard, log.Options{})

// Selection parses X and Y against their axes.
func (o *Options) Selection() (chart.Selection, error) {
	x, err := census.ParseAxisField(o.X, census.AxisX)
	if err != nil {
		return chart.Selection{}, err
	}
	y, err := census.ParseAxisField(o.Y, census.AxisY)
	if err != nil {
		return chart.Selection{}, err
	}
	return chart.Selection{X: x, Y: y}, nil
}

// Layout returns the chart geometry for the configured size.
func (o *Options) Layout() chart.Layout {
	return chart.Layout{Width: o.Width, Height: o.Height, Margin: chart.DefaultMargin}
}

// ControllerOptions returns the options that build this run's controller.
func (o *Options) ControllerOptions() ([]chart.Option, error) {
	sel, err := o.Selection()
	if err != nil {
		return nil, err
	}
	return []chart.Option{
		chart.WithSelection(sel),
		chart.WithLayout(o.Layout()),
		chart.WithRadius(o.Radius),
		chart.WithDuration(o.Duration),
	}, nil
}

// ArtifactKeyOpts returns cache key options for one format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{
		Format: format,
		X:      o.X,
		Y:      o.Y,
		Radius: o.Radius,
		Style:  fmt.Sprintf("%+v|%gx%g", o.Style, o.Width, o.Height),
	}
	switch format {
	case FormatSVG:
		opts.Interactive = o.Interactive
		opts.Tooltips = o.Tooltips
		opts.DurationMS = o.Duration.Milliseconds()
	case FormatPNG:
		opts.Scale = o.Scale
	case FormatJSON:
		opts.Source = o.Source
	}
	return opts
}
