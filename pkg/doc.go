// Package pkg provides the libraries behind censusplot.
//
// # Overview
//
// censusplot draws per-state US census indicators as a scatter plot whose
// axes can be rebound to any of six fields. The pkg directory is organized
// as follows:
//
//  1. [census] - Dataset model, CSV parsing and loading from files or URLs
//  2. [scale] - Padded linear scales from a field's extent to pixels
//  3. [chart] - Axes, marks, labels and the selection controller
//  4. [chart/sink] - SVG, PNG, PDF, JSON and terminal output
//  5. [pipeline] - Orchestration (load → scene → render) with caching
//
// Supporting packages: [cache] (artifact cache), [httputil] (download cache
// and retry), [errors] (coded errors), [observability] (hooks) and
// [buildinfo].
//
// # Data Flow
//
//	CSV file or URL
//	       ↓
//	  [census] package (parse and validate rows)
//	       ↓
//	  [scale] package (domain per field)
//	       ↓
//	  [chart] package (controller: selection, transitions, scene)
//	       ↓
//	  [chart/sink] package (SVG/PNG/PDF/JSON/terminal)
//
// # Quick Start
//
//	ds, err := census.NewLoader(nil).Load(ctx, "data.csv")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	ctrl, err := chart.NewController(ds)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	ctrl.Click(census.Age) // rebinds the x axis
//	svg := sink.RenderSVG(ctrl.Settle(), sink.WithInteraction())
package pkg
