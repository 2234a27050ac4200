// Package census loads the state-level health and demographic dataset that
// censusplot visualizes.
//
// A dataset is a CSV file with a header row. The columns state, abbr,
// poverty, age, income, healthcare, obesity and smokes are required; any
// other column is ignored and column order is free.
//
// # Load Policy
//
// Input is validated when it is loaded, never later:
//
//   - A missing required column is an INVALID_DATASET error.
//   - A numeric cell that does not parse, or parses to NaN or ±Inf, is an
//     INVALID_DATASET error whose cause is an [errors.CellError] naming the
//     row and column.
//   - Abbreviations must be present and unique: they key the marks drawn
//     for each record.
//   - A file with a header but no rows is an EMPTY_DATASET error.
//
// A [Dataset] that was returned without error is therefore safe to scale on
// every [Field].
//
// # Sources
//
// [Loader.Load] accepts a local path or an http(s) URL. Remote datasets are
// fetched through [httputil.Client], which caches responses on disk and
// retries transient failures.
//
//	ds, err := census.NewLoader(client).Load(ctx, "assets/data/data.csv")
//	if err != nil {
//	    return err
//	}
//	lo, hi, _ := ds.Extent(census.Poverty)
package census
