// Package httputil fetches remote datasets with on-disk caching and retry.
//
// # Overview
//
//   - [Cache]: File-based caching of fetched payloads with a TTL
//   - [Retry]: Automatic retry with exponential backoff
//   - [Client]: An HTTP GET client combining both
//
// # Caching
//
// [Cache] stores entries under ~/.cache/censusplot/http/ by default. Keys are
// hashed, so any string is a valid key; use [Cache.Namespace] to keep
// unrelated payloads apart:
//
//	cache, err := httputil.NewCache("", 24*time.Hour)
//	datasets := cache.Namespace("dataset:")
//
// # Retry
//
// Only errors wrapped in [RetryableError] are retried. [Client] wraps
// network failures and 5xx responses that way; 4xx responses fail at once.
//
//	err := httputil.Retry(ctx, 3, time.Second, func() error {
//	    return fetch()
//	})
//
// The cache can be cleared with `censusplot cache clear` or by deleting the
// cache directory.
package httputil
