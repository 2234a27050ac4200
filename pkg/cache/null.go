package cache

import (
	"context"
	"time"
)

// NullCache stores nothing. Runs with --no-cache or without a usable cache
// directory render through it.
type NullCache struct{}

var _ Cache = NullCache{}

func NewNullCache() Cache { return NullCache{} }

func (NullCache) Get(context.Context, string) ([]byte, bool, error)         { return nil, false, nil }
func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (NullCache) Delete(context.Context, string) error                     { return nil }
func (NullCache) Close() error                                             { return nil }
