// Package config provides type-safe environment variable loading with
// caching. Each configuration type is loaded once per process and cached for
// subsequent calls. A .env file, when present, is loaded before the first
// parse.
package config

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	cache   sync.Map // reflect.Type -> parsed struct value
	loadEnv sync.Once
)

// Load parses environment variables into cfg, which must be a non-nil
// pointer to a struct. Repeated calls with the same type return the cached
// result.
func Load(cfg any) error {
	loadEnv.Do(func() {
		// Missing .env is the normal production case.
		_ = godotenv.Load()
	})

	rv := reflect.ValueOf(cfg)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("config: target must be a non-nil pointer, got %T", cfg)
	}

	typ := rv.Elem().Type()
	if cached, ok := cache.Load(typ); ok {
		rv.Elem().Set(reflect.ValueOf(cached))
		return nil
	}

	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("config: failed to parse %s: %w", typ, err)
	}

	cache.Store(typ, rv.Elem().Interface())
	return nil
}

// MustLoad is like Load but panics on failure. Useful during startup where
// a missing required variable should stop the process.
func MustLoad(cfg any) {
	if err := Load(cfg); err != nil {
		panic(err)
	}
}
