// Package config loads validated settings from the environment, falling back
// to defaults instead of failing when a value is malformed.
//
// The fail-open behaviour keeps a long-running worker alive on a bad deploy;
// every fallback is surfaced as a warning and through ConfigMetrics.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Result is the outcome of loading one setting.
type Result[T any] struct {
	Value           T
	Warning         string
	FallbackApplied bool
}

// Load reads key, parses it and validates it. An unset or empty variable
// yields def without a warning. A parse or validation failure yields def
// with FallbackApplied set. validate may be nil.
func Load[T any](key string, def T, parse func(string) (T, error), validate func(T) error) Result[T] {
	raw := os.Getenv(key)
	if raw == "" {
		return Result[T]{Value: def}
	}

	v, err := parse(raw)
	if err == nil && validate != nil {
		err = validate(v)
	}
	if err != nil {
		return Result[T]{
			Value:           def,
			Warning:         fmt.Sprintf("invalid %s=%q: %v, falling back to default %v", key, raw, err, def),
			FallbackApplied: true,
		}
	}
	return Result[T]{Value: v}
}

// LoadString loads a string setting.
func LoadString(key, def string, validate func(string) error) Result[string] {
	return Load(key, def, func(s string) (string, error) { return s, nil }, validate)
}

// LoadInt loads a base-10 integer setting.
func LoadInt(key string, def int, validate func(int) error) Result[int] {
	return Load(key, def, strconv.Atoi, validate)
}

// LoadDuration loads a time.ParseDuration setting.
func LoadDuration(key string, def time.Duration, validate func(time.Duration) error) Result[time.Duration] {
	return Load(key, def, time.ParseDuration, validate)
}
