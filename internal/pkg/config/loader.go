// Package config loads validated settings from the environment with a fail-open policy:
// a value that is present but invalid is replaced by its default and reported as a warning.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// LoadResult is the outcome of loading one setting.
type LoadResult[T any] struct {
	Value           T
	Warnings        []string
	FallbackApplied bool
}

func fallback[T any](envKey, raw string, defaultValue T, reason error) LoadResult[T] {
	return LoadResult[T]{
		Value:           defaultValue,
		Warnings:        []string{fmt.Sprintf("Invalid %s='%s': %v, falling back to default '%v'", envKey, raw, reason, defaultValue)},
		FallbackApplied: true,
	}
}

func load[T any](envKey string, defaultValue T, parse func(string) (T, error), validator func(T) error) LoadResult[T] {
	raw := os.Getenv(envKey)
	if raw == "" {
		return LoadResult[T]{Value: defaultValue}
	}

	value, err := parse(raw)
	if err != nil {
		return fallback(envKey, raw, defaultValue, err)
	}
	if validator != nil {
		if err := validator(value); err != nil {
			return fallback(envKey, raw, defaultValue, err)
		}
	}
	return LoadResult[T]{Value: value}
}

// LoadEnvString loads a string setting. An unset variable yields the default without a warning.
func LoadEnvString(envKey, defaultValue string, validator func(string) error) LoadResult[string] {
	return load(envKey, defaultValue, func(s string) (string, error) { return s, nil }, validator)
}

// LoadEnvInt loads an integer setting.
func LoadEnvInt(envKey string, defaultValue int, validator func(int) error) LoadResult[int] {
	return load(envKey, defaultValue, func(s string) (int, error) {
		v, err := strconv.Atoi(s)
		if err != nil {
			return 0, fmt.Errorf("invalid integer format")
		}
		return v, nil
	}, validator)
}

// LoadEnvDuration loads a duration setting in time.ParseDuration syntax.
func LoadEnvDuration(envKey string, defaultValue time.Duration, validator func(time.Duration) error) LoadResult[time.Duration] {
	return load(envKey, defaultValue, time.ParseDuration, validator)
}

// LoadEnvBool loads a boolean setting.
func LoadEnvBool(envKey string, defaultValue bool) LoadResult[bool] {
	return load(envKey, defaultValue, strconv.ParseBool, nil)
}
