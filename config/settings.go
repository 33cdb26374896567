// Package config provides configuration structures for the typeahead engine.
// It defines per-list settings and the server configuration file format.
package config

import (
	"strings"
)

const (
	// DefaultMaxResults caps how many suggestions a single query returns
	// when the list settings do not override it.
	DefaultMaxResults = 10

	// DefaultMaxCacheEntries bounds each session's memoized query cache.
	DefaultMaxCacheEntries = 1000
)

// ListSettings contains all configuration options for one candidate list.
// Settings are persisted alongside the list's candidates and survive restarts.
type ListSettings struct {
	Name            string `json:"name"`              // Unique name for the list
	MaxResults      int    `json:"max_results"`       // Maximum suggestions returned per query (0 = DefaultMaxResults)
	MaxCacheEntries int    `json:"max_cache_entries"` // Per-session query cache bound (0 = DefaultMaxCacheEntries)
}

// EffectiveMaxResults resolves the configured result cap, applying the
// default when unset.
func (settings *ListSettings) EffectiveMaxResults() int {
	if settings.MaxResults <= 0 {
		return DefaultMaxResults
	}
	return settings.MaxResults
}

// EffectiveMaxCacheEntries resolves the configured session cache bound,
// applying the default when unset.
func (settings *ListSettings) EffectiveMaxCacheEntries() int {
	if settings.MaxCacheEntries <= 0 {
		return DefaultMaxCacheEntries
	}
	return settings.MaxCacheEntries
}

// Validate checks the settings for basic requirements and returns a list of
// human-readable problems, empty when the settings are usable.
func (settings *ListSettings) Validate() []string {
	var problems []string

	trimmed := strings.TrimSpace(settings.Name)
	if trimmed == "" {
		problems = append(problems, "List name cannot be empty or whitespace-only")
	}
	if trimmed != settings.Name {
		problems = append(problems, "List name cannot have leading or trailing whitespace")
	}
	if strings.ContainsAny(settings.Name, "/\\") {
		// List names become directory names under the data dir.
		problems = append(problems, "List name cannot contain path separators")
	}

	if settings.MaxResults < 0 {
		problems = append(problems, "max_results cannot be negative")
	}
	if settings.MaxCacheEntries < 0 {
		problems = append(problems, "max_cache_entries cannot be negative")
	}

	return problems
}
