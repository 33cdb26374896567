// Package testing provides utilities and helpers for testing the typeahead engine.
package testing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gcbaptista/go-typeahead/config"
	"github.com/gcbaptista/go-typeahead/internal/engine"
	"github.com/gcbaptista/go-typeahead/services"
)

// CreateTestEngine creates a new engine instance for testing with automatic cleanup
func CreateTestEngine(t *testing.T) *engine.Engine {
	t.Helper()
	eng := engine.NewEngine(t.TempDir(), time.Hour)
	t.Cleanup(eng.Close)
	return eng
}

// CreateTestList creates a test list with default settings
func CreateTestList(t *testing.T, eng *engine.Engine, listName string) config.ListSettings {
	t.Helper()
	settings := config.ListSettings{
		Name:            listName,
		MaxResults:      10,
		MaxCacheEntries: 100,
	}

	err := eng.CreateList(settings)
	require.NoError(t, err, "Failed to create test list")

	return settings
}

// LoadTestCandidates replaces a list's candidates with a fixed fruit set and
// returns the accessor for further calls.
func LoadTestCandidates(t *testing.T, eng *engine.Engine, listName string) services.ListAccessor {
	t.Helper()
	accessor, err := eng.GetList(listName)
	require.NoError(t, err, "Failed to get list accessor")

	candidates := []string{"Apple", "Banana", "Grape", "Mango", "Pineapple", "Strawberry"}
	err = accessor.ReplaceCandidates(candidates)
	require.NoError(t, err, "Failed to load test candidates")

	return accessor
}

// SuggestTestCase represents a test case for suggest operations
type SuggestTestCase struct {
	Name          string
	Query         services.SuggestQuery
	ExpectedCount int
	ExpectedFirst string // Expected top suggestion value
	ValidateFunc  func(t *testing.T, result *services.SuggestResult)
}

// RunSuggestTests runs a suite of suggest tests against a list
func RunSuggestTests(t *testing.T, accessor services.ListAccessor, tests []SuggestTestCase) {
	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			result, err := accessor.Suggest(tt.Query)
			require.NoError(t, err, "Suggest should not fail")

			assert.Equal(t, tt.ExpectedCount, result.Total, "Result count should match")

			if tt.ExpectedFirst != "" {
				require.NotEmpty(t, result.Suggestions, "Expected at least one suggestion")
				assert.Equal(t, tt.ExpectedFirst, result.Suggestions[0].Value, "Top suggestion should match expected")
			}

			if tt.ValidateFunc != nil {
				tt.ValidateFunc(t, &result)
			}
		})
	}
}

// AssertSessionCacheWorks drives an identical query through a session twice
// and verifies the second round is answered from the cache.
func AssertSessionCacheWorks(t *testing.T, accessor services.ListAccessor, query string) {
	t.Helper()
	sessionID, err := accessor.CreateSession()
	require.NoError(t, err, "Failed to create session")

	first, err := accessor.Suggest(services.SuggestQuery{QueryString: query, SessionID: sessionID})
	require.NoError(t, err, "First session suggest failed")
	assert.False(t, first.CacheHit, "First query should not be a cache hit")

	second, err := accessor.Suggest(services.SuggestQuery{QueryString: query, SessionID: sessionID})
	require.NoError(t, err, "Second session suggest failed")
	assert.True(t, second.CacheHit, "Repeated query should be a cache hit")
	assert.Equal(t, first.Total, second.Total, "Cached result should match the original")

	require.NoError(t, accessor.DropSession(sessionID), "Failed to drop session")
}
