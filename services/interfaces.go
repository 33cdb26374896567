package services

import (
	"github.com/gcbaptista/go-typeahead/config"
	"github.com/gcbaptista/go-typeahead/fuzzy"
	"github.com/gcbaptista/go-typeahead/model"
)

// Suggestion represents a single ranked candidate in a suggest response.
type Suggestion struct {
	Value string `json:"value"`
	Score int    `json:"score"`
}

// SuggestResult is the response for one suggest query.
type SuggestResult struct {
	Suggestions []Suggestion `json:"suggestions"`
	Total       int          `json:"total"`    // Matches before the limit was applied
	Took        int64        `json:"took"`      // milliseconds
	QueryId     string       `json:"query_id"`  // unique UUID for this suggest query
	CacheHit    bool         `json:"cache_hit"` // Whether a session cache answered the query without scoring
}

// SuggestQuery describes one suggest request against a list.
type SuggestQuery struct {
	QueryString string `json:"query"`
	SessionID   string `json:"session_id,omitempty"` // Optional: route through an incremental session
	Limit       int    `json:"limit,omitempty"`      // Optional: override the list's max_results
}

// SessionStats reports the state of one incremental typing session.
type SessionStats struct {
	SessionID string      `json:"session_id"`
	Cache     fuzzy.Stats `json:"cache"`
	CacheSize int         `json:"cache_size"`
}

// Suggester defines operations for querying a list
type Suggester interface {
	Suggest(query SuggestQuery) (SuggestResult, error)
}

// CandidateWriter defines operations for changing a list's candidates.
// Every mutation invalidates all session caches bound to the list.
type CandidateWriter interface {
	ReplaceCandidates(candidates []string) error
	AppendCandidates(candidates []string) error
	DeleteAllCandidates() error
	GetCandidates(offset, limit int) ([]string, int)
}

// SessionController manages incremental typing sessions on a list
type SessionController interface {
	CreateSession() (string, error)
	DropSession(sessionID string) error
	GetSessionStats(sessionID string) (SessionStats, error)
}

// ListAccessor combines everything a caller can do with one list
type ListAccessor interface {
	Suggester
	CandidateWriter
	SessionController
}

// ListManager manages the lifecycle of candidate lists
type ListManager interface {
	CreateList(settings config.ListSettings) error
	GetList(name string) (ListAccessor, error)
	GetListSettings(name string) (config.ListSettings, error)
	UpdateListSettings(name string, settings config.ListSettings) error
	RenameList(oldName, newName string) error
	DeleteList(name string) error
	ListLists() []string
	GetListStats(name string) (model.ListStats, error)
	PersistListData(listName string) error
}
