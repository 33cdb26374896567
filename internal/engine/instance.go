package engine

import (
	"fmt"
	"time"

	"github.com/gcbaptista/go-typeahead/config"
	"github.com/gcbaptista/go-typeahead/internal/session"
	"github.com/gcbaptista/go-typeahead/internal/suggest"
	"github.com/gcbaptista/go-typeahead/services"
	"github.com/gcbaptista/go-typeahead/store"
)

// ListInstance holds all components and services for a single candidate list.
// It implements the services.ListAccessor interface.
type ListInstance struct {
	settings       *config.ListSettings
	CandidateStore *store.CandidateStore
	sessions       *session.Manager
	suggester      *suggest.Service
}

// NewListInstance creates and initializes a new ListInstance. The session
// manager's cleanup routine is started immediately; callers must Stop the
// instance when discarding it.
func NewListInstance(settings config.ListSettings, sessionTTL time.Duration) (*ListInstance, error) {
	if settings.Name == "" {
		return nil, fmt.Errorf("list name cannot be empty in settings")
	}

	candidateStore := store.NewCandidateStore()
	sessions := session.NewManager(candidateStore, settings.EffectiveMaxCacheEntries(), sessionTTL)
	sessions.Start()

	suggester, err := suggest.NewService(candidateStore, &settings, sessions)
	if err != nil {
		sessions.Stop()
		return nil, fmt.Errorf("failed to create suggest service: %w", err)
	}

	return &ListInstance{
		settings:       &settings,
		CandidateStore: candidateStore,
		sessions:       sessions,
		suggester:      suggester,
	}, nil
}

// Stop shuts down the instance's session manager.
func (i *ListInstance) Stop() {
	i.sessions.Stop()
}

// Settings returns the configuration settings for this list.
func (i *ListInstance) Settings() config.ListSettings {
	return *i.settings
}

// Suggest delegates to the underlying suggest service.
// This satisfies a part of the services.ListAccessor interface.
func (i *ListInstance) Suggest(query services.SuggestQuery) (services.SuggestResult, error) {
	return i.suggester.Suggest(query)
}

// ReplaceCandidates swaps the full candidate universe. Session caches bound
// to the old universe are invalidated on their next query.
func (i *ListInstance) ReplaceCandidates(candidates []string) error {
	i.CandidateStore.Replace(candidates)
	return nil
}

// AppendCandidates adds candidates to the end of the universe.
func (i *ListInstance) AppendCandidates(candidates []string) error {
	i.CandidateStore.Append(candidates)
	return nil
}

// DeleteAllCandidates removes every candidate from the list.
func (i *ListInstance) DeleteAllCandidates() error {
	i.CandidateStore.DeleteAll()
	return nil
}

// GetCandidates returns a page of candidates in their original order along
// with the total count.
func (i *ListInstance) GetCandidates(offset, limit int) ([]string, int) {
	candidates, _ := i.CandidateStore.Snapshot()
	total := len(candidates)

	if offset < 0 {
		offset = 0
	}
	if offset >= total {
		return []string{}, total
	}
	end := total
	if limit > 0 && offset+limit < total {
		end = offset + limit
	}

	page := make([]string, end-offset)
	copy(page, candidates[offset:end])
	return page, total
}

// CreateSession opens a new incremental typing session on this list.
func (i *ListInstance) CreateSession() (string, error) {
	return i.sessions.CreateSession(), nil
}

// DropSession removes a typing session.
func (i *ListInstance) DropSession(sessionID string) error {
	return i.sessions.DropSession(sessionID)
}

// GetSessionStats returns cache statistics for one typing session.
func (i *ListInstance) GetSessionStats(sessionID string) (services.SessionStats, error) {
	return i.sessions.GetStats(sessionID)
}

// ActiveSessions returns the number of live typing sessions.
func (i *ListInstance) ActiveSessions() int {
	return i.sessions.Count()
}
