// Package suggest implements the suggest logic for a single candidate list.
package suggest

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/gcbaptista/go-typeahead/config"
	"github.com/gcbaptista/go-typeahead/fuzzy"
	"github.com/gcbaptista/go-typeahead/internal/session"
	"github.com/gcbaptista/go-typeahead/services"
	"github.com/gcbaptista/go-typeahead/store"
)

// Service implements the suggest logic for a single list.
// It fulfills the services.Suggester interface.
type Service struct {
	candidateStore *store.CandidateStore
	settings       *config.ListSettings
	sessions       *session.Manager
}

// NewService creates a new suggest Service.
func NewService(candidateStore *store.CandidateStore, settings *config.ListSettings, sessions *session.Manager) (*Service, error) {
	if candidateStore == nil {
		return nil, fmt.Errorf("candidate store cannot be nil")
	}
	if settings == nil {
		return nil, fmt.Errorf("settings cannot be nil")
	}
	if sessions == nil {
		return nil, fmt.Errorf("session manager cannot be nil")
	}

	return &Service{
		candidateStore: candidateStore,
		settings:       settings,
		sessions:       sessions,
	}, nil
}

// Suggest performs one suggest query. With a SessionID it routes through the
// session's incremental cache; without one it scores the full list
// statelessly. An empty query string returns the leading candidates in their
// original order, unscored.
func (s *Service) Suggest(query services.SuggestQuery) (services.SuggestResult, error) {
	startTime := time.Now()
	queryUUID := uuid.New().String()

	limit := s.settings.EffectiveMaxResults()
	if query.Limit > 0 {
		limit = query.Limit
	}

	var ranked []string
	cacheHit := false

	if query.SessionID != "" {
		var err error
		ranked, cacheHit, err = s.sessions.Query(query.SessionID, query.QueryString)
		if err != nil {
			return services.SuggestResult{}, err
		}
	} else {
		candidates, _ := s.candidateStore.Snapshot()
		ranked = fuzzy.Search(candidates, query.QueryString)
	}

	total := len(ranked)
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	suggestions := make([]services.Suggestion, len(ranked))
	for i, value := range ranked {
		// Score is recomputed per hit; for the empty-query pass-through this
		// yields 0, marking the results as unranked.
		suggestions[i] = services.Suggestion{
			Value: value,
			Score: fuzzy.Score(value, query.QueryString),
		}
	}

	return services.SuggestResult{
		Suggestions: suggestions,
		Total:       total,
		Took:        time.Since(startTime).Milliseconds(),
		QueryId:     queryUUID,
		CacheHit:    cacheHit,
	}, nil
}
