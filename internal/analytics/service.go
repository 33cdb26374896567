// Package analytics tracks suggest queries and aggregates them into a
// dashboard: volume, latency, popular queries, and zero-result queries.
package analytics

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/gcbaptista/go-typeahead/model"
	"github.com/gcbaptista/go-typeahead/services"
)

const (
	maxEventsToKeep = 10000 // Keep last 10k events for performance
	topQueriesLimit = 10
)

// Service implements analytics tracking and reporting
type Service struct {
	mutex        sync.RWMutex
	events       []model.SuggestEvent
	listManager  services.ListManager
	dataFilePath string
}

// NewService creates a new analytics service persisting to dataFilePath.
func NewService(listManager services.ListManager, dataFilePath string) *Service {
	service := &Service{
		events:       make([]model.SuggestEvent, 0),
		listManager:  listManager,
		dataFilePath: dataFilePath,
	}

	// Load existing analytics data
	if err := service.loadData(); err != nil {
		log.Printf("Warning: Failed to load analytics data: %v", err)
	}

	return service
}

// TrackSuggestEvent records a new suggest event
func (s *Service) TrackSuggestEvent(event model.SuggestEvent) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	event.Timestamp = time.Now()
	s.events = append(s.events, event)

	// Keep only the latest events to prevent unbounded growth
	if len(s.events) > maxEventsToKeep {
		s.events = s.events[len(s.events)-maxEventsToKeep:]
	}

	// Persist data asynchronously
	go func() {
		if err := s.saveData(); err != nil {
			log.Printf("Warning: Failed to save analytics data: %v", err)
		}
	}()

	return nil
}

// GetDashboardData returns complete analytics dashboard data
func (s *Service) GetDashboardData() (model.AnalyticsDashboard, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	yesterday := time.Now().Add(-24 * time.Hour)
	last24hEvents := filterEventsByTime(s.events, yesterday)

	dashboard := model.AnalyticsDashboard{
		TotalQueries:      len(s.events),
		QueriesLast24h:    len(last24hEvents),
		AvgResponseTimeMs: calculateAvgResponseTime(last24hEvents),
		ZeroResultRate:    calculateZeroResultRate(s.events),
		ActiveLists:       len(s.listManager.ListLists()),
		PopularQueries:    topQueries(s.events, func(e model.SuggestEvent) bool { return true }),
		ZeroResultQueries: topQueries(s.events, func(e model.SuggestEvent) bool { return e.ResultCount == 0 }),
		ListUsage:         s.getListUsage(),
	}

	return dashboard, nil
}

// filterEventsByTime returns events after the given time
func filterEventsByTime(events []model.SuggestEvent, after time.Time) []model.SuggestEvent {
	var filtered []model.SuggestEvent
	for _, event := range events {
		if event.Timestamp.After(after) {
			filtered = append(filtered, event)
		}
	}
	return filtered
}

// calculateAvgResponseTime calculates average response time for events in milliseconds
func calculateAvgResponseTime(events []model.SuggestEvent) int64 {
	if len(events) == 0 {
		return 0
	}

	var total time.Duration
	for _, event := range events {
		total += event.ResponseTime
	}
	return (total / time.Duration(len(events))).Milliseconds()
}

// calculateZeroResultRate returns the fraction of queries that matched nothing
func calculateZeroResultRate(events []model.SuggestEvent) float64 {
	if len(events) == 0 {
		return 0
	}
	zero := 0
	for _, event := range events {
		if event.ResultCount == 0 {
			zero++
		}
	}
	return float64(zero) / float64(len(events))
}

// topQueries aggregates matching events by query string and returns the most
// frequent ones, capped at topQueriesLimit.
func topQueries(events []model.SuggestEvent, include func(model.SuggestEvent) bool) []model.PopularQuery {
	counts := make(map[string]int)
	for _, event := range events {
		if event.Query == "" || !include(event) {
			continue
		}
		counts[event.Query]++
	}

	popular := make([]model.PopularQuery, 0, len(counts))
	for query, count := range counts {
		popular = append(popular, model.PopularQuery{Query: query, QueryCount: count})
	}
	sort.Slice(popular, func(i, j int) bool {
		if popular[i].QueryCount != popular[j].QueryCount {
			return popular[i].QueryCount > popular[j].QueryCount
		}
		return popular[i].Query < popular[j].Query
	})

	if len(popular) > topQueriesLimit {
		popular = popular[:topQueriesLimit]
	}
	return popular
}

// getListUsage aggregates query volume per list, joined with list size.
func (s *Service) getListUsage() []model.ListUsage {
	counts := make(map[string]int)
	for _, event := range s.events {
		counts[event.ListName]++
	}

	usage := make([]model.ListUsage, 0, len(counts))
	for _, listName := range s.listManager.ListLists() {
		candidateCount := 0
		if stats, err := s.listManager.GetListStats(listName); err == nil {
			candidateCount = stats.CandidateCount
		}
		usage = append(usage, model.ListUsage{
			ListName:       listName,
			CandidateCount: candidateCount,
			QueryCount:     counts[listName],
		})
	}
	sort.Slice(usage, func(i, j int) bool {
		if usage[i].QueryCount != usage[j].QueryCount {
			return usage[i].QueryCount > usage[j].QueryCount
		}
		return usage[i].ListName < usage[j].ListName
	})
	return usage
}

// loadData reads persisted events from disk
func (s *Service) loadData() error {
	data, err := os.ReadFile(s.dataFilePath) // #nosec G304 -- path is controlled by application, not user input
	if err != nil {
		if os.IsNotExist(err) {
			return nil // Fresh start
		}
		return err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()
	return json.Unmarshal(data, &s.events)
}

// saveData writes events to disk
func (s *Service) saveData() error {
	s.mutex.RLock()
	data, err := json.Marshal(s.events)
	s.mutex.RUnlock()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.dataFilePath), 0750); err != nil {
		return err
	}
	return os.WriteFile(s.dataFilePath, data, 0600)
}
