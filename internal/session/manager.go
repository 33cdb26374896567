// Package session manages incremental typing sessions. Each session owns one
// fuzzy.IncrementalSearch bound to a candidate list and is addressed by a
// UUID handed out at creation time.
package session

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/gcbaptista/go-typeahead/fuzzy"
	"github.com/gcbaptista/go-typeahead/internal/errors"
	"github.com/gcbaptista/go-typeahead/services"
	"github.com/gcbaptista/go-typeahead/store"
)

const cleanupInterval = 1 * time.Minute

// session wraps one incremental search behind a mutex. The fuzzy core is
// single-caller by design; the mutex serializes the HTTP handlers that share
// a session ID.
type session struct {
	mu           sync.Mutex
	search       *fuzzy.IncrementalSearch
	storeVersion uint64
	lastUsed     time.Time
}

// Manager tracks the active sessions for one candidate list and reaps
// sessions idle past their TTL.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*session

	candidateStore  *store.CandidateStore
	maxCacheEntries int
	ttl             time.Duration

	stopChan chan struct{}
	wg       sync.WaitGroup
}

// NewManager creates a session manager bound to candidateStore. Sessions idle
// longer than ttl are removed by the cleanup routine once Start is called.
func NewManager(candidateStore *store.CandidateStore, maxCacheEntries int, ttl time.Duration) *Manager {
	return &Manager{
		sessions:        make(map[string]*session),
		candidateStore:  candidateStore,
		maxCacheEntries: maxCacheEntries,
		ttl:             ttl,
		stopChan:        make(chan struct{}),
	}
}

// Start begins the background cleanup of expired sessions.
func (m *Manager) Start() {
	m.wg.Add(1)
	go m.cleanupRoutine()
}

// Stop shuts down the cleanup routine and drops all sessions.
func (m *Manager) Stop() {
	close(m.stopChan)
	m.wg.Wait()

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions = make(map[string]*session)
}

// UpdateCacheBound changes the cache bound used for sessions created from now
// on. Existing sessions keep the bound they were created with.
func (m *Manager) UpdateCacheBound(maxCacheEntries int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.maxCacheEntries = maxCacheEntries
}

// CreateSession creates a new session seeded with the current candidates and
// returns its ID.
func (m *Manager) CreateSession() string {
	candidates, version := m.candidateStore.Snapshot()

	m.mu.Lock()
	defer m.mu.Unlock()

	s := &session{
		search:       fuzzy.NewIncrementalSearch(m.maxCacheEntries),
		storeVersion: version,
		lastUsed:     time.Now(),
	}
	s.search.SetCandidates(candidates)

	id := uuid.New().String()
	m.sessions[id] = s
	return id
}

// DropSession removes a session by ID.
func (m *Manager) DropSession(sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.sessions[sessionID]; !exists {
		return errors.NewSessionNotFoundError(sessionID)
	}
	delete(m.sessions, sessionID)
	return nil
}

// Query runs query through the session's incremental search. The second
// return value reports whether the query was answered from the session cache
// without any scoring work.
func (m *Manager) Query(sessionID, query string) ([]string, bool, error) {
	m.mu.RLock()
	s, exists := m.sessions[sessionID]
	m.mu.RUnlock()
	if !exists {
		return nil, false, errors.NewSessionNotFoundError(sessionID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// The session's cache is only valid for the candidate set it was built
	// against. Rebind before querying if the list changed underneath us.
	if candidates, version := m.candidateStore.Snapshot(); version != s.storeVersion {
		s.search.SetCandidates(candidates)
		s.storeVersion = version
	}

	before := s.search.Stats().Hits
	results := s.search.Query(query)
	cacheHit := s.search.Stats().Hits > before

	s.lastUsed = time.Now()
	return results, cacheHit, nil
}

// GetStats returns cache statistics for one session.
func (m *Manager) GetStats(sessionID string) (services.SessionStats, error) {
	m.mu.RLock()
	s, exists := m.sessions[sessionID]
	m.mu.RUnlock()
	if !exists {
		return services.SessionStats{}, errors.NewSessionNotFoundError(sessionID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return services.SessionStats{
		SessionID: sessionID,
		Cache:     s.search.Stats(),
		CacheSize: s.search.CacheSize(),
	}, nil
}

// Count returns the number of active sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// cleanupRoutine runs periodic session cleanup
func (m *Manager) cleanupRoutine() {
	defer m.wg.Done()

	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.CleanupExpiredSessions(m.ttl)
		case <-m.stopChan:
			return
		}
	}
}

// CleanupExpiredSessions removes sessions idle longer than maxIdle.
func (m *Manager) CleanupExpiredSessions(maxIdle time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := time.Now().Add(-maxIdle)
	cleaned := 0

	for id, s := range m.sessions {
		s.mu.Lock()
		expired := s.lastUsed.Before(cutoff)
		s.mu.Unlock()
		if expired {
			delete(m.sessions, id)
			cleaned++
		}
	}

	if cleaned > 0 {
		log.Printf("Cleaned up %d expired sessions", cleaned)
	}
}
