package store

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"sync"
)

// CandidateStore holds the ordered candidate universe for one list.
//
// The candidate slice is treated as copy-on-write: every mutation installs a
// freshly built slice and bumps Version, so a snapshot taken by a reader
// stays valid (and immutable) while mutations happen concurrently. Session
// caches key their validity off Version.
type CandidateStore struct {
	Mu         sync.RWMutex
	Candidates []string
	Seen       map[string]bool // Dedupe index over Candidates
	Version    uint64
}

// NewCandidateStore creates an empty store.
func NewCandidateStore() *CandidateStore {
	return &CandidateStore{
		Candidates: make([]string, 0),
		Seen:       make(map[string]bool),
	}
}

// Snapshot returns the current candidate slice and its version. The slice
// must not be modified by the caller.
func (cs *CandidateStore) Snapshot() ([]string, uint64) {
	cs.Mu.RLock()
	defer cs.Mu.RUnlock()
	return cs.Candidates, cs.Version
}

// Count returns the number of candidates currently stored.
func (cs *CandidateStore) Count() int {
	cs.Mu.RLock()
	defer cs.Mu.RUnlock()
	return len(cs.Candidates)
}

// Replace swaps the entire candidate universe, dropping duplicates while
// preserving first-occurrence order.
func (cs *CandidateStore) Replace(candidates []string) {
	fresh := make([]string, 0, len(candidates))
	seen := make(map[string]bool, len(candidates))
	for _, candidate := range candidates {
		if seen[candidate] {
			continue
		}
		seen[candidate] = true
		fresh = append(fresh, candidate)
	}

	cs.Mu.Lock()
	defer cs.Mu.Unlock()
	cs.Candidates = fresh
	cs.Seen = seen
	cs.Version++
}

// Append adds candidates to the end of the universe, skipping any already
// present. Appending nothing new still bumps the version: callers asked for
// a mutation and session caches must not outlive it.
func (cs *CandidateStore) Append(candidates []string) {
	cs.Mu.Lock()
	defer cs.Mu.Unlock()

	fresh := make([]string, len(cs.Candidates), len(cs.Candidates)+len(candidates))
	copy(fresh, cs.Candidates)
	seen := make(map[string]bool, len(cs.Seen)+len(candidates))
	for candidate := range cs.Seen {
		seen[candidate] = true
	}

	for _, candidate := range candidates {
		if seen[candidate] {
			continue
		}
		seen[candidate] = true
		fresh = append(fresh, candidate)
	}

	cs.Candidates = fresh
	cs.Seen = seen
	cs.Version++
}

// DeleteAll removes every candidate.
func (cs *CandidateStore) DeleteAll() {
	cs.Mu.Lock()
	defer cs.Mu.Unlock()
	cs.Candidates = make([]string, 0)
	cs.Seen = make(map[string]bool)
	cs.Version++
}

// gobCandidateStoreData is a helper struct for Gob encoding/decoding
// CandidateStore data. It excludes the mutex and the derivable dedupe index.
type gobCandidateStoreData struct {
	Candidates []string
	Version    uint64
}

// GobEncode implements the gob.GobEncoder interface for CandidateStore.
func (cs *CandidateStore) GobEncode() ([]byte, error) {
	cs.Mu.RLock()
	defer cs.Mu.RUnlock()

	dataToEncode := gobCandidateStoreData{
		Candidates: cs.Candidates,
		Version:    cs.Version,
	}

	var buf bytes.Buffer
	encoder := gob.NewEncoder(&buf)
	if err := encoder.Encode(dataToEncode); err != nil {
		return nil, fmt.Errorf("failed to gob encode candidate store: %w", err)
	}
	return buf.Bytes(), nil
}

// GobDecode implements the gob.GobDecoder interface for CandidateStore.
func (cs *CandidateStore) GobDecode(data []byte) error {
	var decoded gobCandidateStoreData
	decoder := gob.NewDecoder(bytes.NewReader(data))
	if err := decoder.Decode(&decoded); err != nil {
		return fmt.Errorf("failed to gob decode candidate store: %w", err)
	}

	cs.Mu.Lock()
	defer cs.Mu.Unlock()

	cs.Candidates = decoded.Candidates
	if cs.Candidates == nil {
		cs.Candidates = make([]string, 0)
	}
	cs.Version = decoded.Version
	cs.Seen = make(map[string]bool, len(cs.Candidates))
	for _, candidate := range cs.Candidates {
		cs.Seen[candidate] = true
	}
	return nil
}
