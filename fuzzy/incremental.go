package fuzzy

import "strings"

// DefaultMaxCacheEntries bounds the per-session result cache. When a session
// accumulates this many distinct queries the cache is reset rather than grown
// further, trading a few rescans for a hard memory ceiling.
const DefaultMaxCacheEntries = 1000

// Stats reports cache effectiveness for one IncrementalSearch session.
type Stats struct {
	Hits          int `json:"hits"`           // Queries answered from the cache
	Misses        int `json:"misses"`         // Queries that required scoring
	NarrowedScans int `json:"narrowed_scans"` // Misses scored against the previous result set
	FullScans     int `json:"full_scans"`     // Misses scored against the full candidate set
}

// IncrementalSearch memoizes Search results for one candidate set so that
// continuous typing does not rescore the full set on every keystroke.
//
// When a new query extends the previous one by exactly one trailing
// character, only the previous result set is rescored: a candidate that did
// not match the shorter query cannot match the longer one. Any other edit
// (backspace, paste, restart) falls back to the full candidate set. Empty
// results are cached too, so repeated no-match queries cost one scan total.
//
// An IncrementalSearch is NOT safe for concurrent use. It holds session
// state (the memoized results and the last query/result pair) and expects a
// single logical caller, matching one UI input stream.
type IncrementalSearch struct {
	candidates []string

	results         map[string][]string
	maxCacheEntries int

	lastQuery  string
	lastResult []string
	haveLast   bool

	stats Stats
}

// NewIncrementalSearch creates a session with no candidates bound yet.
// maxCacheEntries <= 0 selects DefaultMaxCacheEntries. Queries issued before
// SetCandidates return empty results.
func NewIncrementalSearch(maxCacheEntries int) *IncrementalSearch {
	if maxCacheEntries <= 0 {
		maxCacheEntries = DefaultMaxCacheEntries
	}
	return &IncrementalSearch{
		results:         make(map[string][]string),
		maxCacheEntries: maxCacheEntries,
	}
}

// SetCandidates binds the session to a new candidate set and discards every
// cached result. The slice is copied; later mutations by the caller do not
// leak into the session.
func (s *IncrementalSearch) SetCandidates(candidates []string) {
	s.candidates = make([]string, len(candidates))
	copy(s.candidates, candidates)
	s.Reset()
}

// Reset clears the memoized results without changing the candidate set.
func (s *IncrementalSearch) Reset() {
	s.results = make(map[string][]string)
	s.lastQuery = ""
	s.lastResult = nil
	s.haveLast = false
}

// Query returns the ranked candidates matching query, reusing cached results
// where possible. Cached slices are shared; callers must not modify them.
func (s *IncrementalSearch) Query(query string) []string {
	if len(query) == 0 {
		return s.candidates
	}

	if cached, ok := s.results[query]; ok {
		s.stats.Hits++
		return cached
	}
	s.stats.Misses++

	domain := s.candidates
	narrowed := false
	if s.haveLast && len(query) == len(s.lastQuery)+1 && strings.HasPrefix(query, s.lastQuery) {
		domain = s.lastResult
		narrowed = true
	}

	result := Search(domain, query)
	if narrowed {
		s.stats.NarrowedScans++
	} else {
		s.stats.FullScans++
	}

	s.remember(query, result)
	return result
}

// Stats returns a snapshot of the session's cache counters.
func (s *IncrementalSearch) Stats() Stats {
	return s.stats
}

// CacheSize returns the number of memoized queries currently held.
func (s *IncrementalSearch) CacheSize() int {
	return len(s.results)
}

func (s *IncrementalSearch) remember(query string, result []string) {
	if len(s.results) >= s.maxCacheEntries {
		// Reset at capacity; the query being typed right now stays memoized.
		s.results = make(map[string][]string)
	}
	s.results[query] = result
	s.lastQuery = query
	s.lastResult = result
	s.haveLast = true
}
