package model

// ListStats represents statistics for a single candidate list
type ListStats struct {
	ListName       string `json:"list_name"`
	CandidateCount int    `json:"candidate_count"`
	ActiveSessions int    `json:"active_sessions"`
	Version        uint64 `json:"version"` // Bumped on every candidate mutation
}
