package model

import "time"

// SuggestEvent represents a single suggest query for analytics tracking
type SuggestEvent struct {
	ListName     string        `json:"list_name"`
	Query        string        `json:"query"`
	SessionID    string        `json:"session_id,omitempty"` // Empty for stateless queries
	Incremental  bool          `json:"incremental"`          // Whether a session cache served the query
	ResponseTime time.Duration `json:"response_time"`
	ResultCount  int           `json:"result_count"`
	Timestamp    time.Time     `json:"timestamp"`
}

// PopularQuery represents aggregated data for frequently typed queries
type PopularQuery struct {
	Query      string `json:"query"`
	QueryCount int    `json:"query_count"`
}

// ListUsage represents per-list query volume
type ListUsage struct {
	ListName       string `json:"list_name"`
	CandidateCount int    `json:"candidate_count"`
	QueryCount     int    `json:"query_count"`
}

// AnalyticsDashboard represents the complete analytics dashboard data
type AnalyticsDashboard struct {
	TotalQueries      int     `json:"total_queries"`
	QueriesLast24h    int     `json:"queries_last_24h"`
	AvgResponseTimeMs int64   `json:"avg_response_time_ms"`
	ZeroResultRate    float64 `json:"zero_result_rate"` // Fraction of queries returning nothing
	ActiveLists       int     `json:"active_lists"`

	PopularQueries    []PopularQuery `json:"popular_queries"`
	ZeroResultQueries []PopularQuery `json:"zero_result_queries"`
	ListUsage         []ListUsage    `json:"list_usage"`
}
