// Package model defines the domain types served by the ccdash API.
package model

import "time"

// TokenUsage holds the token counts of one message, as reported in the
// session transcript. CacheTier selects the cache-read pricing bucket
// ("5m" or "1h"); it applies to the whole record.
type TokenUsage struct {
	InputTokens              int64  `json:"input_tokens"`
	CacheCreationInputTokens int64  `json:"cache_creation_input_tokens"`
	CacheReadInputTokens     int64  `json:"cache_read_input_tokens"`
	OutputTokens             int64  `json:"output_tokens"`
	CacheTier                string `json:"cache_tier,omitempty"`
}

// NewTokenUsage builds a normalized TokenUsage: negative counts are
// clamped to 0 and an empty tier defaults to "5m".
func NewTokenUsage(input, cacheCreation, cacheRead, output int64, tier string) TokenUsage {
	if tier == "" {
		tier = "5m"
	}
	return TokenUsage{
		InputTokens:              clampTokens(input),
		CacheCreationInputTokens: clampTokens(cacheCreation),
		CacheReadInputTokens:     clampTokens(cacheRead),
		OutputTokens:             clampTokens(output),
		CacheTier:                tier,
	}
}

// Total returns the sum of all four token counts, clamping negatives.
func (u TokenUsage) Total() int64 {
	return clampTokens(u.InputTokens) +
		clampTokens(u.CacheCreationInputTokens) +
		clampTokens(u.CacheReadInputTokens) +
		clampTokens(u.OutputTokens)
}

func clampTokens(n int64) int64 {
	if n < 0 {
		return 0
	}
	return n
}

// CostBreakdown is the priced form of a TokenUsage, in USD. Each
// component and the total are rounded to 4 decimal places.
type CostBreakdown struct {
	Input      float64 `json:"input"`
	CacheWrite float64 `json:"cacheWrite"`
	CacheRead  float64 `json:"cacheRead"`
	Output     float64 `json:"output"`
	Total      float64 `json:"total"`
}

// Message is one usage-bearing record from a session log, priced at
// construction. SessionID is the record-level session identifier, kept
// for session lookup but not serialized.
type Message struct {
	MessageID   string     `json:"messageId"`
	Timestamp   string     `json:"timestamp"`
	IsSidechain bool       `json:"isSidechain"`
	Role        string     `json:"role"`
	Model       string     `json:"model,omitempty"`
	Usage       TokenUsage `json:"usage"`
	Cost        float64    `json:"cost"`
	Content     string     `json:"content,omitempty"`

	SessionID string `json:"-"`
}

// Session summarizes one session log file.
type Session struct {
	Filename            string  `json:"filename"`
	SessionID           string  `json:"sessionId"`
	MessageCount        int     `json:"messageCount"`
	TotalCost           float64 `json:"totalCost"`
	SidechainCount      int     `json:"sidechainCount"`
	SidechainPercentage float64 `json:"sidechainPercentage"`
	TotalTokens         int64   `json:"totalTokens"`
	FirstMessage        string  `json:"firstMessage"`
	LastMessage         string  `json:"lastMessage"`
}

// SessionDetail is a Session plus its full ordered message list.
type SessionDetail struct {
	Session
	Messages []Message `json:"messages"`
}

// Project aggregates the sessions of one project directory. Name is the
// encoded directory name used in API paths; Path is the decoded
// workspace path, best effort.
type Project struct {
	Name          string    `json:"name"`
	Path          string    `json:"path"`
	TotalSessions int       `json:"totalSessions"`
	TotalCost     float64   `json:"totalCost"`
	LastActivity  string    `json:"lastActivity"`
	Sessions      []Session `json:"sessions"`
}

// ScanMetadata describes one scan run.
type ScanMetadata struct {
	ScannedAt    time.Time `json:"scannedAt"`
	ProjectCount int       `json:"projectCount"`
	DurationMs   int64     `json:"durationMs"`
	Warnings     []string  `json:"warnings,omitempty"`
}

// ScanResult is the full outcome of one scan, and the collection-level
// API envelope. Message carries a user-facing explanation when
// Success is false.
type ScanResult struct {
	Success  bool         `json:"success"`
	Projects []Project    `json:"projects"`
	Metadata ScanMetadata `json:"metadata"`
	Message  string       `json:"message,omitempty"`
}

// Summary rolls a ScanResult up to a single line of totals.
type Summary struct {
	TotalProjects int
	TotalSessions int
	TotalMessages int
	TotalTokens   int64
	TotalCost     float64
	FirstActivity string
	LastActivity  string
}
