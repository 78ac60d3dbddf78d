package source

import "encoding/json"

// RawEntry represents a single line in a Claude Code JSONL session file.
type RawEntry struct {
	Type        string      `json:"type"`
	UUID        string      `json:"uuid,omitempty"`
	Timestamp   string      `json:"timestamp,omitempty"`
	SessionID   string      `json:"sessionId,omitempty"`
	IsSidechain bool        `json:"isSidechain,omitempty"`
	Message     *RawMessage `json:"message,omitempty"`
}

// RawMessage represents the message envelope of a user or assistant entry.
// Content is either a plain string or a list of content blocks.
type RawMessage struct {
	ID      string          `json:"id"`
	Role    string          `json:"role"`
	Model   string          `json:"model"`
	Content json.RawMessage `json:"content,omitempty"`
	Usage   *RawUsage       `json:"usage,omitempty"`
}

// RawUsage holds token counts from the API response.
type RawUsage struct {
	InputTokens              int64          `json:"input_tokens"`
	OutputTokens             int64          `json:"output_tokens"`
	CacheCreationInputTokens int64          `json:"cache_creation_input_tokens"`
	CacheReadInputTokens     int64          `json:"cache_read_input_tokens"`
	CacheCreation            *CacheCreation `json:"cache_creation,omitempty"`
}

// CacheCreation holds the breakdown of cache write tokens by TTL bucket.
type CacheCreation struct {
	Ephemeral5mInputTokens int64 `json:"ephemeral_5m_input_tokens"`
	Ephemeral1hInputTokens int64 `json:"ephemeral_1h_input_tokens"`
}

// ContentBlock is one element of a block-list message content.
type ContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

// ProjectDir is one project directory discovered under the projects root.
type ProjectDir struct {
	Name string // encoded directory name, e.g. "-Users-alice-code-myapp"
	Dir  string // absolute path on disk
	Path string // decoded workspace path, best effort
}
