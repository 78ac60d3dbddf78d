// Package source discovers and parses Claude Code JSONL session files.
package source

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"

	"github.com/theirongolddev/ccdash/internal/model"
	"github.com/theirongolddev/ccdash/internal/pricing"
)

const contentPreviewLen = 100

// ParseResult holds the output of parsing a single JSONL file.
type ParseResult struct {
	Messages  []model.Message
	Skipped   int // well-formed lines that are not messages (summary, progress, ...)
	Malformed int // lines that could not be decoded into a message
}

// ParseFile reads one JSONL session file and returns its messages in
// file order, priced with the given rates. Malformed lines are counted
// and skipped, never fatal. Entries repeating a message id replace the
// earlier occurrence in place (streaming transcripts re-emit the same
// id with cumulative usage; the last entry carries the billed counts).
// Open and read errors are returned to the caller.
func ParseFile(path string, rates pricing.Rates) (ParseResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return ParseResult{}, err
	}
	defer func() { _ = f.Close() }()

	var res ParseResult
	index := make(map[string]int)

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 256*1024), 10*1024*1024)

	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		entryType, found := extractTopLevelType(line)
		if !found {
			// No top-level "type" key: a typeless meta object is
			// skipped, anything undecodable is malformed.
			if json.Valid(line) {
				res.Skipped++
			} else {
				res.Malformed++
			}
			continue
		}
		if entryType != "user" && entryType != "assistant" {
			res.Skipped++
			continue
		}

		var entry RawEntry
		if err := json.Unmarshal(line, &entry); err != nil {
			res.Malformed++
			continue
		}

		msg, ok := buildMessage(entry, rates)
		if !ok {
			res.Malformed++
			continue
		}

		if i, seen := index[msg.MessageID]; seen {
			res.Messages[i] = msg
		} else {
			index[msg.MessageID] = len(res.Messages)
			res.Messages = append(res.Messages, msg)
		}
	}

	if err := scanner.Err(); err != nil {
		return res, err
	}
	return res, nil
}

// buildMessage converts a decoded entry into a priced Message. Entries
// without a role, timestamp, or any usable identifier are rejected.
// Entries without usage still become messages with zero-valued usage.
func buildMessage(entry RawEntry, rates pricing.Rates) (model.Message, bool) {
	role := entry.Type
	var (
		id         string
		modelName  string
		rawContent json.RawMessage
	)
	if entry.Message != nil {
		if entry.Message.Role != "" {
			role = entry.Message.Role
		}
		id = entry.Message.ID
		modelName = entry.Message.Model
		rawContent = entry.Message.Content
	}
	if id == "" {
		id = entry.UUID
	}

	if entry.Timestamp == "" || id == "" || (role != "user" && role != "assistant") {
		return model.Message{}, false
	}

	var usage model.TokenUsage
	if entry.Message != nil && entry.Message.Usage != nil {
		usage = normalizeUsage(entry.Message.Usage)
	}

	return model.Message{
		MessageID:   id,
		Timestamp:   entry.Timestamp,
		IsSidechain: entry.IsSidechain,
		Role:        role,
		Model:       modelName,
		Usage:       usage,
		Cost:        rates.Price(usage).Total,
		Content:     contentPreview(rawContent),
		SessionID:   entry.SessionID,
	}, true
}

// normalizeUsage maps raw API usage onto the domain type. The cache
// read tier is "1h" only when the cache-creation breakdown is
// exclusively 1h tokens; there is no per-read tier signal in the
// transcript format.
func normalizeUsage(u *RawUsage) model.TokenUsage {
	cacheCreation := u.CacheCreationInputTokens
	tier := "5m"
	if cc := u.CacheCreation; cc != nil {
		if cacheCreation == 0 {
			cacheCreation = cc.Ephemeral5mInputTokens + cc.Ephemeral1hInputTokens
		}
		if cc.Ephemeral1hInputTokens > 0 && cc.Ephemeral5mInputTokens == 0 {
			tier = "1h"
		}
	}
	return model.NewTokenUsage(u.InputTokens, cacheCreation, u.CacheReadInputTokens, u.OutputTokens, tier)
}

// contentPreview extracts a short text preview from a message content
// field, which is either a plain string or a list of content blocks.
func contentPreview(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return truncate(s, contentPreviewLen)
	}

	var blocks []ContentBlock
	if err := json.Unmarshal(raw, &blocks); err != nil {
		return ""
	}
	for _, b := range blocks {
		if b.Type == "text" && b.Text != "" {
			return truncate(b.Text, contentPreviewLen)
		}
	}
	return ""
}

func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-1]) + "…"
}

// typeKey is the byte sequence for a JSON key named "type" (with quotes).
var typeKey = []byte(`"type"`)

// extractTopLevelType finds the top-level "type" field in a JSONL line.
// Tracks brace depth and string boundaries so nested "type" keys are
// ignored. Early-exits once found, making cost O(1) vs line length.
func extractTopLevelType(line []byte) (string, bool) {
	depth := 0
	for i := 0; i < len(line); {
		switch line[i] {
		case '"':
			if depth == 1 && bytes.HasPrefix(line[i:], typeKey) {
				val, isKey := classifyType(line, i+len(typeKey))
				if isKey {
					return val, true // found the "type" key, done regardless of value
				}
				// "type" appeared as a value, not a key. Continue scanning.
			}
			i = skipJSONString(line, i)
		case '{':
			depth++
			i++
		case '}':
			depth--
			i++
		default:
			i++
		}
	}
	return "", false
}

// classifyType checks whether pos follows a JSON key (expects : then value).
// Returns the type value and whether this was a valid key:value pair.
// isKey=false means "type" appeared as a value, not a key; the caller
// should continue scanning.
func classifyType(line []byte, pos int) (val string, isKey bool) {
	i := skipSpaces(line, pos)
	if i >= len(line) || line[i] != ':' {
		return "", false // no colon, this was a value, not a key
	}
	i = skipSpaces(line, i+1)
	if i >= len(line) || line[i] != '"' {
		return "", true // key with non-string value (null, number, etc.)
	}
	i++ // past opening quote

	end := bytes.IndexByte(line[i:], '"')
	if end < 0 || end > 30 {
		return "", true
	}
	return string(line[i : i+end]), true
}

// skipJSONString advances past a JSON string starting at the opening quote.
func skipJSONString(line []byte, i int) int {
	i++ // skip opening quote
	for i < len(line) {
		switch line[i] {
		case '\\':
			i += 2
		case '"':
			return i + 1
		default:
			i++
		}
	}
	return i
}

func skipSpaces(line []byte, i int) int {
	for i < len(line) && line[i] == ' ' {
		i++
	}
	return i
}
