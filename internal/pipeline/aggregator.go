// Package pipeline orchestrates scanning, aggregation, and caching of
// session usage data.
package pipeline

import (
	"path/filepath"
	"sort"

	"github.com/theirongolddev/ccdash/internal/model"
	"github.com/theirongolddev/ccdash/internal/pricing"
	"github.com/theirongolddev/ccdash/internal/source"
)

// BuildSession folds the parsed messages of one session file into a
// SessionDetail. The session id comes from the first record that
// carries one, else from the filename stem. An empty message list
// yields a valid all-zero session.
func BuildSession(messages []model.Message, path string) model.SessionDetail {
	if messages == nil {
		messages = []model.Message{}
	}

	s := model.Session{
		Filename:  filepath.Base(path),
		SessionID: source.SessionIDFromFilename(path),
	}

	var costSum float64
	for _, m := range messages {
		s.MessageCount++
		costSum += m.Cost
		s.TotalTokens += m.Usage.Total()
		if m.IsSidechain {
			s.SidechainCount++
		}
		if s.FirstMessage == "" || m.Timestamp < s.FirstMessage {
			s.FirstMessage = m.Timestamp
		}
		if m.Timestamp > s.LastMessage {
			s.LastMessage = m.Timestamp
		}
	}

	for _, m := range messages {
		if m.SessionID != "" {
			s.SessionID = m.SessionID
			break
		}
	}

	s.TotalCost = pricing.RoundCost(costSum)
	if s.MessageCount > 0 {
		s.SidechainPercentage = 100 * float64(s.SidechainCount) / float64(s.MessageCount)
	}

	return model.SessionDetail{Session: s, Messages: messages}
}

// buildProject folds session summaries into a Project. Sessions are
// ordered by last activity, newest first, filename breaking ties.
func buildProject(dir source.ProjectDir, sessions []model.Session) model.Project {
	if sessions == nil {
		sessions = []model.Session{}
	}

	sort.Slice(sessions, func(i, j int) bool {
		if sessions[i].LastMessage != sessions[j].LastMessage {
			return sessions[i].LastMessage > sessions[j].LastMessage
		}
		return sessions[i].Filename < sessions[j].Filename
	})

	p := model.Project{
		Name:          dir.Name,
		Path:          dir.Path,
		TotalSessions: len(sessions),
		Sessions:      sessions,
	}

	var costSum float64
	for _, s := range sessions {
		costSum += s.TotalCost
		if s.LastMessage > p.LastActivity {
			p.LastActivity = s.LastMessage
		}
	}
	p.TotalCost = pricing.RoundCost(costSum)

	return p
}

// Summarize rolls a scan result up into one line of totals.
func Summarize(res model.ScanResult) model.Summary {
	sum := model.Summary{TotalProjects: len(res.Projects)}

	var costSum float64
	for _, p := range res.Projects {
		sum.TotalSessions += p.TotalSessions
		costSum += p.TotalCost
		for _, s := range p.Sessions {
			sum.TotalMessages += s.MessageCount
			sum.TotalTokens += s.TotalTokens
			if s.FirstMessage != "" && (sum.FirstActivity == "" || s.FirstMessage < sum.FirstActivity) {
				sum.FirstActivity = s.FirstMessage
			}
			if s.LastMessage > sum.LastActivity {
				sum.LastActivity = s.LastMessage
			}
		}
	}
	sum.TotalCost = pricing.RoundCost(costSum)

	return sum
}
