package events

import (
	"encoding/json"
	"time"
)

// Harvest progress event types.
const (
	TypeCompanyDone  = "company_done"
	TypePlatformDone = "platform_done"
	TypeRunDone      = "run_done"
)

// CompanyDone reports one finished company task.
type CompanyDone struct {
	Source  string `json:"source"`
	Company string `json:"company"`
	Matches int    `json:"matches"`
	Err     string `json:"err,omitempty"`
}

// PlatformDone reports one finished platform pass.
type PlatformDone struct {
	Source    string `json:"source"`
	Companies int    `json:"companies"`
	Matches   int    `json:"matches"`
	Failures  int    `json:"failures"`
}

// RunDone reports the whole harvest.
type RunDone struct {
	RunID    string `json:"run_id"`
	NewJobs  int    `json:"new_jobs"`
	Failures int    `json:"failures"`
	Elapsed  string `json:"elapsed"`
}

// Event is the wire envelope subscribers receive, serialized to JSON.
type Event struct {
	Type    string          `json:"type"`
	Version int             `json:"v"`
	At      time.Time       `json:"at"`
	RunID   string          `json:"run_id,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

func makeEvent(runID, typ string, data any) string {
	var raw json.RawMessage
	if data != nil {
		b, _ := json.Marshal(data)
		raw = b
	}
	e := Event{
		Type:    typ,
		Version: 1,
		At:      time.Now().UTC(),
		RunID:   runID,
		Data:    raw,
	}
	b, _ := json.Marshal(e)
	return string(b)
}
