package models

import "time"

// Session holds the dashboard selections of one browser between submissions.
type Session struct {
	ID        string    `json:"id"`
	Place     string    `json:"place"`
	Variable  Variable  `json:"variable"`
	StartDate string    `json:"start_date"`
	EndDate   string    `json:"end_date"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DefaultSession is the first place, TMP, and today for both dates.
func DefaultSession(id string, now time.Time) Session {
	today := Today(now).Format(DateLayout)
	return Session{
		ID:        id,
		Place:     DefaultLocation().Name,
		Variable:  VariableTMP,
		StartDate: today,
		EndDate:   today,
		UpdatedAt: now,
	}
}

type FetchRecord struct {
	ID         int64         `json:"id"`
	SessionID  string        `json:"session_id"`
	Place      string        `json:"place"`
	Variable   Variable      `json:"variable"`
	TimeDomain string        `json:"timedomain"`
	Bbox       string        `json:"lalodomain"`
	OK         bool          `json:"ok"`
	Rows       int           `json:"rows"`
	Error      string        `json:"error,omitempty"`
	Duration   time.Duration `json:"duration_ns"`
	CreatedAt  time.Time     `json:"created_at"`
}
