package models

import "time"

type Category struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type Card struct {
	ID         int64      `json:"id"`
	CategoryID int64      `json:"category_id"`
	Question   string     `json:"question"`
	Answer     string     `json:"answer"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
	Stats      *CardStats `json:"stats,omitempty"`
}

type CardStats struct {
	ID           int64      `json:"id"`
	CardID       int64      `json:"card_id"`
	CorrectCount int        `json:"correct_count"`
	WrongCount   int        `json:"wrong_count"`
	LastAttempt  *time.Time `json:"last_attempt"`
	AttemptDate  string     `json:"attempt_date,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// Attempts is the lifetime total recorded for the card.
func (s CardStats) Attempts() int {
	return s.CorrectCount + s.WrongCount
}

// StatsReportRow is a statistics row denormalized with its card's
// question/answer and category name, for reporting only.
type StatsReportRow struct {
	CardStats
	Question     string `json:"question"`
	Answer       string `json:"answer"`
	CategoryName string `json:"category_name"`
}

// CardFilter narrows card listings.
type CardFilter struct {
	CategoryID int64
	Search     string
	Limit      int
	Offset     int
}

// ReportFilter narrows the statistics report.
type ReportFilter struct {
	CategoryID int64
	Limit      int
	Offset     int
}

// Score is a session-local tally of verdicts.
type Score struct {
	Correct int `json:"correct"`
	Wrong   int `json:"wrong"`
}
