package store

import (
	"errors"
	"time"
)

var (
	ErrNotFound = errors.New("not found")
)

// Attempt is one evaluated submission, recorded for the stats view.
type Attempt struct {
	SessionID  string
	Subject    string
	SectionKey string
	QuestionID int
	Mode       string
	Answer     string
	Correct    bool
	CreatedAt  time.Time
}

// QuestionStats aggregates recorded attempts for a single question.
type QuestionStats struct {
	QuestionID    int
	TimesAnswered int
	TimesCorrect  int
	Accuracy      int // percentage, 0-100
}
