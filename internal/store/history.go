// internal/store/history.go
package store

import (
	"database/sql"
	"time"

	_ "modernc.org/sqlite"
)

const historySchema = `
CREATE TABLE IF NOT EXISTS attempts (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    session_id TEXT NOT NULL,
    subject TEXT NOT NULL,
    section_key TEXT NOT NULL,
    question_id INTEGER NOT NULL,
    mode TEXT NOT NULL,
    answer TEXT NOT NULL,
    correct INTEGER NOT NULL,
    created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_attempts_subject ON attempts(subject);
CREATE INDEX IF NOT EXISTS idx_attempts_session ON attempts(session_id);
`

// HistoryStore records every evaluated submission in an embedded sqlite
// database. It is observability, not source of truth: losing it never
// affects mastery state, which lives in the subject JSON files.
type HistoryStore struct {
	db *sql.DB
}

func NewHistory(dbPath string) (*HistoryStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(historySchema); err != nil {
		return nil, err
	}
	return &HistoryStore{db: db}, nil
}

func (h *HistoryStore) Close() error {
	return h.db.Close()
}

func (h *HistoryStore) RecordAttempt(a Attempt) error {
	correct := 0
	if a.Correct {
		correct = 1
	}
	_, err := h.db.Exec(
		"INSERT INTO attempts (session_id, subject, section_key, question_id, mode, answer, correct, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		a.SessionID, a.Subject, a.SectionKey, a.QuestionID, a.Mode, a.Answer, correct,
		a.CreatedAt.UTC().Format(time.RFC3339),
	)
	return err
}

// SubjectStats aggregates per-question attempt counts for one subject,
// ordered by question id.
func (h *HistoryStore) SubjectStats(subject string) ([]QuestionStats, error) {
	rows, err := h.db.Query(`
		SELECT question_id, COUNT(*), SUM(correct)
		FROM attempts
		WHERE subject = ?
		GROUP BY question_id
		ORDER BY question_id
	`, subject)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []QuestionStats
	for rows.Next() {
		var qs QuestionStats
		if err := rows.Scan(&qs.QuestionID, &qs.TimesAnswered, &qs.TimesCorrect); err != nil {
			return nil, err
		}
		if qs.TimesAnswered > 0 {
			qs.Accuracy = qs.TimesCorrect * 100 / qs.TimesAnswered
		}
		stats = append(stats, qs)
	}
	return stats, rows.Err()
}

// SessionAttempts returns the attempts recorded for one session in
// insertion order.
func (h *HistoryStore) SessionAttempts(sessionID string) ([]Attempt, error) {
	rows, err := h.db.Query(`
		SELECT session_id, subject, section_key, question_id, mode, answer, correct, created_at
		FROM attempts
		WHERE session_id = ?
		ORDER BY id
	`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var attempts []Attempt
	for rows.Next() {
		var a Attempt
		var correct int
		var created string
		if err := rows.Scan(&a.SessionID, &a.Subject, &a.SectionKey, &a.QuestionID, &a.Mode, &a.Answer, &correct, &created); err != nil {
			return nil, err
		}
		a.Correct = correct == 1
		a.CreatedAt, _ = time.Parse(time.RFC3339, created)
		attempts = append(attempts, a)
	}
	return attempts, rows.Err()
}
