// internal/service/view.go
package service

import (
	"github.com/educaprep/studyhelper/internal/domain/question"
)

// QuestionView is the renderable slice of a question. The answer never
// leaves the core.
type QuestionView struct {
	ID          int      `json:"id"`
	Image       string   `json:"image"`
	SectionName string   `json:"section_name"`
	Tags        []string `json:"tags,omitempty"`
	Mode        string   `json:"mode"`
}

// Progress is the 1-based position over the session's remaining pool.
type Progress struct {
	Current int `json:"current"`
	Total   int `json:"total"`
}

// SessionView is a snapshot of one session for rendering.
type SessionView struct {
	ID                  string        `json:"id"`
	Subject             string        `json:"subject"`
	Sections            []string      `json:"sections"`
	Completed           bool          `json:"completed"`
	Question            *QuestionView `json:"question,omitempty"`
	Progress            Progress      `json:"progress"`
	TotalQuestions      int           `json:"total_questions"`
	TriesLeft           int           `json:"tries_left"`
	Solved              bool          `json:"solved"`
	AcedInSession       int           `json:"aced_in_session"`
	ElapsedSeconds      int           `json:"elapsed_seconds"`
	SheetPreview        string        `json:"sheet_preview,omitempty"`
	PendingConfirmation string        `json:"pending_confirmation,omitempty"`
}

// SubmitResult reports one evaluated submission.
type SubmitResult struct {
	Verdict      string `json:"verdict"`
	Correct      bool   `json:"correct"`
	Feedback     string `json:"feedback"`
	TriesLeft    int    `json:"tries_left"`
	CanAce       bool   `json:"can_ace"`
	SheetPreview string `json:"sheet_preview,omitempty"`
}

// SectionSummary describes one section for the selection screen.
type SectionSummary struct {
	Key           string `json:"key"`
	Name          string `json:"name"`
	QuestionCount int    `json:"question_count"`
	AcedCount     int    `json:"aced_count"`
}

// SubjectSummary describes one subject and its sections.
type SubjectSummary struct {
	ID       string           `json:"id"`
	Sections []SectionSummary `json:"sections"`
}

// view builds a snapshot. Callers hold the service lock.
func (s *QuizService) view(state *quizState) *SessionView {
	current, total := state.sess.Progress()
	v := &SessionView{
		ID:                  state.sess.ID,
		Subject:             state.sess.Subject,
		Sections:            append([]string(nil), state.sess.SectionKeys...),
		Completed:           state.sess.Completed(),
		Progress:            Progress{Current: current, Total: total},
		TotalQuestions:      state.sess.TotalQuestions,
		TriesLeft:           displayTries(state.triesLeft),
		Solved:              state.sess.CurrentSolved(),
		AcedInSession:       len(state.sess.AcedInSession),
		ElapsedSeconds:      int(s.now().Sub(state.startedAt).Seconds()),
		SheetPreview:        state.sheetPath,
		PendingConfirmation: state.confirm.Pending(),
	}
	if q, ok := state.sess.Current(); ok {
		v.Question = questionView(q)
	}
	return v
}

func questionView(q question.Question) *QuestionView {
	return &QuestionView{
		ID:          q.ID,
		Image:       q.Image,
		SectionName: q.SectionName,
		Tags:        append([]string(nil), q.Tags...),
		Mode:        q.Mode.String(),
	}
}
