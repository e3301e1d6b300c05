// internal/service/quiz.go
package service

import (
	"errors"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/educaprep/studyhelper/internal/confirm"
	"github.com/educaprep/studyhelper/internal/domain/question"
	"github.com/educaprep/studyhelper/internal/domain/session"
	"github.com/educaprep/studyhelper/internal/evaluate"
	"github.com/educaprep/studyhelper/internal/mastery"
	"github.com/educaprep/studyhelper/internal/settings"
	"github.com/educaprep/studyhelper/internal/store"
)

const (
	// MaxTries per question; reset on correct answers and navigation.
	MaxTries = 3
	// SubmitCooldown throttles answer submissions.
	SubmitCooldown = time.Second
)

var (
	// ErrNothingToPractice means every matching question is already
	// mastered; the caller should route to the landing state.
	ErrNothingToPractice = session.ErrNoQuestions
	ErrSessionNotFound   = errors.New("session not found")
	// ErrCooldown rejects a submission inside the cooldown window;
	// it consumes no try and does not reset the cooldown clock.
	ErrCooldown = errors.New("please wait before submitting again")
)

// FeedbackSurface is the rendering collaborator that displays a timed
// verdict message. The core never knows how it is drawn.
type FeedbackSurface interface {
	ShowFeedback(message string, correct bool)
}

// SheetPreviewer is the collaborator that surfaces an answer-sheet
// preview after the first miss on a question that carries one.
type SheetPreviewer interface {
	Preview(sheetPath string)
}

type nopFeedback struct{}

func (nopFeedback) ShowFeedback(string, bool) {}

type nopPreviewer struct{}

func (nopPreviewer) Preview(string) {}

// quizState is the controller-side state wrapped around one session.
type quizState struct {
	sess       *session.Session
	triesLeft  int
	lastSubmit time.Time
	startedAt  time.Time
	sheetPath  string // armed answer-sheet preview, "" when clear
	confirm    confirm.Machine
}

// QuizService orchestrates sessions, evaluation, mastery persistence
// and the timing rules. All mutations of a subject document, its
// mastery entry and session state happen under one lock, as one
// logical transaction.
type QuizService struct {
	subjects   *store.SubjectStore
	history    *store.HistoryStore
	index      *mastery.Index
	settings   *settings.Manager
	subjectIDs []string
	logger     *slog.Logger
	now        func() time.Time
	feedback   FeedbackSurface
	sheets     SheetPreviewer

	mu       sync.Mutex
	sessions map[string]*quizState

	unaceConfirm confirm.Machine
	pendingUnace struct {
		subject, sectionKey string
		id                  int
	}
}

type Option func(*QuizService)

// WithClock injects a time source, used by tests to control the
// cooldown and the session clock.
func WithClock(now func() time.Time) Option {
	return func(s *QuizService) { s.now = now }
}

func WithFeedbackSurface(f FeedbackSurface) Option {
	return func(s *QuizService) { s.feedback = f }
}

func WithSheetPreviewer(p SheetPreviewer) Option {
	return func(s *QuizService) { s.sheets = p }
}

func NewQuizService(
	subjects *store.SubjectStore,
	history *store.HistoryStore,
	index *mastery.Index,
	settings *settings.Manager,
	subjectIDs []string,
	logger *slog.Logger,
	opts ...Option,
) *QuizService {
	s := &QuizService{
		subjects:   subjects,
		history:    history,
		index:      index,
		settings:   settings,
		subjectIDs: append([]string(nil), subjectIDs...),
		logger:     logger,
		now:        time.Now,
		feedback:   nopFeedback{},
		sheets:     nopPreviewer{},
		sessions:   make(map[string]*quizState),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SubjectIDs returns the configured subjects.
func (s *QuizService) SubjectIDs() []string {
	return append([]string(nil), s.subjectIDs...)
}

// Subjects summarizes every configured subject with per-section
// question and mastery counts, for the selection screen.
func (s *QuizService) Subjects() []SubjectSummary {
	summaries := make([]SubjectSummary, 0, len(s.subjectIDs))
	for _, id := range s.subjectIDs {
		doc := s.subjects.Load(id)

		keys := make([]string, 0, len(doc.Sections))
		for key := range doc.Sections {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		summary := SubjectSummary{ID: id}
		for _, key := range keys {
			sec := doc.Sections[key]
			summary.Sections = append(summary.Sections, SectionSummary{
				Key:           key,
				Name:          sec.SectionName,
				QuestionCount: len(sec.Questions),
				AcedCount:     len(sec.AcedQuestions),
			})
		}
		summaries = append(summaries, summary)
	}
	return summaries
}

// StartSession builds the working set for the chosen sections, minus
// everything already mastered, and opens a session over it.
func (s *QuizService) StartSession(subjectID string, sectionKeys []string) (*SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var pool []question.Question
	for _, key := range sectionKeys {
		pool = append(pool, s.subjects.Questions(subjectID, key)...)
	}

	aced := s.index.AcedIDs(subjectID, sectionKeys)
	working := pool[:0:0]
	for _, q := range pool {
		if _, ok := aced[q.ID]; !ok {
			working = append(working, q)
		}
	}

	sess, err := session.New(subjectID, sectionKeys, working, s.settings.Get().Randomize)
	if err != nil {
		return nil, err
	}

	state := &quizState{
		sess:      sess,
		triesLeft: MaxTries,
		startedAt: s.now(),
	}
	s.sessions[sess.ID] = state

	s.logger.Info("session started",
		"session_id", sess.ID,
		"subject", subjectID,
		"sections", sectionKeys,
		"questions", sess.TotalQuestions,
	)
	return s.view(state), nil
}

// View returns the current state of a session.
func (s *QuizService) View(sessionID string) (*SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s.view(state), nil
}

// Submit evaluates an answer for the current question, applying the
// cooldown, try accounting and the answer-sheet preview trigger.
func (s *QuizService) Submit(sessionID, answer string) (*SubmitResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if state.sess.Completed() {
		return nil, session.ErrCompleted
	}
	q, ok := state.sess.Current()
	if !ok {
		return nil, session.ErrNoCurrent
	}

	now := s.now()
	if !state.lastSubmit.IsZero() && now.Sub(state.lastSubmit) < SubmitCooldown {
		return nil, ErrCooldown
	}

	res := evaluate.Evaluate(q, answer)
	state.lastSubmit = now

	if res.Correct {
		state.triesLeft = MaxTries
		state.sess.MarkSolved()
		state.sheetPath = ""
	} else if res.ConsumesTry {
		state.triesLeft--
		if state.triesLeft == 2 && q.AnswerSheet != "" {
			state.sheetPath = q.AnswerSheet
			s.sheets.Preview(q.AnswerSheet)
		}
	}

	if res.Verdict == evaluate.VerdictCorrect || res.Verdict == evaluate.VerdictIncorrect {
		s.recordAttempt(state, q, answer, res.Correct)
	}
	s.feedback.ShowFeedback(res.Feedback, res.Correct)

	_, acedInSession := state.sess.AcedInSession[q.ID]
	return &SubmitResult{
		Verdict:      res.Verdict.String(),
		Correct:      res.Correct,
		Feedback:     res.Feedback,
		TriesLeft:    displayTries(state.triesLeft),
		CanAce:       res.Correct && !acedInSession,
		SheetPreview: state.sheetPath,
	}, nil
}

// Ace commits the current (solved) question to the mastery index and
// removes it from the session. Acing the last question completes the
// session and evicts it.
func (s *QuizService) Ace(sessionID string) (*SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if !state.sess.CurrentSolved() {
		return nil, session.ErrNotSolved
	}
	q, ok := state.sess.Current()
	if !ok {
		return nil, session.ErrNoCurrent
	}

	sectionKey, ok := s.findSection(state.sess.Subject, state.sess.SectionKeys, q.ID)
	if !ok {
		s.logger.Error("aced question not found in any selected section",
			"subject", state.sess.Subject, "question_id", q.ID)
		return nil, store.ErrNotFound
	}

	if err := s.index.Ace(state.sess.Subject, sectionKey, q); err != nil {
		return nil, err
	}

	if _, err := state.sess.AceCurrent(); err != nil {
		return nil, err
	}
	state.triesLeft = MaxTries
	state.sheetPath = ""

	view := s.view(state)
	if state.sess.Completed() {
		delete(s.sessions, sessionID)
		s.logger.Info("session completed", "session_id", sessionID)
	}
	return view, nil
}

// Next advances to the following question. Gated on the current one
// being solved.
func (s *QuizService) Next(sessionID string) (*SessionView, error) {
	return s.navigate(sessionID, func(st *quizState) error { return st.sess.Next() })
}

// Back rewinds one question.
func (s *QuizService) Back(sessionID string) (*SessionView, error) {
	return s.navigate(sessionID, func(st *quizState) error { return st.sess.Back() })
}

// Skip defers the current question for later.
func (s *QuizService) Skip(sessionID string) (*SessionView, error) {
	return s.navigate(sessionID, func(st *quizState) error { return st.sess.Skip() })
}

func (s *QuizService) navigate(sessionID string, move func(*quizState) error) (*SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if err := move(state); err != nil {
		return nil, err
	}
	// Navigation resets the per-question transient state.
	state.triesLeft = MaxTries
	state.sheetPath = ""
	return s.view(state), nil
}

// AbandonRequest asks for confirmation before discarding the session.
func (s *QuizService) AbandonRequest(sessionID string) (*SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	state.confirm.Request("abandon")
	return s.view(state), nil
}

// AbandonConfirm resolves a pending abandon. Accepting discards the
// session without persisting anything; questions aced earlier in the
// session stay committed.
func (s *QuizService) AbandonConfirm(sessionID string, accept bool) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.sessions[sessionID]
	if !ok {
		return false, ErrSessionNotFound
	}
	action, execute := state.confirm.Confirm(accept)
	if action != "abandon" || !execute {
		return false, nil
	}
	delete(s.sessions, sessionID)
	s.logger.Info("session abandoned", "session_id", sessionID)
	return true, nil
}

// ResetTimerRequest asks for confirmation before resetting the clock.
func (s *QuizService) ResetTimerRequest(sessionID string) (*SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	state.confirm.Request("reset_timer")
	return s.view(state), nil
}

// ResetTimerConfirm resolves a pending timer reset.
func (s *QuizService) ResetTimerConfirm(sessionID string, accept bool) (*SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if action, execute := state.confirm.Confirm(accept); action == "reset_timer" && execute {
		state.startedAt = s.now()
	}
	return s.view(state), nil
}

// Aced lists the aced snapshots for one subject section.
func (s *QuizService) Aced(subjectID, sectionKey string) []question.Question {
	return s.index.List(subjectID, sectionKey)
}

// UnaceRequest asks for confirmation before returning a question to
// the practice pool.
func (s *QuizService) UnaceRequest(subjectID, sectionKey string, id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pendingUnace.subject = subjectID
	s.pendingUnace.sectionKey = sectionKey
	s.pendingUnace.id = id
	s.unaceConfirm.Request("unace")
}

// UnaceConfirm resolves a pending unace. It reports whether the
// question was actually unaced.
func (s *QuizService) UnaceConfirm(accept bool) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	action, execute := s.unaceConfirm.Confirm(accept)
	if action != "unace" || !execute {
		return false, nil
	}
	p := s.pendingUnace
	if err := s.index.Unace(p.subject, p.sectionKey, p.id); err != nil {
		return false, err
	}
	return true, nil
}

// Stats returns the per-question attempt history for a subject.
func (s *QuizService) Stats(subjectID string) ([]store.QuestionStats, error) {
	if s.history == nil {
		return []store.QuestionStats{}, nil
	}
	return s.history.SubjectStats(subjectID)
}

// findSection locates the section key whose question list contains the
// given id, scanning only the session's selected sections.
func (s *QuizService) findSection(subjectID string, sectionKeys []string, id int) (string, bool) {
	for _, key := range sectionKeys {
		for _, q := range s.subjects.Questions(subjectID, key) {
			if q.ID == id {
				return key, true
			}
		}
	}
	return "", false
}

func (s *QuizService) recordAttempt(state *quizState, q question.Question, answer string, correct bool) {
	if s.history == nil {
		return
	}
	sectionKey, _ := s.findSection(state.sess.Subject, state.sess.SectionKeys, q.ID)
	err := s.history.RecordAttempt(store.Attempt{
		SessionID:  state.sess.ID,
		Subject:    state.sess.Subject,
		SectionKey: sectionKey,
		QuestionID: q.ID,
		Mode:       q.Mode.String(),
		Answer:     answer,
		Correct:    correct,
		CreatedAt:  s.now(),
	})
	if err != nil {
		s.logger.Error("failed to record attempt", "session_id", state.sess.ID, "error", err)
	}
}

func displayTries(tries int) int {
	if tries < 0 {
		return 0
	}
	return tries
}
