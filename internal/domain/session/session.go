package session

import (
	"errors"
	"math/rand"

	"github.com/google/uuid"

	"github.com/educaprep/studyhelper/internal/domain/question"
)

var (
	// ErrNoQuestions means every matching question is already mastered
	// (or none exist); no session is created.
	ErrNoQuestions = errors.New("no questions to practice")
	// ErrCompleted is returned for any action on a completed session.
	ErrCompleted = errors.New("session completed")
	// ErrNotSolved gates Next: the current question must be answered
	// correctly before moving forward.
	ErrNotSolved = errors.New("current question not solved yet")
	// ErrAlreadySolved blocks skipping a question that was already solved.
	ErrAlreadySolved = errors.New("current question already solved")
	// ErrNoCurrent means the session has no current question to act on.
	ErrNoCurrent = errors.New("no current question")
)

// Session is one play-through's working set and cursor state. It is
// ephemeral and never persisted; only acing commits anything to disk.
type Session struct {
	ID          string
	Subject     string
	SectionKeys []string

	// Remaining is reordered and pruned during play. It never contains
	// a question that was mastered before the session started.
	Remaining      []question.Question
	TotalQuestions int
	AcedInSession  map[int]struct{}

	cursor     int
	solved     map[int]struct{}
	completed  bool
	randomized bool
}

// New builds a session over the given working set. The caller is expected
// to have excluded already-mastered questions. With randomize on, the
// order is a fresh uniform permutation on every call.
func New(subject string, sectionKeys []string, questions []question.Question, randomize bool) (*Session, error) {
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}

	working := make([]question.Question, len(questions))
	copy(working, questions)
	if randomize {
		rand.Shuffle(len(working), func(i, j int) {
			working[i], working[j] = working[j], working[i]
		})
	}

	return &Session{
		ID:             uuid.NewString(),
		Subject:        subject,
		SectionKeys:    append([]string(nil), sectionKeys...),
		Remaining:      working,
		TotalQuestions: len(working),
		AcedInSession:  make(map[int]struct{}),
		solved:         make(map[int]struct{}),
		randomized:     randomize,
	}, nil
}

// Current returns the question under the cursor.
func (s *Session) Current() (question.Question, bool) {
	if s.completed || len(s.Remaining) == 0 {
		return question.Question{}, false
	}
	return s.Remaining[s.cursor], true
}

// Cursor returns the current cursor position.
func (s *Session) Cursor() int { return s.cursor }

// Completed reports whether the terminal state has been reached.
func (s *Session) Completed() bool { return s.completed }

// CurrentSolved reports whether the question under the cursor has been
// answered correctly.
func (s *Session) CurrentSolved() bool {
	_, ok := s.solved[s.cursor]
	return ok
}

// MarkSolved records the current cursor position as solved, unlocking Next.
func (s *Session) MarkSolved() {
	if s.completed {
		return
	}
	s.solved[s.cursor] = struct{}{}
}

// Next moves the cursor forward by one, clamped to the working set.
// It is a hard gate: the current question must be solved first.
func (s *Session) Next() error {
	if s.completed {
		return ErrCompleted
	}
	if !s.CurrentSolved() {
		return ErrNotSolved
	}
	if s.cursor < len(s.Remaining)-1 {
		s.cursor++
	}
	return nil
}

// Back moves the cursor backward by one, clamped at zero. Rewinding past
// the start is a no-op rather than an error.
func (s *Session) Back() error {
	if s.completed {
		return ErrCompleted
	}
	if s.cursor > 0 {
		s.cursor--
	}
	return nil
}

// Skip defers the current question. With randomize off the cursor just
// advances circularly and the order is untouched; with randomize on the
// current question moves to the end of the working set, changing future
// ordering. Solved questions cannot be skipped.
func (s *Session) Skip() error {
	if s.completed {
		return ErrCompleted
	}
	if len(s.Remaining) == 0 {
		return ErrNoCurrent
	}
	if s.CurrentSolved() {
		return ErrAlreadySolved
	}

	if s.randomized {
		skipped := s.Remaining[s.cursor]
		s.Remaining = append(s.Remaining[:s.cursor], s.Remaining[s.cursor+1:]...)
		s.Remaining = append(s.Remaining, skipped)
		if s.cursor >= len(s.Remaining) {
			s.cursor = 0
		}
	} else {
		s.cursor = (s.cursor + 1) % len(s.Remaining)
	}
	return nil
}

// AceCurrent removes the current question from the working set and
// records it as aced within this session. When the last question is
// removed the session transitions to its terminal Completed state.
func (s *Session) AceCurrent() (question.Question, error) {
	if s.completed {
		return question.Question{}, ErrCompleted
	}
	q, ok := s.Current()
	if !ok {
		return question.Question{}, ErrNoCurrent
	}

	s.Remaining = append(s.Remaining[:s.cursor], s.Remaining[s.cursor+1:]...)
	s.AcedInSession[q.ID] = struct{}{}
	s.shiftSolved(s.cursor)

	if len(s.Remaining) == 0 {
		s.completed = true
		return q, nil
	}
	if s.cursor >= len(s.Remaining) {
		s.cursor = 0
	}
	return q, nil
}

// shiftSolved drops the removed index from the solved set and slides
// the indexes above it down by one so they keep pointing at the same
// questions.
func (s *Session) shiftSolved(removed int) {
	shifted := make(map[int]struct{}, len(s.solved))
	for ix := range s.solved {
		switch {
		case ix < removed:
			shifted[ix] = struct{}{}
		case ix > removed:
			shifted[ix-1] = struct{}{}
		}
	}
	s.solved = shifted
}

// Progress returns the 1-based position and count over the questions
// still unaced in this session.
func (s *Session) Progress() (current, total int) {
	total = len(s.Remaining)
	if total == 0 {
		return 0, 0
	}
	current = s.cursor + 1
	if current > total {
		current = total
	}
	return current, total
}
