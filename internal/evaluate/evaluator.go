// Package evaluate classifies a submitted answer against a question's
// input mode and produces a verdict with user-facing feedback. Try
// accounting and cooldowns belong to the quiz service; the evaluator
// only reports whether a verdict should consume a try.
package evaluate

import (
	"math/rand"
	"strings"
	"unicode"

	"github.com/educaprep/studyhelper/internal/domain/question"
)

type Verdict int

const (
	VerdictCorrect Verdict = iota
	VerdictIncorrect
	// VerdictNoAttempt is an empty submission; nothing else is checked.
	VerdictNoAttempt
	// VerdictWrongMode means the submission is shaped for the other
	// input mode (letters in fill-in, numbers in multiple choice).
	VerdictWrongMode
	// VerdictInvalidLetter is a single letter outside a-d in multiple
	// choice mode.
	VerdictInvalidLetter
)

func (v Verdict) String() string {
	switch v {
	case VerdictCorrect:
		return "correct"
	case VerdictIncorrect:
		return "incorrect"
	case VerdictNoAttempt:
		return "no_attempt"
	case VerdictWrongMode:
		return "wrong_mode"
	case VerdictInvalidLetter:
		return "invalid_letter"
	default:
		return "unknown"
	}
}

// Result is the outcome of evaluating one submission.
type Result struct {
	Verdict     Verdict
	Correct     bool
	Feedback    string
	ConsumesTry bool
}

const (
	feedbackNoAttempt     = "Type an answer first!"
	feedbackIncorrect     = "Incorrect :("
	feedbackInvalidLetter = "That letter is not among the offered answers."
	feedbackChoiceMode    = "This is a multiple choice question - answer with a letter a-d."
	feedbackFillMode      = "This is a fill in the blank question - type the answer out."
)

// affirmations is the fixed pool a correct verdict draws from.
var affirmations = []string{
	"Correct! :)",
	"Nailed it!",
	"Great work!",
	"You're on a roll!",
	"Exactly right!",
}

// Affirmation returns a randomly chosen message for a correct answer.
func Affirmation() string {
	return affirmations[rand.Intn(len(affirmations))]
}

// Evaluate validates input against the question's stored answer under
// the question's mode. Precedence: empty input first, then mode-shaped
// rejections, then the case-insensitive comparison.
func Evaluate(q question.Question, input string) Result {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return Result{Verdict: VerdictNoAttempt, Feedback: feedbackNoAttempt}
	}

	switch q.Mode {
	case question.ModeMultipleChoice:
		return evaluateMultipleChoice(q, trimmed)
	case question.ModeFillIn:
		return evaluateFillIn(q, trimmed)
	default:
		return compare(q, trimmed)
	}
}

func evaluateMultipleChoice(q question.Question, input string) Result {
	runes := []rune(input)
	if len(runes) == 1 {
		r := unicode.ToLower(runes[0])
		switch {
		case r >= 'a' && r <= 'd':
			return compare(q, input)
		case unicode.IsLetter(r):
			// Letters outside a-d do not consume a try.
			return Result{Verdict: VerdictInvalidLetter, Feedback: feedbackInvalidLetter}
		default:
			return Result{Verdict: VerdictWrongMode, Feedback: feedbackChoiceMode, ConsumesTry: true}
		}
	}
	if containsNumericShape(input) {
		return Result{Verdict: VerdictWrongMode, Feedback: feedbackChoiceMode}
	}
	return compare(q, input)
}

func evaluateFillIn(q question.Question, input string) Result {
	runes := []rune(input)
	if len(runes) == 1 {
		r := unicode.ToLower(runes[0])
		if r >= 'a' && r <= 'd' {
			// A bare choice letter in fill-in mode consumes a try.
			return Result{Verdict: VerdictWrongMode, Feedback: feedbackFillMode, ConsumesTry: true}
		}
	}
	return compare(q, input)
}

func compare(q question.Question, input string) Result {
	if strings.EqualFold(input, strings.TrimSpace(q.Answer)) {
		return Result{Verdict: VerdictCorrect, Correct: true, Feedback: Affirmation()}
	}
	return Result{Verdict: VerdictIncorrect, Feedback: feedbackIncorrect, ConsumesTry: true}
}

// containsNumericShape reports whether the input carries a digit, a dot
// or a comma, the shapes that mark a fill-in style answer.
func containsNumericShape(s string) bool {
	return strings.ContainsFunc(s, func(r rune) bool {
		return unicode.IsDigit(r) || r == '.' || r == ','
	})
}
