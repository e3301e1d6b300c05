package evaluate_test

import (
	"testing"

	"github.com/educaprep/studyhelper/internal/domain/question"
	"github.com/educaprep/studyhelper/internal/evaluate"
)

func mcQuestion(answer string) question.Question {
	return question.Question{ID: 1, Answer: answer, Mode: question.ModeMultipleChoice}
}

func fillQuestion(answer string) question.Question {
	return question.Question{ID: 2, Answer: answer, Mode: question.ModeFillIn}
}

func TestEvaluate_EmptyInput(t *testing.T) {
	for _, q := range []question.Question{
		mcQuestion("b"),
		fillQuestion("42"),
		{ID: 3, Answer: "x", Mode: question.ModeDefault},
	} {
		for _, input := range []string{"", "   ", "\t"} {
			res := evaluate.Evaluate(q, input)
			if res.Verdict != evaluate.VerdictNoAttempt {
				t.Errorf("mode %v input %q: expected no-attempt, got %v", q.Mode, input, res.Verdict)
			}
			if res.ConsumesTry {
				t.Errorf("mode %v: no-attempt must not consume a try", q.Mode)
			}
		}
	}
}

func TestEvaluate_MultipleChoice(t *testing.T) {
	q := mcQuestion("b")

	cases := []struct {
		input       string
		verdict     evaluate.Verdict
		consumesTry bool
	}{
		{"b", evaluate.VerdictCorrect, false},
		{"B", evaluate.VerdictCorrect, false},
		{"a", evaluate.VerdictIncorrect, true},
		{"e", evaluate.VerdictInvalidLetter, false},
		{"z", evaluate.VerdictInvalidLetter, false},
		{"2", evaluate.VerdictWrongMode, true},
		{"?", evaluate.VerdictWrongMode, true},
		{"4.5", evaluate.VerdictWrongMode, false},
		{"1,000", evaluate.VerdictWrongMode, false},
	}

	for _, tc := range cases {
		res := evaluate.Evaluate(q, tc.input)
		if res.Verdict != tc.verdict {
			t.Errorf("input %q: expected %v, got %v", tc.input, tc.verdict, res.Verdict)
		}
		if res.ConsumesTry != tc.consumesTry {
			t.Errorf("input %q: expected consumesTry=%v, got %v", tc.input, tc.consumesTry, res.ConsumesTry)
		}
	}
}

func TestEvaluate_MultipleChoice_WordAnswer(t *testing.T) {
	q := mcQuestion("triangle")
	res := evaluate.Evaluate(q, "Triangle")
	if !res.Correct {
		t.Errorf("expected multi-character comparison to succeed, got %v", res.Verdict)
	}
}

func TestEvaluate_FillIn(t *testing.T) {
	q := fillQuestion("42")

	cases := []struct {
		input       string
		verdict     evaluate.Verdict
		consumesTry bool
	}{
		{"42", evaluate.VerdictCorrect, false},
		{"41", evaluate.VerdictIncorrect, true},
		{"a", evaluate.VerdictWrongMode, true},
		{"D", evaluate.VerdictWrongMode, true},
		// A single letter outside a-d is just a wrong answer here.
		{"e", evaluate.VerdictIncorrect, true},
	}

	for _, tc := range cases {
		res := evaluate.Evaluate(q, tc.input)
		if res.Verdict != tc.verdict {
			t.Errorf("input %q: expected %v, got %v", tc.input, tc.verdict, res.Verdict)
		}
		if res.ConsumesTry != tc.consumesTry {
			t.Errorf("input %q: expected consumesTry=%v, got %v", tc.input, tc.consumesTry, res.ConsumesTry)
		}
	}
}

func TestEvaluate_FillIn_TextAnswer(t *testing.T) {
	q := fillQuestion("hypotenuse")
	if res := evaluate.Evaluate(q, "  HYPOTENUSE "); !res.Correct {
		t.Errorf("expected trimmed case-insensitive match, got %v", res.Verdict)
	}
}

func TestEvaluate_DefaultMode(t *testing.T) {
	q := question.Question{ID: 3, Answer: "b", Mode: question.ModeDefault}

	// No format gating: a digit-bearing guess is just incorrect.
	if res := evaluate.Evaluate(q, "2"); res.Verdict != evaluate.VerdictIncorrect {
		t.Errorf("expected plain incorrect, got %v", res.Verdict)
	}
	if res := evaluate.Evaluate(q, "B"); !res.Correct {
		t.Errorf("expected case-insensitive match, got %v", res.Verdict)
	}
}

func TestAffirmation_DrawsFromPool(t *testing.T) {
	for i := 0; i < 50; i++ {
		if evaluate.Affirmation() == "" {
			t.Fatal("expected non-empty affirmation")
		}
	}
}
