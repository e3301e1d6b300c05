package question_test

import (
	"testing"

	"github.com/educaprep/studyhelper/internal/domain/question"
)

func TestClassifyMode(t *testing.T) {
	cases := []struct {
		name string
		tags []string
		want question.Mode
	}{
		{"no tags", nil, question.ModeDefault},
		{"unrelated tags", []string{"algebra", "hard"}, question.ModeDefault},
		{"plain multiple choice", []string{"multiple choice"}, question.ModeMultipleChoice},
		{"hyphenated", []string{"Multiple-Choice"}, question.ModeMultipleChoice},
		{"mcq shorthand", []string{"MCQ"}, question.ModeMultipleChoice},
		{"fill in the blank", []string{"fill in the blank"}, question.ModeFillIn},
		{"fitb shorthand", []string{"FITB"}, question.ModeFillIn},
		{"fill-in with punctuation", []string{"Fill-In"}, question.ModeFillIn},
		{"first match wins", []string{"geometry", "mc", "fill in"}, question.ModeMultipleChoice},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := question.ClassifyMode(tc.tags)
			if got != tc.want {
				t.Errorf("ClassifyMode(%v) = %v, want %v", tc.tags, got, tc.want)
			}
		})
	}
}

func TestEnsureSection(t *testing.T) {
	doc := question.NewSubjectDocument()

	sec, created := doc.EnsureSection("sectionA")
	if !created {
		t.Error("expected section to be created")
	}
	if sec.SectionName != "sectionA" {
		t.Errorf("expected section name %q, got %q", "sectionA", sec.SectionName)
	}

	again, created := doc.EnsureSection("sectionA")
	if created {
		t.Error("expected existing section to be reused")
	}
	if again != sec {
		t.Error("expected the same section instance")
	}
}

func TestSectionIsAced(t *testing.T) {
	sec := question.NewSection("Section A")
	sec.AcedQuestions = append(sec.AcedQuestions, question.Question{ID: 7, Answer: "b"})

	if !sec.IsAced(7) {
		t.Error("expected question 7 to be aced")
	}
	if sec.IsAced(8) {
		t.Error("did not expect question 8 to be aced")
	}
}

func TestCloneIsDeep(t *testing.T) {
	doc := question.NewSubjectDocument()
	sec, _ := doc.EnsureSection("sectionA")
	sec.Questions = append(sec.Questions, question.Question{ID: 1, Answer: "b", Tags: []string{"mc"}})

	cp := doc.Clone()
	cp.Sections["sectionA"].Questions[0].Answer = "changed"
	cp.Sections["sectionA"].Questions[0].Tags[0] = "changed"

	if doc.Sections["sectionA"].Questions[0].Answer != "b" {
		t.Error("clone aliased the questions slice")
	}
	if doc.Sections["sectionA"].Questions[0].Tags[0] != "mc" {
		t.Error("clone aliased the tags slice")
	}
}
