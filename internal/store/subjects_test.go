package store_test

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/educaprep/studyhelper/internal/domain/question"
	"github.com/educaprep/studyhelper/internal/store"
)

func newTestStore(t *testing.T) (*store.SubjectStore, string) {
	t.Helper()
	dir := t.TempDir()
	s, err := store.NewSubjectStore(dir, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	return s, dir
}

func TestLoad_MissingFileReturnsEmptyDocument(t *testing.T) {
	s, _ := newTestStore(t)

	doc := s.Load("geometry1")
	require.NotNil(t, doc)
	assert.Empty(t, doc.Sections)
}

func TestLoad_CorruptFileReturnsEmptyDocument(t *testing.T) {
	s, dir := newTestStore(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "geometry1.json"), []byte("{not json"), 0o644))

	doc := s.Load("geometry1")
	assert.Empty(t, doc.Sections)
}

func TestLoad_MinimalPlaceholderReturnsEmptyDocument(t *testing.T) {
	s, dir := newTestStore(t)
	for _, placeholder := range []string{"", "{}", "[]", "  {}  "} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "geometry1.json"), []byte(placeholder), 0o644))
		doc := s.Load("geometry1")
		assert.Empty(t, doc.Sections, "placeholder %q", placeholder)
	}
}

func TestInitialize_WritesDefaultSections(t *testing.T) {
	s, _ := newTestStore(t)

	require.NoError(t, s.Initialize("geometry1", []string{"sectionA", "sectionB"}))

	doc := s.Load("geometry1")
	require.Len(t, doc.Sections, 2)
	assert.Equal(t, "Section A", doc.Sections["sectionA"].SectionName)
	assert.Equal(t, "Section B", doc.Sections["sectionB"].SectionName)
	assert.Empty(t, doc.Sections["sectionA"].Questions)
}

func TestInitialize_NeverOverwritesExistingData(t *testing.T) {
	s, _ := newTestStore(t)

	doc := question.NewSubjectDocument()
	sec, _ := doc.EnsureSection("sectionA")
	sec.Questions = append(sec.Questions, question.Question{ID: 1, Image: "q1.png", Answer: "b"})
	require.NoError(t, s.Save("geometry1", doc))

	require.NoError(t, s.Initialize("geometry1", []string{"sectionA", "sectionB"}))

	reloaded := s.Load("geometry1")
	require.Len(t, reloaded.Sections["sectionA"].Questions, 1)
	assert.Equal(t, 1, reloaded.Sections["sectionA"].Questions[0].ID)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	s, _ := newTestStore(t)

	doc := question.NewSubjectDocument()
	sec, _ := doc.EnsureSection("sectionA")
	sec.SectionName = "Section A"
	sec.Questions = []question.Question{
		{ID: 1, Image: "q1.png", Answer: "b", Tags: []string{"multiple choice"}},
		{ID: 2, Image: "q2.png", Answer: "42", Tags: []string{"fill in"}, AnswerSheet: "s2.png"},
	}
	sec.AcedQuestions = []question.Question{
		{ID: 3, Image: "q3.png", Answer: "c", SectionName: "Section A"},
	}
	require.NoError(t, s.Save("geometry1", doc))

	got := s.Load("geometry1")
	assert.Equal(t, doc, got)
}

func TestSave_ReplacesCacheEntry(t *testing.T) {
	s, _ := newTestStore(t)

	first := question.NewSubjectDocument()
	first.EnsureSection("sectionA")
	require.NoError(t, s.Save("geometry1", first))

	second := s.Load("geometry1")
	sec := second.Sections["sectionA"]
	sec.AcedQuestions = append(sec.AcedQuestions, question.Question{ID: 9, Answer: "d"})
	require.NoError(t, s.Save("geometry1", second))

	assert.True(t, s.Load("geometry1").Sections["sectionA"].IsAced(9))
}

func TestLoad_ReturnsIndependentCopy(t *testing.T) {
	s, _ := newTestStore(t)

	doc := question.NewSubjectDocument()
	sec, _ := doc.EnsureSection("sectionA")
	sec.Questions = append(sec.Questions, question.Question{ID: 1, Answer: "b"})
	require.NoError(t, s.Save("geometry1", doc))

	copy1 := s.Load("geometry1")
	copy1.Sections["sectionA"].Questions[0].Answer = "mutated"

	copy2 := s.Load("geometry1")
	assert.Equal(t, "b", copy2.Sections["sectionA"].Questions[0].Answer)
}

func TestQuestions_DenormalizesSectionNameAndMode(t *testing.T) {
	s, _ := newTestStore(t)

	doc := question.NewSubjectDocument()
	sec, _ := doc.EnsureSection("sectionA")
	sec.SectionName = "Section A"
	sec.Questions = []question.Question{
		{ID: 1, Answer: "b", Tags: []string{"multiple choice"}},
		{ID: 2, Answer: "42", Tags: []string{"fill in the blank"}},
		{ID: 3, Answer: "hypotenuse"},
	}
	require.NoError(t, s.Save("geometry1", doc))

	qs := s.Questions("geometry1", "sectionA")
	require.Len(t, qs, 3)
	for _, q := range qs {
		assert.Equal(t, "Section A", q.SectionName)
	}
	assert.Equal(t, question.ModeMultipleChoice, qs[0].Mode)
	assert.Equal(t, question.ModeFillIn, qs[1].Mode)
	assert.Equal(t, question.ModeDefault, qs[2].Mode)
}

func TestQuestions_CreatesMissingSection(t *testing.T) {
	s, _ := newTestStore(t)
	require.NoError(t, s.Initialize("geometry1", []string{"sectionA"}))

	qs := s.Questions("geometry1", "sectionB")
	assert.Empty(t, qs)

	doc := s.Load("geometry1")
	require.Contains(t, doc.Sections, "sectionB")
}
