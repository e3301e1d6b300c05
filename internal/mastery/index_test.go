package mastery_test

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/educaprep/studyhelper/internal/domain/question"
	"github.com/educaprep/studyhelper/internal/mastery"
	"github.com/educaprep/studyhelper/internal/store"
)

func newIndex(t *testing.T) (*mastery.Index, *store.SubjectStore) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s, err := store.NewSubjectStore(t.TempDir(), logger)
	require.NoError(t, err)
	return mastery.NewIndex(s, logger), s
}

func TestAce_PersistsSnapshotAndUpdatesIndex(t *testing.T) {
	ix, s := newIndex(t)

	q := question.Question{ID: 5, Image: "q5.png", Answer: "b", SectionName: "Section A"}
	require.NoError(t, ix.Ace("geometry1", "sectionA", q))

	assert.True(t, ix.IsAced("geometry1", "sectionA", 5))

	// Persisted via read-modify-write on the subject document.
	doc := s.Load("geometry1")
	require.Contains(t, doc.Sections, "sectionA")
	assert.True(t, doc.Sections["sectionA"].IsAced(5))
}

func TestAce_IdempotentOnDuplicateID(t *testing.T) {
	ix, s := newIndex(t)

	q := question.Question{ID: 5, Answer: "b"}
	require.NoError(t, ix.Ace("geometry1", "sectionA", q))
	require.NoError(t, ix.Ace("geometry1", "sectionA", q))

	assert.Len(t, ix.List("geometry1", "sectionA"), 1)
	assert.Len(t, s.Load("geometry1").Sections["sectionA"].AcedQuestions, 1)
}

func TestAce_RejectsMissingID(t *testing.T) {
	ix, s := newIndex(t)

	err := ix.Ace("geometry1", "sectionA", question.Question{Answer: "b"})
	require.ErrorIs(t, err, mastery.ErrMissingID)

	// No partial write.
	assert.Empty(t, s.Load("geometry1").Sections)
}

func TestAce_SnapshotDoesNotTrackSourceEdits(t *testing.T) {
	ix, s := newIndex(t)

	doc := question.NewSubjectDocument()
	sec, _ := doc.EnsureSection("sectionA")
	sec.Questions = []question.Question{{ID: 1, Answer: "b"}}
	require.NoError(t, s.Save("geometry1", doc))
	ix.Rebuild("geometry1")

	require.NoError(t, ix.Ace("geometry1", "sectionA", question.Question{ID: 1, Answer: "b"}))

	// Edit the source question after acing.
	edited := s.Load("geometry1")
	edited.Sections["sectionA"].Questions[0].Answer = "c"
	require.NoError(t, s.Save("geometry1", edited))

	aced := ix.List("geometry1", "sectionA")
	require.Len(t, aced, 1)
	assert.Equal(t, "b", aced[0].Answer)
}

func TestUnace_RemovesAndPersists(t *testing.T) {
	ix, s := newIndex(t)

	require.NoError(t, ix.Ace("geometry1", "sectionA", question.Question{ID: 1, Answer: "b"}))
	require.NoError(t, ix.Ace("geometry1", "sectionA", question.Question{ID: 2, Answer: "c"}))

	require.NoError(t, ix.Unace("geometry1", "sectionA", 1))

	assert.False(t, ix.IsAced("geometry1", "sectionA", 1))
	assert.True(t, ix.IsAced("geometry1", "sectionA", 2))
	assert.False(t, s.Load("geometry1").Sections["sectionA"].IsAced(1))
}

func TestUnace_AbsentIDIsNoOp(t *testing.T) {
	ix, _ := newIndex(t)
	require.NoError(t, ix.Unace("geometry1", "sectionA", 99))
}

func TestRebuild_ReplacesEntriesFromDocument(t *testing.T) {
	ix, s := newIndex(t)

	doc := question.NewSubjectDocument()
	sec, _ := doc.EnsureSection("sectionA")
	sec.AcedQuestions = []question.Question{{ID: 3, Answer: "d"}}
	require.NoError(t, s.Save("geometry1", doc))

	ix.Rebuild("geometry1")

	assert.True(t, ix.IsAced("geometry1", "sectionA", 3))
	ids := ix.AcedIDs("geometry1", []string{"sectionA", "sectionB"})
	assert.Len(t, ids, 1)
}
