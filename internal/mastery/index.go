package mastery

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/educaprep/studyhelper/internal/domain/question"
	"github.com/educaprep/studyhelper/internal/store"
)

// ErrMissingID means a question record without a usable id was about to
// be persisted; the save is skipped entirely.
var ErrMissingID = errors.New("question has no id")

// Index is the derived view over the subject store tracking which
// question ids are aced per subject and section. The authoritative
// persisted copy lives in the subject documents; the index is rebuilt
// from them at preload and kept in step on every ace/unace.
type Index struct {
	store  *store.SubjectStore
	logger *slog.Logger

	mu   sync.RWMutex
	aced map[string]map[string][]question.Question
}

func NewIndex(s *store.SubjectStore, logger *slog.Logger) *Index {
	return &Index{
		store:  s,
		logger: logger,
		aced:   make(map[string]map[string][]question.Question),
	}
}

// Rebuild replaces the index entries for a subject with the aced lists
// found in its document. Call after the subject has been preloaded.
func (ix *Index) Rebuild(subjectID string) {
	doc := ix.store.Load(subjectID)

	sections := make(map[string][]question.Question, len(doc.Sections))
	for key, sec := range doc.Sections {
		sections[key] = append([]question.Question(nil), sec.AcedQuestions...)
	}

	ix.mu.Lock()
	ix.aced[subjectID] = sections
	ix.mu.Unlock()
}

// IsAced reports whether the question id is aced in the given section.
func (ix *Index) IsAced(subjectID, sectionKey string, id int) bool {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	for _, q := range ix.aced[subjectID][sectionKey] {
		if q.ID == id {
			return true
		}
	}
	return false
}

// AcedIDs returns the union of aced question ids across the given
// sections of a subject.
func (ix *Index) AcedIDs(subjectID string, sectionKeys []string) map[int]struct{} {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	ids := make(map[int]struct{})
	for _, key := range sectionKeys {
		for _, q := range ix.aced[subjectID][key] {
			ids[q.ID] = struct{}{}
		}
	}
	return ids
}

// List returns the aced snapshots for one section in acing order.
func (ix *Index) List(subjectID, sectionKey string) []question.Question {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return append([]question.Question(nil), ix.aced[subjectID][sectionKey]...)
}

// Ace appends a full snapshot of the question to the section's aced
// list, persists the subject document and updates the index. Acing a
// question that is already aced is a no-op.
func (ix *Index) Ace(subjectID, sectionKey string, q question.Question) error {
	if q.ID <= 0 {
		ix.logger.Error("refusing to ace question without id", "subject", subjectID, "section", sectionKey)
		return ErrMissingID
	}

	doc := ix.store.Load(subjectID)
	sec, _ := doc.EnsureSection(sectionKey)
	if sec.IsAced(q.ID) {
		return nil
	}
	sec.AcedQuestions = append(sec.AcedQuestions, q)

	if err := ix.store.Save(subjectID, doc); err != nil {
		return err
	}

	ix.mu.Lock()
	if ix.aced[subjectID] == nil {
		ix.aced[subjectID] = make(map[string][]question.Question)
	}
	ix.aced[subjectID][sectionKey] = append(ix.aced[subjectID][sectionKey], q)
	ix.mu.Unlock()

	ix.logger.Info("question aced", "subject", subjectID, "section", sectionKey, "question_id", q.ID)
	return nil
}

// Unace removes any aced entry with the given id, persists and updates
// the index. Unacing an id that is not aced is a no-op.
func (ix *Index) Unace(subjectID, sectionKey string, id int) error {
	doc := ix.store.Load(subjectID)
	sec, ok := doc.Sections[sectionKey]
	if !ok {
		return nil
	}

	kept := sec.AcedQuestions[:0]
	removed := false
	for _, q := range sec.AcedQuestions {
		if q.ID == id {
			removed = true
			continue
		}
		kept = append(kept, q)
	}
	if !removed {
		return nil
	}
	sec.AcedQuestions = kept

	if err := ix.store.Save(subjectID, doc); err != nil {
		return err
	}

	ix.mu.Lock()
	if sections, ok := ix.aced[subjectID]; ok {
		entry := sections[sectionKey][:0]
		for _, q := range sections[sectionKey] {
			if q.ID != id {
				entry = append(entry, q)
			}
		}
		sections[sectionKey] = entry
	}
	ix.mu.Unlock()

	ix.logger.Info("question unaced", "subject", subjectID, "section", sectionKey, "question_id", id)
	return nil
}
