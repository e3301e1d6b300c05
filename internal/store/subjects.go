// internal/store/subjects.go
package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/educaprep/studyhelper/internal/domain/question"
)

// SubjectStore owns the per-subject JSON documents on disk and an
// in-memory cache of them. Loads fail soft: a missing, empty or corrupt
// file is treated as an empty document, never an error. Saves overwrite
// the whole file and replace the cache entry in the same critical
// section, so cache and disk never disagree persistently.
type SubjectStore struct {
	dir    string
	logger *slog.Logger

	mu    sync.RWMutex
	cache map[string]*question.SubjectDocument
}

func NewSubjectStore(dir string, logger *slog.Logger) (*SubjectStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &SubjectStore{
		dir:    dir,
		logger: logger,
		cache:  make(map[string]*question.SubjectDocument),
	}, nil
}

// Initialize writes a default document with the given empty sections if
// the subject file is missing or empty. It never overwrites an existing
// non-empty file.
func (s *SubjectStore) Initialize(subjectID string, sectionKeys []string) error {
	path := s.path(subjectID)
	if info, err := os.Stat(path); err == nil && info.Size() > 0 {
		return nil
	}

	doc := question.NewSubjectDocument()
	for _, key := range sectionKeys {
		doc.Sections[key] = question.NewSection(sectionDisplayName(key))
	}
	if err := s.Save(subjectID, doc); err != nil {
		return err
	}
	s.logger.Info("initialized subject file", "subject", subjectID, "path", path)
	return nil
}

// Preload reads every subject document into the cache. Called once at
// startup; reads during play hit the cache only.
func (s *SubjectStore) Preload(subjectIDs []string) {
	for _, id := range subjectIDs {
		doc := s.readFile(id)
		s.mu.Lock()
		s.cache[id] = doc
		s.mu.Unlock()
	}
}

// Load returns a deep copy of the subject's cached document, reading
// from disk on a cache miss. Callers mutate the copy and hand it back
// through Save (read-modify-write).
func (s *SubjectStore) Load(subjectID string) *question.SubjectDocument {
	s.mu.RLock()
	doc, ok := s.cache[subjectID]
	s.mu.RUnlock()
	if ok {
		return doc.Clone()
	}

	doc = s.readFile(subjectID)
	s.mu.Lock()
	s.cache[subjectID] = doc
	s.mu.Unlock()
	return doc.Clone()
}

// Save serializes the full document, overwrites the subject file and
// replaces the cache entry under the same lock.
func (s *SubjectStore) Save(subjectID string, doc *question.SubjectDocument) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal subject %s: %w", subjectID, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.WriteFile(s.path(subjectID), data, 0o644); err != nil {
		return fmt.Errorf("write subject %s: %w", subjectID, err)
	}
	s.cache[subjectID] = doc.Clone()
	return nil
}

// Questions returns the section's questions with section name and input
// mode denormalized onto each one. A section that does not exist yet is
// created empty and persisted, matching Initialize's defaults.
func (s *SubjectStore) Questions(subjectID, sectionKey string) []question.Question {
	doc := s.Load(subjectID)
	sec, created := doc.EnsureSection(sectionKey)
	if created {
		if err := s.Save(subjectID, doc); err != nil {
			s.logger.Error("failed to persist new section", "subject", subjectID, "section", sectionKey, "error", err)
		}
	}

	out := make([]question.Question, len(sec.Questions))
	copy(out, sec.Questions)
	for i := range out {
		out[i].SectionName = sec.SectionName
		out[i].Mode = question.ClassifyMode(out[i].Tags)
	}
	return out
}

func (s *SubjectStore) path(subjectID string) string {
	return filepath.Join(s.dir, subjectID+".json")
}

// readFile loads a subject document from disk, recovering with an empty
// document on every failure mode.
func (s *SubjectStore) readFile(subjectID string) *question.SubjectDocument {
	path := s.path(subjectID)

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("failed to read subject file", "path", path, "error", err)
		}
		return question.NewSubjectDocument()
	}

	content := strings.TrimSpace(string(data))
	if content == "" || content == "{}" || content == "[]" {
		s.logger.Info("subject file empty or minimal, using default", "path", path)
		return question.NewSubjectDocument()
	}

	doc := question.NewSubjectDocument()
	if err := json.Unmarshal(data, doc); err != nil {
		s.logger.Warn("invalid subject file, using default", "path", path, "error", err)
		return question.NewSubjectDocument()
	}
	if doc.Sections == nil {
		doc.Sections = make(map[string]*question.Section)
	}
	return doc
}

// sectionDisplayName turns a section key like "sectionA" into "Section A".
func sectionDisplayName(key string) string {
	if strings.HasPrefix(key, "section") && len(key) > len("section") {
		return "Section " + key[len("section"):]
	}
	return key
}
