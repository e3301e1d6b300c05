package question

// Question is a single image-based quiz item. Questions are authored
// externally and never mutated by the app, except for SectionName which
// is injected when the subject document is loaded.
type Question struct {
	ID          int      `json:"id"`
	Image       string   `json:"image"`
	Answer      string   `json:"answer"`
	Tags        []string `json:"tags,omitempty"`
	AnswerSheet string   `json:"answer_sheet,omitempty"`
	SectionName string   `json:"section_name,omitempty"`

	// Mode is derived from Tags once at load time.
	Mode Mode `json:"-"`
}

// Section is a named subdivision of a subject's question bank.
// AcedQuestions holds full snapshots, not references: unacing and re-acing
// a question after its source was edited does not retroactively update
// the old snapshot.
type Section struct {
	SectionName   string     `json:"section_name"`
	Questions     []Question `json:"questions"`
	AcedQuestions []Question `json:"aced_questions"`
}

// SubjectDocument is the full persisted state of one subject,
// one JSON file on disk.
type SubjectDocument struct {
	Sections map[string]*Section `json:"sections"`
}

// NewSubjectDocument returns an empty document, the recovery value for
// missing or corrupt subject files.
func NewSubjectDocument() *SubjectDocument {
	return &SubjectDocument{Sections: make(map[string]*Section)}
}

// NewSection returns an empty section with the given display name.
func NewSection(name string) *Section {
	return &Section{
		SectionName:   name,
		Questions:     []Question{},
		AcedQuestions: []Question{},
	}
}

// EnsureSection returns the section for key, creating an empty one named
// after the key if it does not exist. The second return reports whether
// the section had to be created.
func (d *SubjectDocument) EnsureSection(key string) (*Section, bool) {
	if d.Sections == nil {
		d.Sections = make(map[string]*Section)
	}
	if sec, ok := d.Sections[key]; ok {
		return sec, false
	}
	sec := NewSection(key)
	d.Sections[key] = sec
	return sec, true
}

// IsAced reports whether a question with the given id is in the
// section's aced list.
func (s *Section) IsAced(id int) bool {
	for _, q := range s.AcedQuestions {
		if q.ID == id {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the document so cached state can be
// handed out without aliasing the store's copy.
func (d *SubjectDocument) Clone() *SubjectDocument {
	out := NewSubjectDocument()
	for key, sec := range d.Sections {
		cp := &Section{
			SectionName:   sec.SectionName,
			Questions:     cloneQuestions(sec.Questions),
			AcedQuestions: cloneQuestions(sec.AcedQuestions),
		}
		out.Sections[key] = cp
	}
	return out
}

func cloneQuestions(qs []Question) []Question {
	out := make([]Question, len(qs))
	copy(out, qs)
	for i := range out {
		if qs[i].Tags != nil {
			out[i].Tags = append([]string(nil), qs[i].Tags...)
		}
	}
	return out
}
