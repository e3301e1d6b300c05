// Command seed populates a data directory with demo subject documents
// and placeholder images so the app can be tried without a real
// question bank.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/educaprep/studyhelper/internal/assets"
	"github.com/educaprep/studyhelper/internal/domain/question"
	"github.com/educaprep/studyhelper/internal/store"
)

func main() {
	dataDir := flag.String("data", "sat_data", "directory for subject JSON files")
	assetDir := flag.String("assets", "photos", "directory for question images")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	subjects, err := store.NewSubjectStore(*dataDir, logger)
	if err != nil {
		logger.Error("failed to open data directory", "error", err)
		os.Exit(1)
	}

	if err := os.MkdirAll(*assetDir, 0o755); err != nil {
		logger.Error("failed to create asset directory", "error", err)
		os.Exit(1)
	}

	for subjectID, sections := range demoSubjects() {
		doc := question.NewSubjectDocument()
		for key, questions := range sections {
			sec, _ := doc.EnsureSection(key)
			sec.SectionName = displayName(key)
			sec.Questions = questions
			for _, q := range questions {
				writePlaceholder(logger, *assetDir, q.Image)
				if q.AnswerSheet != "" {
					writePlaceholder(logger, *assetDir, q.AnswerSheet)
				}
			}
		}
		if err := subjects.Save(subjectID, doc); err != nil {
			logger.Error("failed to write subject", "subject", subjectID, "error", err)
			os.Exit(1)
		}
		logger.Info("seeded subject", "subject", subjectID, "sections", len(sections))
	}
}

func writePlaceholder(logger *slog.Logger, dir, name string) {
	path := filepath.Join(dir, name)
	if _, err := os.Stat(path); err == nil {
		return
	}
	if err := os.WriteFile(path, assets.Placeholder(), 0o644); err != nil {
		logger.Warn("failed to write placeholder image", "image", name, "error", err)
	}
}

// displayName turns "sectionA" into "Section A".
func displayName(key string) string {
	if strings.HasPrefix(key, "section") && len(key) > len("section") {
		return "Section " + key[len("section"):]
	}
	return key
}

// demoSubjects builds two small geometry banks covering all three
// input modes.
func demoSubjects() map[string]map[string][]question.Question {
	mc := func(id int, answer string) question.Question {
		return question.Question{
			ID:     id,
			Image:  fmt.Sprintf("q%d.png", id),
			Answer: answer,
			Tags:   []string{"multiple choice"},
		}
	}
	fill := func(id int, answer string) question.Question {
		return question.Question{
			ID:          id,
			Image:       fmt.Sprintf("q%d.png", id),
			Answer:      answer,
			Tags:        []string{"fill in the blank"},
			AnswerSheet: fmt.Sprintf("q%d_sheet.png", id),
		}
	}
	plain := func(id int, answer string) question.Question {
		return question.Question{
			ID:     id,
			Image:  fmt.Sprintf("q%d.png", id),
			Answer: answer,
		}
	}

	return map[string]map[string][]question.Question{
		"geometry1": {
			"sectionA": {mc(1, "b"), mc(2, "d"), fill(3, "180")},
			"sectionB": {fill(4, "pi r squared"), plain(5, "45")},
		},
		"geometry2": {
			"sectionA": {mc(6, "a"), fill(7, "12")},
			"sectionB": {plain(8, "60"), mc(9, "c")},
			"sectionC": {fill(10, "hypotenuse")},
		},
	}
}
