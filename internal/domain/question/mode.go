package question

import "unicode"

// Mode is the input-validation variant inferred from a question's tags.
type Mode int

const (
	// ModeDefault compares trimmed input to the stored answer
	// case-insensitively, with no format gating.
	ModeDefault Mode = iota
	ModeMultipleChoice
	ModeFillIn
)

func (m Mode) String() string {
	switch m {
	case ModeMultipleChoice:
		return "multiple_choice"
	case ModeFillIn:
		return "fill_in"
	default:
		return "default"
	}
}

// Tag vocabularies, matched after case/punctuation folding.
var (
	multipleChoiceTags = map[string]struct{}{
		"multiplechoice": {},
		"multichoice":    {},
		"multiplechoise": {},
		"mcq":            {},
		"mc":             {},
		"choice":         {},
	}
	fillInTags = map[string]struct{}{
		"fillintheblank": {},
		"fillinblank":    {},
		"fillin":         {},
		"fillthegap":     {},
		"blank":          {},
		"fitb":           {},
	}
)

// ClassifyMode derives the accepted-input mode from a question's tags.
// The first tag that matches either vocabulary wins; unmatched tags fall
// back to ModeDefault.
func ClassifyMode(tags []string) Mode {
	for _, tag := range tags {
		folded := foldTag(tag)
		if _, ok := multipleChoiceTags[folded]; ok {
			return ModeMultipleChoice
		}
		if _, ok := fillInTags[folded]; ok {
			return ModeFillIn
		}
	}
	return ModeDefault
}

// foldTag lowercases and strips punctuation and whitespace so that
// "Fill-In the Blank" and "fillintheblank" compare equal.
func foldTag(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if unicode.IsSpace(r) || unicode.IsPunct(r) {
			continue
		}
		out = append(out, unicode.ToLower(r))
	}
	return string(out)
}
