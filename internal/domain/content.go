package domain

import "strings"

type Section string

const (
	SectionDiscussionQuestions Section = "discussion_questions"
	SectionKeyVocabulary       Section = "key_vocabulary"
	SectionUsefulExpressions   Section = "useful_expressions"
	SectionGrammarFocus        Section = "grammar_focus"
)

// Sections lists the question-set sections in canonical order.
var Sections = []Section{
	SectionDiscussionQuestions,
	SectionKeyVocabulary,
	SectionUsefulExpressions,
	SectionGrammarFocus,
}

var sectionPlaceholders = map[Section]string{
	SectionDiscussionQuestions: "No questions available.",
	SectionKeyVocabulary:       "No vocabulary available.",
	SectionUsefulExpressions:   "No expressions available.",
	SectionGrammarFocus:        "No grammar focus available.",
}

func (s Section) Placeholder() string { return sectionPlaceholders[s] }

// SectionedContent holds the raw markdown of each question-set section.
// An empty field means the section was not found in the generated text.
type SectionedContent struct {
	DiscussionQuestions string `json:"discussion_questions"`
	KeyVocabulary       string `json:"key_vocabulary"`
	UsefulExpressions   string `json:"useful_expressions"`
	GrammarFocus        string `json:"grammar_focus"`
}

func (c SectionedContent) Get(s Section) string {
	switch s {
	case SectionDiscussionQuestions:
		return c.DiscussionQuestions
	case SectionKeyVocabulary:
		return c.KeyVocabulary
	case SectionUsefulExpressions:
		return c.UsefulExpressions
	case SectionGrammarFocus:
		return c.GrammarFocus
	}
	return ""
}

func (c *SectionedContent) Set(s Section, text string) {
	switch s {
	case SectionDiscussionQuestions:
		c.DiscussionQuestions = text
	case SectionKeyVocabulary:
		c.KeyVocabulary = text
	case SectionUsefulExpressions:
		c.UsefulExpressions = text
	case SectionGrammarFocus:
		c.GrammarFocus = text
	}
}

// Display returns the section text, or its "not available" placeholder when empty.
func (c SectionedContent) Display(s Section) string {
	if v := strings.TrimSpace(c.Get(s)); v != "" {
		return v
	}
	return s.Placeholder()
}

func (c SectionedContent) SectionCount() int {
	n := 0
	for _, s := range Sections {
		if strings.TrimSpace(c.Get(s)) != "" {
			n++
		}
	}
	return n
}

type StudyContent struct {
	Kind     ContentKind       `json:"kind"`
	Passage  string            `json:"passage,omitempty"`
	Sections *SectionedContent `json:"sections,omitempty"`
}

func NewPassage(text string) StudyContent {
	return StudyContent{Kind: ReadingPassage, Passage: text}
}

func NewQuestionSet(sc SectionedContent) StudyContent {
	return StudyContent{Kind: PromptQuestions, Sections: &sc}
}
