package domain

// Criterion keys are stable identifiers. Display labels are never used to derive them.
type Criterion string

const (
	Pronunciation Criterion = "pronunciation"
	Vocabulary    Criterion = "vocabulary"
	Grammar       Criterion = "grammar"
	Fluency       Criterion = "fluency"
	Coherence     Criterion = "coherence"
)

// Criteria is the fixed rubric order used for prompts, charts and breakdowns.
var Criteria = []Criterion{Pronunciation, Vocabulary, Grammar, Fluency, Coherence}

var criterionLabels = map[Criterion]string{
	Pronunciation: "Pronunciation",
	Vocabulary:    "Vocabulary",
	Grammar:       "Grammar",
	Fluency:       "Fluency",
	Coherence:     "Coherence",
}

func (c Criterion) Label() string { return criterionLabels[c] }

const (
	MinScore = 1
	MaxScore = 10
)

type Scores map[Criterion]int

type Feedback map[Criterion]string

type EvaluationRecord struct {
	Scores                     Scores   `json:"scores"`
	TranscriptionWithErrors    string   `json:"transcription_with_errors"`
	DetailedFeedback           Feedback `json:"detailed_feedback"`
	Strengths                  []string `json:"strengths"`
	ImprovementRecommendations []string `json:"improvement_recommendations"`
	RawTranscription           string   `json:"raw_transcription"`
}

type ErrorClass string

const (
	ErrorClassGrammar    ErrorClass = "grammar"
	ErrorClassVocabulary ErrorClass = "vocabulary"
	ErrorClassUsage      ErrorClass = "usage"
)

// ErrorStyle describes how one class of inline transcript error is marked up.
type ErrorStyle struct {
	Class       ErrorClass `json:"class"`
	Label       string     `json:"label"`
	TitlePrefix string     `json:"title_prefix"`
	Background  string     `json:"background"`
	Underline   string     `json:"underline"`
}

func (s ErrorStyle) CSS() string {
	return "background-color: " + s.Background + "; border-bottom: 1px dotted " + s.Underline + ";"
}

var ErrorStyles = []ErrorStyle{
	{Class: ErrorClassGrammar, Label: "Grammar errors", TitlePrefix: "Grammar correction", Background: "#ffdddd", Underline: "red"},
	{Class: ErrorClassVocabulary, Label: "Vocabulary suggestions", TitlePrefix: "Better word choice", Background: "#ffe6cc", Underline: "orange"},
	{Class: ErrorClassUsage, Label: "Unnatural expressions", TitlePrefix: "Natural expression", Background: "#e6f2ff", Underline: "blue"},
}
