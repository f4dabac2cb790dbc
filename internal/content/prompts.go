package content

import (
	"fmt"

	"github.com/yungbote/speechcoach-backend/internal/domain"
)

type difficultyProfile struct {
	Vocabulary string
	Grammar    string
	Style      string
}

var difficultyProfiles = map[domain.Difficulty]difficultyProfile{
	domain.Beginner: {
		Vocabulary: "simple everyday vocabulary",
		Grammar:    "basic sentence structures",
		Style:      "concrete topics with simple language",
	},
	domain.Intermediate: {
		Vocabulary: "moderate vocabulary with some idiomatic expressions",
		Grammar:    "varied sentence structures with some complex forms",
		Style:      "mix of concrete and abstract topics",
	},
	domain.Advanced: {
		Vocabulary: "advanced vocabulary with idiomatic expressions",
		Grammar:    "complex sentence structures and varied tenses",
		Style:      "abstract concepts and nuanced arguments",
	},
}

func profileFor(d domain.Difficulty) difficultyProfile {
	if p, ok := difficultyProfiles[d]; ok {
		return p
	}
	return difficultyProfiles[domain.Intermediate]
}

// BuildPrompt renders the generation prompt for req's content kind.
func BuildPrompt(req domain.GenerationRequest) string {
	if req.Kind() == domain.ReadingPassage {
		return passagePrompt(req)
	}
	return questionSetPrompt(req)
}

func passagePrompt(req domain.GenerationRequest) string {
	p := profileFor(req.Difficulty())
	return fmt.Sprintf(`Generate an engaging, authentic reading passage about "%s" for English language learners at the %s level.

Requirements:
- Length: approximately %d words, so that reading it aloud takes about %d minute(s)
- Vocabulary: %s
- Grammar: %s
- Style: %s
- Write natural, flowing prose with a clear beginning, middle and end
- Include a few details or examples that a learner could comment on afterwards
- Do not include a title, headings, questions or any notes; output only the passage text`,
		req.Topic(), req.Difficulty(), req.TargetWords(), req.DurationMinutes(),
		p.Vocabulary, p.Grammar, p.Style)
}

func questionSetPrompt(req domain.GenerationRequest) string {
	p := profileFor(req.Difficulty())
	return fmt.Sprintf(`Create a speaking practice set about "%s" for an English learner at the %s level who will speak for %d minute(s).

Use %s, %s, and %s.

Format the response in markdown with exactly these four sections, in this order, using these exact headers:

%s (Read carefully and answer thoroughly)
Write %d open-ended questions that invite personal stories, opinions and examples.

%s (Use these words in your response)
List 3-6 topic-related words or phrases, each in bold with a short definition.

%s (Incorporate these phrases)
List 2-5 natural expressions a fluent speaker would use when discussing this topic.

%s (Use these structures)
List 2-3 grammar patterns with one example sentence each.

Do not add any other sections, introductions or closing remarks.`,
		req.Topic(), req.Difficulty(), req.DurationMinutes(),
		p.Vocabulary, p.Grammar, p.Style,
		HeaderDiscussionQuestions, req.TargetQuestions(),
		HeaderKeyVocabulary,
		HeaderUsefulExpressions,
		HeaderGrammarFocus)
}
