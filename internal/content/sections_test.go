package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/speechcoach-backend/internal/domain"
)

const wellFormed = `Here is your practice set.

## Discussion Questions (Read carefully and answer thoroughly)
1. What do you like about your hometown?
2. Would you move away?

## Key Vocabulary (Use these words in your response)
- **bustling**: full of activity

##Useful Expressions (Incorporate these phrases)
- "If I'm being honest..."

## Grammar Focus (Use these structures)
- Second conditional: "If I moved, I would..."
`

func TestSplitSectionsWellFormed(t *testing.T) {
	sc := SplitSections(wellFormed)

	assert.Equal(t, "## Discussion Questions (Read carefully and answer thoroughly)\n1. What do you like about your hometown?\n2. Would you move away?", sc.DiscussionQuestions)
	assert.Equal(t, "## Key Vocabulary (Use these words in your response)\n- **bustling**: full of activity", sc.KeyVocabulary)
	assert.Equal(t, "##Useful Expressions (Incorporate these phrases)\n- \"If I'm being honest...\"", sc.UsefulExpressions)
	assert.Equal(t, "## Grammar Focus (Use these structures)\n- Second conditional: \"If I moved, I would...\"", sc.GrammarFocus)
	assert.Equal(t, 4, sc.SectionCount())
}

func TestSplitSectionsNoLossOrDuplication(t *testing.T) {
	sc := SplitSections(wellFormed)
	joined := sc.DiscussionQuestions + sc.KeyVocabulary + sc.UsefulExpressions + sc.GrammarFocus
	for _, needle := range []string{"hometown", "bustling", "honest", "conditional"} {
		assert.Equal(t, 1, countOccurrences(joined, needle), needle)
	}
}

func TestSplitSectionsMissingHeader(t *testing.T) {
	text := "## Discussion Questions\n1. Why?\n\n## Useful Expressions\n- \"To be fair\"\n\n## Grammar Focus\n- Past simple"
	sc := SplitSections(text)

	assert.Equal(t, "## Discussion Questions\n1. Why?", sc.DiscussionQuestions)
	assert.Empty(t, sc.KeyVocabulary)
	assert.Equal(t, "No vocabulary available.", sc.Display(domain.SectionKeyVocabulary))
	assert.Equal(t, "## Useful Expressions\n- \"To be fair\"", sc.UsefulExpressions)
	assert.Equal(t, []domain.Section{domain.SectionKeyVocabulary}, MissingSections(sc))
}

func TestSplitSectionsHeaderWhitespaceSpansNewline(t *testing.T) {
	sc := SplitSections("##\nGrammar Focus\n- Passive voice")
	assert.Equal(t, "##\nGrammar Focus\n- Passive voice", sc.GrammarFocus)
}

func TestSplitSectionsIsCaseSensitive(t *testing.T) {
	sc := SplitSections("## discussion questions\n1. lower case header")
	assert.Empty(t, sc.DiscussionQuestions)
	assert.Equal(t, 0, sc.SectionCount())
}

func TestSplitSectionsEmptyText(t *testing.T) {
	sc := SplitSections("")
	require.Len(t, MissingSections(sc), 4)
	for _, s := range domain.Sections {
		assert.Equal(t, s.Placeholder(), sc.Display(s))
	}
}

func countOccurrences(s, sub string) int {
	n := 0
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			n++
		}
	}
	return n
}
