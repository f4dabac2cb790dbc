package content

import (
	"regexp"
	"strings"

	"github.com/yungbote/speechcoach-backend/internal/domain"
)

// Canonical markdown headers of a question set. The generator prompt and the splitter both use them.
const (
	HeaderDiscussionQuestions = "## Discussion Questions"
	HeaderKeyVocabulary       = "## Key Vocabulary"
	HeaderUsefulExpressions   = "## Useful Expressions"
	HeaderGrammarFocus        = "## Grammar Focus"
)

type sectionPattern struct {
	section domain.Section
	re      *regexp.Regexp
}

// Ordered as the sections appear in a well-formed reply.
var sectionPatterns = []sectionPattern{
	{domain.SectionDiscussionQuestions, headerRegexp("Discussion Questions")},
	{domain.SectionKeyVocabulary, headerRegexp("Key Vocabulary")},
	{domain.SectionUsefulExpressions, headerRegexp("Useful Expressions")},
	{domain.SectionGrammarFocus, headerRegexp("Grammar Focus")},
}

func headerRegexp(phrase string) *regexp.Regexp {
	return regexp.MustCompile(`##\s*` + regexp.QuoteMeta(phrase))
}

// SplitSections extracts the four question-set sections from generated markdown.
// Each section runs from its header to the nearest later canonical header, or the end of text,
// and keeps its header line. A section whose header is missing is left empty.
func SplitSections(text string) domain.SectionedContent {
	var out domain.SectionedContent

	starts := make([]int, len(sectionPatterns))
	for i, p := range sectionPatterns {
		starts[i] = -1
		if loc := p.re.FindStringIndex(text); loc != nil {
			starts[i] = loc[0]
		}
	}

	for i, p := range sectionPatterns {
		start := starts[i]
		if start < 0 {
			continue
		}
		end := len(text)
		for j := i + 1; j < len(sectionPatterns); j++ {
			if starts[j] > start && starts[j] < end {
				end = starts[j]
			}
		}
		out.Set(p.section, strings.TrimSpace(text[start:end]))
	}
	return out
}

// MissingSections lists the sections SplitSections could not find, in canonical order.
func MissingSections(sc domain.SectionedContent) []domain.Section {
	var missing []domain.Section
	for _, s := range domain.Sections {
		if strings.TrimSpace(sc.Get(s)) == "" {
			missing = append(missing, s)
		}
	}
	return missing
}
