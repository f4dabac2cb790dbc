package evaluation

import (
	"fmt"
	"strings"

	"github.com/yungbote/speechcoach-backend/internal/domain"
)

const TranscriptionInstruction = "Please provide a verbatim transcription of the speech in this audio file. " +
	"Transcribe exactly what you hear including any filler words, repetitions, or grammatical errors. " +
	"Do not correct mistakes. Only output the raw transcription."

var rubric = map[domain.Criterion][]string{
	domain.Pronunciation: {
		"Clarity of individual sounds and words",
		"Word stress and sentence intonation",
		"Impact of accent on intelligibility",
	},
	domain.Vocabulary: {
		"Range and precision of word choice",
		"Use of topic-specific words and idiomatic expressions",
		"Appropriateness of register",
	},
	domain.Grammar: {
		"Accuracy of verb tenses, agreement and articles",
		"Range of sentence structures",
		"Frequency and impact of errors",
	},
	domain.Fluency: {
		"Speech rate and natural rhythm",
		"Hesitations, fillers and self-corrections",
		"Ability to keep talking without long pauses",
	},
	domain.Coherence: {
		"Logical organisation of ideas",
		"Use of linking words and discourse markers",
		"Relevance to the topic",
	},
}

func spanExample(style domain.ErrorStyle, wrong, right string) string {
	return fmt.Sprintf(`<span style="%s" title="%s: %s">%s</span>`, style.CSS(), style.TitlePrefix, right, wrong)
}

// BuildEvaluationPrompt embeds the transcript verbatim in the rubric prompt.
func BuildEvaluationPrompt(transcript, topic string, durationMinutes int, difficulty domain.Difficulty) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Act as an English speech pathologist and language assessor. Evaluate the following transcript of an English learner speaking about \"%s\" for about %d minute(s). The learner's level is %s.\n\n", topic, durationMinutes, difficulty)
	b.WriteString("TRANSCRIPT:\n\"\"\"\n")
	b.WriteString(transcript)
	b.WriteString("\n\"\"\"\n\n")

	b.WriteString("Assess the speech on these five criteria. Score each from 1 (very poor) to 10 (native-like) and cite 2-3 specific excerpts from the transcript for each criterion:\n")
	for i, c := range domain.Criteria {
		fmt.Fprintf(&b, "%d. %s\n", i+1, c.Label())
		for _, point := range rubric[c] {
			fmt.Fprintf(&b, "   - %s\n", point)
		}
	}

	b.WriteString("\nIn \"transcription_with_errors\", reproduce the transcript and wrap every error in an inline HTML span. Use exactly these three styles:\n")
	examples := [][2]string{{"He go", "He goes"}, {"make a photo", "take a photo"}, {"I am agree", "I agree"}}
	for i, style := range domain.ErrorStyles {
		fmt.Fprintf(&b, "- %s: %s\n", style.Label, spanExample(style, examples[i][0], examples[i][1]))
	}

	b.WriteString(`
Then list 0-3 genuine strengths (an empty list is fine) and 2-3 concrete improvement recommendations.

Return ONLY a JSON object with this exact structure:
{
  "scores": {"pronunciation": 7, "vocabulary": 6, "grammar": 8, "fluency": 7, "coherence": 6},
  "transcription_with_errors": "transcript text with inline <span> annotations",
  "detailed_feedback": {
    "pronunciation": "analysis with cited excerpts",
    "vocabulary": "analysis with cited excerpts",
    "grammar": "analysis with cited excerpts",
    "fluency": "analysis with cited excerpts",
    "coherence": "analysis with cited excerpts"
  },
  "strengths": ["strength 1", "strength 2"],
  "improvement_recommendations": ["recommendation 1", "recommendation 2"]
}

JSON rules:
- Use double quotes for every key and string value; never single quotes
- Scores are integers from 1 to 10
- No trailing commas
- No comments
- No text, explanation or markdown before or after the JSON object`)
	return b.String()
}
