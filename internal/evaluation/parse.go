package evaluation

import (
	"errors"
	"fmt"
	"html"
	"math"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/yungbote/speechcoach-backend/internal/domain"
)

var (
	ErrMalformedJSON = errors.New("evaluation reply is not valid JSON")
	ErrInvalidSchema = errors.New("evaluation reply does not match the record schema")
)

const fence = "```"

// StripCodeFence removes a markdown code fence (with or without a language tag) around text.
// Text without a fence is only trimmed, so applying it twice changes nothing.
func StripCodeFence(text string) string {
	s := strings.TrimSpace(text)
	if strings.HasPrefix(s, fence) {
		s = s[len(fence):]
		if nl := strings.IndexByte(s, '\n'); nl >= 0 && isFenceTag(s[:nl]) {
			s = s[nl+1:]
		} else if nl < 0 && isFenceTag(strings.TrimSuffix(s, fence)) {
			s = ""
		} else {
			s = stripInlineTag(s)
		}
	}
	s = strings.TrimSpace(s)
	if strings.HasSuffix(s, fence) {
		s = strings.TrimSpace(strings.TrimSuffix(s, fence))
	}
	return s
}

// stripInlineTag drops a tag glued to the payload on the fence line, as in "```json{...}```".
// The tag is only removed when a JSON object or array follows it.
func stripInlineTag(s string) string {
	i := 0
	for i < len(s) && (s[i] >= 'a' && s[i] <= 'z' || s[i] >= 'A' && s[i] <= 'Z') {
		i++
	}
	if i == 0 {
		return s
	}
	rest := strings.TrimLeft(s[i:], " \t")
	if strings.HasPrefix(rest, "{") || strings.HasPrefix(rest, "[") {
		return rest
	}
	return s
}

// isFenceTag reports whether the rest of an opening fence line is a language tag like "json".
func isFenceTag(s string) bool {
	s = strings.TrimSpace(s)
	for _, r := range s {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '-' || r == '_' || r == '+') {
			return false
		}
	}
	return true
}

var topLevelKeys = []struct {
	key  string
	kind gjson.Type
	obj  bool
	arr  bool
}{
	{key: "scores", obj: true},
	{key: "transcription_with_errors", kind: gjson.String},
	{key: "detailed_feedback", obj: true},
	{key: "strengths", arr: true},
	{key: "improvement_recommendations", arr: true},
}

// ParseEvaluation turns a raw evaluation reply into a complete record, or fails.
// transcript is attached verbatim as the record's raw transcription.
func ParseEvaluation(raw, transcript string) (domain.EvaluationRecord, error) {
	cleaned := StripCodeFence(raw)
	if cleaned == "" || !gjson.Valid(cleaned) {
		return domain.EvaluationRecord{}, &EvaluationError{Raw: raw, Err: ErrMalformedJSON}
	}
	doc := gjson.Parse(cleaned)
	if !doc.IsObject() {
		return domain.EvaluationRecord{}, &EvaluationError{Raw: raw, Err: fmt.Errorf("%w: top level is not an object", ErrInvalidSchema)}
	}
	if problems := validate(doc); len(problems) > 0 {
		return domain.EvaluationRecord{}, &EvaluationError{
			Raw: raw,
			Err: fmt.Errorf("%w: %s", ErrInvalidSchema, strings.Join(problems, "; ")),
		}
	}

	rec := domain.EvaluationRecord{
		Scores:                     domain.Scores{},
		TranscriptionWithErrors:    html.UnescapeString(doc.Get("transcription_with_errors").String()),
		DetailedFeedback:           domain.Feedback{},
		Strengths:                  stringList(doc.Get("strengths")),
		ImprovementRecommendations: stringList(doc.Get("improvement_recommendations")),
		RawTranscription:           transcript,
	}
	scores := doc.Get("scores")
	feedback := doc.Get("detailed_feedback")
	for _, c := range domain.Criteria {
		rec.Scores[c] = int(scores.Get(string(c)).Int())
		if fb := feedback.Get(string(c)); fb.Exists() {
			rec.DetailedFeedback[c] = fb.String()
		}
	}
	return rec, nil
}

func validate(doc gjson.Result) []string {
	var problems []string
	for _, k := range topLevelKeys {
		v := doc.Get(k.key)
		switch {
		case !v.Exists():
			problems = append(problems, "missing "+k.key)
		case k.obj && !v.IsObject():
			problems = append(problems, k.key+" must be an object")
		case k.arr && !v.IsArray():
			problems = append(problems, k.key+" must be an array")
		case !k.obj && !k.arr && v.Type != k.kind:
			problems = append(problems, k.key+" must be a string")
		}
	}
	scores := doc.Get("scores")
	if !scores.IsObject() {
		return problems
	}
	for _, c := range domain.Criteria {
		v := scores.Get(string(c))
		if !v.Exists() {
			problems = append(problems, "missing scores."+string(c))
			continue
		}
		if v.Type != gjson.Number || v.Num != math.Trunc(v.Num) {
			problems = append(problems, fmt.Sprintf("scores.%s must be an integer, got %s", c, v.Raw))
			continue
		}
		if v.Num < domain.MinScore || v.Num > domain.MaxScore {
			problems = append(problems, fmt.Sprintf("scores.%s out of range [%d,%d]: %s", c, domain.MinScore, domain.MaxScore, v.Raw))
		}
	}
	return problems
}

func stringList(v gjson.Result) []string {
	arr := v.Array()
	out := make([]string, 0, len(arr))
	for _, item := range arr {
		if s := strings.TrimSpace(item.String()); s != "" {
			out = append(out, s)
		}
	}
	return out
}
