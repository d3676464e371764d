package transcript

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/tidwall/gjson"
)

// Parsed is the normalized in-memory view of a stored transcript blob. Data
// holds the original payload so unrelated fields round-trip untouched when
// the record is rebuilt after analysis.
type Parsed struct {
	Raw                string
	Data               map[string]any
	ContentText        string
	TextCharCount      int
	WordCount          int
	HasCode            bool
	ScreenRecordingURL string
	SkippedRecording   bool
}

// NormalizeWhitespace collapses all whitespace runs (incl. non-breaking
// spaces) into single spaces and trims the result.
func NormalizeWhitespace(value string) string {
	value = strings.ReplaceAll(value, " ", " ")
	return strings.Join(strings.Fields(value), " ")
}

func countWords(value string) int {
	return len(strings.Fields(value))
}

// ParseExisting normalizes a stored transcript blob. Three shapes are
// accepted: empty (returns the zero Parsed), a JSON session payload with
// answers.text / answers.code maps keyed by question id, and legacy raw free
// text. Malformed JSON never fails; it falls through to the raw-text path.
func ParseExisting(value string) Parsed {
	if strings.TrimSpace(value) == "" {
		return Parsed{}
	}

	var payload map[string]any
	if err := json.Unmarshal([]byte(value), &payload); err != nil || payload == nil {
		normalized := NormalizeWhitespace(value)
		return Parsed{
			Raw:           value,
			ContentText:   normalized,
			TextCharCount: utf8.RuneCountInString(normalized),
			WordCount:     countWords(normalized),
		}
	}

	root := gjson.Parse(value)
	textAnswers := root.Get("answers.text")
	codeAnswers := root.Get("answers.code")
	languageSelections := root.Get("answers.languageSelections")

	// Question order drives segment labels; answers that are missing from
	// the stored order are appended after it.
	var orderedIDs []string
	seen := map[string]bool{}
	appendID := func(id string) {
		if id == "" || seen[id] {
			return
		}
		seen[id] = true
		orderedIDs = append(orderedIDs, id)
	}

	if order := root.Get("questionOrder"); order.IsArray() {
		for i, item := range order.Array() {
			switch item.Type {
			case gjson.String:
				appendID(item.String())
			case gjson.Number:
				appendID(fmt.Sprintf("question_%d", item.Int()))
			default:
				appendID(fmt.Sprintf("question_%d", i+1))
			}
		}
	}
	for _, r := range []gjson.Result{textAnswers, codeAnswers} {
		r.ForEach(func(key, _ gjson.Result) bool {
			appendID(key.String())
			return true
		})
	}

	parsed := Parsed{
		Raw:                value,
		Data:               payload,
		ScreenRecordingURL: root.Get("screenRecordingUrl").String(),
		SkippedRecording:   root.Get("skippedRecording").Bool(),
	}

	var segments []string
	for i, questionID := range orderedIDs {
		label := fmt.Sprintf("Soru %d", i+1)

		if answer := textAnswers.Get(questionID); answer.Type == gjson.String {
			if text := strings.TrimSpace(answer.String()); text != "" {
				segments = append(segments, fmt.Sprintf("%s (Metin):\n%s", label, text))
				parsed.TextCharCount += utf8.RuneCountInString(text)
				parsed.WordCount += countWords(text)
			}
		}

		if answer := codeAnswers.Get(questionID); answer.Type == gjson.String {
			if code := strings.TrimSpace(answer.String()); code != "" {
				parsed.HasCode = true
				if lang := languageSelections.Get(questionID); lang.Type == gjson.String {
					segments = append(segments, fmt.Sprintf("%s (Kod) (%s):\n%s", label, strings.ToUpper(lang.String()), code))
				} else {
					segments = append(segments, fmt.Sprintf("%s (Kod):\n%s", label, code))
				}
			}
		}
	}

	parsed.ContentText = strings.TrimSpace(strings.Join(segments, "\n\n"))

	// Legacy payloads carry the transcript directly in "content".
	if parsed.ContentText == "" {
		if content := root.Get("content"); content.Type == gjson.String {
			text := strings.TrimSpace(content.String())
			parsed.ContentText = text
			parsed.TextCharCount = utf8.RuneCountInString(text)
			parsed.WordCount = countWords(text)
		}
	}

	return parsed
}

// BuildRecord serializes the durable TranscriptRecord: the original payload
// round-tripped with content, recording metadata and the analysis timestamp
// overwritten. Content must never be empty; callers pass an explicit
// placeholder sentence when nothing was gathered.
func BuildRecord(base map[string]any, content, screenRecordingURL string, skippedRecording bool, analyzedAt time.Time) string {
	payload := map[string]any{}
	for k, v := range base {
		payload[k] = v
	}
	payload["content"] = content
	if screenRecordingURL != "" {
		payload["screenRecordingUrl"] = screenRecordingURL
	}
	payload["skippedRecording"] = skippedRecording
	payload["lastAnalyzedAt"] = analyzedAt.UTC().Format(time.RFC3339)

	encoded, err := json.Marshal(payload)
	if err != nil {
		// Only unserializable base payloads can land here; keep the
		// transcript itself rather than losing the record.
		fallback, _ := json.Marshal(map[string]any{
			"content":          content,
			"skippedRecording": skippedRecording,
			"lastAnalyzedAt":   analyzedAt.UTC().Format(time.RFC3339),
		})
		return string(fallback)
	}
	return string(encoded)
}
