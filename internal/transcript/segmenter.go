package transcript

import (
	"strings"

	"github.com/mulakatpro/interview-analyzer/internal/model"
)

// SegmentByLines splits a plain transcript into one contiguous block of
// lines per question. There are no real question-boundary markers in a
// continuous recording, so the split is proportional: equal-sized chunks
// with the last question absorbing the remainder. Questions beyond the
// available lines receive empty segments.
func SegmentByLines(text string, questions []model.Question) map[string]string {
	segments := make(map[string]string, len(questions))
	if len(questions) == 0 {
		return segments
	}

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}

	perQuestion := len(lines) / len(questions)
	if perQuestion < 1 {
		perQuestion = 1
	}

	for i, question := range questions {
		start := i * perQuestion
		end := start + perQuestion
		if i == len(questions)-1 {
			end = len(lines)
		}
		if start > len(lines) {
			start = len(lines)
		}
		if end > len(lines) {
			end = len(lines)
		}
		if end < start {
			end = start
		}
		segments[question.ID] = strings.TrimSpace(strings.Join(lines[start:end], "\n"))
	}

	return segments
}

// SegmentByTime divides the recording's duration into equal windows, one per
// question, and assigns every Whisper segment that lies fully inside a
// window to that question. A window with no segments yields an empty string;
// the evaluator later treats it as an insufficient answer, not an error.
func SegmentByTime(ts model.TranscriptionOutput, questions []model.Question, questionOrder []string) map[string]string {
	segments := make(map[string]string, len(questions))
	if len(questions) == 0 {
		return segments
	}

	orderedIDs := questionOrder
	if len(orderedIDs) == 0 {
		orderedIDs = make([]string, 0, len(questions))
		for _, q := range questions {
			orderedIDs = append(orderedIDs, q.ID)
		}
	}

	var totalDuration float64
	if len(ts.Segments) > 0 {
		totalDuration = ts.Segments[len(ts.Segments)-1].End
	}
	perQuestion := totalDuration / float64(len(questions))

	for i, questionID := range orderedIDs {
		start := float64(i) * perQuestion
		end := start + perQuestion
		if i == len(questions)-1 {
			end = totalDuration
		}

		var parts []string
		for _, seg := range ts.Segments {
			if seg.Start >= start && seg.End <= end {
				parts = append(parts, seg.Text)
			}
		}
		segments[questionID] = strings.TrimSpace(strings.Join(parts, " "))
	}

	return segments
}
