package transcript

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mulakatpro/interview-analyzer/internal/model"
)

func questionList(n int) []model.Question {
	questions := make([]model.Question, 0, n)
	for i := 1; i <= n; i++ {
		questions = append(questions, model.Question{ID: fmt.Sprintf("q%d", i), Prompt: fmt.Sprintf("soru %d", i)})
	}
	return questions
}

func TestSegmentByLinesEvenSplit(t *testing.T) {
	var lines []string
	for i := 1; i <= 9; i++ {
		lines = append(lines, fmt.Sprintf("satir %d", i))
	}

	segments := SegmentByLines(strings.Join(lines, "\n"), questionList(3))

	assert.Equal(t, "satir 1\nsatir 2\nsatir 3", segments["q1"])
	assert.Equal(t, "satir 4\nsatir 5\nsatir 6", segments["q2"])
	assert.Equal(t, "satir 7\nsatir 8\nsatir 9", segments["q3"])
}

func TestSegmentByLinesLastChunkAbsorbsRemainder(t *testing.T) {
	text := "a\nb\nc\nd\ne\nf\ng"

	segments := SegmentByLines(text, questionList(3))

	assert.Equal(t, "a\nb", segments["q1"])
	assert.Equal(t, "c\nd", segments["q2"])
	assert.Equal(t, "e\nf\ng", segments["q3"])
}

func TestSegmentByLinesSkipsBlankLines(t *testing.T) {
	text := "a\n\n  \nb\n\nc"

	segments := SegmentByLines(text, questionList(3))

	assert.Equal(t, "a", segments["q1"])
	assert.Equal(t, "b", segments["q2"])
	assert.Equal(t, "c", segments["q3"])
}

func TestSegmentByLinesMoreQuestionsThanLines(t *testing.T) {
	segments := SegmentByLines("tek satir", questionList(3))

	assert.Equal(t, "tek satir", segments["q1"])
	assert.Equal(t, "", segments["q2"])
	assert.Equal(t, "", segments["q3"])
}

func TestSegmentByLinesEmptyTranscript(t *testing.T) {
	segments := SegmentByLines("", questionList(2))

	assert.Equal(t, "", segments["q1"])
	assert.Equal(t, "", segments["q2"])
}

func TestSegmentByTimeWindows(t *testing.T) {
	ts := model.TranscriptionOutput{
		Text: "tam metin",
		Segments: []model.TimestampedSegment{
			{Start: 0, End: 8, Text: "ilk cevap"},
			{Start: 10, End: 19, Text: "ikinci cevap"},
			{Start: 21, End: 29, Text: "ucuncu cevap basi"},
			{Start: 29, End: 30, Text: "ucuncu cevap sonu"},
		},
	}

	segments := SegmentByTime(ts, questionList(3), nil)

	assert.Equal(t, "ilk cevap", segments["q1"])
	assert.Equal(t, "ikinci cevap", segments["q2"])
	assert.Equal(t, "ucuncu cevap basi ucuncu cevap sonu", segments["q3"])
}

func TestSegmentByTimeDropsStraddlingSegments(t *testing.T) {
	// A segment crossing a window boundary belongs to neither window. The
	// split is approximate by design; boundary speech is sacrificed rather
	// than double-counted.
	ts := model.TranscriptionOutput{
		Segments: []model.TimestampedSegment{
			{Start: 0, End: 4, Text: "ilk"},
			{Start: 4, End: 6, Text: "sinirda"},
			{Start: 6, End: 10, Text: "son"},
		},
	}

	segments := SegmentByTime(ts, questionList(2), nil)

	assert.Equal(t, "ilk", segments["q1"])
	assert.Equal(t, "son", segments["q2"])
}

func TestSegmentByTimeRespectsQuestionOrder(t *testing.T) {
	ts := model.TranscriptionOutput{
		Segments: []model.TimestampedSegment{
			{Start: 0, End: 5, Text: "once"},
			{Start: 5, End: 10, Text: "sonra"},
		},
	}

	segments := SegmentByTime(ts, questionList(2), []string{"q2", "q1"})

	assert.Equal(t, "once", segments["q2"])
	assert.Equal(t, "sonra", segments["q1"])
}

func TestSegmentByTimeEmptyWindow(t *testing.T) {
	ts := model.TranscriptionOutput{
		Segments: []model.TimestampedSegment{
			{Start: 0, End: 2, Text: "basta konusma var"},
			{Start: 8, End: 9, Text: "sonda konusma var"},
		},
	}

	segments := SegmentByTime(ts, questionList(3), nil)

	assert.Equal(t, "basta konusma var", segments["q1"])
	assert.Equal(t, "", segments["q2"])
	assert.Equal(t, "sonda konusma var", segments["q3"])
}

func TestSegmentByTimeZeroDuration(t *testing.T) {
	segments := SegmentByTime(model.TranscriptionOutput{}, questionList(2), nil)

	assert.Equal(t, "", segments["q1"])
	assert.Equal(t, "", segments["q2"])
}
