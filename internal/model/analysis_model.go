package model

// QuestionType categorizes an interview question so the evaluator can pick
// the matching rubric emphasis.
type QuestionType string

const (
	QuestionTypeTechnical  QuestionType = "technical"
	QuestionTypeBehavioral QuestionType = "behavioral"
	QuestionTypeCase       QuestionType = "case"
	QuestionTypeLiveCoding QuestionType = "live_coding"
	QuestionTypeBugFix     QuestionType = "bug_fix"
	QuestionTypeOther      QuestionType = "other"
)

// Question is supplied by the caller; the engine does not own or persist it.
type Question struct {
	ID     string       `json:"id"`
	Prompt string       `json:"prompt"`
	Type   QuestionType `json:"type"`
}

// AnalysisInput is the orchestrator's single input contract.
type AnalysisInput struct {
	ExistingTranscript string
	MediaURL           string
	InterviewTitle     string
	Questions          []Question
	QuestionOrder      []string
}

// CategoryScores carries the four holistic rubric scores, each 0-100.
type CategoryScores struct {
	Fluency         int `json:"fluency"`
	Content         int `json:"content"`
	Professionalism int `json:"professionalism"`
	Relevance       int `json:"relevance"`
}

type Feedback struct {
	Summary      string         `json:"summary"`
	Strengths    []string       `json:"strengths"`
	Improvements []string       `json:"improvements"`
	ActionItems  []string       `json:"actionItems"`
	Categories   CategoryScores `json:"categories"`
}

// QuestionEvaluation is the outcome of one per-question judgment. A question
// that could not be evaluated still gets an entry with Correct=false and
// Score=0, so callers never see missing keys.
type QuestionEvaluation struct {
	QuestionID string `json:"questionId"`
	Correct    bool   `json:"correct"`
	Score      int    `json:"score"`
	Feedback   string `json:"feedback"`
	Details    string `json:"details"`
}

type QuestionFeedback struct {
	Feedback string `json:"feedback"`
	Details  string `json:"details"`
}

type QuestionCorrectness struct {
	Correct bool   `json:"correct"`
	Score   int    `json:"score"`
	Details string `json:"details"`
}

// AnalysisResult is the engine's only output type. Score is always present
// and in range; the question maps are nil when no question list was supplied.
type AnalysisResult struct {
	Transcript          string                         `json:"transcript"`
	Score               int                            `json:"score"`
	Feedback            Feedback                       `json:"feedback"`
	QuestionScores      map[string]int                 `json:"questionScores,omitempty"`
	QuestionFeedback    map[string]QuestionFeedback    `json:"questionFeedback,omitempty"`
	QuestionCorrectness map[string]QuestionCorrectness `json:"questionCorrectness,omitempty"`
}

// TimestampedSegment is one Whisper segment, in seconds.
type TimestampedSegment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// TranscriptionOutput is what the transcription adapter returns. Segments is
// empty when timestamps were not requested or not supported.
type TranscriptionOutput struct {
	Text     string               `json:"text"`
	Segments []TimestampedSegment `json:"segments"`
}

// HolisticEvaluation is the judge's single-pass verdict over the whole
// transcript.
type HolisticEvaluation struct {
	Transcript string
	Score      int
	Feedback   Feedback
}
