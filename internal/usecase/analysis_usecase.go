package usecase

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/mulakatpro/interview-analyzer/internal/config"
	"github.com/mulakatpro/interview-analyzer/internal/model"
	"github.com/mulakatpro/interview-analyzer/internal/service"
	"github.com/mulakatpro/interview-analyzer/internal/transcript"
)

// SessionStore is the persistence boundary, satisfied by
// repository.InterviewRepository.
type SessionStore interface {
	Create(session *model.InterviewSession) error
	Update(session *model.InterviewSession) error
	FindByID(id string) (*model.InterviewSession, error)
	List(page, pageSize int) ([]model.InterviewSession, int64, error)
}

type AnalysisUsecase struct {
	cfg         *config.AnalysisConfig
	judge       service.JudgeServiceInterface
	transcriber service.TranscriberInterface
	sessionRepo SessionStore
}

func NewAnalysisUsecase(cfg *config.AnalysisConfig, judge service.JudgeServiceInterface, transcriber service.TranscriberInterface, sessionRepo SessionStore) *AnalysisUsecase {
	if cfg == nil {
		cfg = config.DefaultAnalysisConfig()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &AnalysisUsecase{cfg: cfg, judge: judge, transcriber: transcriber, sessionRepo: sessionRepo}
}

// Analyze runs the whole pipeline: normalize the stored transcript, fill it
// from the recording when it is too thin, gate on the content threshold,
// judge holistically, judge per question, blend. Every input combination,
// including all-empty, yields a well-formed result. Degraded paths are
// ordinary return values, not errors.
func (uc *AnalysisUsecase) Analyze(ctx context.Context, input model.AnalysisInput) model.AnalysisResult {
	parsed := transcript.ParseExisting(input.ExistingTranscript)
	skippedRecording := parsed.SkippedRecording || input.MediaURL == ""

	// No judge, no analysis. Degrade to the error template instead of
	// panicking so the caller still gets a usable record.
	if uc.judge == nil {
		content := parsed.ContentText
		if content == "" {
			content = noTranscriptContent
		}
		return model.AnalysisResult{
			Transcript: transcript.BuildRecord(parsed.Data, content, parsed.ScreenRecordingURL, skippedRecording, uc.cfg.Now()),
			Score:      0,
			Feedback:   errorFeedback("AI servisi devre dışı. Lütfen yöneticiye başvurun."),
		}
	}

	combined := parsed.ContentText
	var timestamped *model.TranscriptionOutput

	// The stored answers alone may be too thin to grade; pull a transcript
	// from the recording before giving up. Timestamps are only worth paying
	// for when there are questions to segment against.
	if utf8.RuneCountInString(combined) < uc.cfg.MinCharThreshold && input.MediaURL != "" && uc.transcriber != nil {
		transcribed := uc.transcriber.Transcribe(ctx, input.MediaURL, len(input.Questions) > 0)
		switch {
		case transcribed == nil:
			log.Println("No media transcript available, continuing with written answers")
		case len(transcribed.Segments) > 0:
			timestamped = transcribed
			if transcribed.Text != "" {
				combined = transcribed.Text
			}
		default:
			parts := []string{}
			for _, part := range []string{combined, transcribed.Text} {
				if part != "" {
					parts = append(parts, part)
				}
			}
			combined = strings.Join(parts, "\n\n")
		}
	}

	cleaned := transcript.NormalizeWhitespace(combined)
	wordCount := len(strings.Fields(cleaned))
	charCount := utf8.RuneCountInString(cleaned)
	hasMeaningfulContent := charCount >= uc.cfg.MinCharThreshold || wordCount >= uc.cfg.MinWordThreshold

	if !hasMeaningfulContent {
		content := cleaned
		if content == "" {
			content = noAnswerContent
		}
		return model.AnalysisResult{
			Transcript: transcript.BuildRecord(parsed.Data, content, parsed.ScreenRecordingURL, skippedRecording, uc.cfg.Now()),
			Score:      0,
			Feedback:   emptyFeedback(),
		}
	}

	holistic, err := uc.evaluateHolistic(ctx, cleaned, input.InterviewTitle)
	if err != nil {
		log.Printf("Holistic evaluation failed: %v", err)
		content := parsed.ContentText
		if content == "" {
			content = noTranscriptContent
		}
		return model.AnalysisResult{
			Transcript: transcript.BuildRecord(parsed.Data, content, parsed.ScreenRecordingURL, skippedRecording, uc.cfg.Now()),
			Score:      0,
			Feedback:   errorFeedback(err.Error()),
		}
	}

	result := model.AnalysisResult{
		Score:    holistic.Score,
		Feedback: holistic.Feedback,
	}

	if len(input.Questions) > 0 {
		// Line division needs the un-collapsed text; cleaned has its
		// newlines folded away for the judge prompt.
		var segments map[string]string
		if timestamped != nil {
			segments = transcript.SegmentByTime(*timestamped, input.Questions, input.QuestionOrder)
		} else {
			segments = transcript.SegmentByLines(combined, input.Questions)
		}

		evaluations := uc.evaluateQuestions(ctx, input.Questions, segments)

		result.QuestionScores = make(map[string]int, len(evaluations))
		result.QuestionFeedback = make(map[string]model.QuestionFeedback, len(evaluations))
		result.QuestionCorrectness = make(map[string]model.QuestionCorrectness, len(evaluations))
		var total int
		for id, evaluation := range evaluations {
			result.QuestionScores[id] = evaluation.Score
			result.QuestionFeedback[id] = model.QuestionFeedback{Feedback: evaluation.Feedback, Details: evaluation.Details}
			result.QuestionCorrectness[id] = model.QuestionCorrectness{Correct: evaluation.Correct, Score: evaluation.Score, Details: evaluation.Details}
			total += evaluation.Score
		}

		if len(evaluations) > 0 {
			mean := float64(total) / float64(len(evaluations))
			result.Score = roundBlend(holistic.Score, mean, uc.cfg.HolisticWeight, uc.cfg.QuestionWeight)
		}
	}

	finalText := holistic.Transcript
	if finalText == "" {
		finalText = cleaned
	}
	if finalText == "" {
		finalText = noTranscriptContent
	}
	result.Transcript = transcript.BuildRecord(parsed.Data, finalText, parsed.ScreenRecordingURL, skippedRecording, uc.cfg.Now())

	return result
}

// AnalyzeSession runs Analyze for a stored session and persists the outcome.
// Re-invocation simply overwrites the previous result; there is no history.
func (uc *AnalysisUsecase) AnalyzeSession(ctx context.Context, session *model.InterviewSession) error {
	input := model.AnalysisInput{
		ExistingTranscript: session.Transcript,
		MediaURL:           session.MediaURL,
		InterviewTitle:     session.Title,
	}

	if session.Questions != "" {
		if err := json.Unmarshal([]byte(session.Questions), &input.Questions); err != nil {
			log.Printf("Session %s has malformed questions payload: %v", session.ID, err)
		}
	}
	if session.QuestionOrder != "" {
		if err := json.Unmarshal([]byte(session.QuestionOrder), &input.QuestionOrder); err != nil {
			log.Printf("Session %s has malformed question order payload: %v", session.ID, err)
		}
	}

	result := uc.Analyze(ctx, input)

	analyzedAt := uc.cfg.Now()
	session.Transcript = result.Transcript
	session.Score = result.Score
	session.Feedback = marshalJSON(result.Feedback)
	session.QuestionScores = marshalJSON(result.QuestionScores)
	session.QuestionFeedback = marshalJSON(result.QuestionFeedback)
	session.QuestionCorrectness = marshalJSON(result.QuestionCorrectness)
	session.LastAnalyzedAt = &analyzedAt
	session.Status = "completed"

	if err := uc.sessionRepo.Update(session); err != nil {
		return err
	}
	return nil
}

// Submit marks the session as processing and runs the analysis in the
// background; callers poll the session for the result.
func (uc *AnalysisUsecase) Submit(session *model.InterviewSession) error {
	session.Status = "processing"
	if err := uc.sessionRepo.Update(session); err != nil {
		return err
	}

	// The caller keeps reading its session for the response; the analysis
	// mutates a copy and persists that.
	background := *session
	go func() {
		if err := uc.AnalyzeSession(context.Background(), &background); err != nil {
			log.Printf("Session %s analysis could not be stored: %v", background.ID, err)
			background.Status = "failed"
			if updateErr := uc.sessionRepo.Update(&background); updateErr != nil {
				log.Printf("Session %s status update failed: %v", background.ID, updateErr)
			}
		}
	}()

	return nil
}

func (uc *AnalysisUsecase) GetSession(id string) (*model.InterviewSession, error) {
	return uc.sessionRepo.FindByID(id)
}

func (uc *AnalysisUsecase) ListSessions(page, pageSize int) ([]model.InterviewSession, int64, error) {
	return uc.sessionRepo.List(page, pageSize)
}

func (uc *AnalysisUsecase) CreateSession(session *model.InterviewSession) error {
	session.Status = "pending"
	return uc.sessionRepo.Create(session)
}

// marshalJSON always yields valid JSON so jsonb columns accept the value.
func marshalJSON(value any) string {
	encoded, err := json.Marshal(value)
	if err != nil {
		return "null"
	}
	return string(encoded)
}
