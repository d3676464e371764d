package usecase

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/tidwall/gjson"

	"github.com/mulakatpro/interview-analyzer/internal/model"
)

func rubricGuidance(questionType model.QuestionType) string {
	switch questionType {
	case model.QuestionTypeTechnical:
		return "Bu teknik bir sorudur. Cevabın teknik doğruluğunu, derinliğini ve örneklerin uygunluğunu değerlendir."
	case model.QuestionTypeBehavioral:
		return "Bu davranışsal bir sorudur. Cevabın STAR metoduna (Situation, Task, Action, Result) uygunluğunu, somut örnekler içerip içermediğini değerlendir."
	case model.QuestionTypeCase:
		return "Bu bir vaka çalışması sorusudur. Cevabın analitik yaklaşımını, çözüm önerilerinin mantıklılığını ve yapılandırılmış düşünmeyi değerlendir."
	case model.QuestionTypeLiveCoding, model.QuestionTypeBugFix:
		return "Bu bir kodlama sorusudur. Cevabın kod kalitesini, algoritma doğruluğunu ve çözüm yaklaşımını değerlendir."
	default:
		return "Cevabın soruya uygunluğunu, içeriğin derinliğini ve kalitesini değerlendir."
	}
}

func buildQuestionPrompt(question model.Question, answerSegment string) string {
	questionText := question.Prompt
	if questionText == "" {
		questionText = "Soru metni bulunamadı"
	}
	questionType := question.Type
	if questionType == "" {
		questionType = model.QuestionTypeOther
	}

	return fmt.Sprintf(`Sen bir mülakat değerlendirme uzmanısın. Sorulara verilen cevapların doğruluğunu ve kalitesini objektif olarak değerlendiriyorsun. Her zaman JSON formatında yanıt ver.

Bir mülakat sorusuna verilen cevabı analiz et ve doğruluğunu değerlendir.

Soru:
"""
%s
"""

Soru Tipi: %s
%s

Adayın Cevabı (Transkript):
"""
%s
"""

Değerlendirme Kriterleri:
1. Cevap soruya doğrudan ve uygun şekilde yanıt veriyor mu?
2. Cevap teknik olarak doğru mu? (teknik sorular için)
3. Cevap yeterince detaylı ve örnekler içeriyor mu?
4. Cevap profesyonel ve yapılandırılmış mı?

JSON formatında yanıt ver:
{
  "correct": true/false,
  "score": <0-100 arası puan>,
  "feedback": "<Kısa geri bildirim (2-3 cümle)>",
  "details": "<Detaylı açıklama>"
}`, questionText, questionType, rubricGuidance(questionType), answerSegment)
}

// evaluateQuestion grades one answer segment. It never fails: answers too
// short to grade are scored zero without a judge call, and judge failures
// become zero-score entries with the reason in Details.
func (uc *AnalysisUsecase) evaluateQuestion(ctx context.Context, question model.Question, answerSegment string) model.QuestionEvaluation {
	if utf8.RuneCountInString(strings.TrimSpace(answerSegment)) < uc.cfg.MinAnswerLength {
		return model.QuestionEvaluation{
			QuestionID: question.ID,
			Correct:    false,
			Score:      0,
			Feedback:   insufficientAnswerFeedback,
			Details:    insufficientAnswerDetails,
		}
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, uc.cfg.QuestionTimeout)
	defer cancel()

	raw, err := uc.judge.GenerateContent(timeoutCtx, uc.cfg.QuestionModel, buildQuestionPrompt(question, answerSegment), uc.cfg.QuestionTemperature)
	if err != nil {
		return model.QuestionEvaluation{
			QuestionID: question.ID,
			Correct:    false,
			Score:      0,
			Feedback:   questionEvalErrorFeedback,
			Details:    err.Error(),
		}
	}

	payload := extractJSON(raw)
	if !gjson.Valid(payload) || !gjson.Get(payload, "score").Exists() {
		return model.QuestionEvaluation{
			QuestionID: question.ID,
			Correct:    false,
			Score:      0,
			Feedback:   questionEvalErrorFeedback,
			Details:    "judge returned unparsable response",
		}
	}

	root := gjson.Parse(payload)
	return model.QuestionEvaluation{
		QuestionID: question.ID,
		Correct:    root.Get("correct").Bool(),
		Score:      clampScore(root.Get("score").Int()),
		Feedback:   root.Get("feedback").String(),
		Details:    root.Get("details").String(),
	}
}

// evaluateQuestions fans the per-question judgments out concurrently and
// joins on every one of them. One question's failure never blocks or fails
// its siblings; the output is keyed by question id so completion order is
// irrelevant.
func (uc *AnalysisUsecase) evaluateQuestions(ctx context.Context, questions []model.Question, segments map[string]string) map[string]model.QuestionEvaluation {
	results := make(chan model.QuestionEvaluation, len(questions))

	for _, question := range questions {
		go func(q model.Question) {
			results <- uc.evaluateQuestion(ctx, q, segments[q.ID])
		}(question)
	}

	evaluations := make(map[string]model.QuestionEvaluation, len(questions))
	for range questions {
		evaluation := <-results
		evaluations[evaluation.QuestionID] = evaluation
	}
	return evaluations
}
