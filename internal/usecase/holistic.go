package usecase

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/mulakatpro/interview-analyzer/internal/model"
	"github.com/mulakatpro/interview-analyzer/internal/transcript"
)

func buildHolisticPrompt(transcriptText, interviewTitle string) string {
	if interviewTitle == "" {
		interviewTitle = "Bilinmiyor"
	}

	return fmt.Sprintf(`Sen bir mülakat değerlendirme uzmanısın. Kullanıcıların mülakat performanslarını analiz edip yapıcı geri bildirim veriyorsun. Her zaman JSON formatında yanıt ver.

Bir mülakat performansını analiz et. Aşağıdaki kriterlere göre değerlendirme yap.

Mülakat Başlığı: %s
Transkript:
"""
%s
"""

Analiz Kuralları:
1. Adayı dört başlıkta (akıcılık, içerik, profesyonellik, cevap uygunluğu) 0-100 arasında puanla.
2. En az üç güçlü yön ve en az üç gelişim alanı belirle.
3. Adayın hemen uygulayabileceği somut aksiyon maddeleri öner (en az 2-3 adet).
4. Genel bir özet paragrafı hazırla (2-3 cümle).
5. Tonun yapıcı, destekleyici ve örnekli olsun.

Puanlama Kriterleri:
- Akıcılık (fluency): Konuşma akıcılığı, duraksamalar, kelime seçimi
- İçerik (content): Cevabın derinliği, teknik doğruluk, örnekler
- Profesyonellik (professionalism): Dil kullanımı, saygı, özgüven
- Cevap Uygunluğu (relevance): Soruya uygunluk, konu dışına çıkmama

Yanıtını KESİNLİKLE şu JSON şemasında ver:
{
  "transcript": "<temizlenmiş transkript metni>",
  "score": <0-100 arası genel puan>,
  "feedback": {
    "summary": "<2-3 cümlelik özet>",
    "strengths": ["<güçlü yön>"],
    "improvements": ["<gelişim alanı>"],
    "actionItems": ["<aksiyon maddesi>"],
    "categories": {
      "fluency": <0-100>,
      "content": <0-100>,
      "professionalism": <0-100>,
      "relevance": <0-100>
    }
  }
}`, interviewTitle, transcriptText)
}

// evaluateHolistic runs the single judgment pass over the whole transcript.
// An error here is fatal to the holistic step only; the orchestrator folds
// it into the degraded result.
func (uc *AnalysisUsecase) evaluateHolistic(ctx context.Context, transcriptText, interviewTitle string) (model.HolisticEvaluation, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, uc.cfg.HolisticTimeout)
	defer cancel()

	raw, err := uc.judge.GenerateContent(timeoutCtx, uc.cfg.HolisticModel, buildHolisticPrompt(transcriptText, interviewTitle), uc.cfg.HolisticTemperature)
	if err != nil {
		return model.HolisticEvaluation{}, err
	}

	payload := extractJSON(raw)
	if !gjson.Valid(payload) {
		return model.HolisticEvaluation{}, fmt.Errorf("judge returned unparsable response")
	}

	root := gjson.Parse(payload)
	score := root.Get("score")
	if !score.Exists() {
		return model.HolisticEvaluation{}, fmt.Errorf("judge response is missing the score field")
	}

	feedback := root.Get("feedback")
	evaluation := model.HolisticEvaluation{
		Transcript: transcript.NormalizeWhitespace(root.Get("transcript").String()),
		Score:      clampScore(score.Int()),
		Feedback: model.Feedback{
			Summary:      feedback.Get("summary").String(),
			Strengths:    stringList(feedback.Get("strengths")),
			Improvements: stringList(feedback.Get("improvements")),
			ActionItems:  stringList(feedback.Get("actionItems")),
			Categories: model.CategoryScores{
				Fluency:         clampScore(feedback.Get("categories.fluency").Int()),
				Content:         clampScore(feedback.Get("categories.content").Int()),
				Professionalism: clampScore(feedback.Get("categories.professionalism").Int()),
				Relevance:       clampScore(feedback.Get("categories.relevance").Int()),
			},
		},
	}
	return evaluation, nil
}

// extractJSON unwraps the JSON body from a judge reply that may be fenced in
// a markdown code block.
func extractJSON(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if strings.HasPrefix(trimmed, "```") {
		trimmed = strings.TrimPrefix(trimmed, "```json")
		trimmed = strings.TrimPrefix(trimmed, "```")
		if end := strings.LastIndex(trimmed, "```"); end >= 0 {
			trimmed = trimmed[:end]
		}
		return strings.TrimSpace(trimmed)
	}
	return trimmed
}

func stringList(result gjson.Result) []string {
	var values []string
	for _, item := range result.Array() {
		if text := strings.TrimSpace(item.String()); text != "" {
			values = append(values, text)
		}
	}
	return values
}

func clampScore(value int64) int {
	if value < 0 {
		return 0
	}
	if value > 100 {
		return 100
	}
	return int(value)
}

func roundBlend(holistic int, questionMean float64, holisticWeight, questionWeight float64) int {
	blended := math.Round(float64(holistic)*holisticWeight + questionMean*questionWeight)
	return clampScore(int64(blended))
}
