package usecase

import "github.com/mulakatpro/interview-analyzer/internal/model"

// Fixed user-facing sentences. The UI never special-cases "no data"; it
// always receives this well-formed shape with score 0.
const (
	noAnswerContent     = "Yanıt kaydı bulunamadı. Kaydı başlattığınızdan ve soruları yanıtladığınızdan emin olun."
	noTranscriptContent = "Transkript oluşturulamadı. Lütfen daha sonra tekrar deneyin."

	insufficientAnswerFeedback = "Bu soruya yeterli cevap verilmemiş."
	insufficientAnswerDetails  = "Transkriptte bu soruya ait yeterli içerik bulunamadı."
	questionEvalErrorFeedback  = "Analiz sırasında bir hata oluştu."
)

// emptyFeedback is returned whenever there is no gradable content at all.
func emptyFeedback() model.Feedback {
	return model.Feedback{
		Summary: "Mülakat sırasında değerlendirilebilecek düzeyde sesli ya da yazılı yanıt bulunamadı.",
		Strengths: []string{
			"Oturumu başlatarak mülakat pratiği için ilk adımı attınız.",
			"Teknik ortamı test etmek için oturum açmanız hazırlık alışkanlığı kazandırır.",
			"Hazırlık sürecinizi sürdürmeniz motivasyonunuzu gösteriyor.",
		},
		Improvements: []string{
			"Soruları yüksek sesle veya ayrıntılı yazılı yanıtlarla cevaplayın.",
			"Kamera ve mikrofon izinlerini kontrol edip kaydı başlattığınızdan emin olun.",
			"Her soru için düşüncelerinizi yapılandırıp örneklerle açıklayın.",
		},
		ActionItems: []string{
			"Bir sonraki oturumdan önce mikrofon/kamera testleri yapın.",
			"Sorulara sesli yanıt vererek en az 2-3 dakikalık açıklamalar yapmayı hedefleyin.",
			"Yanıtlarınızı STAR metoduna göre planlayıp prova edin.",
		},
		Categories: model.CategoryScores{},
	}
}

// errorFeedback is the template with the failure reason surfaced in the
// summary so a failed analysis is visible, not silent.
func errorFeedback(reason string) model.Feedback {
	feedback := emptyFeedback()
	feedback.Summary = "Analiz şu anda tamamlanamadı: " + reason + ". Lütfen daha sonra tekrar deneyin veya yöneticiye başvurun."
	return feedback
}
