package model

import (
	"time"

	"github.com/google/uuid"
)

type InterviewSession struct {
	ID                  uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Title               string     `gorm:"type:varchar(255)" json:"title"`
	MediaURL            string     `gorm:"type:text" json:"media_url"`
	Transcript          string     `gorm:"type:text" json:"transcript"` // serialized TranscriptRecord blob
	Questions           string     `gorm:"type:jsonb" json:"questions"`
	QuestionOrder       string     `gorm:"type:jsonb" json:"question_order"`
	Status              string     `gorm:"type:varchar(50)" json:"status"` // e.g. "pending", "processing", "completed", "failed"
	Score               int        `gorm:"type:int" json:"score"`
	Feedback            string     `gorm:"type:jsonb" json:"feedback"`
	QuestionScores      string     `gorm:"type:jsonb" json:"question_scores"`
	QuestionFeedback    string     `gorm:"type:jsonb" json:"question_feedback"`
	QuestionCorrectness string     `gorm:"type:jsonb" json:"question_correctness"`
	LastAnalyzedAt      *time.Time `json:"last_analyzed_at"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

func (s *InterviewSession) TableName() string {
	return "interview_sessions"
}
