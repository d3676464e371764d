package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type CreateSessionRequest struct {
	Title         string          `json:"title"`
	MediaURL      string          `json:"media_url"`
	Transcript    string          `json:"transcript"`
	Questions     json.RawMessage `json:"questions"`
	QuestionOrder json.RawMessage `json:"question_order"`
}

type InterviewSessionDTO struct {
	ID                  uuid.UUID       `json:"id"`
	Title               string          `json:"title"`
	Status              string          `json:"status"` // e.g. "pending", "processing", "completed", "failed"
	Score               int             `json:"score"`
	Transcript          string          `json:"transcript"`
	Feedback            json.RawMessage `json:"feedback,omitempty"`
	QuestionScores      json.RawMessage `json:"question_scores,omitempty"`
	QuestionFeedback    json.RawMessage `json:"question_feedback,omitempty"`
	QuestionCorrectness json.RawMessage `json:"question_correctness,omitempty"`
	LastAnalyzedAt      *time.Time      `json:"last_analyzed_at,omitempty"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
}
