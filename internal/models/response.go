package models

import (
	"time"

	"gorm.io/datatypes"
)

// One response per question per session; the composite unique index backs the
// "answered = has a response" progress calculation.
type CandidateResponse struct {
	ID                 string `gorm:"column:id;type:varchar(36);primaryKey" json:"id"`
	InterviewSessionID string `gorm:"column:interview_session_id;type:varchar(36);index:idx_response_session_question,unique;not null" json:"interview_session_id"`
	QuestionID         string `gorm:"column:question_id;type:varchar(36);index:idx_response_session_question,unique;not null" json:"question_id"`

	ResponseText     string    `gorm:"column:response_text;type:text;not null" json:"response_text"`
	ResponseAudioURL string    `gorm:"column:response_audio_url;type:varchar(512)" json:"response_audio_url,omitempty"`
	Timestamp        time.Time `gorm:"column:timestamp" json:"timestamp"`

	Score             float64        `gorm:"column:score" json:"score"`
	KeywordsMatched   datatypes.JSON `gorm:"column:keywords_matched" json:"keywords_matched,omitempty"`
	SentimentScore    *float64       `gorm:"column:sentiment_score" json:"sentiment_score,omitempty"`
	ClarityScore      float64        `gorm:"column:clarity_score" json:"clarity_score"`
	TechnicalAccuracy float64        `gorm:"column:technical_accuracy" json:"technical_accuracy"`

	AIFeedback             string `gorm:"column:ai_feedback;type:text" json:"ai_feedback,omitempty"`
	ImprovementSuggestions string `gorm:"column:improvement_suggestions;type:text" json:"improvement_suggestions,omitempty"`
}

func (CandidateResponse) TableName() string { return "candidate_responses" }
