package models

import (
	"time"

	"gorm.io/datatypes"
)

// QuestionsPerInterview is fixed: a session is only usable once exactly this
// many questions exist for it, with sequence numbers 1..5.
const QuestionsPerInterview = 5

type QuestionType string

const (
	QuestionTechnical      QuestionType = "technical"
	QuestionExperience     QuestionType = "experience"
	QuestionProblemSolving QuestionType = "problem-solving"
	QuestionBehavioral     QuestionType = "behavioral"
	QuestionCulturalFit    QuestionType = "cultural-fit"
)

func ValidQuestionType(t string) bool {
	switch QuestionType(t) {
	case QuestionTechnical, QuestionExperience, QuestionProblemSolving,
		QuestionBehavioral, QuestionCulturalFit:
		return true
	}
	return false
}

type InterviewQuestion struct {
	ID                 string `gorm:"column:id;type:varchar(36);primaryKey" json:"id"`
	InterviewSessionID string `gorm:"column:interview_session_id;type:varchar(36);index:idx_question_session_seq,unique;not null" json:"interview_session_id"`

	QuestionText   string       `gorm:"column:question_text;type:text;not null" json:"question_text"`
	QuestionType   QuestionType `gorm:"column:question_type;type:varchar(50);not null" json:"question_type"`
	Category       string       `gorm:"column:category;type:varchar(100)" json:"category"`
	SequenceNumber int          `gorm:"column:sequence_number;index:idx_question_session_seq,unique;not null" json:"sequence_number"`

	IsGenerated      bool   `gorm:"column:is_generated;default:true" json:"is_generated"`
	IsModified       bool   `gorm:"column:is_modified;default:false" json:"is_modified"`
	OriginalQuestion string `gorm:"column:original_question;type:text" json:"original_question,omitempty"`

	ExpectedAnswerKeywords datatypes.JSON `gorm:"column:expected_answer_keywords" json:"expected_answer_keywords,omitempty"`
	MaxScore               float64        `gorm:"column:max_score;default:10" json:"max_score"`
	ScoringRubric          datatypes.JSON `gorm:"column:scoring_rubric" json:"scoring_rubric,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (InterviewQuestion) TableName() string { return "interview_questions" }
