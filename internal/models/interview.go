package models

import "time"

type InterviewStatus string

const (
	StatusDraft      InterviewStatus = "draft"
	StatusReady      InterviewStatus = "ready"
	StatusInProgress InterviewStatus = "in_progress"
	StatusCompleted  InterviewStatus = "completed"
)

// CanTransition reports whether moving from s to next respects the monotonic
// draft -> ready -> in_progress -> completed order.
func (s InterviewStatus) CanTransition(next InterviewStatus) bool {
	order := map[InterviewStatus]int{
		StatusDraft:      0,
		StatusReady:      1,
		StatusInProgress: 2,
		StatusCompleted:  3,
	}
	from, ok1 := order[s]
	to, ok2 := order[next]
	return ok1 && ok2 && to == from+1
}

type InterviewSession struct {
	ID          string `gorm:"column:id;type:varchar(36);primaryKey" json:"id"`
	JDID        string `gorm:"column:jd_id;type:varchar(36);index;not null" json:"jd_id"`
	ResumeID    string `gorm:"column:resume_id;type:varchar(36);index;not null" json:"resume_id"`
	RecruiterID string `gorm:"column:recruiter_id;type:varchar(36);index;not null" json:"recruiter_id"`
	CandidateID string `gorm:"column:candidate_id;type:varchar(36);index" json:"candidate_id,omitempty"`

	Status            InterviewStatus `gorm:"column:status;type:varchar(50);default:draft" json:"status"`
	ScheduledDatetime *time.Time      `gorm:"column:scheduled_datetime" json:"scheduled_datetime,omitempty"`
	ActualStartTime   *time.Time      `gorm:"column:actual_start_time" json:"actual_start_time,omitempty"`
	ActualEndTime     *time.Time      `gorm:"column:actual_end_time" json:"actual_end_time,omitempty"`

	// NextSequence is the 1-based sequence number the next submitted answer
	// must target. It is advanced under a row lock so two concurrent
	// submissions cannot answer the same question twice.
	NextSequence int `gorm:"column:next_sequence;default:1" json:"next_sequence"`

	OverallScore       float64 `gorm:"column:overall_score;default:0" json:"overall_score"`
	TechnicalScore     float64 `gorm:"column:technical_score;default:0" json:"technical_score"`
	CommunicationScore float64 `gorm:"column:communication_score;default:0" json:"communication_score"`
	CulturalFitScore   float64 `gorm:"column:cultural_fit_score;default:0" json:"cultural_fit_score"`
	InterviewerNotes   string  `gorm:"column:interviewer_notes;type:text" json:"interviewer_notes,omitempty"`

	RecordingURL string `gorm:"column:recording_url;type:varchar(512)" json:"recording_url,omitempty"`
	Transcript   string `gorm:"column:transcript;type:text" json:"transcript,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (InterviewSession) TableName() string { return "interview_sessions" }
