package repositories

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/voicehire/voicehire/internal/models"
	"github.com/voicehire/voicehire/internal/utils"
)

// SearchFilter holds the optional predicates for interview search; zero
// values mean "no filter".
type SearchFilter struct {
	CandidateName string
	Company       string
	Status        string
	DateFrom      *time.Time
	DateTo        *time.Time
}

// SearchRow is the flattened join of a session with its JD and resume.
type SearchRow struct {
	InterviewID   string    `json:"interview_id" gorm:"column:interview_id"`
	CandidateName string    `json:"candidate_name" gorm:"column:candidate_name"`
	Company       string    `json:"company" gorm:"column:company"`
	JobTitle      string    `json:"job_title" gorm:"column:job_title"`
	Status        string    `json:"status" gorm:"column:status"`
	CreatedAt     time.Time `json:"created_at" gorm:"column:created_at"`
	OverallScore  float64   `json:"overall_score" gorm:"column:overall_score"`
}

type InterviewRepository interface {
	Insert(ctx context.Context, s *models.InterviewSession) error
	GetByID(ctx context.Context, id string) (*models.InterviewSession, error)
	// GetByIDForUpdate takes a row lock; must run inside a transaction.
	GetByIDForUpdate(ctx context.Context, id string) (*models.InterviewSession, error)
	Save(ctx context.Context, s *models.InterviewSession) error
	Search(ctx context.Context, f SearchFilter) ([]SearchRow, error)
	CountByStatus(ctx context.Context, status models.InterviewStatus) (int64, error)
}

type interviewRepo struct {
	db *gorm.DB
}

func NewInterviewRepo(db *gorm.DB) InterviewRepository {
	return &interviewRepo{db: db}
}

func (r *interviewRepo) Insert(ctx context.Context, s *models.InterviewSession) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *interviewRepo) GetByID(ctx context.Context, id string) (*models.InterviewSession, error) {
	var s models.InterviewSession
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	return &s, err
}

func (r *interviewRepo) GetByIDForUpdate(ctx context.Context, id string) (*models.InterviewSession, error) {
	q := r.db.WithContext(ctx)
	// SQLite has no FOR UPDATE; its single-writer transactions serialize
	// these reads already.
	if r.db.Dialector.Name() == "postgres" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var s models.InterviewSession
	err := q.Where("id = ?", id).Take(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	return &s, err
}

func (r *interviewRepo) Save(ctx context.Context, s *models.InterviewSession) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *interviewRepo) Search(ctx context.Context, f SearchFilter) ([]SearchRow, error) {
	q := r.db.WithContext(ctx).
		Model(&models.InterviewSession{}).
		Select(`interview_sessions.id AS interview_id,
			candidate_resumes.candidate_name AS candidate_name,
			job_descriptions.company AS company,
			job_descriptions.title AS job_title,
			interview_sessions.status AS status,
			interview_sessions.created_at AS created_at,
			interview_sessions.overall_score AS overall_score`).
		Joins("JOIN candidate_resumes ON candidate_resumes.id = interview_sessions.resume_id").
		Joins("JOIN job_descriptions ON job_descriptions.id = interview_sessions.jd_id")

	if f.CandidateName != "" {
		q = q.Where("LOWER(candidate_resumes.candidate_name) LIKE ?", "%"+strings.ToLower(f.CandidateName)+"%")
	}
	if f.Company != "" {
		q = q.Where("LOWER(job_descriptions.company) LIKE ?", "%"+strings.ToLower(f.Company)+"%")
	}
	if f.Status != "" {
		q = q.Where("interview_sessions.status = ?", f.Status)
	}
	if f.DateFrom != nil {
		q = q.Where("interview_sessions.created_at >= ?", *f.DateFrom)
	}
	if f.DateTo != nil {
		q = q.Where("interview_sessions.created_at <= ?", *f.DateTo)
	}

	var rows []SearchRow
	err := q.Order("interview_sessions.created_at DESC").Scan(&rows).Error
	return rows, err
}

func (r *interviewRepo) CountByStatus(ctx context.Context, status models.InterviewStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.InterviewSession{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}
