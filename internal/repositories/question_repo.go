package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/voicehire/voicehire/internal/models"
	"github.com/voicehire/voicehire/internal/utils"
)

type QuestionRepository interface {
	InsertBatch(ctx context.Context, questions []models.InterviewQuestion) error
	GetByID(ctx context.Context, id string) (*models.InterviewQuestion, error)
	Save(ctx context.Context, q *models.InterviewQuestion) error
	ListBySession(ctx context.Context, sessionID string) ([]models.InterviewQuestion, error)
	CountBySession(ctx context.Context, sessionID string) (int64, error)
}

type questionRepo struct {
	db *gorm.DB
}

func NewQuestionRepo(db *gorm.DB) QuestionRepository {
	return &questionRepo{db: db}
}

func (r *questionRepo) InsertBatch(ctx context.Context, questions []models.InterviewQuestion) error {
	if len(questions) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&questions).Error
}

func (r *questionRepo) GetByID(ctx context.Context, id string) (*models.InterviewQuestion, error) {
	var q models.InterviewQuestion
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&q).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	return &q, err
}

func (r *questionRepo) Save(ctx context.Context, q *models.InterviewQuestion) error {
	return r.db.WithContext(ctx).Save(q).Error
}

func (r *questionRepo) ListBySession(ctx context.Context, sessionID string) ([]models.InterviewQuestion, error) {
	var rows []models.InterviewQuestion
	err := r.db.WithContext(ctx).
		Where("interview_session_id = ?", sessionID).
		Order("sequence_number ASC").
		Find(&rows).Error
	return rows, err
}

func (r *questionRepo) CountBySession(ctx context.Context, sessionID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.InterviewQuestion{}).
		Where("interview_session_id = ?", sessionID).
		Count(&count).Error
	return count, err
}
