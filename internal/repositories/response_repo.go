package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/voicehire/voicehire/internal/models"
)

type ResponseRepository interface {
	Insert(ctx context.Context, resp *models.CandidateResponse) error
	ListBySession(ctx context.Context, sessionID string) ([]models.CandidateResponse, error)
}

type responseRepo struct {
	db *gorm.DB
}

func NewResponseRepo(db *gorm.DB) ResponseRepository {
	return &responseRepo{db: db}
}

func (r *responseRepo) Insert(ctx context.Context, resp *models.CandidateResponse) error {
	return r.db.WithContext(ctx).Create(resp).Error
}

func (r *responseRepo) ListBySession(ctx context.Context, sessionID string) ([]models.CandidateResponse, error) {
	var rows []models.CandidateResponse
	err := r.db.WithContext(ctx).
		Where("interview_session_id = ?", sessionID).
		Order("timestamp ASC").
		Find(&rows).Error
	return rows, err
}
