package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/voicehire/voicehire/internal/models"
	"github.com/voicehire/voicehire/internal/utils"
)

type JobDescriptionRepository interface {
	Insert(ctx context.Context, jd *models.JobDescription) error
	GetByID(ctx context.Context, id string) (*models.JobDescription, error)
}

type jobDescriptionRepo struct {
	db *gorm.DB
}

func NewJobDescriptionRepo(db *gorm.DB) JobDescriptionRepository {
	return &jobDescriptionRepo{db: db}
}

func (r *jobDescriptionRepo) Insert(ctx context.Context, jd *models.JobDescription) error {
	return r.db.WithContext(ctx).Create(jd).Error
}

func (r *jobDescriptionRepo) GetByID(ctx context.Context, id string) (*models.JobDescription, error) {
	var jd models.JobDescription
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&jd).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	return &jd, err
}

type ResumeRepository interface {
	Insert(ctx context.Context, resume *models.CandidateResume) error
	GetByID(ctx context.Context, id string) (*models.CandidateResume, error)
}

type resumeRepo struct {
	db *gorm.DB
}

func NewResumeRepo(db *gorm.DB) ResumeRepository {
	return &resumeRepo{db: db}
}

func (r *resumeRepo) Insert(ctx context.Context, resume *models.CandidateResume) error {
	return r.db.WithContext(ctx).Create(resume).Error
}

func (r *resumeRepo) GetByID(ctx context.Context, id string) (*models.CandidateResume, error) {
	var resume models.CandidateResume
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&resume).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	return &resume, err
}
