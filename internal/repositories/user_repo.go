package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/voicehire/voicehire/internal/models"
	"github.com/voicehire/voicehire/internal/utils"
)

type UserRepository interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Insert(ctx context.Context, u *models.User) error
	Save(ctx context.Context, u *models.User) error
}

type userRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	return &u, err
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := r.db.WithContext(ctx).Where("email = ?", email).Take(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	return &u, err
}

func (r *userRepo) Insert(ctx context.Context, u *models.User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *userRepo) Save(ctx context.Context, u *models.User) error {
	return r.db.WithContext(ctx).Save(u).Error
}

type UserSessionRepository interface {
	Insert(ctx context.Context, s *models.UserSession) error
	DeleteActiveByUser(ctx context.Context, userID string, now time.Time) (int64, error)
}

type userSessionRepo struct {
	db *gorm.DB
}

func NewUserSessionRepo(db *gorm.DB) UserSessionRepository {
	return &userSessionRepo{db: db}
}

func (r *userSessionRepo) Insert(ctx context.Context, s *models.UserSession) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *userSessionRepo) DeleteActiveByUser(ctx context.Context, userID string, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND expires_at > ?", userID, now).
		Delete(&models.UserSession{})
	return res.RowsAffected, res.Error
}
