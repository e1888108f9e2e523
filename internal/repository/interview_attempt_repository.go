package repository

import (
	"context"
	"interviewai_backend/internal/model"

	"gorm.io/gorm"
)

type InterviewAttemptRepository struct {
	DB *gorm.DB
}

func NewInterviewAttemptRepository(db *gorm.DB) *InterviewAttemptRepository {
	return &InterviewAttemptRepository{DB: db}
}

func (r *InterviewAttemptRepository) Create(ctx context.Context, attempt *model.InterviewAttempt) error {
	return r.DB.WithContext(ctx).Create(attempt).Error
}

func (r *InterviewAttemptRepository) FindByUser(ctx context.Context, userID uint) ([]model.InterviewAttempt, error) {
	var attempts []model.InterviewAttempt
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&attempts).Error
	return attempts, err
}

// FindByUserAndTopic 主题匹配忽略大小写
func (r *InterviewAttemptRepository) FindByUserAndTopic(ctx context.Context, userID uint, topic string) ([]model.InterviewAttempt, error) {
	var attempts []model.InterviewAttempt
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND LOWER(topic) = LOWER(?)", userID, topic).
		Order("created_at ASC").
		Find(&attempts).Error
	return attempts, err
}

// FindAll 全量作答，仅供不区分用户的统计视图使用
func (r *InterviewAttemptRepository) FindAll(ctx context.Context) ([]model.InterviewAttempt, error) {
	var attempts []model.InterviewAttempt
	err := r.DB.WithContext(ctx).Order("created_at ASC").Find(&attempts).Error
	return attempts, err
}
