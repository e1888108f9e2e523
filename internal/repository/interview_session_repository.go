package repository

import (
	"context"
	"interviewai_backend/internal/model"
	"interviewai_backend/internal/util"
	"strings"

	"gorm.io/gorm"
)

// InterviewSessionRepository 单题练习：会话、题目、回答
type InterviewSessionRepository struct {
	DB *gorm.DB
}

func NewInterviewSessionRepository(db *gorm.DB) *InterviewSessionRepository {
	return &InterviewSessionRepository{DB: db}
}

func (r *InterviewSessionRepository) CreateSession(ctx context.Context, session *model.InterviewSession) error {
	return r.DB.WithContext(ctx).Create(session).Error
}

func (r *InterviewSessionRepository) FindSessionByID(ctx context.Context, id string) (*model.InterviewSession, error) {
	var session model.InterviewSession
	if err := r.DB.WithContext(ctx).First(&session, "id = ?", id).Error; err != nil {
		return nil, notFound(err, util.ErrSessionNotFound)
	}
	return &session, nil
}

func (r *InterviewSessionRepository) CreateQuestion(ctx context.Context, question *model.InterviewQuestion) error {
	return r.DB.WithContext(ctx).Create(question).Error
}

func (r *InterviewSessionRepository) UpdateQuestion(ctx context.Context, question *model.InterviewQuestion) error {
	return r.DB.WithContext(ctx).Save(question).Error
}

func (r *InterviewSessionRepository) FindQuestionByID(ctx context.Context, id string) (*model.InterviewQuestion, error) {
	var question model.InterviewQuestion
	if err := r.DB.WithContext(ctx).First(&question, "id = ?", id).Error; err != nil {
		return nil, notFound(err, util.ErrQuestionNotFound)
	}
	return &question, nil
}

func (r *InterviewSessionRepository) FindAllQuestions(ctx context.Context) ([]model.InterviewQuestion, error) {
	var questions []model.InterviewQuestion
	err := r.DB.WithContext(ctx).Order("created_at ASC").Find(&questions).Error
	return questions, err
}

// SearchQuestions 题干包含关键字（忽略大小写）
func (r *InterviewSessionRepository) SearchQuestions(ctx context.Context, keyword string) ([]model.InterviewQuestion, error) {
	var questions []model.InterviewQuestion
	pattern := "%" + escapeLike(strings.ToLower(keyword)) + "%"
	err := r.DB.WithContext(ctx).
		Where("LOWER(question_text) LIKE ?", pattern).
		Order("created_at ASC").
		Find(&questions).Error
	return questions, err
}

func (r *InterviewSessionRepository) CreateAnswer(ctx context.Context, answer *model.InterviewAnswer) error {
	return r.DB.WithContext(ctx).Create(answer).Error
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`).Replace(s)
}
