package repository

import (
	"context"
	"interviewai_backend/internal/model"
	"interviewai_backend/internal/util"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type InterviewTestRepository struct {
	DB *gorm.DB
}

func NewInterviewTestRepository(db *gorm.DB) *InterviewTestRepository {
	return &InterviewTestRepository{DB: db}
}

func (r *InterviewTestRepository) Create(ctx context.Context, test *model.InterviewTest) error {
	return r.DB.WithContext(ctx).Omit("Questions").Create(test).Error
}

// FindByID 连同作答记录一起加载，作答按题号和创建时间排序
func (r *InterviewTestRepository) FindByID(ctx context.Context, id string) (*model.InterviewTest, error) {
	var test model.InterviewTest
	err := r.DB.WithContext(ctx).
		Preload("Questions", orderedAttempts).
		First(&test, "id = ?", id).Error
	if err != nil {
		return nil, notFound(err, util.ErrTestNotFound)
	}
	return &test, nil
}

func (r *InterviewTestRepository) FindByUser(ctx context.Context, userID uint) ([]model.InterviewTest, error) {
	var tests []model.InterviewTest
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("started_at DESC").
		Find(&tests).Error
	return tests, err
}

// FindStoppedIDs 已结束测试的 ID，按结束时间排序
func (r *InterviewTestRepository) FindStoppedIDs(ctx context.Context) ([]string, error) {
	var ids []string
	err := r.DB.WithContext(ctx).
		Model(&model.InterviewTest{}).
		Where("status = ?", model.TestStopped).
		Order("ended_at ASC").
		Pluck("id", &ids).Error
	return ids, err
}

// AppendAttempt 在锁定测试行的事务内追加作答
// 未指定题号时按已有作答数量顺延
func (r *InterviewTestRepository) AppendAttempt(ctx context.Context, testID string, attempt *model.InterviewAttempt) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var test model.InterviewTest
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&test, "id = ?", testID).Error; err != nil {
			return notFound(err, util.ErrTestNotFound)
		}

		if test.IsStopped() {
			return util.ErrTestStopped
		}

		if attempt.QuestionNumber <= 0 {
			var count int64
			if err := tx.Model(&model.InterviewAttempt{}).
				Where("test_id = ?", testID).
				Count(&count).Error; err != nil {
				return err
			}
			attempt.QuestionNumber = int(count) + 1
		}

		attempt.TestID = testID
		return tx.Create(attempt).Error
	})
}

// UpdateLocked 锁定测试行并加载作答后执行 fn，fn 返回 nil 时保存测试
func (r *InterviewTestRepository) UpdateLocked(ctx context.Context, testID string, fn func(test *model.InterviewTest) error) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var test model.InterviewTest
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Preload("Questions", orderedAttempts).
			First(&test, "id = ?", testID).Error; err != nil {
			return notFound(err, util.ErrTestNotFound)
		}

		if err := fn(&test); err != nil {
			return err
		}

		return tx.Model(&test).Select("status", "final_score", "ended_at", "total_time_seconds").
			Updates(&test).Error
	})
}

func orderedAttempts(db *gorm.DB) *gorm.DB {
	return db.Order("question_number ASC").Order("created_at ASC")
}
