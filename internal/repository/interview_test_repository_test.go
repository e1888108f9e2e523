package repository

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"interviewai_backend/internal/model"
	"interviewai_backend/internal/util"
	"interviewai_backend/pkg/database"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB 使用临时文件库并开启外键检查，与 MySQL 的约束行为保持一致
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "interview.db") + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

func createRunningTest(t *testing.T, repo *InterviewTestRepository, userID uint) *model.InterviewTest {
	t.Helper()
	test := &model.InterviewTest{
		Topic:      "Go",
		Difficulty: "easy",
		UserID:     userID,
		Status:     model.TestRunning,
		StartedAt:  time.Now(),
	}
	require.NoError(t, repo.Create(context.Background(), test))
	return test
}

func textAttempt(userID uint, score int) *model.InterviewAttempt {
	a := &model.InterviewAttempt{UserID: userID, Topic: "Go", Question: "q", UserAnswer: "a"}
	a.ApplyScore(model.TextScore{Score: score})
	return a
}

func TestAttemptsTableHasNoTestForeignKey(t *testing.T) {
	db := newTestDB(t)
	assert.False(t, db.Migrator().HasConstraint(&model.InterviewTest{}, "Questions"))
}

func TestCreateStandAloneAttempt(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	attempts := NewInterviewAttemptRepository(db)

	require.NoError(t, attempts.Create(ctx, textAttempt(1, 7)))

	got, err := attempts.FindByUser(ctx, 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Empty(t, got[0].TestID)
	assert.Equal(t, 7, *got[0].TextScore)
}

func TestAppendAttempt_NumbersByCount(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewInterviewTestRepository(db)
	test := createRunningTest(t, repo, 1)

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.AppendAttempt(ctx, test.ID, textAttempt(1, 5)))
	}

	pinned := textAttempt(1, 9)
	pinned.QuestionNumber = 10
	require.NoError(t, repo.AppendAttempt(ctx, test.ID, pinned))

	loaded, err := repo.FindByID(ctx, test.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Questions, 4)

	numbers := make([]int, 0, len(loaded.Questions))
	for _, q := range loaded.Questions {
		assert.Equal(t, test.ID, q.TestID)
		numbers = append(numbers, q.QuestionNumber)
	}
	assert.Equal(t, []int{1, 2, 3, 10}, numbers)
}

func TestAppendAttempt_ConcurrentNumbering(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewInterviewTestRepository(db)
	test := createRunningTest(t, repo, 1)

	const workers = 8
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- repo.AppendAttempt(ctx, test.ID, textAttempt(1, 6))
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	loaded, err := repo.FindByID(ctx, test.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Questions, workers)

	seen := make(map[int]bool)
	for _, q := range loaded.Questions {
		seen[q.QuestionNumber] = true
	}
	for n := 1; n <= workers; n++ {
		assert.True(t, seen[n], "question number %d missing", n)
	}
}

func TestAppendAttempt_UnknownTest(t *testing.T) {
	repo := NewInterviewTestRepository(newTestDB(t))

	err := repo.AppendAttempt(context.Background(), "missing", textAttempt(1, 5))
	assert.ErrorIs(t, err, util.ErrTestNotFound)
}

func TestAppendAttempt_RejectedAfterStop(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewInterviewTestRepository(db)
	test := createRunningTest(t, repo, 1)
	require.NoError(t, repo.AppendAttempt(ctx, test.ID, textAttempt(1, 5)))

	require.NoError(t, repo.UpdateLocked(ctx, test.ID, func(locked *model.InterviewTest) error {
		now := time.Now()
		locked.Status = model.TestStopped
		locked.EndedAt = &now
		return nil
	}))

	err := repo.AppendAttempt(ctx, test.ID, textAttempt(1, 5))
	assert.ErrorIs(t, err, util.ErrTestStopped)

	loaded, err := repo.FindByID(ctx, test.ID)
	require.NoError(t, err)
	assert.Len(t, loaded.Questions, 1)
}

func TestUpdateLocked_RepeatedStopOverwrites(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewInterviewTestRepository(db)
	test := createRunningTest(t, repo, 1)
	require.NoError(t, repo.AppendAttempt(ctx, test.ID, textAttempt(1, 4)))

	stop := func(score *int, total int64) {
		require.NoError(t, repo.UpdateLocked(ctx, test.ID, func(locked *model.InterviewTest) error {
			assert.Len(t, locked.Questions, 1)
			now := time.Now()
			locked.Status = model.TestStopped
			locked.EndedAt = &now
			locked.FinalScore = score
			locked.TotalTimeSeconds = &total
			return nil
		}))
	}

	stop(util.IntPtr(4), 30)
	stop(util.IntPtr(8), 45)

	loaded, err := repo.FindByID(ctx, test.ID)
	require.NoError(t, err)
	assert.Equal(t, model.TestStopped, loaded.Status)
	require.NotNil(t, loaded.FinalScore)
	assert.Equal(t, 8, *loaded.FinalScore)
	assert.Equal(t, int64(45), *loaded.TotalTimeSeconds)
	assert.NotNil(t, loaded.EndedAt)

	stop(nil, 45)
	loaded, err = repo.FindByID(ctx, test.ID)
	require.NoError(t, err)
	assert.Nil(t, loaded.FinalScore)
}

func TestUpdateLocked_CallbackErrorLeavesRowUntouched(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewInterviewTestRepository(db)
	test := createRunningTest(t, repo, 1)

	err := repo.UpdateLocked(ctx, test.ID, func(locked *model.InterviewTest) error {
		locked.Status = model.TestStopped
		return util.ErrUnauthorizedTest
	})
	assert.ErrorIs(t, err, util.ErrUnauthorizedTest)

	loaded, err := repo.FindByID(ctx, test.ID)
	require.NoError(t, err)
	assert.Equal(t, model.TestRunning, loaded.Status)
}

func TestFindStoppedIDs(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewInterviewTestRepository(db)
	running := createRunningTest(t, repo, 1)
	stopped := createRunningTest(t, repo, 1)

	require.NoError(t, repo.UpdateLocked(ctx, stopped.ID, func(locked *model.InterviewTest) error {
		now := time.Now()
		locked.Status = model.TestStopped
		locked.EndedAt = &now
		return nil
	}))

	ids, err := repo.FindStoppedIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{stopped.ID}, ids)
	assert.NotContains(t, ids, running.ID)
}
