package service

import (
	"context"
	"errors"
	"interviewai_backend/internal/model"
	"interviewai_backend/internal/scoring"
	"interviewai_backend/internal/util"
	"interviewai_backend/pkg/monitoring"
	"strings"
	"time"
)

type TestStore interface {
	Create(ctx context.Context, test *model.InterviewTest) error
	FindByID(ctx context.Context, id string) (*model.InterviewTest, error)
	FindByUser(ctx context.Context, userID uint) ([]model.InterviewTest, error)
	AppendAttempt(ctx context.Context, testID string, attempt *model.InterviewAttempt) error
	UpdateLocked(ctx context.Context, testID string, fn func(test *model.InterviewTest) error) error
}

type SubmitTestAnswerInput struct {
	TestID           string
	QuestionText     string
	Answer           string
	TimeTakenSeconds *int64
	// QuestionNumber 调用方给出时直接采用，不校验唯一或连续
	QuestionNumber int
}

// TestService 测试生命周期：开始、作答、结束
type TestService struct {
	tests     TestStore
	evaluator *EvaluationService
	factory   *AttemptFactory
	locker    TestLocker
	now       func() time.Time
}

func NewTestService(tests TestStore, evaluator *EvaluationService, factory *AttemptFactory, locker TestLocker) *TestService {
	if locker == nil {
		locker = NewMemoryLocker()
	}
	return &TestService{
		tests:     tests,
		evaluator: evaluator,
		factory:   factory,
		locker:    locker,
		now:       factory.now,
	}
}

func (s *TestService) Start(ctx context.Context, topic, difficulty string, ownerID uint) (*model.InterviewTest, error) {
	test := &model.InterviewTest{
		Topic:      topic,
		Difficulty: difficulty,
		UserID:     ownerID,
		Status:     model.TestRunning,
		StartedAt:  s.now(),
		Questions:  []model.InterviewAttempt{},
	}
	if err := s.tests.Create(ctx, test); err != nil {
		return nil, err
	}

	monitoring.TestEvents.WithLabelValues("started").Inc()
	return test, nil
}

func (s *TestService) SubmitAnswer(ctx context.Context, in SubmitTestAnswerInput, callerID uint) (TextEvaluation, error) {
	test, err := s.writableTest(ctx, in.TestID, callerID)
	if err != nil {
		return TextEvaluation{}, err
	}

	if strings.TrimSpace(in.Answer) == "" {
		return TextEvaluation{}, util.ErrEmptyAnswer
	}

	eval := s.evaluator.EvaluateText(ctx, in.QuestionText, in.Answer)

	attempt := s.factory.Build(AttemptContext{
		UserID:           callerID,
		Topic:            test.Topic,
		Difficulty:       test.Difficulty,
		Question:         in.QuestionText,
		TestID:           test.ID,
		QuestionNumber:   in.QuestionNumber,
		TimeTakenSeconds: in.TimeTakenSeconds,
	}, in.Answer, eval.ModelAnswer, eval.Feedback, model.TextScore{Score: eval.Score})

	if err := s.appendAttempt(ctx, test.ID, attempt); err != nil {
		return TextEvaluation{}, err
	}

	monitoring.TestEvents.WithLabelValues("answered").Inc()
	return eval, nil
}

// Stop 可重复调用，每次按当前作答重新计算并覆盖结果
func (s *TestService) Stop(ctx context.Context, testID string, callerID uint) (model.StopResult, error) {
	unlock, err := s.locker.Lock(ctx, testID)
	if err != nil {
		return model.StopResult{}, err
	}
	defer unlock()

	var result model.StopResult
	err = s.tests.UpdateLocked(ctx, testID, func(test *model.InterviewTest) error {
		if test.UserID != callerID {
			return util.ErrUnauthorizedTest
		}

		result = Summarize(test.Questions)
		endedAt := s.now()
		total := result.TotalTimeSeconds

		test.Status = model.TestStopped
		test.FinalScore = util.IntPtr(result.FinalScore)
		test.EndedAt = &endedAt
		test.TotalTimeSeconds = &total
		return nil
	})
	if err != nil {
		return model.StopResult{}, err
	}

	monitoring.TestEvents.WithLabelValues("stopped").Inc()
	return result, nil
}

// Recompute 按当前作答重算已结束测试的最终分，不改变结束时间；测试未结束时返回 false
func (s *TestService) Recompute(ctx context.Context, testID string) (bool, error) {
	unlock, err := s.locker.Lock(ctx, testID)
	if err != nil {
		return false, err
	}
	defer unlock()

	changed := false
	err = s.tests.UpdateLocked(ctx, testID, func(test *model.InterviewTest) error {
		if !test.IsStopped() {
			return nil
		}
		result := Summarize(test.Questions)
		total := result.TotalTimeSeconds
		if test.FinalScore != nil && *test.FinalScore == result.FinalScore &&
			test.TotalTimeSeconds != nil && *test.TotalTimeSeconds == total {
			return nil
		}
		test.FinalScore = util.IntPtr(result.FinalScore)
		test.TotalTimeSeconds = &total
		changed = true
		return nil
	})
	return changed, err
}

func (s *TestService) Get(ctx context.Context, testID string, callerID uint) (*model.InterviewTest, error) {
	test, err := s.tests.FindByID(ctx, testID)
	if err != nil {
		return nil, err
	}
	if test.UserID != callerID {
		return nil, util.ErrUnauthorizedTest
	}
	return test, nil
}

func (s *TestService) ListMine(ctx context.Context, ownerID uint) ([]model.InterviewTest, error) {
	return s.tests.FindByUser(ctx, ownerID)
}

// ResolveTarget 校验作答要挂载的测试：不存在时返回 false，存在则必须属于调用者且未结束
func (s *TestService) ResolveTarget(ctx context.Context, testID string, callerID uint) (*model.InterviewTest, bool, error) {
	if testID == "" {
		return nil, false, nil
	}
	test, err := s.writableTest(ctx, testID, callerID)
	if errors.Is(err, util.ErrTestNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return test, true, nil
}

// Attach 将已构建的作答追加到测试
func (s *TestService) Attach(ctx context.Context, testID string, attempt *model.InterviewAttempt) error {
	return s.appendAttempt(ctx, testID, attempt)
}

func (s *TestService) writableTest(ctx context.Context, testID string, callerID uint) (*model.InterviewTest, error) {
	test, err := s.tests.FindByID(ctx, testID)
	if err != nil {
		return nil, err
	}
	if test.UserID != callerID {
		return nil, util.ErrUnauthorizedTest
	}
	if test.IsStopped() {
		return nil, util.ErrTestStopped
	}
	return test, nil
}

func (s *TestService) appendAttempt(ctx context.Context, testID string, attempt *model.InterviewAttempt) error {
	unlock, err := s.locker.Lock(ctx, testID)
	if err != nil {
		return err
	}
	defer unlock()

	return s.tests.AppendAttempt(ctx, testID, attempt)
}

// Summarize 计算结束测试的汇总：最终分为有效分均值四舍五入
func Summarize(attempts []model.InterviewAttempt) model.StopResult {
	var (
		scores []int
		total  int64
	)
	for _, a := range attempts {
		if score := scoring.EffectiveScore(a); score != nil {
			scores = append(scores, *score)
		}
		if a.TimeTakenSeconds != nil {
			total += *a.TimeTakenSeconds
		}
	}

	return model.StopResult{
		FinalScore:       scoring.RoundMean(scores),
		TotalQuestions:   len(attempts),
		TotalTimeSeconds: total,
	}
}
