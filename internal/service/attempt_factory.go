package service

import (
	"interviewai_backend/internal/model"
	"time"
)

// AttemptContext 作答所属的题目与测试上下文
type AttemptContext struct {
	UserID           uint
	Topic            string
	Difficulty       string
	Question         string
	TestID           string
	QuestionNumber   int
	AudioURL         string
	TimeTakenSeconds *int64
}

type AttemptFactory struct {
	now func() time.Time
}

func NewAttemptFactory(clock func() time.Time) *AttemptFactory {
	if clock == nil {
		clock = time.Now
	}
	return &AttemptFactory{now: clock}
}

// Build 根据评分来源生成作答记录，文本分与语音分只会填充其一
func (f *AttemptFactory) Build(c AttemptContext, answer, modelAnswer, feedback string, score model.AnswerScore) *model.InterviewAttempt {
	attempt := &model.InterviewAttempt{
		UserID:           c.UserID,
		Topic:            c.Topic,
		Difficulty:       c.Difficulty,
		Question:         c.Question,
		UserAnswer:       answer,
		ModelAnswer:      modelAnswer,
		Feedback:         feedback,
		TestID:           c.TestID,
		QuestionNumber:   c.QuestionNumber,
		AudioURL:         c.AudioURL,
		TimeTakenSeconds: c.TimeTakenSeconds,
	}
	attempt.ID = model.NewID()
	attempt.CreatedAt = f.now()
	attempt.ApplyScore(score)
	return attempt
}
