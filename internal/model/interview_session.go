package model

import "time"

// InterviewSession 单题练习会话
type InterviewSession struct {
	UUIDBase
	Topic      string    `gorm:"size:100" json:"topic"`
	Difficulty string    `gorm:"size:50" json:"difficulty"`
	UserID     uint      `gorm:"index;type:bigint unsigned;not null" json:"userId"`
	StartTime  time.Time `json:"startTime"`
}

func (InterviewSession) TableName() string {
	return "interview_sessions"
}

type InterviewQuestion struct {
	UUIDBase
	SessionID    string `gorm:"index;type:varchar(36)" json:"sessionId"`
	QuestionText string `gorm:"type:text" json:"questionText"`
	ModelAnswer  string `gorm:"type:text" json:"modelAnswer"`
}

func (InterviewQuestion) TableName() string {
	return "interview_questions"
}

type InterviewAnswer struct {
	UUIDBase
	QuestionID string `gorm:"index;type:varchar(36)" json:"questionId"`
	UserAnswer string `gorm:"type:text" json:"userAnswer"`
	Score      int    `json:"score"`
	Feedback   string `gorm:"type:text" json:"feedback"`
}

func (InterviewAnswer) TableName() string {
	return "interview_answers"
}
