package model

import "time"

type TestStatus string

const (
	TestRunning TestStatus = "running"
	TestStopped TestStatus = "stopped"
)

// swagger:model InterviewTest
type InterviewTest struct {
	UUIDBase
	Topic            string             `gorm:"size:100;index" json:"topic"`
	Difficulty       string             `gorm:"size:50" json:"difficulty"`
	UserID           uint               `gorm:"index;type:bigint unsigned;not null" json:"userId"`
	Status           TestStatus         `gorm:"size:20;default:'running'" json:"status"`
	FinalScore       *int               `json:"finalScore"`
	StartedAt        time.Time          `json:"startedAt"`
	EndedAt          *time.Time         `json:"endedAt"`
	TotalTimeSeconds *int64             `json:"totalTimeSeconds"`
	Questions        []InterviewAttempt `gorm:"foreignKey:TestID;references:ID;constraint:false" json:"questions"`
}

func (InterviewTest) TableName() string {
	return "interview_tests"
}

func (t *InterviewTest) IsStopped() bool {
	return t.Status == TestStopped
}
