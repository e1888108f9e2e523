package model

import "time"

// Summary 作答概览
type Summary struct {
	TotalAttempts int     `json:"totalAttempts"`
	AvgTextScore  float64 `json:"avgTextScore"`
	AvgVoiceScore float64 `json:"avgVoiceScore"`
}

type ProgressPoint struct {
	Date    time.Time `json:"date"`
	Score   *int      `json:"score"`
	Correct bool      `json:"correct"`
}

type Accuracy struct {
	Correct int `json:"correct"`
	Wrong   int `json:"wrong"`
}

// TopicAnalysis 按主题聚合
type TopicAnalysis struct {
	Topic           string  `json:"topic"`
	Attempts        int     `json:"attempts"`
	AvgScore        float64 `json:"avgScore"`
	FeedbackSummary string  `json:"feedbackSummary"`
}

type TopicDetail struct {
	Question    string `json:"question"`
	UserAnswer  string `json:"userAnswer"`
	ModelAnswer string `json:"modelAnswer"`
	Feedback    string `json:"feedback"`
	Score       *int   `json:"score"`
}

// SkillBreakdown 语音五维平均分
type SkillBreakdown struct {
	Content float64 `json:"content"`
	Grammar float64 `json:"grammar"`
	Fluency float64 `json:"fluency"`
	Keyword float64 `json:"keyword"`
	Clarity float64 `json:"clarity"`
}

type AttemptDetail struct {
	QuestionNumber int        `json:"questionNumber"`
	Question       string     `json:"question"`
	UserAnswer     string     `json:"userAnswer"`
	ModelAnswer    string     `json:"modelAnswer"`
	Feedback       string     `json:"feedback"`
	Score          *int       `json:"score"`
	AnswerType     AnswerType `json:"answerType"`
	AudioURL       string     `json:"audioUrl"`
	ContentScore   *int       `json:"contentScore"`
	GrammarScore   *int       `json:"grammarScore"`
	FluencyScore   *int       `json:"fluencyScore"`
	KeywordScore   *int       `json:"keywordScore"`
	ClarityScore   *int       `json:"clarityScore"`
}

// TopicTestGroup 某主题下按测试分组的复盘数据
type TopicTestGroup struct {
	TestID       string          `json:"testId"`
	AverageScore float64         `json:"averageScore"`
	Questions    []AttemptDetail `json:"questions"`
}

type PracticeItem struct {
	Question    string `json:"question"`
	ModelAnswer string `json:"modelAnswer"`
}

// StopResult 结束测试的汇总
type StopResult struct {
	FinalScore       int   `json:"finalScore"`
	TotalQuestions   int   `json:"totalQuestions"`
	TotalTimeSeconds int64 `json:"totalTimeSeconds"`
}

type AtsResult struct {
	AtsScore      int      `json:"atsScore"`
	MatchedSkills []string `json:"matchedSkills"`
	MissingSkills []string `json:"missingSkills"`
}
