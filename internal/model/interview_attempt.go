package model

// InterviewAttempt 一次作答记录，TextScore 与 VoiceScore 有且只有一个
// swagger:model InterviewAttempt
type InterviewAttempt struct {
	UUIDBase
	UserID           uint       `gorm:"index;type:bigint unsigned;not null" json:"userId"`
	Topic            string     `gorm:"size:100;index" json:"topic"`
	Difficulty       string     `gorm:"size:50" json:"difficulty"`
	Question         string     `gorm:"type:text" json:"question"`
	UserAnswer       string     `gorm:"type:text" json:"userAnswer"`
	ModelAnswer      string     `gorm:"type:text" json:"modelAnswer"`
	Feedback         string     `gorm:"type:text" json:"feedback"`
	AnswerType       AnswerType `gorm:"size:10" json:"answerType"`
	TestID           string     `gorm:"index;type:varchar(36)" json:"testId"`
	QuestionNumber   int        `gorm:"default:0" json:"questionNumber"`
	TextScore        *int       `json:"textScore"`
	VoiceScore       *int       `json:"voiceScore"`
	ContentScore     *int       `json:"contentScore"`
	GrammarScore     *int       `json:"grammarScore"`
	FluencyScore     *int       `json:"fluencyScore"`
	KeywordScore     *int       `json:"keywordScore"`
	ClarityScore     *int       `json:"clarityScore"`
	AudioURL         string     `gorm:"size:255" json:"audioUrl,omitempty"`
	TimeTakenSeconds *int64     `json:"timeTakenSeconds"`
}

func (InterviewAttempt) TableName() string {
	return "interview_attempts"
}

// Score 从持久化字段还原评分来源，未评分时返回 nil
func (a *InterviewAttempt) Score() AnswerScore {
	if a.VoiceScore != nil {
		return VoiceScore{
			Content: deref(a.ContentScore),
			Grammar: deref(a.GrammarScore),
			Fluency: deref(a.FluencyScore),
			Keyword: deref(a.KeywordScore),
			Clarity: deref(a.ClarityScore),
		}
	}
	if a.TextScore != nil {
		return TextScore{Score: *a.TextScore}
	}
	return nil
}

// ApplyScore 按评分来源写入对应字段并清空另一类字段
func (a *InterviewAttempt) ApplyScore(score AnswerScore) {
	a.TextScore, a.VoiceScore = nil, nil
	a.ContentScore, a.GrammarScore, a.FluencyScore, a.KeywordScore, a.ClarityScore = nil, nil, nil, nil, nil

	switch s := score.(type) {
	case TextScore:
		a.AnswerType = AnswerText
		a.TextScore = intPtr(s.Score)
	case VoiceScore:
		a.AnswerType = AnswerVoice
		a.VoiceScore = intPtr(s.Overall())
		a.ContentScore = intPtr(s.Content)
		a.GrammarScore = intPtr(s.Grammar)
		a.FluencyScore = intPtr(s.Fluency)
		a.KeywordScore = intPtr(s.Keyword)
		a.ClarityScore = intPtr(s.Clarity)
	}
}

func deref(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

func intPtr(v int) *int {
	return &v
}
