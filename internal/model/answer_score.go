package model

import "math"

type AnswerType string

const (
	AnswerText  AnswerType = "TEXT"
	AnswerVoice AnswerType = "VOICE"
)

// AnswerScore 评分来源：文本单一分数或语音五维分数
type AnswerScore interface {
	Type() AnswerType
	Overall() int
}

type TextScore struct {
	Score int `json:"score"`
}

func (TextScore) Type() AnswerType { return AnswerText }

func (s TextScore) Overall() int { return s.Score }

type VoiceScore struct {
	Content int `json:"contentScore"`
	Grammar int `json:"grammarScore"`
	Fluency int `json:"fluencyScore"`
	Keyword int `json:"keywordScore"`
	Clarity int `json:"clarityScore"`
}

func (VoiceScore) Type() AnswerType { return AnswerVoice }

// Overall 五项得分均值，四舍五入
func (s VoiceScore) Overall() int {
	sum := s.Content + s.Grammar + s.Fluency + s.Keyword + s.Clarity
	return int(math.Round(float64(sum) / 5))
}
