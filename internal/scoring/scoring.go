// Package scoring 作答评分的纯函数聚合，不做任何 I/O
package scoring

import (
	"math"

	"interviewai_backend/internal/model"
)

// CorrectThreshold 有效分达到该值视为答对
const CorrectThreshold = 7

const (
	UnknownTopic = "Unknown"
	UnknownTest  = "UNKNOWN"
)

// Average 忽略缺失值求均值，全部缺失时为 0
func Average(values []*int) float64 {
	sum, n := 0, 0
	for _, v := range values {
		if v == nil {
			continue
		}
		sum += *v
		n++
	}
	if n == 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

// EffectiveScore 优先文本分，其次语音分
func EffectiveScore(a model.InterviewAttempt) *int {
	if a.TextScore != nil {
		return a.TextScore
	}
	return a.VoiceScore
}

func IsCorrect(score *int) bool {
	return score != nil && *score >= CorrectThreshold
}

// CombinedScore 文本分与语音分同时存在时取二者均值
func CombinedScore(a model.InterviewAttempt) float64 {
	switch {
	case a.TextScore != nil && a.VoiceScore != nil:
		return float64(*a.TextScore+*a.VoiceScore) / 2
	case a.TextScore != nil:
		return float64(*a.TextScore)
	case a.VoiceScore != nil:
		return float64(*a.VoiceScore)
	}
	return 0
}

// RoundMean 整数均值四舍五入，空输入为 0
func RoundMean(values []int) int {
	if len(values) == 0 {
		return 0
	}
	sum := 0
	for _, v := range values {
		sum += v
	}
	return int(math.Round(float64(sum) / float64(len(values))))
}

// MeanEffective 只统计有有效分的作答
func MeanEffective(attempts []model.InterviewAttempt) float64 {
	scores := make([]*int, 0, len(attempts))
	for _, a := range attempts {
		scores = append(scores, EffectiveScore(a))
	}
	return Average(scores)
}

// Clamp 将分数限制在 [lo, hi]
func Clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

type Group struct {
	Key      string
	Attempts []model.InterviewAttempt
}

// GroupBy 分组顺序为键首次出现的顺序，组内保持输入顺序
func GroupBy(attempts []model.InterviewAttempt, keyFn func(model.InterviewAttempt) string) []Group {
	index := make(map[string]int)
	var groups []Group
	for _, a := range attempts {
		key := keyFn(a)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, Group{Key: key})
		}
		groups[i].Attempts = append(groups[i].Attempts, a)
	}
	return groups
}

func KeyByTopic(a model.InterviewAttempt) string {
	if a.Topic == "" {
		return UnknownTopic
	}
	return a.Topic
}

func KeyByTest(a model.InterviewAttempt) string {
	if a.TestID == "" {
		return UnknownTest
	}
	return a.TestID
}
