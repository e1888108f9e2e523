package scoring

import (
	"testing"

	"interviewai_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(v int) *int { return &v }

func TestAverage(t *testing.T) {
	assert.Equal(t, 0.0, Average(nil))
	assert.Equal(t, 0.0, Average([]*int{nil, nil}))
	assert.Equal(t, 8.0, Average([]*int{ptr(7), nil, ptr(9)}))
	assert.Equal(t, 0.0, Average([]*int{ptr(0)}))
}

func TestEffectiveScore(t *testing.T) {
	text := model.InterviewAttempt{TextScore: ptr(4), VoiceScore: ptr(9)}
	voice := model.InterviewAttempt{VoiceScore: ptr(9)}

	assert.Equal(t, 4, *EffectiveScore(text))
	assert.Equal(t, 9, *EffectiveScore(voice))
	assert.Nil(t, EffectiveScore(model.InterviewAttempt{}))
}

func TestIsCorrect(t *testing.T) {
	assert.False(t, IsCorrect(nil))
	assert.False(t, IsCorrect(ptr(6)))
	assert.True(t, IsCorrect(ptr(7)))
	assert.True(t, IsCorrect(ptr(10)))
}

func TestCombinedScore(t *testing.T) {
	assert.Equal(t, 7.5, CombinedScore(model.InterviewAttempt{TextScore: ptr(8), VoiceScore: ptr(7)}))
	assert.Equal(t, 8.0, CombinedScore(model.InterviewAttempt{TextScore: ptr(8)}))
	assert.Equal(t, 7.0, CombinedScore(model.InterviewAttempt{VoiceScore: ptr(7)}))
	assert.Equal(t, 0.0, CombinedScore(model.InterviewAttempt{}))
}

func TestRoundMean(t *testing.T) {
	assert.Equal(t, 0, RoundMean(nil))
	assert.Equal(t, 7, RoundMean([]int{8, 6}))
	assert.Equal(t, 8, RoundMean([]int{7, 8}))
	assert.Equal(t, 5, RoundMean([]int{5, 5, 6}))
}

func TestMeanEffective(t *testing.T) {
	attempts := []model.InterviewAttempt{
		{TextScore: ptr(8)},
		{VoiceScore: ptr(6)},
		{},
	}
	assert.Equal(t, 7.0, MeanEffective(attempts))
	assert.Equal(t, 0.0, MeanEffective(nil))
}

func TestGroupByTopic(t *testing.T) {
	attempts := []model.InterviewAttempt{
		{Topic: "Go", Question: "q1"},
		{Topic: "", Question: "q2"},
		{Topic: "Go", Question: "q3"},
	}

	groups := GroupBy(attempts, KeyByTopic)
	require.Len(t, groups, 2)

	assert.Equal(t, "Go", groups[0].Key)
	require.Len(t, groups[0].Attempts, 2)
	assert.Equal(t, "q1", groups[0].Attempts[0].Question)
	assert.Equal(t, "q3", groups[0].Attempts[1].Question)

	assert.Equal(t, UnknownTopic, groups[1].Key)
	assert.Len(t, groups[1].Attempts, 1)
}

func TestGroupByTest(t *testing.T) {
	attempts := []model.InterviewAttempt{
		{TestID: "b"},
		{TestID: "a"},
		{},
		{TestID: "b"},
	}

	groups := GroupBy(attempts, KeyByTest)
	require.Len(t, groups, 3)
	assert.Equal(t, []string{"b", "a", UnknownTest}, []string{groups[0].Key, groups[1].Key, groups[2].Key})
	assert.Len(t, groups[0].Attempts, 2)
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0, Clamp(-3, 0, 10))
	assert.Equal(t, 10, Clamp(14, 0, 10))
	assert.Equal(t, 5, Clamp(5, 0, 10))
}
