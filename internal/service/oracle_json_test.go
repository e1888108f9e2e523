package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripCodeFences(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"```\n{\"a\":1}\n```", `{"a":1}`},
		{"  {\"a\":1}  ", `{"a":1}`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StripCodeFences(tt.in))
	}
}

func TestParseSkills_CodeFenceRoundTrip(t *testing.T) {
	plain := `{"skills":["go","rust"]}`
	fenced := "```json\n" + plain + "\n```"

	want, err := ParseSkills(plain)
	require.NoError(t, err)
	got, err := ParseSkills(fenced)
	require.NoError(t, err)

	assert.Equal(t, []string{"go", "rust"}, want)
	assert.Equal(t, want, got)
}

func TestParseSkills_Normalizes(t *testing.T) {
	skills, err := ParseSkills(`{"skills":[" Go ","DOCKER","go","", "Kubernetes"]}`)
	require.NoError(t, err)
	assert.Equal(t, []string{"go", "docker", "kubernetes"}, skills)
}

func TestParseSkills_Invalid(t *testing.T) {
	_, err := ParseSkills(`{"tools":["go"]}`)
	assert.Error(t, err)

	_, err = ParseSkills(`{"skills":"go"}`)
	assert.Error(t, err)
}

func TestParseTextEvaluation(t *testing.T) {
	eval, err := ParseTextEvaluation("```json\n{\"score\": 7.6, \"feedback\": \"ok\"}\n```")
	require.NoError(t, err)
	assert.Equal(t, 8, eval.Score)
	assert.Equal(t, "ok", eval.Feedback)

	eval, err = ParseTextEvaluation(`{"score": 14, "feedback": "too high"}`)
	require.NoError(t, err)
	assert.Equal(t, 10, eval.Score)
}

func TestParseTextEvaluation_Malformed(t *testing.T) {
	inputs := []string{
		"Evaluation Error",
		`{"score": 8}`,
		`{"feedback": "missing score"}`,
		`{"score": "eight", "feedback": "x"}`,
		"",
	}
	for _, in := range inputs {
		_, err := ParseTextEvaluation(in)
		assert.Error(t, err, in)
	}
}

func TestParseVoiceEvaluation_IgnoresOverall(t *testing.T) {
	raw := `{"contentScore":8,"grammarScore":7,"fluencyScore":6,"keywordScore":9,"clarityScore":8,"overallScore":2,"feedback":"Clear"}`

	eval, err := ParseVoiceEvaluation(raw)
	require.NoError(t, err)
	assert.Equal(t, 8, eval.Content)
	assert.Equal(t, 6, eval.Fluency)
	assert.Equal(t, 8, eval.OverallScore)
	assert.Equal(t, "Clear", eval.Feedback)
}

func TestParseVoiceEvaluation_MissingField(t *testing.T) {
	_, err := ParseVoiceEvaluation(`{"contentScore":8,"feedback":"x"}`)
	assert.Error(t, err)
}
