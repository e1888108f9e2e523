package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// skillsOracle 按文本内容返回不同技能列表
type skillsOracle struct {
	mu      sync.Mutex
	byInput map[string]string
	err     error
	calls   int
}

func (o *skillsOracle) Complete(ctx context.Context, prompt string) (string, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.calls++
	if o.err != nil {
		return "", o.err
	}
	for marker, reply := range o.byInput {
		if strings.HasSuffix(prompt, marker) {
			return reply, nil
		}
	}
	return `{"skills":[]}`, nil
}

func TestAnalyze(t *testing.T) {
	oracle := &skillsOracle{byInput: map[string]string{
		"RESUME": "```json\n{\"skills\":[\"Go\",\"Docker\",\"SQL\",\"React\"]}\n```",
		"JD":     `{"skills":["go","docker","sql","kubernetes"]}`,
	}}
	svc := NewAtsService(oracle)

	result, err := svc.Analyze(context.Background(), "RESUME", "JD")
	require.NoError(t, err)
	assert.Equal(t, 75, result.AtsScore)
	assert.Equal(t, []string{"go", "docker", "sql"}, result.MatchedSkills)
	assert.Equal(t, []string{"kubernetes"}, result.MissingSkills)
	assert.Equal(t, 2, oracle.calls)
}

func TestAnalyze_EmptyJobDescriptionSkills(t *testing.T) {
	oracle := &skillsOracle{byInput: map[string]string{
		"RESUME": `{"skills":["go","rust"]}`,
		"JD":     `{"skills":[]}`,
	}}
	svc := NewAtsService(oracle)

	result, err := svc.Analyze(context.Background(), "RESUME", "JD")
	require.NoError(t, err)
	assert.Equal(t, 0, result.AtsScore)
	assert.Empty(t, result.MatchedSkills)
	assert.Empty(t, result.MissingSkills)
}

func TestExtractSkills_FailureDegradesToEmpty(t *testing.T) {
	svc := NewAtsService(&skillsOracle{err: errors.New("unreachable")})
	assert.Equal(t, []string{}, svc.ExtractSkills(context.Background(), "text"))

	svc = NewAtsService(&skillsOracle{byInput: map[string]string{"text": "no json here"}})
	assert.Equal(t, []string{}, svc.ExtractSkills(context.Background(), "text"))
}

func TestMatchSkills(t *testing.T) {
	tests := []struct {
		name    string
		resume  []string
		jd      []string
		score   int
		matched []string
		missing []string
	}{
		{"three of four", []string{"a", "b", "c"}, []string{"a", "b", "c", "d"}, 75, []string{"a", "b", "c"}, []string{"d"}},
		{"empty jd", []string{"a"}, nil, 0, []string{}, []string{}},
		{"case insensitive", []string{"GO"}, []string{"go"}, 100, []string{"go"}, []string{}},
		{"one of three rounds", []string{"x"}, []string{"x", "y", "z"}, 33, []string{"x"}, []string{"y", "z"}},
		{"two of three rounds", []string{"x", "y"}, []string{"x", "y", "z"}, 67, []string{"x", "y"}, []string{"z"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := MatchSkills(tt.resume, tt.jd)
			assert.Equal(t, tt.score, r.AtsScore)
			assert.Equal(t, tt.matched, r.MatchedSkills)
			assert.Equal(t, tt.missing, r.MissingSkills)
		})
	}
}
