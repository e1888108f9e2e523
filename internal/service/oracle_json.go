package service

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"sync"

	"interviewai_backend/internal/model"
	"interviewai_backend/internal/scoring"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// contract AI 输出需要满足的 JSON 结构
type contract struct {
	Name       string
	Definition map[string]any
}

var (
	textContract = contract{
		Name: "text_evaluation",
		Definition: map[string]any{
			"type":     "object",
			"required": []any{"score", "feedback"},
			"properties": map[string]any{
				"score":    map[string]any{"type": "number"},
				"feedback": map[string]any{"type": "string"},
			},
		},
	}

	voiceContract = contract{
		Name: "voice_evaluation",
		Definition: map[string]any{
			"type":     "object",
			"required": []any{"contentScore", "grammarScore", "fluencyScore", "keywordScore", "clarityScore", "feedback"},
			"properties": map[string]any{
				"contentScore": map[string]any{"type": "number"},
				"grammarScore": map[string]any{"type": "number"},
				"fluencyScore": map[string]any{"type": "number"},
				"keywordScore": map[string]any{"type": "number"},
				"clarityScore": map[string]any{"type": "number"},
				"feedback":     map[string]any{"type": "string"},
			},
		},
	}

	skillsContract = contract{
		Name: "skills",
		Definition: map[string]any{
			"type":     "object",
			"required": []any{"skills"},
			"properties": map[string]any{
				"skills": map[string]any{
					"type":  "array",
					"items": map[string]any{"type": "string"},
				},
			},
		},
	}
)

var schemaCache sync.Map // map[string]*jsonschema.Schema

// StripCodeFences 去掉模型常见的 ```json ... ``` 包裹
func StripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```JSON", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

// decodeContract 去围栏、按 schema 校验后解码到 v
func decodeContract(c contract, raw string, v any) error {
	cleaned := []byte(StripCodeFences(raw))

	var parsed any
	if err := json.Unmarshal(cleaned, &parsed); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	compiled, err := compiledSchema(c)
	if err != nil {
		return fmt.Errorf("compile schema %q: %w", c.Name, err)
	}

	if err := compiled.Validate(parsed); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}

	return json.Unmarshal(cleaned, v)
}

func compiledSchema(c contract) (*jsonschema.Schema, error) {
	if cached, ok := schemaCache.Load(c.Name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	// jsonschema 需要解析后的 JSON 值
	defBytes, err := json.Marshal(c.Definition)
	if err != nil {
		return nil, err
	}
	var def any
	if err := json.Unmarshal(defBytes, &def); err != nil {
		return nil, err
	}

	compiler := jsonschema.NewCompiler()
	url := fmt.Sprintf("schema://%s.json", c.Name)
	if err := compiler.AddResource(url, def); err != nil {
		return nil, err
	}

	compiled, err := compiler.Compile(url)
	if err != nil {
		return nil, err
	}

	schemaCache.Store(c.Name, compiled)
	return compiled, nil
}

// normalizeScore 四舍五入并限制在 0..10
func normalizeScore(v float64) int {
	return scoring.Clamp(int(math.Round(v)), 0, 10)
}

// ParseTextEvaluation 解析文本评分 {"score","feedback"}
func ParseTextEvaluation(raw string) (TextEvaluation, error) {
	var out struct {
		Score    float64 `json:"score"`
		Feedback string  `json:"feedback"`
	}
	if err := decodeContract(textContract, raw, &out); err != nil {
		return TextEvaluation{}, err
	}
	return TextEvaluation{Score: normalizeScore(out.Score), Feedback: out.Feedback}, nil
}

// ParseVoiceEvaluation 解析五维语音评分，模型给出的 overallScore 忽略
func ParseVoiceEvaluation(raw string) (VoiceEvaluation, error) {
	var out struct {
		Content  float64 `json:"contentScore"`
		Grammar  float64 `json:"grammarScore"`
		Fluency  float64 `json:"fluencyScore"`
		Keyword  float64 `json:"keywordScore"`
		Clarity  float64 `json:"clarityScore"`
		Feedback string  `json:"feedback"`
	}
	if err := decodeContract(voiceContract, raw, &out); err != nil {
		return VoiceEvaluation{}, err
	}

	scores := model.VoiceScore{
		Content: normalizeScore(out.Content),
		Grammar: normalizeScore(out.Grammar),
		Fluency: normalizeScore(out.Fluency),
		Keyword: normalizeScore(out.Keyword),
		Clarity: normalizeScore(out.Clarity),
	}
	return newVoiceEvaluation(scores, out.Feedback), nil
}

// ParseSkills 解析技能列表：小写、去空白、去重并保持首次出现顺序
func ParseSkills(raw string) ([]string, error) {
	var out struct {
		Skills []string `json:"skills"`
	}
	if err := decodeContract(skillsContract, raw, &out); err != nil {
		return nil, err
	}
	return normalizeSkills(out.Skills), nil
}

func normalizeSkills(skills []string) []string {
	seen := make(map[string]struct{}, len(skills))
	result := make([]string, 0, len(skills))
	for _, s := range skills {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		result = append(result, s)
	}
	return result
}
