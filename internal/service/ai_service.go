package service

import (
	"context"
	"errors"
	"interviewai_backend/internal/config"
	"interviewai_backend/internal/util"
	"interviewai_backend/pkg/tracing"
	"sync"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/otel/attribute"
)

// Oracle AI 文本接口：输入提示词，返回模型原始输出
type Oracle interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// AIService 基于 OpenAI 兼容接口（默认 Groq）
type AIService struct {
	client  *openai.Client
	timeout time.Duration

	mu    sync.RWMutex
	model string
}

func NewAIService(cfg config.AIConfig) *AIService {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	return &AIService{
		client:  openai.NewClientWithConfig(clientCfg),
		timeout: cfg.Timeout,
		model:   cfg.Model,
	}
}

// SetModel 配置热更新时切换模型
func (s *AIService) SetModel(model string) {
	if model == "" {
		return
	}
	s.mu.Lock()
	s.model = model
	s.mu.Unlock()
}

func (s *AIService) Model() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.model
}

func (s *AIService) Complete(ctx context.Context, prompt string) (out string, err error) {
	model := s.Model()
	ctx, span := tracing.StartSpan(ctx, "oracle.complete", attribute.String("ai.model", model))
	defer func() { tracing.End(span, err) }()

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", util.Upstream("chat completion", err)
	}

	if len(resp.Choices) == 0 {
		return "", util.Upstream("chat completion", errors.New("no choices in response"))
	}

	return resp.Choices[0].Message.Content, nil
}
