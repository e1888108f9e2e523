package service

import (
	"context"
	"interviewai_backend/internal/model"
	"interviewai_backend/internal/util"
	"interviewai_backend/pkg/logger"
	"interviewai_backend/pkg/monitoring"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	ParsingFailedFeedback  = "Parsing failed"
	ModelAnswerErrorMarker = "Model Answer Generation Error"
)

type TextEvaluation struct {
	Score       int    `json:"score"`
	Feedback    string `json:"feedback"`
	ModelAnswer string `json:"-"`
}

type VoiceEvaluation struct {
	model.VoiceScore
	OverallScore int    `json:"overallScore"`
	Feedback     string `json:"feedback"`
	ModelAnswer  string `json:"-"`
}

func newVoiceEvaluation(scores model.VoiceScore, feedback string) VoiceEvaluation {
	return VoiceEvaluation{
		VoiceScore:   scores,
		OverallScore: scores.Overall(),
		Feedback:     feedback,
	}
}

// EvaluationService 调用 AI 评分并将输出归一化，解析失败时降级为默认分
type EvaluationService struct {
	oracle Oracle
}

func NewEvaluationService(oracle Oracle) *EvaluationService {
	return &EvaluationService{oracle: oracle}
}

// EvaluateText 评分与参考答案并发获取，不返回错误
func (s *EvaluationService) EvaluateText(ctx context.Context, question, answer string) TextEvaluation {
	var (
		eval        TextEvaluation
		modelAnswer string
		g           errgroup.Group
	)

	g.Go(func() error {
		eval = s.scoreText(ctx, question, answer)
		return nil
	})
	g.Go(func() error {
		modelAnswer = s.ModelAnswer(ctx, question)
		return nil
	})
	_ = g.Wait()

	eval.ModelAnswer = modelAnswer
	return eval
}

// EvaluateVoice 转写为空时直接返回 ErrNoVoiceDetected，不调用 AI
func (s *EvaluationService) EvaluateVoice(ctx context.Context, question, transcript string) (VoiceEvaluation, error) {
	if strings.TrimSpace(transcript) == "" {
		return VoiceEvaluation{}, util.ErrNoVoiceDetected
	}

	var (
		eval        VoiceEvaluation
		modelAnswer string
		g           errgroup.Group
	)

	g.Go(func() error {
		eval = s.scoreVoice(ctx, question, transcript)
		return nil
	})
	g.Go(func() error {
		modelAnswer = s.ModelAnswer(ctx, question)
		return nil
	})
	_ = g.Wait()

	eval.ModelAnswer = modelAnswer
	return eval, nil
}

// ModelAnswer 失败时返回错误标记文本
func (s *EvaluationService) ModelAnswer(ctx context.Context, question string) string {
	answer, err := s.oracle.Complete(ctx, modelAnswerPrompt(question))
	monitoring.ObserveOracle("model_answer", err)
	if err != nil {
		logger.Log.Warn("Model answer generation failed",
			zap.String("operation", "model_answer"),
			zap.Error(err))
		return ModelAnswerErrorMarker
	}
	return strings.TrimSpace(answer)
}

// GenerateQuestion 出题没有降级策略，失败直接返回
func (s *EvaluationService) GenerateQuestion(ctx context.Context, topic, difficulty string) (string, error) {
	question, err := s.oracle.Complete(ctx, questionPrompt(topic, difficulty))
	monitoring.ObserveOracle("generate_question", err)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(question), nil
}

func (s *EvaluationService) scoreText(ctx context.Context, question, answer string) TextEvaluation {
	raw, err := s.oracle.Complete(ctx, evaluateTextPrompt(question, answer))
	monitoring.ObserveOracle("evaluate_text", err)
	if err != nil {
		logger.Log.Warn("Text evaluation unavailable",
			zap.String("operation", "evaluate_text"),
			zap.Error(err))
		return TextEvaluation{Score: 0, Feedback: ParsingFailedFeedback}
	}

	eval, err := ParseTextEvaluation(raw)
	if err != nil {
		monitoring.ParseFailures.WithLabelValues("text").Inc()
		logger.Log.Warn("Text evaluation parsing failed",
			zap.String("operation", "evaluate_text"),
			zap.String("raw", raw),
			zap.Error(err))
		return TextEvaluation{Score: 0, Feedback: ParsingFailedFeedback}
	}
	return eval
}

func (s *EvaluationService) scoreVoice(ctx context.Context, question, transcript string) VoiceEvaluation {
	raw, err := s.oracle.Complete(ctx, evaluateVoicePrompt(question, transcript))
	monitoring.ObserveOracle("evaluate_voice", err)
	if err != nil {
		logger.Log.Warn("Voice evaluation unavailable",
			zap.String("operation", "evaluate_voice"),
			zap.Error(err))
		return newVoiceEvaluation(model.VoiceScore{}, ParsingFailedFeedback)
	}

	eval, err := ParseVoiceEvaluation(raw)
	if err != nil {
		monitoring.ParseFailures.WithLabelValues("voice").Inc()
		logger.Log.Warn("Voice evaluation parsing failed",
			zap.String("operation", "evaluate_voice"),
			zap.String("raw", raw),
			zap.Error(err))
		return newVoiceEvaluation(model.VoiceScore{}, ParsingFailedFeedback)
	}
	return eval
}
