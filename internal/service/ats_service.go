package service

import (
	"context"
	"interviewai_backend/internal/model"
	"interviewai_backend/pkg/logger"
	"interviewai_backend/pkg/monitoring"
	"math"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// AtsService 简历与岗位描述的技能匹配
type AtsService struct {
	oracle Oracle
}

func NewAtsService(oracle Oracle) *AtsService {
	return &AtsService{oracle: oracle}
}

func (s *AtsService) Analyze(ctx context.Context, resumeText, jdText string) (model.AtsResult, error) {
	var (
		resumeSkills, jdSkills []string
		g                      errgroup.Group
	)
	g.Go(func() error {
		resumeSkills = s.ExtractSkills(ctx, resumeText)
		return nil
	})
	g.Go(func() error {
		jdSkills = s.ExtractSkills(ctx, jdText)
		return nil
	})
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return model.AtsResult{}, err
	}

	return MatchSkills(resumeSkills, jdSkills), nil
}

// ExtractSkills 失败时降级为空集合
func (s *AtsService) ExtractSkills(ctx context.Context, text string) []string {
	raw, err := s.oracle.Complete(ctx, extractSkillsPrompt(text))
	monitoring.ObserveOracle("extract_skills", err)
	if err != nil {
		logger.Log.Warn("Skill extraction unavailable",
			zap.String("operation", "extract_skills"),
			zap.Error(err))
		return []string{}
	}

	skills, err := ParseSkills(raw)
	if err != nil {
		monitoring.ParseFailures.WithLabelValues("skills").Inc()
		logger.Log.Warn("Skill extraction parsing failed",
			zap.String("operation", "extract_skills"),
			zap.String("raw", raw),
			zap.Error(err))
		return []string{}
	}
	return skills
}

// MatchSkills 匹配与缺失均按岗位技能顺序输出
func MatchSkills(resumeSkills, jdSkills []string) model.AtsResult {
	resume := make(map[string]struct{}, len(resumeSkills))
	for _, s := range normalizeSkills(resumeSkills) {
		resume[s] = struct{}{}
	}

	jd := normalizeSkills(jdSkills)
	result := model.AtsResult{
		MatchedSkills: []string{},
		MissingSkills: []string{},
	}
	for _, s := range jd {
		if _, ok := resume[s]; ok {
			result.MatchedSkills = append(result.MatchedSkills, s)
		} else {
			result.MissingSkills = append(result.MissingSkills, s)
		}
	}

	if len(jd) > 0 {
		result.AtsScore = int(math.Round(100 * float64(len(result.MatchedSkills)) / float64(len(jd))))
	}
	return result
}
