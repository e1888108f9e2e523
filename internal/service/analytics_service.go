package service

import (
	"context"
	"interviewai_backend/internal/model"
	"interviewai_backend/internal/scoring"
	"sort"
	"strings"
)

const FeedbackPlaceholder = "Click to see detailed analysis"

// AnalyticsService 从作答历史生成个人统计
type AnalyticsService struct {
	attempts AttemptStore
}

func NewAnalyticsService(attempts AttemptStore) *AnalyticsService {
	return &AnalyticsService{attempts: attempts}
}

func (s *AnalyticsService) Summary(ctx context.Context, userID uint) (model.Summary, error) {
	attempts, err := s.attempts.FindByUser(ctx, userID)
	if err != nil {
		return model.Summary{}, err
	}
	return SummarizeAttempts(attempts), nil
}

func (s *AnalyticsService) Progress(ctx context.Context, userID uint) ([]model.ProgressPoint, error) {
	attempts, err := s.attempts.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return Progress(attempts), nil
}

func (s *AnalyticsService) Accuracy(ctx context.Context, userID uint) (model.Accuracy, error) {
	attempts, err := s.attempts.FindByUser(ctx, userID)
	if err != nil {
		return model.Accuracy{}, err
	}
	return Accuracy(attempts), nil
}

func (s *AnalyticsService) TopicAnalysis(ctx context.Context, userID uint) ([]model.TopicAnalysis, error) {
	attempts, err := s.attempts.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return TopicAnalysis(attempts), nil
}

// TopicDetails 不区分用户，返回所有人在该主题下的作答
func (s *AnalyticsService) TopicDetails(ctx context.Context, topic string) ([]model.TopicDetail, error) {
	attempts, err := s.attempts.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return TopicDetails(attempts, topic), nil
}

// SkillBreakdown 不区分用户的语音五维均分
func (s *AnalyticsService) SkillBreakdown(ctx context.Context) (model.SkillBreakdown, error) {
	attempts, err := s.attempts.FindAll(ctx)
	if err != nil {
		return model.SkillBreakdown{}, err
	}
	return SkillBreakdown(attempts), nil
}

func (s *AnalyticsService) TopicTests(ctx context.Context, userID uint, topic string) ([]model.TopicTestGroup, error) {
	attempts, err := s.attempts.FindByUserAndTopic(ctx, userID, topic)
	if err != nil {
		return nil, err
	}
	return TopicTests(attempts), nil
}

func SummarizeAttempts(attempts []model.InterviewAttempt) model.Summary {
	text := make([]*int, 0, len(attempts))
	voice := make([]*int, 0, len(attempts))
	for _, a := range attempts {
		text = append(text, a.TextScore)
		voice = append(voice, a.VoiceScore)
	}
	return model.Summary{
		TotalAttempts: len(attempts),
		AvgTextScore:  scoring.Average(text),
		AvgVoiceScore: scoring.Average(voice),
	}
}

// Progress 每条作答一个点，保持输入顺序
func Progress(attempts []model.InterviewAttempt) []model.ProgressPoint {
	points := make([]model.ProgressPoint, 0, len(attempts))
	for _, a := range attempts {
		score := scoring.EffectiveScore(a)
		points = append(points, model.ProgressPoint{
			Date:    a.CreatedAt,
			Score:   score,
			Correct: scoring.IsCorrect(score),
		})
	}
	return points
}

func Accuracy(attempts []model.InterviewAttempt) model.Accuracy {
	correct := 0
	for _, a := range attempts {
		if scoring.IsCorrect(scoring.EffectiveScore(a)) {
			correct++
		}
	}
	return model.Accuracy{Correct: correct, Wrong: len(attempts) - correct}
}

func TopicAnalysis(attempts []model.InterviewAttempt) []model.TopicAnalysis {
	groups := scoring.GroupBy(attempts, scoring.KeyByTopic)
	result := make([]model.TopicAnalysis, 0, len(groups))

	for _, g := range groups {
		var (
			sum       float64
			feedbacks []string
		)
		for _, a := range g.Attempts {
			sum += scoring.CombinedScore(a)
			if a.Feedback != "" {
				feedbacks = append(feedbacks, a.Feedback)
			}
		}

		summary := strings.Join(feedbacks, "\n")
		if summary == "" {
			summary = FeedbackPlaceholder
		}

		result = append(result, model.TopicAnalysis{
			Topic:           g.Key,
			Attempts:        len(g.Attempts),
			AvgScore:        sum / float64(len(g.Attempts)),
			FeedbackSummary: summary,
		})
	}
	return result
}

// TopicDetails 主题精确匹配，忽略大小写
func TopicDetails(attempts []model.InterviewAttempt, topic string) []model.TopicDetail {
	details := []model.TopicDetail{}
	for _, a := range attempts {
		if a.Topic == "" || !strings.EqualFold(a.Topic, topic) {
			continue
		}
		details = append(details, model.TopicDetail{
			Question:    a.Question,
			UserAnswer:  a.UserAnswer,
			ModelAnswer: a.ModelAnswer,
			Feedback:    a.Feedback,
			Score:       scoring.EffectiveScore(a),
		})
	}
	return details
}

// SkillBreakdown 每项仅统计有该子分数的作答，没有时为 0
func SkillBreakdown(attempts []model.InterviewAttempt) model.SkillBreakdown {
	var content, grammar, fluency, keyword, clarity []*int
	for _, a := range attempts {
		content = append(content, a.ContentScore)
		grammar = append(grammar, a.GrammarScore)
		fluency = append(fluency, a.FluencyScore)
		keyword = append(keyword, a.KeywordScore)
		clarity = append(clarity, a.ClarityScore)
	}
	return model.SkillBreakdown{
		Content: scoring.Average(content),
		Grammar: scoring.Average(grammar),
		Fluency: scoring.Average(fluency),
		Keyword: scoring.Average(keyword),
		Clarity: scoring.Average(clarity),
	}
}

// TopicTests 按测试分组，组内按题号升序（稳定排序）
func TopicTests(attempts []model.InterviewAttempt) []model.TopicTestGroup {
	groups := scoring.GroupBy(attempts, scoring.KeyByTest)
	result := make([]model.TopicTestGroup, 0, len(groups))

	for _, g := range groups {
		sorted := make([]model.InterviewAttempt, len(g.Attempts))
		copy(sorted, g.Attempts)
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].QuestionNumber < sorted[j].QuestionNumber
		})

		questions := make([]model.AttemptDetail, 0, len(sorted))
		for _, a := range sorted {
			questions = append(questions, model.AttemptDetail{
				QuestionNumber: a.QuestionNumber,
				Question:       a.Question,
				UserAnswer:     a.UserAnswer,
				ModelAnswer:    a.ModelAnswer,
				Feedback:       a.Feedback,
				Score:          scoring.EffectiveScore(a),
				AnswerType:     a.AnswerType,
				AudioURL:       a.AudioURL,
				ContentScore:   a.ContentScore,
				GrammarScore:   a.GrammarScore,
				FluencyScore:   a.FluencyScore,
				KeywordScore:   a.KeywordScore,
				ClarityScore:   a.ClarityScore,
			})
		}

		result = append(result, model.TopicTestGroup{
			TestID:       g.Key,
			AverageScore: scoring.MeanEffective(sorted),
			Questions:    questions,
		})
	}
	return result
}
