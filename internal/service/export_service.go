package service

import (
	"bytes"
	"context"
	"fmt"
	"interviewai_backend/internal/model"
	"interviewai_backend/internal/scoring"
	"interviewai_backend/internal/util"

	"github.com/xuri/excelize/v2"
)

const attemptsSheet = "Attempts"

var attemptHeaders = []string{
	"Date", "Topic", "Difficulty", "Test", "No.", "Type", "Question", "Answer",
	"Score", "Content", "Grammar", "Fluency", "Keyword", "Clarity", "Time (s)", "Feedback",
}

// ExportService 导出作答历史为 Excel
type ExportService struct {
	attempts AttemptStore
}

func NewExportService(attempts AttemptStore) *ExportService {
	return &ExportService{attempts: attempts}
}

func (s *ExportService) AttemptsWorkbook(ctx context.Context, userID uint) (*bytes.Buffer, error) {
	attempts, err := s.attempts.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	f, err := BuildAttemptsWorkbook(attempts)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return f.WriteToBuffer()
}

func BuildAttemptsWorkbook(attempts []model.InterviewAttempt) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", attemptsSheet); err != nil {
		return nil, err
	}

	if err := f.SetSheetRow(attemptsSheet, "A1", &attemptHeaders); err != nil {
		return nil, err
	}

	for i, a := range attempts {
		row := []interface{}{
			a.CreatedAt.Format(util.TimeFormat),
			a.Topic,
			a.Difficulty,
			a.TestID,
			a.QuestionNumber,
			string(a.AnswerType),
			a.Question,
			a.UserAnswer,
			cellValue(scoring.EffectiveScore(a)),
			cellValue(a.ContentScore),
			cellValue(a.GrammarScore),
			cellValue(a.FluencyScore),
			cellValue(a.KeywordScore),
			cellValue(a.ClarityScore),
			cellValue64(a.TimeTakenSeconds),
			a.Feedback,
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(attemptsSheet, cell, &row); err != nil {
			return nil, err
		}
	}

	if err := f.SetPanes(attemptsSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return nil, err
	}

	return f, nil
}

func cellValue(v *int) interface{} {
	if v == nil {
		return ""
	}
	return *v
}

func cellValue64(v *int64) interface{} {
	if v == nil {
		return ""
	}
	return *v
}
