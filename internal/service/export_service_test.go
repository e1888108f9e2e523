package service

import (
	"context"
	"testing"

	"interviewai_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestBuildAttemptsWorkbook(t *testing.T) {
	text := model.InterviewAttempt{Topic: "Go", AnswerType: model.AnswerText, TextScore: intp(7), Question: "Q1", Feedback: "ok"}
	text.CreatedAt = fixedNow
	voice := model.InterviewAttempt{
		Topic: "Go", AnswerType: model.AnswerVoice, VoiceScore: intp(6), ContentScore: intp(5),
		TimeTakenSeconds: int64p(42), TestID: "t-1", QuestionNumber: 2,
	}
	voice.CreatedAt = fixedNow

	f, err := BuildAttemptsWorkbook([]model.InterviewAttempt{text, voice})
	require.NoError(t, err)
	defer f.Close()

	header, err := f.GetCellValue(attemptsSheet, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Date", header)

	rows, err := f.GetRows(attemptsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "TEXT", rows[1][5])
	assert.Equal(t, "7", rows[1][8])
	assert.Equal(t, "VOICE", rows[2][5])
	assert.Equal(t, "6", rows[2][8])
	assert.Equal(t, "5", rows[2][9])
	assert.Equal(t, "42", rows[2][14])
	assert.Equal(t, "t-1", rows[2][3])
}

func TestAttemptsWorkbook_OwnerOnly(t *testing.T) {
	store := &fakeAttemptStore{}
	_ = store.Create(context.Background(), &model.InterviewAttempt{UserID: 1, Topic: "Go", TextScore: intp(8)})
	_ = store.Create(context.Background(), &model.InterviewAttempt{UserID: 2, Topic: "Rust", TextScore: intp(3)})

	buf, err := NewExportService(store).AttemptsWorkbook(context.Background(), 1)
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(attemptsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Go", rows[1][1])
}
