package service

import (
	"context"
	"fmt"
	"interviewai_backend/internal/model"
	"interviewai_backend/internal/util"
	"interviewai_backend/pkg/logger"
	"io"
	"math"
	"os"
	"path"
	"strings"

	"go.uber.org/zap"
)

type SessionStore interface {
	CreateSession(ctx context.Context, session *model.InterviewSession) error
	FindSessionByID(ctx context.Context, id string) (*model.InterviewSession, error)
	CreateQuestion(ctx context.Context, question *model.InterviewQuestion) error
	UpdateQuestion(ctx context.Context, question *model.InterviewQuestion) error
	FindQuestionByID(ctx context.Context, id string) (*model.InterviewQuestion, error)
	FindAllQuestions(ctx context.Context) ([]model.InterviewQuestion, error)
	SearchQuestions(ctx context.Context, keyword string) ([]model.InterviewQuestion, error)
	CreateAnswer(ctx context.Context, answer *model.InterviewAnswer) error
}

type AttemptStore interface {
	Create(ctx context.Context, attempt *model.InterviewAttempt) error
	FindByUser(ctx context.Context, userID uint) ([]model.InterviewAttempt, error)
	FindByUserAndTopic(ctx context.Context, userID uint, topic string) ([]model.InterviewAttempt, error)
	FindAll(ctx context.Context) ([]model.InterviewAttempt, error)
}

// FileStorage 录音存储
type FileStorage interface {
	UploadFile(ctx context.Context, filename string, localPath string, contentType string) (string, error)
	Delete(ctx context.Context, filename string) error
}

type StartSessionResult struct {
	SessionID  string `json:"sessionId"`
	QuestionID string `json:"questionId"`
	Question   string `json:"question"`
}

type SubmitAnswerInput struct {
	QuestionID       string
	Answer           string
	TestID           string
	QuestionNumber   int
	TimeTakenSeconds *int64
}

type SubmitVoiceInput struct {
	QuestionID     string
	TestID         string
	QuestionNumber int
	Audio          []byte
	Filename       string
	ContentType    string
}

type VoiceResult struct {
	Transcript string `json:"transcript"`
	VoiceEvaluation
	AudioURL string `json:"audioUrl"`
}

// InterviewService 单题练习流程：出题、文本作答、语音作答
type InterviewService struct {
	sessions    SessionStore
	attempts    AttemptStore
	tests       *TestService
	evaluator   *EvaluationService
	factory     *AttemptFactory
	transcriber Transcriber
	storage     FileStorage

	probe func(path string) (*util.AudioInfo, error)
}

func NewInterviewService(
	sessions SessionStore,
	attempts AttemptStore,
	tests *TestService,
	evaluator *EvaluationService,
	factory *AttemptFactory,
	transcriber Transcriber,
	storage FileStorage,
) *InterviewService {
	return &InterviewService{
		sessions:    sessions,
		attempts:    attempts,
		tests:       tests,
		evaluator:   evaluator,
		factory:     factory,
		transcriber: transcriber,
		storage:     storage,
		probe:       util.GetAudioInfo,
	}
}

func (s *InterviewService) StartSession(ctx context.Context, topic, difficulty string, userID uint) (*StartSessionResult, error) {
	session := &model.InterviewSession{
		Topic:      topic,
		Difficulty: difficulty,
		UserID:     userID,
		StartTime:  s.factory.now(),
	}
	if err := s.sessions.CreateSession(ctx, session); err != nil {
		return nil, err
	}

	questionText, err := s.evaluator.GenerateQuestion(ctx, topic, difficulty)
	if err != nil {
		return nil, err
	}

	question := &model.InterviewQuestion{
		SessionID:    session.ID,
		QuestionText: questionText,
		ModelAnswer:  s.evaluator.ModelAnswer(ctx, questionText),
	}
	if err := s.sessions.CreateQuestion(ctx, question); err != nil {
		return nil, err
	}

	return &StartSessionResult{
		SessionID:  session.ID,
		QuestionID: question.ID,
		Question:   questionText,
	}, nil
}

func (s *InterviewService) SubmitAnswer(ctx context.Context, in SubmitAnswerInput, userID uint) (TextEvaluation, error) {
	question, session, err := s.ownedQuestion(ctx, in.QuestionID, userID)
	if err != nil {
		return TextEvaluation{}, err
	}

	if strings.TrimSpace(in.Answer) == "" {
		return TextEvaluation{}, util.ErrEmptyAnswer
	}

	_, attached, err := s.tests.ResolveTarget(ctx, in.TestID, userID)
	if err != nil {
		return TextEvaluation{}, err
	}

	eval := s.evaluator.EvaluateText(ctx, question.QuestionText, in.Answer)

	if err := s.sessions.CreateAnswer(ctx, &model.InterviewAnswer{
		QuestionID: question.ID,
		UserAnswer: in.Answer,
		Score:      eval.Score,
		Feedback:   eval.Feedback,
	}); err != nil {
		return TextEvaluation{}, err
	}

	attempt := s.factory.Build(AttemptContext{
		UserID:           userID,
		Topic:            session.Topic,
		Difficulty:       session.Difficulty,
		Question:         question.QuestionText,
		TestID:           in.TestID,
		QuestionNumber:   in.QuestionNumber,
		TimeTakenSeconds: in.TimeTakenSeconds,
	}, in.Answer, eval.ModelAnswer, eval.Feedback, model.TextScore{Score: eval.Score})

	if err := s.saveAttempt(ctx, attempt, attached); err != nil {
		return TextEvaluation{}, err
	}
	return eval, nil
}

// SubmitVoice 转写为空时在调用 AI 之前返回 ErrNoVoiceDetected
func (s *InterviewService) SubmitVoice(ctx context.Context, in SubmitVoiceInput, userID uint) (*VoiceResult, error) {
	question, session, err := s.ownedQuestion(ctx, in.QuestionID, userID)
	if err != nil {
		return nil, err
	}

	_, attached, err := s.tests.ResolveTarget(ctx, in.TestID, userID)
	if err != nil {
		return nil, err
	}

	transcript, err := s.transcriber.Transcribe(ctx, in.Audio, in.ContentType)
	if err != nil {
		return nil, err
	}

	eval, err := s.evaluator.EvaluateVoice(ctx, question.QuestionText, transcript)
	if err != nil {
		return nil, err
	}

	objectName, audioURL, duration, err := s.storeAudio(ctx, in)
	if err != nil {
		return nil, err
	}

	attempt := s.factory.Build(AttemptContext{
		UserID:           userID,
		Topic:            session.Topic,
		Difficulty:       session.Difficulty,
		Question:         question.QuestionText,
		TestID:           in.TestID,
		QuestionNumber:   in.QuestionNumber,
		AudioURL:         audioURL,
		TimeTakenSeconds: duration,
	}, transcript, eval.ModelAnswer, eval.Feedback, eval.VoiceScore)

	if err := s.saveAttempt(ctx, attempt, attached); err != nil {
		if delErr := s.storage.Delete(ctx, objectName); delErr != nil {
			logger.Log.Warn("Remove orphan audio failed", zap.String("object", objectName), zap.Error(delErr))
		}
		return nil, err
	}

	return &VoiceResult{
		Transcript:      transcript,
		VoiceEvaluation: eval,
		AudioURL:        audioURL,
	}, nil
}

func (s *InterviewService) PracticeLibrary(ctx context.Context) ([]model.PracticeItem, error) {
	questions, err := s.sessions.FindAllQuestions(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]model.PracticeItem, 0, len(questions))
	for _, q := range questions {
		items = append(items, model.PracticeItem{Question: q.QuestionText, ModelAnswer: q.ModelAnswer})
	}
	return items, nil
}

// QuestionsByTopic 题干包含主题关键字的题目，缺少参考答案时补生成并回写
func (s *InterviewService) QuestionsByTopic(ctx context.Context, topic string) ([]model.PracticeItem, error) {
	questions, err := s.sessions.SearchQuestions(ctx, topic)
	if err != nil {
		return nil, err
	}

	items := make([]model.PracticeItem, 0, len(questions))
	for i := range questions {
		q := &questions[i]
		if q.ModelAnswer == "" || q.ModelAnswer == ModelAnswerErrorMarker {
			q.ModelAnswer = s.evaluator.ModelAnswer(ctx, q.QuestionText)
			if q.ModelAnswer != ModelAnswerErrorMarker {
				if err := s.sessions.UpdateQuestion(ctx, q); err != nil {
					logger.Log.Warn("Cache model answer failed", zap.String("questionId", q.ID), zap.Error(err))
				}
			}
		}
		items = append(items, model.PracticeItem{Question: q.QuestionText, ModelAnswer: q.ModelAnswer})
	}
	return items, nil
}

func (s *InterviewService) ownedQuestion(ctx context.Context, questionID string, userID uint) (*model.InterviewQuestion, *model.InterviewSession, error) {
	question, err := s.sessions.FindQuestionByID(ctx, questionID)
	if err != nil {
		return nil, nil, err
	}

	session, err := s.sessions.FindSessionByID(ctx, question.SessionID)
	if err != nil {
		return nil, nil, err
	}

	if session.UserID != userID {
		return nil, nil, util.ErrUnauthorizedSess
	}
	return question, session, nil
}

// saveAttempt 未挂载到测试的作答不保留 TestID，统计时归入 UNKNOWN
func (s *InterviewService) saveAttempt(ctx context.Context, attempt *model.InterviewAttempt, attached bool) error {
	if attached {
		return s.tests.Attach(ctx, attempt.TestID, attempt)
	}
	attempt.TestID = ""
	return s.attempts.Create(ctx, attempt)
}

// storeAudio 写入临时文件后探测时长并上传，时长探测失败不影响流程
func (s *InterviewService) storeAudio(ctx context.Context, in SubmitVoiceInput) (string, string, *int64, error) {
	ext := util.Ext(in.Filename)
	if ext == "" {
		ext = ".webm"
	}

	tmp, err := os.CreateTemp("", "interview-audio-*"+ext)
	if err != nil {
		return "", "", nil, err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(in.Audio); err != nil {
		tmp.Close()
		return "", "", nil, err
	}
	if err := tmp.Close(); err != nil {
		return "", "", nil, err
	}

	var duration *int64
	if info, err := s.probe(tmp.Name()); err != nil {
		logger.Log.Debug("Probe audio duration failed", zap.Error(err))
	} else if info.Duration > 0 {
		seconds := int64(math.Round(info.Duration))
		duration = &seconds
	}

	objectName := path.Join("audio", model.NewID()+ext)
	contentType := in.ContentType
	if contentType == "" {
		contentType = util.MimeOctetStream
	}

	url, err := s.storage.UploadFile(ctx, objectName, tmp.Name(), contentType)
	if err != nil {
		return "", "", nil, err
	}
	return objectName, url, duration, nil
}

// ReadAudio 读取上传的录音并限制大小
func ReadAudio(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, util.MaxAudioBytes+1))
	if err != nil {
		return nil, err
	}
	if len(data) > util.MaxAudioBytes {
		return nil, fmt.Errorf("%w: audio file too large", util.ErrValidation)
	}
	return data, nil
}
