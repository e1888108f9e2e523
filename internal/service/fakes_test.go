package service

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"interviewai_backend/internal/model"
	"interviewai_backend/internal/util"
	"interviewai_backend/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.InitNop()
	m.Run()
}

var fixedNow = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func intp(v int) *int { return &v }

func int64p(v int64) *int64 { return &v }

// fakeOracle 按提示词类型返回预设输出并记录调用次数
type fakeOracle struct {
	mu      sync.Mutex
	replies map[string]string
	errs    map[string]error
	calls   map[string]int
	prompts []string
}

func newFakeOracle() *fakeOracle {
	return &fakeOracle{
		replies: map[string]string{
			"question":     "What is a goroutine?",
			"model_answer": "A goroutine is a lightweight thread managed by the Go runtime.",
			"text":         `{"score": 8, "feedback": "Good"}`,
			"voice":        `{"contentScore":8,"grammarScore":7,"fluencyScore":6,"keywordScore":9,"clarityScore":8,"feedback":"Clear"}`,
			"skills":       `{"skills": []}`,
		},
		errs:  map[string]error{},
		calls: map[string]int{},
	}
}

func promptKind(prompt string) string {
	switch {
	case strings.HasPrefix(prompt, "Generate ONE"):
		return "question"
	case strings.HasPrefix(prompt, "Evaluate the interview answer"):
		return "text"
	case strings.Contains(prompt, "Spoken Answer Transcript"):
		return "voice"
	case strings.HasPrefix(prompt, "Extract only technical skills"):
		return "skills"
	case strings.HasPrefix(prompt, "You are a senior technical interviewer"):
		return "model_answer"
	}
	return "unknown"
}

func (o *fakeOracle) Complete(ctx context.Context, prompt string) (string, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	kind := promptKind(prompt)
	o.calls[kind]++
	o.prompts = append(o.prompts, prompt)

	if err := o.errs[kind]; err != nil {
		return "", err
	}
	return o.replies[kind], nil
}

func (o *fakeOracle) set(kind, reply string) {
	o.mu.Lock()
	o.replies[kind] = reply
	o.mu.Unlock()
}

func (o *fakeOracle) fail(kind string, err error) {
	o.mu.Lock()
	o.errs[kind] = err
	o.mu.Unlock()
}

func (o *fakeOracle) total() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.prompts)
}

func (o *fakeOracle) count(kind string) int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.calls[kind]
}

// fakeTestStore 内存实现，AppendAttempt 在锁内完成以模拟行锁
type fakeTestStore struct {
	mu        sync.Mutex
	tests     map[string]*model.InterviewTest
	mutations int
}

func newFakeTestStore() *fakeTestStore {
	return &fakeTestStore{tests: map[string]*model.InterviewTest{}}
}

func (s *fakeTestStore) Create(ctx context.Context, test *model.InterviewTest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if test.ID == "" {
		test.ID = model.NewID()
	}
	s.tests[test.ID] = cloneTest(test)
	s.mutations++
	return nil
}

func (s *fakeTestStore) FindByID(ctx context.Context, id string) (*model.InterviewTest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tests[id]
	if !ok {
		return nil, util.ErrTestNotFound
	}
	return cloneTest(t), nil
}

func (s *fakeTestStore) FindByUser(ctx context.Context, userID uint) ([]model.InterviewTest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.InterviewTest
	for _, t := range s.tests {
		if t.UserID == userID {
			out = append(out, *cloneTest(t))
		}
	}
	return out, nil
}

func (s *fakeTestStore) AppendAttempt(ctx context.Context, testID string, attempt *model.InterviewAttempt) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tests[testID]
	if !ok {
		return util.ErrTestNotFound
	}
	if t.IsStopped() {
		return util.ErrTestStopped
	}
	if attempt.QuestionNumber <= 0 {
		attempt.QuestionNumber = len(t.Questions) + 1
	}
	attempt.TestID = testID
	t.Questions = append(t.Questions, *attempt)
	s.mutations++
	return nil
}

func (s *fakeTestStore) UpdateLocked(ctx context.Context, testID string, fn func(test *model.InterviewTest) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tests[testID]
	if !ok {
		return util.ErrTestNotFound
	}
	working := cloneTest(t)
	if err := fn(working); err != nil {
		return err
	}
	t.Status = working.Status
	t.FinalScore = working.FinalScore
	t.EndedAt = working.EndedAt
	t.TotalTimeSeconds = working.TotalTimeSeconds
	s.mutations++
	return nil
}

func (s *fakeTestStore) mutationCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mutations
}

func cloneTest(t *model.InterviewTest) *model.InterviewTest {
	c := *t
	c.Questions = append([]model.InterviewAttempt(nil), t.Questions...)
	return &c
}

type fakeAttemptStore struct {
	mu       sync.Mutex
	attempts []model.InterviewAttempt
}

func (s *fakeAttemptStore) Create(ctx context.Context, attempt *model.InterviewAttempt) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attempts = append(s.attempts, *attempt)
	return nil
}

func (s *fakeAttemptStore) FindByUser(ctx context.Context, userID uint) ([]model.InterviewAttempt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.InterviewAttempt
	for _, a := range s.attempts {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *fakeAttemptStore) FindByUserAndTopic(ctx context.Context, userID uint, topic string) ([]model.InterviewAttempt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.InterviewAttempt
	for _, a := range s.attempts {
		if a.UserID == userID && strings.EqualFold(a.Topic, topic) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *fakeAttemptStore) FindAll(ctx context.Context) ([]model.InterviewAttempt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.InterviewAttempt(nil), s.attempts...), nil
}

type fakeSessionStore struct {
	mu        sync.Mutex
	sessions  map[string]*model.InterviewSession
	questions []*model.InterviewQuestion
	answers   []model.InterviewAnswer
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: map[string]*model.InterviewSession{}}
}

func (s *fakeSessionStore) CreateSession(ctx context.Context, session *model.InterviewSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if session.ID == "" {
		session.ID = model.NewID()
	}
	c := *session
	s.sessions[session.ID] = &c
	return nil
}

func (s *fakeSessionStore) FindSessionByID(ctx context.Context, id string) (*model.InterviewSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, util.ErrSessionNotFound
	}
	c := *session
	return &c, nil
}

func (s *fakeSessionStore) CreateQuestion(ctx context.Context, question *model.InterviewQuestion) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if question.ID == "" {
		question.ID = model.NewID()
	}
	c := *question
	s.questions = append(s.questions, &c)
	return nil
}

func (s *fakeSessionStore) UpdateQuestion(ctx context.Context, question *model.InterviewQuestion) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, q := range s.questions {
		if q.ID == question.ID {
			*q = *question
			return nil
		}
	}
	return util.ErrQuestionNotFound
}

func (s *fakeSessionStore) FindQuestionByID(ctx context.Context, id string) (*model.InterviewQuestion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, q := range s.questions {
		if q.ID == id {
			c := *q
			return &c, nil
		}
	}
	return nil, util.ErrQuestionNotFound
}

func (s *fakeSessionStore) FindAllQuestions(ctx context.Context) ([]model.InterviewQuestion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.InterviewQuestion, 0, len(s.questions))
	for _, q := range s.questions {
		out = append(out, *q)
	}
	return out, nil
}

func (s *fakeSessionStore) SearchQuestions(ctx context.Context, keyword string) ([]model.InterviewQuestion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.InterviewQuestion
	for _, q := range s.questions {
		if strings.Contains(strings.ToLower(q.QuestionText), strings.ToLower(keyword)) {
			out = append(out, *q)
		}
	}
	return out, nil
}

func (s *fakeSessionStore) CreateAnswer(ctx context.Context, answer *model.InterviewAnswer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.answers = append(s.answers, *answer)
	return nil
}

type fakeTranscriber struct {
	transcript string
	err        error
	calls      int
}

func (t *fakeTranscriber) Transcribe(ctx context.Context, audio []byte, contentType string) (string, error) {
	t.calls++
	return t.transcript, t.err
}

type fakeStorage struct {
	uploads []string
	deletes []string
}

func (s *fakeStorage) UploadFile(ctx context.Context, filename, localPath, contentType string) (string, error) {
	s.uploads = append(s.uploads, filename)
	return "/uploads/" + filename, nil
}

func (s *fakeStorage) Delete(ctx context.Context, filename string) error {
	s.deletes = append(s.deletes, filename)
	return nil
}

type fakeUserStore struct {
	users []*model.User
}

func (s *fakeUserStore) Create(user *model.User) error {
	user.ID = uint(len(s.users) + 1)
	s.users = append(s.users, user)
	return nil
}

func (s *fakeUserStore) FindByID(id uint) (*model.User, error) {
	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, util.ErrUserNotFound
}

func (s *fakeUserStore) FindByEmail(email string) (*model.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, util.ErrUserNotFound
}

func (s *fakeUserStore) ExistsByEmail(email string) (bool, error) {
	_, err := s.FindByEmail(email)
	if errors.Is(err, util.ErrUserNotFound) {
		return false, nil
	}
	return err == nil, err
}

func bytesOf(n int) *bytes.Reader {
	return bytes.NewReader(make([]byte, n))
}
