package service

import (
	"context"
	"errors"
	"interviewai_backend/internal/model"
	"interviewai_backend/pkg/logger"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// TestLocker 按测试 ID 串行化写操作
type TestLocker interface {
	Lock(ctx context.Context, testID string) (unlock func(), err error)
}

// MemoryLocker 单实例部署使用的按键互斥锁
type MemoryLocker struct {
	mu    sync.Mutex
	locks map[string]*keyedLock
}

type keyedLock struct {
	ch   chan struct{}
	refs int
}

func NewMemoryLocker() *MemoryLocker {
	return &MemoryLocker{locks: make(map[string]*keyedLock)}
}

func (l *MemoryLocker) Lock(ctx context.Context, testID string) (func(), error) {
	l.mu.Lock()
	entry, ok := l.locks[testID]
	if !ok {
		entry = &keyedLock{ch: make(chan struct{}, 1)}
		l.locks[testID] = entry
	}
	entry.refs++
	l.mu.Unlock()

	select {
	case entry.ch <- struct{}{}:
	case <-ctx.Done():
		l.release(testID, entry)
		return nil, ctx.Err()
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-entry.ch
			l.release(testID, entry)
		})
	}, nil
}

func (l *MemoryLocker) release(testID string, entry *keyedLock) {
	l.mu.Lock()
	defer l.mu.Unlock()
	entry.refs--
	if entry.refs == 0 {
		delete(l.locks, testID)
	}
}

var ErrLockTimeout = errors.New("acquire test lock timeout")

// 仅删除自己持有的锁
var unlockScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// RedisLocker 多副本部署时基于 SET NX PX 的分布式锁
type RedisLocker struct {
	client *redis.Client
	ttl    time.Duration
	retry  time.Duration
}

func NewRedisLocker(client *redis.Client) *RedisLocker {
	return &RedisLocker{client: client, ttl: 30 * time.Second, retry: 50 * time.Millisecond}
}

func (l *RedisLocker) Lock(ctx context.Context, testID string) (func(), error) {
	key := "interview:test-lock:" + testID
	token := model.NewID()

	for {
		ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return nil, err
		}
		if ok {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ErrLockTimeout
		case <-time.After(l.retry):
		}
	}

	return func() {
		if err := unlockScript.Run(context.Background(), l.client, []string{key}, token).Err(); err != nil {
			logger.Log.Warn("Release test lock failed", zap.String("testId", testID), zap.Error(err))
		}
	}, nil
}
