package bot

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// KeyedLocker serializes work per chat user. Different users never contend.
type KeyedLocker interface {
	// Lock blocks until the user's lock is held or ctx is done. unlock is safe to call more than once.
	Lock(ctx context.Context, userID int64) (unlock func(), err error)
}

type userLock struct {
	sem  chan struct{}
	refs int
}

// memoryLocker keeps one semaphore per user with waiters, dropping it when the last one leaves.
type memoryLocker struct {
	mu    sync.Mutex
	locks map[int64]*userLock
}

// NewMemoryLocker returns a process-local KeyedLocker.
func NewMemoryLocker() KeyedLocker {
	return &memoryLocker{locks: make(map[int64]*userLock)}
}

func (m *memoryLocker) acquireRef(userID int64) *userLock {
	m.mu.Lock()
	defer m.mu.Unlock()

	l, ok := m.locks[userID]
	if !ok {
		l = &userLock{sem: make(chan struct{}, 1)}
		m.locks[userID] = l
	}
	l.refs++
	return l
}

func (m *memoryLocker) releaseRef(userID int64, l *userLock) {
	m.mu.Lock()
	defer m.mu.Unlock()

	l.refs--
	if l.refs == 0 {
		delete(m.locks, userID)
	}
}

func (m *memoryLocker) Lock(ctx context.Context, userID int64) (func(), error) {
	l := m.acquireRef(userID)

	select {
	case l.sem <- struct{}{}:
	case <-ctx.Done():
		m.releaseRef(userID, l)
		return nil, ctx.Err()
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-l.sem
			m.releaseRef(userID, l)
		})
	}, nil
}

// size is the number of users currently holding or waiting on a lock.
func (m *memoryLocker) size() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.locks)
}

const redisLockPrefix = "bot:lock:"

// Deletes the key only if it still holds our token, so an expired lease
// re-acquired by another replica is left alone.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// redisLocker is a lease-based lock shared by every replica pointed at the same Redis.
type redisLocker struct {
	client *redis.Client
	ttl    time.Duration
	retry  time.Duration
}

// NewRedisLocker returns a KeyedLocker backed by SET NX leases of the given TTL.
func NewRedisLocker(client *redis.Client, ttl time.Duration) KeyedLocker {
	return &redisLocker{client: client, ttl: ttl, retry: 25 * time.Millisecond}
}

func (r *redisLocker) Lock(ctx context.Context, userID int64) (func(), error) {
	key := fmt.Sprintf("%s%d", redisLockPrefix, userID)
	token := uuid.New().String()

	ticker := time.NewTicker(r.retry)
	defer ticker.Stop()

	for {
		ok, err := r.client.SetNX(ctx, key, token, r.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to acquire lock for user %d: %w", userID, err)
		}
		if ok {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			// Release errors are ignored: the lease expires on its own.
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = releaseScript.Run(ctx, r.client, []string{key}, token).Err()
		})
	}, nil
}
