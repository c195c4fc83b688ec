package service

import (
	"context"
	"slices"
	"sync"

	"golang.org/x/sync/semaphore"
)

// roomLocks hands out one mutually exclusive slot per room id. Entries are
// reference counted and dropped once nobody holds or waits on them.
type roomLocks struct {
	mu    sync.Mutex
	rooms map[string]*roomLock
}

type roomLock struct {
	sem  *semaphore.Weighted
	refs int
}

func newRoomLocks() *roomLocks {
	return &roomLocks{rooms: make(map[string]*roomLock)}
}

// lock acquires every listed room in ascending id order and returns the
// function that releases them. On error nothing is held.
func (l *roomLocks) lock(ctx context.Context, roomIDs ...string) (func(), error) {
	ids := slices.Clone(roomIDs)
	slices.Sort(ids)
	ids = slices.Compact(ids)

	held := make([]string, 0, len(ids))
	release := func() {
		for i := len(held) - 1; i >= 0; i-- {
			l.release(held[i])
		}
	}

	for _, id := range ids {
		rl := l.ref(id)
		if err := rl.sem.Acquire(ctx, 1); err != nil {
			l.unref(id)
			release()
			return nil, err
		}
		held = append(held, id)
	}

	var once sync.Once
	return func() { once.Do(release) }, nil
}

func (l *roomLocks) ref(id string) *roomLock {
	l.mu.Lock()
	defer l.mu.Unlock()
	rl, ok := l.rooms[id]
	if !ok {
		rl = &roomLock{sem: semaphore.NewWeighted(1)}
		l.rooms[id] = rl
	}
	rl.refs++
	return rl
}

func (l *roomLocks) release(id string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	rl := l.rooms[id]
	rl.sem.Release(1)
	l.drop(id, rl)
}

func (l *roomLocks) unref(id string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.drop(id, l.rooms[id])
}

func (l *roomLocks) drop(id string, rl *roomLock) {
	rl.refs--
	if rl.refs == 0 {
		delete(l.rooms, id)
	}
}

func (l *roomLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.rooms)
}
