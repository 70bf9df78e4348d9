package game

import (
	"sync"

	"github.com/mcoot/wordtiles/internal/model"
)

// gameLocks serializes mutating actions per game.
// Entries are reference counted and dropped when idle.
type gameLocks struct {
	mu    sync.Mutex
	locks map[model.GameID]*gameLock
}

type gameLock struct {
	mu   sync.Mutex
	refs int
}

func newGameLocks() *gameLocks {
	return &gameLocks{locks: make(map[model.GameID]*gameLock)}
}

// Lock blocks until the game is free and returns the matching unlock
func (l *gameLocks) Lock(id model.GameID) func() {
	l.mu.Lock()
	lock, ok := l.locks[id]
	if !ok {
		lock = &gameLock{}
		l.locks[id] = lock
	}
	lock.refs++
	l.mu.Unlock()

	lock.mu.Lock()
	return func() {
		lock.mu.Unlock()
		l.mu.Lock()
		lock.refs--
		if lock.refs == 0 {
			delete(l.locks, id)
		}
		l.mu.Unlock()
	}
}

func (l *gameLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
