package service

import "sync"

// gameLocks hands out one mutex per game id. Entries are dropped once no
// goroutine holds or waits on them.
type gameLocks struct {
	mu    sync.Mutex
	locks map[int]*gameLock
}

type gameLock struct {
	sync.Mutex
	refs int
}

func newGameLocks() *gameLocks {
	return &gameLocks{locks: make(map[int]*gameLock)}
}

// lock blocks until gameID is free and returns the matching unlock.
func (gl *gameLocks) lock(gameID int) func() {
	gl.mu.Lock()
	l, ok := gl.locks[gameID]
	if !ok {
		l = &gameLock{}
		gl.locks[gameID] = l
	}
	l.refs++
	gl.mu.Unlock()

	l.Lock()
	return func() {
		l.Unlock()
		gl.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(gl.locks, gameID)
		}
		gl.mu.Unlock()
	}
}
