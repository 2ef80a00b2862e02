package model

import (
	"errors"
	"sync"
	"time"
)

var ErrAlreadyQueued = errors.New("player already in queue")

type QueuedPlayer struct {
	Username string
	JoinedAt time.Time
}

// Queue is a FIFO of players waiting for a matchmade game.
type Queue struct {
	players []QueuedPlayer
	mu      sync.Mutex
}

func NewQueue() *Queue {
	return &Queue{
		players: []QueuedPlayer{},
	}
}

func (q *Queue) AddPlayer(username string) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	for _, p := range q.players {
		if p.Username == username {
			return ErrAlreadyQueued
		}
	}

	q.players = append(q.players, QueuedPlayer{
		Username: username,
		JoinedAt: time.Now(),
	})
	return nil
}

// RemovePlayer drops username from the queue and reports whether it was there.
func (q *Queue) RemovePlayer(username string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	for i, p := range q.players {
		if p.Username == username {
			q.players = append(q.players[:i], q.players[i+1:]...)
			return true
		}
	}
	return false
}

// NextPair pops the two players who have been waiting longest.
func (q *Queue) NextPair() (QueuedPlayer, QueuedPlayer, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.players) < 2 {
		return QueuedPlayer{}, QueuedPlayer{}, false
	}
	first, second := q.players[0], q.players[1]
	q.players = q.players[2:]
	return first, second, true
}

func (q *Queue) Contains(username string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	for _, p := range q.players {
		if p.Username == username {
			return true
		}
	}
	return false
}

// Clear empties the queue.
func (q *Queue) Clear() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.players = []QueuedPlayer{}
}

func (q *Queue) Size() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.players)
}
