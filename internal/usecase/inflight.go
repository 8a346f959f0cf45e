package usecase

import (
	"errors"
	"sync"
)

var ErrSubmissionInFlight = errors.New("a submission is already being processed for this session")

// inflightGuard allows one pending submission per session.
type inflightGuard struct {
	mu     sync.Mutex
	active map[string]struct{}
}

func newInflightGuard() *inflightGuard {
	return &inflightGuard{active: make(map[string]struct{})}
}

func (g *inflightGuard) acquire(session string) (release func(), err error) {
	if session == "" {
		return func() {}, nil
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, busy := g.active[session]; busy {
		return nil, ErrSubmissionInFlight
	}
	g.active[session] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			delete(g.active, session)
			g.mu.Unlock()
		})
	}, nil
}
