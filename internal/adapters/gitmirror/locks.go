package gitmirror

import "sync"

// projectLocks hands out one RWMutex per project id so operations on
// different projects never contend with each other.
type projectLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.RWMutex
}

func newProjectLocks() *projectLocks {
	return &projectLocks{locks: make(map[string]*sync.RWMutex)}
}

func (l *projectLocks) lockFor(projectID string) *sync.RWMutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	lk, ok := l.locks[projectID]
	if !ok {
		lk = &sync.RWMutex{}
		l.locks[projectID] = lk
	}
	return lk
}

// WithWrite runs fn while holding the project's exclusive lock. Mutations
// hold it across their whole ensure-mutate-commit-push pipeline, so the
// git index and working tree only ever see one writer.
func (m *Manager) WithWrite(projectID string, fn func() error) error {
	lk := m.locks.lockFor(projectID)
	lk.Lock()
	defer lk.Unlock()
	return fn()
}

// WithRead runs fn while holding the project's shared lock. Reads may
// overlap each other but never a mutation on the same project.
func (m *Manager) WithRead(projectID string, fn func() error) error {
	lk := m.locks.lockFor(projectID)
	lk.RLock()
	defer lk.RUnlock()
	return fn()
}
