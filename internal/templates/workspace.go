package templates

import (
	"context"
	"sync"
)

// Observer is notified after every committed change to a Workspace.
type Observer interface {
	RepositoryChanged(ctx context.Context, repo Repository)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(ctx context.Context, repo Repository)

func (f ObserverFunc) RepositoryChanged(ctx context.Context, repo Repository) {
	f(ctx, repo)
}

// Workspace is the single shared mutable cell holding the current Repository
// value. Changes replace the whole value; readers keep whatever snapshot they
// already hold.
type Workspace struct {
	mu        sync.Mutex
	repo      Repository
	observers []Observer
}

func NewWorkspace(repo Repository, observers ...Observer) *Workspace {
	return &Workspace{repo: repo, observers: observers}
}

// Subscribe registers an observer for later changes.
func (w *Workspace) Subscribe(o Observer) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.observers = append(w.observers, o)
}

// Snapshot returns the current repository value.
func (w *Workspace) Snapshot() Repository {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.repo
}

// Update applies fn to the current value and commits the result. When fn
// fails nothing is committed and observers are not called.
func (w *Workspace) Update(ctx context.Context, fn func(Repository) (Repository, error)) (Repository, error) {
	w.mu.Lock()
	next, err := fn(w.repo)
	if err != nil {
		current := w.repo
		w.mu.Unlock()
		return current, err
	}
	w.repo = next
	observers := append([]Observer(nil), w.observers...)
	w.mu.Unlock()

	for _, o := range observers {
		o.RepositoryChanged(ctx, next)
	}
	return next, nil
}
