package repository

import (
	"sync"

	"github.com/windoze95/recipefinder-api/internal/models"
)

// changeNotifier fans store changes out to subscribers.
type changeNotifier struct {
	mu     sync.RWMutex
	nextID int
	subs   map[int]func(models.Change)
}

func (n *changeNotifier) Subscribe(fn func(models.Change)) func() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.subs == nil {
		n.subs = make(map[int]func(models.Change))
	}
	id := n.nextID
	n.nextID++
	n.subs[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			n.mu.Lock()
			delete(n.subs, id)
			n.mu.Unlock()
		})
	}
}

// publish calls every subscriber outside the lock so a subscriber may
// unsubscribe itself.
func (n *changeNotifier) publish(change models.Change) {
	n.mu.RLock()
	fns := make([]func(models.Change), 0, len(n.subs))
	for _, fn := range n.subs {
		fns = append(fns, fn)
	}
	n.mu.RUnlock()

	for _, fn := range fns {
		fn(change)
	}
}
