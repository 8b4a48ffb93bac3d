package service

import "sync"

// notifier fans out change notifications to subscribed listeners.
// Subscribers are invoked synchronously after each committed mutation,
// outside the owning service's lock.
type notifier struct {
	mu          sync.Mutex
	subscribers []func()
}

// subscribe registers fn to be called after every committed mutation.
func (n *notifier) subscribe(fn func()) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.subscribers = append(n.subscribers, fn)
}

// notify invokes all subscribers.
func (n *notifier) notify() {
	n.mu.Lock()
	subs := make([]func(), len(n.subscribers))
	copy(subs, n.subscribers)
	n.mu.Unlock()

	for _, fn := range subs {
		fn()
	}
}
