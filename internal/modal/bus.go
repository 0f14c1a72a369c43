package modal

// KeyHandler receives a key string (tea.KeyMsg.String() form) and reports
// whether it consumed the key.
type KeyHandler func(key string) bool

type subscription struct {
	handler  KeyHandler
	released bool
}

// Bus is the registry of key subscriptions. Surfaces subscribe while they are
// mounted and release on unmount; Dispatch offers a key newest-first.
type Bus struct {
	subs []*subscription
}

// Subscribe registers h and returns its release func. Release is idempotent.
func (b *Bus) Subscribe(h KeyHandler) (release func()) {
	s := &subscription{handler: h}
	b.subs = append(b.subs, s)
	return func() {
		if s.released {
			return
		}
		s.released = true
		for i, x := range b.subs {
			if x == s {
				b.subs = append(b.subs[:i], b.subs[i+1:]...)
				break
			}
		}
	}
}

// Dispatch offers key to subscribers, newest first, until one consumes it.
func (b *Bus) Dispatch(key string) bool {
	// Handlers may release themselves (or subscribe) while running.
	snapshot := make([]*subscription, len(b.subs))
	copy(snapshot, b.subs)
	for i := len(snapshot) - 1; i >= 0; i-- {
		s := snapshot[i]
		if s.released {
			continue
		}
		if s.handler(key) {
			return true
		}
	}
	return false
}

// Len is the number of live subscriptions.
func (b *Bus) Len() int { return len(b.subs) }
