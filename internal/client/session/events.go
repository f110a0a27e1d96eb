package session

// EventKind names a session state transition.
type EventKind int

const (
	// TokensChanged fires after a login or a successful silent refresh.
	TokensChanged EventKind = iota + 1
	// Cleared fires after logout or an irrecoverable auth failure.
	Cleared
	// ProfileLoaded fires when the user profile has been set.
	ProfileLoaded
)

func (k EventKind) String() string {
	switch k {
	case TokensChanged:
		return "tokens_changed"
	case Cleared:
		return "cleared"
	case ProfileLoaded:
		return "profile_loaded"
	default:
		return "unknown"
	}
}

// Event is published to subscribers after the state change is committed.
// Generation is the session generation after the change.
type Event struct {
	Kind       EventKind
	Generation uint64
}

const subscriberBuffer = 16

// Subscribe returns a channel of session events and a func that detaches it.
// Delivery is non-blocking: a subscriber that falls a full buffer behind
// misses events, which is fine for consumers that re-read Snapshot.
func (m *Manager) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, subscriberBuffer)

	m.mu.Lock()
	id := m.nextSub
	m.nextSub++
	m.subs[id] = ch
	m.mu.Unlock()

	var once bool
	return ch, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if once {
			return
		}
		once = true
		delete(m.subs, id)
		close(ch)
	}
}

// publishLocked must be called with m.mu held.
func (m *Manager) publishLocked(kind EventKind) {
	ev := Event{Kind: kind, Generation: m.gen}
	for _, ch := range m.subs {
		select {
		case ch <- ev:
		default:
			m.logger.Warn("session event dropped", "kind", kind.String(), "generation", m.gen)
		}
	}
}
