package router

import (
	"context"

	"github.com/aussiebroadwan/snaptranslate/internal/client/session"
)

// Subscriber is satisfied by *session.Manager.
type Subscriber interface {
	Subscribe() (<-chan session.Event, func())
}

// Watch re-runs the guard on every session event until ctx is done. When the
// session is cleared without an explicit logout (failed refresh, failed
// profile load) the reset hooks run as well, so no feature result outlives
// the sign-in that produced it.
func (r *Router) Watch(ctx context.Context, sub Subscriber) {
	events, cancel := sub.Subscribe()
	defer cancel()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			r.Enforce()
			if ev.Kind == session.Cleared {
				r.runResetHooks()
			}
		case <-ctx.Done():
			return
		}
	}
}
