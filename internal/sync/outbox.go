package sync

import (
	"context"
	"log"
	"time"
)

// Outbox sends the remote side effects of completed focus sessions:
// a bounded, retry-free best-effort send. It never blocks the timer and
// never rolls back local state on failure.
type Outbox struct {
	remote  Remote
	timeout time.Duration
}

func NewOutbox(remote Remote) *Outbox {
	return &Outbox{remote: remote, timeout: 10 * time.Second}
}

// SessionCompleted enqueues a session record and a coin balance push.
// Fire-and-forget: errors are logged and swallowed.
func (o *Outbox) SessionCompleted(minutes, coinBalance int) {
	if o == nil || o.remote == nil {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), o.timeout)
		defer cancel()

		if err := o.remote.RecordSession(ctx, minutes); err != nil {
			log.Printf("record session: %v", err)
		}
		if err := o.remote.UpdateCoins(ctx, coinBalance); err != nil {
			log.Printf("push coins: %v", err)
		}
	}()
}
