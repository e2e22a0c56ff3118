package sync

import (
	"context"
	"log"
	"sync"
	"time"
)

const DefaultDebounce = 2 * time.Second

// Pusher coalesces rapid successive mutations, such as drag moves, into one
// delayed remote push. A new mutation inside the window supersedes the
// pending push. Failures are logged and dropped: local state stays
// authoritative and the next mutation retries implicitly.
type Pusher struct {
	mu       sync.Mutex
	timer    *time.Timer
	debounce time.Duration
	push     func(ctx context.Context) error
	timeout  time.Duration
}

func NewPusher(debounce time.Duration, push func(ctx context.Context) error) *Pusher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Pusher{
		debounce: debounce,
		push:     push,
		timeout:  10 * time.Second,
	}
}

// Schedule arms (or re-arms) the debounce window. Never blocks.
func (p *Pusher) Schedule() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.timer != nil {
		p.timer.Stop()
	}
	p.timer = time.AfterFunc(p.debounce, p.fire)
}

// Flush pushes immediately, cancelling any pending push. Used on shutdown
// and in tests.
func (p *Pusher) Flush() {
	p.mu.Lock()
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
	p.mu.Unlock()
	p.fire()
}

// Stop cancels any pending push without sending.
func (p *Pusher) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
}

func (p *Pusher) fire() {
	p.mu.Lock()
	p.timer = nil
	push := p.push
	timeout := p.timeout
	p.mu.Unlock()

	if push == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := push(ctx); err != nil {
		log.Printf("sync push: %v", err)
	}
}
