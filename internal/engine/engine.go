package engine

import (
	"errors"
	"log"
	"sync"
	"time"

	"focusroom/internal/model"
	"focusroom/internal/stats"
	"focusroom/internal/store"
)

type Event string

const (
	EventFocusStarted   Event = "focus_started"
	EventFocusCompleted Event = "focus_completed"
	EventBreakEnded     Event = "break_ended"
	EventCycleCompleted Event = "cycle_completed"
)

// Listener receives discrete transition events for sound and notification
// collaborators. The engine does not depend on their success.
type Listener func(Event)

// Outbox receives the best-effort remote side effects of a completed focus
// session. Implementations must never block the caller.
type Outbox interface {
	SessionCompleted(minutes, coinBalance int)
}

var ErrInvalidSettings = errors.New("all durations must be positive seconds")

// Engine is the timer state machine. All countdown state derives from an
// absolute end timestamp, so missed ticks during suspension cannot corrupt
// remaining time: a late tick produces exactly one phase transition.
type Engine struct {
	mu       sync.Mutex
	now      func() time.Time
	local    *store.Local
	ledger   *stats.Ledger
	outbox   Outbox
	listener Listener

	settings model.TimerSettings
	snap     model.TimerSnapshot
	coins    int
	dateKey  string
}

func New(local *store.Local, ledger *stats.Ledger, now func() time.Time) *Engine {
	if now == nil {
		now = time.Now
	}

	e := &Engine{
		now:      now,
		local:    local,
		ledger:   ledger,
		settings: model.DefaultTimerSettings(),
	}
	e.load()
	e.dateKey = e.now().Format("2006-01-02")
	return e
}

func (e *Engine) SetOutbox(outbox Outbox) {
	e.mu.Lock()
	e.outbox = outbox
	e.mu.Unlock()
}

func (e *Engine) SetListener(listener Listener) {
	e.mu.Lock()
	e.listener = listener
	e.mu.Unlock()
}

// advance is the phase transition table. The break after a focus session
// belongs to the session just completed, so the session number only moves
// when a break ends.
func advance(status string, session int) (string, int) {
	switch status {
	case model.StatusFocus:
		if session >= model.SessionsPerSet {
			return model.StatusLongBreak, session
		}
		return model.StatusShortBreak, session
	case model.StatusShortBreak:
		return model.StatusIdle, session + 1
	case model.StatusLongBreak:
		return model.StatusIdle, 1
	default:
		return model.StatusIdle, session
	}
}

func (e *Engine) Start() {
	e.mu.Lock()
	duration := e.settings.FocusDurationSeconds
	end := e.now().Add(time.Duration(duration) * time.Second)
	e.snap.Status = model.StatusFocus
	e.snap.IsRunning = true
	e.snap.RemainingSeconds = duration
	e.snap.EndTime = &end
	e.persistLocked()
	e.mu.Unlock()

	e.emit(EventFocusStarted)
}

func (e *Engine) Pause() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.snap.IsRunning {
		return
	}
	if e.snap.EndTime != nil {
		e.snap.RemainingSeconds = remainingSeconds(*e.snap.EndTime, e.now())
	}
	e.snap.IsRunning = false
	e.snap.EndTime = nil
	e.persistLocked()
}

func (e *Engine) Resume() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.snap.IsRunning || e.snap.Status == model.StatusIdle {
		return
	}
	end := e.now().Add(time.Duration(e.snap.RemainingSeconds) * time.Second)
	e.snap.IsRunning = true
	e.snap.EndTime = &end
	e.persistLocked()
}

// Skip force-advances to the next phase without crediting a reward. Only
// natural completion emits coins and stats.
func (e *Engine) Skip() {
	e.mu.Lock()
	defer e.mu.Unlock()

	next, nextSession := advance(e.snap.Status, e.snap.CurrentSession)
	e.applyPhaseLocked(next, nextSession)
	e.persistLocked()
}

// Reset discards progress in the current cycle. Already-recorded
// completions are untouched.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.snap.Status = model.StatusIdle
	e.snap.IsRunning = false
	e.snap.RemainingSeconds = e.settings.FocusDurationSeconds
	e.snap.CurrentSession = 1
	e.snap.EndTime = nil
	e.persistLocked()
}

// Tick recomputes remaining time from the end timestamp and performs at
// most one phase transition when the phase has elapsed. The transition,
// stats append, coin credit and local persist are applied as one atomic
// unit; the remote push is enqueued only after the local commit.
func (e *Engine) Tick() {
	e.mu.Lock()

	if !e.snap.IsRunning || e.snap.EndTime == nil {
		e.mu.Unlock()
		return
	}

	remaining := remainingSeconds(*e.snap.EndTime, e.now())
	if remaining > 0 {
		e.snap.RemainingSeconds = remaining
		e.mu.Unlock()
		return
	}

	wasFocus := e.snap.Status == model.StatusFocus
	wasLongBreak := e.snap.Status == model.StatusLongBreak
	next, nextSession := advance(e.snap.Status, e.snap.CurrentSession)

	var minutes, balance int
	if wasFocus {
		minutes = (e.settings.FocusDurationSeconds + 30) / 60
		e.ledger.Record(minutes)
		e.snap.CompletedToday++
		e.coins += model.CoinsPerPomodoro
		balance = e.coins
	}

	e.applyPhaseLocked(next, nextSession)
	e.persistLocked()

	outbox := e.outbox
	e.mu.Unlock()

	if wasFocus && outbox != nil {
		outbox.SessionCompleted(minutes, balance)
	}
	if wasFocus {
		e.emit(EventFocusCompleted)
	}
	if next == model.StatusIdle {
		if wasLongBreak {
			e.emit(EventCycleCompleted)
		} else if !wasFocus {
			e.emit(EventBreakEnded)
		}
	}
}

// applyPhaseLocked enters the given phase with its full configured
// duration. The end timestamp is computed from now, not from the previous
// end, so detection delay never compounds into drift.
func (e *Engine) applyPhaseLocked(status string, session int) {
	e.snap.CurrentSession = session
	if status == model.StatusIdle {
		e.snap.Status = model.StatusIdle
		e.snap.IsRunning = false
		e.snap.RemainingSeconds = e.settings.FocusDurationSeconds
		e.snap.EndTime = nil
		return
	}

	duration := e.settings.DurationSeconds(status)
	end := e.now().Add(time.Duration(duration) * time.Second)
	e.snap.Status = status
	e.snap.IsRunning = true
	e.snap.RemainingSeconds = duration
	e.snap.EndTime = &end
}

// RolloverCheck resets the completed-today display counter when the local
// date changes. The ledger's permanent per-day records are untouched.
func (e *Engine) RolloverCheck() {
	e.mu.Lock()
	defer e.mu.Unlock()

	today := e.now().Format("2006-01-02")
	if today == e.dateKey {
		return
	}
	e.dateKey = today
	e.snap.CompletedToday = 0
	e.persistLocked()
}

func (e *Engine) Snapshot() model.TimerSnapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snap
}

func (e *Engine) Running() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snap.IsRunning
}

func (e *Engine) Settings() model.TimerSettings {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.settings
}

// SetSettings applies new durations. The idle baseline updates immediately;
// an active phase keeps its countdown and picks up the change next cycle.
func (e *Engine) SetSettings(settings model.TimerSettings) error {
	if !settings.Valid() {
		return ErrInvalidSettings
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.settings = settings
	if e.snap.Status == model.StatusIdle {
		e.snap.RemainingSeconds = settings.FocusDurationSeconds
	}
	if e.local != nil {
		if err := e.local.SaveJSON(store.KeySettings, e.settings); err != nil {
			log.Printf("persist settings: %v", err)
		}
	}
	e.persistLocked()
	return nil
}

func (e *Engine) Coins() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.coins
}

func (e *Engine) AddCoins(amount int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.coins += amount
	e.persistLocked()
}

// SpendCoins is an atomic check-then-debit. The balance never goes
// negative.
func (e *Engine) SpendCoins(amount int) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.coins < amount {
		return false
	}
	e.coins -= amount
	e.persistLocked()
	return true
}

// SetCoins overwrites the balance during login reconciliation.
func (e *Engine) SetCoins(amount int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if amount < 0 {
		amount = 0
	}
	e.coins = amount
	e.persistLocked()
}

func (e *Engine) load() {
	e.snap = model.TimerSnapshot{
		Status:           model.StatusIdle,
		RemainingSeconds: e.settings.FocusDurationSeconds,
		CurrentSession:   1,
	}
	if e.local == nil {
		return
	}

	var settings model.TimerSettings
	if err := e.local.LoadJSON(store.KeySettings, &settings); err == nil && settings.Valid() {
		e.settings = settings
	}

	var snap model.TimerSnapshot
	if err := e.local.LoadJSON(store.KeyTimer, &snap); err == nil {
		// A countdown does not survive a restart: only session position and
		// the daily counter carry over.
		e.snap.CurrentSession = snap.CurrentSession
		e.snap.CompletedToday = snap.CompletedToday
		if e.snap.CurrentSession < 1 || e.snap.CurrentSession > model.SessionsPerSet {
			e.snap.CurrentSession = 1
		}
	}
	e.snap.RemainingSeconds = e.settings.FocusDurationSeconds

	var coins int
	if err := e.local.LoadJSON(store.KeyCoins, &coins); err == nil && coins > 0 {
		e.coins = coins
	}
}

func (e *Engine) persistLocked() {
	if e.local == nil {
		return
	}
	if err := e.local.SaveJSON(store.KeyTimer, e.snap); err != nil {
		log.Printf("persist timer: %v", err)
	}
	if err := e.local.SaveJSON(store.KeyCoins, e.coins); err != nil {
		log.Printf("persist coins: %v", err)
	}
}

func (e *Engine) emit(event Event) {
	e.mu.Lock()
	listener := e.listener
	e.mu.Unlock()
	if listener != nil {
		listener(event)
	}
}

func remainingSeconds(end, now time.Time) int {
	d := end.Sub(now)
	if d <= 0 {
		return 0
	}
	secs := int(d / time.Second)
	if d%time.Second != 0 {
		secs++
	}
	return secs
}
