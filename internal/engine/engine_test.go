package engine

import (
	"testing"
	"time"

	"focusroom/internal/model"
	"focusroom/internal/stats"
)

type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 3, 10, 9, 0, 0, 0, time.Local)}
}

func (c *fakeClock) Now() time.Time {
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.t = c.t.Add(d)
}

func newTestEngine(t *testing.T) (*Engine, *stats.Ledger, *fakeClock) {
	t.Helper()
	clock := newFakeClock()
	ledger := stats.NewLedger(nil, clock.Now)
	eng := New(nil, ledger, clock.Now)
	return eng, ledger, clock
}

func TestAdvanceCycleIsPeriodic(t *testing.T) {
	session := 1
	status := ""

	// Four focus+break pairs, two advances each: 8 applications total.
	for pair := 1; pair <= 4; pair++ {
		status = model.StatusFocus
		status, session = advance(status, session)

		wantBreak := model.StatusShortBreak
		if pair == 4 {
			wantBreak = model.StatusLongBreak
		}
		if status != wantBreak {
			t.Fatalf("pair %d: expected %s after focus, got %s", pair, wantBreak, status)
		}
		if session != pair {
			t.Fatalf("pair %d: session should stay %d through the break, got %d", pair, pair, session)
		}

		status, session = advance(status, session)
		if status != model.StatusIdle {
			t.Fatalf("pair %d: expected idle after break, got %s", pair, status)
		}
	}

	if session != 1 {
		t.Fatalf("expected session reset to 1 after the long break, got %d", session)
	}
}

func TestAdvanceGuardsUnknownStatus(t *testing.T) {
	status, session := advance("garbage", 3)
	if status != model.StatusIdle || session != 3 {
		t.Fatalf("expected (idle, 3), got (%s, %d)", status, session)
	}
}

func TestBasicFocusCycle(t *testing.T) {
	eng, ledger, clock := newTestEngine(t)

	eng.Start()
	snap := eng.Snapshot()
	if snap.Status != model.StatusFocus || !snap.IsRunning {
		t.Fatalf("expected running focus, got %+v", snap)
	}
	if snap.RemainingSeconds != 25*60 || snap.CurrentSession != 1 {
		t.Fatalf("unexpected start snapshot: %+v", snap)
	}
	if snap.EndTime == nil {
		t.Fatal("running timer must carry an end time")
	}

	clock.Advance(25*time.Minute + 50*time.Millisecond)
	eng.Tick()

	snap = eng.Snapshot()
	if snap.Status != model.StatusShortBreak {
		t.Fatalf("expected short_break, got %s", snap.Status)
	}
	if snap.RemainingSeconds != 5*60 {
		t.Fatalf("break should start at full duration, got %d", snap.RemainingSeconds)
	}
	if snap.CurrentSession != 1 {
		t.Fatalf("break belongs to session 1, got %d", snap.CurrentSession)
	}
	if snap.CompletedToday != 1 {
		t.Fatalf("expected completedToday=1, got %d", snap.CompletedToday)
	}
	if eng.Coins() != model.CoinsPerPomodoro {
		t.Fatalf("expected %d coin, got %d", model.CoinsPerPomodoro, eng.Coins())
	}
	if today := ledger.Today(); today.Count != 1 || today.Minutes != 25 {
		t.Fatalf("unexpected ledger record: %+v", today)
	}
}

func TestFullSetEndsInLongBreak(t *testing.T) {
	eng, _, clock := newTestEngine(t)

	for session := 1; session <= 4; session++ {
		eng.Start()
		if got := eng.Snapshot().CurrentSession; got != session {
			t.Fatalf("expected session %d, got %d", session, got)
		}

		clock.Advance(26 * time.Minute)
		eng.Tick()

		snap := eng.Snapshot()
		if session < 4 {
			if snap.Status != model.StatusShortBreak {
				t.Fatalf("session %d: expected short_break, got %s", session, snap.Status)
			}
		} else if snap.Status != model.StatusLongBreak {
			t.Fatalf("4th focus must yield long_break, got %s", snap.Status)
		}
		if snap.CurrentSession != session {
			t.Fatalf("session number must not move during the break, got %d", snap.CurrentSession)
		}

		clock.Advance(16 * time.Minute)
		eng.Tick()
		snap = eng.Snapshot()
		if snap.Status != model.StatusIdle || snap.IsRunning {
			t.Fatalf("expected idle after break, got %+v", snap)
		}
	}

	if got := eng.Snapshot().CurrentSession; got != 1 {
		t.Fatalf("cycle must reset to session 1, got %d", got)
	}
	if eng.Coins() != 4 {
		t.Fatalf("expected 4 coins after 4 completions, got %d", eng.Coins())
	}
}

func TestDriftResistance(t *testing.T) {
	eng, _, clock := newTestEngine(t)

	eng.Start()
	// Simulate a long suspension well past several phase durations.
	clock.Advance(3 * time.Hour)
	eng.Tick()

	snap := eng.Snapshot()
	if snap.Status != model.StatusShortBreak {
		t.Fatalf("expected exactly one transition into short_break, got %s", snap.Status)
	}
	if snap.RemainingSeconds != 5*60 {
		t.Fatalf("new phase must start at its full duration, got %d", snap.RemainingSeconds)
	}
	if snap.CompletedToday != 1 {
		t.Fatalf("expected one completion, got %d", snap.CompletedToday)
	}

	// The break's end time was rebased on now, so it only elapses once the
	// clock actually moves past it.
	eng.Tick()
	if got := eng.Snapshot().Status; got != model.StatusShortBreak {
		t.Fatalf("break should still be running, got %s", got)
	}

	clock.Advance(6 * time.Minute)
	eng.Tick()
	snap = eng.Snapshot()
	if snap.Status != model.StatusIdle {
		t.Fatalf("expected idle after the break elapsed, got %s", snap.Status)
	}
	if snap.CurrentSession != 2 {
		t.Fatalf("expected session 2 after the break, got %d", snap.CurrentSession)
	}
	if snap.CompletedToday != 1 {
		t.Fatalf("break completion must not credit a session, got %d", snap.CompletedToday)
	}
}

func TestSkipNeverRewards(t *testing.T) {
	eng, ledger, _ := newTestEngine(t)

	eng.Start()
	eng.Skip()

	snap := eng.Snapshot()
	if snap.Status != model.StatusShortBreak || !snap.IsRunning {
		t.Fatalf("skip should enter the break running, got %+v", snap)
	}
	if snap.RemainingSeconds != 5*60 {
		t.Fatalf("skipped-into phase should start full, got %d", snap.RemainingSeconds)
	}
	if eng.Coins() != 0 || snap.CompletedToday != 0 {
		t.Fatalf("skip must not credit rewards: coins=%d completed=%d", eng.Coins(), snap.CompletedToday)
	}
	if today := ledger.Today(); today.Count != 0 {
		t.Fatalf("skip must not touch the ledger, got %+v", today)
	}

	eng.Skip()
	snap = eng.Snapshot()
	if snap.Status != model.StatusIdle || snap.CurrentSession != 2 {
		t.Fatalf("expected idle session 2 after skipping the break, got %+v", snap)
	}
	if snap.RemainingSeconds != 25*60 {
		t.Fatalf("idle baseline should be the focus duration, got %d", snap.RemainingSeconds)
	}
}

func TestPauseResumeIdempotent(t *testing.T) {
	eng, _, clock := newTestEngine(t)

	eng.Start()
	clock.Advance(10 * time.Second)
	eng.Pause()

	snap := eng.Snapshot()
	if snap.IsRunning || snap.EndTime != nil {
		t.Fatalf("pause must stop the countdown, got %+v", snap)
	}
	if snap.RemainingSeconds != 25*60-10 {
		t.Fatalf("expected 1490s frozen, got %d", snap.RemainingSeconds)
	}

	eng.Pause()
	if again := eng.Snapshot(); again != snap {
		t.Fatalf("second pause changed state: %+v vs %+v", again, snap)
	}

	// A frozen timer ignores elapsed wall time entirely.
	clock.Advance(2 * time.Hour)
	eng.Tick()
	if got := eng.Snapshot().RemainingSeconds; got != 1490 {
		t.Fatalf("paused remaining drifted to %d", got)
	}

	eng.Resume()
	first := eng.Snapshot()
	if !first.IsRunning || first.EndTime == nil {
		t.Fatalf("resume must restart the countdown, got %+v", first)
	}
	eng.Resume()
	if again := eng.Snapshot(); *again.EndTime != *first.EndTime {
		t.Fatalf("second resume moved the end time: %v vs %v", again.EndTime, first.EndTime)
	}

	clock.Advance(10 * time.Second)
	eng.Tick()
	if got := eng.Snapshot().RemainingSeconds; got != 1480 {
		t.Fatalf("expected 1480s after resume+10s, got %d", got)
	}
}

func TestResumeFromIdleIsNoop(t *testing.T) {
	eng, _, _ := newTestEngine(t)
	eng.Resume()
	snap := eng.Snapshot()
	if snap.IsRunning || snap.Status != model.StatusIdle {
		t.Fatalf("resume from idle must be a no-op, got %+v", snap)
	}
}

func TestResetDiscardsCycleProgress(t *testing.T) {
	eng, ledger, clock := newTestEngine(t)

	// Complete one session so there is recorded history, then abandon the next.
	eng.Start()
	clock.Advance(26 * time.Minute)
	eng.Tick()
	clock.Advance(6 * time.Minute)
	eng.Tick()

	eng.Start()
	clock.Advance(10 * time.Minute)
	eng.Reset()

	snap := eng.Snapshot()
	if snap.Status != model.StatusIdle || snap.IsRunning || snap.EndTime != nil {
		t.Fatalf("reset must return to idle, got %+v", snap)
	}
	if snap.CurrentSession != 1 || snap.RemainingSeconds != 25*60 {
		t.Fatalf("reset must re-baseline, got %+v", snap)
	}
	if eng.Coins() != 1 || ledger.Today().Count != 1 {
		t.Fatal("reset must not undo recorded completions")
	}
}

func TestTickWhileIdleIsNoop(t *testing.T) {
	eng, _, clock := newTestEngine(t)
	clock.Advance(time.Hour)
	eng.Tick()
	snap := eng.Snapshot()
	if snap.Status != model.StatusIdle || snap.CompletedToday != 0 {
		t.Fatalf("idle tick mutated state: %+v", snap)
	}
}

func TestDailyRollover(t *testing.T) {
	eng, ledger, clock := newTestEngine(t)

	eng.Start()
	clock.Advance(26 * time.Minute)
	eng.Tick()
	if eng.Snapshot().CompletedToday != 1 {
		t.Fatal("expected one completion today")
	}

	clock.Advance(24 * time.Hour)
	eng.RolloverCheck()

	if got := eng.Snapshot().CompletedToday; got != 0 {
		t.Fatalf("rollover must reset the display counter, got %d", got)
	}
	count, minutes, days := ledger.Totals()
	if count != 1 || minutes != 25 || days != 1 {
		t.Fatalf("rollover must not touch the ledger: %d/%d/%d", count, minutes, days)
	}
}

func TestSettingsChangeDeferredWhileRunning(t *testing.T) {
	eng, _, clock := newTestEngine(t)

	eng.Start()
	clock.Advance(time.Minute)
	eng.Tick()

	settings := model.TimerSettings{
		FocusDurationSeconds:      50 * 60,
		ShortBreakDurationSeconds: 10 * 60,
		LongBreakDurationSeconds:  20 * 60,
	}
	if err := eng.SetSettings(settings); err != nil {
		t.Fatalf("set settings: %v", err)
	}

	// The active phase keeps its original countdown.
	eng.Tick()
	if got := eng.Snapshot().RemainingSeconds; got != 24*60 {
		t.Fatalf("active countdown must not re-baseline, got %d", got)
	}

	// The next phase picks up the new durations.
	clock.Advance(25 * time.Minute)
	eng.Tick()
	if got := eng.Snapshot().RemainingSeconds; got != 10*60 {
		t.Fatalf("next break should use new duration, got %d", got)
	}
}

func TestSettingsChangeWhileIdleRebaselines(t *testing.T) {
	eng, _, _ := newTestEngine(t)

	settings := model.TimerSettings{
		FocusDurationSeconds:      50 * 60,
		ShortBreakDurationSeconds: 5 * 60,
		LongBreakDurationSeconds:  15 * 60,
	}
	if err := eng.SetSettings(settings); err != nil {
		t.Fatalf("set settings: %v", err)
	}
	if got := eng.Snapshot().RemainingSeconds; got != 50*60 {
		t.Fatalf("idle baseline should follow settings, got %d", got)
	}

	if err := eng.SetSettings(model.TimerSettings{}); err != ErrInvalidSettings {
		t.Fatalf("expected ErrInvalidSettings, got %v", err)
	}
}

func TestSpendCoinsNeverNegative(t *testing.T) {
	eng, _, _ := newTestEngine(t)

	eng.AddCoins(3)
	if eng.SpendCoins(5) {
		t.Fatal("spend beyond balance must fail")
	}
	if eng.Coins() != 3 {
		t.Fatalf("failed spend must not mutate, got %d", eng.Coins())
	}
	if !eng.SpendCoins(3) {
		t.Fatal("exact spend must succeed")
	}
	if eng.Coins() != 0 {
		t.Fatalf("expected zero balance, got %d", eng.Coins())
	}
}

type recordingOutbox struct {
	minutes []int
	balance []int
}

func (o *recordingOutbox) SessionCompleted(minutes, coinBalance int) {
	o.minutes = append(o.minutes, minutes)
	o.balance = append(o.balance, coinBalance)
}

func TestCompletionEnqueuesOutboxAfterLocalCommit(t *testing.T) {
	eng, _, clock := newTestEngine(t)
	outbox := &recordingOutbox{}
	eng.SetOutbox(outbox)

	eng.Start()
	eng.Skip()
	if len(outbox.minutes) != 0 {
		t.Fatal("skip must not reach the outbox")
	}

	eng.Reset()
	eng.Start()
	clock.Advance(26 * time.Minute)
	eng.Tick()

	if len(outbox.minutes) != 1 || outbox.minutes[0] != 25 {
		t.Fatalf("expected one 25-minute record, got %v", outbox.minutes)
	}
	if outbox.balance[0] != eng.Coins() {
		t.Fatalf("outbox balance %d should match committed balance %d", outbox.balance[0], eng.Coins())
	}
}

func TestEventsEmitted(t *testing.T) {
	eng, _, clock := newTestEngine(t)
	var events []Event
	eng.SetListener(func(e Event) { events = append(events, e) })

	eng.Start()
	clock.Advance(26 * time.Minute)
	eng.Tick()
	clock.Advance(6 * time.Minute)
	eng.Tick()

	want := []Event{EventFocusStarted, EventFocusCompleted, EventBreakEnded}
	if len(events) != len(want) {
		t.Fatalf("expected %v, got %v", want, events)
	}
	for i := range want {
		if events[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, events)
		}
	}
}
