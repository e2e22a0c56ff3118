package stats

import (
	"log"
	"sync"
	"time"

	"focusroom/internal/model"
	"focusroom/internal/store"
)

const dayFormat = "2006-01-02"

// Ledger accumulates per-day focus counts and durations. Days are keyed by
// the local calendar date, not UTC, so sessions near midnight land on the
// day the user experienced.
type Ledger struct {
	mu      sync.Mutex
	now     func() time.Time
	local   *store.Local
	records map[string]model.DailyRecord
}

func NewLedger(local *store.Local, now func() time.Time) *Ledger {
	if now == nil {
		now = time.Now
	}
	l := &Ledger{
		now:     now,
		local:   local,
		records: map[string]model.DailyRecord{},
	}
	if local != nil {
		if err := local.LoadJSON(store.KeyStats, &l.records); err != nil && err != store.ErrKeyNotFound {
			log.Printf("load stats: %v", err)
		}
		if l.records == nil {
			l.records = map[string]model.DailyRecord{}
		}
	}
	return l
}

func (l *Ledger) TodayKey() string {
	return l.now().Format(dayFormat)
}

// Record appends one completed focus session to today's record. Not
// idempotent: the timer engine's completion step is the sole caller and
// invokes it exactly once per genuine completion.
func (l *Ledger) Record(minutes int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	key := l.TodayKey()
	rec := l.records[key]
	rec.Count++
	rec.Minutes += minutes
	l.records[key] = rec
	l.persist()
}

// Streak walks backward day by day while each day has a nonzero count,
// starting from today, or from yesterday when today is still empty.
func (l *Ledger) Streak() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	day := l.now()
	if l.records[day.Format(dayFormat)].Count == 0 {
		day = day.AddDate(0, 0, -1)
	}

	streak := 0
	for l.records[day.Format(dayFormat)].Count > 0 {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

// Weekly returns the last 7 local calendar days, oldest to newest,
// zero-filled for days with no record.
func (l *Ledger) Weekly() []model.DailyStat {
	l.mu.Lock()
	defer l.mu.Unlock()

	result := make([]model.DailyStat, 0, 7)
	for i := 6; i >= 0; i-- {
		key := l.now().AddDate(0, 0, -i).Format(dayFormat)
		rec := l.records[key]
		result = append(result, model.DailyStat{Day: key, Count: rec.Count, Minutes: rec.Minutes})
	}
	return result
}

// Totals sums all recorded days and reports the distinct active-day count.
func (l *Ledger) Totals() (count, minutes, days int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, rec := range l.records {
		count += rec.Count
		minutes += rec.Minutes
		if rec.Count > 0 {
			days++
		}
	}
	return count, minutes, days
}

func (l *Ledger) Today() model.DailyRecord {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.records[l.TodayKey()]
}

// Records returns a copy of all daily records, for the sync protocol.
func (l *Ledger) Records() map[string]model.DailyRecord {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make(map[string]model.DailyRecord, len(l.records))
	for k, v := range l.records {
		out[k] = v
	}
	return out
}

func (l *Ledger) persist() {
	if l.local == nil {
		return
	}
	if err := l.local.SaveJSON(store.KeyStats, l.records); err != nil {
		log.Printf("persist stats: %v", err)
	}
}
