package stats

import (
	"testing"
	"time"

	"focusroom/internal/model"
)

func testLedger(start time.Time) (*Ledger, *time.Time) {
	current := start
	return NewLedger(nil, func() time.Time { return current }), &current
}

func TestRecordAccumulates(t *testing.T) {
	ledger, _ := testLedger(time.Date(2024, 3, 10, 14, 0, 0, 0, time.Local))

	ledger.Record(25)
	ledger.Record(50)

	today := ledger.Today()
	if today.Count != 2 || today.Minutes != 75 {
		t.Fatalf("expected 2 sessions / 75 minutes, got %+v", today)
	}
}

func TestRecordKeysOnLocalDate(t *testing.T) {
	ledger, current := testLedger(time.Date(2024, 3, 10, 23, 59, 0, 0, time.Local))

	ledger.Record(25)
	*current = current.Add(2 * time.Minute)
	ledger.Record(25)

	records := ledger.Records()
	if records["2024-03-10"].Count != 1 || records["2024-03-11"].Count != 1 {
		t.Fatalf("sessions around midnight must split by local day, got %v", records)
	}
}

func TestStreakWalksBackward(t *testing.T) {
	ledger, current := testLedger(time.Date(2024, 3, 1, 9, 0, 0, 0, time.Local))

	// Three consecutive days, then a gap, then two more.
	for _, day := range []int{1, 2, 3, 5, 6} {
		*current = time.Date(2024, 3, day, 9, 0, 0, 0, time.Local)
		ledger.Record(25)
	}

	*current = time.Date(2024, 3, 6, 20, 0, 0, 0, time.Local)
	if got := ledger.Streak(); got != 2 {
		t.Fatalf("expected streak 2, got %d", got)
	}
}

func TestStreakSurvivesEmptyToday(t *testing.T) {
	ledger, current := testLedger(time.Date(2024, 3, 5, 9, 0, 0, 0, time.Local))
	ledger.Record(25)
	*current = time.Date(2024, 3, 6, 9, 0, 0, 0, time.Local)
	ledger.Record(25)

	// Nothing recorded on the 7th yet: the streak is not broken until the
	// day actually passes.
	*current = time.Date(2024, 3, 7, 9, 0, 0, 0, time.Local)
	if got := ledger.Streak(); got != 2 {
		t.Fatalf("empty today must not break the streak, got %d", got)
	}

	// After a full missed day it is.
	*current = time.Date(2024, 3, 8, 9, 0, 0, 0, time.Local)
	if got := ledger.Streak(); got != 0 {
		t.Fatalf("missed day must reset the streak, got %d", got)
	}
}

func TestWeeklyZeroFills(t *testing.T) {
	ledger, current := testLedger(time.Date(2024, 3, 4, 9, 0, 0, 0, time.Local))
	ledger.Record(25)
	*current = time.Date(2024, 3, 7, 9, 0, 0, 0, time.Local)
	ledger.Record(50)

	week := ledger.Weekly()
	if len(week) != 7 {
		t.Fatalf("expected 7 days, got %d", len(week))
	}
	if week[0].Day != "2024-03-01" || week[6].Day != "2024-03-07" {
		t.Fatalf("expected oldest-to-newest window, got %s..%s", week[0].Day, week[6].Day)
	}

	want := map[string]model.DailyStat{
		"2024-03-04": {Day: "2024-03-04", Count: 1, Minutes: 25},
		"2024-03-07": {Day: "2024-03-07", Count: 1, Minutes: 50},
	}
	for _, day := range week {
		expected, ok := want[day.Day]
		if !ok {
			expected = model.DailyStat{Day: day.Day}
		}
		if day != expected {
			t.Fatalf("day %s: expected %+v, got %+v", day.Day, expected, day)
		}
	}
}

func TestTotals(t *testing.T) {
	ledger, current := testLedger(time.Date(2024, 3, 4, 9, 0, 0, 0, time.Local))
	ledger.Record(25)
	ledger.Record(25)
	*current = time.Date(2024, 3, 6, 9, 0, 0, 0, time.Local)
	ledger.Record(50)

	count, minutes, days := ledger.Totals()
	if count != 3 || minutes != 100 || days != 2 {
		t.Fatalf("expected 3/100/2, got %d/%d/%d", count, minutes, days)
	}
}

func TestRecordsReturnsCopy(t *testing.T) {
	ledger, _ := testLedger(time.Date(2024, 3, 4, 9, 0, 0, 0, time.Local))
	ledger.Record(25)

	records := ledger.Records()
	records["2024-03-04"] = model.DailyRecord{Count: 99, Minutes: 99}

	if ledger.Today().Count != 1 {
		t.Fatal("mutating the returned map must not affect the ledger")
	}
}
