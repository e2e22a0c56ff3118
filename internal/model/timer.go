package model

import "time"

const (
	StatusIdle       = "idle"
	StatusFocus      = "focus"
	StatusShortBreak = "short_break"
	StatusLongBreak  = "long_break"
)

const (
	DefaultFocusDurationSeconds      = 25 * 60
	DefaultShortBreakDurationSeconds = 5 * 60
	DefaultLongBreakDurationSeconds  = 15 * 60

	SessionsPerSet   = 4
	CoinsPerPomodoro = 1
)

type TimerSettings struct {
	FocusDurationSeconds      int `json:"focusDurationSeconds"`
	ShortBreakDurationSeconds int `json:"shortBreakDurationSeconds"`
	LongBreakDurationSeconds  int `json:"longBreakDurationSeconds"`
}

func DefaultTimerSettings() TimerSettings {
	return TimerSettings{
		FocusDurationSeconds:      DefaultFocusDurationSeconds,
		ShortBreakDurationSeconds: DefaultShortBreakDurationSeconds,
		LongBreakDurationSeconds:  DefaultLongBreakDurationSeconds,
	}
}

func (s TimerSettings) Valid() bool {
	return s.FocusDurationSeconds > 0 && s.ShortBreakDurationSeconds > 0 && s.LongBreakDurationSeconds > 0
}

// DurationSeconds returns the configured length of a phase. Idle phases
// baseline on the focus duration.
func (s TimerSettings) DurationSeconds(status string) int {
	switch status {
	case StatusShortBreak:
		return s.ShortBreakDurationSeconds
	case StatusLongBreak:
		return s.LongBreakDurationSeconds
	default:
		return s.FocusDurationSeconds
	}
}

// TimerSnapshot is the full serializable runtime state of the timer.
// EndTime is the authority for the countdown while running: remaining time
// is always derived from it, never decremented by tick count.
type TimerSnapshot struct {
	Status           string     `json:"status"`
	IsRunning        bool       `json:"isRunning"`
	RemainingSeconds int        `json:"remainingSeconds"`
	CurrentSession   int        `json:"currentSession"`
	CompletedToday   int        `json:"completedToday"`
	EndTime          *time.Time `json:"endTime,omitempty"`
}

type DailyRecord struct {
	Count   int `json:"count"`
	Minutes int `json:"minutes"`
}

type DailyStat struct {
	Day     string `json:"day"`
	Count   int    `json:"count"`
	Minutes int    `json:"minutes"`
}

type SessionRecord struct {
	ID              string    `json:"id"`
	UserID          string    `json:"userId"`
	DurationMinutes int       `json:"durationMinutes"`
	CompletedAt     time.Time `json:"completedAt"`
}
