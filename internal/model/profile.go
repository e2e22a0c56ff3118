package model

import "time"

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type Profile struct {
	UserID            string    `json:"userId"`
	DisplayName       string    `json:"displayName"`
	Coins             int       `json:"coins"`
	TotalPomodoros    int       `json:"totalPomodoros"`
	TotalFocusMinutes int       `json:"totalFocusMinutes"`
	CurrentStreak     int       `json:"currentStreak"`
	LongestStreak     int       `json:"longestStreak"`
	LastPomodoroDate  string    `json:"lastPomodoroDate,omitempty"`
	IsRoomPublic      bool      `json:"isRoomPublic"`
	LikesReceived     int       `json:"likesReceived"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

type PublicRoom struct {
	Profile   Profile   `json:"profile"`
	Room      RoomState `json:"room"`
	IsLiked   bool      `json:"isLiked"`
	LikeCount int       `json:"likeCount"`
}

type LeaderboardEntry struct {
	Rank    int     `json:"rank"`
	Profile Profile `json:"profile"`
}
