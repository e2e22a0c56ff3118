package model

const (
	ThemeDefault = "default"
	ThemeCozy    = "cozy"
	ThemeNature  = "nature"
	ThemeSpace   = "space"
)

// Placement coordinates are clamped away from the floor's edges.
const (
	MinPlacement = 0.05
	MaxPlacement = 0.95
)

type RoomState struct {
	Theme         string                `json:"theme"`
	OwnedItemIDs  []string              `json:"ownedItemIds"`
	ActiveItemIDs []string              `json:"activeItemIds"`
	ItemPositions map[string][2]float64 `json:"itemPositions"`
}

func DefaultRoomState() RoomState {
	return RoomState{
		Theme:         ThemeDefault,
		OwnedItemIDs:  []string{},
		ActiveItemIDs: []string{},
		ItemPositions: map[string][2]float64{},
	}
}

func ValidateTheme(theme string) string {
	switch theme {
	case ThemeDefault, ThemeCozy, ThemeNature, ThemeSpace:
		return theme
	}
	return ThemeDefault
}
