package models

import "time"

// BadgeFirstLogin is unlocked when onboarding completes.
const BadgeFirstLogin = "first_login"

// Badge is an achievement. UnlockedAt is zero for catalog entries.
type Badge struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	UnlockedAt  time.Time `json:"unlocked_at"`
}

var badgeCatalog = []Badge{
	{ID: BadgeFirstLogin, Name: "Welcome aboard", Description: "Completed onboarding", Icon: "wave"},
	{ID: "first_workout", Name: "First rep", Description: "Logged a first workout", Icon: "dumbbell"},
	{ID: "streak_7", Name: "One week streak", Description: "Trained seven days in a row", Icon: "flame"},
	{ID: "pr_first", Name: "New record", Description: "Set a first personal record", Icon: "trophy"},
}

// BadgeByID looks up badge metadata in the built-in catalog.
func BadgeByID(id string) (Badge, bool) {
	for _, b := range badgeCatalog {
		if b.ID == id {
			return b, true
		}
	}
	return Badge{}, false
}
