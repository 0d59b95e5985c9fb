package homerun

import (
	"fmt"
	"sort"
	"time"
)

// Event is a player's home-run total for one MLB game.
type Event struct {
	PlayerID int64
	GameID   int64
	Date     time.Time
	HomeRuns int
	// Inning is best effort; zero when the feed does not say.
	Inning int
}

func (e Event) Validate() error {
	if e.PlayerID <= 0 || e.GameID <= 0 {
		return fmt.Errorf("home run event requires player and game")
	}
	if e.Date.IsZero() {
		return fmt.Errorf("home run event date is required")
	}
	if e.HomeRuns < 0 {
		return fmt.Errorf("home run count must not be negative: %d", e.HomeRuns)
	}
	return nil
}

// Sort orders events by date, game, then player.
func Sort(events []Event) {
	sort.Slice(events, func(i, j int) bool {
		a, b := events[i], events[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if a.GameID != b.GameID {
			return a.GameID < b.GameID
		}
		return a.PlayerID < b.PlayerID
	})
}

// Total sums home runs across events.
func Total(events []Event) int {
	total := 0
	for _, e := range events {
		total += e.HomeRuns
	}
	return total
}
