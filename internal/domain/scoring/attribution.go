package scoring

import (
	"sort"

	"github.com/riskibarqy/homerun-derby/internal/domain/homerun"
	"github.com/riskibarqy/homerun-derby/internal/domain/roster"
)

// Attribute turns home-run events into credits. Every STARTER slot of the
// event's player that is active on the event date earns one credit per home
// run. The output order is stable for identical input sets.
func Attribute(events []homerun.Event, slots []roster.Slot) []Credit {
	byPlayer := make(map[int64][]roster.Slot, len(slots))
	for _, slot := range slots {
		if !slot.IsStarter() {
			continue
		}
		byPlayer[slot.PlayerID] = append(byPlayer[slot.PlayerID], slot)
	}

	credits := make([]Credit, 0, len(events))
	for _, event := range events {
		if event.HomeRuns <= 0 {
			continue
		}
		for _, slot := range byPlayer[event.PlayerID] {
			if !slot.ActiveOn(event.Date) {
				continue
			}
			for i := 0; i < event.HomeRuns; i++ {
				credits = append(credits, Credit{
					GameID:   event.GameID,
					TeamID:   slot.TeamID,
					PlayerID: event.PlayerID,
					Position: slot.Position,
					Date:     event.Date,
				})
			}
		}
	}

	sort.SliceStable(credits, func(i, j int) bool {
		a, b := credits[i], credits[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if a.GameID != b.GameID {
			return a.GameID < b.GameID
		}
		if a.TeamID != b.TeamID {
			return a.TeamID < b.TeamID
		}
		if a.PlayerID != b.PlayerID {
			return a.PlayerID < b.PlayerID
		}
		return a.Position < b.Position
	})
	return credits
}
