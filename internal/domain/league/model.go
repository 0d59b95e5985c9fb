package league

import (
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/homerun-derby/internal/domain/roster"
)

// League is one derby season. StartDate and EndDate are inclusive.
type League struct {
	ID         int64
	Name       string
	SeasonYear int
	StartDate  time.Time
	EndDate    time.Time
}

func (l League) Validate() error {
	if strings.TrimSpace(l.Name) == "" {
		return fmt.Errorf("league name is required")
	}
	if l.SeasonYear < 1900 {
		return fmt.Errorf("league season year is invalid: %d", l.SeasonYear)
	}
	if l.StartDate.IsZero() || l.EndDate.IsZero() {
		return fmt.Errorf("league start and end dates are required")
	}
	if l.EndDate.Before(l.StartDate) {
		return fmt.Errorf("league end date must not be before start date")
	}
	return nil
}

func (l League) Contains(date time.Time) bool {
	return !date.Before(l.StartDate) && !date.After(l.EndDate)
}

// TemplateSlot is one row of a league's roster shape.
type TemplateSlot struct {
	Position roster.Position
	Count    int
}

func DefaultTemplate() []TemplateSlot {
	out := make([]TemplateSlot, 0, len(roster.StarterPositions)+1)
	for _, pos := range roster.StarterPositions {
		out = append(out, TemplateSlot{Position: pos, Count: 1})
	}
	return append(out, TemplateSlot{Position: roster.PositionBench, Count: 2})
}
