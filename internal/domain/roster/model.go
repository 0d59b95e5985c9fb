package roster

import (
	"fmt"
	"time"
)

// Slot is one interval of a player holding a position on a team.
// EffectiveDate is inclusive, EndDate exclusive; a nil EndDate is open.
type Slot struct {
	ID              int64
	TeamID          int64
	PlayerID        int64
	Position        Position
	DraftedPosition Position
	Status          Status
	Reason          string
	EffectiveDate   time.Time
	EndDate         *time.Time
}

func (s Slot) IsOpen() bool {
	return s.EndDate == nil
}

func (s Slot) IsStarter() bool {
	return s.Status == StatusStarter
}

// ActiveOn reports effectiveDate <= date < endDate.
func (s Slot) ActiveOn(date time.Time) bool {
	if date.Before(s.EffectiveDate) {
		return false
	}
	return s.EndDate == nil || date.Before(*s.EndDate)
}

// Overlaps reports whether the slot is active on any day of [from, to].
func (s Slot) Overlaps(from, to time.Time) bool {
	if s.EffectiveDate.After(to) {
		return false
	}
	return s.EndDate == nil || s.EndDate.After(from)
}

func (s Slot) Validate() error {
	if s.TeamID <= 0 || s.PlayerID <= 0 {
		return fmt.Errorf("slot team and player are required")
	}
	if !s.Position.Valid() || !s.DraftedPosition.Valid() {
		return fmt.Errorf("%w: position=%q drafted=%q", ErrUnknownPosition, s.Position, s.DraftedPosition)
	}
	if s.Status != StatusFor(s.Position) {
		return fmt.Errorf("%w: status %s does not match position %s", ErrIllegalPositionChange, s.Status, s.Position)
	}
	if s.IsStarter() && !CanStartAt(s.DraftedPosition, s.Position) {
		return fmt.Errorf("%w: drafted %s cannot start at %s", ErrIllegalPositionChange, s.DraftedPosition, s.Position)
	}
	if s.EffectiveDate.IsZero() {
		return fmt.Errorf("%w: effective date is required", ErrInvalidEffectiveDate)
	}
	if s.EndDate != nil && s.EndDate.Before(s.EffectiveDate) {
		return fmt.Errorf("%w: end date before effective date", ErrInvalidEffectiveDate)
	}
	return nil
}

// Assignment is the next state requested for a player's open slot.
type Assignment struct {
	Position      Position
	Status        Status
	Reason        string
	EffectiveDate time.Time
}
