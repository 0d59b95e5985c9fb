package roster

import (
	"fmt"
	"strings"
)

// DefaultBenchReason is recorded when a player is benched without a reason.
const DefaultBenchReason = "Injury"

// CanStartAt is the drafted-position rule: starters return only to the
// position they were drafted at, bench draftees may start anywhere.
func CanStartAt(drafted, target Position) bool {
	return target == drafted || drafted.IsBench()
}

// PlanMove validates moving current to target. occupant is the open starter
// at target, if occupied is true.
func PlanMove(current Slot, target Position, reason string, occupant Slot, occupied bool) (Assignment, error) {
	if !target.Valid() {
		return Assignment{}, fmt.Errorf("%w: %q", ErrUnknownPosition, target)
	}

	if target.IsBench() {
		return Assignment{
			Position: PositionBench,
			Status:   StatusBench,
			Reason:   benchReason(reason),
		}, nil
	}

	if !CanStartAt(current.DraftedPosition, target) {
		return Assignment{}, fmt.Errorf(
			"%w: players can only return to their drafted position (%s), not %s",
			ErrIllegalPositionChange, current.DraftedPosition, target,
		)
	}
	if occupied && occupant.PlayerID != current.PlayerID {
		return Assignment{}, fmt.Errorf("%w: %s is held by player %d", ErrPositionOccupied, target, occupant.PlayerID)
	}

	return Assignment{Position: target, Status: StatusStarter}, nil
}

// PlanSwap exchanges the positions of two slots on the same team. The leg
// that moves a player onto the bench is never checked against the drafted
// position; the leg that moves a player off the bench always is.
func PlanSwap(first, second Slot, reason string) (Assignment, Assignment, error) {
	if first.TeamID != second.TeamID {
		return Assignment{}, Assignment{}, fmt.Errorf("%w: players are on different teams", ErrInvalidSwap)
	}
	if first.PlayerID == second.PlayerID {
		return Assignment{}, Assignment{}, fmt.Errorf("%w: cannot swap a player with themselves", ErrInvalidSwap)
	}

	if err := checkSwapLeg(first, second.Position); err != nil {
		return Assignment{}, Assignment{}, err
	}
	if err := checkSwapLeg(second, first.Position); err != nil {
		return Assignment{}, Assignment{}, err
	}

	return swapAssignment(second.Position, reason), swapAssignment(first.Position, reason), nil
}

func checkSwapLeg(mover Slot, target Position) error {
	if target.IsBench() || CanStartAt(mover.DraftedPosition, target) {
		return nil
	}
	return fmt.Errorf(
		"%w: player %d was drafted at %s and cannot start at %s",
		ErrIllegalPositionChange, mover.PlayerID, mover.DraftedPosition, target,
	)
}

func swapAssignment(target Position, reason string) Assignment {
	if target.IsBench() {
		return Assignment{Position: PositionBench, Status: StatusBench, Reason: benchReason(reason)}
	}
	return Assignment{Position: target, Status: StatusStarter}
}

func benchReason(reason string) string {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return DefaultBenchReason
	}
	return reason
}
