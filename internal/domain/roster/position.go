package roster

import (
	"fmt"
	"sort"
	"strings"
)

// Position is a fantasy roster slot code.
type Position string

const (
	PositionCatcher     Position = "C"
	PositionFirstBase   Position = "1B"
	PositionSecondBase  Position = "2B"
	PositionThirdBase   Position = "3B"
	PositionShortstop   Position = "SS"
	PositionLeftField   Position = "LF"
	PositionCenterField Position = "CF"
	PositionRightField  Position = "RF"
	PositionDesignated  Position = "DH"
	PositionBench       Position = "BEN"
)

// StarterPositions is every position that scores, in lineup order.
var StarterPositions = []Position{
	PositionCatcher,
	PositionFirstBase,
	PositionSecondBase,
	PositionThirdBase,
	PositionShortstop,
	PositionLeftField,
	PositionCenterField,
	PositionRightField,
	PositionDesignated,
}

func ParsePosition(raw string) (Position, error) {
	pos := Position(strings.ToUpper(strings.TrimSpace(raw)))
	if !pos.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownPosition, raw)
	}
	return pos, nil
}

func (p Position) Valid() bool {
	if p == PositionBench {
		return true
	}
	for _, starter := range StarterPositions {
		if p == starter {
			return true
		}
	}
	return false
}

func (p Position) IsBench() bool {
	return p == PositionBench
}

// Status says whether a slot scores.
type Status string

const (
	StatusStarter Status = "STARTER"
	StatusBench   Status = "BENCH"
)

// StatusFor derives the only status a position may carry.
func StatusFor(p Position) Status {
	if p.IsBench() {
		return StatusBench
	}
	return StatusStarter
}

// SortBenchLast orders slots by position code with the bench at the end,
// then by player id.
func SortBenchLast(slots []Slot) {
	sort.SliceStable(slots, func(i, j int) bool {
		a, b := slots[i], slots[j]
		if a.Position.IsBench() != b.Position.IsBench() {
			return !a.Position.IsBench()
		}
		if a.Position != b.Position {
			return a.Position < b.Position
		}
		return a.PlayerID < b.PlayerID
	})
}
