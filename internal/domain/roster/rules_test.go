package roster

import (
	"errors"
	"testing"
)

func starter(player int64, pos Position) Slot {
	return Slot{TeamID: 1, PlayerID: player, Position: pos, DraftedPosition: pos, Status: StatusStarter}
}

func benched(player int64, drafted Position) Slot {
	return Slot{TeamID: 1, PlayerID: player, Position: PositionBench, DraftedPosition: drafted, Status: StatusBench}
}

func TestPlanMove(t *testing.T) {
	tests := []struct {
		name      string
		current   Slot
		target    Position
		reason    string
		occupant  *Slot
		want      Assignment
		targetErr error
	}{
		{
			name:    "bench defaults reason",
			current: starter(1, PositionFirstBase),
			target:  PositionBench,
			want:    Assignment{Position: PositionBench, Status: StatusBench, Reason: DefaultBenchReason},
		},
		{
			name:    "bench keeps reason",
			current: starter(1, PositionFirstBase),
			target:  PositionBench,
			reason:  " Slump ",
			want:    Assignment{Position: PositionBench, Status: StatusBench, Reason: "Slump"},
		},
		{
			name:    "bench ignores occupancy",
			current: starter(1, PositionFirstBase),
			target:  PositionBench,
			occupant: func() *Slot {
				s := benched(2, PositionBench)
				return &s
			}(),
			want: Assignment{Position: PositionBench, Status: StatusBench, Reason: DefaultBenchReason},
		},
		{
			name:    "return to drafted position",
			current: benched(1, PositionFirstBase),
			target:  PositionFirstBase,
			want:    Assignment{Position: PositionFirstBase, Status: StatusStarter},
		},
		{
			name:      "cannot start away from drafted position",
			current:   benched(1, PositionFirstBase),
			target:    PositionSecondBase,
			targetErr: ErrIllegalPositionChange,
		},
		{
			name:    "bench draftee starts anywhere",
			current: benched(1, PositionBench),
			target:  PositionShortstop,
			want:    Assignment{Position: PositionShortstop, Status: StatusStarter},
		},
		{
			name:    "occupied by another player",
			current: benched(1, PositionFirstBase),
			target:  PositionFirstBase,
			occupant: func() *Slot {
				s := starter(2, PositionFirstBase)
				return &s
			}(),
			targetErr: ErrPositionOccupied,
		},
		{
			name:    "occupied by self is a no-op move",
			current: starter(1, PositionFirstBase),
			target:  PositionFirstBase,
			occupant: func() *Slot {
				s := starter(1, PositionFirstBase)
				return &s
			}(),
			want: Assignment{Position: PositionFirstBase, Status: StatusStarter},
		},
		{
			name:      "unknown target",
			current:   starter(1, PositionFirstBase),
			target:    Position("P"),
			targetErr: ErrUnknownPosition,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var occupant Slot
			if tc.occupant != nil {
				occupant = *tc.occupant
			}
			got, err := PlanMove(tc.current, tc.target, tc.reason, occupant, tc.occupant != nil)
			if tc.targetErr != nil {
				if !errors.Is(err, tc.targetErr) {
					t.Fatalf("expected %v, got %v", tc.targetErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("unexpected assignment: got %+v want %+v", got, tc.want)
			}
		})
	}
}

func TestPlanSwap(t *testing.T) {
	tests := []struct {
		name       string
		first      Slot
		second     Slot
		wantFirst  Assignment
		wantSecond Assignment
		targetErr  error
	}{
		{
			name:       "starter to bench and back",
			first:      starter(1, PositionFirstBase),
			second:     benched(2, PositionFirstBase),
			wantFirst:  Assignment{Position: PositionBench, Status: StatusBench, Reason: DefaultBenchReason},
			wantSecond: Assignment{Position: PositionFirstBase, Status: StatusStarter},
		},
		{
			name:       "bench draftee takes a starter spot",
			first:      benched(1, PositionBench),
			second:     starter(2, PositionCenterField),
			wantFirst:  Assignment{Position: PositionCenterField, Status: StatusStarter},
			wantSecond: Assignment{Position: PositionBench, Status: StatusBench, Reason: DefaultBenchReason},
		},
		{
			name:      "off-bench leg checked against drafted position",
			first:     benched(1, PositionThirdBase),
			second:    starter(2, PositionFirstBase),
			targetErr: ErrIllegalPositionChange,
		},
		{
			name:      "two starters at different positions",
			first:     starter(1, PositionFirstBase),
			second:    starter(2, PositionSecondBase),
			targetErr: ErrIllegalPositionChange,
		},
		{
			name:       "two bench players",
			first:      benched(1, PositionFirstBase),
			second:     benched(2, PositionSecondBase),
			wantFirst:  Assignment{Position: PositionBench, Status: StatusBench, Reason: DefaultBenchReason},
			wantSecond: Assignment{Position: PositionBench, Status: StatusBench, Reason: DefaultBenchReason},
		},
		{
			name:      "same player",
			first:     starter(1, PositionFirstBase),
			second:    starter(1, PositionFirstBase),
			targetErr: ErrInvalidSwap,
		},
		{
			name:  "different teams",
			first: starter(1, PositionFirstBase),
			second: func() Slot {
				s := benched(2, PositionFirstBase)
				s.TeamID = 2
				return s
			}(),
			targetErr: ErrInvalidSwap,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			gotFirst, gotSecond, err := PlanSwap(tc.first, tc.second, "")
			if tc.targetErr != nil {
				if !errors.Is(err, tc.targetErr) {
					t.Fatalf("expected %v, got %v", tc.targetErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if gotFirst != tc.wantFirst || gotSecond != tc.wantSecond {
				t.Fatalf("unexpected assignments: %+v / %+v", gotFirst, gotSecond)
			}
		})
	}
}

func TestSortBenchLast(t *testing.T) {
	slots := []Slot{
		benched(5, PositionBench),
		starter(3, PositionShortstop),
		starter(1, PositionCatcher),
		benched(2, PositionFirstBase),
		starter(4, PositionFirstBase),
	}
	SortBenchLast(slots)

	got := make([]int64, 0, len(slots))
	for _, s := range slots {
		got = append(got, s.PlayerID)
	}
	want := []int64{4, 1, 3, 2, 5}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("unexpected order %v want %v", got, want)
		}
	}
}

func TestParsePosition(t *testing.T) {
	if pos, err := ParsePosition(" ben "); err != nil || pos != PositionBench {
		t.Fatalf("expected BEN, got %q %v", pos, err)
	}
	if _, err := ParsePosition("OF"); !errors.Is(err, ErrUnknownPosition) {
		t.Fatalf("expected unknown position, got %v", err)
	}
}
