package feed

import "testing"

func TestLockedTeams(t *testing.T) {
	games := []Game{
		{GamePK: 1, StatusCode: StatusInProgress, HomeTeamID: 147, AwayTeamID: 111},
		{GamePK: 2, StatusCode: "S", HomeTeamID: 119, AwayTeamID: 137},
		{GamePK: 3, StatusCode: StatusFinal, HomeTeamID: 121, AwayTeamID: 143},
		{GamePK: 4, StatusCode: StatusPreGame, HomeTeamID: 158},
	}

	locked := LockedTeams(games)
	for _, id := range []int64{147, 111, 121, 143, 158} {
		if _, ok := locked[id]; !ok {
			t.Fatalf("expected team %d to be locked", id)
		}
	}
	for _, id := range []int64{119, 137, 0} {
		if _, ok := locked[id]; ok {
			t.Fatalf("expected team %d to be unlocked", id)
		}
	}
}

func TestGameIsFinal(t *testing.T) {
	if !(Game{StatusCode: StatusFinal}).IsFinal() {
		t.Fatalf("F must be final")
	}
	if (Game{StatusCode: StatusGameOver}).IsFinal() {
		t.Fatalf("O is not ingested as final")
	}
}
