package player

import "testing"

func TestIsPitcherPosition(t *testing.T) {
	for _, code := range []string{"P", "sp", " RP ", "TWP"} {
		if !IsPitcherPosition(code) {
			t.Fatalf("expected %q to be a pitcher code", code)
		}
	}
	for _, code := range []string{"C", "1B", "DH", "OF", ""} {
		if IsPitcherPosition(code) {
			t.Fatalf("expected %q not to be a pitcher code", code)
		}
	}
}

func TestNormalizeName(t *testing.T) {
	if got := NormalizeName("  Vladimir   Guerrero Jr. "); got != "vladimir guerrero jr." {
		t.Fatalf("unexpected normalized name %q", got)
	}
}

func TestPlayerValidateAndSameFeedData(t *testing.T) {
	p := Player{MLBID: 592450, Name: "Aaron Judge", PrimaryPosition: "RF", CurrentMLBTeamID: 147}
	if err := p.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !p.SameFeedData(Player{ID: 9, MLBID: 592450, Name: "Aaron Judge", PrimaryPosition: "RF", CurrentMLBTeamID: 147}) {
		t.Fatalf("ids should not affect feed comparison")
	}
	if p.SameFeedData(Player{Name: "Aaron Judge", PrimaryPosition: "RF", CurrentMLBTeamID: 121}) {
		t.Fatalf("team change should be detected")
	}
	if err := (Player{Name: "No Id"}).Validate(); err == nil {
		t.Fatalf("expected missing mlb id error")
	}
}
