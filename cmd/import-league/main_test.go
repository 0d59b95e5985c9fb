package main

import (
	"strings"
	"testing"
)

func TestReadPicks(t *testing.T) {
	t.Parallel()

	input := "manager,position,player\nDana, C ,Cal Raleigh\n\nSam,BEN,Bo Bichette\n"
	picks, err := readPicks(strings.NewReader(input))
	if err != nil {
		t.Fatalf("read picks: %v", err)
	}
	if len(picks) != 2 {
		t.Fatalf("expected 2 picks, got %d", len(picks))
	}
	if picks[0].Manager != "Dana" || picks[0].Position != "C" || picks[0].Player != "Cal Raleigh" {
		t.Fatalf("unexpected first pick: %+v", picks[0])
	}
	if picks[1].Position != "BEN" {
		t.Fatalf("unexpected second pick: %+v", picks[1])
	}
}

func TestReadPicks_Rejects(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"wrong column count": "Dana,C\n",
		"header only":        "manager,position,player\n",
		"empty":              "",
	}
	for name, input := range cases {
		input := input
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			if _, err := readPicks(strings.NewReader(input)); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}
