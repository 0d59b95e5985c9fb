package main

import (
	"errors"
	"testing"

	"github.com/riskibarqy/homerun-derby/internal/platform/logging"
)

func TestParseSteps(t *testing.T) {
	t.Parallel()

	if got, err := parseSteps(nil); err != nil || got != 1 {
		t.Fatalf("expected default 1, got %d err=%v", got, err)
	}
	if got, err := parseSteps([]string{" 3 "}); err != nil || got != 3 {
		t.Fatalf("expected 3, got %d err=%v", got, err)
	}
	for _, raw := range []string{"0", "-1", "x"} {
		if _, err := parseSteps([]string{raw}); err == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}
}

func TestParseVersionAndTarget(t *testing.T) {
	t.Parallel()

	if got, err := parseVersion("1"); err != nil || got != 1 {
		t.Fatalf("unexpected version %d err=%v", got, err)
	}
	if _, err := parseVersion("-2"); err == nil {
		t.Fatalf("expected error for negative version")
	}
	if got, err := parseTarget("7"); err != nil || got != 7 {
		t.Fatalf("unexpected target %d err=%v", got, err)
	}
	if _, err := parseTarget("-7"); err == nil {
		t.Fatalf("expected error for negative target")
	}
}

func TestNewMigrator_MissingDir(t *testing.T) {
	t.Parallel()

	if _, _, err := newMigrator("./does-not-exist", "postgres://localhost/derby"); err == nil {
		t.Fatalf("expected error for missing migrations dir")
	}
}

func TestRunCommand_UnknownIsUsage(t *testing.T) {
	t.Parallel()

	if err := runCommand(nil, "sideways", nil, logging.NewNop()); !errors.Is(err, errUsage) {
		t.Fatalf("expected usage error, got %v", err)
	}
}
