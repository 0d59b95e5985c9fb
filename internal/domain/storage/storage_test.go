package storage

import "testing"

func TestResolveTxOptions(t *testing.T) {
	if got := ResolveTxOptions(); got.Snapshot {
		t.Fatalf("expected read committed by default, got %+v", got)
	}
	if got := ResolveTxOptions(nil, WithSnapshot()); !got.Snapshot {
		t.Fatalf("expected snapshot, got %+v", got)
	}
}
