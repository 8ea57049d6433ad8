package limits

import (
	"context"
	"testing"

	"github.com/rawblock/sce/internal/chainparams"
)

func TestValue_HeightVersionedLookup(t *testing.T) {
	tbl, err := Open(":memory:", chainparams.Regtest)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = tbl.Close() })
	ctx := context.Background()

	if err := tbl.Put(ctx, TrialPostLimit, 100, 99); err != nil {
		t.Fatalf("Put: %v", err)
	}

	tests := []struct {
		name   string
		height int32
		want   int64
	}{
		{"below the override falls back to the height-0 default", 50, 15},
		{"exactly at the override's activation height", 100, 99},
		{"above the override's activation height", 150, 99},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tbl.Value(ctx, TrialPostLimit, tt.height)
			if err != nil {
				t.Fatalf("Value: %v", err)
			}
			if got != tt.want {
				t.Errorf("Value(TrialPostLimit, %d) = %d, want %d", tt.height, got, tt.want)
			}
		})
	}
}

func TestOpen_SeedsDefaultsOncePerNetwork(t *testing.T) {
	tbl, err := Open(":memory:", chainparams.Test)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = tbl.Close() })
	ctx := context.Background()

	v, err := tbl.Value(ctx, ScaleTenfoldScorePost, 0)
	if err != nil {
		t.Fatalf("Value: %v", err)
	}
	if v != 1 {
		t.Errorf("ScaleTenfoldScorePost default = %d, want 1", v)
	}
}

func TestValue_UnknownIDErrors(t *testing.T) {
	tbl, err := Open(":memory:", chainparams.Main)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = tbl.Close() })

	if _, err := tbl.Value(context.Background(), ID(99999), 0); err == nil {
		t.Errorf("expected an error looking up a tunable with no seeded row")
	}
}
