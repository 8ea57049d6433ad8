package checkpoint

import (
	"testing"

	"github.com/rawblock/sce/internal/chainparams"
	"github.com/rawblock/sce/internal/models"
)

type namedRule string

func (r namedRule) Name() string { return string(r) }

func TestTable_Instance_PicksLargestActivationHeightBelowOrEqual(t *testing.T) {
	table := Table{
		{MainHeight: 0, TestHeight: 0, Factory: func() Rule { return namedRule("v1") }},
		{MainHeight: 1000, TestHeight: 500, Factory: func() Rule { return namedRule("v2") }},
		{MainHeight: 2000, TestHeight: 1000, Factory: func() Rule { return namedRule("v3") }},
	}

	tests := []struct {
		name    string
		network chainparams.Network
		height  int32
		want    string
	}{
		{"genesis era on mainnet", chainparams.Main, 0, "v1"},
		{"just before v2 activates on mainnet", chainparams.Main, 999, "v1"},
		{"exactly at v2's activation height", chainparams.Main, 1000, "v2"},
		{"well past v3's activation height", chainparams.Main, 5000, "v3"},
		{"testnet activates v2 earlier than mainnet", chainparams.Test, 500, "v2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := table.Instance(tt.network, tt.height)
			if got == nil {
				t.Fatalf("Instance returned nil")
			}
			if got.Name() != tt.want {
				t.Errorf("Instance(%v, %d) = %q, want %q", tt.network, tt.height, got.Name(), tt.want)
			}
		})
	}
}

func TestTable_Instance_NoEntryBelowHeight(t *testing.T) {
	table := Table{
		{MainHeight: 100, TestHeight: 100, Factory: func() Rule { return namedRule("v1") }},
	}
	if got := table.Instance(chainparams.Main, 50); got != nil {
		t.Errorf("expected nil when no entry has activated yet, got %v", got)
	}
}

func TestDispatcher_RegisterAndInstance(t *testing.T) {
	d := NewDispatcher()
	d.Register(models.KindScorePost,
		Entry{MainHeight: 0, TestHeight: 0, Factory: func() Rule { return namedRule("score-v1") }},
		Entry{MainHeight: 500, TestHeight: 500, Factory: func() Rule { return namedRule("score-v2") }},
	)

	if got := d.Instance(models.KindScorePost, chainparams.Main, 0); got == nil || got.Name() != "score-v1" {
		t.Errorf("expected score-v1 at height 0, got %v", got)
	}
	if got := d.Instance(models.KindScorePost, chainparams.Main, 500); got == nil || got.Name() != "score-v2" {
		t.Errorf("expected score-v2 at height 500, got %v", got)
	}
	if got := d.Instance(models.KindComment, chainparams.Main, 0); got != nil {
		t.Errorf("expected nil for an unregistered kind, got %v", got)
	}
}
