package store

import (
	"context"
	"testing"

	"github.com/rawblock/sce/internal/models"
	"github.com/rawblock/sce/internal/statehash"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:", ":memory:")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestRowHashesForTable_UnknownTable(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.RowHashesForTable(context.Background(), "not_a_real_table", 1); err == nil {
		t.Errorf("expected an error for an unrecognised state-hash table")
	}
}

func TestRowHashesForTable_AccountsHeightFiltering(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.PutAccount(ctx, models.Account{Address: "addr1", Name: "alice", TxHash: "tx1"}, 10); err != nil {
		t.Fatalf("PutAccount: %v", err)
	}
	if err := s.PutAccount(ctx, models.Account{Address: "addr2", Name: "bob", TxHash: "tx2"}, 20); err != nil {
		t.Fatalf("PutAccount: %v", err)
	}

	hashes, err := s.RowHashesForTable(ctx, "accounts", 10)
	if err != nil {
		t.Fatalf("RowHashesForTable: %v", err)
	}
	if len(hashes) != 1 {
		t.Fatalf("expected exactly 1 row hash for height 10, got %d", len(hashes))
	}

	want := statehash.RowHash([]string{"addr1", "alice", "", "", "", "", "", "", ""})
	if hashes[0] != want {
		t.Errorf("row hash mismatch for the committed-at-height-10 account")
	}

	none, err := s.RowHashesForTable(ctx, "accounts", 5)
	if err != nil {
		t.Fatalf("RowHashesForTable: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("expected no rows committed before height 10, got %d", len(none))
	}
}

func TestRowHashesForTable_EveryFrozenTableIsQueryable(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	for _, table := range statehash.TableOrder() {
		if _, err := s.RowHashesForTable(ctx, table, 1); err != nil {
			t.Errorf("table %q: RowHashesForTable returned error on an empty store: %v", table, err)
		}
	}
}
