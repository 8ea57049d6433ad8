package store

import (
	"context"
	"testing"

	"github.com/rawblock/sce/internal/models"
)

func TestStats(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.PutAccount(ctx, models.Account{Address: "addr1", Name: "alice", TxHash: "tx1"}, 5); err != nil {
		t.Fatalf("PutAccount: %v", err)
	}
	if err := s.PutAccount(ctx, models.Account{Address: "addr2", Name: "bob", TxHash: "tx2"}, 15); err != nil {
		t.Fatalf("PutAccount: %v", err)
	}

	if err := s.PutContent(ctx, models.Content{Kind: models.KindPost, TxHash: "post1", RootTxHash: "post1", Address: "addr1", Height: 5}, 0); err != nil {
		t.Fatalf("PutContent post: %v", err)
	}
	if err := s.PutContent(ctx, models.Content{Kind: models.KindComment, TxHash: "comment1", RootTxHash: "post1", Address: "addr2", Height: 15}, 0); err != nil {
		t.Fatalf("PutContent comment: %v", err)
	}

	stats, err := s.Stats(ctx, 20, 10)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}

	if stats.Accounts != 2 {
		t.Errorf("Accounts = %d, want 2", stats.Accounts)
	}
	if stats.AccountsLastDay != 1 {
		t.Errorf("AccountsLastDay = %d, want 1 (only addr2 committed after height 10)", stats.AccountsLastDay)
	}
	if stats.Posts != 1 {
		t.Errorf("Posts = %d, want 1", stats.Posts)
	}
	if stats.PostsLastDay != 0 {
		t.Errorf("PostsLastDay = %d, want 0 (post committed at height 5, before the window)", stats.PostsLastDay)
	}
	if stats.Comments != 1 {
		t.Errorf("Comments = %d, want 1", stats.Comments)
	}
	if stats.CommentsLastDay != 1 {
		t.Errorf("CommentsLastDay = %d, want 1", stats.CommentsLastDay)
	}
}
