package reputation

import (
	"context"
	"testing"

	"github.com/rawblock/sce/internal/chainparams"
	"github.com/rawblock/sce/internal/limits"
	"github.com/rawblock/sce/internal/models"
	"github.com/rawblock/sce/internal/store"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	s, err := store.Open(":memory:", ":memory:")
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })

	lim, err := limits.Open(":memory:", chainparams.Regtest)
	if err != nil {
		t.Fatalf("limits.Open: %v", err)
	}
	t.Cleanup(func() { _ = lim.Close() })

	return New(s, lim)
}

func TestContentDelta(t *testing.T) {
	tests := []struct {
		name          string
		kind          models.Kind
		value         int32
		scaleTenfold  bool
		wantAuthor    int64
		wantContent   int64
	}{
		{"ScorePost neutral value (3) yields zero delta", models.KindScorePost, 3, false, 0, 0},
		{"ScorePost max value unscaled", models.KindScorePost, 5, false, 2, 2},
		{"ScorePost max value scaled tenfold", models.KindScorePost, 5, true, 20, 20},
		{"ScorePost min value scaled tenfold", models.KindScorePost, 1, true, -20, -20},
		{"ScoreComment upvote never scaled", models.KindScoreComment, 1, true, 1, 1},
		{"ScoreComment downvote never scaled", models.KindScoreComment, -1, true, -1, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotAuthor, gotContent := ContentDelta(tt.kind, tt.value, tt.scaleTenfold)
			if gotAuthor != tt.wantAuthor || gotContent != tt.wantContent {
				t.Errorf("ContentDelta(%v, %d, %v) = (%d, %d), want (%d, %d)",
					tt.kind, tt.value, tt.scaleTenfold, gotAuthor, gotContent, tt.wantAuthor, tt.wantContent)
			}
		})
	}
}

func TestLikerDeltaType(t *testing.T) {
	tests := []struct {
		name            string
		contentKind     models.Kind
		isCommentAnswer bool
		want            models.RatingType
	}{
		{"post", models.KindPost, false, models.AccountLikersPost},
		{"comment root", models.KindComment, false, models.AccountLikersCommentRoot},
		{"comment answer", models.KindComment, true, models.AccountLikersCommentAnswer},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LikerDeltaType(tt.contentKind, tt.isCommentAnswer); got != tt.want {
				t.Errorf("LikerDeltaType(%v, %v) = %v, want %v", tt.contentKind, tt.isCommentAnswer, got, tt.want)
			}
		})
	}
}

func TestAllowModifyReputationOverPair(t *testing.T) {
	e := &Engine{}
	if !e.AllowModifyReputationOverPair(context.Background(), 1, 1) {
		t.Errorf("expected prior count equal to max to be allowed")
	}
	if e.AllowModifyReputationOverPair(context.Background(), 2, 1) {
		t.Errorf("expected prior count exceeding max to be rejected")
	}
}

// TestAllowModifyReputation_HeightKeyedSwitch verifies spec.md §9's
// height-keyed Open Question behavior: below heightFixRatings the gate
// evaluates the content author's standing; at or above it, the voter's.
func TestAllowModifyReputation_HeightKeyedSwitch(t *testing.T) {
	const heightFixRatings = 100

	e := newTestEngine(t)
	ctx := context.Background()

	// Give the author enough reputation and likers to pass the gate, but
	// leave the voter with no likers, below the likers threshold.
	if err := e.Store.InsertDeltas(ctx, []models.RatingRow{
		{Type: models.RatingAccount, Id: "author", Height: 1, Value: 1000},
		{Type: models.AccountLikersPost, Id: "author", Height: 1, Value: 10},
	}); err != nil {
		t.Fatalf("InsertDeltas: %v", err)
	}

	allowedBefore, err := e.AllowModifyReputation(ctx, "voter", "author", heightFixRatings-1, heightFixRatings, false)
	if err != nil {
		t.Fatalf("AllowModifyReputation: %v", err)
	}
	if !allowedBefore {
		t.Errorf("below heightFixRatings: expected the content author's standing (qualifying) to gate the call, got rejected")
	}

	allowedAt, err := e.AllowModifyReputation(ctx, "voter", "author", heightFixRatings, heightFixRatings, false)
	if err != nil {
		t.Fatalf("AllowModifyReputation: %v", err)
	}
	if allowedAt {
		t.Errorf("at/after heightFixRatings: expected the voter's standing (not qualifying) to gate the call, got allowed")
	}
}

func TestAllowModifyReputation_LotteryBypassesGate(t *testing.T) {
	e := newTestEngine(t)
	allowed, err := e.AllowModifyReputation(context.Background(), "voter", "author", 0, 100, true)
	if err != nil {
		t.Fatalf("AllowModifyReputation: %v", err)
	}
	if !allowed {
		t.Errorf("lottery=true must always return allowed=true regardless of standing")
	}
}
