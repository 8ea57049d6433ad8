package social

import (
	"context"
	"errors"

	"github.com/rawblock/sce/internal/consensus"
	"github.com/rawblock/sce/internal/limits"
	"github.com/rawblock/sce/internal/models"
	"github.com/rawblock/sce/internal/store"
)

// CheckScore validates a ScorePost/ScoreComment payload's shape: value in
// the 1..5 range for posts, -1/+1 for comments (spec.md §3, §4.6).
func (e *Engine) CheckScore(kind models.Kind, value int32) consensus.Code {
	switch kind {
	case models.KindScorePost:
		if value < 1 || value > 5 {
			return consensus.BadPayload
		}
	case models.KindScoreComment:
		if value != 1 && value != -1 {
			return consensus.BadPayload
		}
	}
	return consensus.Success
}

// ValidateScore implements ScorePost/ScoreComment (spec.md §4.5): voter
// must not be the content's author; voter must clear the reputation and
// likers thresholds; at most scores_one_to_one repeat scores on the same
// pair within the window; score on deleted content is rejected; per-day
// cap by account mode.
func (e *Engine) ValidateScore(ctx context.Context, sc models.Score, voterMode models.AccountMode, bc BlockContext) (consensus.Code, error) {
	content, err := e.Store.GetContent(ctx, sc.ContentTxHash)
	if errors.Is(err, store.ErrNotFound) {
		return consensus.NotFound, nil
	}
	if err != nil {
		return consensus.Failed, err
	}
	if content.Address == sc.Address {
		if sc.Kind == models.KindScorePost {
			return consensus.SelfScore, nil
		}
		return consensus.SelfCommentScore, nil
	}
	if content.Deleted {
		if sc.Kind == models.KindScorePost {
			return consensus.ScoreDeletedContent, nil
		}
		return consensus.CommentDeletedContent, nil
	}

	if already, err := e.Store.ScoreExists(ctx, sc.Address, sc.ContentTxHash); err != nil {
		return consensus.Failed, err
	} else if already {
		if sc.Kind == models.KindScorePost {
			return consensus.DoubleScore, nil
		}
		return consensus.DoubleCommentScore, nil
	}

	allowed, err := e.Reputation.AllowModifyReputation(ctx, sc.Address, content.Address, bc.Height, e.Params.HeightFixRatings, false)
	if err != nil {
		return consensus.Failed, err
	}
	if !allowed {
		if sc.Kind == models.KindScorePost {
			return consensus.ScoreLowReputation, nil
		}
		return consensus.LowReputation, nil
	}

	oneToOneMaxID := limits.ScoresOneToOneMax
	if sc.Kind == models.KindScoreComment {
		oneToOneMaxID = limits.ScoresOneToOneOverCommentMax
	}
	oneToOneMax, err := e.Limits.Value(ctx, oneToOneMaxID, bc.Height)
	if err != nil {
		return consensus.Failed, err
	}
	depth, err := e.Limits.Value(ctx, limits.ScoresOneToOneDepth, bc.Height)
	if err != nil {
		return consensus.Failed, err
	}
	since := bc.BlockTime - depth
	priorCount, err := e.Store.CountScoresBetween(ctx, sc.Address, content.Address, since)
	if err != nil {
		return consensus.Failed, err
	}
	if !e.Reputation.AllowModifyReputationOverPair(ctx, priorCount, oneToOneMax) {
		return consensus.ExceededLimit, nil
	}

	dailyCapID := limits.TrialScoreLimit
	if sc.Kind == models.KindScoreComment {
		dailyCapID = limits.TrialCommentScoreLimit
	}
	switch voterMode {
	case models.ModeFull:
		if sc.Kind == models.KindScorePost {
			dailyCapID = limits.FullScoreLimit
		} else {
			dailyCapID = limits.FullCommentScoreLimit
		}
	case models.ModePro:
		if sc.Kind == models.KindScorePost {
			dailyCapID = limits.ProScoreLimit
		} else {
			dailyCapID = limits.ProCommentScoreLimit
		}
	}
	dayWindowStart := windowStart(bc.Height, 1440)
	count, err := e.Store.CountScoresSince(ctx, sc.Address, dayWindowStart)
	if err != nil {
		return consensus.Failed, err
	}
	cap, err := e.Limits.Value(ctx, dailyCapID, bc.Height)
	if err != nil {
		return consensus.Failed, err
	}
	if int64(count) >= cap {
		return consensus.ScoreLimit, nil
	}

	return consensus.Success, nil
}

