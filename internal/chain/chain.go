// Package chain implements the Chain Post-Processor (L6, spec.md §4.8):
// per-block orchestration that commits payloads out of the mempool into
// L0, folds scores into L1 rating deltas, drives jury/ban escalation, and
// periodically recomputes badges. Each step commits through its own store
// call; the sequence as a whole is not wrapped in one transaction, so an
// error part-way through leaves the earlier steps' writes in place.
package chain

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/rawblock/sce/internal/chainparams"
	"github.com/rawblock/sce/internal/limits"
	"github.com/rawblock/sce/internal/mempool"
	"github.com/rawblock/sce/internal/models"
	"github.com/rawblock/sce/internal/moderation"
	"github.com/rawblock/sce/internal/reputation"
	"github.com/rawblock/sce/internal/statehash"
	"github.com/rawblock/sce/internal/store"
)

// TransactionIndexingInfo is one committed transaction's decoded payload,
// tagged by Kind and carried through IndexBlock in block-index order
// (spec.md §4.8 step 1). Exactly one of the kind-specific fields is set,
// matching Kind.
type TransactionIndexingInfo struct {
	BlockIndex    int32
	CarrierTxHash string
	Kind          models.Kind
	Height        int32
	Time          int64

	Account      *models.Account
	Content      *models.Content
	Score        *models.Score
	Subscription *models.Subscription
	Blocking     *models.Blocking
	Complaint    *models.Complaint
	Flag         *models.ModerationFlag
	Vote         *models.ModerationVote
}

// Engine orchestrates one block's worth of commits across every layer.
type Engine struct {
	Store      *store.Store
	Limits     *limits.Table
	Mempool    *mempool.Mempool
	Reputation *reputation.Engine
	Moderation *moderation.Engine
	Params     chainparams.Params
}

func New(s *store.Store, lim *limits.Table, mp *mempool.Mempool, rep *reputation.Engine, mod *moderation.Engine, params chainparams.Params) *Engine {
	return &Engine{Store: s, Limits: lim, Mempool: mp, Reputation: rep, Moderation: mod, Params: params}
}

// IndexBlock runs spec.md §4.8's steps for one connected block.
func (e *Engine) IndexBlock(ctx context.Context, blockHash string, height int32, infos []TransactionIndexingInfo) error {
	// Steps 1-2: commit every payload into its L0 table and clear its
	// mempool staging row now that its carrier tx is confirmed.
	for _, info := range infos {
		if err := e.commit(ctx, info); err != nil {
			return fmt.Errorf("chain: commit %s: %w", info.CarrierTxHash, err)
		}
		if err := e.Mempool.CommitOnConnect(ctx, info.CarrierTxHash); err != nil {
			return fmt.Errorf("chain: commit on connect %s: %w", info.CarrierTxHash, err)
		}
	}

	// Step 3: bulk-load every score committed at this height.
	depth, err := e.Limits.Value(ctx, limits.ScoresOneToOneDepth, height)
	if err != nil {
		return fmt.Errorf("chain: scores_one_to_one_depth: %w", err)
	}
	scoreData, err := e.Store.GetScoreData(ctx, height, depth)
	if err != nil {
		return fmt.Errorf("chain: get score data: %w", err)
	}

	// Steps 4-5: emit rating and reputation deltas, plus likers deltas.
	deltas, err := e.scoreDeltas(ctx, height, scoreData)
	if err != nil {
		return err
	}

	// Step 6: flush every delta in one atomic append.
	if err := e.Store.InsertDeltas(ctx, deltas); err != nil {
		return fmt.Errorf("chain: insert deltas: %w", err)
	}

	// Step 7: jury/ban escalation for this block's flags/votes.
	for _, info := range infos {
		switch info.Kind {
		case models.KindModerationFlag:
			if _, err := e.Moderation.OnFlag(ctx, info.Flag.Target, height); err != nil {
				return fmt.Errorf("chain: on flag: %w", err)
			}
		case models.KindModerationVote:
			if _, err := e.Moderation.OnVote(ctx, info.Vote.JuryId, height); err != nil {
				return fmt.Errorf("chain: on vote: %w", err)
			}
		}
	}

	// Step 8: badge recomputation every BadgePeriod() heights.
	if e.Params.BadgePeriod > 0 && height%e.Params.BadgePeriod == 0 {
		if err := e.recomputeBadges(ctx, height, scoreData); err != nil {
			return fmt.Errorf("chain: recompute badges: %w", err)
		}
	}

	log.Printf("[chain] indexed block %d (%s): %d txs, %d scores, %d deltas", height, blockHash, len(infos), len(scoreData), len(deltas))
	return nil
}

func (e *Engine) commit(ctx context.Context, info TransactionIndexingInfo) error {
	switch info.Kind {
	case models.KindUser:
		return e.Store.PutAccount(ctx, *info.Account, info.Height)
	case models.KindPost, models.KindVideo, models.KindArticle, models.KindComment, models.KindCommentDelete:
		return e.Store.PutContent(ctx, *info.Content, info.BlockIndex)
	case models.KindScorePost, models.KindScoreComment:
		return e.Store.PutScore(ctx, *info.Score, info.BlockIndex)
	case models.KindSubscribe, models.KindSubscribePrivate, models.KindUnsubscribe:
		return e.Store.PutSubscription(ctx, *info.Subscription, info.BlockIndex)
	case models.KindBlock, models.KindUnblock:
		return e.Store.PutBlocking(ctx, *info.Blocking, info.BlockIndex)
	case models.KindComplain:
		return e.Store.PutComplaint(ctx, *info.Complaint)
	case models.KindModerationFlag:
		return e.Store.PutModerationFlag(ctx, *info.Flag)
	case models.KindModerationVote:
		return e.Store.PutModerationVote(ctx, *info.Vote)
	default:
		return fmt.Errorf("unknown kind %d", info.Kind)
	}
}

// ratingKey identifies a running (type, id) total tracked across a single
// scoreDeltas call, so a block touching the same content/account more than
// once still reports each _LAST row's cumulative value correctly without
// re-querying the store for every score.
type ratingKey struct {
	t  models.RatingType
	id string
}

// accumulate adds delta to the running total for (t, id), lazily seeding it
// from the store's existing sum on first use, and returns the new total.
func (e *Engine) accumulate(ctx context.Context, running map[ratingKey]int64, t models.RatingType, id string, height int32, delta int64) (int64, error) {
	key := ratingKey{t, id}
	total, ok := running[key]
	if !ok {
		v, err := e.Store.RatingSumAt(ctx, t, id, height)
		if err != nil {
			return 0, err
		}
		total = v
	}
	total += delta
	running[key] = total
	return total, nil
}

// scoreDeltas implements spec.md §4.8 steps 4-5: for every score committed
// at height, it always records the rating sample (content/comment delta)
// and its "_LAST" counterpart — even when the delta is zero, to mark that
// this height touched the row — and additionally records the
// author-reputation delta and likers delta (each paired with its own
// "_LAST" row) once the voter clears the AllowModifyOldPosts/
// AllowModifyReputation/AllowModifyReputationOverPair gates from §4.6.
func (e *Engine) scoreDeltas(ctx context.Context, height int32, scoreData []models.ScoreData) ([]models.RatingRow, error) {
	var deltas []models.RatingRow
	running := make(map[ratingKey]int64)

	scaleTenfold, err := e.Limits.Value(ctx, limits.ScaleTenfoldScorePost, height)
	if err != nil {
		return nil, fmt.Errorf("chain: scale_tenfold_score_post: %w", err)
	}

	for _, sd := range scoreData {
		authorDelta, contentDelta := reputation.ContentDelta(sd.ScoreKind, sd.ScoreValue, scaleTenfold != 0)

		contentType := models.RatingContent
		if sd.ContentType == models.KindComment {
			contentType = models.RatingComment
		}
		if contentDelta != 0 {
			deltas = append(deltas, models.RatingRow{Type: contentType, Id: sd.ContentTxHash, Height: height, Value: contentDelta})
		}
		contentTotal, err := e.accumulate(ctx, running, contentType, sd.ContentTxHash, height, contentDelta)
		if err != nil {
			return nil, fmt.Errorf("chain: accumulate content rating: %w", err)
		}
		deltas = append(deltas, models.RatingRow{Type: contentType.Last(), Id: sd.ContentTxHash, Height: height, Value: contentTotal})

		if authorDelta == 0 {
			continue
		}

		// An active Block from the author against the voter masks this
		// pair's score→reputation propagation.
		blk, err := e.Store.CurrentBlocking(ctx, sd.ContentAddress, sd.ScoreAddress)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("chain: current blocking: %w", err)
		}
		if err == nil && blk.Kind == models.KindBlock {
			continue
		}

		allowedAge, err := e.Reputation.AllowModifyOldPosts(ctx, sd.ScoreTime, sd.ContentTime, height)
		if err != nil {
			return nil, fmt.Errorf("chain: allow modify old posts: %w", err)
		}
		if !allowedAge {
			continue
		}

		allowedVoter, err := e.Reputation.AllowModifyReputation(ctx, sd.ScoreAddress, sd.ContentAddress, height, e.Params.HeightFixRatings, false)
		if err != nil {
			return nil, fmt.Errorf("chain: allow modify reputation: %w", err)
		}
		if !allowedVoter {
			continue
		}

		pairMax := limits.ScoresOneToOneMax
		if sd.ScoreKind == models.KindScoreComment {
			pairMax = limits.ScoresOneToOneOverCommentMax
		}
		maxOneToOne, err := e.Limits.Value(ctx, pairMax, height)
		if err != nil {
			return nil, fmt.Errorf("chain: scores_one_to_one_max: %w", err)
		}
		depth, err := e.Limits.Value(ctx, limits.ScoresOneToOneDepth, height)
		if err != nil {
			return nil, fmt.Errorf("chain: scores_one_to_one_depth: %w", err)
		}
		// sd is itself already committed, so the raw count includes it;
		// subtract one to get the count of scores strictly prior to it.
		priorCount, err := e.Store.CountScoresBetween(ctx, sd.ScoreAddress, sd.ContentAddress, sd.ScoreTime-depth)
		if err != nil {
			return nil, fmt.Errorf("chain: count scores between: %w", err)
		}
		if priorCount > 0 {
			priorCount--
		}
		if !e.Reputation.AllowModifyReputationOverPair(ctx, priorCount, maxOneToOne) {
			continue
		}

		deltas = append(deltas, models.RatingRow{Type: models.RatingAccount, Id: sd.ContentAddress, Height: height, Value: authorDelta})
		acctTotal, err := e.accumulate(ctx, running, models.RatingAccount, sd.ContentAddress, height, authorDelta)
		if err != nil {
			return nil, fmt.Errorf("chain: accumulate account rating: %w", err)
		}
		deltas = append(deltas, models.RatingRow{Type: models.RatingAccountLast, Id: sd.ContentAddress, Height: height, Value: acctTotal})

		// ValidateAccountLiker (spec.md §4.6): a +1 liker delta the first
		// time this voter casts a qualifying positive score against this
		// author, per liker class (post / comment-root / comment-answer).
		// The "_LAST" row is written every time regardless, since Testable
		// Property 9 requires ACCOUNT_LIKERS_*_LAST to be non-decreasing and
		// readable at this height even when this particular score was a
		// repeat and contributed no new liker.
		if authorDelta > 0 {
			likerType := reputation.LikerDeltaType(sd.ContentType, sd.ContentIsAnswer)
			isComment := sd.ContentType == models.KindComment
			already, err := e.Store.PriorPositiveScore(ctx, sd.ScoreAddress, sd.ContentAddress, isComment, sd.ContentIsAnswer, height)
			if err != nil {
				return nil, fmt.Errorf("chain: prior positive score: %w", err)
			}
			likerDelta := int64(0)
			if !already {
				likerDelta = 1
				deltas = append(deltas, models.RatingRow{Type: likerType, Id: sd.ContentAddress, Height: height, Value: 1})
			}
			likerTotal, err := e.accumulate(ctx, running, likerType, sd.ContentAddress, height, likerDelta)
			if err != nil {
				return nil, fmt.Errorf("chain: accumulate likers: %w", err)
			}
			deltas = append(deltas, models.RatingRow{Type: likerType.Last(), Id: sd.ContentAddress, Height: height, Value: likerTotal})
		}
	}

	return deltas, nil
}

// recomputeBadges evaluates shark/whale badges for every distinct author
// touched by this height's scores, writing a RatingBadge row per address
// (spec.md §4.6). Moderator status is left to the moderation package's own
// jury bookkeeping and is not folded into this periodic sweep.
func (e *Engine) recomputeBadges(ctx context.Context, height int32, scoreData []models.ScoreData) error {
	seen := make(map[string]bool)
	var deltas []models.RatingRow
	for _, sd := range scoreData {
		if seen[sd.ContentAddress] {
			continue
		}
		seen[sd.ContentAddress] = true

		badges, err := e.Reputation.ComputeBadges(ctx, sd.ContentAddress, height)
		if err != nil {
			return fmt.Errorf("compute badges for %s: %w", sd.ContentAddress, err)
		}
		value := int64(0)
		if badges.Shark {
			value |= 1
		}
		if badges.Whale {
			value |= 2
		}
		deltas = append(deltas, models.RatingRow{Type: models.RatingBadge, Id: sd.ContentAddress, Height: height, Value: value})
	}
	return e.Store.InsertDeltas(ctx, deltas)
}

// Rollback reverses IndexBlock for every block above height h, so h is
// the height that remains as the new tip (spec.md §8 invariant 4: applying
// IndexBlock then Rollback on the tip yields byte-identical L0/L1
// snapshots). evictedPayloads carries the payload rows whose carrier tx
// was committed above h, reconstructed by the
// caller from the block being disconnected (the SCE does not retain
// payload bytes past commit, spec.md §9); when backToMempool is true they
// are restored to the Payload Mempool before their committed rows vanish.
func (e *Engine) Rollback(ctx context.Context, h int32, evictedPayloads []models.PayloadMempoolRow, backToMempool bool) error {
	if backToMempool {
		for _, row := range evictedPayloads {
			if err := e.Mempool.RequeueOnDisconnect(ctx, row); err != nil {
				return fmt.Errorf("chain: requeue on disconnect: %w", err)
			}
		}
	}

	if err := e.Store.RollbackAccountsAbove(ctx, h); err != nil {
		return fmt.Errorf("chain: rollback accounts: %w", err)
	}
	if err := e.Store.RollbackContentAbove(ctx, h); err != nil {
		return fmt.Errorf("chain: rollback content: %w", err)
	}
	if err := e.Store.RollbackScoresAbove(ctx, h); err != nil {
		return fmt.Errorf("chain: rollback scores: %w", err)
	}
	if err := e.Store.RollbackSubscriptionsAbove(ctx, h); err != nil {
		return fmt.Errorf("chain: rollback subscriptions: %w", err)
	}
	if err := e.Store.RollbackBlockingsAbove(ctx, h); err != nil {
		return fmt.Errorf("chain: rollback blockings: %w", err)
	}
	if err := e.Store.RollbackComplaintsAbove(ctx, h); err != nil {
		return fmt.Errorf("chain: rollback complaints: %w", err)
	}
	if err := e.Store.RollbackModerationFlagsAbove(ctx, h); err != nil {
		return fmt.Errorf("chain: rollback moderation flags: %w", err)
	}
	if err := e.Store.RollbackModerationVotesAbove(ctx, h); err != nil {
		return fmt.Errorf("chain: rollback moderation votes: %w", err)
	}
	if err := e.Store.RollbackJuriesAbove(ctx, h); err != nil {
		return fmt.Errorf("chain: rollback juries: %w", err)
	}
	if err := e.Store.RollbackBansAbove(ctx, h); err != nil {
		return fmt.Errorf("chain: rollback bans: %w", err)
	}
	if err := e.Store.DeleteAboveHeight(ctx, h); err != nil {
		return fmt.Errorf("chain: rollback rating deltas: %w", err)
	}

	log.Printf("[chain] rolled back above height %d", h)
	return nil
}

// ComputeStateHash implements spec.md §4.9: fold every table's committed
// rows at height h, in the frozen table order, into the running state
// hash chained from prevStateHash.
func (e *Engine) ComputeStateHash(ctx context.Context, height int32, prevStateHash [32]byte) ([32]byte, error) {
	var tableHashes [][32]byte
	for _, table := range statehash.TableOrder() {
		rowHashes, err := e.Store.RowHashesForTable(ctx, table, height)
		if err != nil {
			return [32]byte{}, fmt.Errorf("chain: row hashes for %s: %w", table, err)
		}
		tableHashes = append(tableHashes, statehash.TableHash(rowHashes))
	}
	return statehash.BlockStateHash(tableHashes, prevStateHash), nil
}
