// Package reputation implements Reputation Consensus (L5, spec.md §4.6):
// account mode, the score-to-reputation delta function, likers
// accounting, and periodic badge computation.
package reputation

import (
	"context"
	"fmt"

	"github.com/rawblock/sce/internal/limits"
	"github.com/rawblock/sce/internal/models"
	"github.com/rawblock/sce/internal/store"
)

// Engine computes reputation-layer facts from the store and limit table.
// It holds no state of its own; every method is a pure function of its
// arguments plus whatever it reads from s/lim at the given height.
type Engine struct {
	Store  *store.Store
	Limits *limits.Table
}

func New(s *store.Store, lim *limits.Table) *Engine {
	return &Engine{Store: s, Limits: lim}
}

// AccountMode implements the mode function from spec.md §4.6:
// Trial by default, Full if reputation and balance clear their
// thresholds, Pro if balance additionally clears the Pro threshold.
// Balance itself is sourced from the underlying UTXO engine (a non-goal
// here), so AccountMode takes it as a parameter rather than looking it up.
func (e *Engine) AccountMode(ctx context.Context, address string, height int32, balanceSatoshis int64, thresholdBalance, thresholdBalancePro int64) (models.AccountMode, error) {
	rep, err := e.Store.AccountReputationAt(ctx, address, height)
	if err != nil {
		return models.ModeTrial, fmt.Errorf("reputation: account mode: %w", err)
	}
	repThreshold, err := e.Limits.Value(ctx, limits.ThresholdReputationFull, height)
	if err != nil {
		return models.ModeTrial, fmt.Errorf("reputation: account mode: %w", err)
	}
	if rep >= repThreshold && balanceSatoshis >= thresholdBalancePro {
		return models.ModePro, nil
	}
	if rep >= repThreshold && balanceSatoshis >= thresholdBalance {
		return models.ModeFull, nil
	}
	return models.ModeTrial, nil
}

// AllowModifyReputation implements spec.md §4.6's voter-side gate: the
// account's reputation and likers count must clear L2 thresholds before a
// score is allowed to move anyone else's reputation. lottery relaxes the
// gate per spec.md §4.8 step 4 ("accountData, lottery=false").
//
// spec.md §9 ("Open question") requires the exact height-keyed switch the
// source carries verbatim: below heightFixRatings the predicate is
// evaluated against the scored content's author; at or above it, against
// the voter. Callers pass both addresses so this function can pick the
// right one instead of guessing intent.
func (e *Engine) AllowModifyReputation(ctx context.Context, voterAddress, contentAuthorAddress string, height, heightFixRatings int32, lottery bool) (bool, error) {
	if lottery {
		return true, nil
	}
	subject := contentAuthorAddress
	if height >= heightFixRatings {
		subject = voterAddress
	}
	rep, err := e.Store.AccountReputationAt(ctx, subject, height)
	if err != nil {
		return false, err
	}
	repThreshold, err := e.Limits.Value(ctx, limits.ReputationToScore, height)
	if err != nil {
		return false, err
	}
	if rep < repThreshold {
		return false, nil
	}
	likers, err := e.Store.LikersCountAt(ctx, subject, height)
	if err != nil {
		return false, err
	}
	likersThreshold, err := e.Limits.Value(ctx, limits.ThresholdLikersCount, height)
	if err != nil {
		return false, err
	}
	return likers >= likersThreshold, nil
}

// AllowModifyOldPosts implements the age gate from spec.md §4.8 step 4:
// a score on content older than ReputationDepthModifierSeconds still
// counts as a rating sample but must not move reputation.
func (e *Engine) AllowModifyOldPosts(ctx context.Context, scoreTime, contentTime int64, height int32) (bool, error) {
	depth, err := e.Limits.Value(ctx, limits.ReputationDepthModifierSeconds, height)
	if err != nil {
		return false, err
	}
	return scoreTime-contentTime <= depth, nil
}

// AllowModifyReputationOverPair implements the one-to-one rate gate from
// spec.md §4.6: at most maxOneToOne (the ScoresOneToOneMax or
// ScoresOneToOneOverCommentMax limit) prior scores between the same
// (voter, author) pair within the ScoresOneToOneDepth window.
func (e *Engine) AllowModifyReputationOverPair(ctx context.Context, priorScoreCount int64, maxOneToOne int64) bool {
	return priorScoreCount <= maxOneToOne
}

// ContentDelta implements the score-to-reputation delta function from
// spec.md §4.6: ScorePost value v in 1..5 yields v-3 to both the content
// and its author, scaled ×10 when scaleTenfold is set (spec.md §9
// "Reputation scale ambiguity" — the convention varies by checkpoint, so
// callers resolve it from the Limit Table rather than a fixed constant
// here); ScoreComment yields sign(v) to the author (stored as ±1 at the
// /10 comment scale, never affected by scaleTenfold) and v to the
// comment itself.
func ContentDelta(kind models.Kind, value int32, scaleTenfold bool) (authorDelta, contentDelta int64) {
	switch kind {
	case models.KindScorePost:
		d := int64(value) - 3
		if scaleTenfold {
			d *= 10
		}
		return d, d
	case models.KindScoreComment:
		switch {
		case value > 0:
			return 1, int64(value)
		case value < 0:
			return -1, int64(value)
		default:
			return 0, 0
		}
	default:
		return 0, 0
	}
}

// LikerDeltaType maps a score's content kind to the ACCOUNT_LIKERS_* row
// it contributes to (spec.md §4.6): post, comment-as-root, or
// comment-as-answer, depending on whether the scored comment was itself
// a reply.
func LikerDeltaType(contentKind models.Kind, isCommentAnswer bool) models.RatingType {
	switch {
	case contentKind == models.KindComment && isCommentAnswer:
		return models.AccountLikersCommentAnswer
	case contentKind == models.KindComment:
		return models.AccountLikersCommentRoot
	default:
		return models.AccountLikersPost
	}
}

// Badges are the periodic shark/whale/moderator flags computed every
// BadgePeriod() blocks (spec.md §4.6).
type Badges struct {
	Shark     bool
	Whale     bool
	Moderator bool
}

// ComputeBadges evaluates the badge thresholds for address at height
// against its accumulated likers counts. Moderator status is left false
// here: it is driven by jury participation (internal/moderation), not by
// likers counts, and no caller in this repository sets it.
func (e *Engine) ComputeBadges(ctx context.Context, address string, height int32) (Badges, error) {
	likers, err := e.Store.LikersCountAt(ctx, address, height)
	if err != nil {
		return Badges{}, err
	}
	sharkThreshold, err := e.Limits.Value(ctx, limits.BadgeSharkThreshold, height)
	if err != nil {
		return Badges{}, err
	}
	whaleThreshold, err := e.Limits.Value(ctx, limits.BadgeWhaleThreshold, height)
	if err != nil {
		return Badges{}, err
	}
	return Badges{
		Shark: likers >= sharkThreshold,
		Whale: likers >= whaleThreshold,
	}, nil
}
