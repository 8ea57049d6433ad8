package engine

import (
	"context"
	"fmt"

	"github.com/rawblock/sce/internal/consensus"
	"github.com/rawblock/sce/internal/models"
	"github.com/rawblock/sce/internal/social"
)

// CheckInput is the decoded, not-yet-chain-checked view of one application
// transaction: its carrier tx facts plus its typed payload (spec.md §4.5's
// "Check" stage — shape and hash only, no store lookups).
type CheckInput struct {
	Tx      social.Tx
	Address string
	Payload models.Payload
	Height  int32
}

// Check runs the stateless structural rule for one payload (spec.md §4.5
// "Check"): payload-hash equality against the carrier tx's OP_RETURN, plus
// the per-kind shape rule.
func (e *Engine) Check(ctx context.Context, in CheckInput) (consensus.Code, error) {
	includeReferrer := true
	if code := social.CheckPayloadHash(in.Tx, in.Payload, includeReferrer); code != consensus.Success {
		return code, nil
	}

	switch p := in.Payload.(type) {
	case models.UserPayload:
		return e.Social.CheckUser(p, in.Address), nil
	case models.PostPayload:
		return e.Social.CheckContent(ctx, p.Kind, payloadByteSize(p), in.Height)
	case models.CommentPayload:
		return e.Social.CheckContent(ctx, models.KindComment, payloadByteSize(p), in.Height)
	case models.ScorePayload:
		return e.Social.CheckScore(p.Kind, p.Value), nil
	default:
		return consensus.Success, nil
	}
}

// payloadByteSize sums the canonical field lengths CheckContent's
// size-cap rule (spec.md §4.5) weighs against, mirroring how the
// payload hash itself is computed from the same field list.
func payloadByteSize(p models.Payload) int {
	n := 0
	for _, f := range p.CanonicalFields() {
		n += len(f)
	}
	return n
}

// ValidateInput carries the decoded row plus the block/mempool context
// Validate needs to weigh the payload against current chain state
// (spec.md §4.5 "Validate").
type ValidateInput struct {
	Kind                 models.Kind
	Account              *models.Account
	Content              *models.Content
	Score                *models.Score
	Subscription         *models.Subscription
	Blocking             *models.Blocking
	Complaint            *models.Complaint
	Flag                 *models.ModerationFlag
	Vote                 *models.ModerationVote
	Mode                 models.AccountMode
	Context              social.BlockContext
	IntraBatchRegistered map[string]bool
}

// Validate runs the stateful per-kind rule (spec.md §4.5 "Validate"),
// dispatching to the Social Consensus engine by Kind.
func (e *Engine) Validate(ctx context.Context, in ValidateInput) (consensus.Code, error) {
	switch in.Kind {
	case models.KindUser:
		return e.Social.ValidateUser(ctx, models.UserPayload{
			Name:     in.Account.Name,
			Referrer: in.Account.Referrer,
		}, in.Account.Address, in.Context, in.IntraBatchRegistered)
	case models.KindPost, models.KindVideo, models.KindArticle:
		return e.Social.ValidatePost(ctx, *in.Content, in.Mode, in.Context)
	case models.KindComment:
		return e.Social.ValidateComment(ctx, *in.Content, in.Mode, in.Context)
	case models.KindCommentDelete:
		return e.Social.ValidateCommentDelete(ctx, in.Content.RootTxHash, in.Content.Address)
	case models.KindScorePost, models.KindScoreComment:
		return e.Social.ValidateScore(ctx, *in.Score, in.Mode, in.Context)
	case models.KindSubscribe, models.KindSubscribePrivate, models.KindUnsubscribe:
		return e.Social.ValidateSubscription(ctx, *in.Subscription)
	case models.KindBlock, models.KindUnblock:
		return e.Social.ValidateBlocking(ctx, *in.Blocking)
	case models.KindComplain:
		return e.Social.ValidateComplaint(ctx, *in.Complaint, in.Mode, in.Context)
	case models.KindModerationFlag:
		return e.Social.ValidateModerationFlag(ctx, *in.Flag)
	case models.KindModerationVote:
		return e.Social.ValidateModerationVote(ctx, *in.Vote)
	default:
		return consensus.Failed, fmt.Errorf("engine: unhandled kind %d", in.Kind)
	}
}
