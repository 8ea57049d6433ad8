package social

import (
	"context"
	"errors"

	"github.com/rawblock/sce/internal/consensus"
	"github.com/rawblock/sce/internal/limits"
	"github.com/rawblock/sce/internal/models"
	"github.com/rawblock/sce/internal/store"
)

// ValidateComplaint implements Complaint (spec.md §4.5): complainer
// reputation must clear threshold_reputation; self-complaint is rejected;
// a complaint against deleted content is rejected; per-day cap by account
// mode. A repeat complaint by the same account on the same post is not
// checked, and DoubleComplain is never returned.
func (e *Engine) ValidateComplaint(ctx context.Context, c models.Complaint, complainerMode models.AccountMode, bc BlockContext) (consensus.Code, error) {
	post, err := e.Store.GetContent(ctx, c.PostTxHash)
	if errors.Is(err, store.ErrNotFound) {
		return consensus.NotFound, nil
	}
	if err != nil {
		return consensus.Failed, err
	}
	if post.Address == c.Address {
		return consensus.SelfComplain, nil
	}
	if post.Deleted {
		return consensus.ComplainDeletedContent, nil
	}

	rep, err := e.Store.AccountReputationAt(ctx, c.Address, bc.Height)
	if err != nil {
		return consensus.Failed, err
	}
	threshold, err := e.Limits.Value(ctx, limits.ReputationToComplain, bc.Height)
	if err != nil {
		return consensus.Failed, err
	}
	if rep < threshold {
		return consensus.ComplainLowReputation, nil
	}

	dailyCapID := limits.TrialComplainLimit
	switch complainerMode {
	case models.ModeFull:
		dailyCapID = limits.FullComplainLimit
	case models.ModePro:
		dailyCapID = limits.ProComplainLimit
	}
	since := windowStart(bc.Height, 1440)
	count, err := e.Store.CountComplaintsSince(ctx, c.Address, since)
	if err != nil {
		return consensus.Failed, err
	}
	cap, err := e.Limits.Value(ctx, dailyCapID, bc.Height)
	if err != nil {
		return consensus.Failed, err
	}
	if int64(count) >= cap {
		return consensus.ComplainLimit, nil
	}

	return consensus.Success, nil
}

// ValidateModerationFlag implements the ModerationFlag structural check
// (spec.md §4.5): flagger must not be the target, and the target must
// have an active account. It produces no direct rating change — jury/ban
// accumulation is handled post-commit by internal/moderation.
func (e *Engine) ValidateModerationFlag(ctx context.Context, f models.ModerationFlag) (consensus.Code, error) {
	if f.Address == f.Target {
		return consensus.SelfFlag, nil
	}
	exists, err := e.Store.AccountExists(ctx, f.Target)
	if err != nil {
		return consensus.Failed, err
	}
	if !exists {
		return consensus.NotFound, nil
	}
	return consensus.Success, nil
}

// ValidateModerationVote implements the ModerationVote structural check:
// the juror must be one of the jury's assigned moderators and must not
// have already voted on this jury.
func (e *Engine) ValidateModerationVote(ctx context.Context, v models.ModerationVote) (consensus.Code, error) {
	jury, err := e.Store.GetJury(ctx, v.JuryId)
	if errors.Is(err, store.ErrNotFound) {
		return consensus.NotFound, nil
	}
	if err != nil {
		return consensus.Failed, err
	}
	isJuror := false
	for _, m := range jury.Moderators {
		if m == v.Address {
			isJuror = true
			break
		}
	}
	if !isJuror {
		return consensus.NotAllowed, nil
	}

	votes, err := e.Store.VotesForJury(ctx, v.JuryId)
	if err != nil {
		return consensus.Failed, err
	}
	for _, existing := range votes {
		if existing.Address == v.Address {
			return consensus.Duplicate, nil
		}
	}
	return consensus.Success, nil
}
