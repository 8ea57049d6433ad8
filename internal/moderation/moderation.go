// Package moderation implements the Jury/Ban escalation path (spec.md
// §4.7): moderation flags accumulate into juries, jury votes accumulate
// into bans, with category (1-4) chosen by the target's likers count.
package moderation

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/rawblock/sce/internal/limits"
	"github.com/rawblock/sce/internal/models"
	"github.com/rawblock/sce/internal/store"
)

// Category is one of the four likers-count bands the jury/ban thresholds
// are keyed by (spec.md §4.7: "category chosen by the target's likers
// count").
type Category int32

const (
	Category1 Category = iota + 1
	Category2
	Category3
	Category4
)

// Engine drives flag/vote accumulation against the store and limit table.
type Engine struct {
	Store  *store.Store
	Limits *limits.Table
}

func New(s *store.Store, lim *limits.Table) *Engine {
	return &Engine{Store: s, Limits: lim}
}

func (e *Engine) categoryOf(ctx context.Context, target string, height int32) (Category, error) {
	likers, err := e.Store.LikersCountAt(ctx, target, height)
	if err != nil {
		return 0, err
	}
	switch {
	case likers >= 5000:
		return Category4, nil
	case likers >= 1000:
		return Category3, nil
	case likers >= 100:
		return Category2, nil
	default:
		return Category1, nil
	}
}

func (e *Engine) jurySizeLimit(cat Category) limits.ID {
	switch cat {
	case Category4:
		return limits.ModerationJurySizeCat4
	case Category3:
		return limits.ModerationJurySizeCat3
	case Category2:
		return limits.ModerationJurySizeCat2
	default:
		return limits.ModerationJurySizeCat1
	}
}

func (e *Engine) flagCountLimit(cat Category) limits.ID {
	switch cat {
	case Category4:
		return limits.ModerationFlagCountCat4
	case Category3:
		return limits.ModerationFlagCountCat3
	case Category2:
		return limits.ModerationFlagCountCat2
	default:
		return limits.ModerationFlagCountCat1
	}
}

func (e *Engine) voteCountLimit(cat Category) limits.ID {
	switch cat {
	case Category4:
		return limits.ModerationVoteCountCat4
	case Category3:
		return limits.ModerationVoteCountCat3
	case Category2:
		return limits.ModerationVoteCountCat2
	default:
		return limits.ModerationVoteCountCat1
	}
}

// OnFlag processes a committed ModerationFlag tx against target at height
// h: if the flag count within the window crosses the category threshold
// and no jury already covers this flag batch, a Jury row is created
// selecting moderators from the recent flaggers (spec.md §4.7).
func (e *Engine) OnFlag(ctx context.Context, target string, h int32) (*models.Jury, error) {
	cat, err := e.categoryOf(ctx, target, h)
	if err != nil {
		return nil, fmt.Errorf("moderation: category: %w", err)
	}
	depth, err := e.Limits.Value(ctx, limits.ModerationFlagCountCat1, h) // shared flag-depth window
	if err != nil {
		return nil, err
	}
	since := h - int32(depth)
	if since < 0 {
		since = 0
	}
	flags, err := e.Store.FlagsForTarget(ctx, target, h)
	if err != nil {
		return nil, err
	}
	var recent []models.ModerationFlag
	for _, f := range flags {
		if f.Height >= since {
			recent = append(recent, f)
		}
	}

	threshold, err := e.Limits.Value(ctx, e.flagCountLimit(cat), h)
	if err != nil {
		return nil, err
	}
	if int64(len(recent)) < threshold {
		return nil, nil
	}

	// A jury formed inside this flag window already covers these flags.
	juries, err := e.Store.ActiveJuriesForTarget(ctx, target)
	if err != nil {
		return nil, err
	}
	if len(juries) > 0 && juries[0].Height >= since {
		return nil, nil
	}

	jurySize, err := e.Limits.Value(ctx, e.jurySizeLimit(cat), h)
	if err != nil {
		return nil, err
	}
	moderators := make([]string, 0, jurySize)
	seen := make(map[string]bool)
	for i := len(recent) - 1; i >= 0 && int64(len(moderators)) < jurySize; i-- {
		if !seen[recent[i].Address] {
			seen[recent[i].Address] = true
			moderators = append(moderators, recent[i].Address)
		}
	}

	jury := models.Jury{
		Id:         uuid.NewString(),
		Target:     target,
		Category:   int32(cat),
		Moderators: moderators,
		Height:     h,
	}
	if err := e.Store.PutJury(ctx, jury); err != nil {
		return nil, fmt.Errorf("moderation: put jury: %w", err)
	}
	return &jury, nil
}

// OnVote processes a committed ModerationVote tx: once the matching-vote
// count on juryID crosses its category threshold, a Ban row is written
// with three escalating expiry heights (spec.md §4.7).
func (e *Engine) OnVote(ctx context.Context, juryID string, h int32) (*models.Ban, error) {
	jury, err := e.Store.GetJury(ctx, juryID)
	if err != nil {
		return nil, fmt.Errorf("moderation: get jury: %w", err)
	}
	votes, err := e.Store.VotesForJury(ctx, juryID)
	if err != nil {
		return nil, err
	}
	var guilty int64
	for _, v := range votes {
		if v.Verdict {
			guilty++
		}
	}

	cat := Category(jury.Category)
	threshold, err := e.Limits.Value(ctx, e.voteCountLimit(cat), h)
	if err != nil {
		return nil, err
	}
	if guilty < threshold {
		return nil, nil
	}

	ban1, err := e.Limits.Value(ctx, limits.BanDuration1Blocks, h)
	if err != nil {
		return nil, err
	}
	ban2, err := e.Limits.Value(ctx, limits.BanDuration2Blocks, h)
	if err != nil {
		return nil, err
	}
	ban3, err := e.Limits.Value(ctx, limits.BanDuration3Blocks, h)
	if err != nil {
		return nil, err
	}

	ban := models.Ban{
		Target:   jury.Target,
		Category: jury.Category,
		Height:   h,
		Ban1:     h + int32(ban1),
		Ban2:     h + int32(ban2),
		Ban3:     h + int32(ban3),
	}
	if err := e.Store.PutBan(ctx, ban); err != nil {
		return nil, fmt.Errorf("moderation: put ban: %w", err)
	}
	return &ban, nil
}

// IsBanned reports whether target is under an unexpired ban at height h.
func (e *Engine) IsBanned(ctx context.Context, target string, h int32) (bool, error) {
	ban, err := e.Store.ActiveBan(ctx, target, h)
	if err == store.ErrNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return h < ban.Ban1, nil
}
