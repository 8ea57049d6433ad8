package social

import (
	"context"
	"errors"
	"strings"

	"github.com/rawblock/sce/internal/consensus"
	"github.com/rawblock/sce/internal/limits"
	"github.com/rawblock/sce/internal/models"
	"github.com/rawblock/sce/internal/store"
)

// nameMinLen/nameMaxLen are the frozen name-length bounds from spec.md
// §4.5 ("name length 1-35 with trim rules"); they are not a per-height
// tunable, so they live here rather than in the Limit Table.
const (
	nameMinLen = 1
	nameMaxLen = 35
)

// CheckUser validates a User payload's shape (spec.md §4.5): trimmed name
// length, referrer not equal to self.
func (e *Engine) CheckUser(p models.UserPayload, address string) consensus.Code {
	trimmed := strings.TrimSpace(p.Name)
	if len(trimmed) < nameMinLen || len(trimmed) > nameMaxLen {
		return consensus.NicknameLong
	}
	if p.Referrer == address {
		return consensus.ReferrerSelf
	}
	return consensus.Success
}

// ValidateUser implements the User rule from spec.md §4.5:
//   - name uniqueness among other active users,
//   - referrer must exist or be empty,
//   - at most edit_user_daily_count User txs per account per window, where
//     the window length is the EditPostDepthBlocks limit (the Limit Table
//     has no separate User window entry),
//   - referrer is frozen after the first registration.
func (e *Engine) ValidateUser(ctx context.Context, p models.UserPayload, address string, bc BlockContext, intraBatchRegistered map[string]bool) (consensus.Code, error) {
	taken, err := e.Store.NameTaken(ctx, p.Name, address)
	if err != nil {
		return consensus.Failed, err
	}
	if taken {
		return consensus.NicknameDouble, nil
	}

	if p.Referrer != "" {
		if code, err := e.checkRegistered(ctx, p.Referrer, intraBatchRegistered); err != nil {
			return consensus.Failed, err
		} else if code == consensus.NotRegistered {
			return consensus.NotFound, nil
		}
	}

	existing, err := e.Store.GetAccountByAddress(ctx, address)
	notFound := errors.Is(err, store.ErrNotFound)
	if err != nil && !notFound {
		return consensus.Failed, err
	}

	if !notFound {
		if p.Referrer != existing.Referrer {
			return consensus.ReferrerAfterRegistration, nil
		}

		depth, err := e.Limits.Value(ctx, limits.EditPostDepthBlocks, bc.Height)
		if err != nil {
			return consensus.Failed, err
		}
		since := windowStart(bc.Height, depth)
		count, err := e.Store.CountUserTxSince(ctx, address, since)
		if err != nil {
			return consensus.Failed, err
		}
		dailyCount, err := e.Limits.Value(ctx, limits.EditUserDailyCount, bc.Height)
		if err != nil {
			return consensus.Failed, err
		}
		if int64(count) >= dailyCount {
			return consensus.ChangeInfoLimit, nil
		}
	}

	return consensus.Success, nil
}
