package social

import (
	"context"
	"errors"

	"github.com/rawblock/sce/internal/consensus"
	"github.com/rawblock/sce/internal/limits"
	"github.com/rawblock/sce/internal/models"
	"github.com/rawblock/sce/internal/store"
)

// perKindLimits resolves, for a content kind, the daily-cap limit ID for
// the given account mode plus the edit-depth and edit-count limit IDs
// (spec.md §4.5/§4.6).
func perKindLimits(kind models.Kind, mode models.AccountMode) (dailyCap, editDepth, editCountMax limits.ID) {
	switch kind {
	case models.KindPost:
		editDepth = limits.EditPostDepthBlocks
		editCountMax = limits.PostEditCountMax
		switch mode {
		case models.ModePro:
			dailyCap = limits.ProPostLimit
		case models.ModeFull:
			dailyCap = limits.FullPostLimit
		default:
			dailyCap = limits.TrialPostLimit
		}
	case models.KindVideo:
		editDepth = limits.EditPostDepthBlocks
		editCountMax = limits.PostEditCountMax
		switch mode {
		case models.ModePro:
			dailyCap = limits.ProVideoLimit
		case models.ModeFull:
			dailyCap = limits.FullVideoLimit
		default:
			dailyCap = limits.TrialVideoLimit
		}
	case models.KindArticle:
		editDepth = limits.EditPostDepthBlocks
		editCountMax = limits.PostEditCountMax
		switch mode {
		case models.ModePro:
			dailyCap = limits.ProArticleLimit
		case models.ModeFull:
			dailyCap = limits.FullArticleLimit
		default:
			dailyCap = limits.TrialArticleLimit
		}
	case models.KindComment:
		editDepth = limits.EditCommentDepthBlocks
		editCountMax = limits.CommentEditCountMax
		switch mode {
		case models.ModePro:
			dailyCap = limits.ProCommentLimit
		case models.ModeFull:
			dailyCap = limits.FullCommentLimit
		default:
			dailyCap = limits.TrialCommentLimit
		}
	}
	return dailyCap, editDepth, editCountMax
}

// CheckContent validates a Post/Video/Article/Comment payload's size
// against its kind's size cap. It does not inspect the message, so an
// empty comment message is not rejected here.
func (e *Engine) CheckContent(ctx context.Context, kind models.Kind, bodyBytes int, height int32) (consensus.Code, error) {
	capID := limits.ContentSizeCapBytes
	if kind == models.KindComment {
		capID = limits.MaxCommentSizeBytes
	}
	maxSize, err := e.Limits.Value(ctx, capID, height)
	if err != nil {
		return consensus.Failed, err
	}
	if int64(bodyBytes) > maxSize {
		return consensus.ContentSizeLimit, nil
	}
	return consensus.Success, nil
}

// ValidatePost implements the Post/Video/Article rule (spec.md §4.5): a
// per-account per-window count cap gated by account mode; for edits, the
// original must exist, belong to the same author, fall within the edit
// window, and not exceed the per-root edit count. A second edit of the
// same root within one block or within the mempool is not detected here;
// DoubleContentEdit is never returned.
func (e *Engine) ValidatePost(ctx context.Context, c models.Content, mode models.AccountMode, bc BlockContext) (consensus.Code, error) {
	dailyCapID, editDepthID, editCountMaxID := perKindLimits(c.Kind, mode)

	if c.TxHash == c.RootTxHash {
		since := e.contentWindowStart(c.Kind, bc)
		count, err := e.Store.CountContentSince(ctx, c.Address, c.Kind, since)
		if err != nil {
			return consensus.Failed, err
		}
		cap, err := e.Limits.Value(ctx, dailyCapID, bc.Height)
		if err != nil {
			return consensus.Failed, err
		}
		if int64(count) >= cap {
			return consensus.ContentLimit, nil
		}
		return consensus.Success, nil
	}

	original, err := e.Store.GetActiveByRoot(ctx, c.RootTxHash)
	if errors.Is(err, store.ErrNotFound) {
		return consensus.NotFound, nil
	}
	if err != nil {
		return consensus.Failed, err
	}
	if original.Address != c.Address {
		return consensus.ContentEditUnauthorized, nil
	}
	if original.Deleted {
		return consensus.CommentDeletedEdit, nil
	}

	depth, err := e.Limits.Value(ctx, editDepthID, bc.Height)
	if err != nil {
		return consensus.Failed, err
	}
	if int64(bc.Height-original.Height) > depth {
		return consensus.ContentEditLimit, nil
	}

	editCount, err := e.Store.CountEditsSince(ctx, c.RootTxHash, 0)
	if err != nil {
		return consensus.Failed, err
	}
	maxEdits, err := e.Limits.Value(ctx, editCountMaxID, bc.Height)
	if err != nil {
		return consensus.Failed, err
	}
	if int64(editCount) >= maxEdits {
		return consensus.ContentEditLimit, nil
	}

	return consensus.Success, nil
}

// ValidateComment implements the Comment rule (spec.md §4.5): the same
// rate limits as Post-family content, parent/answer must be existing
// non-deleted comments on the same post, and an edit obeys
// edit_comment_depth.
func (e *Engine) ValidateComment(ctx context.Context, c models.Content, mode models.AccountMode, bc BlockContext) (consensus.Code, error) {
	if c.ParentId != "" {
		parent, err := e.Store.GetContent(ctx, c.ParentId)
		if errors.Is(err, store.ErrNotFound) {
			return consensus.InvalidParentComment, nil
		}
		if err != nil {
			return consensus.Failed, err
		}
		if parent.Kind != models.KindComment || parent.Deleted || parent.PostId != c.PostId {
			return consensus.InvalidParentComment, nil
		}
	}
	if c.AnswerId != "" {
		answer, err := e.Store.GetContent(ctx, c.AnswerId)
		if errors.Is(err, store.ErrNotFound) {
			return consensus.InvalidAnswerComment, nil
		}
		if err != nil {
			return consensus.Failed, err
		}
		if answer.Kind != models.KindComment || answer.Deleted || answer.PostId != c.PostId {
			return consensus.InvalidAnswerComment, nil
		}
	}
	return e.ValidatePost(ctx, c, mode, bc)
}

// ValidateCommentDelete implements the Delete-tx path: the target
// comment must exist, belong to the caller, and not already be deleted
// (DoubleCommentDelete).
func (e *Engine) ValidateCommentDelete(ctx context.Context, rootTxHash, address string) (consensus.Code, error) {
	current, err := e.Store.GetActiveByRoot(ctx, rootTxHash)
	if errors.Is(err, store.ErrNotFound) {
		return consensus.NotFound, nil
	}
	if err != nil {
		return consensus.Failed, err
	}
	if current.Address != address {
		return consensus.ContentDeleteUnauthorized, nil
	}
	if current.Deleted {
		return consensus.DoubleCommentDelete, nil
	}
	return consensus.Success, nil
}
