package social

import (
	"github.com/rawblock/sce/internal/chainparams"
	"github.com/rawblock/sce/internal/checkpoint"
	"github.com/rawblock/sce/internal/models"
)

// contentWindowRule is the per-height Post/Video/Article/Comment
// rate-limit and edit window rule spec.md §9's "Deep inheritance of
// consensus rules" names: the original implementation's
// PostConsensusT -> PostConsensusT_checkpoint_1124000 ->
// PostConsensusT_checkpoint_1180000 chain flips the window from a fixed
// 86400-second wall-clock span to a deterministic 1440-block span.
// Wall-clock windows are vulnerable to same-block timestamp skew; block
// windows are not, which is the actual reason the fork exists, not just
// a renumbered constant.
type contentWindowRule struct {
	name          string
	windowSeconds int64 // wall-clock window; 0 means block-based
	windowBlocks  int32 // block-based window; used when windowSeconds == 0
}

func (r contentWindowRule) Name() string { return r.name }

// WindowStart resolves the height below which content no longer counts
// toward the window. Wall-clock rules convert their seconds window into
// a height delta via the network's average block spacing; block-based
// rules use their block count directly.
func (r contentWindowRule) WindowStart(height int32, blockTimeSeconds int64) int32 {
	if r.windowSeconds > 0 {
		return windowStart(height, r.windowSeconds/blockTimeSeconds)
	}
	return windowStart(height, int64(r.windowBlocks))
}

// contentWindowTable is the changelog shared by Post/Video/Article/
// Comment: genesis-era wall-clock window, then the 1180000 block-window
// fork (original_source/src/pocketdb/consensus/social/PostT.h).
var contentWindowTable = []checkpoint.Entry{
	{
		MainHeight: 0, TestHeight: 0,
		Factory: func() checkpoint.Rule {
			return contentWindowRule{name: "content-window-wallclock-86400s", windowSeconds: 86400}
		},
	},
	{
		MainHeight: 1180000, TestHeight: 1180000,
		Factory: func() checkpoint.Rule {
			return contentWindowRule{name: "content-window-blocks-1440", windowBlocks: 1440}
		},
	},
}

// RegisterCheckpoints populates d with every per-kind rule changelog
// Social consults (spec.md §4.4, the L3 Checkpoint Dispatcher). Called
// once during engine wiring, before any Validate call.
func RegisterCheckpoints(d *checkpoint.Dispatcher) {
	for _, kind := range []models.Kind{models.KindPost, models.KindVideo, models.KindArticle, models.KindComment} {
		d.Register(kind, contentWindowTable...)
	}
}

// contentWindowStart resolves the active content-window rule for kind at
// height and returns the height below which content no longer counts
// toward the rolling window.
func (e *Engine) contentWindowStart(kind models.Kind, bc BlockContext) int32 {
	rule, _ := e.Checkpoint.Instance(kind, e.Params.Name, bc.Height).(contentWindowRule)
	return rule.WindowStart(bc.Height, e.Params.BlockTimeSeconds)
}
