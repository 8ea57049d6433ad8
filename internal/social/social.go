// Package social implements Social Consensus (L4, spec.md §4.5): the
// per-kind Check/Validate rules that accept or reject application
// transactions. Check validates shape and the OP_RETURN/payload hash
// equality; Validate checks the transaction against the chain state plus
// either same-block preceding transactions or the current mempool.
package social

import (
	"context"

	"github.com/rawblock/sce/internal/chainparams"
	"github.com/rawblock/sce/internal/checkpoint"
	"github.com/rawblock/sce/internal/consensus"
	"github.com/rawblock/sce/internal/limits"
	"github.com/rawblock/sce/internal/models"
	"github.com/rawblock/sce/internal/reputation"
	"github.com/rawblock/sce/internal/store"
)

// Engine evaluates per-kind consensus rules against the store, the limit
// table, the reputation engine built on top of both, and the Checkpoint
// Dispatcher for rules whose implementation (not just a numeric gate)
// has changed at a height boundary.
type Engine struct {
	Store      *store.Store
	Limits     *limits.Table
	Reputation *reputation.Engine
	Checkpoint *checkpoint.Dispatcher
	Params     chainparams.Params
}

func New(s *store.Store, lim *limits.Table, rep *reputation.Engine, cp *checkpoint.Dispatcher, params chainparams.Params) *Engine {
	return &Engine{Store: s, Limits: lim, Reputation: rep, Checkpoint: cp, Params: params}
}

// Tx is the minimal carrier-transaction view Check needs: the OP_RETURN
// commitment and the moment the network is presenting it (mempool
// admission time, or the containing block's time).
type Tx struct {
	CarrierTxHash string
	OpReturnHash  [32]byte
	Time          int64
}

// BlockContext carries the facts Validate needs about its position in the
// chain: the height being validated against, the containing block's
// index/time for same-block transactions (zero values mean "mempool").
type BlockContext struct {
	Height     int32
	BlockIndex int32
	BlockTime  int64
	InMempool  bool
}

// CheckPayloadHash implements the common precondition "payloadHash(row)
// == op_return_hash(tx)" (spec.md §4.5), honoring the fixed legacy
// exception list.
func CheckPayloadHash(tx Tx, p models.Payload, includeReferrer bool) consensus.Code {
	if LegacyExceptions[tx.CarrierTxHash] == p.PayloadKind() {
		return consensus.Success
	}
	if store.PayloadHash(p, includeReferrer) != tx.OpReturnHash {
		return consensus.FailedOpReturn
	}
	return consensus.Success
}

// CheckTimeDrift implements "tx.time <= now + driftWindow at mempool
// admission; tx.time <= blockTime at block admission" (spec.md §4.5).
func CheckTimeDrift(txTime, reference int64, driftWindow int64, inMempool bool) consensus.Code {
	if inMempool {
		if txTime > reference+driftWindow {
			return consensus.Failed
		}
		return consensus.Success
	}
	if txTime > reference {
		return consensus.Failed
	}
	return consensus.Success
}

// checkRegistered implements "involved addresses must already be
// registered, unless the current block/mempool batch also contains the
// registering User tx" (spec.md §4.5). intraBatchRegistered holds
// addresses registered earlier in the same block or currently sitting in
// the mempool as an unconfirmed User tx.
func (e *Engine) checkRegistered(ctx context.Context, address string, intraBatchRegistered map[string]bool) (consensus.Code, error) {
	if intraBatchRegistered[address] {
		return consensus.Success, nil
	}
	exists, err := e.Store.AccountExists(ctx, address)
	if err != nil {
		return consensus.Failed, err
	}
	if !exists {
		return consensus.NotRegistered, nil
	}
	return consensus.Success, nil
}

// windowStart converts a window (expressed in blocks by most checkpoints,
// per spec.md §4.3/§4.5) into the height boundary a "since" count query
// should use.
func windowStart(height int32, windowBlocks int64) int32 {
	start := height - int32(windowBlocks)
	if start < 0 {
		return 0
	}
	return start
}
