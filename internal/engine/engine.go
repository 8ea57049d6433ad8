// Package engine is the Social Consensus Engine's composition root
// (spec.md §9, "Global mutable state" — the source keeps this as process
// globals; here it is a single composed Engine value instead). It wires
// together the store, the limit table, the checkpoint dispatcher, the
// social/reputation/moderation consensus engines, the chain
// post-processor, the lottery, the payload mempool, and the notification
// hub, and exposes the operations spec.md §1 lists at the top level:
// Check, Validate, IndexBlock, Rollback, GetUserState, SelectWinners.
// ComputeStateHash lives on Chain and is run by IndexBlock.
package engine

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rawblock/sce/internal/bitcoin"
	"github.com/rawblock/sce/internal/chain"
	"github.com/rawblock/sce/internal/chainparams"
	"github.com/rawblock/sce/internal/checkpoint"
	"github.com/rawblock/sce/internal/limits"
	"github.com/rawblock/sce/internal/lottery"
	"github.com/rawblock/sce/internal/mempool"
	"github.com/rawblock/sce/internal/models"
	"github.com/rawblock/sce/internal/moderation"
	"github.com/rawblock/sce/internal/notify"
	"github.com/rawblock/sce/internal/reputation"
	"github.com/rawblock/sce/internal/social"
	"github.com/rawblock/sce/internal/statehash"
	"github.com/rawblock/sce/internal/store"
)

// Config names the on-disk paths and network a running Engine binds to
// (spec.md §6: "two attached SQLite databases plus a read-only checkpoint
// database per network").
type Config struct {
	MainDBPath       string
	WebDBPath        string
	CheckpointDBPath string
	Network          chainparams.Network
}

// Engine is the fully wired Social Consensus Engine.
type Engine struct {
	Store      *store.Store
	Limits     *limits.Table
	Checkpoint *checkpoint.Dispatcher
	Social     *social.Engine
	Reputation *reputation.Engine
	Moderation *moderation.Engine
	Chain      *chain.Engine
	Mempool    *mempool.Mempool
	Notify     *notify.Hub
	Params     chainparams.Params
}

// Open wires every layer together from the configured database paths,
// seeding the Limit Table's defaults on first run (internal/limits.Open).
func Open(cfg Config) (*Engine, error) {
	params, err := chainparams.ByName(string(cfg.Network))
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}

	s, err := store.Open(cfg.MainDBPath, cfg.WebDBPath)
	if err != nil {
		return nil, fmt.Errorf("engine: open store: %w", err)
	}

	lim, err := limits.Open(cfg.CheckpointDBPath, cfg.Network)
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("engine: open limits: %w", err)
	}

	rep := reputation.New(s, lim)
	mod := moderation.New(s, lim)
	cp := checkpoint.NewDispatcher()
	social.RegisterCheckpoints(cp)
	soc := social.New(s, lim, rep, cp, params)
	mp := mempool.New(s)
	ch := chain.New(s, lim, mp, rep, mod, params)
	hub := notify.NewHub()

	return &Engine{
		Store:      s,
		Limits:     lim,
		Checkpoint: cp,
		Social:     soc,
		Reputation: rep,
		Moderation: mod,
		Chain:      ch,
		Mempool:    mp,
		Notify:     hub,
		Params:     params,
	}, nil
}

func (e *Engine) Close() error {
	if err := e.Limits.Close(); err != nil {
		return err
	}
	return e.Store.Close()
}

// IndexBlock commits a connected block's transactions across L0/L1,
// then folds the resulting state into the running state hash and
// publishes a notification (spec.md §4.8, §4.9, §5).
func (e *Engine) IndexBlock(ctx context.Context, blockHash string, height int32, infos []chain.TransactionIndexingInfo, prevStateHash [32]byte) ([32]byte, error) {
	if err := indexBlockWithRetry(ctx, e, blockHash, height, infos); err != nil {
		return [32]byte{}, err
	}
	stateHash, err := e.Chain.ComputeStateHash(ctx, height, prevStateHash)
	if err != nil {
		return [32]byte{}, err
	}
	e.Notify.Publish(notify.Event{
		Type:      notify.EventBlockIndexed,
		Height:    height,
		BlockHash: blockHash,
		StateHash: statehash.EncodeHex(stateHash),
	})
	return stateHash, nil
}

// indexBlockWithRetry retries Chain.IndexBlock against SQLITE_BUSY, the
// single-writer contention the store's WAL mode can still surface when an
// external reader (a long-running analytic query against the same file)
// holds a conflicting lock. Any other error aborts immediately.
func indexBlockWithRetry(ctx context.Context, e *Engine, blockHash string, height int32, infos []chain.TransactionIndexingInfo) error {
	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = 20 * time.Millisecond
	eb.MaxInterval = 500 * time.Millisecond
	bo := backoff.WithContext(backoff.WithMaxRetries(eb, 5), ctx)

	return backoff.Retry(func() error {
		err := e.Chain.IndexBlock(ctx, blockHash, height, infos)
		if err != nil && !isSQLiteBusy(err) {
			return backoff.Permanent(err)
		}
		return err
	}, bo)
}

func isSQLiteBusy(err error) bool {
	return strings.Contains(err.Error(), "SQLITE_BUSY") || strings.Contains(err.Error(), "database is locked")
}

// Rollback removes every block above height, which becomes the new tip
// (spec.md §8 invariant 4), and notifies subscribers.
func (e *Engine) Rollback(ctx context.Context, height int32, evictedPayloads []models.PayloadMempoolRow, backToMempool bool) error {
	if err := e.Chain.Rollback(ctx, height, evictedPayloads, backToMempool); err != nil {
		return err
	}
	e.Notify.Publish(notify.Event{Type: notify.EventBlockRolledBack, Height: height})
	return nil
}

// SelectWinners runs the Lottery (L8) over a block's qualifying scores
// and reward pools (spec.md §4.7), once PoS activation height is reached.
func (e *Engine) SelectWinners(height int32, scores []lottery.QualifyingScore, kernelSeed [32]byte, postPool, commentPool, postReferralPool, commentReferralPool int64) (lottery.Result, error) {
	if height < e.Params.PoSActivationHeight {
		return lottery.Result{}, fmt.Errorf("engine: lottery inactive below height %d", e.Params.PoSActivationHeight)
	}
	return lottery.Run(scores, kernelSeed, postPool, commentPool, postReferralPool, commentReferralPool), nil
}

// UserState is the read-only view of an account's current standing
// (spec.md §4.6's AccountMode inputs plus reputation), used by both the
// debug API and, in a full node, fee/priority policy (a non-goal here).
type UserState struct {
	Account    models.Account
	Reputation int64
	Mode       models.AccountMode
}

// GetUserState loads the account and its current reputation/mode as of
// height, given externally-sourced balance figures (balance itself is a
// non-goal — spec.md's source reads it from the UTXO set this engine does
// not own).
func (e *Engine) GetUserState(ctx context.Context, address string, height int32, balanceSatoshis, thresholdBalance, thresholdBalancePro int64) (UserState, error) {
	acct, err := e.Store.GetAccountByAddress(ctx, address)
	if err != nil {
		return UserState{}, err
	}
	rep, err := e.Store.AccountReputationAt(ctx, address, height)
	if err != nil {
		return UserState{}, err
	}
	mode, err := e.Reputation.AccountMode(ctx, address, height, balanceSatoshis, thresholdBalance, thresholdBalancePro)
	if err != nil {
		return UserState{}, err
	}
	return UserState{Account: acct, Reputation: rep, Mode: mode}, nil
}

// RunMempoolAdmitter starts the reconciliation poller (spec.md §4.4's
// Payload Mempool eviction sweep) against a live bitcoind RPC connection.
// Meant to be started as its own goroutine; it runs until ctx is canceled.
func (e *Engine) RunMempoolAdmitter(ctx context.Context, btc *bitcoin.Client) {
	mempool.NewAdmitter(btc, e.Mempool).Run(ctx)
}
