// Package mempool implements the Payload Mempool (L9, spec.md §4.11):
// application payloads whose carrier transaction is sitting in the
// node's transaction mempool, not yet confirmed. On block connection, the
// Chain Post-Processor puts each payload into L0 and CommitOnConnect then
// clears its staging row here. On block
// disconnection, RequeueOnDisconnect copies evicted committed payloads
// back here before L6 deletes their committed rows.
package mempool

import (
	"context"
	"fmt"

	"github.com/rawblock/sce/internal/models"
	"github.com/rawblock/sce/internal/store"
)

// Mempool holds the pending-payload queue backed by the Payload Store's
// payload_mempool table.
type Mempool struct {
	Store *store.Store
}

func New(s *store.Store) *Mempool {
	return &Mempool{Store: s}
}

// Admit stores row while its carrier transaction is still unconfirmed
// (the write path of sendRawTransactionWithMessage, spec.md §6).
func (m *Mempool) Admit(ctx context.Context, row models.PayloadMempoolRow) error {
	return m.Store.PutPayloadMempool(ctx, row)
}

// Evict drops a payload whose carrier transaction was itself evicted
// from the node's transaction mempool (expired, replaced, conflicting).
func (m *Mempool) Evict(ctx context.Context, carrierTxHash string) error {
	return m.Store.DeletePayloadMempool(ctx, carrierTxHash)
}

// ByCarrier looks up the pending payload for a carrier transaction, used
// by mempool-context Validate calls that need to see payloads not yet on
// chain (spec.md §4.5: "current mempool entries").
func (m *Mempool) ByCarrier(ctx context.Context, carrierTxHash string) (models.PayloadMempoolRow, error) {
	return m.Store.PayloadMempoolByCarrier(ctx, carrierTxHash)
}

// CommitOnConnect implements "CommitRIMempool" (spec.md §4.11): for each
// carrier transaction now confirmed at height h, remove its payload_mempool
// row. The actual L0 put happens earlier in the Chain Post-Processor's
// TransactionIndexingInfo walk (internal/chain); this only clears the
// staging row once that commit has succeeded.
func (m *Mempool) CommitOnConnect(ctx context.Context, carrierTxHash string) error {
	if err := m.Store.DeletePayloadMempool(ctx, carrierTxHash); err != nil {
		return fmt.Errorf("mempool: commit on connect: %w", err)
	}
	return nil
}

// RequeueOnDisconnect implements the backToMempool=true path (spec.md
// §4.11): copies a payload that was committed at the disconnected height
// back into the mempool before its committed row is rolled back.
func (m *Mempool) RequeueOnDisconnect(ctx context.Context, row models.PayloadMempoolRow) error {
	return m.Store.PutPayloadMempool(ctx, row)
}

// All lists every pending row; the mempool admitter calls it on every
// reconcile tick to find rows whose carrier tx left the node mempool.
func (m *Mempool) All(ctx context.Context) ([]models.PayloadMempoolRow, error) {
	return m.Store.AllPayloadMempool(ctx)
}
