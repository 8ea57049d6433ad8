package mempool

import (
	"context"
	"log"
	"time"

	"github.com/rawblock/sce/internal/bitcoin"
)

// Admitter reconciles the Payload Mempool against the node's own tx
// mempool (L9, spec.md §4.11). Payload rows are admitted directly by the
// relay path that accepts a payload alongside its carrier transaction
// (spec.md §6, sendRawTransactionWithMessage); this poller's job is purely
// to notice when a carrier tx falls out of the node's mempool without
// ever confirming (expired, replaced, conflicting) and evict its now-stale
// payload row. Ticker/cleanup structure follows the node-polling pattern
// the teacher used for its own mempool watcher.
type Admitter struct {
	btc  *bitcoin.Client
	pool *Mempool
}

func NewAdmitter(btc *bitcoin.Client, pool *Mempool) *Admitter {
	return &Admitter{btc: btc, pool: pool}
}

func (a *Admitter) Run(ctx context.Context) {
	if a.btc == nil {
		log.Println("[mempool] bitcoin client is nil; admitter will not start")
		return
	}
	log.Println("Starting payload mempool reconciler...")

	ticker := time.NewTicker(3 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Stopping payload mempool reconciler...")
			return
		case <-ticker.C:
			a.reconcile(ctx)
		}
	}
}

// reconcile drops payload_mempool rows whose carrier tx no longer appears
// in the node's mempool. A carrier tx that confirmed is cleared by
// CommitOnConnect at block-connect time, not here, so any row still
// present once its carrier tx has vanished from the node mempool without a
// corresponding commit is a dropped transaction.
func (a *Admitter) reconcile(ctx context.Context) {
	txids, err := a.btc.GetRawMempool()
	if err != nil {
		log.Printf("[mempool] fetch node mempool: %v", err)
		return
	}
	present := make(map[string]bool, len(txids))
	for _, id := range txids {
		present[id] = true
	}

	rows, err := a.pool.All(ctx)
	if err != nil {
		log.Printf("[mempool] list pending payloads: %v", err)
		return
	}
	for _, row := range rows {
		if present[row.CarrierTxHash] {
			continue
		}
		if err := a.pool.Evict(ctx, row.CarrierTxHash); err != nil {
			log.Printf("[mempool] evict %s: %v", row.CarrierTxHash, err)
		}
	}
}
