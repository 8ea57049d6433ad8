package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rawblock/sce/internal/statehash"
)

// tableQueries maps each entry of statehash.TableOrder() to the query that
// selects its rows committed at exactly height h, primary-key ordered, and
// the canonical field list to hash per spec.md §4.9 / §6. Columns read as
// SQL NULL are coalesced to the empty string so "empty fields are empty,
// never omitted or quoted" holds regardless of how the row was stored.
var tableQueries = map[string]string{
	// Field order follows spec.md §6's User canonical fields (address is
	// the row's primary key, prepended so distinct accounts never collide).
	"accounts": `SELECT COALESCE(address,''), COALESCE(name,''), COALESCE(url,''), COALESCE(lang,''),
		COALESCE(about,''), COALESCE(avatar,''), COALESCE(donations,''), COALESCE(referrer,''), COALESCE(pubkey,'')
		FROM accounts WHERE height = ? ORDER BY address`,
	// Field order follows spec.md §6's Post/Video/Article canonical fields
	// (tx_hash prepended as the row key; comments share this table but are
	// hashed under the same column order for a single frozen table shape).
	"content": `SELECT tx_hash, COALESCE(url,''), COALESCE(caption,''), COALESCE(message,''),
		COALESCE(tags,''), COALESCE(images,'')
		FROM content WHERE height = ? ORDER BY tx_hash`,
	"scores": `SELECT tx_hash, COALESCE(address,''), content_tx_hash, value, time FROM scores
		WHERE height = ? ORDER BY tx_hash`,
	"subscriptions": `SELECT tx_hash, kind, from_addr, to_addr FROM subscriptions
		WHERE height = ? ORDER BY tx_hash`,
	"blockings": `SELECT tx_hash, kind, from_addr, to_addr FROM blockings
		WHERE height = ? ORDER BY tx_hash`,
	"complaints": `SELECT tx_hash, address, post_tx_hash, reason FROM complaints
		WHERE height = ? ORDER BY tx_hash`,
	"moderation_flags": `SELECT tx_hash, address, target, reason FROM moderation_flags
		WHERE height = ? ORDER BY tx_hash`,
	"moderation_votes": `SELECT tx_hash, jury_id, address, verdict FROM moderation_votes
		WHERE height = ? ORDER BY tx_hash`,
	"juries": `SELECT id, target, category, moderators FROM juries
		WHERE height = ? ORDER BY id`,
	"bans": `SELECT target, category, ban1, ban2, ban3 FROM bans
		WHERE height = ? ORDER BY target`,
}

// RowHashesForTable returns the per-row SHA256 hashes (statehash.RowHash)
// for the named table's rows committed at exactly height h, in
// primary-key order, feeding internal/chain's ComputeStateHash (spec.md
// §4.9). An unrecognised table name is a programming error, not a data
// condition, since tableOrder is a fixed, compile-time list.
func (s *Store) RowHashesForTable(ctx context.Context, table string, h int32) ([][32]byte, error) {
	query, ok := tableQueries[table]
	if !ok {
		return nil, fmt.Errorf("store: unknown state-hash table %q", table)
	}

	rows, err := s.Main.QueryContext(ctx, query, h)
	if err != nil {
		return nil, fmt.Errorf("store: row hashes for %s: %w", table, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var out [][32]byte
	for rows.Next() {
		scanDest := make([]interface{}, len(cols))
		raw := make([]sql.NullString, len(cols))
		for i := range raw {
			scanDest[i] = &raw[i]
		}
		if err := rows.Scan(scanDest...); err != nil {
			return nil, fmt.Errorf("store: scan row hash fields for %s: %w", table, err)
		}
		fields := make([]string, len(cols))
		for i, v := range raw {
			fields[i] = v.String
		}
		out = append(out, statehash.RowHash(fields))
	}
	return out, rows.Err()
}
