// Package statehash implements the State Hash (L7, spec.md §4.9): a
// canonical SHA256 chain over every table's rows at height h, appended to
// the previous block's state hash, and embedded in / extracted from the
// coinbase scriptSig.
package statehash

import (
	"crypto/sha256"
	"fmt"
	"strings"
)

// tableOrder is the fixed table order the state hash folds over (spec.md
// §4.9: "table in fixed_table_order"). Any reordering is a consensus
// fork, so this slice is never sorted or reconstructed dynamically.
var tableOrder = []string{
	"accounts",
	"content",
	"scores",
	"subscriptions",
	"blockings",
	"complaints",
	"moderation_flags",
	"moderation_votes",
	"juries",
	"bans",
}

// TableOrder exposes the frozen table order for callers (internal/chain)
// assembling the per-height row snapshot to hash.
func TableOrder() []string {
	out := make([]string, len(tableOrder))
	copy(out, tableOrder)
	return out
}

// RowHash computes SHA256(canonical_concat(fields)) for a single row
// (spec.md §4.9). Empty fields are empty strings, never omitted or
// quoted; callers must already have comma-joined any array field (§9).
func RowHash(fields []string) [32]byte {
	return sha256.Sum256([]byte(strings.Join(fields, "")))
}

// TableHash computes SHA256(concat(perRow)) over rows already ordered by
// primary key (spec.md §4.9). Callers supply rows pre-hashed by RowHash
// so the primary-key ordering decision stays with the table's own query.
func TableHash(rowHashes [][32]byte) [32]byte {
	var buf []byte
	for _, h := range rowHashes {
		buf = append(buf, h[:]...)
	}
	return sha256.Sum256(buf)
}

// BlockStateHash computes stateH = SHA256(concat(perTable in fixed
// order) ‖ prevStateH) (spec.md §4.9). tableHashes must be supplied in
// TableOrder() order; a missing table contributes its hash of zero rows
// (sha256 of the empty buffer), not an omission.
func BlockStateHash(tableHashes [][32]byte, prevStateHash [32]byte) [32]byte {
	var buf []byte
	for _, h := range tableHashes {
		buf = append(buf, h[:]...)
	}
	buf = append(buf, prevStateHash[:]...)
	return sha256.Sum256(buf)
}

// EncodeHex renders a state hash as the lowercase hex literal embedded in
// the coinbase scriptSig ASM.
func EncodeHex(h [32]byte) string {
	return fmt.Sprintf("%x", h[:])
}

// ExtractFromScriptSigASM implements "the second ASM token of
// vin[0].scriptSig of vtx[0] is the hex state hash" (spec.md §6). asm is
// the space-separated disassembly of the coinbase's scriptSig.
func ExtractFromScriptSigASM(asm string) (string, error) {
	tokens := strings.Fields(asm)
	if len(tokens) < 2 {
		return "", fmt.Errorf("statehash: scriptSig asm has %d tokens, need at least 2", len(tokens))
	}
	return tokens[1], nil
}

// EmbedInScriptSigASM places hexHash at the fixed second-token position a
// miner must write into the new block's coinbase scriptSig (spec.md
// §4.9). height is prefixed as the conventional first token (standard
// BIP34 height push), matching how the teacher's chain tooling formats
// coinbase scriptSigs.
func EmbedInScriptSigASM(height int32, hexHash string) string {
	return fmt.Sprintf("%d %s", height, hexHash)
}
