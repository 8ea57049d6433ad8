package store

import (
	"crypto/sha256"

	"github.com/rawblock/sce/internal/models"
)

// PayloadHash implements L0's getPayloadHash contract (spec.md §4.1, §6):
// SHA256(SHA256(canonical_concat(fields))). includeReferrer is honoured by
// the payload itself (UserPayload.CanonicalFields only appends Referrer
// when it is set), so it is accepted here for contract-compatibility with
// callers that want to force-drop it (legacy checkpoints, see §9).
func PayloadHash(p models.Payload, includeReferrer bool) [32]byte {
	fields := p.CanonicalFields()
	if !includeReferrer {
		if up, ok := p.(models.UserPayload); ok {
			up.Referrer = ""
			fields = up.CanonicalFields()
		}
	}

	var buf []byte
	for _, f := range fields {
		buf = append(buf, f...)
	}
	first := sha256.Sum256(buf)
	return sha256.Sum256(first[:])
}
