// Package lottery implements the PoS reward lottery (L8, spec.md §4.10):
// on block h, select winners from block h-1's qualifying scores, seeded
// by the PoS kernel hash, across four reward classes capped at
// RATINGS_PAYOUT_MAX per class.
package lottery

import (
	"crypto/sha256"
	"encoding/binary"
	"sort"

	"github.com/rawblock/sce/internal/models"
)

// RatingsPayoutMax caps the number of recipients per reward class
// (spec.md §4.10).
const RatingsPayoutMax = 25

// Class names the four reward classes a lottery run produces.
type Class int

const (
	ClassPost Class = iota
	ClassComment
	ClassPostReferral
	ClassCommentReferral
)

// CoinbaseOpcode names the script prefix tagging a winner's extra vout
// (spec.md §6).
func (c Class) CoinbaseOpcode() string {
	switch c {
	case ClassPost:
		return "OP_WINNER_POST"
	case ClassComment:
		return "OP_WINNER_COMMENT"
	case ClassPostReferral:
		return "OP_WINNER_POST_REFERRAL"
	case ClassCommentReferral:
		return "OP_WINNER_COMMENT_REFERRAL"
	default:
		return ""
	}
}

// Winner is one lottery recipient within a class.
type Winner struct {
	Address    string
	AmountSats int64
}

// QualifyingScore is the subset of a committed score row the lottery
// needs: its class-qualifying value, the voter, and the content's author
// (and that author's referrer, for the referral classes).
type QualifyingScore struct {
	Kind            models.Kind
	Value           int32
	VoterAddress    string
	AuthorAddress   string
	ReferrerAddress string // empty if the author has none, or referrer is past lottery_referral_depth
}

// qualifies reports whether s belongs in the lottery pool: ScorePost with
// value 4 or 5, or ScoreComment with value +1 (spec.md §4.10).
func (s QualifyingScore) qualifies() bool {
	switch s.Kind {
	case models.KindScorePost:
		return s.Value == 4 || s.Value == 5
	case models.KindScoreComment:
		return s.Value == 1
	default:
		return false
	}
}

// Result holds the four reward classes produced by one Run.
type Result struct {
	PostWinners           []Winner
	CommentWinners        []Winner
	PostReferrerWinners   []Winner
	CommentReferrerWinners []Winner
}

// Run implements spec.md §4.10: filters scores to the qualifying subset,
// derives a deterministic order from the PoS kernel seed, caps each class
// at RatingsPayoutMax, and splits each class's pool evenly with the
// rounding residue going to the last recipient.
func Run(scores []QualifyingScore, kernelSeed [32]byte, postPoolSats, commentPoolSats, postReferralPoolSats, commentReferralPoolSats int64) Result {
	var postAuthors, commentAuthors []string
	var postReferrers, commentReferrers []string
	seenPost := make(map[string]bool)
	seenComment := make(map[string]bool)
	seenPostRef := make(map[string]bool)
	seenCommentRef := make(map[string]bool)

	for _, s := range scores {
		if !s.qualifies() {
			continue
		}
		switch s.Kind {
		case models.KindScorePost:
			if !seenPost[s.AuthorAddress] {
				seenPost[s.AuthorAddress] = true
				postAuthors = append(postAuthors, s.AuthorAddress)
			}
			if s.ReferrerAddress != "" && !seenPostRef[s.ReferrerAddress] {
				seenPostRef[s.ReferrerAddress] = true
				postReferrers = append(postReferrers, s.ReferrerAddress)
			}
		case models.KindScoreComment:
			if !seenComment[s.AuthorAddress] {
				seenComment[s.AuthorAddress] = true
				commentAuthors = append(commentAuthors, s.AuthorAddress)
			}
			if s.ReferrerAddress != "" && !seenCommentRef[s.ReferrerAddress] {
				seenCommentRef[s.ReferrerAddress] = true
				commentReferrers = append(commentReferrers, s.ReferrerAddress)
			}
		}
	}

	return Result{
		PostWinners:            selectAndPay(postAuthors, kernelSeed, 0, postPoolSats),
		CommentWinners:         selectAndPay(commentAuthors, kernelSeed, 1, commentPoolSats),
		PostReferrerWinners:    selectAndPay(postReferrers, kernelSeed, 2, postReferralPoolSats),
		CommentReferrerWinners: selectAndPay(commentReferrers, kernelSeed, 3, commentReferralPoolSats),
	}
}

// selectAndPay orders candidates deterministically by their seeded rank,
// caps at RatingsPayoutMax, and splits pool evenly with the residue on
// the last recipient.
func selectAndPay(candidates []string, seed [32]byte, domain byte, pool int64) []Winner {
	if len(candidates) == 0 || pool <= 0 {
		return nil
	}

	type ranked struct {
		addr string
		rank uint64
	}
	ranks := make([]ranked, len(candidates))
	for i, addr := range candidates {
		ranks[i] = ranked{addr: addr, rank: seededRank(seed, domain, addr)}
	}
	sort.Slice(ranks, func(i, j int) bool {
		if ranks[i].rank != ranks[j].rank {
			return ranks[i].rank < ranks[j].rank
		}
		return ranks[i].addr < ranks[j].addr
	})

	n := len(ranks)
	if n > RatingsPayoutMax {
		n = RatingsPayoutMax
	}

	share := pool / int64(n)
	residue := pool - share*int64(n)

	winners := make([]Winner, n)
	for i := 0; i < n; i++ {
		amount := share
		if i == n-1 {
			amount += residue
		}
		winners[i] = Winner{Address: ranks[i].addr, AmountSats: amount}
	}
	return winners
}

// seededRank derives a deterministic per-candidate rank from the PoS
// kernel seed, domain-separated per reward class so the four classes
// don't share an ordering.
func seededRank(seed [32]byte, domain byte, addr string) uint64 {
	h := sha256.New()
	h.Write(seed[:])
	h.Write([]byte{domain})
	h.Write([]byte(addr))
	sum := h.Sum(nil)
	return binary.BigEndian.Uint64(sum[:8])
}
