package models

// RatingType enumerates the append-only row families of the Rating Store
// (L1, spec.md §3). The "_LAST" counterparts are written alongside the
// canonical row so consensus can compare the latest value in O(1).
type RatingType int

const (
	RatingAccount RatingType = iota
	RatingAccountLast
	RatingContent
	RatingContentLast
	RatingComment
	RatingCommentLast
	AccountLikersPost
	AccountLikersPostLast
	AccountLikersCommentRoot
	AccountLikersCommentRootLast
	AccountLikersCommentAnswer
	AccountLikersCommentAnswerLast
	RatingBadge
)

// Last returns t's "_LAST" counterpart, the companion row spec.md §4.8
// step 6 requires alongside every canonical delta — even a zero delta, to
// mark that a revision touched (type, id) at that height, which is what
// lets consensus read the latest value in O(1) instead of summing every
// prior row. Types with no counterpart (RatingBadge) return themselves.
func (t RatingType) Last() RatingType {
	switch t {
	case RatingAccount:
		return RatingAccountLast
	case RatingContent:
		return RatingContentLast
	case RatingComment:
		return RatingCommentLast
	case AccountLikersPost:
		return AccountLikersPostLast
	case AccountLikersCommentRoot:
		return AccountLikersCommentRootLast
	case AccountLikersCommentAnswer:
		return AccountLikersCommentAnswerLast
	default:
		return t
	}
}

// RatingRow is a single append-only row keyed by (Type, Id, Height). For
// canonical types Value is a delta, and the effective value at height H
// is the sum of deltas with Height <= H. For "_LAST" types Value is the
// running total as of that height; for RatingBadge it is the badge bitmask.
type RatingRow struct {
	Type   RatingType `json:"type"`
	Id     string     `json:"id"` // address or content txHash, depending on Type
	Height int32      `json:"height"`
	Value  int64      `json:"value"` // delta, running total or bitmask, depending on Type
}

// ScoreData is the bulk-loaded join row the Chain Post-Processor (L6)
// consumes to drive reputation updates (spec.md §4.2 getScoreData).
type ScoreData struct {
	ScoreTxHash     string
	ScoreAddress    string
	ScoreValue      int32
	ScoreTime       int64
	ScoreKind       Kind
	ContentTxHash   string
	ContentAddress  string
	ContentType     Kind
	ContentTime     int64
	ContentId       string // root tx hash, stable across edits
	ContentAddressId int64
	ContentIsAnswer bool // true when ContentType is Comment and it replies to another comment
}
