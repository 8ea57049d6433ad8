package models

// Kind identifies the application-transaction variant carried by a carrier
// tx's OP_RETURN (spec.md §6). KindTag is the hex literal placed as the
// second ASM token of vout[0]'s scriptPubKey.
type Kind int

const (
	KindUnknown Kind = iota
	KindUser
	KindPost
	KindVideo
	KindArticle
	KindComment
	KindCommentDelete
	KindScorePost
	KindScoreComment
	KindSubscribe
	KindSubscribePrivate
	KindUnsubscribe
	KindBlock
	KindUnblock
	KindComplain
	KindModerationFlag
	KindModerationVote
)

// KindTag is the hex literal embedded on-chain identifying a Kind. These
// values are frozen consensus constants: changing one is a fork.
var KindTag = map[Kind]string{
	KindUser:             "75736572",  // "user"
	KindPost:             "70",        // "p"
	KindVideo:            "76",        // "v"
	KindArticle:          "61",        // "a"
	KindComment:          "636f6d6d656e74",
	KindCommentDelete:    "636f6d6d656e745f64656c657465",
	KindScorePost:        "7570766f7465",
	KindScoreComment:     "636f6d6d656e745f7570766f7465",
	KindSubscribe:        "737562736372696265",
	KindSubscribePrivate: "737562736372696265507269",
	KindUnsubscribe:      "756e737562736372696265",
	KindBlock:            "626c6f636b696e67",
	KindUnblock:          "756e626c6f636b696e67",
	KindComplain:         "636f6d706c61696e",
	KindModerationFlag:   "6d6f645f666c6167",
	KindModerationVote:   "6d6f645f766f7465",
}

var kindByTag = func() map[string]Kind {
	m := make(map[string]Kind, len(KindTag))
	for k, tag := range KindTag {
		m[tag] = k
	}
	return m
}()

// KindFromTag reverses KindTag: given the hex literal found as the second
// ASM token of a carrier transaction's vout[0] scriptPubKey, it returns the
// Kind that produced it, or KindUnknown if the tag matches none.
func KindFromTag(tag string) Kind {
	if k, ok := kindByTag[tag]; ok {
		return k
	}
	return KindUnknown
}

// IsContent reports whether k is one of the editable content kinds.
func (k Kind) IsContent() bool {
	switch k {
	case KindPost, KindVideo, KindArticle, KindComment:
		return true
	default:
		return false
	}
}

// IsScore reports whether k is a scoring action.
func (k Kind) IsScore() bool {
	return k == KindScorePost || k == KindScoreComment
}

func (k Kind) String() string {
	switch k {
	case KindUser:
		return "User"
	case KindPost:
		return "Post"
	case KindVideo:
		return "Video"
	case KindArticle:
		return "Article"
	case KindComment:
		return "Comment"
	case KindCommentDelete:
		return "CommentDelete"
	case KindScorePost:
		return "ScorePost"
	case KindScoreComment:
		return "ScoreComment"
	case KindSubscribe:
		return "Subscribe"
	case KindSubscribePrivate:
		return "SubscribePrivate"
	case KindUnsubscribe:
		return "Unsubscribe"
	case KindBlock:
		return "Block"
	case KindUnblock:
		return "Unblock"
	case KindComplain:
		return "Complain"
	case KindModerationFlag:
		return "ModerationFlag"
	case KindModerationVote:
		return "ModerationVote"
	default:
		return "Unknown"
	}
}
