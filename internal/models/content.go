package models

// Content is any of Post, Video, Article, Comment (spec.md §3). RootTxHash
// is the stable identity across edits and equals the first version's
// TxHash; TxHash identifies this particular edit.
type Content struct {
	Kind        Kind     `json:"kind"`
	TxHash      string   `json:"txHash"`
	RootTxHash  string   `json:"rootTxHash"`
	Address     string   `json:"address"`
	Lang        string   `json:"lang"`
	Caption     string   `json:"caption"`
	Message     string   `json:"message"`
	Tags        []string `json:"tags"`
	Images      []string `json:"images"`
	URL         string   `json:"url"`
	Settings    string   `json:"settings"`

	// Comment-only fields.
	PostId   string `json:"postId,omitempty"`
	ParentId string `json:"parentId,omitempty"`
	AnswerId string `json:"answerId,omitempty"`

	Height  int32 `json:"height"`
	Time    int64 `json:"time"`
	Deleted bool  `json:"deleted"`
	Last    bool  `json:"last"` // current active version for "last-wins" kinds (Comment)
}

// IsDeleted reports whether the content's body has been blanked by a
// Delete transaction. Only comments may be deleted (spec.md §3).
func (c Content) IsDeleted() bool {
	return c.Kind == KindComment && (c.Deleted || c.Message == "")
}
