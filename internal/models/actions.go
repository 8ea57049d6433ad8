package models

// Score is a ScorePost or ScoreComment action (spec.md §3).
type Score struct {
	TxHash        string `json:"txHash"`
	Kind          Kind   `json:"kind"`
	Address       string `json:"address"` // voter
	ContentTxHash string `json:"contentTxHash"`
	Value         int32  `json:"value"`
	Time          int64  `json:"time"`
	Height        int32  `json:"height"`
}

// Subscription is Subscribe / SubscribePrivate / Unsubscribe, keyed by (From, To).
type Subscription struct {
	TxHash  string `json:"txHash"`
	Kind    Kind   `json:"kind"`
	From    string `json:"from"`
	To      string `json:"to"`
	Private bool   `json:"private"`
	Time    int64  `json:"time"`
	Height  int32  `json:"height"`
}

// Blocking is Block / Unblock, keyed by (From, To).
type Blocking struct {
	TxHash string `json:"txHash"`
	Kind   Kind   `json:"kind"`
	From   string `json:"from"`
	To     string `json:"to"`
	Time   int64  `json:"time"`
	Height int32  `json:"height"`
}

// Complaint targets a post (spec.md §3).
type Complaint struct {
	TxHash      string `json:"txHash"`
	Address     string `json:"address"` // complainer
	PostTxHash  string `json:"postTxHash"`
	Reason      int32  `json:"reason"`
	Time        int64  `json:"time"`
	Height      int32  `json:"height"`
}

// ModerationFlag accuses an account; ModerationVote is cast by a juror
// against a flagged account (spec.md §4.7).
type ModerationFlag struct {
	TxHash   string `json:"txHash"`
	Address  string `json:"address"` // flagger
	Target   string `json:"target"`
	Reason   int32  `json:"reason"`
	Time     int64  `json:"time"`
	Height   int32  `json:"height"`
}

type ModerationVote struct {
	TxHash  string `json:"txHash"`
	JuryId  string `json:"juryId"`
	Address string `json:"address"` // juror
	Verdict bool   `json:"verdict"`
	Time    int64  `json:"time"`
	Height  int32  `json:"height"`
}

// Jury is created once a flagged account crosses a flag-count threshold.
type Jury struct {
	Id        string   `json:"id"`
	Target    string   `json:"target"`
	Category  int32    `json:"category"`
	Moderators []string `json:"moderators"`
	Height    int32    `json:"height"`
}

// Ban is written once a jury's vote count crosses its threshold.
type Ban struct {
	Target   string `json:"target"`
	Category int32  `json:"category"`
	Height   int32  `json:"height"`
	Ban1     int32  `json:"ban1"`
	Ban2     int32  `json:"ban2"`
	Ban3     int32  `json:"ban3"`
}

// PayloadMempoolRow holds an application payload whose carrier tx is still
// sitting in the tx mempool (L9, spec.md §4.11).
type PayloadMempoolRow struct {
	Id            string `json:"id"`
	CarrierTxHash string `json:"carrierTxHash"`
	Kind          Kind   `json:"kind"`
	RootTxHash    string `json:"rootTxHash,omitempty"`
	PayloadB64    string `json:"payload"`
}
