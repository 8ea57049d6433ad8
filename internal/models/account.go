package models

// Account is the social-layer identity attached to a base58 address
// (spec.md §3). It is created by a User transaction and later User
// transactions replace attributes while preserving Id, RegDate and a
// frozen Referrer.
type Account struct {
	Id        int64  `json:"id"`
	Address   string `json:"address"`
	Name      string `json:"name"`
	Avatar    string `json:"avatar"`
	About     string `json:"about"`
	Lang      string `json:"lang"`
	URL       string `json:"url"`
	Donations string `json:"donations"` // opaque JSON
	PubKey    string `json:"pubkey"`
	Referrer  string `json:"referrer"` // address or "", frozen after first registration
	RegDate   int64  `json:"regdate"`  // unix seconds of first registration tx
	TxHash    string `json:"txHash"`   // hash of the committed User tx holding current attributes
	Height    int32  `json:"height"`
	Deleted   bool   `json:"deleted"`
}

// AccountMode gates the per-day content caps (spec.md §4.6).
type AccountMode int

const (
	ModeTrial AccountMode = iota
	ModeFull
	ModePro
)

func (m AccountMode) String() string {
	switch m {
	case ModeFull:
		return "Full"
	case ModePro:
		return "Pro"
	default:
		return "Trial"
	}
}
