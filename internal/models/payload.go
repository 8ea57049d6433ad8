package models

import (
	"strconv"
	"strings"
)

// Payload is the tagged-variant JSON body of an application transaction
// (spec.md §3, design note "Dynamic config / JSON payloads"). Each variant
// supplies CanonicalFields, the ordered field list hashed to produce the
// on-chain OP_RETURN commitment (spec.md §6).
type Payload interface {
	PayloadKind() Kind
	// CanonicalFields returns the ordered, unescaped field values that are
	// concatenated and double-SHA256'd to form the payload hash. Empty
	// fields are empty strings, never omitted or quoted (spec.md §9).
	CanonicalFields() []string
}

// PostPayload backs Post/Video/Article (spec.md §6).
type PostPayload struct {
	Kind        Kind
	URL         string
	Caption     string
	Message     string
	Tags        []string
	Images      []string
	EditTxHash  string // empty for the root version
}

func (p PostPayload) PayloadKind() Kind { return p.Kind }

func (p PostPayload) CanonicalFields() []string {
	return []string{
		p.URL,
		p.Caption,
		p.Message,
		strings.Join(p.Tags, ","),
		strings.Join(p.Images, ","),
		p.EditTxHash,
	}
}

// CommentPayload backs Comment (spec.md §6).
type CommentPayload struct {
	Message      string
	PostTxHash   string
	ParentTxHash string
	AnswerTxHash string
}

func (p CommentPayload) PayloadKind() Kind { return KindComment }

func (p CommentPayload) CanonicalFields() []string {
	return []string{p.Message, p.PostTxHash, p.ParentTxHash, p.AnswerTxHash}
}

// ScorePayload backs ScorePost/ScoreComment.
type ScorePayload struct {
	Kind          Kind
	ContentTxHash string
	Value         int32
}

func (p ScorePayload) PayloadKind() Kind { return p.Kind }

func (p ScorePayload) CanonicalFields() []string {
	return []string{p.ContentTxHash, strconv.FormatInt(int64(p.Value), 10)}
}

// ComplaintPayload backs Complaint.
type ComplaintPayload struct {
	PostTxHash string
	Reason     int32
}

func (p ComplaintPayload) PayloadKind() Kind { return KindComplain }

func (p ComplaintPayload) CanonicalFields() []string {
	return []string{p.PostTxHash + "_" + strconv.FormatInt(int64(p.Reason), 10)}
}

// SubscribeOrBlockingPayload backs Subscribe/SubscribePrivate/Unsubscribe
// and Block/Unblock, all of which commit only the target address.
type SubscribeOrBlockingPayload struct {
	Kind          Kind
	TargetAddress string
}

func (p SubscribeOrBlockingPayload) PayloadKind() Kind { return p.Kind }

func (p SubscribeOrBlockingPayload) CanonicalFields() []string {
	return []string{p.TargetAddress}
}

// UserPayload backs User. Referrer is only part of the canonical field
// list when set (spec.md §6: "[ ‖ referrer ]").
type UserPayload struct {
	Name      string
	URL       string
	Lang      string
	About     string
	Avatar    string
	Donations string
	Referrer  string
	PubKey    string
}

func (p UserPayload) PayloadKind() Kind { return KindUser }

func (p UserPayload) CanonicalFields() []string {
	fields := []string{p.Name, p.URL, p.Lang, p.About, p.Avatar, p.Donations}
	if p.Referrer != "" {
		fields = append(fields, p.Referrer)
	}
	fields = append(fields, p.PubKey)
	return fields
}
