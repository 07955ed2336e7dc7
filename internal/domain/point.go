package domain

import "time"

// TxType marks the direction of a point transaction.
type TxType string

const (
	TxEarn  TxType = "earn"
	TxSpend TxType = "spend"
)

// PointReason identifies what triggered a point transaction.
type PointReason string

const (
	ReasonPost        PointReason = "post"
	ReasonComment     PointReason = "comment"
	ReasonReply       PointReason = "reply"
	ReasonLike        PointReason = "like"
	ReasonDislike     PointReason = "dislike"
	ReasonPurchase    PointReason = "purchase"
	ReasonAdminGrant  PointReason = "admin_grant"
	ReasonAdminDeduct PointReason = "admin_deduct"
)

// PointTransaction is an immutable ledger row (point_transactions table).
// Exactly one row per balance mutation, never updated or deleted. BalanceAfter
// carries the member's balance as of this row so the ledger can be reconciled
// against the members table.
type PointTransaction struct {
	CreatedAt    time.Time   `gorm:"column:created_at" json:"created_at"`
	TxType       TxType      `gorm:"column:tx_type;size:10" json:"tx_type"`
	Reason       PointReason `gorm:"column:reason;size:20;index" json:"reason"`
	Description  string      `gorm:"column:description" json:"description,omitempty"`
	AdminID      string      `gorm:"column:admin_id" json:"admin_id,omitempty"`
	Amount       float64     `gorm:"column:amount" json:"amount"`
	BalanceAfter float64     `gorm:"column:balance_after" json:"balance_after"`
	ID           uint64      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UserID       uint64      `gorm:"column:user_id;index" json:"user_id"`
	PostID       uint64      `gorm:"column:post_id" json:"post_id,omitempty"`
	CommentID    uint64      `gorm:"column:comment_id" json:"comment_id,omitempty"`
}

func (PointTransaction) TableName() string {
	return "point_transactions"
}

// Signed returns the transaction's contribution to the balance: positive for
// earn, negative for spend.
func (t *PointTransaction) Signed() float64 {
	if t.TxType == TxSpend {
		return -t.Amount
	}
	return t.Amount
}

// TxRefs carries optional relations for a ledger row.
type TxRefs struct {
	PostID      uint64
	CommentID   uint64
	AdminID     string
	Description string
}

// ReactionDirection distinguishes the two one-shot reaction awards per post.
type ReactionDirection string

const (
	ReactionLike    ReactionDirection = "like"
	ReactionDislike ReactionDirection = "dislike"
)

// ReactionAward records that a post already paid out its threshold award in one
// direction (reaction_awards table). The unique index makes the award one-shot
// even when two threshold crossings race.
type ReactionAward struct {
	CreatedAt time.Time         `gorm:"column:created_at" json:"created_at"`
	Direction ReactionDirection `gorm:"column:direction;size:10;uniqueIndex:idx_post_direction" json:"direction"`
	ID        uint64            `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	PostID    uint64            `gorm:"column:post_id;uniqueIndex:idx_post_direction" json:"post_id"`
}

func (ReactionAward) TableName() string {
	return "reaction_awards"
}
