package repository

import (
	"errors"
	"fmt"

	"github.com/oninepa/k-yayo-backend/internal/common"
	"github.com/oninepa/k-yayo-backend/internal/domain"
	"gorm.io/gorm"
)

// PointRepository point ledger data access. Every balance mutation runs inside
// one database transaction that locks the member row, so two mutations on the
// same member serialize while different members never block each other. The
// ledger row and the balance update commit or abort together; there is no
// state where one exists without the other.
type PointRepository interface {
	// Earn increases the balance and appends one earn transaction.
	Earn(userID uint64, amount float64, reason domain.PointReason, refs domain.TxRefs) error
	// Spend decreases the balance and appends one spend transaction.
	// Fails closed with ErrInsufficientPoints; no partial debit.
	Spend(userID uint64, amount float64, reason domain.PointReason, refs domain.TxRefs) error
	// AdminAdjust applies a signed delta with no lower bound — admins may
	// drive a balance negative deliberately (punitive deduction).
	AdminAdjust(adminID string, userID uint64, signedAmount float64, description string) error
	// ChangeNickname renames and, when cost > 0, debits in the same
	// transaction: either both happen or neither.
	ChangeNickname(userID uint64, newNickname string, cost float64) error
	// GrantReactionAward pays the one-shot threshold award for a post. The
	// persisted flag makes re-crossings of the threshold no-ops.
	GrantReactionAward(postID, authorID uint64, direction domain.ReactionDirection, points float64) error
	// CountEarnedByReason counts prior earn transactions, for tiered accrual.
	CountEarnedByReason(userID uint64, reason domain.PointReason) (int64, error)
	Balance(userID uint64) (float64, error)
	History(userID uint64, page, limit int) ([]domain.PointTransaction, int64, error)
}

type pointRepository struct {
	db *gorm.DB
}

// NewPointRepository creates a new PointRepository
func NewPointRepository(db *gorm.DB) PointRepository {
	return &pointRepository{db: db}
}

// lockBalance reads the member's balance under FOR UPDATE within tx.
func lockBalance(tx *gorm.DB, userID uint64) (float64, error) {
	var balance float64
	result := tx.Raw(
		"SELECT COALESCE(points, 0) FROM members WHERE id = ? FOR UPDATE",
		userID,
	).Scan(&balance)
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected == 0 {
		return 0, fmt.Errorf("멤버 없음 (id=%d): %w", userID, common.ErrMemberNotFound)
	}
	return balance, nil
}

// applyDelta writes the new balance and appends the ledger row within tx.
func applyDelta(tx *gorm.DB, userID uint64, balance, delta float64, txType domain.TxType, reason domain.PointReason, refs domain.TxRefs) error {
	newBalance := balance + delta

	amount := delta
	if amount < 0 {
		amount = -amount
	}

	record := &domain.PointTransaction{
		UserID:       userID,
		TxType:       txType,
		Reason:       reason,
		Amount:       amount,
		BalanceAfter: newBalance,
		PostID:       refs.PostID,
		CommentID:    refs.CommentID,
		AdminID:      refs.AdminID,
		Description:  refs.Description,
	}
	if err := tx.Create(record).Error; err != nil {
		return err
	}

	return tx.Model(&domain.Member{}).
		Where("id = ?", userID).
		UpdateColumn("points", newBalance).Error
}

func (r *pointRepository) Earn(userID uint64, amount float64, reason domain.PointReason, refs domain.TxRefs) error {
	if amount <= 0 {
		return common.ErrInvalidAmount
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		balance, err := lockBalance(tx, userID)
		if err != nil {
			return err
		}
		return applyDelta(tx, userID, balance, amount, domain.TxEarn, reason, refs)
	})
}

func (r *pointRepository) Spend(userID uint64, amount float64, reason domain.PointReason, refs domain.TxRefs) error {
	if amount <= 0 {
		return common.ErrInvalidAmount
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		balance, err := lockBalance(tx, userID)
		if err != nil {
			return err
		}
		if balance < amount {
			return common.ErrInsufficientPoints
		}
		return applyDelta(tx, userID, balance, -amount, domain.TxSpend, reason, refs)
	})
}

func (r *pointRepository) AdminAdjust(adminID string, userID uint64, signedAmount float64, description string) error {
	if signedAmount == 0 {
		return common.ErrInvalidAmount
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		balance, err := lockBalance(tx, userID)
		if err != nil {
			return err
		}
		refs := domain.TxRefs{AdminID: adminID, Description: description}
		if signedAmount > 0 {
			return applyDelta(tx, userID, balance, signedAmount, domain.TxEarn, domain.ReasonAdminGrant, refs)
		}
		return applyDelta(tx, userID, balance, signedAmount, domain.TxSpend, domain.ReasonAdminDeduct, refs)
	})
}

func (r *pointRepository) ChangeNickname(userID uint64, newNickname string, cost float64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		balance, err := lockBalance(tx, userID)
		if err != nil {
			return err
		}
		if cost > 0 {
			if balance < cost {
				return common.ErrInsufficientPoints
			}
			refs := domain.TxRefs{Description: "닉네임 변경: " + newNickname}
			if err := applyDelta(tx, userID, balance, -cost, domain.TxSpend, domain.ReasonPurchase, refs); err != nil {
				return err
			}
		}
		return tx.Model(&domain.Member{}).
			Where("id = ?", userID).
			Updates(map[string]interface{}{
				"nickname":              newNickname,
				"nickname_change_count": gorm.Expr("nickname_change_count + 1"),
			}).Error
	})
}

func (r *pointRepository) GrantReactionAward(postID, authorID uint64, direction domain.ReactionDirection, points float64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&domain.ReactionAward{}).
			Where("post_id = ? AND direction = ?", postID, direction).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return common.ErrAlreadyAwarded
		}
		if err := tx.Create(&domain.ReactionAward{PostID: postID, Direction: direction}).Error; err != nil {
			return err
		}

		balance, err := lockBalance(tx, authorID)
		if err != nil {
			return err
		}
		refs := domain.TxRefs{PostID: postID}
		if direction == domain.ReactionDislike {
			// Dislike penalty has no floor, same as admin deductions.
			return applyDelta(tx, authorID, balance, -points, domain.TxSpend, domain.ReasonDislike, refs)
		}
		return applyDelta(tx, authorID, balance, points, domain.TxEarn, domain.ReasonLike, refs)
	})
}

func (r *pointRepository) CountEarnedByReason(userID uint64, reason domain.PointReason) (int64, error) {
	var count int64
	err := r.db.Model(&domain.PointTransaction{}).
		Where("user_id = ? AND reason = ? AND tx_type = ?", userID, reason, domain.TxEarn).
		Count(&count).Error
	return count, err
}

func (r *pointRepository) Balance(userID uint64) (float64, error) {
	var member domain.Member
	if err := r.db.Select("points").Where("id = ?", userID).First(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, common.ErrMemberNotFound
		}
		return 0, err
	}
	return member.Points, nil
}

func (r *pointRepository) History(userID uint64, page, limit int) ([]domain.PointTransaction, int64, error) {
	var total int64
	if err := r.db.Model(&domain.PointTransaction{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	var txs []domain.PointTransaction
	if err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&txs).Error; err != nil {
		return nil, 0, err
	}
	return txs, total, nil
}
