package service

import (
	"strconv"
	"time"

	"github.com/oninepa/k-yayo-backend/internal/common"
	"github.com/oninepa/k-yayo-backend/internal/domain"
)

// fakeMemberRepo is an in-memory MemberRepository for service tests.
type fakeMemberRepo struct {
	members map[uint64]*domain.Member
	nextID  uint64
}

func newFakeMemberRepo() *fakeMemberRepo {
	return &fakeMemberRepo{members: make(map[uint64]*domain.Member), nextID: 1}
}

func (f *fakeMemberRepo) FindByID(id uint64) (*domain.Member, error) {
	m, ok := f.members[id]
	if !ok {
		return nil, common.ErrMemberNotFound
	}
	clone := *m
	return &clone, nil
}

func (f *fakeMemberRepo) FindByUserID(userID string) (*domain.Member, error) {
	for _, m := range f.members {
		if m.UserID == userID {
			clone := *m
			return &clone, nil
		}
	}
	return nil, common.ErrMemberNotFound
}

func (f *fakeMemberRepo) FindByEmail(email string) (*domain.Member, error) {
	for _, m := range f.members {
		if m.Email == email {
			clone := *m
			return &clone, nil
		}
	}
	return nil, common.ErrMemberNotFound
}

func (f *fakeMemberRepo) Create(member *domain.Member) error {
	member.ID = f.nextID
	member.CreatedAt = time.Now()
	f.nextID++
	clone := *member
	f.members[member.ID] = &clone
	return nil
}

func (f *fakeMemberRepo) UpdateRole(id uint64, role domain.Role, managedAreas []domain.AreaID) error {
	m, ok := f.members[id]
	if !ok {
		return common.ErrMemberNotFound
	}
	m.Role = role
	m.SetManagedAreas(managedAreas)
	return nil
}

func (f *fakeMemberRepo) SetHonorary(id uint64, honorary bool) error {
	m, ok := f.members[id]
	if !ok {
		return common.ErrMemberNotFound
	}
	m.IsHonoraryMember = honorary
	return nil
}

func (f *fakeMemberRepo) List(page, limit int) ([]domain.Member, int64, error) {
	var out []domain.Member
	for _, m := range f.members {
		out = append(out, *m)
	}
	return out, int64(len(out)), nil
}

func (f *fakeMemberRepo) Delete(id uint64) error {
	delete(f.members, id)
	return nil
}

// fakePointRepo is an in-memory PointRepository honoring the same contract as
// the database-backed one: balance mutation and ledger append are atomic, and
// spends fail closed.
type fakePointRepo struct {
	members *fakeMemberRepo
	ledger  []domain.PointTransaction
	awards  map[string]bool
	nextTx  uint64
}

func newFakePointRepo(members *fakeMemberRepo) *fakePointRepo {
	return &fakePointRepo{members: members, awards: make(map[string]bool), nextTx: 1}
}

func (f *fakePointRepo) append(userID uint64, txType domain.TxType, reason domain.PointReason, amount, balanceAfter float64, refs domain.TxRefs) {
	f.ledger = append(f.ledger, domain.PointTransaction{
		ID:           f.nextTx,
		UserID:       userID,
		TxType:       txType,
		Reason:       reason,
		Amount:       amount,
		BalanceAfter: balanceAfter,
		PostID:       refs.PostID,
		CommentID:    refs.CommentID,
		AdminID:      refs.AdminID,
		Description:  refs.Description,
		CreatedAt:    time.Now(),
	})
	f.nextTx++
}

func (f *fakePointRepo) Earn(userID uint64, amount float64, reason domain.PointReason, refs domain.TxRefs) error {
	if amount <= 0 {
		return common.ErrInvalidAmount
	}
	m, ok := f.members.members[userID]
	if !ok {
		return common.ErrMemberNotFound
	}
	m.Points += amount
	f.append(userID, domain.TxEarn, reason, amount, m.Points, refs)
	return nil
}

func (f *fakePointRepo) Spend(userID uint64, amount float64, reason domain.PointReason, refs domain.TxRefs) error {
	if amount <= 0 {
		return common.ErrInvalidAmount
	}
	m, ok := f.members.members[userID]
	if !ok {
		return common.ErrMemberNotFound
	}
	if m.Points < amount {
		return common.ErrInsufficientPoints
	}
	m.Points -= amount
	f.append(userID, domain.TxSpend, reason, amount, m.Points, refs)
	return nil
}

func (f *fakePointRepo) AdminAdjust(adminID string, userID uint64, signedAmount float64, description string) error {
	if signedAmount == 0 {
		return common.ErrInvalidAmount
	}
	m, ok := f.members.members[userID]
	if !ok {
		return common.ErrMemberNotFound
	}
	refs := domain.TxRefs{AdminID: adminID, Description: description}
	m.Points += signedAmount
	if signedAmount > 0 {
		f.append(userID, domain.TxEarn, domain.ReasonAdminGrant, signedAmount, m.Points, refs)
	} else {
		f.append(userID, domain.TxSpend, domain.ReasonAdminDeduct, -signedAmount, m.Points, refs)
	}
	return nil
}

func (f *fakePointRepo) ChangeNickname(userID uint64, newNickname string, cost float64) error {
	m, ok := f.members.members[userID]
	if !ok {
		return common.ErrMemberNotFound
	}
	if cost > 0 {
		if m.Points < cost {
			return common.ErrInsufficientPoints
		}
		m.Points -= cost
		f.append(userID, domain.TxSpend, domain.ReasonPurchase, cost, m.Points,
			domain.TxRefs{Description: "닉네임 변경: " + newNickname})
	}
	m.Nickname = newNickname
	m.NicknameChangeCount++
	return nil
}

func (f *fakePointRepo) GrantReactionAward(postID, authorID uint64, direction domain.ReactionDirection, points float64) error {
	key := awardKey(postID, direction)
	if f.awards[key] {
		return common.ErrAlreadyAwarded
	}
	m, ok := f.members.members[authorID]
	if !ok {
		return common.ErrMemberNotFound
	}
	f.awards[key] = true
	refs := domain.TxRefs{PostID: postID}
	if direction == domain.ReactionDislike {
		m.Points -= points
		f.append(authorID, domain.TxSpend, domain.ReasonDislike, points, m.Points, refs)
	} else {
		m.Points += points
		f.append(authorID, domain.TxEarn, domain.ReasonLike, points, m.Points, refs)
	}
	return nil
}

func (f *fakePointRepo) CountEarnedByReason(userID uint64, reason domain.PointReason) (int64, error) {
	var count int64
	for _, tx := range f.ledger {
		if tx.UserID == userID && tx.Reason == reason && tx.TxType == domain.TxEarn {
			count++
		}
	}
	return count, nil
}

func (f *fakePointRepo) Balance(userID uint64) (float64, error) {
	m, ok := f.members.members[userID]
	if !ok {
		return 0, common.ErrMemberNotFound
	}
	return m.Points, nil
}

func (f *fakePointRepo) History(userID uint64, page, limit int) ([]domain.PointTransaction, int64, error) {
	var out []domain.PointTransaction
	for _, tx := range f.ledger {
		if tx.UserID == userID {
			out = append(out, tx)
		}
	}
	return out, int64(len(out)), nil
}

// signedSum reconciles the ledger for a user: sum of signed amounts.
func (f *fakePointRepo) signedSum(userID uint64) float64 {
	var sum float64
	for _, tx := range f.ledger {
		if tx.UserID == userID {
			sum += tx.Signed()
		}
	}
	return sum
}

func (f *fakePointRepo) txCount(userID uint64) int {
	n := 0
	for _, tx := range f.ledger {
		if tx.UserID == userID {
			n++
		}
	}
	return n
}

func awardKey(postID uint64, direction domain.ReactionDirection) string {
	return string(direction) + ":" + strconv.FormatUint(postID, 10)
}
