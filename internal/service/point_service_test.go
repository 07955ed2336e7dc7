package service

import (
	"context"
	"testing"

	"github.com/oninepa/k-yayo-backend/internal/common"
	"github.com/oninepa/k-yayo-backend/internal/config"
	"github.com/oninepa/k-yayo-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPointFixture(t *testing.T) (*fakeMemberRepo, *fakePointRepo, PointService) {
	t.Helper()
	members := newFakeMemberRepo()
	points := newFakePointRepo(members)
	svc := NewPointService(points, members, nil, config.Default().Points)
	return members, points, svc
}

func seedMember(t *testing.T, members *fakeMemberRepo, userID, nickname string, balance float64) *domain.Member {
	t.Helper()
	m := &domain.Member{UserID: userID, Email: userID + "@example.com", Nickname: nickname, Role: domain.RoleMember}
	require.NoError(t, members.Create(m))
	members.members[m.ID].Points = balance
	m.Points = balance
	return m
}

func TestAccrueForActivityTiering(t *testing.T) {
	members, points, svc := newPointFixture(t)
	m := seedMember(t, members, "u1", "철수", 0)

	// 처음 10회는 0.1점, 이후는 0.05점
	for i := 0; i < 12; i++ {
		amount, err := svc.AccrueForActivity(m.ID, domain.ReasonPost, domain.TxRefs{PostID: uint64(i + 1)})
		require.NoError(t, err)
		if i < 10 {
			assert.InDelta(t, 0.1, amount, 1e-9, "post %d", i+1)
		} else {
			assert.InDelta(t, 0.05, amount, 1e-9, "post %d", i+1)
		}
	}

	balance, err := points.Balance(m.ID)
	require.NoError(t, err)
	assert.InDelta(t, 1.1, balance, 1e-9)
	assert.Equal(t, 12, points.txCount(m.ID))
}

func TestAccrueForActivityPerReasonTiers(t *testing.T) {
	members, points, svc := newPointFixture(t)
	m := seedMember(t, members, "u1", "철수", 0)

	// 게시글 10회로 post 구간을 소진해도 댓글은 여전히 높은 단가
	for i := 0; i < 10; i++ {
		_, err := svc.AccrueForActivity(m.ID, domain.ReasonPost, domain.TxRefs{})
		require.NoError(t, err)
	}
	amount, err := svc.AccrueForActivity(m.ID, domain.ReasonComment, domain.TxRefs{})
	require.NoError(t, err)
	assert.InDelta(t, 0.05, amount, 1e-9)

	balance, err := points.Balance(m.ID)
	require.NoError(t, err)
	assert.InDelta(t, 1.05, balance, 1e-9)
}

func TestAccrueForActivityRejectsNonActivityReason(t *testing.T) {
	members, _, svc := newPointFixture(t)
	m := seedMember(t, members, "u1", "철수", 0)

	_, err := svc.AccrueForActivity(m.ID, domain.ReasonLike, domain.TxRefs{})
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestSpendInsufficientLeavesStateUntouched(t *testing.T) {
	members, points, svc := newPointFixture(t)
	m := seedMember(t, members, "u1", "철수", 5)

	err := svc.Spend(m.ID, 10, domain.ReasonPurchase, domain.TxRefs{Description: "아이콘 구매"})
	assert.ErrorIs(t, err, common.ErrInsufficientPoints)

	balance, err := points.Balance(m.ID)
	require.NoError(t, err)
	assert.InDelta(t, 5, balance, 1e-9)
	assert.Equal(t, 0, points.txCount(m.ID))
}

func TestSpendDebitsAndRecords(t *testing.T) {
	members, points, svc := newPointFixture(t)
	m := seedMember(t, members, "u1", "철수", 20)

	require.NoError(t, svc.Spend(m.ID, 7.5, domain.ReasonPurchase, domain.TxRefs{}))

	balance, err := points.Balance(m.ID)
	require.NoError(t, err)
	assert.InDelta(t, 12.5, balance, 1e-9)
	require.Equal(t, 1, points.txCount(m.ID))
	tx := points.ledger[0]
	assert.Equal(t, domain.TxSpend, tx.TxType)
	assert.InDelta(t, 7.5, tx.Amount, 1e-9)
	assert.InDelta(t, 12.5, tx.BalanceAfter, 1e-9)
}

func TestAdminAdjustAllowsNegativeBalance(t *testing.T) {
	members, points, svc := newPointFixture(t)
	admin := seedMember(t, members, "admin", "관리자", 0)
	members.members[admin.ID].Role = domain.RoleAdmin
	admin.Role = domain.RoleAdmin
	m := seedMember(t, members, "u1", "철수", 10)

	require.NoError(t, svc.AdminAdjust(admin, m.ID, -50, "제재"))

	balance, err := points.Balance(m.ID)
	require.NoError(t, err)
	assert.InDelta(t, -40, balance, 1e-9)
	require.Equal(t, 1, points.txCount(m.ID))
	assert.Equal(t, domain.ReasonAdminDeduct, points.ledger[0].Reason)
	assert.Equal(t, "admin", points.ledger[0].AdminID)
}

func TestAdminAdjustDeniedForScopedRole(t *testing.T) {
	members, points, svc := newPointFixture(t)
	actor := seedMember(t, members, "mod", "모더", 0)
	actor.Role = domain.RoleBoardAdmin
	m := seedMember(t, members, "u1", "철수", 10)

	err := svc.AdminAdjust(actor, m.ID, 5, "")
	assert.ErrorIs(t, err, common.ErrForbidden)
	var pd *common.PermissionDeniedError
	require.ErrorAs(t, err, &pd)
	assert.Equal(t, common.RuleUserManagement, pd.Rule)
	assert.Equal(t, 0, points.txCount(m.ID))
}

func TestChangeNicknameFirstFreeThenCharged(t *testing.T) {
	members, points, svc := newPointFixture(t)
	m := seedMember(t, members, "u1", "철수", 15)

	// 최초 1회 무료
	updated, err := svc.ChangeNickname(m.ID, "영희")
	require.NoError(t, err)
	assert.Equal(t, "영희", updated.Nickname)
	assert.Equal(t, 1, updated.NicknameChangeCount)
	assert.InDelta(t, 15, updated.Points, 1e-9)
	assert.Equal(t, 0, points.txCount(m.ID))

	// 두 번째부터는 10포인트 차감
	updated, err = svc.ChangeNickname(m.ID, "민수")
	require.NoError(t, err)
	assert.Equal(t, "민수", updated.Nickname)
	assert.Equal(t, 2, updated.NicknameChangeCount)
	assert.InDelta(t, 5, updated.Points, 1e-9)
	require.Equal(t, 1, points.txCount(m.ID))
	assert.Equal(t, domain.ReasonPurchase, points.ledger[0].Reason)
}

func TestChangeNicknameInsufficientKeepsOldNickname(t *testing.T) {
	members, points, svc := newPointFixture(t)
	m := seedMember(t, members, "u1", "철수", 3)
	members.members[m.ID].NicknameChangeCount = 1

	_, err := svc.ChangeNickname(m.ID, "영희")
	assert.ErrorIs(t, err, common.ErrInsufficientPoints)

	current, err := members.FindByID(m.ID)
	require.NoError(t, err)
	assert.Equal(t, "철수", current.Nickname)
	assert.Equal(t, 1, current.NicknameChangeCount)
	assert.InDelta(t, 3, current.Points, 1e-9)
	assert.Equal(t, 0, points.txCount(m.ID))
}

func TestChangeNicknameRejectsBlank(t *testing.T) {
	members, _, svc := newPointFixture(t)
	m := seedMember(t, members, "u1", "철수", 0)

	_, err := svc.ChangeNickname(m.ID, "   ")
	assert.ErrorIs(t, err, common.ErrInvalidNickname)
}

func TestReactionAwardFiresOncePerDirection(t *testing.T) {
	members, points, svc := newPointFixture(t)
	author := seedMember(t, members, "u1", "철수", 0)

	// 99 → 100: 임계값 통과, 1점 지급
	granted, err := svc.OnReactionCountChanged(42, author.ID, domain.ReactionLike, 99, 100)
	require.NoError(t, err)
	assert.True(t, granted)

	// 임계값 위에서의 증가는 아무 일도 하지 않는다
	granted, err = svc.OnReactionCountChanged(42, author.ID, domain.ReactionLike, 150, 200)
	require.NoError(t, err)
	assert.False(t, granted)

	// 내려갔다가 다시 넘어도 재지급 없음
	granted, err = svc.OnReactionCountChanged(42, author.ID, domain.ReactionLike, 99, 101)
	require.NoError(t, err)
	assert.False(t, granted)

	balance, err := points.Balance(author.ID)
	require.NoError(t, err)
	assert.InDelta(t, 1, balance, 1e-9)
	assert.Equal(t, 1, points.txCount(author.ID))
}

func TestReactionAwardDislikePenalty(t *testing.T) {
	members, points, svc := newPointFixture(t)
	author := seedMember(t, members, "u1", "철수", 0.5)

	granted, err := svc.OnReactionCountChanged(7, author.ID, domain.ReactionDislike, 99, 100)
	require.NoError(t, err)
	assert.True(t, granted)

	// 비추천 패널티는 하한이 없다
	balance, err := points.Balance(author.ID)
	require.NoError(t, err)
	assert.InDelta(t, -0.5, balance, 1e-9)
	require.Equal(t, 1, points.txCount(author.ID))
	assert.Equal(t, domain.ReasonDislike, points.ledger[0].Reason)

	// 같은 게시물의 추천 지급과는 별개
	granted, err = svc.OnReactionCountChanged(7, author.ID, domain.ReactionLike, 99, 100)
	require.NoError(t, err)
	assert.True(t, granted)
}

func TestLedgerReconcilesWithBalance(t *testing.T) {
	members, points, svc := newPointFixture(t)
	admin := seedMember(t, members, "admin", "관리자", 0)
	admin.Role = domain.RoleOwner
	m := seedMember(t, members, "u1", "철수", 0)

	for i := 0; i < 3; i++ {
		_, err := svc.AccrueForActivity(m.ID, domain.ReasonPost, domain.TxRefs{})
		require.NoError(t, err)
	}
	require.NoError(t, svc.AdminAdjust(admin, m.ID, 25, "이벤트 보상"))
	require.NoError(t, svc.Spend(m.ID, 10, domain.ReasonPurchase, domain.TxRefs{}))
	require.NoError(t, svc.AdminAdjust(admin, m.ID, -30, "제재"))

	balance, err := points.Balance(m.ID)
	require.NoError(t, err)
	assert.InDelta(t, points.signedSum(m.ID), balance, 1e-9)
}

func TestSummaryReflectsHonoraryLevel(t *testing.T) {
	members, _, svc := newPointFixture(t)
	m := seedMember(t, members, "u1", "철수", 120)

	summary, err := svc.Summary(context.Background(), m.ID)
	require.NoError(t, err)
	assert.InDelta(t, 120, summary.Balance, 1e-9)
	assert.Equal(t, "우수멤버", summary.Level.Name)

	members.members[m.ID].IsHonoraryMember = true
	summary, err = svc.Summary(context.Background(), m.ID)
	require.NoError(t, err)
	assert.Equal(t, "감사멤버", summary.Level.Name)
}

func TestSummaryUnknownMember(t *testing.T) {
	_, _, svc := newPointFixture(t)

	_, err := svc.Summary(context.Background(), 999)
	assert.ErrorIs(t, err, common.ErrMemberNotFound)
}
