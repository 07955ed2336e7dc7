package service

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/oninepa/k-yayo-backend/internal/common"
	"github.com/oninepa/k-yayo-backend/internal/config"
	"github.com/oninepa/k-yayo-backend/internal/domain"
	"github.com/oninepa/k-yayo-backend/internal/repository"
	"github.com/oninepa/k-yayo-backend/pkg/cache"
	"github.com/oninepa/k-yayo-backend/pkg/logger"
)

// PointSummary is the API shape for a member's point standing.
type PointSummary struct {
	Level   domain.Level `json:"level"`
	Balance float64      `json:"balance"`
}

// PointService business logic for the points ledger and leveling.
type PointService interface {
	// AccrueForActivity awards the tiered amount for a content activity
	// (post, comment, reply) and returns the amount granted.
	AccrueForActivity(userID uint64, reason domain.PointReason, refs domain.TxRefs) (float64, error)
	// Spend debits the balance; fails closed with ErrInsufficientPoints.
	Spend(userID uint64, amount float64, reason domain.PointReason, refs domain.TxRefs) error
	// AdminAdjust applies a signed delta on behalf of an admin. The actor must
	// pass CanManageUsers; negative balances are allowed.
	AdminAdjust(actor *domain.Member, targetID uint64, signedAmount float64, description string) error
	// ChangeNickname renames a member. The first change is free; later changes
	// cost the configured amount, charged as a purchase.
	ChangeNickname(userID uint64, newNickname string) (*domain.Member, error)
	// OnReactionCountChanged fires the one-shot threshold award when the
	// count crosses the configured threshold. Returns whether points moved.
	OnReactionCountChanged(postID, authorID uint64, direction domain.ReactionDirection, oldCount, newCount int) (bool, error)
	Summary(ctx context.Context, userID uint64) (*PointSummary, error)
	History(userID uint64, page, limit int) ([]domain.PointTransaction, int64, error)
}

type pointService struct {
	pointRepo  repository.PointRepository
	memberRepo repository.MemberRepository
	cache      cache.Service
	cfg        config.PointsConfig
}

// NewPointService creates a new PointService. cache may be nil.
func NewPointService(pointRepo repository.PointRepository, memberRepo repository.MemberRepository, cacheService cache.Service, cfg config.PointsConfig) PointService {
	return &pointService{
		pointRepo:  pointRepo,
		memberRepo: memberRepo,
		cache:      cacheService,
		cfg:        cfg,
	}
}

// rateFor returns the tiered rate pair for an activity reason.
func (s *pointService) rateFor(reason domain.PointReason) (config.AccrualRate, bool) {
	switch reason {
	case domain.ReasonPost:
		return s.cfg.Post, true
	case domain.ReasonComment:
		return s.cfg.Comment, true
	case domain.ReasonReply:
		return s.cfg.Reply, true
	default:
		return config.AccrualRate{}, false
	}
}

func (s *pointService) AccrueForActivity(userID uint64, reason domain.PointReason, refs domain.TxRefs) (float64, error) {
	rate, ok := s.rateFor(reason)
	if !ok {
		return 0, common.ErrInvalidInput
	}

	// 지금까지의 적립 횟수로 구간 결정: 처음 TierCount회는 높은 단가
	count, err := s.pointRepo.CountEarnedByReason(userID, reason)
	if err != nil {
		return 0, err
	}
	amount := rate.FirstRate
	if count >= int64(s.cfg.TierCount) {
		amount = rate.AfterRate
	}

	if err := s.pointRepo.Earn(userID, amount, reason, refs); err != nil {
		return 0, err
	}
	s.invalidateSummary(userID)
	return amount, nil
}

func (s *pointService) Spend(userID uint64, amount float64, reason domain.PointReason, refs domain.TxRefs) error {
	if err := s.pointRepo.Spend(userID, amount, reason, refs); err != nil {
		return err
	}
	s.invalidateSummary(userID)
	return nil
}

func (s *pointService) AdminAdjust(actor *domain.Member, targetID uint64, signedAmount float64, description string) error {
	if !actor.Role.CanManageUsers() {
		return common.PermissionDenied(common.RuleUserManagement)
	}
	if err := s.pointRepo.AdminAdjust(actor.UserID, targetID, signedAmount, description); err != nil {
		return err
	}
	s.invalidateSummary(targetID)
	return nil
}

func (s *pointService) ChangeNickname(userID uint64, newNickname string) (*domain.Member, error) {
	newNickname = strings.TrimSpace(newNickname)
	if newNickname == "" {
		return nil, common.ErrInvalidNickname
	}

	member, err := s.memberRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}

	// 최초 1회 무료, 이후 변경은 포인트 차감
	cost := 0.0
	if member.NicknameChangeCount >= 1 {
		cost = s.cfg.NicknameChangeCost
	}
	if err := s.pointRepo.ChangeNickname(userID, newNickname, cost); err != nil {
		return nil, err
	}
	s.invalidateSummary(userID)
	if s.cache != nil && s.cache.IsAvailable() {
		if err := s.cache.InvalidateMember(context.Background(), member.UserID); err != nil {
			logger.GetLogger().Warn().Err(err).Str("user_id", member.UserID).Msg("멤버 캐시 무효화 실패")
		}
	}
	return s.memberRepo.FindByID(userID)
}

func (s *pointService) OnReactionCountChanged(postID, authorID uint64, direction domain.ReactionDirection, oldCount, newCount int) (bool, error) {
	threshold := s.cfg.ReactionThreshold
	if oldCount >= threshold || newCount < threshold {
		return false, nil
	}

	err := s.pointRepo.GrantReactionAward(postID, authorID, direction, s.cfg.ReactionAwardPoints)
	if err != nil {
		if errors.Is(err, common.ErrAlreadyAwarded) {
			// 이미 지급된 게시물 - 중복 지급 방지
			return false, nil
		}
		return false, err
	}
	s.invalidateSummary(authorID)
	return true, nil
}

func (s *pointService) Summary(ctx context.Context, userID uint64) (*PointSummary, error) {
	key := summaryCacheKey(userID)
	if s.cache != nil && s.cache.IsAvailable() {
		var cached PointSummary
		if err := s.cache.GetPointSummary(ctx, key, &cached); err == nil {
			return &cached, nil
		}
	}

	member, err := s.memberRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	summary := &PointSummary{
		Balance: member.Points,
		Level:   domain.LevelOf(member.Points, member.IsHonoraryMember),
	}

	if s.cache != nil && s.cache.IsAvailable() {
		if err := s.cache.SetPointSummary(ctx, key, summary); err != nil {
			logger.GetLogger().Warn().Err(err).Uint64("user_id", userID).Msg("포인트 요약 캐시 저장 실패")
		}
	}
	return summary, nil
}

func (s *pointService) History(userID uint64, page, limit int) ([]domain.PointTransaction, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.pointRepo.History(userID, page, limit)
}

func (s *pointService) invalidateSummary(userID uint64) {
	if s.cache == nil || !s.cache.IsAvailable() {
		return
	}
	if err := s.cache.InvalidatePointSummary(context.Background(), summaryCacheKey(userID)); err != nil {
		logger.GetLogger().Warn().Err(err).Uint64("user_id", userID).Msg("포인트 요약 캐시 무효화 실패")
	}
}

func summaryCacheKey(userID uint64) string {
	return "summary:" + strconv.FormatUint(userID, 10)
}
