package service

import (
	"context"
	"errors"

	"github.com/oninepa/k-yayo-backend/internal/common"
	"github.com/oninepa/k-yayo-backend/internal/config"
	"github.com/oninepa/k-yayo-backend/internal/domain"
	"github.com/oninepa/k-yayo-backend/internal/repository"
	"github.com/oninepa/k-yayo-backend/pkg/cache"
	"github.com/oninepa/k-yayo-backend/pkg/logger"
)

// AreaSelection carries the area fields of a role-change request. Fields not
// required by the desired role are ignored.
type AreaSelection struct {
	Navigation string `json:"navigation"`
	Channel    string `json:"channel"`
	Board      string `json:"board"`
}

// MemberService business logic for members and role assignment.
type MemberService interface {
	// Provision finds or creates the member for an authenticated identity.
	// New members start as MEMBER unless the configured allowlist seeds
	// OWNER/ADMIN. The allowlist is consulted only here; authorization always
	// reads the stored role.
	Provision(userID, email, nickname string) (*domain.Member, error)
	// AssignRole runs the role-change flow: completeness of the area
	// selection, RBAC checks, owner self-demotion guard, then commit with the
	// composed managed areas.
	AssignRole(actor *domain.Member, targetID uint64, desiredRole string, selection AreaSelection) (*domain.Member, error)
	SetHonorary(actor *domain.Member, targetID uint64, honorary bool) error
	GetByUserID(ctx context.Context, userID string) (*domain.Member, error)
	GetByID(id uint64) (*domain.Member, error)
	List(page, limit int) ([]domain.Member, int64, error)
}

type memberService struct {
	memberRepo repository.MemberRepository
	cache      cache.Service
	adminCfg   config.AdminConfig
}

// NewMemberService creates a new MemberService. cache may be nil.
func NewMemberService(memberRepo repository.MemberRepository, cacheService cache.Service, adminCfg config.AdminConfig) MemberService {
	return &memberService{
		memberRepo: memberRepo,
		cache:      cacheService,
		adminCfg:   adminCfg,
	}
}

// initialRole resolves the provisioning role from the injected allowlist.
func (s *memberService) initialRole(email string) domain.Role {
	if email != "" && email == s.adminCfg.OwnerEmail {
		return domain.RoleOwner
	}
	for _, admin := range s.adminCfg.AdminEmails {
		if email == admin {
			return domain.RoleAdmin
		}
	}
	return domain.RoleMember
}

func (s *memberService) Provision(userID, email, nickname string) (*domain.Member, error) {
	member, err := s.memberRepo.FindByUserID(userID)
	if err == nil {
		return member, nil
	}
	if !errors.Is(err, common.ErrMemberNotFound) {
		return nil, err
	}

	member = &domain.Member{
		UserID:   userID,
		Email:    email,
		Nickname: nickname,
		Role:     s.initialRole(email),
	}
	if err := s.memberRepo.Create(member); err != nil {
		return nil, err
	}
	logger.GetLogger().Info().
		Str("user_id", userID).
		Str("role", string(member.Role)).
		Msg("신규 멤버 생성")
	return member, nil
}

func (s *memberService) AssignRole(actor *domain.Member, targetID uint64, desiredRole string, selection AreaSelection) (*domain.Member, error) {
	role, err := domain.ParseRole(desiredRole)
	if err != nil {
		return nil, err
	}

	// 담당 구역 선택이 모두 채워지기 전에는 검증 단계로 넘어가지 않는다
	if missing := missingAreaFields(role, selection); len(missing) > 0 {
		return nil, &common.IncompleteAreaSelectionError{Missing: missing}
	}

	if role == domain.RoleOwner && actor.Role != domain.RoleOwner {
		return nil, common.PermissionDenied(common.RuleOwnerRequired)
	}
	if !actor.Role.CanAssignRole(role) {
		return nil, common.PermissionDenied(common.RuleRankExceeded)
	}
	// 유일한 OWNER가 스스로 강등되어 사이트가 잠기는 것을 차단
	if actor.ID == targetID && actor.Role == domain.RoleOwner && role.Rank() < actor.Role.Rank() {
		return nil, common.PermissionDenied(common.RuleSelfDemotion)
	}

	var managedAreas []domain.AreaID
	if role.IsScoped() {
		area, err := domain.ComposeArea(selection.Navigation, selection.Channel, selection.Board)
		if err != nil {
			return nil, err
		}
		managedAreas = []domain.AreaID{area}
	}

	if err := s.memberRepo.UpdateRole(targetID, role, managedAreas); err != nil {
		return nil, err
	}

	target, err := s.memberRepo.FindByID(targetID)
	if err != nil {
		return nil, err
	}
	s.invalidateMember(target.UserID)

	logger.GetLogger().Info().
		Str("actor", actor.UserID).
		Str("target", target.UserID).
		Str("role", string(role)).
		Strs("managed_areas", areaStrings(managedAreas)).
		Msg("역할 변경")
	return target, nil
}

func (s *memberService) SetHonorary(actor *domain.Member, targetID uint64, honorary bool) error {
	if !actor.Role.CanManageUsers() {
		return common.PermissionDenied(common.RuleUserManagement)
	}
	if err := s.memberRepo.SetHonorary(targetID, honorary); err != nil {
		return err
	}
	if target, err := s.memberRepo.FindByID(targetID); err == nil {
		s.invalidateMember(target.UserID)
	}
	return nil
}

func (s *memberService) GetByUserID(ctx context.Context, userID string) (*domain.Member, error) {
	if s.cache != nil && s.cache.IsAvailable() {
		var cached domain.Member
		if err := s.cache.GetMember(ctx, userID, &cached); err == nil {
			return &cached, nil
		}
	}

	member, err := s.memberRepo.FindByUserID(userID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil && s.cache.IsAvailable() {
		if err := s.cache.SetMember(ctx, userID, member); err != nil {
			logger.GetLogger().Warn().Err(err).Str("user_id", userID).Msg("멤버 캐시 저장 실패")
		}
	}
	return member, nil
}

func (s *memberService) GetByID(id uint64) (*domain.Member, error) {
	return s.memberRepo.FindByID(id)
}

func (s *memberService) List(page, limit int) ([]domain.Member, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.memberRepo.List(page, limit)
}

func (s *memberService) invalidateMember(userID string) {
	if s.cache == nil || !s.cache.IsAvailable() {
		return
	}
	if err := s.cache.InvalidateMember(context.Background(), userID); err != nil {
		logger.GetLogger().Warn().Err(err).Str("user_id", userID).Msg("멤버 캐시 무효화 실패")
	}
}

// missingAreaFields lists which required selection fields are empty.
func missingAreaFields(role domain.Role, selection AreaSelection) []string {
	req := role.RequiresAreaSelection()
	var missing []string
	if req.Navigation && selection.Navigation == "" {
		missing = append(missing, "navigation")
	}
	if req.Channel && selection.Channel == "" {
		missing = append(missing, "channel")
	}
	if req.Board && selection.Board == "" {
		missing = append(missing, "board")
	}
	return missing
}

func areaStrings(areas []domain.AreaID) []string {
	out := make([]string, len(areas))
	for i, a := range areas {
		out[i] = string(a)
	}
	return out
}
