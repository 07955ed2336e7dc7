package repository

import (
	"errors"

	"github.com/oninepa/k-yayo-backend/internal/common"
	"github.com/oninepa/k-yayo-backend/internal/domain"
	"gorm.io/gorm"
)

// MemberRepository member data access
type MemberRepository interface {
	FindByID(id uint64) (*domain.Member, error)
	FindByUserID(userID string) (*domain.Member, error)
	FindByEmail(email string) (*domain.Member, error)
	Create(member *domain.Member) error
	// UpdateRole writes role and managed areas together so a scoped role can
	// never be committed without its areas.
	UpdateRole(id uint64, role domain.Role, managedAreas []domain.AreaID) error
	SetHonorary(id uint64, honorary bool) error
	List(page, limit int) ([]domain.Member, int64, error)
	Delete(id uint64) error
}

type memberRepository struct {
	db *gorm.DB
}

// NewMemberRepository creates a new MemberRepository
func NewMemberRepository(db *gorm.DB) MemberRepository {
	return &memberRepository{db: db}
}

func (r *memberRepository) FindByID(id uint64) (*domain.Member, error) {
	var member domain.Member
	if err := r.db.Where("id = ?", id).First(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrMemberNotFound
		}
		return nil, err
	}
	return &member, nil
}

func (r *memberRepository) FindByUserID(userID string) (*domain.Member, error) {
	var member domain.Member
	if err := r.db.Where("user_id = ?", userID).First(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrMemberNotFound
		}
		return nil, err
	}
	return &member, nil
}

func (r *memberRepository) FindByEmail(email string) (*domain.Member, error) {
	var member domain.Member
	if err := r.db.Where("email = ?", email).First(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrMemberNotFound
		}
		return nil, err
	}
	return &member, nil
}

func (r *memberRepository) Create(member *domain.Member) error {
	return r.db.Create(member).Error
}

func (r *memberRepository) UpdateRole(id uint64, role domain.Role, managedAreas []domain.AreaID) error {
	m := domain.Member{}
	m.SetManagedAreas(managedAreas)
	result := r.db.Model(&domain.Member{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"role":          role,
			"managed_areas": m.ManagedAreasRaw,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return common.ErrMemberNotFound
	}
	return nil
}

func (r *memberRepository) SetHonorary(id uint64, honorary bool) error {
	result := r.db.Model(&domain.Member{}).
		Where("id = ?", id).
		UpdateColumn("is_honorary_member", honorary)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return common.ErrMemberNotFound
	}
	return nil
}

func (r *memberRepository) List(page, limit int) ([]domain.Member, int64, error) {
	var total int64
	if err := r.db.Model(&domain.Member{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	var members []domain.Member
	if err := r.db.Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&members).Error; err != nil {
		return nil, 0, err
	}
	return members, total, nil
}

func (r *memberRepository) Delete(id uint64) error {
	return r.db.Where("id = ?", id).Delete(&domain.Member{}).Error
}
