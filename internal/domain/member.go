package domain

import (
	"strings"
	"time"
)

// Member domain model (members table). Created on first authentication with
// role MEMBER; Points is mutated only through the point repository so that
// every balance change has a matching ledger row.
type Member struct {
	CreatedAt           time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt           time.Time `gorm:"column:updated_at" json:"-"`
	UserID              string    `gorm:"column:user_id;uniqueIndex;size:128" json:"user_id"`
	Email               string    `gorm:"column:email;uniqueIndex" json:"email"`
	Nickname            string    `gorm:"column:nickname" json:"nickname"`
	Role                Role      `gorm:"column:role;size:20;default:MEMBER" json:"role"`
	ManagedAreasRaw     string    `gorm:"column:managed_areas" json:"-"`
	Points              float64   `gorm:"column:points;default:0" json:"points"`
	ID                  uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	NicknameChangeCount int       `gorm:"column:nickname_change_count;default:0" json:"nickname_change_count"`
	IsHonoraryMember    bool      `gorm:"column:is_honorary_member;default:false" json:"is_honorary_member"`
}

func (Member) TableName() string {
	return "members"
}

// ManagedAreas returns the moderation scopes for scoped admin roles.
// Empty for OWNER/ADMIN/MEMBER.
func (m *Member) ManagedAreas() []AreaID {
	if m.ManagedAreasRaw == "" {
		return nil
	}
	parts := strings.Split(m.ManagedAreasRaw, ",")
	areas := make([]AreaID, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			areas = append(areas, AreaID(p))
		}
	}
	return areas
}

// SetManagedAreas replaces the moderation scopes.
func (m *Member) SetManagedAreas(areas []AreaID) {
	parts := make([]string, len(areas))
	for i, a := range areas {
		parts[i] = string(a)
	}
	m.ManagedAreasRaw = strings.Join(parts, ",")
}

// Manages reports whether the member's scopes cover the target area.
// OWNER and ADMIN manage everything.
func (m *Member) Manages(target AreaID) bool {
	if m.Role == RoleOwner || m.Role == RoleAdmin {
		return true
	}
	if !m.Role.IsScoped() {
		return false
	}
	for _, area := range m.ManagedAreas() {
		if area.Contains(target) {
			return true
		}
	}
	return false
}

// MemberResponse is the API shape for a member including the derived level.
type MemberResponse struct {
	UserID              string   `json:"user_id"`
	Email               string   `json:"email"`
	Nickname            string   `json:"nickname"`
	Role                Role     `json:"role"`
	ManagedAreas        []AreaID `json:"managed_areas,omitempty"`
	Level               Level    `json:"level"`
	Points              float64  `json:"points"`
	ID                  uint64   `json:"id"`
	NicknameChangeCount int      `json:"nickname_change_count"`
	IsHonoraryMember    bool     `json:"is_honorary_member"`
}

// ToResponse converts a Member to its API shape.
func (m *Member) ToResponse() *MemberResponse {
	return &MemberResponse{
		ID:                  m.ID,
		UserID:              m.UserID,
		Email:               m.Email,
		Nickname:            m.Nickname,
		Role:                m.Role,
		ManagedAreas:        m.ManagedAreas(),
		Points:              m.Points,
		Level:               LevelOf(m.Points, m.IsHonoraryMember),
		NicknameChangeCount: m.NicknameChangeCount,
		IsHonoraryMember:    m.IsHonoraryMember,
	}
}

// MemberProfileResponse is the public profile shape (no email).
type MemberProfileResponse struct {
	UserID    string  `json:"user_id"`
	Nickname  string  `json:"nickname"`
	CreatedAt string  `json:"created_at"`
	Level     Level   `json:"level"`
	Points    float64 `json:"points"`
}

// ToProfileResponse converts a Member to its public profile shape.
func (m *Member) ToProfileResponse() *MemberProfileResponse {
	return &MemberProfileResponse{
		UserID:    m.UserID,
		Nickname:  m.Nickname,
		Points:    m.Points,
		Level:     LevelOf(m.Points, m.IsHonoraryMember),
		CreatedAt: m.CreatedAt.Format("2006-01-02"),
	}
}
