package domain

import "github.com/oninepa/k-yayo-backend/internal/common"

// Role is a member's site-wide role. Exactly one role per member; the stored
// role field is the single source of truth (never derived from email or level).
type Role string

const (
	RoleOwner        Role = "OWNER"
	RoleAdmin        Role = "ADMIN"
	RoleNaviAdmin    Role = "NAVI_ADMIN"
	RoleChannelAdmin Role = "CHANNEL_ADMIN"
	RoleBoardAdmin   Role = "BOARD_ADMIN"
	RoleMember       Role = "MEMBER"
)

// roleRanks orders the hierarchy: higher rank outranks lower.
var roleRanks = map[Role]int{
	RoleOwner:        5,
	RoleAdmin:        4,
	RoleNaviAdmin:    3,
	RoleChannelAdmin: 2,
	RoleBoardAdmin:   1,
	RoleMember:       0,
}

// ParseRole validates a role string.
func ParseRole(s string) (Role, error) {
	role := Role(s)
	if _, ok := roleRanks[role]; !ok {
		return "", common.ErrInvalidRole
	}
	return role, nil
}

// Rank returns the role's position in the hierarchy (OWNER=5 ... MEMBER=0).
// Unknown roles rank below MEMBER.
func (r Role) Rank() int {
	rank, ok := roleRanks[r]
	if !ok {
		return -1
	}
	return rank
}

// IsScoped reports whether the role moderates specific content areas and
// therefore requires a non-empty managed-area list.
func (r Role) IsScoped() bool {
	switch r {
	case RoleNaviAdmin, RoleChannelAdmin, RoleBoardAdmin:
		return true
	default:
		return false
	}
}

// CanManageUsers reports whether the role may manage member accounts
// (role changes, point grants, honorary flags).
func (r Role) CanManageUsers() bool {
	return r == RoleOwner || r == RoleAdmin
}

// CanManageContent reports whether the role has any moderation power.
func (r Role) CanManageContent() bool {
	return r.Rank() >= roleRanks[RoleBoardAdmin]
}

// CanAppointAdmins reports whether the role may hand out scoped admin roles.
// BOARD_ADMIN is the bottom of the admin ladder and cannot appoint anyone.
func (r Role) CanAppointAdmins() bool {
	return r.Rank() >= roleRanks[RoleChannelAdmin]
}

// CanAssignRole reports whether an actor with this role may assign target to a
// member. An actor assigns at or below their own rank; only OWNER may mint
// OWNER. The owner self-demotion guard lives in the member service because it
// needs actor/target identity, not just roles.
func (r Role) CanAssignRole(target Role) bool {
	if target == RoleOwner {
		return r == RoleOwner
	}
	return r.Rank() >= target.Rank()
}

// AreaRequirement lists which area segments a role change must select.
type AreaRequirement struct {
	Navigation bool `json:"navigation"`
	Channel    bool `json:"channel"`
	Board      bool `json:"board"`
}

// RequiresAreaSelection returns the area segments that must accompany an
// assignment of this role. NAVI_ADMIN needs a navigation, CHANNEL_ADMIN a
// navigation+channel, BOARD_ADMIN all three; global roles need none.
func (r Role) RequiresAreaSelection() AreaRequirement {
	switch r {
	case RoleNaviAdmin:
		return AreaRequirement{Navigation: true}
	case RoleChannelAdmin:
		return AreaRequirement{Navigation: true, Channel: true}
	case RoleBoardAdmin:
		return AreaRequirement{Navigation: true, Channel: true, Board: true}
	default:
		return AreaRequirement{}
	}
}

// CanWriteToArea is the content-write gate for blog-style sections: OWNER and
// ADMIN write anywhere; everyone authenticated may write to a designated open
// leaf area (e.g. the free-discussion board); otherwise denied.
func (r Role) CanWriteToArea(target AreaID, openAreas []AreaID) bool {
	if r == RoleOwner || r == RoleAdmin {
		return true
	}
	for _, open := range openAreas {
		if open == target {
			return true
		}
	}
	return false
}
