package domain

import (
	"errors"
	"testing"

	"github.com/oninepa/k-yayo-backend/internal/common"
)

var allRoles = []Role{RoleOwner, RoleAdmin, RoleNaviAdmin, RoleChannelAdmin, RoleBoardAdmin, RoleMember}

func TestParseRole(t *testing.T) {
	for _, role := range allRoles {
		parsed, err := ParseRole(string(role))
		if err != nil {
			t.Fatalf("ParseRole(%q): %v", role, err)
		}
		if parsed != role {
			t.Errorf("ParseRole(%q) = %q", role, parsed)
		}
	}
	if _, err := ParseRole("SUPERUSER"); !errors.Is(err, common.ErrInvalidRole) {
		t.Errorf("expected ErrInvalidRole, got %v", err)
	}
}

func TestCanAssignRoleMonotonicity(t *testing.T) {
	// rank(a) >= rank(b) allows assignment, except OWNER needs OWNER exactly
	for _, actor := range allRoles {
		for _, target := range allRoles {
			want := actor.Rank() >= target.Rank()
			if target == RoleOwner {
				want = actor == RoleOwner
			}
			if got := actor.CanAssignRole(target); got != want {
				t.Errorf("CanAssignRole(%s, %s) = %v, want %v", actor, target, got, want)
			}
		}
	}
}

func TestChannelAdminCannotAssignNaviAdmin(t *testing.T) {
	if RoleChannelAdmin.CanAssignRole(RoleNaviAdmin) {
		t.Error("CHANNEL_ADMIN must not assign NAVI_ADMIN")
	}
}

func TestRolePredicates(t *testing.T) {
	cases := []struct {
		role          Role
		manageUsers   bool
		manageContent bool
		appointAdmins bool
	}{
		{RoleOwner, true, true, true},
		{RoleAdmin, true, true, true},
		{RoleNaviAdmin, false, true, true},
		{RoleChannelAdmin, false, true, true},
		{RoleBoardAdmin, false, true, false},
		{RoleMember, false, false, false},
	}
	for _, tc := range cases {
		if got := tc.role.CanManageUsers(); got != tc.manageUsers {
			t.Errorf("%s.CanManageUsers() = %v", tc.role, got)
		}
		if got := tc.role.CanManageContent(); got != tc.manageContent {
			t.Errorf("%s.CanManageContent() = %v", tc.role, got)
		}
		if got := tc.role.CanAppointAdmins(); got != tc.appointAdmins {
			t.Errorf("%s.CanAppointAdmins() = %v", tc.role, got)
		}
	}
}

func TestRequiresAreaSelection(t *testing.T) {
	cases := []struct {
		role Role
		want AreaRequirement
	}{
		{RoleNaviAdmin, AreaRequirement{Navigation: true}},
		{RoleChannelAdmin, AreaRequirement{Navigation: true, Channel: true}},
		{RoleBoardAdmin, AreaRequirement{Navigation: true, Channel: true, Board: true}},
		{RoleOwner, AreaRequirement{}},
		{RoleAdmin, AreaRequirement{}},
		{RoleMember, AreaRequirement{}},
	}
	for _, tc := range cases {
		if got := tc.role.RequiresAreaSelection(); got != tc.want {
			t.Errorf("%s.RequiresAreaSelection() = %+v, want %+v", tc.role, got, tc.want)
		}
	}
}

func TestCanWriteToArea(t *testing.T) {
	open := []AreaID{"k-community/free/board"}

	if !RoleOwner.CanWriteToArea("k-info/history/dynasty", open) {
		t.Error("OWNER writes anywhere")
	}
	if !RoleAdmin.CanWriteToArea("k-info/history/dynasty", open) {
		t.Error("ADMIN writes anywhere")
	}
	if !RoleMember.CanWriteToArea("k-community/free/board", open) {
		t.Error("any role writes to an open area")
	}
	if RoleMember.CanWriteToArea("k-info/history/dynasty", open) {
		t.Error("MEMBER must not write outside open areas")
	}
	if RoleBoardAdmin.CanWriteToArea("k-info/history/dynasty", open) {
		t.Error("scoped admins have no blanket write access")
	}
}

func TestMemberManages(t *testing.T) {
	m := &Member{Role: RoleChannelAdmin}
	m.SetManagedAreas([]AreaID{"k-info/history"})

	if !m.Manages("k-info/history/dynasty") {
		t.Error("channel admin manages boards under the channel")
	}
	if m.Manages("k-info/culture") {
		t.Error("channel admin must not manage sibling channels")
	}

	admin := &Member{Role: RoleAdmin}
	if !admin.Manages("k-culture/cuisine") {
		t.Error("ADMIN manages everything")
	}

	member := &Member{Role: RoleMember}
	if member.Manages("k-info") {
		t.Error("MEMBER manages nothing")
	}
}
