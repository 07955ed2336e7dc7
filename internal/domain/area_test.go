package domain

import (
	"errors"
	"testing"

	"github.com/oninepa/k-yayo-backend/internal/common"
)

func TestComposeParseRoundTrip(t *testing.T) {
	cases := []struct {
		nav, channel, board string
		want                AreaID
	}{
		{"k-info", "", "", "k-info"},
		{"k-info", "history", "", "k-info/history"},
		{"k-info", "history", "dynasty", "k-info/history/dynasty"},
	}

	for _, tc := range cases {
		id, err := ComposeArea(tc.nav, tc.channel, tc.board)
		if err != nil {
			t.Fatalf("ComposeArea(%q,%q,%q): %v", tc.nav, tc.channel, tc.board, err)
		}
		if id != tc.want {
			t.Errorf("ComposeArea = %q, want %q", id, tc.want)
		}

		ref, err := ParseArea(id)
		if err != nil {
			t.Fatalf("ParseArea(%q): %v", id, err)
		}
		if ref.Navigation != tc.nav || ref.Channel != tc.channel || ref.Board != tc.board {
			t.Errorf("ParseArea(%q) = %+v, want (%q,%q,%q)", id, ref, tc.nav, tc.channel, tc.board)
		}
		if ref.ID() != id {
			t.Errorf("ref.ID() = %q, want %q", ref.ID(), id)
		}
	}
}

func TestComposeAreaBoardRequiresChannel(t *testing.T) {
	if _, err := ComposeArea("k-info", "", "dynasty"); !errors.Is(err, common.ErrMalformedAreaID) {
		t.Errorf("expected ErrMalformedAreaID, got %v", err)
	}
	if _, err := ComposeArea("", "", ""); !errors.Is(err, common.ErrMalformedAreaID) {
		t.Errorf("expected ErrMalformedAreaID for empty navigation, got %v", err)
	}
}

func TestParseAreaMalformed(t *testing.T) {
	bad := []AreaID{"", "a/b/c/d", "a//c", "/a", "a/"}
	for _, id := range bad {
		if _, err := ParseArea(id); !errors.Is(err, common.ErrMalformedAreaID) {
			t.Errorf("ParseArea(%q): expected ErrMalformedAreaID, got %v", id, err)
		}
	}
}

func TestAreaContains(t *testing.T) {
	cases := []struct {
		parent, child AreaID
		want          bool
	}{
		{"k-info", "k-info/history", true},
		{"k-info/history", "k-info/history/dynasty", true},
		{"k-info", "k-info/history/dynasty", true},
		{"k-info/history", "k-culture/cuisine", false},
		{"k-info/history", "k-info", false},
		{"k-info/history", "k-info/history", true},
		{"k-info/history/dynasty", "k-info/history/saga", false},
	}
	for _, tc := range cases {
		if got := tc.parent.Contains(tc.child); got != tc.want {
			t.Errorf("Contains(%q, %q) = %v, want %v", tc.parent, tc.child, got, tc.want)
		}
	}
}

func TestAreaDisplayName(t *testing.T) {
	catalog := []NavItem{
		{
			Name: "한국 정보",
			Path: "k-info",
			Children: []NavChild{
				{Name: "역사", Path: "history"},
			},
		},
	}

	if got := AreaDisplayName("k-info/history", catalog); got != "한국 정보 > 역사" {
		t.Errorf("display name = %q", got)
	}
	if got := AreaDisplayName("k-info/history/dynasty", catalog); got != "한국 정보 > 역사 > dynasty" {
		t.Errorf("display name with raw board = %q", got)
	}
	// Unknown navigation degrades to the raw id, never errors
	if got := AreaDisplayName("gone/history", catalog); got != "gone/history" {
		t.Errorf("unknown navigation = %q, want raw id", got)
	}
	// Unknown channel keeps its raw segment
	if got := AreaDisplayName("k-info/unknown", catalog); got != "한국 정보 > unknown" {
		t.Errorf("unknown channel = %q", got)
	}
}
