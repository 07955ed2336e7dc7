package domain

import (
	"strings"

	"github.com/oninepa/k-yayo-backend/internal/common"
)

// AreaID is a hierarchical content-area key: "navigation", "navigation/channel"
// or "navigation/channel/board" (e.g. "k-info/history/dynasty").
type AreaID string

// AreaRef is the parsed form of an AreaID. Channel and Board are empty when the
// id has fewer than 3 segments.
type AreaRef struct {
	Navigation string `json:"navigation"`
	Channel    string `json:"channel,omitempty"`
	Board      string `json:"board,omitempty"`
}

// ComposeArea builds an AreaID from its segments. A board requires a channel.
func ComposeArea(navigation, channel, board string) (AreaID, error) {
	if navigation == "" {
		return "", common.ErrMalformedAreaID
	}
	if board != "" && channel == "" {
		return "", common.ErrMalformedAreaID
	}
	parts := []string{navigation}
	if channel != "" {
		parts = append(parts, channel)
	}
	if board != "" {
		parts = append(parts, board)
	}
	return AreaID(strings.Join(parts, "/")), nil
}

// ParseArea splits an AreaID into 1-3 non-empty segments.
func ParseArea(id AreaID) (*AreaRef, error) {
	segments := strings.Split(string(id), "/")
	if len(segments) < 1 || len(segments) > 3 {
		return nil, common.ErrMalformedAreaID
	}
	for _, seg := range segments {
		if seg == "" {
			return nil, common.ErrMalformedAreaID
		}
	}
	ref := &AreaRef{Navigation: segments[0]}
	if len(segments) >= 2 {
		ref.Channel = segments[1]
	}
	if len(segments) == 3 {
		ref.Board = segments[2]
	}
	return ref, nil
}

// ID re-composes the AreaID for a parsed reference.
func (r *AreaRef) ID() AreaID {
	id, _ := ComposeArea(r.Navigation, r.Channel, r.Board)
	return id
}

// Depth returns the number of segments (1=navigation, 2=channel, 3=board).
func (r *AreaRef) Depth() int {
	switch {
	case r.Board != "":
		return 3
	case r.Channel != "":
		return 2
	default:
		return 1
	}
}

// Contains reports whether child falls under a (a board is contained by its
// channel and its navigation). Prefix relation on segment lists: a contains b
// iff b's segments start with all of a's segments.
func (a AreaID) Contains(child AreaID) bool {
	parent, err := ParseArea(a)
	if err != nil {
		return false
	}
	ref, err := ParseArea(child)
	if err != nil {
		return false
	}
	if parent.Navigation != ref.Navigation {
		return false
	}
	if parent.Channel != "" && parent.Channel != ref.Channel {
		return false
	}
	if parent.Board != "" && parent.Board != ref.Board {
		return false
	}
	return parent.Depth() <= ref.Depth()
}
