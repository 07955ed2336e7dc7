package domain

import "strings"

// NavChild is a channel entry under a navigation section.
type NavChild struct {
	Name string `yaml:"name" json:"name"`
	Path string `yaml:"path" json:"path"`
}

// NavItem is a top-level navigation section in the site catalog.
// The catalog is static configuration loaded at startup; it is only consulted
// for display-name resolution, never for authorization.
type NavItem struct {
	Name     string     `yaml:"name" json:"name"`
	Path     string     `yaml:"path" json:"path"`
	Children []NavChild `yaml:"children" json:"children,omitempty"`
}

// AreaDisplayName renders a human-readable label for an area id, e.g.
// "k-info/history/dynasty" -> "한국 정보 > 역사 > dynasty". Unknown navigations
// fall back to the raw id so stale areas never break rendering; unknown
// channels/boards keep their raw segment.
func AreaDisplayName(id AreaID, catalog []NavItem) string {
	ref, err := ParseArea(id)
	if err != nil {
		return string(id)
	}

	var nav *NavItem
	for i := range catalog {
		if catalog[i].Path == ref.Navigation {
			nav = &catalog[i]
			break
		}
	}
	if nav == nil {
		return string(id)
	}

	labels := []string{nav.Name}
	if ref.Channel != "" {
		channelName := ref.Channel
		for _, child := range nav.Children {
			if child.Path == ref.Channel {
				channelName = child.Name
				break
			}
		}
		labels = append(labels, channelName)
	}
	if ref.Board != "" {
		labels = append(labels, ref.Board)
	}
	return strings.Join(labels, " > ")
}
