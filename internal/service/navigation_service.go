package service

import "github.com/oninepa/k-yayo-backend/internal/domain"

// NavigationService resolves area display names against the static site
// catalog loaded at startup.
type NavigationService interface {
	Catalog() []domain.NavItem
	// DisplayName renders a human-readable label; unknown areas return the
	// raw id unchanged.
	DisplayName(id domain.AreaID) string
}

type navigationService struct {
	catalog []domain.NavItem
}

// NewNavigationService creates a NavigationService over a loaded catalog.
func NewNavigationService(catalog []domain.NavItem) NavigationService {
	return &navigationService{catalog: catalog}
}

func (s *navigationService) Catalog() []domain.NavItem {
	return s.catalog
}

func (s *navigationService) DisplayName(id domain.AreaID) string {
	return domain.AreaDisplayName(id, s.catalog)
}
