// internal/content/service.go
package content

import (
	"context"
	"fmt"

	"github.com/BananaBox69/kpopgallery/pkg/docstore"
)

// Service persists the settings documents. Writes merge into the existing
// document; readers pick the change up through their watch.
type Service interface {
	SaveSiteContent(ctx context.Context, fields map[string]any) error
	SaveMetadata(ctx context.Context, fields map[string]any) error
}

type service struct {
	store docstore.Store
}

func NewService(store docstore.Store) Service {
	return &service{store: store}
}

func (s *service) SaveSiteContent(ctx context.Context, fields map[string]any) error {
	if err := s.store.Set(ctx, SettingsCollection, SiteContentDoc, fields); err != nil {
		return fmt.Errorf("failed to save site content: %w", err)
	}
	return nil
}

func (s *service) SaveMetadata(ctx context.Context, fields map[string]any) error {
	if err := s.store.Set(ctx, SettingsCollection, MetadataDoc, fields); err != nil {
		return fmt.Errorf("failed to save metadata: %w", err)
	}
	return nil
}
