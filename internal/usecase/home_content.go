package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"rent-hub/internal/domain"
	"rent-hub/internal/infrastructure/cache"

	"github.com/go-playground/validator/v10"
)

// GetHomeContent loads the home-page configuration through the read cache.
type GetHomeContent struct {
	content domain.ContentRepository
	cache   *cache.ContentCache
	logger  *slog.Logger
}

// NewGetHomeContent creates a new GetHomeContent usecase.
func NewGetHomeContent(c domain.ContentRepository, cc *cache.ContentCache, l *slog.Logger) *GetHomeContent {
	return &GetHomeContent{content: c, cache: cc, logger: l}
}

// Execute returns the home-page configuration.
func (uc *GetHomeContent) Execute(ctx context.Context) (*domain.HomeContent, error) {
	if content, found := uc.cache.HomeContent(); found {
		return content, nil
	}

	content, err := uc.content.HomeContent(ctx)
	if err != nil {
		return nil, err
	}
	uc.cache.SetHomeContent(content)
	return content, nil
}

// UpdateHomeContent validates and persists an admin edit of the home-page
// configuration, then invalidates the cached copy.
type UpdateHomeContent struct {
	content  domain.ContentRepository
	cache    *cache.ContentCache
	validate *validator.Validate
	logger   *slog.Logger
}

// NewUpdateHomeContent creates a new UpdateHomeContent usecase.
func NewUpdateHomeContent(c domain.ContentRepository, cc *cache.ContentCache, l *slog.Logger) *UpdateHomeContent {
	return &UpdateHomeContent{
		content:  c,
		cache:    cc,
		validate: validator.New(),
		logger:   l,
	}
}

// Execute replaces the home-page configuration.
func (uc *UpdateHomeContent) Execute(ctx context.Context, content domain.HomeContent) error {
	if err := uc.validate.Struct(content); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}

	if err := uc.content.UpdateHomeContent(ctx, content); err != nil {
		return err
	}
	uc.cache.InvalidateHomeContent()
	uc.logger.InfoContext(ctx, "home content updated",
		"banners", len(content.HeroBannerURLs),
		"faqs", len(content.FAQs))
	return nil
}
