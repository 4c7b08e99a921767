package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"unicode/utf8"

	"rent-hub/internal/domain"
)

const maxSiteTextLength = 10000

// ListSiteTexts returns every editable static text block.
type ListSiteTexts struct {
	content domain.ContentRepository
	logger  *slog.Logger
}

// NewListSiteTexts creates a new ListSiteTexts usecase.
func NewListSiteTexts(c domain.ContentRepository, l *slog.Logger) *ListSiteTexts {
	return &ListSiteTexts{content: c, logger: l}
}

// Execute lists the site texts.
func (uc *ListSiteTexts) Execute(ctx context.Context) ([]domain.SiteText, error) {
	return uc.content.SiteTexts(ctx)
}

// UpdateSiteText persists an admin edit of one text block.
type UpdateSiteText struct {
	content domain.ContentRepository
	logger  *slog.Logger
}

// NewUpdateSiteText creates a new UpdateSiteText usecase.
func NewUpdateSiteText(c domain.ContentRepository, l *slog.Logger) *UpdateSiteText {
	return &UpdateSiteText{content: c, logger: l}
}

// Execute replaces the value stored under key.
func (uc *UpdateSiteText) Execute(ctx context.Context, key, value string) error {
	if key == "" {
		return fmt.Errorf("%w: site text key required", domain.ErrInvalidInput)
	}
	if utf8.RuneCountInString(value) > maxSiteTextLength {
		return fmt.Errorf("%w: site text too long", domain.ErrInvalidInput)
	}

	if err := uc.content.UpdateSiteText(ctx, key, value); err != nil {
		return err
	}
	uc.logger.InfoContext(ctx, "site text updated", "key", key)
	return nil
}
