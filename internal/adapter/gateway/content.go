package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"rent-hub/internal/domain"

	"github.com/jackc/pgx/v5"
)

// ContentGateway implements domain.ContentRepository over the editable site
// content tables. Image URLs stored here point at the external storage
// bucket; the files themselves never pass through this service.
type ContentGateway struct {
	db     DB
	logger *slog.Logger
}

// NewContentGateway creates a new content gateway.
func NewContentGateway(db DB, logger *slog.Logger) *ContentGateway {
	return &ContentGateway{
		db:     db,
		logger: logger.With("component", "content_gateway"),
	}
}

const homeContentQuery = `
	SELECT hero_banner_urls, b2b_benefits_url, b2c_benefits_url, faqs, updated_at
	FROM home_page_config
	WHERE id = 1`

// HomeContent loads the single home-page configuration row.
func (g *ContentGateway) HomeContent(ctx context.Context) (*domain.HomeContent, error) {
	var (
		content domain.HomeContent
		b2b     *string
		b2c     *string
		rawFAQs []byte
	)

	row := g.db.QueryRow(ctx, homeContentQuery)
	if err := row.Scan(&content.HeroBannerURLs, &b2b, &b2c, &rawFAQs, &content.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrContentNotFound
		}
		g.logger.ErrorContext(ctx, "home content query failed", "error", err)
		return nil, fmt.Errorf("failed to fetch home content: %w", err)
	}

	if b2b != nil {
		content.B2BBenefitsURL = *b2b
	}
	if b2c != nil {
		content.B2CBenefitsURL = *b2c
	}
	if len(rawFAQs) > 0 {
		if err := json.Unmarshal(rawFAQs, &content.FAQs); err != nil {
			return nil, fmt.Errorf("failed to decode faqs: %w", err)
		}
	}
	return &content, nil
}

const updateHomeContentQuery = `
	UPDATE home_page_config
	SET hero_banner_urls = $1, b2b_benefits_url = $2, b2c_benefits_url = $3,
	    faqs = $4, updated_at = now()
	WHERE id = 1`

// UpdateHomeContent replaces the home-page configuration.
func (g *ContentGateway) UpdateHomeContent(ctx context.Context, content domain.HomeContent) error {
	faqs, err := json.Marshal(content.FAQs)
	if err != nil {
		return fmt.Errorf("failed to encode faqs: %w", err)
	}

	tag, err := g.db.Exec(ctx, updateHomeContentQuery,
		content.HeroBannerURLs,
		nullIfEmpty(content.B2BBenefitsURL),
		nullIfEmpty(content.B2CBenefitsURL),
		faqs,
	)
	if err != nil {
		g.logger.ErrorContext(ctx, "home content update failed", "error", err)
		return fmt.Errorf("failed to update home content: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrContentNotFound
	}
	return nil
}

const siteTextsQuery = `
	SELECT key, value, updated_at
	FROM site_texts
	ORDER BY key`

// SiteTexts lists every editable static text block.
func (g *ContentGateway) SiteTexts(ctx context.Context) ([]domain.SiteText, error) {
	rows, err := g.db.Query(ctx, siteTextsQuery)
	if err != nil {
		g.logger.ErrorContext(ctx, "site texts query failed", "error", err)
		return nil, fmt.Errorf("failed to fetch site texts: %w", err)
	}
	defer rows.Close()

	texts := []domain.SiteText{}
	for rows.Next() {
		var t domain.SiteText
		if err := rows.Scan(&t.Key, &t.Value, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan site text: %w", err)
		}
		texts = append(texts, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("site text rows failed: %w", err)
	}
	return texts, nil
}

const updateSiteTextQuery = `
	UPDATE site_texts
	SET value = $2, updated_at = now()
	WHERE key = $1`

// UpdateSiteText replaces one text block. Unknown keys are
// domain.ErrContentNotFound; new keys are created from migrations, not here.
func (g *ContentGateway) UpdateSiteText(ctx context.Context, key, value string) error {
	tag, err := g.db.Exec(ctx, updateSiteTextQuery, key, value)
	if err != nil {
		g.logger.ErrorContext(ctx, "site text update failed", "key", key, "error", err)
		return fmt.Errorf("failed to update site text: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", domain.ErrContentNotFound, key)
	}
	return nil
}
