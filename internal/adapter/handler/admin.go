package handler

import (
	"net/http"

	"rent-hub/internal/domain"
	"rent-hub/internal/usecase"

	"github.com/labstack/echo/v4"
)

// AdminHandler serves the content editing surfaces. Route-level role
// enforcement happens in middleware; the handlers only validate payloads.
type AdminHandler struct {
	updateHome *usecase.UpdateHomeContent
	updateText *usecase.UpdateSiteText
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(updateHome *usecase.UpdateHomeContent, updateText *usecase.UpdateSiteText) *AdminHandler {
	return &AdminHandler{updateHome: updateHome, updateText: updateText}
}

type updateHomeRequest struct {
	HeroBannerURLs []string `json:"heroBannerUrls"`
	B2BBenefitsURL string   `json:"b2bBenefitsUrl"`
	B2CBenefitsURL string   `json:"b2cBenefitsUrl"`
	FAQs           []faqDTO `json:"faqs"`
}

// HandleUpdateHome processes PUT /v1/admin/home.
func (h *AdminHandler) HandleUpdateHome(c echo.Context) error {
	var req updateHomeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	content := domain.HomeContent{
		HeroBannerURLs: req.HeroBannerURLs,
		B2BBenefitsURL: req.B2BBenefitsURL,
		B2CBenefitsURL: req.B2CBenefitsURL,
		FAQs:           make([]domain.FAQ, 0, len(req.FAQs)),
	}
	for _, f := range req.FAQs {
		content.FAQs = append(content.FAQs, domain.FAQ{Question: f.Question, Answer: f.Answer})
	}

	if err := h.updateHome.Execute(c.Request().Context(), content); err != nil {
		return mapDomainError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

type updateSiteTextRequest struct {
	Value string `json:"value"`
}

// HandleUpdateSiteText processes PUT /v1/admin/site-texts/:key.
func (h *AdminHandler) HandleUpdateSiteText(c echo.Context) error {
	var req updateSiteTextRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := h.updateText.Execute(c.Request().Context(), c.Param("key"), req.Value); err != nil {
		return mapDomainError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
