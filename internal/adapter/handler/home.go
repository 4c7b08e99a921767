package handler

import (
	"net/http"
	"time"

	"rent-hub/internal/domain"
	"rent-hub/internal/usecase"

	"github.com/labstack/echo/v4"
)

// ContentHandler serves the public content surfaces.
type ContentHandler struct {
	home  *usecase.GetHomeContent
	texts *usecase.ListSiteTexts
}

// NewContentHandler creates a new content handler.
func NewContentHandler(home *usecase.GetHomeContent, texts *usecase.ListSiteTexts) *ContentHandler {
	return &ContentHandler{home: home, texts: texts}
}

type faqDTO struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type homeContentResponse struct {
	HeroBannerURLs []string  `json:"heroBannerUrls"`
	B2BBenefitsURL string    `json:"b2bBenefitsUrl,omitempty"`
	B2CBenefitsURL string    `json:"b2cBenefitsUrl,omitempty"`
	FAQs           []faqDTO  `json:"faqs"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func toHomeContentResponse(content *domain.HomeContent) homeContentResponse {
	banners := content.HeroBannerURLs
	if banners == nil {
		banners = []string{}
	}
	faqs := make([]faqDTO, 0, len(content.FAQs))
	for _, f := range content.FAQs {
		faqs = append(faqs, faqDTO{Question: f.Question, Answer: f.Answer})
	}
	return homeContentResponse{
		HeroBannerURLs: banners,
		B2BBenefitsURL: content.B2BBenefitsURL,
		B2CBenefitsURL: content.B2CBenefitsURL,
		FAQs:           faqs,
		UpdatedAt:      content.UpdatedAt,
	}
}

// HandleHome processes GET /v1/home.
func (h *ContentHandler) HandleHome(c echo.Context) error {
	content, err := h.home.Execute(c.Request().Context())
	if err != nil {
		return mapDomainError(err)
	}
	return c.JSON(http.StatusOK, toHomeContentResponse(content))
}

type siteTextDTO struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// HandleSiteTexts processes GET /v1/site-texts.
func (h *ContentHandler) HandleSiteTexts(c echo.Context) error {
	texts, err := h.texts.Execute(c.Request().Context())
	if err != nil {
		return mapDomainError(err)
	}

	resp := make([]siteTextDTO, 0, len(texts))
	for _, t := range texts {
		resp = append(resp, siteTextDTO{Key: t.Key, Value: t.Value, UpdatedAt: t.UpdatedAt})
	}
	return c.JSON(http.StatusOK, resp)
}
