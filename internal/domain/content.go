package domain

import "time"

// FAQ is one question/answer pair on the home page.
type FAQ struct {
	Question string `validate:"required,max=300"`
	Answer   string `validate:"required,max=2000"`
}

// HomeContent is the editable home-page configuration: hero banner carousel,
// the two benefits images and the FAQ list. Image URLs point at the external
// storage bucket; rent-hub never stores files.
type HomeContent struct {
	HeroBannerURLs []string `validate:"max=10,dive,url"`
	B2BBenefitsURL string   `validate:"omitempty,url"`
	B2CBenefitsURL string   `validate:"omitempty,url"`
	FAQs           []FAQ    `validate:"max=30,dive"`
	UpdatedAt      time.Time
}

// SiteText is one keyed static text block (footer notices, legal copy,
// contact lines) editable from the admin area.
type SiteText struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}
