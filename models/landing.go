package models

import "time"

const (
	SectionHero         = "hero"
	SectionFeatures     = "features"
	SectionAbout        = "about"
	SectionTestimonials = "testimonials"
	SectionCTA          = "cta"
	SectionCustom       = "custom"
)

// SectionTypes lists the allowed landing section types in display order.
var SectionTypes = []string{
	SectionHero,
	SectionFeatures,
	SectionAbout,
	SectionTestimonials,
	SectionCTA,
	SectionCustom,
}

func ValidSectionType(s string) bool {
	for _, t := range SectionTypes {
		if s == t {
			return true
		}
	}
	return false
}

type LandingPageContent struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `json:"title" validate:"required"`
	SectionType string    `gorm:"default:custom" json:"section_type"`
	Subtitle    string    `json:"subtitle"`
	Content     string    `json:"content"`
	Image       string    `json:"image"`
	ButtonText  string    `json:"button_text"`
	ButtonLink  string    `json:"button_link"`
	SortOrder   int       `json:"sort_order"`
	IsActive    bool      `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
