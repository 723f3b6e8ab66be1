package forms

import "shopadmin/models"

type LandingDraft struct {
	Title       string `form:"title" validate:"required"`
	SectionType string `form:"section_type"`
	Subtitle    string `form:"subtitle"`
	Content     string `form:"content"`
	ButtonText  string `form:"button_text"`
	ButtonLink  string `form:"button_link"`
	SortOrder   int    `form:"sort_order"`
	IsActive    bool   `form:"is_active"`
}

// ParseLanding validates a raw landing-content form. An empty section type
// defaults to custom.
func ParseLanding(get Getter, activeFallback bool) (*LandingDraft, FieldErrors) {
	errs := FieldErrors{}
	draft := &LandingDraft{
		Title:       get("title"),
		SectionType: get("section_type"),
		Subtitle:    get("subtitle"),
		Content:     get("content"),
		ButtonText:  get("button_text"),
		ButtonLink:  get("button_link"),
		SortOrder:   intField(get, "sort_order", errs),
		IsActive:    boolField(get, "is_active", activeFallback),
	}
	if draft.SectionType == "" {
		draft.SectionType = models.SectionCustom
	}
	if !models.ValidSectionType(draft.SectionType) {
		errs.Add("section_type", "Invalid choice")
	}
	errs.Merge(checkStruct(draft))
	if len(errs) > 0 {
		return nil, errs
	}
	return draft, nil
}
