package forms

// CategoryDraft is a validated category submission. Slug stays empty when
// the user left it blank; the handler derives one at save time.
type CategoryDraft struct {
	Name        string `form:"name" validate:"required"`
	Slug        string `form:"slug"`
	SortOrder   int    `form:"sort_order"`
	Description string `form:"description"`
	IsActive    bool   `form:"is_active"`
}

// ParseCategory validates a raw category form. activeFallback supplies the
// current flag when editing so an omitted checkbox keeps the stored value.
func ParseCategory(get Getter, activeFallback bool) (*CategoryDraft, FieldErrors) {
	errs := FieldErrors{}
	draft := &CategoryDraft{
		Name:        get("name"),
		Slug:        get("slug"),
		SortOrder:   intField(get, "sort_order", errs),
		Description: get("description"),
		IsActive:    boolField(get, "is_active", activeFallback),
	}
	errs.Merge(checkStruct(draft))
	if len(errs) > 0 {
		return nil, errs
	}
	return draft, nil
}
