package forms

import (
	"errors"

	"shopadmin/models"

	"gorm.io/gorm"
)

type SubcategoryDraft struct {
	CategoryID  uint   `form:"category" validate:"required"`
	Name        string `form:"name" validate:"required"`
	Slug        string `form:"slug"`
	SortOrder   int    `form:"sort_order"`
	Description string `form:"description"`
	IsActive    bool   `form:"is_active"`
}

// ParseSubcategory validates a raw subcategory form, including that the
// referenced category exists.
func ParseSubcategory(get Getter, gdb *gorm.DB, activeFallback bool) (*SubcategoryDraft, FieldErrors) {
	errs := FieldErrors{}
	draft := &SubcategoryDraft{
		CategoryID:  uintField(get, "category", errs),
		Name:        get("name"),
		Slug:        get("slug"),
		SortOrder:   intField(get, "sort_order", errs),
		Description: get("description"),
		IsActive:    boolField(get, "is_active", activeFallback),
	}
	errs.Merge(checkStruct(draft))

	if draft.CategoryID != 0 {
		var category models.Category
		if err := gdb.First(&category, draft.CategoryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				errs.Add("category", "Invalid choice")
			} else {
				errs.Add("category", "Failed to verify category")
			}
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return draft, nil
}
