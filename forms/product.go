package forms

import (
	"errors"

	"shopadmin/models"

	"gorm.io/gorm"
)

type ProductDraft struct {
	CategoryID     uint     `form:"category" validate:"required"`
	SubcategoryID  *uint    `form:"subcategory"`
	Name           string   `form:"name" validate:"required"`
	Slug           string   `form:"slug"`
	Description    string   `form:"description"`
	Specifications string   `form:"specifications"`
	Price          float64  `form:"price" validate:"gte=0"`
	SalePrice      *float64 `form:"sale_price"`
	StockQuantity  int      `form:"stock_quantity" validate:"gte=0"`
	IsFeatured     bool     `form:"is_featured"`
	IsActive       bool     `form:"is_active"`
	SortOrder      int      `form:"sort_order"`
}

// ParseProduct validates a raw product form. When a subcategory is chosen
// the category is overridden to that subcategory's parent; a mismatched
// category submission is corrected, not rejected.
func ParseProduct(get Getter, gdb *gorm.DB, activeFallback bool) (*ProductDraft, FieldErrors) {
	errs := FieldErrors{}
	draft := &ProductDraft{
		CategoryID:     uintField(get, "category", errs),
		Name:           get("name"),
		Slug:           get("slug"),
		Description:    get("description"),
		Specifications: get("specifications"),
		Price:          floatField(get, "price", errs),
		SalePrice:      optionalFloatField(get, "sale_price", errs),
		StockQuantity:  intField(get, "stock_quantity", errs),
		IsFeatured:     boolField(get, "is_featured", false),
		IsActive:       boolField(get, "is_active", activeFallback),
		SortOrder:      intField(get, "sort_order", errs),
	}

	if subID := uintField(get, "subcategory", errs); subID != 0 {
		var subcategory models.Subcategory
		if err := gdb.First(&subcategory, subID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				errs.Add("subcategory", "Invalid choice")
			} else {
				errs.Add("subcategory", "Failed to verify subcategory")
			}
		} else {
			draft.SubcategoryID = &subcategory.ID
			draft.CategoryID = subcategory.CategoryID
		}
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

// ProductFormChoices returns the category and subcategory option lists for
// the product form. Subcategories are scoped to the selected category;
// with no category chosen, all subcategories are offered.
func ProductFormChoices(gdb *gorm.DB, categoryID uint) ([]models.Category, []models.Subcategory, error) {
	var categories []models.Category
	if err := gdb.Order("sort_order, name").Find(&categories).Error; err != nil {
		return nil, nil, err
	}

	subQuery := gdb.Order("sort_order, name")
	if categoryID != 0 {
		subQuery = subQuery.Where("category_id = ?", categoryID)
	}
	var subcategories []models.Subcategory
	if err := subQuery.Find(&subcategories).Error; err != nil {
		return nil, nil, err
	}

	return categories, subcategories, nil
}
