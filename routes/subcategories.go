package routes

import (
	"errors"

	"shopadmin/db"
	"shopadmin/forms"
	"shopadmin/models"
	"shopadmin/slugutil"
	"shopadmin/storage"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func subcategoryList(c *fiber.Ctx) error {
	search := c.Query("search")
	categoryID := c.Query("category")

	query := db.DB.Preload("Category")
	if search != "" {
		query = query.Where("name LIKE ?", "%"+search+"%")
	}
	if categoryID != "" {
		query = query.Where("category_id = ?", categoryID)
	}

	var subcategories []models.Subcategory
	if err := query.Order("sort_order, name").Find(&subcategories).Error; err != nil {
		return serverError(c, "Failed to get subcategories")
	}

	return c.JSON(fiber.Map{
		"subcategories":   subcategories,
		"search":          search,
		"category_filter": categoryID,
		"navigation":      Sidebar(c.Route().Name),
	})
}

func subcategoryCreateForm(c *fiber.Ctx) error {
	var categories []models.Category
	if err := db.DB.Order("sort_order, name").Find(&categories).Error; err != nil {
		return serverError(c, "Failed to get categories")
	}
	return c.JSON(fiber.Map{
		"action":     "create",
		"categories": categories,
		"navigation": Sidebar(c.Route().Name),
	})
}

func subcategoryCreate(c *fiber.Ctx) error {
	created, err := saveNewSubcategory(c)
	if !created {
		return err
	}
	return redirectWithNotice(c, "/subcategories/", "Subcategory created successfully")
}

// saveNewSubcategory validates and persists one subcategory; shared with
// the unified management page dispatch. created reports whether the record
// was stored; when false the error response has already been written and
// the caller must not redirect.
func saveNewSubcategory(c *fiber.Ctx) (created bool, _ error) {
	draft, errs := forms.ParseSubcategory(c.FormValue, db.DB, true)
	if errs != nil {
		return false, validationFailed(c, errs)
	}

	imagePath := ""
	if file := formFile(c, "image"); file != nil {
		var err error
		if imagePath, err = blobs.Save(file, storage.PrefixSubcategories); err != nil {
			return false, validationFailed(c, forms.FieldErrors{"image": err.Error()})
		}
	}

	subcategory := models.Subcategory{
		CategoryID:  draft.CategoryID,
		Name:        draft.Name,
		Slug:        draft.Slug,
		SortOrder:   draft.SortOrder,
		Image:       imagePath,
		Description: draft.Description,
		IsActive:    draft.IsActive,
	}
	if subcategory.Slug == "" {
		subcategory.Slug = slugutil.Unique(subcategory.Name, slugTaken(db.DB, &models.Subcategory{}, 0))
	}

	if err := db.DB.Create(&subcategory).Error; err != nil {
		if imagePath != "" {
			blobs.Delete(imagePath)
		}
		if isConflict(err) {
			return false, validationFailed(c, forms.FieldErrors{"slug": "Slug is already in use"})
		}
		return false, serverError(c, "Failed to create subcategory")
	}
	return true, nil
}

func subcategoryEditForm(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return notFound(c, "Subcategory")
	}

	var subcategory models.Subcategory
	if err := db.DB.Preload("Category").First(&subcategory, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound(c, "Subcategory")
		}
		return serverError(c, "Failed to get subcategory")
	}

	var categories []models.Category
	if err := db.DB.Order("sort_order, name").Find(&categories).Error; err != nil {
		return serverError(c, "Failed to get categories")
	}

	return c.JSON(fiber.Map{
		"action":      "edit",
		"subcategory": subcategory,
		"categories":  categories,
		"navigation":  Sidebar(c.Route().Name),
	})
}

func subcategoryEdit(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return notFound(c, "Subcategory")
	}

	var subcategory models.Subcategory
	if err := db.DB.First(&subcategory, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound(c, "Subcategory")
		}
		return serverError(c, "Failed to get subcategory")
	}

	draft, errs := forms.ParseSubcategory(c.FormValue, db.DB, subcategory.IsActive)
	if errs != nil {
		return validationFailed(c, errs)
	}

	newImage := ""
	if file := formFile(c, "image"); file != nil {
		if newImage, err = blobs.Save(file, storage.PrefixSubcategories); err != nil {
			return validationFailed(c, forms.FieldErrors{"image": err.Error()})
		}
	}

	oldImage := subcategory.Image
	subcategory.CategoryID = draft.CategoryID
	subcategory.Name = draft.Name
	subcategory.SortOrder = draft.SortOrder
	subcategory.Description = draft.Description
	subcategory.IsActive = draft.IsActive
	if newImage != "" {
		subcategory.Image = newImage
	}
	if draft.Slug != "" {
		subcategory.Slug = draft.Slug
	} else if subcategory.Slug == "" {
		subcategory.Slug = slugutil.Unique(subcategory.Name, slugTaken(db.DB, &models.Subcategory{}, subcategory.ID))
	}

	if err := db.DB.Save(&subcategory).Error; err != nil {
		if newImage != "" {
			blobs.Delete(newImage)
		}
		if isConflict(err) {
			return validationFailed(c, forms.FieldErrors{"slug": "Slug is already in use"})
		}
		return serverError(c, "Failed to update subcategory")
	}

	if newImage != "" && oldImage != "" {
		blobs.Delete(oldImage)
	}
	return redirectWithNotice(c, "/subcategories/", "Subcategory updated successfully")
}

func subcategoryDeleteConfirm(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return notFound(c, "Subcategory")
	}

	var subcategory models.Subcategory
	if err := db.DB.Preload("Category").First(&subcategory, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound(c, "Subcategory")
		}
		return serverError(c, "Failed to get subcategory")
	}

	var productCount int64
	db.DB.Model(&models.Product{}).Where("subcategory_id = ?", id).Count(&productCount)

	return c.JSON(fiber.Map{
		"subcategory":   subcategory,
		"product_count": productCount,
		"navigation":    Sidebar(c.Route().Name),
	})
}

// subcategoryDelete detaches the subcategory's products and removes it;
// the products keep their category.
func subcategoryDelete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return notFound(c, "Subcategory")
	}

	var subcategory models.Subcategory
	if err := db.DB.First(&subcategory, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound(c, "Subcategory")
		}
		return serverError(c, "Failed to get subcategory")
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Product{}).Where("subcategory_id = ?", id).
			Update("subcategory_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&subcategory).Error
	})
	if err != nil {
		return serverError(c, "Failed to delete subcategory")
	}

	if subcategory.Image != "" {
		blobs.Delete(subcategory.Image)
	}
	return redirectWithNotice(c, "/subcategories/", "Subcategory deleted successfully")
}
