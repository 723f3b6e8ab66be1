package routes

import (
	"errors"
	"strconv"
	"strings"

	"shopadmin/db"
	"shopadmin/forms"
	"shopadmin/models"
	"shopadmin/slugutil"
	"shopadmin/storage"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type categoryRow struct {
	models.Category
	SubcategoryCount int `json:"subcategory_count"`
}

// categoryList serves the unified category/subcategory management page:
// both filtered lists and the tab echo for the two create forms.
func categoryList(c *fiber.Ctx) error {
	categorySearch := c.Query("category_search")
	subcategorySearch := c.Query("subcategory_search")

	query := db.DB.Preload("Subcategories", func(gdb *gorm.DB) *gorm.DB {
		return gdb.Order("sort_order, name")
	})
	if categorySearch != "" {
		query = query.Where("name LIKE ?", "%"+categorySearch+"%")
	}
	var categories []models.Category
	if err := query.Order("sort_order, name").Find(&categories).Error; err != nil {
		return serverError(c, "Failed to get categories")
	}

	rows := make([]categoryRow, 0, len(categories))
	for _, category := range categories {
		rows = append(rows, categoryRow{Category: category, SubcategoryCount: len(category.Subcategories)})
	}

	subQuery := db.DB.Preload("Category")
	if subcategorySearch != "" {
		subQuery = subQuery.Where("name LIKE ?", "%"+subcategorySearch+"%")
	}
	var subcategories []models.Subcategory
	if err := subQuery.Order("sort_order, name").Find(&subcategories).Error; err != nil {
		return serverError(c, "Failed to get subcategories")
	}

	return c.JSON(fiber.Map{
		"categories":         rows,
		"subcategories":      subcategories,
		"category_search":    categorySearch,
		"subcategory_search": subcategorySearch,
		"tab":                c.Query("tab", "category"),
		"navigation":         Sidebar(c.Route().Name),
	})
}

// categoryManage dispatches the unified page's two create forms on the
// form_type discriminator and redirects back to the matching tab.
func categoryManage(c *fiber.Ctx) error {
	switch formType := c.FormValue("form_type"); formType {
	case "category":
		created, err := saveNewCategory(c, nil)
		if !created {
			return err
		}
		return redirectWithNotice(c, "/categories/?tab=category#category", "Category created successfully")
	case "subcategory":
		created, err := saveNewSubcategory(c)
		if !created {
			return err
		}
		return redirectWithNotice(c, "/categories/?tab=subcategory#subcategory", "Subcategory created successfully")
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unknown form_type",
		})
	}
}

func categoryCreateForm(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"action":     "create",
		"navigation": Sidebar(c.Route().Name),
	})
}

func categoryCreate(c *fiber.Ctx) error {
	created, err := saveNewCategory(c, subcategoryRows(c))
	if !created {
		return err
	}
	return redirectWithNotice(c, "/categories/", "Category created successfully")
}

// subcategoryRow is one inline row submitted alongside the category form.
type subcategoryInline struct {
	Name      string
	SortOrder int
}

// subcategoryRows reads the inline batch; blank rows are skipped the way
// untouched extra formset rows are.
func subcategoryRows(c *fiber.Ctx) []subcategoryInline {
	names := formValues(c, "sub_name")
	orders := formValues(c, "sub_sort_order")

	var rows []subcategoryInline
	for i, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		row := subcategoryInline{Name: name}
		if i < len(orders) {
			if n, err := strconv.Atoi(strings.TrimSpace(orders[i])); err == nil {
				row.SortOrder = n
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// saveNewCategory validates and persists a category together with its
// inline subcategory batch in one unit of work. created reports whether the
// record was stored; when false the error response has already been
// written and the caller must not redirect.
func saveNewCategory(c *fiber.Ctx, inline []subcategoryInline) (created bool, _ error) {
	draft, errs := forms.ParseCategory(c.FormValue, true)
	if errs != nil {
		return false, validationFailed(c, errs)
	}

	imagePath := ""
	if file := formFile(c, "image"); file != nil {
		var err error
		if imagePath, err = blobs.Save(file, storage.PrefixCategories); err != nil {
			return false, validationFailed(c, forms.FieldErrors{"image": err.Error()})
		}
	}

	category := models.Category{
		Name:        draft.Name,
		Slug:        draft.Slug,
		SortOrder:   draft.SortOrder,
		Image:       imagePath,
		Description: draft.Description,
		IsActive:    draft.IsActive,
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if category.Slug == "" {
			category.Slug = slugutil.Unique(category.Name, slugTaken(tx, &models.Category{}, 0))
		}
		if err := tx.Create(&category).Error; err != nil {
			return err
		}
		for _, row := range inline {
			subcategory := models.Subcategory{
				CategoryID: category.ID,
				Name:       row.Name,
				Slug:       slugutil.Unique(row.Name, slugTaken(tx, &models.Subcategory{}, 0)),
				SortOrder:  row.SortOrder,
				IsActive:   true,
			}
			if err := tx.Create(&subcategory).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if imagePath != "" {
			blobs.Delete(imagePath)
		}
		if isConflict(err) {
			return false, validationFailed(c, forms.FieldErrors{"slug": "Slug is already in use"})
		}
		return false, serverError(c, "Failed to create category")
	}
	return true, nil
}

func categoryEditForm(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return notFound(c, "Category")
	}

	var category models.Category
	if err := db.DB.Preload("Subcategories", func(gdb *gorm.DB) *gorm.DB {
		return gdb.Order("sort_order, name")
	}).First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound(c, "Category")
		}
		return serverError(c, "Failed to get category")
	}

	return c.JSON(fiber.Map{
		"action":     "edit",
		"category":   category,
		"navigation": Sidebar(c.Route().Name),
	})
}

func categoryEdit(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return notFound(c, "Category")
	}

	var category models.Category
	if err := db.DB.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound(c, "Category")
		}
		return serverError(c, "Failed to get category")
	}

	draft, errs := forms.ParseCategory(c.FormValue, category.IsActive)
	if errs != nil {
		return validationFailed(c, errs)
	}

	newImage := ""
	if file := formFile(c, "image"); file != nil {
		if newImage, err = blobs.Save(file, storage.PrefixCategories); err != nil {
			return validationFailed(c, forms.FieldErrors{"image": err.Error()})
		}
	}

	oldImage := category.Image
	inline := subcategoryRows(c)
	deleteIDs := idList(formValues(c, "delete_subcategories"))

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		category.Name = draft.Name
		category.SortOrder = draft.SortOrder
		category.Description = draft.Description
		category.IsActive = draft.IsActive
		if newImage != "" {
			category.Image = newImage
		}
		if draft.Slug != "" {
			category.Slug = draft.Slug
		} else if category.Slug == "" {
			category.Slug = slugutil.Unique(category.Name, slugTaken(tx, &models.Category{}, category.ID))
		}
		if err := tx.Save(&category).Error; err != nil {
			return err
		}

		if len(deleteIDs) > 0 {
			// Only subcategories of this category are removed; foreign or
			// stale ids must not touch anything
			var ownedIDs []uint
			if err := tx.Model(&models.Subcategory{}).
				Where("category_id = ? AND id IN ?", category.ID, deleteIDs).
				Pluck("id", &ownedIDs).Error; err != nil {
				return err
			}
			if len(ownedIDs) > 0 {
				// Removed subcategories release their products back to the
				// parent category only
				if err := tx.Model(&models.Product{}).
					Where("subcategory_id IN ?", ownedIDs).
					Update("subcategory_id", nil).Error; err != nil {
					return err
				}
				if err := tx.Where("id IN ?", ownedIDs).
					Delete(&models.Subcategory{}).Error; err != nil {
					return err
				}
			}
		}

		for _, row := range inline {
			subcategory := models.Subcategory{
				CategoryID: category.ID,
				Name:       row.Name,
				Slug:       slugutil.Unique(row.Name, slugTaken(tx, &models.Subcategory{}, 0)),
				SortOrder:  row.SortOrder,
				IsActive:   true,
			}
			if err := tx.Create(&subcategory).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if newImage != "" {
			blobs.Delete(newImage)
		}
		if isConflict(err) {
			return validationFailed(c, forms.FieldErrors{"slug": "Slug is already in use"})
		}
		return serverError(c, "Failed to update category")
	}

	if newImage != "" && oldImage != "" {
		blobs.Delete(oldImage)
	}
	return redirectWithNotice(c, "/categories/", "Category updated successfully")
}

func categoryDeleteConfirm(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return notFound(c, "Category")
	}

	var category models.Category
	if err := db.DB.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound(c, "Category")
		}
		return serverError(c, "Failed to get category")
	}

	var subcategoryCount, productCount int64
	db.DB.Model(&models.Subcategory{}).Where("category_id = ?", id).Count(&subcategoryCount)
	db.DB.Model(&models.Product{}).Where("category_id = ?", id).Count(&productCount)

	return c.JSON(fiber.Map{
		"category":          category,
		"subcategory_count": subcategoryCount,
		"product_count":     productCount,
		"navigation":        Sidebar(c.Route().Name),
	})
}

// categoryDelete removes the category and everything beneath it: its
// subcategories, its products and their gallery images.
func categoryDelete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return notFound(c, "Category")
	}

	var category models.Category
	if err := db.DB.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound(c, "Category")
		}
		return serverError(c, "Failed to get category")
	}

	var orphanBlobs []string
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		var productIDs []uint
		if err := tx.Model(&models.Product{}).Where("category_id = ?", id).
			Pluck("id", &productIDs).Error; err != nil {
			return err
		}

		if len(productIDs) > 0 {
			var imagePaths []string
			if err := tx.Model(&models.ProductImage{}).Where("product_id IN ?", productIDs).
				Pluck("image", &imagePaths).Error; err != nil {
				return err
			}
			orphanBlobs = append(orphanBlobs, imagePaths...)
			if err := tx.Where("product_id IN ?", productIDs).Delete(&models.ProductImage{}).Error; err != nil {
				return err
			}
			if err := tx.Where("category_id = ?", id).Delete(&models.Product{}).Error; err != nil {
				return err
			}
		}

		var subcategoryImages []string
		if err := tx.Model(&models.Subcategory{}).Where("category_id = ? AND image != ''", id).
			Pluck("image", &subcategoryImages).Error; err != nil {
			return err
		}
		orphanBlobs = append(orphanBlobs, subcategoryImages...)
		if err := tx.Where("category_id = ?", id).Delete(&models.Subcategory{}).Error; err != nil {
			return err
		}

		return tx.Delete(&category).Error
	})
	if err != nil {
		return serverError(c, "Failed to delete category")
	}

	if category.Image != "" {
		blobs.Delete(category.Image)
	}
	for _, path := range orphanBlobs {
		blobs.Delete(path)
	}
	return redirectWithNotice(c, "/categories/", "Category deleted successfully")
}
