package routes

import (
	"errors"
	"fmt"
	"strings"

	"shopadmin/db"
	"shopadmin/forms"
	"shopadmin/models"
	"shopadmin/slugutil"
	"shopadmin/storage"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func productList(c *fiber.Ctx) error {
	search := c.Query("search")
	categorySlug := c.Query("category")
	subcategorySlug := c.Query("subcategory")

	query := db.DB.Preload("Category").Preload("Subcategory").
		Preload("Images", func(gdb *gorm.DB) *gorm.DB {
			return gdb.Order("sort_order")
		})

	if search != "" {
		query = query.Where("products.name LIKE ? OR products.description LIKE ?",
			"%"+search+"%", "%"+search+"%")
	}
	if categorySlug != "" {
		query = query.Joins("JOIN categories ON categories.id = products.category_id").
			Where("categories.slug = ?", categorySlug)
	}
	if subcategorySlug != "" {
		query = query.Joins("JOIN subcategories ON subcategories.id = products.subcategory_id").
			Where("subcategories.slug = ?", subcategorySlug)
	}

	var products []models.Product
	if err := query.Order("products.created_at DESC").Find(&products).Error; err != nil {
		return serverError(c, "Failed to get products")
	}

	var categories []models.Category
	if err := db.DB.Order("sort_order, name").Find(&categories).Error; err != nil {
		return serverError(c, "Failed to get categories")
	}
	var subcategories []models.Subcategory
	if err := db.DB.Preload("Category").Order("sort_order, name").Find(&subcategories).Error; err != nil {
		return serverError(c, "Failed to get subcategories")
	}

	return c.JSON(fiber.Map{
		"products":           products,
		"categories":         categories,
		"subcategories":      subcategories,
		"search":             search,
		"category_filter":    categorySlug,
		"subcategory_filter": subcategorySlug,
		"navigation":         Sidebar(c.Route().Name),
	})
}

func productCreateForm(c *fiber.Ctx) error {
	categoryID := uint(c.QueryInt("category", 0))
	categories, subcategories, err := forms.ProductFormChoices(db.DB, categoryID)
	if err != nil {
		return serverError(c, "Failed to load form choices")
	}
	return c.JSON(fiber.Map{
		"action":        "create",
		"categories":    categories,
		"subcategories": subcategories,
		"navigation":    Sidebar(c.Route().Name),
	})
}

func productCreate(c *fiber.Ctx) error {
	draft, errs := forms.ParseProduct(c.FormValue, db.DB, true)
	if errs != nil {
		return validationFailed(c, errs)
	}

	gallery := formFiles(c, "additional_images")
	if fileErrs := forms.ValidateImages(gallery); len(fileErrs) > 0 {
		return validationFailed(c, forms.FieldErrors{
			"additional_images": strings.Join(fileErrs, "; "),
		})
	}

	product := models.Product{
		CategoryID:     draft.CategoryID,
		SubcategoryID:  draft.SubcategoryID,
		Name:           draft.Name,
		Slug:           draft.Slug,
		Description:    draft.Description,
		Specifications: draft.Specifications,
		Price:          draft.Price,
		SalePrice:      draft.SalePrice,
		StockQuantity:  draft.StockQuantity,
		IsFeatured:     draft.IsFeatured,
		IsActive:       draft.IsActive,
		SortOrder:      draft.SortOrder,
	}

	// All files passed validation, store the bytes up front
	var savedPaths []string
	for _, file := range gallery {
		path, err := blobs.Save(file, storage.PrefixGallery)
		if err != nil {
			for _, saved := range savedPaths {
				blobs.Delete(saved)
			}
			return serverError(c, "Failed to save image")
		}
		savedPaths = append(savedPaths, path)
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if product.Slug == "" {
			product.Slug = slugutil.Unique(product.Name, slugTaken(tx, &models.Product{}, 0))
		}
		if err := tx.Create(&product).Error; err != nil {
			return err
		}
		return appendGallery(tx, product.ID, savedPaths)
	})
	if err != nil {
		for _, saved := range savedPaths {
			blobs.Delete(saved)
		}
		if isConflict(err) {
			return validationFailed(c, forms.FieldErrors{"slug": "Slug is already in use"})
		}
		return serverError(c, "Failed to create product")
	}

	return redirectWithNotice(c, "/products/", "Product created successfully")
}

// appendGallery inserts image records after the product's current highest
// sort order.
func appendGallery(tx *gorm.DB, productID uint, paths []string) error {
	if len(paths) == 0 {
		return nil
	}
	var next int
	row := tx.Model(&models.ProductImage{}).Where("product_id = ?", productID).
		Select("COALESCE(MAX(sort_order) + 1, 0)").Row()
	if err := row.Scan(&next); err != nil {
		return err
	}
	for offset, path := range paths {
		image := models.ProductImage{
			ProductID: productID,
			Image:     path,
			SortOrder: next + offset,
		}
		if err := tx.Create(&image).Error; err != nil {
			return err
		}
	}
	return nil
}

func productEditForm(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return notFound(c, "Product")
	}

	var product models.Product
	if err := db.DB.Preload("Category").Preload("Subcategory").
		Preload("Images", func(gdb *gorm.DB) *gorm.DB {
			return gdb.Order("sort_order")
		}).First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound(c, "Product")
		}
		return serverError(c, "Failed to get product")
	}

	// Scope subcategory choices to the product's own category
	categories, subcategories, err := forms.ProductFormChoices(db.DB, product.CategoryID)
	if err != nil {
		return serverError(c, "Failed to load form choices")
	}

	return c.JSON(fiber.Map{
		"action":        "edit",
		"product":       product,
		"gallery":       product.Images,
		"categories":    categories,
		"subcategories": subcategories,
		"navigation":    Sidebar(c.Route().Name),
	})
}

func productEdit(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return notFound(c, "Product")
	}

	var product models.Product
	if err := db.DB.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound(c, "Product")
		}
		return serverError(c, "Failed to get product")
	}

	draft, errs := forms.ParseProduct(c.FormValue, db.DB, product.IsActive)
	if errs != nil {
		return validationFailed(c, errs)
	}

	gallery := formFiles(c, "additional_images")
	if fileErrs := forms.ValidateImages(gallery); len(fileErrs) > 0 {
		return validationFailed(c, forms.FieldErrors{
			"additional_images": strings.Join(fileErrs, "; "),
		})
	}

	var savedPaths []string
	for _, file := range gallery {
		path, err := blobs.Save(file, storage.PrefixGallery)
		if err != nil {
			for _, saved := range savedPaths {
				blobs.Delete(saved)
			}
			return serverError(c, "Failed to save image")
		}
		savedPaths = append(savedPaths, path)
	}

	deleteIDs := idList(formValues(c, "delete_images"))
	var removedBlobs []string

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		product.CategoryID = draft.CategoryID
		product.SubcategoryID = draft.SubcategoryID
		product.Name = draft.Name
		product.Description = draft.Description
		product.Specifications = draft.Specifications
		product.Price = draft.Price
		product.SalePrice = draft.SalePrice
		product.StockQuantity = draft.StockQuantity
		product.IsFeatured = draft.IsFeatured
		product.IsActive = draft.IsActive
		product.SortOrder = draft.SortOrder
		if draft.Slug != "" {
			product.Slug = draft.Slug
		} else if product.Slug == "" {
			product.Slug = slugutil.Unique(product.Name, slugTaken(tx, &models.Product{}, product.ID))
		}
		// SubcategoryID may go back to nil, Save writes all fields
		if err := tx.Save(&product).Error; err != nil {
			return err
		}

		if len(deleteIDs) > 0 {
			if err := tx.Model(&models.ProductImage{}).
				Where("product_id = ? AND id IN ?", product.ID, deleteIDs).
				Pluck("image", &removedBlobs).Error; err != nil {
				return err
			}
			if err := tx.Where("product_id = ? AND id IN ?", product.ID, deleteIDs).
				Delete(&models.ProductImage{}).Error; err != nil {
				return err
			}
		}

		return appendGallery(tx, product.ID, savedPaths)
	})
	if err != nil {
		for _, saved := range savedPaths {
			blobs.Delete(saved)
		}
		if isConflict(err) {
			return validationFailed(c, forms.FieldErrors{"slug": "Slug is already in use"})
		}
		return serverError(c, "Failed to update product")
	}

	for _, path := range removedBlobs {
		blobs.Delete(path)
	}
	return redirectWithNotice(c, "/products/", "Product updated successfully")
}

func productDeleteConfirm(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return notFound(c, "Product")
	}

	var product models.Product
	if err := db.DB.Preload("Category").Preload("Subcategory").
		Preload("Images").First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound(c, "Product")
		}
		return serverError(c, "Failed to get product")
	}

	return c.JSON(fiber.Map{
		"product":     product,
		"image_count": len(product.Images),
		"navigation":  Sidebar(c.Route().Name),
	})
}

func productDelete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return notFound(c, "Product")
	}

	var product models.Product
	if err := db.DB.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound(c, "Product")
		}
		return serverError(c, "Failed to get product")
	}

	var imagePaths []string
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.ProductImage{}).Where("product_id = ?", id).
			Pluck("image", &imagePaths).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", id).Delete(&models.ProductImage{}).Error; err != nil {
			return err
		}
		return tx.Delete(&product).Error
	})
	if err != nil {
		return serverError(c, "Failed to delete product")
	}

	for _, path := range imagePaths {
		blobs.Delete(path)
	}
	return redirectWithNotice(c, "/products/", "Product deleted successfully")
}

func productImageDelete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return notFound(c, "Product image")
	}

	var image models.ProductImage
	if err := db.DB.First(&image, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound(c, "Product image")
		}
		return serverError(c, "Failed to get product image")
	}

	if err := db.DB.Delete(&image).Error; err != nil {
		return serverError(c, "Failed to delete product image")
	}
	blobs.Delete(image.Image)

	return redirectWithNotice(c, fmt.Sprintf("/products/%d/edit", image.ProductID), "Image deleted successfully")
}

// productImageSetMain flags one gallery image as main and clears the flag
// on its siblings in the same transaction.
func productImageSetMain(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return notFound(c, "Product image")
	}

	var image models.ProductImage
	if err := db.DB.First(&image, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound(c, "Product image")
		}
		return serverError(c, "Failed to get product image")
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.ProductImage{}).
			Where("product_id = ? AND id != ?", image.ProductID, image.ID).
			Update("is_main", false).Error; err != nil {
			return err
		}
		return tx.Model(&image).Update("is_main", true).Error
	})
	if err != nil {
		return serverError(c, "Failed to set main image")
	}

	return redirectWithNotice(c, fmt.Sprintf("/products/%d/edit", image.ProductID), "Main image updated")
}
