package routes

import (
	"errors"

	"shopadmin/db"
	"shopadmin/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Read-only storefront projections. No write operations are exposed here.

type apiSubcategory struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	SortOrder int    `json:"sort_order"`
}

type apiCategory struct {
	ID            uint             `json:"id"`
	Name          string           `json:"name"`
	Slug          string           `json:"slug"`
	Image         string           `json:"image"`
	SortOrder     int              `json:"sort_order"`
	Subcategories []apiSubcategory `json:"subcategories"`
}

type apiProductImage struct {
	ID        uint   `json:"id"`
	Image     string `json:"image"`
	SortOrder int    `json:"sort_order"`
}

type apiProduct struct {
	ID              uint              `json:"id"`
	Slug            string            `json:"slug"`
	Name            string            `json:"name"`
	Image           string            `json:"image"`
	Description     string            `json:"description"`
	Images          []apiProductImage `json:"images"`
	CategoryID      uint              `json:"category"`
	CategoryName    string            `json:"category_name"`
	SubcategoryID   *uint             `json:"subcategory"`
	SubcategoryName *string           `json:"subcategory_name"`
}

type apiBanner struct {
	ID    uint   `json:"id"`
	Image string `json:"image"`
	Order int    `json:"order"`
}

func projectCategory(category models.Category) apiCategory {
	out := apiCategory{
		ID:            category.ID,
		Name:          category.Name,
		Slug:          category.Slug,
		Image:         category.Image,
		SortOrder:     category.SortOrder,
		Subcategories: make([]apiSubcategory, 0, len(category.Subcategories)),
	}
	for _, sub := range category.Subcategories {
		out.Subcategories = append(out.Subcategories, apiSubcategory{
			ID:        sub.ID,
			Name:      sub.Name,
			Slug:      sub.Slug,
			SortOrder: sub.SortOrder,
		})
	}
	return out
}

func projectProduct(product models.Product) apiProduct {
	out := apiProduct{
		ID:           product.ID,
		Slug:         product.Slug,
		Name:         product.Name,
		Image:        product.MainImage(),
		Description:  product.Description,
		Images:       make([]apiProductImage, 0, len(product.Images)),
		CategoryID:   product.CategoryID,
		CategoryName: product.Category.Name,
	}
	for _, image := range product.Images {
		out.Images = append(out.Images, apiProductImage{
			ID:        image.ID,
			Image:     image.Image,
			SortOrder: image.SortOrder,
		})
	}
	if product.SubcategoryID != nil && product.Subcategory != nil {
		out.SubcategoryID = product.SubcategoryID
		name := product.Subcategory.Name
		out.SubcategoryName = &name
	}
	return out
}

func apiCategoryList(c *fiber.Ctx) error {
	var categories []models.Category
	if err := db.DB.Preload("Subcategories", func(gdb *gorm.DB) *gorm.DB {
		return gdb.Order("sort_order, name")
	}).Order("sort_order, name").Find(&categories).Error; err != nil {
		return serverError(c, "Failed to get categories")
	}

	out := make([]apiCategory, 0, len(categories))
	for _, category := range categories {
		out = append(out, projectCategory(category))
	}
	return c.JSON(out)
}

func apiCategoryDetail(c *fiber.Ctx) error {
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

	return c.JSON(projectCategory(category))
}

func apiProductList(c *fiber.Ctx) error {
	query := db.DB.Preload("Category").Preload("Subcategory").
		Preload("Images", func(gdb *gorm.DB) *gorm.DB {
			return gdb.Order("sort_order")
		})

	if categorySlug := c.Query("category"); categorySlug != "" {
		query = query.Joins("JOIN categories ON categories.id = products.category_id").
			Where("categories.slug = ?", categorySlug)
	}

	var products []models.Product
	if err := query.Order("products.created_at DESC").Find(&products).Error; err != nil {
		return serverError(c, "Failed to get products")
	}

	out := make([]apiProduct, 0, len(products))
	for _, product := range products {
		out = append(out, projectProduct(product))
	}
	return c.JSON(out)
}

func apiProductDetail(c *fiber.Ctx) error {
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

	return c.JSON(projectProduct(product))
}

func apiBannerList(c *fiber.Ctx) error {
	var banners []models.Banner
	if err := db.DB.Order("`order`, id").Find(&banners).Error; err != nil {
		return serverError(c, "Failed to get banners")
	}

	out := make([]apiBanner, 0, len(banners))
	for _, banner := range banners {
		out = append(out, apiBanner{ID: banner.ID, Image: banner.Image, Order: banner.Order})
	}
	return c.JSON(out)
}
