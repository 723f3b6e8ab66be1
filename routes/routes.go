package routes

import (
	"errors"
	"mime/multipart"
	"net/url"
	"strconv"
	"strings"

	"shopadmin/forms"
	"shopadmin/middleware"
	"shopadmin/metrics"
	"shopadmin/storage"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

var blobs *storage.Store

func SetupRoutes(app *fiber.App, store *storage.Store) {
	blobs = store

	app.Get("/metrics", metrics.Handler())

	staff := middleware.RequireStaff()

	app.Get("/", staff, dashboard).Name("dashboard")

	// Unified category/subcategory management page
	categories := app.Group("/categories", staff)
	categories.Get("/", categoryList).Name("category_list")
	categories.Post("/", categoryManage).Name("category_manage")
	categories.Get("/create", categoryCreateForm).Name("category_create")
	categories.Post("/create", categoryCreate)
	categories.Get("/:id/edit", categoryEditForm).Name("category_edit")
	categories.Post("/:id/edit", categoryEdit)
	categories.Get("/:id/delete", categoryDeleteConfirm).Name("category_delete")
	categories.Post("/:id/delete", categoryDelete)

	subcategories := app.Group("/subcategories", staff)
	subcategories.Get("/", subcategoryList).Name("subcategory_list")
	subcategories.Get("/create", subcategoryCreateForm).Name("subcategory_create")
	subcategories.Post("/create", subcategoryCreate)
	subcategories.Get("/:id/edit", subcategoryEditForm).Name("subcategory_edit")
	subcategories.Post("/:id/edit", subcategoryEdit)
	subcategories.Get("/:id/delete", subcategoryDeleteConfirm).Name("subcategory_delete")
	subcategories.Post("/:id/delete", subcategoryDelete)

	products := app.Group("/products", staff)
	products.Get("/", productList).Name("product_list")
	products.Get("/create", productCreateForm).Name("product_create")
	products.Post("/create", productCreate)
	products.Get("/:id/edit", productEditForm).Name("product_edit")
	products.Post("/:id/edit", productEdit)
	products.Get("/:id/delete", productDeleteConfirm).Name("product_delete")
	products.Post("/:id/delete", productDelete)

	productImages := app.Group("/product-images", staff)
	productImages.Post("/:id/delete", productImageDelete).Name("product_image_delete")
	productImages.Post("/:id/set-main", productImageSetMain).Name("product_image_set_main")

	landing := app.Group("/landing-contents", staff)
	landing.Get("/", landingList).Name("landing_content_list")
	landing.Get("/create", landingCreateForm).Name("landing_content_create")
	landing.Post("/create", landingCreate)
	landing.Get("/:id/edit", landingEditForm).Name("landing_content_edit")
	landing.Post("/:id/edit", landingEdit)
	landing.Get("/:id/delete", landingDeleteConfirm).Name("landing_content_delete")
	landing.Post("/:id/delete", landingDelete)

	banners := app.Group("/banners", staff)
	banners.Get("/", bannerList).Name("banner_list")
	banners.Get("/create", bannerCreateForm).Name("banner_create")
	banners.Post("/create", bannerCreate)
	banners.Get("/:id/edit", bannerEditForm).Name("banner_edit")
	banners.Post("/:id/edit", bannerEdit)
	banners.Get("/:id/delete", bannerDeleteConfirm).Name("banner_delete")
	banners.Post("/:id/delete", bannerDelete)

	// Read-only storefront API
	api := app.Group("/api")
	api.Get("/categories/", apiCategoryList)
	api.Get("/categories/:id", apiCategoryDetail)
	api.Get("/products/", apiProductList)
	api.Get("/products/:id", apiProductDetail)
	api.Get("/banners/", apiBannerList)
}

func parseID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(id), nil
}

func notFound(c *fiber.Ctx, what string) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"error": what + " not found",
	})
}

func serverError(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": message,
	})
}

// validationFailed re-renders the form as field-level errors, no redirect.
func validationFailed(c *fiber.Ctx, errs forms.FieldErrors) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"errors": errs,
	})
}

// redirectWithNotice sends the post-save redirect carrying the success
// notification. An optional fragment anchors the target tab.
func redirectWithNotice(c *fiber.Ctx, location, notice string) error {
	fragment := ""
	if i := strings.IndexByte(location, '#'); i >= 0 {
		location, fragment = location[:i], location[i:]
	}
	sep := "?"
	if strings.Contains(location, "?") {
		sep = "&"
	}
	return c.Redirect(location+sep+"notice="+url.QueryEscape(notice)+fragment, fiber.StatusSeeOther)
}

// formValues collects every submitted value for a repeated field, for both
// multipart and urlencoded bodies.
func formValues(c *fiber.Ctx, key string) []string {
	if form, err := c.MultipartForm(); err == nil && form != nil {
		if vals, ok := form.Value[key]; ok {
			return vals
		}
	}
	var vals []string
	for _, v := range c.Request().PostArgs().PeekMulti(key) {
		vals = append(vals, string(v))
	}
	return vals
}

func formFiles(c *fiber.Ctx, key string) []*multipart.FileHeader {
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return nil
	}
	return form.File[key]
}

func formFile(c *fiber.Ctx, key string) *multipart.FileHeader {
	files := formFiles(c, key)
	if len(files) == 0 {
		return nil
	}
	return files[0]
}

// slugTaken reports whether a slug is in use within the model's table,
// excluding the record being edited.
func slugTaken(tx *gorm.DB, model interface{}, excludeID uint) func(string) bool {
	return func(s string) bool {
		var count int64
		q := tx.Model(model).Where("slug = ?", s)
		if excludeID != 0 {
			q = q.Where("id != ?", excludeID)
		}
		q.Count(&count)
		return count > 0
	}
}

// isConflict detects a unique-constraint violation from the store.
func isConflict(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func idList(values []string) []uint {
	var ids []uint
	for _, v := range values {
		if n, err := strconv.ParseUint(strings.TrimSpace(v), 10, 64); err == nil && n > 0 {
			ids = append(ids, uint(n))
		}
	}
	return ids
}
