package routes

import (
	"fmt"
	"net/url"
	"regexp"
	"testing"

	"shopadmin/db"
	"shopadmin/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func TestCategoryCreateDerivesSlug(t *testing.T) {
	app := setupApp(t)
	token := staffToken(t)

	resp := postForm(t, app, "/categories/create", token, url.Values{"name": {"Shoes"}})
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)

	var category models.Category
	require.NoError(t, db.DB.Where("name = ?", "Shoes").First(&category).Error)
	require.Equal(t, "shoes", category.Slug)
}

func TestCategoryCreateSlugCollisionGetsSuffix(t *testing.T) {
	app := setupApp(t)
	token := staffToken(t)

	resp := postForm(t, app, "/categories/create", token, url.Values{"name": {"Shoes"}})
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	resp = postForm(t, app, "/categories/create", token, url.Values{"name": {"Shoes"}})
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)

	var slugs []string
	require.NoError(t, db.DB.Model(&models.Category{}).Order("id").Pluck("slug", &slugs).Error)
	require.Equal(t, []string{"shoes", "shoes-1"}, slugs)
}

func TestCategoryCreateTransliteratesName(t *testing.T) {
	app := setupApp(t)
	token := staffToken(t)

	resp := postForm(t, app, "/categories/create", token, url.Values{"name": {"Цахилгаан Бараа"}})
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)

	var category models.Category
	require.NoError(t, db.DB.First(&category).Error)
	require.Regexp(t, regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`), category.Slug)
}

func TestCategoryCreateExplicitSlugConflict(t *testing.T) {
	app := setupApp(t)
	token := staffToken(t)

	require.NoError(t, db.DB.Create(&models.Category{Name: "First", Slug: "taken"}).Error)

	resp := postForm(t, app, "/categories/create", token, url.Values{
		"name": {"Second"},
		"slug": {"taken"},
	})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	require.Contains(t, body(t, resp), "slug")

	var count int64
	db.DB.Model(&models.Category{}).Count(&count)
	require.EqualValues(t, 1, count)
}

func TestCategoryCreateMissingNameFails(t *testing.T) {
	app := setupApp(t)
	token := staffToken(t)

	resp := postForm(t, app, "/categories/create", token, url.Values{"sort_order": {"1"}})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var count int64
	db.DB.Model(&models.Category{}).Count(&count)
	require.EqualValues(t, 0, count)
}

func TestCategoryCreateWithInlineSubcategories(t *testing.T) {
	app := setupApp(t)
	token := staffToken(t)

	resp := postForm(t, app, "/categories/create", token, url.Values{
		"name":           {"Electronics"},
		"sub_name":       {"Phones", "Laptops", ""},
		"sub_sort_order": {"1", "2", ""},
	})
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)

	var category models.Category
	require.NoError(t, db.DB.Preload("Subcategories").Where("name = ?", "Electronics").First(&category).Error)
	require.Len(t, category.Subcategories, 2)
	for _, sub := range category.Subcategories {
		require.Equal(t, category.ID, sub.CategoryID)
		require.NotEmpty(t, sub.Slug)
	}
}

func TestCategoryEditMissingIDIsNotFound(t *testing.T) {
	app := setupApp(t)
	token := staffToken(t)

	resp := getJSON(t, app, "/categories/9999/edit", token)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestCategoryDeleteConfirmThenDeleteCascades(t *testing.T) {
	app := setupApp(t)
	token := staffToken(t)

	category := models.Category{Name: "Gone", Slug: "gone"}
	require.NoError(t, db.DB.Create(&category).Error)
	sub := models.Subcategory{CategoryID: category.ID, Name: "Sub", Slug: "sub"}
	require.NoError(t, db.DB.Create(&sub).Error)
	product := models.Product{CategoryID: category.ID, SubcategoryID: &sub.ID, Name: "P", Slug: "p", Price: 10}
	require.NoError(t, db.DB.Create(&product).Error)
	image := models.ProductImage{ProductID: product.ID, Image: "/uploads/products/gallery/x.png"}
	require.NoError(t, db.DB.Create(&image).Error)

	// GET renders the confirmation, no side effect
	resp := getJSON(t, app, fmt.Sprintf("/categories/%d/delete", category.ID), token)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var count int64
	db.DB.Model(&models.Category{}).Count(&count)
	require.EqualValues(t, 1, count)

	resp = postForm(t, app, fmt.Sprintf("/categories/%d/delete", category.ID), token, url.Values{})
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)

	for model, name := range map[interface{}]string{
		&models.Category{}:     "category",
		&models.Subcategory{}:  "subcategory",
		&models.Product{}:      "product",
		&models.ProductImage{}: "product image",
	} {
		var n int64
		db.DB.Model(model).Count(&n)
		require.EqualValues(t, 0, n, "expected no %s left", name)
	}
}

func TestCategoryDeleteMissingIDIsNotFound(t *testing.T) {
	app := setupApp(t)
	token := staffToken(t)

	resp := getJSON(t, app, "/categories/42/delete", token)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestUnifiedManagePageDispatch(t *testing.T) {
	app := setupApp(t)
	token := staffToken(t)

	resp := postForm(t, app, "/categories/", token, url.Values{
		"form_type": {"category"},
		"name":      {"Tools"},
	})
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	location := resp.Header.Get("Location")
	require.Contains(t, location, "tab=category")
	require.Contains(t, location, "#category")

	var category models.Category
	require.NoError(t, db.DB.Where("name = ?", "Tools").First(&category).Error)

	resp = postForm(t, app, "/categories/", token, url.Values{
		"form_type": {"subcategory"},
		"name":      {"Drills"},
		"category":  {fmt.Sprint(category.ID)},
	})
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	require.Contains(t, resp.Header.Get("Location"), "tab=subcategory")

	var sub models.Subcategory
	require.NoError(t, db.DB.Where("name = ?", "Drills").First(&sub).Error)
	require.Equal(t, category.ID, sub.CategoryID)
}

func TestUnifiedManageRejectsInvalidInput(t *testing.T) {
	app := setupApp(t)
	token := staffToken(t)

	// Missing name must not create anything or redirect with a notice
	resp := postForm(t, app, "/categories/", token, url.Values{
		"form_type": {"category"},
	})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	require.Empty(t, resp.Header.Get("Location"))
	require.Contains(t, body(t, resp), "name")

	var categories int64
	db.DB.Model(&models.Category{}).Count(&categories)
	require.EqualValues(t, 0, categories)

	// Same for the subcategory branch with no parent category
	resp = postForm(t, app, "/categories/", token, url.Values{
		"form_type": {"subcategory"},
		"name":      {"Orphan"},
	})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	require.Empty(t, resp.Header.Get("Location"))

	var subcategories int64
	db.DB.Model(&models.Subcategory{}).Count(&subcategories)
	require.EqualValues(t, 0, subcategories)
}

func TestSubcategoryCreateMissingCategoryFails(t *testing.T) {
	app := setupApp(t)
	token := staffToken(t)

	resp := postForm(t, app, "/subcategories/create", token, url.Values{"name": {"Orphan"}})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	require.Empty(t, resp.Header.Get("Location"))

	var count int64
	db.DB.Model(&models.Subcategory{}).Count(&count)
	require.EqualValues(t, 0, count)
}

func TestCategoryEditDetachIgnoresForeignSubcategories(t *testing.T) {
	app := setupApp(t)
	token := staffToken(t)

	mine := models.Category{Name: "Mine", Slug: "mine"}
	other := models.Category{Name: "Other", Slug: "other"}
	require.NoError(t, db.DB.Create(&mine).Error)
	require.NoError(t, db.DB.Create(&other).Error)
	foreign := models.Subcategory{CategoryID: other.ID, Name: "Foreign", Slug: "foreign"}
	require.NoError(t, db.DB.Create(&foreign).Error)
	attached := models.Product{CategoryID: other.ID, SubcategoryID: &foreign.ID, Name: "P", Slug: "p", Price: 1}
	require.NoError(t, db.DB.Create(&attached).Error)

	resp := postForm(t, app, fmt.Sprintf("/categories/%d/edit", mine.ID), token, url.Values{
		"name":                 {"Mine"},
		"delete_subcategories": {fmt.Sprint(foreign.ID)},
	})
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)

	var keptSub models.Subcategory
	require.NoError(t, db.DB.First(&keptSub, foreign.ID).Error)
	var keptProduct models.Product
	require.NoError(t, db.DB.First(&keptProduct, attached.ID).Error)
	require.NotNil(t, keptProduct.SubcategoryID)
	require.Equal(t, foreign.ID, *keptProduct.SubcategoryID)
}

func TestCategoryEditDeletesOwnSubcategories(t *testing.T) {
	app := setupApp(t)
	token := staffToken(t)

	category := models.Category{Name: "Mine", Slug: "mine"}
	require.NoError(t, db.DB.Create(&category).Error)
	sub := models.Subcategory{CategoryID: category.ID, Name: "Old", Slug: "old"}
	require.NoError(t, db.DB.Create(&sub).Error)
	product := models.Product{CategoryID: category.ID, SubcategoryID: &sub.ID, Name: "P", Slug: "p", Price: 1}
	require.NoError(t, db.DB.Create(&product).Error)

	resp := postForm(t, app, fmt.Sprintf("/categories/%d/edit", category.ID), token, url.Values{
		"name":                 {"Mine"},
		"delete_subcategories": {fmt.Sprint(sub.ID)},
	})
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)

	var subCount int64
	db.DB.Model(&models.Subcategory{}).Count(&subCount)
	require.EqualValues(t, 0, subCount)

	var detached models.Product
	require.NoError(t, db.DB.First(&detached, product.ID).Error)
	require.Nil(t, detached.SubcategoryID)
}

func TestUnifiedManageUnknownFormType(t *testing.T) {
	app := setupApp(t)
	token := staffToken(t)

	resp := postForm(t, app, "/categories/", token, url.Values{
		"form_type": {"brand"},
		"name":      {"X"},
	})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestSubcategoryDeleteDetachesProducts(t *testing.T) {
	app := setupApp(t)
	token := staffToken(t)

	category := models.Category{Name: "Keep", Slug: "keep"}
	require.NoError(t, db.DB.Create(&category).Error)
	sub := models.Subcategory{CategoryID: category.ID, Name: "Old", Slug: "old"}
	require.NoError(t, db.DB.Create(&sub).Error)
	product := models.Product{CategoryID: category.ID, SubcategoryID: &sub.ID, Name: "P", Slug: "p", Price: 5}
	require.NoError(t, db.DB.Create(&product).Error)

	resp := postForm(t, app, fmt.Sprintf("/subcategories/%d/delete", sub.ID), token, url.Values{})
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)

	var reloaded models.Product
	require.NoError(t, db.DB.First(&reloaded, product.ID).Error)
	require.Nil(t, reloaded.SubcategoryID)
	require.Equal(t, category.ID, reloaded.CategoryID)

	var subCount int64
	db.DB.Model(&models.Subcategory{}).Count(&subCount)
	require.EqualValues(t, 0, subCount)
}

func TestSubcategorySlugGloballyUnique(t *testing.T) {
	app := setupApp(t)
	token := staffToken(t)

	catA := models.Category{Name: "A", Slug: "a"}
	catB := models.Category{Name: "B", Slug: "b"}
	require.NoError(t, db.DB.Create(&catA).Error)
	require.NoError(t, db.DB.Create(&catB).Error)

	resp := postForm(t, app, "/subcategories/create", token, url.Values{
		"name":     {"Phones"},
		"category": {fmt.Sprint(catA.ID)},
	})
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)

	// Same name under a different parent still collides globally
	resp = postForm(t, app, "/subcategories/create", token, url.Values{
		"name":     {"Phones"},
		"category": {fmt.Sprint(catB.ID)},
	})
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)

	var slugs []string
	require.NoError(t, db.DB.Model(&models.Subcategory{}).Order("id").Pluck("slug", &slugs).Error)
	require.Equal(t, []string{"phones", "phones-1"}, slugs)
}
