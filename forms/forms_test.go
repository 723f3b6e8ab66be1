package forms

import (
	"fmt"
	"sync/atomic"
	"testing"

	"shopadmin/db"
	"shopadmin/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var dbSeq atomic.Int64

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:forms_test_%d?mode=memory&cache=shared", dbSeq.Add(1))
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))
	t.Cleanup(func() {
		sqlDB, _ := gdb.DB()
		sqlDB.Close()
	})
	return gdb
}

func values(pairs map[string]string) Getter {
	return func(key string, _ ...string) string { return pairs[key] }
}

func TestParseCategoryRequiresName(t *testing.T) {
	draft, errs := ParseCategory(values(map[string]string{"sort_order": "3"}), true)
	require.Nil(t, draft)
	require.Contains(t, errs, "name")
}

func TestParseCategoryRejectsMalformedSortOrder(t *testing.T) {
	draft, errs := ParseCategory(values(map[string]string{
		"name":       "Shoes",
		"sort_order": "abc",
	}), true)
	require.Nil(t, draft)
	require.Contains(t, errs, "sort_order")
}

func TestParseCategoryOk(t *testing.T) {
	draft, errs := ParseCategory(values(map[string]string{
		"name":        "Shoes",
		"sort_order":  "2",
		"description": "Footwear",
	}), true)
	require.Empty(t, errs)
	require.Equal(t, "Shoes", draft.Name)
	require.Equal(t, 2, draft.SortOrder)
	require.True(t, draft.IsActive)
}

func TestParseSubcategoryUnknownCategory(t *testing.T) {
	gdb := testDB(t)

	draft, errs := ParseSubcategory(values(map[string]string{
		"name":     "Phones",
		"category": "99",
	}), gdb, true)
	require.Nil(t, draft)
	require.Contains(t, errs, "category")
}

func TestParseProductNegativePriceRejected(t *testing.T) {
	gdb := testDB(t)
	category := models.Category{Name: "Electronics", Slug: "electronics"}
	require.NoError(t, gdb.Create(&category).Error)

	draft, errs := ParseProduct(values(map[string]string{
		"name":     "TV",
		"category": fmt.Sprint(category.ID),
		"price":    "-10",
	}), gdb, true)
	require.Nil(t, draft)
	require.Contains(t, errs, "price")
}

func TestParseProductNegativeStockRejected(t *testing.T) {
	gdb := testDB(t)
	category := models.Category{Name: "Electronics", Slug: "electronics"}
	require.NoError(t, gdb.Create(&category).Error)

	_, errs := ParseProduct(values(map[string]string{
		"name":           "TV",
		"category":       fmt.Sprint(category.ID),
		"price":          "10",
		"stock_quantity": "-1",
	}), gdb, true)
	require.Contains(t, errs, "stock_quantity")
}

func TestParseProductSubcategoryOverridesCategory(t *testing.T) {
	gdb := testDB(t)
	parent := models.Category{Name: "Electronics", Slug: "electronics"}
	other := models.Category{Name: "Furniture", Slug: "furniture"}
	require.NoError(t, gdb.Create(&parent).Error)
	require.NoError(t, gdb.Create(&other).Error)
	sub := models.Subcategory{CategoryID: parent.ID, Name: "Phones", Slug: "phones"}
	require.NoError(t, gdb.Create(&sub).Error)

	// Submitted category disagrees with the subcategory's parent
	draft, errs := ParseProduct(values(map[string]string{
		"name":        "Phone X",
		"category":    fmt.Sprint(other.ID),
		"subcategory": fmt.Sprint(sub.ID),
		"price":       "100",
	}), gdb, true)
	require.Empty(t, errs)
	require.Equal(t, parent.ID, draft.CategoryID)
	require.NotNil(t, draft.SubcategoryID)
	require.Equal(t, sub.ID, *draft.SubcategoryID)
}

func TestProductFormChoicesScopedByCategory(t *testing.T) {
	gdb := testDB(t)
	catA := models.Category{Name: "A", Slug: "a"}
	catB := models.Category{Name: "B", Slug: "b"}
	require.NoError(t, gdb.Create(&catA).Error)
	require.NoError(t, gdb.Create(&catB).Error)
	require.NoError(t, gdb.Create(&models.Subcategory{CategoryID: catA.ID, Name: "A1", Slug: "a1"}).Error)
	require.NoError(t, gdb.Create(&models.Subcategory{CategoryID: catB.ID, Name: "B1", Slug: "b1"}).Error)

	_, subs, err := ProductFormChoices(gdb, catA.ID)
	require.NoError(t, err)
	require.Len(t, subs, 1)
	require.Equal(t, "A1", subs[0].Name)

	// No category chosen: every subcategory is offered
	_, subs, err = ProductFormChoices(gdb, 0)
	require.NoError(t, err)
	require.Len(t, subs, 2)
}

func TestParseLandingSectionType(t *testing.T) {
	draft, errs := ParseLanding(values(map[string]string{"title": "Welcome"}), true)
	require.Empty(t, errs)
	require.Equal(t, models.SectionCustom, draft.SectionType)

	_, errs = ParseLanding(values(map[string]string{
		"title":        "Welcome",
		"section_type": "sidebar",
	}), true)
	require.Contains(t, errs, "section_type")
}

func TestParseBannerRequiresImage(t *testing.T) {
	_, errs := ParseBanner(values(map[string]string{"order": "1"}), false)
	require.Contains(t, errs, "image")

	draft, errs := ParseBanner(values(map[string]string{"order": "1"}), true)
	require.Empty(t, errs)
	require.Equal(t, 1, draft.Order)
}
