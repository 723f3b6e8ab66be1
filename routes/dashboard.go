package routes

import (
	"sort"

	"shopadmin/db"
	"shopadmin/middleware"
	"shopadmin/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type topCategory struct {
	models.Category
	ProductTotal     int `json:"product_total"`
	SubcategoryCount int `json:"subcategory_count"`
}

// dashboard aggregates entity counts plus two read-only projections:
// the most recent products and the categories with the most products.
func dashboard(c *fiber.Ctx) error {
	counts := map[string]int64{}
	for name, model := range map[string]interface{}{
		"total_categories":       &models.Category{},
		"total_subcategories":    &models.Subcategory{},
		"total_products":         &models.Product{},
		"total_banners":          &models.Banner{},
		"total_landing_contents": &models.LandingPageContent{},
		"total_product_images":   &models.ProductImage{},
	} {
		var n int64
		if err := db.DB.Model(model).Count(&n).Error; err != nil {
			return serverError(c, "Failed to count entities")
		}
		counts[name] = n
	}

	var recentProducts []models.Product
	if err := db.DB.Preload("Category").Preload("Subcategory").
		Order("created_at DESC").Limit(5).Find(&recentProducts).Error; err != nil {
		return serverError(c, "Failed to get recent products")
	}

	topCategories, err := categoriesByProductCount(db.DB, 5)
	if err != nil {
		return serverError(c, "Failed to rank categories")
	}

	staff, _ := middleware.Staff(c)

	return c.JSON(fiber.Map{
		"total_categories":       counts["total_categories"],
		"total_subcategories":    counts["total_subcategories"],
		"total_products":         counts["total_products"],
		"total_banners":          counts["total_banners"],
		"total_landing_contents": counts["total_landing_contents"],
		"total_product_images":   counts["total_product_images"],
		"recent_products":        recentProducts,
		"top_categories":         topCategories,
		"username":               staff.Username,
		"active_nav":             ActiveNav(c.Route().Name),
		"navigation":             Sidebar(c.Route().Name),
	})
}

// categoriesByProductCount ranks categories by how many products they own,
// ties broken by name.
func categoriesByProductCount(gdb *gorm.DB, limit int) ([]topCategory, error) {
	var categories []models.Category
	if err := gdb.Order("sort_order, name").Find(&categories).Error; err != nil {
		return nil, err
	}

	type grouped struct {
		CategoryID uint
		N          int
	}
	productCounts := map[uint]int{}
	var rows []grouped
	if err := gdb.Model(&models.Product{}).
		Select("category_id AS category_id, COUNT(*) AS n").
		Group("category_id").Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		productCounts[row.CategoryID] = row.N
	}

	subcategoryCounts := map[uint]int{}
	rows = rows[:0]
	if err := gdb.Model(&models.Subcategory{}).
		Select("category_id AS category_id, COUNT(*) AS n").
		Group("category_id").Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		subcategoryCounts[row.CategoryID] = row.N
	}

	ranked := make([]topCategory, 0, len(categories))
	for _, category := range categories {
		ranked = append(ranked, topCategory{
			Category:         category,
			ProductTotal:     productCounts[category.ID],
			SubcategoryCount: subcategoryCounts[category.ID],
		})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].ProductTotal != ranked[j].ProductTotal {
			return ranked[i].ProductTotal > ranked[j].ProductTotal
		}
		return ranked[i].Name < ranked[j].Name
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked, nil
}
