package routes

// NavItem is one sidebar entry with its computed active state.
type NavItem struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	URL    string `json:"url"`
	Active bool   `json:"active"`
}

type navEntry struct {
	id         string
	label      string
	url        string
	matchNames map[string]bool
}

var navEntries = []navEntry{
	{
		id:    "dashboard",
		label: "Dashboard",
		url:   "/",
		matchNames: map[string]bool{
			"dashboard": true,
		},
	},
	{
		id:    "categories",
		label: "Categories",
		url:   "/categories/",
		matchNames: map[string]bool{
			"category_list": true, "category_manage": true, "category_create": true,
			"category_edit": true, "category_delete": true,
			"subcategory_list": true, "subcategory_create": true,
			"subcategory_edit": true, "subcategory_delete": true,
		},
	},
	{
		id:    "products",
		label: "Products",
		url:   "/products/",
		matchNames: map[string]bool{
			"product_list": true, "product_create": true,
			"product_edit": true, "product_delete": true,
			"product_image_delete": true, "product_image_set_main": true,
		},
	},
	{
		id:    "landing",
		label: "Landing content",
		url:   "/landing-contents/",
		matchNames: map[string]bool{
			"landing_content_list": true, "landing_content_create": true,
			"landing_content_edit": true, "landing_content_delete": true,
		},
	},
	{
		id:    "banners",
		label: "Banners",
		url:   "/banners/",
		matchNames: map[string]bool{
			"banner_list": true, "banner_create": true,
			"banner_edit": true, "banner_delete": true,
		},
	},
}

// Sidebar returns the navigation menu with the entry matching the current
// route name marked active.
func Sidebar(routeName string) []NavItem {
	items := make([]NavItem, 0, len(navEntries))
	for _, entry := range navEntries {
		items = append(items, NavItem{
			ID:     entry.id,
			Label:  entry.label,
			URL:    entry.url,
			Active: entry.matchNames[routeName],
		})
	}
	return items
}

// ActiveNav returns the id of the sidebar entry owning the route name, or
// an empty string for routes outside the menu.
func ActiveNav(routeName string) string {
	for _, entry := range navEntries {
		if entry.matchNames[routeName] {
			return entry.id
		}
	}
	return ""
}
