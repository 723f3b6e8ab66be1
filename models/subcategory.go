package models

import "time"

// Subcategory slugs are unique across all subcategories, not per category.
type Subcategory struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CategoryID  uint      `json:"category_id" validate:"required"`
	Name        string    `json:"name" validate:"required"`
	Slug        string    `gorm:"uniqueIndex;size:200" json:"slug"`
	SortOrder   int       `json:"sort_order"`
	Image       string    `json:"image"`
	Description string    `json:"description"`
	IsActive    bool      `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
	Category    Category  `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Products    []Product `gorm:"foreignKey:SubcategoryID" json:"products,omitempty"`
}
