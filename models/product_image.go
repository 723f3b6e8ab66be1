package models

import "time"

// At most one image per product carries IsMain; the set-main handler clears
// sibling flags in the same transaction.
type ProductImage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProductID uint      `json:"product_id" validate:"required"`
	Image     string    `json:"image" validate:"required"`
	IsMain    bool      `json:"is_main"`
	SortOrder int       `json:"sort_order"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
