package models

import "time"

type Product struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	CategoryID     uint           `json:"category_id" validate:"required"`
	SubcategoryID  *uint          `json:"subcategory_id"`
	Name           string         `json:"name" validate:"required"`
	Slug           string         `gorm:"uniqueIndex;size:300" json:"slug"`
	Description    string         `json:"description"`
	Specifications string         `json:"specifications"`
	Price          float64        `json:"price" validate:"gte=0"`
	SalePrice      *float64       `json:"sale_price"`
	StockQuantity  int            `json:"stock_quantity" validate:"gte=0"`
	IsFeatured     bool           `json:"is_featured"`
	IsActive       bool           `gorm:"default:true" json:"is_active"`
	SortOrder      int            `json:"sort_order"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	Category       Category       `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Subcategory    *Subcategory   `gorm:"foreignKey:SubcategoryID" json:"subcategory,omitempty"`
	Images         []ProductImage `gorm:"foreignKey:ProductID" json:"images,omitempty"`
}

// CurrentPrice returns the sale price when one is set.
func (p *Product) CurrentPrice() float64 {
	if p.SalePrice != nil {
		return *p.SalePrice
	}
	return p.Price
}

// MainImage returns the image flagged as main, falling back to the first
// image in gallery order. Empty string when the product has no images.
func (p *Product) MainImage() string {
	for _, img := range p.Images {
		if img.IsMain {
			return img.Image
		}
	}
	if len(p.Images) > 0 {
		return p.Images[0].Image
	}
	return ""
}
