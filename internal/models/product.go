package models

import "time"

// Product is a catalog entry. Prices live on the sizes; a product with no
// active sizes cannot be ordered.
type Product struct {
	ID          uint          `gorm:"primaryKey" json:"id"`
	Name        string        `gorm:"size:128;not null" json:"name"`
	Description string        `gorm:"type:text" json:"description,omitempty"`
	ImagePath   string        `gorm:"size:255" json:"imagePath,omitempty"`
	IsActive    bool          `gorm:"not null;default:true" json:"isActive"`
	Sizes       []ProductSize `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"sizes"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

// ProductSize is one orderable variant of a product. Money is stored in
// integer centavos. DiscountCentavos, when set, must be positive and below
// the list price; it then takes precedence in every total.
type ProductSize struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	ProductID        uint      `gorm:"not null;index" json:"productId"`
	Name             string    `gorm:"size:64;not null" json:"name"`
	PriceCentavos    int64     `gorm:"not null" json:"priceCentavos"`
	DiscountCentavos *int64    `json:"discountCentavos,omitempty"`
	SortOrder        int       `gorm:"not null;default:0" json:"sortOrder"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// EffectiveCentavos returns the price a customer actually pays for the size.
func (s ProductSize) EffectiveCentavos() int64 {
	if s.DiscountCentavos != nil && *s.DiscountCentavos > 0 && *s.DiscountCentavos < s.PriceCentavos {
		return *s.DiscountCentavos
	}
	return s.PriceCentavos
}

// IsOnSale reports whether the discount price is active for the size.
func (s ProductSize) IsOnSale() bool {
	return s.DiscountCentavos != nil && *s.DiscountCentavos > 0 && *s.DiscountCentavos < s.PriceCentavos
}
