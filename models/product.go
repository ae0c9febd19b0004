package models

import "time"

type Category string
type Fabric string

const (
	CategoryTops        Category = "tops"
	CategoryBottoms     Category = "bottoms"
	CategoryDresses     Category = "dresses"
	CategoryAccessories Category = "accessories"
	CategoryOuterwear   Category = "outerwear"

	FabricCotton      Fabric = "cotton"
	FabricHemp        Fabric = "hemp"
	FabricLinen       Fabric = "linen"
	FabricCottonHemp  Fabric = "cotton-hemp"
	FabricCottonLinen Fabric = "cotton-linen"
)

// Product is a catalog entry. Both prices are authored independently by an
// admin; neither is derived from the other by conversion.
type Product struct {
	ID              uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	Name            string     `gorm:"not null" json:"name"`
	Slug            string     `gorm:"uniqueIndex;not null" json:"slug"`
	Description     string     `gorm:"not null" json:"description"`
	LongDescription string     `json:"longDescription"`
	PriceNPR        float64    `gorm:"not null" json:"priceNPR"`
	PriceUSD        float64    `gorm:"not null" json:"priceUSD"`
	Images          StringList `gorm:"type:text" json:"images"`
	Category        Category   `gorm:"type:varchar(20);not null;index" json:"category"`
	Fabric          Fabric     `gorm:"type:varchar(20);not null;index" json:"fabric"`
	Sizes           StringList `gorm:"type:text" json:"sizes"`
	Colors          ColorList  `gorm:"type:text" json:"colors"`
	InStock         bool       `gorm:"default:true" json:"inStock"`
	Featured        bool       `gorm:"default:false" json:"featured"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}
