package models

import "time"

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"   // initial state at checkout
	OrderStatusConfirmed OrderStatus = "confirmed" // confirmed by an admin
	OrderStatusShipped   OrderStatus = "shipped"   // handed to the carrier
	OrderStatusDelivered OrderStatus = "delivered" // received by the customer
	OrderStatusCancelled OrderStatus = "cancelled"
)

func (s OrderStatus) String() string {
	return string(s)
}

// OrderItem is a permanent snapshot of one cart line. The product fields are
// copied at order creation and never refreshed from the live catalog.
type OrderItem struct {
	ID        uint    `gorm:"primaryKey" json:"-"`
	OrderID   uint    `gorm:"index" json:"-"`
	ProductID uint    `gorm:"not null" json:"productId"`
	Name      string  `gorm:"not null" json:"name"`
	Slug      string  `gorm:"not null" json:"slug"`
	Image     string  `json:"image"`
	Size      string  `json:"size"`
	Color     string  `json:"color"`
	Quantity  int     `gorm:"not null" json:"quantity"`
	PriceNPR  float64 `gorm:"not null" json:"priceNPR"`
	PriceUSD  float64 `gorm:"not null" json:"priceUSD"`
}

type ShippingAddress struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	Country    string `json:"country"`
	PostalCode string `json:"postalCode"`
	Phone      string `json:"phone"`
}

// Order is immutable after creation except for Status and UpdatedAt.
type Order struct {
	ID              uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	Reference       string          `gorm:"uniqueIndex;not null" json:"reference"`
	UserID          string          `gorm:"not null;index" json:"userId"`
	Items           []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	TotalNPR        float64         `gorm:"not null" json:"totalNPR"`
	TotalUSD        float64         `gorm:"not null" json:"totalUSD"`
	Status          OrderStatus     `gorm:"type:varchar(20);default:'pending'" json:"status"`
	CustomerName    string          `gorm:"not null" json:"customerName"`
	CustomerEmail   string          `gorm:"not null" json:"customerEmail"`
	ShippingAddress ShippingAddress `gorm:"embedded;embeddedPrefix:ship_" json:"shippingAddress"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}
