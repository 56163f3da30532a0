package models

import "time"

type Cart struct {
	CartID    uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"uniqueIndex;not null" json:"user_id"` // Enforces ONE cart per user
	Items     []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type CartItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CartID    uint      `gorm:"not null;index;uniqueIndex:uniq_cart_product" json:"cart_id"`
	ProductID uint      `gorm:"not null;uniqueIndex:uniq_cart_product" json:"product_id"`
	Product   Product   `gorm:"constraint:OnDelete:CASCADE" json:"product"`
	Quantity  int       `gorm:"not null;default:1" json:"quantity"`
	AddedAt   time.Time `json:"added_at"`
}

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"   // Order placed, awaiting confirmation
	OrderStatusConfirmed OrderStatus = "confirmed" // Confirmed by the shop
	OrderStatusShipped   OrderStatus = "shipped"   // Out for delivery
	OrderStatusDelivered OrderStatus = "delivered" // Customer received the items
	OrderStatusCancelled OrderStatus = "cancelled" // Cancelled before shipping
)

type Order struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	OrderRef string `gorm:"uniqueIndex;not null" json:"order_ref"`
	UserID   uint   `gorm:"index;not null" json:"user_id"`

	Status OrderStatus `gorm:"type:VARCHAR(20);default:'pending'" json:"status"`

	// Fixed at checkout, in shmeckles. Never recomputed from the catalog.
	TotalAmount float64 `gorm:"not null" json:"total_amount"`

	DeliveryAddress string `gorm:"not null" json:"delivery_address"`
	Phone           string `gorm:"type:VARCHAR(20);not null" json:"phone"`

	Items     []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt time.Time   `json:"created_at"`
}

// OrderItem is a snapshot of a product at the moment of purchase. FrozenName
// and FrozenPrice keep order history stable when the catalog changes;
// ProductID is kept for traceability only.
type OrderItem struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	OrderID     uint    `gorm:"index;not null" json:"order_id"`
	ProductID   uint    `gorm:"not null" json:"product_id"`
	Quantity    int     `gorm:"not null" json:"quantity"`
	FrozenName  string  `gorm:"not null" json:"frozen_name"`
	FrozenPrice float64 `gorm:"not null" json:"frozen_price"`
}
