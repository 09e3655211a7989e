package domain

import "time"

// Product is a catalog entry. Image stores the relative path under /public;
// the HTTP layer composes absolute URLs from the request host.
type Product struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Stock       int64   `json:"stock"`
	Image       string  `json:"image"`
}

// CartItem is one line of a cart.
type CartItem struct {
	ProductID int64 `json:"productId"`
	Quantity  int64 `json:"quantity"`
}

// Cart holds a user's pending selection. At most one per user.
type Cart struct {
	UserID int64      `json:"userId"`
	Items  []CartItem `json:"items"`
}

// OrderStatus of an order. Only "pending" exists; no transitions are
// implemented.
type OrderStatus string

const (
	OrderStatusPending OrderStatus = "pending"
)

// OrderItem is a priced snapshot of a product at order time. Later catalog
// price changes do not touch it.
type OrderItem struct {
	ProductID int64   `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int64   `json:"quantity"`
}

// Order is immutable once created. Total carries the fixed two-decimal
// string the wire contract exposes.
type Order struct {
	ID              int64       `json:"id"`
	UserID          int64       `json:"userId"`
	Items           []OrderItem `json:"items"`
	Total           string      `json:"total"`
	ShippingAddress string      `json:"shippingAddress"`
	Status          OrderStatus `json:"status"`
	CreatedAt       time.Time   `json:"createdAt"`
}

// User is a registered account. Username and email uniqueness is enforced
// by the store's unique indexes, not by a pre-check.
type User struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"uniqueIndex;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Item belongs to the basic items CRUD demo.
type Item struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Voter belongs to the voting-eligibility demo.
type Voter struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Age      int    `json:"age"`
	HasVoted bool   `json:"hasVoted"`
}
