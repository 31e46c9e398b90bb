package core

import "time"

// Role identifies what a signed-in principal is allowed to do.
// Authorization itself lives server-side; the client only routes on it.
type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleProvider Role = "PROVIDER"
	RoleAdmin    Role = "ADMIN"
)

// User is the identity of a signed-in principal as returned by the API.
type User struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	Email           string           `json:"email"`
	Role            Role             `json:"role"`
	IsActive        bool             `json:"isActive"`
	ProviderProfile *ProviderProfile `json:"providerProfile,omitempty"`
}

// ProviderProfile is the shop attached to a PROVIDER user.
type ProviderProfile struct {
	ID       string  `json:"id"`
	UserID   string  `json:"userId"`
	ShopName string  `json:"shopName"`
	Address  string  `json:"address"`
	Cuisine  string  `json:"cuisine,omitempty"`
	Rating   float64 `json:"rating"`
	Meals    []Meal  `json:"meals,omitempty"`
}

// Category groups meals on the browse surfaces.
type Category struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	MealCount int    `json:"mealCount,omitempty"`
}

// Meal is one purchasable item. Prices are integer cents so cart totals
// stay exact under multiplication.
type Meal struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description,omitempty"`
	PriceCents    int64     `json:"price"`
	Image         string    `json:"image,omitempty"`
	CategoryID    string    `json:"categoryId"`
	ProviderID    string    `json:"providerId"`
	IsAvailable   bool      `json:"isAvailable"`
	AverageRating float64   `json:"averageRating,omitempty"`
	Category      *Category `json:"category,omitempty"`
}

// OrderStatus is the server-owned order lifecycle. The client never
// transitions an order locally; it renders what the API reports.
type OrderStatus string

const (
	OrderPlaced    OrderStatus = "PLACED"
	OrderPreparing OrderStatus = "PREPARING"
	OrderReady     OrderStatus = "READY"
	OrderDelivered OrderStatus = "DELIVERED"
	OrderCancelled OrderStatus = "CANCELLED"
)

// Order is a placed order with its line items.
type Order struct {
	ID         string      `json:"id"`
	UserID     string      `json:"userId"`
	Status     OrderStatus `json:"status"`
	Address    string      `json:"address"`
	TotalCents int64       `json:"totalAmount"`
	CreatedAt  time.Time   `json:"createdAt"`
	OrderItems []OrderItem `json:"orderItems"`
}

// OrderItem is one line of a placed order, priced at order time.
type OrderItem struct {
	ID         string `json:"id"`
	OrderID    string `json:"orderId"`
	MealID     string `json:"mealId"`
	Quantity   int    `json:"quantity"`
	PriceCents int64  `json:"price"`
	Meal       *Meal  `json:"meal,omitempty"`
}

// Review is a customer rating attached to a meal.
type Review struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	MealID    string    `json:"mealId"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
