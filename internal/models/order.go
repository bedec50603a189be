package models

// ShopOrder — shop_orders table
type ShopOrder struct {
	Base
	UserID        uint        `gorm:"index;not null" json:"user_id"`
	PaymentTypeID uint        `gorm:"index" json:"payment_type_id"`
	OrderTotal    float64     `gorm:"not null" json:"order_total"`
	Lines         []OrderLine `gorm:"foreignKey:OrderID" json:"lines,omitempty"`
}

// OrderLine — order_lines table; reviews reference these rows
type OrderLine struct {
	Base
	OrderID   uint    `gorm:"index;not null" json:"order_id"`
	ProductID uint    `gorm:"index;not null" json:"product_id"`
	Quantity  int     `gorm:"not null" json:"quantity"`
	Price     float64 `gorm:"not null" json:"price"`
}

// OrderHistory — order_history table, one row per order a user placed
type OrderHistory struct {
	Base
	UserID  uint `gorm:"index;not null" json:"user_id"`
	OrderID uint `gorm:"index;not null" json:"order_id"`
}
