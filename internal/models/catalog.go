package models

// Category — categories table, owned by the user that created it
type Category struct {
	Base
	UserID uint   `gorm:"index;not null" json:"user_id"`
	Name   string `gorm:"size:255;not null" json:"name"`
	Image  string `json:"image,omitempty"`
}

// Store — stores table, the shop a product is sold from
type Store struct {
	Base
	UserID uint   `gorm:"index;not null" json:"user_id"`
	Name   string `gorm:"size:255;not null" json:"name"`
}

// PaymentType — payment_types table, e.g. "credit card", "paypal"
type PaymentType struct {
	Base
	Type string `gorm:"size:255;not null" json:"type"`
}
