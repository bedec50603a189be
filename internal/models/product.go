package models

// Product — products table. ImagePath holds the file-store key of the
// product image; the raw key is never serialized, handlers derive a
// public URL instead.
type Product struct {
	Base
	CategoryID  uint          `gorm:"index;not null" json:"category_id"`
	StoreID     uint          `gorm:"index;not null" json:"store_id"`
	UserID      uint          `gorm:"index;not null" json:"user_id"`
	Name        string        `gorm:"size:255;not null" json:"name"`
	Description string        `gorm:"type:text" json:"description,omitempty"`
	Price       float64       `gorm:"not null" json:"price"`
	ImagePath   string        `json:"-"`
	Items       []ProductItem `gorm:"foreignKey:ProductID" json:"items,omitempty"`
}

// ProductItem — stock record for a product. The schema allows many per
// product but writes only ever touch the first one.
type ProductItem struct {
	Base
	ProductID       uint `gorm:"index;not null" json:"product_id"`
	QuantityInStock int  `gorm:"not null;default:0" json:"quantity_in_stock"`
}
