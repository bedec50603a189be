package models

// UserReview — user_reviews table; OrderProductID points at the order
// line the buyer is reviewing
type UserReview struct {
	Base
	UserID         uint   `gorm:"index;not null" json:"user_id"`
	OrderProductID uint   `gorm:"index;not null" json:"order_product_id"`
	ReviewText     string `gorm:"type:text" json:"review_text,omitempty"`
	Rating         int    `gorm:"not null" json:"rating"`
}
