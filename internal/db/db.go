package db

import (
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"shopapi/internal/models"
)

// MustOpen opens the database connection or exits.
func MustOpen(dsn string, log *logrus.Logger) *gorm.DB {
	if dsn == "" {
		log.Fatal("DB_DSN is empty (check your .env)")
	}
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.WithError(err).Fatal("failed to connect database")
	}
	return gdb
}

// Migrate creates or updates the schema for every model.
func Migrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Store{},
		&models.Product{},
		&models.ProductItem{},
		&models.PaymentType{},
		&models.ShopOrder{},
		&models.OrderLine{},
		&models.OrderHistory{},
		&models.UserReview{},
	)
}
