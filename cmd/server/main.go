package main

import (
	"net/http"
	"os"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"shopapi/internal/catalog"
	"shopapi/internal/config"
	mydb "shopapi/internal/db"
	"shopapi/internal/handlers"
	"shopapi/internal/orders"
	"shopapi/internal/products"
	"shopapi/internal/repository"
	"shopapi/internal/reviews"
	"shopapi/internal/storage"
	"shopapi/internal/users"
)

func main() {
	log := logrus.New()
	log.SetOutput(os.Stdout)
	log.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.Load(log)
	if err != nil {
		log.WithError(err).Fatal("failed to load configuration")
	}
	if lvl, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(lvl)
	}

	gdb := mydb.MustOpen(cfg.DatabaseDSN, log)
	if err := mydb.Migrate(gdb); err != nil {
		log.WithError(err).Fatal("migration failed")
	}
	sqlDB, _ := gdb.DB()
	defer sqlDB.Close()

	files, err := storage.NewDiskStore(cfg.UploadDir, cfg.BaseURL)
	if err != nil {
		log.WithError(err).Fatal("failed to prepare upload dir")
	}

	productRepo := repository.NewProductRepo(gdb)
	refRepo := repository.NewRefRepo(gdb)
	reviewRepo := repository.NewReviewRepo(gdb)
	orderRepo := repository.NewOrderRepo(gdb)
	userRepo := repository.NewUserRepo(gdb)

	userSvc := users.NewService(userRepo, log)
	productSvc := products.NewService(productRepo, refRepo, files, log)
	reviewSvc := reviews.NewService(reviewRepo, refRepo, log)
	orderSvc := orders.NewService(orderRepo)
	catalogSvc := catalog.NewService(refRepo)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(handlers.RequestLogger(log))

	r.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Split(cfg.CORSOrigins, ","),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	}))

	store := cookie.NewStore([]byte(cfg.SessionSecret))
	store.Options(sessions.Options{HttpOnly: true, SameSite: http.SameSiteLaxMode})
	r.Use(sessions.Sessions("shop_session", store))

	r.Static("/uploads", files.Root())

	r.GET("/health", func(c *gin.Context) {
		if err := sqlDB.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"ok": false, "db": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	auth := handlers.RequireAuth(userSvc, log)
	handlers.NewAuthHandler(userSvc, log).RegisterRoutes(r)
	handlers.NewProductHandler(productSvc, files, log).RegisterRoutes(r, auth)
	handlers.NewReviewHandler(reviewSvc, log).RegisterRoutes(r, auth)
	handlers.NewOrderHandler(orderSvc, log).RegisterRoutes(r, auth)
	handlers.NewCatalogHandler(catalogSvc, log).RegisterRoutes(r)

	log.Infof("server listening on :%s", cfg.AppPort)
	if err := r.Run(":" + cfg.AppPort); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
