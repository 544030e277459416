package main

import (
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"backend/internal/admission"
	"backend/internal/config"
	"backend/internal/database"
	"backend/internal/handlers"
	"backend/internal/intake"
	"backend/internal/middleware"
	"backend/internal/notify"
	"backend/internal/reference"
	"backend/internal/store"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Str("service", "bakery-backend").Logger()

	config.Load()

	db, err := database.Connect(config.AppEnv.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	if err := database.EnsureSchema(db); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate schema")
	}
	if err := database.EnsureSettings(db); err != nil {
		log.Fatal().Err(err).Msg("failed to ensure settings row")
	}

	location, err := time.LoadLocation(config.AppEnv.Timezone)
	if err != nil {
		log.Warn().Err(err).Str("timezone", config.AppEnv.Timezone).Msg("falling back to fixed UTC+8")
		location = time.FixedZone("PHT", 8*3600)
	}

	codec, err := reference.NewCodec(config.AppEnv.ReferencePrefix)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid order reference prefix")
	}

	settingsStore := store.NewSettingsStore(db)
	orderStore := store.NewOrderStore(db)
	productStore := store.NewProductStore(db)
	staffStore := store.NewStaffStore(db)

	checker := admission.NewChecker(settingsStore, orderStore, location)
	notifier := notify.NewLogNotifier()
	intakeService := intake.NewService(orderStore, checker, codec, notifier, config.AppEnv.MaxItemsPerOrder)

	r := gin.Default()
	r.Static("/uploads", config.AppEnv.UploadDir)

	r.GET("/products", handlers.GetProducts(productStore))
	r.GET("/availability", handlers.GetAvailability(checker))
	r.POST("/orders", handlers.SubmitOrder(intakeService, productStore))
	r.GET("/orders/track/:reference", handlers.TrackOrder(orderStore, codec))
	r.POST("/uploads/payment-proof", handlers.UploadPaymentProof(config.AppEnv.UploadDir))

	r.POST("/admin/login", handlers.AdminLogin(staffStore, config.AppEnv.JWTSecret, config.AppEnv.AccessTokenTTL))

	admin := r.Group("/admin/api")
	admin.Use(middleware.AdminAuth(config.AppEnv.JWTSecret))
	{
		admin.GET("/me", func(c *gin.Context) {
			c.JSON(200, gin.H{"ok": true})
		})

		admin.GET("/orders", handlers.ListOrders(orderStore))
		admin.GET("/orders/:id", handlers.GetOrder(orderStore))
		admin.PATCH("/orders/:id/status", handlers.UpdateOrderStatus(orderStore))
		admin.PATCH("/orders/:id/notes", handlers.UpdateOrderNotes(orderStore))
		admin.DELETE("/orders/:id", handlers.DeleteOrder(orderStore))

		admin.GET("/settings", handlers.GetSettings(settingsStore))
		admin.PATCH("/settings", handlers.PatchSettings(settingsStore))

		admin.GET("/products", handlers.GetAllProducts(productStore))
		admin.POST("/products", handlers.CreateProduct(productStore))
		admin.PUT("/products/:id", handlers.UpdateProduct(productStore))
		admin.DELETE("/products/:id", handlers.DeleteProduct(productStore))
		admin.POST("/uploads/product-image", handlers.UploadProductImage(config.AppEnv.UploadDir))
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Info().Str("port", port).Msg("starting server")
	if err := r.Run(":" + port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
