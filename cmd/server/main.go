package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rabbitmq/amqp091-go"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"apebrain-backend/internal/ai"
	"apebrain-backend/internal/config"
	"apebrain-backend/internal/controller"
	"apebrain-backend/internal/images"
	"apebrain-backend/internal/middleware"
	"apebrain-backend/internal/notify"
	"apebrain-backend/internal/payment"
	"apebrain-backend/internal/rabbit"
	"apebrain-backend/internal/repository"
	"apebrain-backend/internal/service"
)

func newLogger(env string) *slog.Logger {
	if env == "production" || env == "prod" {
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func main() {
	cfg := config.Load()
	log := newLogger(cfg.AppEnv)
	slog.SetDefault(log)

	// MongoDB connection
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Error("mongo connect failed", "error", err)
		os.Exit(1)
	}
	db := client.Database(cfg.MongoDBName)

	// Repositories
	blogRepo := repository.NewMongoBlogRepository(db)
	orderRepo := repository.NewMongoOrderRepository(db)
	couponRepo := repository.NewMongoCouponRepository(db)
	productRepo := repository.NewMongoProductRepository(db)
	userRepo := repository.NewMongoUserRepository(db)
	tokenRepo := repository.NewMongoResetTokenRepository(db)
	settingsRepo := repository.NewMongoSettingsRepository(db)

	// Admin credential store (atomic file rewrite on update)
	adminStore, err := config.NewAdminStore(cfg.AdminCredsFile, cfg.AdminUsername, cfg.AdminPassword)
	if err != nil {
		log.Error("admin credential store init failed", "error", err)
		os.Exit(1)
	}

	// Notification pipeline: rabbit-backed when configured, in-process
	// otherwise. Delivery is best-effort either way.
	mailer := &notify.SMTPMailer{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUser,
		Password: cfg.SMTPPassword,
		From:     cfg.SMTPUser,
	}
	proc := &notify.Processor{Mailer: mailer, OperatorEmail: cfg.NotificationEmail, Log: log}

	var dispatcher notify.Dispatcher = &notify.DirectDispatcher{Proc: proc}
	if cfg.RabbitURL != "" {
		conn, err := amqp091.Dial(cfg.RabbitURL)
		if err != nil {
			log.Warn("rabbit unavailable, using in-process notification dispatch", "error", err)
		} else {
			ch, err := conn.Channel()
			if err != nil {
				log.Warn("rabbit channel failed, using in-process notification dispatch", "error", err)
			} else {
				pub, err := rabbit.NewPublisher(ch, log)
				if err != nil {
					log.Warn("rabbit queue declare failed, using in-process notification dispatch", "error", err)
				} else {
					dispatcher = pub
					if err := rabbit.StartConsumer(ch, proc, log); err != nil {
						log.Error("notification consumer failed to start", "error", err)
					}
				}
			}
		}
	}

	// External providers
	var payments payment.Client
	if cfg.PayPalConfigured() {
		pp, err := payment.NewPayPalClient(cfg.PayPalClientID, cfg.PayPalClientSecret, cfg.PayPalMode)
		if err != nil {
			log.Error("paypal client init failed", "error", err)
			os.Exit(1)
		}
		payments = pp
	} else {
		log.Warn("paypal credentials missing, order creation disabled")
	}

	var writer ai.Writer
	if w, err := ai.NewChatWriter(cfg.GeminiAPIKey, cfg.GeminiBaseURL, cfg.GeminiModel); err == nil {
		writer = w
	} else {
		log.Warn("ai provider key missing, blog generation disabled")
	}

	fetcher := images.NewPexelsClient(cfg.PexelsAPIKey)

	// Services
	couponService := service.NewCouponService(couponRepo)
	orderService := service.NewOrderService(orderRepo, couponService, payments, dispatcher, cfg.FrontendURL, log)
	blogService := service.NewBlogService(blogRepo, writer, fetcher, log)
	authService := service.NewAuthService(userRepo, tokenRepo, dispatcher, cfg.JWTSecret, cfg.FrontendURL, log)
	productService := service.NewProductService(productRepo)
	settingsService := service.NewSettingsService(settingsRepo)

	// Controllers
	shopCtl := controller.NewShopController(orderService)
	couponCtl := controller.NewCouponController(couponService)
	blogCtl := controller.NewBlogController(blogService)
	authCtl := controller.NewAuthController(authService, orderService)
	adminCtl := controller.NewAdminController(adminStore, authService)
	productCtl := controller.NewProductController(productService)
	settingsCtl := controller.NewSettingsController(settingsService)
	imageCtl := controller.NewImageController(fetcher)

	// Router
	r := gin.Default()
	r.Use(middleware.CORS(cfg.CORSOrigins))

	api := r.Group("/api")

	// Public routes
	api.POST("/auth/register", authCtl.Register)
	api.POST("/auth/login", authCtl.Login)
	api.POST("/auth/password-reset-request", authCtl.PasswordResetRequest)
	api.POST("/auth/password-reset", authCtl.PasswordReset)

	api.POST("/admin/login", adminCtl.Login)

	api.GET("/blogs", blogCtl.List)
	api.GET("/blogs/:id", blogCtl.Get)

	api.GET("/products", productCtl.GetAll)
	api.GET("/products/:id", productCtl.Get)

	api.GET("/coupons/active", couponCtl.GetActive)
	api.POST("/coupons/validate", couponCtl.Validate)

	api.POST("/shop/create-order", shopCtl.CreateOrder)
	api.POST("/shop/execute-payment", shopCtl.ExecutePayment)
	api.GET("/track-order", shopCtl.TrackOrder)

	api.GET("/landing-settings", settingsCtl.GetLanding)
	api.GET("/blog-features", settingsCtl.GetBlogFeatures)

	// Customer routes (require token)
	user := api.Group("/")
	user.Use(middleware.AuthRequired(authService))
	user.GET("/auth/me", authCtl.Me)
	user.GET("/auth/orders", authCtl.MyOrders)

	// Admin routes
	admin := api.Group("/")
	admin.Use(middleware.AdminRequired(authService))

	admin.GET("/admin/settings", adminCtl.GetSettings)
	admin.POST("/admin/settings", adminCtl.UpdateSettings)

	admin.POST("/blogs/generate", blogCtl.Generate)
	admin.POST("/blogs", blogCtl.Create)
	admin.PUT("/blogs/:id", blogCtl.Update)
	admin.POST("/blogs/:id/publish", blogCtl.Publish)
	admin.DELETE("/blogs/:id", blogCtl.Delete)
	admin.POST("/blogs/:id/upload-image", blogCtl.UploadImage)
	admin.POST("/blogs/:id/upload-audio", blogCtl.UploadAudio)

	admin.GET("/fetch-image", imageCtl.FetchImage)
	admin.GET("/fetch-images", imageCtl.FetchImages)

	admin.GET("/orders", shopCtl.GetOrders)
	admin.GET("/orders/unviewed/count", shopCtl.UnviewedCount)
	admin.GET("/orders/:id", shopCtl.GetOrder)
	admin.PUT("/orders/:id/status", shopCtl.UpdateStatus)
	admin.PUT("/orders/:id/tracking", shopCtl.UpdateTracking)
	admin.POST("/orders/:id/mark-viewed", shopCtl.MarkViewed)
	admin.DELETE("/orders/:id", shopCtl.DeleteOrder)

	admin.GET("/coupons", couponCtl.GetAll)
	admin.POST("/coupons", couponCtl.Create)
	admin.PUT("/coupons/:id", couponCtl.Update)
	admin.DELETE("/coupons/:id", couponCtl.Delete)

	admin.POST("/products", productCtl.Create)
	admin.PUT("/products/:id", productCtl.Update)
	admin.DELETE("/products/:id", productCtl.Delete)

	admin.POST("/landing-settings", settingsCtl.SetLanding)
	admin.POST("/blog-features", settingsCtl.SetBlogFeatures)

	log.Info("apebrain backend listening", "port", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
