package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/httptim/clientportal/internal/api/handler"
	"github.com/httptim/clientportal/internal/api/middleware"
	"github.com/httptim/clientportal/internal/core/domain"
	"github.com/httptim/clientportal/internal/core/service"
	"github.com/httptim/clientportal/internal/infrastructure/config"
	gormdb "github.com/httptim/clientportal/internal/infrastructure/db/gorm"
	redisdb "github.com/httptim/clientportal/internal/infrastructure/db/redis"
	"github.com/httptim/clientportal/internal/infrastructure/payment"
	"github.com/httptim/clientportal/internal/infrastructure/storage"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *gorm.DB, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("portal"))

	// --- Infrastructure adapters ---
	users := gormdb.NewUserRepository(db)
	projects := gormdb.NewProjectRepository(db)
	tasks := gormdb.NewTaskRepository(db)
	invoices := gormdb.NewInvoiceRepository(db)
	conversations := gormdb.NewConversationRepository(db)
	testimonials := gormdb.NewTestimonialRepository(db)
	portfolio := gormdb.NewPortfolioRepository(db)
	siteConfig := gormdb.NewSiteConfigRepository(db)
	contact := gormdb.NewContactRepository(db)

	sessions := redisdb.NewSessionStore(rdb)
	paypal := payment.NewPayPalClient(cfg.PayPal.BaseURL, cfg.PayPal.ClientID, cfg.PayPal.ClientSecret, log)
	uploads, err := storage.NewDiskStore(cfg.Uploads.Dir, cfg.Uploads.BaseURL)
	if err != nil {
		return nil, err
	}

	// --- Services ---
	authService := service.NewAuthService(users, sessions, cfg.SessionSecret, cfg.SessionTTL, log)
	userService := service.NewUserService(users, log)
	projectService := service.NewProjectService(projects, users, log)
	taskService := service.NewTaskService(tasks, projects, log)
	invoiceService := service.NewInvoiceService(invoices, projects, paypal, log)
	messageService := service.NewMessageService(conversations, projects, log)
	testimonialService := service.NewTestimonialService(testimonials, users, log)
	portfolioService := service.NewPortfolioService(portfolio, log)
	siteConfigService := service.NewSiteConfigService(siteConfig, log)
	contactService := service.NewContactService(contact, log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService, int(cfg.SessionTTL.Seconds()))
	userHandler := handler.NewUserHandler(userService)
	projectHandler := handler.NewProjectHandler(projectService, log)
	taskHandler := handler.NewTaskHandler(taskService)
	invoiceHandler := handler.NewInvoiceHandler(invoiceService)
	messageHandler := handler.NewMessageHandler(messageService)
	testimonialHandler := handler.NewTestimonialHandler(testimonialService, log)
	portfolioHandler := handler.NewPortfolioHandler(portfolioService)
	siteHandler := handler.NewSiteHandler(siteConfigService, contactService)
	uploadHandler := handler.NewUploadHandler(uploads)

	// Identity resolution runs on every request; anonymous requests pass
	// through and are rejected per operation where a session is required.
	e.Use(middleware.Session(cfg.SessionSecret, sessions))

	// --- Health probes and metrics (no auth required) ---
	e.GET("/health", handler.NewHealthHandler().Liveness)
	e.GET("/health/ready", handler.NewReadinessHandler(db, rdb).Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Public routes ---
	e.POST("/api/auth/login", authHandler.Login)
	e.GET("/api/testimonials", testimonialHandler.ListPublic)
	e.GET("/api/portfolio", portfolioHandler.List)
	e.GET("/api/portfolio/:id", portfolioHandler.Get)
	e.GET("/api/site-config", siteHandler.GetConfig)
	e.POST("/api/contact", siteHandler.SubmitContact)
	e.Static(cfg.Uploads.BaseURL, cfg.Uploads.Dir)

	// --- Authenticated routes ---
	auth := e.Group("/api", middleware.RequireSession())
	auth.POST("/auth/logout", authHandler.Logout)
	auth.GET("/auth/me", authHandler.Me)

	auth.GET("/users", userHandler.List)
	auth.POST("/users", userHandler.Create)
	auth.GET("/users/:id", userHandler.Get)
	auth.PUT("/users/:id", userHandler.Update)
	auth.DELETE("/users/:id", userHandler.Delete)

	auth.GET("/projects", projectHandler.List)
	auth.POST("/projects", projectHandler.Create)
	auth.GET("/projects/:id", projectHandler.Get)
	auth.PUT("/projects/:id", projectHandler.Update)
	auth.DELETE("/projects/:id", projectHandler.Delete)
	auth.GET("/projects/:id/messages", messageHandler.List)
	auth.POST("/projects/:id/messages", messageHandler.Post)
	auth.POST("/messages/:id/read", messageHandler.MarkRead)

	auth.GET("/tasks", taskHandler.List)
	auth.POST("/tasks", taskHandler.Create)
	auth.GET("/tasks/:id", taskHandler.Get)
	auth.PUT("/tasks/:id", taskHandler.Update)
	auth.DELETE("/tasks/:id", taskHandler.Delete)

	auth.GET("/invoices", invoiceHandler.List)
	auth.POST("/invoices", invoiceHandler.Create)
	auth.GET("/invoices/:id", invoiceHandler.Get)
	auth.PUT("/invoices/:id", invoiceHandler.Update)
	auth.DELETE("/invoices/:id", invoiceHandler.Delete)
	auth.POST("/invoices/:id/pay", invoiceHandler.Pay)
	auth.POST("/invoices/:id/paypal/order", invoiceHandler.CreatePayPalOrder)
	auth.POST("/invoices/:id/paypal/capture", invoiceHandler.CapturePayPal)

	// --- Admin routes ---
	admin := e.Group("/api/admin", middleware.RequireRole(domain.RoleAdmin))
	admin.GET("/testimonials", testimonialHandler.ListAll)
	admin.POST("/testimonials", testimonialHandler.Create)
	admin.PUT("/testimonials/:id", testimonialHandler.Update)
	admin.DELETE("/testimonials/:id", testimonialHandler.Delete)
	admin.POST("/portfolio", portfolioHandler.Create)
	admin.PUT("/portfolio/:id", portfolioHandler.Update)
	admin.DELETE("/portfolio/:id", portfolioHandler.Delete)
	admin.PUT("/site-config", siteHandler.UpdateConfig)
	admin.GET("/contact", siteHandler.ListContact)
	admin.DELETE("/contact/:id", siteHandler.DeleteContact)
	admin.POST("/uploads", uploadHandler.Upload)
	admin.DELETE("/uploads", uploadHandler.Delete)

	return e, nil
}
