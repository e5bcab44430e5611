package router

import (
	"time"

	"orderhub/config"
	"orderhub/internal/handler"
	"orderhub/internal/middleware"
	"orderhub/internal/repository"
	"orderhub/internal/service"
	"orderhub/internal/ws"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

func Setup(cfg *config.Config, db *gorm.DB, log *logrus.Logger) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Authorization"},
		MaxAge:          12 * time.Hour,
	}))
	r.Use(middleware.RateLimit(middleware.NewInMemoryRateLimiter(100, 60*time.Second)))

	// Repositories
	userRepo := repository.NewUserRepository(db)
	businessRepo := repository.NewBusinessRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	productRepo := repository.NewProductRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	experienceRepo := repository.NewExperienceRepository(db)
	planRepo := repository.NewPlanRepository(db)
	auditRepo := repository.NewAuditLogRepository(db)

	hub := ws.NewHub()

	// Services
	authSvc := service.NewAuthService(cfg, userRepo)
	profileSvc := service.NewProfileService(userRepo, businessRepo)
	orderSvc := service.NewOrderService(orderRepo, customerRepo, experienceRepo)
	statsSvc := service.NewStatsService(orderRepo)
	sheetSvc := service.NewSheetService(customerRepo, productRepo, orderRepo)

	// Handlers
	authHandler := handler.NewAuthHandler(authSvc)
	profileHandler := handler.NewProfileHandler(profileSvc, businessRepo, planRepo, hub)
	customerHandler := handler.NewCustomerHandler(customerRepo, profileSvc, hub)
	productHandler := handler.NewProductHandler(productRepo, profileSvc, hub)
	orderHandler := handler.NewOrderHandler(orderRepo, customerRepo, experienceRepo, orderSvc, profileSvc, hub)
	experienceHandler := handler.NewExperienceHandler(experienceRepo, orderRepo, profileSvc, hub)
	sheetHandler := handler.NewSheetHandler(sheetSvc, profileSvc, log)
	adminHandler := handler.NewAdminHandler(userRepo, businessRepo, planRepo, auditRepo, statsSvc, hub, log)

	authMw := middleware.AuthRequired(&cfg.JWT)
	enabledMw := middleware.AccountEnabled(userRepo)

	api := r.Group("/api/v1")
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/logout", authMw, authHandler.Logout)
			authGroup.POST("/refresh", authHandler.Refresh)
			authGroup.PATCH("/change-password", authMw, enabledMw, authHandler.ChangePassword)
		}

		me := api.Group("/me")
		me.Use(authMw, enabledMw)
		{
			me.GET("/profile", profileHandler.GetProfile)
			me.POST("/onboarding", profileHandler.CompleteOnboarding)
			me.PATCH("/business", profileHandler.UpdateBusiness)
		}

		tenant := api.Group("")
		tenant.Use(authMw, enabledMw)
		{
			tenant.GET("/customers", customerHandler.List)
			tenant.GET("/customers/find", customerHandler.FindByPhone)
			tenant.POST("/customers", customerHandler.Create)
			tenant.GET("/customers/:id", customerHandler.Get)
			tenant.PATCH("/customers/:id", customerHandler.Update)
			tenant.DELETE("/customers/:id", customerHandler.Delete)

			tenant.GET("/products", productHandler.List)
			tenant.POST("/products", productHandler.Create)
			tenant.GET("/products/:id", productHandler.Get)
			tenant.PATCH("/products/:id", productHandler.Update)
			tenant.DELETE("/products/:id", productHandler.Delete)

			tenant.GET("/orders", orderHandler.List)
			tenant.POST("/orders", orderHandler.Create)
			tenant.GET("/orders/:id", orderHandler.Get)
			tenant.PATCH("/orders/:id", orderHandler.Update)
			tenant.PUT("/orders/:id/status", orderHandler.UpdateStatus)
			tenant.POST("/orders/:id/finish", orderHandler.Finish)
			tenant.DELETE("/orders/:id", orderHandler.Delete)

			tenant.GET("/experiences", experienceHandler.List)
			tenant.GET("/orders/:id/experience", experienceHandler.GetByOrder)
			tenant.PUT("/orders/:id/experience", experienceHandler.Upsert)

			tenant.POST("/import/customers", sheetHandler.ImportCustomers)
			tenant.POST("/import/products", sheetHandler.ImportProducts)
			tenant.GET("/export/customers", sheetHandler.ExportCustomers)
			tenant.GET("/export/products", sheetHandler.ExportProducts)
			tenant.GET("/export/orders", sheetHandler.ExportOrders)
		}

		admin := api.Group("/admin")
		admin.Use(authMw, middleware.AdminRequired())
		{
			admin.GET("/accounts", adminHandler.ListAccounts)
			admin.PATCH("/accounts/:id/status", adminHandler.SetAccountStatus)
			admin.PATCH("/accounts/:id/can-create-orders", adminHandler.SetCanCreateOrders)
			admin.POST("/accounts/:id/plan", adminHandler.AssignPlan)
			admin.GET("/accounts/:id/stats", adminHandler.TenantStats)

			admin.GET("/plans", adminHandler.ListPlans)
			admin.POST("/plans", adminHandler.CreatePlan)
			admin.PUT("/plans/:id", adminHandler.UpdatePlan)
			admin.DELETE("/plans/:id", adminHandler.DeletePlan)

			admin.GET("/audit-logs", adminHandler.ListAuditLogs)
		}

		// Live change stream; token is passed as a query parameter because
		// browsers cannot set websocket headers.
		api.GET("/ws", ws.Upgrade(&cfg.JWT, hub, func(userID uint) (string, error) {
			p, err := profileSvc.Resolve(userID)
			if err != nil {
				return "", err
			}
			return p.TenantPath, nil
		}))
	}

	return r
}
