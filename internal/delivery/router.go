package delivery

import (
	"html/template"
	"net/http"
	"path/filepath"
	"time"

	"cfresh_inventory/internal/auth"
	"cfresh_inventory/internal/middleware"
	"cfresh_inventory/internal/usecase"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type RouterDeps struct {
	Vendors    usecase.VendorUseCase
	Products   usecase.ProductUseCase
	Categories usecase.CategoryUseCase
	Auth       usecase.AuthUseCase
	Reports    usecase.ReportUseCase

	Sessions     *auth.SessionManager
	LoginLimiter *middleware.LoginRateLimiter
	DB           Pinger
	Templates    *template.Template

	PublicDir      string
	APIBaseURL     string
	SecureCookie   bool
	AllowedOrigins []string
}

func NewRouter(deps RouterDeps, logger *logrus.Logger) *gin.Engine {
	router := gin.New()
	router.Use(middleware.RequestLogger(logger), gin.Recovery())
	router.SetHTMLTemplate(deps.Templates)
	router.MaxMultipartMemory = 8 << 20
	router.Static("/product_images", filepath.Join(deps.PublicDir, "product_images"))
	router.NoRoute(renderNotFound)

	authHandler := NewAuthHandler(deps.Auth, deps.Sessions, deps.SecureCookie, logger)
	dashboardHandler := NewDashboardHandler(deps.Categories, logger)
	vendorHandler := NewVendorHandler(deps.Vendors, deps.Products, deps.Categories, logger)
	productHandler := NewProductHandler(deps.Products, deps.Vendors, logger)
	reportHandler := NewReportHandler(deps.Reports, deps.APIBaseURL, logger)
	healthHandler := NewHealthHandler(deps.DB, logger)

	router.GET("/health", healthHandler.Health)
	router.GET("/", authHandler.LoginPage)
	login := []gin.HandlerFunc{}
	if deps.LoginLimiter != nil {
		login = append(login, deps.LoginLimiter.Middleware())
	}
	router.POST("/login", append(login, authHandler.Login)...)
	router.POST("/logout", authHandler.Logout)

	session := middleware.RequireSession(deps.Sessions, logger)
	admin := middleware.RequireAdmin(logger)

	dashboard := router.Group("/dashboard", session)
	{
		dashboard.GET("", dashboardHandler.Dashboard)
		vendorHandler.RegisterRoutes(dashboard, admin)
		productHandler.RegisterRoutes(dashboard, admin)
		reportHandler.RegisterPageRoutes(dashboard)
	}

	corsConfig := cors.Config{
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:     []string{"Content-Type"},
		ExposeHeaders:    []string{"Content-Disposition", "X-Report-Omitted"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(deps.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = deps.AllowedOrigins
	} else {
		corsConfig.AllowOriginFunc = func(string) bool { return false }
	}
	api := router.Group("/api", cors.New(corsConfig), session)
	reportHandler.RegisterAPIRoutes(api)

	logger.Info("Routes registered.")
	return router
}
