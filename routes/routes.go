package routes

import (
	"time"

	"inkbook/handlers"
	"inkbook/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterServiceRoutes registers the banner and health-check endpoints.
func RegisterServiceRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/", hb.Root)
	r.GET("/health", hb.Health)
}

// RegisterPublicRoutes registers the catalog listings and both booking channels.
// The chat webhook is not rate limited: every chat user reaches it through the
// same gateway address, so a per-IP bucket would be shared by all of them.
func RegisterPublicRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/services", hb.ListServices)
	r.GET("/portfolio", hb.ListPortfolio)
	r.POST("/bot/update", hb.BotUpdate)

	limited := r.Group("")
	limited.Use(middleware.RateLimitMiddleware(hb.MaxRequestsPerMin))
	{
		limited.POST("/appointments", hb.CreateAppointment)
	}
}

// RegisterAdminRoutes registers the endpoints gated by the admin secret.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	admin := r.Group("")
	admin.Use(middleware.AdminAuth(hb.AdminSecret))
	{
		admin.GET("/admin/appointments", hb.ListAppointments)
		admin.POST("/admin/services", hb.AddService)
		admin.POST("/admin/portfolio", hb.AddPortfolioItem)
		admin.GET("/backup/export", hb.ExportBackup)
	}
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	origins := hb.CORSAllowOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:  origins,
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}))

	RegisterServiceRoutes(r, hb)
	RegisterPublicRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
}
