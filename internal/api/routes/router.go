package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	_ "github.com/linskybing/formflow/docs"
	"github.com/linskybing/formflow/internal/api/handlers"
	"github.com/linskybing/formflow/internal/api/middleware"
	"github.com/linskybing/formflow/internal/application"
	"github.com/linskybing/formflow/internal/config"
	"github.com/linskybing/formflow/pkg/response"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// RegisterRoutes mounts the ops endpoints and the API on r. gatherer may be
// nil to skip /metrics.
func RegisterRoutes(r *gin.Engine, gdb *gorm.DB, svc *application.Services, gatherer prometheus.Gatherer) {
	h := handlers.New(svc)

	r.GET("/health", healthHandler(gdb))
	if gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	authRoutes := r.Group("/auth")
	{
		authRoutes.POST("/register", h.User.Register)
		authRoutes.POST("/login", h.User.Login)
		authRoutes.POST("/logout", h.User.Logout)
		authRoutes.GET("/status", middleware.JWTAuthMiddleware(), h.User.AuthStatus)
	}

	// Submissions accept guests; a token, when sent, identifies the submitter.
	limiter := middleware.NewIPRateLimiter(config.SubmitRateLimit, config.SubmitRateBurst)
	r.POST("/forms/:id/submit", middleware.RateLimit(limiter), middleware.OptionalJWT(), h.Submission.Submit)

	auth := r.Group("/")
	auth.Use(middleware.JWTAuthMiddleware())
	{
		auth.GET("/ws/forms/:id/stats", h.Submission.StreamStats)

		tenants := auth.Group("/tenants")
		{
			tenants.GET("", h.Tenant.ListTenants)
			tenants.PUT("/:id", middleware.Admin(), h.Tenant.UpdateTenant)
			tenants.PUT("/:id/logo", middleware.Admin(), h.Tenant.UploadLogo)
		}

		users := auth.Group("/users")
		{
			users.GET("", h.User.GetUsers)
			users.POST("", middleware.Admin(), h.User.CreateUser)
			users.GET("/:id", h.User.GetUserByID)
			users.PUT("/:id", middleware.UserOrAdmin(), h.User.UpdateUser)
			users.DELETE("/:id", middleware.Admin(), h.User.DeleteUser)
		}

		forms := auth.Group("/forms")
		{
			forms.GET("", h.Form.ListForms)
			forms.GET("/trash", h.Form.ListTrash)
			forms.POST("", h.Form.CreateForm)
			forms.GET("/:id", h.Form.GetForm)
			forms.PUT("/:id", h.Form.EditForm)
			forms.GET("/:id/versions", h.Form.ListVersions)
			forms.GET("/:id/submissions", h.Submission.ListSubmissions)
			forms.GET("/:id/stats", h.Submission.GetStats)
			forms.DELETE("/:id", h.Form.SoftDeleteForm)
			forms.POST("/:id/restore", h.Form.RestoreForm)
			forms.DELETE("/:id/permanent", h.Form.PermanentDeleteForm)
		}

		auth.GET("/audit/logs", middleware.Admin(), h.Audit.GetAuditLogs)
	}
}

// healthHandler godoc
// @Summary Liveness and database check
// @Tags ops
// @Produce json
// @Success 200 {object} response.HealthResponse
// @Failure 503 {object} response.HealthResponse
// @Router /health [get]
func healthHandler(gdb *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sqlDB, err := gdb.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, response.HealthResponse{Status: "degraded", Database: err.Error()})
			return
		}
		c.JSON(http.StatusOK, response.HealthResponse{Status: "ok", Database: "ok"})
	}
}
