package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/linskybing/formflow/internal/api/middleware"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

// NewEngine returns a gin engine with the standard middleware chain:
// recovery, request id, tracing, request logging and CORS.
func NewEngine(log *zap.Logger, serviceName string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(otelgin.Middleware(serviceName))
	r.Use(middleware.Logger(log))
	r.Use(middleware.CORSMiddleware())
	return r
}
