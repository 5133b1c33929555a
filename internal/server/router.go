package server

import (
	"filehub/internal/auth"
	"filehub/internal/config"
	"filehub/internal/file"
	"filehub/internal/logger"
	"filehub/internal/metrics"
	"filehub/internal/userinfo"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// Dependencies groups the long-lived handles and services required by the
// HTTP router. ObjectStore is nil when the disk backend is active.
type Dependencies struct {
	Config          config.Config
	Logger          *zap.Logger
	DB              *pgxpool.Pool
	ObjectStore     *minio.Client
	AuthService     *auth.Service
	UserInfoService *userinfo.Service
	FileService     *file.Service
}

// NewRouter builds a Gin engine with foundational middleware and routes.
func NewRouter(deps Dependencies) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(logger.Middleware(deps.Logger))
	router.Use(metrics.Middleware())

	registerHealthRoutes(router, deps)
	metrics.Register(router, deps.Config.Metrics.PrometheusPath)

	root := router.Group("/")
	if deps.FileService != nil {
		file.RegisterRoutes(root, deps.FileService)
	}
	if deps.AuthService != nil {
		auth.RegisterRoutes(root, deps.AuthService)
	}
	if deps.UserInfoService != nil {
		userinfo.RegisterRoutes(root, deps.UserInfoService)
	}

	return router
}
