package serverApp

import (
	"context"
	"delegasi-pay/internal/common/enum"
	paymentHandler "delegasi-pay/internal/handler/payment"
	database "delegasi-pay/internal/pkg/db"
	"delegasi-pay/internal/pkg/delegasi"
	"delegasi-pay/internal/pkg/jwt"
	"delegasi-pay/internal/pkg/middleware"
	"delegasi-pay/internal/pkg/rabbitmq"
	"delegasi-pay/internal/pkg/redis"
	"delegasi-pay/internal/repository"
	channelService "delegasi-pay/internal/service/channel"
	confirmationService "delegasi-pay/internal/service/confirmation"
	flowService "delegasi-pay/internal/service/flow"
	invoiceService "delegasi-pay/internal/service/invoice"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Deps is everything the HTTP layer is built from. Db, Rds and Rb are
// optional. With the redis session driver Rds also holds the session locks.
type Deps struct {
	Ctx            context.Context
	Db             *database.Database
	Rds            redis.IRedis
	Rb             *rabbitmq.ConnectionManager
	Delegasi       *delegasi.Client
	Repository     repository.IRepository
	Recorder       confirmationService.Recorder
	Signer         *jwt.Signer
	CorsOrigins    []string
	SecureCookie   bool
	VirtualAccount string
	CompanyCode    string
	SessionDriver  enum.StoreEnum
	// LockTTL bounds how long a crashed replica can hold a session lock.
	LockTTL time.Duration
}

// Setup initializes the HTTP server with middleware and routes
func Setup(engine *gin.Engine, deps *Deps) error {
	InitMiddleware(engine, deps.CorsOrigins)

	tmpl, err := paymentHandler.Templates()
	if err != nil {
		return err
	}
	engine.SetHTMLTemplate(tmpl)

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": http.StatusOK,
			"service": gin.H{
				"rabbitmq": gin.H{"status": rabbitHealth(deps.Rb)},
				"redis":    gin.H{"status": redisHealth(c.Request.Context(), deps.Rds)},
				"database": gin.H{"status": databaseHealth(c.Request.Context(), deps.Db)},
				"delegasi": gin.H{"base_url": deps.Delegasi.BaseURL()},
			},
		})
	})

	InitRoutes(engine, deps)
	return nil
}

// BasePath returns the base API path
func BasePath() string {
	return "/api"
}

// InitMiddleware initializes global middleware
func InitMiddleware(e *gin.Engine, corsOrigins []string) {
	e.Use(middleware.CorsMiddleware(corsOrigins))
	e.Use(middleware.RequestInit())
	e.Use(middleware.SecurityHeaders())
	e.Use(middleware.ResponseInit())
}

func InitRoutes(engine *gin.Engine, deps *Deps) {
	session := middleware.SessionMiddleware(deps.Signer, deps.SecureCookie)

	// === Payment flow ===
	ChannelService := channelService.NewService(deps.CompanyCode)
	InvoiceService := invoiceService.NewService(deps.Delegasi)
	ConfirmationService := confirmationService.NewService(deps.Delegasi, deps.Recorder)
	FlowController := flowService.NewController(
		deps.Repository.Session,
		InvoiceService,
		ConfirmationService,
		ChannelService,
		deps.VirtualAccount,
	)
	if deps.SessionDriver == enum.REDIS_STORE && deps.Rds != nil {
		FlowController.WithSharedLocker(flowService.NewSharedLocker(deps.Rds, deps.LockTTL))
	}

	PaymentHandler := paymentHandler.NewHandler(deps.Ctx, FlowController)
	PaymentHandler.NewRoutes(engine.Group(BasePath(), session))
	PaymentHandler.NewPageRoutes(engine.Group("/", session))
}

func rabbitHealth(rb *rabbitmq.ConnectionManager) string {
	if rb == nil {
		return "disabled"
	}
	if rb.Healthy() {
		return "healthy"
	}
	return "unhealthy"
}

func redisHealth(ctx context.Context, rds redis.IRedis) string {
	if rds == nil {
		return "disabled"
	}
	if rds.Ping(ctx) == nil {
		return "healthy"
	}
	return "unhealthy"
}

func databaseHealth(ctx context.Context, db *database.Database) string {
	if db == nil {
		return "disabled"
	}
	if db.Healthy(ctx) {
		return "healthy"
	}
	return "unhealthy"
}
