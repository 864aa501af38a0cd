package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pausepad/internal/handler"
	"pausepad/internal/middleware"
)

type Dependencies struct {
	Auth        middleware.TokenParser
	AuthHandler *handler.AuthHandler
	Timer       *handler.TimerHandler
	Tasks       *handler.TaskHandler
	Stats       *handler.StatsHandler
	Metrics     http.Handler
	CORSOrigins []string
	Logger      *zap.Logger
}

func New(deps Dependencies) *gin.Engine {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	engine := gin.New()
	engine.Use(
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.Recovery(logger),
		middleware.CORS(deps.CORSOrigins),
	)

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if deps.Metrics != nil {
		engine.GET("/metrics", gin.WrapH(deps.Metrics))
	}

	api := engine.Group("/api")
	auth := api.Group("/auth")
	auth.POST("/register", deps.AuthHandler.Register)
	auth.POST("/login", deps.AuthHandler.Login)

	protected := api.Group("")
	protected.Use(middleware.Auth(deps.Auth))

	timer := protected.Group("/timer")
	timer.GET("", deps.Timer.Get)
	timer.POST("/start", deps.Timer.Start)
	timer.POST("/pause", deps.Timer.Pause)
	timer.POST("/resume", deps.Timer.Resume)
	timer.POST("/stop", deps.Timer.Stop)
	timer.POST("/skip", deps.Timer.Skip)
	timer.POST("/reset", deps.Timer.Reset)
	timer.POST("/mode", deps.Timer.SetMode)
	timer.PUT("/config", deps.Timer.UpdateConfig)
	timer.PUT("/task", deps.Timer.SetTask)
	timer.GET("/sessions", deps.Timer.Sessions)

	tasks := protected.Group("/tasks")
	tasks.GET("", deps.Tasks.List)
	tasks.POST("", deps.Tasks.Create)
	tasks.POST("/:id/toggle", deps.Tasks.Toggle)
	tasks.DELETE("/:id", deps.Tasks.Delete)

	stats := protected.Group("/stats")
	stats.GET("/today", deps.Stats.Today)
	stats.GET("/summary", deps.Stats.Summary)

	return engine
}
