package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"issueboard/internal/config"
	"issueboard/internal/database"
	"issueboard/internal/handler"
	"issueboard/internal/middleware"
	"issueboard/internal/repository"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

type Server struct {
	Engine *gin.Engine
	DB     *gorm.DB
	Config *config.Config
	Logger *slog.Logger
}

func Init(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	if cfg.AutoMigrate {
		if err := database.Migrate(cfg); err != nil {
			return nil, fmt.Errorf("❌ failed to migrate DB: %w", err)
		}
		logger.Info("✅ Database schema is up to date")
	}

	db, err := database.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("❌ failed to connect to DB: %w", err)
	}
	logger.Info("✅ Connected to database")

	gin.SetMode(cfg.GinMode)

	return &Server{
		Engine: NewRouter(db, cfg, logger),
		DB:     db,
		Config: cfg,
		Logger: logger,
	}, nil
}

// NewRouter wires repositories and handlers onto a gin engine.
func NewRouter(db *gorm.DB, cfg *config.Config, logger *slog.Logger) *gin.Engine {
	handler.RegisterValidators()

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(logger))

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	boardRepo := repository.NewBoardRepository(db)
	columnRepo := repository.NewColumnRepository(db)
	issueRepo := repository.NewIssueRepository(db)

	// Initialize handlers
	userHandler := handler.NewUserHandler(userRepo, cfg.JWTSecret, time.Duration(cfg.JWTExpiryHours)*time.Hour)
	boardHandler := handler.NewBoardHandler(boardRepo, logger)
	columnHandler := handler.NewColumnHandler(boardRepo, columnRepo)
	issueHandler := handler.NewIssueHandler(boardRepo, issueRepo, logger)
	healthHandler := handler.NewHealthHandler(cfg.Version)

	// Public routes
	r.GET("/health", healthHandler.Get)
	r.POST("/register", userHandler.Register)
	r.POST("/login", userHandler.Login)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Protected routes - require authentication
	authorized := r.Group("/")
	authorized.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	{
		authorized.GET("/me", userHandler.Me)
		authorized.GET("/board", boardHandler.Get)

		authorized.POST("/columns", columnHandler.Create)
		authorized.PATCH("/columns/:id", columnHandler.Rename)
		authorized.DELETE("/columns/:id", columnHandler.Delete)

		authorized.POST("/issues", issueHandler.Create)
		authorized.PATCH("/issues/:id", issueHandler.Update)
		authorized.DELETE("/issues/:id", issueHandler.Delete)
		authorized.PATCH("/issues/:id/move", issueHandler.Move)
	}
	return r
}

func (s *Server) Run() {
	srv := &http.Server{
		Addr:    ":" + s.Config.ServerPort,
		Handler: s.Engine,
	}

	go func() {
		s.Logger.Info("🚀 Server running", "port", s.Config.ServerPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.Logger.Error("❌ Failed to listen", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	s.Logger.Info("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		s.Logger.Error("❌ Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	if sqlDB, err := s.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
	s.Logger.Info("✅ Server exited properly")
}
