package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/0xThirdspace/Thirdspace-Backend-Api/internal/config"
	"github.com/0xThirdspace/Thirdspace-Backend-Api/internal/handler"
	"github.com/0xThirdspace/Thirdspace-Backend-Api/internal/invite"
	"github.com/0xThirdspace/Thirdspace-Backend-Api/internal/mail"
	"github.com/0xThirdspace/Thirdspace-Backend-Api/internal/model"
	"github.com/0xThirdspace/Thirdspace-Backend-Api/internal/router"
	"github.com/0xThirdspace/Thirdspace-Backend-Api/internal/service"
	"github.com/0xThirdspace/Thirdspace-Backend-Api/internal/sse"
	"github.com/0xThirdspace/Thirdspace-Backend-Api/internal/upload"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func main() {
	// Load config
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// Database
	db, err := gorm.Open(mysql.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}

	// Auto migrate
	if err := db.AutoMigrate(
		&model.User{},
		&model.Workspace{},
		&model.TeamMember{},
		&model.Bounty{},
		&model.KanbanBoard{},
		&model.Task{},
		&model.Chat{},
		&model.Message{},
		&model.OperationLog{},
	); err != nil {
		log.Fatalf("auto migrate: %v", err)
	}

	// Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	// Core components
	hub := sse.NewHub(rdb)
	inviteTTL := time.Duration(cfg.Invite.ExpireHours) * time.Hour
	inviteIssuer := invite.NewIssuer(cfg.Invite.Secret, inviteTTL, invite.NewRedisStore(rdb))
	uploader := upload.NewLocalUploader(cfg.Upload.Dir, cfg.Upload.BaseURL)

	// Mailer
	var mailer mail.Mailer
	if cfg.Mail.Enabled {
		mailer = mail.NewSMTPMailer(cfg.Mail.Host, cfg.Mail.Port, cfg.Mail.Username, cfg.Mail.Password, cfg.Mail.From)
	} else {
		mailer = mail.NoopMailer{}
	}

	// Services
	authService := service.NewAuthService(db, cfg.JWT.Secret, cfg.JWT.ExpireHours)
	workspaceService := service.NewWorkspaceService(db)
	teamService := service.NewTeamService(db)
	bountyService := service.NewBountyService(db)
	kanbanService := service.NewKanbanService(db)
	taskService := service.NewTaskService(db)
	chatService := service.NewChatService(db)
	messageService := service.NewMessageService(db)
	messageService.SetHub(hub)

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(authService)
	workspaceHandler := handler.NewWorkspaceHandler(workspaceService, authService)
	teamHandler := handler.NewTeamHandler(teamService, inviteIssuer, mailer, cfg.Invite.BaseURL)
	bountyHandler := handler.NewBountyHandler(bountyService, authService)
	kanbanHandler := handler.NewKanbanHandler(kanbanService)
	taskHandler := handler.NewTaskHandler(taskService)
	chatHandler := handler.NewChatHandler(chatService, messageService, hub)
	dashboardHandler := handler.NewDashboardHandler(db)
	uploadHandler := handler.NewUploadHandler(uploader)

	// Gin engine
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()

	// Setup routes
	router.Setup(r, router.Deps{
		DB:               db,
		JWTSecret:        cfg.JWT.Secret,
		AuthHandler:      authHandler,
		UserHandler:      userHandler,
		WorkspaceHandler: workspaceHandler,
		TeamHandler:      teamHandler,
		BountyHandler:    bountyHandler,
		KanbanHandler:    kanbanHandler,
		TaskHandler:      taskHandler,
		ChatHandler:      chatHandler,
		DashboardHandler: dashboardHandler,
		UploadHandler:    uploadHandler,
	})

	// Start server with graceful shutdown
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("Server starting on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server run: %v", err)
		}
	}()

	<-ctx.Done()
	log.Printf("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
	if err := rdb.Close(); err != nil {
		log.Printf("close redis: %v", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("close database: %v", err)
		}
	}
}
