package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/SlpAus/clone-pool-backend/api"
	"github.com/SlpAus/clone-pool-backend/internal/account"
	"github.com/SlpAus/clone-pool-backend/internal/auth"
	"github.com/SlpAus/clone-pool-backend/internal/platform/config"
	"github.com/SlpAus/clone-pool-backend/internal/platform/database"
	"github.com/SlpAus/clone-pool-backend/internal/platform/health"
	"github.com/SlpAus/clone-pool-backend/internal/platform/shutdown"
	"github.com/SlpAus/clone-pool-backend/internal/platform/startup"
	"github.com/SlpAus/clone-pool-backend/internal/realtime"
	"github.com/SlpAus/clone-pool-backend/internal/revenue"
	"github.com/SlpAus/clone-pool-backend/pkg/lifecycle"
	"github.com/SlpAus/clone-pool-backend/pkg/token"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// .env 仅用于本地开发时覆盖配置项
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(fmt.Sprintf("加载配置失败: %v", err))
	}

	token.InitSecretKey(cfg.Auth.Secret)
	database.InitDB(cfg.Database)
	database.InitRedis(cfg.Database.Redis)
	health.PerformCheck()

	if err := startup.InitializeApplication(cfg.Database.Storage); err != nil {
		panic(fmt.Sprintf("应用初始化失败，无法启动: %v", err))
	}

	// 账号仓库的实现由启动配置显式选择
	var repo account.Repository
	switch cfg.Database.Storage {
	case "memory":
		fmt.Println("账号仓库使用内存实现，数据不持久化。")
		repo = account.NewMemoryRepository()
	default:
		repo = account.NewGormRepository(database.DB)
	}

	hub := realtime.NewHub()
	recorder := revenue.NewRecorder(database.DB)
	svc := account.NewService(repo, hub, recorder)
	importer := account.NewImporter(repo, cfg.Import.MaxBytes, cfg.Import.MaxRecords)

	limiter := auth.NewLoginLimiter(
		database.RDB,
		cfg.Auth.Lockout.MaxAttempts,
		time.Duration(cfg.Auth.Lockout.WindowMinutes)*time.Minute,
	)
	authHandler, err := auth.NewHandler(cfg.Auth, limiter)
	if err != nil {
		panic(fmt.Sprintf("初始化登录处理器失败: %v", err))
	}

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.Cors.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api.SetupRoutes(r, api.Dependencies{
		AuthHandler:    authHandler,
		AccountHandler: account.NewHandler(svc, importer, account.PoolAccount),
		ArchiveHandler: account.NewHandler(svc, importer, account.PoolArchive),
		Hub:            hub,
	})

	// 后台服务通过生命周期管理器统一协调停机
	manager := lifecycle.NewManager()

	hubHandle, err := manager.NewServiceHandle("status-hub")
	if err != nil {
		panic(err)
	}
	go hub.Run(hubHandle)

	healthHandle, err := manager.NewServiceHandle("redis-health")
	if err != nil {
		panic(err)
	}
	go health.StartRedisHealthCheck(healthHandle)

	server := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: r,
	}

	go func() {
		fmt.Printf("服务器已准备就绪，开始监听 %s\n", cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			panic("Failed to start server: " + err.Error())
		}
	}()

	shutdown.NewCoordinator(manager).ListenForSignalsAndShutdown(server)
}
