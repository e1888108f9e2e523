package app

import (
	"context"
	"interviewai_backend/internal/config"
	"interviewai_backend/internal/controller"
	"interviewai_backend/internal/repository"
	"interviewai_backend/internal/service"
	"interviewai_backend/internal/util"
	"interviewai_backend/pkg/database"
	"interviewai_backend/pkg/logger"
	"interviewai_backend/pkg/monitoring"
	"interviewai_backend/pkg/security"
	"interviewai_backend/pkg/tracing"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client

	mu              sync.RWMutex
	config          *config.Config
	services        *services
	tracer          *sdktrace.TracerProvider
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user     *repository.UserRepository
	tests    *repository.InterviewTestRepository
	attempts *repository.InterviewAttemptRepository
	sessions *repository.InterviewSessionRepository
}

type services struct {
	ai        *service.AIService
	auth      *service.AuthService
	storage   *service.StorageService
	tests     *service.TestService
	interview *service.InterviewService
	analytics *service.AnalyticsService
	export    *service.ExportService
	ats       *service.AtsService
	resume    *service.ResumeParser
}

type controllers struct {
	auth      *controller.AuthController
	test      *controller.TestController
	interview *controller.InterviewController
	profile   *controller.ProfileController
	ats       *controller.AtsController
	health    *controller.HealthController
}

// Config 返回当前生效的配置（热更新后会替换）
func (a *App) Config() *config.Config {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.config
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// ApplyConfig 配置热更新入口
func (a *App) ApplyConfig(cfg *config.Config) {
	a.mu.Lock()
	// 命令行标志与 JWT 密钥不随配置文件变化
	cfg.ForceMigrate = a.config.ForceMigrate
	cfg.MigrateOnly = a.config.MigrateOnly
	cfg.JWT = a.config.JWT
	a.config = cfg
	a.mu.Unlock()

	for _, cb := range a.configCallbacks {
		cb(cfg)
	}
}

func initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:     repository.NewUserRepository(db),
		tests:    repository.NewInterviewTestRepository(db),
		attempts: repository.NewInterviewAttemptRepository(db),
		sessions: repository.NewInterviewSessionRepository(db),
	}
}

func initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.ai = service.NewAIService(cfg.AI)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.storage = service.NewStorageService(cfg)

	var locker service.TestLocker = service.NewMemoryLocker()
	if rdb != nil {
		locker = service.NewRedisLocker(rdb)
	}

	evaluator := service.NewEvaluationService(s.ai)
	factory := service.NewAttemptFactory(time.Now)

	s.tests = service.NewTestService(repos.tests, evaluator, factory, locker)
	s.interview = service.NewInterviewService(
		repos.sessions,
		repos.attempts,
		s.tests,
		evaluator,
		factory,
		service.NewDeepgramService(cfg.Speech),
		s.storage,
	)
	s.analytics = service.NewAnalyticsService(repos.attempts)
	s.export = service.NewExportService(repos.attempts)
	s.ats = service.NewAtsService(s.ai)
	s.resume = service.NewResumeParser()

	return s
}

func initControllers(s *services, cfg *config.Config, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:      controller.NewAuthController(s.auth, cfg.Server.Mode == "release"),
		test:      controller.NewTestController(s.tests),
		interview: controller.NewInterviewController(s.interview),
		profile:   controller.NewProfileController(s.analytics, s.interview, s.export),
		ats:       controller.NewAtsController(s.ats, s.resume),
		health:    controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database, cfg.Server.Mode)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	// release 模式默认不迁移，需显式传入 -migrate
	if cfg.Server.Mode != "release" || cfg.ForceMigrate {
		if err := database.Migrate(db); err != nil {
			logger.Log.Fatal("Failed to migrate database", zap.Error(err))
		}
		logger.Log.Info("Database migrated")
	}

	app := &App{
		config: cfg,
		DB:     db,
	}
	if cfg.MigrateOnly {
		return app
	}

	if cfg.Redis.Enabled {
		rdb, err := database.InitRedis(&cfg.Redis)
		if err != nil {
			logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
		}
		app.Redis = rdb
	}

	repos := initRepositories(db)
	app.services = initServices(repos, cfg, app.Redis)
	controllers := initControllers(app.services, cfg, db, app.Redis)

	app.RegisterConfigCallback(func(c *config.Config) {
		logger.SetMode(c.Server.Mode)
		app.services.ai.SetModel(c.AI.Model)
		logger.Log.Info("Config applied", zap.String("aiModel", app.services.ai.Model()))
	})

	monitoring.Init()

	gin.SetMode(cfg.Server.Mode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer(tracing.ServiceName, cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracer = tp
	}

	app.registerRoutes(router, controllers)

	if cfg.Storage.Type == util.StorageLocal {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config().Server.Port,
		Handler: a.Router,
	}

	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config().Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal("listen failed", zap.Error(err))
		}
	}()

	// 等待中断信号优雅地关闭服务器（5秒超时）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}

	if a.tracer != nil {
		if err := a.tracer.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if a.Redis != nil {
		a.Redis.Close()
	}
	if sqlDB, err := a.DB.DB(); err == nil {
		sqlDB.Close()
	}

	logger.Log.Info("Server exiting")
}
