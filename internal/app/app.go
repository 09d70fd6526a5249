package app

import (
	"adaptive_learning_backend/internal/config"
	"adaptive_learning_backend/internal/controller"
	"adaptive_learning_backend/internal/repository"
	"adaptive_learning_backend/internal/service"
	"adaptive_learning_backend/pkg/cluster"
	"adaptive_learning_backend/pkg/database"
	"adaptive_learning_backend/pkg/logger"
	"adaptive_learning_backend/pkg/monitoring"
	"adaptive_learning_backend/pkg/security"
	"adaptive_learning_backend/pkg/tracing"
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config   *config.Config
	Router   *gin.Engine
	DB       *gorm.DB
	Redis    *redis.Client
	services *services

	stopBackground chan struct{}
}

type repositories struct {
	profile       *repository.ProfileRepository
	effectiveness *repository.EffectivenessRepository
	assessment    *repository.AssessmentRepository
	serviceClient *repository.ServiceClientRepository
}

type services struct {
	auth           *service.AuthService
	profile        *service.ProfileService
	recommendation *service.RecommendationService
	effectiveness  *service.EffectivenessService
	cluster        *service.ClusterService
}

type controllers struct {
	auth           *controller.AuthController
	profile        *controller.ProfileController
	recommendation *controller.RecommendationController
	effectiveness  *controller.EffectivenessController
	cluster        *controller.ClusterController
	health         *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		profile:       repository.NewProfileRepository(db),
		effectiveness: repository.NewEffectivenessRepository(db),
		assessment:    repository.NewAssessmentRepository(db),
		serviceClient: repository.NewServiceClientRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	cache := service.NewProfileCache(rdb, time.Duration(cfg.Adaptive.ProfileCacheTTLMinutes)*time.Minute)

	s.auth = service.NewAuthService(repos.serviceClient, cfg)
	s.cluster = service.NewClusterService(repos.profile, cluster.NewKMeans(), cache)
	s.profile = service.NewProfileService(repos.profile, repos.assessment, s.cluster, cache)
	s.recommendation = service.NewRecommendationService(repos.profile, repos.effectiveness)
	s.effectiveness = service.NewEffectivenessService(repos.effectiveness, s.profile)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:           controller.NewAuthController(s.auth),
		profile:        controller.NewProfileController(s.profile),
		recommendation: controller.NewRecommendationController(s.recommendation),
		effectiveness:  controller.NewEffectivenessController(s.effectiveness),
		cluster:        controller.NewClusterController(s.cluster),
		health:         controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 10000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// startBackgroundTasks 周期性重聚类，修复重启后或错过触发的分组
func (a *App) startBackgroundTasks(s *services) {
	interval := time.Duration(a.Config.Adaptive.ReclusterIntervalMinutes) * time.Minute

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := s.cluster.Recluster(); err != nil {
					logger.Log.Error("scheduled recluster error", zap.Error(err))
				}
			case <-a.stopBackground:
				return
			}
		}
	}()
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(cfg)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
	}

	app := &App{
		Config:         cfg,
		DB:             db,
		Redis:          rdb,
		stopBackground: make(chan struct{}),
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	app.services = services
	controllers := app.initControllers(services, db)

	monitoring.Init()

	gin.SetMode(ginMode(cfg.Server.Mode))
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("adaptive-learning", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, cfg)

	app.startBackgroundTasks(services)

	return app
}

// ApplyConfig 应用可热更新的配置项，其余项需重启生效
func (a *App) ApplyConfig(cfg *config.Config) {
	a.services.profile.Cache.TTL = time.Duration(cfg.Adaptive.ProfileCacheTTLMinutes) * time.Minute
	a.Config.Adaptive = cfg.Adaptive
	logger.Log.Info("config reloaded",
		zap.Int("profileCacheTTLMinutes", cfg.Adaptive.ProfileCacheTTLMinutes))
}

func ginMode(mode string) string {
	switch mode {
	case "release":
		return gin.ReleaseMode
	case "test":
		return gin.TestMode
	default:
		return gin.DebugMode
	}
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	close(a.stopBackground)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
