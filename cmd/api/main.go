package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/oninepa/k-yayo-backend/internal/config"
	"github.com/oninepa/k-yayo-backend/internal/handler"
	"github.com/oninepa/k-yayo-backend/internal/middleware"
	"github.com/oninepa/k-yayo-backend/internal/repository"
	"github.com/oninepa/k-yayo-backend/internal/routes"
	"github.com/oninepa/k-yayo-backend/internal/service"
	pkgcache "github.com/oninepa/k-yayo-backend/pkg/cache"
	"github.com/oninepa/k-yayo-backend/pkg/jwt"
	pkglogger "github.com/oninepa/k-yayo-backend/pkg/logger"
	pkgredis "github.com/oninepa/k-yayo-backend/pkg/redis"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// @title           K-Yayo Backend API
// @version         1.0
// @description     K-Yayo Community Platform - RBAC, Points & Leveling API
//
// @host            localhost:8080
// @BasePath        /api/v1
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Authorization header using the Bearer scheme. Example: "Bearer {token}"

// getConfigPath returns config file path based on APP_ENV environment variable
func getConfigPath() string {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "local"
	}
	return fmt.Sprintf("configs/config.%s.yaml", env)
}

func main() {
	dotenvFiles := config.LoadDotEnv()

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "local"
	}
	pkglogger.InitStructured(env)
	pkglogger.Info("APP_ENV=%s, loaded env files: %v", env, dotenvFiles)

	// 설정 로드
	configPath := getConfigPath()
	pkglogger.Info("Loading config from: %s", configPath)
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 네비게이션 카탈로그 로드
	catalog, err := config.LoadCatalog(cfg.Catalog.Path)
	if err != nil {
		pkglogger.Info("Warning: navigation catalog load failed: %v (continuing with empty catalog)", err)
		catalog = nil
	}

	// MySQL 연결
	db, err := initDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	pkglogger.Info("Connected to MySQL")

	// Redis 연결 (없어도 기동)
	var cacheService pkgcache.Service
	if cfg.Redis.Enabled {
		redisClient, redisErr := pkgredis.NewClient(
			cfg.Redis.Host,
			cfg.Redis.Port,
			cfg.Redis.Password,
			cfg.Redis.DB,
			cfg.Redis.PoolSize,
		)
		if redisErr != nil {
			pkglogger.Info("Warning: Failed to connect to Redis: %v (continuing without cache)", redisErr)
		} else {
			cacheService = pkgcache.NewService(redisClient)
			pkglogger.Info("Connected to Redis")
		}
	}

	// JWT Manager
	jwtManager := jwt.NewManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiresIn,
		cfg.JWT.RefreshIn,
	)

	// Repository / Service / Handler 조립
	memberRepo := repository.NewMemberRepository(db)
	pointRepo := repository.NewPointRepository(db)

	memberService := service.NewMemberService(memberRepo, cacheService, cfg.Admin)
	pointService := service.NewPointService(pointRepo, memberRepo, cacheService, cfg.Points)
	navService := service.NewNavigationService(catalog)

	h := &routes.Handlers{
		Auth:       handler.NewAuthHandler(memberService, jwtManager),
		Member:     handler.NewMemberHandler(memberService, pointService),
		Point:      handler.NewPointHandler(pointService, memberService),
		Admin:      handler.NewAdminHandler(memberService, pointService),
		Navigation: handler.NewNavigationHandler(navService),
	}

	// Gin 라우터 생성
	if env != "local" && env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.Metrics())

	// CORS 설정
	allowOrigins := cfg.CORS.AllowOrigins
	if allowOrigins == "" {
		allowOrigins = "http://localhost:3000"
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{allowOrigins},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-API-Key", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// 운영 엔드포인트
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	areaChecker := middleware.NewOpenAreaChecker(cfg.Points.OpenWriteAreaIDs())
	routes.Setup(router, h, jwtManager, cfg.Server.GatewayKey, areaChecker)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	pkglogger.Info("Listening on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// initDB opens the MySQL connection and migrates the schema.
func initDB(cfg *config.Config) (*gorm.DB, error) {
	dsnCfg := mysqldriver.NewConfig()
	dsnCfg.User = cfg.Database.User
	dsnCfg.Passwd = cfg.Database.Password
	dsnCfg.Net = "tcp"
	dsnCfg.Addr = fmt.Sprintf("%s:%d", cfg.Database.Host, cfg.Database.Port)
	dsnCfg.DBName = cfg.Database.Name
	dsnCfg.ParseTime = true
	dsnCfg.Loc = time.Local
	dsnCfg.Params = map[string]string{"charset": "utf8mb4"}

	db, err := gorm.Open(mysql.Open(dsnCfg.FormatDSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, err
	}

	if err := repository.Migrate(db); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}
	return db, nil
}
