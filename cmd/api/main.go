package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"gift-service/internal/core/auth"
	"gift-service/internal/core/cache"
	"gift-service/internal/core/config"
	"gift-service/internal/core/database"
	"gift-service/internal/core/logger"
	"gift-service/internal/core/server"
	"gift-service/internal/domain"
	"gift-service/internal/repo"
	"gift-service/internal/service"
	"gift-service/internal/transport/http/handler"
	"gift-service/internal/transport/http/router"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load(os.Getenv("CONFIG_PATH"))
	log, cleanup := newLogger(cfg)
	defer cleanup()

	// 数据库（失败会直接 Fatal）
	db := mustOpenDB(cfg, log)
	log.Info("database connected", zap.String("driver", cfg.DB.Driver))

	// 自动迁移
	if cfg.DB.AutoMigrate {
		if err := db.AutoMigrate(
			&domain.User{},
			&domain.Wish{},
			&domain.Offer{},
			&domain.Wishlist{},
		); err != nil {
			log.Fatal("automigrate failed", zap.Error(err))
		}
		log.Info("automigrate done")
	}

	// Redis 缓存（可选，只用于最新/热门榜）
	var feedCache *cache.Cache
	if cfg.Redis.Enable {
		feedCache = cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		log.Info("redis cache enabled", zap.String("addr", cfg.Redis.Addr))
	}

	// JWT
	jwter := &auth.JWTer{
		Secret: []byte(cfg.JWT.Secret),
		Issuer: cfg.JWT.Issuer,
		TTL:    time.Duration(cfg.JWT.AccessTokenTTLMin) * time.Minute,
	}

	// 仓储 → 服务 → 处理器
	userRepo := repo.NewUserRepo(db)
	wishRepo := repo.NewWishRepo(db)
	offerRepo := repo.NewOfferRepo(db)
	wishlistRepo := repo.NewWishlistRepo(db)

	userSvc := service.NewUserService(userRepo, wishRepo)
	wishSvc := service.NewWishService(wishRepo, feedCache, time.Duration(cfg.Redis.FeedTTLSec)*time.Second)
	offerSvc := service.NewOfferService(offerRepo, wishRepo)
	wishlistSvc := service.NewWishlistService(wishlistRepo, wishRepo, userRepo)
	authSvc := service.NewAuthService(userSvc, jwter)

	r := router.NewAPIEngine(router.Deps{
		Log:       log,
		CORS:      cfg.CORS.AllowedOrigins,
		Auth:      authSvc,
		AuthH:     handler.NewAuthHandler(userSvc, authSvc),
		UserH:     handler.NewUserHandler(userSvc),
		WishH:     handler.NewWishHandler(wishSvc),
		OfferH:    handler.NewOfferHandler(offerSvc),
		WishlistH: handler.NewWishlistHandler(wishlistSvc),
	})

	// HTTP Server
	addr := server.Addr(cfg.App.HTTP.Host, cfg.App.HTTP.Port)
	srv := server.BuildServer(
		addr, r,
		time.Duration(cfg.App.HTTP.ReadTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.WriteTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.IdleTimeoutSec)*time.Second,
	)

	// 启动日志
	host4human := cfg.App.HTTP.Host
	if host4human == "" || host4human == "0.0.0.0" {
		host4human = "127.0.0.1"
	}
	baseURL := "http://" + host4human + ":" + fmt.Sprint(cfg.App.HTTP.Port)
	log.Info("gift api starting",
		zap.String("addr", addr),
		zap.String("open", baseURL),
		zap.String("health", baseURL+"/health"),
		zap.String("api_v1", baseURL+"/api/v1"),
	)

	// 异步启动
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("gift api start FAILED", zap.Error(err))
		}
	}()
	log.Info("gift api started SUCCESS")

	// 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	if feedCache != nil {
		_ = feedCache.RDB.Close()
	}
	log.Info("gift api stopped gracefully")
}

func newLogger(cfg *config.Config) (*zap.Logger, func()) {
	if cfg.Log.File == "" {
		return logger.New(cfg.Log.Level, cfg.Log.JSON)
	}
	return logger.NewWithRotate(cfg.Log.Level, cfg.Log.JSON, logger.FileRotate{
		Enable:     true,
		Filename:   cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
		Compress:   cfg.Log.Compress,
	})
}

func mustOpenDB(cfg *config.Config, l *zap.Logger) *gorm.DB {
	db, err := database.NewGorm(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
	})
	if err != nil {
		l.Fatal("db open", zap.Error(err))
	}
	return db
}
