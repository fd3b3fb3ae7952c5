package main

import (
	"context"
	config "delegasi-pay/configs"
	"delegasi-pay/internal/common/enum"
	database "delegasi-pay/internal/pkg/db"
	"delegasi-pay/internal/pkg/delegasi"
	"delegasi-pay/internal/pkg/helper"
	"delegasi-pay/internal/pkg/jwt"
	"delegasi-pay/internal/pkg/logger"
	"delegasi-pay/internal/pkg/rabbitmq"
	"delegasi-pay/internal/pkg/redis"
	"delegasi-pay/internal/pkg/validation"
	"delegasi-pay/internal/repository"
	confirmationRepo "delegasi-pay/internal/repository/confirmation"
	sessionRepo "delegasi-pay/internal/repository/session"
	serverApp "delegasi-pay/internal/server"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
)

func main() {
	logger.Setup()

	env, err := config.GetEnv()
	if err != nil {
		logger.Error.Println("Error getting environment", err)
		panic(err)
	}

	var wg sync.WaitGroup
	ctx, cancel := context.WithCancel(context.Background())

	// Setup Redis
	var redisClient *redis.Client
	if env.SessionDriver == enum.REDIS_STORE || env.DBCache {
		redisClient, err = setupRedis(ctx, env)
		if err != nil {
			logger.Error.Println("Error setting up Redis", err)
			cancel()
			return
		}
	}

	// Setup RabbitMQ
	var rabbit *rabbitmq.ConnectionManager
	if env.RabbitEnabled {
		rabbit, err = setupRabbitMQ(ctx, env)
		if err != nil {
			logger.Error.Println("Error setting up RabbitMQ", err)
			cancel()
			return
		}
	}

	// Setup Database
	var db *database.Database
	if env.DBEnabled {
		db, err = setupDB(env, redisClient)
		if err != nil {
			logger.Error.Println("Error setting up Database", err)
			cancel()
			return
		}
	}

	setupServer(&config.SetupServerDto{
		Rds:    optionalRedis(redisClient),
		Env:    env,
		Ctx:    &ctx,
		Cancel: cancel,
		Db:     db,
		Wg:     &wg,
		Rb:     rabbit,
		Dg:     setupDelegasi(env),
	})
}

func setupRedis(ctx context.Context, env *config.Config) (*redis.Client, error) {
	return redis.Setup(ctx, &redis.Config{
		Host:     env.RedisHost,
		Username: env.RedisUser,
		Port:     env.RedisPort,
		Password: env.RedisPass,
		PoolSize: env.RedisPoolSize,
	})
}

// optionalRedis keeps a disabled client a nil interface.
func optionalRedis(c *redis.Client) redis.IRedis {
	if c == nil {
		return nil
	}
	return c
}

func setupRabbitMQ(ctx context.Context, env *config.Config) (*rabbitmq.ConnectionManager, error) {
	return rabbitmq.NewConnectionManager(ctx, &rabbitmq.Config{
		Username: env.RabbitUser,
		Password: env.RabbitPass,
		Host:     env.RabbitHost,
		Port:     env.RabbitPort,
		VHost:    env.RabbitVHost,
	})
}

func setupDB(env *config.Config, rds *redis.Client) (*database.Database, error) {
	return database.Setup(&database.Config{
		Host:      env.DBHost,
		Port:      env.DBPort,
		User:      env.DBUser,
		Password:  env.DBPass,
		Database:  env.DBName,
		SSLMode:   env.DBSSLMode,
		Driver:    env.DBDriver,
		Cache:     env.DBCache,
		Rds:       rds,
		CacheTime: 5 * time.Minute,
	})
}

func setupDelegasi(env *config.Config) *delegasi.Client {
	return delegasi.Setup(&delegasi.Config{
		BaseURL:   env.DelegasiBaseURL,
		APIKey:    env.DelegasiAPIKey,
		SecretKey: env.DelegasiAPISecret,
		Timeout:   env.DelegasiTimeout(),
		ProxyURL:  env.DelegasiProxyURL,
	})
}

func setupServer(payload *config.SetupServerDto) {
	rds := payload.Rds
	env := payload.Env
	ctx := payload.Ctx
	cancel := payload.Cancel
	wg := payload.Wg
	rb := payload.Rb
	db := payload.Db

	defer func() {
		if rds != nil {
			_ = rds.Close()
		}
		if rb != nil {
			_ = rb.Close()
		}
		if db != nil {
			_ = db.Close()
		}
		cancel()
		wg.Wait()
	}()

	err := validation.Setup()
	if err != nil {
		logger.Error.Println("Failed to setup validation")
		panic(err)
	}

	signer, err := jwt.NewSigner(env.SessionSecret, env.SessionTTL())
	if err != nil {
		panic(err)
	}

	rp := repository.IRepository{}
	var memorySessions *sessionRepo.MemoryRepository
	if env.SessionDriver == enum.REDIS_STORE {
		rp.Session = sessionRepo.NewRedisRepo(rds, env.SessionTTL())
	} else {
		memorySessions = sessionRepo.NewMemoryRepo(env.SessionTTL())
		rp.Session = memorySessions
	}
	if db != nil {
		rp.Confirmation = confirmationRepo.NewRepo(db)
	}

	workerCfg := &serverApp.WorkerConfig{
		Size:  env.WorkerPoolSize,
		Repo:  rp.Confirmation,
		Queue: env.RabbitQueue,
	}
	if rb != nil {
		publisher, err := rabbitmq.NewPublisher(*ctx, rb)
		if err != nil {
			panic(err)
		}
		defer func() { _ = publisher.Close() }()
		workerCfg.Publisher = publisher
	}

	worker, err := serverApp.InitWorker(*ctx, workerCfg)
	if err != nil {
		panic(err)
	}
	defer worker.Close()

	if memorySessions != nil {
		if err := worker.SweepSessions(memorySessions, time.Minute); err != nil {
			logger.Warning.Printf("Session sweeper not started: %v", err)
		}
	}

	if env.AppEnv == enum.PRODUCTION {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(helper.GetEnv("GIN_MODE", gin.DebugMode))
	}
	e := gin.New()
	e.Use(gin.Recovery())

	err = serverApp.Setup(e, &serverApp.Deps{
		Ctx:            *ctx,
		Db:             db,
		Rds:            rds,
		Rb:             rb,
		Delegasi:       payload.Dg,
		Repository:     rp,
		Recorder:       worker,
		Signer:         signer,
		CorsOrigins:    helper.ParseCommaSeperatedString(env.CorsOrigin),
		SecureCookie:   env.SecureCookie(),
		VirtualAccount: env.VirtualAccount,
		CompanyCode:    env.CompanyCode,
		SessionDriver:  env.SessionDriver,
		LockTTL:        2*env.DelegasiTimeout() + 5*time.Second,
	})
	if err != nil {
		panic(err)
	}

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", env.AppPort),
		Handler:           e,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.HTTP.Println("========= Server Started =========")
		logger.HTTP.Println("=========", env.AppPort, "=========")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error.Println("Server error:", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	<-sigChan
	logger.HTTP.Println("========= Server Shutting Down =========")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	_ = server.Shutdown(shutdownCtx)
}
