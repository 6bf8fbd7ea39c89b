package main

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/go-playground/validator/v10"
	"github.com/x-market/goapi/base/ctx"
	"github.com/x-market/goapi/base/database/mongoclient"
	"github.com/x-market/goapi/base/database/redisclient"
	"github.com/x-market/goapi/base/log"
	"github.com/x-market/goapi/base/metrics"
	bValidator "github.com/x-market/goapi/base/validator"
	"github.com/x-market/goapi/domain"
	mmiddleware "github.com/x-market/goapi/middleware"
	"github.com/x-market/goapi/service/chain"
	"github.com/x-market/goapi/service/chain/contract"
	"github.com/x-market/goapi/service/notifier"
	"github.com/x-market/goapi/service/query"
	"github.com/x-market/goapi/service/redis"
	activity_delivery "github.com/x-market/goapi/stores/activity/delivery/http"
	activity_repository "github.com/x-market/goapi/stores/activity/repository"
	activity_usecase "github.com/x-market/goapi/stores/activity/usecase"
	auth_delivery "github.com/x-market/goapi/stores/auth/delivery/http"
	auth_middleware "github.com/x-market/goapi/stores/auth/delivery/http/middleware"
	auth_usecase "github.com/x-market/goapi/stores/auth/usecase"
	hc_delivery "github.com/x-market/goapi/stores/healthcheck/delivery/http"
	hc_repo "github.com/x-market/goapi/stores/healthcheck/repository"
	hc_usecase "github.com/x-market/goapi/stores/healthcheck/usecase"
	marketplace_delivery "github.com/x-market/goapi/stores/marketplace/delivery/http"
	marketplace_repository "github.com/x-market/goapi/stores/marketplace/repository"
	marketplace_usecase "github.com/x-market/goapi/stores/marketplace/usecase"
)

func init() {
	configPath := pflag.String("config", "infra/configs/config.yaml", "path to the config file")
	pflag.Parse()

	viper.SetConfigType("yaml")
	viper.SetConfigFile(*configPath)
	err := viper.ReadInConfig()
	if err != nil {
		panic(err)
	}

	if viper.GetBool(`debug`) {
		log.Log().Info("Service RUN on DEBUG mode")
	}
}

//	@title			X Market API
//	@version		1.0
//	@description	API Document for X Market.

// main
//
//	@securityDefinitions.apikey	ApiKeyAuth
//	@in							header
//	@name						Authorization
//	@description				retrieve token from #/auth/token and apply with `bearer {token}`
func main() {
	// init echo
	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{}))
	e.Use(middleware.RequestID())
	middL := mmiddleware.InitMiddleware()
	e.Use(middL.ResponseLogger())
	e.Use(middL.AddContext())
	e.Use(middleware.CORS())
	e.Validator = bValidator.NewCustomValidator(validator.New())

	context := ctx.Background()

	// init mongo client
	context.Info("init mongo")
	uri := viper.GetString("mongo.uri")
	authDBName := viper.GetString("mongo.authDBName")
	dbName := viper.GetString("mongo.dbName")
	enableSSL := viper.GetBool("mongo.enableSSL")
	mongoClient := mongoclient.MustConnectMongoClient(uri, authDBName, dbName, enableSSL, true, 2)
	q := query.New(mongoClient)

	// init redis service
	context.Info("init redis cache")
	redisCacheName := viper.GetString("redis_cache.name")
	redisCacheURI := viper.GetString("redis_cache.uri")
	redisCachePwd := viper.GetString("redis_cache.password")
	redisCachePoolMultiplier := viper.GetFloat64("redis_cache.poolMultiplier")
	redisCachePool := redisclient.MustConnectRedis(redisCacheURI, redisCachePwd, redisclient.RedisParam{
		PoolMultiplier: redisCachePoolMultiplier,
		Retry:          true,
	})
	redisCache := redis.New(redisCacheName, metrics.New(redisCacheName), &redis.Pools{
		Src: redisCachePool,
	})

	mmiddleware.SetupCache(redisCache)

	// init chain service
	context.Info("init chain service")
	chainId := domain.ChainId(viper.GetInt32("chain.chainId"))
	chainService, err := chain.NewClient(context, &chain.ClientCfg{
		RpcUrls: map[int32]string{
			int32(chainId): viper.GetString("chain.rpcUrl"),
		},
		SignerKey: viper.GetString("chain.signerKey"),
	})
	if err != nil {
		context.WithField("err", err).Warn("chainService started with error")
	}

	ownership := contract.NewErc721(chainService, chainId)
	payment, err := contract.NewErc20(context, chainService, chainId, domain.Address(viper.GetString("payment.token")))
	if err != nil {
		context.WithField("err", err).Panic("failed to init payment token")
	}

	operator := domain.Address(viper.GetString("marketplace.operator")).ToLower()
	if signer, err := chainService.SignerAddress(); err == nil {
		operator = domain.Address(signer.Hex()).ToLower()
	}

	// construct repository, usecase and delivery
	hcRepo := hc_repo.New(mongoClient, redisCache)
	activityRepo := activity_repository.New(q)

	hc := hc_usecase.New(hcRepo)
	activity := activity_usecase.New(activityRepo)

	dispatcher := notifier.NewDispatcher(
		notifier.NewLogNotifier(),
		activity_usecase.NewRecorder(activityRepo),
	)

	marketplace := marketplace_usecase.NewMarketplaceUsecase(&marketplace_usecase.MarketplaceUsecaseCfg{
		Store:     marketplace_repository.NewListingStore(),
		Index:     marketplace_repository.NewCollectionIndex(),
		Ownership: ownership,
		Payment:   payment,
		Notifier:  dispatcher,
		Operator:  operator,
	})

	auth := auth_usecase.New(viper.GetString("auth.jwtSecret"))
	authMiddleware := auth_middleware.New(auth)

	cacheTtl := viper.GetDuration("http.cacheTtl")

	hc_delivery.New(e, hc)
	auth_delivery.New(e, auth)
	marketplace_delivery.New(e, marketplace, authMiddleware, cacheTtl)
	activity_delivery.New(e, activity, cacheTtl)

	go func() {
		if err := e.Start(viper.GetString("server.address")); err != nil && err != http.ErrServerClosed {
			log.Log().WithField("err", err).Error("shutting down the server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with a timeout of 10 seconds.
	// Use a buffered channel to avoid missing signals as recommended for signal.Notify
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	sig := <-quit
	log.Log().WithField("signal", sig).Info("received signal")
	ctx, cancel := ctx.WithTimeout(context, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Log().WithField("err", err).Error("shutting down the server")
	} else {
		log.Log().Info("shutdown server successfully")
	}
	dispatcher.Shutdown()
}
