package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sakibullah2006/dmart/internal/config"
	"github.com/sakibullah2006/dmart/internal/domain/model"
	"github.com/sakibullah2006/dmart/internal/handler"
	"github.com/sakibullah2006/dmart/internal/infra/cache"
	"github.com/sakibullah2006/dmart/internal/infra/commerce"
	"github.com/sakibullah2006/dmart/internal/infra/db"
	infraRepo "github.com/sakibullah2006/dmart/internal/infra/repository"
	"github.com/sakibullah2006/dmart/internal/middleware"
	repo "github.com/sakibullah2006/dmart/internal/repository"
	"github.com/sakibullah2006/dmart/internal/server"
	"github.com/sakibullah2006/dmart/internal/usecase"
	"github.com/sakibullah2006/dmart/internal/validator"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	draftJanitorEvery = time.Minute
	auditMemoryKeep   = 1000
)

type uuidGenerator struct{}

func (g *uuidGenerator) NewID() string {
	return uuid.NewString()
}

type realClock struct{}

func (c *realClock) Now() time.Time {
	return time.Now()
}

func newLogger(cfg config.Config) (*zap.Logger, error) {
	zcfg := zap.NewDevelopmentConfig()
	if cfg.IsProduction() {
		zcfg = zap.NewProductionConfig()
	}
	if lvl, err := zap.ParseAtomicLevel(cfg.LogLevel); err == nil {
		zcfg.Level = lvl
	}
	return zcfg.Build()
}

// Redisが無ければキャッシュなし
func newCatalogCache(ctx context.Context, cfg config.Config, logger *zap.Logger) (repo.CatalogCache, func()) {
	if cfg.RedisAddr == "" {
		logger.Info("catalog cache disabled")
		return cache.NoopCache{}, func() {}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		//起動は止めない（読み取りはリモートへ）
		logger.Warn("redis ping failed", zap.String("addr", cfg.RedisAddr), zap.Error(err))
	}
	return cache.NewRedisCache(client), func() { _ = client.Close() }
}

// DBが無ければログに書く
func newAuditRepository(cfg config.Config, logger *zap.Logger) (repo.AuditLogRepository, error) {
	if !cfg.AuditDBEnabled() {
		return infraRepo.NewAuditLogMemoryRepository(auditMemoryKeep, logger), nil
	}

	gormDB, err := db.Connect(db.Options{
		URL:      cfg.DatabaseURL,
		Host:     cfg.PostgresHost,
		Port:     cfg.PostgresPort,
		User:     cfg.PostgresUser,
		Password: cfg.PostgresPassword,
		Name:     cfg.PostgresDB,
		SSLMode:  cfg.PostgresSSLMode,
	})
	if err != nil {
		return nil, err
	}
	if err := gormDB.AutoMigrate(&model.AuditLog{}); err != nil {
		return nil, err
	}
	return infraRepo.NewAuditLogGormRepository(gormDB), nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	//リモートAPI
	client := commerce.NewClient(cfg.APIBaseURL, cfg.SessionCookieName, cfg.APITimeout, logger)
	carts := commerce.NewCartRepository(client)
	products := commerce.NewProductRepository(client)
	categories := commerce.NewCategoryRepository(client)
	attributes := commerce.NewAttributeRepository(client)
	orders := commerce.NewOrderRepository(client)
	users := commerce.NewUserRepository(client)
	sessions := commerce.NewSessionRepository(client)
	media := commerce.NewMediaRepository(client)

	catalogCache, closeCache := newCatalogCache(ctx, cfg, logger)
	defer closeCache()

	auditRepo, err := newAuditRepository(cfg, logger)
	if err != nil {
		logger.Fatal("failed to open audit store", zap.Error(err))
	}

	drafts := infraRepo.NewDraftMemoryRepository(cfg.CheckoutDraftTTL)
	go drafts.RunJanitor(ctx, draftJanitorEvery)

	//usecaseに渡す部品
	idGen := &uuidGenerator{}
	clock := &realClock{}
	v := validator.New()

	//Usecase生成
	authUC := usecase.NewAuthUsecase(sessions, validator.NewAuthValidator(v), logger)
	cartUC := usecase.NewCartUsecase(carts, logger)
	productUC := usecase.NewProductUsecase(products, catalogCache, cfg.CatalogCacheTTL, validator.NewCatalogValidator(v), auditRepo, clock, logger)
	categoryUC := usecase.NewCategoryUsecase(categories, catalogCache, cfg.CatalogCacheTTL, validator.NewCatalogValidator(v), logger)
	attributeUC := usecase.NewAttributeUsecase(attributes, validator.NewCatalogValidator(v))
	orderUC := usecase.NewOrderUsecase(orders, carts, auditRepo, clock, logger)
	checkoutUC := usecase.NewCheckoutUsecase(drafts, carts, orderUC, validator.NewCheckoutValidator(v), idGen, clock, logger)
	adminOrderUC := usecase.NewAdminOrderUsecase(orders, auditRepo, clock, logger)
	adminUserUC := usecase.NewAdminUserUsecase(users, validator.NewCatalogValidator(v))
	mediaUC := usecase.NewMediaUsecase(media, logger)

	//Handler生成
	hint := middleware.NewSessionHint(cfg.SessionHintSecret, cfg.SessionHintTTL, cfg.CookieSecure)
	renderer, err := handler.NewRenderer()
	if err != nil {
		logger.Fatal("failed to parse templates", zap.Error(err))
	}

	e := server.New(server.Options{
		SessionCookieName: cfg.SessionCookieName,
		Hint:              hint,
		Sessions:          authUC,
		Renderer:          renderer,
		Logger:            logger,
	}, server.Handlers{
		Product:      handler.NewProductHandler(productUC, categoryUC),
		Cart:         handler.NewCartHandler(cartUC, productUC),
		Checkout:     handler.NewCheckoutHandler(checkoutUC),
		Order:        handler.NewOrderHandler(orderUC),
		Auth:         handler.NewAuthHandler(authUC, hint, cfg.SessionCookieName, cfg.CookieSecure),
		Image:        handler.NewImageProxyHandler(mediaUC),
		AdminProduct: handler.NewAdminProductHandler(productUC, mediaUC),
		AdminCatalog: handler.NewAdminCatalogHandler(categoryUC, attributeUC),
		AdminOrder:   handler.NewAdminOrderHandler(adminOrderUC),
		AdminUser:    handler.NewAdminUserHandler(adminUserUC),
	})

	//Server起動
	logger.Info("starting storefront",
		zap.String("port", cfg.Port),
		zap.String("environment", cfg.GoEnv),
		zap.String("api_base_url", cfg.APIBaseURL),
	)
	if err := server.Start(ctx, e, ":"+cfg.Port); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
	logger.Info("server exited")
}
