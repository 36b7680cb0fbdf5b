package appcontext

import (
	"context"
	"fmt"
	"time"

	"github.com/RoyceAzure/lab/kitchen/internal/config"
	"github.com/RoyceAzure/lab/kitchen/internal/domain/pricing"
	"github.com/RoyceAzure/lab/kitchen/internal/infra/cache"
	"github.com/RoyceAzure/lab/kitchen/internal/infra/mail"
	"github.com/RoyceAzure/lab/kitchen/internal/infra/producer"
	"github.com/RoyceAzure/lab/kitchen/internal/infra/ratelimit"
	"github.com/RoyceAzure/lab/kitchen/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/kitchen/internal/infra/repository/redis_decorator"
	"github.com/RoyceAzure/lab/kitchen/internal/infra/repository/redis_repo"
	"github.com/RoyceAzure/lab/kitchen/internal/infra/token"
	"github.com/RoyceAzure/lab/kitchen/internal/service"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const cachePrefix = "kitchen"

type ApplicationContext struct {
	Cf          *config.Config
	DbConn      *gorm.DB
	Store       db.UnifiedDB
	RedisClient *redis.Client
	Cache       cache.Cache
	TokenMaker  token.Maker
	RateLimiter *ratelimit.RsTokenBucket
	Producer    producer.Producer

	MailService    service.IMailService
	OTPService     service.IOTPService
	AuthService    service.IAuthService
	UserService    service.IUserService
	CatalogService service.ICatalogService
	CartService    service.ICartService
	OrderService   service.IOrderService
	PromoService   service.IPromoService
}

func NewApplicationContext(cf *config.Config) *ApplicationContext {
	return &ApplicationContext{Cf: cf}
}

// InitDatabase 只建立資料庫連線, 給 migrate 指令使用
func (app *ApplicationContext) InitDatabase(ctx context.Context) error {
	if err := app.setUpdbConn(ctx); err != nil {
		return err
	}
	app.setUpStore()
	return nil
}

// Init 建立所有依賴, 任一步驟失敗即回傳錯誤
func (app *ApplicationContext) Init(ctx context.Context) error {
	if err := app.InitDatabase(ctx); err != nil {
		return err
	}
	if err := app.setUpRedis(ctx); err != nil {
		return err
	}
	if err := app.setUpTokenMaker(); err != nil {
		return err
	}
	app.setUpRateLimiter()
	app.setUpProducer()
	app.setUpMailService()
	app.setUpOTPService()
	app.setUpAuthService()
	app.setUpUserService()
	app.setUpCatalogService()
	app.setUpCartService()
	app.setUpOrderService()
	app.setUpPromoService()
	return nil
}

func (app *ApplicationContext) setUpdbConn(ctx context.Context) error {
	log.Info().Msg("Start setup database connection")
	conn, err := db.GetDbConn(ctx, app.Cf.DbName, app.Cf.DbHost, app.Cf.DbPort, app.Cf.DbUser, app.Cf.DbPas)
	if err != nil {
		return fmt.Errorf("setup database connection: %w", err)
	}
	app.DbConn = conn
	log.Info().Msg("Finish setup database connection")
	return nil
}

func (app *ApplicationContext) setUpStore() {
	log.Info().Msg("Start setup database store")
	app.Store = db.NewUnifiedDB(app.DbConn)
	log.Info().Msg("Finish setup database store")
}

func (app *ApplicationContext) setUpRedis(ctx context.Context) error {
	log.Info().Msg("Start setup redis client")
	app.RedisClient = cache.GetRedisClient(app.Cf.RedisAddr,
		cache.WithPassword(app.Cf.RedisPassword),
		cache.WithDB(app.Cf.RedisDB),
	)
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := cache.Ping(pingCtx, app.RedisClient); err != nil {
		return fmt.Errorf("setup redis client: %w", err)
	}
	app.Cache = cache.NewRedisCache(app.RedisClient, cachePrefix)
	log.Info().Msg("Finish setup redis client")
	return nil
}

func (app *ApplicationContext) setUpTokenMaker() error {
	log.Info().Msg("Start setup token maker")
	maker, err := token.NewJWTMaker(app.Cf.JwtAccessSecret, app.Cf.JwtRefreshSecret)
	if err != nil {
		return fmt.Errorf("無法創建 token maker: %w", err)
	}
	app.TokenMaker = maker
	log.Info().Msg("Finish setup token maker")
	return nil
}

func (app *ApplicationContext) setUpRateLimiter() {
	log.Info().Msg("Start setup rate limiter")
	app.RateLimiter = ratelimit.NewRsTokenBucket(app.RedisClient, cachePrefix+":rate_limit")
	log.Info().Msg("Finish setup rate limiter")
}

func (app *ApplicationContext) setUpProducer() {
	log.Info().Msg("Start setup kafka producer")
	brokers := app.Cf.Brokers()
	app.Producer = producer.New(producer.DefaultConfig(brokers, app.Cf.KafkaOrderTopic))
	if len(brokers) == 0 {
		log.Warn().Msg("KAFKA_BROKERS not set, order events are disabled")
	}
	log.Info().Msg("Finish setup kafka producer")
}

// setUpMailService 未設定smtp帳號時只把信件寫到log
func (app *ApplicationContext) setUpMailService() {
	log.Info().Msg("Start setup mail service")
	var sender mail.EmailSender
	if app.Cf.EmailAccount == "" || app.Cf.SmtpAuthKey == "" {
		log.Warn().Msg("smtp credentials not set, emails are logged only")
		sender = mail.NewLogSender()
	} else {
		sender = mail.NewSMTPSender(app.Cf.EmailFrom, app.Cf.EmailAccount, app.Cf.SmtpAuthKey, app.Cf.SmtpHost, app.Cf.SmtpPort)
	}
	app.MailService = service.NewMailService(sender, app.Cf.EmailFrom)
	log.Info().Msg("Finish setup mail service")
}

func (app *ApplicationContext) setUpOTPService() {
	log.Info().Msg("Start setup otp service")
	app.OTPService = service.NewOTPService(redis_repo.NewOTPRepo(app.Cache), app.MailService)
	log.Info().Msg("Finish setup otp service")
}

func (app *ApplicationContext) setUpAuthService() {
	log.Info().Msg("Start setup auth service")
	app.AuthService = service.NewAuthService(
		app.Store,
		app.TokenMaker,
		redis_repo.NewRefreshTokenRepo(app.Cache),
		app.OTPService,
		app.MailService,
		service.AuthConfig{
			AdminSecret:      app.Cf.AdminSecret,
			AccessTokenTTL:   app.Cf.AccessTokenTTL,
			RefreshTokenTTL:  app.Cf.RefreshTokenTTL,
			ReferralDiscount: app.Cf.ReferralDiscountDecimal(),
		},
	)
	log.Info().Msg("Finish setup auth service")
}

func (app *ApplicationContext) setUpUserService() {
	log.Info().Msg("Start setup user service")
	app.UserService = service.NewUserService(app.Store, redis_repo.NewRefreshTokenRepo(app.Cache))
	log.Info().Msg("Finish setup user service")
}

// setUpCatalogService 菜單讀取走 cache-aside
func (app *ApplicationContext) setUpCatalogService() {
	log.Info().Msg("Start setup catalog service")
	repo := redis_decorator.NewCacheAsideCatalogRepo(app.Store, redis_repo.NewCatalogCacheRepo(app.Cache))
	app.CatalogService = service.NewCatalogService(repo)
	log.Info().Msg("Finish setup catalog service")
}

func (app *ApplicationContext) setUpCartService() {
	log.Info().Msg("Start setup cart service")
	app.CartService = service.NewCartService(app.Store)
	log.Info().Msg("Finish setup cart service")
}

func (app *ApplicationContext) setUpOrderService() {
	log.Info().Msg("Start setup order service")
	rates := pricing.Rates{
		DeliveryFee:    app.Cf.DeliveryFeeDecimal(),
		ServiceFeeRate: app.Cf.ServiceFeeRateDecimal(),
		TaxRate:        app.Cf.TaxRateDecimal(),
	}
	app.OrderService = service.NewOrderService(app.Store, app.MailService, producer.NewOrderProducer(app.Producer), rates)
	log.Info().Msg("Finish setup order service")
}

func (app *ApplicationContext) setUpPromoService() {
	log.Info().Msg("Start setup promo service")
	app.PromoService = service.NewPromoService(app.Store)
	log.Info().Msg("Finish setup promo service")
}

// PingDatabase 給 health check 使用
func (app *ApplicationContext) PingDatabase(ctx context.Context) error {
	sqlDB, err := app.DbConn.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (app *ApplicationContext) PingRedis(ctx context.Context) error {
	return cache.Ping(ctx, app.RedisClient)
}

// Shutdown 依建立的相反順序關閉, 個別錯誤只記錄不中斷
func (app *ApplicationContext) Shutdown(ctx context.Context) error {
	log.Info().Msg("Start application shutdown")

	done := make(chan struct{})
	go func() {
		defer close(done)

		if app.Producer != nil {
			log.Info().Msg("Closing kafka producer...")
			if err := app.Producer.Close(); err != nil {
				log.Error().Err(err).Msg("kafka producer shutdown error")
			}
		}

		if app.RedisClient != nil {
			log.Info().Msg("Closing redis client...")
			if err := app.RedisClient.Close(); err != nil {
				log.Error().Err(err).Msg("redis client shutdown error")
			}
		}

		if app.DbConn != nil {
			log.Info().Msg("Closing database connection...")
			if sqlDB, err := app.DbConn.DB(); err == nil {
				if err := sqlDB.Close(); err != nil {
					log.Error().Err(err).Msg("database shutdown error")
				}
			}
		}

		log.Info().Msg("Application shutdown complete")
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("shutdown timeout: %w", ctx.Err())
	}
}
