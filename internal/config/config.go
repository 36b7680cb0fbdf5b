package config

import (
	"log"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/RoyceAzure/lab/kitchen/internal/constants"
	"github.com/fsnotify/fsnotify"
	"github.com/shopspring/decimal"
	viper "github.com/spf13/viper"
)

/*
把init config跟read config分開
init : 需要設置viper watch 與 onConfigChange
read : 一般讀取  需要使用讀寫鎖
*/
var configSingleton *ConfigSingleTon
var muonce sync.Once

type ConfigSingleTon struct {
	Config *Config
	mu     sync.RWMutex
}

type Config struct {
	ServiceName string `mapstructure:"SERVICE_NAME"`
	ServerPort  string `mapstructure:"SERVER_PORT"`
	Env         string `mapstructure:"ENV"`
	LogLevel    string `mapstructure:"LOG_LEVEL"`

	DbName string `mapstructure:"POSTGRES_DB"`
	DbHost string `mapstructure:"POSTGRES_HOST"`
	DbPort string `mapstructure:"POSTGRES_PORT"`
	DbUser string `mapstructure:"POSTGRES_USER"`
	DbPas  string `mapstructure:"POSTGRES_PASSWORD"`

	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`

	JwtAccessSecret  string        `mapstructure:"JWT_ACCESS_SECRET"`
	JwtRefreshSecret string        `mapstructure:"JWT_REFRESH_SECRET"`
	AccessTokenTTL   time.Duration `mapstructure:"ACCESS_TOKEN_TTL"`
	RefreshTokenTTL  time.Duration `mapstructure:"REFRESH_TOKEN_TTL"`
	AdminSecret      string        `mapstructure:"ADMIN_SECRET"`

	SmtpHost     string `mapstructure:"SMTP_HOST"`
	SmtpPort     int    `mapstructure:"SMTP_PORT"`
	EmailAccount string `mapstructure:"EMAIL_ACCOUNT"`
	SmtpAuthKey  string `mapstructure:"SMTP_AUTH_KEY"`
	EmailFrom    string `mapstructure:"EMAIL_FROM_NAME"`

	KafkaBrokers    string `mapstructure:"KAFKA_BROKERS"`
	KafkaOrderTopic string `mapstructure:"KAFKA_ORDER_TOPIC"`

	DeliveryFee      string `mapstructure:"DELIVERY_FEE"`
	ServiceFeeRate   string `mapstructure:"SERVICE_FEE_RATE"`
	TaxRate          string `mapstructure:"TAX_RATE"`
	ReferralDiscount string `mapstructure:"REFERRAL_DISCOUNT"`

	RateLimitPublic        int `mapstructure:"RATE_LIMIT_PUBLIC"`
	RateLimitAuth          int `mapstructure:"RATE_LIMIT_AUTH"`
	RateLimitAuthenticated int `mapstructure:"RATE_LIMIT_AUTHENTICATED"`
}

func (c *Config) IsProduction() bool {
	return c.Env == string(constants.Prod)
}

// Brokers KAFKA_BROKERS 以逗號分隔, 空字串代表不啟用kafka
func (c *Config) Brokers() []string {
	var brokers []string
	for _, b := range strings.Split(c.KafkaBrokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

// 設定檔數字格式錯誤時退回預設值
func (c *Config) DeliveryFeeDecimal() decimal.Decimal {
	return parseDecimal(c.DeliveryFee, constants.DefaultDeliveryFee)
}

func (c *Config) ServiceFeeRateDecimal() decimal.Decimal {
	return parseDecimal(c.ServiceFeeRate, constants.DefaultServiceFeeRate)
}

func (c *Config) TaxRateDecimal() decimal.Decimal {
	return parseDecimal(c.TaxRate, constants.DefaultTaxRate)
}

func (c *Config) ReferralDiscountDecimal() decimal.Decimal {
	return parseDecimal(c.ReferralDiscount, constants.DefaultReferralDiscount)
}

func parseDecimal(v, fallback string) decimal.Decimal {
	if d, err := decimal.NewFromString(v); err == nil {
		return d
	}
	return decimal.RequireFromString(fallback)
}

func GetConfig() *Config {
	initConfig()
	configSingleton.mu.RLock()
	defer configSingleton.mu.RUnlock()
	return configSingleton.Config
}

func initConfig() {
	if configSingleton == nil {
		muonce.Do(func() {
			configSingleton = &ConfigSingleTon{}
			cf, err := loadConfig()
			if err != nil {
				log.Fatalf("error read config: %v", err)
			}
			configSingleton.Config = cf

			if viper.ConfigFileUsed() == "" {
				return
			}
			viper.WatchConfig()
			viper.OnConfigChange(func(e fsnotify.Event) {
				cf, err := loadConfig()
				if err != nil {
					log.Printf("failed to reload config file %s: %v", e.Name, err)
					return
				}
				configSingleton.mu.Lock()
				configSingleton.Config = cf
				configSingleton.mu.Unlock()
			})
		})
	}
}

/*
單純回傳錯誤  由外部決定要不要Fatal
設定檔不存在時只使用環境變數與預設值
*/
func loadConfig() (*Config, error) {
	setDefaults()

	path := os.Getenv("KITCHEN_CONFIG_FILE")
	if path == "" {
		path = ".env"
	}
	viper.SetConfigFile(path)
	viper.SetConfigType("env")
	viper.AutomaticEnv()

	if _, statErr := os.Stat(path); statErr == nil {
		if err := viper.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	cf := &Config{}
	if err := viper.Unmarshal(cf); err != nil {
		return nil, err
	}
	return cf, nil
}

// AutomaticEnv 只對有註冊過的key生效, 所有key都需要預設值
func setDefaults() {
	viper.SetDefault("SERVICE_NAME", "kitchen")
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("ENV", string(constants.Dev))
	viper.SetDefault("LOG_LEVEL", "info")

	viper.SetDefault("POSTGRES_DB", "kitchen")
	viper.SetDefault("POSTGRES_HOST", "localhost")
	viper.SetDefault("POSTGRES_PORT", "5432")
	viper.SetDefault("POSTGRES_USER", "postgres")
	viper.SetDefault("POSTGRES_PASSWORD", "")

	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)

	viper.SetDefault("JWT_ACCESS_SECRET", "")
	viper.SetDefault("JWT_REFRESH_SECRET", "")
	viper.SetDefault("ACCESS_TOKEN_TTL", constants.AccessTokenDuration)
	viper.SetDefault("REFRESH_TOKEN_TTL", constants.RefreshTokenDuration)
	viper.SetDefault("ADMIN_SECRET", "")

	viper.SetDefault("SMTP_HOST", "smtp.gmail.com")
	viper.SetDefault("SMTP_PORT", 587)
	viper.SetDefault("EMAIL_ACCOUNT", "")
	viper.SetDefault("SMTP_AUTH_KEY", "")
	viper.SetDefault("EMAIL_FROM_NAME", "Chuks Kitchen")

	viper.SetDefault("KAFKA_BROKERS", "")
	viper.SetDefault("KAFKA_ORDER_TOPIC", "kitchen.orders")

	viper.SetDefault("DELIVERY_FEE", constants.DefaultDeliveryFee)
	viper.SetDefault("SERVICE_FEE_RATE", constants.DefaultServiceFeeRate)
	viper.SetDefault("TAX_RATE", constants.DefaultTaxRate)
	viper.SetDefault("REFERRAL_DISCOUNT", constants.DefaultReferralDiscount)

	viper.SetDefault("RATE_LIMIT_PUBLIC", 30)
	viper.SetDefault("RATE_LIMIT_AUTH", 10)
	viper.SetDefault("RATE_LIMIT_AUTHENTICATED", 100)
}
