package constants

import "time"

const (
	//分頁
	DefaultPagingSize int = 10
	DefaultPaging     int = 1
	MaxPagingSize     int = 100
)

// for api auth
type ContextKey string

const (
	AuthorizationHeaderKey  ContextKey = "authorization"
	AuthorizationTypeBearer ContextKey = "bearer"
	AuthorizationPayloadKey ContextKey = "authorization_payload"
)

type RequestID string

const (
	RequestIDKey RequestID = "request_id"
)

type ENV string

const (
	Debug ENV = "debug"
	Dev   ENV = "development"
	Stag  ENV = "staging"
	Prod  ENV = "production"
)

// token 有效時間
const (
	AccessTokenDuration  = 15 * time.Minute
	RefreshTokenDuration = 7 * 24 * time.Hour
)

// OTP
const (
	OTPLength         = 6
	OTPExpiry         = 10 * time.Minute
	OTPResendCooldown = 2 * time.Minute
	OTPMaxAttempts    = 5
)

// 未驗證帳號超過此時間可被重新註冊
const UnverifiedRegistrationTTL = 24 * time.Hour

// 快取時間
const (
	CategoriesCacheTTL = 900 * time.Second
	MenuItemsCacheTTL  = 300 * time.Second
	SingleItemCacheTTL = 600 * time.Second
)

// 計價預設值, 可由設定檔覆蓋
const (
	DefaultDeliveryFee      = "500"
	DefaultServiceFeeRate   = "0.05"
	DefaultTaxRate          = "0.075"
	DefaultReferralDiscount = "500"
)

const (
	MaxCustomerMessageLen  = 500
	MaxCancelReasonLen     = 500
	AdminCancelReason      = "Cancelled by admin"
	BcryptCost             = 12
	OrderNumberPrefix      = "CK"
	OrderNumberMaxAttempts = 5
)
