package config

import "fmt"

type ServerConfig struct {
	Host           string   `mapstructure:"host"`
	Port           int      `mapstructure:"port" validate:"min=1,max=65535"`
	Mode           string   `mapstructure:"mode"`
	BaseURL        string   `mapstructure:"base_url"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

func (s *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type DatabaseConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port" validate:"min=1,max=65535"`
	Username        string `mapstructure:"username"`
	Password        string `mapstructure:"password"`
	Database        string `mapstructure:"database"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
}

func (d *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.Username, d.Password, d.Host, d.Port, d.Database)
}

type LoggerConfig struct {
	Level      string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format     string `mapstructure:"format" validate:"oneof=console json"`
	OutputPath string `mapstructure:"output_path"`
}

type PasswordConfig struct {
	BcryptCost int `mapstructure:"bcrypt_cost" validate:"min=4,max=31"`
}

type JWTConfig struct {
	Secret           string `mapstructure:"secret"`
	AccessExpMinutes int    `mapstructure:"access_exp_minutes" validate:"min=1"`
	RefreshExpDays   int    `mapstructure:"refresh_exp_days" validate:"min=1"`
}

type AuthConfig struct {
	Password PasswordConfig `mapstructure:"password"`
	JWT      JWTConfig      `mapstructure:"jwt"`
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

func (r *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type RateLimitConfig struct {
	Limit         int `mapstructure:"limit" validate:"min=1"`
	WindowSeconds int `mapstructure:"window_seconds" validate:"min=1"`
}

// PaymentConfig selects and configures the payment gateway. Provider is
// either "razorpay" or "mock"; the selection happens once at startup and
// the resulting gateway is injected into the payment use cases.
type PaymentConfig struct {
	Provider      string  `mapstructure:"provider" validate:"oneof=razorpay mock"`
	KeyID         string  `mapstructure:"key_id"`
	KeySecret     string  `mapstructure:"key_secret"`
	WebhookSecret string  `mapstructure:"webhook_secret"`
	Currency      string  `mapstructure:"currency"`
	PremiumPrice  int64   `mapstructure:"premium_price"`
	Coupons       Coupons `mapstructure:"coupons" validate:"dive,min=1,max=100"`
}

// Coupons maps coupon code to discount percentage (1-100).
type Coupons map[string]int
