package cmd

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

type Config struct {
	HTTPPort       string
	RequestTimeout time.Duration
	LogLevel       string

	DBHost            string
	DBPort            string
	DBUser            string
	DBPassword        string
	DBName            string
	DBSslMode         string
	DBMaxOpenConns    int
	DBMaxIdleConns    int
	DBConnMaxLifetime time.Duration

	VoucherMaxAttempts   int
	VoucherRetryBackoff  time.Duration
	VoucherAuditSchedule string
	BulkMaxBatchSize     int

	// Seed values for the company settings row; used only while the row does not exist.
	DefaultPricePerLb        decimal.Decimal
	DefaultEstablishmentCode string
	DefaultEmissionPointCode string
}

// DSN is the postgres connection string for gorm.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// LoadConfig reads the configuration from the environment. A .env file in the
// working directory is loaded first when present; real environment variables win.
func LoadConfig() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("HTTP_PORT", "8080")
	v.SetDefault("REQUEST_TIMEOUT", "10s")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_NAME", "courierdesk")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 25)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_CONN_MAX_LIFETIME", "5m")
	v.SetDefault("VOUCHER_MAX_ATTEMPTS", 5)
	v.SetDefault("VOUCHER_RETRY_BACKOFF", "50ms")
	v.SetDefault("VOUCHER_AUDIT_SCHEDULE", "0 */15 * * * *")
	v.SetDefault("BULK_MAX_BATCH_SIZE", 500)
	v.SetDefault("DEFAULT_PRICE_PER_LB", "3.50")
	v.SetDefault("DEFAULT_ESTABLISHMENT_CODE", "001")
	v.SetDefault("DEFAULT_EMISSION_POINT_CODE", "001")

	durations := make(map[string]time.Duration, 3)
	for _, key := range []string{"REQUEST_TIMEOUT", "DB_CONN_MAX_LIFETIME", "VOUCHER_RETRY_BACKOFF"} {
		d, err := time.ParseDuration(v.GetString(key))
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", key, err)
		}
		durations[key] = d
	}

	price, err := decimal.NewFromString(v.GetString("DEFAULT_PRICE_PER_LB"))
	if err != nil {
		return Config{}, fmt.Errorf("DEFAULT_PRICE_PER_LB: %w", err)
	}

	return Config{
		HTTPPort:       v.GetString("HTTP_PORT"),
		RequestTimeout: durations["REQUEST_TIMEOUT"],
		LogLevel:       v.GetString("LOG_LEVEL"),

		DBHost:            v.GetString("DB_HOST"),
		DBPort:            v.GetString("DB_PORT"),
		DBUser:            v.GetString("DB_USER"),
		DBPassword:        v.GetString("DB_PASSWORD"),
		DBName:            v.GetString("DB_NAME"),
		DBSslMode:         v.GetString("DB_SSLMODE"),
		DBMaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
		DBMaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
		DBConnMaxLifetime: durations["DB_CONN_MAX_LIFETIME"],

		VoucherMaxAttempts:   v.GetInt("VOUCHER_MAX_ATTEMPTS"),
		VoucherRetryBackoff:  durations["VOUCHER_RETRY_BACKOFF"],
		VoucherAuditSchedule: v.GetString("VOUCHER_AUDIT_SCHEDULE"),
		BulkMaxBatchSize:     v.GetInt("BULK_MAX_BATCH_SIZE"),

		DefaultPricePerLb:        price,
		DefaultEstablishmentCode: v.GetString("DEFAULT_ESTABLISHMENT_CODE"),
		DefaultEmissionPointCode: v.GetString("DEFAULT_EMISSION_POINT_CODE"),
	}, nil
}
