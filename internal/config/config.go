package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/laundrycare/lce/internal/types"
	"github.com/spf13/viper"
)

type Configuration struct {
	Deployment DeploymentConfig `validate:"required"`
	Server     ServerConfig     `validate:"required"`
	Logging    LoggingConfig    `validate:"required"`
	Postgres   PostgresConfig
	Stripe     StripeConfig
	Billing    BillingConfig    `validate:"required"`
	Scheduling SchedulingConfig `validate:"required"`
}

type DeploymentConfig struct {
	Mode types.RunMode `validate:"required"`
}

type ServerConfig struct {
	Address string `validate:"required"`
}

type LoggingConfig struct {
	Level types.LogLevel `validate:"required"`
}

type PostgresConfig struct {
	Host                   string
	Port                   int
	User                   string
	Password               string
	DBName                 string
	SSLMode                string
	AutoMigrate            bool
	MaxOpenConns           int
	MaxIdleConns           int
	ConnMaxLifetimeMinutes int
}

type StripeConfig struct {
	SecretKey string
}

// BillingConfig carries every business threshold the billing and
// subscription services consume. All fields have defaults so a missing
// config file never breaks pricing or refunds.
type BillingConfig struct {
	WelcomeCredit         float64
	PPORatePerLb          float64
	PPOMinimum            float64
	PickupFee             float64
	ServiceFee            float64
	BagWeightLbs          float64
	AnnualDiscountPercent float64
	RefundGraceDays       int
	RefundPenaltyAnnual   float64
}

type SchedulingConfig struct {
	// CutoffTime is the same-day scheduling cutoff in 24h HH:MM
	CutoffTime string
	// MaxAttempts bounds the next-available-date search
	MaxAttempts int
}

func NewConfig() (*Configuration, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./internal/config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/lce")

	v.SetEnvPrefix("LCE")
	v.SetEnvKeyReplacer(strings.NewReplacer(
		".", "_",
		"-", "_",
	))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, err
		}
	} else {
		fmt.Printf("Using config file: %s\n", v.ConfigFileUsed())
	}

	var config Configuration
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("deployment.mode", string(types.ModeLocal))
	v.SetDefault("server.address", ":8080")
	v.SetDefault("logging.level", string(types.LogLevelInfo))

	v.SetDefault("postgres.host", "localhost")
	v.SetDefault("postgres.port", 5432)
	v.SetDefault("postgres.sslmode", "disable")
	v.SetDefault("postgres.maxopenconns", 10)
	v.SetDefault("postgres.maxidleconns", 5)
	v.SetDefault("postgres.connmaxlifetimeminutes", 60)

	v.SetDefault("billing.welcomecredit", 20.00)
	v.SetDefault("billing.pporateperlb", 2.99)
	v.SetDefault("billing.ppominimum", 30.00)
	v.SetDefault("billing.pickupfee", 9.99)
	v.SetDefault("billing.servicefee", 5.00)
	v.SetDefault("billing.bagweightlbs", 20.5)
	v.SetDefault("billing.annualdiscountpercent", 15)
	v.SetDefault("billing.refundgracedays", 5)
	v.SetDefault("billing.refundpenaltyannual", 100.00)

	v.SetDefault("scheduling.cutofftime", "14:00")
	v.SetDefault("scheduling.maxattempts", 30)
}

func (c Configuration) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}

// GetDefaultConfig returns a default configuration for local development
// and tests so business thresholds are always populated.
func GetDefaultConfig() *Configuration {
	return &Configuration{
		Deployment: DeploymentConfig{Mode: types.ModeLocal},
		Server:     ServerConfig{Address: ":8080"},
		Logging:    LoggingConfig{Level: types.LogLevelDebug},
		Billing: BillingConfig{
			WelcomeCredit:         20.00,
			PPORatePerLb:          2.99,
			PPOMinimum:            30.00,
			PickupFee:             9.99,
			ServiceFee:            5.00,
			BagWeightLbs:          20.5,
			AnnualDiscountPercent: 15,
			RefundGraceDays:       5,
			RefundPenaltyAnnual:   100.00,
		},
		Scheduling: SchedulingConfig{
			CutoffTime:  "14:00",
			MaxAttempts: 30,
		},
	}
}

func (c PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"user=%s password=%s dbname=%s host=%s port=%d sslmode=%s",
		c.User,
		c.Password,
		c.DBName,
		c.Host,
		c.Port,
		c.SSLMode,
	)
}
