package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/go-playground/validator/v10"
	"github.com/hashicorp/go-multierror"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by Load, with dots in
// keys replaced by underscores: kernel.entry_id is read from STUDYDAO_KERNEL_ENTRY_ID.
const EnvPrefix = "STUDYDAO"

// Config is the process configuration. It is built once at startup by Load
// and passed to the components that need it; nothing reads it afterwards.
type Config struct {
	Kernel   KernelConfig   `mapstructure:"kernel"`
	Contract ContractConfig `mapstructure:"contract"`
	Chain    ChainConfig    `mapstructure:"chain"`
	Token    TokenConfig    `mapstructure:"token"`
	API      APIConfig      `mapstructure:"api"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
	Log      LogConfig      `mapstructure:"log"`
}

type KernelConfig struct {
	Endpoint    string        `mapstructure:"endpoint" validate:"required,url"`
	EntryID     string        `mapstructure:"entry_id" validate:"required"`
	AccessToken string        `mapstructure:"access_token" validate:"required"`
	ID          uint64        `mapstructure:"id" validate:"required,gt=0"`
	Timeout     time.Duration `mapstructure:"timeout" validate:"gte=0"`
	// RateLimit is in calls per second, zero disables limiting.
	RateLimit float64       `mapstructure:"rate_limit" validate:"gte=0"`
	Retry     RetryConfig   `mapstructure:"retry"`
	Breaker   BreakerConfig `mapstructure:"breaker"`
}

type RetryConfig struct {
	// Max is the number of retries of a failed kernel call, zero disables retrying.
	Max      uint64        `mapstructure:"max"`
	Base     time.Duration `mapstructure:"base" validate:"gt=0"`
	MaxDelay time.Duration `mapstructure:"max_delay" validate:"gte=0"`
	Jitter   uint64        `mapstructure:"jitter" validate:"lte=100"`
}

type BreakerConfig struct {
	MaxFailures uint32        `mapstructure:"max_failures" validate:"gt=0"`
	OpenTimeout time.Duration `mapstructure:"open_timeout" validate:"gte=0"`
}

type ContractConfig struct {
	Address             string        `mapstructure:"address" validate:"required,eth_addr"`
	ConfirmationTimeout time.Duration `mapstructure:"confirmation_timeout" validate:"gt=0"`
	// TrackerCapacity is the number of verified sessions remembered locally.
	TrackerCapacity int `mapstructure:"tracker_capacity" validate:"gt=0"`
}

type ChainConfig struct {
	// RPC defaults to the kernel endpoint.
	RPC string `mapstructure:"rpc" validate:"omitempty,url"`
	// PrivateKey is hex encoded. It is only required by commands that send transactions.
	PrivateKey string `mapstructure:"private_key"`
	// ChainID is read from the node when zero.
	ChainID uint64 `mapstructure:"chain_id"`
}

type TokenConfig struct {
	Address string `mapstructure:"address" validate:"omitempty,eth_addr"`
}

type APIConfig struct {
	Listen string `mapstructure:"listen" validate:"required,hostname_port"`
}

type MetricsConfig struct {
	// Port of the metrics server, zero disables it.
	Port uint `mapstructure:"port" validate:"lte=65535"`
}

type LogConfig struct {
	Level string `mapstructure:"level" validate:"oneof=trace debug info warn error"`
	JSON  bool   `mapstructure:"json"`
}

// SetDefaults registers every key with its default. Keys without a default
// are registered empty so they can be set from the environment alone.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("kernel.endpoint", "")
	v.SetDefault("kernel.entry_id", "")
	v.SetDefault("kernel.access_token", "")
	v.SetDefault("kernel.id", 0)
	v.SetDefault("kernel.timeout", 30*time.Second)
	v.SetDefault("kernel.rate_limit", 0)
	v.SetDefault("kernel.retry.max", 3)
	v.SetDefault("kernel.retry.base", 500*time.Millisecond)
	v.SetDefault("kernel.retry.max_delay", 10*time.Second)
	v.SetDefault("kernel.retry.jitter", 15)
	v.SetDefault("kernel.breaker.max_failures", 5)
	v.SetDefault("kernel.breaker.open_timeout", time.Minute)

	v.SetDefault("contract.address", "")
	v.SetDefault("contract.confirmation_timeout", 2*time.Minute)
	v.SetDefault("contract.tracker_capacity", 1024)

	v.SetDefault("chain.rpc", "")
	v.SetDefault("chain.private_key", "")
	v.SetDefault("chain.chain_id", 0)

	v.SetDefault("token.address", "")
	v.SetDefault("api.listen", "localhost:8070")
	v.SetDefault("metrics.port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)
}

// Load reads the configuration from the optional config file named by the
// "config" key, the environment and any flags bound to v, in increasing
// order of precedence. It fails if a required value is missing or invalid.
func Load(v *viper.Viper) (*Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if file := v.GetString("config"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("could not read config file %s: %w", file, err)
		}
	}

	var cfg Config
	err := v.Unmarshal(&cfg, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)))
	if err != nil {
		return nil, fmt.Errorf("could not decode config: %w", err)
	}

	if cfg.Chain.RPC == "" {
		cfg.Chain.RPC = cfg.Kernel.Endpoint
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the struct tags and the values tags cannot express. All
// failures are reported together.
func (c *Config) Validate() error {
	var result *multierror.Error

	validate := validator.New()
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		return strings.SplitN(field.Tag.Get("mapstructure"), ",", 2)[0]
	})

	if err := validate.Struct(c); err != nil {
		var validationErrs validator.ValidationErrors
		if !errors.As(err, &validationErrs) {
			return fmt.Errorf("could not validate config: %w", err)
		}
		for _, fieldErr := range validationErrs {
			result = multierror.Append(result, fieldError(fieldErr))
		}
	}

	if c.Chain.PrivateKey != "" {
		if _, err := crypto.HexToECDSA(strings.TrimPrefix(c.Chain.PrivateKey, "0x")); err != nil {
			result = multierror.Append(result, errors.New("chain.private_key: invalid private key"))
		}
	}

	return result.ErrorOrNil()
}

func fieldError(fieldErr validator.FieldError) error {
	key := strings.TrimPrefix(fieldErr.Namespace(), "Config.")
	envVar := EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))

	switch fieldErr.Tag() {
	case "required":
		return fmt.Errorf("%s: required, set it in the config file or %s", key, envVar)
	case "eth_addr":
		return fmt.Errorf("%s: %q is not an account address", key, fieldErr.Value())
	default:
		if fieldErr.Param() != "" {
			return fmt.Errorf("%s: failed %s=%s validation, got %v", key, fieldErr.Tag(), fieldErr.Param(), fieldErr.Value())
		}
		return fmt.Errorf("%s: failed %s validation, got %v", key, fieldErr.Tag(), fieldErr.Value())
	}
}
