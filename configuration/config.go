package configuration

import (
	stderrors "errors"
	"io/fs"
	"net/netip"
	"regexp"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"rtmpinput/errors"
	"rtmpinput/logger"
)

const (
	packageName = "configuration"
)

var namePrefixPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// Config holds the application configuration
type Config struct {
	AWSRegion            string
	AWSProfile           string
	AcessKeyID           string
	AccessSecret         string
	EndpointURL          string
	LogLevel             string
	NamePrefix           string
	NameMaxAttempts      int
	DefaultWhitelistCIDR string
	DefaultNetworkPool   string
}

// Initialize sets up the configuration system
func Initialize() (*Config, error) {
	log := logger.For(packageName, "Initialize")

	// Set default values
	viper.SetDefault("AWS_REGION", "us-east-2")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("NAME_PREFIX", "rtmp-input")
	viper.SetDefault("NAME_MAX_ATTEMPTS", 3)
	viper.SetDefault("DEFAULT_WHITELIST_CIDR", "0.0.0.0/0")
	viper.SetDefault("DEFAULT_NETWORK_POOL", "10.0.0.0/24")

	// Configure Viper to read from environment
	viper.AutomaticEnv()

	// Read from .env file unless a caller already pointed viper elsewhere
	if viper.ConfigFileUsed() == "" {
		viper.SetConfigFile(".env")
	}
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !stderrors.As(err, &notFound) && !stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.New(errors.ErrConfigParse, "error reading config file",
				map[string]interface{}{
					"config_file": viper.ConfigFileUsed(),
				}, err)
		}
		log.Debug("No .env file found, using environment variables and defaults",
			zap.String("operation", "config_loading"),
		)
	}

	region := viper.GetString("AWS_REGION")
	if region == "" {
		return nil, errors.New(errors.ErrConfigInvalid, "invalid AWS_REGION",
			map[string]interface{}{
				"config_key": "AWS_REGION",
			}, nil)
	}

	namePrefix := viper.GetString("NAME_PREFIX")
	if !namePrefixPattern.MatchString(namePrefix) {
		return nil, errors.New(errors.ErrConfigInvalid, "invalid NAME_PREFIX",
			map[string]interface{}{
				"config_key": "NAME_PREFIX",
				"value":      namePrefix,
			}, nil)
	}

	maxAttempts := viper.GetInt("NAME_MAX_ATTEMPTS")
	if maxAttempts <= 0 {
		return nil, errors.New(errors.ErrConfigInvalid, "invalid NAME_MAX_ATTEMPTS",
			map[string]interface{}{
				"config_key": "NAME_MAX_ATTEMPTS",
				"value":      maxAttempts,
			}, nil)
	}

	// CIDR defaults feed the quick variant directly, so reject them early
	for _, key := range []string{"DEFAULT_WHITELIST_CIDR", "DEFAULT_NETWORK_POOL"} {
		value := viper.GetString(key)
		prefix, err := netip.ParsePrefix(value)
		if err != nil || prefix != prefix.Masked() {
			return nil, errors.New(errors.ErrConfigInvalid, "invalid "+key,
				map[string]interface{}{
					"config_key": key,
					"value":      value,
				}, err)
		}
	}

	config := &Config{
		AWSRegion:            region,
		AWSProfile:           viper.GetString("AWS_PROFILE"),
		AccessSecret:         viper.GetString("AWS_SECRET_ACCESS_KEY"),
		AcessKeyID:           viper.GetString("AWS_ACCESS_KEY_ID"),
		EndpointURL:          viper.GetString("AWS_ENDPOINT_URL"),
		LogLevel:             viper.GetString("LOG_LEVEL"),
		NamePrefix:           namePrefix,
		NameMaxAttempts:      maxAttempts,
		DefaultWhitelistCIDR: viper.GetString("DEFAULT_WHITELIST_CIDR"),
		DefaultNetworkPool:   viper.GetString("DEFAULT_NETWORK_POOL"),
	}

	log.Debug("Configuration loaded successfully",
		zap.String("operation", "config_complete"),
		zap.String("region", config.AWSRegion),
		zap.Bool("static_credentials", config.AcessKeyID != ""),
		zap.Bool("endpoint_override", config.EndpointURL != ""),
	)
	return config, nil
}
