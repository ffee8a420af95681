package config

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/priorlabs/tabpfn-cli/internal/common"
	"github.com/priorlabs/tabpfn-cli/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

const (
	DefaultProtocol       = "https"
	DefaultHost           = "tabpfn-server-wjedmz7r5a-ez.a.run.app"
	DefaultPort           = 443
	DefaultTimeout        = "30s"
	DefaultValidationLink = "tabpfn-2023"
	DefaultLogLevel       = "warn"
	DefaultLogFormat      = "text"

	EnvPrefix = "TABPFN"
)

func DefaultConfig() *Config {

	v := viper.New()

	// Set default values
	setDefaults(v)

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		log.Fatalf("error unmarshaling default config: %v", err)
	}

	config.Server.Endpoints = models.DefaultEndpoints()

	return &config
}

// Load loads the configuration from various sources
func Load(configFile string) (*Config, error) {

	loadEnvFile()

	v := viper.New()

	setupViperConfig(v, configFile)
	bindEnvironmentVariables(v)

	config, err := readAndUnmarshalConfig(v)
	if err != nil {
		return nil, err
	}

	if err := setupLogging(config, v, os.Stderr); err != nil {
		return nil, err
	}

	return config, nil
}

// loadEnvFile loads the .env file if it exists
func loadEnvFile() {
	if err := gotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Warning: Error loading .env file: %v\n", err)
	}
}

// setupViperConfig configures viper with file paths and defaults
func setupViperConfig(v *viper.Viper, configFile string) {

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath(filepath.Join(common.HomeDir(), ".config", "tabpfn"))

	if len(configFile) > 0 {
		v.SetConfigFile(configFile)
	}

	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// bindEnvironmentVariables binds all environment variables to viper
func bindEnvironmentVariables(v *viper.Viper) {

	// Server
	v.BindEnv("server.protocol", "TABPFN_SERVER_PROTOCOL")
	v.BindEnv("server.host", "TABPFN_SERVER_HOST")
	v.BindEnv("server.port", "TABPFN_SERVER_PORT")
	v.BindEnv("server.timeout", "TABPFN_SERVER_TIMEOUT")

	// Local state
	v.BindEnv("cache.dir", "TABPFN_CACHE_DIR")
	v.BindEnv("registration.dir", "TABPFN_REGISTRATION_DIR")
	v.BindEnv("registration.validation_link", "TABPFN_VALIDATION_LINK")

	// Logging
	v.BindEnv("logging.level", "TABPFN_LOGGING_LEVEL")
	v.BindEnv("logging.format", "TABPFN_LOGGING_FORMAT")

	// Headless usage
	v.BindEnv("access_token", "TABPFN_ACCESS_TOKEN")
}

// readAndUnmarshalConfig reads the configuration file and unmarshals it
func readAndUnmarshalConfig(v *viper.Viper) (*Config, error) {

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; proceed with defaults and environment variables
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	config.file = v.ConfigFileUsed()
	config.Server.Endpoints = config.Server.Endpoints.WithDefaults()

	return &config, nil
}

// setupLogging configures logrus from the config. Logs never go to stdout,
// which belongs to the prompts and command output.
func setupLogging(config *Config, v *viper.Viper, out io.Writer) error {

	logrusLevel, err := logrus.ParseLevel(config.Logging.Level)
	if err != nil {
		return fmt.Errorf("error parsing log level: %w", err)
	}

	logrus.SetLevel(logrusLevel)
	logrus.SetOutput(out)

	switch strings.ToLower(config.Logging.Format) {
	case "json":
		logrus.SetFormatter(&logrus.JSONFormatter{})
	case "text":
		logrus.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	default:
		logrus.WithFields(logrus.Fields{
			"format": config.Logging.Format,
		}).Warn("Unknown log format")
	}

	// Dump out the config settings if in debug mode
	if logrusLevel >= logrus.DebugLevel {
		for key, value := range v.AllSettings() {
			if key == "access_token" {
				value = "<redacted>"
			}
			logrus.Debugf("Config '%s': %v\n", key, value)
		}
	}

	return nil
}

func setDefaults(v *viper.Viper) {

	// Server defaults
	v.SetDefault("server.protocol", DefaultProtocol)
	v.SetDefault("server.host", DefaultHost)
	v.SetDefault("server.port", DefaultPort)
	v.SetDefault("server.timeout", DefaultTimeout)

	// Local state
	v.SetDefault("cache.dir", common.DefaultCacheDir())
	v.SetDefault("registration.dir", common.DefaultStateDir())
	v.SetDefault("registration.validation_link", DefaultValidationLink)

	// Logging defaults
	v.SetDefault("logging.level", DefaultLogLevel)
	v.SetDefault("logging.format", DefaultLogFormat)
}
