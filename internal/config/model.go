package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/priorlabs/tabpfn-cli/internal/client"
	"github.com/priorlabs/tabpfn-cli/internal/common"
	"github.com/priorlabs/tabpfn-cli/internal/models"
)

// Config represents the application configuration structure
type Config struct {
	Server       ServerConfig       `mapstructure:"server" yaml:"server"`
	Cache        CacheConfig        `mapstructure:"cache" yaml:"cache"`
	Registration RegistrationConfig `mapstructure:"registration" yaml:"registration"`
	Logging      LoggingConfig      `mapstructure:"logging" yaml:"logging"`

	// Non-interactive token, skips the wizard entirely
	AccessToken string `mapstructure:"access_token" yaml:"access_token,omitempty"`

	// Where the config was read from, if anywhere
	file string
}

type ServerConfig struct {
	Protocol  string           `mapstructure:"protocol" yaml:"protocol" default:"https"`
	Host      string           `mapstructure:"host" yaml:"host"`
	Port      int              `mapstructure:"port" yaml:"port" default:"443"`
	Timeout   time.Duration    `mapstructure:"timeout" yaml:"timeout" default:"30s"`
	Endpoints models.Endpoints `mapstructure:"endpoints" yaml:"endpoints"`
}

type CacheConfig struct {
	Dir string `mapstructure:"dir" yaml:"dir"`
}

type RegistrationConfig struct {
	Dir            string `mapstructure:"dir" yaml:"dir"`
	ValidationLink string `mapstructure:"validation_link" yaml:"validation_link" default:"tabpfn-2023"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level" default:"warn"`
	Format string `mapstructure:"format" yaml:"format" default:"text"`
}

func (c *Config) File() string {
	return c.file
}

// GetServerUrl returns <protocol>://<host>:<port>.
func (c *Config) GetServerUrl() string {
	protocol := c.Server.Protocol
	if len(protocol) == 0 {
		protocol = DefaultProtocol
	}
	return fmt.Sprintf("%s://%s:%d", protocol, c.Server.Host, c.Server.Port)
}

// SetServer overrides the server from a --server flag. Accepts a bare host,
// host:port or a full URL.
func (c *Config) SetServer(server string) error {

	if !strings.Contains(server, "://") {
		server = fmt.Sprintf("%s://%s", c.Server.Protocol, server)
	}

	parsed, err := url.Parse(server)
	if err != nil {
		return fmt.Errorf("invalid server %q: %w", server, err)
	}

	if !common.IsValidServerURL(server) || len(parsed.Hostname()) == 0 {
		return fmt.Errorf("invalid server %q: expected http(s)://host[:port]", server)
	}

	c.Server.Protocol = parsed.Scheme
	c.Server.Host = parsed.Hostname()

	if port := parsed.Port(); len(port) > 0 {
		if _, err := fmt.Sscanf(port, "%d", &c.Server.Port); err != nil {
			return fmt.Errorf("invalid server port %q: %w", port, err)
		}
	} else if parsed.Scheme == "http" {
		c.Server.Port = 80
	} else {
		c.Server.Port = DefaultPort
	}

	return nil
}

func (c *Config) GetCacheDir() string {
	if len(c.Cache.Dir) == 0 {
		return common.DefaultCacheDir()
	}
	return common.ExpandHome(c.Cache.Dir)
}

func (c *Config) GetRegistrationDir() string {
	if len(c.Registration.Dir) == 0 {
		return common.DefaultStateDir()
	}
	return common.ExpandHome(c.Registration.Dir)
}

func (c *Config) GetValidationLink() string {
	if len(c.Registration.ValidationLink) == 0 {
		return DefaultValidationLink
	}
	return c.Registration.ValidationLink
}

func (c *Config) HasAccessToken() bool {
	return len(c.AccessToken) > 0
}

// ClientOptions is everything needed to build a service client.
func (c *Config) ClientOptions() client.Options {
	return client.Options{
		BaseURL:   c.GetServerUrl(),
		Timeout:   c.Server.Timeout,
		Endpoints: c.Server.Endpoints.WithDefaults(),
	}
}
