// Package config loads the greeter configuration from defaults, an optional
// config file, a .env file and GREETER_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/agilisium/greeter/internal/web"
)

const EnvPrefix = "GREETER"

// Config is the complete greeter configuration
type Config struct {
	Server ServerConfig `mapstructure:"server" yaml:"server"`
}

// ServerConfig controls the listening socket and the HTTP server
type ServerConfig struct {
	Host            string        `mapstructure:"host" yaml:"host"`
	Port            int           `mapstructure:"port" yaml:"port"`
	Name            string        `mapstructure:"name" yaml:"name"`
	MaxConns        int           `mapstructure:"max_conns" yaml:"max_conns"`
	Compress        bool          `mapstructure:"compress" yaml:"compress"`
	ColorOutput     bool          `mapstructure:"color_output" yaml:"color_output"`
	RecoverPanic    bool          `mapstructure:"recover_panic" yaml:"recover_panic"`
	CertFile        string        `mapstructure:"cert_file" yaml:"cert_file,omitempty"`
	KeyFile         string        `mapstructure:"key_file" yaml:"key_file,omitempty"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
}

// DefaultConfig listens where the development server always has:
// 127.0.0.1:5000.
func DefaultConfig() *Config {
	ws := web.DefaultServerConfig()
	return &Config{
		Server: ServerConfig{
			Host:            "127.0.0.1",
			Port:            5000,
			Name:            ws.Name,
			ColorOutput:     ws.ColorOutput,
			RecoverPanic:    ws.RecoverPanic,
			ShutdownTimeout: ws.ShutdownTimeout,
		},
	}
}

// New returns a viper instance primed with defaults and environment
// bindings. path names an explicit config file; when empty greeter.* is
// looked up in the working directory and /etc/greeter.
func New(path string) *viper.Viper {
	v := viper.New()
	def := DefaultConfig().Server
	v.SetDefault("server.host", def.Host)
	v.SetDefault("server.port", def.Port)
	v.SetDefault("server.name", def.Name)
	v.SetDefault("server.max_conns", def.MaxConns)
	v.SetDefault("server.compress", def.Compress)
	v.SetDefault("server.color_output", def.ColorOutput)
	v.SetDefault("server.recover_panic", def.RecoverPanic)
	v.SetDefault("server.cert_file", def.CertFile)
	v.SetDefault("server.key_file", def.KeyFile)
	v.SetDefault("server.shutdown_timeout", def.ShutdownTimeout)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("greeter")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/greeter")
	}
	return v
}

// Load reads .env (if present) into the environment, then the config file
// (if any) and unmarshals the result. A missing default config file is not
// an error; a missing explicit one is.
func Load(v *viper.Viper) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || v.ConfigFileUsed() != "" {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks if the configuration is usable
func (c *Config) Validate() error {
	s := c.Server
	// 0 picks a free port
	if s.Port < 0 || s.Port > 65535 {
		return fmt.Errorf("server.port %d out of range 0-65535", s.Port)
	}
	if s.MaxConns < 0 {
		return fmt.Errorf("server.max_conns must not be negative, got %d", s.MaxConns)
	}
	if (s.CertFile == "") != (s.KeyFile == "") {
		return errors.New("server.cert_file and server.key_file must be set together")
	}
	return nil
}

// Addr is the host:port to listen on
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

// WebConfig converts to the web server configuration
func (c *Config) WebConfig() web.ServerConfig {
	s := c.Server
	return web.ServerConfig{
		Name:            s.Name,
		RecoverPanic:    s.RecoverPanic,
		ColorOutput:     s.ColorOutput,
		Compress:        s.Compress,
		MaxConns:        s.MaxConns,
		CertFile:        s.CertFile,
		KeyFile:         s.KeyFile,
		ShutdownTimeout: s.ShutdownTimeout,
	}
}

// WriteYAML renders the configuration as YAML
func (c *Config) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return err
	}
	return enc.Close()
}
