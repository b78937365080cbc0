package config

import (
	"encoding/json"
	"fmt"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigPath = "/etc/sitereg"
	ConfigFileName    = "sitereg.yml"
)

// ValidSSLModes is the list of libpq sslmode values
var ValidSSLModes = []string{
	"disable", "allow", "prefer", "require", "verify-ca", "verify-full",
}

// ValidLogLevels is the list of accepted log levels
var ValidLogLevels = []string{"debug", "info", "warn", "error"}

const maskedValue = "********"

// Config holds the connection descriptor and logging settings
type Config struct {
	// Host is the database server host
	Host string `yaml:"db_host" json:"db_host"`

	// Port is the database server port
	Port int `yaml:"db_port" json:"db_port"`

	// User is the database role to connect as
	User string `yaml:"db_user" json:"db_user"`

	// Password is the password of User
	Password string `yaml:"db_password" json:"-"`

	// Name is the database name
	Name string `yaml:"db_name" json:"db_name"`

	// SSLMode is the libpq sslmode
	SSLMode string `yaml:"db_sslmode" json:"db_sslmode"`

	// DatabaseURL, when set, is used as is instead of the fields above
	DatabaseURL string `yaml:"database_url" json:"-"`

	// LogLevel is the application log level
	LogLevel string `yaml:"log_level" json:"log_level"`

	// sources tracks where each value came from
	sources map[string]string

	// configFilePath is the path to the config file
	configFilePath string
}

// Attribute represents a configuration attribute with its value and source
type Attribute struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Source string `json:"source"`
}

// newDefault returns a config with default values
func newDefault() *Config {
	return &Config{
		Host:     "localhost",
		Port:     5432,
		User:     "postgres",
		Name:     "sitereg",
		SSLMode:  "disable",
		LogLevel: "info",
		sources:  make(map[string]string),
	}
}

// Load loads configuration from file and environment variables.
// Environment variables take precedence over file values.
func Load() (*Config, error) {
	config := newDefault()

	for _, name := range attributeNames() {
		config.sources[name] = "default"
	}

	configPath := os.Getenv("SITEREG_CONFIG_PATH")
	if configPath == "" {
		configPath = DefaultConfigPath
	}
	config.configFilePath = filepath.Join(configPath, ConfigFileName)

	if data, err := os.ReadFile(config.configFilePath); err == nil {
		var fileConfig Config
		if err := yaml.Unmarshal(data, &fileConfig); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", config.configFilePath, err)
		}
		config.applyFileConfig(&fileConfig)
	}

	if err := config.applyEnvConfig(); err != nil {
		return nil, err
	}

	return config, nil
}

func attributeNames() []string {
	return []string{
		"db_host", "db_port", "db_user", "db_password", "db_name",
		"db_sslmode", "database_url", "log_level",
	}
}

func (c *Config) applyFileConfig(file *Config) {
	set := func(name string, dst *string, val string) {
		if val != "" {
			*dst = val
			c.sources[name] = "file"
		}
	}
	set("db_host", &c.Host, file.Host)
	set("db_user", &c.User, file.User)
	set("db_password", &c.Password, file.Password)
	set("db_name", &c.Name, file.Name)
	set("db_sslmode", &c.SSLMode, file.SSLMode)
	set("database_url", &c.DatabaseURL, file.DatabaseURL)
	set("log_level", &c.LogLevel, file.LogLevel)

	if file.Port != 0 {
		c.Port = file.Port
		c.sources["db_port"] = "file"
	}
}

func (c *Config) applyEnvConfig() error {
	set := func(name, env string, dst *string) {
		if val := os.Getenv(env); val != "" {
			*dst = val
			c.sources[name] = "environment"
		}
	}
	set("db_host", "SITEREG_DB_HOST", &c.Host)
	set("db_user", "SITEREG_DB_USER", &c.User)
	set("db_password", "SITEREG_DB_PASSWORD", &c.Password)
	set("db_name", "SITEREG_DB_NAME", &c.Name)
	set("db_sslmode", "SITEREG_DB_SSLMODE", &c.SSLMode)
	set("database_url", "DATABASE_URL", &c.DatabaseURL)
	set("log_level", "SITEREG_LOG_LEVEL", &c.LogLevel)

	if val := os.Getenv("SITEREG_DB_PORT"); val != "" {
		port, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("invalid SITEREG_DB_PORT %q: %w", val, err)
		}
		c.Port = port
		c.sources["db_port"] = "environment"
	}
	return nil
}

// ConfigFilePath returns the path to the config file
func (c *Config) ConfigFilePath() string {
	return c.configFilePath
}

// Source returns the source of a configuration attribute
func (c *Config) Source(name string) string {
	if c.sources == nil {
		return "default"
	}
	if s, ok := c.sources[name]; ok {
		return s
	}
	return "default"
}

// DSN returns the connection string. DatabaseURL wins over the individual
// fields.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}

	u := url.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
		Path:   "/" + c.Name,
	}
	if c.Password != "" {
		u.User = url.UserPassword(c.User, c.Password)
	} else if c.User != "" {
		u.User = url.User(c.User)
	}
	if c.SSLMode != "" {
		u.RawQuery = url.Values{"sslmode": []string{c.SSLMode}}.Encode()
	}
	return u.String()
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.DatabaseURL != "" {
		u, err := url.Parse(c.DatabaseURL)
		if err != nil {
			return fmt.Errorf("invalid database_url: %w", err)
		}
		if u.Scheme != "postgres" && u.Scheme != "postgresql" {
			return fmt.Errorf("invalid database_url scheme: %s", u.Scheme)
		}
	} else {
		if c.Host == "" {
			return fmt.Errorf("db_host is required")
		}
		if c.Name == "" {
			return fmt.Errorf("db_name is required")
		}
		if c.Port < 1 || c.Port > 65535 {
			return fmt.Errorf("invalid db_port value: %d", c.Port)
		}
		if !contains(ValidSSLModes, c.SSLMode) {
			return fmt.Errorf("invalid db_sslmode value: %s", c.SSLMode)
		}
	}

	if !contains(ValidLogLevels, c.LogLevel) {
		return fmt.Errorf("invalid log_level value: %s", c.LogLevel)
	}

	return nil
}

// Attributes returns all configuration attributes with their values and
// sources. Secrets are masked.
func (c *Config) Attributes() []Attribute {
	password := ""
	if c.Password != "" {
		password = maskedValue
	}

	return []Attribute{
		{Name: "db_host", Value: c.Host, Source: c.Source("db_host")},
		{Name: "db_port", Value: strconv.Itoa(c.Port), Source: c.Source("db_port")},
		{Name: "db_user", Value: c.User, Source: c.Source("db_user")},
		{Name: "db_password", Value: password, Source: c.Source("db_password")},
		{Name: "db_name", Value: c.Name, Source: c.Source("db_name")},
		{Name: "db_sslmode", Value: c.SSLMode, Source: c.Source("db_sslmode")},
		{Name: "database_url", Value: maskURL(c.DatabaseURL), Source: c.Source("database_url")},
		{Name: "log_level", Value: c.LogLevel, Source: c.Source("log_level")},
	}
}

// FormatText returns a text representation of the configuration
func (c *Config) FormatText() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Config file: %s\n\n", c.configFilePath))
	sb.WriteString(fmt.Sprintf("%-20s %-40s %s\n", "NAME", "VALUE", "SOURCE"))
	sb.WriteString(fmt.Sprintf("%-20s %-40s %s\n", "----", "-----", "------"))

	for _, attr := range c.Attributes() {
		value := attr.Value
		if value == "" {
			value = "(not set)"
		}
		sb.WriteString(fmt.Sprintf("%-20s %-40s %s\n", attr.Name, value, attr.Source))
	}
	return sb.String()
}

// FormatJSON returns a JSON representation of the configuration
func (c *Config) FormatJSON() (string, error) {
	result := map[string]interface{}{
		"config_file": c.configFilePath,
		"attributes":  c.Attributes(),
	}
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// maskURL hides the password of a connection URL.
func maskURL(raw string) string {
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return maskedValue
	}
	if _, ok := u.User.Password(); !ok {
		return u.String()
	}
	masked := url.User(u.User.Username()).String() + ":" + maskedValue
	return strings.Replace(u.String(), u.User.String()+"@", masked+"@", 1)
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}
