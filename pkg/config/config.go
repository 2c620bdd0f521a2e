package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	defaultBaseURL            = "https://www.gerobakjogja.com"
	defaultMaintenanceTimeout = 5 * time.Second
)

// Config holds the settings shared by every entry point.
type Config struct {
	AppEnv  string `mapstructure:"app_env"`
	BaseURL string `mapstructure:"site_base_url"`

	Database struct {
		Driver     string `mapstructure:"db_driver"`
		Host       string `mapstructure:"db_host"`
		Port       string `mapstructure:"db_port"`
		User       string `mapstructure:"db_user"`
		Password   string `mapstructure:"db_password"`
		Name       string `mapstructure:"db_name"`
		SQLitePath string `mapstructure:"sqlite_path"`
	} `mapstructure:",squash"`

	Redis struct {
		Addr     string        `mapstructure:"redis_addr"`
		CacheTTL time.Duration `mapstructure:"content_cache_ttl"`
	} `mapstructure:",squash"`

	Sitemap struct {
		Output      string        `mapstructure:"sitemap_output"`
		OutputPath  string        `mapstructure:"sitemap_output_path"`
		PingGoogle  string        `mapstructure:"ping_google_url"`
		PingBing    string        `mapstructure:"ping_bing_url"`
		PingTimeout time.Duration `mapstructure:"ping_timeout"`
	} `mapstructure:",squash"`

	Cloudinary struct {
		CloudName string `mapstructure:"cloudinary_cloud_name"`
		APIKey    string `mapstructure:"cloudinary_api_key"`
		APISecret string `mapstructure:"cloudinary_api_secret"`
	} `mapstructure:",squash"`

	Firebase struct {
		ProjectID       string `mapstructure:"firebase_project_id"`
		CredentialsJSON string `mapstructure:"firebase_credentials_json"`
		AdminEmails     string `mapstructure:"admin_emails"`
	} `mapstructure:",squash"`

	Server struct {
		Port               int           `mapstructure:"http_port"`
		StaticDir          string        `mapstructure:"static_dir"`
		MaintenanceTimeout time.Duration `mapstructure:"maintenance_timeout"`
		SettingsKey        string        `mapstructure:"settings_key"`
		SettingsChannel    string        `mapstructure:"settings_channel"`
	} `mapstructure:",squash"`
}

var defaults = map[string]interface{}{
	"app_env":                   "development",
	"site_base_url":             defaultBaseURL,
	"db_driver":                 "postgres",
	"db_host":                   "localhost",
	"db_port":                   "5432",
	"db_user":                   "",
	"db_password":               "",
	"db_name":                   "gerobak",
	"sqlite_path":               "gerobak.db",
	"redis_addr":                "",
	"content_cache_ttl":         5 * time.Minute,
	"sitemap_output":            "none",
	"sitemap_output_path":       "public/sitemap.xml",
	"ping_google_url":           "https://www.google.com/ping?sitemap=",
	"ping_bing_url":             "https://www.bing.com/ping?sitemap=",
	"ping_timeout":              10 * time.Second,
	"cloudinary_cloud_name":     "",
	"cloudinary_api_key":        "",
	"cloudinary_api_secret":     "",
	"firebase_project_id":       "",
	"firebase_credentials_json": "",
	"admin_emails":              "",
	"http_port":                 8080,
	"static_dir":                "dist",
	"maintenance_timeout":       defaultMaintenanceTimeout,
	"settings_key":              "settings:site",
	"settings_channel":          "settings",
}

// Load reads configuration from the environment and an optional config.yaml.
// Every key has a default so AutomaticEnv can resolve it.
func Load() (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}

	// Without a fallback a missing settings feed would hold every page forever
	if cfg.Server.MaintenanceTimeout <= 0 {
		log.Printf("MAINTENANCE_TIMEOUT %v is not positive, using %v.", cfg.Server.MaintenanceTimeout, defaultMaintenanceTimeout)
		cfg.Server.MaintenanceTimeout = defaultMaintenanceTimeout
	}

	return &cfg, nil
}

// IsProduction reports whether error details such as stack traces must be hidden.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// SitemapURL is the public location of the generated sitemap.
func (c *Config) SitemapURL() string {
	return c.BaseURL + "/sitemap.xml"
}

// AdminEmailList splits the comma separated ADMIN_EMAILS value.
func (c *Config) AdminEmailList() []string {
	var emails []string
	for _, e := range strings.Split(c.Firebase.AdminEmails, ",") {
		if e = strings.TrimSpace(e); e != "" {
			emails = append(emails, e)
		}
	}
	return emails
}
