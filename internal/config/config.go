// Package config loads application settings from an optional YAML file
// and READQUEST_* environment variables.
package config

import (
	"errors"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the application-level settings. Model provider settings
// live in the llm package and are loaded separately.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Story   StoryConfig   `mapstructure:"story"`
	Records RecordsConfig `mapstructure:"records"`
	Report  ReportConfig  `mapstructure:"report"`
	CORS    CORSConfig    `mapstructure:"cors"`
	Log     LogConfig     `mapstructure:"log"`

	// DBPath overrides the event-log database location.
	DBPath string `mapstructure:"db_path"`
}

type ServerConfig struct {
	// Addr is the listen address, e.g. ":8488".
	Addr string `mapstructure:"addr"`

	// Debug enables verbose logging.
	Debug bool `mapstructure:"debug"`
}

type StoryConfig struct {
	// Path is the story text file. Missing file falls back to the
	// built-in placeholder.
	Path string `mapstructure:"path"`

	// MaxChars truncates the story before it is sent to the model.
	MaxChars int `mapstructure:"max_chars"`
}

type RecordsConfig struct {
	// Path is the attempt CSV file.
	Path string `mapstructure:"path"`
}

type ReportConfig struct {
	// Secret gates the report export endpoint. Empty disables it.
	Secret string `mapstructure:"secret"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type LogConfig struct {
	// FilePath is the rotated server log. Empty disables file output.
	FilePath string `mapstructure:"file_path"`
}

// Load reads config from the given directory (file name "readquest",
// YAML) with environment overrides. A missing file is not an error;
// every setting has a default or an env binding.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("readquest")
	v.SetConfigType("yaml")

	v.SetEnvPrefix("READQUEST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.addr", ":8488")
	v.SetDefault("server.debug", false)
	v.SetDefault("story.path", "story.txt")
	v.SetDefault("story.max_chars", 6000)
	v.SetDefault("records.path", "read_test_record.csv")
	v.SetDefault("cors.allowed_origins", []string{"*"})
	v.SetDefault("log.file_path", "logs/readquest.log")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
