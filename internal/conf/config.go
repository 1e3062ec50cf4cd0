package conf

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/neuraseek/neuraseek/internal/inference"
	"github.com/neuraseek/neuraseek/internal/pkg/logger"
	"github.com/neuraseek/neuraseek/internal/pkg/workerpool"
	"github.com/neuraseek/neuraseek/internal/search/client"
)

type Config struct {
	Server     ServerConfig      `mapstructure:"server"`
	Log        logger.Config     `mapstructure:"log"`
	Cache      CacheConfig       `mapstructure:"cache"`
	Providers  ProvidersConfig   `mapstructure:"providers"`
	Inference  inference.Config  `mapstructure:"inference"`
	Enrichment workerpool.Config `mapstructure:"enrichment"`
	CORS       CORSConfig        `mapstructure:"cors"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

type CacheConfig struct {
	TTL int `mapstructure:"ttl"` // seconds
}

type ProvidersConfig struct {
	Google  GoogleConfig  `mapstructure:"google"`
	YouTube client.Config `mapstructure:"youtube"`
	Reddit  client.Config `mapstructure:"reddit"`
	Scholar client.Config `mapstructure:"scholar"`
	SerpAPI client.Config `mapstructure:"serpapi"`
}

type GoogleConfig struct {
	client.Config `mapstructure:",squash"`
	CX            string `mapstructure:"cx"`
}

type CORSConfig struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
}

func LoadConfig(path string) (*Config, error) {
	viper.SetConfigFile(path)
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
