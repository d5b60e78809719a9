package config

import (
	"errors"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// DefaultSystemPrompt establishes the advisor persona and keeps it on topic.
const DefaultSystemPrompt = `You are an AI Beauty Advisor, an expert assistant for a beauty brand's range of products across makeup, skincare, haircare and fragrances.

Key Guidelines:
- Provide personalized product recommendations based on the user's needs, skin type, hair type, preferences and concerns
- Suggest complete beauty routines (morning/evening skincare, makeup looks, haircare regimens)
- Share tips on product application and usage
- Ask relevant follow-up questions to better understand user needs
- Remember user preferences and previous conversation context

IMPORTANT: Only discuss the brand's products, beauty-related topics, skincare routines, makeup techniques, haircare advice and fragrance recommendations. Politely redirect any off-topic questions back to beauty.

Always maintain a warm, helpful and expert tone.`

// Config holds the application configuration
type Config struct {
	LLM     LLMConfig
	Advisor AdvisorConfig
	Server  ServerConfig
	Log     LogConfig
}

// LLMConfig holds the LLM configuration
type LLMConfig struct {
	Provider     string `mapstructure:"provider"`
	Endpoint     string `mapstructure:"endpoint"`
	BaseURL      string `mapstructure:"base_url"`
	APIKey       string `mapstructure:"api_key"`
	Model        string `mapstructure:"model"`
	SystemPrompt string `mapstructure:"system_prompt"`
}

// AdvisorConfig holds what the user sees of the assistant.
type AdvisorConfig struct {
	Name    string `mapstructure:"name"`
	Welcome string `mapstructure:"welcome"`
}

// ServerConfig holds the server configuration
type ServerConfig struct {
	Host          string `mapstructure:"host"`
	Port          string `mapstructure:"port"`
	AllowedOrigin string `mapstructure:"allowed_origin"`
}

// LogConfig holds the logging configuration
type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

var (
	ErrMissingEndpoint = errors.New("config: llm.endpoint is required for the proxy provider")
	ErrMissingAPIKey   = errors.New("config: llm.api_key is required for the openai provider")
)

// Load reads config.yaml from the working directory, or the file named by
// CONFIG_PATH. A missing file is not an error: defaults and ADVISOR_*
// environment variables still apply.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("advisor")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("llm.provider", "proxy")
	v.SetDefault("llm.endpoint", "")
	v.SetDefault("llm.base_url", "")
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.model", "")
	v.SetDefault("llm.system_prompt", DefaultSystemPrompt)
	v.SetDefault("advisor.name", "AI Beauty Advisor")
	v.SetDefault("advisor.welcome", "Hello! Ask me about skincare, makeup, haircare or fragrances.")
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.allowed_origin", "*")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
}

// Validate checks that the chosen provider has what it needs to make a call.
func (c *Config) Validate() error {
	switch strings.ToLower(c.LLM.Provider) {
	case "", "proxy":
		if c.LLM.Endpoint == "" {
			return ErrMissingEndpoint
		}
	case "openai":
		if c.LLM.APIKey == "" {
			return ErrMissingAPIKey
		}
	}
	return nil
}
