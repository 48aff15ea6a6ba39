package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	RedditClientID     string `yaml:"reddit_client_id"`
	RedditClientSecret string `yaml:"reddit_client_secret"`
	RedditUserAgent    string `yaml:"reddit_user_agent"`

	YouTubeAPIKey string `yaml:"youtube_api_key"`

	LLMProvider     string `yaml:"llm_provider"`
	LLMModel        string `yaml:"llm_model"`
	LLMBatchSize    int    `yaml:"llm_batch_size"`
	GeminiAPIKey    string `yaml:"gemini_api_key"`
	AnthropicAPIKey string `yaml:"anthropic_api_key"`
	OpenAIAPIKey    string `yaml:"openai_api_key"`

	OutputDir      string `yaml:"output_dir"`
	DBPath         string `yaml:"db_path"`
	SnippetLength  int    `yaml:"snippet_length"`
	SlackBotToken  string `yaml:"slack_bot_token"`
	SlackChannelID string `yaml:"slack_channel_id"`
}

func LoadConfig() Config {
	var cfg Config

	// .env populates the process environment, so its values ride the env
	// overrides below. Precedence: real env > .env > config.yaml
	// (godotenv.Load never replaces variables already set).
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded .env")
	}

	configPath := "config.yaml"
	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		configPath = envPath
	}
	if data, err := os.ReadFile(configPath); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			log.Fatalf("Error parsing %s: %v", configPath, err)
		}
		log.Printf("Loaded config from %s", configPath)
	}

	// Env vars override YAML values
	envOverride(&cfg.RedditClientID, "REDDIT_CLIENT_ID")
	envOverride(&cfg.RedditClientSecret, "REDDIT_CLIENT_SECRET")
	envOverride(&cfg.RedditUserAgent, "REDDIT_USER_AGENT")
	envOverride(&cfg.YouTubeAPIKey, "YOUTUBE_API_KEY")
	envOverride(&cfg.LLMProvider, "LLM_PROVIDER")
	envOverride(&cfg.LLMModel, "LLM_MODEL")
	envOverrideInt(&cfg.LLMBatchSize, "LLM_BATCH_SIZE")
	envOverride(&cfg.GeminiAPIKey, "GEMINI_API_KEY")
	envOverride(&cfg.AnthropicAPIKey, "ANTHROPIC_API_KEY")
	envOverride(&cfg.OpenAIAPIKey, "OPENAI_API_KEY")
	envOverride(&cfg.OutputDir, "OUTPUT_DIR")
	envOverride(&cfg.DBPath, "DB_PATH")
	envOverrideInt(&cfg.SnippetLength, "SNIPPET_LENGTH")
	envOverride(&cfg.SlackBotToken, "SLACK_BOT_TOKEN")
	envOverride(&cfg.SlackChannelID, "SLACK_CHANNEL_ID")

	// Defaults
	if cfg.LLMProvider == "" {
		cfg.LLMProvider = "gemini"
	}
	if cfg.LLMBatchSize == 0 {
		cfg.LLMBatchSize = 50
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "./reports"
	}
	if cfg.DBPath == "" {
		cfg.DBPath = "./sociallens.db"
	}
	if cfg.SnippetLength == 0 {
		cfg.SnippetLength = 500
	}
	if cfg.RedditUserAgent == "" {
		cfg.RedditUserAgent = "sociallens/1.0"
	}

	if cfg.LLMBatchSize < 1 {
		log.Fatalf("invalid llm_batch_size '%d': must be >= 1", cfg.LLMBatchSize)
	}
	switch cfg.LLMProvider {
	case "gemini", "anthropic", "openai":
	default:
		log.Fatalf("llm_provider must be 'gemini', 'anthropic' or 'openai', got '%s'", cfg.LLMProvider)
	}

	return cfg
}

func envOverride(field *string, envKey string) {
	if val := os.Getenv(envKey); val != "" {
		*field = val
	}
}

func envOverrideInt(field *int, envKey string) {
	if val := os.Getenv(envKey); val != "" {
		parsed, err := strconv.Atoi(val)
		if err != nil {
			log.Fatalf("invalid %s '%s': %v", envKey, val, err)
		}
		*field = parsed
	}
}

// looksLikePlaceholder reports whether a credential value is empty or still
// carries template text like "YOUR_API_KEY_HERE".
func looksLikePlaceholder(v string) bool {
	v = strings.TrimSpace(v)
	if v == "" {
		return true
	}
	upper := strings.ToUpper(v)
	return strings.Contains(upper, "YOUR") || strings.Contains(upper, "CHANGEME")
}

// RequireRedditCreds is the precondition gate for any Reddit call.
func (c Config) RequireRedditCreds() error {
	if looksLikePlaceholder(c.RedditClientID) || looksLikePlaceholder(c.RedditClientSecret) {
		return fmt.Errorf("reddit_client_id/reddit_client_secret not configured (set them in config.yaml or env)")
	}
	return nil
}

// RequireYouTubeCreds is the precondition gate for any YouTube call.
func (c Config) RequireYouTubeCreds() error {
	if looksLikePlaceholder(c.YouTubeAPIKey) {
		return fmt.Errorf("youtube_api_key not configured (set it in config.yaml or env)")
	}
	return nil
}

// RequireLLMCreds is the precondition gate for any classification call.
func (c Config) RequireLLMCreds() error {
	switch c.LLMProvider {
	case "gemini":
		if looksLikePlaceholder(c.GeminiAPIKey) {
			return fmt.Errorf("gemini_api_key is required when llm_provider=gemini")
		}
	case "anthropic":
		if looksLikePlaceholder(c.AnthropicAPIKey) {
			return fmt.Errorf("anthropic_api_key is required when llm_provider=anthropic")
		}
	case "openai":
		if looksLikePlaceholder(c.OpenAIAPIKey) {
			return fmt.Errorf("openai_api_key is required when llm_provider=openai")
		}
	}
	return nil
}

func (c Config) SlackConfigured() bool {
	return !looksLikePlaceholder(c.SlackBotToken) && c.SlackChannelID != ""
}
