package config

import (
	"log"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultTimezone    = "UTC"
	configPathEnv      = "VIDEOS_CURATOR_CONFIG"
	catalogAPIKeyEnv   = "YTKEY"
	anthropicAPIKeyEnv = "ANTHROPIC_API_KEY"
	openAIAPIKeyEnv    = "OPENAI_API_KEY"
	logLevelEnv        = "LOG_LEVEL"
	telegramTokenEnv   = "TELEGRAM_BOT_TOKEN"
	telegramChatIDEnv  = "TELEGRAM_CHAT_ID"
)

// Config holds high-level settings required across the application.
type Config struct {
	LogLevel      string             `yaml:"logLevel"`
	Environment   string             `yaml:"environment"`
	Storage       StorageConfig      `yaml:"storage"`
	Catalog       CatalogConfig      `yaml:"catalog"`
	LLM           LLMConfig          `yaml:"llm"`
	Stages        StagesConfig       `yaml:"stages"`
	Journal       JournalConfig      `yaml:"journal"`
	Notifications NotificationConfig `yaml:"notifications"`
	Scheduler     SchedulerConfig    `yaml:"scheduler"`
	Web           WebConfig          `yaml:"web"`
}

// StorageConfig roots every on-disk layout the pipeline writes.
type StorageConfig struct {
	StagesDir  string `yaml:"stagesDir"`
	ParquetDir string `yaml:"parquetDir"`
	ArchiveDir string `yaml:"archiveDir"`
}

// CatalogConfig describes the upstream video catalog.
type CatalogConfig struct {
	BaseURL  string                  `yaml:"baseUrl"`
	APIKey   string                  `yaml:"apiKey"`
	Source   string                  `yaml:"source"`
	Region   string                  `yaml:"region"`
	Searches map[string]SearchConfig `yaml:"searches"`
	Listing  ListingConfig           `yaml:"listing"`
}

// SearchConfig is one named set of query-parameter overrides, selected by the
// fetch command's category.
type SearchConfig struct {
	Params map[string]any `yaml:"params"`
}

// ListingConfig drives the HTML listing source: where to fetch and which
// selectors identify one item and its fields.
type ListingConfig struct {
	URL          string `yaml:"url"`
	ItemSelector string `yaml:"itemSelector"`
	TitleSel     string `yaml:"titleSelector"`
	ChannelSel   string `yaml:"channelSelector"`
	LinkSel      string `yaml:"linkSelector"`
	IDParam      string `yaml:"idParam"`
}

// LLMConfig selects and configures the completion provider.
type LLMConfig struct {
	Provider        string  `yaml:"provider"`
	Model           string  `yaml:"model"`
	MaxTokens       int     `yaml:"maxTokens"`
	Temperature     float64 `yaml:"temperature"`
	AnthropicAPIKey string  `yaml:"anthropicApiKey"`
	OpenAIEndpoint  string  `yaml:"openaiEndpoint"`
	OpenAIAPIKey    string  `yaml:"openaiApiKey"`
}

// StagesConfig carries per-stage tunables.
type StagesConfig struct {
	Fetch   FetchConfig   `yaml:"fetch"`
	Assess  AssessConfig  `yaml:"assess"`
	Enhance EnhanceConfig `yaml:"enhance"`
	Report  ReportConfig  `yaml:"report"`
}

// FetchConfig bounds the fetch stage.
type FetchConfig struct {
	MaxVideos  int    `yaml:"maxVideos"`
	Category   string `yaml:"category"`
	OnlyScript string `yaml:"onlyScript"`
}

// AssessConfig pins the scoring prompt revision.
type AssessConfig struct {
	PromptName    string `yaml:"promptName"`
	PromptVersion int    `yaml:"promptVersion"`
}

// EnhanceConfig bounds the rewrite stage.
type EnhanceConfig struct {
	Threshold int `yaml:"threshold"`
}

// ReportConfig bounds the report stage.
type ReportConfig struct {
	DaysBack int `yaml:"daysBack"`
}

// JournalConfig locates the run ledger; an empty path disables it.
type JournalConfig struct {
	Path string `yaml:"path"`
}

// NotificationConfig encapsulates outbound channels (Telegram, etc.).
type NotificationConfig struct {
	Telegram TelegramConfig `yaml:"telegram"`
}

// TelegramConfig wires all data required to send messages.
type TelegramConfig struct {
	BotToken string `yaml:"botToken"`
	ChatID   string `yaml:"chatId"`
}

// SchedulerConfig defines when the recurring pipeline runs.
type SchedulerConfig struct {
	At       string         `yaml:"at"`
	Timezone string         `yaml:"timezone"`
	location *time.Location `yaml:"-"`
}

// WebConfig locates the static web export.
type WebConfig struct {
	Dir    string `yaml:"dir"`
	Listen string `yaml:"listen"`
}

// Location resolves the scheduler timezone string to a time.Location.
func (s SchedulerConfig) Location() *time.Location {
	if s.location != nil {
		return s.location
	}
	loc, _ := time.LoadLocation(defaultTimezone)
	return loc
}

// SearchParams returns the query-parameter overrides for a category, or nil
// when the category has no configured search.
func (c Config) SearchParams(category string) map[string]any {
	search, ok := c.Catalog.Searches[strings.ToLower(category)]
	if !ok {
		return nil
	}
	return search.Params
}

// HasCredentials reports whether both the catalog key and the key of the
// selected completion provider are present.
func (c Config) HasCredentials() bool {
	if c.Catalog.APIKey == "" {
		return false
	}
	if c.LLM.Provider == "openai" {
		return c.LLM.OpenAIAPIKey != ""
	}
	return c.LLM.AnthropicAPIKey != ""
}

// Load reads YAML configuration (if present) and applies environment overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()
	cfg.bindTimezone()

	if len(cfg.Catalog.Searches) == 0 {
		cfg.Catalog.Searches = defaultConfig().Catalog.Searches
	}

	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(catalogAPIKeyEnv); v != "" {
		c.Catalog.APIKey = v
	}

	if v := os.Getenv(anthropicAPIKeyEnv); v != "" {
		c.LLM.AnthropicAPIKey = v
	}

	if v := os.Getenv(openAIAPIKeyEnv); v != "" {
		c.LLM.OpenAIAPIKey = v
	}

	if v := os.Getenv(logLevelEnv); v != "" {
		c.LogLevel = v
	}

	if v := os.Getenv(telegramTokenEnv); v != "" {
		c.Notifications.Telegram.BotToken = v
	}

	if v := os.Getenv(telegramChatIDEnv); v != "" {
		c.Notifications.Telegram.ChatID = v
	}
}

func (c *Config) bindTimezone() {
	tz := c.Scheduler.Timezone
	if tz == "" {
		tz = defaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Printf("config: unknown timezone %s, reverting to %s", tz, defaultTimezone)
		loc, _ = time.LoadLocation(defaultTimezone)
	}
	c.Scheduler.location = loc
}

func mergeConfig(base, override Config) Config {
	if override.LogLevel != "" {
		base.LogLevel = override.LogLevel
	}
	if override.Environment != "" {
		base.Environment = override.Environment
	}

	if override.Storage.StagesDir != "" {
		base.Storage.StagesDir = override.Storage.StagesDir
	}
	if override.Storage.ParquetDir != "" {
		base.Storage.ParquetDir = override.Storage.ParquetDir
	}
	if override.Storage.ArchiveDir != "" {
		base.Storage.ArchiveDir = override.Storage.ArchiveDir
	}

	if override.Catalog.BaseURL != "" {
		base.Catalog.BaseURL = override.Catalog.BaseURL
	}
	if override.Catalog.APIKey != "" {
		base.Catalog.APIKey = override.Catalog.APIKey
	}
	if override.Catalog.Source != "" {
		base.Catalog.Source = override.Catalog.Source
	}
	if override.Catalog.Region != "" {
		base.Catalog.Region = override.Catalog.Region
	}
	if len(override.Catalog.Searches) > 0 {
		base.Catalog.Searches = override.Catalog.Searches
	}
	if override.Catalog.Listing.URL != "" {
		base.Catalog.Listing = override.Catalog.Listing
	}

	if override.LLM.Provider != "" {
		base.LLM.Provider = override.LLM.Provider
	}
	if override.LLM.Model != "" {
		base.LLM.Model = override.LLM.Model
	}
	if override.LLM.MaxTokens > 0 {
		base.LLM.MaxTokens = override.LLM.MaxTokens
	}
	if override.LLM.Temperature > 0 {
		base.LLM.Temperature = override.LLM.Temperature
	}
	if override.LLM.AnthropicAPIKey != "" {
		base.LLM.AnthropicAPIKey = override.LLM.AnthropicAPIKey
	}
	if override.LLM.OpenAIEndpoint != "" {
		base.LLM.OpenAIEndpoint = override.LLM.OpenAIEndpoint
	}
	if override.LLM.OpenAIAPIKey != "" {
		base.LLM.OpenAIAPIKey = override.LLM.OpenAIAPIKey
	}

	if override.Stages.Fetch.MaxVideos > 0 {
		base.Stages.Fetch.MaxVideos = override.Stages.Fetch.MaxVideos
	}
	if override.Stages.Fetch.Category != "" {
		base.Stages.Fetch.Category = override.Stages.Fetch.Category
	}
	if override.Stages.Fetch.OnlyScript != "" {
		base.Stages.Fetch.OnlyScript = override.Stages.Fetch.OnlyScript
	}
	if override.Stages.Assess.PromptName != "" {
		base.Stages.Assess.PromptName = override.Stages.Assess.PromptName
	}
	if override.Stages.Assess.PromptVersion > 0 {
		base.Stages.Assess.PromptVersion = override.Stages.Assess.PromptVersion
	}
	if override.Stages.Enhance.Threshold > 0 {
		base.Stages.Enhance.Threshold = override.Stages.Enhance.Threshold
	}
	if override.Stages.Report.DaysBack > 0 {
		base.Stages.Report.DaysBack = override.Stages.Report.DaysBack
	}

	if override.Journal.Path != "" {
		base.Journal.Path = override.Journal.Path
	}

	if override.Notifications.Telegram.BotToken != "" {
		base.Notifications.Telegram.BotToken = override.Notifications.Telegram.BotToken
	}
	if override.Notifications.Telegram.ChatID != "" {
		base.Notifications.Telegram.ChatID = override.Notifications.Telegram.ChatID
	}

	if override.Scheduler.At != "" {
		base.Scheduler.At = override.Scheduler.At
	}
	if override.Scheduler.Timezone != "" {
		base.Scheduler.Timezone = override.Scheduler.Timezone
	}

	if override.Web.Dir != "" {
		base.Web.Dir = override.Web.Dir
	}
	if override.Web.Listen != "" {
		base.Web.Listen = override.Web.Listen
	}

	return base
}

func defaultConfig() Config {
	tz, _ := time.LoadLocation(defaultTimezone)
	return Config{
		LogLevel:    "info",
		Environment: "development",
		Storage: StorageConfig{
			StagesDir:  "stages",
			ParquetDir: "parquet",
			ArchiveDir: "data/fetched",
		},
		Catalog: CatalogConfig{
			BaseURL: "https://www.googleapis.com/youtube/v3",
			Source:  "search",
			Region:  "CZ",
			Searches: map[string]SearchConfig{
				"music":   {Params: map[string]any{"videoCategoryId": 10}},
				"animals": {Params: map[string]any{"videoCategoryId": 15}},
			},
		},
		LLM: LLMConfig{
			Provider:       "anthropic",
			Model:          "claude-sonnet-4-20250514",
			MaxTokens:      4096,
			OpenAIEndpoint: "https://api.openai.com/v1/chat/completions",
		},
		Stages: StagesConfig{
			Fetch:   FetchConfig{MaxVideos: 50, Category: "music"},
			Assess:  AssessConfig{PromptName: "rate_video_happiness", PromptVersion: 2},
			Enhance: EnhanceConfig{Threshold: 3},
			Report:  ReportConfig{DaysBack: 7},
		},
		Journal: JournalConfig{Path: "data/videoscurator.db"},
		Notifications: NotificationConfig{
			Telegram: TelegramConfig{BotToken: "", ChatID: ""},
		},
		Scheduler: SchedulerConfig{At: "06:00", Timezone: defaultTimezone, location: tz},
		Web: WebConfig{
			Dir:    "web/static",
			Listen: ":8080",
		},
	}
}
