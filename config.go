package main

import (
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	ClickUpAPIToken    string `yaml:"clickup_api_token"`
	ClickUpBaseURL     string `yaml:"clickup_base_url"`
	ClickUpWorkspaceID string `yaml:"clickup_workspace_id"`
	LeaveListID        string `yaml:"leave_list_id"`
	WorkCalendarListID string `yaml:"work_calendar_list_id"`

	DiscordWebhookURL string `yaml:"discord_webhook_url"`
	SlackWebhookURL   string `yaml:"slack_webhook_url"`
	BotName           string `yaml:"bot_name"`
	TeamName          string `yaml:"team_name"`

	Timezone       string `yaml:"timezone"`
	ListenAddr     string `yaml:"listen_addr"`
	NotifiedDBPath string `yaml:"notified_db_path"`

	// 5-field cron expressions. Empty disables a job.
	CheckSchedule   string `yaml:"check_schedule"`
	DailySchedule   string `yaml:"daily_schedule"`
	WeeklySchedule  string `yaml:"weekly_schedule"`
	MonthlySchedule string `yaml:"monthly_schedule"`
	SquadSchedule   string `yaml:"squad_schedule"`

	Location *time.Location `yaml:"-"`
}

func LoadConfig() Config {
	var cfg Config

	// Load from config.yaml if it exists
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
	envOverride(&cfg.ClickUpAPIToken, "CLICKUP_API_TOKEN")
	envOverride(&cfg.ClickUpBaseURL, "CLICKUP_BASE_URL")
	envOverride(&cfg.ClickUpWorkspaceID, "CLICKUP_WORKSPACE_ID")
	envOverride(&cfg.LeaveListID, "LEAVE_LIST_ID")
	envOverride(&cfg.WorkCalendarListID, "WORK_CALENDAR_LIST_ID")
	envOverride(&cfg.DiscordWebhookURL, "DISCORD_WEBHOOK_URL")
	envOverride(&cfg.SlackWebhookURL, "SLACK_WEBHOOK_URL")
	envOverride(&cfg.BotName, "BOT_NAME")
	envOverride(&cfg.TeamName, "TEAM_NAME")
	envOverride(&cfg.Timezone, "TIMEZONE")
	envOverride(&cfg.ListenAddr, "LISTEN_ADDR")
	envOverride(&cfg.NotifiedDBPath, "NOTIFIED_DB_PATH")
	envOverride(&cfg.CheckSchedule, "CHECK_SCHEDULE")
	envOverride(&cfg.DailySchedule, "DAILY_SCHEDULE")
	envOverride(&cfg.WeeklySchedule, "WEEKLY_SCHEDULE")
	envOverride(&cfg.MonthlySchedule, "MONTHLY_SCHEDULE")
	envOverride(&cfg.SquadSchedule, "SQUAD_SCHEDULE")

	// Defaults
	if cfg.ClickUpBaseURL == "" {
		cfg.ClickUpBaseURL = "https://api.clickup.com/api/v2"
	}
	if cfg.BotName == "" {
		cfg.BotName = "Leave Bot"
	}
	if cfg.TeamName == "" {
		cfg.TeamName = "My Team"
	}
	if cfg.Timezone == "" {
		cfg.Timezone = "Asia/Colombo"
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":3000"
	}
	if cfg.CheckSchedule == "" {
		cfg.CheckSchedule = "*/30 * * * *"
	}
	if cfg.DailySchedule == "" {
		cfg.DailySchedule = "0 9 * * 1-5"
	}
	if cfg.WeeklySchedule == "" {
		cfg.WeeklySchedule = "30 9 * * 1"
	}
	if cfg.MonthlySchedule == "" {
		cfg.MonthlySchedule = "0 10 1 * *"
	}
	if cfg.SquadSchedule == "" {
		cfg.SquadSchedule = "0 18 * * 5"
	}

	// All window math runs in this zone, never the host's local zone.
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Fatalf("invalid timezone '%s': %v", cfg.Timezone, err)
	}
	cfg.Location = loc

	// Missing credentials are not fatal here: each orchestration call reports
	// ErrNotConfigured on use, so the HTTP surface can still come up.
	if cfg.ClickUpAPIToken == "" {
		log.Println("clickup_api_token not set, task API calls will fail until configured")
	}
	if cfg.DiscordWebhookURL == "" {
		log.Println("discord_webhook_url not set, notifications will fail until configured")
	}

	return cfg
}

func envOverride(field *string, envKey string) {
	if val := os.Getenv(envKey); val != "" {
		*field = val
	}
}
