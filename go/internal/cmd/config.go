package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the YAML application config. Secrets stay in the environment;
// the file carries topology and tuning.
type Config struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	Messaging struct {
		NATSURL       string `yaml:"nats_url"`
		StreamName    string `yaml:"stream_name"`
		SubjectPrefix string `yaml:"subject_prefix"`
	} `yaml:"messaging"`
	Outbox struct {
		PollIntervalSec int   `yaml:"poll_interval_sec"`
		BatchSize       int32 `yaml:"batch_size"`
	} `yaml:"outbox"`
	Identity struct {
		Issuer string `yaml:"issuer"`
	} `yaml:"identity"`
}

func loadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	applyConfigDefaults(&config)
	return &config, nil
}

func applyConfigDefaults(c *Config) {
	if c.Server.Port == "" {
		c.Server.Port = getEnv("PORT", "8080")
	}
	if c.Messaging.NATSURL == "" {
		c.Messaging.NATSURL = getEnv("NATS_URL", "nats://localhost:4222")
	}
	if c.Messaging.StreamName == "" {
		c.Messaging.StreamName = "ALLOCATION_EVENTS"
	}
	if c.Messaging.SubjectPrefix == "" {
		c.Messaging.SubjectPrefix = "allocation.events"
	}
	if c.Outbox.PollIntervalSec <= 0 {
		c.Outbox.PollIntervalSec = getEnvAsInt("OUTBOX_POLL_INTERVAL_SEC", 5)
	}
	if c.Outbox.BatchSize <= 0 {
		c.Outbox.BatchSize = int32(getEnvAsInt("OUTBOX_BATCH_SIZE", 100))
	}
	if c.Identity.Issuer == "" {
		c.Identity.Issuer = "lockerroomlink"
	}
}

func (c *Config) outboxPollInterval() time.Duration {
	return time.Duration(c.Outbox.PollIntervalSec) * time.Second
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
