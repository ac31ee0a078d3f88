package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Rule maps a taxonomy label to the keywords that imply it.
type Rule struct {
	Label string   `yaml:"label"`
	Any   []string `yaml:"any"`
}

// Taxonomy holds the keyword tables used to derive custom fields on newly
// imported jobs.
type Taxonomy struct {
	JobTypes         []Rule `yaml:"job_types"`
	ExperienceLevels []Rule `yaml:"experience_levels"`
}

type Config struct {
	App struct {
		DataDir  string `yaml:"data_dir"`
		DBFile   string `yaml:"db_file"`
		LockFile string `yaml:"lock_file"`
	} `yaml:"app"`

	Import struct {
		Workers             int      `yaml:"workers"`
		FetchTimeoutSeconds int      `yaml:"fetch_timeout_seconds"`
		IntervalMinutes     int      `yaml:"interval_minutes"`
		RatePerHost         float64  `yaml:"rate_per_host"`
		EmployersFile       string   `yaml:"employers_file"`
		BoardsFile          string   `yaml:"boards_file"`
	} `yaml:"import"`

	Notify struct {
		SMTPHost       string   `yaml:"smtp_host"`
		SMTPPort       int      `yaml:"smtp_port"`
		Username       string   `yaml:"username"`
		KeyringAccount string   `yaml:"keyring_account"`
		From           string   `yaml:"from"`
		To             []string `yaml:"to"`
	} `yaml:"notify"`

	Taxonomy Taxonomy `yaml:"taxonomy"`
}

func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.App.DataDir == "" {
		c.App.DataDir = "data"
	}
	if c.App.DBFile == "" {
		c.App.DBFile = "boardfeed.db"
	}
	if c.App.LockFile == "" {
		c.App.LockFile = "boardfeed.lock"
	}
	if c.Import.Workers <= 0 {
		c.Import.Workers = 8
	}
	if c.Import.FetchTimeoutSeconds <= 0 {
		c.Import.FetchTimeoutSeconds = 120
	}
	if c.Import.IntervalMinutes <= 0 {
		c.Import.IntervalMinutes = 15
	}
	if c.Import.RatePerHost <= 0 {
		c.Import.RatePerHost = 2
	}
	if c.Notify.SMTPPort == 0 {
		c.Notify.SMTPPort = 587
	}
}

func (c Config) FetchTimeout() time.Duration {
	return time.Duration(c.Import.FetchTimeoutSeconds) * time.Second
}

func (c Config) Interval() time.Duration {
	return time.Duration(c.Import.IntervalMinutes) * time.Minute
}
