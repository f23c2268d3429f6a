package config

import (
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"

	"github.com/rob-foulkrod/ff/internal/models"
)

type Config struct {
	TelegramBot TelegramBot
	Sleeper     Sleeper
	Report      Report
}

type TelegramBot struct {
	Token  string `envconfig:"TELEGRAM_TOKEN" required:"true"`
	ChatID int64  `envconfig:"CHAT_ID" required:"true"`
}

type Sleeper struct {
	LeagueID string `envconfig:"LEAGUE_ID" required:"true"`
	Season   string `envconfig:"SEASON"`
}

type Report struct {
	Schedule   string `envconfig:"REPORT_SCHEDULE" default:"30 7 * * TUE"`
	Timezone   string `envconfig:"REPORT_TZ" default:"America/New_York"`
	LeagueFile string `envconfig:"LEAGUE_FILE"`
}

func New() (*Config, error) {
	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return nil, err
	}
	if _, err := cron.ParseStandard(c.Report.Schedule); err != nil {
		return nil, fmt.Errorf("parsing report schedule %q: %w", c.Report.Schedule, err)
	}
	return &c, nil
}

// LeagueOverrides is the optional YAML file for settings the Sleeper API does
// not carry: human division names and tuned flag thresholds. Threshold keys
// left out of the file keep their defaults.
type LeagueOverrides struct {
	DivisionNames map[int]string        `yaml:"division_names"`
	Thresholds    models.FlagThresholds `yaml:"thresholds"`
}

// LoadOverrides reads the league-overrides file. An empty path yields defaults
// with no division names.
func LoadOverrides(path string) (*LeagueOverrides, error) {
	o := &LeagueOverrides{Thresholds: models.DefaultThresholds()}
	if path == "" {
		return o, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading league overrides: %w", err)
	}
	if err := yaml.Unmarshal(data, o); err != nil {
		return nil, fmt.Errorf("parsing league overrides: %w", err)
	}
	return o, nil
}

// Apply overlays the override division names onto a league config.
func (o *LeagueOverrides) Apply(cfg *models.LeagueConfig) {
	if len(o.DivisionNames) == 0 {
		return
	}
	if cfg.Divisions == nil {
		cfg.Divisions = make(map[int]string, len(o.DivisionNames))
	}
	for id, name := range o.DivisionNames {
		cfg.Divisions[id] = name
	}
}
