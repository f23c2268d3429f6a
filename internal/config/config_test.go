package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rob-foulkrod/ff/internal/models"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("TELEGRAM_TOKEN", "token")
	t.Setenv("CHAT_ID", "42")
	t.Setenv("LEAGUE_ID", "123456789")
}

func TestNewDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := New()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.TelegramBot.ChatID != 42 || cfg.Sleeper.LeagueID != "123456789" {
		t.Errorf("env not mapped: %+v", cfg)
	}
	if cfg.Report.Schedule != "30 7 * * TUE" {
		t.Errorf("default schedule wrong: %q", cfg.Report.Schedule)
	}
	if cfg.Report.Timezone != "America/New_York" {
		t.Errorf("default timezone wrong: %q", cfg.Report.Timezone)
	}
}

func TestNewRejectsBadSchedule(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("REPORT_SCHEDULE", "not a cron expression")

	if _, err := New(); err == nil {
		t.Fatal("want an error for an unparseable schedule")
	}
}

func TestLoadOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "league.yaml")
	data := []byte(`
division_names:
  1: East
  2: West
thresholds:
  blowout_margin: 55
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	o, err := LoadOverrides(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if o.DivisionNames[1] != "East" || o.DivisionNames[2] != "West" {
		t.Errorf("division names wrong: %v", o.DivisionNames)
	}
	if o.Thresholds.BlowoutMargin != 55 {
		t.Errorf("override not applied, got %.1f", o.Thresholds.BlowoutMargin)
	}
	// Keys absent from the file keep their defaults.
	if o.Thresholds.NailBiterMargin != 3 || o.Thresholds.ExtendedStreak != 4 {
		t.Errorf("defaults lost: %+v", o.Thresholds)
	}
}

func TestLoadOverridesEmptyPath(t *testing.T) {
	o, err := LoadOverrides("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if o.Thresholds != models.DefaultThresholds() {
		t.Errorf("want pure defaults, got %+v", o.Thresholds)
	}
}

func TestApplyDivisionNames(t *testing.T) {
	o := &LeagueOverrides{DivisionNames: map[int]string{1: "North"}}
	cfg := models.LeagueConfig{}

	o.Apply(&cfg)
	if cfg.Divisions[1] != "North" {
		t.Errorf("override not applied: %v", cfg.Divisions)
	}
}
