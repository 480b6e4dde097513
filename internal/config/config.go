package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/lululau/rangecal/internal/calendar"
	"github.com/lululau/rangecal/internal/dates"
	"github.com/lululau/rangecal/internal/weekly"
)

// Config holds application configuration.
type Config struct {
	Picker   PickerConfig   `mapstructure:"picker"`
	Holidays HolidaysConfig `mapstructure:"holidays"`
	UI       UIConfig       `mapstructure:"ui"`
	Weekly   WeeklyConfig   `mapstructure:"weekly"`
}

// PickerConfig holds the range calendar rules.
type PickerConfig struct {
	DisablePastDates  bool   `mapstructure:"disable_past_dates"`
	HighlightWeekends bool   `mapstructure:"highlight_weekends"`
	WeekendPolicy     string `mapstructure:"weekend_policy"`
	MinDate           string `mapstructure:"min_date"`
	MaxDate           string `mapstructure:"max_date"`
}

// HolidaysConfig says where holiday data comes from.
type HolidaysConfig struct {
	File string `mapstructure:"file"`
	URL  string `mapstructure:"url"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	MonthNames string `mapstructure:"month_names"`
	ShowLunar  bool   `mapstructure:"show_lunar"`
	NoColor    bool   `mapstructure:"no_color"`
	StartLabel string `mapstructure:"start_label"`
	EndLabel   string `mapstructure:"end_label"`
}

// WeeklyConfig holds the weekly-hours window.
type WeeklyConfig struct {
	StartHour int `mapstructure:"start_hour"`
	EndHour   int `mapstructure:"end_hour"`
}

// Load reads configuration from file and env. An explicit path wins over
// RANGECAL_CONFIG, which wins over ~/.config/rangecal/config.toml. Env var
// overrides use prefix RANGECAL_.
func Load(path string) (Config, error) {
	v := viper.New()

	v.SetDefault("picker.disable_past_dates", false)
	v.SetDefault("picker.highlight_weekends", false)
	v.SetDefault("picker.weekend_policy", calendar.WeekendCosmetic.String())
	v.SetDefault("picker.min_date", "")
	v.SetDefault("picker.max_date", "")
	v.SetDefault("holidays.file", "")
	v.SetDefault("holidays.url", "")
	v.SetDefault("ui.month_names", "pl")
	v.SetDefault("ui.show_lunar", false)
	v.SetDefault("ui.no_color", false)
	v.SetDefault("ui.start_label", "Data początkowa")
	v.SetDefault("ui.end_label", "Data końcowa")
	v.SetDefault("weekly.start_hour", weekly.DefaultStartHour)
	v.SetDefault("weekly.end_hour", weekly.DefaultEndHour)

	v.SetConfigType("toml")

	if path == "" {
		path = os.Getenv("RANGECAL_CONFIG")
	}
	explicit := path != ""
	if explicit {
		v.SetConfigFile(path)
	} else if dir, err := os.UserConfigDir(); err == nil {
		v.AddConfigPath(filepath.Join(dir, "rangecal"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("RANGECAL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// Rules converts the picker settings into calendar rules.
func (c Config) Rules() (calendar.Rules, error) {
	policy, err := calendar.ParseWeekendPolicy(c.Picker.WeekendPolicy)
	if err != nil {
		return calendar.Rules{}, err
	}
	r := calendar.Rules{
		DisablePastDates:  c.Picker.DisablePastDates,
		HighlightWeekends: c.Picker.HighlightWeekends,
		WeekendPolicy:     policy,
	}
	if r.MinDate, err = optionalKey(c.Picker.MinDate); err != nil {
		return calendar.Rules{}, fmt.Errorf("min_date: %w", err)
	}
	if r.MaxDate, err = optionalKey(c.Picker.MaxDate); err != nil {
		return calendar.Rules{}, fmt.Errorf("max_date: %w", err)
	}
	if !r.MinDate.IsZero() && !r.MaxDate.IsZero() && r.MinDate.After(r.MaxDate) {
		return calendar.Rules{}, fmt.Errorf("min_date %s is after max_date %s", r.MinDate, r.MaxDate)
	}
	return r, nil
}

// Names returns the label tables selected by ui.month_names.
func (c Config) Names() calendar.Names {
	return calendar.NamesFor(c.UI.MonthNames)
}

func optionalKey(s string) (dates.Date, error) {
	if strings.TrimSpace(s) == "" {
		return dates.Date{}, nil
	}
	return dates.ParseKey(s)
}
