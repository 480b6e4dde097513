package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lululau/rangecal/internal/calendar"
	"github.com/lululau/rangecal/internal/dates"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("RANGECAL_CONFIG", "")
	return dir
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	c, err := Load("")
	require.NoError(t, err)
	require.False(t, c.Picker.DisablePastDates)
	require.Equal(t, "cosmetic", c.Picker.WeekendPolicy)
	require.Equal(t, "pl", c.UI.MonthNames)
	require.Equal(t, 7, c.Weekly.StartHour)
	require.Equal(t, 15, c.Weekly.EndHour)

	r, err := c.Rules()
	require.NoError(t, err)
	require.Equal(t, calendar.Rules{}, r)
	require.Equal(t, calendar.PolishMonths, c.Names().Months)
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "rangecal.toml")
	body := `
[picker]
disable_past_dates = true
highlight_weekends = true
weekend_policy = "blocking"
min_date = "2025-01-01"

[ui]
month_names = "en"
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	t.Setenv("RANGECAL_PICKER_MAX_DATE", "2025-12-31")

	c, err := Load(path)
	require.NoError(t, err)

	r, err := c.Rules()
	require.NoError(t, err)
	require.True(t, r.DisablePastDates)
	require.True(t, r.HighlightWeekends)
	require.Equal(t, calendar.WeekendBlocking, r.WeekendPolicy)
	require.Equal(t, dates.New(2025, 1, 1), r.MinDate)
	require.Equal(t, dates.New(2025, 12, 31), r.MaxDate)
	require.Equal(t, calendar.EnglishMonths, c.Names().Months)
}

func TestLoadExplicitMissingFile(t *testing.T) {
	dir := isolate(t)
	_, err := Load(filepath.Join(dir, "nope.toml"))
	require.Error(t, err)
}

func TestRulesRejectsBadBounds(t *testing.T) {
	c := Config{Picker: PickerConfig{MinDate: "2025-02-01", MaxDate: "2025-01-01"}}
	_, err := c.Rules()
	require.Error(t, err)

	c = Config{Picker: PickerConfig{MinDate: "01.02.2025"}}
	_, err = c.Rules()
	require.ErrorIs(t, err, dates.ErrInvalidDate)

	c = Config{Picker: PickerConfig{WeekendPolicy: "sometimes"}}
	_, err = c.Rules()
	require.Error(t, err)
}
