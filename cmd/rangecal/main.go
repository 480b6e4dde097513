package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"cloudeng.io/logging/ctxlog"
	"github.com/spf13/cobra"

	"github.com/lululau/rangecal/internal/config"
	"github.com/lululau/rangecal/internal/holidays"
	"github.com/lululau/rangecal/internal/render"
	"github.com/lululau/rangecal/internal/selection"
	"github.com/lululau/rangecal/internal/tui"
	"github.com/lululau/rangecal/internal/weekly"
	"github.com/lululau/rangecal/internal/widget"
)

type rootFlags struct {
	plain          bool
	start          string
	end            string
	clicks         []string
	holidaysFile   string
	updateHolidays bool
	disablePast    bool
	weekends       bool
	weekendPolicy  string
	minDate        string
	maxDate        string
	noColor        bool
	configPath     string
	verbose        bool
}

type weeklyFlags struct {
	value     string
	startHour int
	endHour   int
	plain     bool
}

func main() {
	if err := newRootCmd(os.Stdout).ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	var f rootFlags
	cmd := &cobra.Command{
		Use:   "rangecal [year] [month]",
		Short: "Pick a start and end day on two linked month calendars",
		Long: `Pick a start and end day on two linked month calendars.

  no arguments   start calendar shows the --start month or the current month
  9              show September of the current year
  2026           show January 2026
  2026 12        show December 2026

The chosen fields are printed as start=DD.MM.YYYY and end=DD.MM.YYYY.`,
		Args:          cobra.MaximumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := newLoggerContext(cmd.Context(), f.verbose)
			cfg, err := config.Load(f.configPath)
			if err != nil {
				return err
			}
			if f.updateHolidays {
				return holidays.DownloadHolidays(ctx, cfg.Holidays.URL)
			}
			return runPicker(ctx, cmd, out, cfg, f, args)
		},
	}

	flags := cmd.PersistentFlags()
	flags.BoolVarP(&f.noColor, "no-color", "N", false, "Disable all color output")
	flags.StringVar(&f.configPath, "config", "", "Config file (default $RANGECAL_CONFIG or ~/.config/rangecal/config.toml)")
	flags.BoolVar(&f.verbose, "verbose", false, "Log debug diagnostics to stderr")

	cmd.Flags().BoolVarP(&f.plain, "plain", "n", false, "Render once and exit (non-interactive)")
	cmd.Flags().StringVar(&f.start, "start", "", "Initial start field, DD.MM.YYYY")
	cmd.Flags().StringVar(&f.end, "end", "", "Initial end field, DD.MM.YYYY")
	cmd.Flags().StringArrayVar(&f.clicks, "click", nil, "Replay a click in plain mode, start:DD.MM.YYYY or end:DD.MM.YYYY (repeatable)")
	cmd.Flags().StringVar(&f.holidaysFile, "holidays-file", "", "Holiday list file instead of the cache")
	cmd.Flags().BoolVarP(&f.updateHolidays, "update-holidays", "u", false, "Download the latest holiday list into the cache")
	cmd.Flags().BoolVar(&f.disablePast, "disable-past", false, "Make days before today non-selectable")
	cmd.Flags().BoolVar(&f.weekends, "weekends", false, "Highlight Saturdays and Sundays")
	cmd.Flags().StringVar(&f.weekendPolicy, "weekend-policy", "", "cosmetic or blocking")
	cmd.Flags().StringVar(&f.minDate, "min-date", "", "First selectable day, YYYY-MM-DD")
	cmd.Flags().StringVar(&f.maxDate, "max-date", "", "Last selectable day, YYYY-MM-DD")

	cmd.AddCommand(newWeeklyCmd(out, &f))
	return cmd
}

func newWeeklyCmd(out io.Writer, root *rootFlags) *cobra.Command {
	var f weeklyFlags
	cmd := &cobra.Command{
		Use:          "weekly",
		Short:        "Pick working hours on a Monday-first weekly grid",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := newLoggerContext(cmd.Context(), root.verbose)
			cfg, err := config.Load(root.configPath)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("start-hour") {
				f.startHour = cfg.Weekly.StartHour
			}
			if !cmd.Flags().Changed("end-hour") {
				f.endHour = cfg.Weekly.EndHour
			}
			g, err := weekly.Load(ctx, f.value, f.startHour, f.endHour)
			if err != nil {
				return err
			}
			if root.noColor || cfg.UI.NoColor {
				setNoColor()
			}
			weekdays := cfg.Names().Weekdays
			if f.plain {
				err = render.RunPlainWeekly(out, g, weekdays)
			} else {
				err = tui.RunWeekly(ctx, g, weekdays)
			}
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(out, "value=%s\nhours=%d\n", g.Value(), g.Hours())
			return err
		},
	}
	cmd.Flags().StringVar(&f.value, "value", "", `Initial value, e.g. {"monday":[7,8]}`)
	cmd.Flags().IntVar(&f.startHour, "start-hour", weekly.DefaultStartHour, "First hour of the grid")
	cmd.Flags().IntVar(&f.endHour, "end-hour", weekly.DefaultEndHour, "Hour the grid ends at (exclusive)")
	cmd.Flags().BoolVarP(&f.plain, "plain", "n", false, "Render once and exit (non-interactive)")
	return cmd
}

func setNoColor() {
	render.SetNoColor(true)
	tui.SetNoColor(true)
}

func newLoggerContext(ctx context.Context, verbose bool) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return ctxlog.NewJSONLogger(ctx, os.Stderr, &slog.HandlerOptions{Level: level})
}

// applyFlags lets explicitly set flags override the config file.
func applyFlags(cmd *cobra.Command, cfg *config.Config, f rootFlags) {
	changed := cmd.Flags().Changed
	if changed("disable-past") {
		cfg.Picker.DisablePastDates = f.disablePast
	}
	if changed("weekends") {
		cfg.Picker.HighlightWeekends = f.weekends
	}
	if changed("weekend-policy") {
		cfg.Picker.WeekendPolicy = f.weekendPolicy
	}
	if changed("min-date") {
		cfg.Picker.MinDate = f.minDate
	}
	if changed("max-date") {
		cfg.Picker.MaxDate = f.maxDate
	}
	if changed("holidays-file") {
		cfg.Holidays.File = f.holidaysFile
	}
	if changed("no-color") {
		cfg.UI.NoColor = f.noColor
	}
}

// loadHolidays prefers an explicit file and falls back to the download
// cache. The second result reports whether the data is fresh enough to stop
// nagging about a refresh.
func loadHolidays(ctx context.Context, path string) (holidays.Set, bool) {
	logger := ctxlog.Logger(ctx)
	if path != "" {
		set, err := holidays.LoadFromFile(ctx, path)
		if err != nil {
			logger.Warn("cannot load holidays file", "path", path, "error", err)
			return set, false
		}
		return set, true
	}
	cachePath, err := holidays.GetCachePath()
	if err != nil {
		return holidays.NewSet(), false
	}
	valid, err := holidays.IsCacheValid(cachePath, time.Now())
	if err != nil || !valid {
		return holidays.NewSet(), false
	}
	set, err := holidays.LoadFromCache(ctx)
	if err != nil {
		logger.Warn("cannot read holidays cache", "path", cachePath, "error", err)
		return set, false
	}
	return set, true
}

func runPicker(ctx context.Context, cmd *cobra.Command, out io.Writer, cfg config.Config, f rootFlags, args []string) error {
	applyFlags(cmd, &cfg, f)
	if cfg.UI.NoColor {
		setNoColor()
	}
	rules, err := cfg.Rules()
	if err != nil {
		return err
	}
	jump, jumpOK, err := parseMonthArgs(args, time.Now())
	if err != nil {
		return err
	}
	var clicks []render.Click
	for _, c := range f.clicks {
		click, err := render.ParseClick(c)
		if err != nil {
			return err
		}
		clicks = append(clicks, click)
	}
	if len(clicks) > 0 && !f.plain {
		return fmt.Errorf("--click needs --plain")
	}

	set, cacheValid := loadHolidays(ctx, cfg.Holidays.File)
	w := widget.New(ctx, widget.Container{
		StartInput: widget.NewTextField(f.start),
		EndInput:   widget.NewTextField(f.end),
	}, widget.Config{
		Rules:    rules,
		Names:    cfg.Names(),
		Lunar:    cfg.UI.ShowLunar,
		Holidays: set,
	})
	if jumpOK {
		w.Show(selection.StartSide, jump)
		if !w.Show(selection.EndSide, jump.Next()) {
			w.Show(selection.EndSide, jump)
		}
	}

	labels := render.Labels{cfg.UI.StartLabel, cfg.UI.EndLabel}
	if f.plain {
		err = render.RunPlain(render.PlainOptions{
			Writer:            out,
			Widget:            w,
			Labels:            labels,
			Clicks:            clicks,
			HolidayCacheValid: cacheValid,
		})
	} else {
		err = tui.Run(ctx, w, tui.Options{Labels: labels, HolidayCacheValid: cacheValid})
	}
	if err != nil {
		return err
	}
	start, end := w.Fields()
	_, err = fmt.Fprintf(out, "start=%s\nend=%s\n", start, end)
	return err
}
