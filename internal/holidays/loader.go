package holidays

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"cloudeng.io/errors"
	"cloudeng.io/logging/ctxlog"

	"github.com/lululau/rangecal/internal/dates"
)

// ErrMalformed is returned when holiday data is neither a JSON list of
// YYYY-MM-DD strings nor the yearly holiday layout.
var ErrMalformed = errors.New("malformed holiday data")

// Decode reads holiday data. It accepts a JSON array of YYYY-MM-DD strings
// or the yearly layout. Entries that fail to parse are skipped and reported
// together in the returned error; the Set holds every entry that did parse.
func Decode(data []byte) (Set, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return NewSet(), nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		return fromList(list)
	}

	var yearly YearlyData
	if err := json.Unmarshal(data, &yearly); err != nil {
		return NewSet(), fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return fromYearly(yearly)
}

func fromList(list []string) (Set, error) {
	errs := errors.M{}
	days := make([]dates.Date, 0, len(list))
	for _, v := range list {
		d, err := dates.ParseKey(v)
		if err != nil {
			errs.Append(err)
			continue
		}
		days = append(days, d)
	}
	return NewSet(days...), errs.Err()
}

func fromYearly(yearly YearlyData) (Set, error) {
	errs := errors.M{}
	var days []dates.Date
	for _, year := range yearly {
		for key, entry := range year.Holiday {
			if entry == nil || !entry.Holiday {
				continue
			}
			d, err := dates.ParseKey(year.Year + "-" + key)
			if err != nil {
				errs.Append(err)
				continue
			}
			days = append(days, d)
		}
	}
	return NewSet(days...), errs.Err()
}

// Parse is Decode for host supplied data: it never fails. Malformed data
// yields an empty Set and bad entries are dropped, both with a warning.
func Parse(ctx context.Context, data []byte) Set {
	set, err := Decode(data)
	if err == nil {
		return set
	}
	logger := ctxlog.Logger(ctx)
	if errors.Is(err, ErrMalformed) {
		logger.Warn("holiday list is malformed, using an empty set", "error", err)
		return NewSet()
	}
	logger.Warn("skipped invalid holiday entries", "kept", set.Len(), "error", err)
	return set
}

// LoadFromFile reads holiday data from a file.
func LoadFromFile(ctx context.Context, path string) (Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return NewSet(), fmt.Errorf("failed to read holidays file: %w", err)
	}
	return Parse(ctx, data), nil
}

// GetCachePath returns the path to the holidays cache file in the user's
// cache directory.
func GetCachePath() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("failed to get cache directory: %w", err)
	}
	return filepath.Join(cacheDir, "rangecal", "holidays.json"), nil
}

// LoadFromCache loads holiday data from the cache file.
func LoadFromCache(ctx context.Context) (Set, error) {
	cachePath, err := GetCachePath()
	if err != nil {
		return NewSet(), err
	}
	return LoadFromFile(ctx, cachePath)
}

// IsCacheValid reports whether the cache file exists and was written within
// the last six months.
func IsCacheValid(cachePath string, now time.Time) (bool, error) {
	info, err := os.Stat(cachePath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return info.ModTime().After(now.AddDate(0, -6, 0)), nil
}
