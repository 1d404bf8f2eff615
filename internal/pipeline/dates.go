// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package pipeline

import (
	"fmt"
	"time"
)

// TargetDates decides which dates a run converts. The "date" environment
// value, when set, selects that single date; otherwise the run targets
// yesterday UTC. days extends the window backwards from the anchor for
// backfills (days <= 1 means just the anchor date).
func TargetDates(getenv func(string) string, now time.Time, days int) ([]time.Time, error) {
	anchor := now.UTC().AddDate(0, 0, -1).Truncate(24 * time.Hour)

	if override := getenv("date"); override != "" {
		parsed, err := time.ParseInLocation(DateLayout, override, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("invalid date override %q: %w", override, err)
		}
		anchor = parsed
	}

	if days < 1 {
		days = 1
	}
	dates := make([]time.Time, 0, days)
	for i := days - 1; i >= 0; i-- {
		dates = append(dates, anchor.AddDate(0, 0, -i))
	}
	return dates, nil
}
