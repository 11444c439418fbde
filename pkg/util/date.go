package util

import "time"

const dayLayout = "2006-01-02"

// DayRange returns the inclusive [now-days, now] window as YYYY-MM-DD strings in UTC.
func DayRange(now time.Time, days int) (from, to string) {
	now = now.UTC()
	return now.AddDate(0, 0, -days).Format(dayLayout), now.Format(dayLayout)
}

// ChartRange maps a lookback in calendar days to the smallest chart range token covering it.
func ChartRange(days int) string {
	switch {
	case days <= 5:
		return "5d"
	case days <= 31:
		return "1mo"
	case days <= 92:
		return "3mo"
	case days <= 183:
		return "6mo"
	case days <= 366:
		return "1y"
	case days <= 731:
		return "2y"
	case days <= 1827:
		return "5y"
	case days <= 3653:
		return "10y"
	default:
		return "max"
	}
}

// TrimToDays keeps the bars whose time falls within the last days calendar days before now.
func TrimToDays[T any](bars []T, at func(T) time.Time, now time.Time, days int) []T {
	cutoff := now.AddDate(0, 0, -days)
	for i, b := range bars {
		if !at(b).Before(cutoff) {
			return bars[i:]
		}
	}
	return bars[:0]
}
