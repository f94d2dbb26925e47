package app

import (
	"fmt"
	"strconv"
	"time"

	"order_ingest/internal/scheduler"
)

// ParseDate разбирает YYYY-MM-DD (полночь UTC) или RFC3339. Пустая строка дает nil.
func ParseDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.DateOnly, value); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: expected YYYY-MM-DD or RFC3339", value)
	}
	return &t, nil
}

// ParseRange разбирает --from/--to и проверяет, что начало не позже конца
func ParseRange(from, to string) (*time.Time, *time.Time, error) {
	fromDate, err := ParseDate(from)
	if err != nil {
		return nil, nil, err
	}
	toDate, err := ParseDate(to)
	if err != nil {
		return nil, nil, err
	}
	if err := (scheduler.Range{From: fromDate, To: toDate}).Validate(); err != nil {
		return nil, nil, err
	}
	return fromDate, toDate, nil
}

// Days число дней из флага, затем из первого числового позиционного аргумента, иначе def
func Days(flagValue int, args []string, def int) int {
	if flagValue > 0 {
		return flagValue
	}
	for _, arg := range args {
		if n, err := strconv.Atoi(arg); err == nil && n > 0 {
			return n
		}
	}
	return def
}

// Mode режим обхода по флагам; --rescan важнее --backfill
func Mode(rescan, backfill bool) scheduler.Mode {
	switch {
	case rescan:
		return scheduler.ModeRescan
	case backfill:
		return scheduler.ModeBackfill
	default:
		return scheduler.ModeRecent
	}
}
