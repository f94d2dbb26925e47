// Package scheduler обходит список заказов VTEX по суточным окнам и ставит
// найденные заказы в очередь либо сразу загружает их
package scheduler

import (
	"errors"
	"fmt"
	"slices"
	"time"
)

// Mode режим выбора интервала
type Mode string

const (
	ModeRecent   Mode = "recent"   // последние N дней
	ModeRescan   Mode = "rescan"   // от самого старого заказа до текущего момента
	ModeBackfill Mode = "backfill" // N дней до самого старого заказа
)

// ParseMode разбирает название режима. Пустая строка означает recent.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", ModeRecent:
		return ModeRecent, nil
	case ModeRescan, ModeBackfill:
		return Mode(s), nil
	}
	return "", fmt.Errorf("unknown mode %q", s)
}

// SkipExisting сообщает, пропускаются ли уже сохраненные заказы
func (m Mode) SkipExisting() bool {
	return m == ModeRescan || m == ModeBackfill
}

// Range параметры интервала обхода
type Range struct {
	Mode Mode
	Days int
	From *time.Time // Явные границы; если задана только одна, From = To - Days
	To   *time.Time
}

// ErrInvertedRange начало явного интервала позже конца
var ErrInvertedRange = errors.New("range start is after range end")

// Validate проверяет явные границы интервала
func (r Range) Validate() error {
	if r.From != nil && r.To != nil && r.From.After(*r.To) {
		return fmt.Errorf("%w: %s > %s", ErrInvertedRange,
			r.From.UTC().Format(time.RFC3339), r.To.UTC().Format(time.RFC3339))
	}
	return nil
}

// Window суточное окно [From, To]
type Window struct {
	From time.Time
	To   time.Time
}

// Label дата начала окна для логов
func (w Window) Label() string {
	return w.From.UTC().Format(time.DateOnly)
}

// PlanRange вычисляет границы обхода. oldest: дата самого старого сохраненного заказа или nil.
func PlanRange(r Range, oldest *time.Time, now time.Time) (start, end time.Time) {
	days := r.Days
	if days < 1 {
		days = 1
	}

	if r.From != nil || r.To != nil {
		end = now
		if r.To != nil {
			end = *r.To
		}
		if r.From != nil && r.To != nil {
			return *r.From, end
		}
		return end.AddDate(0, 0, -days), end
	}

	switch r.Mode {
	case ModeRescan:
		if oldest != nil {
			return *oldest, now
		}
	case ModeBackfill:
		if oldest != nil {
			return oldest.AddDate(0, 0, -days), *oldest
		}
	}
	return now.AddDate(0, 0, -days), now
}

// DailyWindows режет интервал на суточные окна, захватывая сутки после end.
// Окна идут от старых к новым.
func DailyWindows(start, end time.Time) []Window {
	limit := end.AddDate(0, 0, 1)
	var windows []Window
	for cursor := start; cursor.Before(limit); cursor = cursor.AddDate(0, 0, 1) {
		windows = append(windows, Window{From: cursor, To: cursor.AddDate(0, 0, 1)})
	}
	return windows
}

// Windows окна в порядке обхода: backfill идет от новых к старым
func Windows(mode Mode, start, end time.Time) []Window {
	windows := DailyWindows(start, end)
	if mode == ModeBackfill {
		slices.Reverse(windows)
	}
	return windows
}
