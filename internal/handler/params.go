package handler

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"order_ingest/internal/models"
)

const (
	defaultRangeDays = 30
	defaultLimit     = 20
	maxLimit         = 100
	defaultUTMLimit  = 200
	maxUTMLimit      = 500
)

// coerceDate приводит YYYY-MM-DD или RFC3339 к дате в часовом поясе отчетов.
// Нераспознанное значение заменяется на fallback.
func coerceDate(value string, fallback time.Time, loc *time.Location) string {
	value = strings.TrimSpace(value)
	if value != "" {
		if d, err := time.Parse(time.DateOnly, value); err == nil {
			return d.Format(time.DateOnly)
		}
		if t, err := time.Parse(time.RFC3339, value); err == nil {
			return t.In(loc).Format(time.DateOnly)
		}
	}
	return fallback.In(loc).Format(time.DateOnly)
}

// parseStatuses разбирает список статусов через запятую
func parseStatuses(value string) []string {
	var out []string
	for _, s := range strings.Split(value, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// parseLimit возвращает def для пустого или некорректного значения и не больше upper
func parseLimit(value string, def, upper int) int {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || n <= 0 {
		return def
	}
	return min(n, upper)
}

func parseGroupBy(value string) string {
	switch value {
	case "week", "month":
		return value
	default:
		return "day"
	}
}

func parseSort(value string) string {
	if value == "quantity" {
		return value
	}
	return "revenue"
}

// filter собирает общий фильтр отчета из query-параметров
func (h *Handler) filter(c *gin.Context) models.ReportFilter {
	now := h.now()
	return models.ReportFilter{
		Start:        coerceDate(c.Query("start"), now.AddDate(0, 0, -defaultRangeDays), h.loc),
		End:          coerceDate(c.Query("end"), now, h.loc),
		Statuses:     parseStatuses(c.Query("status")),
		SalesChannel: h.salesChannel,
		Timezone:     h.loc.String(),
	}
}

// monthSeries первые числа месяцев от start до end включительно
func monthSeries(start, end string) []string {
	from, err1 := time.Parse(time.DateOnly, start)
	to, err2 := time.Parse(time.DateOnly, end)
	months := []string{}
	if err1 != nil || err2 != nil {
		return months
	}
	cursor := time.Date(from.Year(), from.Month(), 1, 0, 0, 0, 0, time.UTC)
	last := time.Date(to.Year(), to.Month(), 1, 0, 0, 0, 0, time.UTC)
	for !cursor.After(last) {
		months = append(months, cursor.Format(time.DateOnly))
		cursor = cursor.AddDate(0, 1, 0)
	}
	return months
}
