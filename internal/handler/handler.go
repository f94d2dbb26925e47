// Package handler содержит HTTP обработчики API отчетов
package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"order_ingest/internal/interfaces"
)

// Handler обработчики отчетов по заказам
type Handler struct {
	reports      interfaces.Reports
	loc          *time.Location // Часовой пояс отчетов
	salesChannel string
	metrics      *HTTPMetrics
	log          *zap.Logger
	now          func() time.Time
}

// New создает обработчики отчетов
func New(reports interfaces.Reports, loc *time.Location, salesChannel string, log *zap.Logger) *Handler {
	if loc == nil {
		loc = time.UTC
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{
		reports:      reports,
		loc:          loc,
		salesChannel: salesChannel,
		metrics:      NewHTTPMetrics(),
		log:          log.Named("handler"),
		now:          time.Now,
	}
}

// Router регистрирует маршруты API
func (h *Handler) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), h.metrics.instrument())

	r.GET("/health", h.HealthCheck)
	r.GET("/debug/metrics", gin.WrapH(promhttp.Handler()))

	m := r.Group("/metrics")
	m.GET("/summary", h.Summary)
	m.GET("/orders", h.Orders)
	m.GET("/products", h.Products)
	m.GET("/customers", h.Customers)
	m.GET("/retention", h.Retention)
	m.GET("/cohort", h.Cohort)
	m.GET("/new-vs-returning", h.NewVsReturning)
	m.GET("/utm", h.UTM)
	m.GET("/shipping", h.Shipping)
	m.GET("/payments", h.Payments)
	return r
}

// HealthCheck проверка состояния сервиса
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": h.now().UTC(),
	})
}

// fail логирует ошибку отчета и отвечает 500
func (h *Handler) fail(c *gin.Context, report string, err error) {
	h.log.Error("Ошибка построения отчета", zap.String("report", report), zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось построить отчет"})
}

// Summary итоги за период
func (h *Handler) Summary(c *gin.Context) {
	f := h.filter(c)
	s, err := h.reports.Summary(c.Request.Context(), f)
	if err != nil {
		h.fail(c, "summary", err)
		return
	}
	c.JSON(http.StatusOK, s)
}

// Orders временной ряд заказов; ключ периода совпадает с groupBy
func (h *Handler) Orders(c *gin.Context) {
	f := h.filter(c)
	groupBy := parseGroupBy(c.Query("groupBy"))

	points, err := h.reports.OrdersSeries(c.Request.Context(), f, groupBy, c.Query("utmSource"))
	if err != nil {
		h.fail(c, "orders", err)
		return
	}

	series := make([]gin.H, 0, len(points))
	for _, p := range points {
		series = append(series, gin.H{groupBy: p.Period, "orders": p.Orders, "revenue": p.Revenue})
	}
	c.JSON(http.StatusOK, gin.H{"start": f.Start, "end": f.End, "groupBy": groupBy, "series": series})
}

// Products топ товаров
func (h *Handler) Products(c *gin.Context) {
	f := h.filter(c)
	limit := parseLimit(c.Query("limit"), defaultLimit, maxLimit)

	items, err := h.reports.TopProducts(c.Request.Context(), f, parseSort(c.Query("sort")), limit)
	if err != nil {
		h.fail(c, "products", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"start": f.Start, "end": f.End, "items": nonNil(items)})
}

// Customers когорты, физ./юр. лица и топ покупателей
func (h *Handler) Customers(c *gin.Context) {
	f := h.filter(c)
	limit := parseLimit(c.Query("limit"), defaultLimit, maxLimit)

	report, err := h.reports.Customers(c.Request.Context(), f, limit)
	if err != nil {
		h.fail(c, "customers", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"start": f.Start,
		"end":   f.End,
		"cohorts": gin.H{
			"newCustomers":       report.NewCustomers,
			"returningCustomers": report.ReturningCustomers,
		},
		"byType":       gin.H{"pf": report.Individual, "pj": report.Corporate},
		"topCustomers": nonNil(report.TopCustomers),
	})
}

// Retention удержание по месяцам
func (h *Handler) Retention(c *gin.Context) {
	f := h.filter(c)
	items, err := h.reports.Retention(c.Request.Context(), f)
	if err != nil {
		h.fail(c, "retention", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"start": f.Start, "end": f.End, "items": nonNil(items)})
}

// Cohort когортная таблица и список месяцев периода
func (h *Handler) Cohort(c *gin.Context) {
	f := h.filter(c)
	items, err := h.reports.Cohort(c.Request.Context(), f)
	if err != nil {
		h.fail(c, "cohort", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"start":  f.Start,
		"end":    f.End,
		"months": monthSeries(f.Start, f.End),
		"items":  nonNil(items),
	})
}

func (h *Handler) NewVsReturning(c *gin.Context) {
	f := h.filter(c)
	items, err := h.reports.NewVsReturning(c.Request.Context(), f)
	if err != nil {
		h.fail(c, "new-vs-returning", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"start": f.Start, "end": f.End, "items": nonNil(items)})
}

// UTM выручка по UTM-меткам; all=true снимает ограничение
func (h *Handler) UTM(c *gin.Context) {
	f := h.filter(c)
	limit := parseLimit(c.Query("limit"), defaultUTMLimit, maxUTMLimit)
	if c.Query("all") == "true" {
		limit = 0
	}

	items, err := h.reports.UTM(c.Request.Context(), f, limit)
	if err != nil {
		h.fail(c, "utm", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"start": f.Start, "end": f.End, "items": nonNil(items)})
}

func (h *Handler) Shipping(c *gin.Context) {
	f := h.filter(c)
	items, err := h.reports.Shipping(c.Request.Context(), f, parseLimit(c.Query("limit"), defaultLimit, maxLimit))
	if err != nil {
		h.fail(c, "shipping", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"start": f.Start, "end": f.End, "items": nonNil(items)})
}

func (h *Handler) Payments(c *gin.Context) {
	f := h.filter(c)
	items, err := h.reports.Payments(c.Request.Context(), f, parseLimit(c.Query("limit"), defaultLimit, maxLimit))
	if err != nil {
		h.fail(c, "payments", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"start": f.Start, "end": f.End, "items": nonNil(items)})
}

// nonNil заменяет nil на пустой срез, чтобы в JSON был [] вместо null
func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
