package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"order_ingest/internal/models"
)

// Общие параметры отчетов: $1 начало, $2 конец (даты в часовом поясе $3),
// $4 статусы (пустой массив = все), $5 канал продаж (пустая строка = все)
const (
	localTime = `(o.creation_date AT TIME ZONE $3::text)`

	reportPeriod = localTime + `::date BETWEEN $1::date AND $2::date`

	reportScope = `(COALESCE(cardinality($4::text[]), 0) = 0 OR o.status = ANY($4::text[]))
		AND ($5::text = '' OR o.sales_channel = $5::text)`
)

const (
	SummaryReportQuery = `SELECT COUNT(*),
			COUNT(DISTINCT o.customer_id),
			COALESCE(SUM(o.total_value), 0)::bigint,
			COALESCE(SUM(o.items_value), 0)::bigint,
			COALESCE(SUM(o.shipping_value), 0)::bigint,
			COALESCE(SUM(o.discounts_value), 0)::bigint,
			COALESCE(SUM(o.tax_value), 0)::bigint
		FROM orders o
		WHERE ` + reportPeriod + ` AND ` + reportScope

	// %s: выражение периода. $6: utm_source ('' = все, 'Direto' = без метки)
	ordersSeriesReportQuery = `SELECT %s AS period,
			COUNT(*),
			COALESCE(SUM(o.total_value), 0)::bigint
		FROM orders o
		WHERE ` + reportPeriod + ` AND ` + reportScope + `
			AND ($6::text = ''
				OR ($6::text = 'Direto' AND (o.utm_source IS NULL OR o.utm_source = '' OR o.utm_source = '(none)'))
				OR ($6::text <> 'Direto' AND o.utm_source = $6::text))
		GROUP BY period
		ORDER BY period ASC`

	// %s: порядок сортировки. $6: лимит
	topProductsReportQuery = `SELECT sk.vtex_sku_id, pr.vtex_product_id, sk.name, pr.name,
			COALESCE(SUM(oi.quantity), 0)::bigint AS quantity,
			COALESCE(SUM(COALESCE(oi.selling_price, oi.price, 0) * oi.quantity), 0)::bigint AS revenue
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		LEFT JOIN skus sk ON sk.id = oi.sku_id
		LEFT JOIN products pr ON pr.id = oi.product_id
		WHERE ` + reportPeriod + ` AND ` + reportScope + `
		GROUP BY sk.vtex_sku_id, pr.vtex_product_id, sk.name, pr.name
		ORDER BY %s
		LIMIT $6`

	// Новые: первый заказ в периоде, вернувшиеся: первый заказ до начала периода
	CustomerCohortsReportQuery = `WITH first_orders AS (
			SELECT o.customer_id, MIN(o.creation_date) AS first_order
			FROM orders o
			WHERE o.customer_id IS NOT NULL AND ` + reportScope + `
			GROUP BY o.customer_id
		)
		SELECT
			COALESCE(SUM(CASE WHEN (first_order AT TIME ZONE $3::text)::date BETWEEN $1::date AND $2::date THEN 1 ELSE 0 END), 0)::bigint,
			COALESCE(SUM(CASE WHEN (first_order AT TIME ZONE $3::text)::date < $1::date THEN 1 ELSE 0 END), 0)::bigint
		FROM first_orders`

	TopCustomersReportQuery = `SELECT o.customer_id::text, c.email, c.first_name, c.last_name,
			COUNT(*),
			COALESCE(SUM(o.total_value), 0)::bigint AS revenue
		FROM orders o
		LEFT JOIN customers c ON c.id = o.customer_id
		WHERE ` + reportPeriod + ` AND ` + reportScope + `
		GROUP BY o.customer_id, c.email, c.first_name, c.last_name
		ORDER BY revenue DESC
		LIMIT $6`

	CustomerTypesReportQuery = `SELECT COALESCE(c.is_corporate, FALSE) AS is_corporate,
			COUNT(DISTINCT o.customer_id),
			COUNT(*),
			COALESCE(SUM(o.total_value), 0)::bigint,
			CASE WHEN COUNT(*) > 0 THEN (COALESCE(SUM(o.total_value), 0) / COUNT(*))::bigint ELSE 0 END
		FROM orders o
		LEFT JOIN customers c ON c.id = o.customer_id
		WHERE ` + reportPeriod + ` AND o.customer_id IS NOT NULL AND ` + reportScope + `
		GROUP BY 1`

	RetentionReportQuery = `WITH periods AS (
			SELECT generate_series(
				date_trunc('month', $1::date::timestamp),
				date_trunc('month', $2::date::timestamp),
				interval '1 month'
			)::date AS period_start
		),
		orders_by_period AS (
			SELECT date_trunc('month', ` + localTime + `)::date AS period_start, o.customer_id
			FROM orders o
			WHERE o.customer_id IS NOT NULL AND ` + reportPeriod + ` AND ` + reportScope + `
			GROUP BY 1, o.customer_id
		),
		counts AS (
			SELECT p.period_start, COUNT(DISTINCT obp.customer_id) AS customers
			FROM periods p
			LEFT JOIN orders_by_period obp ON obp.period_start = p.period_start
			GROUP BY p.period_start
		),
		retained AS (
			SELECT cur.period_start, COUNT(DISTINCT cur.customer_id) AS retained_customers
			FROM orders_by_period cur
			JOIN orders_by_period prev
				ON prev.period_start = (cur.period_start - interval '1 month')::date
				AND prev.customer_id = cur.customer_id
			GROUP BY cur.period_start
		)
		SELECT p.period_start,
			COALESCE(c.customers, 0)::bigint,
			COALESCE(prev.customers, 0)::bigint,
			COALESCE(r.retained_customers, 0)::bigint
		FROM periods p
		LEFT JOIN counts c ON c.period_start = p.period_start
		LEFT JOIN counts prev ON prev.period_start = (p.period_start - interval '1 month')::date
		LEFT JOIN retained r ON r.period_start = p.period_start
		ORDER BY p.period_start`

	CohortReportQuery = `WITH monthly AS (
			SELECT o.customer_id, date_trunc('month', ` + localTime + `)::date AS order_month
			FROM orders o
			WHERE o.customer_id IS NOT NULL AND ` + reportPeriod + ` AND ` + reportScope + `
			GROUP BY o.customer_id, 2
		),
		first_orders AS (
			SELECT customer_id, MIN(order_month) AS cohort_month
			FROM monthly
			GROUP BY customer_id
		)
		SELECT f.cohort_month, m.order_month, COUNT(DISTINCT m.customer_id)::bigint
		FROM first_orders f
		JOIN monthly m ON m.customer_id = f.customer_id
		WHERE m.order_month >= f.cohort_month
		GROUP BY f.cohort_month, m.order_month
		ORDER BY f.cohort_month, m.order_month`

	// Первый месяц покупателя определяется по всей истории, а не только по периоду
	NewVsReturningReportQuery = `WITH periods AS (
			SELECT generate_series(
				date_trunc('month', $1::date::timestamp),
				date_trunc('month', $2::date::timestamp),
				interval '1 month'
			)::date AS period_start
		),
		first_orders AS (
			SELECT o.customer_id, MIN(date_trunc('month', ` + localTime + `))::date AS first_month
			FROM orders o
			WHERE o.customer_id IS NOT NULL AND ` + reportScope + `
			GROUP BY o.customer_id
		),
		customers_in_period AS (
			SELECT o.customer_id, date_trunc('month', ` + localTime + `)::date AS order_month
			FROM orders o
			WHERE o.customer_id IS NOT NULL AND ` + reportPeriod + ` AND ` + reportScope + `
			GROUP BY o.customer_id, 2
		)
		SELECT p.period_start,
			COUNT(DISTINCT CASE WHEN f.first_month = cp.order_month THEN cp.customer_id END)::bigint,
			COUNT(DISTINCT CASE WHEN f.first_month < cp.order_month THEN cp.customer_id END)::bigint
		FROM periods p
		LEFT JOIN customers_in_period cp ON cp.order_month = p.period_start
		LEFT JOIN first_orders f ON f.customer_id = cp.customer_id
		GROUP BY p.period_start
		ORDER BY p.period_start`

	// $6: лимит, NULL = без ограничения
	UTMReportQuery = `SELECT COALESCE(o.utm_source, '(none)'),
			COALESCE(o.utm_medium, '(none)'),
			COALESCE(o.utm_campaign, '(none)'),
			COUNT(*),
			COALESCE(SUM(o.total_value), 0)::bigint AS revenue
		FROM orders o
		WHERE ` + reportPeriod + ` AND ` + reportScope + `
		GROUP BY 1, 2, 3
		ORDER BY revenue DESC
		LIMIT $6`

	ShippingReportQuery = `SELECT s.carrier, s.delivery_channel, s.shipping_sla,
			COUNT(*) AS shipments,
			COALESCE(SUM(o.total_value), 0)::bigint,
			COALESCE(SUM(s.shipping_value), 0)::bigint
		FROM order_shippings s
		JOIN orders o ON o.id = s.order_id
		WHERE ` + reportPeriod + ` AND ` + reportScope + `
		GROUP BY s.carrier, s.delivery_channel, s.shipping_sla
		ORDER BY shipments DESC
		LIMIT $6`

	PaymentsReportQuery = `SELECT p.payment_group, p.payment_name,
			COUNT(*),
			COALESCE(SUM(p.value), 0)::bigint AS revenue
		FROM order_payments p
		JOIN orders o ON o.id = p.order_id
		WHERE ` + reportPeriod + ` AND ` + reportScope + `
		GROUP BY p.payment_group, p.payment_name
		ORDER BY revenue DESC
		LIMIT $6`
)

var periodExpressions = map[string]string{
	"day":   `TO_CHAR(` + localTime + `::date, 'YYYY-MM-DD')`,
	"week":  `TO_CHAR(date_trunc('week', ` + localTime + `)::date, 'YYYY-MM-DD')`,
	"month": `TO_CHAR(date_trunc('month', ` + localTime + `)::date, 'YYYY-MM-DD')`,
}

var productOrderings = map[string]string{
	"quantity": "quantity DESC, revenue DESC",
	"revenue":  "revenue DESC, quantity DESC",
}

// reportArgs параметры $1..$5, общие для всех отчетов
func reportArgs(f models.ReportFilter, extra ...any) []any {
	statuses := f.Statuses
	if statuses == nil {
		statuses = []string{}
	}
	tz := f.Timezone
	if tz == "" {
		tz = "UTC"
	}
	return append([]any{f.Start, f.End, tz, statuses, f.SalesChannel}, extra...)
}

// Summary итоги за период
func (p *Postgres) Summary(ctx context.Context, f models.ReportFilter) (*models.Summary, error) {
	s := &models.Summary{Start: f.Start, End: f.End}
	err := p.observe("report_summary", func() error {
		return p.pool.QueryRow(ctx, SummaryReportQuery, reportArgs(f)...).Scan(
			&s.Orders, &s.Customers, &s.TotalRevenue, &s.ItemsValue, &s.ShippingValue, &s.DiscountsValue, &s.TaxValue)
	})
	if err != nil {
		return nil, fmt.Errorf("Ошибка отчета summary: %w", err)
	}
	if s.Orders > 0 {
		s.AvgOrderValue = roundDiv(s.TotalRevenue, s.Orders)
	}
	return s, nil
}

// OrdersSeries заказы и выручка по дням, неделям или месяцам
func (p *Postgres) OrdersSeries(ctx context.Context, f models.ReportFilter, groupBy, utmSource string) ([]models.SeriesPoint, error) {
	expr, ok := periodExpressions[groupBy]
	if !ok {
		expr = periodExpressions["day"]
	}
	query := fmt.Sprintf(ordersSeriesReportQuery, expr)

	points := []models.SeriesPoint{}
	err := p.queryReport(ctx, "report_orders", query, reportArgs(f, utmSource), func(rows pgx.Rows) error {
		var pt models.SeriesPoint
		if err := rows.Scan(&pt.Period, &pt.Orders, &pt.Revenue); err != nil {
			return err
		}
		points = append(points, pt)
		return nil
	})
	return points, err
}

// TopProducts самые продаваемые SKU по выручке или количеству
func (p *Postgres) TopProducts(ctx context.Context, f models.ReportFilter, sort string, limit int) ([]models.ProductRow, error) {
	ordering, ok := productOrderings[sort]
	if !ok {
		ordering = productOrderings["revenue"]
	}
	query := fmt.Sprintf(topProductsReportQuery, ordering)

	items := []models.ProductRow{}
	err := p.queryReport(ctx, "report_products", query, reportArgs(f, limit), func(rows pgx.Rows) error {
		var r models.ProductRow
		if err := rows.Scan(&r.SkuID, &r.ProductID, &r.SkuName, &r.ProductName, &r.Quantity, &r.Revenue); err != nil {
			return err
		}
		items = append(items, r)
		return nil
	})
	return items, err
}

// Customers когорты, разбивка по типу покупателя и топ покупателей
func (p *Postgres) Customers(ctx context.Context, f models.ReportFilter, limit int) (*models.CustomersReport, error) {
	report := &models.CustomersReport{TopCustomers: []models.CustomerRow{}}

	err := p.observe("report_customers", func() error {
		return p.pool.QueryRow(ctx, CustomerCohortsReportQuery, reportArgs(f)...).
			Scan(&report.NewCustomers, &report.ReturningCustomers)
	})
	if err != nil {
		return nil, fmt.Errorf("Ошибка отчета customers: %w", err)
	}

	err = p.queryReport(ctx, "report_customers", TopCustomersReportQuery, reportArgs(f, limit), func(rows pgx.Rows) error {
		var (
			r                   models.CustomerRow
			id                  *string
			firstName, lastName *string
		)
		if err := rows.Scan(&id, &r.Email, &firstName, &lastName, &r.Orders, &r.Revenue); err != nil {
			return err
		}
		if id != nil {
			r.CustomerID = *id
		}
		r.Name = joinName(firstName, lastName)
		report.TopCustomers = append(report.TopCustomers, r)
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = p.queryReport(ctx, "report_customers", CustomerTypesReportQuery, reportArgs(f), func(rows pgx.Rows) error {
		var (
			corporate bool
			st        models.CustomerTypeStats
		)
		if err := rows.Scan(&corporate, &st.TotalCustomers, &st.TotalOrders, &st.TotalRevenue, &st.AvgOrderValue); err != nil {
			return err
		}
		if corporate {
			report.Corporate = st
		} else {
			report.Individual = st
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}

// Retention покупатели месяца, купившие и в предыдущем месяце
func (p *Postgres) Retention(ctx context.Context, f models.ReportFilter) ([]models.RetentionRow, error) {
	items := []models.RetentionRow{}
	err := p.queryReport(ctx, "report_retention", RetentionReportQuery, reportArgs(f), func(rows pgx.Rows) error {
		var (
			r     models.RetentionRow
			start time.Time
		)
		if err := rows.Scan(&start, &r.Customers, &r.PreviousCustomers, &r.RetainedCustomers); err != nil {
			return err
		}
		r.PeriodStart = start.Format(time.DateOnly)
		items = append(items, r)
		return nil
	})
	return items, err
}

// Cohort покупатели по месяцу первого заказа и месяцу повторных заказов
func (p *Postgres) Cohort(ctx context.Context, f models.ReportFilter) ([]models.CohortRow, error) {
	items := []models.CohortRow{}
	err := p.queryReport(ctx, "report_cohort", CohortReportQuery, reportArgs(f), func(rows pgx.Rows) error {
		var (
			r                 models.CohortRow
			cohort, orderedAt time.Time
		)
		if err := rows.Scan(&cohort, &orderedAt, &r.Customers); err != nil {
			return err
		}
		r.CohortMonth = cohort.Format(time.DateOnly)
		r.OrderMonth = orderedAt.Format(time.DateOnly)
		items = append(items, r)
		return nil
	})
	return items, err
}

// NewVsReturning новые и вернувшиеся покупатели по месяцам
func (p *Postgres) NewVsReturning(ctx context.Context, f models.ReportFilter) ([]models.NewVsReturningRow, error) {
	items := []models.NewVsReturningRow{}
	err := p.queryReport(ctx, "report_new_vs_returning", NewVsReturningReportQuery, reportArgs(f), func(rows pgx.Rows) error {
		var (
			r     models.NewVsReturningRow
			start time.Time
		)
		if err := rows.Scan(&start, &r.NewOrders, &r.ReturningOrders); err != nil {
			return err
		}
		r.PeriodStart = start.Format(time.DateOnly)
		items = append(items, r)
		return nil
	})
	return items, err
}

// UTM выручка по UTM-меткам
func (p *Postgres) UTM(ctx context.Context, f models.ReportFilter, limit int) ([]models.UTMRow, error) {
	var lim any
	if limit > 0 {
		lim = limit
	}
	items := []models.UTMRow{}
	err := p.queryReport(ctx, "report_utm", UTMReportQuery, reportArgs(f, lim), func(rows pgx.Rows) error {
		var r models.UTMRow
		if err := rows.Scan(&r.UtmSource, &r.UtmMedium, &r.UtmCampaign, &r.Orders, &r.Revenue); err != nil {
			return err
		}
		items = append(items, r)
		return nil
	})
	return items, err
}

// Shipping разбивка по перевозчику, каналу доставки и SLA
func (p *Postgres) Shipping(ctx context.Context, f models.ReportFilter, limit int) ([]models.ShippingRow, error) {
	items := []models.ShippingRow{}
	err := p.queryReport(ctx, "report_shipping", ShippingReportQuery, reportArgs(f, limit), func(rows pgx.Rows) error {
		var r models.ShippingRow
		if err := rows.Scan(&r.Carrier, &r.DeliveryChannel, &r.ShippingSLA, &r.Shipments, &r.Revenue, &r.ShippingValue); err != nil {
			return err
		}
		items = append(items, r)
		return nil
	})
	return items, err
}

// Payments разбивка по способам оплаты
func (p *Postgres) Payments(ctx context.Context, f models.ReportFilter, limit int) ([]models.PaymentRow, error) {
	items := []models.PaymentRow{}
	err := p.queryReport(ctx, "report_payments", PaymentsReportQuery, reportArgs(f, limit), func(rows pgx.Rows) error {
		var r models.PaymentRow
		if err := rows.Scan(&r.PaymentGroup, &r.PaymentName, &r.Payments, &r.Revenue); err != nil {
			return err
		}
		items = append(items, r)
		return nil
	})
	return items, err
}

// queryReport выполняет запрос отчета и передает каждую строку в scan
func (p *Postgres) queryReport(ctx context.Context, operation, query string, args []any, scan func(pgx.Rows) error) error {
	err := p.observe(operation, func() error {
		rows, err := p.pool.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			if err := scan(rows); err != nil {
				return err
			}
		}
		return rows.Err()
	})
	if err != nil {
		return fmt.Errorf("Ошибка отчета %s: %w", strings.TrimPrefix(operation, "report_"), err)
	}
	return nil
}

func joinName(parts ...*string) string {
	var names []string
	for _, p := range parts {
		if p != nil && *p != "" {
			names = append(names, *p)
		}
	}
	return strings.Join(names, " ")
}

// roundDiv деление с округлением до ближайшего целого
func roundDiv(a, b int64) int64 {
	if b == 0 {
		return 0
	}
	q := a / b
	if r := a % b; 2*abs(r) >= abs(b) {
		if (a < 0) != (b < 0) {
			q--
		} else {
			q++
		}
	}
	return q
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
