package models

// ReportFilter общие параметры отчетов
type ReportFilter struct {
	Start        string   // YYYY-MM-DD в часовом поясе отчетов
	End          string   // YYYY-MM-DD включительно
	Statuses     []string // пустой список = без фильтра
	SalesChannel string   // пустая строка = без фильтра
	Timezone     string
}

// Summary итоги за период
type Summary struct {
	Start          string `json:"start"`
	End            string `json:"end"`
	Orders         int64  `json:"orders"`
	Customers      int64  `json:"customers"`
	TotalRevenue   int64  `json:"totalRevenue"`
	AvgOrderValue  int64  `json:"avgOrderValue"`
	ItemsValue     int64  `json:"itemsValue"`
	ShippingValue  int64  `json:"shippingValue"`
	DiscountsValue int64  `json:"discountsValue"`
	TaxValue       int64  `json:"taxValue"`
}

// SeriesPoint точка временного ряда заказов
type SeriesPoint struct {
	Period  string `json:"period"`
	Orders  int64  `json:"orders"`
	Revenue int64  `json:"revenue"`
}

// ProductRow строка топа товаров
type ProductRow struct {
	SkuID       *string `json:"skuId"`
	ProductID   *string `json:"productId"`
	SkuName     *string `json:"skuName"`
	ProductName *string `json:"productName"`
	Quantity    int64   `json:"quantity"`
	Revenue     int64   `json:"revenue"`
}

// CustomerRow строка топа покупателей
type CustomerRow struct {
	CustomerID string  `json:"customerId"`
	Email      *string `json:"email"`
	Name       string  `json:"name"`
	Orders     int64   `json:"orders"`
	Revenue    int64   `json:"revenue"`
}

// CustomerTypeStats статистика по типу покупателя (физ./юр. лицо)
type CustomerTypeStats struct {
	TotalCustomers int64 `json:"totalCustomers"`
	TotalOrders    int64 `json:"totalOrders"`
	TotalRevenue   int64 `json:"totalRevenue"`
	AvgOrderValue  int64 `json:"avgOrderValue"`
}

// CustomersReport отчет по покупателям
type CustomersReport struct {
	NewCustomers       int64             `json:"newCustomers"`
	ReturningCustomers int64             `json:"returningCustomers"`
	Individual         CustomerTypeStats `json:"pf"`
	Corporate          CustomerTypeStats `json:"pj"`
	TopCustomers       []CustomerRow     `json:"topCustomers"`
}

// RetentionRow удержание за месяц
type RetentionRow struct {
	PeriodStart       string `json:"periodStart"`
	Customers         int64  `json:"customers"`
	PreviousCustomers int64  `json:"previousCustomers"`
	RetainedCustomers int64  `json:"retainedCustomers"`
}

// CohortRow ячейка когортной таблицы
type CohortRow struct {
	CohortMonth string `json:"cohortMonth"`
	OrderMonth  string `json:"orderMonth"`
	Customers   int64  `json:"customers"`
}

// NewVsReturningRow новые и вернувшиеся покупатели за месяц
type NewVsReturningRow struct {
	PeriodStart     string `json:"periodStart"`
	NewOrders       int64  `json:"newOrders"`
	ReturningOrders int64  `json:"returningOrders"`
}

// UTMRow выручка по UTM-меткам
type UTMRow struct {
	UtmSource   string `json:"utmSource"`
	UtmMedium   string `json:"utmMedium"`
	UtmCampaign string `json:"utmCampaign"`
	Orders      int64  `json:"orders"`
	Revenue     int64  `json:"revenue"`
}

// ShippingRow разбивка по способам доставки
type ShippingRow struct {
	Carrier         *string `json:"carrier"`
	DeliveryChannel *string `json:"deliveryChannel"`
	ShippingSLA     *string `json:"shippingSla"`
	Shipments       int64   `json:"shipments"`
	Revenue         int64   `json:"revenue"`
	ShippingValue   int64   `json:"shippingValue"`
}

// PaymentRow разбивка по способам оплаты
type PaymentRow struct {
	PaymentGroup *string `json:"paymentGroup"`
	PaymentName  *string `json:"paymentName"`
	Payments     int64   `json:"payments"`
	Revenue      int64   `json:"revenue"`
}
