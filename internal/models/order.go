package models

import (
	"encoding/json"
	"time"
)

// Customer покупатель. Дедуплицируется по VtexCustomerID, затем по Email.
type Customer struct {
	ID             string     `json:"id"`
	VtexCustomerID *string    `json:"vtex_customer_id"`
	Email          *string    `json:"email"`
	FirstName      *string    `json:"first_name"`
	LastName       *string    `json:"last_name"`
	Phone          *string    `json:"phone"`
	Document       *string    `json:"document"`
	DocumentType   *string    `json:"document_type"`
	IsCorporate    bool       `json:"is_corporate"`
	CorporateName  *string    `json:"corporate_name"`
	TradeName      *string    `json:"trade_name"`
	StateInscr     *string    `json:"state_inscr"`
	Gender         *string    `json:"gender"`
	BirthDate      *time.Time `json:"birth_date"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// Address снимок адреса заказа. Создается заново при каждой записи заказа.
type Address struct {
	ID           string   `json:"id"`
	Type         *string  `json:"type"`
	Street       *string  `json:"street"`
	Number       *string  `json:"number"`
	Complement   *string  `json:"complement"`
	Neighborhood *string  `json:"neighborhood"`
	City         *string  `json:"city"`
	State        *string  `json:"state"`
	PostalCode   *string  `json:"postal_code"`
	Country      *string  `json:"country"`
	GeoLat       *float64 `json:"geo_lat"`
	GeoLng       *float64 `json:"geo_lng"`
}

// Product товар, last-write-wins по описательным полям
type Product struct {
	ID            string  `json:"id"`
	VtexProductID string  `json:"vtex_product_id"`
	Name          *string `json:"name"`
	Brand         *string `json:"brand"`
}

// Sku вариант товара
type Sku struct {
	ID        string  `json:"id"`
	VtexSkuID string  `json:"vtex_sku_id"`
	ProductID *string `json:"product_id"`
	Name      *string `json:"name"`
	RefID     *string `json:"ref_id"`
	EAN       *string `json:"ean"`
}

// Order нормализованный заказ. Денежные поля в минимальных единицах.
type Order struct {
	ID                 string          `json:"id"`
	VtexOrderID        string          `json:"vtex_order_id"`
	VtexSequence       *string         `json:"vtex_sequence"`
	MarketplaceOrderID *string         `json:"marketplace_order_id"`
	Status             *string         `json:"status"`
	StatusDescription  *string         `json:"status_description"`
	IsCompleted        bool            `json:"is_completed"`
	CreationDate       *time.Time      `json:"creation_date"`
	LastChange         *time.Time      `json:"last_change"`
	TotalValue         *int64          `json:"total_value"`
	ItemsValue         *int64          `json:"items_value"`
	ShippingValue      *int64          `json:"shipping_value"`
	DiscountsValue     *int64          `json:"discounts_value"`
	TaxValue           *int64          `json:"tax_value"`
	RoundingValue      *int64          `json:"rounding_value"`
	SalesChannel       *string         `json:"sales_channel"`
	Seller             *string         `json:"seller"`
	AffiliateID        *string         `json:"affiliate_id"`
	AffiliateName      *string         `json:"affiliate_name"`
	Origin             *string         `json:"origin"`
	Source             *string         `json:"source"`
	Device             *string         `json:"device"`
	UserAgent          *string         `json:"user_agent"`
	UtmSource          *string         `json:"utm_source"`
	UtmMedium          *string         `json:"utm_medium"`
	UtmCampaign        *string         `json:"utm_campaign"`
	UtmTerm            *string         `json:"utm_term"`
	UtmContent         *string         `json:"utm_content"`
	UtmiCp             *string         `json:"utmi_cp"`
	UtmiPart           *string         `json:"utmi_part"`
	Coupon             *string         `json:"coupon"`
	Currency           *string         `json:"currency"`
	Raw                json.RawMessage `json:"raw"`
	CustomerID         *string         `json:"customer_id"`
	BillingAddressID   *string         `json:"billing_address_id"`
	ShippingAddressID  *string         `json:"shipping_address_id"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// OrderItem позиция заказа
type OrderItem struct {
	ID              string   `json:"id"`
	OrderID         string   `json:"order_id"`
	UniqueItemID    string   `json:"unique_item_id"`
	ProductID       *string  `json:"product_id"`
	SkuID           *string  `json:"sku_id"`
	Seller          *string  `json:"seller"`
	Quantity        int64    `json:"quantity"`
	Price           *int64   `json:"price"`
	ListPrice       *int64   `json:"list_price"`
	SellingPrice    *int64   `json:"selling_price"`
	ManualPrice     *int64   `json:"manual_price"`
	TotalPrice      *int64   `json:"total_price"`
	TotalDiscount   *int64   `json:"total_discount"`
	Tax             *int64   `json:"tax"`
	MeasurementUnit *string  `json:"measurement_unit"`
	UnitMultiplier  *float64 `json:"unit_multiplier"`
	IsGift          bool     `json:"is_gift"`
	IsCustomized    bool     `json:"is_customized"`
	RefID           *string  `json:"ref_id"`
	SkuRefID        *string  `json:"sku_ref_id"`
}

// OrderPayment платеж заказа
type OrderPayment struct {
	ID              string  `json:"id"`
	OrderID         string  `json:"order_id"`
	TransactionID   *string `json:"transaction_id"`
	PaymentID       *string `json:"payment_id"`
	PaymentSystem   *string `json:"payment_system"`
	PaymentGroup    *string `json:"payment_group"`
	PaymentName     *string `json:"payment_name"`
	Installments    *int64  `json:"installments"`
	Value           *int64  `json:"value"`
	Status          *string `json:"status"`
	AuthorizationID *string `json:"authorization_id"`
	TID             *string `json:"tid"`
	NSU             *string `json:"nsu"`
	Gateway         *string `json:"gateway"`
	CardBin         *string `json:"card_bin"`
	CardLast4       *string `json:"card_last4"`
	CardHolder      *string `json:"card_holder"`
}

// OrderShipping отгрузка заказа (одна на запись logisticsInfo)
type OrderShipping struct {
	ID                   string          `json:"id"`
	OrderID              string          `json:"order_id"`
	AddressID            *string         `json:"address_id"`
	DeliveryChannel      *string         `json:"delivery_channel"`
	ShippingSLA          *string         `json:"shipping_sla"`
	Carrier              *string         `json:"carrier"`
	ShippingEstimate     *string         `json:"shipping_estimate"`
	ShippingEstimateDate *time.Time      `json:"shipping_estimate_date"`
	ShippingValue        *int64          `json:"shipping_value"`
	DeliveryWindow       json.RawMessage `json:"delivery_window"`
	PickupPointID        *string         `json:"pickup_point_id"`
	PickupFriendlyName   *string         `json:"pickup_friendly_name"`
	IsDelivered          bool            `json:"is_delivered"`
}

// OrderPromotion акция, примененная к заказу
type OrderPromotion struct {
	ID           string          `json:"id"`
	OrderID      string          `json:"order_id"`
	PromotionID  *string         `json:"promotion_id"`
	Name         *string         `json:"name"`
	Description  *string         `json:"description"`
	Value        *int64          `json:"value"`
	IsCumulative *bool           `json:"is_cumulative"`
	Type         *string         `json:"type"`
	CouponCode   *string         `json:"coupon_code"`
	Raw          json.RawMessage `json:"raw"`
}

// ItemWrite позиция вместе с товаром и SKU, которые нужно обновить
type ItemWrite struct {
	Item    OrderItem
	Product *Product // nil, если в позиции нет productId
	Sku     *Sku     // nil, если в позиции нет skuId
}

// OrderWriteSet результат нормализации: все строки одного заказа.
// Идентификаторы (ID, OrderID, ссылки) заполняет хранилище при записи.
type OrderWriteSet struct {
	Order           Order
	Customer        *Customer
	ShippingAddress *Address
	BillingAddress  *Address
	Items           []ItemWrite
	Payments        []OrderPayment
	Shippings       []OrderShipping
	Promotions      []OrderPromotion
}
