// Package models содержит структуры данных VTEX и нормализованные строки БД
package models

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
)

// Экземпляр валидатора для входящих документов
var validate *validator.Validate

func init() {
	validate = validator.New()
}

// AddressPayload адрес в документе заказа VTEX
type AddressPayload struct {
	AddressType    string    `json:"addressType"`
	Street         string    `json:"street"`
	Number         string    `json:"number"`
	Complement     string    `json:"complement"`
	Neighborhood   string    `json:"neighborhood"`
	City           string    `json:"city"`
	State          string    `json:"state"`
	PostalCode     string    `json:"postalCode"`
	Country        string    `json:"country"`
	GeoCoordinates []float64 `json:"geoCoordinates"` // [lng, lat]
}

// MarketingData атрибуция заказа
type MarketingData struct {
	UtmSource   string `json:"utmSource"`
	UtmMedium   string `json:"utmMedium"`
	UtmCampaign string `json:"utmCampaign"`
	UtmTerm     string `json:"utmTerm"`
	UtmContent  string `json:"utmContent"`
	UtmiCp      string `json:"utmiCp"`
	UtmiPart    string `json:"utmiPart"`
	Coupon      string `json:"coupon"`
}

// ClientProfileData профиль покупателя в заказе
type ClientProfileData struct {
	UserProfileID    string `json:"userProfileId"`
	Email            string `json:"email"`
	FirstName        string `json:"firstName"`
	LastName         string `json:"lastName"`
	Phone            string `json:"phone"`
	Document         string `json:"document"`
	DocumentType     string `json:"documentType"`
	IsCorporate      bool   `json:"isCorporate"`
	CorporateName    string `json:"corporateName"`
	TradeName        string `json:"tradeName"`
	StateInscription string `json:"stateInscription"`
	Gender           string `json:"gender"`
	BirthDate        string `json:"birthDate"`
}

// PriceTag именованная корректировка цены позиции
type PriceTag struct {
	Name  string   `json:"name"`
	Value *float64 `json:"value"`
}

// ItemPayload позиция заказа
type ItemPayload struct {
	UniqueID        string     `json:"uniqueId"`
	ID              string     `json:"id"`
	ProductID       string     `json:"productId"`
	Name            string     `json:"name"`
	RefID           string     `json:"refId"`
	Quantity        *float64   `json:"quantity"`
	Price           *float64   `json:"price"`
	ListPrice       *float64   `json:"listPrice"`
	SellingPrice    *float64   `json:"sellingPrice"`
	ManualPrice     *float64   `json:"manualPrice"`
	Tax             *float64   `json:"tax"`
	PriceTags       []PriceTag `json:"priceTags"`
	Seller          string     `json:"seller"`
	MeasurementUnit string     `json:"measurementUnit"`
	UnitMultiplier  *float64   `json:"unitMultiplier"`
	IsGift          bool       `json:"isGift"`
	SkuName         string     `json:"skuName"`
	SkuID           string     `json:"skuId"`
	EAN             string     `json:"ean"`
	BrandName       string     `json:"brandName"`
}

// SLA вариант доставки
type SLA struct {
	Name string `json:"name"`
}

// LogisticsInfo логистика одной позиции
type LogisticsInfo struct {
	DeliveryChannel      string          `json:"deliveryChannel"`
	ShippingEstimate     string          `json:"shippingEstimate"`
	ShippingEstimateDate string          `json:"shippingEstimateDate"`
	Carrier              string          `json:"carrier"`
	ShippingPrice        *float64        `json:"shippingPrice"`
	DeliveryWindow       json.RawMessage `json:"deliveryWindow"`
	PickupPointID        string          `json:"pickupPointId"`
	PickupFriendlyName   string          `json:"pickupFriendlyName"`
	SLAs                 []SLA           `json:"slas"`
}

// ShippingData данные доставки заказа
type ShippingData struct {
	Address       *AddressPayload `json:"address"`
	LogisticsInfo []LogisticsInfo `json:"logisticsInfo"`
}

// PaymentPayload платеж внутри транзакции
type PaymentPayload struct {
	ID                string          `json:"id"`
	PaymentSystem     string          `json:"paymentSystem"`
	Group             string          `json:"group"`
	PaymentSystemName string          `json:"paymentSystemName"`
	Installments      *float64        `json:"installments"`
	Value             *float64        `json:"value"`
	Status            string          `json:"status"`
	AuthorizationID   string          `json:"authorizationId"`
	TID               string          `json:"tid"`
	NSU               string          `json:"nsu"`
	Acquirer          string          `json:"acquirer"`
	FirstDigits       string          `json:"firstDigits"`
	LastDigits        string          `json:"lastDigits"`
	CardHolder        string          `json:"cardHolder"`
	BillingAddress    *AddressPayload `json:"billingAddress"`
}

// Transaction транзакция оплаты
type Transaction struct {
	TransactionID string           `json:"transactionId"`
	Payments      []PaymentPayload `json:"payments"`
}

// PaymentData данные оплаты заказа
type PaymentData struct {
	Transactions []Transaction `json:"transactions"`
}

// Benefit примененная акция. Raw хранит исходный JSON акции.
type Benefit struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Discount     *float64 `json:"discount"`
	CouponCode   string   `json:"couponCode"`
	IsCumulative *bool    `json:"isCumulative"`
	Type         string   `json:"type"`

	Raw json.RawMessage `json:"-"`
}

// UnmarshalJSON сохраняет исходный JSON акции
func (b *Benefit) UnmarshalJSON(data []byte) error {
	type alias Benefit
	var tmp alias
	if err := json.Unmarshal(data, &tmp); err != nil {
		return err
	}
	*b = Benefit(tmp)
	b.Raw = append(json.RawMessage(nil), data...)
	return nil
}

// RateAndBenefitsIdentifier идентификатор сработавшего правила
type RateAndBenefitsIdentifier struct {
	ID                string            `json:"id"`
	Name              string            `json:"name"`
	MatchedParameters map[string]string `json:"matchedParameters"`
}

// RatesAndBenefitsData акции заказа
type RatesAndBenefitsData struct {
	Benefits                   []Benefit                   `json:"benefits"`
	RateAndBenefitsIdentifiers []RateAndBenefitsIdentifier `json:"rateAndBenefitsIdentifiers"`
}

// TotalEntry элемент списка totals[] (Items, Shipping, Discounts, Tax)
type TotalEntry struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Value *float64 `json:"value"`
}

// OrderDetail полный документ заказа VTEX. Любое поле может отсутствовать.
type OrderDetail struct {
	OrderID              string                `json:"orderId" validate:"required"`
	Sequence             string                `json:"sequence"`
	Status               string                `json:"status"`
	StatusDescription    string                `json:"statusDescription"`
	CreationDate         string                `json:"creationDate"`
	LastChange           string                `json:"lastChange"`
	TotalValue           *float64              `json:"totalValue"`
	ItemsValue           *float64              `json:"itemsValue"`
	ShippingValue        *float64              `json:"shippingValue"`
	DiscountsValue       *float64              `json:"discountsValue"`
	TaxValue             *float64              `json:"taxValue"`
	RoundingValue        *float64              `json:"roundingValue"`
	Value                *float64              `json:"value"`
	SalesChannel         string                `json:"salesChannel"`
	Seller               string                `json:"seller"`
	AffiliateID          string                `json:"affiliateId"`
	AffiliateName        string                `json:"affiliateName"`
	Origin               string                `json:"origin"`
	Source               string                `json:"source"`
	Device               string                `json:"device"`
	UserAgent            string                `json:"userAgent"`
	CurrencyCode         string                `json:"currencyCode"`
	MarketplaceOrderID   string                `json:"marketplaceOrderId"`
	MarketingData        *MarketingData        `json:"marketingData"`
	ClientProfileData    *ClientProfileData    `json:"clientProfileData"`
	Items                []ItemPayload         `json:"items"`
	ShippingData         *ShippingData         `json:"shippingData"`
	PaymentData          *PaymentData          `json:"paymentData"`
	RatesAndBenefitsData *RatesAndBenefitsData `json:"ratesAndBenefitsData"`
	Totals               []TotalEntry          `json:"totals"`

	// Raw исходный документ для аудита и повторной обработки
	Raw json.RawMessage `json:"-"`
}

// UnmarshalJSON декодирует документ и сохраняет его исходное тело
func (d *OrderDetail) UnmarshalJSON(data []byte) error {
	type alias OrderDetail
	var tmp alias
	if err := json.Unmarshal(data, &tmp); err != nil {
		return err
	}
	*d = OrderDetail(tmp)
	d.Raw = append(json.RawMessage(nil), data...)
	return nil
}

// Validate проверяет минимальные требования к документу заказа
func (d *OrderDetail) Validate() error {
	if d == nil {
		return errors.New("order detail is nil")
	}
	return validate.Struct(d)
}

// OrderSummary элемент постраничного списка заказов
type OrderSummary struct {
	OrderID      string `json:"orderId" validate:"required"`
	Sequence     string `json:"sequence"`
	Status       string `json:"status"`
	CreationDate string `json:"creationDate"`
	LastChange   string `json:"lastChange"`
	SalesChannel string `json:"salesChannel"`
}

// Paging метаданные пагинации списка
type Paging struct {
	Total       int `json:"total"`
	Pages       int `json:"pages"`
	CurrentPage int `json:"currentPage"`
	PerPage     int `json:"perPage"`
}

// OrderListQuery параметры запроса постраничного списка заказов
type OrderListQuery struct {
	Page         int
	PerPage      int
	From         time.Time
	To           time.Time
	SalesChannel string // Пустая строка: без фильтра по каналу
}

// OrderList ответ /api/oms/pvt/orders
type OrderList struct {
	List   []OrderSummary `json:"list"`
	Paging Paging         `json:"paging"`
}

// Profile запись профиля клиента из Masterdata (сущность CL)
type Profile struct {
	ID     string `json:"id"`
	UserID string `json:"userId"`
	Email  string `json:"email"`
}
