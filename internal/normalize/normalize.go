// Package normalize преобразует документ заказа VTEX в набор строк реляционной схемы
package normalize

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"order_ingest/internal/models"
)

// CouponParameter ключ matchedParameters, в котором VTEX передает купон
const CouponParameter = "couponCode@Marketing"

// Статусы, при которых заказ считается завершенным (точное совпадение)
var completedStatuses = map[string]bool{
	"invoiced":  true,
	"delivered": true,
}

// Totals денежные итоги заказа
type Totals struct {
	Total     *int64
	Items     *int64
	Shipping  *int64
	Discounts *int64
	Tax       *int64
}

// IsCompleted сообщает, завершен ли заказ с данным статусом
func IsCompleted(status string) bool {
	return completedStatuses[status]
}

// BuildTotals вычисляет итоги: явный total, затем value, затем
// items + shipping - discounts + tax из полей или из списка totals[]
func BuildTotals(detail *models.OrderDetail) Totals {
	byID := make(map[string]float64)
	for _, t := range detail.Totals {
		if t.ID != "" && t.Value != nil {
			byID[t.ID] = *t.Value
		}
	}

	pick := func(field *float64, id string) *float64 {
		if field != nil {
			return field
		}
		if v, ok := byID[id]; ok {
			return &v
		}
		return nil
	}

	items := pick(detail.ItemsValue, "Items")
	shipping := pick(detail.ShippingValue, "Shipping")
	discounts := pick(detail.DiscountsValue, "Discounts")
	tax := pick(detail.TaxValue, "Tax")

	total := detail.TotalValue
	if total == nil {
		total = detail.Value
	}
	if total == nil && (items != nil || shipping != nil || discounts != nil || tax != nil) {
		sum := valueOrZero(items) + valueOrZero(shipping) - valueOrZero(discounts) + valueOrZero(tax)
		total = &sum
	}

	return Totals{
		Total:     toMinor(total),
		Items:     toMinor(items),
		Shipping:  toMinor(shipping),
		Discounts: toMinor(discounts),
		Tax:       toMinor(tax),
	}
}

// ResolveCoupon выбирает купон акции: собственный, затем первый из matchedParameters,
// затем купон из marketingData
func ResolveCoupon(benefit models.Benefit, fromIdentifiers, marketing string) *string {
	switch {
	case benefit.CouponCode != "":
		return str(benefit.CouponCode)
	case fromIdentifiers != "":
		return str(fromIdentifiers)
	default:
		return str(marketing)
	}
}

// CouponFromIdentifiers возвращает первый непустой купон из rateAndBenefitsIdentifiers
func CouponFromIdentifiers(data *models.RatesAndBenefitsData) string {
	if data == nil {
		return ""
	}
	for _, ident := range data.RateAndBenefitsIdentifiers {
		if code := ident.MatchedParameters[CouponParameter]; code != "" {
			return code
		}
	}
	return ""
}

// ItemDiscount суммирует priceTags позиции. Нулевая сумма означает отсутствие скидки.
func ItemDiscount(tags []models.PriceTag) *int64 {
	var sum float64
	for _, tag := range tags {
		sum += valueOrZero(tag.Value)
	}
	if sum == 0 {
		return nil
	}
	return toMinor(&sum)
}

// Normalize строит набор строк для записи заказа. Функция не обращается к сети и БД.
func Normalize(detail *models.OrderDetail) *models.OrderWriteSet {
	totals := BuildTotals(detail)
	marketing := detail.MarketingData
	if marketing == nil {
		marketing = &models.MarketingData{}
	}

	ws := &models.OrderWriteSet{
		Order: models.Order{
			VtexOrderID:        detail.OrderID,
			VtexSequence:       str(detail.Sequence),
			MarketplaceOrderID: str(detail.MarketplaceOrderID),
			Status:             str(detail.Status),
			StatusDescription:  str(detail.StatusDescription),
			IsCompleted:        IsCompleted(detail.Status),
			CreationDate:       ParseTime(detail.CreationDate),
			LastChange:         ParseTime(detail.LastChange),
			TotalValue:         totals.Total,
			ItemsValue:         totals.Items,
			ShippingValue:      totals.Shipping,
			DiscountsValue:     totals.Discounts,
			TaxValue:           totals.Tax,
			RoundingValue:      toMinor(detail.RoundingValue),
			SalesChannel:       str(detail.SalesChannel),
			Seller:             str(detail.Seller),
			AffiliateID:        str(detail.AffiliateID),
			AffiliateName:      str(detail.AffiliateName),
			Origin:             str(detail.Origin),
			Source:             str(detail.Source),
			Device:             str(detail.Device),
			UserAgent:          str(detail.UserAgent),
			UtmSource:          str(marketing.UtmSource),
			UtmMedium:          str(marketing.UtmMedium),
			UtmCampaign:        str(marketing.UtmCampaign),
			UtmTerm:            str(marketing.UtmTerm),
			UtmContent:         str(marketing.UtmContent),
			UtmiCp:             str(marketing.UtmiCp),
			UtmiPart:           str(marketing.UtmiPart),
			Coupon:             str(marketing.Coupon),
			Currency:           str(detail.CurrencyCode),
			Raw:                rawDocument(detail),
		},
		Customer: customer(detail.ClientProfileData),
	}

	if detail.ShippingData != nil {
		ws.ShippingAddress = address(detail.ShippingData.Address, "shipping")
	}
	if billing := firstBillingAddress(detail.PaymentData); billing != nil {
		ws.BillingAddress = address(billing, "billing")
	}

	for _, item := range detail.Items {
		ws.Items = append(ws.Items, itemWrite(item))
	}

	if detail.PaymentData != nil {
		for _, tx := range detail.PaymentData.Transactions {
			for _, p := range tx.Payments {
				ws.Payments = append(ws.Payments, models.OrderPayment{
					TransactionID:   str(tx.TransactionID),
					PaymentID:       str(p.ID),
					PaymentSystem:   str(p.PaymentSystem),
					PaymentGroup:    str(p.Group),
					PaymentName:     str(p.PaymentSystemName),
					Installments:    toMinor(p.Installments),
					Value:           toMinor(p.Value),
					Status:          str(p.Status),
					AuthorizationID: str(p.AuthorizationID),
					TID:             str(p.TID),
					NSU:             str(p.NSU),
					Gateway:         str(p.Acquirer),
					CardBin:         str(p.FirstDigits),
					CardLast4:       str(p.LastDigits),
					CardHolder:      str(p.CardHolder),
				})
			}
		}
	}

	if detail.ShippingData != nil {
		for _, li := range detail.ShippingData.LogisticsInfo {
			var sla *string
			if len(li.SLAs) > 0 {
				sla = str(li.SLAs[0].Name)
			}
			ws.Shippings = append(ws.Shippings, models.OrderShipping{
				DeliveryChannel:      str(li.DeliveryChannel),
				ShippingSLA:          sla,
				Carrier:              str(li.Carrier),
				ShippingEstimate:     str(li.ShippingEstimate),
				ShippingEstimateDate: ParseTime(li.ShippingEstimateDate),
				ShippingValue:        toMinor(li.ShippingPrice),
				DeliveryWindow:       jsonOrNil(li.DeliveryWindow),
				PickupPointID:        str(li.PickupPointID),
				PickupFriendlyName:   str(li.PickupFriendlyName),
				IsDelivered:          detail.Status == "delivered",
			})
		}
	}

	if detail.RatesAndBenefitsData != nil {
		fromIdentifiers := CouponFromIdentifiers(detail.RatesAndBenefitsData)
		for _, b := range detail.RatesAndBenefitsData.Benefits {
			ws.Promotions = append(ws.Promotions, models.OrderPromotion{
				PromotionID:  str(b.ID),
				Name:         str(b.Name),
				Description:  str(b.Description),
				Value:        toMinor(b.Discount),
				IsCumulative: b.IsCumulative,
				Type:         str(b.Type),
				CouponCode:   ResolveCoupon(b, fromIdentifiers, marketing.Coupon),
				Raw:          benefitRaw(b),
			})
		}
	}

	return ws
}

func customer(data *models.ClientProfileData) *models.Customer {
	if data == nil {
		return nil
	}
	return &models.Customer{
		VtexCustomerID: str(data.UserProfileID),
		Email:          str(data.Email),
		FirstName:      str(data.FirstName),
		LastName:       str(data.LastName),
		Phone:          str(data.Phone),
		Document:       str(data.Document),
		DocumentType:   str(data.DocumentType),
		IsCorporate:    data.IsCorporate,
		CorporateName:  str(data.CorporateName),
		TradeName:      str(data.TradeName),
		StateInscr:     str(data.StateInscription),
		Gender:         str(data.Gender),
		BirthDate:      ParseTime(data.BirthDate),
	}
}

func address(a *models.AddressPayload, kind string) *models.Address {
	if a == nil {
		return nil
	}
	lat, lng := geoCoords(a.GeoCoordinates)
	return &models.Address{
		Type:         str(kind),
		Street:       str(a.Street),
		Number:       str(a.Number),
		Complement:   str(a.Complement),
		Neighborhood: str(a.Neighborhood),
		City:         str(a.City),
		State:        str(a.State),
		PostalCode:   str(a.PostalCode),
		Country:      str(a.Country),
		GeoLat:       lat,
		GeoLng:       lng,
	}
}

// geoCoords принимает [lng, lat]
func geoCoords(c []float64) (lat, lng *float64) {
	if len(c) != 2 {
		return nil, nil
	}
	lngV, latV := c[0], c[1]
	return &latV, &lngV
}

func firstBillingAddress(data *models.PaymentData) *models.AddressPayload {
	if data == nil || len(data.Transactions) == 0 || len(data.Transactions[0].Payments) == 0 {
		return nil
	}
	return data.Transactions[0].Payments[0].BillingAddress
}

func itemWrite(item models.ItemPayload) models.ItemWrite {
	w := models.ItemWrite{
		Item: models.OrderItem{
			UniqueItemID:    firstNonEmpty(item.UniqueID, item.ID, uuid.NewString()),
			Seller:          str(item.Seller),
			Quantity:        int64(math.Round(valueOrZero(item.Quantity))),
			Price:           toMinor(item.Price),
			ListPrice:       toMinor(item.ListPrice),
			SellingPrice:    toMinor(item.SellingPrice),
			ManualPrice:     toMinor(item.ManualPrice),
			TotalPrice:      toMinor(firstNumber(item.SellingPrice, item.Price)),
			TotalDiscount:   ItemDiscount(item.PriceTags),
			Tax:             toMinor(item.Tax),
			MeasurementUnit: str(item.MeasurementUnit),
			UnitMultiplier:  nonZero(item.UnitMultiplier),
			IsGift:          item.IsGift,
			RefID:           str(item.RefID),
			SkuRefID:        str(item.SkuID),
		},
	}
	if item.ProductID != "" {
		w.Product = &models.Product{
			VtexProductID: item.ProductID,
			Name:          str(item.Name),
			Brand:         str(item.BrandName),
		}
	}
	if item.SkuID != "" {
		w.Sku = &models.Sku{
			VtexSkuID: item.SkuID,
			Name:      str(firstNonEmpty(item.SkuName, item.Name)),
			RefID:     str(item.RefID),
			EAN:       str(item.EAN),
		}
	}
	return w
}

func rawDocument(detail *models.OrderDetail) json.RawMessage {
	if len(detail.Raw) > 0 {
		return detail.Raw
	}
	b, err := json.Marshal(detail)
	if err != nil {
		return nil
	}
	return b
}

func benefitRaw(b models.Benefit) json.RawMessage {
	if len(b.Raw) > 0 {
		return b.Raw
	}
	out, err := json.Marshal(b)
	if err != nil {
		return nil
	}
	return out
}

func jsonOrNil(raw json.RawMessage) json.RawMessage {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	return trimmed
}

// ParseTime разбирает даты VTEX; пустая или некорректная строка дает nil
func ParseTime(value string) *time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			t = t.UTC()
			return &t
		}
	}
	return nil
}

func str(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstNumber(values ...*float64) *float64 {
	for _, v := range values {
		if v != nil {
			return v
		}
	}
	return nil
}

func nonZero(v *float64) *float64 {
	if v == nil || *v == 0 {
		return nil
	}
	return v
}

func valueOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func toMinor(v *float64) *int64 {
	if v == nil {
		return nil
	}
	n := int64(math.Round(*v))
	return &n
}
