package normalize

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"order_ingest/internal/models"
)

func f(v float64) *float64 { return &v }

func strPtr(s string) *string { return &s }

func TestBuildTotals(t *testing.T) {
	t.Run("вывод итога из компонентов", func(t *testing.T) {
		detail := &models.OrderDetail{
			ItemsValue:     f(100),
			ShippingValue:  f(20),
			DiscountsValue: f(10),
			TaxValue:       f(5),
		}
		totals := BuildTotals(detail)
		require.NotNil(t, totals.Total)
		assert.Equal(t, int64(115), *totals.Total)
	})

	t.Run("явный totalValue имеет приоритет", func(t *testing.T) {
		detail := &models.OrderDetail{TotalValue: f(999), Value: f(500), ItemsValue: f(100)}
		assert.Equal(t, int64(999), *BuildTotals(detail).Total)
	})

	t.Run("value, если нет totalValue", func(t *testing.T) {
		detail := &models.OrderDetail{Value: f(500), ItemsValue: f(100)}
		assert.Equal(t, int64(500), *BuildTotals(detail).Total)
	})

	t.Run("компоненты из списка totals", func(t *testing.T) {
		detail := &models.OrderDetail{
			Totals: []models.TotalEntry{
				{ID: "Items", Value: f(1000)},
				{ID: "Discounts", Value: f(-100)},
				{ID: "Shipping", Value: f(300)},
				{ID: "Tax", Value: f(0)},
			},
		}
		totals := BuildTotals(detail)
		require.NotNil(t, totals.Items)
		assert.Equal(t, int64(1000), *totals.Items)
		assert.Equal(t, int64(-100), *totals.Discounts)
		// 1000 + 300 - (-100) + 0
		assert.Equal(t, int64(1400), *totals.Total)
	})

	t.Run("все компоненты отсутствуют", func(t *testing.T) {
		totals := BuildTotals(&models.OrderDetail{})
		assert.Nil(t, totals.Total, "итог не выводится без компонентов")
		assert.Nil(t, totals.Items)
	})
}

func TestIsCompleted(t *testing.T) {
	assert.True(t, IsCompleted("invoiced"))
	assert.True(t, IsCompleted("delivered"))
	assert.False(t, IsCompleted("canceled"))
	assert.False(t, IsCompleted("Invoiced"), "сравнение точное")
	assert.False(t, IsCompleted(""))
}

func TestResolveCoupon(t *testing.T) {
	rates := &models.RatesAndBenefitsData{
		RateAndBenefitsIdentifiers: []models.RateAndBenefitsIdentifier{
			{ID: "r1", MatchedParameters: map[string]string{"other": "x"}},
			{ID: "r2", MatchedParameters: map[string]string{CouponParameter: "SAVE10"}},
			{ID: "r3", MatchedParameters: map[string]string{CouponParameter: "LATER"}},
		},
	}
	fromIdentifiers := CouponFromIdentifiers(rates)
	assert.Equal(t, "SAVE10", fromIdentifiers, "берется первое совпадение")

	got := ResolveCoupon(models.Benefit{}, fromIdentifiers, "MKT")
	require.NotNil(t, got)
	assert.Equal(t, "SAVE10", *got)

	got = ResolveCoupon(models.Benefit{CouponCode: "OWN"}, fromIdentifiers, "MKT")
	assert.Equal(t, "OWN", *got)

	got = ResolveCoupon(models.Benefit{}, "", "MKT")
	assert.Equal(t, "MKT", *got)

	assert.Nil(t, ResolveCoupon(models.Benefit{}, "", ""))
	assert.Equal(t, "", CouponFromIdentifiers(nil))
}

func TestItemDiscount(t *testing.T) {
	assert.Nil(t, ItemDiscount(nil))
	assert.Nil(t, ItemDiscount([]models.PriceTag{{Value: f(0)}, {Value: nil}}), "нулевая скидка = отсутствие")
	got := ItemDiscount([]models.PriceTag{{Value: f(-150)}, {Value: f(-50)}})
	require.NotNil(t, got)
	assert.Equal(t, int64(-200), *got)
}

func TestParseTime(t *testing.T) {
	assert.Nil(t, ParseTime(""))
	assert.Nil(t, ParseTime("not a date"))

	got := ParseTime("2024-03-01T12:30:00.1234567+00:00")
	require.NotNil(t, got)
	assert.Equal(t, 12, got.Hour())

	got = ParseTime("2024-03-01")
	require.NotNil(t, got)
	assert.Equal(t, 1, got.Day())
}

func TestNormalize(t *testing.T) {
	detail := models.GenerateTestOrderDetail(1, 2)
	detail.RatesAndBenefitsData = &models.RatesAndBenefitsData{
		Benefits: []models.Benefit{{ID: "promo-1", Name: "Leve 2", Discount: f(100)}},
		RateAndBenefitsIdentifiers: []models.RateAndBenefitsIdentifier{
			{MatchedParameters: map[string]string{CouponParameter: "SAVE10"}},
		},
	}
	detail.Items[0].PriceTags = []models.PriceTag{{Name: "discount@price", Value: f(-100)}}
	detail.Status = "delivered"

	ws := Normalize(detail)

	t.Run("заказ", func(t *testing.T) {
		o := ws.Order
		assert.Equal(t, detail.OrderID, o.VtexOrderID)
		assert.True(t, o.IsCompleted)
		require.NotNil(t, o.TotalValue)
		// 1000 + 2000 + 1500
		assert.Equal(t, int64(4500), *o.TotalValue)
		require.NotNil(t, o.CreationDate)
		assert.Equal(t, "google", *o.UtmSource)
		assert.Nil(t, o.UtmTerm, "пустая строка превращается в NULL")
		assert.Nil(t, o.Coupon)
		assert.NotEmpty(t, o.Raw)
	})

	t.Run("покупатель и адреса", func(t *testing.T) {
		require.NotNil(t, ws.Customer)
		assert.Equal(t, detail.ClientProfileData.UserProfileID, *ws.Customer.VtexCustomerID)
		assert.Equal(t, detail.ClientProfileData.Email, *ws.Customer.Email)

		require.NotNil(t, ws.ShippingAddress)
		assert.Equal(t, "shipping", *ws.ShippingAddress.Type)
		require.NotNil(t, ws.ShippingAddress.GeoLat)
		assert.Equal(t, -23.56, *ws.ShippingAddress.GeoLat, "geoCoordinates передаются как [lng, lat]")
		assert.Equal(t, -46.65, *ws.ShippingAddress.GeoLng)

		require.NotNil(t, ws.BillingAddress)
		assert.Equal(t, "billing", *ws.BillingAddress.Type)
		assert.Equal(t, "Av. Paulista", *ws.BillingAddress.Street)
		assert.Nil(t, ws.BillingAddress.GeoLat)
	})

	t.Run("позиции", func(t *testing.T) {
		require.Len(t, ws.Items, 2)
		first := ws.Items[0]
		assert.Equal(t, "U-1-0", first.Item.UniqueItemID)
		assert.Equal(t, int64(1000), *first.Item.TotalPrice)
		require.NotNil(t, first.Item.TotalDiscount)
		assert.Equal(t, int64(-100), *first.Item.TotalDiscount)
		assert.Nil(t, ws.Items[1].Item.TotalDiscount)
		assert.False(t, first.Item.IsCustomized)
		require.NotNil(t, first.Product)
		assert.Equal(t, "P10", first.Product.VtexProductID)
		require.NotNil(t, first.Sku)
		assert.Equal(t, "100", first.Sku.VtexSkuID)
	})

	t.Run("платежи, доставка и акции", func(t *testing.T) {
		require.Len(t, ws.Payments, 1)
		assert.Equal(t, int64(4500), *ws.Payments[0].Value)
		assert.Equal(t, "creditCard", *ws.Payments[0].PaymentGroup)

		require.Len(t, ws.Shippings, 2, "одна отгрузка на запись logisticsInfo")
		assert.Equal(t, "Normal", *ws.Shippings[0].ShippingSLA)
		assert.True(t, ws.Shippings[0].IsDelivered)
		assert.Nil(t, ws.Shippings[0].DeliveryWindow)

		require.Len(t, ws.Promotions, 1)
		assert.Equal(t, "SAVE10", *ws.Promotions[0].CouponCode)
		assert.Equal(t, int64(100), *ws.Promotions[0].Value)
		assert.NotEmpty(t, ws.Promotions[0].Raw)
	})
}

func TestNormalize_BillingFromFirstPayment(t *testing.T) {
	tests := []struct {
		name       string
		payment    string
		wantStreet *string
	}{
		{
			name: "адрес первого платежа первой транзакции",
			payment: `"transactions": [
				{"transactionId": "T1", "payments": [
					{"id": "p1", "value": 1000, "billingAddress": {"street": "Rua Primeira"}},
					{"id": "p2", "value": 500, "billingAddress": {"street": "Rua Segunda"}}
				]},
				{"transactionId": "T2", "payments": [
					{"id": "p3", "value": 700, "billingAddress": {"street": "Rua Terceira"}}
				]}
			]`,
			wantStreet: strPtr("Rua Primeira"),
		},
		{
			name: "у первого платежа нет адреса",
			payment: `"transactions": [
				{"transactionId": "T1", "payments": [
					{"id": "p1", "value": 1000},
					{"id": "p2", "value": 500, "billingAddress": {"street": "Rua Segunda"}}
				]},
				{"transactionId": "T2", "payments": [
					{"id": "p3", "value": 700, "billingAddress": {"street": "Rua Terceira"}}
				]}
			]`,
		},
		{
			name: "первая транзакция без платежей",
			payment: `"transactions": [
				{"transactionId": "T1", "payments": []},
				{"transactionId": "T2", "payments": [
					{"id": "p3", "value": 700, "billingAddress": {"street": "Rua Terceira"}}
				]}
			]`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var detail models.OrderDetail
			require.NoError(t, json.Unmarshal([]byte(`{"orderId": "B-01", "paymentData": {`+tt.payment+`}}`), &detail))

			ws := Normalize(&detail)
			if tt.wantStreet == nil {
				assert.Nil(t, ws.BillingAddress)
			} else {
				require.NotNil(t, ws.BillingAddress)
				assert.Equal(t, "billing", *ws.BillingAddress.Type)
				assert.Equal(t, *tt.wantStreet, *ws.BillingAddress.Street)
			}
			assert.NotEmpty(t, ws.Payments, "платежи всех транзакций записываются")
		})
	}
}

func TestNormalize_Sparse(t *testing.T) {
	var detail models.OrderDetail
	require.NoError(t, json.Unmarshal([]byte(`{
		"orderId": "X-01",
		"status": "canceled",
		"items": [{"id": "sku-1", "price": 250, "quantity": 2}],
		"shippingData": {"logisticsInfo": [{"slas": [], "deliveryWindow": {"startDateUtc": "2024-03-01"}}]},
		"ratesAndBenefitsData": {"benefits": [{"id": "b1", "couponCode": "OWN"}]}
	}`), &detail))

	ws := Normalize(&detail)
	assert.False(t, ws.Order.IsCompleted)
	assert.Nil(t, ws.Order.TotalValue)
	assert.Nil(t, ws.Customer)
	assert.Nil(t, ws.ShippingAddress)
	assert.Nil(t, ws.BillingAddress)
	assert.JSONEq(t, `{"orderId":"X-01","status":"canceled","items":[{"id":"sku-1","price":250,"quantity":2}],"shippingData":{"logisticsInfo":[{"slas":[],"deliveryWindow":{"startDateUtc":"2024-03-01"}}]},"ratesAndBenefitsData":{"benefits":[{"id":"b1","couponCode":"OWN"}]}}`, string(ws.Order.Raw))

	require.Len(t, ws.Items, 1)
	item := ws.Items[0]
	assert.Equal(t, "sku-1", item.Item.UniqueItemID, "uniqueId отсутствует: используется id")
	assert.Equal(t, int64(250), *item.Item.TotalPrice, "sellingPrice отсутствует: используется price")
	assert.Equal(t, int64(2), item.Item.Quantity)
	assert.Nil(t, item.Product)
	assert.Nil(t, item.Sku)

	require.Len(t, ws.Shippings, 1)
	assert.Nil(t, ws.Shippings[0].ShippingSLA)
	assert.False(t, ws.Shippings[0].IsDelivered)
	assert.JSONEq(t, `{"startDateUtc":"2024-03-01"}`, string(ws.Shippings[0].DeliveryWindow))

	require.Len(t, ws.Promotions, 1)
	assert.Equal(t, "OWN", *ws.Promotions[0].CouponCode)
	assert.JSONEq(t, `{"id":"b1","couponCode":"OWN"}`, string(ws.Promotions[0].Raw))
}
