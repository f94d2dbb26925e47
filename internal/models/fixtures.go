package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-faker/faker/v4"
)

// GenerateTestOrderDetail создает документ заказа с фейковыми данными покупателя.
// itemCount задает количество позиций (и записей logisticsInfo).
func GenerateTestOrderDetail(index, itemCount int) *OrderDetail {
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC).Add(time.Duration(index) * time.Hour)

	detail := &OrderDetail{
		OrderID:        fmt.Sprintf("%013d-01", 1400000000000+index),
		Sequence:       fmt.Sprintf("%d", 500000+index),
		Status:         "invoiced",
		CreationDate:   created.Format(time.RFC3339),
		LastChange:     created.Add(30 * time.Minute).Format(time.RFC3339),
		ItemsValue:     Float(0),
		ShippingValue:  Float(1500),
		DiscountsValue: Float(0),
		TaxValue:       Float(0),
		SalesChannel:   "1",
		CurrencyCode:   "BRL",
		Origin:         "Marketplace",
		MarketingData: &MarketingData{
			UtmSource:   "google",
			UtmMedium:   "cpc",
			UtmCampaign: faker.Word(),
		},
		ClientProfileData: &ClientProfileData{
			UserProfileID: faker.UUIDHyphenated(),
			Email:         faker.Email(),
			FirstName:     faker.FirstName(),
			LastName:      faker.LastName(),
			Phone:         faker.Phonenumber(),
			Document:      fmt.Sprintf("%011d", 10000000000+index),
			DocumentType:  "cpf",
		},
		ShippingData: &ShippingData{
			Address: &AddressPayload{
				AddressType:    "residential",
				Street:         "Rua " + faker.Word(),
				Number:         fmt.Sprintf("%d", 10+index),
				City:           "São Paulo",
				State:          "SP",
				PostalCode:     "01311-000",
				Country:        "BRA",
				GeoCoordinates: []float64{-46.65, -23.56},
			},
		},
		PaymentData: &PaymentData{
			Transactions: []Transaction{{
				TransactionID: fmt.Sprintf("TX%d", index),
				Payments: []PaymentPayload{{
					ID:                fmt.Sprintf("PAY%d", index),
					PaymentSystem:     "2",
					Group:             "creditCard",
					PaymentSystemName: "Visa",
					Installments:      Float(1),
					Status:            "finished",
					BillingAddress: &AddressPayload{
						Street: "Av. Paulista",
						Number: "1000",
						City:   "São Paulo",
						State:  "SP",
					},
				}},
			}},
		},
	}

	var itemsValue float64
	for i := 0; i < itemCount; i++ {
		price := float64(1000 * (i + 1))
		itemsValue += price
		detail.Items = append(detail.Items, ItemPayload{
			UniqueID:     fmt.Sprintf("U-%d-%d", index, i),
			ID:           fmt.Sprintf("%d", 100+i),
			ProductID:    fmt.Sprintf("P%d", 10+i),
			Name:         faker.Word(),
			RefID:        fmt.Sprintf("REF%d", i),
			Quantity:     Float(1),
			Price:        Float(price),
			ListPrice:    Float(price),
			SellingPrice: Float(price),
			SkuID:        fmt.Sprintf("%d", 100+i),
			SkuName:      faker.Word(),
			BrandName:    "Acme",
			Seller:       "1",
		})
		detail.ShippingData.LogisticsInfo = append(detail.ShippingData.LogisticsInfo, LogisticsInfo{
			DeliveryChannel: "delivery",
			Carrier:         "Correios",
			ShippingPrice:   Float(500),
			SLAs:            []SLA{{Name: "Normal"}},
		})
	}
	detail.ItemsValue = Float(itemsValue)
	detail.PaymentData.Transactions[0].Payments[0].Value = Float(itemsValue + 1500)

	raw, _ := json.Marshal(detail)
	detail.Raw = raw
	return detail
}

// Float возвращает указатель на значение
func Float(v float64) *float64 {
	return &v
}
