package vtex

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"order_ingest/internal/models"
)

// Пути API
const (
	ordersPath         = "/api/oms/pvt/orders"
	profileSearchPath  = "/api/dataentities/CL/search"
	profileFields      = "id,userId,email"
	isoLayout          = "2006-01-02T15:04:05.000Z"
	MaxPerPage         = 100
)

// CreationDateFilter формирует значение f_creationDate
func CreationDateFilter(from, to time.Time) string {
	return fmt.Sprintf("creationDate:[%s TO %s]", from.UTC().Format(isoLayout), to.UTC().Format(isoLayout))
}

// ListOrders возвращает страницу списка заказов за интервал
func (c *Client) ListOrders(ctx context.Context, p models.OrderListQuery) (*models.OrderList, error) {
	perPage := p.PerPage
	if perPage <= 0 || perPage > MaxPerPage {
		perPage = MaxPerPage
	}
	page := p.Page
	if page < 1 {
		page = 1
	}

	query := map[string]string{
		"page":           strconv.Itoa(page),
		"per_page":       strconv.Itoa(perPage),
		"f_creationDate": CreationDateFilter(p.From, p.To),
		"salesChannelId": p.SalesChannel,
	}

	var list models.OrderList
	if err := c.GetJSON(ctx, "list_orders", ordersPath, query, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// GetOrder возвращает полный документ заказа вместе с исходным телом
func (c *Client) GetOrder(ctx context.Context, orderID string) (*models.OrderDetail, error) {
	var detail models.OrderDetail
	path := ordersPath + "/" + url.PathEscape(orderID)
	if err := c.GetJSON(ctx, "get_order", path, nil, &detail); err != nil {
		return nil, err
	}
	if err := detail.Validate(); err != nil {
		return nil, fmt.Errorf("vtex get_order %s: invalid document: %w", orderID, err)
	}
	return &detail, nil
}

// SearchProfiles ищет профили клиентов Masterdata по условию вида "field=value"
func (c *Client) SearchProfiles(ctx context.Context, where string) ([]models.Profile, error) {
	query := map[string]string{
		"_fields": profileFields,
		"_where":  where,
	}
	var profiles []models.Profile
	if err := c.GetJSON(ctx, "search_profiles", profileSearchPath, query, &profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}
