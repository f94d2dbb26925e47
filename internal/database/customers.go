package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"order_ingest/internal/interfaces"
	"order_ingest/internal/models"
)

// upsertCustomer находит покупателя по внешнему id, затем по e-mail, и обновляет
// его либо создает нового. E-mail, занятый другой записью, не переносится.
func upsertCustomer(ctx context.Context, tx pgx.Tx, c *models.Customer) (*string, error) {
	if c == nil {
		return nil, nil
	}

	switch {
	case c.VtexCustomerID != nil:
		id, err := findID(ctx, tx, FindCustomerByVtexIDQuery, *c.VtexCustomerID)
		if err != nil {
			return nil, err
		}
		if id == "" && c.Email != nil {
			// Запись, созданная ранее только по e-mail, привязывается к внешнему id
			if id, err = findID(ctx, tx, FindUnlinkedCustomerByEmailQuery, *c.Email); err != nil {
				return nil, err
			}
		}

		email := c.Email
		if email != nil {
			var taken bool
			if err := tx.QueryRow(ctx, EmailTakenQuery, *email, id).Scan(&taken); err != nil {
				return nil, err
			}
			if taken {
				email = nil
			}
		}

		if id != "" {
			if _, err := tx.Exec(ctx, UpdateCustomerQuery, customerArgs(id, c, email)...); err != nil {
				return nil, err
			}
			return &id, nil
		}
		id = uuid.NewString()
		if _, err := tx.Exec(ctx, InsertCustomerQuery, customerArgs(id, c, email)...); err != nil {
			return nil, err
		}
		return &id, nil

	case c.Email != nil:
		var id string
		if err := tx.QueryRow(ctx, UpsertCustomerByEmailQuery, customerArgs(uuid.NewString(), c, c.Email)...).Scan(&id); err != nil {
			return nil, err
		}
		return &id, nil

	default:
		id := uuid.NewString()
		if _, err := tx.Exec(ctx, InsertCustomerQuery, customerArgs(id, c, nil)...); err != nil {
			return nil, err
		}
		return &id, nil
	}
}

func customerArgs(id string, c *models.Customer, email *string) []any {
	return []any{
		id, c.VtexCustomerID, email, c.FirstName, c.LastName, c.Phone, c.Document, c.DocumentType,
		c.IsCorporate, c.CorporateName, c.TradeName, c.StateInscr, c.Gender, c.BirthDate,
	}
}

// findID возвращает id первой строки или пустую строку, если строк нет
func findID(ctx context.Context, tx pgx.Tx, query string, arg string) (string, error) {
	var id string
	err := tx.QueryRow(ctx, query, arg).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	return id, err
}

// ListMaskedCustomers покупатели с e-mail, оканчивающимся на suffix, новые первыми
func (p *Postgres) ListMaskedCustomers(ctx context.Context, suffix string, linkedOnly bool, limit int) ([]models.Customer, error) {
	var lim any
	if limit > 0 {
		lim = limit
	}

	var customers []models.Customer
	err := p.observe("list_masked_customers", func() error {
		rows, err := p.pool.Query(ctx, ListMaskedCustomersQuery, suffix, linkedOnly, lim)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var c models.Customer
			if err := rows.Scan(&c.ID, &c.VtexCustomerID, &c.Email, &c.FirstName, &c.LastName, &c.UpdatedAt); err != nil {
				return err
			}
			customers = append(customers, c)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("Ошибка при запросе покупателей: %w", err)
	}
	return customers, nil
}

// UpdateCustomerEmail обновляет e-mail покупателя
func (p *Postgres) UpdateCustomerEmail(ctx context.Context, customerID, email string) error {
	var affected int64
	err := p.observe("update_customer_email", func() error {
		tag, err := p.pool.Exec(ctx, UpdateCustomerEmailQuery, customerID, email)
		affected = tag.RowsAffected()
		return err
	})
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %s", interfaces.ErrEmailConflict, email)
	}
	if err != nil {
		return fmt.Errorf("Ошибка обновления e-mail покупателя %s: %w", customerID, err)
	}
	if affected == 0 {
		return fmt.Errorf("покупатель %s не найден", customerID)
	}
	return nil
}
