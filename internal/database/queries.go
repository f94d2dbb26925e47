package database

// Схема
const (
	CreateCustomersTable = `CREATE TABLE IF NOT EXISTS customers (
		id UUID PRIMARY KEY,
		vtex_customer_id TEXT UNIQUE,
		email TEXT UNIQUE,
		first_name TEXT,
		last_name TEXT,
		phone TEXT,
		document TEXT,
		document_type TEXT,
		is_corporate BOOLEAN NOT NULL DEFAULT FALSE,
		corporate_name TEXT,
		trade_name TEXT,
		state_inscr TEXT,
		gender TEXT,
		birth_date TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`

	CreateAddressesTable = `CREATE TABLE IF NOT EXISTS addresses (
		id UUID PRIMARY KEY,
		type TEXT,
		street TEXT,
		number TEXT,
		complement TEXT,
		neighborhood TEXT,
		city TEXT,
		state TEXT,
		postal_code TEXT,
		country TEXT,
		geo_lat DOUBLE PRECISION,
		geo_lng DOUBLE PRECISION,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`

	CreateProductsTable = `CREATE TABLE IF NOT EXISTS products (
		id UUID PRIMARY KEY,
		vtex_product_id TEXT NOT NULL UNIQUE,
		name TEXT,
		brand TEXT,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`

	CreateSkusTable = `CREATE TABLE IF NOT EXISTS skus (
		id UUID PRIMARY KEY,
		vtex_sku_id TEXT NOT NULL UNIQUE,
		product_id UUID REFERENCES products(id) ON DELETE SET NULL,
		name TEXT,
		ref_id TEXT,
		ean TEXT,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`

	CreateOrdersTable = `CREATE TABLE IF NOT EXISTS orders (
		id UUID PRIMARY KEY,
		vtex_order_id TEXT NOT NULL UNIQUE,
		vtex_sequence TEXT,
		marketplace_order_id TEXT,
		status TEXT,
		status_description TEXT,
		is_completed BOOLEAN NOT NULL DEFAULT FALSE,
		creation_date TIMESTAMPTZ,
		last_change TIMESTAMPTZ,
		total_value BIGINT,
		items_value BIGINT,
		shipping_value BIGINT,
		discounts_value BIGINT,
		tax_value BIGINT,
		rounding_value BIGINT,
		sales_channel TEXT,
		seller TEXT,
		affiliate_id TEXT,
		affiliate_name TEXT,
		origin TEXT,
		source TEXT,
		device TEXT,
		user_agent TEXT,
		utm_source TEXT,
		utm_medium TEXT,
		utm_campaign TEXT,
		utm_term TEXT,
		utm_content TEXT,
		utmi_cp TEXT,
		utmi_part TEXT,
		coupon TEXT,
		currency TEXT,
		raw JSONB,
		customer_id UUID REFERENCES customers(id) ON DELETE SET NULL,
		billing_address_id UUID REFERENCES addresses(id) ON DELETE SET NULL,
		shipping_address_id UUID REFERENCES addresses(id) ON DELETE SET NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`

	CreateOrderItemsTable = `CREATE TABLE IF NOT EXISTS order_items (
		id UUID PRIMARY KEY,
		order_id UUID NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
		unique_item_id TEXT NOT NULL,
		product_id UUID REFERENCES products(id) ON DELETE SET NULL,
		sku_id UUID REFERENCES skus(id) ON DELETE SET NULL,
		seller TEXT,
		quantity BIGINT NOT NULL DEFAULT 0,
		price BIGINT,
		list_price BIGINT,
		selling_price BIGINT,
		manual_price BIGINT,
		total_price BIGINT,
		total_discount BIGINT,
		tax BIGINT,
		measurement_unit TEXT,
		unit_multiplier DOUBLE PRECISION,
		is_gift BOOLEAN NOT NULL DEFAULT FALSE,
		is_customized BOOLEAN NOT NULL DEFAULT FALSE,
		ref_id TEXT,
		sku_ref_id TEXT
	)`

	CreateOrderPaymentsTable = `CREATE TABLE IF NOT EXISTS order_payments (
		id UUID PRIMARY KEY,
		order_id UUID NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
		transaction_id TEXT,
		payment_id TEXT,
		payment_system TEXT,
		payment_group TEXT,
		payment_name TEXT,
		installments BIGINT,
		value BIGINT,
		status TEXT,
		authorization_id TEXT,
		tid TEXT,
		nsu TEXT,
		gateway TEXT,
		card_bin TEXT,
		card_last4 TEXT,
		card_holder TEXT
	)`

	CreateOrderShippingsTable = `CREATE TABLE IF NOT EXISTS order_shippings (
		id UUID PRIMARY KEY,
		order_id UUID NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
		address_id UUID REFERENCES addresses(id) ON DELETE SET NULL,
		delivery_channel TEXT,
		shipping_sla TEXT,
		carrier TEXT,
		shipping_estimate TEXT,
		shipping_estimate_date TIMESTAMPTZ,
		shipping_value BIGINT,
		delivery_window JSONB,
		pickup_point_id TEXT,
		pickup_friendly_name TEXT,
		is_delivered BOOLEAN NOT NULL DEFAULT FALSE
	)`

	CreateOrderPromotionsTable = `CREATE TABLE IF NOT EXISTS order_promotions (
		id UUID PRIMARY KEY,
		order_id UUID NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
		promotion_id TEXT,
		name TEXT,
		description TEXT,
		value BIGINT,
		is_cumulative BOOLEAN,
		type TEXT,
		coupon_code TEXT,
		raw JSONB
	)`

	CreateOrderQueueTable = `CREATE TABLE IF NOT EXISTS order_queue (
		id UUID PRIMARY KEY,
		vtex_order_id TEXT NOT NULL UNIQUE,
		vtex_sequence TEXT,
		status TEXT,
		creation_date TIMESTAMPTZ,
		last_change TIMESTAMPTZ,
		processing_status TEXT NOT NULL DEFAULT 'pending',
		attempts INTEGER NOT NULL DEFAULT 0,
		last_error TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`

	CreateSchemaMigrationsTable = `CREATE TABLE IF NOT EXISTS schema_migrations (
		id TEXT PRIMARY KEY,
		applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`
)

// Индексы, применяемые как миграции
const (
	IndexOrdersCreationDate = `CREATE INDEX IF NOT EXISTS idx_orders_creation_date ON orders(creation_date)`
	IndexOrdersSalesChannel = `CREATE INDEX IF NOT EXISTS idx_orders_sales_channel ON orders(sales_channel)`
	IndexOrdersCustomer     = `CREATE INDEX IF NOT EXISTS idx_orders_customer_id ON orders(customer_id)`
	IndexOrderItemsOrder    = `CREATE INDEX IF NOT EXISTS idx_order_items_order_id ON order_items(order_id)`
	IndexOrderPaymentsOrder = `CREATE INDEX IF NOT EXISTS idx_order_payments_order_id ON order_payments(order_id)`
	IndexOrderShipOrder     = `CREATE INDEX IF NOT EXISTS idx_order_shippings_order_id ON order_shippings(order_id)`
	IndexOrderPromosOrder   = `CREATE INDEX IF NOT EXISTS idx_order_promotions_order_id ON order_promotions(order_id)`
	IndexQueueStatusCreated = `CREATE INDEX IF NOT EXISTS idx_order_queue_status_created ON order_queue(processing_status, created_at)`
	IndexCustomersUpdated   = `CREATE INDEX IF NOT EXISTS idx_customers_updated_at ON customers(updated_at DESC)`
)

// Покупатели
const (
	FindCustomerByVtexIDQuery = `SELECT id::text FROM customers WHERE vtex_customer_id = $1`

	FindUnlinkedCustomerByEmailQuery = `SELECT id::text FROM customers WHERE email = $1 AND vtex_customer_id IS NULL`

	// $1 email, $2 id текущей записи ('' для новой)
	EmailTakenQuery = `SELECT EXISTS(SELECT 1 FROM customers WHERE email = $1 AND id::text <> $2)`

	InsertCustomerQuery = `INSERT INTO customers (id, vtex_customer_id, email, first_name, last_name, phone,
			document, document_type, is_corporate, corporate_name, trade_name, state_inscr, gender, birth_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	UpdateCustomerQuery = `UPDATE customers SET
			vtex_customer_id = COALESCE($2, vtex_customer_id),
			email = COALESCE($3, email),
			first_name = $4,
			last_name = $5,
			phone = $6,
			document = $7,
			document_type = $8,
			is_corporate = $9,
			corporate_name = $10,
			trade_name = $11,
			state_inscr = $12,
			gender = $13,
			birth_date = $14,
			updated_at = NOW()
		WHERE id = $1`

	UpsertCustomerByEmailQuery = `INSERT INTO customers (id, vtex_customer_id, email, first_name, last_name, phone,
			document, document_type, is_corporate, corporate_name, trade_name, state_inscr, gender, birth_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (email) DO UPDATE SET
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			phone = EXCLUDED.phone,
			document = EXCLUDED.document,
			document_type = EXCLUDED.document_type,
			is_corporate = EXCLUDED.is_corporate,
			corporate_name = EXCLUDED.corporate_name,
			trade_name = EXCLUDED.trade_name,
			state_inscr = EXCLUDED.state_inscr,
			gender = EXCLUDED.gender,
			birth_date = EXCLUDED.birth_date,
			updated_at = NOW()
		RETURNING id::text`

	ListMaskedCustomersQuery = `SELECT id::text, vtex_customer_id, email, first_name, last_name, updated_at
		FROM customers
		WHERE email LIKE ('%' || $1) AND (NOT $2 OR vtex_customer_id IS NOT NULL)
		ORDER BY updated_at DESC
		LIMIT $3`

	UpdateCustomerEmailQuery = `UPDATE customers SET email = $2, updated_at = NOW() WHERE id = $1`
)

// Адреса, товары, заказ и дочерние строки
const (
	InsertAddressQuery = `INSERT INTO addresses (id, type, street, number, complement, neighborhood, city, state,
			postal_code, country, geo_lat, geo_lng)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	UpsertProductQuery = `INSERT INTO products (id, vtex_product_id, name, brand)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (vtex_product_id) DO UPDATE SET
			name = EXCLUDED.name,
			brand = EXCLUDED.brand,
			updated_at = NOW()
		RETURNING id::text`

	UpsertSkuQuery = `INSERT INTO skus (id, vtex_sku_id, product_id, name, ref_id, ean)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (vtex_sku_id) DO UPDATE SET
			product_id = EXCLUDED.product_id,
			name = EXCLUDED.name,
			ref_id = EXCLUDED.ref_id,
			ean = EXCLUDED.ean,
			updated_at = NOW()
		RETURNING id::text`

	UpsertOrderQuery = `INSERT INTO orders (id, vtex_order_id, vtex_sequence, marketplace_order_id, status,
			status_description, is_completed, creation_date, last_change, total_value, items_value,
			shipping_value, discounts_value, tax_value, rounding_value, sales_channel, seller, affiliate_id,
			affiliate_name, origin, source, device, user_agent, utm_source, utm_medium, utm_campaign,
			utm_term, utm_content, utmi_cp, utmi_part, coupon, currency, raw, customer_id,
			billing_address_id, shipping_address_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19,
			$20, $21, $22, $23, $24, $25, $26, $27, $28, $29, $30, $31, $32, $33, $34, $35, $36)
		ON CONFLICT (vtex_order_id) DO UPDATE SET
			vtex_sequence = EXCLUDED.vtex_sequence,
			marketplace_order_id = EXCLUDED.marketplace_order_id,
			status = EXCLUDED.status,
			status_description = EXCLUDED.status_description,
			is_completed = EXCLUDED.is_completed,
			creation_date = EXCLUDED.creation_date,
			last_change = EXCLUDED.last_change,
			total_value = EXCLUDED.total_value,
			items_value = EXCLUDED.items_value,
			shipping_value = EXCLUDED.shipping_value,
			discounts_value = EXCLUDED.discounts_value,
			tax_value = EXCLUDED.tax_value,
			rounding_value = EXCLUDED.rounding_value,
			sales_channel = EXCLUDED.sales_channel,
			seller = EXCLUDED.seller,
			affiliate_id = EXCLUDED.affiliate_id,
			affiliate_name = EXCLUDED.affiliate_name,
			origin = EXCLUDED.origin,
			source = EXCLUDED.source,
			device = EXCLUDED.device,
			user_agent = EXCLUDED.user_agent,
			utm_source = EXCLUDED.utm_source,
			utm_medium = EXCLUDED.utm_medium,
			utm_campaign = EXCLUDED.utm_campaign,
			utm_term = EXCLUDED.utm_term,
			utm_content = EXCLUDED.utm_content,
			utmi_cp = EXCLUDED.utmi_cp,
			utmi_part = EXCLUDED.utmi_part,
			coupon = EXCLUDED.coupon,
			currency = EXCLUDED.currency,
			raw = EXCLUDED.raw,
			customer_id = EXCLUDED.customer_id,
			billing_address_id = EXCLUDED.billing_address_id,
			shipping_address_id = EXCLUDED.shipping_address_id,
			updated_at = NOW()
		RETURNING id::text, updated_at`

	DeleteOrderItemsQuery      = `DELETE FROM order_items WHERE order_id = $1`
	DeleteOrderPaymentsQuery   = `DELETE FROM order_payments WHERE order_id = $1`
	DeleteOrderShippingsQuery  = `DELETE FROM order_shippings WHERE order_id = $1`
	DeleteOrderPromotionsQuery = `DELETE FROM order_promotions WHERE order_id = $1`

	InsertOrderItemQuery = `INSERT INTO order_items (id, order_id, unique_item_id, product_id, sku_id, seller,
			quantity, price, list_price, selling_price, manual_price, total_price, total_discount, tax,
			measurement_unit, unit_multiplier, is_gift, is_customized, ref_id, sku_ref_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`

	InsertOrderPaymentQuery = `INSERT INTO order_payments (id, order_id, transaction_id, payment_id,
			payment_system, payment_group, payment_name, installments, value, status, authorization_id,
			tid, nsu, gateway, card_bin, card_last4, card_holder)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`

	InsertOrderShippingQuery = `INSERT INTO order_shippings (id, order_id, address_id, delivery_channel,
			shipping_sla, carrier, shipping_estimate, shipping_estimate_date, shipping_value,
			delivery_window, pickup_point_id, pickup_friendly_name, is_delivered)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	InsertOrderPromotionQuery = `INSERT INTO order_promotions (id, order_id, promotion_id, name, description,
			value, is_cumulative, type, coupon_code, raw)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	OrderExistsQuery = `SELECT EXISTS(SELECT 1 FROM orders WHERE vtex_order_id = $1)`

	OldestOrderDateQuery = `SELECT MIN(creation_date) FROM orders`

	ListOrderIDsQuery = `SELECT vtex_order_id FROM orders ORDER BY creation_date DESC NULLS LAST, vtex_order_id`

	// Дочерние строки удаляются каскадно
	PurgeOutsideChannelQuery = `DELETE FROM orders WHERE id IN (
			SELECT id FROM orders WHERE sales_channel IS DISTINCT FROM $1 LIMIT $2
		)`

	CountOrderChildrenQuery = `SELECT
			(SELECT COUNT(*) FROM order_items WHERE order_id = $1),
			(SELECT COUNT(*) FROM order_payments WHERE order_id = $1),
			(SELECT COUNT(*) FROM order_shippings WHERE order_id = $1),
			(SELECT COUNT(*) FROM order_promotions WHERE order_id = $1)`
)

// Очередь
const (
	EnqueueOrderQuery = `INSERT INTO order_queue (id, vtex_order_id, vtex_sequence, status, creation_date, last_change)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (vtex_order_id) DO NOTHING`

	FetchQueueBatchQuery = `SELECT id::text, vtex_order_id, vtex_sequence, status, creation_date, last_change,
			processing_status, attempts, last_error, created_at
		FROM order_queue
		WHERE (processing_status = 'pending' OR ($2 AND processing_status = 'failed'))
			AND attempts < $3
		ORDER BY created_at ASC, id
		LIMIT $1`

	MarkProcessingQuery = `UPDATE order_queue
		SET processing_status = 'processing', attempts = attempts + 1, last_error = NULL, updated_at = NOW()
		WHERE id = $1`

	MarkFailedQuery = `UPDATE order_queue
		SET processing_status = 'failed', last_error = $2, updated_at = NOW()
		WHERE id = $1`

	DeleteQueueItemQuery = `DELETE FROM order_queue WHERE id = $1`

	RequeueOrderQuery = `INSERT INTO order_queue (id, vtex_order_id)
		VALUES ($1, $2)
		ON CONFLICT (vtex_order_id) DO UPDATE SET
			processing_status = 'pending',
			attempts = 0,
			last_error = NULL,
			updated_at = NOW()`

	QueueCountsQuery = `SELECT processing_status, COUNT(*) FROM order_queue GROUP BY processing_status`

	CountExhaustedQuery = `SELECT COUNT(*) FROM order_queue
		WHERE processing_status = 'failed' AND attempts >= $1`
)
