package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// UnknownKey agrupa linhas sem canal, sku ou local.
const UnknownKey = "UNKNOWN"

type Order struct {
	ID          string          `db:"id"`
	WorkspaceID string          `db:"workspace_id"`
	Channel     *string         `db:"channel"`
	Status      string          `db:"status"`
	Currency    string          `db:"currency"`
	Subtotal    decimal.Decimal `db:"subtotal"`
	Tax         decimal.Decimal `db:"tax"`
	Shipping    decimal.Decimal `db:"shipping"`
	Total       decimal.Decimal `db:"total"`
	OrderedAt   *time.Time      `db:"ordered_at"`
	CreatedAt   time.Time       `db:"created_at"`
	ItemCount   int64           `db:"item_count"`
}

// ChannelKey devolve o canal sem espaços, ou UNKNOWN.
func (o Order) ChannelKey() string {
	if o.Channel == nil {
		return UnknownKey
	}
	if c := strings.TrimSpace(*o.Channel); c != "" {
		return c
	}
	return UnknownKey
}

// HasNegativeMoney informa se algum campo monetário do pedido é negativo.
func (o Order) HasNegativeMoney() bool {
	return o.Total.IsNegative() || o.Subtotal.IsNegative() || o.Tax.IsNegative() || o.Shipping.IsNegative()
}

type OrderItem struct {
	ID           string          `db:"id"`
	OrderID      string          `db:"order_id"`
	ProductID    string          `db:"product_id"`
	LocationCode *string         `db:"location_code"`
	Quantity     int64           `db:"quantity"`
	UnitPrice    decimal.Decimal `db:"unit_price"`
	Total        decimal.Decimal `db:"total"`
}

func (i OrderItem) LocationKey() string {
	if i.LocationCode == nil || strings.TrimSpace(*i.LocationCode) == "" {
		return UnknownKey
	}
	return *i.LocationCode
}

// LedgerEntry é uma linha de taxa ou reembolso.
type LedgerEntry struct {
	ID          string          `db:"id"`
	WorkspaceID string          `db:"workspace_id"`
	OrderID     *string         `db:"order_id"`
	Amount      decimal.Decimal `db:"amount"`
	Currency    string          `db:"currency"`
	CreatedAt   time.Time       `db:"created_at"`
}

// InventoryRow é o saldo de um produto em um local.
type InventoryRow struct {
	ProductID    string    `db:"product_id"`
	LocationID   string    `db:"location_id"`
	SKU          string    `db:"sku"`
	LocationCode string    `db:"location_code"`
	OnHand       int64     `db:"on_hand"`
	UpdatedAt    time.Time `db:"updated_at"`
}

type Product struct {
	ID          string `db:"id" json:"id"`
	WorkspaceID string `db:"workspace_id" json:"workspaceId"`
	SKU         string `db:"sku" json:"sku"`
	Name        string `db:"name" json:"name"`
}
