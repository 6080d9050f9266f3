package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockAnalytics is a read model summarizing the overall inventory state
type StockAnalytics struct {
	TotalProducts   int64           `json:"total_products"`
	TotalQuantity   int64           `json:"total_quantity"`
	TotalStockValue decimal.Decimal `json:"total_stock_value"` // Sum of quantity * purchase price
	LowStockCount   int64           `json:"low_stock_count"`
	OutOfStockCount int64           `json:"out_of_stock_count"`
}

// MovementTrendPoint is one day of aggregated movement volume
type MovementTrendPoint struct {
	Date     time.Time `json:"date"`
	Inbound  int64     `json:"inbound"`
	Outbound int64     `json:"outbound"`
}

// CategoryDistribution is the stock share of one product category
type CategoryDistribution struct {
	CategoryID   *uuid.UUID `json:"category_id,omitempty"`
	CategoryName string     `json:"category_name"`
	Quantity     int64      `json:"quantity"`
	ProductCount int64      `json:"product_count"`
}

// WarehouseDistribution is the stock share of one warehouse
type WarehouseDistribution struct {
	WarehouseID   uuid.UUID `json:"warehouse_id"`
	WarehouseName string    `json:"warehouse_name"`
	Quantity      int64     `json:"quantity"`
	Capacity      int64     `json:"capacity"`
}

// TopProduct ranks a product by its movement volume over a period
type TopProduct struct {
	ProductID    uuid.UUID `json:"product_id"`
	ProductSKU   string    `json:"product_sku"`
	ProductName  string    `json:"product_name"`
	MovementQty  int64     `json:"movement_qty"`
	CurrentStock int64     `json:"current_stock"`
}

// StockAlertLevel classifies a stock alert
type StockAlertLevel string

const (
	StockAlertLow StockAlertLevel = "low"
	StockAlertOut StockAlertLevel = "out"
)

// StockAlert flags a product at or below its minimum stock level
type StockAlert struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductSKU  string          `json:"product_sku"`
	ProductName string          `json:"product_name"`
	Quantity    int64           `json:"quantity"`
	MinStock    int64           `json:"min_stock"`
	Level       StockAlertLevel `json:"level"`
}

// OrderSummary aggregates purchase orders by status
type OrderSummary struct {
	TotalOrders     int64           `json:"total_orders"`
	DraftOrders     int64           `json:"draft_orders"`
	OpenOrders      int64           `json:"open_orders"`
	ReceivedOrders  int64           `json:"received_orders"`
	CancelledOrders int64           `json:"cancelled_orders"`
	TotalValue      decimal.Decimal `json:"total_value"` // Value of non-cancelled orders
}

// Repository provides the aggregated queries behind the dashboard charts
type Repository interface {
	// StockAnalytics returns the overall inventory summary
	StockAnalytics(ctx context.Context) (*StockAnalytics, error)

	// MovementTrend returns daily movement volume between two dates inclusive
	// Days without movements appear with zero totals
	MovementTrend(ctx context.Context, from, to time.Time) ([]MovementTrendPoint, error)

	// CategoryDistribution returns stock quantity grouped by category
	// Products without a category are grouped under an empty category
	CategoryDistribution(ctx context.Context) ([]CategoryDistribution, error)

	// WarehouseDistribution returns stock quantity grouped by warehouse
	WarehouseDistribution(ctx context.Context) ([]WarehouseDistribution, error)

	// TopProducts returns the most moved products over a period
	TopProducts(ctx context.Context, from, to time.Time, limit int) ([]TopProduct, error)

	// StockAlerts returns products that are out of stock or below their
	// minimum stock level
	StockAlerts(ctx context.Context) ([]StockAlert, error)

	// OrderSummary returns purchase order counts and value by status
	OrderSummary(ctx context.Context) (*OrderSummary, error)
}
