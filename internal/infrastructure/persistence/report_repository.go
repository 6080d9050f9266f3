package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/ims/backend/internal/domain/catalog"
	"github.com/ims/backend/internal/domain/inventory"
	"github.com/ims/backend/internal/domain/procurement"
	"github.com/ims/backend/internal/domain/report"
)

// GormReportRepository serves the aggregated dashboard queries. All queries
// are read-only and stick to SQL both postgres and sqlite understand.
type GormReportRepository struct {
	db *gorm.DB
}

// NewGormReportRepository creates a new GORM report repository
func NewGormReportRepository(db *gorm.DB) *GormReportRepository {
	return &GormReportRepository{db: db}
}

// StockAnalytics returns the overall inventory summary
func (r *GormReportRepository) StockAnalytics(ctx context.Context) (*report.StockAnalytics, error) {
	analytics := &report.StockAnalytics{TotalStockValue: decimal.Zero}

	if err := r.db.WithContext(ctx).Model(&catalog.Product{}).
		Where("status = ?", catalog.ProductStatusActive).
		Count(&analytics.TotalProducts).Error; err != nil {
		return nil, err
	}

	var totals struct {
		Quantity int64
		Value    decimal.Decimal
	}
	err := r.db.WithContext(ctx).Model(&inventory.StockRecord{}).
		Select("COALESCE(SUM(stock_records.quantity), 0) AS quantity, COALESCE(SUM(stock_records.quantity * products.purchase_price), 0) AS value").
		Joins("JOIN products ON products.id = stock_records.product_id").
		Scan(&totals).Error
	if err != nil {
		return nil, err
	}
	analytics.TotalQuantity = totals.Quantity
	analytics.TotalStockValue = totals.Value

	levels, err := r.productStockLevels(ctx)
	if err != nil {
		return nil, err
	}
	for _, level := range levels {
		switch {
		case level.Quantity <= 0:
			analytics.OutOfStockCount++
		case level.Quantity <= level.MinStock:
			analytics.LowStockCount++
		}
	}
	return analytics, nil
}

// MovementTrend returns daily movement volume between two dates inclusive.
// Days without movements appear with zero totals.
func (r *GormReportRepository) MovementTrend(ctx context.Context, from, to time.Time) ([]report.MovementTrendPoint, error) {
	type dayRow struct {
		Day      string
		Type     inventory.MovementType
		Quantity int64
	}
	var rows []dayRow
	err := r.db.WithContext(ctx).Model(&inventory.StockMovement{}).
		Select("DATE(created_at) AS day, type, COALESCE(SUM(quantity), 0) AS quantity").
		Where("created_at >= ? AND created_at < ?", from, to.AddDate(0, 0, 1)).
		Group("DATE(created_at), type").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	byDay := make(map[string]*report.MovementTrendPoint)
	for _, row := range rows {
		point, ok := byDay[row.Day]
		if !ok {
			point = &report.MovementTrendPoint{}
			byDay[row.Day] = point
		}
		switch row.Type {
		case inventory.MovementTypeIn:
			point.Inbound = row.Quantity
		case inventory.MovementTypeOut:
			point.Outbound = row.Quantity
		}
	}

	var points []report.MovementTrendPoint
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		point := report.MovementTrendPoint{Date: day}
		if found, ok := byDay[day.Format("2006-01-02")]; ok {
			point.Inbound = found.Inbound
			point.Outbound = found.Outbound
		}
		points = append(points, point)
	}
	return points, nil
}

// CategoryDistribution returns stock quantity grouped by category. Products
// without a category are grouped under an empty category name.
func (r *GormReportRepository) CategoryDistribution(ctx context.Context) ([]report.CategoryDistribution, error) {
	type distRow struct {
		CategoryID   *uuid.UUID
		CategoryName *string
		Quantity     int64
		ProductCount int64
	}
	var rows []distRow
	err := r.db.WithContext(ctx).Model(&catalog.Product{}).
		Select("products.category_id AS category_id, categories.name AS category_name, COALESCE(SUM(stock_records.quantity), 0) AS quantity, COUNT(DISTINCT products.id) AS product_count").
		Joins("LEFT JOIN categories ON categories.id = products.category_id").
		Joins("LEFT JOIN stock_records ON stock_records.product_id = products.id").
		Where("products.status = ?", catalog.ProductStatusActive).
		Group("products.category_id, categories.name").
		Order("quantity DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	distribution := make([]report.CategoryDistribution, 0, len(rows))
	for _, row := range rows {
		entry := report.CategoryDistribution{
			CategoryID:   row.CategoryID,
			Quantity:     row.Quantity,
			ProductCount: row.ProductCount,
		}
		if row.CategoryName != nil {
			entry.CategoryName = *row.CategoryName
		}
		distribution = append(distribution, entry)
	}
	return distribution, nil
}

// WarehouseDistribution returns stock quantity grouped by warehouse
func (r *GormReportRepository) WarehouseDistribution(ctx context.Context) ([]report.WarehouseDistribution, error) {
	var distribution []report.WarehouseDistribution
	err := r.db.WithContext(ctx).Table("warehouses").
		Select("warehouses.id AS warehouse_id, warehouses.name AS warehouse_name, COALESCE(SUM(stock_records.quantity), 0) AS quantity, warehouses.capacity AS capacity").
		Joins("LEFT JOIN stock_records ON stock_records.warehouse_id = warehouses.id").
		Group("warehouses.id, warehouses.name, warehouses.capacity").
		Order("quantity DESC").
		Scan(&distribution).Error
	if err != nil {
		return nil, err
	}
	return distribution, nil
}

// TopProducts returns the most moved products over a period
func (r *GormReportRepository) TopProducts(ctx context.Context, from, to time.Time, limit int) ([]report.TopProduct, error) {
	type topRow struct {
		ProductID   uuid.UUID
		ProductSKU  string
		ProductName string
		MovementQty int64
	}
	var rows []topRow
	err := r.db.WithContext(ctx).Model(&inventory.StockMovement{}).
		Select("stock_movements.product_id AS product_id, products.sku AS product_sku, products.name AS product_name, COALESCE(SUM(stock_movements.quantity), 0) AS movement_qty").
		Joins("JOIN products ON products.id = stock_movements.product_id").
		Where("stock_movements.created_at >= ? AND stock_movements.created_at < ?", from, to.AddDate(0, 0, 1)).
		Group("stock_movements.product_id, products.sku, products.name").
		Order("movement_qty DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return []report.TopProduct{}, nil
	}

	ids := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ProductID)
	}
	stocks, err := r.currentStock(ctx, ids)
	if err != nil {
		return nil, err
	}

	products := make([]report.TopProduct, 0, len(rows))
	for _, row := range rows {
		products = append(products, report.TopProduct{
			ProductID:    row.ProductID,
			ProductSKU:   row.ProductSKU,
			ProductName:  row.ProductName,
			MovementQty:  row.MovementQty,
			CurrentStock: stocks[row.ProductID],
		})
	}
	return products, nil
}

// StockAlerts returns products that are out of stock or below their minimum
// stock level
func (r *GormReportRepository) StockAlerts(ctx context.Context) ([]report.StockAlert, error) {
	levels, err := r.productStockLevels(ctx)
	if err != nil {
		return nil, err
	}

	alerts := make([]report.StockAlert, 0)
	for _, level := range levels {
		alert := report.StockAlert{
			ProductID:   level.ProductID,
			ProductSKU:  level.ProductSKU,
			ProductName: level.ProductName,
			Quantity:    level.Quantity,
			MinStock:    level.MinStock,
		}
		switch {
		case level.Quantity <= 0:
			alert.Level = report.StockAlertOut
		case level.Quantity <= level.MinStock:
			alert.Level = report.StockAlertLow
		default:
			continue
		}
		alerts = append(alerts, alert)
	}
	return alerts, nil
}

// OrderSummary returns purchase order counts and value by status
func (r *GormReportRepository) OrderSummary(ctx context.Context) (*report.OrderSummary, error) {
	type statusRow struct {
		Status procurement.PurchaseOrderStatus
		Count  int64
	}
	var rows []statusRow
	err := r.db.WithContext(ctx).Model(&procurement.PurchaseOrder{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	summary := &report.OrderSummary{TotalValue: decimal.Zero}
	for _, row := range rows {
		summary.TotalOrders += row.Count
		switch row.Status {
		case procurement.PurchaseOrderStatusDraft:
			summary.DraftOrders = row.Count
		case procurement.PurchaseOrderStatusOpen:
			summary.OpenOrders = row.Count
		case procurement.PurchaseOrderStatusReceived:
			summary.ReceivedOrders = row.Count
		case procurement.PurchaseOrderStatusCancelled:
			summary.CancelledOrders = row.Count
		}
	}

	var value struct {
		Total decimal.Decimal
	}
	err = r.db.WithContext(ctx).Model(&procurement.PurchaseOrder{}).
		Select("COALESCE(SUM(total_amount), 0) AS total").
		Where("status <> ?", procurement.PurchaseOrderStatusCancelled).
		Scan(&value).Error
	if err != nil {
		return nil, err
	}
	summary.TotalValue = value.Total
	return summary, nil
}

// productStockLevel is the per-product aggregate behind alerts and the
// low/out-of-stock counters
type productStockLevel struct {
	ProductID   uuid.UUID
	ProductSKU  string
	ProductName string
	Quantity    int64
	MinStock    int64
}

func (r *GormReportRepository) productStockLevels(ctx context.Context) ([]productStockLevel, error) {
	var levels []productStockLevel
	err := r.db.WithContext(ctx).Model(&catalog.Product{}).
		Select("products.id AS product_id, products.sku AS product_sku, products.name AS product_name, COALESCE(SUM(stock_records.quantity), 0) AS quantity, products.min_stock AS min_stock").
		Joins("LEFT JOIN stock_records ON stock_records.product_id = products.id").
		Where("products.status = ?", catalog.ProductStatusActive).
		Group("products.id, products.sku, products.name, products.min_stock").
		Scan(&levels).Error
	if err != nil {
		return nil, err
	}
	return levels, nil
}

func (r *GormReportRepository) currentStock(ctx context.Context, productIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	type stockRow struct {
		ProductID uuid.UUID
		Quantity  int64
	}
	var rows []stockRow
	err := r.db.WithContext(ctx).Model(&inventory.StockRecord{}).
		Select("product_id, COALESCE(SUM(quantity), 0) AS quantity").
		Where("product_id IN ?", productIDs).
		Group("product_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	stocks := make(map[uuid.UUID]int64, len(rows))
	for _, row := range rows {
		stocks[row.ProductID] = row.Quantity
	}
	return stocks, nil
}

var _ report.Repository = (*GormReportRepository)(nil)
