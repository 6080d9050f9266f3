package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	if strings.EqualFold(strings.TrimSpace(orderDir), "asc") {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed
// fields. Returns defaultField if the input is empty or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" || !allowedFields[trimmed] {
		return defaultField
	}
	return trimmed
}

// CommonSortFields contains fields common to most entities
var CommonSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
}

// UserSortFields contains allowed sort fields for users
var UserSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"username":      true,
	"email":         true,
	"display_name":  true,
	"role":          true,
	"status":        true,
	"last_login_at": true,
}

// ProductSortFields contains allowed sort fields for products
var ProductSortFields = map[string]bool{
	"id":             true,
	"created_at":     true,
	"updated_at":     true,
	"sku":            true,
	"name":           true,
	"unit":           true,
	"purchase_price": true,
	"selling_price":  true,
	"min_stock":      true,
	"status":         true,
}

// SupplierSortFields contains allowed sort fields for suppliers
var SupplierSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"email":      true,
	"status":     true,
}

// WarehouseSortFields contains allowed sort fields for warehouses
var WarehouseSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"capacity":   true,
}

// StockRecordSortFields contains allowed sort fields for stock records
var StockRecordSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"quantity":   true,
}

// PurchaseOrderSortFields contains allowed sort fields for purchase orders
var PurchaseOrderSortFields = map[string]bool{
	"id":                     true,
	"created_at":             true,
	"updated_at":             true,
	"order_number":           true,
	"status":                 true,
	"total_amount":           true,
	"expected_delivery_date": true,
	"received_date":          true,
}
