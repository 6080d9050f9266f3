package persistence

import (
	"github.com/ims/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// applyPagination applies validated ordering and pagination to a query
func applyPagination(query *gorm.DB, filter shared.Filter, sortFields map[string]bool) *gorm.DB {
	orderBy := ValidateSortField(filter.OrderBy, sortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	query = query.Order(orderBy + " " + orderDir)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	return query
}
