package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func pageOrDefault(page int) int {
	if page <= 0 {
		return 1
	}
	return page
}

func pageSizeOrDefault(pageSize int) int {
	if pageSize <= 0 {
		return 20
	}
	return pageSize
}

// queryUUID parses an optional uuid query parameter. A missing parameter
// yields nil; a malformed one yields an error.
func queryUUID(c *gin.Context, name string) (*uuid.UUID, error) {
	value := c.Query(name)
	if value == "" {
		return nil, nil
	}
	id, err := uuid.Parse(value)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// queryDate parses an optional YYYY-MM-DD query parameter
func queryDate(c *gin.Context, name string) (time.Time, error) {
	value := c.Query(name)
	if value == "" {
		return time.Time{}, nil
	}
	return time.Parse("2006-01-02", value)
}
