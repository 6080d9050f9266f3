package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	reportapp "github.com/ims/backend/internal/application/report"
)

// ReportHandler handles dashboard and reporting API endpoints
type ReportHandler struct {
	BaseHandler
	reportService *reportapp.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *reportapp.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// StockAnalytics godoc
// @Summary      Get aggregate stock figures
// @Description  Returns product counts, total on-hand quantity and value, and low or out of stock counts
// @Tags         reports
// @Produce      json
// @Success      200 {object} dto.Response{data=report.StockAnalytics}
// @Security     BearerAuth
// @Router       /reports/stock-analytics [get]
func (h *ReportHandler) StockAnalytics(c *gin.Context) {
	analytics, err := h.reportService.StockAnalytics(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, analytics)
}

// MovementTrend godoc
// @Summary      Get daily movement totals
// @Description  Returns inbound and outbound totals per day over the requested window
// @Tags         reports
// @Produce      json
// @Param        from query string false "Start date (YYYY-MM-DD)"
// @Param        to query string false "End date (YYYY-MM-DD)"
// @Success      200 {object} dto.Response{data=[]report.MovementTrendPoint}
// @Security     BearerAuth
// @Router       /reports/movement-trend [get]
func (h *ReportHandler) MovementTrend(c *gin.Context) {
	from, err := queryDate(c, "from")
	if err != nil {
		h.BadRequest(c, "Invalid from date, expected YYYY-MM-DD")
		return
	}
	to, err := queryDate(c, "to")
	if err != nil {
		h.BadRequest(c, "Invalid to date, expected YYYY-MM-DD")
		return
	}

	trend, err := h.reportService.MovementTrend(c.Request.Context(), from, to)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, trend)
}

// CategoryDistribution godoc
// @Summary      Get stock distribution per category
// @Tags         reports
// @Produce      json
// @Success      200 {object} dto.Response{data=[]report.CategoryDistribution}
// @Security     BearerAuth
// @Router       /reports/category-distribution [get]
func (h *ReportHandler) CategoryDistribution(c *gin.Context) {
	distribution, err := h.reportService.CategoryDistribution(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, distribution)
}

// WarehouseDistribution godoc
// @Summary      Get stock distribution per warehouse
// @Tags         reports
// @Produce      json
// @Success      200 {object} dto.Response{data=[]report.WarehouseDistribution}
// @Security     BearerAuth
// @Router       /reports/warehouse-distribution [get]
func (h *ReportHandler) WarehouseDistribution(c *gin.Context) {
	distribution, err := h.reportService.WarehouseDistribution(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, distribution)
}

// TopProducts godoc
// @Summary      Get the most moved products
// @Description  Ranks products by total moved quantity over the requested window
// @Tags         reports
// @Produce      json
// @Param        from query string false "Start date (YYYY-MM-DD)"
// @Param        to query string false "End date (YYYY-MM-DD)"
// @Param        limit query int false "Maximum number of products"
// @Success      200 {object} dto.Response{data=[]report.TopProduct}
// @Security     BearerAuth
// @Router       /reports/top-products [get]
func (h *ReportHandler) TopProducts(c *gin.Context) {
	from, err := queryDate(c, "from")
	if err != nil {
		h.BadRequest(c, "Invalid from date, expected YYYY-MM-DD")
		return
	}
	to, err := queryDate(c, "to")
	if err != nil {
		h.BadRequest(c, "Invalid to date, expected YYYY-MM-DD")
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 0 {
			h.BadRequest(c, "Invalid limit")
			return
		}
	}

	products, err := h.reportService.TopProducts(c.Request.Context(), from, to, limit)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, products)
}

// StockAlerts godoc
// @Summary      Get low and out of stock alerts
// @Tags         reports
// @Produce      json
// @Success      200 {object} dto.Response{data=[]report.StockAlert}
// @Security     BearerAuth
// @Router       /reports/stock-alerts [get]
func (h *ReportHandler) StockAlerts(c *gin.Context) {
	alerts, err := h.reportService.StockAlerts(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, alerts)
}

// OrderSummary godoc
// @Summary      Get purchase order counts and open value
// @Tags         reports
// @Produce      json
// @Success      200 {object} dto.Response{data=report.OrderSummary}
// @Security     BearerAuth
// @Router       /reports/order-summary [get]
func (h *ReportHandler) OrderSummary(c *gin.Context) {
	summary, err := h.reportService.OrderSummary(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, summary)
}

// RegisterRoutes registers reporting endpoints
func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	reports := rg.Group("/reports")
	{
		reports.GET("/stock-analytics", h.StockAnalytics)
		reports.GET("/movement-trend", h.MovementTrend)
		reports.GET("/category-distribution", h.CategoryDistribution)
		reports.GET("/warehouse-distribution", h.WarehouseDistribution)
		reports.GET("/top-products", h.TopProducts)
		reports.GET("/stock-alerts", h.StockAlerts)
		reports.GET("/order-summary", h.OrderSummary)
	}
}
