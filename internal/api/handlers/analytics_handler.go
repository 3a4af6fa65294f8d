package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ksomisetty/scm-analytics/internal/engine"
	"github.com/ksomisetty/scm-analytics/internal/service"
	"github.com/rs/zerolog/log"
)

type AnalyticsHandler struct {
	service *service.AnalyticsService
	base    engine.Params
}

// NewAnalyticsHandler wires the handler with the configured defaults. Query
// parameters override individual fields per request.
func NewAnalyticsHandler(svc *service.AnalyticsService, base engine.Params) *AnalyticsHandler {
	return &AnalyticsHandler{service: svc, base: base}
}

func (h *AnalyticsHandler) parseParams(c *gin.Context) (engine.Params, error) {
	p := h.base

	if raw := strings.TrimSpace(c.Query("as_of")); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return p, fmt.Errorf("invalid as_of %q, expected YYYY-MM-DD", raw)
		}
		p.AsOf = t
	}

	var parseErr error
	parseInt := func(param string, dest *int) {
		raw := strings.TrimSpace(c.Query(param))
		if raw == "" || parseErr != nil {
			return
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			parseErr = fmt.Errorf("invalid %s %q, expected an integer", param, raw)
			return
		}
		*dest = v
	}
	parseFloat := func(param string, dest *float64) {
		raw := strings.TrimSpace(c.Query(param))
		if raw == "" || parseErr != nil {
			return
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			parseErr = fmt.Errorf("invalid %s %q, expected a number", param, raw)
			return
		}
		*dest = v
	}

	parseInt("lookback_days", &p.LookbackDays)
	parseInt("demand_lookback_days", &p.DemandLookbackDays)
	parseInt("fill_rate_lookback_days", &p.FillRateLookbackDays)
	parseFloat("service_level_z", &p.ServiceLevelZ)
	parseFloat("ordering_cost", &p.OrderingCost)
	parseFloat("holding_cost_rate", &p.HoldingCostRate)

	return p, parseErr
}

// queryParams parses the request overrides and writes a 400 itself when a
// value is malformed. Handlers bail out on !ok.
func (h *AnalyticsHandler) queryParams(c *gin.Context) (engine.Params, bool) {
	p, err := h.parseParams(c)
	if err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return p, false
	}
	return p, true
}

func (h *AnalyticsHandler) respond(c *gin.Context, data any, err error) {
	if err != nil {
		if errors.Is(err, engine.ErrInvalidArgument) {
			errorResponse(c, http.StatusBadRequest, err.Error())
			return
		}
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("analytics request failed")
		errorResponse(c, http.StatusInternalServerError, "internal server error")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": data})
}

func (h *AnalyticsHandler) GetABC(c *gin.Context) {
	p, ok := h.queryParams(c)
	if !ok {
		return
	}
	result, err := h.service.ABC(c.Request.Context(), p)
	h.respond(c, result, err)
}

func (h *AnalyticsHandler) GetTurnover(c *gin.Context) {
	p, ok := h.queryParams(c)
	if !ok {
		return
	}
	result, err := h.service.Turnover(c.Request.Context(), p)
	h.respond(c, result, err)
}

func (h *AnalyticsHandler) GetReorder(c *gin.Context) {
	p, ok := h.queryParams(c)
	if !ok {
		return
	}
	result, err := h.service.Reorder(c.Request.Context(), p)
	h.respond(c, result, err)
}

func (h *AnalyticsHandler) GetEOQ(c *gin.Context) {
	p, ok := h.queryParams(c)
	if !ok {
		return
	}
	result, err := h.service.EOQ(c.Request.Context(), p)
	h.respond(c, result, err)
}

func (h *AnalyticsHandler) GetSuppliers(c *gin.Context) {
	p, ok := h.queryParams(c)
	if !ok {
		return
	}
	result, err := h.service.Suppliers(c.Request.Context(), p)
	h.respond(c, result, err)
}

func (h *AnalyticsHandler) GetLeadTimes(c *gin.Context) {
	p, ok := h.queryParams(c)
	if !ok {
		return
	}
	result, err := h.service.LeadTimes(c.Request.Context(), p)
	h.respond(c, result, err)
}

func (h *AnalyticsHandler) GetStockouts(c *gin.Context) {
	p, ok := h.queryParams(c)
	if !ok {
		return
	}
	result, err := h.service.Stockouts(c.Request.Context(), p)
	h.respond(c, result, err)
}

func (h *AnalyticsHandler) GetStockoutCauses(c *gin.Context) {
	result, err := h.service.StockoutCauses(c.Request.Context())
	h.respond(c, result, err)
}

func (h *AnalyticsHandler) GetCarryingCosts(c *gin.Context) {
	p, ok := h.queryParams(c)
	if !ok {
		return
	}
	result, err := h.service.CarryingCosts(c.Request.Context(), p)
	h.respond(c, result, err)
}

func (h *AnalyticsHandler) GetInventoryStatus(c *gin.Context) {
	p, ok := h.queryParams(c)
	if !ok {
		return
	}
	result, err := h.service.InventoryStatus(c.Request.Context(), p)
	h.respond(c, result, err)
}

func (h *AnalyticsHandler) GetForecast(c *gin.Context) {
	productID, err := strconv.ParseInt(strings.TrimSpace(c.Query("product_id")), 10, 64)
	if err != nil || productID <= 0 {
		errorResponse(c, http.StatusBadRequest, "product_id is required and must be a positive integer")
		return
	}

	window := 7
	if raw := strings.TrimSpace(c.Query("window")); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			errorResponse(c, http.StatusBadRequest, fmt.Sprintf("invalid window %q, expected an integer", raw))
			return
		}
		window = v
	}

	alpha := 0.3
	if raw := strings.TrimSpace(c.Query("alpha")); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			errorResponse(c, http.StatusBadRequest, fmt.Sprintf("invalid alpha %q, expected a number", raw))
			return
		}
		alpha = v
	}

	horizon := 30
	if raw := strings.TrimSpace(c.Query("horizon_days")); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			errorResponse(c, http.StatusBadRequest, fmt.Sprintf("invalid horizon_days %q, expected an integer", raw))
			return
		}
		horizon = v
	}

	p, ok := h.queryParams(c)
	if !ok {
		return
	}
	result, svcErr := h.service.Forecast(c.Request.Context(), productID, window, alpha, horizon, p)
	h.respond(c, result, svcErr)
}

func (h *AnalyticsHandler) GetDashboard(c *gin.Context) {
	p, ok := h.queryParams(c)
	if !ok {
		return
	}
	result, err := h.service.Report(c.Request.Context(), p)
	h.respond(c, result, err)
}

func errorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{"error": message})
}
