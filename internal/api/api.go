package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ksomisetty/scm-analytics/internal/api/handlers"
	"github.com/ksomisetty/scm-analytics/internal/api/middleware"
	"github.com/ksomisetty/scm-analytics/internal/engine"
	"github.com/ksomisetty/scm-analytics/internal/service"
)

func NewRouter(svc *service.AnalyticsService, baseParams engine.Params, allowedOrigins []string) *gin.Engine {
	router := gin.New()

	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())

	defaultOrigins := []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	corsConfig := cors.Config{
		AllowOrigins:     defaultOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) > 0 {
		normalizedOrigins, allowAll := normalizeAllowedOrigins(allowedOrigins)
		if allowAll {
			corsConfig.AllowOrigins = nil
			corsConfig.AllowOriginFunc = func(origin string) bool { return true }
		} else if len(normalizedOrigins) > 0 {
			corsConfig.AllowOrigins = normalizedOrigins
		}
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	handler := handlers.NewAnalyticsHandler(svc, baseParams)
	analyticsGroup := router.Group("/api/v1/analytics")
	{
		analyticsGroup.GET("/abc", handler.GetABC)
		analyticsGroup.GET("/turnover", handler.GetTurnover)
		analyticsGroup.GET("/reorder", handler.GetReorder)
		analyticsGroup.GET("/eoq", handler.GetEOQ)
		analyticsGroup.GET("/suppliers", handler.GetSuppliers)
		analyticsGroup.GET("/lead_times", handler.GetLeadTimes)
		analyticsGroup.GET("/stockouts", handler.GetStockouts)
		analyticsGroup.GET("/stockout_causes", handler.GetStockoutCauses)
		analyticsGroup.GET("/carrying_costs", handler.GetCarryingCosts)
		analyticsGroup.GET("/inventory_status", handler.GetInventoryStatus)
		analyticsGroup.GET("/forecast", handler.GetForecast)
		analyticsGroup.GET("/dashboard", handler.GetDashboard)
	}

	return router
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		parts := strings.Split(origin, ",")
		for _, part := range parts {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if trimmed == "*" {
				allowAll = true
				continue
			}
			parsed = append(parsed, trimmed)
		}
	}
	return parsed, allowAll
}
